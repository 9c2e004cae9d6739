package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cheeseshop/cheeseshop/internal/service"
)

func TestNormalizeProjectName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "already normalized",
			in:   "spam",
			want: "spam",
		},
		{
			name: "mixed case",
			in:   "Django",
			want: "django",
		},
		{
			name: "underscores",
			in:   "typing_extensions",
			want: "typing-extensions",
		},
		{
			name: "dots",
			in:   "zope.interface",
			want: "zope-interface",
		},
		{
			name: "runs of separators collapse",
			in:   "foo-_.bar",
			want: "foo-bar",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, service.NormalizeProjectName(tt.in))
		})
	}
}
