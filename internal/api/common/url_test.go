package common_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cheeseshop/cheeseshop/internal/api/common"
)

func requestWithParam(t *testing.T, name, value string) *http.Request {
	t.Helper()
	req, err := http.NewRequest("GET", "/", nil)
	require.NoError(t, err)

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(name, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestGetAndValidateURLParam(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   string
		want    string
		wantErr bool
	}{
		{
			name:  "plain value",
			value: "spam",
			want:  "spam",
		},
		{
			name:  "percent encoded",
			value: "spam%2Dham",
			want:  "spam-ham",
		},
		{
			name:    "empty",
			value:   "",
			wantErr: true,
		},
		{
			name:    "whitespace only",
			value:   "%20%20",
			wantErr: true,
		},
		{
			name:    "embedded whitespace",
			value:   "spam%20ham",
			wantErr: true,
		},
		{
			name:    "bad encoding",
			value:   "spam%zz",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := requestWithParam(t, "project", tt.value)

			got, err := common.GetAndValidateURLParam(req, "project")
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewSiteURLs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		siteName string
		root     string
		wantErr  bool
	}{
		{
			name:     "valid https",
			siteName: "PyPI",
			root:     "https://pypi.example.org/",
		},
		{
			name:     "valid http without trailing slash",
			siteName: "PyPI",
			root:     "http://pypi.example.org",
		},
		{
			name:    "missing name",
			root:    "https://pypi.example.org/",
			wantErr: true,
		},
		{
			name:     "relative url",
			siteName: "PyPI",
			root:     "/pypi",
			wantErr:  true,
		},
		{
			name:     "non http scheme",
			siteName: "PyPI",
			root:     "ftp://pypi.example.org/",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			site, err := common.NewSiteURLs(tt.siteName, tt.root)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.siteName, site.Name())
			assert.Equal(t, "/", site.Root()[len(site.Root())-1:])
		})
	}
}

func TestSiteURLBuilders(t *testing.T) {
	t.Parallel()

	site, err := common.NewSiteURLs("PyPI", "https://pypi.example.org")
	require.NoError(t, err)

	assert.Equal(t, "https://pypi.example.org/", site.Root())
	assert.Equal(t, "https://pypi.example.org/project/spam/", site.Project("spam"))
	assert.Equal(t, "https://pypi.example.org/project/spam/1.0/", site.Release("spam", "1.0"))

	// Path segments are escaped.
	assert.Equal(t, "https://pypi.example.org/project/spam%2Fham/", site.Project("spam/ham"))
}
