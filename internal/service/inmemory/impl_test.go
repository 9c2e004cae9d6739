package inmemory_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cheeseshop/cheeseshop/internal/service"
	"github.com/cheeseshop/cheeseshop/internal/service/inmemory"
)

// fakeProvider implements IndexDataProvider with a canned snapshot, counting
// calls so cache behavior can be asserted.
type fakeProvider struct {
	mu    sync.Mutex
	dump  *service.IndexDump
	err   error
	calls int
}

func (p *fakeProvider) GetIndexData(_ context.Context) (*service.IndexDump, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return p.dump, nil
}

func (*fakeProvider) GetSource() string {
	return "test:fake"
}

func (p *fakeProvider) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

func (p *fakeProvider) setError(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
}

func day(d int) service.Timestamp {
	return service.NewTimestamp(time.Date(2019, 1, d, 0, 0, 0, 0, time.UTC))
}

func testDump() *service.IndexDump {
	return &service.IndexDump{
		Serial: 42,
		Projects: []service.ProjectDump{
			{
				Name:    "Spam_Ham",
				Created: day(1),
				Releases: []service.ReleaseDump{
					{
						Version: "1.0",
						Summary: "spam spam spam",
						Author:  "Monty",
						License: "MIT",
						Created: day(2),
						Files: []service.ReleaseFile{
							{
								Filename:   "spam_ham-1.0.tar.gz",
								URL:        "https://files.example.org/spam_ham-1.0.tar.gz",
								Size:       1234,
								UploadTime: day(2),
							},
						},
					},
					{
						Version: "2.0",
						Summary: "more spam",
						Created: day(4),
					},
				},
			},
			{
				Name:    "eggs",
				Created: day(3),
				Releases: []service.ReleaseDump{
					{
						Version: "0.1",
						Summary: "eggs",
						Created: day(3),
					},
				},
			},
		},
	}
}

func newTestService(t *testing.T, opts ...inmemory.Option) (service.PackagingService, *fakeProvider) {
	t.Helper()
	provider := &fakeProvider{dump: testDump()}
	opts = append([]inmemory.Option{inmemory.WithCacheDuration(time.Hour)}, opts...)
	svc, err := inmemory.New(context.Background(), provider, opts...)
	require.NoError(t, err)
	return svc, provider
}

func TestNewRequiresProvider(t *testing.T) {
	t.Parallel()
	_, err := inmemory.New(context.Background(), nil)
	require.Error(t, err)
}

func TestGetProject(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		lookup   string
		wantName string
		wantErr  error
	}{
		{
			name:     "exact name",
			lookup:   "Spam_Ham",
			wantName: "Spam_Ham",
		},
		{
			name:     "normalized lookup",
			lookup:   "spam-ham",
			wantName: "Spam_Ham",
		},
		{
			name:     "case insensitive lookup",
			lookup:   "SPAM.HAM",
			wantName: "Spam_Ham",
		},
		{
			name:    "unknown project",
			lookup:  "parrot",
			wantErr: service.ErrProjectNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			project, err := svc.GetProject(ctx, tt.lookup)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, project.Name)
			assert.Equal(t, day(1).Time(), project.Created)
		})
	}
}

func TestGetProjectVersions(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t)

	versions, err := svc.GetProjectVersions(context.Background(), "spam-ham")
	require.NoError(t, err)
	// Newest release first.
	assert.Equal(t, []string{"2.0", "1.0"}, versions)

	_, err = svc.GetProjectVersions(context.Background(), "parrot")
	require.ErrorIs(t, err, service.ErrProjectNotFound)
}

func TestGetLastSerial(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t)

	serial, err := svc.GetLastSerial(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(42), serial)
}

func TestReleaseData(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t)
	ctx := context.Background()

	info, err := svc.ReleaseData(ctx, "spam-ham", "1.0")
	require.NoError(t, err)
	assert.Equal(t, "Spam_Ham", info.Name)
	assert.Equal(t, "1.0", info.Version)
	assert.Equal(t, "spam spam spam", info.Summary)
	assert.Equal(t, "Monty", info.Author)
	assert.Equal(t, "MIT", info.License)

	_, err = svc.ReleaseData(ctx, "spam-ham", "3.0")
	require.ErrorIs(t, err, service.ErrVersionNotFound)

	_, err = svc.ReleaseData(ctx, "parrot", "1.0")
	require.ErrorIs(t, err, service.ErrProjectNotFound)
}

func TestReleaseURLs(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t)
	ctx := context.Background()

	files, err := svc.ReleaseURLs(ctx, "spam-ham", "1.0")
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "spam_ham-1.0.tar.gz", files[0].Filename)

	// A release without files yields an empty, non-nil slice so it still
	// serializes as a JSON array.
	files, err = svc.ReleaseURLs(ctx, "spam-ham", "2.0")
	require.NoError(t, err)
	require.NotNil(t, files)
	assert.Empty(t, files)

	_, err = svc.ReleaseURLs(ctx, "spam-ham", "3.0")
	require.ErrorIs(t, err, service.ErrVersionNotFound)
}

func TestAllReleaseURLs(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t)

	urls, err := svc.AllReleaseURLs(context.Background(), "spam-ham")
	require.NoError(t, err)
	require.Len(t, urls, 2)
	assert.Len(t, urls["1.0"], 1)
	require.NotNil(t, urls["2.0"])
	assert.Empty(t, urls["2.0"])
}

func TestGetRecentlyUpdated(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t)
	ctx := context.Background()

	releases, err := svc.GetRecentlyUpdated(ctx, 40)
	require.NoError(t, err)
	require.Len(t, releases, 3)
	// Newest first across all projects.
	assert.Equal(t, "2.0", releases[0].Version)
	assert.Equal(t, "eggs", releases[1].Name)
	assert.Equal(t, "1.0", releases[2].Version)

	limited, err := svc.GetRecentlyUpdated(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestGetRecentProjects(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t)

	releases, err := svc.GetRecentProjects(context.Background(), 40)
	require.NoError(t, err)
	require.Len(t, releases, 2)
	// One entry per project, newest version, ordered by project creation.
	assert.Equal(t, "eggs", releases[0].Name)
	assert.Equal(t, "Spam_Ham", releases[1].Name)
	assert.Equal(t, "2.0", releases[1].Version)
}

func TestCheckReadiness(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t)
	require.NoError(t, svc.CheckReadiness(context.Background()))
}

func TestSnapshotCaching(t *testing.T) {
	t.Parallel()
	svc, provider := newTestService(t)
	ctx := context.Background()

	for range 5 {
		_, err := svc.GetLastSerial(ctx)
		require.NoError(t, err)
	}
	// The initial load is the only provider call within the cache window.
	assert.Equal(t, 1, provider.callCount())
}

func TestStaleSnapshotServedOnRefreshFailure(t *testing.T) {
	t.Parallel()
	provider := &fakeProvider{dump: testDump()}
	svc, err := inmemory.New(context.Background(), provider,
		inmemory.WithCacheDuration(-time.Second))
	require.NoError(t, err)

	provider.setError(fmt.Errorf("dump unavailable"))

	serial, err := svc.GetLastSerial(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(42), serial)
}
