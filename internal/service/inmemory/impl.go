// Package inmemory provides an in-memory implementation of the
// PackagingService interface, backed by an index snapshot loaded through an
// IndexDataProvider.
package inmemory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/cheeseshop/cheeseshop/internal/service"
	"github.com/cheeseshop/cheeseshop/pkg/logger"
)

// pkgSvc implements the PackagingService interface
type pkgSvc struct {
	mu       sync.RWMutex // Protects dump, projects, lastFetch
	provider service.IndexDataProvider

	dump     *service.IndexDump
	projects map[string]*projectRecord

	lastFetch     time.Time
	cacheDuration time.Duration
}

// projectRecord is a lookup-optimized view of one dumped project. Releases
// are kept newest first.
type projectRecord struct {
	project  service.ProjectDump
	releases []service.ReleaseDump
}

var _ service.PackagingService = (*pkgSvc)(nil)

// Option is a functional option for configuring the pkgSvc
type Option func(*pkgSvc)

// WithCacheDuration sets a custom cache duration for index data
func WithCacheDuration(duration time.Duration) Option {
	return func(s *pkgSvc) {
		s.cacheDuration = duration
	}
}

// New creates a new in-memory packaging service reading from the given
// provider.
func New(ctx context.Context, provider service.IndexDataProvider, opts ...Option) (service.PackagingService, error) {
	if provider == nil {
		return nil, fmt.Errorf("index data provider is required")
	}

	s := &pkgSvc{
		provider:      provider,
		cacheDuration: 30 * time.Second,
	}

	for _, opt := range opts {
		opt(s)
	}

	// Load initial data. Failure is not fatal; the service retries on the
	// next read.
	if err := s.loadIndexData(ctx); err != nil {
		logger.Warnf("Failed to load initial index data: %v", err)
	}

	return s, nil
}

// loadIndexDataLocked loads index data using the configured provider.
// Caller must hold s.mu write lock.
func (s *pkgSvc) loadIndexDataLocked(ctx context.Context) error {
	dump, err := s.provider.GetIndexData(ctx)
	if err != nil {
		return fmt.Errorf("failed to get index data: %w", err)
	}

	projects := make(map[string]*projectRecord, len(dump.Projects))
	for _, p := range dump.Projects {
		rec := &projectRecord{
			project:  p,
			releases: append([]service.ReleaseDump(nil), p.Releases...),
		}
		// Newest release first; ties broken by version string so the order
		// is deterministic.
		sort.SliceStable(rec.releases, func(i, j int) bool {
			ci, cj := rec.releases[i].Created.Time(), rec.releases[j].Created.Time()
			if !ci.Equal(cj) {
				return ci.After(cj)
			}
			return rec.releases[i].Version > rec.releases[j].Version
		})
		projects[service.NormalizeProjectName(p.Name)] = rec
	}

	s.dump = dump
	s.projects = projects
	s.lastFetch = time.Now()

	logger.Infof("Loaded index data from %s: %d projects, serial %d",
		s.provider.GetSource(), len(projects), dump.Serial)
	return nil
}

func (s *pkgSvc) loadIndexData(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadIndexDataLocked(ctx)
}

// ensureFresh reloads the snapshot when the cache duration has elapsed or no
// data has been loaded yet.
func (s *pkgSvc) ensureFresh(ctx context.Context) error {
	s.mu.RLock()
	fresh := s.dump != nil && time.Since(s.lastFetch) < s.cacheDuration
	s.mu.RUnlock()
	if fresh {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dump != nil && time.Since(s.lastFetch) < s.cacheDuration {
		return nil
	}
	if err := s.loadIndexDataLocked(ctx); err != nil {
		// Keep serving stale data if a previous load succeeded.
		if s.dump != nil {
			logger.Warnf("Failed to refresh index data, serving stale snapshot: %v", err)
			return nil
		}
		return err
	}
	return nil
}

// lookup returns the project record for a name, or ErrProjectNotFound.
// Caller must hold s.mu read lock.
func (s *pkgSvc) lookupLocked(name string) (*projectRecord, error) {
	rec, ok := s.projects[service.NormalizeProjectName(name)]
	if !ok {
		return nil, service.ErrProjectNotFound
	}
	return rec, nil
}

// CheckReadiness implements PackagingService.CheckReadiness
func (s *pkgSvc) CheckReadiness(ctx context.Context) error {
	if err := s.ensureFresh(ctx); err != nil {
		return fmt.Errorf("index data not loaded: %w", err)
	}
	return nil
}

// GetProject implements PackagingService.GetProject
func (s *pkgSvc) GetProject(ctx context.Context, name string) (*service.Project, error) {
	if err := s.ensureFresh(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, err := s.lookupLocked(name)
	if err != nil {
		return nil, err
	}
	return &service.Project{
		Name:    rec.project.Name,
		Created: rec.project.Created.Time(),
	}, nil
}

// GetProjectVersions implements PackagingService.GetProjectVersions
func (s *pkgSvc) GetProjectVersions(ctx context.Context, name string) ([]string, error) {
	if err := s.ensureFresh(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, err := s.lookupLocked(name)
	if err != nil {
		return nil, err
	}

	versions := make([]string, 0, len(rec.releases))
	for _, rel := range rec.releases {
		versions = append(versions, rel.Version)
	}
	return versions, nil
}

// GetLastSerial implements PackagingService.GetLastSerial
func (s *pkgSvc) GetLastSerial(ctx context.Context) (int64, error) {
	if err := s.ensureFresh(ctx); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dump.Serial, nil
}

// GetRecentlyUpdated implements PackagingService.GetRecentlyUpdated
func (s *pkgSvc) GetRecentlyUpdated(ctx context.Context, limit int) ([]service.Release, error) {
	if err := s.ensureFresh(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var releases []service.Release
	for _, rec := range s.projects {
		for _, rel := range rec.releases {
			releases = append(releases, service.Release{
				Name:    rec.project.Name,
				Version: rel.Version,
				Summary: rel.Summary,
				Created: rel.Created.Time(),
			})
		}
	}
	sortReleases(releases)
	return capReleases(releases, limit), nil
}

// GetRecentProjects implements PackagingService.GetRecentProjects
func (s *pkgSvc) GetRecentProjects(ctx context.Context, limit int) ([]service.Release, error) {
	if err := s.ensureFresh(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var releases []service.Release
	for _, rec := range s.projects {
		if len(rec.releases) == 0 {
			continue
		}
		newest := rec.releases[0]
		releases = append(releases, service.Release{
			Name:    rec.project.Name,
			Version: newest.Version,
			Summary: newest.Summary,
			Created: rec.project.Created.Time(),
		})
	}
	sortReleases(releases)
	return capReleases(releases, limit), nil
}

// ReleaseData implements PackagingService.ReleaseData
func (s *pkgSvc) ReleaseData(ctx context.Context, name, version string) (*service.ReleaseInfo, error) {
	if err := s.ensureFresh(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, err := s.lookupLocked(name)
	if err != nil {
		return nil, err
	}

	for _, rel := range rec.releases {
		if rel.Version == version {
			return &service.ReleaseInfo{
				Name:            rec.project.Name,
				Version:         rel.Version,
				Summary:         rel.Summary,
				Description:     rel.Description,
				Author:          rel.Author,
				AuthorEmail:     rel.AuthorEmail,
				Maintainer:      rel.Maintainer,
				MaintainerEmail: rel.MaintainerEmail,
				License:         rel.License,
				Keywords:        rel.Keywords,
				Platform:        rel.Platform,
				HomePage:        rel.HomePage,
				DownloadURL:     rel.DownloadURL,
				RequiresPython:  rel.RequiresPython,
				Classifiers:     rel.Classifiers,
			}, nil
		}
	}
	return nil, service.ErrVersionNotFound
}

// ReleaseURLs implements PackagingService.ReleaseURLs
func (s *pkgSvc) ReleaseURLs(ctx context.Context, name, version string) ([]service.ReleaseFile, error) {
	if err := s.ensureFresh(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, err := s.lookupLocked(name)
	if err != nil {
		return nil, err
	}

	for _, rel := range rec.releases {
		if rel.Version == version {
			return copyFiles(rel.Files), nil
		}
	}
	return nil, service.ErrVersionNotFound
}

// AllReleaseURLs implements PackagingService.AllReleaseURLs
func (s *pkgSvc) AllReleaseURLs(ctx context.Context, name string) (map[string][]service.ReleaseFile, error) {
	if err := s.ensureFresh(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, err := s.lookupLocked(name)
	if err != nil {
		return nil, err
	}

	urls := make(map[string][]service.ReleaseFile, len(rec.releases))
	for _, rel := range rec.releases {
		urls[rel.Version] = copyFiles(rel.Files)
	}
	return urls, nil
}

// copyFiles returns a non-nil copy so callers can serialize the result as a
// JSON array even when a release has no files.
func copyFiles(files []service.ReleaseFile) []service.ReleaseFile {
	out := make([]service.ReleaseFile, 0, len(files))
	return append(out, files...)
}

// sortReleases orders releases newest first, with deterministic tie-breaks
// on name and version.
func sortReleases(releases []service.Release) {
	sort.SliceStable(releases, func(i, j int) bool {
		if !releases[i].Created.Equal(releases[j].Created) {
			return releases[i].Created.After(releases[j].Created)
		}
		if releases[i].Name != releases[j].Name {
			return releases[i].Name < releases[j].Name
		}
		return releases[i].Version > releases[j].Version
	})
}

func capReleases(releases []service.Release, limit int) []service.Release {
	if limit > 0 && len(releases) > limit {
		return releases[:limit]
	}
	return releases
}
