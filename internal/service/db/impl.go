// Package db provides a database-backed implementation of the
// PackagingService interface.
package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cheeseshop/cheeseshop/internal/db/sqlc"
	"github.com/cheeseshop/cheeseshop/internal/service"
)

// pkgSvc implements the PackagingService interface over Postgres.
type pkgSvc struct {
	pool    *pgxpool.Pool
	queries *sqlc.Queries
}

var _ service.PackagingService = (*pkgSvc)(nil)

// New creates a database-backed packaging service with the given pgx pool.
// The caller is responsible for closing the pool when it is done.
func New(pool *pgxpool.Pool) (service.PackagingService, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgx pool is required")
	}
	return &pkgSvc{
		pool:    pool,
		queries: sqlc.New(pool),
	}, nil
}

// CheckReadiness implements PackagingService.CheckReadiness
func (s *pkgSvc) CheckReadiness(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return fmt.Errorf("database not reachable: %w", err)
	}
	return nil
}

// GetProject implements PackagingService.GetProject
func (s *pkgSvc) GetProject(ctx context.Context, name string) (*service.Project, error) {
	row, err := s.queries.GetProjectByName(ctx, service.NormalizeProjectName(name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, service.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to query project %q: %w", name, err)
	}
	return &service.Project{
		Name:    row.Name,
		Created: row.Created,
	}, nil
}

// GetProjectVersions implements PackagingService.GetProjectVersions
func (s *pkgSvc) GetProjectVersions(ctx context.Context, name string) ([]string, error) {
	versions, err := s.queries.ListProjectVersions(ctx, service.NormalizeProjectName(name))
	if err != nil {
		return nil, fmt.Errorf("failed to query versions of %q: %w", name, err)
	}
	return versions, nil
}

// GetLastSerial implements PackagingService.GetLastSerial
func (s *pkgSvc) GetLastSerial(ctx context.Context) (int64, error) {
	serial, err := s.queries.GetLastSerial(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to query last serial: %w", err)
	}
	return serial, nil
}

// GetRecentlyUpdated implements PackagingService.GetRecentlyUpdated
func (s *pkgSvc) GetRecentlyUpdated(ctx context.Context, limit int) ([]service.Release, error) {
	rows, err := s.queries.ListRecentReleases(ctx, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to query recent releases: %w", err)
	}

	releases := make([]service.Release, 0, len(rows))
	for _, row := range rows {
		releases = append(releases, service.Release{
			Name:    row.Name,
			Version: row.Version,
			Summary: row.Summary,
			Created: row.Created,
		})
	}
	return releases, nil
}

// GetRecentProjects implements PackagingService.GetRecentProjects
func (s *pkgSvc) GetRecentProjects(ctx context.Context, limit int) ([]service.Release, error) {
	rows, err := s.queries.ListRecentProjects(ctx, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to query recent projects: %w", err)
	}

	releases := make([]service.Release, 0, len(rows))
	for _, row := range rows {
		releases = append(releases, service.Release{
			Name:    row.Name,
			Version: row.Version,
			Summary: row.Summary,
			Created: row.Created,
		})
	}
	return releases, nil
}

// ReleaseData implements PackagingService.ReleaseData
func (s *pkgSvc) ReleaseData(ctx context.Context, name, version string) (*service.ReleaseInfo, error) {
	row, err := s.queries.GetRelease(ctx, sqlc.GetReleaseParams{
		NormalizedName: service.NormalizeProjectName(name),
		Version:        version,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, service.ErrVersionNotFound
		}
		return nil, fmt.Errorf("failed to query release %s %s: %w", name, version, err)
	}

	return &service.ReleaseInfo{
		Name:            row.Name,
		Version:         row.Version,
		Summary:         row.Summary,
		Description:     row.Description,
		Author:          row.Author,
		AuthorEmail:     row.AuthorEmail,
		Maintainer:      row.Maintainer,
		MaintainerEmail: row.MaintainerEmail,
		License:         row.License,
		Keywords:        row.Keywords,
		Platform:        row.Platform,
		HomePage:        row.HomePage,
		DownloadURL:     row.DownloadUrl,
		RequiresPython:  row.RequiresPython,
		Classifiers:     row.Classifiers,
	}, nil
}

// ReleaseURLs implements PackagingService.ReleaseURLs
func (s *pkgSvc) ReleaseURLs(ctx context.Context, name, version string) ([]service.ReleaseFile, error) {
	rows, err := s.queries.ListReleaseFiles(ctx, sqlc.ListReleaseFilesParams{
		NormalizedName: service.NormalizeProjectName(name),
		Version:        version,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query files of %s %s: %w", name, version, err)
	}

	files := make([]service.ReleaseFile, 0, len(rows))
	for _, row := range rows {
		files = append(files, service.ReleaseFile{
			Filename:      row.Filename,
			URL:           row.Url,
			PythonVersion: row.PythonVersion,
			PackageType:   row.Packagetype,
			MD5Digest:     row.Md5Digest,
			Size:          row.Size,
			HasSig:        row.HasSig,
			CommentText:   row.CommentText,
			UploadTime:    service.NewTimestamp(row.UploadTime),
		})
	}
	return files, nil
}

// AllReleaseURLs implements PackagingService.AllReleaseURLs
func (s *pkgSvc) AllReleaseURLs(ctx context.Context, name string) (map[string][]service.ReleaseFile, error) {
	normalized := service.NormalizeProjectName(name)

	// Every known version appears in the result, even ones without files.
	versions, err := s.queries.ListProjectVersions(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to query versions of %q: %w", name, err)
	}
	urls := make(map[string][]service.ReleaseFile, len(versions))
	for _, v := range versions {
		urls[v] = []service.ReleaseFile{}
	}

	rows, err := s.queries.ListAllReleaseFiles(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to query all files of %q: %w", name, err)
	}

	for _, row := range rows {
		urls[row.Version] = append(urls[row.Version], service.ReleaseFile{
			Filename:      row.Filename,
			URL:           row.Url,
			PythonVersion: row.PythonVersion,
			PackageType:   row.Packagetype,
			MD5Digest:     row.Md5Digest,
			Size:          row.Size,
			HasSig:        row.HasSig,
			CommentText:   row.CommentText,
			UploadTime:    service.NewTimestamp(row.UploadTime),
		})
	}
	return urls, nil
}

// clampLimit converts a request limit to the int32 the query layer expects,
// guarding against nonsense values.
func clampLimit(limit int) int32 {
	if limit <= 0 {
		return 0
	}
	if limit > 1000 {
		return 1000
	}
	return int32(limit)
}
