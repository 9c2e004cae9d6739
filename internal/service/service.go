// Package service provides the business logic for the cheeseshop index API.
package service

import (
	"context"
	"errors"
)

var (
	// ErrProjectNotFound is returned when a project does not exist in the store
	ErrProjectNotFound = errors.New("project not found")
	// ErrVersionNotFound is returned when a version does not exist for a project
	ErrVersionNotFound = errors.New("version not found")
)

//go:generate mockgen -destination=mocks/mock_service.go -package=mocks -source=service.go PackagingService

// PackagingService defines the read-only view over the packaging store that
// the legacy endpoints consume. Version lists are ordered newest first; the
// feed queries return records in reverse chronological order.
type PackagingService interface {
	// CheckReadiness checks if the service is ready to serve requests
	CheckReadiness(ctx context.Context) error

	// GetProject returns a project by name, or ErrProjectNotFound
	GetProject(ctx context.Context, name string) (*Project, error)

	// GetProjectVersions returns the known versions of a project, newest first
	GetProjectVersions(ctx context.Context, name string) ([]string, error)

	// GetLastSerial returns the serial of the most recent store change
	GetLastSerial(ctx context.Context) (int64, error)

	// GetRecentlyUpdated returns the most recently created releases
	GetRecentlyUpdated(ctx context.Context, limit int) ([]Release, error)

	// GetRecentProjects returns the newest release of recently created projects
	GetRecentProjects(ctx context.Context, limit int) ([]Release, error)

	// ReleaseData returns the metadata of one release, or ErrVersionNotFound
	ReleaseData(ctx context.Context, name, version string) (*ReleaseInfo, error)

	// ReleaseURLs returns the distribution files of one release
	ReleaseURLs(ctx context.Context, name, version string) ([]ReleaseFile, error)

	// AllReleaseURLs returns the distribution files of every release of a
	// project, keyed by version
	AllReleaseURLs(ctx context.Context, name string) (map[string][]ReleaseFile, error)
}
