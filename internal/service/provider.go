package service

import "context"

// IndexDump is a point-in-time snapshot of the packaging store, as produced
// by an index dump file or a priming job.
type IndexDump struct {
	// Serial is the change serial the snapshot was taken at
	Serial int64 `json:"serial"`
	// Projects holds every project with its releases, in no defined order
	Projects []ProjectDump `json:"projects"`
}

// ProjectDump is one project in an index snapshot.
type ProjectDump struct {
	Name     string        `json:"name"`
	Created  Timestamp     `json:"created"`
	Releases []ReleaseDump `json:"releases"`
}

// ReleaseDump is one release of a project in an index snapshot.
type ReleaseDump struct {
	Version         string        `json:"version"`
	Summary         string        `json:"summary"`
	Description     string        `json:"description,omitempty"`
	Author          string        `json:"author,omitempty"`
	AuthorEmail     string        `json:"author_email,omitempty"`
	Maintainer      string        `json:"maintainer,omitempty"`
	MaintainerEmail string        `json:"maintainer_email,omitempty"`
	License         string        `json:"license,omitempty"`
	Keywords        string        `json:"keywords,omitempty"`
	Platform        string        `json:"platform,omitempty"`
	HomePage        string        `json:"home_page,omitempty"`
	DownloadURL     string        `json:"download_url,omitempty"`
	RequiresPython  string        `json:"requires_python,omitempty"`
	Classifiers     []string      `json:"classifiers,omitempty"`
	Created         Timestamp     `json:"created"`
	Files           []ReleaseFile `json:"files"`
}

// IndexDataProvider abstracts where an index snapshot comes from. The
// in-memory service loads and periodically refreshes its data through this
// interface.
type IndexDataProvider interface {
	// GetIndexData returns the current snapshot of the packaging store
	GetIndexData(ctx context.Context) (*IndexDump, error)

	// GetSource returns a human-readable description of the data source
	GetSource() string
}
