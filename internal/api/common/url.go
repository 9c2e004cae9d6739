package common

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
)

// GetAndValidateURLParam extracts, decodes, and validates a URL parameter
// from the request. Returns the decoded value or an error if invalid.
// Validation rules:
// - Must not be empty after trimming whitespace
// - Must not contain any whitespace characters
func GetAndValidateURLParam(r *http.Request, paramName string) (string, error) {
	encodedValue := chi.URLParam(r, paramName)

	decoded, err := url.PathUnescape(encodedValue)
	if err != nil {
		return "", fmt.Errorf("invalid URL encoding in %s", paramName)
	}

	if strings.TrimSpace(decoded) == "" {
		return "", fmt.Errorf("%s cannot be empty", paramName)
	}

	if strings.ContainsAny(decoded, " \t\n\r") {
		return "", fmt.Errorf("%s cannot contain whitespace", paramName)
	}

	return decoded, nil
}

// SiteURLs builds absolute URLs for site resources from the configured site
// root. Feed items and redirects go through this so every handler builds
// links the same way.
type SiteURLs struct {
	name string
	root string
}

// NewSiteURLs creates a URL builder for the given site name and root URL.
// The root must be an absolute http(s) URL; a trailing slash is added when
// missing.
func NewSiteURLs(name, root string) (*SiteURLs, error) {
	if name == "" {
		return nil, fmt.Errorf("site name is required")
	}

	parsed, err := url.Parse(root)
	if err != nil {
		return nil, fmt.Errorf("invalid site URL %q: %w", root, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("site URL %q must be absolute http(s)", root)
	}

	if !strings.HasSuffix(root, "/") {
		root += "/"
	}

	return &SiteURLs{name: name, root: root}, nil
}

// Name returns the configured site name.
func (s *SiteURLs) Name() string {
	return s.name
}

// Root returns the site root URL, always slash-terminated.
func (s *SiteURLs) Root() string {
	return s.root
}

// Project returns the URL of a project page.
func (s *SiteURLs) Project(name string) string {
	return s.root + "project/" + url.PathEscape(name) + "/"
}

// Release returns the URL of a version-qualified project page.
func (s *SiteURLs) Release(name, version string) string {
	return s.root + "project/" + url.PathEscape(name) + "/" + url.PathEscape(version) + "/"
}
