package service

import (
	"fmt"
	"strings"
	"time"
)

// isoTimeLayout is the timestamp form used by the legacy JSON API. It is
// ISO-8601 without a zone suffix; all store timestamps are UTC.
const isoTimeLayout = "2006-01-02T15:04:05"

// Timestamp is a time.Time that serializes to ISO-8601 in JSON.
type Timestamp time.Time

// NewTimestamp returns t as a Timestamp, normalized to UTC.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp(t.UTC())
}

// Time returns the underlying time.Time.
func (t Timestamp) Time() time.Time {
	return time.Time(t)
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Time(t).UTC().Format(isoTimeLayout) + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler. It accepts the legacy ISO-8601
// form as well as RFC 3339.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		*t = Timestamp(time.Time{})
		return nil
	}
	for _, layout := range []string{isoTimeLayout, time.RFC3339, "2006-01-02"} {
		if parsed, err := time.Parse(layout, s); err == nil {
			*t = Timestamp(parsed.UTC())
			return nil
		}
	}
	return fmt.Errorf("invalid timestamp %q", s)
}

// Project is a named project in the packaging store.
type Project struct {
	Name    string    `json:"name"`
	Created time.Time `json:"created"`
}

// Release is one released version of a project, as surfaced by the recency
// feeds.
type Release struct {
	Name    string    `json:"name"`
	Version string    `json:"version"`
	Summary string    `json:"summary"`
	Created time.Time `json:"created"`
}

// ReleaseInfo is the metadata block of one release, the "info" mapping of
// the legacy JSON API.
type ReleaseInfo struct {
	Name            string   `json:"name"`
	Version         string   `json:"version"`
	Summary         string   `json:"summary"`
	Description     string   `json:"description"`
	Author          string   `json:"author"`
	AuthorEmail     string   `json:"author_email"`
	Maintainer      string   `json:"maintainer"`
	MaintainerEmail string   `json:"maintainer_email"`
	License         string   `json:"license"`
	Keywords        string   `json:"keywords"`
	Platform        string   `json:"platform"`
	HomePage        string   `json:"home_page"`
	DownloadURL     string   `json:"download_url"`
	RequiresPython  string   `json:"requires_python"`
	Classifiers     []string `json:"classifiers"`
}

// ReleaseFile describes one uploaded distribution file of a release.
type ReleaseFile struct {
	Filename      string    `json:"filename"`
	URL           string    `json:"url"`
	PythonVersion string    `json:"python_version"`
	PackageType   string    `json:"packagetype"`
	MD5Digest     string    `json:"md5_digest"`
	Size          int64     `json:"size"`
	HasSig        bool      `json:"has_sig"`
	CommentText   string    `json:"comment_text"`
	UploadTime    Timestamp `json:"upload_time"`
}
