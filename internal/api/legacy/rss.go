package legacy

import (
	"bytes"
	"context"
	_ "embed"
	"net/http"
	"strings"
	"text/template"
	"time"

	"github.com/cheeseshop/cheeseshop/internal/api/common"
	"github.com/cheeseshop/cheeseshop/internal/service"
	"github.com/cheeseshop/cheeseshop/pkg/logger"
)

// rssItemCount is how many records each feed requests from the store. The
// legacy feeds have always served 40 items; this is not configurable.
const rssItemCount = 40

//go:embed templates/rss.xml
var rssTemplateXML string

// rssTemplate renders the RSS 0.91 document. Interpolated fields go through
// the xml escape func since text/template does no escaping of its own.
var rssTemplate = template.Must(
	template.New("legacy/rss.xml").Funcs(template.FuncMap{
		"xml":     escapeXML,
		"pubDate": formatPubDate,
	}).Parse(rssTemplateXML),
)

// rssContext is the binding rendered into the RSS template.
type rssContext struct {
	Site        rssSite
	Description string
	Releases    []rssItem
}

type rssSite struct {
	Name string
	URL  string
}

type rssItem struct {
	Name    string
	Version string
	Summary string
	URL     string
	Created time.Time
}

// rss handles GET /rss and the `rss` action
//
// It serves the recent-updates feed: the latest releases across all
// projects, with version-qualified item links.
func (routes *Routes) rss(w http.ResponseWriter, r *http.Request) {
	routes.serveRSS(w, r, "package updates",
		routes.service.GetRecentlyUpdated,
		func(rel service.Release) string {
			return routes.site.Release(rel.Name, rel.Version)
		},
	)
}

// packagesRSS handles GET /packages/rss and the `packages_rss` action
//
// It serves the new-packages feed: recently created projects, with
// project-only item links.
func (routes *Routes) packagesRSS(w http.ResponseWriter, r *http.Request) {
	routes.serveRSS(w, r, "new projects",
		routes.service.GetRecentProjects,
		func(rel service.Release) string {
			return routes.site.Project(rel.Name)
		},
	)
}

// serveRSS fetches records through the given query and renders them into
// the shared RSS 0.91 template. Items appear in the order the store returns
// them.
func (routes *Routes) serveRSS(
	w http.ResponseWriter,
	r *http.Request,
	description string,
	fetch func(ctx context.Context, limit int) ([]service.Release, error),
	itemURL func(service.Release) string,
) {
	records, err := fetch(r.Context(), rssItemCount)
	if err != nil {
		logger.Errorf("Failed to fetch feed records: %v", err)
		common.WriteErrorResponse(w, "failed to fetch feed records", http.StatusInternalServerError)
		return
	}

	feed := rssContext{
		Site:        rssSite{Name: routes.site.Name(), URL: routes.site.Root()},
		Description: description,
		Releases:    make([]rssItem, 0, len(records)),
	}
	for _, rel := range records {
		feed.Releases = append(feed.Releases, rssItem{
			Name:    rel.Name,
			Version: rel.Version,
			Summary: rel.Summary,
			URL:     itemURL(rel),
			Created: rel.Created,
		})
	}

	var buf bytes.Buffer
	if err := rssTemplate.Execute(&buf, feed); err != nil {
		logger.Errorf("Failed to render RSS template: %v", err)
		common.WriteErrorResponse(w, "failed to render feed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/xml; charset=UTF-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

var xmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

func escapeXML(s string) string {
	return xmlReplacer.Replace(s)
}

// formatPubDate renders a timestamp in the RFC-822 style form the RSS 0.91
// feed has always used.
func formatPubDate(t time.Time) string {
	return t.UTC().Format("02 Jan 2006 15:04:05") + " GMT"
}
