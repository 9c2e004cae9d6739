package legacy_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/cheeseshop/cheeseshop/internal/api/legacy"
	"github.com/cheeseshop/cheeseshop/internal/service"
	"github.com/cheeseshop/cheeseshop/internal/service/mocks"
)

const rssHeader = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE rss PUBLIC "-//Netscape Communications//DTD RSS 0.91//EN" "http://my.netscape.com/publish/formats/rss-0.91.dtd">
<rss version="0.91">
 <channel>
  <title>PyPI Recent Package Updates</title>
  <link>https://pypi.example.org/</link>
`

func rssItemXML(title, link, description, pubDate string) string {
	return fmt.Sprintf(`  <item>
    <title>%s</title>
    <link>%s</link>
    <guid>%s</guid>
    <description>%s</description>
    <pubDate>%s</pubDate>
  </item>
`, title, link, link, description, pubDate)
}

func TestRSS(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	epoch := time.Unix(0, 0).UTC()

	mockSvc := mocks.NewMockPackagingService(ctrl)
	mockSvc.EXPECT().GetRecentlyUpdated(gomock.Any(), 40).
		Return([]service.Release{
			{Name: "spam", Version: "1.0", Summary: "spam spam spam", Created: epoch},
			{Name: "eggs", Version: "2.1", Summary: "eggs & ham <fresh>", Created: epoch.Add(time.Hour)},
		}, nil)

	router := legacy.Router(mockSvc, newTestSite(t))

	req, err := http.NewRequest("GET", "/rss", nil)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/xml; charset=UTF-8", rr.Header().Get("Content-Type"))

	want := rssHeader +
		"  <description>Recent package updates at PyPI</description>\n" +
		"  <language>en</language>\n" +
		rssItemXML("spam 1.0", "https://pypi.example.org/project/spam/1.0/",
			"spam spam spam", "01 Jan 1970 00:00:00 GMT") +
		rssItemXML("eggs 2.1", "https://pypi.example.org/project/eggs/2.1/",
			"eggs &amp; ham &lt;fresh&gt;", "01 Jan 1970 01:00:00 GMT") +
		" </channel>\n</rss>\n"
	assert.Equal(t, want, rr.Body.String())
}

func TestPackagesRSS(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	epoch := time.Unix(0, 0).UTC()

	mockSvc := mocks.NewMockPackagingService(ctrl)
	mockSvc.EXPECT().GetRecentProjects(gomock.Any(), 40).
		Return([]service.Release{
			{Name: "spam", Version: "1.0", Summary: "spam spam spam", Created: epoch},
		}, nil)

	router := legacy.Router(mockSvc, newTestSite(t))

	req, err := http.NewRequest("GET", "/packages/rss", nil)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	// New-package items link to the project page, not a version page.
	want := rssHeader +
		"  <description>Recent new projects at PyPI</description>\n" +
		"  <language>en</language>\n" +
		rssItemXML("spam 1.0", "https://pypi.example.org/project/spam/",
			"spam spam spam", "01 Jan 1970 00:00:00 GMT") +
		" </channel>\n</rss>\n"
	assert.Equal(t, want, rr.Body.String())
}

func TestRSSEmptyFeed(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockSvc := mocks.NewMockPackagingService(ctrl)
	mockSvc.EXPECT().GetRecentlyUpdated(gomock.Any(), 40).
		Return([]service.Release{}, nil)

	router := legacy.Router(mockSvc, newTestSite(t))

	req, err := http.NewRequest("GET", "/pypi?:action=rss", nil)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	want := rssHeader +
		"  <description>Recent package updates at PyPI</description>\n" +
		"  <language>en</language>\n" +
		" </channel>\n</rss>\n"
	assert.Equal(t, want, rr.Body.String())
}

func TestRSSStoreFailure(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockSvc := mocks.NewMockPackagingService(ctrl)
	mockSvc.EXPECT().GetRecentlyUpdated(gomock.Any(), 40).
		Return(nil, fmt.Errorf("connection refused"))

	router := legacy.Router(mockSvc, newTestSite(t))

	req, err := http.NewRequest("GET", "/rss", nil)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
