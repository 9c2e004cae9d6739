package legacy_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/cheeseshop/cheeseshop/internal/api/legacy"
	"github.com/cheeseshop/cheeseshop/internal/service"
	"github.com/cheeseshop/cheeseshop/internal/service/mocks"
)

func testReleaseFile(version string) service.ReleaseFile {
	return service.ReleaseFile{
		Filename:      fmt.Sprintf("spam-%s.tar.gz", version),
		URL:           fmt.Sprintf("https://files.example.org/spam-%s.tar.gz", version),
		PythonVersion: "source",
		PackageType:   "sdist",
		MD5Digest:     "0cc175b9c0f1b6a831c399e269772661",
		Size:          1234,
		HasSig:        false,
		UploadTime:    service.NewTimestamp(time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC)),
	}
}

func TestProjectJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		version     string
		callback    string
		wantVersion string
	}{
		{
			name:        "latest version no callback",
			wantVersion: "2.0",
		},
		{
			name:        "explicit version no callback",
			version:     "1.0",
			wantVersion: "1.0",
		},
		{
			name:        "latest version with callback",
			callback:    "yes",
			wantVersion: "2.0",
		},
		{
			name:        "explicit version with callback",
			version:     "1.0",
			callback:    "yes",
			wantVersion: "1.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			t.Cleanup(ctrl.Finish)

			mockSvc := mocks.NewMockPackagingService(ctrl)
			mockSvc.EXPECT().GetProject(gomock.Any(), "spam").
				Return(&service.Project{Name: "spam"}, nil)
			mockSvc.EXPECT().GetProjectVersions(gomock.Any(), "spam").
				Return([]string{"2.0", "1.0"}, nil)
			mockSvc.EXPECT().ReleaseData(gomock.Any(), "spam", tt.wantVersion).
				Return(&service.ReleaseInfo{
					Name:    "spam",
					Version: tt.wantVersion,
					Summary: "spam spam spam",
				}, nil)
			mockSvc.EXPECT().ReleaseURLs(gomock.Any(), "spam", tt.wantVersion).
				Return([]service.ReleaseFile{testReleaseFile(tt.wantVersion)}, nil)
			mockSvc.EXPECT().AllReleaseURLs(gomock.Any(), "spam").
				Return(map[string][]service.ReleaseFile{
					"2.0": {testReleaseFile("2.0")},
					"1.0": {testReleaseFile("1.0")},
				}, nil)
			mockSvc.EXPECT().GetLastSerial(gomock.Any()).Return(int64(42), nil)

			router := legacy.Router(mockSvc, newTestSite(t))

			path := "/pypi/spam/json"
			if tt.version != "" {
				path = "/pypi/spam/" + tt.version + "/json"
			}
			if tt.callback != "" {
				path += "?callback=" + tt.callback
			}

			req, err := http.NewRequest("GET", path, nil)
			require.NoError(t, err)

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			require.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, "42", rr.Header().Get("X-PyPI-Last-Serial"))

			body := rr.Body.String()
			if tt.callback != "" {
				assert.Equal(t, "application/javascript; charset=UTF-8", rr.Header().Get("Content-Type"))
				require.True(t, strings.HasPrefix(body, "/**/ "+tt.callback+"("))
				require.True(t, strings.HasSuffix(body, ");"))
				body = strings.TrimSuffix(strings.TrimPrefix(body, "/**/ "+tt.callback+"("), ");")
			} else {
				assert.Equal(t, "application/json; charset=UTF-8", rr.Header().Get("Content-Type"))
			}

			var resp struct {
				Info     service.ReleaseInfo              `json:"info"`
				Releases map[string][]service.ReleaseFile `json:"releases"`
				URLs     []service.ReleaseFile            `json:"urls"`
			}
			require.NoError(t, json.Unmarshal([]byte(body), &resp))

			assert.Equal(t, "spam", resp.Info.Name)
			assert.Equal(t, tt.wantVersion, resp.Info.Version)
			assert.Len(t, resp.Releases, 2)
			require.Len(t, resp.URLs, 1)
			assert.Equal(t, "spam-"+tt.wantVersion+".tar.gz", resp.URLs[0].Filename)

			// Upload times use the second-resolution ISO-8601 form without
			// a timezone suffix.
			assert.Contains(t, body, `"upload_time":"2019-01-01T00:00:00"`)
		})
	}
}

func TestProjectJSONInvalidCallback(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	// The callback is rejected before the store is ever consulted, so no
	// expectations are registered on the mock.
	mockSvc := mocks.NewMockPackagingService(ctrl)
	router := legacy.Router(mockSvc, newTestSite(t))

	req, err := http.NewRequest("GET", "/pypi/spam/json?callback="+url.QueryEscape("quite invalid"), nil)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestProjectJSONErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		path       string
		setupMock  func(m *mocks.MockPackagingService)
		wantStatus int
	}{
		{
			name: "unknown project",
			path: "/pypi/spam/json",
			setupMock: func(m *mocks.MockPackagingService) {
				m.EXPECT().GetProject(gomock.Any(), "spam").
					Return(nil, service.ErrProjectNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name: "project without releases",
			path: "/pypi/spam/json",
			setupMock: func(m *mocks.MockPackagingService) {
				m.EXPECT().GetProject(gomock.Any(), "spam").
					Return(&service.Project{Name: "spam"}, nil)
				m.EXPECT().GetProjectVersions(gomock.Any(), "spam").
					Return(nil, nil)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name: "unknown version",
			path: "/pypi/spam/3.0/json",
			setupMock: func(m *mocks.MockPackagingService) {
				m.EXPECT().GetProject(gomock.Any(), "spam").
					Return(&service.Project{Name: "spam"}, nil)
				m.EXPECT().GetProjectVersions(gomock.Any(), "spam").
					Return([]string{"2.0", "1.0"}, nil)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name: "store failure",
			path: "/pypi/spam/json",
			setupMock: func(m *mocks.MockPackagingService) {
				m.EXPECT().GetProject(gomock.Any(), "spam").
					Return(nil, fmt.Errorf("connection refused"))
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			t.Cleanup(ctrl.Finish)

			mockSvc := mocks.NewMockPackagingService(ctrl)
			tt.setupMock(mockSvc)

			router := legacy.Router(mockSvc, newTestSite(t))

			req, err := http.NewRequest("GET", tt.path, nil)
			require.NoError(t, err)

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}
