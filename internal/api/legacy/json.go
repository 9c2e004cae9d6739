package legacy

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"slices"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/cheeseshop/cheeseshop/internal/api/common"
	"github.com/cheeseshop/cheeseshop/internal/service"
	"github.com/cheeseshop/cheeseshop/pkg/logger"
)

// callbackPattern is the conservative identifier grammar accepted for JSONP
// callback names.
var callbackPattern = regexp.MustCompile(`^[A-Za-z0-9_.]+$`)

// projectJSONResponse is the body of the legacy JSON project API.
type projectJSONResponse struct {
	Info     *service.ReleaseInfo             `json:"info"`
	Releases map[string][]service.ReleaseFile `json:"releases"`
	URLs     []service.ReleaseFile            `json:"urls"`
}

// projectJSON handles GET /pypi/{project}/json and
// GET /pypi/{project}/{version}/json
//
// Without a version segment the most recent version is used. The optional
// `callback` query parameter wraps the body in a JSONP call after strict
// validation of the callback name.
func (routes *Routes) projectJSON(w http.ResponseWriter, r *http.Request) {
	// Callback validation happens before any backend work; a malformed
	// callback is a client error no matter what the store holds.
	callback := r.URL.Query().Get("callback")
	if callback != "" && !callbackPattern.MatchString(callback) {
		common.WriteErrorResponse(w, "invalid JSONP callback name", http.StatusBadRequest)
		return
	}

	name, err := common.GetAndValidateURLParam(r, "project")
	if err != nil {
		common.WriteErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}
	requestedVersion := chi.URLParam(r, "version")

	ctx := r.Context()

	if _, err := routes.service.GetProject(ctx, name); err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			common.WriteErrorResponse(w, fmt.Sprintf("project %q not found", name), http.StatusNotFound)
			return
		}
		logger.Errorf("Failed to get project %q: %v", name, err)
		common.WriteErrorResponse(w, "failed to get project", http.StatusInternalServerError)
		return
	}

	versions, err := routes.service.GetProjectVersions(ctx, name)
	if err != nil {
		logger.Errorf("Failed to get versions of %q: %v", name, err)
		common.WriteErrorResponse(w, "failed to get project versions", http.StatusInternalServerError)
		return
	}
	if len(versions) == 0 {
		common.WriteErrorResponse(w, fmt.Sprintf("project %q has no releases", name), http.StatusNotFound)
		return
	}

	version := requestedVersion
	if version == "" {
		// Version lists are ordered newest first.
		version = versions[0]
	} else if !slices.Contains(versions, version) {
		common.WriteErrorResponse(w,
			fmt.Sprintf("version %q of project %q not found", version, name), http.StatusNotFound)
		return
	}

	info, err := routes.service.ReleaseData(ctx, name, version)
	if err != nil {
		routes.writeStoreError(w, name, version, err)
		return
	}

	urls, err := routes.service.ReleaseURLs(ctx, name, version)
	if err != nil {
		routes.writeStoreError(w, name, version, err)
		return
	}

	releases, err := routes.service.AllReleaseURLs(ctx, name)
	if err != nil {
		routes.writeStoreError(w, name, version, err)
		return
	}

	serial, err := routes.service.GetLastSerial(ctx)
	if err != nil {
		logger.Errorf("Failed to get last serial: %v", err)
		common.WriteErrorResponse(w, "failed to get last serial", http.StatusInternalServerError)
		return
	}

	body, err := json.Marshal(projectJSONResponse{
		Info:     info,
		Releases: releases,
		URLs:     urls,
	})
	if err != nil {
		logger.Errorf("Failed to encode project JSON for %q: %v", name, err)
		common.WriteErrorResponse(w, "failed to encode response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("X-PyPI-Last-Serial", strconv.FormatInt(serial, 10))

	if callback != "" {
		w.Header().Set("Content-Type", "application/javascript; charset=UTF-8")
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, "/**/ %s(%s);", callback, body)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (routes *Routes) writeStoreError(w http.ResponseWriter, name, version string, err error) {
	if errors.Is(err, service.ErrProjectNotFound) || errors.Is(err, service.ErrVersionNotFound) {
		common.WriteErrorResponse(w,
			fmt.Sprintf("version %q of project %q not found", version, name), http.StatusNotFound)
		return
	}
	logger.Errorf("Packaging store error for %s %s: %v", name, version, err)
	common.WriteErrorResponse(w, "packaging store error", http.StatusInternalServerError)
}
