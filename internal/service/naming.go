// Package service provides the business logic for the cheeseshop index API.
//
// This file contains the project name normalization rules. Lookups against
// the packaging store are case-insensitive and treat runs of dot, dash and
// underscore as equivalent, matching how package indexes compare names.
package service

import (
	"regexp"
	"strings"
)

var nameSeparators = regexp.MustCompile(`[-_.]+`)

// NormalizeProjectName canonicalizes a project name for lookups: lower-cased
// with runs of separator characters collapsed to a single dash.
//
// Example:
//
//	NormalizeProjectName("My.Package__Name") returns "my-package-name"
func NormalizeProjectName(name string) string {
	return strings.ToLower(nameSeparators.ReplaceAllString(name, "-"))
}
