package rillerr

import (
	"regexp"
	"strings"
)

var (
	errorIDPattern = regexp.MustCompile(`^RILL-[LPRC]\d{3}$`)
	semverPattern  = regexp.MustCompile(`^\d+\.\d+\.\d+$`)
)

// HelpURL implements spec.md §6's help-URL helper: given an errorId and a
// semver version, it returns the documentation URL for that error, or the
// empty string if either input is malformed.
func HelpURL(errorID, version string) string {
	if !errorIDPattern.MatchString(errorID) {
		return ""
	}
	if !semverPattern.MatchString(version) {
		return ""
	}
	return "https://github.com/rcrsr/rill/blob/v" + version + "/docs/ref-errors.md#" + strings.ToLower(errorID)
}
