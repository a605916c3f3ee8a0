package util

import (
	"errors"
	"strings"
)

var errBadFileName = errors.New("invalid file name")

// SanitizeFileName rejects traversal patterns and flattens path
// separators so uploaded names cannot escape their directory.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", errBadFileName
	}
	replacer := strings.NewReplacer("/", "_", "\\", "_")
	s := replacer.Replace(strings.TrimSpace(name))
	if s == "" {
		return "", errBadFileName
	}
	return s, nil
}
