// Package utils provides small helpers shared across commands.
package utils

import (
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
)

// ExpandPath expands a leading ~ and normalizes the path. Inputs that cannot
// be expanded are returned unchanged; downstream file operations will produce
// the real error.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~") {
		expanded, err := homedir.Expand(path)
		if err == nil {
			path = expanded
		}
	}
	return filepath.Clean(path)
}
