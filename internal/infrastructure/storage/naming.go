package storage

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

var nonAlnum = regexp.MustCompile(`[^A-Za-z0-9]+`)

// SanitizeBaseName drops the extension from a client file name and collapses
// every run of characters outside [A-Za-z0-9] into one underscore.
func SanitizeBaseName(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, `\`, "/"))
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "." || base == "/" {
		base = ""
	}

	clean := nonAlnum.ReplaceAllString(base, "_")
	if clean == "" || clean == "_" {
		return "image"
	}
	return clean
}

// ObjectKey builds public/<unix-millis>_<sanitized>.jpg.
func ObjectKey(originalName string, now time.Time) string {
	return fmt.Sprintf("public/%d_%s%s", now.UnixMilli(), SanitizeBaseName(originalName), OutputExtension)
}
