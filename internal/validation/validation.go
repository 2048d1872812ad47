// Package validation checks command-line arguments before any work starts.
package validation

import (
	"fmt"
	"os"
	"strings"

	"fjacquet/spend-insights/internal/dateutils"
)

// IsValidMonth accepts an empty filter or a YYYY-MM month key.
func IsValidMonth(month string) error {
	if month == "" || dateutils.IsMonthKey(month) {
		return nil
	}
	return fmt.Errorf("invalid month %q: expected YYYY-MM", month)
}

// IsValidOutputFormat checks if the given format is supported.
func IsValidOutputFormat(format string) error {
	switch strings.ToLower(format) {
	case "", "text", "json", "yaml", "yml":
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s. Supported formats are 'text', 'json', 'yaml'", format)
	}
}

// IsValidExportPath rejects an export target that is an existing directory.
func IsValidExportPath(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("error checking path %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("export path %s is a directory", path)
	}
	return nil
}

// IsValidFilePermissions checks if the given file mode is valid for sensitive files.
func IsValidFilePermissions(mode os.FileMode) error {
	// Config files may carry the API key.
	if mode&0007 != 0 {
		return fmt.Errorf("file permissions are too permissive: %s. Recommended 0600 or 0640", mode.String())
	}
	return nil
}
