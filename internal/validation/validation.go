// Package validation holds checks applied to user-supplied options before work starts.
package validation

import (
	"fmt"
	"os"
	"strings"
)

// ValidateReportFormat checks that format is one the report generator supports.
// An empty format means text.
func ValidateReportFormat(format string) error {
	switch strings.ToLower(format) {
	case "", "text", "json":
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s. Supported formats are 'text', 'json'", format)
	}
}

// IsValidFilePermissions checks that a rule or config file is not readable by others.
func IsValidFilePermissions(mode os.FileMode) error {
	if mode&0007 != 0 {
		return fmt.Errorf("file permissions are too permissive: %s. Recommended 0600 or 0640", mode.Perm().String())
	}
	return nil
}
