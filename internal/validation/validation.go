// Package validation checks command-line input before any conversion starts.
package validation

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/afero"
)

// ErrUsage marks errors caused by how the command was invoked.
var ErrUsage = errors.New("usage error")

// ValidateArgs requires exactly one positional argument, the input directory.
func ValidateArgs(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: expected exactly one argument, the input directory, got %d", ErrUsage, len(args))
	}
	if strings.TrimSpace(args[0]) == "" {
		return fmt.Errorf("%w: input directory must not be empty", ErrUsage)
	}
	return nil
}

// IsDirectory checks that path exists on afs and is a directory.
func IsDirectory(afs afero.Fs, path string) error {
	info, err := afs.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("%w: path does not exist: %s", ErrUsage, path)
	}
	if err != nil {
		return fmt.Errorf("error checking path %s: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: path is not a directory: %s", ErrUsage, path)
	}
	return nil
}

// IsValidReportFormat checks if the given report format is supported.
func IsValidReportFormat(format string) error {
	switch strings.ToLower(format) {
	case "json", "yaml", "yml":
		return nil
	default:
		return fmt.Errorf("unsupported report format: %s. Supported formats are 'json', 'yaml'", format)
	}
}
