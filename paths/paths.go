// Package paths resolves conventional per-application configuration directories.
package paths

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrEmptyNamespace is returned when no namespace is given.
var ErrEmptyNamespace = errors.New("empty namespace")

// ConfigDir returns the configuration directory for namespace.
//
// $XDG_CONFIG_HOME/<namespace> is used when XDG_CONFIG_HOME is set,
// otherwise os.UserConfigDir()/<namespace>:
//   - Linux:   ~/.config/<namespace>
//   - macOS:   ~/Library/Application Support/<namespace>
//   - Windows: %AppData%\<namespace>
func ConfigDir(namespace string) (string, error) {
	if namespace == "" {
		return "", ErrEmptyNamespace
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, namespace), nil
	}

	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine user config directory: %w", err)
	}

	return filepath.Join(base, namespace), nil
}
