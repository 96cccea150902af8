// SPDX-License-Identifier: MPL-2.0

package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// marker precedes appended lines so a reader of the profile knows where the
// entry came from.
const marker = "# added by envup"

// ExportLine builds the PATH-export line for dir, suitable for POSIX shell
// profiles.
func ExportLine(dir string) string {
	return fmt.Sprintf(`export PATH="%s:$PATH"`, dir)
}

// DefaultFile picks the profile file for the user's shell: ~/.zshrc for zsh,
// ~/.bashrc for bash, ~/.profile otherwise.
func DefaultFile() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	switch filepath.Base(os.Getenv("SHELL")) {
	case "zsh":
		return filepath.Join(home, ".zshrc"), nil
	case "bash":
		return filepath.Join(home, ".bashrc"), nil
	default:
		return filepath.Join(home, ".profile"), nil
	}
}

// HasLine reports whether line is already present in the file at path.
// A missing file reports false. Matching ignores surrounding whitespace.
func HasLine(path, line string) (bool, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read profile %q: %w", path, err)
	}
	return containsLine(string(content), strings.TrimSpace(line)), nil
}

// EnsureLine guarantees that line is present in the file at path, creating
// the file when missing. It returns true when the line was appended, false
// when it was already present. Matching ignores surrounding whitespace.
func EnsureLine(path, line string) (bool, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false, fmt.Errorf("refusing to ensure an empty line")
	}

	content, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return false, fmt.Errorf("failed to read profile %q: %w", path, err)
	}

	if containsLine(string(content), line) {
		return false, nil
	}

	entry := buildEntry(string(content), line)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return false, fmt.Errorf("failed to open profile %q: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	if _, err := f.WriteString(entry); err != nil {
		return false, fmt.Errorf("failed to append to profile %q: %w", path, err)
	}
	return true, nil
}

// containsLine reports whether content already carries line, comparing
// whole trimmed lines so a substring inside another command does not count.
func containsLine(content, line string) bool {
	for _, existing := range strings.Split(content, "\n") {
		if strings.TrimSpace(existing) == line {
			return true
		}
	}
	return false
}

// buildEntry formats the appended block: a separating newline when the file
// does not end with one, a blank line, the marker, and the line itself.
func buildEntry(content, line string) string {
	var b strings.Builder
	if content != "" && !strings.HasSuffix(content, "\n") {
		b.WriteString("\n")
	}
	if content != "" {
		b.WriteString("\n")
	}
	b.WriteString(marker + "\n")
	b.WriteString(line + "\n")
	return b.String()
}
