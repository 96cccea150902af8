// SPDX-License-Identifier: MPL-2.0

package toolchain

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// ErrNotLocated is returned by a single strategy that could not find the
// tool. The resolver moves on to the next strategy; only when every strategy
// fails does resolution become ErrToolUnavailable.
var ErrNotLocated = errors.New("tool not located")

// Strategy is one way of producing an absolute path to the tool executable.
type Strategy interface {
	// Name identifies the strategy in logs and reports.
	Name() string
	// Resolve returns the absolute path to the tool executable, or
	// ErrNotLocated when this strategy cannot find it.
	Resolve(ctx context.Context) (string, error)
}

// PathStrategy locates the tool on the process PATH.
type PathStrategy struct {
	// Tool is the bare executable name (e.g. "uv").
	Tool string
}

// Name returns the strategy name.
func (s *PathStrategy) Name() string {
	return "locate-in-PATH"
}

// Resolve looks the tool up on PATH.
func (s *PathStrategy) Resolve(ctx context.Context) (string, error) {
	path, err := exec.LookPath(s.Tool)
	if err != nil {
		return "", fmt.Errorf("%w: %q not on PATH", ErrNotLocated, s.Tool)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to absolutize %q: %w", path, err)
	}
	return abs, nil
}

// KnownDirsStrategy probes well-known install directories for the tool. These
// are the directories tool installers drop binaries into before the user's
// shell profile has been reloaded, so a fresh install is findable even when
// PATH does not yet include it.
type KnownDirsStrategy struct {
	// Tool is the bare executable name.
	Tool string
	// Dirs overrides the probed directories. Empty means DefaultInstallDirs.
	Dirs []string
}

// Name returns the strategy name.
func (s *KnownDirsStrategy) Name() string {
	return "locate-in-known-dir"
}

// Resolve probes each directory in order for an executable tool binary.
func (s *KnownDirsStrategy) Resolve(ctx context.Context) (string, error) {
	dirs := s.Dirs
	if len(dirs) == 0 {
		dirs = DefaultInstallDirs()
	}

	name := executableName(s.Tool)
	for _, dir := range dirs {
		candidate := filepath.Join(dir, name)
		info, err := os.Stat(candidate)
		if err != nil || info.IsDir() {
			continue
		}
		if !isExecutable(info) {
			continue
		}
		abs, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		return abs, nil
	}

	return "", fmt.Errorf("%w: %q not in known install dirs", ErrNotLocated, s.Tool)
}

// DefaultInstallDirs returns the well-known directories tool installers use,
// in probe order.
func DefaultInstallDirs() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}

	dirs := []string{
		filepath.Join(home, ".local", "bin"),
		filepath.Join(home, ".cargo", "bin"),
	}
	if runtime.GOOS != "windows" {
		dirs = append(dirs, "/usr/local/bin")
	}
	return dirs
}

// executableName appends the platform executable suffix to a bare tool name.
func executableName(tool string) string {
	if runtime.GOOS == "windows" && filepath.Ext(tool) == "" {
		return tool + ".exe"
	}
	return tool
}

// isExecutable reports whether the file mode carries an execute bit. Windows
// has no execute bit; existence is enough there.
func isExecutable(info os.FileInfo) bool {
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode().Perm()&0o111 != 0
}
