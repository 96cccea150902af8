// SPDX-License-Identifier: MPL-2.0

package venv

import (
	"os"
	"path/filepath"
	"runtime"
	"sort"
)

// DefaultDir is the environment directory relative to the working directory.
const DefaultDir = ".venv"

// Env describes a virtual environment rooted at Dir. The zero value is not
// usable; construct with New.
type Env struct {
	// Dir is the environment root.
	Dir string
}

// New creates an Env for dir. Relative dirs stay relative so the caller's
// working directory keeps owning them.
func New(dir string) Env {
	if dir == "" {
		dir = DefaultDir
	}
	return Env{Dir: dir}
}

// BinDir returns the environment's executable directory: "bin" on Unix,
// "Scripts" on Windows.
func (e Env) BinDir() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(e.Dir, "Scripts")
	}
	return filepath.Join(e.Dir, "bin")
}

// Python returns the path of the environment's interpreter executable.
func (e Env) Python() string {
	name := "python"
	if runtime.GOOS == "windows" {
		name = "python.exe"
	}
	return filepath.Join(e.BinDir(), name)
}

// Exists reports whether the environment has been created. Presence of
// pyvenv.cfg is the venv marker shared by every tool that creates one.
func (e Env) Exists() bool {
	info, err := os.Stat(filepath.Join(e.Dir, "pyvenv.cfg"))
	return err == nil && !info.IsDir()
}

// ListBin returns the sorted names of entries in the executable directory.
// Used only for diagnostics; a missing directory yields an empty list, never
// an error.
func (e Env) ListBin() []string {
	entries, err := os.ReadDir(e.BinDir())
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names
}

// AbsDir returns the absolute environment root.
func (e Env) AbsDir() (string, error) {
	return filepath.Abs(e.Dir)
}
