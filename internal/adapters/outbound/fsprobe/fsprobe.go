// Package fsprobe answers existence questions against the real filesystem.
package fsprobe

import "os"

// OSProber implements venv.Prober with os.Stat. Errors of any kind,
// including permission errors and symlink loops, mean "does not exist".
type OSProber struct{}

func New() OSProber { return OSProber{} }

func (OSProber) IsDir(path string) bool {
	if path == "" {
		return false
	}
	st, err := os.Stat(path)
	return err == nil && st.IsDir()
}

func (OSProber) IsFile(path string) bool {
	if path == "" {
		return false
	}
	st, err := os.Stat(path)
	return err == nil && !st.IsDir()
}
