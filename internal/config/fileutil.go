package config

import (
	"io"
	"os"
)

// copyFileContents seeds a user config file from a bundled default the
// first time dynamd runs with no ~/.config/dynamd/dynamd.toml present.
// Lifted from the teacher's store.CopyFileContents bootstrap helper.
func copyFileContents(src, dst string, perm os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err = io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err = out.Sync(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
