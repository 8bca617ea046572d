//go:build unix

package filesystem

import (
	"os"

	"golang.org/x/sys/unix"
)

// Lstat describes path without following a final symbolic link.
func Lstat(path string) (Stat, error) {
	var st unix.Stat_t
	if err := unix.Lstat(path, &st); err != nil {
		return Stat{}, &os.PathError{Op: "lstat", Path: path, Err: err}
	}
	return Stat{
		Mode:   uint32(st.Mode),
		Inode:  uint64(st.Ino),
		Device: uint64(st.Dev),
	}, nil
}

// SameFile reports whether two stats describe the same inode on
// the same device.
func SameFile(a, b Stat) bool {
	return a.Inode == b.Inode && a.Device == b.Device
}
