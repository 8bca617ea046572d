//go:build !unix

package filesystem

import (
	"io/fs"
	"os"
)

// Lstat describes path without following a final symbolic link.
// Inode and device numbers are not available on this platform.
func Lstat(path string) (Stat, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return Stat{}, err
	}
	return Stat{Mode: fromFileMode(info.Mode()), info: info}, nil
}

// SameFile reports whether two stats describe the same file.
func SameFile(a, b Stat) bool {
	if a.info == nil || b.info == nil {
		return false
	}
	return os.SameFile(a.info, b.info)
}

func fromFileMode(m fs.FileMode) uint32 {
	perm := uint32(m.Perm())
	switch {
	case m&fs.ModeDir != 0:
		return modeDir | perm
	case m&fs.ModeSymlink != 0:
		return modeSymlink | perm
	case m&fs.ModeNamedPipe != 0:
		return modeFIFO | perm
	case m&fs.ModeSocket != 0:
		return modeSocket | perm
	case m&fs.ModeCharDevice != 0:
		return modeChar | perm
	case m&fs.ModeDevice != 0:
		return modeBlock | perm
	case m.IsRegular():
		return modeRegular | perm
	}
	return perm
}
