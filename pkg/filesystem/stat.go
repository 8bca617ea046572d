// Package filesystem provides path assertions: existence, file
// type, hard links, symbolic link targets and path equality.
package filesystem

import (
	"io/fs"
)

// File type bits of Stat.Mode, as in the S_IFMT family.
const (
	modeType    = 0xF000
	modeFIFO    = 0x1000
	modeChar    = 0x2000
	modeDir     = 0x4000
	modeBlock   = 0x6000
	modeRegular = 0x8000
	modeSymlink = 0xA000
	modeSocket  = 0xC000
	modeDoor    = 0xD000
)

// Stat is the part of an lstat result the predicates look at.
type Stat struct {
	// Mode holds the raw file type and permission bits.
	Mode   uint32
	Inode  uint64
	Device uint64

	info fs.FileInfo
}

func (s Stat) fileType() uint32 { return s.Mode & modeType }

// IsRegular reports a regular file.
func IsRegular(s Stat) bool { return s.fileType() == modeRegular }

// IsDir reports a directory.
func IsDir(s Stat) bool { return s.fileType() == modeDir }

// IsSymlink reports a symbolic link.
func IsSymlink(s Stat) bool { return s.fileType() == modeSymlink }

// IsBlockDevice reports a block device.
func IsBlockDevice(s Stat) bool { return s.fileType() == modeBlock }

// IsCharDevice reports a character device.
func IsCharDevice(s Stat) bool { return s.fileType() == modeChar }

// IsDevice reports either kind of device.
func IsDevice(s Stat) bool { return IsBlockDevice(s) || IsCharDevice(s) }

// IsFIFO reports a named pipe.
func IsFIFO(s Stat) bool { return s.fileType() == modeFIFO }

// IsDoor reports a Solaris door.
func IsDoor(s Stat) bool { return s.fileType() == modeDoor }

// IsSocket reports a Unix domain socket.
func IsSocket(s Stat) bool { return s.fileType() == modeSocket }
