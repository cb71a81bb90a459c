//go:build !windows

package scanner

import (
	"io/fs"
	"syscall"

	"github.com/lumipallolabs/incoming/internal/seenset"
)

// fileID returns the (device, inode) identity of a file. The inode
// distinguishes a recreated file from the file that previously carried the
// same name, unless the filesystem recycles the inode number.
func fileID(path string, info fs.FileInfo) seenset.ID {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return fallbackID(info)
	}
	return seenset.ID{
		Device: uint64(stat.Dev),
		Inode:  uint64(stat.Ino),
	}
}
