//go:build windows

package scanner

import (
	"io/fs"

	"golang.org/x/sys/windows"

	"github.com/lumipallolabs/incoming/internal/seenset"
)

// fileID returns the (volume serial, file index) identity of a file, the NTFS
// equivalent of a (device, inode) pair. Go's FileInfo does not expose the file
// index, so the file is briefly opened to query it by handle.
func fileID(path string, info fs.FileInfo) seenset.ID {
	id, err := queryByHandle(path)
	if err != nil {
		return fallbackID(info)
	}
	return id
}

func queryByHandle(path string) (seenset.ID, error) {
	pathPtr, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return seenset.ID{}, err
	}

	handle, err := windows.CreateFile(
		pathPtr,
		0, // query metadata only, no read access needed
		windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE|windows.FILE_SHARE_DELETE,
		nil,
		windows.OPEN_EXISTING,
		windows.FILE_FLAG_BACKUP_SEMANTICS,
		0,
	)
	if err != nil {
		return seenset.ID{}, err
	}
	defer windows.CloseHandle(handle)

	var data windows.ByHandleFileInformation
	if err := windows.GetFileInformationByHandle(handle, &data); err != nil {
		return seenset.ID{}, err
	}

	return seenset.ID{
		Device: uint64(data.VolumeSerialNumber),
		Inode:  uint64(data.FileIndexHigh)<<32 | uint64(data.FileIndexLow),
	}, nil
}
