package scanner

import (
	"io/fs"
	"strings"

	"github.com/charlievieth/fastwalk"
	"github.com/lumipallolabs/incoming/internal/seenset"
)

// Scanner lists a directory's regular files and classifies each one as known
// or new against a bounded seen set. It owns the set exclusively; nothing else
// mutates it, so no locking is needed.
type Scanner struct {
	seen *seenset.Set
}

// New creates a scanner backed by the given seen set.
func New(seen *seenset.Set) *Scanner {
	return &Scanner{seen: seen}
}

// Scan lists dir and returns the full paths of regular files not seen before,
// in directory-listing order. Each returned file is marked seen. Hidden
// entries, subdirectories and non-regular files are skipped, as are entries
// that vanish between listing and metadata resolution.
func (s *Scanner) Scan(dir string) ([]string, error) {
	var found []string
	err := s.walk(dir, func(path string) {
		found = append(found, path)
	})
	return found, err
}

// Seed records dir's current regular files in the seen set without reporting
// them, establishing the "new since watching began" baseline. It returns the
// number of identities recorded.
func (s *Scanner) Seed(dir string) (int, error) {
	count := 0
	err := s.walk(dir, func(string) {
		count++
	})
	return count, err
}

// walk performs a single-level classification pass over dir, calling report
// with the joined path of each newly seen regular file.
func (s *Scanner) walk(dir string, report func(path string)) error {
	// A single worker keeps the callback sequential: the seen set has one
	// owner and directory-listing order is preserved.
	conf := &fastwalk.Config{
		Follow:     false,
		NumWorkers: 1,
	}

	return fastwalk.Walk(conf, dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err // the directory itself is unreadable
			}
			return nil // entry vanished mid-walk
		}
		if path == dir {
			return nil
		}

		if strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		// Single directory level only
		if d.IsDir() {
			return fs.SkipDir
		}

		// Symlinks, devices, sockets etc. are never reported
		if !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil // deleted between listing and stat
		}

		id := fileID(path, info)
		if s.seen.Contains(id) {
			return nil
		}
		s.seen.Insert(id)
		report(path)
		return nil
	})
}

// fallbackID derives an identity from metadata alone, for platforms or
// filesystems where a native file identifier is unavailable. Weaker than an
// inode: a rewrite that preserves the name and timestamp goes undetected.
func fallbackID(info fs.FileInfo) seenset.ID {
	// FNV-1a over the name
	var h uint64 = 14695981039346656037
	for i := 0; i < len(info.Name()); i++ {
		h ^= uint64(info.Name()[i])
		h *= 1099511628211
	}
	return seenset.ID{
		Device: uint64(info.ModTime().UnixNano()),
		Inode:  h,
	}
}
