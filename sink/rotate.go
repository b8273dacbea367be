package sink

import (
	"os"

	"golang.org/x/sys/unix"
)

// RotatePolicy decides, before each write, whether a File sink's backing
// file should be closed and reopened.
type RotatePolicy interface {
	// ShouldRotate is asked once per emit, given the path the sink was
	// opened with.
	ShouldRotate(path string) bool
}

// InodeRotatePolicy detects external log rotation (the file at path having
// been renamed out from under the sink, as logrotate and friends do) by
// comparing the inode observed at open time against the inode currently at
// path. Grounded on the same golang.org/x/sys/unix the teacher already
// imports for TTY detection — one stat syscall per emit.
type InodeRotatePolicy struct {
	ino uint64
}

// NewInodeRotatePolicy records path's current inode as the baseline.
func NewInodeRotatePolicy(path string) (*InodeRotatePolicy, error) {
	p := &InodeRotatePolicy{}
	ino, err := statIno(path)
	if err != nil {
		return nil, err
	}
	p.ino = ino
	return p, nil
}

func (p *InodeRotatePolicy) ShouldRotate(path string) bool {
	ino, err := statIno(path)
	if err != nil {
		// Path vanished or is otherwise unreadable: treat as rotated so the
		// sink attempts to recreate it.
		return true
	}
	if ino != p.ino {
		p.ino = ino
		return true
	}
	return false
}

func statIno(path string) (uint64, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return 0, &os.PathError{Op: "stat", Path: path, Err: err}
	}
	return uint64(st.Ino), nil
}

// NeverRotate never signals a rotation; used when a caller's RotatePolicy
// field is left unset.
type NeverRotate struct{}

func (NeverRotate) ShouldRotate(string) bool { return false }
