//go:build windows

package dbase

import (
	"os"

	"golang.org/x/sys/windows"
)

// lockExclusive acquires an advisory exclusive lock on f for the life of
// the reader, mirroring the Unix flock behavior via LockFileEx.
func lockExclusive(f *os.File) error {
	o := &windows.Overlapped{}
	h := windows.Handle(f.Fd())
	if err := windows.LockFileEx(h, windows.LOCKFILE_EXCLUSIVE_LOCK|windows.LOCKFILE_FAIL_IMMEDIATELY, 0, 1, 0, o); err != nil {
		return wrapf("dbase-lock-windows-exclusive-1", err)
	}
	return nil
}

func unlockExclusive(f *os.File) error {
	o := &windows.Overlapped{}
	h := windows.Handle(f.Fd())
	if err := windows.UnlockFileEx(h, 0, 1, 0, o); err != nil {
		return wrapf("dbase-lock-windows-unlock-1", err)
	}
	return nil
}
