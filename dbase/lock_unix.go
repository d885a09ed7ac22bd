//go:build !windows

package dbase

import (
	"os"

	"golang.org/x/sys/unix"
)

// lockExclusive acquires an advisory exclusive flock on f's file descriptor.
// Held for the life of the reader and released by unlockExclusive.
func lockExclusive(f *os.File) error {
	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		return wrapf("dbase-lock-unix-exclusive-1", err)
	}
	return nil
}

func unlockExclusive(f *os.File) error {
	if err := unix.Flock(int(f.Fd()), unix.LOCK_UN); err != nil {
		return wrapf("dbase-lock-unix-unlock-1", err)
	}
	return nil
}
