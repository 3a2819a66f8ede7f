//go:build linux || darwin || freebsd

package core

import (
	"golang.org/x/sys/unix"
)

// FreeSpace returns the bytes available to an unprivileged user on the filesystem holding dir.
func FreeSpace(dir string) (uint64, error) {
	var stat unix.Statfs_t
	if err := unix.Statfs(dir, &stat); err != nil {
		return 0, err
	}
	return uint64(stat.Bavail) * uint64(stat.Bsize), nil
}
