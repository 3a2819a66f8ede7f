//go:build !linux && !darwin && !freebsd && !windows

package core

import "math"

// FreeSpace is not measured on this platform; the space check always passes.
func FreeSpace(dir string) (uint64, error) {
	return math.MaxUint64, nil
}
