package core

import (
	"fmt"
	"os"
	"path/filepath"
)

// Validator handles system validations
type Validator struct {
	freeSpace func(dir string) (uint64, error)
}

// NewValidator creates a new Validator instance
func NewValidator() *Validator {
	return &Validator{freeSpace: FreeSpace}
}

// NewValidatorWithProbe creates a Validator that measures free space with probe.
func NewValidatorWithProbe(probe func(dir string) (uint64, error)) *Validator {
	return &Validator{freeSpace: probe}
}

// ValidateSpace checks that directory, or its closest existing parent, has room for fileSize bytes.
// A non-positive size disables the check.
func (v *Validator) ValidateSpace(fileSize int64, directory string) error {
	if fileSize <= 0 {
		return nil
	}
	dir := existingParent(directory)
	available, err := v.freeSpace(dir)
	if err != nil {
		return fmt.Errorf("failed to read free space of %s: %w", dir, err)
	}
	if available < uint64(fileSize) {
		return fmt.Errorf("not enough space in %s: need %d bytes, %d available", dir, fileSize, available)
	}
	return nil
}

func existingParent(dir string) string {
	for {
		if _, err := os.Stat(dir); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
