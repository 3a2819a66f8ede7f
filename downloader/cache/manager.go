package cache

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"javaboot/downloader/core"
	"javaboot/logging"
)

// Manager handles the archive staged next to a runtime and the runtime directories themselves
type Manager struct{}

// NewManager creates a new Manager instance
func NewManager() *Manager {
	return &Manager{}
}

// ArchivePath is where the archive for kind is downloaded before extraction into baseDir.
func (m *Manager) ArchivePath(baseDir string, kind core.Kind) string {
	if kind == core.JDK {
		return filepath.Join(baseDir, "jdk_temp.zip")
	}
	return filepath.Join(baseDir, "java_temp.zip")
}

// PrepareBaseDirectory creates the extraction target
func (m *Manager) PrepareBaseDirectory(baseDir string) error {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return fmt.Errorf("failed to create install directory: %w", err)
	}
	return nil
}

// CleanupArchive removes the downloaded archive; a missing file is fine.
func (m *Manager) CleanupArchive(archivePath string) error {
	logging.LogDebug("🧹 Removing downloaded archive: %s", archivePath)
	if err := os.Remove(archivePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove archive: %w", err)
	}
	return nil
}

// RemoveInstallation deletes a runtime directory and then every parent that is left
// empty, stopping at stopAt (exclusive).
func (m *Manager) RemoveInstallation(runtimeDir, stopAt string) error {
	logging.LogDebug("🧹 Removing runtime directory: %s", runtimeDir)
	if err := os.RemoveAll(runtimeDir); err != nil {
		return fmt.Errorf("failed to remove runtime directory: %w", err)
	}

	stopAt = filepath.Clean(stopAt)
	parent := filepath.Dir(runtimeDir)
	for parent != filepath.Dir(parent) && parent != stopAt {
		if empty, err := m.isDirEmpty(parent); err != nil || !empty {
			break
		}
		if err := os.Remove(parent); err != nil {
			break
		}
		parent = filepath.Dir(parent)
	}
	return nil
}

func (m *Manager) isDirEmpty(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	_, err = f.Readdirnames(1)
	if err == nil {
		return false, nil // Directory not empty
	}
	if errors.Is(err, io.EOF) {
		return true, nil // Directory empty
	}
	return false, fmt.Errorf("failed to check if directory is empty: %w", err)
}
