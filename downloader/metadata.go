package downloader

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"javaboot/downloader/core"
)

// MetadataFile is written at the root of every runtime javaboot installs.
const MetadataFile = ".javaboot-metadata.json"

// InstallMetadata contains metadata about an installed runtime
type InstallMetadata struct {
	Kind        core.Kind `json:"kind"`
	Runtime     string    `json:"runtime"`
	Platform    string    `json:"platform"`
	RemoteID    string    `json:"remote_id"`
	ArchiveSize int64     `json:"archive_size"`
	InstalledAt time.Time `json:"installed_at"`

	// Trust store aliases added after extraction
	Certificates []string `json:"certificates,omitempty"`
}

// SaveMetadata writes metadata to .javaboot-metadata.json in the installation directory
func SaveMetadata(installPath string, metadata InstallMetadata) error {
	metadataPath := filepath.Join(installPath, MetadataFile)

	data, err := json.MarshalIndent(metadata, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(metadataPath, data, 0644)
}

// LoadMetadata reads metadata from .javaboot-metadata.json in the installation directory.
// Runtimes installed by other tools have none; that is not an error.
func LoadMetadata(installPath string) (*InstallMetadata, error) {
	metadataPath := filepath.Join(installPath, MetadataFile)

	data, err := os.ReadFile(metadataPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var metadata InstallMetadata
	if err := json.Unmarshal(data, &metadata); err != nil {
		return nil, err
	}

	return &metadata, nil
}
