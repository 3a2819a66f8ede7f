package core

import "fmt"

// UnsupportedPlatformError is returned when no pinned runtime exists for the host.
type UnsupportedPlatformError struct {
	OS   string
	Arch string
}

func (e *UnsupportedPlatformError) Error() string {
	if e.Arch == "" {
		return fmt.Sprintf("unsupported platform: %s", e.OS)
	}
	return fmt.Sprintf("unsupported platform: %s/%s", e.OS, e.Arch)
}

// DownloadError wraps network, HTTP status and filesystem failures while fetching an archive.
type DownloadError struct {
	RemoteID string
	Err      error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("download of %s failed: %v", e.RemoteID, e.Err)
}

func (e *DownloadError) Unwrap() error { return e.Err }

// ExtractError wraps failures while unpacking an archive.
type ExtractError struct {
	Archive string
	Err     error
}

func (e *ExtractError) Error() string {
	return fmt.Sprintf("extraction of %s failed: %v", e.Archive, e.Err)
}

func (e *ExtractError) Unwrap() error { return e.Err }

// NotFoundError reports a file or value that should exist but does not.
type NotFoundError struct {
	What string
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.What, e.Path)
}
