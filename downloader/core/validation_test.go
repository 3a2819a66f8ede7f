package core

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSpace(t *testing.T) {
	dir := t.TempDir()
	var probed string
	v := &Validator{freeSpace: func(d string) (uint64, error) {
		probed = d
		return 1000, nil
	}}

	assert.NoError(t, v.ValidateSpace(999, dir))
	assert.Error(t, v.ValidateSpace(1001, dir))
	assert.NoError(t, v.ValidateSpace(0, dir), "unknown size skips the check")

	// missing directories are measured on their closest existing parent
	require.NoError(t, v.ValidateSpace(10, filepath.Join(dir, "a", "b")))
	assert.Equal(t, dir, probed)
}

func TestValidateSpaceProbeFailure(t *testing.T) {
	v := &Validator{freeSpace: func(string) (uint64, error) { return 0, errors.New("statfs") }}
	assert.Error(t, v.ValidateSpace(1, t.TempDir()))
}

func TestFreeSpaceOnTempDir(t *testing.T) {
	free, err := FreeSpace(t.TempDir())
	require.NoError(t, err)
	assert.Greater(t, free, uint64(0))
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("JDK")
	require.NoError(t, err)
	assert.Equal(t, JDK, k)

	_, err = ParseKind("node")
	assert.Error(t, err)
}

func TestErrorsUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := error(&DownloadError{RemoteID: "abc", Err: cause})
	assert.ErrorIs(t, err, cause)

	var de *DownloadError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "abc", de.RemoteID)

	assert.Equal(t, "unsupported platform: windows/x86", (&UnsupportedPlatformError{OS: "windows", Arch: "x86"}).Error())
}
