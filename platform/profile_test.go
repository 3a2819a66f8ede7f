package platform

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"javaboot/downloader/core"
)

func TestResolveSupportedProfiles(t *testing.T) {
	hosts := []Host{
		{OS: "linux", Arch: "amd64"},
		{OS: "linux", Arch: "arm64"},
		{OS: "darwin", Arch: "arm64"},
		{OS: "windows", Arch: "AMD64"},
	}

	for _, host := range hosts {
		t.Run(host.OS+"/"+host.Arch, func(t *testing.T) {
			profile, err := Resolve(host)
			require.NoError(t, err)
			assert.NotEmpty(t, profile.JRE.RemoteID)
			assert.Positive(t, profile.JRE.Size)
			assert.NotEmpty(t, profile.JRE.Name)
			assert.NotEmpty(t, profile.Folder)
		})
	}

	for _, profile := range Supported() {
		assert.NotEmpty(t, profile.JRE.RemoteID, profile.Family)
		assert.Positive(t, profile.JRE.Size, profile.Family)
	}
}

func TestResolveUnsupported(t *testing.T) {
	tests := []Host{
		{OS: "windows", Arch: "x86"},
		{OS: "windows", Arch: ""},
		{OS: "plan9", Arch: "386"},
	}

	for _, host := range tests {
		_, err := Resolve(host)
		var unsupported *core.UnsupportedPlatformError
		require.ErrorAs(t, err, &unsupported, "%+v", host)
		assert.Equal(t, host.OS, unsupported.OS)
	}
}

func TestLinuxProfile(t *testing.T) {
	profile, err := Resolve(Host{OS: "linux", Arch: "amd64"})
	require.NoError(t, err)

	assert.Equal(t, Linux, profile.Family)
	assert.Equal(t, "1Fz8krhOS8JsX-GhkRDeMiEnAIWqZmCfP", profile.JRE.RemoteID)
	assert.Equal(t, int64(92145253), profile.JRE.Size)
	assert.Equal(t, "jre1.8.0_301", profile.JRE.Name)
	assert.Equal(t, "libjvm.so", profile.LibraryFile())
	assert.Equal(t, "lib", profile.LibraryDir())
	assert.Equal(t, []string{"amd64", "i386", ""}, profile.Arches())
	assert.Equal(t, "javac", profile.Executable("javac"))

	_, ok := profile.Runtime(core.JDK)
	assert.False(t, ok, "the JDK is not a separate download on linux")
}

func TestWindowsProfile(t *testing.T) {
	profile, err := Resolve(Host{OS: "windows", Arch: "amd64"})
	require.NoError(t, err)

	jdk, ok := profile.Runtime(core.JDK)
	require.True(t, ok)
	assert.Equal(t, "jdk1.8.0_321", jdk.Name)
	assert.Equal(t, int64(135524352), jdk.Size)
	assert.Equal(t, "jvm.dll", profile.LibraryFile())
	assert.Equal(t, "bin", profile.LibraryDir())
	assert.Equal(t, []string{""}, profile.Arches())
	assert.Equal(t, "jar.exe", profile.Executable("jar"))
}

func TestMacProfile(t *testing.T) {
	profile, err := Resolve(Host{OS: "darwin", Arch: "amd64"})
	require.NoError(t, err)
	assert.Equal(t, "macOS", profile.Folder)
	assert.Equal(t, "libjvm.dylib", profile.LibraryFile())
}

func TestPaths(t *testing.T) {
	profile, err := Resolve(Host{OS: "linux", Arch: "amd64"})
	require.NoError(t, err)

	paths := profile.Paths("/home/user", "", profile.JRE)
	assert.Equal(t, filepath.Join("/home/user", "acdc-java", "linux"), paths.BaseDir)
	assert.Equal(t, filepath.Join("/home/user", "acdc-java", "linux", "jre1.8.0_301"), paths.RuntimeDir)
	assert.Equal(t, filepath.Join("/home/user", ".acdc-java", "linux", "jre1.8.0_301"), paths.LegacyDir)

	custom := profile.Paths("/home/user", "bridge", profile.JRE)
	assert.Equal(t, filepath.Join("/home/user", ".bridge", "linux", "jre1.8.0_301"), custom.LegacyDir)
}

func TestHostFromReadsProcessorArchitectureOnWindows(t *testing.T) {
	env := map[string]string{"PROCESSOR_ARCHITECTURE": "AMD64"}
	getenv := func(k string) string { return env[k] }

	assert.Equal(t, Host{OS: "windows", Arch: "AMD64"}, hostFrom("windows", "386", getenv))
	assert.Equal(t, Host{OS: "linux", Arch: "arm64"}, hostFrom("linux", "arm64", getenv))
}
