package locator

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"javaboot/platform"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, nil, 0644))
}

func installedJRE(t *testing.T, home, folder string) string {
	t.Helper()
	jre := filepath.Join(home, "acdc-java", folder, "jre1.8.0_301")
	require.NoError(t, os.MkdirAll(jre, 0755))
	return jre
}

func TestJVMLibraryAbsent(t *testing.T) {
	home := t.TempDir()
	jre := installedJRE(t, home, "linux")

	loc, err := New(linuxProfile(t), home, &fakeFetcher{}, WithEnv(noEnv)).JVMLibrary(context.Background())
	require.NoError(t, err)
	assert.False(t, loc.Found())
	assert.Empty(t, loc.Library)
	assert.Equal(t, filepath.Join(jre, "bin"), loc.BinDir)
}

func TestJVMLibraryProbeOrder(t *testing.T) {
	tests := []struct {
		name    string
		host    platform.Host
		folder  string
		files   []string
		want    string
		wantBin string
	}{
		{
			name:    "linux amd64 server",
			host:    platform.Host{OS: "linux", Arch: "amd64"},
			folder:  "linux",
			files:   []string{"lib/amd64/server/libjvm.so"},
			want:    "lib/amd64/server/libjvm.so",
			wantBin: "bin",
		},
		{
			name:    "client wins over server",
			host:    platform.Host{OS: "linux", Arch: "amd64"},
			folder:  "linux",
			files:   []string{"lib/amd64/server/libjvm.so", "lib/amd64/client/libjvm.so"},
			want:    "lib/amd64/client/libjvm.so",
			wantBin: "bin",
		},
		{
			name:    "amd64 wins over i386",
			host:    platform.Host{OS: "linux", Arch: "amd64"},
			folder:  "linux",
			files:   []string{"lib/i386/client/libjvm.so", "lib/amd64/server/libjvm.so"},
			want:    "lib/amd64/server/libjvm.so",
			wantBin: "bin",
		},
		{
			name:    "java 9 layout without arch",
			host:    platform.Host{OS: "linux", Arch: "arm64"},
			folder:  "linux",
			files:   []string{"lib/server/libjvm.so"},
			want:    "lib/server/libjvm.so",
			wantBin: "bin",
		},
		{
			name:    "nested jre",
			host:    platform.Host{OS: "linux", Arch: "amd64"},
			folder:  "linux",
			files:   []string{"jre/lib/amd64/server/libjvm.so"},
			want:    "jre/lib/amd64/server/libjvm.so",
			wantBin: "jre/bin",
		},
		{
			name:    "root wins over default-java",
			host:    platform.Host{OS: "linux", Arch: "amd64"},
			folder:  "linux",
			files:   []string{"default-java/lib/amd64/server/libjvm.so", "lib/i386/server/libjvm.so"},
			want:    "lib/i386/server/libjvm.so",
			wantBin: "bin",
		},
		{
			name:    "default-runtime",
			host:    platform.Host{OS: "linux", Arch: "amd64"},
			folder:  "linux",
			files:   []string{"default-runtime/lib/server/libjvm.so"},
			want:    "default-runtime/lib/server/libjvm.so",
			wantBin: "default-runtime/bin",
		},
		{
			name:    "mac ignores arch directories",
			host:    platform.Host{OS: "darwin", Arch: "amd64"},
			folder:  "macOS",
			files:   []string{"lib/amd64/server/libjvm.dylib", "lib/server/libjvm.dylib"},
			want:    "lib/server/libjvm.dylib",
			wantBin: "bin",
		},
		{
			name:    "windows looks in bin",
			host:    platform.Host{OS: "windows", Arch: "AMD64"},
			folder:  "win64",
			files:   []string{"lib/server/jvm.dll", "bin/server/jvm.dll"},
			want:    "bin/server/jvm.dll",
			wantBin: "bin",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			home := t.TempDir()
			jre := installedJRE(t, home, tt.folder)
			for _, f := range tt.files {
				touch(t, filepath.Join(jre, filepath.FromSlash(f)))
			}

			fetcher := &fakeFetcher{}
			loc, err := New(resolve(t, tt.host), home, fetcher, WithEnv(noEnv)).JVMLibrary(context.Background())
			require.NoError(t, err)
			assert.True(t, loc.Found())
			assert.Equal(t, filepath.Join(jre, filepath.FromSlash(tt.want)), loc.Library)
			assert.Equal(t, filepath.Join(jre, filepath.FromSlash(tt.wantBin)), loc.BinDir)
			assert.Empty(t, fetcher.retrieves)
		})
	}
}

func TestJVMLibraryUsesJavaHome(t *testing.T) {
	javaHome := t.TempDir()
	touch(t, filepath.Join(javaHome, "lib", "server", "libjvm.so"))

	env := map[string]string{EnvJavaHome: javaHome}
	loc, err := New(linuxProfile(t), t.TempDir(), &fakeFetcher{}, WithEnv(func(k string) string { return env[k] })).JVMLibrary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(javaHome, "lib", "server", "libjvm.so"), loc.Library)
}

func TestJVMLibraryPropagatesInstallErrors(t *testing.T) {
	fetcher := &fakeFetcher{retrieveErr: assert.AnError}
	_, err := New(linuxProfile(t), t.TempDir(), fetcher, WithEnv(noEnv)).JVMLibrary(context.Background())
	assert.ErrorIs(t, err, assert.AnError)
}
