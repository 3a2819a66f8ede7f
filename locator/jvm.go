package locator

import (
	"context"
	"path/filepath"

	"javaboot/logging"
)

// jreRoots are the directories below java home that may hold a JRE layout.
var jreRoots = []string{"", "jre", "default-java", "default-runtime"}

// vmFlavours are the JVM variants a runtime may ship.
var vmFlavours = []string{"client", "server"}

// JVMLocation is what a JVM bridge needs to load the runtime.
type JVMLocation struct {
	BinDir  string `json:"bin_dir"`
	Library string `json:"library,omitempty"` // empty when no JVM library was found
}

// Found reports whether a JVM library was located.
func (j JVMLocation) Found() bool {
	return j.Library != ""
}

// JVMLibrary probes the java home for the JVM shared library. The first match
// wins. A runtime without one is not an error: the result has BinDir set to
// <java home>/bin and no Library.
func (l *Locator) JVMLibrary(ctx context.Context) (JVMLocation, error) {
	home, err := l.JavaHome(ctx)
	if err != nil {
		return JVMLocation{}, err
	}

	libFile := l.profile.LibraryFile()
	for _, root := range jreRoots {
		jreHome := filepath.Join(home, root)
		libexec := filepath.Join(jreHome, l.profile.LibraryDir())
		for _, arch := range l.profile.Arches() {
			for _, flavour := range vmFlavours {
				candidate := filepath.Join(libexec, arch, flavour, libFile)
				if isFile(candidate) {
					logging.LogDebug("✅ Found JVM library at %s", candidate)
					return JVMLocation{BinDir: filepath.Join(jreHome, "bin"), Library: candidate}, nil
				}
			}
		}
	}

	logging.LogDebug("No %s found below %s", libFile, home)
	return JVMLocation{BinDir: filepath.Join(home, "bin")}, nil
}
