// Package locator finds the Java runtime javaboot hands to a JVM bridge,
// downloading the pinned archive for the host when no runtime is installed.
//
// A runtime counts as installed when its directory exists, either at the
// primary location <home>/<vendor>/<folder>/<name> or at the legacy location
// <home>/.<vendor>/<folder>/<name>. The legacy location is read, never written.
package locator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"javaboot/downloader/cache"
	"javaboot/downloader/core"
	"javaboot/logging"
	"javaboot/platform"
)

const (
	EnvJavaHome = "JAVA_HOME"
	EnvJDKHome  = "JDK_HOME"
)

// Fetcher downloads and unpacks runtime archives.
type Fetcher interface {
	Retrieve(ctx context.Context, remoteID, destination string, size int64, sink core.ProgressSink) error
	ExtractArchive(archive, destination string) error
}

// Locator resolves runtime paths for one platform profile.
type Locator struct {
	profile     platform.Profile
	home        string
	vendor      string
	fetcher     Fetcher
	getenv      func(string) string
	progress    core.ProgressSink
	postInstall func(core.Installation) error
	cache       *cache.Manager
}

// Option configures a Locator.
type Option func(*Locator)

// WithVendor sets the directory name under home; platform.DefaultVendor otherwise.
func WithVendor(vendor string) Option {
	return func(l *Locator) {
		if vendor != "" {
			l.vendor = vendor
		}
	}
}

// WithEnv replaces os.Getenv for JAVA_HOME and JDK_HOME lookups.
func WithEnv(getenv func(string) string) Option {
	return func(l *Locator) {
		if getenv != nil {
			l.getenv = getenv
		}
	}
}

// WithProgress receives download progress events.
func WithProgress(sink core.ProgressSink) Option {
	return func(l *Locator) { l.progress = sink }
}

// WithPostInstall runs hook after a runtime was downloaded and extracted.
// A hook error is logged; the installation is still returned.
func WithPostInstall(hook func(core.Installation) error) Option {
	return func(l *Locator) { l.postInstall = hook }
}

// New creates a Locator installing runtimes for profile below home.
func New(profile platform.Profile, home string, fetcher Fetcher, opts ...Option) *Locator {
	l := &Locator{
		profile: profile,
		home:    home,
		vendor:  platform.DefaultVendor,
		fetcher: fetcher,
		getenv:  os.Getenv,
		cache:   cache.NewManager(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Profile returns the platform profile the locator was built for.
func (l *Locator) Profile() platform.Profile {
	return l.profile
}

// Home returns the directory installations live under.
func (l *Locator) Home() string {
	return l.home
}

// Paths returns where the kind runtime is, or would be, installed.
func (l *Locator) Paths(kind core.Kind) (platform.Runtime, platform.InstallationPaths, error) {
	rt, ok := l.profile.Runtime(kind)
	if !ok {
		return platform.Runtime{}, platform.InstallationPaths{}, fmt.Errorf("no separate %s archive is published for platform %s", kind, l.profile.Family)
	}
	return rt, l.profile.Paths(l.home, l.vendor, rt), nil
}

// Installed returns the directory of an existing kind installation, primary
// location first. It never downloads.
func (l *Locator) Installed(kind core.Kind) (string, bool) {
	_, paths, err := l.Paths(kind)
	if err != nil {
		return "", false
	}
	if isDir(paths.RuntimeDir) {
		return paths.RuntimeDir, true
	}
	if isDir(paths.LegacyDir) {
		return paths.LegacyDir, true
	}
	return "", false
}

// EnsureInstalled returns the directory of the kind runtime, downloading and
// extracting it first when neither the primary nor the legacy location has it.
// A failed extraction removes what was unpacked so the next call starts over.
func (l *Locator) EnsureInstalled(ctx context.Context, kind core.Kind) (string, error) {
	rt, paths, err := l.Paths(kind)
	if err != nil {
		return "", err
	}

	if isDir(paths.RuntimeDir) {
		logging.LogDebug("✅ Found %s at %s", kind, paths.RuntimeDir)
		return paths.RuntimeDir, nil
	}
	if isDir(paths.LegacyDir) {
		logging.LogDebug("✅ Found %s at legacy location %s", kind, paths.LegacyDir)
		return paths.LegacyDir, nil
	}

	logging.LogInfo("☕ %s not found, installing %s for %s", kind, rt.Name, l.profile.Family)

	if err := l.cache.PrepareBaseDirectory(paths.BaseDir); err != nil {
		return "", err
	}

	archive := l.cache.ArchivePath(paths.BaseDir, kind)
	defer func() {
		if err := l.cache.CleanupArchive(archive); err != nil {
			logging.LogWarn("⚠️  %v", err)
		}
	}()

	if err := l.fetcher.Retrieve(ctx, rt.RemoteID, archive, rt.Size, l.progress); err != nil {
		return "", err
	}

	if err := l.fetcher.ExtractArchive(archive, paths.BaseDir); err != nil {
		l.rollback(paths.RuntimeDir)
		return "", err
	}

	if !isDir(paths.RuntimeDir) {
		return "", &core.NotFoundError{What: fmt.Sprintf("%s directory in the downloaded archive", kind), Path: paths.RuntimeDir}
	}

	if l.postInstall != nil {
		inst := core.Installation{
			Kind:     kind,
			Family:   string(l.profile.Family),
			Name:     rt.Name,
			RemoteID: rt.RemoteID,
			Size:     rt.Size,
			Dir:      paths.RuntimeDir,
		}
		if err := l.postInstall(inst); err != nil {
			logging.LogWarn("⚠️  Post-install steps failed for %s: %v", paths.RuntimeDir, err)
		}
	}

	logging.LogInfo("✅ Installed %s in %s", rt.Name, paths.RuntimeDir)
	return paths.RuntimeDir, nil
}

func (l *Locator) rollback(runtimeDir string) {
	logging.LogDebug("🧹 Extraction failed, removing %s", runtimeDir)
	if err := l.cache.RemoveInstallation(runtimeDir, l.home); err != nil {
		logging.LogWarn("⚠️  Failed to remove partial installation %s: %v", runtimeDir, err)
	}
}

// JavaHome returns $JAVA_HOME when set, otherwise the installed JRE.
func (l *Locator) JavaHome(ctx context.Context) (string, error) {
	if home := l.getenv(EnvJavaHome); home != "" {
		logging.LogDebug("Using %s=%s", EnvJavaHome, home)
		return home, nil
	}
	return l.EnsureInstalled(ctx, core.JRE)
}

// JDKHome returns $JDK_HOME when set. Where the JDK is its own download it is
// installed; elsewhere the JDK is the java home with a trailing jre segment removed.
func (l *Locator) JDKHome(ctx context.Context) (string, error) {
	if home := l.getenv(EnvJDKHome); home != "" {
		logging.LogDebug("Using %s=%s", EnvJDKHome, home)
		return home, nil
	}
	if _, ok := l.profile.Runtime(core.JDK); ok {
		return l.EnsureInstalled(ctx, core.JDK)
	}

	home, err := l.JavaHome(ctx)
	if err != nil {
		return "", err
	}
	return stripJRE(home), nil
}

func stripJRE(home string) string {
	cleaned := filepath.Clean(home)
	if filepath.Base(cleaned) == "jre" {
		return filepath.Dir(cleaned)
	}
	return home
}

// Executable returns the path of a JDK tool such as javac or jar. On Windows it
// is looked up in the JDK bin directory and must exist; elsewhere the bare name
// is returned for the caller's PATH to resolve.
func (l *Locator) Executable(ctx context.Context, name string) (string, error) {
	if !l.profile.IsWindows() {
		return name, nil
	}

	jdk, err := l.JDKHome(ctx)
	if err != nil {
		return "", err
	}
	path := filepath.Join(jdk, "bin", l.profile.Executable(name))
	if !isFile(path) {
		return "", &core.NotFoundError{What: name, Path: path}
	}
	return path, nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
