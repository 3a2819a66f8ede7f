package cmd

import (
	"github.com/spf13/cobra"

	"javaboot/downloader"
	"javaboot/downloader/core"
	"javaboot/downloader/jdk"
	"javaboot/logging"
	"javaboot/platform"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the platform profile and install locations",
	Long: `Show the detected platform, the pinned runtime archives for it and where they
are installed. Nothing is downloaded.`,
	Args: cobra.NoArgs,
	Run:  profile,
}

func profile(cmd *cobra.Command, args []string) {
	if err := handleProfile(); err != nil {
		ExitWithError(err)
	}
}

func handleProfile() error {
	l, _, err := newLocator(cfg, nil)
	if err != nil {
		return err
	}

	p := l.Profile()
	out := ProfileOutput{Host: currentHost(), Profile: p, Installed: map[string]string{}, Releases: map[string]jdk.Release{}}
	_, out.Paths, _ = l.Paths(core.JRE)
	if _, jdkPaths, err := l.Paths(core.JDK); err == nil {
		out.JDKPaths = &jdkPaths
	}
	for _, kind := range []core.Kind{core.JRE, core.JDK} {
		if dir, ok := l.Installed(kind); ok {
			out.Installed[string(kind)] = dir
			if release, err := jdk.ReadRelease(dir); err == nil && release != nil {
				out.Releases[string(kind)] = *release
			}
		}
	}

	if jsonOutput {
		return OutputJSON(out)
	}

	logging.LogOutput("Platform: %s (%s/%s)", p.Family, out.Host.OS, out.Host.Arch)
	logging.LogOutput("─────────────────────")
	displayRuntime(core.JRE, p.JRE, out.Paths, out.Installed)
	if p.JDK != nil && out.JDKPaths != nil {
		displayRuntime(core.JDK, *p.JDK, *out.JDKPaths, out.Installed)
	}
	logging.LogOutput("JVM library: %s/<arch>/{client,server}/%s", p.LibraryDir(), p.LibraryFile())
	return nil
}

func displayRuntime(kind core.Kind, rt platform.Runtime, paths platform.InstallationPaths, installed map[string]string) {
	logging.LogOutput("%s %s (%d bytes, id %s)", kind, rt.Name, rt.Size, rt.RemoteID)
	dir, ok := installed[string(kind)]
	if !ok {
		logging.LogOutput("   ❌ not installed, target %s", paths.RuntimeDir)
		return
	}

	logging.LogOutput("   ✅ %s", dir)
	if release, err := jdk.ReadRelease(dir); err == nil && release != nil {
		logging.LogOutput("   Java %s (%s)", release.Major(), release.JavaVersion)
	}
	meta, err := downloader.LoadMetadata(dir)
	if err != nil {
		logging.LogDebug("⚠️  Failed to load installation metadata: %v", err)
		return
	}
	if meta != nil {
		logging.LogOutput("   installed %s", meta.InstalledAt.Format("2006-01-02 15:04"))
		for _, alias := range meta.Certificates {
			logging.LogOutput("   🔐 %s", alias)
		}
	}
}
