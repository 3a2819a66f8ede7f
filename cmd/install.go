package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"javaboot/downloader/core"
	"javaboot/logging"
)

var installCmd = &cobra.Command{
	Use:   "install [jre|jdk]",
	Short: "Install the pinned Java runtime",
	Long: `Install the pinned runtime for this platform, unless it is already present
in your home directory (or its legacy location). Defaults to the JRE.

The JDK is a separate download on 64-bit Windows only; elsewhere the JRE is installed
and the JDK is derived from it.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) > 1 {
			return fmt.Errorf("\n❌ Invalid number of arguments\n\n" +
				"Usage:\n" +
				"  javaboot install [jre|jdk]")
		}
		if len(args) == 1 {
			if _, err := core.ParseKind(args[0]); err != nil {
				return err
			}
		}
		return nil
	},
	ValidArgs: []string{string(core.JRE), string(core.JDK)},
	Run:       install,
	Example: `  # Install the JRE
  javaboot install

  # Install the JDK (64-bit Windows)
  javaboot install jdk`,
}

func install(cmd *cobra.Command, args []string) {
	kind := core.JRE
	if len(args) == 1 {
		kind, _ = core.ParseKind(args[0])
	}

	if err := handleInstall(cmd, kind); err != nil {
		ExitWithError(err)
	}
}

func handleInstall(cmd *cobra.Command, kind core.Kind) error {
	sink, finish := progressSink()
	l, _, err := newLocator(cfg, sink)
	if err != nil {
		return err
	}
	defer finish()

	if _, ok := l.Profile().Runtime(kind); !ok {
		logging.LogInfo("ℹ️  No separate %s download for %s, installing the %s", kind, l.Profile().Family, core.JRE)
		kind = core.JRE
	}

	logging.LogDebug("🔧 Starting installation of %s for %s", kind, l.Profile().Family)
	path, err := l.EnsureInstalled(cmd.Context(), kind)
	if err != nil {
		return fmt.Errorf("installation failed: %w", err)
	}
	finish()

	return printResult(InstallOutput{Kind: string(kind), Path: path}, path)
}
