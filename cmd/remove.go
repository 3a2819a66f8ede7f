package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"javaboot/downloader/core"
	"javaboot/logging"
)

var removeCmd = &cobra.Command{
	Use:   "remove [jre|jdk]",
	Short: "Remove an installed runtime",
	Long: `Remove the runtime javaboot installed in your home directory. Defaults to the JRE.
Runtimes at the legacy location are left alone; javaboot never writes there.
The next command that needs the runtime downloads it again.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) > 1 {
			return fmt.Errorf("\n❌ Invalid number of arguments\n\n" +
				"Usage:\n" +
				"  javaboot remove [jre|jdk]")
		}
		if len(args) == 1 {
			if _, err := core.ParseKind(args[0]); err != nil {
				return err
			}
		}
		return nil
	},
	ValidArgs: []string{string(core.JRE), string(core.JDK)},
	Run:       remove,
}

func remove(cmd *cobra.Command, args []string) {
	kind := core.JRE
	if len(args) == 1 {
		kind, _ = core.ParseKind(args[0])
	}
	if err := handleRemove(kind); err != nil {
		ExitWithError(err)
	}
}

func handleRemove(kind core.Kind) error {
	l, manager, err := newLocator(cfg, nil)
	if err != nil {
		return err
	}

	_, paths, err := l.Paths(kind)
	if err != nil {
		return err
	}

	installed, ok := l.Installed(kind)
	out := RemoveOutput{Kind: string(kind), Path: paths.RuntimeDir}
	switch {
	case !ok:
		logging.LogInfo("ℹ️  No %s installed at %s", kind, paths.RuntimeDir)
		return printResult(out)
	case installed != paths.RuntimeDir:
		logging.LogInfo("ℹ️  %s at legacy location %s is not managed by javaboot, leaving it", strings.ToUpper(string(kind)), installed)
		out.Path = installed
		return printResult(out)
	}

	if err := manager.Remove(paths.RuntimeDir, l.Home()); err != nil {
		return err
	}
	out.Removed = true

	logging.LogInfo("✅ Removed %s from %s", filepath.Base(paths.RuntimeDir), filepath.Dir(paths.RuntimeDir))
	return printResult(out)
}
