package cmd

import (
	"github.com/spf13/cobra"

	"javaboot/logging"
)

var locateCmd = &cobra.Command{
	Use:   "locate",
	Short: "Print the Java home, and the JDK home on Windows",
	Long: `Print the Java home a JVM bridge should use. JAVA_HOME wins when set;
otherwise the pinned JRE is looked up in your home directory and downloaded if missing.
On Windows the JDK home is printed first, resolved the same way with JDK_HOME.`,
	Args: cobra.NoArgs,
	Run:  locate,
	Example: `  javaboot locate
  javaboot locate --json`,
}

func locate(cmd *cobra.Command, args []string) {
	if err := handleLocate(cmd); err != nil {
		ExitWithError(err)
	}
}

func handleLocate(cmd *cobra.Command) error {
	sink, finish := progressSink()
	l, _, err := newLocator(cfg, sink)
	if err != nil {
		return err
	}
	defer finish()

	ctx := cmd.Context()
	var out LocateOutput
	var lines []string

	if l.Profile().IsWindows() {
		jdk, err := l.JDKHome(ctx)
		if err != nil {
			return err
		}
		out.JDKHome = jdk
		lines = append(lines, jdk)
	}

	javaHome, err := l.JavaHome(ctx)
	if err != nil {
		return err
	}
	out.JavaHome = javaHome
	lines = append(lines, javaHome)

	logging.LogDebug("🔍 Resolved java home %s", javaHome)
	finish()
	return printResult(out, lines...)
}
