package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var jdkTools = []string{"javac", "jar"}

var toolCmd = &cobra.Command{
	Use:   "tool <javac|jar>",
	Short: "Print the path of a JDK tool",
	Long: `Print the path of javac or jar. On Windows the tool is looked up in the JDK
bin directory (downloading the JDK if needed) and must exist. Elsewhere the bare
name is printed, to be resolved through PATH.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 || !isJDKTool(args[0]) {
			return fmt.Errorf("\n❌ Invalid arguments\n\n" +
				"Usage:\n" +
				"  javaboot tool <javac|jar>")
		}
		return nil
	},
	ValidArgs: jdkTools,
	Run:       tool,
}

func isJDKTool(name string) bool {
	for _, t := range jdkTools {
		if t == name {
			return true
		}
	}
	return false
}

func tool(cmd *cobra.Command, args []string) {
	if err := handleTool(cmd, args[0]); err != nil {
		ExitWithError(err)
	}
}

func handleTool(cmd *cobra.Command, name string) error {
	sink, finish := progressSink()
	l, _, err := newLocator(cfg, sink)
	if err != nil {
		return err
	}
	defer finish()

	path, err := l.Executable(cmd.Context(), name)
	if err != nil {
		return err
	}
	finish()

	return printResult(ToolOutput{Name: name, Path: path}, path)
}
