package cmd

import (
	"github.com/spf13/cobra"

	"javaboot/downloader/core"
	"javaboot/logging"
)

var jvmCmd = &cobra.Command{
	Use:   "jvm",
	Short: "Print the JRE bin directory and the JVM shared library",
	Long: `Print the JRE bin directory and the JVM shared library (libjvm.so, libjvm.dylib
or jvm.dll) found below the Java home. Exits with status 1 when no library is found.`,
	Args: cobra.NoArgs,
	Run:  jvm,
}

func jvm(cmd *cobra.Command, args []string) {
	if err := handleJVM(cmd); err != nil {
		ExitWithError(err)
	}
}

func handleJVM(cmd *cobra.Command) error {
	sink, finish := progressSink()
	l, _, err := newLocator(cfg, sink)
	if err != nil {
		return err
	}
	defer finish()

	loc, err := l.JVMLibrary(cmd.Context())
	if err != nil {
		return err
	}
	finish()

	if !loc.Found() {
		// the bin directory is still useful to the caller
		if err := printResult(JVMOutput{BinDir: loc.BinDir}, loc.BinDir); err != nil {
			return err
		}
		logging.LogError("❌ %v", &core.NotFoundError{What: l.Profile().LibraryFile(), Path: loc.BinDir})
		_ = logging.Close()
		exit(1)
		return nil
	}
	return printResult(JVMOutput{BinDir: loc.BinDir, Library: loc.Library, Found: true}, loc.BinDir, loc.Library)
}
