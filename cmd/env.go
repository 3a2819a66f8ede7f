package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"javaboot/config"
	"javaboot/logging"
)

// rcMarker opens the block javaboot maintains in shell rc files.
const rcMarker = "# Added by javaboot - JAVA configuration"

var (
	envShell  string
	setEnvVar bool
	unsetEnv  bool
	rcFlag    string
)

func init() {
	envCmd.Flags().StringVar(&envShell, "shell", "", "Syntax of the printed lines: sh or powershell (default: powershell on Windows, sh elsewhere)")
	envCmd.Flags().BoolVarP(&setEnvVar, "set-env", "e", false, "Write the variables to your shell configuration file (~/.bashrc or ~/.zshrc)")
	envCmd.Flags().BoolVar(&unsetEnv, "unset", false, "Remove the variables written by --set-env")
	envCmd.Flags().StringVar(&rcFlag, "rc-file", "", "Shell configuration file used by --set-env and --unset")
}

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Print shell commands exporting JAVA_HOME and PATH",
	Long: `Print shell commands that point JAVA_HOME (and JDK_HOME where the JDK is a
separate download) at the located runtime and put its bin directory first on PATH.

  eval "$(javaboot env)"

With --set-env the same lines are written to your shell configuration file instead.`,
	Args: cobra.NoArgs,
	Run:  env,
	Example: `  eval "$(javaboot env)"
  javaboot env --shell powershell | Invoke-Expression
  javaboot env --set-env
  javaboot env --unset`,
}

func env(cmd *cobra.Command, args []string) {
	if unsetEnv {
		if err := handleUnset(); err != nil {
			ExitWithError(err)
		}
		return
	}
	if err := handleEnv(cmd); err != nil {
		ExitWithError(err)
	}
}

func handleEnv(cmd *cobra.Command) error {
	sink, finish := progressSink()
	l, _, err := newLocator(cfg, sink)
	if err != nil {
		return err
	}
	defer finish()

	ctx := cmd.Context()
	javaHome, err := l.JavaHome(ctx)
	if err != nil {
		return err
	}

	out := EnvOutput{JavaHome: javaHome, Path: filepath.Join(javaHome, "bin")}
	if l.Profile().JDK != nil {
		if out.JDKHome, err = l.JDKHome(ctx); err != nil {
			return err
		}
	}
	finish()

	shell := envShell
	switch {
	case setEnvVar:
		// rc files are sourced by POSIX shells
		shell = "sh"
	case shell == "" && l.Profile().IsWindows():
		shell = "powershell"
	case shell == "":
		shell = "sh"
	}
	lines, err := exportLines(out, shell)
	if err != nil {
		return err
	}

	if setEnvVar {
		return configureEnvironment(lines)
	}
	return printResult(out, lines...)
}

func exportLines(out EnvOutput, shell string) ([]string, error) {
	vars := [][2]string{{"JAVA_HOME", out.JavaHome}}
	if out.JDKHome != "" {
		vars = append(vars, [2]string{"JDK_HOME", out.JDKHome})
	}

	var lines []string
	switch shell {
	case "sh", "bash", "zsh":
		for _, v := range vars {
			lines = append(lines, fmt.Sprintf("export %s=%s", v[0], shellQuote(v[1])))
		}
		lines = append(lines, "export PATH=$JAVA_HOME/bin:$PATH")
	case "powershell", "pwsh":
		for _, v := range vars {
			lines = append(lines, fmt.Sprintf("$env:%s = '%s'", v[0], strings.ReplaceAll(v[1], "'", "''")))
		}
		lines = append(lines, `$env:PATH = "$env:JAVA_HOME\bin;$env:PATH"`)
	default:
		return nil, fmt.Errorf("unsupported shell %q (expected sh or powershell)", shell)
	}
	return lines, nil
}

func shellQuote(s string) string {
	if s != "" && !strings.ContainsAny(s, " \t'\"$`\\!*?[]{}();&|<>#~") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// findRcFile returns --rc-file, or the rc file of the current shell.
func findRcFile() (string, error) {
	if rcFlag != "" {
		return config.ExpandTilde(rcFlag)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("unable to determine home directory: %w", err)
	}

	rcFiles := []string{filepath.Join(home, ".bashrc"), filepath.Join(home, ".zshrc")}
	if strings.HasSuffix(os.Getenv("SHELL"), "zsh") {
		rcFiles[0], rcFiles[1] = rcFiles[1], rcFiles[0]
	}
	for _, file := range rcFiles {
		if _, err := os.Stat(file); err == nil {
			return file, nil
		}
	}
	return "", fmt.Errorf("no shell configuration file found (.zshrc or .bashrc), use --rc-file")
}

// ownExport reports whether line is one of the export lines javaboot writes.
func ownExport(line string) bool {
	return strings.HasPrefix(line, "export JAVA_HOME=") ||
		strings.HasPrefix(line, "export JDK_HOME=") ||
		line == "export PATH=$JAVA_HOME/bin:$PATH"
}

// stripBlock removes the javaboot block: the marker line, the export lines
// javaboot wrote after it and the blank line closing it.
func stripBlock(content string) (string, bool) {
	lines := strings.Split(content, "\n")
	var kept []string
	removed, inBlock := false, false
	for _, line := range lines {
		if strings.TrimSpace(line) == rcMarker {
			inBlock, removed = true, true
			continue
		}
		if inBlock {
			trimmed := strings.TrimSpace(line)
			if ownExport(trimmed) {
				continue
			}
			inBlock = false
			if trimmed == "" {
				continue
			}
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n"), removed
}

func configureEnvironment(lines []string) error {
	rcFile, err := findRcFile()
	if err != nil {
		return err
	}

	content, err := os.ReadFile(rcFile)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to read rc file: %w", err)
	}

	stripped, _ := stripBlock(string(content))
	stripped = strings.TrimRight(stripped, "\n")
	block := "\n" + rcMarker + "\n" + strings.Join(lines, "\n") + "\n"
	if stripped != "" {
		block = stripped + "\n" + block
	}

	if err := os.WriteFile(rcFile, []byte(block), 0644); err != nil {
		return fmt.Errorf("failed to update rc file: %w", err)
	}

	logging.LogInfo("✅ Successfully configured environment in %s", rcFile)
	logging.LogInfo("ℹ️  To apply these changes, run: source %s", rcFile)
	return nil
}

func handleUnset() error {
	rcFile, err := findRcFile()
	if err != nil {
		return fmt.Errorf("could not find shell configuration file: %w", err)
	}

	content, err := os.ReadFile(rcFile)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", rcFile, err)
	}

	stripped, removed := stripBlock(string(content))
	if !removed {
		logging.LogInfo("ℹ️  No javaboot configuration found in %s", rcFile)
		return nil
	}

	if err := os.WriteFile(rcFile, []byte(strings.TrimRight(stripped, "\n")+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to update %s: %w", rcFile, err)
	}

	logging.LogInfo("✅ Successfully removed javaboot configuration from %s", rcFile)
	logging.LogInfo("ℹ️  To apply these changes, run: source %s", rcFile)
	return nil
}
