package cmd

import (
	"encoding/json"
	"fmt"

	"javaboot/downloader/jdk"
	"javaboot/logging"
	"javaboot/platform"
)

// Global variables for JSON mode
var (
	jsonOutput bool // Flag for JSON output
	jsonLogs   bool // Flag for JSON logs
)

// LocateOutput is printed by locate
type LocateOutput struct {
	JavaHome string `json:"java_home"`
	JDKHome  string `json:"jdk_home,omitempty"`
}

// InstallOutput is printed by install
type InstallOutput struct {
	Kind string `json:"kind"`
	Path string `json:"path"`
}

// JVMOutput is printed by jvm
type JVMOutput struct {
	BinDir  string `json:"bin_dir"`
	Library string `json:"library,omitempty"`
	Found   bool   `json:"found"`
}

// ToolOutput is printed by tool
type ToolOutput struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// ProfileOutput is printed by profile
type ProfileOutput struct {
	Host      platform.Host               `json:"host"`
	Profile   platform.Profile            `json:"profile"`
	Paths     platform.InstallationPaths  `json:"paths"`
	JDKPaths  *platform.InstallationPaths `json:"jdk_paths,omitempty"`
	Installed map[string]string           `json:"installed,omitempty"`
	Releases  map[string]jdk.Release      `json:"releases,omitempty"`
}

// EnvOutput is printed by env
type EnvOutput struct {
	JavaHome string `json:"JAVA_HOME"`
	JDKHome  string `json:"JDK_HOME,omitempty"`
	Path     string `json:"PATH"`
}

// RemoveOutput is printed by remove
type RemoveOutput struct {
	Kind    string `json:"kind"`
	Path    string `json:"path"`
	Removed bool   `json:"removed"`
}

// ErrorOutput is printed instead of a result when a command fails in JSON mode
type ErrorOutput struct {
	Error string `json:"error"`
}

// OutputJSON handles JSON output for all commands
func OutputJSON(data interface{}) error {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	logging.LogOutput("%s", jsonData)
	return nil
}

// printResult writes data as JSON in JSON mode, or the text lines otherwise.
func printResult(data interface{}, lines ...string) error {
	if jsonOutput {
		return OutputJSON(data)
	}
	for _, line := range lines {
		logging.LogOutput("%s", line)
	}
	return nil
}
