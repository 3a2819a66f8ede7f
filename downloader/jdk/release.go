package jdk

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// ReleaseFile is written by every OpenJDK and Oracle build at the runtime root.
const ReleaseFile = "release"

// Release holds the fields of a runtime's release file that javaboot reports
type Release struct {
	JavaVersion string `json:"java_version"`
	Implementor string `json:"implementor,omitempty"`
	OSArch      string `json:"os_arch,omitempty"`
}

// Major returns the feature release number of the runtime, "" if unknown.
func (r Release) Major() string {
	return MajorVersion(r.JavaVersion)
}

var majorPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^1\.(\d+)(?:\.|$)`),  // 1.8.0_301 (pre Java 9 scheme)
	regexp.MustCompile(`^(\d+)u`),            // 8u442b06
	regexp.MustCompile(`^(\d+)(?:[.+_-]|$)`), // 11.0.26, 17, 21+35
}

// MajorVersion extracts the major version from a Java version string.
//
// Examples:
//   - "1.8.0_301" → "8"
//   - "8u442b06" → "8"
//   - "11.0.26_4" → "11"
//   - "jdk-17.0.11" → "17"
//   - "" → ""
func MajorVersion(version string) string {
	v := strings.TrimLeft(strings.TrimSpace(version), "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ-_")
	for _, re := range majorPatterns {
		if m := re.FindStringSubmatch(v); len(m) > 1 {
			return m[1]
		}
	}
	return ""
}

// ReadRelease parses the release file of the runtime at root. A runtime without
// one yields nil and no error.
func ReadRelease(root string) (*Release, error) {
	f, err := os.Open(filepath.Join(root, ReleaseFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open release file: %w", err)
	}
	defer f.Close()

	var r Release
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		key, value, ok := strings.Cut(scanner.Text(), "=")
		if !ok {
			continue
		}
		value = strings.Trim(strings.TrimSpace(value), `"`)
		switch strings.TrimSpace(key) {
		case "JAVA_VERSION":
			r.JavaVersion = value
		case "IMPLEMENTOR":
			r.Implementor = value
		case "OS_ARCH":
			r.OSArch = value
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read release file: %w", err)
	}
	return &r, nil
}
