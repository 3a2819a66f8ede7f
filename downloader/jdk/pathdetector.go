package jdk

import (
	"fmt"
	"os"
	"path/filepath"

	"javaboot/logging"
)

// KeystoreFormat is the on-disk encoding of a Java trust store.
type KeystoreFormat string

const (
	FormatJKS    KeystoreFormat = "JKS"
	FormatPKCS12 KeystoreFormat = "PKCS12"
)

// cacertsCandidates are tried in order below a runtime root: a JDK 8 keeps its
// trust store in the bundled jre, a JRE 8 (and any Java 9+) directly under lib.
var cacertsCandidates = []string{
	filepath.Join("jre", "lib", "security", "cacerts"),
	filepath.Join("lib", "security", "cacerts"),
}

// CacertsPathDetector finds the trust store of an extracted runtime
type CacertsPathDetector struct{}

// NewCacertsPathDetector creates a new path detector instance
func NewCacertsPathDetector() *CacertsPathDetector {
	return &CacertsPathDetector{}
}

// DetectCacertsPath returns the cacerts file of the runtime at root. A non-empty
// override, relative to root, is tried before the standard layouts.
func (d *CacertsPathDetector) DetectCacertsPath(root string, override string) (string, error) {
	logging.LogDebug("🔍 Detecting cacerts path in runtime at %s", root)

	candidates := cacertsCandidates
	if override != "" {
		candidates = append([]string{override}, candidates...)
	}

	tried := make([]string, 0, len(candidates))
	for _, rel := range candidates {
		path := filepath.Join(root, rel)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			logging.LogDebug("✅ Detected cacerts at: %s", path)
			return path, nil
		}
		tried = append(tried, path)
	}

	return "", fmt.Errorf("cacerts file not found in runtime at %s, tried %v", root, tried)
}

// DetectKeystoreFormat tells JKS and PKCS12 trust stores apart by their magic bytes
func (d *CacertsPathDetector) DetectKeystoreFormat(cacertsPath string) (KeystoreFormat, error) {
	file, err := os.Open(cacertsPath)
	if err != nil {
		return "", fmt.Errorf("failed to open cacerts: %w", err)
	}
	defer file.Close()

	magic := make([]byte, 4)
	if _, err := file.Read(magic); err != nil {
		return "", fmt.Errorf("failed to read keystore magic bytes: %w", err)
	}

	switch {
	case magic[0] == 0xFE && magic[1] == 0xED && magic[2] == 0xFE && magic[3] == 0xED:
		return FormatJKS, nil
	case magic[0] == 0x30: // ASN.1 SEQUENCE
		return FormatPKCS12, nil
	}
	return "", fmt.Errorf("unknown keystore format (magic bytes: % x)", magic)
}
