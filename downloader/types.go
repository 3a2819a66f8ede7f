package downloader

import "javaboot/config"

// CertConfig contains certificate configuration
type CertConfig struct {
	// Entries are PEM certificates added to the runtime trust store after a fresh install
	Entries []config.CertificateEntry

	// Password opens the runtime cacerts keystore, "changeit" for stock JREs
	Password string

	// CacertsPath overrides trust store detection, relative to the runtime root
	CacertsPath string
}

// Enabled reports whether any certificate has to be injected.
func (c CertConfig) Enabled() bool {
	return len(c.Entries) > 0
}
