// Package jdk manages the trust store of an installed Java runtime.
package jdk

import (
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"
	"time"

	keystore "github.com/pavlo-v-chernykh/keystore-go/v4"

	"javaboot/config"
	"javaboot/logging"
)

// DefaultPassword protects the cacerts shipped with stock runtimes.
const DefaultPassword = "changeit"

// CertificateManager adds custom certificates to a runtime keystore
type CertificateManager struct {
	pathDetector *CacertsPathDetector
	now          func() time.Time
}

// NewCertificateManager creates a new CertificateManager instance
func NewCertificateManager() *CertificateManager {
	return &CertificateManager{
		pathDetector: NewCacertsPathDetector(),
		now:          time.Now,
	}
}

// InjectCertificates adds certs to the cacerts of the runtime at root and returns
// the aliases that were stored. The original trust store is kept as cacerts.original
// and restored when nothing could be added or the save fails.
func (cm *CertificateManager) InjectCertificates(root string, certs []config.CertificateEntry, pathOverride string, password string) ([]string, error) {
	if len(certs) == 0 {
		logging.LogDebug("📋 No custom certificates configured, skipping certificate injection")
		return nil, nil
	}

	logging.LogInfo("🔐 Adding %d certificate(s) to the runtime trust store...", len(certs))

	cacertsPath, err := cm.pathDetector.DetectCacertsPath(root, pathOverride)
	if err != nil {
		return nil, fmt.Errorf("failed to detect cacerts path: %w", err)
	}

	if format, err := cm.pathDetector.DetectKeystoreFormat(cacertsPath); err != nil {
		logging.LogDebug("⚠️  Could not detect keystore format: %v", err)
	} else {
		logging.LogDebug("📦 Keystore format: %s", format)
	}

	backupPath := cacertsPath + ".original"
	if err := backupFile(cacertsPath, backupPath); err != nil {
		return nil, fmt.Errorf("failed to backup cacerts: %w", err)
	}

	ks, actualPassword, err := cm.loadWithFallback(cacertsPath, password)
	if err != nil {
		return nil, fmt.Errorf("failed to load keystore: %w", err)
	}

	var added []string
	for _, entry := range certs {
		if err := cm.addCertificate(ks, entry); err != nil {
			logging.LogWarn("⚠️  Failed to add certificate from %s: %v", entry.Path, err)
			continue
		}
		added = append(added, entry.Alias)
		logging.LogDebug("✅ Added certificate '%s' from %s", entry.Alias, entry.Path)
	}

	if len(added) == 0 {
		restore(backupPath, cacertsPath)
		return nil, fmt.Errorf("no certificates were successfully added")
	}

	if err := saveKeystore(ks, cacertsPath, actualPassword); err != nil {
		restore(backupPath, cacertsPath)
		return nil, fmt.Errorf("failed to save keystore: %w", err)
	}

	logging.LogInfo("✅ Added %d certificate(s) to %s", len(added), cacertsPath)
	return added, nil
}

// loadWithFallback retries with an empty password, which password-less PKCS12 stores need.
func (cm *CertificateManager) loadWithFallback(path string, password string) (keystore.KeyStore, []byte, error) {
	ks, err := loadKeystore(path, []byte(password))
	if err == nil {
		return ks, []byte(password), nil
	}
	if password != "" {
		if ks, emptyErr := loadKeystore(path, []byte{}); emptyErr == nil {
			logging.LogDebug("✅ Loaded keystore with empty password")
			return ks, []byte{}, nil
		}
	}
	return keystore.KeyStore{}, nil, err
}

func (cm *CertificateManager) addCertificate(ks keystore.KeyStore, entry config.CertificateEntry) error {
	data, err := os.ReadFile(entry.Path)
	if err != nil {
		return fmt.Errorf("failed to read certificate file: %w", err)
	}

	cert, err := parsePEMCertificate(data)
	if err != nil {
		return err
	}

	trusted := keystore.TrustedCertificateEntry{
		CreationTime: cm.now(),
		Certificate: keystore.Certificate{
			Type:    "X.509",
			Content: cert.Raw,
		},
	}
	if err := ks.SetTrustedCertificateEntry(entry.Alias, trusted); err != nil {
		return fmt.Errorf("failed to add certificate with alias %s: %w", entry.Alias, err)
	}
	return nil
}

func loadKeystore(path string, password []byte) (keystore.KeyStore, error) {
	file, err := os.Open(path)
	if err != nil {
		return keystore.KeyStore{}, fmt.Errorf("failed to open keystore: %w", err)
	}
	defer file.Close()

	ks := keystore.New()
	if err := ks.Load(file, password); err != nil {
		return keystore.KeyStore{}, fmt.Errorf("failed to decode keystore: %w", err)
	}
	return ks, nil
}

func saveKeystore(ks keystore.KeyStore, path string, password []byte) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create keystore file: %w", err)
	}
	defer file.Close()

	if err := ks.Store(file, password); err != nil {
		return fmt.Errorf("failed to encode keystore: %w", err)
	}
	return file.Close()
}

// backupFile copies src to dst unless dst already exists.
func backupFile(src, dst string) error {
	if _, err := os.Stat(dst); err == nil {
		logging.LogDebug("Backup already exists at %s, skipping", dst)
		return nil
	}
	input, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("failed to read source: %w", err)
	}
	return os.WriteFile(dst, input, 0644)
}

func restore(backupPath, path string) {
	input, err := os.ReadFile(backupPath)
	if err == nil {
		err = os.WriteFile(path, input, 0644)
	}
	if err != nil {
		logging.LogWarn("⚠️  Failed to restore %s: %v", path, err)
	}
}

func parsePEMCertificate(pemData []byte) (*x509.Certificate, error) {
	block, _ := pem.Decode(pemData)
	if block == nil {
		return nil, fmt.Errorf("failed to decode PEM block")
	}
	if block.Type != "CERTIFICATE" {
		return nil, fmt.Errorf("PEM block is not a certificate (type: %s)", block.Type)
	}

	cert, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse X.509 certificate: %w", err)
	}
	return cert, nil
}
