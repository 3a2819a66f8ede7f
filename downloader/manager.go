package downloader

import (
	"context"
	"errors"
	"fmt"
	"time"

	"javaboot/downloader/cache"
	"javaboot/downloader/core"
	"javaboot/downloader/jdk"
	"javaboot/downloader/network"
	"javaboot/logging"
)

// Manager downloads, unpacks and finishes runtime installations
type Manager struct {
	network      *network.Client
	extractor    *Extractor
	cache        *cache.Manager
	certificates *jdk.CertificateManager
	certConfig   CertConfig
	now          func() time.Time
}

// NewManager creates a new Manager instance. opts configure the download client.
func NewManager(certs CertConfig, opts ...network.Option) *Manager {
	if certs.Password == "" {
		certs.Password = jdk.DefaultPassword
	}
	return &Manager{
		network:      network.NewClient(opts...),
		extractor:    NewExtractor(),
		cache:        cache.NewManager(),
		certificates: jdk.NewCertificateManager(),
		certConfig:   certs,
		now:          time.Now,
	}
}

// Retrieve downloads the archive identified by remoteID to destination.
func (m *Manager) Retrieve(ctx context.Context, remoteID, destination string, size int64, sink core.ProgressSink) error {
	return m.network.Retrieve(ctx, remoteID, destination, size, sink)
}

// ExtractArchive unpacks archive into destination.
func (m *Manager) ExtractArchive(archive, destination string) error {
	return m.extractor.Extract(archive, destination)
}

// AfterInstall records metadata for a fresh installation and adds the configured
// certificates to its trust store. The runtime stays usable whatever this returns.
func (m *Manager) AfterInstall(inst core.Installation) error {
	meta := InstallMetadata{
		Kind:        inst.Kind,
		Runtime:     inst.Name,
		Platform:    inst.Family,
		RemoteID:    inst.RemoteID,
		ArchiveSize: inst.Size,
		InstalledAt: m.now().UTC(),
	}

	var errs []error
	if m.certConfig.Enabled() {
		added, err := m.certificates.InjectCertificates(inst.Dir, m.certConfig.Entries, m.certConfig.CacertsPath, m.certConfig.Password)
		if err != nil {
			errs = append(errs, fmt.Errorf("certificate injection failed: %w", err))
		}
		meta.Certificates = added
	}

	if err := SaveMetadata(inst.Dir, meta); err != nil {
		errs = append(errs, fmt.Errorf("failed to save installation metadata: %w", err))
	} else {
		logging.LogDebug("📝 Saved installation metadata to %s", inst.Dir)
	}
	return errors.Join(errs...)
}

// Remove deletes an installed runtime and the directories it leaves empty below stopAt.
func (m *Manager) Remove(runtimeDir, stopAt string) error {
	if meta, err := LoadMetadata(runtimeDir); err == nil && meta == nil {
		logging.LogDebug("No javaboot metadata in %s, removing anyway", runtimeDir)
	}
	return m.cache.RemoveInstallation(runtimeDir, stopAt)
}
