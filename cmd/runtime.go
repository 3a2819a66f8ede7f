package cmd

import (
	"fmt"

	"javaboot/config"
	"javaboot/downloader"
	"javaboot/downloader/core"
	"javaboot/downloader/network"
	"javaboot/locator"
	"javaboot/platform"
)

// currentHost is swapped by tests to simulate other platforms
var currentHost = platform.CurrentHost

// networkOptions is extended by tests to point the client at a local server
var networkOptions []network.Option

// newManager builds the downloader from the network and certificate settings.
func newManager(c *config.Config) *downloader.Manager {
	opts := append([]network.Option{
		network.WithTimeout(c.Network.TimeoutDuration()),
		network.WithRetries(c.Network.Retries, c.Network.RetryCooldownDuration()),
	}, networkOptions...)

	certs := downloader.CertConfig{
		Entries:     c.Certificates.Entries,
		Password:    c.Certificates.CacertsPassword,
		CacertsPath: c.Certificates.CacertsPath,
	}
	return downloader.NewManager(certs, opts...)
}

// newLocator resolves the host profile and wires a locator to a fresh manager.
// sink may be nil.
func newLocator(c *config.Config, sink core.ProgressSink) (*locator.Locator, *downloader.Manager, error) {
	if c == nil {
		return nil, nil, fmt.Errorf("configuration is not loaded")
	}

	profile, err := platform.Resolve(currentHost())
	if err != nil {
		return nil, nil, err
	}

	home, err := c.Home()
	if err != nil {
		return nil, nil, err
	}

	manager := newManager(c)
	l := locator.New(profile, home, manager,
		locator.WithVendor(c.General.VendorPrefix),
		locator.WithProgress(sink),
		locator.WithPostInstall(manager.AfterInstall),
	)
	return l, manager, nil
}
