// Package cli implements the bundlestore command line commands.
package cli

import (
	"fmt"

	"github.com/glorpus-work/bundlestore/pkg/catalog"
	"github.com/glorpus-work/bundlestore/pkg/config"
	"github.com/glorpus-work/bundlestore/pkg/download"
	httpx "github.com/glorpus-work/bundlestore/pkg/http"
	"github.com/glorpus-work/bundlestore/pkg/model"
	"github.com/glorpus-work/bundlestore/pkg/store"
)

// These variables will be set by the main package.
var (
	ConfigPath *string
	Verbose    *bool
)

// loadConfig loads the configuration from the --config flag or the default
// location.
func loadConfig() (*config.Config, error) {
	path := ""
	if ConfigPath != nil {
		path = *ConfigPath
	}
	if path == "" {
		defaultPath, err := config.GetDefaultConfigPath()
		if err != nil {
			return nil, fmt.Errorf("failed to get default config path: %w", err)
		}
		path = defaultPath
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Site.URL == "" {
		return nil, fmt.Errorf("no site url configured, set site.url in %s", path)
	}
	return cfg, nil
}

// loadResolver wires a resolver from the configuration.
func loadResolver(cfg *config.Config) (*store.Resolver, error) {
	site := httpx.NewSiteClient(cfg.Site.URL, cfg.Settings.HTTPTimeout,
		httpx.StaticTokenSource{SessionToken: cfg.Site.SessionToken})
	dialer, err := httpx.NewStoreDialer(cfg.GetStoreURL(), cfg.Settings.HTTPTimeout, cfg.Settings.ProxyURL)
	if err != nil {
		return nil, err
	}

	return store.NewResolver(site, dialer, catalog.DefaultSchema(), cfg.Settings.CacheDir, store.Options{
		FallbackRoots: cfg.Settings.FallbackCacheDirs,
		Downloader:    download.NewManager(cfg.Settings.HTTPTimeout),
	}), nil
}

// parseReference builds an artifact reference from the kind and name command
// arguments.
func parseReference(kindArg, name, label string) (model.ArtifactReference, error) {
	kind, err := model.ParseKind(kindArg)
	if err != nil {
		return model.ArtifactReference{}, err
	}
	ref := model.ArtifactReference{Kind: kind, Name: name, Label: label}
	if ref.Name == "" && ref.Kind != model.KindCore {
		return model.ArtifactReference{}, fmt.Errorf("artifacts of kind %s require a name argument", kind)
	}
	return ref, nil
}
