// Package store resolves artifact versions against the remote catalog and the
// local cache: latest-version queries, offline fallbacks, downloads and the
// bookkeeping around them.
package store

import (
	"context"
	"path/filepath"

	"github.com/glorpus-work/bundlestore/internal/logger"
	"github.com/glorpus-work/bundlestore/pkg/catalog"
	"github.com/glorpus-work/bundlestore/pkg/label"
	"github.com/glorpus-work/bundlestore/pkg/metacache"
	"github.com/glorpus-work/bundlestore/pkg/model"
	"github.com/glorpus-work/bundlestore/pkg/vpattern"
)

// Resolver answers version queries for one site and one cache root.
type Resolver struct {
	site          catalog.CredentialsSource
	dialer        catalog.Dialer
	conns         *ConnectionCache
	schema        catalog.Schema
	meta          *metacache.Cache
	dl            Downloader
	env           Environment
	cacheRoot     string
	fallbackRoots []string
}

// Options carries the optional collaborators of a Resolver.
type Options struct {
	// FallbackRoots are additional read-only cache roots searched after the
	// primary root, in order.
	FallbackRoots []string
	// Downloader materializes payloads; required for Download and EnsureLocal.
	Downloader Downloader
	// Connections is the shared connection cache. A private one is created
	// when nil; share one instance across resolvers talking to the same site.
	Connections *ConnectionCache
	// Environment overrides the flags read from the process environment.
	Environment *Environment
}

// NewResolver creates a resolver for the given site, catalog schema and
// primary cache root.
func NewResolver(site catalog.CredentialsSource, dialer catalog.Dialer, schema catalog.Schema, cacheRoot string, opts Options) *Resolver {
	conns := opts.Connections
	if conns == nil {
		conns = NewConnectionCache()
	}
	env := EnvironmentFromOS()
	if opts.Environment != nil {
		env = *opts.Environment
	}
	return &Resolver{
		site:          site,
		dialer:        dialer,
		conns:         conns,
		schema:        schema,
		meta:          metacache.New(schema),
		dl:            opts.Downloader,
		env:           env,
		cacheRoot:     cacheRoot,
		fallbackRoots: opts.FallbackRoots,
	}
}

// LatestVersion queries the catalog for the newest version of the referenced
// bundle that satisfies the reference's label and the optional constraint
// pattern. The Version field of ref is ignored; the returned reference carries
// the resolved version. When the resolved version is already materialized
// locally, its metadata side-car is refreshed from the records just fetched.
func (r *Resolver) LatestVersion(ctx context.Context, ref model.ArtifactReference, pattern string) (model.ArtifactReference, error) {
	ks, ok := r.schema.ForKind(ref.Kind)
	if !ok {
		return model.ArtifactReference{}, ErrNoCatalogPresence
	}

	logger.Debug("resolving latest version", logger.Fields{
		"kind":    string(ref.Kind),
		"name":    ref.SystemName(),
		"label":   ref.Label,
		"pattern": pattern,
	})

	conn, err := r.connect(ctx)
	if err != nil {
		return model.ArtifactReference{}, err
	}

	filters := []catalog.Filter{
		{Field: catalog.FieldStatus, Op: catalog.OpIsNot, Value: catalog.StatusBad},
	}
	if !r.env.QAMode {
		filters = append(filters, catalog.Filter{Field: catalog.FieldStatus, Op: catalog.OpIsNot, Value: catalog.StatusUnderReview})
	}

	var bundleData catalog.Record
	if ks.BundleEntity != "" {
		bundleData, err = conn.Client.FindOne(ctx, ks.BundleEntity, []catalog.Filter{
			{Field: catalog.FieldSystemName, Op: catalog.OpIs, Value: ref.SystemName()},
		}, r.schema.BundleFields())
		if err != nil {
			return model.ArtifactReference{}, err
		}
		if bundleData == nil {
			return model.ArtifactReference{}, &catalog.NotFoundError{Kind: ref.Kind, Name: ref.SystemName()}
		}
		filters = append(filters, catalog.Filter{Field: ks.LinkField, Op: catalog.OpIs, Value: bundleData})
	}

	// Without a label or a constraint pattern the newest acceptable version
	// wins, so one record is all the query needs.
	limit := 0
	if ref.Label == "" && pattern == "" {
		limit = 1
	}

	records, err := conn.Client.Find(ctx, ks.VersionEntity, filters, r.schema.VersionFields(),
		[]catalog.Order{{Field: catalog.FieldCreatedAt, Direction: catalog.Descending}}, limit)
	if err != nil {
		return model.ArtifactReference{}, err
	}

	matching := records
	if ref.Label != "" {
		matching = make([]catalog.Record, 0, len(records))
		for _, rec := range records {
			if label.Matches(ref.Label, rec.TagNames()) {
				matching = append(matching, rec)
			}
		}
	}
	if len(matching) == 0 {
		return model.ArtifactReference{}, &NoMatchingVersionError{Ref: ref}
	}

	chosen := matching[0]
	if pattern != "" {
		codes := make([]string, 0, len(matching))
		for _, rec := range matching {
			codes = append(codes, rec.String(catalog.FieldVersionCode))
		}
		best := vpattern.SelectBest(codes, pattern)
		if best == "" {
			return model.ArtifactReference{}, &NoMatchingVersionError{Ref: ref, Pattern: pattern, Available: codes}
		}
		for _, rec := range matching {
			if rec.String(catalog.FieldVersionCode) == best {
				chosen = rec
				break
			}
		}
	}

	resolved := ref.WithVersion(chosen.String(catalog.FieldVersionCode))
	logger.Debugf("resolved %s", resolved)

	if path := r.LocalPath(resolved); path != "" {
		// The records are already in hand, keep the local side-car in step.
		if _, err := r.meta.Refresh(ctx, conn.Client, resolved, path, bundleData, chosen); err != nil {
			logger.Debugf("could not refresh cached metadata for %s: %v", resolved, err)
		}
	}
	return resolved, nil
}

// LatestCachedVersion returns the newest locally materialized version
// satisfying the reference's label and the optional constraint pattern. It
// never touches the network; label filtering relies on the metadata side-car,
// so versions cached without one do not match a labeled query. Returns nil
// when nothing cached qualifies.
func (r *Resolver) LatestCachedVersion(ref model.ArtifactReference, pattern string) *model.ArtifactReference {
	versions := r.ListLocalVersions(ref.Kind, ref.SystemName())

	codes := make([]string, 0, len(versions))
	for version, path := range versions {
		if ref.Label != "" {
			meta, err := r.meta.Load(path)
			if err != nil {
				logger.Debugf("skipping cached version at %s: %v", path, err)
				continue
			}
			if !label.Matches(ref.Label, meta.VersionData.TagNames()) {
				continue
			}
		}
		codes = append(codes, version)
	}

	best := vpattern.SelectBest(codes, pattern)
	if best == "" {
		return nil
	}
	resolved := ref.WithVersion(best)
	return &resolved
}

// metadataFor loads or, when possible, refreshes the cached metadata for ref.
func (r *Resolver) metadataFor(ctx context.Context, ref model.ArtifactReference) (metacache.Metadata, error) {
	path := r.LocalPath(ref)
	if path == "" {
		path = r.primaryPath(ref)
	}

	conn, err := r.connect(ctx)
	if err != nil {
		logger.Debugf("no catalog connection, using cached metadata only: %v", err)
		return r.meta.Load(path)
	}
	return r.meta.Refresh(ctx, conn.Client, ref, path, nil, nil)
}

// primaryPath returns where ref lives in the primary cache root, whether or
// not it exists there.
func (r *Resolver) primaryPath(ref model.ArtifactReference) string {
	return filepath.Join(r.cacheRoot, r.schema.DiskName, ref.SystemName(), ref.Version)
}
