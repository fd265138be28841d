// Package metacache maintains the per-version metadata side-car file living
// next to a materialized artifact's payload. The side-car holds a snapshot of
// the catalog's bundle and version records so that deprecation, changelog and
// label queries work without a network round trip.
package metacache

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/glorpus-work/bundlestore/internal/logger"
	"github.com/glorpus-work/bundlestore/pkg/catalog"
	"github.com/glorpus-work/bundlestore/pkg/fsutil"
	"github.com/glorpus-work/bundlestore/pkg/model"
)

// MetadataFile is the fixed side-car filename inside a cached version
// directory.
const MetadataFile = ".cached_metadata.json"

// Metadata is the cached catalog snapshot for one artifact version. Both
// fields are optional; BundleData is always absent for core artifacts, and a
// never-refreshed cache location yields an entirely empty Metadata.
type Metadata struct {
	BundleData  catalog.Record `json:"bundle_data,omitempty"`
	VersionData catalog.Record `json:"version_data,omitempty"`
}

// Cache reads and refreshes metadata side-car files under a fixed catalog
// schema.
type Cache struct {
	schema catalog.Schema
}

// New creates a metadata cache for the given catalog schema.
func New(schema catalog.Schema) *Cache {
	return &Cache{schema: schema}
}

// Load reads the side-car file inside the given cache directory. A missing
// file is not an error and yields an empty Metadata; a present but
// undecodable file yields a *CorruptError.
func (c *Cache) Load(path string) (Metadata, error) {
	cacheFile := filepath.Join(path, MetadataFile)
	data, err := os.ReadFile(cacheFile)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Debugf("no cached metadata at %s, proceeding with empty metadata", cacheFile)
		return Metadata{}, nil
	}
	if err != nil {
		return Metadata{}, &CorruptError{Path: cacheFile, Err: err}
	}

	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return Metadata{}, &CorruptError{Path: cacheFile, Err: err}
	}
	return meta, nil
}

// Refresh updates the side-car file for the given artifact reference. When
// versionData is supplied the remote round trip is skipped entirely
// (bundleData may still be nil, as it always is for core artifacts).
// Otherwise the bundle record (non-core kinds only) and the version record
// are fetched from the catalog; a missing record fails with
// *catalog.NotFoundError.
//
// A write failure is not an error: a read-only cache root simply stays stale
// and every query falls back to the remote catalog.
func (c *Cache) Refresh(ctx context.Context, client catalog.Client, ref model.ArtifactReference, path string, bundleData, versionData catalog.Record) (Metadata, error) {
	logger.Debugf("refreshing metadata cache for %s", ref)

	if versionData == nil {
		var err error
		bundleData, versionData, err = c.fetch(ctx, client, ref)
		if err != nil {
			return Metadata{}, err
		}
	} else {
		logger.Debugf("caching pre-fetched catalog data for %s", ref)
	}

	meta := Metadata{
		BundleData:  bundleData,
		VersionData: versionData,
	}
	c.persist(ref, path, meta)
	return meta, nil
}

// fetch retrieves the bundle and version records from the catalog.
func (c *Cache) fetch(ctx context.Context, client catalog.Client, ref model.ArtifactReference) (bundleData, versionData catalog.Record, err error) {
	ks, ok := c.schema.ForKind(ref.Kind)
	if !ok {
		return nil, nil, &catalog.NotFoundError{Kind: ref.Kind, Name: ref.SystemName()}
	}

	versionFilters := []catalog.Filter{
		{Field: catalog.FieldVersionCode, Op: catalog.OpIs, Value: ref.Version},
	}

	if ks.BundleEntity != "" {
		bundleData, err = client.FindOne(ctx, ks.BundleEntity, []catalog.Filter{
			{Field: catalog.FieldSystemName, Op: catalog.OpIs, Value: ref.SystemName()},
		}, c.schema.BundleFields())
		if err != nil {
			return nil, nil, err
		}
		if bundleData == nil {
			return nil, nil, &catalog.NotFoundError{Kind: ref.Kind, Name: ref.SystemName()}
		}
		versionFilters = append([]catalog.Filter{
			{Field: ks.LinkField, Op: catalog.OpIs, Value: bundleData},
		}, versionFilters...)
	}

	versionData, err = client.FindOne(ctx, ks.VersionEntity, versionFilters, c.schema.VersionFields())
	if err != nil {
		return nil, nil, err
	}
	if versionData == nil {
		return nil, nil, &catalog.NotFoundError{Kind: ref.Kind, Name: ref.SystemName(), Version: ref.Version}
	}
	return bundleData, versionData, nil
}

// persist writes the side-car file, swallowing and logging any failure so a
// read-only cache root never breaks resolution.
func (c *Cache) persist(ref model.ArtifactReference, path string, meta Metadata) {
	cacheFile := filepath.Join(path, MetadataFile)

	data, err := json.Marshal(meta)
	if err != nil {
		logger.Warnf("did not update metadata cache %s: %v", cacheFile, err)
		return
	}
	if err := os.MkdirAll(path, fsutil.DirModeDefault); err != nil {
		logger.Debugf("did not update metadata cache %s: %v", cacheFile, err)
		return
	}
	if err := writeFileSync(cacheFile, data); err != nil {
		logger.Debugf("did not update metadata cache %s: %v", cacheFile, err)
		return
	}
	logger.Debugf("wrote metadata cache %s", cacheFile)
}

// writeFileSync writes data with ordered flush-then-close semantics. No
// atomic rename is assumed; a torn write surfaces later as a corrupt file and
// is treated as a cache miss.
func writeFileSync(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fsutil.FileModeDefault)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
