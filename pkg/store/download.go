package store

import (
	"context"
	"fmt"

	"github.com/glorpus-work/bundlestore/internal/logger"
	"github.com/glorpus-work/bundlestore/pkg/catalog"
	"github.com/glorpus-work/bundlestore/pkg/errors"
	"github.com/glorpus-work/bundlestore/pkg/model"
)

// Download materializes the referenced version into the primary cache root
// and returns the directory it was unpacked into. The metadata side-car is
// written alongside the payload and a usage event is recorded in the catalog;
// a failed event never fails the download.
func (r *Resolver) Download(ctx context.Context, ref model.ArtifactReference) (string, error) {
	if err := ref.Validate(); err != nil {
		return "", err
	}
	ks, ok := r.schema.ForKind(ref.Kind)
	if !ok {
		return "", ErrNoCatalogPresence
	}
	if r.dl == nil {
		return "", fmt.Errorf("resolver has no downloader configured")
	}

	conn, err := r.connect(ctx)
	if err != nil {
		return "", err
	}

	destDir := r.primaryPath(ref)
	meta, err := r.meta.Refresh(ctx, conn.Client, ref, destDir, nil, nil)
	if err != nil {
		return "", err
	}

	payload := meta.VersionData.Rec(catalog.FieldPayload)
	payloadURL := payload.String(catalog.FieldURL)
	if payloadURL == "" {
		return "", fmt.Errorf("version record for %s carries no payload", ref)
	}

	logger.Info("downloading artifact", logger.Fields{
		"artifact": ref.String(),
		"dest":     destDir,
	})
	if err := r.dl.DownloadAndUnpack(ctx, payloadURL, destDir); err != nil {
		return "", errors.Wrapf(err, "could not download %s", ref)
	}

	r.emitDownloadEvent(ctx, conn, ks, ref, meta.VersionData)
	return destDir, nil
}

// emitDownloadEvent records a usage event for the download. Failures are
// logged and swallowed; telemetry never blocks the artifact from being used.
func (r *Resolver) emitDownloadEvent(ctx context.Context, conn *Connection, ks catalog.KindSchema, ref model.ArtifactReference, versionData catalog.Record) {
	data := catalog.Record{
		catalog.FieldDescription:    fmt.Sprintf("%s: %s %s was downloaded", ks.DownloadEvent, ref.SystemName(), ref.Version),
		catalog.EventFieldType:      ks.DownloadEvent,
		catalog.EventFieldEntity:    versionData,
		catalog.EventFieldUser:      conn.Identity.Record(),
		catalog.EventFieldProject:   r.schema.Project,
		catalog.EventFieldAttribute: catalog.FieldPayload,
	}
	if _, err := conn.Client.Create(ctx, catalog.EventLogEntity, data); err != nil {
		logger.Warnf("could not record download event for %s: %v", ref, err)
	}
}

// EnsureLocal returns the local directory of the referenced version,
// downloading it first when it is not yet materialized.
func (r *Resolver) EnsureLocal(ctx context.Context, ref model.ArtifactReference) (string, error) {
	if path := r.LocalPath(ref); path != "" {
		return path, nil
	}
	return r.Download(ctx, ref)
}

// DeprecationStatus reports whether the referenced bundle is deprecated and
// the message attached to the deprecation. Kinds without a bundle-level
// catalog entity are never deprecated.
func (r *Resolver) DeprecationStatus(ctx context.Context, ref model.ArtifactReference) (bool, string, error) {
	ks, ok := r.schema.ForKind(ref.Kind)
	if !ok || ks.BundleEntity == "" {
		return false, "", nil
	}

	meta, err := r.metadataFor(ctx, ref)
	if err != nil {
		return false, "", err
	}
	if meta.BundleData.String(catalog.FieldStatus) != catalog.StatusDeprecated {
		return false, "", nil
	}

	msg := meta.BundleData.String(catalog.FieldDeprecationMessage)
	if msg == "" {
		msg = "No reason given."
	}
	return true, msg, nil
}

// Changelog returns the release summary and release notes URL of the
// referenced version. Both are best effort: a version without release notes
// yields empty strings, not an error.
func (r *Resolver) Changelog(ctx context.Context, ref model.ArtifactReference) (summary, url string, err error) {
	if _, ok := r.schema.ForKind(ref.Kind); !ok {
		return "", "", ErrNoCatalogPresence
	}

	meta, err := r.metadataFor(ctx, ref)
	if err != nil {
		return "", "", err
	}

	summary = meta.VersionData.String(catalog.FieldDescription)
	notes := meta.VersionData.Rec(catalog.FieldReleaseNotes)
	if notes == nil {
		logger.Debugf("no release notes attached to %s", ref)
		return summary, "", nil
	}
	return summary, notes.String(catalog.FieldURL), nil
}
