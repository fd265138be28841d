package store

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/glorpus-work/bundlestore/pkg/model"
)

// ListLocalVersions scans every cache root for materialized versions of the
// named artifact and returns version code to directory path. Roots are
// scanned fallbacks first, then the legacy layout of the primary root, then
// the primary layout, so a version present in several places resolves to the
// primary root's copy.
func (r *Resolver) ListLocalVersions(kind model.Kind, name string) map[string]string {
	versions := make(map[string]string)

	for _, root := range r.fallbackRoots {
		scanVersionDir(filepath.Join(root, r.schema.DiskName, name), versions)
	}
	if ks, ok := r.schema.ForKind(kind); ok && ks.LegacyFolder != "" {
		scanVersionDir(filepath.Join(r.cacheRoot, ks.LegacyFolder, r.schema.DiskName, name), versions)
	}
	scanVersionDir(filepath.Join(r.cacheRoot, r.schema.DiskName, name), versions)

	return versions
}

// scanVersionDir records every version subdirectory of dir into versions,
// overwriting earlier entries for the same version code.
func scanVersionDir(dir string, versions map[string]string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		versions[entry.Name()] = filepath.Join(dir, entry.Name())
	}
}

// LocalPath returns the directory holding the referenced version, or "" when
// it is not materialized in any cache root. The primary layout wins over the
// legacy layout, which wins over the fallback roots.
func (r *Resolver) LocalPath(ref model.ArtifactReference) string {
	candidates := []string{r.primaryPath(ref)}
	if ks, ok := r.schema.ForKind(ref.Kind); ok && ks.LegacyFolder != "" {
		candidates = append(candidates, filepath.Join(r.cacheRoot, ks.LegacyFolder, r.schema.DiskName, ref.SystemName(), ref.Version))
	}
	for _, root := range r.fallbackRoots {
		candidates = append(candidates, filepath.Join(root, r.schema.DiskName, ref.SystemName(), ref.Version))
	}

	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			return path
		}
	}
	return ""
}
