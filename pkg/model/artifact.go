// Package model provides the data structures describing resolvable artifact
// bundles: kinds, references and their addressing rules.
package model

import "fmt"

// Kind identifies the category of an artifact bundle. The kind decides which
// catalog entities apply to the artifact and where it lives in the local cache.
type Kind string

const (
	// KindApp is an application bundle.
	KindApp Kind = "app"
	// KindEngine is an engine bundle.
	KindEngine Kind = "engine"
	// KindFramework is a framework bundle.
	KindFramework Kind = "framework"
	// KindConfig is a configuration bundle.
	KindConfig Kind = "config"
	// KindInstalledConfig is a configuration bundle that only exists locally.
	// It has no catalog presence and is never downloaded.
	KindInstalledConfig Kind = "installed_config"
	// KindCore is the core runtime. Core versions have no bundle-level
	// catalog entity and the name component is optional.
	KindCore Kind = "core"
)

// Kinds lists all artifact kinds.
var Kinds = []Kind{KindApp, KindEngine, KindFramework, KindConfig, KindInstalledConfig, KindCore}

// ParseKind converts a string into a Kind.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown artifact kind %q", s)
}

// coreSystemName is the on-disk name used for core artifacts without an
// explicit name.
const coreSystemName = "core"

// ArtifactReference identifies exactly one addressable artifact version.
// It is a value type; equality is structural.
type ArtifactReference struct {
	Kind    Kind
	Name    string
	Version string
	Label   string
}

// Validate checks that the reference is addressable. The name is required for
// every kind except core.
func (r ArtifactReference) Validate() error {
	if r.Kind == "" {
		return fmt.Errorf("artifact reference is missing a kind")
	}
	if _, err := ParseKind(string(r.Kind)); err != nil {
		return err
	}
	if r.Name == "" && r.Kind != KindCore {
		return fmt.Errorf("artifact reference of kind %s requires a name", r.Kind)
	}
	if r.Version == "" {
		return fmt.Errorf("artifact reference %s requires a version", r.SystemName())
	}
	return nil
}

// SystemName returns the short name used in configuration files and for
// folders on disk.
func (r ArtifactReference) SystemName() string {
	if r.Name == "" && r.Kind == KindCore {
		return coreSystemName
	}
	return r.Name
}

// WithVersion returns a copy of the reference pointing at the given version.
func (r ArtifactReference) WithVersion(version string) ArtifactReference {
	r.Version = version
	return r
}

// String returns a human readable representation, e.g.
// "Store App image-loader v1.2.3 [label 2024.*]".
func (r ArtifactReference) String() string {
	display := map[Kind]string{
		KindApp:             "App",
		KindEngine:          "Engine",
		KindFramework:       "Framework",
		KindConfig:          "Config",
		KindInstalledConfig: "Installed Config",
		KindCore:            "Core",
	}

	var s string
	if r.Kind == KindCore {
		s = fmt.Sprintf("Store Core %s", r.Version)
	} else {
		s = fmt.Sprintf("Store %s %s %s", display[r.Kind], r.Name, r.Version)
	}
	if r.Label != "" {
		s += fmt.Sprintf(" [label %s]", r.Label)
	}
	return s
}
