package catalog

import "github.com/glorpus-work/bundlestore/pkg/model"

// Field names read from catalog records.
const (
	FieldID                 = "id"
	FieldName               = "name"
	FieldSystemName         = "system_name"
	FieldStatus             = "status"
	FieldDeprecationMessage = "deprecation_message"
	FieldVersionCode        = "code"
	FieldDescription        = "description"
	FieldTags               = "tags"
	FieldReleaseNotes       = "release_notes"
	FieldDocumentation      = "documentation"
	FieldPayload            = "payload"
	FieldCreatedAt          = "created_at"
	FieldURL                = "url"
)

// Status codes carried in FieldStatus.
const (
	// StatusBad marks a version as broken; it is always excluded.
	StatusBad = "bad"
	// StatusUnderReview marks a version as not yet released; it is excluded
	// unless QA mode is active.
	StatusUnderReview = "rev"
	// StatusDeprecated marks a bundle as deprecated.
	StatusDeprecated = "dep"
)

// EventLogEntity is the entity type receiving download usage events.
const EventLogEntity = "EventLog"

// ServiceAccountEntity holds the catalog-side accounts; the acting identity
// is resolved against it after connecting.
const ServiceAccountEntity = "ServiceAccount"

// FieldType is the entity type discriminator present on every record.
const FieldType = "type"

// Usage event fields.
const (
	EventFieldType      = "event_type"
	EventFieldEntity    = "entity"
	EventFieldUser      = "user"
	EventFieldProject   = "project"
	EventFieldAttribute = "attribute_name"
)

// KindSchema names the catalog entities for one artifact kind. Kinds without
// a bundle-level entity (core) leave BundleEntity and LinkField empty; kinds
// with no catalog presence at all (installed configs) have no KindSchema.
type KindSchema struct {
	// BundleEntity holds one record per named bundle (e.g. per app).
	BundleEntity string
	// VersionEntity holds one record per released version of a bundle.
	VersionEntity string
	// LinkField is the field on a version record linking back to its bundle.
	LinkField string
	// DownloadEvent is the event type emitted when a payload is downloaded.
	DownloadEvent string
	// LegacyFolder is the per-kind folder of the pre-1.0 cache layout.
	LegacyFolder string
}

// Schema describes one catalog deployment: entity naming per artifact kind
// plus the on-disk cache folder name. Two deployments with different entity
// naming are handled by two Schema values, not two resolver implementations.
type Schema struct {
	// DiskName is the cache folder name for artifacts from this catalog.
	DiskName string
	// Project is the project record attached to usage events.
	Project Record
	// Kinds maps each artifact kind to its entity naming.
	Kinds map[model.Kind]KindSchema
}

// DefaultSchema returns the entity naming of the hosted catalog service.
func DefaultSchema() Schema {
	return Schema{
		DiskName: "store",
		Project:  Record{},
		Kinds: map[model.Kind]KindSchema{
			model.KindApp: {
				BundleEntity:  "AppBundle",
				VersionEntity: "AppVersion",
				LinkField:     "app",
				DownloadEvent: "Store_App_Download",
				LegacyFolder:  "apps",
			},
			model.KindEngine: {
				BundleEntity:  "EngineBundle",
				VersionEntity: "EngineVersion",
				LinkField:     "engine",
				DownloadEvent: "Store_Engine_Download",
				LegacyFolder:  "engines",
			},
			model.KindFramework: {
				BundleEntity:  "FrameworkBundle",
				VersionEntity: "FrameworkVersion",
				LinkField:     "framework",
				DownloadEvent: "Store_Framework_Download",
				LegacyFolder:  "frameworks",
			},
			model.KindConfig: {
				BundleEntity:  "ConfigBundle",
				VersionEntity: "ConfigVersion",
				LinkField:     "config",
				DownloadEvent: "Store_Config_Download",
				LegacyFolder:  "configs",
			},
			model.KindCore: {
				VersionEntity: "CoreVersion",
				DownloadEvent: "Store_Core_Download",
				LegacyFolder:  "cores",
			},
		},
	}
}

// ForKind returns the entity naming for the given kind. The second return is
// false for kinds with no catalog presence.
func (s Schema) ForKind(kind model.Kind) (KindSchema, bool) {
	ks, ok := s.Kinds[kind]
	return ks, ok
}

// VersionFields lists the version record fields worth caching locally.
func (s Schema) VersionFields() []string {
	return []string{
		FieldID,
		FieldVersionCode,
		FieldStatus,
		FieldDescription,
		FieldTags,
		FieldReleaseNotes,
		FieldDocumentation,
		FieldPayload,
	}
}

// BundleFields lists the bundle record fields worth caching locally.
func (s Schema) BundleFields() []string {
	return []string{
		FieldID,
		FieldSystemName,
		FieldStatus,
		FieldDeprecationMessage,
	}
}
