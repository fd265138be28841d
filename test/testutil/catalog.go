// Package testutil provides in-memory catalog fakes for tests. The fixture
// catalog honors the query surface the resolver actually uses: is and is_not
// filters, ordering by a single field and result limits, while recording
// every call for assertions.
package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/glorpus-work/bundlestore/pkg/catalog"
)

// FindCall records one Find invocation against the fixture catalog.
type FindCall struct {
	EntityType string
	Filters    []catalog.Filter
	Order      []catalog.Order
	Limit      int
}

// FixtureCatalog is an in-memory catalog.Client backed by static records per
// entity type. Safe for concurrent use.
type FixtureCatalog struct {
	mu       sync.Mutex
	entities map[string][]catalog.Record

	FindCalls    []FindCall
	FindOneCalls int
	Created      map[string][]catalog.Record

	// Err, when set, is returned by every call.
	Err error
	// CreateErr, when set, is returned by Create only.
	CreateErr error
}

// NewFixtureCatalog creates an empty fixture catalog.
func NewFixtureCatalog() *FixtureCatalog {
	return &FixtureCatalog{
		entities: make(map[string][]catalog.Record),
		Created:  make(map[string][]catalog.Record),
	}
}

// Add registers records under the given entity type.
func (f *FixtureCatalog) Add(entityType string, records ...catalog.Record) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entities[entityType] = append(f.entities[entityType], records...)
}

// FindOne implements catalog.Client.
func (f *FixtureCatalog) FindOne(_ context.Context, entityType string, filters []catalog.Filter, _ []string) (catalog.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.FindOneCalls++
	if f.Err != nil {
		return nil, f.Err
	}
	for _, rec := range f.entities[entityType] {
		if matchesAll(rec, filters) {
			return rec, nil
		}
	}
	return nil, nil
}

// Find implements catalog.Client.
func (f *FixtureCatalog) Find(_ context.Context, entityType string, filters []catalog.Filter, _ []string, order []catalog.Order, limit int) ([]catalog.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.FindCalls = append(f.FindCalls, FindCall{EntityType: entityType, Filters: filters, Order: order, Limit: limit})
	if f.Err != nil {
		return nil, f.Err
	}

	var matched []catalog.Record
	for _, rec := range f.entities[entityType] {
		if matchesAll(rec, filters) {
			matched = append(matched, rec)
		}
	}
	sortRecords(matched, order)
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

// Create implements catalog.Client.
func (f *FixtureCatalog) Create(_ context.Context, entityType string, data catalog.Record) (catalog.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	if f.CreateErr != nil {
		return nil, f.CreateErr
	}
	f.Created[entityType] = append(f.Created[entityType], data)
	return data, nil
}

func matchesAll(rec catalog.Record, filters []catalog.Filter) bool {
	for _, flt := range filters {
		if !matches(rec, flt) {
			return false
		}
	}
	return true
}

func matches(rec catalog.Record, flt catalog.Filter) bool {
	got := rec[flt.Field]
	equal := filterValueEqual(got, flt.Value)
	switch flt.Op {
	case catalog.OpIs:
		return equal
	case catalog.OpIsNot:
		return !equal
	}
	return false
}

// filterValueEqual compares a record field against a filter value. Record
// values used as filters (entity links) compare by id.
func filterValueEqual(got, want any) bool {
	wantRec, wok := toRecord(want)
	gotRec, gok := toRecord(got)
	if wok && gok {
		return wantRec.Int(catalog.FieldID) == gotRec.Int(catalog.FieldID)
	}
	return got == want
}

func toRecord(v any) (catalog.Record, bool) {
	switch r := v.(type) {
	case catalog.Record:
		return r, true
	case map[string]any:
		return catalog.Record(r), true
	}
	return nil, false
}

func sortRecords(records []catalog.Record, order []catalog.Order) {
	if len(order) == 0 {
		return
	}
	o := order[0]
	sort.SliceStable(records, func(i, j int) bool {
		a := records[i].String(o.Field)
		b := records[j].String(o.Field)
		if o.Direction == catalog.Descending {
			return a > b
		}
		return a < b
	})
}

// SeedServiceAccount registers the catalog account record the connection
// handshake resolves the acting identity against.
func SeedServiceAccount(cat *FixtureCatalog, login string, id int) {
	cat.Add(catalog.ServiceAccountEntity, catalog.Record{
		catalog.FieldName: login,
		catalog.FieldType: "HumanUser",
		catalog.FieldID:   id,
	})
}

// FixtureSite is a canned catalog.CredentialsSource. When ErrOnce is set the
// first InstallCredentials call returns it and subsequent calls succeed,
// which mimics an expired site session that heals after a refresh.
type FixtureSite struct {
	mu sync.Mutex

	URL   string
	Creds catalog.Credentials

	ErrOnce error
	Err     error

	InstallCalls int
	RefreshCalls int
}

// BaseURL implements catalog.CredentialsSource.
func (s *FixtureSite) BaseURL() string { return s.URL }

// InstallCredentials implements catalog.CredentialsSource.
func (s *FixtureSite) InstallCredentials(context.Context) (catalog.Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.InstallCalls++
	if s.Err != nil {
		return catalog.Credentials{}, s.Err
	}
	if s.ErrOnce != nil {
		err := s.ErrOnce
		s.ErrOnce = nil
		return catalog.Credentials{}, err
	}
	return s.Creds, nil
}

// RefreshSession implements catalog.CredentialsSource.
func (s *FixtureSite) RefreshSession(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.RefreshCalls++
	return nil
}

// FixtureDialer is a catalog.Dialer handing out a fixed client.
type FixtureDialer struct {
	mu sync.Mutex

	Client catalog.Client
	Err    error

	DialCalls int
}

// Dial implements catalog.Dialer.
func (d *FixtureDialer) Dial(context.Context, catalog.Credentials) (catalog.Client, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.DialCalls++
	if d.Err != nil {
		return nil, d.Err
	}
	return d.Client, nil
}
