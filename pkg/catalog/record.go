package catalog

// Record is an opaque catalog record. The core never interprets its full
// shape; it only reads the handful of named fields declared in schema.go.
// Values may come straight from the catalog client or from a JSON round trip
// through the metadata side-car file, so numbers can be either int or float64.
type Record map[string]any

// String returns the named field as a string, or "" when absent or not a
// string.
func (r Record) String(key string) string {
	if r == nil {
		return ""
	}
	s, _ := r[key].(string)
	return s
}

// Int returns the named field as an int, accepting the float64 form JSON
// decoding produces. Zero when absent.
func (r Record) Int(key string) int {
	if r == nil {
		return 0
	}
	switch v := r[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

// Rec returns the named field as a nested record, or nil.
func (r Record) Rec(key string) Record {
	if r == nil {
		return nil
	}
	switch v := r[key].(type) {
	case Record:
		return v
	case map[string]any:
		return Record(v)
	}
	return nil
}

// TagNames returns the names of the records in the "tags" field. It returns
// nil when the field is absent or malformed, which callers treat as "tag data
// not available" as opposed to an empty tag list.
func (r Record) TagNames() []string {
	if r == nil {
		return nil
	}
	raw, ok := r[FieldTags]
	if !ok {
		return nil
	}
	var names []string
	switch list := raw.(type) {
	case []Record:
		names = make([]string, 0, len(list))
		for _, t := range list {
			names = append(names, t.String(FieldName))
		}
	case []any:
		names = make([]string, 0, len(list))
		for _, t := range list {
			rec := Record(nil)
			if m, ok := t.(map[string]any); ok {
				rec = Record(m)
			} else if tr, ok := t.(Record); ok {
				rec = tr
			} else {
				return nil
			}
			names = append(names, rec.String(FieldName))
		}
	default:
		return nil
	}
	return names
}
