package types

import "slices"

// Core is one curated arcade system entry of the cores DB.
type Core struct {
	// DefaultMRA is a file name prefix selecting the primary variant.
	DefaultMRA string `json:"default_mra" yaml:"default_mra"`

	// DefaultARC overrides the primary output name, without extension.
	DefaultARC string `json:"default_arc" yaml:"default_arc"`
}

// CoreSelection maps core identifiers to their metadata.
type CoreSelection map[string]Core

// Has reports whether id is selected.
func (s CoreSelection) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// IDs returns the selected identifiers, sorted.
func (s CoreSelection) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// CoreMRAs groups MRA file names by the tag key that matched them. Keys and
// names keep discovery order; duplicate names are preserved.
type CoreMRAs struct {
	keys  []string
	files map[string][]string
}

// Add appends name to the list of key.
func (m *CoreMRAs) Add(key, name string) {
	if m.files == nil {
		m.files = make(map[string][]string)
	}
	if _, ok := m.files[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.files[key] = append(m.files[key], name)
}

// Keys returns the tag keys in discovery order.
func (m CoreMRAs) Keys() []string {
	return slices.Clone(m.keys)
}

// Files returns the MRA names recorded for key.
func (m CoreMRAs) Files(key string) []string {
	return slices.Clone(m.files[key])
}

// Len returns the number of tag keys.
func (m CoreMRAs) Len() int {
	return len(m.keys)
}
