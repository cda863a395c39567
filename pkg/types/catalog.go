package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// TagID identifies a tag in a catalog. Catalogs publish tags and dictionary
// labels either as JSON numbers or as strings; both decode to the same
// canonical text so that 7 and "7" compare equal.
type TagID string

// UnmarshalJSON accepts a JSON string, number or null.
func (t *TagID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*t = ""
		return nil
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = TagID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("tag must be a string or a number: %w", err)
	}
	if i, err := n.Int64(); err == nil {
		*t = TagID(strconv.FormatInt(i, 10))
		return nil
	}
	*t = TagID(n.String())
	return nil
}

// CatalogEntry is one file record of a remote catalog. Immutable once loaded.
type CatalogEntry struct {
	Path string  `json:"-"`
	Size int64   `json:"size"`
	Hash string  `json:"hash"`
	URL  string  `json:"url"`
	Tags []TagID `json:"tags"`
}

// Name returns the last segment of the entry path.
func (e CatalogEntry) Name() string {
	if i := strings.LastIndex(e.Path, "/"); i >= 0 {
		return e.Path[i+1:]
	}
	return e.Path
}

// TagDictionary maps tag keys to labels, keeping the document order of the
// keys. Many keys may share one label.
type TagDictionary struct {
	keys    []string
	labels  map[string]TagID
	byLabel map[TagID][]string
}

// NewTagDictionary builds a dictionary from key/label pairs, in order.
func NewTagDictionary(pairs ...string) TagDictionary {
	if len(pairs)%2 != 0 {
		panic("types: NewTagDictionary needs key/label pairs")
	}
	var d TagDictionary
	for i := 0; i < len(pairs); i += 2 {
		d.set(pairs[i], TagID(pairs[i+1]))
	}
	return d
}

func (d *TagDictionary) set(key string, label TagID) {
	if d.labels == nil {
		d.labels = make(map[string]TagID)
		d.byLabel = make(map[TagID][]string)
	}
	if old, ok := d.labels[key]; ok {
		d.byLabel[old] = slices.DeleteFunc(d.byLabel[old], func(k string) bool { return k == key })
	} else {
		d.keys = append(d.keys, key)
	}
	d.labels[key] = label
	d.byLabel[label] = append(d.byLabel[label], key)
}

// Keys returns the dictionary keys in document order.
func (d TagDictionary) Keys() []string {
	return slices.Clone(d.keys)
}

// Label returns the label of key.
func (d TagDictionary) Label(key string) (TagID, bool) {
	label, ok := d.labels[key]
	return label, ok
}

// KeysForLabel returns every key whose label equals label, in document order.
func (d TagDictionary) KeysForLabel(label TagID) []string {
	return slices.Clone(d.byLabel[label])
}

// Len returns the number of keys.
func (d TagDictionary) Len() int {
	return len(d.keys)
}

// UnmarshalJSON decodes a JSON object keeping key order.
func (d *TagDictionary) UnmarshalJSON(data []byte) error {
	*d = TagDictionary{}
	return decodeOrderedObject(data, func(key string, dec *json.Decoder) error {
		var label TagID
		if err := dec.Decode(&label); err != nil {
			return fmt.Errorf("tag %q: %w", key, err)
		}
		d.set(key, label)
		return nil
	})
}

// Catalog is a loaded remote dataset: its files in document order and its
// tag dictionary.
type Catalog struct {
	Files []CatalogEntry
	Tags  TagDictionary
}

// Empty reports whether nothing was loaded.
func (c *Catalog) Empty() bool {
	return c == nil || (len(c.Files) == 0 && c.Tags.Len() == 0)
}

// UnmarshalJSON decodes the "files" and "tag_dictionary" members, keeping
// document order, and skips everything else.
func (c *Catalog) UnmarshalJSON(data []byte) error {
	*c = Catalog{}
	return decodeOrderedObject(data, func(key string, dec *json.Decoder) error {
		switch key {
		case "files":
			var raw json.RawMessage
			if err := dec.Decode(&raw); err != nil {
				return err
			}
			return decodeOrderedObject(raw, func(path string, dec *json.Decoder) error {
				var entry CatalogEntry
				if err := dec.Decode(&entry); err != nil {
					return fmt.Errorf("file %q: %w", path, err)
				}
				entry.Path = path
				c.Files = append(c.Files, entry)
				return nil
			})
		case "tag_dictionary":
			return dec.Decode(&c.Tags)
		default:
			var skip json.RawMessage
			return dec.Decode(&skip)
		}
	})
}

// decodeOrderedObject walks a JSON object member by member, handing each key
// to fn with the decoder positioned on its value. null decodes as empty.
func decodeOrderedObject(data []byte, fn func(key string, dec *json.Decoder) error) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected a JSON object, got %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected an object key, got %v", tok)
		}
		if err := fn(key, dec); err != nil {
			return err
		}
	}
	_, err = dec.Token()
	return err
}
