// Package resolve turns catalog tags into the set of files a core selection
// needs.
//
// Matching is a two-stage lookup. A file tag is resolved to every tag key
// whose dictionary label equals it (ResolveTagKeys), and a tag key is turned
// into a core identifier by removing "arcade" (DeriveCoreID). ROM archives
// match on the bare tag key; MRA files match on the derived core identifier
// but are grouped under the original tag key.
package resolve

import (
	"strings"

	"github.com/arthur-debert/arcbuilder/pkg/types"
)

// ResolveTagKeys returns every dictionary key labelled tag, in dictionary
// order.
func ResolveTagKeys(dict types.TagDictionary, tag types.TagID) []string {
	return dict.KeysForLabel(tag)
}

// DeriveCoreID returns the core identifier of a tag key.
func DeriveCoreID(key string) string {
	return strings.ReplaceAll(key, "arcade", "")
}

// IsBuildableMRA reports whether a catalog path is an MRA the build tool
// should receive. Alternative sets are skipped.
func IsBuildableMRA(path string) bool {
	name := path
	if i := strings.LastIndex(path, "/"); i >= 0 {
		name = path[i+1:]
	}
	return strings.HasSuffix(name, ".mra") && !strings.Contains(path, "_alternatives")
}

// Matcher applies the tag rules of one catalog to a core selection.
type Matcher struct {
	Dict      types.TagDictionary
	Selection types.CoreSelection
}

// ROMKeys returns the tag keys of entry whose bare key is selected, one per
// match, in tag then dictionary order.
func (m Matcher) ROMKeys(entry types.CatalogEntry) []string {
	return m.match(entry, func(key string) string { return key })
}

// MRAKeys returns the tag keys of entry whose derived core identifier is
// selected, one per match.
func (m Matcher) MRAKeys(entry types.CatalogEntry) []string {
	return m.match(entry, DeriveCoreID)
}

func (m Matcher) match(entry types.CatalogEntry, coreID func(string) string) []string {
	var keys []string
	for _, tag := range entry.Tags {
		for _, key := range ResolveTagKeys(m.Dict, tag) {
			if m.Selection.Has(coreID(key)) {
				keys = append(keys, key)
			}
		}
	}
	return keys
}

// PlanROMs returns the ROM archives selection needs, in catalog order, each
// entry once.
func PlanROMs(catalog *types.Catalog, selection types.CoreSelection) []types.CatalogEntry {
	if catalog.Empty() {
		return nil
	}
	m := Matcher{Dict: catalog.Tags, Selection: selection}
	var out []types.CatalogEntry
	for _, entry := range catalog.Files {
		if len(m.ROMKeys(entry)) > 0 {
			out = append(out, entry)
		}
	}
	return out
}

// PlanMRAs groups the buildable MRA files of catalog under their matching
// tag keys and returns the files to cache, each entry once. Group order and
// member order follow the catalog; a file matched twice is listed twice.
func PlanMRAs(catalog *types.Catalog, selection types.CoreSelection) (types.CoreMRAs, []types.CatalogEntry) {
	var groups types.CoreMRAs
	if catalog.Empty() {
		return groups, nil
	}
	m := Matcher{Dict: catalog.Tags, Selection: selection}
	var files []types.CatalogEntry
	for _, entry := range catalog.Files {
		if !IsBuildableMRA(entry.Path) {
			continue
		}
		keys := m.MRAKeys(entry)
		for _, key := range keys {
			groups.Add(key, entry.Name())
		}
		if len(keys) > 0 {
			files = append(files, entry)
		}
	}
	return groups, files
}
