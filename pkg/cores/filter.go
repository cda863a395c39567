package cores

import (
	"slices"
	"strings"

	"github.com/arthur-debert/arcbuilder/pkg/types"
)

// Filter returns a new selection. A non-empty include keeps only the listed
// identifiers; exclude always removes, whatever include says. Matching is
// literal.
func Filter(db types.CoreSelection, include, exclude []string) types.CoreSelection {
	result := make(types.CoreSelection, len(db))
	for id, core := range db {
		if len(include) > 0 && !slices.Contains(include, id) {
			continue
		}
		if slices.Contains(exclude, id) {
			continue
		}
		result[id] = core
	}
	return result
}

// SplitList expands flag values that may each hold a comma separated list.
// Blank items are dropped.
func SplitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, item := range strings.Split(v, ",") {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
	}
	return out
}
