// pkg/resolve/match_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test the two-stage tag lookup and the ROM and MRA plans

package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/arcbuilder/pkg/types"
)

func entry(path string, tags ...types.TagID) types.CatalogEntry {
	return types.CatalogEntry{Path: path, Tags: tags, URL: "https://example.com/" + path}
}

func TestDeriveCoreID(t *testing.T) {
	assert.Equal(t, "jtcps1", DeriveCoreID("arcadejtcps1"))
	assert.Equal(t, "jtcps1", DeriveCoreID("jtcps1"))
	assert.Equal(t, "jtfoo", DeriveCoreID("arcadejtfooarcade"))
	assert.Equal(t, "", DeriveCoreID("arcade"))
}

func TestResolveTagKeys(t *testing.T) {
	dict := types.NewTagDictionary("jtcps1", "7", "arcadejtcps1", "7", "jtkiwi", "8")

	assert.Equal(t, []string{"jtcps1", "arcadejtcps1"}, ResolveTagKeys(dict, "7"))
	assert.Equal(t, []string{"jtkiwi"}, ResolveTagKeys(dict, "8"))
	assert.Empty(t, ResolveTagKeys(dict, "9"))
}

func TestIsBuildableMRA(t *testing.T) {
	assert.True(t, IsBuildableMRA("mra/Final Fight (World).mra"))
	assert.True(t, IsBuildableMRA("x.mra"))
	assert.False(t, IsBuildableMRA("mra/_alternatives/_Final Fight/Final Fight (Japan).mra"))
	assert.False(t, IsBuildableMRA("mra/readme.txt"))
	assert.False(t, IsBuildableMRA("mra.mra/notes.md"))
}

func TestMatcher_ROMKeysUseBareKey(t *testing.T) {
	m := Matcher{
		Dict:      types.NewTagDictionary("jtcps1", "7", "arcadejtkiwi", "8"),
		Selection: types.CoreSelection{"jtcps1": {}, "jtkiwi": {}},
	}

	assert.Equal(t, []string{"jtcps1"}, m.ROMKeys(entry("a.zip", "7")))
	assert.Empty(t, m.ROMKeys(entry("b.zip", "8")), "ROM matching does not strip arcade")
}

func TestMatcher_MRAKeysUseDerivedID(t *testing.T) {
	m := Matcher{
		Dict:      types.NewTagDictionary("jtcps1", "7", "arcadejtkiwi", "8"),
		Selection: types.CoreSelection{"jtcps1": {}, "jtkiwi": {}},
	}

	assert.Equal(t, []string{"arcadejtkiwi"}, m.MRAKeys(entry("b.mra", "8")))
	assert.Equal(t, []string{"jtcps1"}, m.MRAKeys(entry("a.mra", "7")))
}

func TestPlanROMs_CompletenessAndUniqueness(t *testing.T) {
	// Two keys share the label and both are selected; the file appears once
	catalog := &types.Catalog{
		Files: []types.CatalogEntry{
			entry("mame/ffight.zip", "T", "U"),
			entry("mame/other.zip", "X"),
			entry("mame/kiwi.zip", "U"),
		},
		Tags: types.NewTagDictionary("jtcps1", "T", "jtcps15", "T", "jtkiwi", "U"),
	}
	selection := types.CoreSelection{"jtcps1": {}, "jtcps15": {}, "jtkiwi": {}}

	got := PlanROMs(catalog, selection)
	require.Len(t, got, 2)
	assert.Equal(t, "ffight.zip", got[0].Name())
	assert.Equal(t, "kiwi.zip", got[1].Name())
}

func TestPlanROMs_SelectionMatchesFullTagKey(t *testing.T) {
	catalog := &types.Catalog{
		Files: []types.CatalogEntry{entry("mame/foo.zip", "F")},
		Tags:  types.NewTagDictionary("jtfoo", "F"),
	}

	assert.Empty(t, PlanROMs(catalog, types.CoreSelection{"foo": {}}), "core name without the jt prefix does not match")
	got := PlanROMs(catalog, types.CoreSelection{"jtfoo": {}})
	require.Len(t, got, 1)
	assert.Equal(t, "foo.zip", got[0].Name())
}

func TestPlanROMs_EmptyCatalog(t *testing.T) {
	assert.Empty(t, PlanROMs(&types.Catalog{}, types.CoreSelection{"x": {}}))
	assert.Empty(t, PlanROMs(nil, types.CoreSelection{"x": {}}))
}

func TestPlanMRAs_GroupingOrder(t *testing.T) {
	catalog := &types.Catalog{
		Files: []types.CatalogEntry{
			entry("mra/a.mra", "K"),
			entry("mra/_alternatives/_a/a2.mra", "K"),
			entry("mra/readme.md", "K"),
			entry("mra/b.mra", "K"),
		},
		Tags: types.NewTagDictionary("arcadejtfoo", "K"),
	}

	groups, files := PlanMRAs(catalog, types.CoreSelection{"jtfoo": {}})

	assert.Equal(t, []string{"arcadejtfoo"}, groups.Keys())
	assert.Equal(t, []string{"a.mra", "b.mra"}, groups.Files("arcadejtfoo"))
	require.Len(t, files, 2)
	assert.Equal(t, "a.mra", files[0].Name())
	assert.Equal(t, "b.mra", files[1].Name())
}

func TestPlanMRAs_KeysStayDistinct(t *testing.T) {
	// Two tag keys deriving the same core id keep separate groups
	catalog := &types.Catalog{
		Files: []types.CatalogEntry{
			entry("mra/x.mra", "A"),
			entry("mra/y.mra", "B"),
		},
		Tags: types.NewTagDictionary("jtfoo", "A", "arcadejtfoo", "B"),
	}

	groups, _ := PlanMRAs(catalog, types.CoreSelection{"jtfoo": {}})
	assert.Equal(t, []string{"jtfoo", "arcadejtfoo"}, groups.Keys())
	assert.Equal(t, []string{"x.mra"}, groups.Files("jtfoo"))
	assert.Equal(t, []string{"y.mra"}, groups.Files("arcadejtfoo"))
}

func TestPlanMRAs_DuplicatesPreserved(t *testing.T) {
	// The same file tagged twice with the same label is appended twice
	catalog := &types.Catalog{
		Files: []types.CatalogEntry{entry("mra/a.mra", "K", "K")},
		Tags:  types.NewTagDictionary("jtfoo", "K"),
	}

	groups, files := PlanMRAs(catalog, types.CoreSelection{"jtfoo": {}})
	assert.Equal(t, []string{"a.mra", "a.mra"}, groups.Files("jtfoo"))
	assert.Len(t, files, 1)
}

func TestPlanMRAs_UnselectedIgnored(t *testing.T) {
	catalog := &types.Catalog{
		Files: []types.CatalogEntry{entry("mra/a.mra", "K")},
		Tags:  types.NewTagDictionary("arcadejtbar", "K"),
	}

	groups, files := PlanMRAs(catalog, types.CoreSelection{"jtfoo": {}})
	assert.Equal(t, 0, groups.Len())
	assert.Empty(t, files)
}
