// pkg/types/core_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test core selection helpers and the ordered core to MRA grouping

package types_test

import (
	"testing"

	"github.com/arthur-debert/arcbuilder/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestCoreSelection(t *testing.T) {
	sel := types.CoreSelection{
		"jtcps1": {DefaultMRA: "Street Fighter II"},
		"jtkiwi": {},
	}

	assert.True(t, sel.Has("jtkiwi"))
	assert.False(t, sel.Has("jtpang"))
	assert.Equal(t, []string{"jtcps1", "jtkiwi"}, sel.IDs())
}

func TestCoreMRAs_PreservesOrderAndDuplicates(t *testing.T) {
	var m types.CoreMRAs
	m.Add("jtkiwi", "b.mra")
	m.Add("jtcps1", "z.mra")
	m.Add("jtkiwi", "a.mra")
	m.Add("jtkiwi", "b.mra")

	assert.Equal(t, 2, m.Len())
	assert.Equal(t, []string{"jtkiwi", "jtcps1"}, m.Keys())
	assert.Equal(t, []string{"b.mra", "a.mra", "b.mra"}, m.Files("jtkiwi"))
	assert.Nil(t, m.Files("missing"))
}

func TestCoreMRAs_ReturnsCopies(t *testing.T) {
	var m types.CoreMRAs
	m.Add("k", "a.mra")

	files := m.Files("k")
	files[0] = "mutated.mra"
	assert.Equal(t, []string{"a.mra"}, m.Files("k"))
}
