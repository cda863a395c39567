// pkg/cores/cores_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: Real filesystem
// PURPOSE: Test cores DB loading and the include/exclude filter

package cores

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/arcbuilder/pkg/errors"
	"github.com/arthur-debert/arcbuilder/pkg/types"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_JSON(t *testing.T) {
	path := writeFile(t, "cores.json", `{
		"jtcps1": {"default_mra": "Final Fight", "default_arc": "ffight"},
		"jtkiwi": {"default_mra": "", "default_arc": ""},
		"jtgng": null
	}`)

	db, err := Load(nil, path)
	require.NoError(t, err)

	assert.Equal(t, []string{"jtcps1", "jtgng", "jtkiwi"}, db.IDs())
	assert.Equal(t, types.Core{DefaultMRA: "Final Fight", DefaultARC: "ffight"}, db["jtcps1"])
	assert.Equal(t, types.Core{}, db["jtgng"])
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "cores.yaml", `
jtcps1:
  default_mra: Final Fight
  default_arc: ffight
jtkiwi: {}
`)

	db, err := Load(nil, path)
	require.NoError(t, err)
	assert.True(t, db.Has("jtkiwi"))
	assert.Equal(t, "ffight", db["jtcps1"].DefaultARC)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(nil, filepath.Join(t.TempDir(), "absent.json"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrCoresDBLoad))

	_, err = Load(nil, writeFile(t, "bad.json", `{"jtcps1": `))
	assert.True(t, errors.IsErrorCode(err, errors.ErrCoresDBLoad))

	_, err = Load(nil, "")
	assert.True(t, errors.IsErrorCode(err, errors.ErrCoresDBLoad))
	assert.True(t, errors.IsFatal(err))
}

func sampleDB() types.CoreSelection {
	return types.CoreSelection{
		"jtcps1": {DefaultMRA: "Final Fight"},
		"jtcps2": {},
		"jtkiwi": {},
		"jtgng":  {},
	}
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name    string
		include []string
		exclude []string
		want    []string
	}{
		{"no lists keeps all", nil, nil, []string{"jtcps1", "jtcps2", "jtgng", "jtkiwi"}},
		{"include narrows", []string{"jtcps1", "jtkiwi"}, nil, []string{"jtcps1", "jtkiwi"}},
		{"exclude removes", nil, []string{"jtgng"}, []string{"jtcps1", "jtcps2", "jtkiwi"}},
		{"exclude wins", []string{"jtcps1", "jtkiwi"}, []string{"jtkiwi"}, []string{"jtcps1"}},
		{"literal match only", []string{"cps1", "JTCPS1"}, nil, []string{}},
		{"unknown include ignored", []string{"jtnope", "jtgng"}, nil, []string{"jtgng"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(sampleDB(), tt.include, tt.exclude)
			assert.Equal(t, tt.want, got.IDs())
		})
	}
}

func TestFilter_Idempotent(t *testing.T) {
	lists := [][]string{nil, {"jtcps1"}, {"jtcps1", "jtgng"}, {"jtnope"}}
	for _, inc := range lists {
		for _, exc := range lists {
			once := Filter(sampleDB(), inc, exc)
			twice := Filter(once, inc, exc)
			assert.Equal(t, once, twice, "include=%v exclude=%v", inc, exc)
		}
	}
}

func TestFilter_ExcludeDominance(t *testing.T) {
	ids := []string{"jtcps1", "jtcps2", "jtkiwi", "jtgng"}
	for _, id := range ids {
		got := Filter(sampleDB(), ids, []string{id})
		assert.False(t, got.Has(id))
		assert.Len(t, got, len(ids)-1)
	}
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	db := sampleDB()
	_ = Filter(db, []string{"jtcps1"}, []string{"jtcps2"})
	assert.Len(t, db, 4)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"jtcps1", "jtkiwi", "jtgng"}, SplitList([]string{"jtcps1,jtkiwi", " jtgng ", ",,"}))
	assert.Nil(t, SplitList(nil))
}
