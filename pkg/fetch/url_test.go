// pkg/fetch/url_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test URL escaping and template expansion

package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeURL(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "plain url unchanged",
			raw:  "https://example.com/roms/mslug.zip",
			want: "https://example.com/roms/mslug.zip",
		},
		{
			name: "spaces and brackets escaped",
			raw:  "https://example.com/mra/Metal Slug (World).mra",
			want: "https://example.com/mra/Metal%20Slug%20%28World%29.mra",
		},
		{
			name: "query escaped",
			raw:  "https://example.com/get?file=a b&x=1",
			want: "https://example.com/get?file%3Da%20b%26x%3D1",
		},
		{
			name: "already escaped left alone",
			raw:  "https://example.com/mra/Metal%20Slug.mra",
			want: "https://example.com/mra/Metal%20Slug.mra",
		},
		{
			name: "fragment dropped",
			raw:  "https://example.com/a b.zip#frag",
			want: "https://example.com/a%20b.zip",
		},
		{
			name: "invalid escape is encoded",
			raw:  "https://example.com/50%off.zip",
			want: "https://example.com/50%25off.zip",
		},
		{
			name: "no scheme untouched",
			raw:  "relative/path name.zip",
			want: "relative/path name.zip",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapeURL(tt.raw))
		})
	}
}

func TestEscapeURL_Idempotent(t *testing.T) {
	raw := "https://example.com/mra/Street Fighter II' (World 910522).mra"
	once := EscapeURL(raw)
	assert.Equal(t, once, EscapeURL(once))
}

func TestExpand(t *testing.T) {
	got := Expand("https://raw.githubusercontent.com/jotego/jtbin/{ref}/mra/{name}", "master", "x.mra")
	assert.Equal(t, "https://raw.githubusercontent.com/jotego/jtbin/master/mra/x.mra", got)

	assert.Equal(t, "https://h/db/", Expand("https://h/{ref}/", "db", ""))
}

func TestJoinURL(t *testing.T) {
	assert.Equal(t, "https://h/a/x.zip", JoinURL("https://h/a/", "x.zip"))
	assert.Equal(t, "https://h/a/x.zip", JoinURL("https://h/a", "x.zip"))
}
