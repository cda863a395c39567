// Package mra reads the descriptive fields of MRA files.
package mra

import (
	"io"
	"slices"
	"strings"

	"github.com/beevik/etree"

	"github.com/arthur-debert/arcbuilder/pkg/errors"
	"github.com/arthur-debert/arcbuilder/pkg/filesystem"
	"github.com/arthur-debert/arcbuilder/pkg/types"
)

const rootElement = "misterromdescription"

// Info is what an MRA says about the game it builds.
type Info struct {
	Name         string
	SetName      string
	Rbf          string
	Year         string
	Manufacturer string
	// ROMZips lists the archives the MRA reads, in document order.
	ROMZips []string
}

// Inspect parses the MRA at path.
func Inspect(fsys types.FS, path string) (*Info, error) {
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	f, err := fsys.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to open %s", path)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", path)
	}
	return Parse(data)
}

// Parse reads MRA content. Loose markup such as bare ampersands is
// tolerated.
func Parse(data []byte) (*Info, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.Permissive = true
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, errors.Wrap(err, errors.ErrInvalidInput, "malformed MRA")
	}

	root := doc.SelectElement(rootElement)
	if root == nil {
		return nil, errors.Newf(errors.ErrInvalidInput, "MRA has no <%s> element", rootElement)
	}

	info := &Info{
		Name:         childText(root, "name"),
		SetName:      childText(root, "setname"),
		Rbf:          childText(root, "rbf"),
		Year:         childText(root, "year"),
		Manufacturer: childText(root, "manufacturer"),
	}

	for _, rom := range root.SelectElements("rom") {
		for _, zip := range strings.Split(rom.SelectAttrValue("zip", ""), "|") {
			zip = strings.TrimSpace(zip)
			if zip != "" && !slices.Contains(info.ROMZips, zip) {
				info.ROMZips = append(info.ROMZips, zip)
			}
		}
	}

	return info, nil
}

func childText(el *etree.Element, tag string) string {
	child := el.SelectElement(tag)
	if child == nil {
		return ""
	}
	return strings.TrimSpace(child.Text())
}
