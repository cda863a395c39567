package style

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"github.com/arthur-debert/arcbuilder/pkg/errors"
)

// RenderTable renders rows under a header as a pterm table.
func RenderTable(header []string, rows [][]string) string {
	if len(rows) == 0 {
		return MutedStyle.Render("(none)")
	}

	data := pterm.TableData{header}
	data = append(data, rows...)

	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		// Fall back to tab-separated rows
		var b strings.Builder
		for _, row := range data {
			b.WriteString(strings.Join(row, "\t") + "\n")
		}
		return strings.TrimRight(b.String(), "\n")
	}
	return strings.TrimRight(out, "\n")
}

// RenderError renders an error, showing its code when it has one.
func RenderError(err error) string {
	if err == nil {
		return ""
	}

	code := errors.GetErrorCode(err)
	if code != errors.ErrUnknown {
		return fmt.Sprintf("%s Error [%s]: %s",
			ErrorIndicator,
			ErrorStyle.Render(string(code)),
			err.Error())
	}

	return fmt.Sprintf("%s %s", ErrorIndicator, ErrorStyle.Render(err.Error()))
}
