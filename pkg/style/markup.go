package style

import (
	"regexp"

	"github.com/charmbracelet/lipgloss"
)

type markupTag struct {
	pattern *regexp.Regexp
	style   lipgloss.Style
}

// markupTags maps [tag]...[/tag] pairs to styles. Tag names are fixed so
// the patterns are compiled once.
var markupTags = compileTags(map[string]lipgloss.Style{
	"title":   TitleStyle,
	"success": SuccessStyle,
	"error":   ErrorStyle,
	"warning": WarningStyle,
	"info":    InfoStyle,
	"path":    PathStyle,
	"muted":   MutedStyle,
	"bold":    lipgloss.NewStyle().Bold(true),
	"rom":     ROMStyle,
	"mra":     MRAStyle,
	"arc":     ARCStyle,
})

func compileTags(styles map[string]lipgloss.Style) []markupTag {
	tags := make([]markupTag, 0, len(styles))
	for name, st := range styles {
		tags = append(tags, markupTag{
			pattern: regexp.MustCompile(`\[` + name + `\](.*?)\[/` + name + `\]`),
			style:   st,
		})
	}
	return tags
}

// Render replaces markup tags in text with their styles. Nested tags are
// rendered inside out.
func Render(text string) string {
	for {
		before := text
		for _, tag := range markupTags {
			text = tag.pattern.ReplaceAllStringFunc(text, func(match string) string {
				return tag.style.Render(tag.pattern.FindStringSubmatch(match)[1])
			})
		}
		if text == before {
			return text
		}
	}
}
