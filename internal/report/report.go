// Package report renders the stack-size changes as a markdown table shipped
// alongside the mod.
package report

import (
	"fmt"
	"strings"

	"github.com/OCharnyshevich/morestacks/internal/items"
	"github.com/OCharnyshevich/morestacks/internal/storage"
)

const (
	header    = "| Items   | Original Value（xml） | Modified Value（xml） | Changes           |"
	separator = "|---------|-------------------|---------------------|--------------------|"
)

// Render builds the markdown report for records, in the given order. source
// names what generated the file.
func Render(source string, records []items.ChangeRecord) string {
	lines := make([]string, 0, len(records)+4)
	lines = append(lines,
		fmt.Sprintf("> ⚠️ This file is **automatically generated** from `%s`.\n", source),
		"\n",
		header,
		separator,
	)
	for _, r := range records {
		lines = append(lines, fmt.Sprintf("| %s | %d             | %d               | %s |", r.Identity, r.Original, r.Modified, r.Note))
	}
	return strings.Join(lines, "\n")
}

// Write overwrites path with text.
func Write(path, text string) error {
	if err := storage.WriteFile(path, []byte(text)); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}
