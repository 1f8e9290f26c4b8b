package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/roster/internal/models"
)

var (
	_ list.Item = recordItem{}
)

// recordItem wraps [models.Record] to implement [list.Item].
type recordItem struct {
	record   models.Record
	selected bool
}

func (i recordItem) FilterValue() string { return i.record.Name }
func (i recordItem) Title() string {
	box := "[ ]"
	if i.selected {
		box = "[x]"
	}
	name := i.record.Name
	if name == "" {
		name = "(unnamed)"
	}
	return box + " " + name
}
func (i recordItem) Description() string {
	parts := make([]string, 0, 2)
	for _, p := range []string{i.record.Position, i.record.Level} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " • ")
}

// items builds list items for the visible records.
func items(state *RecordState) []list.Item {
	visible := state.Filtered()
	out := make([]list.Item, len(visible))
	for i, r := range visible {
		out[i] = recordItem{record: r, selected: state.IsSelected(r.ID)}
	}
	return out
}
