package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/steamdex/internal/models"
)

var (
	_ list.Item = appItem{}
	_ list.Item = dlcItem{}
)

// appItem wraps [models.AppRecord] to implement [list.Item].
type appItem struct {
	record models.AppRecord
}

func (i appItem) FilterValue() string { return i.record.Name }
func (i appItem) Title() string       { return i.record.Name }
func (i appItem) Description() string {
	return fmt.Sprintf("appid %d", i.record.ID)
}

// dlcItem wraps [models.DlcEntry] to implement [list.Item].
type dlcItem struct {
	entry models.DlcEntry
}

func (i dlcItem) FilterValue() string { return i.entry.Name }
func (i dlcItem) Title() string       { return i.entry.Name }
func (i dlcItem) Description() string {
	desc := fmt.Sprintf("appid %d", i.entry.ID)
	if i.entry.IsPlaceholder() {
		desc = fmt.Sprintf("%s • name unknown", desc)
	}
	return desc
}
