package models

import (
	"fmt"
	"strings"
	"unicode"
)

// Category distinguishes the two kinds of catalog entries Steam serves.
type Category string

const (
	// CategoryGame is a purchasable base application.
	CategoryGame Category = "game"
	// CategoryDLC is a downloadable content entry tied to a base application.
	CategoryDLC Category = "dlc"
)

// Categories lists every category in sync order.
var Categories = []Category{CategoryGame, CategoryDLC}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	return c == CategoryGame || c == CategoryDLC
}

func (c Category) String() string {
	return string(c)
}

// AppRecord is a cached application identity row.
//
// Records are created in bulk during catalog synchronization and never
// mutated afterwards; a later refresh re-inserts with first-write-wins
// semantics. ComparableName must always equal ComparableName(Name).
type AppRecord struct {
	ID             int      `json:"appid"`
	Name           string   `json:"name"`
	ComparableName string   `json:"comparable_name"`
	Category       Category `json:"category"`
}

// NewAppRecord builds a record with its comparable name derived from name.
func NewAppRecord(id int, name string, category Category) AppRecord {
	return AppRecord{
		ID:             id,
		Name:           name,
		ComparableName: ComparableName(name),
		Category:       category,
	}
}

// Validate checks the record's invariants before persistence.
func (r AppRecord) Validate() error {
	if r.ID <= 0 {
		return fmt.Errorf("app id must be positive, got %d", r.ID)
	}
	if !r.Category.Valid() {
		return fmt.Errorf("unknown category %q", r.Category)
	}
	if r.ComparableName != ComparableName(r.Name) {
		return fmt.Errorf("comparable name %q does not match name %q", r.ComparableName, r.Name)
	}
	return nil
}

// ComparableName normalizes a display name into the lookup key: every
// non-alphanumeric rune is stripped and the rest are lowercased.
// The function is idempotent.
func ComparableName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// AchievementDefinition is a flat passthrough of one entry from the Steam
// game schema endpoint. No local invariants beyond shape validity.
type AchievementDefinition struct {
	Name         string `json:"name"`
	DefaultValue int    `json:"defaultvalue"`
	DisplayName  string `json:"displayName"`
	Hidden       int    `json:"hidden"`
	Description  string `json:"description"`
	Icon         string `json:"icon"`
	IconGray     string `json:"icongray"`
}

// DlcEntry is one row of a reconciled DLC listing. Within a single
// reconciliation result ids are unique and ordering follows the
// authoritative storefront id list, with secondary-source discoveries
// appended at the end.
type DlcEntry struct {
	ID   int    `json:"appid"`
	Name string `json:"name"`
}

// PlaceholderDlcName is the synthesized name used when a DLC id resolves
// to no cached record and no secondary-source name.
func PlaceholderDlcName(id int) string {
	return fmt.Sprintf("Unknown DLC %d", id)
}

// IsPlaceholder reports whether the entry still carries a synthesized name,
// meaning a secondary-source name may replace it during merging.
func (e DlcEntry) IsPlaceholder() bool {
	return e.Name == PlaceholderDlcName(e.ID)
}
