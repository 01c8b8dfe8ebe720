package models

import "testing"

func TestComparableName(t *testing.T) {
	t.Run("Strips Non-Alphanumerics And Lowercases", func(t *testing.T) {
		cases := map[string]string{
			"Half-Life 2":             "halflife2",
			"Portal 2":                "portal2",
			"DOOM (1993)":             "doom1993",
			"S.T.A.L.K.E.R.: Call of Pripyat": "stalkercallofpripyat",
			"  spaced   out  ":        "spacedout",
			"":                        "",
			"!!!":                     "",
		}

		for input, want := range cases {
			if got := ComparableName(input); got != want {
				t.Errorf("ComparableName(%q) = %q, want %q", input, got, want)
			}
		}
	})

	t.Run("Idempotent", func(t *testing.T) {
		inputs := []string{"Half-Life 2", "Ünïcode Näme", "already normal", "1234", ""}
		for _, input := range inputs {
			once := ComparableName(input)
			twice := ComparableName(once)
			if once != twice {
				t.Errorf("normalization not idempotent for %q: %q != %q", input, once, twice)
			}
		}
	})
}

func TestNewAppRecord(t *testing.T) {
	rec := NewAppRecord(220, "Half-Life 2", CategoryGame)

	if rec.ComparableName != "halflife2" {
		t.Errorf("expected comparable name 'halflife2', got %q", rec.ComparableName)
	}

	if err := rec.Validate(); err != nil {
		t.Errorf("expected valid record, got %v", err)
	}
}

func TestAppRecordValidate(t *testing.T) {
	t.Run("Rejects Non-Positive ID", func(t *testing.T) {
		rec := NewAppRecord(0, "Nothing", CategoryGame)
		if err := rec.Validate(); err == nil {
			t.Error("expected error for id 0")
		}
	})

	t.Run("Rejects Unknown Category", func(t *testing.T) {
		rec := NewAppRecord(10, "Counter-Strike", Category("mod"))
		if err := rec.Validate(); err == nil {
			t.Error("expected error for unknown category")
		}
	})

	t.Run("Rejects Inconsistent Comparable Name", func(t *testing.T) {
		rec := NewAppRecord(10, "Counter-Strike", CategoryGame)
		rec.ComparableName = "somethingelse"
		if err := rec.Validate(); err == nil {
			t.Error("expected error for mismatched comparable name")
		}
	})
}

func TestDlcEntryPlaceholder(t *testing.T) {
	entry := DlcEntry{ID: 42, Name: PlaceholderDlcName(42)}
	if !entry.IsPlaceholder() {
		t.Error("expected placeholder entry to report IsPlaceholder")
	}

	named := DlcEntry{ID: 42, Name: "Real Pack"}
	if named.IsPlaceholder() {
		t.Error("expected named entry to not report IsPlaceholder")
	}
}
