// package formatter provides functions to export app enrichment data to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/desertthunder/steamdex/internal/models"
	"github.com/desertthunder/steamdex/internal/shared"
)

// AppExport bundles a resolved app with its fetched enrichment data.
type AppExport struct {
	App          models.AppRecord               `json:"app"`
	Achievements []models.AchievementDefinition `json:"achievements"`
	Dlc          []models.DlcEntry              `json:"dlc"`
}

// ExportAchievementsCSV converts an app's achievements to CSV format with columns: Name, DisplayName, Description, Hidden, DefaultValue
func ExportAchievementsCSV(export *AppExport) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Name", "DisplayName", "Description", "Hidden", "DefaultValue"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, def := range export.Achievements {
		record := []string{
			def.Name,
			def.DisplayName,
			def.Description,
			strconv.Itoa(def.Hidden),
			strconv.Itoa(def.DefaultValue),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportDlcCSV converts an app's DLC listing to CSV format with columns: AppID, Name, Placeholder
func ExportDlcCSV(export *AppExport) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"AppID", "Name", "Placeholder"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, entry := range export.Dlc {
		record := []string{
			strconv.Itoa(entry.ID),
			entry.Name,
			strconv.FormatBool(entry.IsPlaceholder()),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts an AppExport to Markdown format
func ExportToMarkdown(export *AppExport) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", export.App.Name))
	buf.WriteString(fmt.Sprintf("**AppID**: %d\n\n", export.App.ID))

	buf.WriteString(fmt.Sprintf("## Achievements (%d)\n\n", len(export.Achievements)))
	for i, def := range export.Achievements {
		hiddenPart := ""
		if def.Hidden != 0 {
			hiddenPart = " *(hidden)*"
		}
		buf.WriteString(fmt.Sprintf("%d. %s%s", i+1, def.DisplayName, hiddenPart))
		if def.Description != "" {
			buf.WriteString(fmt.Sprintf(" — %s", def.Description))
		}
		buf.WriteString("\n")
	}

	buf.WriteString(fmt.Sprintf("\n## DLC (%d)\n\n", len(export.Dlc)))
	for i, entry := range export.Dlc {
		buf.WriteString(fmt.Sprintf("%d. %s (%d)\n", i+1, entry.Name, entry.ID))
	}

	return buf.Bytes(), nil
}

// ExportToText converts an AppExport to plain text format
func ExportToText(export *AppExport) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("App: %s\n", export.App.Name))
	buf.WriteString(fmt.Sprintf("AppID: %d\n", export.App.ID))
	buf.WriteString(fmt.Sprintf("Achievements: %d\n", len(export.Achievements)))
	buf.WriteString(fmt.Sprintf("DLC: %d\n\n", len(export.Dlc)))

	for i, def := range export.Achievements {
		buf.WriteString(fmt.Sprintf("%d. %s\n", i+1, def.DisplayName))
	}
	buf.WriteString("\n")
	for i, entry := range export.Dlc {
		buf.WriteString(fmt.Sprintf("%d. %s (%d)\n", i+1, entry.Name, entry.ID))
	}

	return buf.Bytes(), nil
}

// ExportToJSON converts an AppExport to indented JSON
func ExportToJSON(export *AppExport) ([]byte, error) {
	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal export: %w", err)
	}
	return data, nil
}

// WriteBulkExportManifest writes a JSON manifest summarizing a bulk export run.
func WriteBulkExportManifest(manifest any, path string) error {
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	return nil
}

// WriteExport writes an AppExport to the output directory in the requested
// format ("csv", "markdown", "txt", or "json") and returns the created file
// paths. CSV produces separate achievements and dlc files; the other formats
// produce one file named after the app id.
func WriteExport(export *AppExport, outputDir, format string) ([]string, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	base := filepath.Join(outputDir, strconv.Itoa(export.App.ID))

	write := func(path string, data []byte) error {
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		return nil
	}

	switch format {
	case "csv":
		achievements, err := ExportAchievementsCSV(export)
		if err != nil {
			return nil, err
		}
		dlc, err := ExportDlcCSV(export)
		if err != nil {
			return nil, err
		}

		achievementsFile := base + "_achievements.csv"
		dlcFile := base + "_dlc.csv"
		if err := write(achievementsFile, achievements); err != nil {
			return nil, err
		}
		if err := write(dlcFile, dlc); err != nil {
			return nil, err
		}
		return []string{achievementsFile, dlcFile}, nil

	case "markdown", "md":
		data, err := ExportToMarkdown(export)
		if err != nil {
			return nil, err
		}
		path := base + ".md"
		if err := write(path, data); err != nil {
			return nil, err
		}
		return []string{path}, nil

	case "txt", "text":
		data, err := ExportToText(export)
		if err != nil {
			return nil, err
		}
		path := base + ".txt"
		if err := write(path, data); err != nil {
			return nil, err
		}
		return []string{path}, nil

	case "json":
		data, err := ExportToJSON(export)
		if err != nil {
			return nil, err
		}
		path := base + ".json"
		if err := write(path, data); err != nil {
			return nil, err
		}
		return []string{path}, nil

	default:
		return nil, fmt.Errorf("%w: unsupported format %q", shared.ErrInvalidFlag, format)
	}
}
