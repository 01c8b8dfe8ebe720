package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	ResolveApps Phase = iota
	FetchEnrichment
	WriteFiles
)

func (p Phase) String() string {
	switch p {
	case ResolveApps:
		return "resolve_apps"
	case FetchEnrichment:
		return "fetch_enrichment"
	case WriteFiles:
		return "write_files"
	default:
		return ""
	}
}

func resolvingUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ResolveApps,
		Step:    step,
		Total:   total,
		Message: "Resolving apps against the catalog cache...",
	}
}

func fetchingUpdate(step, total int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchEnrichment,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Fetching enrichment: %s...", step, total, name),
	}
}

func exportCompletedUpdate(step, total int, name string, filesCount int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteFiles,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (%d files)", step, total, name, filesCount),
	}
}

func exportFailedUpdate(step, total int, name string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteFiles,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, name, err),
	}
}
