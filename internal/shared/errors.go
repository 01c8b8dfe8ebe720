package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")
	ErrMissingAPIKey = fmt.Errorf("missing Steam API key")

	// API and parsing errors
	ErrAPIRequest  = fmt.Errorf("API request failed")
	ErrParseFailed = fmt.Errorf("response did not match expected shape")

	// The secondary DLC source is best-effort only; callers treat this
	// error as "unavailable", log it, and continue without the data.
	ErrSecondaryUnavailable = fmt.Errorf("secondary source unavailable")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
