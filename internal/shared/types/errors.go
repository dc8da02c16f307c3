package types

import "errors"

var (
	ErrInvalidTopN          = errors.New("top-n must be at least 1")
	ErrConflictingDateFlags = errors.New("--omit-dates cannot be combined with --start-date or --end-date")
	ErrMissingDateRange     = errors.New("--start-date and --end-date are required unless --omit-dates is used")
	ErrMissingViewID        = errors.New("--view-id is required")
	ErrMissingCredentials   = errors.New("missing FINOUT_CLIENT_ID or FINOUT_SECRET_KEY in environment or .env")
	ErrMissingTotalRow      = errors.New("cost data has no Total row")
	ErrUnknownSource        = errors.New("unknown cost source")
)
