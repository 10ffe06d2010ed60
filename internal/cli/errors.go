// Package cli implements the command-line interface.
package cli

// Error codes for structured error responses. These are stable and can
// be relied upon by scripts and agents.
const (
	// Vault errors
	ErrVaultNotFound     = "VAULT_NOT_FOUND"
	ErrVaultNotSpecified = "VAULT_NOT_SPECIFIED"
	ErrConfigInvalid     = "CONFIG_INVALID"

	// Scan errors
	ErrScanFailed = "SCAN_FAILED"

	// File errors
	ErrFileReadError  = "FILE_READ_ERROR"
	ErrFileWriteError = "FILE_WRITE_ERROR"

	// Plan errors
	ErrPlanInvalid = "PLAN_INVALID"

	// Input errors
	ErrInvalidInput    = "INVALID_INPUT"
	ErrMissingArgument = "MISSING_ARGUMENT"

	// History errors
	ErrHistoryError = "HISTORY_ERROR"

	// General errors
	ErrInternal = "INTERNAL_ERROR"
)

// Warning codes for non-fatal issues.
const (
	WarnInlineDeletion = "INLINE_DELETION"
	WarnParseDegraded  = "PARSE_DEGRADED"
	WarnScanErrors     = "SCAN_ERRORS"
	WarnWriteFailure   = "WRITE_FAILURE"
	WarnLogFailure     = "LOG_FAILURE"
)
