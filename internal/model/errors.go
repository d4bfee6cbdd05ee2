package model

// Code is a stable failure code returned by handlers and parsers.
// Codes are values, not faults: handlers surface them verbatim and the
// calling layer maps them to transport responses.
type Code string

func (c Code) Error() string { return string(c) }

const (
	// Authentication.
	ErrNonAuthenticatedUser Code = "NON_AUTHENTICATED_USER"

	// Not found.
	ErrAccountNotFound     Code = "ACCOUNT_NOT_FOUND"
	ErrTransactionNotFound Code = "TRANSACTION_NOT_FOUND"

	// Business-rule validation.
	ErrInvalidTransactionCategory      Code = "INVALID_TRANSACTION_CATEGORY"
	ErrCategoryNotAllowedForFlow       Code = "CATEGORY_NOT_ALLOWED_FOR_FLOW"
	ErrCategoryForbiddenForNeutralFlow Code = "CATEGORY_FORBIDDEN_FOR_NEUTRAL_FLOW"

	// Statement file parsing.
	ErrEmptyImportFile             Code = "EMPTY_IMPORT_FILE"
	ErrUnsupportedImportFileFormat Code = "UNSUPPORTED_IMPORT_FILE_FORMAT"
	ErrOfxCurrencyNotFound         Code = "OFX_CURRENCY_NOT_FOUND"
	ErrOfxNoTransactionFound       Code = "OFX_NO_TRANSACTION_FOUND"
	ErrOfxInvalidTransaction       Code = "OFX_INVALID_TRANSACTION"
)
