package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInvalidPeriod        ErrorCode = 102
	ErrCodeInvalidType          ErrorCode = 103
	ErrCodeMissingParameter     ErrorCode = 104
	ErrCodeInvalidOperator      ErrorCode = 105
	ErrCodeInvalidFilter        ErrorCode = 106
	ErrCodeInsufficientData     ErrorCode = 107

	// Data/Resource errors (200-299)
	ErrCodeDataNotFound     ErrorCode = 200
	ErrCodeStoreUnavailable ErrorCode = 201
	ErrCodeQueryFailed      ErrorCode = 202
	ErrCodeSchemaFailed     ErrorCode = 203

	// Indicator errors (300-399)
	ErrCodeIndicatorNotFound          ErrorCode = 300
	ErrCodeIndicatorCalculationFailed ErrorCode = 301

	// Scanner errors (400-499)
	ErrCodeScannerNotFound      ErrorCode = 400
	ErrCodeScannerAlreadyExists ErrorCode = 401
	ErrCodeScanFailed           ErrorCode = 402

	// Backtest errors (500-599)
	ErrCodeBacktestFailed       ErrorCode = 500
	ErrCodeInvalidBacktestRange ErrorCode = 501

	// Ingest errors (600-699)
	ErrCodeIngestFailed ErrorCode = 600
)
