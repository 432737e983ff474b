package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInvalidType          ErrorCode = 107
	ErrCodeInvalidPeriod        ErrorCode = 108
	ErrCodeMissingParameter     ErrorCode = 109
	ErrCodeInvalidThreshold     ErrorCode = 112
	ErrCodeInvalidNeutralRate   ErrorCode = 120
	ErrCodeInvalidMode          ErrorCode = 121
	ErrCodeInvalidSelector      ErrorCode = 122

	// Data/Resource errors (200-299)
	ErrCodeDataNotFound          ErrorCode = 200
	ErrCodeDataSourceUnavailable ErrorCode = 201
	ErrCodeQueryFailed           ErrorCode = 202
	ErrCodeNoDataFound           ErrorCode = 204
	ErrCodeMarkerNotAvailable    ErrorCode = 205
	ErrCodeOutOfOrderData        ErrorCode = 206
	ErrCodeUnsupportedDataFormat ErrorCode = 207

	// Indicator errors (300-399)
	ErrCodeIndicatorNotFound      ErrorCode = 300
	ErrCodeIndicatorAlreadyExists ErrorCode = 301
	ErrCodeIndicatorKindMismatch  ErrorCode = 303

	// Strategy errors (400-499)
	ErrCodeStrategyConfigError ErrorCode = 401

	// Trading errors (500-599)
	ErrCodeOrderFailed       ErrorCode = 500
	ErrCodeMarketDataMissing ErrorCode = 502

	// Engine errors (600-699)
	ErrCodeEngineInitFailed   ErrorCode = 601
	ErrCodeEngineNoStrategy   ErrorCode = 604
	ErrCodeEngineNoResults    ErrorCode = 607
	ErrCodeEngineNoDatasource ErrorCode = 608

	// Market data errors (700-799)
	ErrCodeMarketDataFetchFailed ErrorCode = 700
	ErrCodeInvalidInterval       ErrorCode = 703

	// Notification errors (800-899)
	ErrCodeNotificationFailed ErrorCode = 800
	ErrCodeNotifierClosed     ErrorCode = 801
)
