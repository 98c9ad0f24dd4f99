package handlers

// Error codes returned in the JSON error envelope
const (
	CodeDailyLimitExceeded = "DAILY_LIMIT_EXCEEDED"
	CodeGameInProgress     = "GAME_IN_PROGRESS"
	CodeNoActiveSession    = "NO_ACTIVE_SESSION"
	CodeInvalidGuessLength = "INVALID_GUESS_LENGTH"
	CodeInvalidWord        = "INVALID_WORD"
	CodeInvalidHintLevel   = "INVALID_HINT_LEVEL"
	CodeInvalidDate        = "INVALID_DATE"
	CodeUserNotFound       = "USER_NOT_FOUND"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeValidationFailed   = "VALIDATION_FAILED"
	CodeUsernameTaken      = "USERNAME_TAKEN"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeSessionBusy        = "SESSION_BUSY"
	CodeRateLimited        = "RATE_LIMITED"
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeInternal           = "INTERNAL"
)

const (
	ErrInvalidRequestBody  = "Invalid request body"
	ErrUnauthorized        = "Unauthorized"
	ErrForbidden           = "Admin access required"
	ErrInternalServerError = "Internal server error"
	ErrTooManyRequests     = "Too many requests, please try again later"

	maxBodyBytes = 1 << 16
)
