package types

const (
	// ContextUserKey holds the authenticated user set by the auth middleware.
	ContextUserKey = "user"

	// ContextRequestIDKey holds the correlation id set by the request-id middleware.
	ContextRequestIDKey = "request_id"

	// RequestIDHeader is both the inbound propagation header and the response echo.
	RequestIDHeader = "X-Request-Id"
)
