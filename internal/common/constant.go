package common

// DefaultRoleName is the role every self-registered user receives.
const DefaultRoleName = "user"

// RequestIDHeaderName carries the per-request correlation id.
const RequestIDHeaderName = "X-Request-ID"
