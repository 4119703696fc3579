package domain

type CtxKey string

const (
	// KeyRequestID is the gin context key and request context key holding the request ID
	KeyRequestID CtxKey = "RequestID"
)
