package types

import "context"

type ContextKey string

const (
	CtxRequestID ContextKey = "ctx_request_id"
	CtxUserID    ContextKey = "ctx_user_id"
	CtxUserRole  ContextKey = "ctx_user_role"
	CtxCurrency  ContextKey = "ctx_currency"
	CtxLanguage  ContextKey = "ctx_language"
)

const (
	HeaderRequestID     = "X-Request-ID"
	HeaderAuthorization = "Authorization"
	HeaderCurrency      = "X-Currency"
	HeaderCronSecret    = "X-Cron-Secret"
)

// GetRequestID returns the request id from the context, if any.
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(CtxRequestID).(string); ok {
		return id
	}
	return ""
}

// GetUserID returns the authenticated user id from the context, if any.
func GetUserID(ctx context.Context) string {
	if id, ok := ctx.Value(CtxUserID).(string); ok {
		return id
	}
	return ""
}

// GetUserRole returns the authenticated user role from the context, if any.
func GetUserRole(ctx context.Context) UserRole {
	if role, ok := ctx.Value(CtxUserRole).(UserRole); ok {
		return role
	}
	return ""
}

// GetCurrency returns the detected currency from the context, defaulting to
// EGP when detection never ran.
func GetCurrency(ctx context.Context) Currency {
	if c, ok := ctx.Value(CtxCurrency).(Currency); ok && c != "" {
		return c
	}
	return CurrencyEGP
}

// GetLanguage returns the requested language from the context, defaulting to
// English.
func GetLanguage(ctx context.Context) Language {
	if l, ok := ctx.Value(CtxLanguage).(Language); ok && l != "" {
		return l
	}
	return LanguageEnglish
}
