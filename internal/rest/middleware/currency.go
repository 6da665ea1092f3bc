package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/gymmawy/gymmawy/internal/types"
)

// CurrencyMiddleware detects the request currency from the `currency` query
// parameter or the X-Currency header, in that order. Unsupported values fall
// through to the EGP default applied at read time.
func CurrencyMiddleware(c *gin.Context) {
	raw := c.Query("currency")
	if raw == "" {
		raw = c.GetHeader(types.HeaderCurrency)
	}

	currency := types.Currency(raw)
	if currency != "" && currency.Validate() == nil {
		ctx := context.WithValue(c.Request.Context(), types.CtxCurrency, currency)
		c.Request = c.Request.WithContext(ctx)
	}

	c.Next()
}

// LanguageMiddleware reads the `lang` query parameter for bilingual content
// selection.
func LanguageMiddleware(c *gin.Context) {
	if raw := c.Query("lang"); raw != "" {
		lang := types.Language(raw)
		if lang.Validate() == nil {
			ctx := context.WithValue(c.Request.Context(), types.CtxLanguage, lang)
			c.Request = c.Request.WithContext(ctx)
		}
	}

	c.Next()
}
