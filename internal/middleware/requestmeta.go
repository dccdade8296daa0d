package middleware

import (
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/Priya00300/url-shortener-devops/internal/analytics"
	"github.com/Priya00300/url-shortener-devops/internal/handlers"
)

// RequestMeta is a middleware that collects the click attributes of the
// request (client IP, user agent, referrer, country hint, language) into
// the context for the redirect path.
func RequestMeta(_ huma.API) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		meta := analytics.RequestMeta{
			ClientIP:       extractClientIP(ctx),
			UserAgent:      ctx.Header("User-Agent"),
			Referer:        ctx.Header("Referer"),
			CountryHint:    ctx.Header("CF-IPCountry"),
			AcceptLanguage: ctx.Header("Accept-Language"),
		}

		newCtx := handlers.ContextWithRequestMeta(ctx.Context(), meta)
		ctx = huma.WithContext(ctx, newCtx)

		next(ctx)
	}
}

func extractClientIP(ctx huma.Context) string {
	// X-Forwarded-For may carry multiple IPs; the first one is the client.
	if xff := ctx.Header("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}

		return strings.TrimSpace(xff)
	}

	if xri := ctx.Header("X-Real-IP"); xri != "" {
		return xri
	}

	host := ctx.Host()
	if idx := strings.LastIndex(host, ":"); idx != -1 {
		return host[:idx]
	}

	return host
}
