package handlers

import (
	"context"

	"github.com/Priya00300/url-shortener-devops/internal/analytics"
)

type requestMetaKey struct{}

// ContextWithRequestMeta adds click metadata for the request to the context.
func ContextWithRequestMeta(ctx context.Context, meta analytics.RequestMeta) context.Context {
	return context.WithValue(ctx, requestMetaKey{}, meta)
}

// RequestMetaFromContext extracts click metadata from the context.
func RequestMetaFromContext(ctx context.Context) analytics.RequestMeta {
	if v, ok := ctx.Value(requestMetaKey{}).(analytics.RequestMeta); ok {
		return v
	}

	return analytics.RequestMeta{}
}
