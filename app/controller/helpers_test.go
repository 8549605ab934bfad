package controller

import (
	"context"
	"testing"

	"github.com/go-chi/chi/v5"
)

// chiRouteContext injects a chi URL parameter so handlers can be tested
// without mounting the full router.
func chiRouteContext(t *testing.T, key, value string) func(context.Context) context.Context {
	t.Helper()
	return func(ctx context.Context) context.Context {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add(key, value)
		return context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}
}
