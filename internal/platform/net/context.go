// Package net carries request-scoped ids and the wire envelope shared by the http layers
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type ctxKey uint8

const keySubject ctxKey = iota

// WithRequestID stores id where chi's middleware.GetReqID finds it
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, chimw.RequestIDKey, id)
}

// RequestID returns the request id on ctx or ""
func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }

// WithSubject records the authenticated caller
func WithSubject(ctx context.Context, subject string) context.Context {
	if subject == "" {
		return ctx
	}
	return context.WithValue(ctx, keySubject, subject)
}

// Subject returns the authenticated caller on ctx or ""
func Subject(ctx context.Context) string {
	s, _ := ctx.Value(keySubject).(string)
	return s
}
