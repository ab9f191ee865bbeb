// Package admin is the operator surface: it exchanges the configured admin
// key for a short-lived token and guards the snapshot refresh with it.
package admin

import "context"

// TokenSubject identifies operator tokens.
const TokenSubject = "admin"

type ctxKey int

const subjectCtxKey ctxKey = iota

func ContextWithSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, subjectCtxKey, subject)
}

func SubjectFromContext(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(subjectCtxKey).(string)
	return subject, ok
}
