package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

var ErrUnauthenticated = errors.New("unauthenticated")

// Caller is the authenticated user making a request.
type Caller struct {
	ID string
}

// Resolver turns a request's credentials into a Caller, or returns
// ErrUnauthenticated.
type Resolver interface {
	Resolve(r *http.Request) (Caller, error)
}

// Resolve reads a bearer token from the Authorization header.
func (j *JWT) Resolve(r *http.Request) (Caller, error) {
	h := r.Header.Get("Authorization")
	if h == "" || !strings.HasPrefix(h, "Bearer ") {
		return Caller{}, ErrUnauthenticated
	}
	uid, err := j.Verify(strings.TrimPrefix(h, "Bearer "))
	if err != nil {
		return Caller{}, ErrUnauthenticated
	}
	return Caller{ID: uid}, nil
}

type ctxKey string

const callerKey ctxKey = "caller"

func WithCaller(ctx context.Context, c Caller) context.Context {
	return context.WithValue(ctx, callerKey, c)
}

func CallerFromContext(ctx context.Context) (Caller, bool) {
	c, ok := ctx.Value(callerKey).(Caller)
	return c, ok
}

func RequireAuth(res Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, err := res.Resolve(r)
			if err != nil || c.ID == "" {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), c)))
		})
	}
}
