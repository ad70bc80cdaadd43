package main

import (
	"context"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ctxKey string

const userIDKey ctxKey = "userID"

// authMiddleware gates the estimation API. It validates the Bearer token
// and injects the account id into the request context for handlers that
// attribute estimates to their owner.
func (a *App) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := bearerToken(r)
		if !ok {
			http.Error(w, "authorization required", http.StatusUnauthorized)
			return
		}
		uid, err := parseJWT(a.cfg.JWTSecret, raw)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), userIDKey, uid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) (string, bool) {
	authz := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(authz, "Bearer ")
	if !ok || token == "" {
		return "", false
	}
	return token, true
}

// mustUserID returns the authenticated account id, or NilObjectID on an
// unauthenticated route.
func mustUserID(r *http.Request) primitive.ObjectID {
	if uid, ok := r.Context().Value(userIDKey).(primitive.ObjectID); ok {
		return uid
	}
	return primitive.NilObjectID
}
