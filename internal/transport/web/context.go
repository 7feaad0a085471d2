package web

import "context"

// ContextKey is a custom type used for creating context keys.
// Using a custom type for context keys helps prevent collisions between keys
// defined in different packages.
type ContextKey string

const (
	// UserIDContextKey carries the authenticated user id set by the Auth middleware.
	UserIDContextKey    = ContextKey("user_id")
	requestIDContextKey = ContextKey("request_id")
)

// UserIDFromContext returns the authenticated user id / Retourne l'id de l'utilisateur authentifié
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(UserIDContextKey).(string)
	return id, ok && id != ""
}

// GetRequestID extracts request ID from context / Extrait l'ID de la requête du contexte
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(requestIDContextKey).(string); ok {
		return requestID
	}
	return ""
}
