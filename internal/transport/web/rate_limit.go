package web

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	visitorIdleTTL  = 3 * time.Minute
	visitorSweepGap = 5 * time.Minute
)

// RateLimiter keeps one token bucket per key (IP hash or user id).
// Garde un seau de jetons par clé (hash d'IP ou id utilisateur).
type RateLimiter struct {
	visitors map[string]*Visitor
	mu       sync.Mutex
	rate     rate.Limit
	burst    int
}

// Visitor is one key's bucket and when it was last used.
type Visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a limiter allowing rps per key with the given burst.
// Idle visitors are swept until ctx is done.
func NewRateLimiter(ctx context.Context, rps float64, burst int) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*Visitor),
		rate:     rate.Limit(rps),
		burst:    burst,
	}
	go rl.cleanupVisitors(ctx)
	return rl
}

// getVisitor returns the bucket of key, creating it on first use.
func (rl *RateLimiter) getVisitor(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[key]
	if !exists {
		v = &Visitor{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.visitors[key] = v
	}
	v.lastSeen = time.Now()
	return v.limiter
}

// sweep drops visitors idle for longer than ttl / Supprime les visiteurs inactifs
func (rl *RateLimiter) sweep(ttl time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for key, v := range rl.visitors {
		if time.Since(v.lastSeen) > ttl {
			delete(rl.visitors, key)
		}
	}
}

func (rl *RateLimiter) cleanupVisitors(ctx context.Context) {
	ticker := time.NewTicker(visitorSweepGap)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.sweep(visitorIdleTTL)
		case <-ctx.Done():
			return
		}
	}
}

// getIPWithTrustedProxies returns the client IP. Forwarding headers are only
// believed when the direct peer is one of trustedProxies.
// Les en-têtes de proxy ne sont crus que depuis un proxy de confiance.
func getIPWithTrustedProxies(r *http.Request, trustedProxies []string) string {
	remoteIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		remoteIP = r.RemoteAddr
	}

	if !slices.Contains(trustedProxies, remoteIP) {
		return remoteIP
	}

	// "client, proxy1, proxy2": the first hop is the original requester
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if ip := strings.TrimSpace(first); net.ParseIP(ip) != nil {
			return ip
		}
	}

	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); net.ParseIP(ip) != nil {
		return ip
	}

	return remoteIP
}

// hashIP keys limiters by SHA-256 so raw addresses are never held in memory.
func hashIP(ip string) string {
	h := sha256.Sum256([]byte(ip))
	return hex.EncodeToString(h[:])
}

// allow checks key against limiter and answers 429 when the bucket is empty.
func (mw *Middleware) allow(w http.ResponseWriter, limiter *RateLimiter, key, endpoint string) bool {
	if limiter.getVisitor(key).Allow() {
		return true
	}
	mw.metrics.RecordRateLimitHit(endpoint)
	sendRateLimitErrorAdvanced(w, "Too many requests. Please try again later.", 60)
	return false
}

func (mw *Middleware) clientKey(r *http.Request) string {
	return hashIP(getIPWithTrustedProxies(r, mw.conf.Security.TrustedProxies))
}

// RateLimit is a middleware that applies a global rate limit to all incoming requests.
// It uses the client's IP address as the identifier for rate limiting.
// If the rate limiter is disabled in the configuration, the middleware does nothing.
func (mw *Middleware) RateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if mw.globalLimiter == nil || mw.allow(w, mw.globalLimiter, mw.clientKey(r), "global") {
			next.ServeHTTP(w, r)
		}
	})
}

// RateLimitAuth applies the strict per-IP limit of signup and login
// Applique la limite stricte par IP de l'inscription et de la connexion
func (mw *Middleware) RateLimitAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if mw.authLimiter == nil || mw.allow(w, mw.authLimiter, mw.clientKey(r), "auth") {
			next.ServeHTTP(w, r)
		}
	})
}

// RateLimitByUser applies rate limit per user / Applique une limite de taux par utilisateur
// Must run after Auth; without a user id it falls back to the client IP.
func (mw *Middleware) RateLimitByUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if mw.syncLimiter == nil {
			next.ServeHTTP(w, r)
			return
		}

		key, endpoint := mw.clientKey(r), "sync_ip"
		if userID, ok := UserIDFromContext(r.Context()); ok {
			key, endpoint = "user_"+userID, "sync_user"
		}
		if mw.allow(w, mw.syncLimiter, key, endpoint) {
			next.ServeHTTP(w, r)
		}
	})
}

// RateLimitErrorResponse defines a structured response for rate limiting errors.
type RateLimitErrorResponse struct {
	Error      string    `json:"error"`               // A machine-readable error code.
	Message    string    `json:"message"`             // A human-readable error message.
	Code       int       `json:"code"`                // The HTTP status code.
	RetryAfter int       `json:"retry_after_seconds"` // Suggested time to wait before retrying, in seconds.
	Timestamp  time.Time `json:"timestamp"`           // The timestamp of when the error occurred.
}

// sendRateLimitErrorAdvanced sends a detailed JSON response when a rate limit is exceeded.
func sendRateLimitErrorAdvanced(w http.ResponseWriter, message string, retryAfter int) {
	w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
	writeJSON(w, http.StatusTooManyRequests, RateLimitErrorResponse{
		Error:      "rate_limit_exceeded",
		Message:    message,
		Code:       http.StatusTooManyRequests,
		RetryAfter: retryAfter,
		Timestamp:  time.Now().UTC(),
	})
}
