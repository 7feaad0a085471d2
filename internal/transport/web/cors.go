package web

import (
	"log/slog"
	"net/http"
	"regexp"
	"strings"
)

const (
	corsAllowMethods = "GET, POST, OPTIONS"
	corsAllowHeaders = "Authorization, Content-Type, X-Request-ID"
)

// originMatcher matches request origins against configured patterns where
// '*' stands for any run of characters (http://192.168.*.*, exp://*).
type originMatcher struct {
	exact    map[string]struct{}
	patterns []*regexp.Regexp
	any      bool
}

func newOriginMatcher(origins []string) *originMatcher {
	m := &originMatcher{exact: make(map[string]struct{})}
	for _, o := range origins {
		o = strings.TrimSpace(o)
		switch {
		case o == "":
			continue
		case o == "*":
			m.any = true
		case strings.Contains(o, "*"):
			expr := "^" + strings.ReplaceAll(regexp.QuoteMeta(o), `\*`, ".*") + "$"
			m.patterns = append(m.patterns, regexp.MustCompile(expr))
		default:
			m.exact[o] = struct{}{}
		}
	}
	return m
}

// Match reports whether origin is listed / Indique si l'origine est autorisée
func (m *originMatcher) Match(origin string) bool {
	if m.any {
		return true
	}
	if _, ok := m.exact[origin]; ok {
		return true
	}
	for _, re := range m.patterns {
		if re.MatchString(origin) {
			return true
		}
	}
	return false
}

// Cors handles CORS headers / Gère les en-têtes CORS
// Requests without Origin (mobile apps, curl) pass untouched.
func (m *Middleware) Cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Add("Vary", "Origin")
		allowed := m.origins.Match(origin)
		if !allowed {
			m.metrics.RecordUnlistedOrigin()
			slog.Warn("origin not allowed", "origin", origin, "allowed_anyway", m.conf.Cors.AllowUnlisted)
			allowed = m.conf.Cors.AllowUnlisted
		}

		if allowed {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
		}

		if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
			if !allowed {
				ErrorResponse(w, "Origin not allowed", http.StatusForbidden)
				return
			}
			w.Header().Set("Access-Control-Allow-Methods", corsAllowMethods)
			w.Header().Set("Access-Control-Allow-Headers", corsAllowHeaders)
			w.Header().Set("Access-Control-Max-Age", "600")
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
