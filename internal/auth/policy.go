package auth

import (
	"net/http"
	"strings"

	"github.com/hwigle/reactStudy/internal/apperr"
)

// Access is the requirement a route places on incoming requests.
type Access int

const (
	// Public routes accept anonymous requests.
	Public Access = iota
	// Authenticated routes require a principal to be attached.
	Authenticated
)

// Rule maps a method and path pattern to an access level. A method of
// "*" matches every method; a pattern ending in "/*" matches the whole
// subtree below it, otherwise the match is exact.
type Rule struct {
	Method  string
	Pattern string
	Access  Access
}

func (r Rule) matches(method, path string) bool {
	if r.Method != "*" && r.Method != method {
		return false
	}
	if prefix, ok := strings.CutSuffix(r.Pattern, "*"); ok {
		return strings.HasPrefix(path, prefix)
	}
	return path == r.Pattern
}

// Policy is an ordered route access table. The first matching rule
// wins; requests no rule matches require authentication, so routes are
// protected by default.
type Policy struct {
	rules []Rule
}

// NewPolicy creates a policy from an ordered list of rules.
func NewPolicy(rules ...Rule) *Policy {
	return &Policy{rules: rules}
}

// Allow reports whether a request with the given principal may proceed.
func (p *Policy) Allow(method, path string, principal *Principal) bool {
	for _, rule := range p.rules {
		if rule.matches(method, path) {
			return rule.Access == Public || principal != nil
		}
	}
	return principal != nil
}

// Enforce is a middleware rejecting requests the policy does not allow
// before they reach a handler.
func (p *Policy) Enforce(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !p.Allow(r.Method, r.URL.Path, PrincipalFrom(r.Context())) {
			http.Error(w, apperr.ErrAuthenticationRequired.Error(), http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
