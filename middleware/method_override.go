package middleware

import (
	"net/http"
	"strings"
)

// MethodFieldName is the hidden form field HTML forms use to spoof a verb.
const MethodFieldName = "_method"

// MethodOverride rewrites POST form submissions carrying _method=PUT|PATCH|DELETE
// before the router sees them. It wraps the whole engine because gin picks the
// route tree by method before any middleware runs.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && isForm(r) {
			switch m := strings.ToUpper(strings.TrimSpace(r.PostFormValue(MethodFieldName))); m {
			case http.MethodPut, http.MethodPatch, http.MethodDelete:
				r.Method = m
			}
		}
		next.ServeHTTP(w, r)
	})
}

func isForm(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	return strings.HasPrefix(ct, "application/x-www-form-urlencoded") || strings.HasPrefix(ct, "multipart/form-data")
}
