package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/kasirapp/pos-backend-go/internal/handler/http/response"
)

// RequireTenant rejects tokens that carry no tenant claim. Every
// payroll route is tenant-scoped, so a token without one can never be
// served.
func RequireTenant(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, "Missing or invalid token")
			return
		}

		tenantID, ok := claims["tenant_id"].(string)
		if !ok || tenantID == "" {
			response.BadRequest(w, "tenant_id claim is required", nil)
			return
		}

		next.ServeHTTP(w, r)
	})
}
