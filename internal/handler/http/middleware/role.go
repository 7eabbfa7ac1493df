package middleware

import (
	"net/http"

	"github.com/CodyMacMLE/athletiq-backend-go/internal/domain/member"
	"github.com/CodyMacMLE/athletiq-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

func claimedRole(r *http.Request) (member.Role, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", false
	}
	roleStr, ok := claims["role"].(string)
	if !ok {
		return "", false
	}
	return member.Role(roleStr), true
}

// RequireStaff requires coach or admin role.
func RequireStaff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := claimedRole(r)
		if !ok || !role.IsStaff() {
			response.Forbidden(w, "Coach or admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin requires admin role.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := claimedRole(r)
		if !ok || role != member.RoleAdmin {
			response.Forbidden(w, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
