package http

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
)

// callerClaims is the identity the auth middleware verified. Handlers
// read it instead of trusting anything in the request body.
type callerClaims struct {
	UserID string
	OrgID  string
	Role   string
}

func claimsFromRequest(r *http.Request) (callerClaims, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return callerClaims{}, false
	}
	userID, ok := claims["user_id"].(string)
	if !ok {
		return callerClaims{}, false
	}
	orgID, ok := claims["org_id"].(string)
	if !ok {
		return callerClaims{}, false
	}
	role, _ := claims["role"].(string)
	return callerClaims{UserID: userID, OrgID: orgID, Role: role}, true
}
