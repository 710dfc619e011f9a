package http

import (
	"net/http"
	"strconv"

	"github.com/attend-hq/attendance-backend-go/internal/domain/auth"
	"github.com/go-chi/jwtauth/v5"
)

const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100
)

// claimsFromRequest reads the verified access token claims placed in the
// request context by the jwtauth verifier.
func claimsFromRequest(r *http.Request) (employeeCode string, isAdmin bool, err error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", false, auth.ErrInvalidToken
	}

	employeeCode, ok := claims["employee_code"].(string)
	if !ok || employeeCode == "" {
		return "", false, auth.ErrInvalidToken
	}

	isAdmin, _ = claims["is_admin"].(bool)

	return employeeCode, isAdmin, nil
}

func parsePagination(r *http.Request) (page, limit int) {
	page = defaultPage
	limit = defaultLimit

	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}

	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= maxLimit {
			limit = n
		}
	}

	return page, limit
}
