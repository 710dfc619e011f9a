package middleware

import (
	"net/http"

	"github.com/attend-hq/attendance-backend-go/internal/domain/auth"
	"github.com/attend-hq/attendance-backend-go/internal/domain/employee"
	"github.com/attend-hq/attendance-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		admin, ok := claims["is_admin"].(bool)
		if !ok || !admin {
			response.HandleError(w, employee.ErrUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}
