package middleware

import (
	"net/http"

	"github.com/JuanAlonzo/control-asistencia-backend/internal/domain/auth"
	"github.com/JuanAlonzo/control-asistencia-backend/internal/handler/http/response"
)

func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := ClaimsFromContext(r.Context())
		if err != nil {
			response.HandleError(w, err)
			return
		}

		if !claims.IsAdmin {
			response.HandleError(w, auth.ErrAdminPrivilegeRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
