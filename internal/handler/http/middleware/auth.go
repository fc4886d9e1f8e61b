package middleware

import (
	"context"
	"net/http"

	"github.com/JuanAlonzo/control-asistencia-backend/internal/domain/auth"
	"github.com/JuanAlonzo/control-asistencia-backend/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// AuthRequired rejects requests without a verified access token.
// It must run after jwtauth.Verifier.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}
			tokenType, ok := claims["type"].(string)
			if tokenType != auth.TokenTypeAccess || !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}

// ClaimsFromContext reads the attendance claims of the verified token in ctx.
func ClaimsFromContext(ctx context.Context) (auth.Claims, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return auth.Claims{}, auth.ErrInvalidToken
	}

	employeeID, _ := claims["employee_id"].(string)
	isAdmin, _ := claims["is_admin"].(bool)

	return auth.Claims{
		EmployeeID: employeeID,
		IsAdmin:    isAdmin,
	}, nil
}

// EmployeeIDFromContext returns the employee the token belongs to.
func EmployeeIDFromContext(ctx context.Context) (string, error) {
	claims, err := ClaimsFromContext(ctx)
	if err != nil {
		return "", err
	}
	if claims.EmployeeID == "" {
		return "", auth.ErrEmployeeClaimMissing
	}
	return claims.EmployeeID, nil
}
