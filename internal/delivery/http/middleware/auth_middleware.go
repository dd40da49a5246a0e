package middleware

import (
	"context"
	"net/http"

	"paraguay-shipping/internal/domain"
	"paraguay-shipping/pkg/utils"
)

func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := utils.TokenFromRequest(r)
		if tokenString == "" {
			utils.WriteError(w, http.StatusUnauthorized, "Unauthorized: No token provided")
			return
		}

		claims, err := utils.ValidateJWT(tokenString)
		if err != nil {
			utils.WriteError(w, http.StatusUnauthorized, "Unauthorized: Invalid token")
			return
		}

		// Tokens are minted by cmd/admintoken; the claims are the whole user.
		sub, _ := claims["sub"].(string)
		role, _ := claims["role"].(string)

		user := &domain.User{
			ID:   sub,
			Role: role,
		}

		ctx := context.WithValue(r.Context(), domain.UserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
