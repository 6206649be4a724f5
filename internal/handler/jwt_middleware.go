package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"libroteca/internal/service"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ctxKey string

const CtxUserID ctxKey = "userId"

// JWTAuth devuelve un middleware que valida el bearer token y mete el
// userId verificado en el contexto. Header ausente o mal formado se
// rechaza igual que un token inválido: acá nada pasa de largo.
func JWTAuth(tokens *service.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				jsonError(w, "falta el header Authorization o no es Bearer", http.StatusUnauthorized)
				return
			}

			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			sub, err := tokens.Verify(tokenStr)
			if err != nil {
				if errors.Is(err, service.ErrTokenExpired) {
					jsonError(w, "token expirado", http.StatusUnauthorized)
					return
				}
				jsonError(w, "token inválido", http.StatusUnauthorized)
				return
			}

			userID, err := primitive.ObjectIDFromHex(sub)
			if err != nil {
				jsonError(w, "token inválido", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), CtxUserID, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext helper para sacar el userId del contexto.
func UserIDFromContext(ctx context.Context) (primitive.ObjectID, bool) {
	id, ok := ctx.Value(CtxUserID).(primitive.ObjectID)
	return id, ok
}
