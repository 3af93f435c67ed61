package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/onerilhan/go-point-api/internal/auth"
	"github.com/onerilhan/go-point-api/internal/middleware/errors"
)

// ContextKey middleware'de context için key tipi
type ContextKey string

const UserContextKey ContextKey = "user"

// ClaimsFromContext AuthMiddleware'in eklediği claims'i döner
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(UserContextKey).(*auth.Claims)
	return claims, ok
}

// AuthMiddleware Bearer JWT token kontrolü yapar.
// tokens nil ise (JWT_SECRET boş) istekler olduğu gibi geçer.
func AuthMiddleware(tokens *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if tokens == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				log.Warn().
					Str("path", r.URL.Path).
					Str("method", r.Method).
					Msg("Authorization header eksik")
				panic(errors.NewAuthError("Authorization header gerekli"))
			}

			// "Bearer " prefix'ini kontrol et
			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
				panic(errors.NewAuthError("Authorization format: 'Bearer <token>'"))
			}

			claims, err := tokens.ValidateToken(tokenParts[1])
			if err != nil {
				log.Warn().Err(err).Str("path", r.URL.Path).Msg("Token doğrulama başarısız")
				panic(errors.NewAuthError("Geçersiz token"))
			}

			ctx := context.WithValue(r.Context(), UserContextKey, claims)
			r = r.WithContext(ctx)

			log.Debug().
				Int64("user_id", claims.UserID).
				Str("role", claims.Role).
				Str("path", r.URL.Path).
				Msg("🔐 Authentication successful")

			next.ServeHTTP(w, r)
		})
	}
}

// RequireOwnerOrAdmin token sahibinin path'teki {id} ile aynı kullanıcı
// olmasını ister, admin rolü her kullanıcıya erişebilir.
// Context'te claims yoksa (auth kapalı) kontrol yapılmaz.
func RequireOwnerOrAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok || claims.IsAdmin() {
			next.ServeHTTP(w, r)
			return
		}

		rawID := mux.Vars(r)["id"]
		pathID, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil || pathID != claims.UserID {
			panic(errors.NewRBACError(claims.UserID, rawID))
		}

		next.ServeHTTP(w, r)
	})
}
