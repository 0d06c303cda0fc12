package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/auto-catalog/internal/http/response"
	"github.com/magabrotheeeer/auto-catalog/internal/lib/sl"
)

// AccessService описывает проверку административных прав.
type AccessService interface {
	IsAdmin(ctx context.Context, userID int64) (bool, error)
	IsSuperAdmin(ctx context.Context, userID int64) (bool, error)
}

// RequireAdmin возвращает middleware, пропускающий только администраторов.
// Ожидает, что JWTMiddleware уже положил пользователя в контекст.
func RequireAdmin(access AccessService, log *slog.Logger) func(http.Handler) http.Handler {
	return requireStanding(access.IsAdmin, "admin rights required", log, "middlewarectx.RequireAdmin")
}

// RequireSuperAdmin возвращает middleware, пропускающий только супер-админов.
func RequireSuperAdmin(access AccessService, log *slog.Logger) func(http.Handler) http.Handler {
	return requireStanding(access.IsSuperAdmin, "super admin rights required", log, "middlewarectx.RequireSuperAdmin")
}

func requireStanding(check func(context.Context, int64) (bool, error), denyMsg string,
	log *slog.Logger, op string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			user, ok := UserFromContext(r.Context())
			if !ok {
				log.Error("user not found in context")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("unauthorized"))
				return
			}

			allowed, err := check(r.Context(), user.UserID)
			if err != nil {
				log.Error("failed to check admin rights", sl.Err(err))
				w.WriteHeader(http.StatusInternalServerError)
				render.JSON(w, r, response.Error("could not check rights"))
				return
			}
			if !allowed {
				log.Warn("access denied", sl.UserID(user.UserID))
				w.WriteHeader(http.StatusForbidden)
				render.JSON(w, r, response.Error(denyMsg))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
