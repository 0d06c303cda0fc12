// Package autocatalog предоставляет маршруты приложения.
package autocatalog

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/auto-catalog/internal/http/handlers/admin/grantcreate"
	"github.com/magabrotheeeer/auto-catalog/internal/http/handlers/admin/grantlist"
	"github.com/magabrotheeeer/auto-catalog/internal/http/handlers/admin/grantremove"
	"github.com/magabrotheeeer/auto-catalog/internal/http/handlers/admin/settingslist"
	"github.com/magabrotheeeer/auto-catalog/internal/http/handlers/admin/settingsupdate"
	"github.com/magabrotheeeer/auto-catalog/internal/http/handlers/admin/stats"
	"github.com/magabrotheeeer/auto-catalog/internal/http/handlers/admin/topmodels"
	"github.com/magabrotheeeer/auto-catalog/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/auto-catalog/internal/http/handlers/catalog/brandadd"
	"github.com/magabrotheeeer/auto-catalog/internal/http/handlers/catalog/brandlist"
	"github.com/magabrotheeeer/auto-catalog/internal/http/handlers/catalog/brandremove"
	"github.com/magabrotheeeer/auto-catalog/internal/http/handlers/catalog/brandupdate"
	"github.com/magabrotheeeer/auto-catalog/internal/http/handlers/catalog/modeladd"
	"github.com/magabrotheeeer/auto-catalog/internal/http/handlers/catalog/modellist"
	"github.com/magabrotheeeer/auto-catalog/internal/http/handlers/catalog/modelremove"
	"github.com/magabrotheeeer/auto-catalog/internal/http/handlers/catalog/modelsearch"
	"github.com/magabrotheeeer/auto-catalog/internal/http/handlers/catalog/modelupdate"
	"github.com/magabrotheeeer/auto-catalog/internal/http/handlers/catalog/yearadd"
	"github.com/magabrotheeeer/auto-catalog/internal/http/handlers/catalog/yearlist"
	"github.com/magabrotheeeer/auto-catalog/internal/http/handlers/catalog/yearremove"
	"github.com/magabrotheeeer/auto-catalog/internal/http/handlers/catalog/yearupdate"
	"github.com/magabrotheeeer/auto-catalog/internal/http/handlers/files/attach"
	"github.com/magabrotheeeer/auto-catalog/internal/http/handlers/files/caption"
	"github.com/magabrotheeeer/auto-catalog/internal/http/handlers/files/clear"
	"github.com/magabrotheeeer/auto-catalog/internal/http/handlers/files/image"
	fileslist "github.com/magabrotheeeer/auto-catalog/internal/http/handlers/files/list"
	"github.com/magabrotheeeer/auto-catalog/internal/http/handlers/info/help"
	"github.com/magabrotheeeer/auto-catalog/internal/http/handlers/subscription/grant"
	"github.com/magabrotheeeer/auto-catalog/internal/http/handlers/subscription/prices"
	"github.com/magabrotheeeer/auto-catalog/internal/http/handlers/subscription/priceupdate"
	"github.com/magabrotheeeer/auto-catalog/internal/http/handlers/subscription/purchase"
	subread "github.com/magabrotheeeer/auto-catalog/internal/http/handlers/subscription/read"
	subremove "github.com/magabrotheeeer/auto-catalog/internal/http/handlers/subscription/remove"
	"github.com/magabrotheeeer/auto-catalog/internal/http/handlers/subscription/revoke"
	userlist "github.com/magabrotheeeer/auto-catalog/internal/http/handlers/user/list"
	"github.com/magabrotheeeer/auto-catalog/internal/http/handlers/user/me"
	userupdate "github.com/magabrotheeeer/auto-catalog/internal/http/handlers/user/update"
	"github.com/magabrotheeeer/auto-catalog/internal/http/middlewarectx"
	"github.com/magabrotheeeer/auto-catalog/internal/metrics"
	accessservice "github.com/magabrotheeeer/auto-catalog/internal/services/access"
	adminservice "github.com/magabrotheeeer/auto-catalog/internal/services/admin"
	authservice "github.com/magabrotheeeer/auto-catalog/internal/services/auth"
	catalogservice "github.com/magabrotheeeer/auto-catalog/internal/services/catalog"
	filesservice "github.com/magabrotheeeer/auto-catalog/internal/services/files"
	proxyservice "github.com/magabrotheeeer/auto-catalog/internal/services/proxy"
	subservice "github.com/magabrotheeeer/auto-catalog/internal/services/subscription"
)

// Services — бизнес-сервисы, используемые маршрутами.
type Services struct {
	Auth         *authservice.Service
	Access       *accessservice.Service
	Subscription *subservice.Service
	Catalog      *catalogservice.Service
	Files        *filesservice.Service
	Proxy        *proxyservice.Service
	Admin        *adminservice.Service
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, s Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		metrics.Middleware,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/login", login.New(logger, s.Auth).ServeHTTP)
		r.Get("/subscriptions/prices", prices.New(logger, s.Subscription).ServeHTTP)
		r.Get("/info/help", help.New(logger, s.Admin).ServeHTTP)
		r.Get("/files/image/{fileID}", image.New(logger, s.Proxy).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(s.Auth, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Get("/users/me", me.New(logger).ServeHTTP)

			r.Get("/catalog/brands", brandlist.New(logger, s.Catalog).ServeHTTP)
			r.Get("/catalog/brands/{brandID}/models", modellist.New(logger, s.Catalog).ServeHTTP)
			r.Get("/catalog/models/search", modelsearch.New(logger, s.Catalog).ServeHTTP)
			r.Get("/catalog/models/{modelID}/years", yearlist.New(logger, s.Catalog).ServeHTTP)

			r.Get("/files/year/{yearID}", fileslist.New(logger, s.Files).ServeHTTP)

			r.Get("/subscriptions/me", subread.New(logger, s.Subscription).ServeHTTP)
			r.Post("/subscriptions/me", purchase.New(logger, s.Subscription).ServeHTTP)
			r.Delete("/subscriptions/me", subremove.New(logger, s.Subscription).ServeHTTP)

			// Группа администраторов
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireAdmin(s.Access, logger))

				r.Post("/catalog/brands", brandadd.New(logger, s.Catalog).ServeHTTP)
				r.Put("/catalog/brands", brandupdate.New(logger, s.Catalog).ServeHTTP)
				r.Delete("/catalog/brands/{brandID}", brandremove.New(logger, s.Catalog).ServeHTTP)
				r.Post("/catalog/models", modeladd.New(logger, s.Catalog).ServeHTTP)
				r.Put("/catalog/models", modelupdate.New(logger, s.Catalog).ServeHTTP)
				r.Delete("/catalog/models/{modelID}", modelremove.New(logger, s.Catalog).ServeHTTP)
				r.Post("/catalog/years", yearadd.New(logger, s.Catalog).ServeHTTP)
				r.Put("/catalog/years", yearupdate.New(logger, s.Catalog).ServeHTTP)
				r.Delete("/catalog/years/{yearID}", yearremove.New(logger, s.Catalog).ServeHTTP)

				r.Post("/files/slots", attach.New(logger, s.Files).ServeHTTP)
				r.Delete("/files/year/{yearID}/slot/{slot}", clear.New(logger, s.Files).ServeHTTP)
				r.Put("/files/year/{yearID}/caption", caption.New(logger, s.Files).ServeHTTP)

				r.Get("/users", userlist.New(logger, s.Admin).ServeHTTP)
				r.Put("/users/{userID}", userupdate.New(logger, s.Admin).ServeHTTP)

				r.Post("/subscriptions", grant.New(logger, s.Subscription).ServeHTTP)
				r.Delete("/subscriptions/{userID}", revoke.New(logger, s.Subscription).ServeHTTP)
				r.Put("/subscriptions/prices/{periodMonths}", priceupdate.New(logger, s.Subscription).ServeHTTP)

				r.Get("/admin/stats", stats.New(logger, s.Admin).ServeHTTP)
				r.Get("/admin/stats/top-models", topmodels.New(logger, s.Admin).ServeHTTP)
				r.Get("/admin/settings", settingslist.New(logger, s.Admin).ServeHTTP)
				r.Put("/admin/settings/{key}", settingsupdate.New(logger, s.Admin).ServeHTTP)

				// Группа супер-админов
				r.Group(func(r chi.Router) {
					r.Use(middlewarectx.RequireSuperAdmin(s.Access, logger))

					r.Get("/admin/grants", grantlist.New(logger, s.Admin).ServeHTTP)
					r.Post("/admin/grants", grantcreate.New(logger, s.Admin).ServeHTTP)
					r.Delete("/admin/grants/{userID}", grantremove.New(logger, s.Admin).ServeHTTP)
				})
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
