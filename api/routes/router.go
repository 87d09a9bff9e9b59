package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rkotecha/tilebill-backend/api/controllers"
	"github.com/rkotecha/tilebill-backend/api/middleware"
	"github.com/rkotecha/tilebill-backend/internal/bills"
	cartsvc "github.com/rkotecha/tilebill-backend/internal/cart"
	"github.com/rkotecha/tilebill-backend/internal/inventory"
	"github.com/rkotecha/tilebill-backend/pkg/config"
	"github.com/rkotecha/tilebill-backend/pkg/db"
	"github.com/rkotecha/tilebill-backend/pkg/logger"
	"github.com/rkotecha/tilebill-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	inventoryService inventory.Service,
	assembler *cartsvc.Assembler,
	cartService cartsvc.Service,
	billService bills.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Identity(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/tiles", func(r chi.Router) {
			r.Get("/", controllers.TileList(inventoryService, logg))
			r.Get("/presets", controllers.TilePresets())
			r.Get("/{productId}", controllers.TileDetail(inventoryService, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSession(logg))

			r.Route("/calculations", func(r chi.Router) {
				r.Post("/floor", controllers.CalculateFloor(assembler, cartService, logg))
				r.Post("/wall", controllers.CalculateWall(assembler, cartService, logg))
			})

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartFetch(cartService, logg))
				r.Delete("/", controllers.CartClear(cartService, logg))
				r.Delete("/items/{index}", controllers.CartRemoveItem(cartService, logg))
			})
		})

		r.Route("/bills", func(r chi.Router) {
			r.With(middleware.RequireSession(logg)).Post("/", controllers.BillCommit(billService, logg))
			r.Get("/", controllers.BillList(billService, logg))
			r.Get("/stale-count", controllers.BillStaleCount(billService, cfg.Retention.BillDays, logg))
			r.Post("/purge", controllers.BillPurge(billService, cfg.Retention.BillDays, logg))
			r.Get("/{billId}", controllers.BillDetail(billService, logg))
			r.Delete("/{billId}", controllers.BillDelete(billService, logg))
		})
	})

	return r
}
