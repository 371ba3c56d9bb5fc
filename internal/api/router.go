package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/baharkarakas/ereceipt-backend/internal/api/handlers"
	"github.com/baharkarakas/ereceipt-backend/internal/auth"
	"github.com/baharkarakas/ereceipt-backend/internal/config"
	"github.com/baharkarakas/ereceipt-backend/internal/metrics"
	"github.com/baharkarakas/ereceipt-backend/internal/middleware"
	"github.com/baharkarakas/ereceipt-backend/internal/services"
	"github.com/baharkarakas/ereceipt-backend/internal/web"
)

type RouterDeps struct {
	Cfg        config.Config
	ReceiptSvc *services.ReceiptService
	OtpSvc     *services.OtpService
	Sessions   *auth.SessionManager
}

func NewRouter(d RouterDeps) http.Handler {
	rh := handlers.NewReceiptHandler(d.ReceiptSvc)
	oh := handlers.NewOtpHandler(d.OtpSvc)

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Logger, middleware.Recover, middleware.HTTPMetrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: d.Cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         300,
	}))

	// health & metrics
	r.Get("/health", handlers.Health)
	r.Handle("/metrics", metrics.Handler())

	// pages
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) { web.Index(w) })
	r.Get("/view", rh.View)
	r.Get("/s/{code}", rh.Redirect)
	static := web.Static()
	r.Get("/style.css", static.ServeHTTP)
	r.Get("/script.js", static.ServeHTTP)
	r.Get("/receipt.html", static.ServeHTTP)

	// agent
	r.Post("/tcrm/issue", rh.Issue)

	// customer
	r.Route("/api", func(r chi.Router) {
		r.Post("/otp/send", oh.Send)
		r.Post("/otp/verify", oh.Verify)
		r.With(middleware.ViewSession(d.Sessions, d.Cfg.ReceiptSessionRequired)).
			Get("/receipt/{id}", rh.Get)
	})

	return r
}
