package handlers

import (
	"net/http"

	"htxagri/internal/config"
	"htxagri/internal/middleware"
	"htxagri/internal/store"
	"htxagri/internal/websocket"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handler struct {
	db        store.DB
	txRunner  TxRunner
	cfg       config.Config
	users     UserStore
	members   MemberStore
	products  ProductStore
	harvests  HarvestStore
	contracts ContractStore
	finance   FinanceStore
	dashboard DashboardStore
	hub       *websocket.Hub
}

func New(db store.DB, txRunner TxRunner, cfg config.Config, users UserStore, members MemberStore, products ProductStore, harvests HarvestStore, contracts ContractStore, finance FinanceStore, dashboard DashboardStore, hub *websocket.Hub) *Handler {
	return &Handler{
		db:        db,
		txRunner:  txRunner,
		cfg:       cfg,
		users:     users,
		members:   members,
		products:  products,
		harvests:  harvests,
		contracts: contracts,
		finance:   finance,
		dashboard: dashboard,
		hub:       hub,
	}
}

func (h *Handler) Routes() http.Handler {
	router := chi.NewRouter()
	router.Use(chimiddleware.Logger)
	router.Use(middleware.Metrics)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{h.cfg.AllowedOrigins},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	auth := middleware.Auth(h.cfg.JWTSecret)

	router.Route("/api", func(api chi.Router) {
		api.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Login)
			r.Post("/register", h.Register)
			r.With(auth).Get("/me", h.Me)
		})
		api.Route("/members", func(r chi.Router) {
			r.Use(auth)
			r.Get("/", h.ListMembers)
			r.Post("/", h.CreateMember)
			r.Get("/{id}", h.GetMember)
			r.Put("/{id}", h.UpdateMember)
			r.Delete("/{id}", h.DeleteMember)
		})
		api.Route("/products", func(r chi.Router) {
			r.Use(auth)
			r.Get("/", h.ListProducts)
			r.Post("/", h.CreateProduct)
			r.Get("/{id}", h.GetProduct)
			r.Put("/{id}", h.UpdateProduct)
			r.Delete("/{id}", h.DeleteProduct)
		})
		api.Route("/harvests", func(r chi.Router) {
			r.Use(auth)
			r.Get("/", h.ListHarvests)
			r.Post("/", h.CreateHarvest)
			r.Get("/{id}", h.GetHarvest)
		})
		api.Route("/contracts", func(r chi.Router) {
			r.Use(auth)
			r.Get("/", h.ListContracts)
			r.Post("/", h.CreateContract)
			r.Get("/{id}", h.GetContract)
			r.With(middleware.RequireManager(h.users)).Put("/{id}/status", h.UpdateContractStatus)
		})
		api.Route("/finance", func(r chi.Router) {
			r.Use(auth)
			r.Get("/transactions", h.ListTransactions)
			r.With(middleware.RequireManager(h.users)).Post("/transactions", h.CreateTransaction)
		})
		api.With(auth).Get("/dashboard/stats", h.DashboardStats)
		api.Get("/ws/dashboard", h.WSDashboard)
	})

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	router.Method(http.MethodGet, "/metrics", promhttp.Handler())
	return router
}
