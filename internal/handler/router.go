package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/prodcat/prodcat-go/internal/middleware"
	"github.com/prodcat/prodcat-go/internal/service"
)

// RouterConfig carries what NewRouter needs to wire the HTTP surface.
type RouterConfig struct {
	Auth       *service.AuthService
	Products   *service.ProductService
	JWTSecret  string
	CORSOrigin string
	Logger     *zap.Logger
}

// NewRouter builds the chi router with every public and token-guarded route.
func NewRouter(cfg RouterConfig) chi.Router {
	authHandler := NewAuthHandler(cfg.Auth, cfg.Logger)
	productHandler := NewProductHandler(cfg.Products, cfg.Logger)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(cfg.CORSOrigin))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Post("/signUp", authHandler.HandleSignup)
	r.Post("/login", authHandler.HandleLogin)

	r.Get("/getProds", productHandler.HandleList)
	r.Get("/getProds/{id}", productHandler.HandleGet)
	r.Get("/getFeaturedProd", productHandler.HandleFeatured)
	r.Get("/getByPrice/{price}", productHandler.HandleByPrice)
	r.Get("/getByRating/{rating}", productHandler.HandleByRating)

	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(cfg.JWTSecret))
		r.Post("/addProd", productHandler.HandleCreate)
		r.Put("/updateProd/{id}", productHandler.HandleUpdate)
		r.Delete("/deleteProd/{id}", productHandler.HandleDelete)
	})

	return r
}
