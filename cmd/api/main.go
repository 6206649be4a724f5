package main

import (
	"context"
	"log"
	"net/http"

	_ "libroteca/docs" // swagger docs

	"libroteca/internal/cache"
	"libroteca/internal/config"
	"libroteca/internal/db"
	"libroteca/internal/handler"
	"libroteca/internal/repository"
	"libroteca/internal/service"
	"libroteca/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title Libroteca API
// @version 1.0
// @description Catálogo de libros con valoraciones (Mongo, Redis)
// @host localhost:4000
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	// Mongo y Redis
	db.InitMongo(cfg)
	defer func() {
		if err := db.Close(context.Background()); err != nil {
			log.Printf("[mongo] error cerrando conexión: %v", err)
		}
	}()
	cache.InitRedis(cfg)

	// almacenamiento de portadas en disco
	images, err := storage.NewImageStore(cfg.ImageDir)
	if err != nil {
		log.Fatalf("[storage] %v", err)
	}

	// repos
	userRepo := repository.NewUserRepository()
	bookRepo := repository.NewBookRepository()

	// services
	tokenSvc := service.NewTokenService(cfg.JWTSecret)
	authSvc := service.NewAuthService(userRepo, tokenSvc)
	bookSvc := service.NewBookService(bookRepo)
	ratingSvc := service.NewRatingService(bookRepo)

	// handlers
	authH := handler.NewAuthHandler(authSvc)
	bookH := handler.NewBookHandler(bookSvc, images, cfg.PublicBaseURL)
	ratingH := handler.NewRatingHandler(ratingSvc)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	// =============
	// Rutas públicas
	// =============
	r.Get("/health", handler.Health)

	r.Post("/auth/signup", authH.Signup)
	r.Post("/auth/login", authH.Login)

	r.Get("/books", bookH.GetAll)
	r.Get("/books/bestrating", bookH.BestRating)
	r.Get("/books/{id}", bookH.GetByID)

	// portadas estáticas
	fs := http.StripPrefix("/images/", http.FileServer(http.Dir(images.Dir())))
	r.Get("/images/*", fs.ServeHTTP)

	// ===========================
	// Escrituras protegidas con JWT
	// ===========================
	r.Group(func(r chi.Router) {
		r.Use(handler.JWTAuth(tokenSvc))

		r.Post("/books", bookH.Create)
		r.Put("/books/{id}", bookH.Update)
		r.Delete("/books/{id}", bookH.Delete)
		r.Post("/books/{id}/rating", ratingH.Submit)
	})

	// Swagger UI
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	log.Printf("HTTP escuchando en :%s", cfg.HTTPPort)
	log.Fatal(http.ListenAndServe(":"+cfg.HTTPPort, r))
}
