package main

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/mahakhub/registry/captcha"
	"github.com/mahakhub/registry/config"
	"github.com/mahakhub/registry/database"
	"github.com/mahakhub/registry/handlers"
	"github.com/mahakhub/registry/media"
	"github.com/mahakhub/registry/repository"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Printf("Info: No .env file found or error loading: %v", err)
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	storagePaths := []string{cfg.UploadPath, cfg.ThumbsPath, filepath.Dir(cfg.DatabasePath)}
	for _, p := range storagePaths {
		log.Printf("Ensuring storage directory exists: %s", p)
		if err := os.MkdirAll(p, 0755); err != nil {
			log.Fatalf("FATAL: Failed to create storage directory %s: %v", p, err)
		}
	}

	db, err := database.InitGormDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize database: %v", err)
	}
	if err := database.AutoMigrateModels(db); err != nil {
		log.Fatalf("FATAL: Failed to migrate database: %v", err)
	}

	uploadStore, err := media.NewUploadStore(cfg.UploadPath, cfg.ThumbsPath, cfg.ThumbnailMaxSize)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize upload store: %v", err)
	}

	verifier := captcha.NewVerifier(cfg.RecaptchaSecret, cfg.RecaptchaVerifyURL)
	if cfg.RecaptchaSecret == "" {
		log.Printf("Warning: RECAPTCHA_SECRET_KEY not set; bot verification is disabled")
	}

	personRepo := repository.NewPersonRepository(db)
	personHandler, err := handlers.NewPersonHandler(personRepo, cfg, uploadStore, verifier)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize handlers: %v", err)
	}

	log.Printf("Using database: %s", cfg.DatabasePath)
	log.Printf("Storing uploads in: %s", cfg.UploadPath)
	log.Printf("Thumbnail max size (longest side): %dpx", cfg.ThumbnailMaxSize)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/", personHandler.Index)
	r.Get("/search", personHandler.SearchForm)
	r.Post("/search", personHandler.Search)
	r.Get("/person/{id}", personHandler.Detail)
	r.Get("/create", personHandler.CreateForm)
	r.Post("/create", personHandler.Create)
	r.Get("/update_status/{id}", personHandler.UpdateStatusForm)
	r.Post("/update_status/{id}", personHandler.UpdateStatus)

	// photos may be embedded by partner sites, so the uploads subtree is
	// served with permissive CORS
	uploadsCors := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "HEAD"},
		MaxAge:         300,
	})
	r.Route("/uploads", func(r chi.Router) {
		r.Use(uploadsCors.Handler)
		r.Get("/*", handlers.AssetServer(uploadStore.BasePath(), "/uploads/"))
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	serverAddr := ":" + port
	log.Printf("Server listening on %s", serverAddr)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.Fatal(server.ListenAndServe())
}
