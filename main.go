package main

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"pricetrail/config"
	"pricetrail/database"
	"pricetrail/handlers"
	"pricetrail/history"
	"pricetrail/middleware"
	"pricetrail/scheduler"
	"pricetrail/scraper"
	"pricetrail/tracker"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	// History store: Postgres when DATABASE_URL is set, the CSV log
	// otherwise.
	var store history.Store
	if cfg.DatabaseURL != "" {
		if err := database.InitDatabase(); err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer database.CloseDatabase()

		if err := database.CreateTables(); err != nil {
			log.Fatalf("Failed to create tables: %v", err)
		}
		store = history.NewPostgresStore(database.DB)
	} else {
		log.Printf("Using CSV history store at %s", cfg.HistoryFile)
		store = history.NewCSVStore(cfg.HistoryFile)
	}

	// Fetcher: headless browser for JS-rendered sites, plain HTTP by
	// default.
	var fetcher scraper.Fetcher
	if cfg.UseBrowser {
		browserFetcher, err := scraper.NewBrowserFetcher()
		if err != nil {
			log.Fatalf("Failed to launch browser fetcher: %v", err)
		}
		defer browserFetcher.Close()
		fetcher = browserFetcher
	} else {
		fetcher = scraper.NewHTTPFetcher(cfg.FetchTimeout)
	}

	t := tracker.New(fetcher, store, nil)
	h := handlers.NewHandlers(t, store)

	priceChecker := scheduler.NewPriceChecker(t, store, cfg.CheckSchedule)
	priceChecker.Start()
	defer priceChecker.Stop()

	r := mux.NewRouter()
	r.Use(middleware.LoggingMiddleware)
	r.Use(middleware.RateLimitMiddleware(cfg.RateLimit))

	r.HandleFunc("/health", healthCheck).Methods("GET")

	apiV1 := r.PathPrefix("/api/v1").Subrouter()
	apiV1.HandleFunc("/track", h.TrackProduct).Methods("POST")
	apiV1.HandleFunc("/products", h.GetProducts).Methods("GET")
	apiV1.HandleFunc("/products/{id}/history", h.GetHistory).Methods("GET")
	apiV1.HandleFunc("/products/{id}/analysis", h.GetAnalysis).Methods("GET")

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})

	addr := cfg.Host + ":" + cfg.Port
	log.Printf("Server starting on %s", addr)
	log.Printf("   GET  /health - Health check")
	log.Printf("   POST /api/v1/track - Track a product")
	log.Printf("   GET  /api/v1/products - List tracked products")
	log.Printf("   GET  /api/v1/products/{id}/history - Price history")
	log.Printf("   GET  /api/v1/products/{id}/analysis - Trend statistics")

	log.Fatal(http.ListenAndServe(addr, c.Handler(r)))
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"service":"pricetrail","status":"healthy"}`))
}
