// @title           RSUI Gateway API
// @version         1.0
// @host            localhost
// @schemes         http https
// @BasePath        /
// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name access_token
package main

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dismorfo/rsui/internal/api"
	"github.com/dismorfo/rsui/internal/config"
	"github.com/dismorfo/rsui/internal/database"
	"github.com/dismorfo/rsui/internal/upstream"

	_ "github.com/dismorfo/rsui/docs"

	httpSwagger "github.com/swaggo/http-swagger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Nie można wczytać konfiguracji: %v", err)
	}

	if cfg.Upstream.Endpoint == "" {
		log.Fatal("Brak skonfigurowanego endpointu upstream (upstream.endpoint)")
	}

	dbpool, err := pgxpool.New(context.Background(), cfg.DB.Source)
	if err != nil {
		log.Fatalf("Nie można połączyć się z bazą danych: %v", err)
	}
	defer dbpool.Close()

	if err := dbpool.Ping(context.Background()); err != nil {
		log.Fatalf("Nie można pingować bazy danych: %v", err)
	}
	log.Println("Pomyślnie połączono z bazą danych")

	cache := upstream.NewResponseCache(cfg.Cache.TTL(), cfg.Cache.Enabled)
	client := upstream.NewClient(cfg.Upstream, cache)
	log.Printf("Bramka upstream: %s (timeout %s, cache read=%v)", client.Endpoint(), cfg.Upstream.Timeout(), cfg.Cache.Enabled)

	store := database.NewStore(dbpool)
	server := api.NewServer(cfg, store, client)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(api.MetricsMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.AppHost},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowCredentials: true,
	}))

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("https://localhost/swagger/doc.json"),
	))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Bramka RSUI działa! Dokumentacja dostępna pod /swagger/index.html"))
	})

	r.Post("/login", server.LoginHandler)
	r.Post("/refresh", server.RefreshTokenHandler)

	r.Get("/health", server.HealthCheckHandler)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(server.AuthMiddleware)
		r.Post("/logout", server.LogoutHandler)
		r.Post("/ping", server.PingHandler)
		r.Get("/dashboard", server.DashboardHandler)
		r.Get("/partners/{partner}", server.GetPartnerHandler)
		r.Get("/collections/{collection}", server.GetCollectionHandler)
		r.Get("/paths/{partner}/{collection}/*", server.CollectionPathHandler)
		r.Get("/fs/*", server.GetPathHandler)
		r.Get("/download/*", server.DownloadHandler)
		r.Get("/preview/*", server.PreviewHandler)
	})

	log.Println("Uruchamianie serwera na porcie :8080")
	if err := http.ListenAndServe(":8080", r); err != nil {
		log.Fatalf("Nie można uruchomić serwera: %v", err)
	}
}
