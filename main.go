package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/PortcullisApp/Portcullis-Backend/internal/auth"
	"github.com/PortcullisApp/Portcullis-Backend/internal/config"
	"github.com/PortcullisApp/Portcullis-Backend/internal/db"
	"github.com/PortcullisApp/Portcullis-Backend/internal/middleware"
	"github.com/PortcullisApp/Portcullis-Backend/internal/users"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
)

func RootHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, "Server is up!")
}

func main() {
	_ = godotenv.Load(".env.local")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	db.Connect(cfg.DatabaseURL)
	auth.Init()

	manager := auth.NewManager(auth.GormUserStore{}, auth.GormSessionStore{}, cfg)

	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	r.Get("/", RootHandler)

	r.Mount("/api/auth", auth.SetupRoutes(manager))
	r.Mount("/api/users", users.SetupRoutes(
		users.Handler{Store: auth.GormUserStore{}, Timeout: cfg.StoreTimeout},
		manager,
	))

	log.Printf("Server listening on port :%s...", cfg.Port)
	if err := http.ListenAndServe("0.0.0.0:"+cfg.Port, r); err != nil {
		log.Fatal(err)
	}
}
