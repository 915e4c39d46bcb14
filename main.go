package main

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/wrappedform/wrappedform/auth"
	"github.com/wrappedform/wrappedform/config"
	"github.com/wrappedform/wrappedform/db"
	"github.com/wrappedform/wrappedform/handlers"
	"github.com/wrappedform/wrappedform/store"
)

func main() {
	cfg := config.Load()

	if cfg.DemoMode {
		logrus.Info("DATABASE_URL not set, running in demo mode with in-memory store")
		store.Active = store.NewMemory()
	} else {
		db.InitDB(cfg.DatabaseURL)
		store.Active = store.NewPostgres(db.DB)
	}
	auth.InitStore(cfg.DatabaseURL, cfg.SessionKey)

	r := mux.NewRouter()

	// cors Middleware

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.FrontendURL},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	handler := c.Handler(r)

	// Auth routes
	r.HandleFunc("/login/google", handlers.LoginHandler).Methods("GET")
	r.HandleFunc("/auth/google/callback", handlers.GoogleCallbackHandler(cfg.FrontendURL))
	r.HandleFunc("/register", handlers.RegisterHandler).Methods("POST")
	r.HandleFunc("/login", handlers.LoginHandlerEmail).Methods("POST")
	r.HandleFunc("/logout", handlers.LogoutHandler)
	r.HandleFunc("/api/me", auth.AuthMiddleware(handlers.GetCurrentUser)).Methods("GET")

	// Form routes
	r.HandleFunc("/api/forms", auth.AuthMiddleware(handlers.CreateForm)).Methods("POST")
	r.HandleFunc("/api/forms", auth.AuthMiddleware(handlers.ListForms)).Methods("GET")
	r.HandleFunc("/api/forms/{id}", auth.AuthMiddleware(handlers.GetForm)).Methods("GET")
	r.HandleFunc("/api/forms/{id}", auth.AuthMiddleware(handlers.UpdateForm)).Methods("PATCH")
	r.HandleFunc("/api/forms/{id}", auth.AuthMiddleware(handlers.DeleteForm)).Methods("DELETE")
	r.HandleFunc("/api/forms/{id}/publish", auth.AuthMiddleware(handlers.PublishForm)).Methods("POST")
	r.HandleFunc("/api/forms/{id}/close", auth.AuthMiddleware(handlers.CloseForm)).Methods("POST")
	r.HandleFunc("/api/forms/{id}/story/preview", auth.AuthMiddleware(handlers.PreviewStory)).Methods("GET")
	r.HandleFunc("/api/forms/{id}/submissions", auth.AuthMiddleware(handlers.ListFormSubmissions)).Methods("GET")
	r.HandleFunc("/api/forms/{id}/stats", auth.AuthMiddleware(handlers.GetFormStats)).Methods("GET")
	r.HandleFunc("/api/forms/{id}/export", auth.AuthMiddleware(handlers.ExportFormData)).Methods("GET")

	// Builder routes
	r.HandleFunc("/api/forms/{id}/fields", auth.AuthMiddleware(handlers.AddField)).Methods("POST")
	r.HandleFunc("/api/forms/{id}/fields/{fieldID}", auth.AuthMiddleware(handlers.UpdateField)).Methods("PATCH")
	r.HandleFunc("/api/forms/{id}/fields/{fieldID}", auth.AuthMiddleware(handlers.DeleteField)).Methods("DELETE")
	r.HandleFunc("/api/forms/{id}/fields/{fieldID}/options/move", auth.AuthMiddleware(handlers.MoveFieldOption)).Methods("POST")
	r.HandleFunc("/api/forms/{id}/landing/blocks", auth.AuthMiddleware(handlers.AddLandingBlock)).Methods("POST")
	r.HandleFunc("/api/forms/{id}/landing/blocks/{blockID}", auth.AuthMiddleware(handlers.UpdateLandingBlock)).Methods("PATCH")
	r.HandleFunc("/api/forms/{id}/landing/blocks/{blockID}", auth.AuthMiddleware(handlers.DeleteLandingBlock)).Methods("DELETE")
	r.HandleFunc("/api/forms/{id}/landing/drop", auth.AuthMiddleware(handlers.DropLandingBlock)).Methods("POST")
	r.HandleFunc("/api/forms/{id}/story/elements", auth.AuthMiddleware(handlers.AddStoryElement)).Methods("POST")
	r.HandleFunc("/api/forms/{id}/story/elements/{elementID}", auth.AuthMiddleware(handlers.UpdateStoryElement)).Methods("PATCH")
	r.HandleFunc("/api/forms/{id}/story/elements/{elementID}", auth.AuthMiddleware(handlers.DeleteStoryElement)).Methods("DELETE")
	r.HandleFunc("/api/forms/{id}/story/elements/{elementID}/position", auth.AuthMiddleware(handlers.PositionStoryElement)).Methods("POST")
	r.HandleFunc("/api/forms/{id}/story/background", auth.AuthMiddleware(handlers.SetStoryBackground)).Methods("POST")

	// Webhook routes
	r.HandleFunc("/api/webhooks", auth.AuthMiddleware(handlers.CreateWebhook)).Methods("POST")
	r.HandleFunc("/api/webhooks", auth.AuthMiddleware(handlers.ListWebhooks)).Methods("GET")
	r.HandleFunc("/api/webhooks/{webhookID}", auth.AuthMiddleware(handlers.UpdateWebhook)).Methods("PUT")
	r.HandleFunc("/api/webhooks/{webhookID}", auth.AuthMiddleware(handlers.DeleteWebhook)).Methods("DELETE")

	// Public participant routes
	limiter := handlers.NewRateLimiter(rate.Limit(1), 5)
	r.HandleFunc("/view/{id}", handlers.ViewForm).Methods("GET")
	r.HandleFunc("/view/{id}/submissions", limiter.Middleware(handlers.SubmitForm)).Methods("POST")
	r.HandleFunc("/view/{id}/share", handlers.ShareForm).Methods("POST")

	logrus.Infof("Server starting on :%s", cfg.Port)
	logrus.Fatal(http.ListenAndServe(":"+cfg.Port, handler))
}
