package main

import (
	"database/sql"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"locacar/internal/api"
	"locacar/internal/auth"
	"locacar/internal/logger"
	"locacar/internal/repository"
	"locacar/internal/service"
)

func main() {
	godotenv.Load()

	log := logger.New(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.WithError(err).Fatal("failed to open database")
	}
	if err := db.Ping(); err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}

	sessionSecret := os.Getenv("SESSION_SECRET")
	if sessionSecret == "" {
		log.Fatal("SESSION_SECRET not set")
	}
	sessionTTL := 8 * time.Hour
	if v := os.Getenv("SESSION_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			sessionTTL = d
		} else {
			log.WithField("value", v).Warn("invalid SESSION_TTL, using default")
		}
	}
	sessions := auth.NewSessions(sessionSecret, sessionTTL)

	carRepo := repository.NewCarRepository(db)
	clientRepo := repository.NewClientRepository(db)
	userRepo := repository.NewUserRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	auditSvc := service.NewAuditService(auditRepo, log)
	notifySvc := service.NewNotifyService(service.NotifyConfig{
		SendGridAPIKey:   os.Getenv("SENDGRID_API_KEY"),
		FromEmail:        os.Getenv("SENDGRID_FROM_EMAIL"),
		FromName:         os.Getenv("SENDGRID_FROM_NAME"),
		TwilioAccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioFromNumber: os.Getenv("TWILIO_FROM_NUMBER"),
	}, log)

	authSvc := service.NewAuthService(userRepo, auditSvc)
	carSvc := service.NewCarService(carRepo, reservationRepo, auditSvc)
	clientSvc := service.NewClientService(clientRepo, reservationRepo, auditSvc)
	reservationSvc := service.NewReservationService(reservationRepo, carRepo, clientRepo, auditSvc, notifySvc)
	userSvc := service.NewUserService(userRepo, auditSvc)
	statsSvc := service.NewStatsService(statsRepo, reservationRepo)

	authHandler := api.NewAuthHandler(authSvc, sessions, sessionTTL, log)
	carHandler := api.NewCarHandler(carSvc, log)
	clientHandler := api.NewClientHandler(clientSvc, log)
	managerHandler := api.NewManagerHandler(userSvc, log)
	reservationHandler := api.NewReservationHandler(reservationSvc, log)
	auditHandler := api.NewAuditLogHandler(auditSvc, log)
	statsHandler := api.NewStatsHandler(statsSvc, log)

	r := mux.NewRouter()
	root := r.PathPrefix("/api").Subrouter()

	root.HandleFunc("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"pong"}`))
	}).Methods("GET")

	root.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	root.HandleFunc("/auth/logout", authHandler.Logout).Methods("POST")
	root.HandleFunc("/auth/status", authHandler.Status).Methods("GET")

	// Per-route role gates; admin sessions pass the manager gate too.
	manager := func(h http.HandlerFunc) http.Handler {
		return sessions.RequireRole(auth.RoleManager)(h)
	}
	admin := func(h http.HandlerFunc) http.Handler {
		return sessions.RequireRole(auth.RoleAdmin)(h)
	}

	root.Handle("/cars", manager(carHandler.List)).Methods("GET")
	root.Handle("/cars", manager(carHandler.Create)).Methods("POST")
	root.Handle("/cars/{id}", manager(carHandler.Get)).Methods("GET")
	root.Handle("/cars/{id}", manager(carHandler.Update)).Methods("PUT")
	root.Handle("/cars/{id}", manager(carHandler.Delete)).Methods("DELETE")
	root.Handle("/clients", manager(clientHandler.List)).Methods("GET")
	root.Handle("/clients", manager(clientHandler.Create)).Methods("POST")
	root.Handle("/clients/{id}", manager(clientHandler.Get)).Methods("GET")
	root.Handle("/clients/{id}", manager(clientHandler.Update)).Methods("PUT")
	root.Handle("/clients/{id}", manager(clientHandler.Delete)).Methods("DELETE")
	root.Handle("/reservations", manager(reservationHandler.List)).Methods("GET")
	root.Handle("/reservations", manager(reservationHandler.Create)).Methods("POST")
	root.Handle("/reservations/{id}", manager(reservationHandler.Get)).Methods("GET")
	root.Handle("/reservations/{id}", manager(reservationHandler.Update)).Methods("PUT")
	root.Handle("/reservations/{id}", manager(reservationHandler.Delete)).Methods("DELETE")
	root.Handle("/reservations/{id}/status", manager(reservationHandler.UpdateStatus)).Methods("PUT")
	root.Handle("/manager/dashboard/stats", manager(statsHandler.ManagerDashboard)).Methods("GET")
	root.Handle("/manager/dashboard/recent-clients", manager(statsHandler.RecentClients)).Methods("GET")
	root.Handle("/manager/dashboard/recent-reservations", manager(statsHandler.RecentReservations)).Methods("GET")

	root.Handle("/managers", admin(managerHandler.List)).Methods("GET")
	root.Handle("/managers", admin(managerHandler.Create)).Methods("POST")
	root.Handle("/managers/{id}", admin(managerHandler.Get)).Methods("GET")
	root.Handle("/managers/{id}", admin(managerHandler.Update)).Methods("PUT")
	root.Handle("/managers/{id}", admin(managerHandler.Delete)).Methods("DELETE")
	root.Handle("/audit-logs", admin(auditHandler.List)).Methods("GET")
	root.Handle("/admin/stats", admin(statsHandler.AdminStats)).Methods("GET")

	allowedOrigins := []string{"*"}
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		allowedOrigins = strings.Split(v, ",")
	}
	cors := handlers.CORS(
		handlers.AllowedOrigins(allowedOrigins),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
		handlers.AllowCredentials(),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.WithField("port", port).Info("server listening")
	log.Fatal(http.ListenAndServe(":"+port, handlers.LoggingHandler(os.Stdout, cors(r))))
}
