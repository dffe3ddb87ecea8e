package rest

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/swaggo/swag"

	_ "medipred/docs"
	"medipred/internal/service"
	"medipred/internal/transport/rest/handler"
	"medipred/internal/transport/rest/middleware"
	"medipred/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService       *service.AuthService
	PredictionService handler.PredictionService
	WSHub             *ws.Hub
	CORSOrigins       []string
	Logger            zerolog.Logger
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	predictionHandler := handler.NewPredictionHandler(c.PredictionService, c.Logger)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService, c.CORSOrigins)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	r.Use(middleware.Recovery(c.Logger))
	r.Use(middleware.Logger(c.Logger))
	r.Use(corsMiddleware(c.CORSOrigins))

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/docs/openapi.json", serveDoc).Methods("GET")

	// WebSocket routes (public with token in query param)
	v1.HandleFunc("/ws/predictions", wsHandler.PredictionsWS).Methods("GET")

	// User routes (require user auth)
	userRoutes := v1.NewRoute().Subrouter()
	userRoutes.Use(authMW.RequireUser)

	userRoutes.HandleFunc("/assessments/{condition}", predictionHandler.Assess).Methods("POST", "OPTIONS")
	userRoutes.HandleFunc("/assessments/{condition}/preview", predictionHandler.Preview).Methods("POST", "OPTIONS")

	userRoutes.HandleFunc("/predictions", predictionHandler.Save).Methods("POST", "OPTIONS")
	userRoutes.HandleFunc("/predictions", predictionHandler.List).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/predictions", predictionHandler.DeleteAll).Methods("DELETE", "OPTIONS")
	userRoutes.HandleFunc("/predictions/summary", predictionHandler.Summary).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/predictions/{id}", predictionHandler.Get).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/predictions/{id}", predictionHandler.Delete).Methods("DELETE", "OPTIONS")

	return r
}

func serveDoc(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		http.Error(w, `{"error":"api description unavailable"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(doc))
}

// corsMiddleware echoes the request origin when it is allowed. A "*" entry
// or an empty list allows any origin.
func corsMiddleware(origins []string) mux.MiddlewareFunc {
	allowAll := len(origins) == 0
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		if o == "*" {
			allowAll = true
		}
		allowed[strings.TrimRight(o, "/")] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			switch {
			case allowAll:
				w.Header().Set("Access-Control-Allow-Origin", "*")
			case origin != "":
				if _, ok := allowed[origin]; ok {
					w.Header().Set("Access-Control-Allow-Origin", origin)
					w.Header().Add("Vary", "Origin")
				}
			}
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, token, X-Request-ID")

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
