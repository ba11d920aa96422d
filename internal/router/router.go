package router

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/skyfare/booking-wizard/internal/handlers"
	"github.com/skyfare/booking-wizard/internal/websocket"
)

// SetupRouter creates and configures the HTTP router
func SetupRouter(h *handlers.Handler, hub *websocket.Hub) *mux.Router {
	r := mux.NewRouter()

	// CORS middleware
	r.Use(corsMiddleware)

	// API routes
	api := r.PathPrefix("/api").Subrouter()

	// Sessions and wizard steps
	api.HandleFunc("/sessions", h.CreateSession).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/sessions/resume", h.ResumeSession).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/sessions/{id}", h.GetSession).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/sessions/{id}/state", h.ExportState).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/sessions/{id}", h.EndSession).Methods(http.MethodDelete, http.MethodOptions)
	api.HandleFunc("/sessions/{id}/search", h.SearchFlights).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/sessions/{id}/flight", h.SelectFlight).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/sessions/{id}/seatmap", h.GetSeatMap).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/sessions/{id}/seats/toggle", h.ToggleSeat).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/sessions/{id}/seats/continue", h.ContinueToPassengers).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/sessions/{id}/passengers", h.SubmitPassengers).Methods(http.MethodPut, http.MethodOptions)

	// Checkout flow
	api.HandleFunc("/sessions/{id}/checkout", h.SubmitCheckout).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/sessions/{id}/checkout", h.GetCheckoutState).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/sessions/{id}/checkout", h.CancelCheckout).Methods(http.MethodDelete, http.MethodOptions)
	api.HandleFunc("/sessions/{id}/otp", h.SubmitOTP).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/sessions/{id}/confirmation", h.GetConfirmation).Methods(http.MethodGet, http.MethodOptions)

	// WebSocket for live checkout status updates
	api.HandleFunc("/sessions/{id}/ws", hub.HandleWebSocket)

	// Health check
	r.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
