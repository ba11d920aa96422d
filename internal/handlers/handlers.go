package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/skyfare/booking-wizard/internal/models"
	"github.com/skyfare/booking-wizard/internal/service"
	"github.com/skyfare/booking-wizard/internal/wizard"
)

// StatusNotifier pushes checkout status transitions to live subscribers.
type StatusNotifier interface {
	BroadcastStatus(sessionID string, status models.CheckoutStatus)
}

// Handler contains HTTP handlers for the API
type Handler struct {
	bookingService service.BookingService
	notifier       StatusNotifier
}

// NewHandler creates a new Handler instance. The notifier may be nil when no
// live-update channel is wired.
func NewHandler(bookingService service.BookingService, notifier StatusNotifier) *Handler {
	return &Handler{
		bookingService: bookingService,
		notifier:       notifier,
	}
}

func (h *Handler) notify(sessionID string, status models.CheckoutStatus) {
	if h.notifier != nil {
		h.notifier.BroadcastStatus(sessionID, status)
	}
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrFlightNotFound),
		errors.Is(err, service.ErrNotConfirmed):
		return http.StatusNotFound
	case errors.Is(err, service.ErrCheckoutNotActive),
		errors.Is(err, service.ErrNoFlightSelected),
		errors.Is(err, service.ErrPassengersNotSubmitted),
		errors.Is(err, service.ErrNoSearchCriteria):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

// CreateSession handles POST /api/sessions
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	snap, err := h.bookingService.CreateSession(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, snap)
}

// ResumeSession handles POST /api/sessions/resume. The wizard state travels
// in the query string, one key per step field.
func (h *Handler) ResumeSession(w http.ResponseWriter, r *http.Request) {
	snap, err := h.bookingService.ResumeSession(r.Context(), r.URL.Query())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, snap)
}

// GetSession handles GET /api/sessions/{id}
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	snap, err := h.bookingService.GetSession(r.Context(), sessionID)
	if err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, snap)
}

// ExportState handles GET /api/sessions/{id}/state
func (h *Handler) ExportState(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	q, err := h.bookingService.ExportState(r.Context(), sessionID)
	if err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"query": q.Encode()})
}

// EndSession handles DELETE /api/sessions/{id}
func (h *Handler) EndSession(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	if err := h.bookingService.EndSession(r.Context(), sessionID); err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Session ended"})
}

// SearchFlights handles POST /api/sessions/{id}/search
func (h *Handler) SearchFlights(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	var criteria models.SearchCriteria
	if err := json.NewDecoder(r.Body).Decode(&criteria); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	offers, err := h.bookingService.SearchFlights(r.Context(), sessionID, criteria)
	if err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"flights": offers})
}

// SelectFlight handles POST /api/sessions/{id}/flight
func (h *Handler) SelectFlight(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	var req struct {
		FlightID string `json:"flightId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.FlightID == "" {
		respondError(w, http.StatusBadRequest, "Flight ID is required")
		return
	}

	seats, err := h.bookingService.SelectFlight(r.Context(), sessionID, req.FlightID)
	if err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"seats": seats})
}

// GetSeatMap handles GET /api/sessions/{id}/seatmap
func (h *Handler) GetSeatMap(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	seats, selected, err := h.bookingService.GetSeatMap(r.Context(), sessionID)
	if err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"seats":    seats,
		"selected": selected,
	})
}

// ToggleSeat handles POST /api/sessions/{id}/seats/toggle
func (h *Handler) ToggleSeat(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	var req struct {
		SeatID string `json:"seatId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.SeatID == "" {
		respondError(w, http.StatusBadRequest, "Seat ID is required")
		return
	}

	selected, err := h.bookingService.ToggleSeat(r.Context(), sessionID, req.SeatID)
	if err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"selected": selected})
}

// ContinueToPassengers handles POST /api/sessions/{id}/seats/continue
func (h *Handler) ContinueToPassengers(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	seats, price, err := h.bookingService.ContinueToPassengers(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, wizard.ErrSelectionIncomplete) {
			respondError(w, http.StatusBadRequest, "Select one seat per passenger before continuing")
			return
		}
		respondError(w, statusForError(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"seats": seats,
		"price": price,
	})
}

// SubmitPassengers handles PUT /api/sessions/{id}/passengers
func (h *Handler) SubmitPassengers(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	var passengers []models.PassengerRecord
	if err := json.NewDecoder(r.Body).Decode(&passengers); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	formErrors, err := h.bookingService.SubmitPassengers(r.Context(), sessionID, passengers)
	if err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}
	if !formErrors.Empty() {
		respondJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{"formErrors": formErrors})
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Passengers saved"})
}

// SubmitCheckout handles POST /api/sessions/{id}/checkout
func (h *Handler) SubmitCheckout(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	var req models.SubmitCheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.bookingService.SubmitCheckout(r.Context(), sessionID, req)
	if err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}
	if !resp.FormErrors.Empty() {
		respondJSON(w, http.StatusUnprocessableEntity, resp)
		return
	}

	h.notify(sessionID, resp.State.Status)
	respondJSON(w, http.StatusAccepted, resp)
}

// SubmitOTP handles POST /api/sessions/{id}/otp
func (h *Handler) SubmitOTP(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	var req models.SubmitOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.bookingService.SubmitOTP(r.Context(), sessionID, req.Code); err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}

	// Give the workflow a moment to process, then return the current state
	time.Sleep(100 * time.Millisecond)
	state, err := h.bookingService.GetCheckoutState(r.Context(), sessionID)
	if err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}

	h.notify(sessionID, state.Status)
	respondJSON(w, http.StatusOK, &models.CheckoutStateResponse{State: state})
}

// GetCheckoutState handles GET /api/sessions/{id}/checkout
func (h *Handler) GetCheckoutState(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	state, err := h.bookingService.GetCheckoutState(r.Context(), sessionID)
	if err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, &models.CheckoutStateResponse{State: state})
}

// CancelCheckout handles DELETE /api/sessions/{id}/checkout
func (h *Handler) CancelCheckout(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	if err := h.bookingService.CancelCheckout(r.Context(), sessionID); err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}

	h.notify(sessionID, models.CheckoutStatusCancelled)
	respondJSON(w, http.StatusOK, map[string]string{"message": "Checkout cancelled"})
}

// GetConfirmation handles GET /api/sessions/{id}/confirmation
func (h *Handler) GetConfirmation(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	vm, err := h.bookingService.GetConfirmation(r.Context(), sessionID)
	if err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, vm)
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}
