package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.temporal.io/sdk/client"

	"github.com/skyfare/booking-wizard/internal/confirmation"
	"github.com/skyfare/booking-wizard/internal/flights"
	"github.com/skyfare/booking-wizard/internal/models"
	"github.com/skyfare/booking-wizard/internal/seatmap"
	"github.com/skyfare/booking-wizard/internal/sink"
	"github.com/skyfare/booking-wizard/internal/visitor"
	"github.com/skyfare/booking-wizard/internal/wizard"
	"github.com/skyfare/booking-wizard/pkg/logger"
)

var (
	ErrSessionNotFound        = errors.New("session not found")
	ErrNoFlightSelected       = errors.New("no flight selected")
	ErrNoSearchCriteria       = errors.New("no search criteria submitted")
	ErrFlightNotFound         = errors.New("flight not found")
	ErrPassengersNotSubmitted = errors.New("passengers not submitted")
	ErrCheckoutNotActive      = errors.New("checkout not active")
	ErrNotConfirmed           = errors.New("booking not confirmed")
)

// BookingService drives the wizard: search, flight selection, seat map,
// passenger details, checkout and confirmation.
type BookingService interface {
	CreateSession(ctx context.Context) (*SessionSnapshot, error)
	ResumeSession(ctx context.Context, q url.Values) (*SessionSnapshot, error)
	GetSession(ctx context.Context, sessionID string) (*SessionSnapshot, error)
	ExportState(ctx context.Context, sessionID string) (url.Values, error)
	EndSession(ctx context.Context, sessionID string) error
	SearchFlights(ctx context.Context, sessionID string, criteria models.SearchCriteria) ([]models.FlightOffer, error)
	SelectFlight(ctx context.Context, sessionID, flightID string) ([]models.Seat, error)
	GetSeatMap(ctx context.Context, sessionID string) ([]models.Seat, []string, error)
	ToggleSeat(ctx context.Context, sessionID, seatID string) ([]string, error)
	ContinueToPassengers(ctx context.Context, sessionID string) ([]string, models.PriceBreakdown, error)
	SubmitPassengers(ctx context.Context, sessionID string, passengers []models.PassengerRecord) (models.FormErrors, error)
	SubmitCheckout(ctx context.Context, sessionID string, req models.SubmitCheckoutRequest) (*models.CheckoutStateResponse, error)
	SubmitOTP(ctx context.Context, sessionID, code string) error
	CancelCheckout(ctx context.Context, sessionID string) error
	GetCheckoutState(ctx context.Context, sessionID string) (*models.CheckoutState, error)
	GetConfirmation(ctx context.Context, sessionID string) (*confirmation.ViewModel, error)
}

// SessionSnapshot is the accumulated wizard state for one session.
type SessionSnapshot struct {
	SessionID  string                   `json:"sessionId"`
	Criteria   *models.SearchCriteria   `json:"criteria,omitempty"`
	FlightID   string                   `json:"flightId,omitempty"`
	Seats      []string                 `json:"seats,omitempty"`
	Passengers []models.PassengerRecord `json:"passengers,omitempty"`
	Price      *models.PriceBreakdown   `json:"price,omitempty"`
}

// session holds per-visitor wizard state. Offers and the seat map are
// generated once and reused for the session's lifetime so revisiting a step
// never reshuffles what the user already saw.
type session struct {
	id        string
	visitorID string

	criteria *models.SearchCriteria
	offers   []models.FlightOffer

	flightID  string
	seats     []models.Seat
	selection *wizard.Selection

	frozenSeats []string
	passengers  []models.PassengerRecord
	price       *models.PriceBreakdown

	checkoutStarted bool
}

type bookingServiceImpl struct {
	temporalClient client.Client
	sink           sink.Sink
	visitors       visitor.Cache
	variant        models.CheckoutVariant
	taskQueue      string
	log            logger.Logger

	mu        sync.RWMutex
	sessions  map[string]*session
	flightGen *flights.Generator
	seatGen   *seatmap.Generator
}

// NewBookingService wires the wizard service. The checkout variant is fixed
// at construction; a deployment runs one flow or the other, never both.
func NewBookingService(
	temporalClient client.Client,
	s sink.Sink,
	visitors visitor.Cache,
	variant models.CheckoutVariant,
	taskQueue string,
	log logger.Logger,
) BookingService {
	return &bookingServiceImpl{
		temporalClient: temporalClient,
		sink:           s,
		visitors:       visitors,
		variant:        variant,
		taskQueue:      taskQueue,
		log:            log,
		sessions:       make(map[string]*session),
		flightGen:      flights.NewGenerator(),
		seatGen:        seatmap.NewGenerator(),
	}
}

func (s *bookingServiceImpl) CreateSession(ctx context.Context) (*SessionSnapshot, error) {
	sess := &session{id: uuid.New().String()}

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	s.log.Info("session created", "sessionId", sess.id)
	return &SessionSnapshot{SessionID: sess.id}, nil
}

// ResumeSession bootstraps a fresh session from query-parameter wizard
// state, the same encoding step links carry. Decoding never errors; steps
// whose inputs are missing or invalid are left blank and the wizard picks up
// from the last reconstructible step.
func (s *bookingServiceImpl) ResumeSession(ctx context.Context, q url.Values) (*SessionSnapshot, error) {
	st := wizard.DecodeState(q)
	sess := &session{id: uuid.New().String()}

	if err := st.Criteria.Validate(); err == nil {
		c := st.Criteria
		sess.criteria = &c
		sess.offers = s.flightGen.Generate(c.Origin, c.Destination)

		if st.FlightID != "" && offerExists(sess.offers, st.FlightID) {
			sess.flightID = st.FlightID
			sess.seats = s.seatGen.Generate(c.CabinClass, c.PassengerCount)
			sess.selection = wizard.NewSelection(sess.seats, c.PassengerCount)

			// Seats occupied in the regenerated map are silently dropped,
			// like any other toggle on an occupied seat.
			for _, seatID := range st.Seats {
				sess.selection.Toggle(seatID)
			}
			if frozen, err := sess.selection.Freeze(); err == nil {
				sess.frozenSeats = frozen
				price := wizard.DerivePrice(c.PassengerCount, len(frozen))
				sess.price = &price

				if len(st.Passengers) > 0 {
					if errs, err := wizard.ValidatePassengers(st.Passengers, len(frozen)); err == nil && errs.Empty() {
						sess.passengers = st.Passengers
					}
				}
			}
		}
	}

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	s.log.Info("session resumed from encoded state", "sessionId", sess.id, "flightId", sess.flightID)
	return snapshot(sess), nil
}

func (s *bookingServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return snapshot(sess), nil
}

// ExportState serializes the session's accumulated wizard state to query
// parameters so the current step can be shared or resumed elsewhere.
func (s *bookingServiceImpl) ExportState(ctx context.Context, sessionID string) (url.Values, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if sess.criteria == nil {
		return nil, ErrNoSearchCriteria
	}

	st := wizard.State{
		Criteria:   *sess.criteria,
		FlightID:   sess.flightID,
		Passengers: sess.passengers,
	}
	if sess.frozenSeats != nil {
		st.Seats = sess.frozenSeats
	} else if sess.selection != nil {
		st.Seats = sess.selection.Selected()
	}
	if sess.price != nil {
		st.TotalPrice = sess.price.Total
	}
	return st.Encode(), nil
}

// EndSession marks the visitor offline and discards the session state. A
// session that never touched the sink is dropped without a write.
func (s *bookingServiceImpl) EndSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return ErrSessionNotFound
	}

	if sess.visitorID != "" {
		s.writeSink(ctx, sess, sink.Document{
			"online":   false,
			"lastSeen": time.Now().UTC().Format(time.RFC3339),
		})
	}

	delete(s.sessions, sessionID)
	s.log.Info("session ended", "sessionId", sessionID)
	return nil
}

func (s *bookingServiceImpl) SearchFlights(ctx context.Context, sessionID string, criteria models.SearchCriteria) ([]models.FlightOffer, error) {
	if err := criteria.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	// Offers are memoized per criteria: re-entering the flight list with the
	// same search never reshuffles prices. A changed search regenerates and
	// resets everything downstream.
	if sess.criteria == nil || !sameCriteria(*sess.criteria, criteria) {
		sess.criteria = &criteria
		sess.offers = s.flightGen.Generate(criteria.Origin, criteria.Destination)
		sess.flightID = ""
		sess.seats = nil
		sess.selection = nil
		sess.frozenSeats = nil
		sess.passengers = nil
		sess.price = nil
	}

	s.trackPage(ctx, sess, "flights")
	return sess.offers, nil
}

func (s *bookingServiceImpl) SelectFlight(ctx context.Context, sessionID, flightID string) ([]models.Seat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if sess.criteria == nil {
		return nil, ErrNoSearchCriteria
	}

	if !offerExists(sess.offers, flightID) {
		return nil, ErrFlightNotFound
	}

	// Seat map is generated once per selected flight. Re-selecting the same
	// flight keeps the map and the selection; switching flights regenerates.
	if sess.flightID != flightID || sess.seats == nil {
		sess.flightID = flightID
		sess.seats = s.seatGen.Generate(sess.criteria.CabinClass, sess.criteria.PassengerCount)
		sess.selection = wizard.NewSelection(sess.seats, sess.criteria.PassengerCount)
		sess.frozenSeats = nil
		sess.passengers = nil
		sess.price = nil
	}

	s.trackPage(ctx, sess, "seats")
	return sess.seats, nil
}

func (s *bookingServiceImpl) GetSeatMap(ctx context.Context, sessionID string) ([]models.Seat, []string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, nil, ErrSessionNotFound
	}
	if sess.seats == nil {
		return nil, nil, ErrNoFlightSelected
	}
	return sess.seats, sess.selection.Selected(), nil
}

func (s *bookingServiceImpl) ToggleSeat(ctx context.Context, sessionID, seatID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if sess.selection == nil {
		return nil, ErrNoFlightSelected
	}

	sess.selection.Toggle(seatID)
	return sess.selection.Selected(), nil
}

func (s *bookingServiceImpl) ContinueToPassengers(ctx context.Context, sessionID string) ([]string, models.PriceBreakdown, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, models.PriceBreakdown{}, ErrSessionNotFound
	}
	if sess.selection == nil {
		return nil, models.PriceBreakdown{}, ErrNoFlightSelected
	}

	seats, err := sess.selection.Freeze()
	if err != nil {
		return nil, models.PriceBreakdown{}, err
	}

	sess.frozenSeats = seats
	price := wizard.DerivePrice(sess.criteria.PassengerCount, len(seats))
	sess.price = &price

	s.trackPage(ctx, sess, "passengers")
	return seats, price, nil
}

func (s *bookingServiceImpl) SubmitPassengers(ctx context.Context, sessionID string, passengers []models.PassengerRecord) (models.FormErrors, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if sess.frozenSeats == nil {
		return nil, wizard.ErrSelectionIncomplete
	}

	errs, err := wizard.ValidatePassengers(passengers, len(sess.frozenSeats))
	if err != nil {
		return nil, err
	}
	if !errs.Empty() {
		return errs, nil
	}

	sess.passengers = passengers
	s.trackPage(ctx, sess, "pay")
	return models.FormErrors{}, nil
}

func (s *bookingServiceImpl) SubmitCheckout(ctx context.Context, sessionID string, req models.SubmitCheckoutRequest) (*models.CheckoutStateResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if sess.passengers == nil {
		return nil, ErrPassengersNotSubmitted
	}

	if errs := wizard.ValidateTerms(req.AgreeToTerms); !errs.Empty() {
		return &models.CheckoutStateResponse{
			State:      &models.CheckoutState{SessionID: sessionID, Status: models.CheckoutStatusIdle},
			FormErrors: errs,
		}, nil
	}

	// Once past the terms gate the form snapshot goes to the sink before
	// field validation runs. This is deliberate and matches the observed
	// flow; see DESIGN.md.
	s.writeSink(ctx, sess, paymentDocument(req))

	if errs := wizard.ValidatePayment(req.Payment); !errs.Empty() {
		return &models.CheckoutStateResponse{
			State:      &models.CheckoutState{SessionID: sessionID, Status: models.CheckoutStatusIdle},
			FormErrors: errs,
		}, nil
	}

	input := models.CheckoutWorkflowInput{
		SessionID:  sessionID,
		VisitorID:  s.ensureVisitor(ctx, sess),
		FlightID:   sess.flightID,
		Criteria:   *sess.criteria,
		Seats:      sess.frozenSeats,
		Passengers: sess.passengers,
		Price:      *sess.price,
		Payment:    req.Payment,
	}

	workflowOptions := client.StartWorkflowOptions{
		ID:        "checkout-" + sessionID,
		TaskQueue: s.taskQueue,
	}

	_, err := s.temporalClient.ExecuteWorkflow(ctx, workflowOptions, s.workflowName(), input)
	if err != nil {
		return nil, fmt.Errorf("failed to start checkout workflow: %w", err)
	}

	sess.checkoutStarted = true
	s.log.Info("checkout started", "sessionId", sessionID, "variant", string(s.variant))

	return &models.CheckoutStateResponse{
		State: &models.CheckoutState{
			SessionID:   sessionID,
			Status:      models.CheckoutStatusProcessing,
			LastUpdated: time.Now(),
		},
	}, nil
}

func (s *bookingServiceImpl) SubmitOTP(ctx context.Context, sessionID, code string) error {
	if err := s.requireCheckout(sessionID); err != nil {
		return err
	}
	return s.temporalClient.SignalWorkflow(ctx, "checkout-"+sessionID, "",
		models.SignalSubmitOTP, models.SubmitOTPSignal{Code: code})
}

func (s *bookingServiceImpl) CancelCheckout(ctx context.Context, sessionID string) error {
	if err := s.requireCheckout(sessionID); err != nil {
		return err
	}
	return s.temporalClient.SignalWorkflow(ctx, "checkout-"+sessionID, "",
		models.SignalCancelCheckout, nil)
}

func (s *bookingServiceImpl) GetCheckoutState(ctx context.Context, sessionID string) (*models.CheckoutState, error) {
	if err := s.requireCheckout(sessionID); err != nil {
		return nil, err
	}

	response, err := s.temporalClient.QueryWorkflow(ctx, "checkout-"+sessionID, "", models.QueryCheckoutState)
	if err != nil {
		return nil, fmt.Errorf("failed to query checkout workflow: %w", err)
	}

	var state models.CheckoutState
	if err := response.Get(&state); err != nil {
		return nil, fmt.Errorf("failed to decode checkout state: %w", err)
	}
	return &state, nil
}

func (s *bookingServiceImpl) GetConfirmation(ctx context.Context, sessionID string) (*confirmation.ViewModel, error) {
	state, err := s.GetCheckoutState(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if state.Status != models.CheckoutStatusConfirmed || state.Booking == nil {
		return nil, ErrNotConfirmed
	}

	vm := confirmation.Build(*state.Booking)
	return &vm, nil
}

func (s *bookingServiceImpl) requireCheckout(sessionID string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return ErrSessionNotFound
	}
	if !sess.checkoutStarted {
		return ErrCheckoutNotActive
	}
	return nil
}

func (s *bookingServiceImpl) workflowName() string {
	if s.variant == models.VariantDirectConfirm {
		return "DirectConfirmWorkflow"
	}
	return "OtpGatedWorkflow"
}

// ensureVisitor resolves the session's visitor id, minting and caching one
// on first use. Callers hold s.mu.
func (s *bookingServiceImpl) ensureVisitor(ctx context.Context, sess *session) string {
	if sess.visitorID != "" {
		return sess.visitorID
	}

	if id, err := s.visitors.Get(ctx, sess.id); err == nil {
		sess.visitorID = id
		return id
	}

	id := uuid.New().String()
	if err := s.visitors.Set(ctx, sess.id, id); err != nil {
		s.log.Warn("failed to cache visitor id", "sessionId", sess.id, "error", err)
	}
	sess.visitorID = id
	return id
}

// trackPage mirrors page transitions and presence to the sink. Best-effort:
// failures are logged and never surface to the caller.
func (s *bookingServiceImpl) trackPage(ctx context.Context, sess *session, pagename string) {
	s.writeSink(ctx, sess, sink.Document{
		"pagename": pagename,
		"online":   true,
		"lastSeen": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *bookingServiceImpl) writeSink(ctx context.Context, sess *session, doc sink.Document) {
	visitorID := s.ensureVisitor(ctx, sess)
	if err := s.sink.Write(ctx, visitorID, doc); err != nil {
		s.log.Warn("sink write failed", "sessionId", sess.id, "error", err)
	}
}

// paymentDocument flattens the checkout form for the sink. Every field is
// forwarded as entered, including the card number and security code.
func paymentDocument(req models.SubmitCheckoutRequest) sink.Document {
	return sink.Document{
		"pagename":       "pay",
		"cardNumber":     strings.TrimSpace(req.Payment.CardNumber),
		"expiryDate":     req.Payment.ExpiryDate,
		"cvv":            req.Payment.CVV,
		"cardholderName": req.Payment.CardholderName,
		"billingAddress": req.Payment.BillingAddress,
		"city":           req.Payment.City,
		"zipCode":        req.Payment.ZipCode,
		"country":        req.Payment.Country,
		"agreeToTerms":   req.AgreeToTerms,
	}
}

func offerExists(offers []models.FlightOffer, flightID string) bool {
	for _, offer := range offers {
		if offer.ID == flightID {
			return true
		}
	}
	return false
}

func sameCriteria(a, b models.SearchCriteria) bool {
	if a.Origin != b.Origin || a.Destination != b.Destination {
		return false
	}
	if a.PassengerCount != b.PassengerCount || a.CabinClass != b.CabinClass || a.TripType != b.TripType {
		return false
	}
	if !a.DepartDate.Equal(b.DepartDate) {
		return false
	}
	if (a.ReturnDate == nil) != (b.ReturnDate == nil) {
		return false
	}
	if a.ReturnDate != nil && !a.ReturnDate.Equal(*b.ReturnDate) {
		return false
	}
	return true
}

func snapshot(sess *session) *SessionSnapshot {
	snap := &SessionSnapshot{
		SessionID: sess.id,
		FlightID:  sess.flightID,
	}
	if sess.criteria != nil {
		c := *sess.criteria
		snap.Criteria = &c
	}
	if sess.frozenSeats != nil {
		snap.Seats = append([]string(nil), sess.frozenSeats...)
	} else if sess.selection != nil {
		snap.Seats = sess.selection.Selected()
	}
	if sess.passengers != nil {
		snap.Passengers = append([]models.PassengerRecord(nil), sess.passengers...)
	}
	if sess.price != nil {
		p := *sess.price
		snap.Price = &p
	}
	return snap
}
