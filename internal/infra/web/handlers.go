package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/Antonio1491/parksys-sub000/internal/domain"
	"github.com/Antonio1491/parksys-sub000/internal/domain/model"
	"github.com/Antonio1491/parksys-sub000/internal/domain/ports/adapter"
	"github.com/Antonio1491/parksys-sub000/internal/infra/metrics"
	"github.com/Antonio1491/parksys-sub000/internal/usecase"
)

type customerData struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// createIntentRequest is untrusted client input. BaseAmount and
// FinalAmount are accepted for wire compatibility with older clients but
// never participate in pricing; only CustomAmount is honored, and only
// for pay-what-you-want activities.
type createIntentRequest struct {
	CustomerData     customerData     `json:"customerData"`
	BaseAmount       *decimal.Decimal `json:"baseAmount"`
	SelectedDiscount string           `json:"selectedDiscount"`
	CustomAmount     *decimal.Decimal `json:"customAmount"`
}

type createIntentResponse struct {
	ClientSecret    string                 `json:"clientSecret"`
	PaymentIntentID string                 `json:"paymentIntentId"`
	CustomerID      string                 `json:"customerId,omitempty"`
	Amount          int64                  `json:"amount"`
	Currency        string                 `json:"currency"`
	AppliedDiscount *model.AppliedDiscount `json:"appliedDiscount"`
	PriceBreakdown  model.PriceBreakdown   `json:"priceBreakdown"`
}

func (s *Server) createPaymentIntent(w http.ResponseWriter, r *http.Request) {
	activityID := chi.URLParam(r, "activityID")

	var req createIntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.CustomerData.Email == "" {
		writeError(w, http.StatusBadRequest, "customerData.email is required")
		return
	}

	result, err := s.checkoutUC.CreateIntent(r.Context(), activityID, usecase.CheckoutRequest{
		Customer: adapter.CustomerInfo{
			Email: req.CustomerData.Email,
			Name:  req.CustomerData.Name,
			Phone: req.CustomerData.Phone,
		},
		SelectedDiscount: model.DiscountCode(req.SelectedDiscount),
		CustomAmount:     req.CustomAmount,
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, createIntentResponse{
		ClientSecret:    result.ClientSecret,
		PaymentIntentID: result.PaymentIntentID,
		CustomerID:      result.CustomerID,
		Amount:          result.AmountMinorUnits,
		Currency:        result.Currency,
		AppliedDiscount: result.AppliedDiscount,
		PriceBreakdown:  result.Breakdown,
	})
}

type completeRegistrationRequest struct {
	PaymentIntentID string       `json:"paymentIntentId"`
	CustomerData    customerData `json:"customerData"`
	// Legacy fields; ignored. Amounts come from the verified intent only.
	SelectedDiscount string           `json:"selectedDiscount"`
	BaseAmount       *decimal.Decimal `json:"baseAmount"`
	FinalAmount      *decimal.Decimal `json:"finalAmount"`
}

type completeRegistrationResponse struct {
	Success       bool                `json:"success"`
	Registration  *model.Registration `json:"registration"`
	PaymentAmount decimal.Decimal     `json:"paymentAmount"`
	Currency      string              `json:"currency"`
	Message       string              `json:"message"`
}

func (s *Server) completeRegistration(w http.ResponseWriter, r *http.Request) {
	activityID := chi.URLParam(r, "activityID")
	start := time.Now()

	var req completeRegistrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.PaymentIntentID == "" {
		writeError(w, http.StatusBadRequest, "paymentIntentId is required")
		return
	}
	if req.CustomerData.Email == "" {
		writeError(w, http.StatusBadRequest, "customerData.email is required")
		return
	}

	reg, err := s.registrationUC.Complete(r.Context(), activityID, req.PaymentIntentID, usecase.Participant{
		Name:  req.CustomerData.Name,
		Email: req.CustomerData.Email,
		Phone: req.CustomerData.Phone,
	})
	if err != nil {
		metrics.ReconcileDuration.WithLabelValues("fail").Observe(time.Since(start).Seconds())
		s.writeDomainError(w, r, err)
		return
	}
	metrics.ReconcileDuration.WithLabelValues("ok").Observe(time.Since(start).Seconds())

	writeJSON(w, http.StatusOK, completeRegistrationResponse{
		Success:       true,
		Registration:  reg,
		PaymentAmount: reg.PaidAmount,
		Currency:      reg.Currency,
		Message:       "Registration confirmed",
	})
}

// getActivity serves the public activity page; internal pricing flags are
// not exposed, only what the checkout form needs.
func (s *Server) getActivity(w http.ResponseWriter, r *http.Request) {
	activityID := chi.URLParam(r, "activityID")

	act, err := s.activityUC.Get(r.Context(), activityID)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		ID               string     `json:"id"`
		Title            string     `json:"title"`
		ParkName         string     `json:"parkName"`
		Location         string     `json:"location"`
		StartsAt         *time.Time `json:"startsAt,omitempty"`
		IsFree           bool       `json:"isFree"`
		IsPriceRandom    bool       `json:"isPriceRandom"`
		BasePrice        string     `json:"basePrice"`
		AvailableCodes   []string   `json:"availableDiscounts"`
		RequiresApproval bool       `json:"requiresApproval"`
	}{
		ID:               act.ID,
		Title:            act.Title,
		ParkName:         act.ParkName,
		Location:         act.Location,
		StartsAt:         act.StartsAt,
		IsFree:           act.Pricing.IsFree,
		IsPriceRandom:    act.Pricing.IsPriceRandom,
		BasePrice:        act.Pricing.BasePrice.StringFixed(2),
		AvailableCodes:   availableDiscounts(act.Pricing),
		RequiresApproval: act.Pricing.RequiresApproval,
	})
}

func (s *Server) listRegistrations(w http.ResponseWriter, r *http.Request) {
	activityID := r.URL.Query().Get("activityId")
	if activityID == "" {
		writeError(w, http.StatusBadRequest, "activityId query parameter is required")
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	regs, err := s.registrationUC.ListByActivity(r.Context(), activityID, limit, offset)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	if regs == nil {
		regs = []*model.Registration{}
	}

	writeJSON(w, http.StatusOK, struct {
		Registrations []*model.Registration `json:"registrations"`
		Count         int                   `json:"count"`
	}{Registrations: regs, Count: len(regs)})
}

func availableDiscounts(cfg model.PricingConfig) []string {
	out := []string{}
	if cfg.DiscountSeniors > 0 {
		out = append(out, string(model.DiscountSeniors))
	}
	if cfg.DiscountStudents > 0 {
		out = append(out, string(model.DiscountStudents))
	}
	if cfg.DiscountFamilies > 0 {
		out = append(out, string(model.DiscountFamilies))
	}
	if cfg.DiscountDisability > 0 {
		out = append(out, string(model.DiscountDisability))
	}
	if cfg.DiscountEarlyBird > 0 && cfg.EarlyBirdDeadline != nil {
		out = append(out, string(model.DiscountEarlyBird))
	}
	return out
}

// writeDomainError maps domain sentinels onto HTTP statuses. Integrity
// gate failures are logged at warn; they indicate a tampered or replayed
// confirmation, not a user mistake.
func (s *Server) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "Activity not found")

	case errors.Is(err, domain.ErrFreeActivity),
		errors.Is(err, domain.ErrDiscountNotAvailable),
		errors.Is(err, domain.ErrDiscountExpired),
		errors.Is(err, domain.ErrInvalidDiscount),
		errors.Is(err, domain.ErrInvalidArgument):
		writeError(w, http.StatusBadRequest, err.Error())

	case errors.Is(err, domain.ErrPaymentNotCompleted),
		errors.Is(err, domain.ErrInvalidCurrency),
		errors.Is(err, domain.ErrActivityMismatch),
		errors.Is(err, domain.ErrAmountInconsistency):
		s.log.Warn().Err(err).Str("path", r.URL.Path).Msg("payment integrity check rejected")
		writeError(w, http.StatusBadRequest, err.Error())

	case errors.Is(err, domain.ErrDuplicateRegistration):
		writeError(w, http.StatusConflict, err.Error())

	default:
		s.log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, struct {
		Error string `json:"error"`
	}{Error: msg})
}
