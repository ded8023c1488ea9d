package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"driveu/internal/domain"
	"driveu/internal/service"
)

// BookingHandler handles HTTP requests for bookings.
type BookingHandler struct {
	bookingService *service.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(bookingService *service.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// CreateBookingRequest is the HTTP request body for booking a driver.
type CreateBookingRequest struct {
	DriverID    string           `json:"driver_id"`
	Pickup      *LocationPayload `json:"pickup"`
	Destination *LocationPayload `json:"destination"`
	Hours       int              `json:"duration_hours"`
}

// VerifyOTPRequest is the HTTP request body for starting a trip.
type VerifyOTPRequest struct {
	OTP             string           `json:"otp"`
	CurrentLocation *LocationPayload `json:"current_location"`
}

// CompleteBookingRequest is the HTTP request body for ending a trip.
type CompleteBookingRequest struct {
	Rating         *float64         `json:"rating"`
	Review         string           `json:"review"`
	EndLocation    *LocationPayload `json:"end_location"`
	ActualDistance *float64         `json:"actual_distance"`
}

// BookingResponse is the HTTP response for a booking.
type BookingResponse struct {
	ID                    string           `json:"id"`
	BookingID             string           `json:"booking_id"`
	OwnerID               string           `json:"owner_id"`
	DriverID              string           `json:"driver_id"`
	Pickup                *LocationPayload `json:"pickup,omitempty"`
	Destination           LocationPayload  `json:"destination"`
	DurationHours         int              `json:"duration_hours"`
	HourlyRate            float64          `json:"hourly_rate"`
	TotalFare             float64          `json:"total_fare"`
	Status                string           `json:"status"`
	OTP                   string           `json:"otp,omitempty"`
	Rating                *float64         `json:"rating,omitempty"`
	Review                string           `json:"review,omitempty"`
	DistanceKm            float64          `json:"distance_km"`
	EstimatedMinutes      int              `json:"estimated_minutes"`
	RequestedAt           time.Time        `json:"requested_at"`
	AcceptedAt            *time.Time       `json:"accepted_at,omitempty"`
	StartedAt             *time.Time       `json:"started_at,omitempty"`
	CompletedAt           *time.Time       `json:"completed_at,omitempty"`
	ActualStartLocation   *LocationPayload `json:"actual_start_location,omitempty"`
	ActualEndLocation     *LocationPayload `json:"actual_end_location,omitempty"`
	ActualDistanceKm      float64          `json:"actual_distance_km,omitempty"`
	ActualDurationMinutes int              `json:"actual_duration_minutes,omitempty"`
}

// IncomingBookingResponse is a pending request as shown to its driver.
type IncomingBookingResponse struct {
	BookingResponse
	DistanceFromDriver *float64 `json:"distance_from_driver,omitempty"`
}

// PlanResponse is an hourly plan in the catalog.
type PlanResponse struct {
	Hours       int     `json:"hours"`
	BaseRate    float64 `json:"base_rate"`
	Description string  `json:"description"`
}

func newBookingResponse(b *domain.Booking) BookingResponse {
	return BookingResponse{
		ID:                    b.ID,
		BookingID:             b.Code,
		OwnerID:               b.OwnerID,
		DriverID:              b.DriverID,
		Pickup:                newLocationPayloadPtr(b.Pickup),
		Destination:           newLocationPayload(b.Destination),
		DurationHours:         b.DurationHours,
		HourlyRate:            b.HourlyRate,
		TotalFare:             b.Fare,
		Status:                string(b.Status),
		OTP:                   b.OTP,
		Rating:                b.Rating,
		Review:                b.Review,
		DistanceKm:            b.DistanceKm,
		EstimatedMinutes:      b.EstimatedMinutes,
		RequestedAt:           b.RequestedAt,
		AcceptedAt:            timePtr(b.AcceptedAt),
		StartedAt:             timePtr(b.StartedAt),
		CompletedAt:           timePtr(b.CompletedAt),
		ActualStartLocation:   newLocationPayloadPtr(b.ActualStartLocation),
		ActualEndLocation:     newLocationPayloadPtr(b.ActualEndLocation),
		ActualDistanceKm:      b.ActualDistanceKm,
		ActualDurationMinutes: b.ActualDurationMinutes,
	}
}

// Plans handles GET /v1/plans
func (h *BookingHandler) Plans(c *gin.Context) {
	plans := domain.Plans()
	out := make([]PlanResponse, len(plans))
	for i, p := range plans {
		out[i] = PlanResponse{Hours: p.Hours, BaseRate: p.BaseRate, Description: p.Description}
	}
	respondJSON(c, http.StatusOK, out)
}

// Create handles POST /v1/bookings
func (h *BookingHandler) Create(c *gin.Context) {
	sess, ok := mustSession(c)
	if !ok {
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	dest, ok := req.Destination.toDomain()
	if !ok {
		respondBadRequest(c, "destination with valid lat and lng is required")
		return
	}
	pickup, ok := optionalLocation(req.Pickup)
	if !ok {
		respondError(c, service.ErrInvalidLocation)
		return
	}

	b, err := h.bookingService.Create(c.Request.Context(), sess, service.CreateBookingRequest{
		DriverID:    req.DriverID,
		Pickup:      pickup,
		Destination: dest,
		Hours:       req.Hours,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, newBookingResponse(b))
}

// Get handles GET /v1/bookings/:id
func (h *BookingHandler) Get(c *gin.Context) {
	sess, ok := mustSession(c)
	if !ok {
		return
	}

	b, err := h.bookingService.Get(c.Request.Context(), sess, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, newBookingResponse(b))
}

// History handles GET /v1/bookings/history
func (h *BookingHandler) History(c *gin.Context) {
	sess, ok := mustSession(c)
	if !ok {
		return
	}

	bookings, err := h.bookingService.History(c.Request.Context(), sess)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		out[i] = newBookingResponse(b)
	}
	respondJSON(c, http.StatusOK, out)
}

// Incoming handles GET /v1/bookings/incoming
func (h *BookingHandler) Incoming(c *gin.Context) {
	sess, ok := mustSession(c)
	if !ok {
		return
	}

	pending, err := h.bookingService.Incoming(c.Request.Context(), sess)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]IncomingBookingResponse, len(pending))
	for i, p := range pending {
		out[i] = IncomingBookingResponse{
			BookingResponse:    newBookingResponse(p.Booking),
			DistanceFromDriver: p.PickupDistanceKm,
		}
	}
	respondJSON(c, http.StatusOK, out)
}

// Accept handles PUT /v1/bookings/:id/accept
func (h *BookingHandler) Accept(c *gin.Context) {
	sess, ok := mustSession(c)
	if !ok {
		return
	}

	b, err := h.bookingService.Accept(c.Request.Context(), sess, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, newBookingResponse(b))
}

// Deny handles PUT /v1/bookings/:id/deny
func (h *BookingHandler) Deny(c *gin.Context) {
	sess, ok := mustSession(c)
	if !ok {
		return
	}

	b, err := h.bookingService.Deny(c.Request.Context(), sess, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, newBookingResponse(b))
}

// VerifyOTP handles POST /v1/bookings/:id/verify-otp
func (h *BookingHandler) VerifyOTP(c *gin.Context) {
	sess, ok := mustSession(c)
	if !ok {
		return
	}

	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	current, ok := optionalLocation(req.CurrentLocation)
	if !ok {
		respondError(c, service.ErrInvalidLocation)
		return
	}

	b, err := h.bookingService.VerifyOTP(c.Request.Context(), sess, c.Param("id"), req.OTP, current)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, newBookingResponse(b))
}

// Complete handles PUT /v1/bookings/:id/complete
func (h *BookingHandler) Complete(c *gin.Context) {
	sess, ok := mustSession(c)
	if !ok {
		return
	}

	var req CompleteBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if req.Rating == nil {
		respondBadRequest(c, "rating is required")
		return
	}
	end, ok := optionalLocation(req.EndLocation)
	if !ok {
		respondError(c, service.ErrInvalidLocation)
		return
	}

	b, err := h.bookingService.Complete(c.Request.Context(), sess, c.Param("id"), service.CompleteBookingRequest{
		Rating:           *req.Rating,
		Review:           req.Review,
		EndLocation:      end,
		ActualDistanceKm: req.ActualDistance,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, newBookingResponse(b))
}
