package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"driveu/internal/domain"
	"driveu/internal/repository"
	"driveu/internal/service"
	"driveu/internal/session"
)

func TestMapErrorToHTTPStatus(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"otp mismatch", domain.ErrOTPMismatch, http.StatusUnprocessableEntity, "otp_mismatch"},
		{"wrapped otp mismatch", fmt.Errorf("verify: %w", domain.ErrOTPMismatch), http.StatusUnprocessableEntity, "otp_mismatch"},
		{"invalid argument", domain.ErrInvalidArgument, http.StatusBadRequest, "invalid_argument"},
		{"invalid plan", service.ErrInvalidPlan, http.StatusBadRequest, "invalid_argument"},
		{"invalid state", fmt.Errorf("%w: cannot accept", domain.ErrInvalidState), http.StatusConflict, "invalid_state"},
		{"not found", repository.ErrNotFound, http.StatusNotFound, "not_found"},
		{"forbidden", service.ErrForbidden, http.StatusForbidden, "forbidden"},
		{"unauthorized", service.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
		{"bad credentials", service.ErrInvalidCredentials, http.StatusUnauthorized, "unauthorized"},
		{"bad token", session.ErrInvalidToken, http.StatusUnauthorized, "unauthorized"},
		{"email taken", service.ErrEmailTaken, http.StatusConflict, "email_taken"},
		{"driver unavailable", service.ErrDriverUnavailable, http.StatusConflict, "driver_unavailable"},
		{"driver busy", service.ErrDriverBusy, http.StatusConflict, "driver_unavailable"},
		{"booking busy", service.ErrBookingBusy, http.StatusConflict, "booking_busy"},
		{"location required", service.ErrLocationRequired, http.StatusBadRequest, "location_required"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal"},
	}

	for _, tc := range testCases {
		status, code := mapErrorToHTTPStatus(tc.err)
		if status != tc.wantStatus || code != tc.wantCode {
			t.Errorf("%s: expected %d/%s, got %d/%s", tc.name, tc.wantStatus, tc.wantCode, status, code)
		}
	}
}

func TestLocationPayload_ToDomain(t *testing.T) {
	t.Parallel()

	lat, lng, bad := 28.6, 77.2, 95.0

	if _, ok := (*LocationPayload)(nil).toDomain(); ok {
		t.Error("nil payload must be rejected")
	}
	if _, ok := (&LocationPayload{Lat: &lat}).toDomain(); ok {
		t.Error("missing lng must be rejected")
	}
	if _, ok := (&LocationPayload{Lat: &bad, Lng: &lng}).toDomain(); ok {
		t.Error("out of range lat must be rejected")
	}

	loc, ok := (&LocationPayload{Lat: &lat, Lng: &lng, Name: "Home"}).toDomain()
	if !ok || loc.Lat != lat || loc.Lng != lng || loc.Name != "Home" {
		t.Errorf("unexpected conversion: %+v ok=%v", loc, ok)
	}

	if got, ok := optionalLocation(nil); !ok || got != nil {
		t.Error("absent optional location must pass as nil")
	}
}
