package handler

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"driveu/internal/domain"
	"driveu/internal/matching"
	"driveu/internal/service"
)

// DriverHandler handles HTTP requests for positions and driver search.
type DriverHandler struct {
	driverService *service.DriverService
}

// NewDriverHandler creates a new DriverHandler.
func NewDriverHandler(driverService *service.DriverService) *DriverHandler {
	return &DriverHandler{driverService: driverService}
}

// UpdateLocationRequest is the HTTP request body for updating a location.
type UpdateLocationRequest struct {
	Lat     *float64 `json:"lat"`
	Lng     *float64 `json:"lng"`
	Address string   `json:"address"`
}

// DriverResponse is the HTTP response for driver data.
type DriverResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Phone           string          `json:"phone,omitempty"`
	LicenseNumber   string          `json:"license_number,omitempty"`
	ExperienceYears int             `json:"experience"`
	Rating          float64         `json:"rating"`
	CompletedTrips  int             `json:"completed_trips"`
	TotalEarnings   float64         `json:"total_earnings"`
	Skills          []string        `json:"skills"`
	Habits          []string        `json:"habits"`
	Location        LocationPayload `json:"location"`
	Available       bool            `json:"is_available"`
	HourlyRate      float64         `json:"hourly_rate"`
	DistanceKm      *float64        `json:"distance_km,omitempty"`
}

func newDriverResponse(d domain.Driver, distanceKm *float64) DriverResponse {
	skills, habits := d.Skills, d.Habits
	if skills == nil {
		skills = []string{}
	}
	if habits == nil {
		habits = []string{}
	}
	return DriverResponse{
		ID:              d.ID,
		Name:            d.Name,
		Phone:           d.Phone,
		LicenseNumber:   d.LicenseNumber,
		ExperienceYears: d.ExperienceYears,
		Rating:          d.Rating,
		CompletedTrips:  d.CompletedTrips,
		TotalEarnings:   d.TotalEarnings,
		Skills:          skills,
		Habits:          habits,
		Location:        newLocationPayload(d.Location),
		Available:       d.Available,
		HourlyRate:      d.HourlyRate,
		DistanceKm:      distanceKm,
	}
}

func newMatchResponses(matches []matching.Match) []DriverResponse {
	out := make([]DriverResponse, len(matches))
	for i, m := range matches {
		dist := roundKm(m.DistanceKm)
		out[i] = newDriverResponse(m.Driver, &dist)
		// Owners see the public profile only.
		out[i].Phone = ""
		out[i].TotalEarnings = 0
	}
	return out
}

// UpdateLocation handles PUT /v1/users/location
func (h *DriverHandler) UpdateLocation(c *gin.Context) {
	sess, ok := mustSession(c)
	if !ok {
		return
	}

	var req UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if req.Lat == nil || req.Lng == nil {
		respondBadRequest(c, "lat and lng are required")
		return
	}

	loc, err := h.driverService.UpdateLocation(c.Request.Context(), sess, service.UpdateLocationRequest{
		Lat:     *req.Lat,
		Lng:     *req.Lng,
		Address: req.Address,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{
		"message":  "location updated",
		"location": newLocationPayload(loc),
	})
}

// GoOffline handles DELETE /v1/users/location
func (h *DriverHandler) GoOffline(c *gin.Context) {
	sess, ok := mustSession(c)
	if !ok {
		return
	}

	if err := h.driverService.GoOffline(c.Request.Context(), sess); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{"message": "driver is offline"})
}

// Available handles GET /v1/users/drivers/available?lat=&lng=&radius_km=
func (h *DriverHandler) Available(c *gin.Context) {
	sess, ok := mustSession(c)
	if !ok {
		return
	}

	lat, err := queryFloat(c, "lat")
	if err != nil {
		respondBadRequest(c, "lat must be a number")
		return
	}
	lng, err := queryFloat(c, "lng")
	if err != nil {
		respondBadRequest(c, "lng must be a number")
		return
	}
	radius, err := queryFloat(c, "radius_km")
	if err != nil {
		respondBadRequest(c, "radius_km must be a number")
		return
	}

	q := service.AvailableDriversQuery{Lat: lat, Lng: lng}
	if radius != nil {
		q.RadiusKm = *radius
		if q.RadiusKm == 0 {
			respondError(c, service.ErrInvalidRadius)
			return
		}
	}

	matches, err := h.driverService.FindAvailable(c.Request.Context(), sess, q)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, newMatchResponses(matches))
}

// queryFloat parses an optional float query parameter.
func queryFloat(c *gin.Context, name string) (*float64, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func queryInt(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

func roundKm(v float64) float64 {
	return math.Round(v*100) / 100
}
