package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"driveu/internal/domain"
	"driveu/internal/service"
)

// PlacesHandler handles place search and directions. Every endpoint accepts
// a JSON body on POST or query parameters on GET.
type PlacesHandler struct {
	placesService *service.PlacesService
}

// NewPlacesHandler creates a new PlacesHandler.
func NewPlacesHandler(placesService *service.PlacesService) *PlacesHandler {
	return &PlacesHandler{placesService: placesService}
}

// SearchRequest looks up places by text.
type SearchRequest struct {
	Query string `json:"query" form:"query"`
	Limit int    `json:"limit" form:"limit"`
}

// NearbyPlacesRequest lists places around a point.
type NearbyPlacesRequest struct {
	Lat      *float64 `json:"lat" form:"lat"`
	Lng      *float64 `json:"lng" form:"lng"`
	RadiusKm float64  `json:"radius_km" form:"radius_km"`
	Limit    int      `json:"limit" form:"limit"`
}

// DirectionsRequest asks for the route between two points.
type DirectionsRequest struct {
	OriginLat *float64 `json:"origin_lat" form:"origin_lat"`
	OriginLng *float64 `json:"origin_lng" form:"origin_lng"`
	DestLat   *float64 `json:"dest_lat" form:"dest_lat"`
	DestLng   *float64 `json:"dest_lng" form:"dest_lng"`
}

// PlaceResponse is a place, with distance and travel time when the request
// had a reference point.
type PlaceResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	City        string   `json:"city"`
	State       string   `json:"state,omitempty"`
	Lat         float64  `json:"lat"`
	Lng         float64  `json:"lng"`
	Address     string   `json:"address,omitempty"`
	PlaceType   string   `json:"place_type,omitempty"`
	Popular     bool     `json:"popular"`
	Distance    string   `json:"distance,omitempty"`
	DistanceKm  *float64 `json:"distance_km,omitempty"`
	Time        string   `json:"time,omitempty"`
	Description string   `json:"description,omitempty"`
}

// DirectionsResponse is the straight-line route between two points.
type DirectionsResponse struct {
	Distance        string  `json:"distance"`
	Duration        string  `json:"duration"`
	DistanceKm      float64 `json:"distance_km"`
	DurationMinutes int     `json:"duration_minutes"`
}

func newPlaceResponse(p domain.Place) PlaceResponse {
	return PlaceResponse{
		ID:        p.ID,
		Name:      p.Name,
		City:      p.City,
		State:     p.State,
		Lat:       p.Lat,
		Lng:       p.Lng,
		Address:   p.Address,
		PlaceType: p.PlaceType,
		Popular:   p.Popular,
	}
}

// Search handles GET|POST /v1/locations/search
func (h *PlacesHandler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBadRequest(c, "invalid request")
		return
	}

	places, err := h.placesService.Search(c.Request.Context(), req.Query, req.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]PlaceResponse, len(places))
	for i, p := range places {
		out[i] = newPlaceResponse(p)
	}
	respondJSON(c, http.StatusOK, out)
}

// Autocomplete handles GET /v1/locations/autocomplete?query=&limit=
func (h *PlacesHandler) Autocomplete(c *gin.Context) {
	query := c.Query("query")
	limit, err := queryInt(c, "limit")
	if err != nil {
		respondBadRequest(c, "limit must be an integer")
		return
	}
	if len([]rune(query)) < 2 {
		respondJSON(c, http.StatusOK, []PlaceResponse{})
		return
	}

	places, err := h.placesService.Search(c.Request.Context(), query, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]PlaceResponse, len(places))
	for i, p := range places {
		out[i] = newPlaceResponse(p)
		out[i].Description = p.Name
		if p.City != "" {
			out[i].Description += ", " + p.City
		}
	}
	respondJSON(c, http.StatusOK, out)
}

// Nearby handles GET|POST /v1/locations/nearby
func (h *PlacesHandler) Nearby(c *gin.Context) {
	var req NearbyPlacesRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBadRequest(c, "invalid request")
		return
	}
	if req.Lat == nil || req.Lng == nil {
		respondBadRequest(c, "lat and lng are required")
		return
	}

	places, err := h.placesService.Nearby(c.Request.Context(), *req.Lat, *req.Lng, req.RadiusKm, req.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]PlaceResponse, len(places))
	for i, p := range places {
		dist := p.DistanceKm
		out[i] = newPlaceResponse(p.Place)
		out[i].DistanceKm = &dist
		out[i].Distance = formatKm(dist)
		out[i].Time = p.EtaText
	}
	respondJSON(c, http.StatusOK, out)
}

// Directions handles GET|POST /v1/locations/directions
func (h *PlacesHandler) Directions(c *gin.Context) {
	var req DirectionsRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBadRequest(c, "invalid request")
		return
	}
	if req.OriginLat == nil || req.OriginLng == nil || req.DestLat == nil || req.DestLng == nil {
		respondBadRequest(c, "origin_lat, origin_lng, dest_lat and dest_lng are required")
		return
	}

	d, err := h.placesService.Directions(c.Request.Context(),
		domain.Location{Lat: *req.OriginLat, Lng: *req.OriginLng},
		domain.Location{Lat: *req.DestLat, Lng: *req.DestLng},
	)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, DirectionsResponse{
		Distance:        d.DistanceText,
		Duration:        d.DurationText,
		DistanceKm:      d.DistanceKm,
		DurationMinutes: d.DurationMinutes,
	})
}

func formatKm(v float64) string {
	return fmt.Sprintf("%.1f km", v)
}
