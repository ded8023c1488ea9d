package handler

import (
	"time"

	"driveu/internal/domain"
)

// LocationPayload is a point in request and response bodies.
type LocationPayload struct {
	Lat     *float64 `json:"lat"`
	Lng     *float64 `json:"lng"`
	Name    string   `json:"name,omitempty"`
	Address string   `json:"address,omitempty"`
	City    string   `json:"city,omitempty"`
	State   string   `json:"state,omitempty"`
}

// toDomain converts the payload, rejecting missing or out-of-range
// coordinates.
func (p *LocationPayload) toDomain() (domain.Location, bool) {
	if p == nil || p.Lat == nil || p.Lng == nil {
		return domain.Location{}, false
	}
	loc := domain.Location{
		Lat:     *p.Lat,
		Lng:     *p.Lng,
		Name:    p.Name,
		Address: p.Address,
		City:    p.City,
		State:   p.State,
	}
	return loc, loc.Valid()
}

// optionalLocation converts p when present. A present but invalid payload
// reports ok=false.
func optionalLocation(p *LocationPayload) (*domain.Location, bool) {
	if p == nil {
		return nil, true
	}
	loc, ok := p.toDomain()
	if !ok {
		return nil, false
	}
	return &loc, true
}

func newLocationPayload(l domain.Location) LocationPayload {
	lat, lng := l.Lat, l.Lng
	return LocationPayload{Lat: &lat, Lng: &lng, Name: l.Name, Address: l.Address, City: l.City, State: l.State}
}

func newLocationPayloadPtr(l *domain.Location) *LocationPayload {
	if l == nil {
		return nil
	}
	p := newLocationPayload(*l)
	return &p
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
