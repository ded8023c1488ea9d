// Package memory provides in-process implementations of the repository,
// geo index and lock interfaces. It backs STORAGE=memory and the service
// tests. Stored values are copied on the way in and out, so callers never
// share state with the store.
package memory

import (
	"driveu/internal/domain"
)

func cloneLocation(l *domain.Location) *domain.Location {
	if l == nil {
		return nil
	}
	c := *l
	return &c
}

func cloneUser(u *domain.User) *domain.User {
	c := *u
	c.Location = cloneLocation(u.Location)
	if u.Car != nil {
		car := *u.Car
		c.Car = &car
	}
	return &c
}

func cloneDriver(d *domain.Driver) *domain.Driver {
	c := *d
	c.Skills = append([]string(nil), d.Skills...)
	c.Habits = append([]string(nil), d.Habits...)
	return &c
}

func cloneBooking(b *domain.Booking) *domain.Booking {
	c := *b
	c.Pickup = cloneLocation(b.Pickup)
	c.ActualStartLocation = cloneLocation(b.ActualStartLocation)
	c.ActualEndLocation = cloneLocation(b.ActualEndLocation)
	if b.Rating != nil {
		r := *b.Rating
		c.Rating = &r
	}
	return &c
}
