package domain

// DefaultHourlyRate is assigned to newly registered drivers.
const DefaultHourlyRate = 150.0

// Driver is a bookable driver together with the profile data shown to owners.
type Driver struct {
	ID              string
	Name            string
	Phone           string
	LicenseNumber   string
	ExperienceYears int
	Rating          float64 // average, 0.0-5.0
	CompletedTrips  int
	TotalEarnings   float64
	Skills          []string
	Habits          []string
	Location        Location
	Available       bool
	HourlyRate      float64
	ActiveBookingID string // set while the driver is reserved for a booking
}
