package domain

// Location is a WGS84 coordinate pair in decimal degrees with optional
// display metadata.
type Location struct {
	Lat     float64
	Lng     float64
	Name    string
	Address string
	City    string
	State   string
}

// ValidCoordinates reports whether lat/lng fall inside the WGS84 ranges.
func ValidCoordinates(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// Valid reports whether the location's coordinates are in range.
func (l Location) Valid() bool {
	return ValidCoordinates(l.Lat, l.Lng)
}
