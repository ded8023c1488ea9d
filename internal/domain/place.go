package domain

// Place is a searchable point of interest.
type Place struct {
	ID        string
	Name      string
	City      string
	State     string
	Country   string
	Lat       float64
	Lng       float64
	Address   string
	PlaceType string
	Popular   bool
}

// Location converts the place into a Location.
func (p Place) Location() Location {
	return Location{Lat: p.Lat, Lng: p.Lng, Name: p.Name, Address: p.Address, City: p.City, State: p.State}
}
