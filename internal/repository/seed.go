package repository

import "driveu/internal/domain"

var seedPlaces = []domain.Place{
	{ID: "india-gate-delhi", Name: "India Gate, Delhi", City: "Delhi", State: "Delhi", Lat: 28.6129, Lng: 77.2295, PlaceType: "landmark", Popular: true},
	{ID: "connaught-place-delhi", Name: "Connaught Place, Delhi", City: "Delhi", State: "Delhi", Lat: 28.6315, Lng: 77.2167, PlaceType: "landmark", Popular: true},
	{ID: "lotus-temple-delhi", Name: "Lotus Temple, Delhi", City: "Delhi", State: "Delhi", Lat: 28.5535, Lng: 77.2588, PlaceType: "landmark", Popular: true},
	{ID: "qutub-minar-delhi", Name: "Qutub Minar, Delhi", City: "Delhi", State: "Delhi", Lat: 28.5244, Lng: 77.1855, PlaceType: "landmark", Popular: true},
	{ID: "red-fort-delhi", Name: "Red Fort, Delhi", City: "Delhi", State: "Delhi", Lat: 28.6562, Lng: 77.2410, PlaceType: "landmark", Popular: true},
	{ID: "akshardham-delhi", Name: "Akshardham, Delhi", City: "Delhi", State: "Delhi", Lat: 28.6127, Lng: 77.2773, PlaceType: "landmark", Popular: true},
	{ID: "chandni-chowk-delhi", Name: "Chandni Chowk, Delhi", City: "Delhi", State: "Delhi", Lat: 28.6506, Lng: 77.2303, PlaceType: "landmark", Popular: true},
	{ID: "saket-delhi", Name: "Saket, Delhi", City: "Delhi", State: "Delhi", Lat: 28.5244, Lng: 77.2066, PlaceType: "locality", Popular: false},
	{ID: "cyber-city-gurgaon", Name: "Cyber City, Gurgaon", City: "Gurgaon", State: "Haryana", Lat: 28.4951, Lng: 77.0890, PlaceType: "landmark", Popular: true},
	{ID: "noida-sector-18", Name: "Noida Sector 18", City: "Noida", State: "Uttar Pradesh", Lat: 28.5688, Lng: 77.3243, PlaceType: "landmark", Popular: true},
	{ID: "gateway-of-india-mumbai", Name: "Gateway of India, Mumbai", City: "Mumbai", State: "Maharashtra", Lat: 18.9220, Lng: 72.8347, PlaceType: "landmark", Popular: true},
	{ID: "marine-drive-mumbai", Name: "Marine Drive, Mumbai", City: "Mumbai", State: "Maharashtra", Lat: 18.9432, Lng: 72.8236, PlaceType: "landmark", Popular: true},
	{ID: "bandra-kurla-complex-mumbai", Name: "Bandra Kurla Complex, Mumbai", City: "Mumbai", State: "Maharashtra", Lat: 19.0625, Lng: 72.8686, PlaceType: "landmark", Popular: true},
	{ID: "juhu-beach-mumbai", Name: "Juhu Beach, Mumbai", City: "Mumbai", State: "Maharashtra", Lat: 19.0990, Lng: 72.8265, PlaceType: "landmark", Popular: true},
	{ID: "powai-mumbai", Name: "Powai, Mumbai", City: "Mumbai", State: "Maharashtra", Lat: 19.1197, Lng: 72.9059, PlaceType: "locality", Popular: false},
	{ID: "andheri-mumbai", Name: "Andheri, Mumbai", City: "Mumbai", State: "Maharashtra", Lat: 19.1136, Lng: 72.8697, PlaceType: "locality", Popular: false},
	{ID: "colaba-mumbai", Name: "Colaba, Mumbai", City: "Mumbai", State: "Maharashtra", Lat: 18.9067, Lng: 72.8147, PlaceType: "landmark", Popular: true},
	{ID: "mg-road-bangalore", Name: "MG Road, Bangalore", City: "Bangalore", State: "Karnataka", Lat: 12.9758, Lng: 77.6061, PlaceType: "landmark", Popular: true},
	{ID: "whitefield-bangalore", Name: "Whitefield, Bangalore", City: "Bangalore", State: "Karnataka", Lat: 12.9698, Lng: 77.7500, PlaceType: "landmark", Popular: true},
	{ID: "koramangala-bangalore", Name: "Koramangala, Bangalore", City: "Bangalore", State: "Karnataka", Lat: 12.9352, Lng: 77.6245, PlaceType: "landmark", Popular: true},
	{ID: "electronic-city-bangalore", Name: "Electronic City, Bangalore", City: "Bangalore", State: "Karnataka", Lat: 12.8458, Lng: 77.6632, PlaceType: "landmark", Popular: true},
	{ID: "indiranagar-bangalore", Name: "Indiranagar, Bangalore", City: "Bangalore", State: "Karnataka", Lat: 12.9719, Lng: 77.6412, PlaceType: "landmark", Popular: true},
	{ID: "hsr-layout-bangalore", Name: "HSR Layout, Bangalore", City: "Bangalore", State: "Karnataka", Lat: 12.9082, Lng: 77.6476, PlaceType: "locality", Popular: false},
	{ID: "charminar-hyderabad", Name: "Charminar, Hyderabad", City: "Hyderabad", State: "Telangana", Lat: 17.3616, Lng: 78.4747, PlaceType: "landmark", Popular: true},
	{ID: "hitec-city-hyderabad", Name: "HITEC City, Hyderabad", City: "Hyderabad", State: "Telangana", Lat: 17.4484, Lng: 78.3908, PlaceType: "landmark", Popular: true},
	{ID: "banjara-hills-hyderabad", Name: "Banjara Hills, Hyderabad", City: "Hyderabad", State: "Telangana", Lat: 17.4126, Lng: 78.4421, PlaceType: "landmark", Popular: true},
	{ID: "gachibowli-hyderabad", Name: "Gachibowli, Hyderabad", City: "Hyderabad", State: "Telangana", Lat: 17.4399, Lng: 78.3487, PlaceType: "landmark", Popular: true},
	{ID: "jubilee-hills-hyderabad", Name: "Jubilee Hills, Hyderabad", City: "Hyderabad", State: "Telangana", Lat: 17.4331, Lng: 78.4074, PlaceType: "locality", Popular: false},
	{ID: "marina-beach-chennai", Name: "Marina Beach, Chennai", City: "Chennai", State: "Tamil Nadu", Lat: 13.0499, Lng: 80.2824, PlaceType: "landmark", Popular: true},
	{ID: "t-nagar-chennai", Name: "T Nagar, Chennai", City: "Chennai", State: "Tamil Nadu", Lat: 13.0418, Lng: 80.2341, PlaceType: "landmark", Popular: true},
	{ID: "omr-chennai", Name: "OMR, Chennai", City: "Chennai", State: "Tamil Nadu", Lat: 12.8642, Lng: 80.2179, PlaceType: "landmark", Popular: true},
	{ID: "velachery-chennai", Name: "Velachery, Chennai", City: "Chennai", State: "Tamil Nadu", Lat: 12.9759, Lng: 80.2211, PlaceType: "locality", Popular: false},
	{ID: "anna-nagar-chennai", Name: "Anna Nagar, Chennai", City: "Chennai", State: "Tamil Nadu", Lat: 13.0850, Lng: 80.2101, PlaceType: "locality", Popular: false},
	{ID: "howrah-bridge-kolkata", Name: "Howrah Bridge, Kolkata", City: "Kolkata", State: "West Bengal", Lat: 22.5851, Lng: 88.3470, PlaceType: "landmark", Popular: true},
	{ID: "park-street-kolkata", Name: "Park Street, Kolkata", City: "Kolkata", State: "West Bengal", Lat: 22.5535, Lng: 88.3522, PlaceType: "landmark", Popular: true},
	{ID: "koregaon-park-pune", Name: "Koregaon Park, Pune", City: "Pune", State: "Maharashtra", Lat: 18.5362, Lng: 73.8958, PlaceType: "landmark", Popular: true},
	{ID: "hinjewadi-pune", Name: "Hinjewadi, Pune", City: "Pune", State: "Maharashtra", Lat: 18.5912, Lng: 73.7394, PlaceType: "landmark", Popular: true},
	{ID: "hawa-mahal-jaipur", Name: "Hawa Mahal, Jaipur", City: "Jaipur", State: "Rajasthan", Lat: 26.9239, Lng: 75.8267, PlaceType: "landmark", Popular: true},
	{ID: "amber-fort-jaipur", Name: "Amber Fort, Jaipur", City: "Jaipur", State: "Rajasthan", Lat: 26.9855, Lng: 75.8513, PlaceType: "landmark", Popular: true},
	{ID: "marine-drive-kochi", Name: "Marine Drive, Kochi", City: "Kochi", State: "Kerala", Lat: 9.9674, Lng: 76.2782, PlaceType: "landmark", Popular: true},
	{ID: "fort-kochi", Name: "Fort Kochi", City: "Kochi", State: "Kerala", Lat: 9.9654, Lng: 76.2424, PlaceType: "landmark", Popular: true},
	{ID: "rk-beach-vizag", Name: "RK Beach, Vizag", City: "Vizag", State: "Andhra Pradesh", Lat: 17.7231, Lng: 83.3260, PlaceType: "landmark", Popular: true},
	{ID: "taj-mahal-agra", Name: "Taj Mahal, Agra", City: "Agra", State: "Uttar Pradesh", Lat: 27.1751, Lng: 78.0421, PlaceType: "landmark", Popular: true},
	{ID: "mysore-palace", Name: "Mysore Palace", City: "Mysore", State: "Karnataka", Lat: 12.3052, Lng: 76.6551, PlaceType: "landmark", Popular: true},
}

// SeedPlaces returns the built-in places catalog. Every entry is in India.
func SeedPlaces() []domain.Place {
	out := make([]domain.Place, len(seedPlaces))
	for i, p := range seedPlaces {
		p.Country = "India"
		if p.Address == "" {
			p.Address = p.Name
		}
		out[i] = p
	}
	return out
}
