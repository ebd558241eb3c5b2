package dto

type GeocodeResponse struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Country string  `json:"country"`
	City    string  `json:"city"`
}

type PlaceResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Lat          float64 `json:"lat"`
	Lon          float64 `json:"lon"`
	Category     string  `json:"category"`
	Description  string  `json:"description"`
	Website      string  `json:"website"`
	OpeningHours string  `json:"opening_hours"`
	Cuisine      string  `json:"cuisine"`
	Stars        string  `json:"stars"`
	Wikipedia    string  `json:"wikipedia"`
}

type DestinationInfoResponse struct {
	Destination GeocodeResponse `json:"destination"`
	Attractions []PlaceResponse `json:"attractions"`
	Restaurants []PlaceResponse `json:"restaurants"`
	Hotels      []PlaceResponse `json:"hotels"`
}
