package models

import "github.com/google/uuid"

// Activity is one itinerary entry within a day. Type is one of
// activity | food | hotel | transport.
type Activity struct {
	Time        string   `json:"time,omitempty"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Location    string   `json:"location,omitempty"`
	Lat         *float64 `json:"lat,omitempty"`
	Lon         *float64 `json:"lon,omitempty"`
	Type        string   `json:"type,omitempty"`
}

type ItineraryDay struct {
	ID         uuid.UUID  `db:"id"`
	TripID     uuid.UUID  `db:"trip_id"`
	DayNumber  int        `db:"day_number"`
	Date       string     `db:"date"`
	Activities []Activity `db:"activities"`
}
