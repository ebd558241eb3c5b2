package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"wanderplan/internal/dto"
	"wanderplan/pkg/config"

	"go.uber.org/zap"
)

// ErrDestinationNotFound: geocoding produced no result for the query (404).
var ErrDestinationNotFound = errors.New("destination not found")

// Nominatim usage policy requires an identifying User-Agent.
const placesUserAgent = "WanderPlan/1.0 (open-source travel planner)"

// overpassTagFilters maps a place category onto an Overpass tag selector.
var overpassTagFilters = map[string]string{
	"tourism":  `["tourism"~"attraction|museum|artwork|viewpoint|gallery|theme_park|zoo"]`,
	"food":     `["amenity"~"restaurant|cafe|bar|fast_food|food_court"]`,
	"hotel":    `["tourism"~"hotel|hostel|guest_house|motel|apartment"]`,
	"nature":   `["natural"~"peak|beach|lake|waterfall|spring"]["leisure"~"park|nature_reserve"]`,
	"shopping": `["shop"~"mall|market|supermarket|clothes|boutique"]`,
}

// PlacesService resolves destinations and nearby points of interest from
// OpenStreetMap data (Nominatim for geocoding, Overpass for POI search).
type PlacesService struct {
	cfg        *config.PlacesConfig
	httpClient *http.Client
	logger     *zap.Logger
}

func NewPlacesService(cfg *config.PlacesConfig, logger *zap.Logger) *PlacesService {
	return &PlacesService{
		cfg:        cfg,
		httpClient: &http.Client{},
		logger:     logger,
	}
}

// Geocode converts a place name to coordinates. A query with no match
// returns (nil, nil); callers decide whether that is an error.
func (s *PlacesService) Geocode(ctx context.Context, query string) (*dto.GeocodeResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.GeocodeTimeout)
	defer cancel()

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "1")
	params.Set("addressdetails", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		strings.TrimRight(s.cfg.NominatimURL, "/")+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", placesUserAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocoding request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoding failed with status %d", resp.StatusCode)
	}

	var results []struct {
		DisplayName string `json:"display_name"`
		Lat         string `json:"lat"`
		Lon         string `json:"lon"`
		Address     struct {
			Country string `json:"country"`
			City    string `json:"city"`
			Town    string `json:"town"`
		} `json:"address"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("decoding geocoding response: %w", err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	r := results[0]
	lat, err := strconv.ParseFloat(r.Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude in geocoding response: %w", err)
	}
	lon, err := strconv.ParseFloat(r.Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude in geocoding response: %w", err)
	}

	name := r.DisplayName
	if name == "" {
		name = query
	}
	city := r.Address.City
	if city == "" {
		city = r.Address.Town
	}
	return &dto.GeocodeResponse{
		Name:    name,
		Lat:     lat,
		Lon:     lon,
		Country: r.Address.Country,
		City:    city,
	}, nil
}

// Nearby searches for named places around the coordinates using Overpass,
// returning at most 20 results.
func (s *PlacesService) Nearby(ctx context.Context, lat, lon float64, category string, radius int) ([]dto.PlaceResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.OverpassTimeout)
	defer cancel()

	tagFilter, ok := overpassTagFilters[category]
	if !ok {
		tagFilter = `["tourism"]`
	}
	query := fmt.Sprintf(`
	[out:json][timeout:25];
	(
	  node%[1]s(around:%[2]d,%[3]f,%[4]f);
	  way%[1]s(around:%[2]d,%[3]f,%[4]f);
	);
	out center 20;
	`, tagFilter, radius, lat, lon)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.OverpassURL, strings.NewReader(query))
	if err != nil {
		return nil, err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("overpass request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("overpass failed with status %d", resp.StatusCode)
	}

	var data struct {
		Elements []struct {
			ID     int64    `json:"id"`
			Lat    *float64 `json:"lat"`
			Lon    *float64 `json:"lon"`
			Center *struct {
				Lat float64 `json:"lat"`
				Lon float64 `json:"lon"`
			} `json:"center"`
			Tags map[string]string `json:"tags"`
		} `json:"elements"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decoding overpass response: %w", err)
	}

	places := make([]dto.PlaceResponse, 0, 20)
	for _, el := range data.Elements {
		if len(places) == 20 {
			break
		}
		name := el.Tags["name"]
		if name == "" {
			continue
		}
		place := dto.PlaceResponse{
			ID:           strconv.FormatInt(el.ID, 10),
			Name:         name,
			Category:     category,
			Description:  el.Tags["description"],
			Website:      el.Tags["website"],
			OpeningHours: el.Tags["opening_hours"],
			Cuisine:      el.Tags["cuisine"],
			Stars:        el.Tags["stars"],
			Wikipedia:    el.Tags["wikipedia"],
		}
		switch {
		case el.Lat != nil && el.Lon != nil:
			place.Lat, place.Lon = *el.Lat, *el.Lon
		case el.Center != nil:
			place.Lat, place.Lon = el.Center.Lat, el.Center.Lon
		}
		places = append(places, place)
	}
	return places, nil
}

// DestinationInfo resolves a destination and gathers its nearby attractions,
// restaurants and hotels.
func (s *PlacesService) DestinationInfo(ctx context.Context, destination string) (*dto.DestinationInfoResponse, error) {
	geo, err := s.Geocode(ctx, destination)
	if err != nil {
		return nil, err
	}
	if geo == nil {
		return nil, fmt.Errorf("%w: %s", ErrDestinationNotFound, destination)
	}

	tourism, err := s.Nearby(ctx, geo.Lat, geo.Lon, "tourism", 5000)
	if err != nil {
		return nil, err
	}
	food, err := s.Nearby(ctx, geo.Lat, geo.Lon, "food", 5000)
	if err != nil {
		return nil, err
	}
	hotels, err := s.Nearby(ctx, geo.Lat, geo.Lon, "hotel", 5000)
	if err != nil {
		return nil, err
	}

	return &dto.DestinationInfoResponse{
		Destination: *geo,
		Attractions: truncate(tourism, 10),
		Restaurants: truncate(food, 10),
		Hotels:      truncate(hotels, 8),
	}, nil
}

func truncate(places []dto.PlaceResponse, n int) []dto.PlaceResponse {
	if len(places) > n {
		return places[:n]
	}
	return places
}
