package models

// Route is immutable reference data for one origin→destination pair.
type Route struct {
	ID                  int64   `json:"id"`
	OriginCity          string  `json:"origin_city"`
	OriginProvince      string  `json:"origin_province"`
	DestinationCity     string  `json:"destination_city"`
	DestinationProvince string  `json:"destination_province"`
	DistanceKm          float64 `json:"distance_km"`
	EstimatedHours      float64 `json:"estimated_duration_hours"`
	BasePriceKz         int64   `json:"base_price_kz"`
	Active              bool    `json:"active"`
}

// Name renders the route the way tickets print it.
func (r Route) Name() string {
	return r.OriginCity + " → " + r.DestinationCity
}
