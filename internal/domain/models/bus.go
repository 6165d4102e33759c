package models

import "strings"

// Bus is immutable reference data for the booking horizon. Amenities is
// stored comma-joined (subset of wifi, ac, power_outlets, toilet).
type Bus struct {
	ID           int64  `json:"id"`
	CompanyName  string `json:"company_name"`
	Make         string `json:"make"`
	Model        string `json:"model"`
	LicensePlate string `json:"license_plate"`
	Capacity     int    `json:"capacity"`
	Amenities    string `json:"-"`
}

func (b Bus) AmenityList() []string {
	out := []string{}
	for _, a := range strings.Split(b.Amenities, ",") {
		a = strings.TrimSpace(a)
		if a != "" {
			out = append(out, a)
		}
	}
	return out
}
