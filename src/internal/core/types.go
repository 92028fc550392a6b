// FILE: loglens/src/internal/core/types.go
package core

// Record is anything exposing named string fields.
// A false second return means the field is unset.
type Record interface {
	Get(field string) (string, bool)
}

// GeoRecord holds location metadata for one IP address.
// An empty string means the source had no value for that field.
type GeoRecord struct {
	TimeZone      string `json:"timeZone,omitempty"`
	ContinentCode string `json:"continentCode,omitempty"`
	Continent     string `json:"continent,omitempty"`
	CountryCode   string `json:"countryCode,omitempty"`
	Country       string `json:"country,omitempty"`
	ProvinceCode  string `json:"provinceCode,omitempty"`
	Province      string `json:"province,omitempty"`
	PostalCode    string `json:"postalCode,omitempty"`
	City          string `json:"city,omitempty"`
}

// IsEmpty reports whether every field is unset.
func (g GeoRecord) IsEmpty() bool {
	return g == GeoRecord{}
}

// Fields returns the set fields keyed by their log field names.
func (g GeoRecord) Fields() map[string]string {
	all := map[string]string{
		FieldTimeZone:      g.TimeZone,
		FieldContinentCode: g.ContinentCode,
		FieldContinent:     g.Continent,
		FieldCountryCode:   g.CountryCode,
		FieldCountry:       g.Country,
		FieldProvinceCode:  g.ProvinceCode,
		FieldProvince:      g.Province,
		FieldPostalCode:    g.PostalCode,
		FieldCity:          g.City,
	}
	for k, v := range all {
		if v == "" {
			delete(all, k)
		}
	}
	return all
}
