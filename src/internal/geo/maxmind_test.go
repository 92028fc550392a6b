// FILE: loglens/src/internal/geo/maxmind_test.go
package geo

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"loglens/src/internal/core"

	"github.com/oschwald/geoip2-golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMaxMindProvider_MissingDatabase(t *testing.T) {
	_, err := NewMaxMindProvider(filepath.Join(t.TempDir(), "GeoLite2-City.mmdb"))
	assert.Error(t, err)
}

func TestCityRecord(t *testing.T) {
	// geoip2 result structs use anonymous nested types, so build one from JSON
	raw := `{
		"City": {"Names": {"en": "Mountain View", "de": "Mountain View"}},
		"Continent": {"Code": "NA", "Names": {"en": "North America"}},
		"Country": {"IsoCode": "US", "Names": {"en": "United States"}},
		"Location": {"TimeZone": "America/Los_Angeles"},
		"Postal": {"Code": "94043"},
		"Subdivisions": [
			{"IsoCode": "CA", "Names": {"en": "California"}},
			{"IsoCode": "XX", "Names": {"en": "Ignored"}}
		]
	}`
	var city geoip2.City
	require.NoError(t, json.Unmarshal([]byte(raw), &city))

	assert.Equal(t, fullRecord, cityRecord(&city))
}

func TestCityRecord_Sparse(t *testing.T) {
	var city geoip2.City
	city.Country.IsoCode = "DE"

	assert.Equal(t, core.GeoRecord{CountryCode: "DE"}, cityRecord(&city))
	assert.True(t, cityRecord(nil).IsEmpty())
}
