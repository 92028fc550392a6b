// FILE: loglens/src/internal/geo/maxmind.go
package geo

import (
	"context"
	"fmt"
	"net"

	"loglens/src/internal/core"

	"github.com/oschwald/geoip2-golang"
)

// Locale used when picking names out of the database
const namesLocale = "en"

// MaxMindProvider reads a local GeoLite2/GeoIP2 City database.
type MaxMindProvider struct {
	path   string
	reader *geoip2.Reader
}

// NewMaxMindProvider opens the database at path.
func NewMaxMindProvider(path string) (*MaxMindProvider, error) {
	reader, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open geoip database %s: %w", path, err)
	}
	return &MaxMindProvider{path: path, reader: reader}, nil
}

func (p *MaxMindProvider) Name() string { return "maxmind" }

// Lookup returns the city level record for ip. Addresses missing from the
// database produce an empty record.
func (p *MaxMindProvider) Lookup(_ context.Context, ip net.IP) (core.GeoRecord, error) {
	city, err := p.reader.City(ip)
	if err != nil {
		return core.GeoRecord{}, fmt.Errorf("maxmind lookup %s: %w", ip, err)
	}
	return cityRecord(city), nil
}

func (p *MaxMindProvider) Close() error {
	return p.reader.Close()
}

func cityRecord(city *geoip2.City) core.GeoRecord {
	if city == nil {
		return core.GeoRecord{}
	}

	rec := core.GeoRecord{
		TimeZone:      city.Location.TimeZone,
		ContinentCode: city.Continent.Code,
		Continent:     city.Continent.Names[namesLocale],
		CountryCode:   city.Country.IsoCode,
		Country:       city.Country.Names[namesLocale],
		PostalCode:    city.Postal.Code,
		City:          city.City.Names[namesLocale],
	}
	if len(city.Subdivisions) > 0 {
		rec.ProvinceCode = city.Subdivisions[0].IsoCode
		rec.Province = city.Subdivisions[0].Names[namesLocale]
	}
	return rec
}
