package service

import (
	"net"

	"github.com/oschwald/geoip2-golang"
	"github.com/pkg/errors"
)

// GeoIP annotates source addresses with their country. The reader is nil
// when no database is configured; every lookup then resolves to nothing.
type GeoIP struct {
	db *geoip2.Reader
}

func NewGeoIP(db *geoip2.Reader) *GeoIP {
	return &GeoIP{
		db: db,
	}
}

func (s *GeoIP) Enabled() bool {
	return s.db != nil
}

func (s *GeoIP) Country(ip string) (*geoip2.Country, error) {
	if s.db == nil {
		return nil, errors.New("geoip database is disabled")
	}
	netIP := net.ParseIP(ip)
	if netIP == nil {
		return nil, errors.New("invalid ip")
	}
	return s.db.Country(netIP)
}

// CountryName resolves ip to an English country name, or "" when the
// database is disabled or the address does not resolve to a country.
func (s *GeoIP) CountryName(ip string) string {
	country, err := s.Country(ip)
	if err != nil || country == nil {
		return ""
	}
	return country.Country.Names["en"]
}
