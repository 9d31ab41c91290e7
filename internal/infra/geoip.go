package infra

import (
	"github.com/oschwald/geoip2-golang"
	"github.com/rs/zerolog/log"

	"github.com/reporthub/backend/internal/app/appconfig"
)

// GeoIPDatabase opens the configured MaxMind database. An empty path leaves
// country annotation disabled and yields a nil reader, which consumers must
// tolerate.
func GeoIPDatabase(conf *appconfig.Config) (*geoip2.Reader, error) {
	if conf.GeoIPDBPath == "" {
		log.Warn().
			Str("evt.name", "infra.geoip.disabled").
			Msg("infra: geoip: no database path configured, source country annotation is disabled")
		return nil, nil
	}

	db, err := geoip2.Open(conf.GeoIPDBPath)
	if err != nil {
		log.Error().
			Err(err).
			Str("path", conf.GeoIPDBPath).
			Msg("infra: geoip: failed to open database")
		return nil, err
	}

	return db, nil
}
