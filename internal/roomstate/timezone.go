package roomstate

import (
	"strings"
	"time"
	_ "time/tzdata" // zone data for minimal containers

	"github.com/jPabloBC/hl.ingenit-v1-sub000/internal/models"
)

// DefaultZone is used for any country the resolver does not recognise
const DefaultZone = "America/Santiago"

var countryZones = map[string]string{
	"chile":     "America/Santiago",
	"cl":        "America/Santiago",
	"argentina": "America/Argentina/Buenos_Aires",
	"ar":        "America/Argentina/Buenos_Aires",
	"peru":      "America/Lima",
	"perú":      "America/Lima",
	"pe":        "America/Lima",
	"colombia":  "America/Bogota",
	"co":        "America/Bogota",
	"mexico":    "America/Mexico_City",
	"méxico":    "America/Mexico_City",
	"mx":        "America/Mexico_City",
	"spain":     "Europe/Madrid",
	"españa":    "Europe/Madrid",
	"espana":    "Europe/Madrid",
	"es":        "Europe/Madrid",
}

// ZoneForCountry maps a country name or ISO code to an IANA zone.
// Unknown or empty values fall back to DefaultZone.
func ZoneForCountry(country string) string {
	if zone, ok := countryZones[strings.ToLower(strings.TrimSpace(country))]; ok {
		return zone
	}
	return DefaultZone
}

// Clock supplies the current instant
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always returns the same instant
type FixedClock struct {
	At time.Time
}

func (c FixedClock) Now() time.Time { return c.At }

// Resolver turns "now" into business-local dates and times.
// All date math in the engine goes through it.
type Resolver struct {
	clock          Clock
	defaultCountry string
}

// NewResolver creates a resolver; a nil clock means the system clock
func NewResolver(clock Clock) *Resolver {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Resolver{clock: clock}
}

// WithDefaultCountry returns a copy of the resolver that uses country for
// businesses with no country set
func (r *Resolver) WithDefaultCountry(country string) *Resolver {
	return &Resolver{clock: r.clock, defaultCountry: country}
}

// Location returns the business time zone for country
func (r *Resolver) Location(country string) *time.Location {
	if strings.TrimSpace(country) == "" {
		country = r.defaultCountry
	}
	loc, err := time.LoadLocation(ZoneForCountry(country))
	if err != nil {
		// embedded tzdata makes this unreachable for the zones in the table
		return time.UTC
	}
	return loc
}

// BusinessDateTime returns the current wall-clock instant in the business zone
func (r *Resolver) BusinessDateTime(country string) time.Time {
	return r.clock.Now().In(r.Location(country))
}

// BusinessDate returns today's calendar day in the business zone
func (r *Resolver) BusinessDate(country string) models.Date {
	return models.DateOf(r.BusinessDateTime(country))
}
