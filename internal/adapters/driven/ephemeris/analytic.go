package ephemeris

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/custodia-labs/jyotish-cli/internal/core/domain"
	"github.com/custodia-labs/jyotish-cli/internal/core/ports/driven"
)

// Ensure Analytic implements the interface.
var _ driven.EphemerisPort = (*Analytic)(nil)

// BackendAnalytic is the name reported by the analytic adapter.
const BackendAnalytic = "analytic"

// Day zero of the element epoch, 1999-12-31 00:00 UTC.
const elementEpochJD = 2451543.5

var (
	analyticFrom = time.Date(1800, time.January, 1, 0, 0, 0, 0, time.UTC)
	analyticTo   = time.Date(2200, time.January, 1, 0, 0, 0, 0, time.UTC)
)

// Analytic evaluates mean orbital elements of date with the principal
// periodic terms of the Moon, Jupiter and Saturn. Expect about an arcminute
// of error for the Sun and Moon and a few arcminutes for the planets.
// Rahu is the mean lunar node.
type Analytic struct {
	from time.Time
	to   time.Time
}

// NewAnalytic creates the analytic backend.
func NewAnalytic() *Analytic {
	return &Analytic{from: analyticFrom, to: analyticTo}
}

// Name identifies the adapter.
func (a *Analytic) Name() string {
	return BackendAnalytic
}

// Range returns the supported [from, to) interval.
func (a *Analytic) Range() (from, to time.Time) {
	return a.from, a.to
}

// PositionOf returns the tropical longitude of date of a body.
func (a *Analytic) PositionOf(ctx context.Context, body domain.Body, at time.Time) (domain.BodyPosition, error) {
	if err := ctx.Err(); err != nil {
		return domain.BodyPosition{}, err
	}
	if !body.IsValid() {
		return domain.BodyPosition{}, fmt.Errorf("%w: %d", domain.ErrUnknownBody, int(body))
	}
	if err := checkRange(at, a.from, a.to); err != nil {
		return domain.BodyPosition{}, err
	}

	d := domain.JulianDay(at) - elementEpochJD
	lon := longitudeOf(body, d)
	speed := signedDelta(lon, longitudeOf(body, d+1))

	return domain.BodyPosition{
		Body:       body,
		Longitude:  lon,
		Retrograde: speed < 0,
		Speed:      speed,
	}, nil
}

func checkRange(at, from, to time.Time) error {
	if at.Before(from) || !at.Before(to) {
		return fmt.Errorf("%w: %s outside %s..%s", domain.ErrEphemerisUnavailable,
			at.UTC().Format(time.RFC3339), from.Format(time.DateOnly), to.Format(time.DateOnly))
	}
	return nil
}

// orbit holds Keplerian elements in degrees; a is in AU (Earth radii for
// the Moon).
type orbit struct {
	node, incl, peri, a, ecc, mean float64
}

func elementsOf(body domain.Body, d float64) orbit {
	switch body {
	case domain.Sun:
		return orbit{0, 0, 282.9404 + 4.70935e-5*d, 1, 0.016709 - 1.151e-9*d, 356.0470 + 0.9856002585*d}
	case domain.Moon:
		return orbit{125.1228 - 0.0529538083*d, 5.1454, 318.0634 + 0.1643573223*d, 60.2666, 0.054900, 115.3654 + 13.0649929509*d}
	case domain.Mercury:
		return orbit{48.3313 + 3.24587e-5*d, 7.0047 + 5.00e-8*d, 29.1241 + 1.01444e-5*d, 0.387098, 0.205635 + 5.59e-10*d, 168.6562 + 4.0923344368*d}
	case domain.Venus:
		return orbit{76.6799 + 2.46590e-5*d, 3.3946 + 2.75e-8*d, 54.8910 + 1.38374e-5*d, 0.723330, 0.006773 - 1.302e-9*d, 48.0052 + 1.6021302244*d}
	case domain.Mars:
		return orbit{49.5574 + 2.11081e-5*d, 1.8497 - 1.78e-8*d, 286.5016 + 2.92961e-5*d, 1.523688, 0.093405 + 2.516e-9*d, 18.6021 + 0.5240207766*d}
	case domain.Jupiter:
		return orbit{100.4542 + 2.76854e-5*d, 1.3030 - 1.557e-7*d, 273.8777 + 1.64505e-5*d, 5.20256, 0.048498 + 4.469e-9*d, 19.8950 + 0.0830853001*d}
	case domain.Saturn:
		return orbit{113.6634 + 2.38980e-5*d, 2.4886 - 1.081e-7*d, 339.3939 + 2.97661e-5*d, 9.55475, 0.055546 - 9.499e-9*d, 316.9670 + 0.0334442282*d}
	default:
		return orbit{}
	}
}

// heliocentric returns ecliptic rectangular coordinates around the orbit's
// focus.
func (o orbit) heliocentric() (x, y, z float64) {
	m := rad(domain.NormalizeDegrees(o.mean))
	e := eccentricAnomaly(m, o.ecc)

	xv := o.a * (math.Cos(e) - o.ecc)
	yv := o.a * math.Sqrt(1-o.ecc*o.ecc) * math.Sin(e)
	v := math.Atan2(yv, xv)
	r := math.Hypot(xv, yv)

	n, i := rad(o.node), rad(o.incl)
	vw := v + rad(o.peri)
	x = r * (math.Cos(n)*math.Cos(vw) - math.Sin(n)*math.Sin(vw)*math.Cos(i))
	y = r * (math.Sin(n)*math.Cos(vw) + math.Cos(n)*math.Sin(vw)*math.Cos(i))
	z = r * math.Sin(vw) * math.Sin(i)
	return x, y, z
}

func eccentricAnomaly(m, ecc float64) float64 {
	e := m + ecc*math.Sin(m)*(1+ecc*math.Cos(m))
	for range 10 {
		step := (e - ecc*math.Sin(e) - m) / (1 - ecc*math.Cos(e))
		e -= step
		if math.Abs(step) < 1e-12 {
			break
		}
	}
	return e
}

func longitudeOf(body domain.Body, d float64) float64 {
	switch body {
	case domain.Sun:
		x, y := sunRectangular(d)
		return domain.NormalizeDegrees(deg(math.Atan2(y, x)))
	case domain.Moon:
		return moonLongitude(d)
	case domain.Rahu:
		return domain.NormalizeDegrees(elementsOf(domain.Moon, d).node)
	case domain.Ketu:
		return domain.NormalizeDegrees(elementsOf(domain.Moon, d).node + 180)
	default:
		return planetLongitude(body, d)
	}
}

// sunRectangular returns the geocentric ecliptic coordinates of the Sun in AU.
func sunRectangular(d float64) (x, y float64) {
	x, y, _ = elementsOf(domain.Sun, d).heliocentric()
	return x, y
}

func moonLongitude(d float64) float64 {
	moon := elementsOf(domain.Moon, d)
	sun := elementsOf(domain.Sun, d)

	x, y, _ := moon.heliocentric()
	lon := deg(math.Atan2(y, x))

	ms := sun.mean
	mm := moon.mean
	ls := ms + sun.peri
	lm := mm + moon.peri + moon.node
	elong := lm - ls
	f := lm - moon.node

	lon += -1.274*sind(mm-2*elong) +
		0.658*sind(2*elong) -
		0.186*sind(ms) -
		0.059*sind(2*mm-2*elong) -
		0.057*sind(mm-2*elong+ms) +
		0.053*sind(mm+2*elong) +
		0.046*sind(2*elong-ms) +
		0.041*sind(mm-ms) -
		0.035*sind(elong) -
		0.031*sind(mm+ms) -
		0.015*sind(2*f-2*elong) +
		0.011*sind(mm-4*elong)

	return domain.NormalizeDegrees(lon)
}

func planetLongitude(body domain.Body, d float64) float64 {
	xh, yh, zh := elementsOf(body, d).heliocentric()

	if body == domain.Jupiter || body == domain.Saturn {
		xh, yh = perturbGiant(body, d, xh, yh, zh)
	}

	xs, ys := sunRectangular(d)
	return domain.NormalizeDegrees(deg(math.Atan2(yh+ys, xh+xs)))
}

// perturbGiant applies the mutual Jupiter-Saturn terms to a heliocentric
// longitude, keeping latitude and distance.
func perturbGiant(body domain.Body, d, x, y, z float64) (float64, float64) {
	mj := elementsOf(domain.Jupiter, d).mean
	ms := elementsOf(domain.Saturn, d).mean

	var dl float64
	if body == domain.Jupiter {
		dl = -0.332*sind(2*mj-5*ms-67.6) -
			0.056*sind(2*mj-2*ms+21) +
			0.042*sind(3*mj-5*ms+21) -
			0.036*sind(mj-2*ms) +
			0.022*cosd(mj-ms) +
			0.023*sind(2*mj-3*ms+52) -
			0.016*sind(mj-5*ms-69)
	} else {
		dl = 0.812*sind(2*mj-5*ms-67.6) -
			0.229*cosd(2*mj-4*ms-2) +
			0.119*sind(mj-2*ms-3) +
			0.046*sind(2*mj-6*ms-69) +
			0.014*sind(mj-3*ms+32)
	}

	r := math.Sqrt(x*x + y*y + z*z)
	lat := math.Atan2(z, math.Hypot(x, y))
	lon := math.Atan2(y, x) + rad(dl)
	return r * math.Cos(lon) * math.Cos(lat), r * math.Sin(lon) * math.Cos(lat)
}

// signedDelta returns the shortest signed arc from a to b in (-180, 180].
func signedDelta(a, b float64) float64 {
	delta := math.Mod(b-a, 360)
	switch {
	case delta > 180:
		delta -= 360
	case delta <= -180:
		delta += 360
	}
	return delta
}

func rad(x float64) float64  { return x * math.Pi / 180 }
func deg(x float64) float64  { return x * 180 / math.Pi }
func sind(x float64) float64 { return math.Sin(rad(x)) }
func cosd(x float64) float64 { return math.Cos(rad(x)) }
