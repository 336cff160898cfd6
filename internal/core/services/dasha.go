package services

import (
	"fmt"
	"iter"
	"math"
	"math/big"
	"time"

	"github.com/custodia-labs/jyotish-cli/internal/core/domain"
	"github.com/custodia-labs/jyotish-cli/internal/core/ports/driving"
	"github.com/custodia-labs/jyotish-cli/internal/logger"
)

// Ensure DashaEngine implements the interface.
var _ driving.DashaService = (*DashaEngine)(nil)

// secondsPerYear is 365.2425 days expressed in seconds.
const secondsPerYear = 31556952

var (
	ratZero        = new(big.Rat)
	ratCycleYears  = new(big.Rat).SetInt64(domain.VimshottariYears)
	ratNakshatra   = big.NewRat(40, 3)
	nanosPerYear   = new(big.Int).Mul(big.NewInt(secondsPerYear), big.NewInt(int64(time.Second)))
	nanosPerSecond = big.NewInt(int64(time.Second))
)

// DashaEngine generates Vimshottari period hierarchies.
// Offsets are exact rationals measured in years from birth. Each boundary
// is converted to an instant exactly once, so adjacent siblings share
// identical boundary instants.
type DashaEngine struct {
	depth     int
	maxCycles int
}

// NewDashaEngine creates an engine with default depth and cycle bound.
// Out-of-range settings fall back to the application defaults.
func NewDashaEngine(settings domain.DashaSettings) *DashaEngine {
	defaults := domain.DefaultAppSettings().Dasha
	if settings.Depth < 1 || settings.Depth > domain.MaxDashaDepth {
		settings.Depth = defaults.Depth
	}
	if settings.MaxCycles < 1 {
		settings.MaxCycles = defaults.MaxCycles
	}
	return &DashaEngine{depth: settings.Depth, maxCycles: settings.MaxCycles}
}

// dashaNode is a period before clipping at birth.
type dashaNode struct {
	id       string
	parentID string
	lord     domain.DashaLord
	level    domain.DashaLevel
	start    *big.Rat // virtual start, may precede birth
	span     *big.Rat // full length in years
}

// dashaWalk holds the resolved parameters of one generation.
type dashaWalk struct {
	birth time.Time
	from  time.Time
	to    time.Time
	depth domain.DashaLevel
}

// Periods lazily yields periods overlapping [From, To] in pre-order.
func (e *DashaEngine) Periods(req driving.DashaRequest) (iter.Seq[domain.DashaPeriod], error) {
	depth, cycles, err := e.resolve(req)
	if err != nil {
		return nil, err
	}

	startLord, elapsed, err := birthBalance(req.MoonLongitude)
	if err != nil {
		return nil, err
	}

	walk := dashaWalk{
		birth: req.Birth,
		from:  req.From,
		to:    req.To,
		depth: domain.DashaLevel(depth),
	}

	logger.Debug("dasha: start lord %s, elapsed %s, depth %d, cycles %d",
		startLord, elapsed.FloatString(6), depth, cycles)

	return func(yield func(domain.DashaPeriod) bool) {
		if req.To.Before(req.Birth) {
			return
		}
		firstSpan := new(big.Rat).SetInt64(domain.VimshottariYearsOf(startLord))
		start := new(big.Rat).Neg(new(big.Rat).Mul(firstSpan, elapsed))
		order := domain.VimshottariOrder()
		first := domain.VimshottariIndex(startLord)

		for i := range cycles * len(order) {
			lord := order[(first+i)%len(order)]
			span := new(big.Rat).SetInt64(domain.VimshottariYearsOf(lord))
			node := dashaNode{
				id:    fmt.Sprintf("%d.%s", i, lord),
				lord:  lord,
				level: domain.LevelMaha,
				start: start,
				span:  span,
			}
			if yearsToInstant(req.Birth, clipAtBirth(start)).After(req.To) {
				return
			}
			if !walk.emit(node, yield) {
				return
			}
			start = new(big.Rat).Add(start, span)
		}
	}, nil
}

// Timeline collects Periods into a slice.
func (e *DashaEngine) Timeline(req driving.DashaRequest) ([]domain.DashaPeriod, error) {
	seq, err := e.Periods(req)
	if err != nil {
		return nil, err
	}
	var out []domain.DashaPeriod
	for p := range seq {
		out = append(out, p)
	}
	return out, nil
}

// Current returns the chain of periods running at an instant.
func (e *DashaEngine) Current(moonLongitude float64, birth, at time.Time, depth int) ([]domain.DashaPeriod, error) {
	if at.Before(birth) {
		return nil, fmt.Errorf("%w: %s precedes birth", domain.ErrInvalidInput, at.Format(time.RFC3339))
	}
	chain, err := e.Timeline(driving.DashaRequest{
		MoonLongitude: moonLongitude,
		Birth:         birth,
		From:          at,
		To:            at,
		Depth:         depth,
	})
	if err != nil {
		return nil, err
	}
	if len(chain) == 0 {
		return nil, fmt.Errorf("%w: no period running at %s", domain.ErrNotFound, at.Format(time.RFC3339))
	}
	return chain, nil
}

func (e *DashaEngine) resolve(req driving.DashaRequest) (depth, cycles int, err error) {
	if req.Birth.IsZero() {
		return 0, 0, fmt.Errorf("%w: birth instant is required", domain.ErrInvalidInput)
	}
	if req.To.Before(req.From) {
		return 0, 0, fmt.Errorf("%w: range end %s before start %s", domain.ErrInvalidInput,
			req.To.Format(time.RFC3339), req.From.Format(time.RFC3339))
	}

	depth = req.Depth
	if depth == 0 {
		depth = e.depth
	}
	if depth < 1 || depth > domain.MaxDashaDepth {
		return 0, 0, fmt.Errorf("%w: depth %d outside 1..%d", domain.ErrInvalidInput, depth, domain.MaxDashaDepth)
	}

	cycles = req.MaxCycles
	if cycles == 0 {
		cycles = e.maxCycles
	}
	if cycles < 0 {
		return 0, 0, fmt.Errorf("%w: max cycles %d", domain.ErrInvalidInput, cycles)
	}
	return depth, cycles, nil
}

// birthBalance returns the starting lord and the exact elapsed fraction of
// the birth nakshatra.
func birthBalance(moonLongitude float64) (domain.DashaLord, *big.Rat, error) {
	if math.IsNaN(moonLongitude) || math.IsInf(moonLongitude, 0) {
		return 0, nil, fmt.Errorf("%w: moon longitude %v", domain.ErrInvalidInput, moonLongitude)
	}
	lon := new(big.Rat).SetFloat64(domain.NormalizeDegrees(moonLongitude))
	pos := new(big.Rat).Quo(lon, ratNakshatra)
	index := new(big.Int).Quo(pos.Num(), pos.Denom())
	elapsed := new(big.Rat).Sub(pos, new(big.Rat).SetInt(index))

	nak := domain.Nakshatra(index.Int64() % domain.NakshatraCount)
	return nak.Lord(), elapsed, nil
}

// emit yields a node and its descendants. It reports false when the
// consumer stopped iterating.
func (w dashaWalk) emit(n dashaNode, yield func(domain.DashaPeriod) bool) bool {
	end := new(big.Rat).Add(n.start, n.span)
	if end.Cmp(ratZero) <= 0 {
		return true
	}
	start := clipAtBirth(n.start)

	startAt := yearsToInstant(w.birth, start)
	endAt := yearsToInstant(w.birth, end)
	if startAt.After(w.to) || !endAt.After(w.from) {
		return true
	}

	period := domain.NewDashaPeriod(n.id, n.parentID, n.lord, n.level, startAt, endAt, start, end)
	if !yield(period) {
		return false
	}
	if n.level >= w.depth {
		return true
	}

	order := domain.VimshottariOrder()
	first := domain.VimshottariIndex(n.lord)
	childStart := new(big.Rat).Set(n.start)
	for j := range order {
		lord := order[(first+j)%len(order)]
		share := new(big.Rat).SetFrac64(domain.VimshottariYearsOf(lord), 1)
		share.Quo(share, ratCycleYears)
		child := dashaNode{
			id:       fmt.Sprintf("%s/%d.%s", n.id, j, lord),
			parentID: n.id,
			lord:     lord,
			level:    n.level + 1,
			start:    childStart,
			span:     new(big.Rat).Mul(n.span, share),
		}
		if !w.emit(child, yield) {
			return false
		}
		childStart = new(big.Rat).Add(childStart, child.span)
	}
	return true
}

// clipAtBirth returns max(offset, 0).
func clipAtBirth(offset *big.Rat) *big.Rat {
	if offset.Sign() < 0 {
		return new(big.Rat)
	}
	return offset
}

// yearsToInstant converts an exact year offset to an instant, flooring to
// the nanosecond. Arithmetic stays in Unix seconds so spans longer than
// time.Duration can hold do not overflow.
func yearsToInstant(birth time.Time, years *big.Rat) time.Time {
	n := new(big.Int).Mul(years.Num(), nanosPerYear)
	n.Div(n, years.Denom())

	secs, nanos := new(big.Int).DivMod(n, nanosPerSecond, new(big.Int))
	return time.Unix(birth.Unix()+secs.Int64(), int64(birth.Nanosecond())+nanos.Int64()).UTC()
}
