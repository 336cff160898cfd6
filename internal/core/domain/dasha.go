package domain

import (
	"fmt"
	"math/big"
	"time"
)

// DashaLord is a planet ruling a Vimshottari period.
type DashaLord = Body

// VimshottariYears is the length of one full Vimshottari cycle.
const VimshottariYears = 120

// DaysPerYear is the year length used to turn period years into instants.
const DaysPerYear = 365.2425

// vimshottariOrder is the fixed cyclic order of period lords.
var vimshottariOrder = [9]DashaLord{Ketu, Venus, Sun, Moon, Mars, Rahu, Jupiter, Saturn, Mercury}

// vimshottariYears holds each lord's period in years, indexed by Body.
var vimshottariYears = [BodyCount]int64{
	Sun: 6, Moon: 10, Mars: 7, Mercury: 17, Jupiter: 16,
	Venus: 20, Saturn: 19, Rahu: 18, Ketu: 7,
}

// VimshottariOrder returns the nine lords in cyclic order, Ketu first.
func VimshottariOrder() []DashaLord {
	out := make([]DashaLord, len(vimshottariOrder))
	copy(out, vimshottariOrder[:])
	return out
}

// VimshottariYearsOf returns the full period of a lord in years.
func VimshottariYearsOf(lord DashaLord) int64 {
	return vimshottariYears[lord]
}

// VimshottariIndex returns the position of a lord in the cyclic order.
func VimshottariIndex(lord DashaLord) int {
	for i, l := range vimshottariOrder {
		if l == lord {
			return i
		}
	}
	return -1
}

// DashaLevel is the nesting depth of a period.
type DashaLevel int

// Period levels.
const (
	LevelMaha DashaLevel = iota + 1
	LevelAntar
	LevelPratyantar
	LevelSookshma
	LevelPrana
)

// MaxDashaDepth is the deepest supported level.
const MaxDashaDepth = int(LevelPrana)

// IsValid returns true if the level is supported.
func (l DashaLevel) IsValid() bool {
	return l >= LevelMaha && l <= LevelPrana
}

// String returns the conventional level name.
func (l DashaLevel) String() string {
	switch l {
	case LevelMaha:
		return "maha"
	case LevelAntar:
		return "antar"
	case LevelPratyantar:
		return "pratyantar"
	case LevelSookshma:
		return "sookshma"
	case LevelPrana:
		return "prana"
	default:
		return unknownDescription
	}
}

// MarshalText implements encoding.TextMarshaler.
func (l DashaLevel) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *DashaLevel) UnmarshalText(text []byte) error {
	name := string(text)
	for level := LevelMaha; level <= LevelPrana; level++ {
		if level.String() == name {
			*l = level
			return nil
		}
	}
	return fmt.Errorf("%w: dasha level %q", ErrInvalidInput, name)
}

// DashaPeriod is one node of the Vimshottari hierarchy.
// Start is inclusive and End exclusive. ParentID is a lookup key only.
type DashaPeriod struct {
	ID       string     `json:"id" yaml:"id"`
	Lord     DashaLord  `json:"lord" yaml:"lord"`
	Level    DashaLevel `json:"level" yaml:"level"`
	Start    time.Time  `json:"start" yaml:"start"`
	End      time.Time  `json:"end" yaml:"end"`
	ParentID string     `json:"parent_id,omitempty" yaml:"parent_id,omitempty"`

	startYears *big.Rat
	endYears   *big.Rat
}

// NewDashaPeriod builds a period whose exact offsets are measured in years
// from birth. The offsets are copied.
func NewDashaPeriod(id, parentID string, lord DashaLord, level DashaLevel,
	start, end time.Time, startYears, endYears *big.Rat) DashaPeriod {
	return DashaPeriod{
		ID:         id,
		Lord:       lord,
		Level:      level,
		Start:      start,
		End:        end,
		ParentID:   parentID,
		startYears: new(big.Rat).Set(startYears),
		endYears:   new(big.Rat).Set(endYears),
	}
}

// StartYears returns the exact start offset from birth in years.
func (p DashaPeriod) StartYears() *big.Rat {
	if p.startYears == nil {
		return new(big.Rat)
	}
	return new(big.Rat).Set(p.startYears)
}

// EndYears returns the exact end offset from birth in years.
func (p DashaPeriod) EndYears() *big.Rat {
	if p.endYears == nil {
		return new(big.Rat)
	}
	return new(big.Rat).Set(p.endYears)
}

// Years returns the exact length of the period in years.
func (p DashaPeriod) Years() *big.Rat {
	return new(big.Rat).Sub(p.EndYears(), p.StartYears())
}

// Contains reports whether t falls in [Start, End).
func (p DashaPeriod) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

// String renders the period for logs.
func (p DashaPeriod) String() string {
	return fmt.Sprintf("%s %s %s -> %s", p.Level, p.Lord,
		p.Start.Format("2006-01-02"), p.End.Format("2006-01-02"))
}
