package ephemeris

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/jyotish-cli/internal/core/domain"
	"github.com/custodia-labs/jyotish-cli/internal/core/ports/driven"
	"github.com/custodia-labs/jyotish-cli/internal/logger"
)

// Ensure Tabulated implements the interface.
var _ driven.EphemerisPort = (*Tabulated)(nil)

// BackendTabulated is the name reported by the tabulated adapter.
const BackendTabulated = "tabulated"

// Tabulated interpolates positions from a CSV table of tropical longitudes.
//
// The first row is a header: "date" followed by body names in any order
// and case. Each further row holds one instant (YYYY-MM-DD at 00:00 UTC, or
// RFC 3339) with strictly increasing dates. A missing Ketu column is derived
// from Rahu.
type Tabulated struct {
	path string

	mu       sync.RWMutex
	table    *table
	onReload []func()
}

type table struct {
	instants []time.Time
	columns  [domain.BodyCount][]float64
}

// NewTabulated loads the table at path.
func NewTabulated(path string) (*Tabulated, error) {
	t := &Tabulated{path: path}
	if err := t.Reload(); err != nil {
		return nil, err
	}
	return t, nil
}

// Name identifies the adapter.
func (t *Tabulated) Name() string {
	return BackendTabulated
}

// Path returns the table file.
func (t *Tabulated) Path() string {
	return t.path
}

// Range returns the first and last tabulated instants.
func (t *Tabulated) Range() (from, to time.Time) {
	tab := t.current()
	return tab.instants[0], tab.instants[len(tab.instants)-1]
}

// Reload re-reads the table from disk. The previous table stays in use if
// the file cannot be parsed.
func (t *Tabulated) Reload() error {
	f, err := os.Open(t.path)
	if err != nil {
		return fmt.Errorf("open ephemeris table: %w", err)
	}
	defer f.Close()

	tab, err := parseTable(f)
	if err != nil {
		return fmt.Errorf("%s: %w", t.path, err)
	}

	t.mu.Lock()
	t.table = tab
	hooks := t.onReload
	t.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}
	return nil
}

// OnReload registers fn to run after every successful Reload, once the new
// table is in use.
func (t *Tabulated) OnReload(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onReload = append(t.onReload, fn)
}

func (t *Tabulated) current() *table {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.table
}

// PositionOf interpolates linearly between the rows bracketing at, taking
// the shorter arc across 0/360.
func (t *Tabulated) PositionOf(ctx context.Context, body domain.Body, at time.Time) (domain.BodyPosition, error) {
	if err := ctx.Err(); err != nil {
		return domain.BodyPosition{}, err
	}
	if !body.IsValid() {
		return domain.BodyPosition{}, fmt.Errorf("%w: %d", domain.ErrUnknownBody, int(body))
	}

	tab := t.current()
	col := tab.columns[body]
	if col == nil {
		return domain.BodyPosition{}, fmt.Errorf("%w: table has no %s column", domain.ErrEphemerisUnavailable, body)
	}

	first, last := tab.instants[0], tab.instants[len(tab.instants)-1]
	if at.Before(first) || at.After(last) {
		return domain.BodyPosition{}, fmt.Errorf("%w: %s outside table %s..%s", domain.ErrEphemerisUnavailable,
			at.UTC().Format(time.RFC3339), first.Format(time.RFC3339), last.Format(time.RFC3339))
	}

	// Index of the row at or before at, kept one short of the end so the
	// final row interpolates from its predecessor.
	i := sort.Search(len(tab.instants), func(k int) bool { return tab.instants[k].After(at) }) - 1
	if i >= len(tab.instants)-1 {
		i = len(tab.instants) - 2
	}

	span := tab.instants[i+1].Sub(tab.instants[i])
	frac := float64(at.Sub(tab.instants[i])) / float64(span)
	delta := signedDelta(col[i], col[i+1])

	return domain.BodyPosition{
		Body:       body,
		Longitude:  domain.NormalizeDegrees(col[i] + frac*delta),
		Retrograde: delta < 0,
		Speed:      delta / span.Hours() * 24,
	}, nil
}

// Watch reloads the table whenever its file is written or replaced, until
// ctx is cancelled. The parent directory is watched so that editors which
// save by rename are picked up.
func (t *Tabulated) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	target := filepath.Clean(t.path)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}

	log := logger.Logger("ephemeris")
	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				if err := t.Reload(); err != nil {
					logger.Warn("keeping previous ephemeris table: %v", err)
					continue
				}
				log.Debug().Str("path", target).Msg("ephemeris table reloaded")
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("ephemeris watcher: %v", err)
			}
		}
	}()
	return nil
}

func parseTable(r io.Reader) (*table, error) {
	reader := csv.NewReader(r)
	reader.Comment = '#'
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty ephemeris table", domain.ErrInvalidInput)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if len(header) < 2 || !strings.EqualFold(strings.TrimSpace(header[0]), "date") {
		return nil, fmt.Errorf("%w: header must start with date", domain.ErrInvalidInput)
	}

	bodies := make([]domain.Body, len(header)-1)
	seen := make(map[domain.Body]bool)
	for i, name := range header[1:] {
		b, err := domain.ParseBody(name)
		if err != nil {
			return nil, fmt.Errorf("%w: column %q: %v", domain.ErrInvalidInput, name, err)
		}
		if seen[b] {
			return nil, fmt.Errorf("%w: duplicate column %s", domain.ErrInvalidInput, b)
		}
		seen[b] = true
		bodies[i] = b
	}

	tab := &table{}
	for _, b := range bodies {
		tab.columns[b] = []float64{}
	}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		line, _ := reader.FieldPos(0)

		at, err := parseInstant(record[0])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", domain.ErrInvalidInput, line, err)
		}
		if n := len(tab.instants); n > 0 && !at.After(tab.instants[n-1]) {
			return nil, fmt.Errorf("%w: line %d: dates must be strictly increasing", domain.ErrInvalidInput, line)
		}
		tab.instants = append(tab.instants, at)

		for i, b := range bodies {
			v, err := strconv.ParseFloat(strings.TrimSpace(record[i+1]), 64)
			if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: line %d: bad %s longitude %q", domain.ErrInvalidInput, line, b, record[i+1])
			}
			tab.columns[b] = append(tab.columns[b], domain.NormalizeDegrees(v))
		}
	}

	if len(tab.instants) < 2 {
		return nil, fmt.Errorf("%w: ephemeris table needs at least two rows", domain.ErrInvalidInput)
	}

	if tab.columns[domain.Ketu] == nil && tab.columns[domain.Rahu] != nil {
		ketu := make([]float64, len(tab.columns[domain.Rahu]))
		for i, v := range tab.columns[domain.Rahu] {
			ketu[i] = domain.NormalizeDegrees(v + 180)
		}
		tab.columns[domain.Ketu] = ketu
	}
	return tab, nil
}

func parseInstant(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q: want YYYY-MM-DD or RFC 3339", s)
	}
	return t.UTC(), nil
}
