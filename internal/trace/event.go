package trace

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"slices"
	"strconv"
)

// ErrBadEvent indicates an event that cannot be replayed.
var ErrBadEvent = errors.New("trace: bad event")

type Kind string

const (
	Move   Kind = "move"
	Scroll Kind = "scroll"
)

type Event struct {
	Time float64
	Kind Kind
	X, Y float64
}

func (e Event) Validate() error {
	if e.Kind != Move && e.Kind != Scroll {
		return fmt.Errorf("%w: unknown kind %q", ErrBadEvent, e.Kind)
	}
	for _, v := range []float64{e.Time, e.X, e.Y} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite value in %+v", ErrBadEvent, e)
		}
	}
	return nil
}

var header = []string{"time", "kind", "x", "y"}

func Read(r io.Reader) ([]Event, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(header)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadEvent, err)
	}
	if len(records) == 0 {
		return []Event{}, nil
	}
	if !slices.Equal(records[0], header) {
		return nil, fmt.Errorf("%w: header %v, want %v", ErrBadEvent, records[0], header)
	}

	events := make([]Event, 0, len(records)-1)
	for i, rec := range records[1:] {
		var vals [3]float64
		for j, field := range []string{rec[0], rec[2], rec[3]} {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrBadEvent, i+2, err)
			}
			vals[j] = v
		}
		ev := Event{Time: vals[0], Kind: Kind(rec[1]), X: vals[1], Y: vals[2]}
		if err := ev.Validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+2, err)
		}
		events = append(events, ev)
	}
	return events, nil
}

func Write(w io.Writer, events []Event) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, ev := range events {
		row := []string{
			strconv.FormatFloat(ev.Time, 'f', 4, 64),
			string(ev.Kind),
			strconv.FormatFloat(ev.X, 'f', 3, 64),
			strconv.FormatFloat(ev.Y, 'f', 3, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func Load(path string) ([]Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

func Save(path string, events []Event) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, events); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
