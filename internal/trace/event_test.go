package trace

import (
	"bytes"
	"errors"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/repulse/internal/repulse"
)

func TestWriteRead(t *testing.T) {
	events := []Event{
		{Time: 0, Kind: Move, X: 10.5, Y: 20},
		{Time: 0.0167, Kind: Scroll, X: 0, Y: 120},
	}

	var buf bytes.Buffer
	if err := Write(&buf, events); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "time,kind,x,y\n") {
		t.Errorf("missing header: %q", buf.String())
	}

	got, err := Read(&buf)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(got) != 2 || got[0] != events[0] || got[1] != events[1] {
		t.Errorf("unexpected events: %+v", got)
	}
}

func TestReadErrors(t *testing.T) {
	bad := []string{
		"time,kind,x,y\n0,move,1\n",
		"time,kind,x,y\nzero,move,1,2\n",
		"time,kind,x,y\n0,hover,1,2\n",
		"time,kind,x,y\n0,move,NaN,2\n",
		"0,move,10,20\n0.1,move,30,40\n",
		"a,b,c,d\n0,move,1,2\n",
	}
	for _, data := range bad {
		if _, err := Read(strings.NewReader(data)); !errors.Is(err, ErrBadEvent) {
			t.Errorf("expected ErrBadEvent for %q, got %v", data, err)
		}
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.csv")
	events := Demo(repulse.Vec2{X: 800, Y: 600})
	if err := Save(path, events); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(got) != len(events) {
		t.Errorf("expected %d events, got %d", len(events), len(got))
	}
}

func TestSweep(t *testing.T) {
	events := Sweep(repulse.Vec2{X: 0, Y: 0}, repulse.Vec2{X: 100, Y: 50}, 4, 1, 0.5)
	if len(events) != 5 {
		t.Fatalf("expected 5 events, got %d", len(events))
	}
	last := events[4]
	if last.X != 100 || last.Y != 50 || last.Time != 3 {
		t.Errorf("unexpected last event %+v", last)
	}
	if events[2].X != 50 || events[2].Kind != Move {
		t.Errorf("unexpected midpoint %+v", events[2])
	}
}

func TestOrbit(t *testing.T) {
	c := repulse.Vec2{X: 50, Y: 50}
	for _, ev := range Orbit(c, 10, 16, 0, DefaultDt) {
		d := math.Hypot(ev.X-c.X, ev.Y-c.Y)
		if math.Abs(d-10) > 1e-9 {
			t.Fatalf("event off the circle: %+v", ev)
		}
	}
}

func TestHold(t *testing.T) {
	if n := len(Hold(repulse.Vec2{}, 7, 0, DefaultDt)); n != 7 {
		t.Errorf("expected 7 events, got %d", n)
	}
}

func TestGeneratorsNonPositiveSteps(t *testing.T) {
	at := repulse.Vec2{X: 10, Y: 10}
	tests := []struct {
		name   string
		events []Event
		want   int
	}{
		{"sweep", Sweep(at, at, -3, 0, DefaultDt), 1},
		{"orbit", Orbit(at, 5, -3, 0, DefaultDt), 0},
		{"hold", Hold(at, -3, 0, DefaultDt), 0},
		{"hold zero", Hold(at, 0, 0, DefaultDt), 0},
		{"scroll", ScrollRamp(0, 100, -3, 0, DefaultDt), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if len(tt.events) != tt.want {
				t.Errorf("got %d events, want %d", len(tt.events), tt.want)
			}
		})
	}
}

func TestMergeOrder(t *testing.T) {
	a := []Event{{Time: 0, Kind: Move}, {Time: 2, Kind: Move}}
	b := []Event{{Time: 1, Kind: Scroll}, {Time: 2, Kind: Scroll}}

	got := Merge(a, b)
	kinds := []Kind{Move, Scroll, Move, Scroll}
	for i, ev := range got {
		if ev.Kind != kinds[i] {
			t.Errorf("event %d: expected %s, got %s", i, kinds[i], ev.Kind)
		}
	}
}

func TestFrameQueueDefersNested(t *testing.T) {
	var q FrameQueue
	ran := 0
	q.RequestAnimationFrame(func() {
		ran++
		q.RequestAnimationFrame(func() { ran++ })
	})

	if n := q.Flush(); n != 1 || ran != 1 {
		t.Fatalf("expected one callback, ran %d (flushed %d)", ran, n)
	}
	if q.Pending() != 1 {
		t.Fatalf("expected nested callback pending")
	}
	q.Flush()
	if ran != 2 {
		t.Errorf("expected nested callback to run on next flush")
	}
}
