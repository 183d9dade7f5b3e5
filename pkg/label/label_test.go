package label

import (
	stderrors "errors"
	"math"
	"math/rand/v2"
	"strings"
	"sync"
	"testing"

	"github.com/matzehuels/sunburst/pkg/errors"
	"github.com/matzehuels/sunburst/pkg/geom"
)

func approx(a, b, eps float64) bool { return math.Abs(a-b) <= eps }

func randomSegment(r *rand.Rand) ArcSegment {
	a := r.Float64()*4*math.Pi - 2*math.Pi
	b := a + r.Float64()*2*math.Pi
	in := r.Float64() * 300
	out := in + r.Float64()*300
	return ArcSegment{StartAngle: a, EndAngle: b, InnerRadius: in, OuterRadius: out}
}

func TestPlaceQuarterArc(t *testing.T) {
	seg := ArcSegment{StartAngle: 0, EndAngle: math.Pi / 2, InnerRadius: 100, OuterRadius: 200}

	if got := MidAngle(seg); !approx(got, math.Pi/4, 1e-12) {
		t.Errorf("MidAngle = %v, want %v", got, math.Pi/4)
	}
	if got := MidRadius(seg); got != 150 {
		t.Errorf("MidRadius = %v, want 150", got)
	}

	raw := Midpoint(seg, geom.Pt(0, 0))
	if !approx(raw.X, 106.07, 0.01) || !approx(raw.Y, 106.07, 0.01) {
		t.Errorf("Midpoint = %v, want (106.07, 106.07)", raw)
	}

	p, err := Place(seg, geom.Pt(0, 0), 40, 10)
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if !approx(p.Anchor.X, 86.07, 0.01) || !approx(p.Anchor.Y, 101.07, 0.01) {
		t.Errorf("Anchor = %v, want (86.07, 101.07)", p.Anchor)
	}
	if p.HAlign != AlignLeft || p.VAlign != AlignTop {
		t.Errorf("alignment = %v/%v, want left/top", p.HAlign, p.VAlign)
	}
}

func TestPlaceCentersBoundingBox(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	center := geom.Pt(400, 300)
	for i := 0; i < 500; i++ {
		seg := randomSegment(r)
		w, h := r.Float64()*120, r.Float64()*30
		p, err := Place(seg, center, w, h)
		if err != nil {
			t.Fatalf("Place(%+v): %v", seg, err)
		}
		got := p.Bounds(w, h).Center()
		want := Midpoint(seg, center)
		if !approx(got.X, want.X, 1e-9) || !approx(got.Y, want.Y, 1e-9) {
			t.Fatalf("bounds center = %v, want %v", got, want)
		}
	}
}

func TestMidpointsWithinSegment(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	for i := 0; i < 1000; i++ {
		seg := randomSegment(r)
		if a := MidAngle(seg); a < seg.StartAngle || a > seg.EndAngle {
			t.Fatalf("MidAngle %v outside [%v, %v]", a, seg.StartAngle, seg.EndAngle)
		}
		if m := MidRadius(seg); m < seg.InnerRadius || m > seg.OuterRadius {
			t.Fatalf("MidRadius %v outside [%v, %v]", m, seg.InnerRadius, seg.OuterRadius)
		}
	}
}

func TestRotationAlwaysZero(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 5))
	for i := 0; i < 200; i++ {
		p, err := Place(randomSegment(r), geom.Pt(r.Float64()*100, r.Float64()*100), 30, 12)
		if err != nil {
			t.Fatalf("Place: %v", err)
		}
		if p.Rotation() != 0 {
			t.Fatalf("Rotation() = %v, want 0", p.Rotation())
		}
		if c := p.Centered(30, 12); c.Rotation() != 0 {
			t.Fatalf("Centered().Rotation() = %v, want 0", c.Rotation())
		}
	}
}

func TestPlaceIdempotent(t *testing.T) {
	seg := ArcSegment{StartAngle: 0.3, EndAngle: 1.7, InnerRadius: 42.5, OuterRadius: 99.25}
	center := geom.Pt(123.456, 789.012)

	p1, err1 := Place(seg, center, 37.5, 11)
	p2, err2 := Place(seg, center, 37.5, 11)
	if err1 != nil || err2 != nil {
		t.Fatalf("Place errors: %v, %v", err1, err2)
	}
	if math.Float64bits(p1.Anchor.X) != math.Float64bits(p2.Anchor.X) ||
		math.Float64bits(p1.Anchor.Y) != math.Float64bits(p2.Anchor.Y) || p1 != p2 {
		t.Errorf("Place not bit-identical: %+v vs %+v", p1, p2)
	}
}

func TestPlaceBoundaries(t *testing.T) {
	t.Run("zero-width segment", func(t *testing.T) {
		seg := ArcSegment{StartAngle: 1.25, EndAngle: 1.25, InnerRadius: 10, OuterRadius: 20}
		if got := MidAngle(seg); got != seg.StartAngle {
			t.Errorf("MidAngle = %v, want %v", got, seg.StartAngle)
		}
		if _, err := Place(seg, geom.Pt(0, 0), 10, 10); err != nil {
			t.Errorf("Place: %v", err)
		}
	})

	t.Run("zero-thickness ring", func(t *testing.T) {
		seg := ArcSegment{StartAngle: 0, EndAngle: 1, InnerRadius: 75, OuterRadius: 75}
		if got := MidRadius(seg); got != seg.InnerRadius {
			t.Errorf("MidRadius = %v, want %v", got, seg.InnerRadius)
		}
	})

	t.Run("zero-size text anchors at midpoint", func(t *testing.T) {
		seg := ArcSegment{StartAngle: 0, EndAngle: math.Pi, InnerRadius: 0, OuterRadius: 100}
		p, err := Place(seg, geom.Pt(10, 10), 0, 0)
		if err != nil {
			t.Fatalf("Place: %v", err)
		}
		want := Midpoint(seg, geom.Pt(10, 10))
		if p.Anchor != want {
			t.Errorf("Anchor = %v, want %v", p.Anchor, want)
		}
	})
}

func TestPlaceInvalidSegment(t *testing.T) {
	tests := []struct {
		name string
		seg  ArcSegment
	}{
		{"inner exceeds outer", ArcSegment{StartAngle: 0, EndAngle: 1, InnerRadius: 10, OuterRadius: 5}},
		{"start exceeds end", ArcSegment{StartAngle: 2, EndAngle: 1, InnerRadius: 0, OuterRadius: 5}},
		{"negative inner", ArcSegment{StartAngle: 0, EndAngle: 1, InnerRadius: -1, OuterRadius: 5}},
		{"nan angle", ArcSegment{StartAngle: math.NaN(), EndAngle: 1, InnerRadius: 0, OuterRadius: 5}},
		{"infinite radius", ArcSegment{StartAngle: 0, EndAngle: 1, InnerRadius: 0, OuterRadius: math.Inf(1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Place(tt.seg, geom.Pt(0, 0), 40, 10)
			if err == nil {
				t.Fatalf("Place(%+v) = %+v, want error", tt.seg, p)
			}
			if !stderrors.Is(err, ErrInvalidSegment) {
				t.Errorf("errors.Is(err, ErrInvalidSegment) = false for %v", err)
			}
			if !errors.Is(err, errors.ErrCodeInvalidSegment) {
				t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidSegment)
			}
			if p != (Placement{}) {
				t.Errorf("Place returned non-zero placement on error: %+v", p)
			}
		})
	}
}

func TestPlacementCentered(t *testing.T) {
	p := Placement{Anchor: geom.Pt(10, 20), HAlign: AlignLeft, VAlign: AlignTop}
	c := p.Centered(40, 10)
	if c.Anchor != geom.Pt(30, 25) || c.HAlign != AlignCenter || c.VAlign != AlignMiddle {
		t.Errorf("Centered = %+v, want anchor (30, 25) center/middle", c)
	}
	if c.Bounds(40, 10) != p.Bounds(40, 10) {
		t.Errorf("Centered bounds %v != top-left bounds %v", c.Bounds(40, 10), p.Bounds(40, 10))
	}

	right := Placement{Anchor: geom.Pt(50, 30), HAlign: AlignRight, VAlign: AlignBottom}
	if got := right.Bounds(40, 10); got != (geom.Rect{X: 10, Y: 20, W: 40, H: 10}) {
		t.Errorf("right/bottom Bounds = %+v", got)
	}
}

func TestAlignStrings(t *testing.T) {
	if AlignCenter.String() != "center" || AlignBottom.String() != "bottom" {
		t.Errorf("unexpected names: %s %s", AlignCenter, AlignBottom)
	}
	if !strings.HasPrefix(HAlign(9).String(), "HAlign(") {
		t.Errorf("unknown HAlign = %s", HAlign(9))
	}
}

func TestPlacer(t *testing.T) {
	measure := MeasureFunc(func(text string, font FontRef) (float64, float64) {
		return float64(len(text)) * font.Size * 0.5, font.Size
	})
	p := NewPlacer(measure, FontRef{Size: 10})

	items := []Labeled{
		{ID: "a", Text: "Java", Segment: ArcSegment{StartAngle: 0, EndAngle: 1, InnerRadius: 50, OuterRadius: 100}},
		{ID: "b", Text: "Go", Segment: ArcSegment{StartAngle: 1, EndAngle: 2, InnerRadius: 50, OuterRadius: 100}},
	}
	results, err := p.PlaceAll(geom.Pt(0, 0), items)
	if err != nil {
		t.Fatalf("PlaceAll: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}
	if results[0].ID != "a" || results[0].Width != 20 || results[0].Height != 10 {
		t.Errorf("results[0] = %+v", results[0])
	}
	want := Midpoint(items[1].Segment, geom.Pt(0, 0))
	if got := results[1].Bounds().Center(); !approx(got.X, want.X, 1e-9) || !approx(got.Y, want.Y, 1e-9) {
		t.Errorf("results[1] center = %v, want %v", got, want)
	}

	items = append(items, Labeled{ID: "bad", Text: "x", Segment: ArcSegment{StartAngle: 0, EndAngle: 1, InnerRadius: 10, OuterRadius: 5}})
	if _, err := p.PlaceAll(geom.Pt(0, 0), items); !stderrors.Is(err, ErrInvalidSegment) {
		t.Errorf("PlaceAll error = %v, want ErrInvalidSegment", err)
	} else if !strings.Contains(err.Error(), `"bad"`) {
		t.Errorf("error %q does not name the label", err)
	}
}

func TestPlaceConcurrent(t *testing.T) {
	seg := ArcSegment{StartAngle: 0, EndAngle: math.Pi / 2, InnerRadius: 100, OuterRadius: 200}
	want, _ := Place(seg, geom.Pt(0, 0), 40, 10)

	var wg sync.WaitGroup
	errs := make(chan Placement, 64)
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, _ := Place(seg, geom.Pt(0, 0), 40, 10)
			if p != want {
				errs <- p
			}
		}()
	}
	wg.Wait()
	close(errs)
	for p := range errs {
		t.Errorf("concurrent Place = %+v, want %+v", p, want)
	}
}
