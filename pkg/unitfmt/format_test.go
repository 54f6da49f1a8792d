package unitfmt

import "testing"

func TestMillimetresTrimsTrailingZeros(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{16, "16 mm"},
		{26.5, "26.5 mm"},
		{40.0, "40 mm"},
	}
	for _, c := range cases {
		if got := Millimetres(c.in); got != c.want {
			t.Errorf("Millimetres(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFixedPlaceFormats(t *testing.T) {
	if got := Area(804); got != "804.0 mm²" {
		t.Errorf("Area(804) = %q", got)
	}
	if got := Weight(1.579); got != "1.579 kg/m" {
		t.Errorf("Weight(1.579) = %q", got)
	}
	if got := Load(568.4); got != "568 kN" {
		t.Errorf("Load(568.4) = %q", got)
	}
}
