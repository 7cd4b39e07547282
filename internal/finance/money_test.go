package finance

import (
	"math"
	"testing"
)

func TestRoundHasAtMostTwoDecimals(t *testing.T) {
	values := []float64{0, 0.1, 0.005, 1.005, 10.999, 149.985, 33.333333, 1234.56789, 0.004999}
	for _, x := range values {
		rounded := Round(x)
		cents := rounded * 100
		if math.Abs(cents-math.Round(cents)) > 1e-9 {
			t.Errorf("Round(%v) = %v, more than two decimals", x, rounded)
		}
		if math.Abs(rounded-x) >= 0.005+1e-9 {
			t.Errorf("Round(%v) = %v, drifted by %v", x, rounded, math.Abs(rounded-x))
		}
	}
}

func TestRoundIsIdempotent(t *testing.T) {
	for _, x := range []float64{0.004999, 12.345, 99.999, 50.004999} {
		once := Round(x)
		if twice := Round(once); twice != once {
			t.Errorf("Round(Round(%v)): %v != %v", x, twice, once)
		}
	}
}

func TestPointsDiscount(t *testing.T) {
	if got := PointsDiscount(100); got != 5.00 {
		t.Errorf("PointsDiscount(100) = %v, want 5.00", got)
	}
	if got := PointsDiscount(0); got != 0 {
		t.Errorf("PointsDiscount(0) = %v, want 0", got)
	}
}

func TestFee(t *testing.T) {
	if got := Fee(200, 12.5, "flat"); got != 12.5 {
		t.Errorf("flat fee = %v, want 12.5", got)
	}
	if got := Fee(200, 10, "percentage"); got != 20.00 {
		t.Errorf("percentage fee = %v, want 20.00", got)
	}
}

func TestFinalTotalNeverNegative(t *testing.T) {
	cases := []struct {
		subtotal, fee, cover, discount float64
	}{
		{100, 10, 5, 0},
		{100, 10, 5, 115},
		{100, 10, 5, 10000},
		{0, 0, 0, 50},
	}
	for _, c := range cases {
		if got := FinalTotal(c.subtotal, c.fee, c.cover, c.discount); got < 0 {
			t.Errorf("FinalTotal(%v, %v, %v, %v) = %v, want >= 0", c.subtotal, c.fee, c.cover, c.discount, got)
		}
	}
	if got := FinalTotal(100, 10, 5, 15); got != 100.00 {
		t.Errorf("FinalTotal = %v, want 100.00", got)
	}
}

func TestChangeToleranceBand(t *testing.T) {
	if got := Change(50.01, 50.00); got != 0 {
		t.Errorf("Change(50.01, 50.00) = %v, want 0 (sub-cent is exact payment)", got)
	}
	if got := Change(50.00, 50.00); got != 0 {
		t.Errorf("Change(50.00, 50.00) = %v, want 0", got)
	}
	if got := Change(60.00, 50.00); got != 10.00 {
		t.Errorf("Change(60.00, 50.00) = %v, want 10.00", got)
	}
}

func TestOrderTotalInvariant(t *testing.T) {
	if got := OrderTotal(80.00, 8.00, 10.00); got != 78.00 {
		t.Errorf("OrderTotal = %v, want 78.00", got)
	}
	if got := OrderTotal(10.00, 0, 99.00); got != 0 {
		t.Errorf("OrderTotal with oversized discount = %v, want 0", got)
	}
}

func TestPointsEarned(t *testing.T) {
	if got := PointsEarned(78.90); got != 78 {
		t.Errorf("PointsEarned(78.90) = %v, want 78", got)
	}
	if got := PointsEarned(0); got != 0 {
		t.Errorf("PointsEarned(0) = %v, want 0", got)
	}
	if got := PointsEarned(-5); got != 0 {
		t.Errorf("PointsEarned(-5) = %v, want 0", got)
	}
}

func TestMaskPhone(t *testing.T) {
	cases := map[string]string{
		"11987654321":    "(11) 98765-4321",
		"1187654321":     "(11) 8765-4321",
		"(11)98765-4321": "(11) 98765-4321",
		"123":            "123",
		"":               "",
	}
	for input, want := range cases {
		if got := MaskPhone(input); got != want {
			t.Errorf("MaskPhone(%q) = %q, want %q", input, got, want)
		}
	}
}
