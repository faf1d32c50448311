package money

import "testing"

func TestRound2(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{10.004, 10.0},
		{10.005, 10.01},
		{10.999, 11.0},
		{0, 0},
	}
	for _, tc := range cases {
		if got := Round2(tc.in); got != tc.want {
			t.Fatalf("Round2(%v) = %v, esperaba %v", tc.in, got, tc.want)
		}
	}
}

func TestFloatDriftDoesNotAccumulate(t *testing.T) {
	// 0.1+0.2 es el clásico que en float64 da 0.30000000000000004.
	if got := Add(0.1, 0.2); got != 0.3 {
		t.Fatalf("Add(0.1, 0.2) = %v", got)
	}
	if got := Sum(0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1); got != 1.0 {
		t.Fatalf("Sum de diez 0.1 = %v", got)
	}
}

func TestMul(t *testing.T) {
	if got := Mul(45.5, 3); got != 136.5 {
		t.Fatalf("Mul(45.5, 3) = %v", got)
	}
	if got := Mul(50, 0); got != 0 {
		t.Fatalf("Mul(50, 0) = %v", got)
	}
}

func TestEqualWithin(t *testing.T) {
	if !EqualWithin(200.00, 200.01) {
		t.Fatalf("un centavo de diferencia está dentro de la tolerancia")
	}
	if !EqualWithin(200.01, 200.00) {
		t.Fatalf("la tolerancia es simétrica")
	}
	if EqualWithin(200.00, 200.02) {
		t.Fatalf("dos centavos ya no cuadran")
	}
}

func TestLess(t *testing.T) {
	if !Less(90, 100) {
		t.Fatalf("90 < 100")
	}
	if Less(100, 100) {
		t.Fatalf("Less es estricto")
	}
}
