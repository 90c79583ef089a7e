package mathx

import "testing"

func TestFloorDiv(t *testing.T) {
	tests := []struct{ a, b, want int }{
		{0, 16, 0},
		{15, 16, 0},
		{16, 16, 1},
		{-1, 16, -1},
		{-16, 16, -1},
		{-17, 16, -2},
	}
	for _, tt := range tests {
		if got := FloorDiv(tt.a, tt.b); got != tt.want {
			t.Errorf("FloorDiv(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestMod(t *testing.T) {
	tests := []struct{ a, b, want int }{
		{5, 16, 5},
		{-1, 16, 15},
		{-16, 16, 0},
		{33, 16, 1},
	}
	for _, tt := range tests {
		if got := Mod(tt.a, tt.b); got != tt.want {
			t.Errorf("Mod(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestHash2Stable(t *testing.T) {
	if Hash2(42, 3, -7) != Hash2(42, 3, -7) {
		t.Fatal("Hash2 not deterministic")
	}
	if Hash2(42, 3, -7) == Hash2(43, 3, -7) {
		t.Error("Hash2 should depend on seed")
	}
	if Hash2(42, 3, -7) == Hash2(42, -7, 3) {
		t.Error("Hash2 should not be symmetric in x and z")
	}
}

func TestUnit2Range(t *testing.T) {
	for i := 0; i < 1000; i++ {
		u, v := Unit2(Hash2(int64(i), i*3, -i))
		if u < 0 || u > 1 || v < 0 || v > 1 {
			t.Fatalf("Unit2 = (%f, %f), out of [0,1]", u, v)
		}
	}
}
