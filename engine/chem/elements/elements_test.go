package elements

import "testing"

func TestLookup(t *testing.T) {
	tests := []struct {
		id     int
		symbol string
		radius float32
	}{
		{1, "H", 0.31},
		{6, "C", 0.76},
		{8, "O", 0.66},
		{26, "Fe", 1.32},
		{86, "Rn", 1.50},
	}
	for _, tt := range tests {
		e, ok := Lookup(tt.id)
		if !ok {
			t.Errorf("Lookup(%d) not found", tt.id)
			continue
		}
		if e.Number != tt.id || e.Symbol != tt.symbol || e.Radius != tt.radius {
			t.Errorf("Lookup(%d) = %+v, want %s radius %v", tt.id, e, tt.symbol, tt.radius)
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	for _, id := range []int{-1, 0, Count() + 1, 1000} {
		e, ok := Lookup(id)
		if ok {
			t.Errorf("Lookup(%d) ok = true, want false", id)
		}
		if e != Unknown {
			t.Errorf("Lookup(%d) = %+v, want Unknown", id, e)
		}
	}
}

func TestTableIndexMatchesNumber(t *testing.T) {
	for i := 1; i <= Count(); i++ {
		e, _ := Lookup(i)
		if e.Number != i {
			t.Fatalf("table[%d].Number = %d", i, e.Number)
		}
		if e.Radius <= 0 {
			t.Errorf("%s radius = %v, want > 0", e.Symbol, e.Radius)
		}
	}
}

func TestBySymbol(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"C", 6, true},
		{"cl", 17, true},
		{"FE", 26, true},
		{" Na ", 11, true},
		{"Xx", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := BySymbol(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("BySymbol(%q) = %d, %v, want %d, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
