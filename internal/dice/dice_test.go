package dice

import "testing"

func TestBetweenBounds(t *testing.T) {
	r := NewSeeded(1)
	for i := 0; i < 1000; i++ {
		got := Between(r, 3, 9)
		if got < 3 || got > 9 {
			t.Fatalf("Between(3, 9) = %d, out of range", got)
		}
	}
}

func TestBetweenDegenerateRanges(t *testing.T) {
	r := NewSeeded(1)
	if got := Between(r, 5, 5); got != 5 {
		t.Errorf("Between(5, 5) = %d, want 5", got)
	}
	if got := Between(r, 7, 2); got != 7 {
		t.Errorf("Between(7, 2) = %d, want 7 (inverted range collapses to min)", got)
	}
}

func TestChanceEdges(t *testing.T) {
	r := NewSeeded(1)
	if Chance(r, 0) {
		t.Error("Chance(0) must never succeed")
	}
	if Chance(r, -0.5) {
		t.Error("negative chance must never succeed")
	}
	if !Chance(r, 1) {
		t.Error("Chance(1) must always succeed")
	}
	if !Chance(r, 1.5) {
		t.Error("chance above 1 must always succeed")
	}
}

func TestPercent(t *testing.T) {
	r := NewSeeded(1)
	if Percent(r, 0) {
		t.Error("Percent(0) must never succeed")
	}
	if !Percent(r, 100) {
		t.Error("Percent(100) must always succeed")
	}
}

func TestSeededReproducible(t *testing.T) {
	a, b := NewSeeded(42), NewSeeded(42)
	for i := 0; i < 100; i++ {
		if a.Intn(1000) != b.Intn(1000) {
			t.Fatal("same seed diverged")
		}
	}
}
