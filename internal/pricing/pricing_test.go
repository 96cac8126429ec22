package pricing

import "testing"

func TestQuote_ReplaceNotAdd(t *testing.T) {
	t.Parallel()

	q := NewQuote(1000)
	q.Select(CategoryTier, 500)
	if got := q.Total(); got != 1500 {
		t.Fatalf("expected 1500, got %d", got)
	}

	// Switching tiers must change the total by exactly (new - old).
	q.Select(CategoryTier, 800)
	if got := q.Total(); got != 1800 {
		t.Errorf("expected 1800 after replacing tier, got %d", got)
	}

	// Re-selecting the same option must not double count.
	q.Select(CategoryTier, 800)
	if got := q.Total(); got != 1800 {
		t.Errorf("expected 1800 after re-selecting tier, got %d", got)
	}
}

func TestQuote_ClearRemovesSurcharge(t *testing.T) {
	t.Parallel()

	q := NewQuote(1000)
	q.Select(CategoryRoomSharing, 2000)
	q.Clear(CategoryRoomSharing)
	if got := q.Total(); got != 1000 {
		t.Errorf("expected 1000 after clearing, got %d", got)
	}
}

func TestQuote_OrderIndependent(t *testing.T) {
	t.Parallel()

	a := NewQuote(1000)
	a.Select(CategoryLocation, 500)
	a.Select(CategoryBed, 3000)

	b := NewQuote(1000)
	b.Select(CategoryBed, 3000)
	b.Select(CategoryLocation, 500)

	if a.Total() != b.Total() {
		t.Errorf("totals differ by selection order: %d vs %d", a.Total(), b.Total())
	}
}

func TestCompute_TypicalSelection(t *testing.T) {
	t.Parallel()

	// Base 1000, location 500, no tiers configured, default room
	// sharing, bed surcharge 3000.
	got := Compute(1000, Selections{
		Location: 500,
		Tier:     0,
		Bed:      3000,
	})
	if got != 4500 {
		t.Errorf("expected 4500, got %d", got)
	}
}

func TestCompute_UnconfiguredCategoriesContributeNothing(t *testing.T) {
	t.Parallel()

	if got := Compute(2500, Selections{}); got != 2500 {
		t.Errorf("expected 2500, got %d", got)
	}
}

func TestParseAmount(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want int64
	}{
		{"1500", 1500},
		{" 1500 ", 1500},
		{"1,500", 1500},
		{"", 0},
		{"abc", 0},
		{"12.50", 0},
		{"-300", 0},
	}

	for _, c := range cases {
		if got := ParseAmount(c.in); got != c.want {
			t.Errorf("ParseAmount(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestQuote_NegativeInputsClamped(t *testing.T) {
	t.Parallel()

	q := NewQuote(-100)
	q.Select(CategoryTier, -500)
	if got := q.Total(); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
}
