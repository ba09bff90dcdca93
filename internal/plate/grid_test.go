package plate

import "testing"

func TestPlanBasic(t *testing.T) {
	cfg := Config{WidthMM: 100, HeightMM: 100, SpacingMM: 10}
	g := Plan(cfg)
	if g.Cols != 10 || g.Rows != 10 {
		t.Fatalf("grid = %dx%d, want 10x10", g.Cols, g.Rows)
	}
	if g.Pitch != 10 {
		t.Errorf("pitch = %g, want 10", g.Pitch)
	}
	if g.CellCount() != 100 {
		t.Errorf("cell count = %d, want 100", g.CellCount())
	}
}

func TestPlanWithMargin(t *testing.T) {
	cfg := Config{WidthMM: 100, HeightMM: 80, SpacingMM: 5, MarginMM: 10}
	g := Plan(cfg)
	// Effective 80x60 at 5mm pitch.
	if g.Cols != 16 || g.Rows != 12 {
		t.Fatalf("grid = %dx%d, want 16x12", g.Cols, g.Rows)
	}
}

func TestPlanDegeneratePlate(t *testing.T) {
	// Margin consumes the whole plate: 2*300 > 500.
	cfg := Config{WidthMM: 500, HeightMM: 500, SpacingMM: 10, MarginMM: 300}
	g := Plan(cfg)
	if !g.Empty() {
		t.Fatalf("expected empty grid, got %dx%d", g.Cols, g.Rows)
	}
	if g.Cols != 0 || g.Rows != 0 {
		t.Errorf("degenerate grid = %dx%d, want 0x0", g.Cols, g.Rows)
	}
}

func TestPlanSpacingMonotonicity(t *testing.T) {
	cfg := Config{WidthMM: 237, HeightMM: 173, SpacingMM: 1, MarginMM: 7}
	prev := Plan(cfg)
	for s := 1.5; s <= 50; s += 0.5 {
		cfg.SpacingMM = s
		g := Plan(cfg)
		if g.Cols > prev.Cols || g.Rows > prev.Rows {
			t.Fatalf("spacing %g: grid %dx%d grew from %dx%d", s, g.Cols, g.Rows, prev.Cols, prev.Rows)
		}
		prev = g
	}
}

func TestCellCenter(t *testing.T) {
	cfg := Config{WidthMM: 100, HeightMM: 100, SpacingMM: 10}
	tests := []struct {
		col, row int
		x, y     float64
	}{
		{0, 0, 5, 5},
		{1, 0, 15, 5},
		{9, 9, 95, 95},
	}
	for _, tt := range tests {
		x, y := CellCenter(cfg, tt.col, tt.row)
		if x != tt.x || y != tt.y {
			t.Errorf("CellCenter(%d,%d) = (%g,%g), want (%g,%g)", tt.col, tt.row, x, y, tt.x, tt.y)
		}
	}

	// Margin shifts every center.
	cfg.MarginMM = 10
	x, y := CellCenter(cfg, 0, 0)
	if x != 15 || y != 15 {
		t.Errorf("CellCenter with margin = (%g,%g), want (15,15)", x, y)
	}
}
