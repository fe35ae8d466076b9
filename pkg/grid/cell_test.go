package grid

import "testing"

func TestCellRoundTrip(t *testing.T) {
	for material := 0; material < 256; material++ {
		for flags := 0; flags < 256; flags++ {
			c := Make(uint8(material), uint8(flags))
			if got := c.Material(); got != uint8(material) {
				t.Fatalf("Make(%d,%d).Material() = %d", material, flags, got)
			}
			if got := c.Flags(); got != uint8(flags) {
				t.Fatalf("Make(%d,%d).Flags() = %d", material, flags, got)
			}
		}
	}
}

func TestCellFlagHelpers(t *testing.T) {
	c := Make(7, FlagMirrored|FlagWet)
	if !c.HasFlags(FlagMirrored) {
		t.Fatal("mirrored flag should be set")
	}
	if !c.HasFlags(FlagMirrored | FlagWet) {
		t.Fatal("combined mask should be set")
	}
	if c.HasFlags(FlagSettled) {
		t.Fatal("settled flag should not be set")
	}

	c = c.WithFlags(FlagSettled)
	if c.Material() != 7 {
		t.Fatalf("WithFlags changed material to %d", c.Material())
	}
	if c.Flags() != FlagSettled {
		t.Fatalf("WithFlags left flags %#x", c.Flags())
	}
}

func TestCellEmpty(t *testing.T) {
	if !MakeMaterial(0).Empty() {
		t.Fatal("material 0 must read as empty")
	}
	if Make(0, FlagWet).Empty() != true {
		t.Fatal("flags alone do not make a cell non-empty")
	}
	if MakeMaterial(1).Empty() {
		t.Fatal("material 1 must not read as empty")
	}
}
