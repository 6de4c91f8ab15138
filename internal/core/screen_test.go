package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 || s.Height() != 24 {
		t.Fatalf("size = %dx%d, expected 80x24", s.Width(), s.Height())
	}
	for y := 0; y < s.Height(); y++ {
		if s.Row(y) != strings.Repeat(" ", 80) {
			t.Fatalf("row %d is not blank: %q", y, s.Row(y))
		}
	}
}

func TestScreenSetColored(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColored(5, 5, '█', ColorRed)
	cell := s.GetCell(5, 5)
	if cell.Rune != '█' || cell.Color != ColorRed {
		t.Errorf("GetCell(5, 5) = %+v, expected red block", cell)
	}

	// Out of bounds writes are dropped
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, 100, 'A')

	if s.Get(-1, 0) != ' ' || s.GetCell(100, 0).Color != ColorDefault {
		t.Error("out of bounds reads should return a blank cell")
	}
}

func TestScreenClearAndResize(t *testing.T) {
	s := NewScreen(4, 3)
	s.DrawRect(NewRect(0, 0, 4, 3), '#', ColorGray)
	s.Clear()
	if s.String() != "    \n    \n    " {
		t.Errorf("after Clear got %q", s.String())
	}

	s.Resize(6, 2)
	if s.Width() != 6 || s.Height() != 2 {
		t.Errorf("Resize: got %dx%d", s.Width(), s.Height())
	}
	s.Resize(-3, 2)
	if s.Width() != 0 {
		t.Errorf("negative width should clamp to 0, got %d", s.Width())
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(12, 2)

	s.DrawText(0, 0, "Wave n°3")
	if got := s.Row(0); got != "Wave n°3    " {
		t.Errorf("Row(0) = %q", got)
	}

	s.DrawTextCentered(1, "lose", ColorBrightRed)
	if got := s.Row(1); got != "    lose    " {
		t.Errorf("centered row = %q", got)
	}
	if s.GetCell(4, 1).Color != ColorBrightRed {
		t.Error("centered text should carry its color")
	}

	// Clipped at the right edge
	s.DrawText(10, 0, "xyz")
	if got := s.Row(0); got[len(got)-2:] != "xy" {
		t.Errorf("clipped row = %q", got)
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(4, 3)
	s.DrawBox(NewRect(0, 0, 4, 3), ColorWhite)

	expected := "┌──┐\n│  │\n└──┘"
	if s.String() != expected {
		t.Errorf("DrawBox:\n%s\nexpected:\n%s", s.String(), expected)
	}
}
