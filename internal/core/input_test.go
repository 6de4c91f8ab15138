package core

import "testing"

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	if !f.Empty() {
		t.Fatal("new frame should be empty")
	}

	f.Set(ActionLeft)
	f.Set(ActionLaunch)
	if !f.Has(ActionLeft) || !f.Has(ActionLaunch) {
		t.Error("set actions should be reported")
	}
	if f.Has(ActionRight) {
		t.Error("unset action reported")
	}

	// None and out-of-range actions are ignored
	f.Set(ActionNone)
	f.Set(Action(99))
	if f.Has(ActionNone) || f.Has(Action(99)) {
		t.Error("invalid actions must never be set")
	}

	f.Clear()
	if !f.Empty() {
		t.Error("Clear should drop every action")
	}

	g := FrameOf(ActionPause, ActionBack)
	if !g.Has(ActionPause) || !g.Has(ActionBack) {
		t.Error("FrameOf should set all given actions")
	}
}

func TestActionString(t *testing.T) {
	if ActionLaunch.String() != "Launch" {
		t.Errorf("ActionLaunch.String() = %q", ActionLaunch.String())
	}
	if Action(-1).String() != "Unknown" {
		t.Errorf("Action(-1).String() = %q", Action(-1).String())
	}
}
