package ui

import "testing"

func TestWindowRectPersists(t *testing.T) {
	c := newTestContext()

	frame := func(initial Rect) Rect {
		c.Begin(300, 200)
		var got Rect
		if c.BeginWindow("W", initial, 0) {
			got = c.currentContainer().Rect
			c.EndWindow()
		}
		c.End()
		return got
	}

	first := frame(NewRect(10, 20, 100, 80))
	if first != NewRect(10, 20, 100, 80) {
		t.Fatalf("initial rect = %+v", first)
	}
	// The rect argument is only the initial placement.
	second := frame(NewRect(90, 90, 50, 50))
	if second != first {
		t.Errorf("window rect did not persist: %+v != %+v", second, first)
	}
}

func TestWindowTitleDrag(t *testing.T) {
	c := newTestContext()

	frame := func() Rect {
		c.Begin(300, 200)
		var got Rect
		if c.BeginWindow("W", NewRect(0, 0, 100, 100), 0) {
			got = c.currentContainer().Rect
			c.EndWindow()
		}
		c.End()
		return got
	}

	frame()
	c.InputMouseDown(50, 10, MouseLeft) // inside the title bar
	frame()
	c.InputMouseMove(70, 30)
	frame()
	c.InputMouseUp(70, 30, MouseLeft)
	got := frame()

	if got.X != 20 || got.Y != 20 {
		t.Errorf("window origin after drag = (%v,%v), want (20,20)", got.X, got.Y)
	}
}

func TestWindowCloseAndReopen(t *testing.T) {
	c := newTestContext()
	style := c.Style

	frame := func() bool {
		c.Begin(300, 200)
		open := c.BeginWindow("W", NewRect(0, 0, 100, 100), 0)
		if open {
			c.EndWindow()
		}
		c.End()
		return open
	}

	frame()
	// Click the close box: the square at the right end of the title bar.
	cx := 100 - style.TitleHeight/2
	cy := style.TitleHeight / 2
	c.InputMouseMove(cx, cy)
	frame()
	c.InputMouseDown(cx, cy, MouseLeft)
	frame()
	c.InputMouseUp(cx, cy, MouseLeft)
	frame()
	if frame() {
		t.Fatal("window still open after clicking its close box")
	}

	c.OpenWindow("W")
	if !frame() {
		t.Error("OpenWindow did not reopen the window")
	}
}

func TestWindowScrollPersists(t *testing.T) {
	c := newTestContext()

	frame := func() *Container {
		c.Begin(300, 200)
		var cnt *Container
		if c.BeginWindow("W", NewRect(0, 0, 100, 100), 0) {
			cnt = c.currentContainer()
			c.LayoutRow([]float32{-1}, 20)
			for i := 0; i < 20; i++ {
				c.PushIDInt(i)
				c.Label("row")
				c.PopID()
			}
			c.EndWindow()
		}
		c.End()
		return cnt
	}

	frame() // measure content
	frame() // scrollbar active now
	c.InputMouseMove(50, 50)
	c.InputScroll(0, 30)
	cnt := frame()
	// Wheel scroll is applied at End; the clamped value is visible
	// after one more frame.
	cnt = frame()
	if cnt.Scroll[1] != 30 {
		t.Errorf("scroll offset = %v, want 30", cnt.Scroll[1])
	}

	// Scroll cannot exceed content height minus body height.
	c.InputScroll(0, 100000)
	frame()
	cnt = frame()
	max := cnt.ContentSize[1] - cnt.Body.H
	if cnt.Scroll[1] != max {
		t.Errorf("scroll offset = %v, want clamp at %v", cnt.Scroll[1], max)
	}
}

func TestPanelClipsContent(t *testing.T) {
	c := newTestContext()
	c.Begin(300, 200)
	c.LayoutRow([]float32{100}, 50)
	c.BeginPanel("p")
	c.LayoutRow([]float32{400}, 20) // wider than the panel
	c.Button("wide")
	c.EndPanel()
	frame, err := c.End()
	if err != nil {
		t.Fatalf("End() error = %v", err)
	}

	panelBody := NewRect(0, 0, 100, 50)
	frame.Each(func(cmd *Command) {
		if cmd.Kind == CommandRect && !panelBody.ContainsRect(cmd.Rect) {
			t.Errorf("rect command %+v escapes the panel body", cmd.Rect)
		}
	})
}

func TestOccludedWindowIgnoresClicks(t *testing.T) {
	// Two overlapping windows: a click lands only in the top one.
	c := newTestContext()
	var topClicked, bottomClicked bool

	frame := func() {
		c.Begin(300, 200)
		if c.BeginWindow("bottom", NewRect(0, 0, 120, 120), WindowNoTitle) {
			c.LayoutRow([]float32{-1}, 110)
			bottomClicked = c.Button("b")
			c.EndWindow()
		}
		if c.BeginWindow("top", NewRect(0, 0, 120, 120), WindowNoTitle) {
			c.LayoutRow([]float32{-1}, 110)
			topClicked = c.Button("t")
			c.EndWindow()
		}
		c.End()
	}

	frame()
	c.InputMouseDown(60, 60, MouseLeft)
	frame()
	c.InputMouseUp(60, 60, MouseLeft)
	frame()

	if bottomClicked {
		t.Error("occluded window received the click")
	}
	if !topClicked {
		t.Error("top window did not receive the click")
	}
}
