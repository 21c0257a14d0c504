package ui

import (
	"errors"
	"testing"
)

func TestEndBalanced(t *testing.T) {
	c := newTestContext()
	c.Begin(300, 200)
	if c.BeginWindow("W", NewRect(10, 10, 100, 100), 0) {
		c.LayoutRow([]float32{-1}, 20)
		c.Label("inside")
		c.EndWindow()
	}
	if _, err := c.End(); err != nil {
		t.Fatalf("End() error = %v, want nil", err)
	}
}

func TestEndUnbalancedWindow(t *testing.T) {
	c := newTestContext()
	c.Begin(300, 200)
	c.BeginWindow("W", NewRect(10, 10, 100, 100), 0)
	// missing EndWindow
	if _, err := c.End(); !errors.Is(err, ErrUnbalancedContainers) {
		t.Fatalf("End() error = %v, want ErrUnbalancedContainers", err)
	}

	// The error is reported once and the context recovers.
	c.Begin(300, 200)
	if _, err := c.End(); err != nil {
		t.Fatalf("End() after recovery error = %v, want nil", err)
	}
}

func TestEndUnbalancedID(t *testing.T) {
	c := newTestContext()
	c.Begin(300, 200)
	c.PushID("scope")
	if _, err := c.End(); !errors.Is(err, ErrUnbalancedContainers) {
		t.Fatalf("End() error = %v, want ErrUnbalancedContainers", err)
	}
}

func TestIDStackOverflow(t *testing.T) {
	c := New(Config{IDDepth: 4})
	c.Begin(300, 200)
	for i := 0; i < 5; i++ {
		c.PushIDInt(i)
	}
	for i := 0; i < 4; i++ {
		c.PopID()
	}
	if _, err := c.End(); !errors.Is(err, ErrStackOverflow) {
		t.Fatalf("End() error = %v, want ErrStackOverflow", err)
	}
}

func TestContainerStackOverflow(t *testing.T) {
	c := New(Config{ContainerDepth: 4})
	c.Style.Padding = 0
	c.Style.Spacing = 0
	c.Begin(300, 200)
	for i := 0; i < 8; i++ {
		c.BeginColumn()
	}
	for i := 0; i < 8; i++ {
		c.EndColumn()
	}
	if _, err := c.End(); !errors.Is(err, ErrStackOverflow) {
		t.Fatalf("End() error = %v, want ErrStackOverflow", err)
	}
}

func TestEndWindowWithoutBegin(t *testing.T) {
	// More pops than pushes must surface as a frame error, not a panic.
	c := newTestContext()
	c.Begin(300, 200)
	c.EndWindow()
	c.EndWindow()
	if _, err := c.End(); !errors.Is(err, ErrUnbalancedContainers) {
		t.Fatalf("End() error = %v, want ErrUnbalancedContainers", err)
	}

	c.Begin(300, 200)
	if _, err := c.End(); err != nil {
		t.Fatalf("End() after recovery error = %v, want nil", err)
	}
}

func TestCommandsGroupedByZOrder(t *testing.T) {
	c := newTestContext()

	// textIndex returns the position of the window's title text in the
	// finalized command list.
	textIndex := func(f Frame, s string) int {
		idx := -1
		i := 0
		f.Each(func(cmd *Command) {
			if cmd.Kind == CommandText && cmd.Text == s && idx < 0 {
				idx = i
			}
			i++
		})
		return idx
	}

	frame := func() Frame {
		c.Begin(300, 200)
		if c.BeginWindow("alpha", NewRect(0, 0, 100, 100), 0) {
			c.EndWindow()
		}
		if c.BeginWindow("beta", NewRect(50, 50, 100, 100), 0) {
			c.EndWindow()
		}
		f, err := c.End()
		if err != nil {
			t.Fatalf("End() error = %v", err)
		}
		return f
	}

	f := frame()
	ia, ib := textIndex(f, "alpha"), textIndex(f, "beta")
	if ia < 0 || ib < 0 {
		t.Fatal("missing window title commands")
	}
	if ia > ib {
		t.Errorf("alpha (declared first) drawn after beta: %d > %d", ia, ib)
	}

	// Clicking alpha raises it above beta.
	c.InputMouseDown(10, 10, MouseLeft)
	frame()
	c.InputMouseUp(10, 10, MouseLeft)
	f = frame()
	ia, ib = textIndex(f, "alpha"), textIndex(f, "beta")
	if ia < ib {
		t.Errorf("alpha not raised above beta after click: %d < %d", ia, ib)
	}
}

func TestFocusDroppedWhenWidgetVanishes(t *testing.T) {
	c := newTestContext()
	buf := ""

	frame := func(declare bool) {
		c.Begin(300, 200)
		if declare {
			c.LayoutRow([]float32{200}, 20)
			c.Textbox("name", &buf)
		}
		c.End()
	}

	frame(true)
	c.InputMouseDown(50, 10, MouseLeft)
	frame(true)
	c.InputMouseUp(50, 10, MouseLeft)
	frame(true)
	if c.Focus() == 0 {
		t.Fatal("textbox did not acquire focus")
	}

	// The widget is not redeclared: its focus is stale and dropped.
	frame(false)
	if c.Focus() != 0 {
		t.Error("focus retained by a widget that was not declared")
	}
}

func TestFrameStorageReused(t *testing.T) {
	c := newTestContext()
	c.Begin(300, 200)
	c.LayoutRow([]float32{-1}, 20)
	c.Label("one")
	f1, _ := c.End()
	n := f1.Len()
	if n == 0 {
		t.Fatal("empty frame")
	}

	c.Begin(300, 200)
	f2, _ := c.End()
	if f2.Len() != 0 {
		t.Errorf("second frame has %d commands, want 0", f2.Len())
	}
}
