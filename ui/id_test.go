package ui

import "testing"

func TestIdentityStableAcrossFrames(t *testing.T) {
	c := newTestContext()

	frame := func() []ID {
		c.Begin(300, 200)
		ids := []ID{
			c.widgetID("save"),
			c.widgetID("load"),
		}
		c.PushID("sidebar")
		ids = append(ids, c.widgetID("save"))
		c.PopID()
		c.End()
		return ids
	}

	first := frame()
	second := frame()
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("id %d changed across frames: %v != %v", i, first[i], second[i])
		}
	}
}

func TestIdentityDistinctLabels(t *testing.T) {
	c := newTestContext()
	c.Begin(300, 200)
	a := c.widgetID("ok")
	b := c.widgetID("cancel")
	c.End()
	if a == b {
		t.Errorf("distinct labels produced the same id %v", a)
	}
}

func TestIdentitySiblingCounter(t *testing.T) {
	// Identical labels in the same scope auto-disambiguate
	// deterministically, so neither aliases the other's state.
	c := newTestContext()

	frame := func() (ID, ID) {
		c.Begin(300, 200)
		a := c.widgetID("ok")
		b := c.widgetID("ok")
		c.End()
		return a, b
	}

	a1, b1 := frame()
	if a1 == b1 {
		t.Fatalf("sibling widgets share id %v", a1)
	}
	a2, b2 := frame()
	if a1 != a2 || b1 != b2 {
		t.Errorf("sibling ids unstable across frames: (%v,%v) != (%v,%v)", a1, b1, a2, b2)
	}
	if c.Warnings() != 0 {
		t.Errorf("sibling disambiguation raised %d warnings, want 0", c.Warnings())
	}
}

func TestIdentityScopedByPush(t *testing.T) {
	c := newTestContext()
	c.Begin(300, 200)
	plain := c.widgetID("ok")
	c.PushID("dialog")
	scoped := c.widgetID("ok")
	c.PopID()
	c.PushIDInt(7)
	indexed := c.widgetID("ok")
	c.PopID()
	c.End()

	if plain == scoped || plain == indexed || scoped == indexed {
		t.Errorf("scoped ids not distinct: %v %v %v", plain, scoped, indexed)
	}
}

func TestIdentityScopedByContainer(t *testing.T) {
	// The same label in two windows must resolve to two identities.
	c := newTestContext()
	var inA, inB ID
	c.Begin(300, 200)
	if c.BeginWindow("A", NewRect(0, 0, 100, 100), 0) {
		inA = c.widgetID("ok")
		c.EndWindow()
	}
	if c.BeginWindow("B", NewRect(100, 0, 100, 100), 0) {
		inB = c.widgetID("ok")
		c.EndWindow()
	}
	c.End()

	if inA == inB {
		t.Errorf("same label in different windows shares id %v", inA)
	}
}

func TestNoSilentStateAliasing(t *testing.T) {
	// Two buttons with the same label: clicking the second must not
	// activate the first.
	c := newTestContext()

	frame := func() (bool, bool) {
		c.Begin(300, 200)
		c.LayoutRow([]float32{100}, 20)
		first := c.Button("ok")  // rect (0,0,100,20)
		second := c.Button("ok") // rect (0,20,100,20)
		_, err := c.End()
		if err != nil {
			t.Fatalf("End() error = %v", err)
		}
		return first, second
	}

	frame() // establish hover root
	c.InputMouseDown(50, 30, MouseLeft)
	frame()
	c.InputMouseUp(50, 30, MouseLeft)
	first, second := frame()

	if first {
		t.Error("first button activated by a click on the second")
	}
	if !second {
		t.Error("second button not activated")
	}
}
