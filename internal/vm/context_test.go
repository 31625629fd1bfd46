package vm

import "testing"

func TestContextSnapshots(t *testing.T) {
	var caps Captures
	c := NewContext([]rune("héllo"), &caps)

	r, c1, ok := c.Next()
	if !ok || r != 'h' || c1.Pos() != 1 {
		t.Fatalf("Next() = %q, %d, %v", r, c1.Pos(), ok)
	}
	if c.Pos() != 0 {
		t.Error("Next must not move the original snapshot")
	}

	saved := c1.Saved()
	g := c1.Mark()
	_, g, _ = g.Next()
	_, g, _ = g.Next()
	g = g.Commit()
	if caps.Len() != 1 || caps.Get(0) != "él" {
		t.Fatalf("captures = %v", caps.Groups())
	}
	g.Restore(saved)
	if caps.Len() != 0 {
		t.Errorf("captures after restore = %v", caps.Groups())
	}

	if c1.AtEnd() {
		t.Error("AtEnd() at 1")
	}
	if !c.At(5).AtEnd() {
		t.Error("AtEnd() at 5")
	}
}

func TestMarksAreCopiedOnWrite(t *testing.T) {
	c := NewContext([]rune("abc"), nil).Mark()
	_, c, _ = c.Next()
	a := c.Mark()
	b := c.Mark()
	_, b, _ = b.Next()
	if len(a.marks) != 2 || len(b.marks) != 2 {
		t.Fatalf("marks = %v, %v", a.marks, b.marks)
	}
	b = b.Commit()
	if len(a.marks) != 2 || a.marks[1] != 1 {
		t.Errorf("sibling snapshot changed: %v", a.marks)
	}
}

func TestCommitWithoutMarkPanics(t *testing.T) {
	defer func() {
		if _, ok := recover().(*InternalError); !ok {
			t.Error("expected *InternalError panic")
		}
	}()
	NewContext(nil, nil).Commit()
}

func TestNilCaptures(t *testing.T) {
	var caps *Captures
	caps.Append("x")
	caps.Truncate(0)
	caps.Reset()
	if caps.Len() != 0 || caps.Groups() != nil {
		t.Error("nil Captures must be empty")
	}
}

func TestCapturesTruncate(t *testing.T) {
	var caps Captures
	caps.Append("a")
	caps.Append("b")
	caps.Append("c")
	caps.Truncate(5)
	if caps.Len() != 3 {
		t.Fatalf("Truncate past the end changed Len to %d", caps.Len())
	}
	caps.Truncate(1)
	if caps.Len() != 1 || caps.Get(0) != "a" {
		t.Errorf("after Truncate(1) = %v", caps.Groups())
	}
}
