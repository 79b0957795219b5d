package ui

import "testing"

func TestEventListFiresInRegistrationOrder(t *testing.T) {
	var l EventList
	var order []int

	l.Add(func(*Element) { order = append(order, 1) })
	l.Add(func(*Element) { order = append(order, 2) })
	l.Add(func(*Element) { order = append(order, 3) })

	l.Fire(nil)

	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("callbacks ran in order %v", order)
	}
}

func TestEventListRemove(t *testing.T) {
	var l EventList
	ran := false

	id := l.Add(func(*Element) { ran = true })
	l.Remove(id)
	l.Fire(nil)

	if ran {
		t.Error("removed callback still ran")
	}
	if l.Len() != 0 {
		t.Errorf("Len = %d after removal", l.Len())
	}

	// Removing an unknown id is a no-op.
	l.Remove(999)
}

func TestEventListSelfRemovalDuringDispatch(t *testing.T) {
	var l EventList
	var order []string

	var firstID int
	firstID = l.Add(func(*Element) {
		order = append(order, "first")
		l.Remove(firstID)
	})
	l.Add(func(*Element) { order = append(order, "second") })

	l.Fire(nil)

	// The dispatch in flight still runs the full snapshot.
	if len(order) != 2 || order[1] != "second" {
		t.Errorf("order = %v, removal in a callback skipped a peer", order)
	}

	order = order[:0]
	l.Fire(nil)
	if len(order) != 1 || order[0] != "second" {
		t.Errorf("order = %v after self-removal", order)
	}
}

func TestEventListAdditionDuringDispatchIsDeferred(t *testing.T) {
	var l EventList
	calls := 0

	l.Add(func(*Element) {
		if calls == 0 {
			l.Add(func(*Element) { calls += 100 })
		}
		calls++
	})

	l.Fire(nil)
	if calls != 1 {
		t.Errorf("calls = %d, a callback added mid-dispatch ran in the same dispatch", calls)
	}

	l.Fire(nil)
	if calls != 102 {
		t.Errorf("calls = %d after second dispatch, want 102", calls)
	}
}

func TestEventListPassesElement(t *testing.T) {
	var l EventList
	el := NewElement(TopLeft, 1, 1)

	var got *Element
	l.Add(func(e *Element) { got = e })
	l.Fire(el)

	if got != el {
		t.Error("callback did not receive the firing element")
	}
}
