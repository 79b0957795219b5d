package ui

// Callback observes an element-level event. The element the event fired on
// is passed explicitly so one callback can serve several elements.
type Callback func(e *Element)

// EventList is an ordered list of observers for a single named event.
// Callbacks run in registration order. Dispatch iterates over a snapshot of
// the list, so a callback may add or remove observers (or mutate the element
// tree) without affecting the dispatch already in flight; structural tree
// changes are picked up on the next query through dirty propagation.
type EventList struct {
	handlers []eventHandler
	nextID   int
}

type eventHandler struct {
	id int
	fn Callback
}

// Add registers a callback and returns a handle for Remove.
func (l *EventList) Add(fn Callback) int {
	l.nextID++
	l.handlers = append(l.handlers, eventHandler{id: l.nextID, fn: fn})
	return l.nextID
}

// Remove unregisters the callback with the given handle.
func (l *EventList) Remove(id int) {
	for i, h := range l.handlers {
		if h.id == id {
			l.handlers = append(l.handlers[:i], l.handlers[i+1:]...)
			return
		}
	}
}

// Len returns the number of registered callbacks.
func (l *EventList) Len() int {
	return len(l.handlers)
}

// Fire invokes every callback registered at the time of the call.
func (l *EventList) Fire(e *Element) {
	if len(l.handlers) == 0 {
		return
	}
	snapshot := make([]eventHandler, len(l.handlers))
	copy(snapshot, l.handlers)
	for _, h := range snapshot {
		h.fn(e)
	}
}

// Events groups every per-element event an Element can raise. Fields are
// addressed directly: el.Events.Pressed.Add(fn).
type Events struct {
	// MouseEnter and MouseExit fire when the element becomes or stops being
	// the moused element.
	MouseEnter EventList
	MouseExit  EventList

	// TouchEnter and TouchExit fire when a finger contact starts or stops
	// resting on the element.
	TouchEnter EventList
	TouchExit  EventList

	// Selected and Deselected fire on selection transitions within the
	// element's root.
	Selected   EventList
	Deselected EventList

	// Pressed fires the element's primary action, SecondaryPressed the
	// secondary one (right click, shift-activate, touch hold).
	Pressed          EventList
	SecondaryPressed EventList

	// AreaUpdated fires after the element's display area is resolved.
	AreaUpdated EventList
}
