package particlefx

type EventType int

const (
	EventKeyPressed EventType = iota
	EventClick
	EventPointerMoved
	EventResized
)

type Event struct {
	Type EventType
	// Key is one of the Key* constants for EventKeyPressed.
	Key int
	// X, Y is the pointer in normalized device coordinates, y up.
	X, Y float32
	// Width, Height is the framebuffer size for EventResized.
	Width, Height int
}

type EventHandler func(Event)

// Subscription identifies one registered handler.
type Subscription struct {
	typ EventType
	id  uint64
}

type subscriber struct {
	id uint64
	fn EventHandler
}

// EventBus delivers input events to subscribed handlers in subscription
// order. Handlers may subscribe or unsubscribe while an event is delivered;
// the change applies from the next Emit.
type EventBus struct {
	nextID   uint64
	handlers map[EventType][]subscriber
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[EventType][]subscriber),
	}
}

func (eb *EventBus) Subscribe(t EventType, fn EventHandler) Subscription {
	eb.nextID++
	eb.handlers[t] = append(eb.handlers[t], subscriber{id: eb.nextID, fn: fn})
	return Subscription{typ: t, id: eb.nextID}
}

// Unsubscribe removes the handler and reports whether it was registered.
func (eb *EventBus) Unsubscribe(s Subscription) bool {
	subs := eb.handlers[s.typ]
	for i, sub := range subs {
		if sub.id == s.id {
			// copy so an Emit iterating the old slice is unaffected
			next := make([]subscriber, 0, len(subs)-1)
			next = append(next, subs[:i]...)
			eb.handlers[s.typ] = append(next, subs[i+1:]...)
			return true
		}
	}
	return false
}

func (eb *EventBus) Emit(e Event) {
	for _, sub := range eb.handlers[e.Type] {
		sub.fn(e)
	}
}

// Subscribers counts the handlers registered for t.
func (eb *EventBus) Subscribers(t EventType) int {
	return len(eb.handlers[t])
}
