// internal/event/event.go
package event

// EventType identifies a kind of game event.
type EventType string

// Event is something that happened during a tick. Data holds the typed
// payload matching Type.
type Event struct {
	Type EventType
	Data any
}

// Listener receives dispatched events.
type Listener interface {
	OnEvent(event Event)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(event Event)

func (f ListenerFunc) OnEvent(event Event) { f(event) }

// Dispatcher delivers events synchronously, in subscription order.
type Dispatcher struct {
	listeners map[EventType][]Listener
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		listeners: make(map[EventType][]Listener),
	}
}

func (d *Dispatcher) Subscribe(eventType EventType, listener Listener) {
	d.listeners[eventType] = append(d.listeners[eventType], listener)
}

// Unsubscribe removes the first registration of listener. Function
// listeners cannot be compared and are never removed.
func (d *Dispatcher) Unsubscribe(eventType EventType, listener Listener) {
	if _, isFunc := listener.(ListenerFunc); isFunc {
		return
	}
	listeners := d.listeners[eventType]
	for i, l := range listeners {
		if _, isFunc := l.(ListenerFunc); isFunc {
			continue
		}
		if l == listener {
			d.listeners[eventType] = append(listeners[:i:i], listeners[i+1:]...)
			return
		}
	}
}

func (d *Dispatcher) Dispatch(event Event) {
	for _, listener := range d.listeners[event.Type] {
		listener.OnEvent(event)
	}
}
