// pkg/bt/audit.go
package bt

import "fmt"

// EventKind distinguishes audit trail entries.
type EventKind int

const (
	EventEnter EventKind = iota
	EventExit
	EventMark
)

// Event is one entry of an audit trail. State is set for EventExit only,
// Label for EventMark only.
type Event struct {
	Kind  EventKind
	Name  string
	State State
	Label string
}

func (e Event) String() string {
	switch e.Kind {
	case EventEnter:
		return "enter " + e.Name
	case EventExit:
		return fmt.Sprintf("exit %s %s", e.Name, e.State)
	case EventMark:
		return fmt.Sprintf("mark %s %s", e.Name, e.Label)
	default:
		return "event(?)"
	}
}

// Audit records the path a tick took through a tree. All methods accept a
// nil receiver and then do nothing, so production ticks pass nil.
type Audit struct {
	Events []Event
}

func (a *Audit) Enter(name string) {
	if a == nil {
		return
	}
	a.Events = append(a.Events, Event{Kind: EventEnter, Name: name})
}

func (a *Audit) Exit(name string, s State) {
	if a == nil {
		return
	}
	a.Events = append(a.Events, Event{Kind: EventExit, Name: name, State: s})
}

func (a *Audit) Mark(name, label string) {
	if a == nil {
		return
	}
	a.Events = append(a.Events, Event{Kind: EventMark, Name: name, Label: label})
}

// Clear drops recorded events but keeps the backing array.
func (a *Audit) Clear() {
	if a == nil {
		return
	}
	a.Events = a.Events[:0]
}

// Entered returns how many times the named node was entered.
func (a *Audit) Entered(name string) int {
	if a == nil {
		return 0
	}
	n := 0
	for _, e := range a.Events {
		if e.Kind == EventEnter && e.Name == name {
			n++
		}
	}
	return n
}

// Labels returns the mark labels emitted by the named node, in order.
func (a *Audit) Labels(name string) []string {
	if a == nil {
		return nil
	}
	var labels []string
	for _, e := range a.Events {
		if e.Kind == EventMark && e.Name == name {
			labels = append(labels, e.Label)
		}
	}
	return labels
}

// Marker lets a leaf behavior annotate the trail under its own name.
type Marker struct {
	audit *Audit
	name  string
}

// Mark records label against the leaf. No-op when auditing is off.
func (m Marker) Mark(label string) {
	m.audit.Mark(m.name, label)
}

// Enabled reports whether marks are being recorded, so callers can skip
// building expensive labels.
func (m Marker) Enabled() bool {
	return m.audit != nil
}
