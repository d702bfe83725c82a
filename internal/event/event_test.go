package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type recorder struct {
	got []Event
}

func (r *recorder) OnEvent(e Event) { r.got = append(r.got, e) }

func TestDispatchInOrder(t *testing.T) {
	d := NewDispatcher()
	var order []string
	d.Subscribe(WaveEnded, ListenerFunc(func(Event) { order = append(order, "first") }))
	d.Subscribe(WaveEnded, ListenerFunc(func(Event) { order = append(order, "second") }))
	d.Subscribe(GameOver, ListenerFunc(func(Event) { order = append(order, "other") }))

	d.Dispatch(Event{Type: WaveEnded, Data: WaveData{Number: 2}})
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestUnsubscribe(t *testing.T) {
	d := NewDispatcher()
	a, b := &recorder{}, &recorder{}
	d.Subscribe(EnemyKilled, a)
	d.Subscribe(EnemyKilled, b)
	d.Unsubscribe(EnemyKilled, a)

	d.Dispatch(Event{Type: EnemyKilled, Data: EnemyData{ID: 7}})
	assert.Empty(t, a.got)
	if assert.Len(t, b.got, 1) {
		assert.Equal(t, EnemyData{ID: 7}, b.got[0].Data)
	}

	d.Unsubscribe(TowerPlaced, b)
	d.Unsubscribe(EnemyKilled, ListenerFunc(func(Event) {}))
}
