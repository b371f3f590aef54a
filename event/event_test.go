package event_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hoshinonyaruko/block-in-im/event"
)

func TestPublishOrder(t *testing.T) {
	bus := event.NewBus()
	var got []string
	bus.Subscribe(func(e event.Event) { got = append(got, "a:"+e.Kind.String()) })
	cancel := bus.Subscribe(func(e event.Event) { got = append(got, "b:"+e.Kind.String()) })

	bus.Publish(event.Event{Kind: event.ScoreChanged, Value: 4})
	cancel()
	bus.Publish(event.Event{Kind: event.ComboChanged, Value: 1})

	assert.Equal(t, []string{"a:score", "b:score", "a:combo"}, got)
}

func TestCancelTwice(t *testing.T) {
	bus := event.NewBus()
	n := 0
	cancel := bus.Subscribe(func(event.Event) { n++ })
	cancel()
	cancel()
	bus.Publish(event.Event{Kind: event.ScoreChanged})
	assert.Zero(t, n)
}

func TestChannelDropsWhenFull(t *testing.T) {
	bus := event.NewBus()
	ch, cancel := bus.Channel(2)

	for i := 1; i <= 5; i++ {
		bus.Publish(event.Event{Kind: event.ScoreChanged, Value: i})
	}
	assert.Equal(t, 1, (<-ch).Value)
	assert.Equal(t, 2, (<-ch).Value)

	cancel()
	bus.Publish(event.Event{Kind: event.ScoreChanged, Value: 6})
	_, ok := <-ch
	assert.False(t, ok)
	cancel()
}
