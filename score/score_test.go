package score_test

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoshinonyaruko/block-in-im/event"
	"github.com/hoshinonyaruko/block-in-im/score"
	"github.com/hoshinonyaruko/block-in-im/shape"
)

type failingStore struct{ *score.MemoryStore }

func (failingStore) SetInt(string, int) error { return errors.New("disk full") }

func newEngine(t *testing.T, cfg score.Config, store score.Store) (*score.Engine, *[]event.Event) {
	t.Helper()
	bus := event.NewBus()
	var events []event.Event
	bus.Subscribe(func(e event.Event) { events = append(events, e) })
	e, err := score.New(cfg, store, bus, zerolog.Nop())
	require.NoError(t, err)
	return e, &events
}

func TestAddPlacementScore(t *testing.T) {
	e, _ := newEngine(t, score.Config{PointsPerCell: 3, PointsPerLine: 100}, nil)
	l := shape.MustFromRows("L", "", "#.", "#.", "##")

	assert.Equal(t, 12, e.AddPlacementScore(l))
	assert.Equal(t, 12, e.Score())
	assert.Equal(t, 12, e.HighScore())
}

func TestComboScoring(t *testing.T) {
	e, events := newEngine(t, score.Config{PointsPerCell: 0, PointsPerLine: 100}, nil)

	assert.Equal(t, 100, e.ProcessLineClears(1))
	assert.Equal(t, 1, e.Combo())
	assert.Equal(t, 200, e.ProcessLineClears(1))
	assert.Equal(t, 2, e.Combo())
	assert.Equal(t, 300, e.Score())

	*events = nil
	assert.Equal(t, 0, e.ProcessLineClears(0))
	assert.Equal(t, 0, e.Combo())
	assert.Equal(t, 300, e.Score())
	assert.Equal(t, []event.Event{{Kind: event.ComboChanged, Value: 0}}, *events)

	// 连击已是 0, 不再通知
	*events = nil
	e.ProcessLineClears(0)
	assert.Empty(t, *events)
}

func TestMultiLineMultiplier(t *testing.T) {
	e, _ := newEngine(t, score.Config{PointsPerLine: 10}, nil)
	e.ProcessLineClears(2)
	assert.Equal(t, 2*10*2, e.ProcessLineClears(2))
	assert.Equal(t, 20+40, e.Score())
}

func TestNotificationOrder(t *testing.T) {
	e, events := newEngine(t, score.Config{PointsPerCell: 1, PointsPerLine: 10}, nil)
	e.ProcessLineClears(1)

	assert.Equal(t, []event.Event{
		{Kind: event.ScoreChanged, Value: 10},
		{Kind: event.ComboChanged, Value: 1},
		{Kind: event.HighScoreChanged, Value: 10},
	}, *events)
}

func TestHighScorePersistence(t *testing.T) {
	store := score.NewMemoryStore()
	require.NoError(t, store.SetInt(score.HighScoreKey, 50))

	e, events := newEngine(t, score.Config{PointsPerCell: 10, PointsPerLine: 10}, store)
	assert.Equal(t, 50, e.HighScore())

	e.AddPlacementScore(shape.MustFromRows("dot", "", "#"))
	assert.Equal(t, 10, e.Score())
	assert.Equal(t, 50, e.HighScore())
	for _, ev := range *events {
		assert.NotEqual(t, event.HighScoreChanged, ev.Kind)
	}

	e.AddPlacementScore(shape.MustFromRows("square3", "", "###", "###", "###"))
	assert.Equal(t, 100, e.HighScore())
	v, err := store.GetInt(score.HighScoreKey)
	require.NoError(t, err)
	assert.Equal(t, 100, v)

	e.Reset()
	assert.Zero(t, e.Score())
	assert.Zero(t, e.Combo())
	assert.Equal(t, 100, e.HighScore())
}

func TestHighScoreStoreFailure(t *testing.T) {
	e, _ := newEngine(t, score.Config{PointsPerCell: 1}, failingStore{score.NewMemoryStore()})
	e.AddPlacementScore(shape.MustFromRows("dot", "", "#"))
	assert.Equal(t, 1, e.HighScore())
}

func TestNewRejectsNegativeConfig(t *testing.T) {
	_, err := score.New(score.Config{PointsPerCell: -1}, nil, nil, zerolog.Nop())
	assert.Error(t, err)
}

func TestResetComboNotification(t *testing.T) {
	e, events := newEngine(t, score.Config{PointsPerCell: 1, PointsPerLine: 10}, nil)
	e.AddPlacementScore(shape.MustFromRows("dot", "", "#"))

	// 没有连击时重开不发连击中断
	*events = nil
	e.Reset()
	assert.Equal(t, []event.Event{{Kind: event.ScoreChanged, Value: 0}}, *events)

	e.ProcessLineClears(1)
	*events = nil
	e.Reset()
	assert.Equal(t, []event.Event{
		{Kind: event.ScoreChanged, Value: 0},
		{Kind: event.ComboChanged, Value: 0},
	}, *events)
}
