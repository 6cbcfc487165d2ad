package codeplug

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestChannels(t *testing.T, cfg *Config, n int) []*DigitalChannel {
	t.Helper()
	group, err := NewRXGroupList("Default")
	require.NoError(t, err)
	require.GreaterOrEqual(t, cfg.RXGroupLists().Add(group), 0)

	channels := make([]*DigitalChannel, n)
	for i := range channels {
		ch, err := NewDigitalChannel(fmt.Sprintf("CH%d", i+1), 438.0+float64(i)*0.0125, 430.4+float64(i)*0.0125, group)
		require.NoError(t, err)
		channels[i] = ch
	}
	return channels
}

func TestListPositionRoundTrip(t *testing.T) {
	cfg := NewConfig()
	channels := newTestChannels(t, cfg, 8)
	for _, ch := range channels {
		cfg.Channels().Add(ch)
	}

	list := cfg.Channels()
	for i := 0; i < list.Count(); i++ {
		assert.Equal(t, i, list.IndexOf(list.At(i)), "IndexOf(At(i)) must equal i")
	}
}

func TestListInsertShiftsPositions(t *testing.T) {
	cfg := NewConfig()
	channels := newTestChannels(t, cfg, 4)

	list := cfg.Channels()
	assert.Equal(t, 0, list.Add(channels[0]))
	assert.Equal(t, 1, list.Add(channels[1]))
	assert.Equal(t, 1, list.Insert(channels[2], 1))

	assert.Equal(t, 0, list.IndexOf(channels[0]))
	assert.Equal(t, 1, list.IndexOf(channels[2]))
	assert.Equal(t, 2, list.IndexOf(channels[1]))

	// round trip still holds after the shift
	for i := 0; i < list.Count(); i++ {
		assert.Equal(t, i, list.IndexOf(list.At(i)))
	}
}

func TestListRejectsDuplicatesAndBadPositions(t *testing.T) {
	cfg := NewConfig()
	channels := newTestChannels(t, cfg, 2)

	list := cfg.Channels()
	require.Equal(t, 0, list.Add(channels[0]))
	assert.Equal(t, -1, list.Add(channels[0]), "duplicate member")
	assert.Equal(t, -1, list.Insert(channels[1], 5), "position out of range")
	assert.Equal(t, -1, list.Insert(channels[1], -1), "negative position")
	assert.Equal(t, 1, list.Count())
}

func TestListRemoveReindexes(t *testing.T) {
	cfg := NewConfig()
	channels := newTestChannels(t, cfg, 5)
	list := cfg.Channels()
	for _, ch := range channels {
		list.Add(ch)
	}

	require.True(t, list.Remove(channels[1]))
	assert.False(t, list.Remove(channels[1]), "second remove is a no-op")
	assert.Equal(t, 4, list.Count())
	assert.Equal(t, -1, list.IndexOf(channels[1]))
	assert.False(t, list.Contains(channels[1]))

	for i := 0; i < list.Count(); i++ {
		assert.Equal(t, i, list.IndexOf(list.At(i)))
	}
}

func TestListIndexOfAbsentIsNotFound(t *testing.T) {
	cfg := NewConfig()
	channels := newTestChannels(t, cfg, 2)
	list := cfg.Channels()
	list.Add(channels[0])

	assert.Equal(t, -1, list.IndexOf(channels[1]))
	assert.Nil(t, list.At(7))
	assert.Nil(t, list.At(-1))
}
