package deck

import (
	"io"
	"math/rand"
	"testing"

	"github.com/jason-s-yu/monopoly/internal/board"
	"github.com/jason-s-yu/monopoly/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestDrawWithoutReplacementThenRebuild(t *testing.T) {
	d, err := New(models.DeckChance, models.ClassicCards(), rand.New(rand.NewSource(1)), quietLogger())
	require.NoError(t, err)
	require.Equal(t, 16, d.Size())

	seen := map[string]int{}
	for i := 0; i < d.Size(); i++ {
		c := d.Draw()
		assert.Equal(t, models.DeckChance, c.Deck)
		seen[c.Name]++
	}
	assert.Zero(t, d.Remaining())
	assert.Equal(t, 2, seen["Advance to the nearest Railroad"])
	assert.Len(t, seen, 15)

	d.Draw()
	assert.Equal(t, d.Size()-1, d.Remaining(), "exhausted deck rebuilds from the full set")
}

func TestFromRecord(t *testing.T) {
	c, err := FromRecord(models.CardRecord{Name: "Boardwalk", Deck: models.DeckChance, AdvanceTo: true, Location: 39})
	require.NoError(t, err)
	require.NotNil(t, c.AdvanceTo)
	assert.Equal(t, 39, *c.AdvanceTo)
	assert.False(t, c.AdvancesToNearest())

	c, err = FromRecord(models.CardRecord{Name: "RR", Deck: models.DeckChance, Nearest: true, NearestType: models.SpaceRailroad})
	require.NoError(t, err)
	assert.Equal(t, board.KindRailroad, c.Nearest)
	assert.True(t, c.AdvancesToNearest())

	c, err = FromRecord(models.CardRecord{Name: "Birthday", Deck: models.DeckCommunityChest, PerPlayer: true, PlayerAmount: -10})
	require.NoError(t, err)
	assert.Equal(t, -10, c.PerPlayer)
}

func TestFromRecordRejects(t *testing.T) {
	bad := []models.CardRecord{
		{Name: "nothing", Deck: models.DeckChance},
		{Name: "wrong deck", Deck: "Fortune", Payment: 10},
		{Name: "off board", Deck: models.DeckChance, AdvanceTo: true, Location: 40},
		{Name: "nearest tax", Deck: models.DeckChance, Nearest: true, NearestType: models.SpaceTax},
	}
	for _, rec := range bad {
		_, err := FromRecord(rec)
		assert.ErrorIs(t, err, ErrInvalidCard, rec.Name)
	}
}

func TestNewRejectsEmptyDeck(t *testing.T) {
	_, err := New(models.DeckChance, nil, rand.New(rand.NewSource(1)), quietLogger())
	assert.ErrorIs(t, err, ErrInvalidCard)
}
