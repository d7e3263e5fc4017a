package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRollWrapsAndPaysGoOnce(t *testing.T) {
	f := setupTestGame(t, 2)
	ada := f.players[0]
	f.place(ada, 38)
	f.roll(2, 3)

	res, err := f.g.RollAndAdvance()
	require.NoError(t, err)
	assert.Equal(t, 38, res.From)
	assert.Equal(t, 3, res.To)
	assert.True(t, res.PassedGo)
	assert.Equal(t, 3, ada.Position)
	assert.Equal(t, 1700, ada.Balance)
	assert.Equal(t, 1, f.g.goRewards)
	assert.Equal(t, 1, f.mb.count(EventPlayerPassGo))
	assert.Equal(t, f.players[1], f.g.CurrentPlayer())
	assert.Equal(t, f.players[1].ID, res.Next)
}

func TestLandingOnGoPaysOnce(t *testing.T) {
	f := setupTestGame(t, 2)
	ada := f.players[0]
	f.place(ada, 35)
	f.roll(2, 3)

	res, err := f.g.RollAndAdvance()
	require.NoError(t, err)
	assert.Zero(t, res.To)
	assert.True(t, res.PassedGo)
	assert.Equal(t, 1700, ada.Balance)
}

func TestDoublesGrantAnotherRoll(t *testing.T) {
	f := setupTestGame(t, 2)
	ada := f.players[0]
	f.roll(3, 3) // Oriental Avenue
	f.roll(1, 2) // Connecticut Avenue

	res, err := f.g.RollAndAdvance()
	require.NoError(t, err)
	assert.True(t, res.Doubles)
	assert.True(t, res.ExtraTurn)
	assert.Equal(t, 1, ada.Doubles)
	assert.Same(t, ada, f.g.CurrentPlayer())

	res, err = f.g.RollAndAdvance()
	require.NoError(t, err)
	assert.False(t, res.ExtraTurn)
	assert.Equal(t, 9, ada.Position)
	assert.Zero(t, ada.Doubles)
	assert.Same(t, f.players[1], f.g.CurrentPlayer())
}

func TestThirdDoubleGoesToJail(t *testing.T) {
	f := setupTestGame(t, 2)
	ada := f.players[0]
	f.roll(3, 3) // Oriental Avenue
	f.roll(2, 2) // visiting jail
	f.roll(1, 1) // would be Electric Company

	for i := 0; i < 2; i++ {
		res, err := f.g.RollAndAdvance()
		require.NoError(t, err)
		require.True(t, res.ExtraTurn)
	}
	res, err := f.g.RollAndAdvance()
	require.NoError(t, err)

	assert.True(t, res.Doubles)
	assert.True(t, res.Jailed)
	assert.False(t, res.ExtraTurn)
	assert.True(t, ada.Jailed)
	assert.Equal(t, 10, ada.Position)
	assert.Zero(t, ada.Doubles)
	assert.Same(t, f.players[1], f.g.CurrentPlayer())
	for _, prompt := range f.prompt.asked {
		assert.NotContains(t, prompt, "Electric Company", "landing must not resolve")
	}
	assert.Equal(t, 3, f.dice.n, "no fourth roll")
}

func TestGoToJailSpace(t *testing.T) {
	f := setupTestGame(t, 2)
	ada := f.players[0]
	f.place(ada, 25)
	f.roll(2, 3)

	res, err := f.g.RollAndAdvance()
	require.NoError(t, err)
	assert.True(t, res.Jailed)
	assert.Equal(t, 10, ada.Position)
	assert.Equal(t, 1500, ada.Balance, "no Go reward on the way to jail")
}

func TestGoToJailCancelsDoublesRoll(t *testing.T) {
	f := setupTestGame(t, 2)
	ada := f.players[0]
	f.place(ada, 26)
	f.roll(2, 2)

	res, err := f.g.RollAndAdvance()
	require.NoError(t, err)
	assert.True(t, res.Doubles)
	assert.False(t, res.ExtraTurn)
	assert.True(t, ada.Jailed)
	assert.Same(t, f.players[1], f.g.CurrentPlayer())
}

func TestStreetRentIsPaid(t *testing.T) {
	f := setupTestGame(t, 2)
	ada, brin := f.players[0], f.players[1]
	f.prop(t, 39).SetOwner(brin.Actor)
	f.place(ada, 35)
	f.roll(1, 3)

	_, err := f.g.RollAndAdvance()
	require.NoError(t, err)
	assert.Equal(t, 1450, ada.Balance)
	assert.Equal(t, 1550, brin.Balance)
	assert.Equal(t, 1, f.mb.count(EventRentPaid))
}

func TestUtilityRentWithBothUtilities(t *testing.T) {
	f := setupTestGame(t, 2)
	ada, brin := f.players[0], f.players[1]
	f.prop(t, 12).SetOwner(brin.Actor)
	f.prop(t, 28).SetOwner(brin.Actor)
	f.place(ada, 3)
	f.roll(4, 5)

	_, err := f.g.RollAndAdvance()
	require.NoError(t, err)
	assert.Equal(t, 1500-90, ada.Balance)
	assert.Equal(t, 1500+90, brin.Balance)
}

func TestMortgagedPropertyChargesNoRent(t *testing.T) {
	f := setupTestGame(t, 2)
	ada, brin := f.players[0], f.players[1]
	walk := f.prop(t, 39)
	walk.SetOwner(brin.Actor)
	require.NoError(t, walk.Mortgage(f.g.bank))
	f.place(ada, 35)
	f.roll(1, 3)

	_, err := f.g.RollAndAdvance()
	require.NoError(t, err)
	assert.Equal(t, 1500, ada.Balance)
}

func TestOwnPropertyIsNoop(t *testing.T) {
	f := setupTestGame(t, 2)
	ada := f.players[0]
	f.prop(t, 3).SetOwner(ada.Actor)
	f.roll(1, 2)

	_, err := f.g.RollAndAdvance()
	require.NoError(t, err)
	assert.Equal(t, 1500, ada.Balance)
	assert.Empty(t, f.prompt.asked)
}

func TestDeclinedPurchaseGoesToAuction(t *testing.T) {
	f := setupTestGame(t, 2)
	f.roll(1, 2)
	f.prompt.confirms = []bool{false, false, true}
	f.prompt.ints = []intAnswer{answer(30)}

	_, err := f.g.RollAndAdvance()
	require.NoError(t, err)
	baltic := f.prop(t, 3)
	assert.Same(t, f.players[1].Actor, baltic.Owner())
	assert.Equal(t, 1470, f.players[1].Balance)
	assert.Equal(t, 1, f.mb.count(EventAuctionClosed))
}

func TestAcceptedPurchase(t *testing.T) {
	f := setupTestGame(t, 2)
	ada := f.players[0]
	f.roll(1, 2)
	f.prompt.confirms = []bool{true}

	_, err := f.g.RollAndAdvance()
	require.NoError(t, err)
	assert.Same(t, ada.Actor, f.prop(t, 3).Owner())
	assert.Equal(t, 1440, ada.Balance)
}

func TestPurchaseAfterLiquidation(t *testing.T) {
	f := setupTestGame(t, 2)
	ada := f.players[0]
	ada.Balance = 50
	walk := f.prop(t, 39)
	walk.SetOwner(ada.Actor)
	f.roll(1, 2) // Baltic Avenue costs 60
	f.prompt.confirms = []bool{true}

	_, err := f.g.RollAndAdvance()
	require.NoError(t, err)
	assert.True(t, walk.Mortgaged())
	assert.Same(t, ada.Actor, f.prop(t, 3).Owner())
	assert.Equal(t, 50+200-60, ada.Balance)
}

func TestUnaffordablePropertyGoesStraightToAuction(t *testing.T) {
	f := setupTestGame(t, 2)
	ada := f.players[0]
	ada.Balance = 10
	f.roll(1, 2)

	_, err := f.g.RollAndAdvance()
	require.NoError(t, err)
	for _, prompt := range f.prompt.asked {
		assert.NotContains(t, prompt, "buy Baltic")
	}
	assert.Equal(t, 1, f.mb.count(EventAuctionClosed))
}
