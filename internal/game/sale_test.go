package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrivateSaleFallingOffers(t *testing.T) {
	f := setupTestGame(t, 3)
	ada, brin := f.players[0], f.players[1]
	f.prop(t, 39).SetOwner(ada.Actor)
	f.prompt.choices = []int{0}
	f.prompt.ints = []intAnswer{answer(300), answer(250)}
	f.prompt.confirms = []bool{false, true}

	res, err := f.g.HandlePrivateSale(39)
	require.NoError(t, err)
	assert.True(t, res.Sold)
	assert.Equal(t, 250, res.Price)
	assert.Equal(t, 2, res.Rounds)
	assert.Equal(t, brin.ID, res.BuyerID)
	assert.Same(t, brin.Actor, f.prop(t, 39).Owner())
	assert.Equal(t, 1250, brin.Balance)
	assert.Equal(t, 1750, ada.Balance)
}

func TestPrivateSaleRepeatWithdraws(t *testing.T) {
	f := setupTestGame(t, 2)
	ada := f.players[0]
	f.prop(t, 39).SetOwner(ada.Actor)
	f.prompt.choices = []int{0}
	f.prompt.ints = []intAnswer{answer(300), answer(300)}
	f.prompt.confirms = []bool{false}

	res, err := f.g.HandlePrivateSale(39)
	require.NoError(t, err)
	assert.False(t, res.Sold)
	assert.Equal(t, 1, res.Rounds)
	assert.Same(t, ada.Actor, f.prop(t, 39).Owner())
	require.Len(t, f.prompt.intBounds, 2)
	assert.Equal(t, [2]int{1, 1500}, f.prompt.intBounds[0])
	assert.Equal(t, [2]int{1, 300}, f.prompt.intBounds[1], "the withdraw answer is inside the asked range")
}

func TestPrivateSaleHigherOfferIsRejected(t *testing.T) {
	f := setupTestGame(t, 2)
	ada := f.players[0]
	f.prop(t, 39).SetOwner(ada.Actor)
	f.prompt.choices = []int{0}
	f.prompt.ints = []intAnswer{answer(300), answer(350), answer(200)}
	f.prompt.confirms = []bool{false, true}

	res, err := f.g.HandlePrivateSale(39)
	require.NoError(t, err)
	assert.True(t, res.Sold)
	assert.Equal(t, 200, res.Price)
	assert.Equal(t, 2, res.Rounds)
}

func TestPrivateSaleOfMortgagedPropertyChargesInterest(t *testing.T) {
	f := setupTestGame(t, 2)
	ada, brin := f.players[0], f.players[1]
	walk := f.prop(t, 39)
	walk.SetOwner(ada.Actor)
	require.NoError(t, walk.Mortgage(f.g.bank))
	f.prompt.choices = []int{0}
	f.prompt.ints = []intAnswer{answer(150)}
	f.prompt.confirms = []bool{true, false} // accept, keep the mortgage

	res, err := f.g.HandlePrivateSale(39)
	require.NoError(t, err)
	assert.True(t, res.Sold)
	assert.True(t, walk.Mortgaged())
	assert.Equal(t, 1500-150-20, brin.Balance)
	assert.Equal(t, 1700+150, ada.Balance)
}

func TestPrivateSaleOfMortgagedPropertyPayoff(t *testing.T) {
	f := setupTestGame(t, 2)
	ada, brin := f.players[0], f.players[1]
	walk := f.prop(t, 39)
	walk.SetOwner(ada.Actor)
	require.NoError(t, walk.Mortgage(f.g.bank))
	f.prompt.choices = []int{0}
	f.prompt.ints = []intAnswer{answer(150)}
	f.prompt.confirms = []bool{true, true}

	_, err := f.g.HandlePrivateSale(39)
	require.NoError(t, err)
	assert.False(t, walk.Mortgaged())
	assert.Equal(t, 1500-150-220, brin.Balance)
}

func TestPrivateSaleNoEligibleBuyer(t *testing.T) {
	f := setupTestGame(t, 2)
	ada, brin := f.players[0], f.players[1]
	walk := f.prop(t, 39)
	walk.SetOwner(ada.Actor)
	require.NoError(t, walk.Mortgage(f.g.bank))
	brin.Balance = 100

	res, err := f.g.HandlePrivateSale(39)
	require.NoError(t, err)
	assert.False(t, res.Sold)
	assert.Empty(t, f.prompt.asked)
}

func TestPrivateSaleRequiresPlayerOwner(t *testing.T) {
	f := setupTestGame(t, 2)
	_, err := f.g.HandlePrivateSale(39)
	assert.ErrorIs(t, err, ErrNotOwner)
}
