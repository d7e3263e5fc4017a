package game

import (
	"testing"

	"github.com/jason-s-yu/monopoly/internal/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuctionRisingBids(t *testing.T) {
	f := setupTestGame(t, 3)
	bank := f.g.bank.Balance
	f.prompt.confirms = []bool{true, true, true}
	f.prompt.ints = []intAnswer{answer(10), answer(25), answer(40)}

	res, err := f.g.HandleAuction(39)
	require.NoError(t, err)
	assert.True(t, res.Sold)
	assert.Equal(t, 40, res.Bid)
	assert.Equal(t, f.players[2].ID, res.WinnerID)
	assert.Same(t, f.players[2].Actor, f.prop(t, 39).Owner())
	assert.Equal(t, 1460, f.players[2].Balance)
	assert.Equal(t, bank+40, f.g.bank.Balance)
	assert.Empty(t, f.prompt.confirms)
}

func TestAuctionWithoutBidsLeavesOwner(t *testing.T) {
	f := setupTestGame(t, 2)

	res, err := f.g.HandleAuction(39)
	require.NoError(t, err)
	assert.False(t, res.Sold)
	assert.Same(t, f.g.bank, f.prop(t, 39).Owner())
}

func TestAuctionRepromptsLowBid(t *testing.T) {
	f := setupTestGame(t, 2)
	f.prompt.confirms = []bool{true}
	f.prompt.ints = []intAnswer{answer(1), answer(5000), answer(5)}

	res, err := f.g.HandleAuction(39)
	require.NoError(t, err)
	assert.True(t, res.Sold)
	assert.Equal(t, 5, res.Bid)
	assert.Equal(t, 1495, f.players[0].Balance)
}

func TestAuctionCancelledBidPasses(t *testing.T) {
	f := setupTestGame(t, 2)
	f.prompt.confirms = []bool{true}
	f.prompt.ints = []intAnswer{{ok: false}}

	res, err := f.g.HandleAuction(39)
	require.NoError(t, err)
	assert.False(t, res.Sold)
}

func TestAuctionOwnerVeto(t *testing.T) {
	f := setupTestGame(t, 3)
	ada, brin := f.players[0], f.players[1]
	f.prop(t, 39).SetOwner(ada.Actor)
	// Brin bids, Cy passes, Ada keeps the property.
	f.prompt.confirms = []bool{true, false, false}
	f.prompt.ints = []intAnswer{answer(100)}

	res, err := f.g.HandleAuction(39)
	require.NoError(t, err)
	assert.True(t, res.Vetoed)
	assert.False(t, res.Sold)
	assert.Same(t, ada.Actor, f.prop(t, 39).Owner())
	assert.Equal(t, 1500, brin.Balance)
}

func TestAuctionOwnerAccepts(t *testing.T) {
	f := setupTestGame(t, 3)
	ada, brin := f.players[0], f.players[1]
	f.prop(t, 39).SetOwner(ada.Actor)
	f.prompt.confirms = []bool{true, false, true}
	f.prompt.ints = []intAnswer{answer(100)}

	res, err := f.g.HandleAuction(39)
	require.NoError(t, err)
	assert.True(t, res.Sold)
	assert.Same(t, brin.Actor, f.prop(t, 39).Owner())
	assert.Equal(t, 1400, brin.Balance)
	assert.Equal(t, 1600, ada.Balance)
}

func TestAuctionRejectsBadTargets(t *testing.T) {
	f := setupTestGame(t, 2)

	_, err := f.g.HandleAuction(0)
	assert.ErrorIs(t, err, ErrIllegalMove)
	_, err = f.g.HandleAuction(99)
	assert.ErrorIs(t, err, board.ErrNoSuchSpace)
}
