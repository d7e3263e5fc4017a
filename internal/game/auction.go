// internal/game/auction.go
package game

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jason-s-yu/monopoly/internal/board"
	"github.com/sirupsen/logrus"
)

// openingBid is the standing bid before anyone raises.
const openingBid = 1

// AuctionResult reports how an auction closed.
type AuctionResult struct {
	SpaceID  int       `json:"spaceId"`
	Property string    `json:"property"`
	WinnerID uuid.UUID `json:"winnerId,omitempty"`
	Winner   string    `json:"winner,omitempty"`
	Bid      int       `json:"bid"`
	Sold     bool      `json:"sold"`
	Vetoed   bool      `json:"vetoed"`
}

// HandleAuction auctions the property on spaceID among the active players. A
// player owner is asked whether to accept the winning bid.
func (g *Game) HandleAuction(spaceID int) (*AuctionResult, error) {
	if !g.mu.TryLock() {
		return nil, ErrTurnInProgress
	}
	defer g.mu.Unlock()

	if err := g.checkPlayable(); err != nil {
		return nil, err
	}
	prop, err := g.property(spaceID)
	if err != nil {
		return nil, err
	}
	if prop.Developed() {
		return nil, board.ErrDeveloped
	}
	return g.runAuction(prop), nil
}

// runAuction asks the seats in turn order, starting with the current player, for
// strictly rising bids. A seat that cannot or may not bid counts as a pass; the
// auction closes once every seat has passed in a row.
func (g *Game) runAuction(prop *board.Property) *AuctionResult {
	owner := prop.Owner()
	res := &AuctionResult{SpaceID: prop.SpaceID(), Property: prop.Name}

	bid := openingBid
	var high *Player
	passes := 0
	cursor := g.turn
	for passes < len(g.players) {
		bidder := g.players[cursor]
		cursor = (cursor + 1) % len(g.players)

		if bidder.Eliminated || bidder == high || bidder.Actor == owner || bidder.Balance <= bid {
			passes++
			continue
		}
		prompt := fmt.Sprintf("%s, %s is up for auction. The current bid is $%d. Do you want to bid?", bidder.Name, prop.Name, bid)
		if !g.prompter.Confirm("Auction", prompt) {
			passes++
			continue
		}
		amount, ok := g.askInt("Auction", fmt.Sprintf("%s, enter your bid for %s", bidder.Name, prop.Name), bid+1, bidder.Balance)
		if !ok {
			passes++
			continue
		}
		bid = amount
		high = bidder
		passes = 0
	}

	log := g.logger.WithFields(logrus.Fields{"property": prop.Name, "bid": bid})
	if high == nil {
		log.Info("auction closed without bids")
		g.emit(nil, EventAuctionClosed, prop.SpaceID(), map[string]interface{}{"sold": false})
		return res
	}

	res.WinnerID, res.Winner, res.Bid = high.ID, high.Name, bid
	if seller := g.playerFor(owner); seller != nil {
		prompt := fmt.Sprintf("%s, the highest bid for %s was $%d by %s. Accept it?", seller.Name, prop.Name, bid, high.Name)
		if !g.prompter.Confirm("Auction", prompt) {
			res.Vetoed = true
			log.WithField("owner", seller.Name).Info("owner kept property")
			g.emit(seller, EventAuctionClosed, prop.SpaceID(), map[string]interface{}{"sold": false, "vetoed": true, "bid": bid})
			return res
		}
	}

	res.Sold = g.purchase(high, prop, bid)
	log.WithField("winner", high.Name).Info("auction won")
	g.emit(high, EventAuctionClosed, prop.SpaceID(), map[string]interface{}{"sold": res.Sold, "bid": bid})
	return res
}
