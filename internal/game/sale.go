// internal/game/sale.go
package game

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jason-s-yu/monopoly/internal/board"
	"github.com/jason-s-yu/monopoly/internal/ledger"
	"github.com/sirupsen/logrus"
)

// SaleResult reports how a private sale ended.
type SaleResult struct {
	SpaceID  int       `json:"spaceId"`
	Property string    `json:"property"`
	BuyerID  uuid.UUID `json:"buyerId,omitempty"`
	Buyer    string    `json:"buyer,omitempty"`
	Price    int       `json:"price"`
	Sold     bool      `json:"sold"`
	Rounds   int       `json:"rounds"`
}

// HandlePrivateSale lets the player who owns spaceID negotiate its sale with one
// other player. The seller names falling prices until the buyer accepts or the
// seller repeats the last offer to withdraw.
func (g *Game) HandlePrivateSale(spaceID int) (*SaleResult, error) {
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
	seller := g.playerFor(prop.Owner())
	if seller == nil || seller.Eliminated {
		return nil, ErrNotOwner
	}
	if prop.Developed() {
		return nil, board.ErrDeveloped
	}
	return g.runPrivateSale(seller, prop), nil
}

// saleBuyers lists the players who could take prop off seller's hands.
func (g *Game) saleBuyers(seller *Player, prop *board.Property) []*Player {
	minimum := 1
	if prop.Mortgaged() {
		minimum = prop.MortgageValue
	}
	var out []*Player
	for _, p := range g.ActivePlayers() {
		if p != seller && ledger.CanAfford(p.Actor, minimum) {
			out = append(out, p)
		}
	}
	return out
}

// maxOffer is the most buyer can be asked to pay, leaving room for the mortgage interest.
func maxOffer(buyer *Player, prop *board.Property) int {
	if prop.Mortgaged() {
		return buyer.Balance - prop.Interest()
	}
	return buyer.Balance
}

func (g *Game) runPrivateSale(seller *Player, prop *board.Property) *SaleResult {
	res := &SaleResult{SpaceID: prop.SpaceID(), Property: prop.Name}
	log := g.logger.WithFields(logrus.Fields{"property": prop.Name, "seller": seller.Name})

	buyers := g.saleBuyers(seller, prop)
	if len(buyers) == 0 {
		log.Info("no eligible buyers")
		return res
	}
	names := make([]string, len(buyers))
	for i, b := range buyers {
		names[i] = b.Name
	}
	i, ok := g.askOne("Private sale", fmt.Sprintf("%s, who do you want to sell %s to?", seller.Name, prop.Name), names, 0)
	if !ok {
		return res
	}
	buyer := buyers[i]
	res.BuyerID, res.Buyer = buyer.ID, buyer.Name

	lastOffer := 0
	for {
		offer, ok := g.askOffer(seller, buyer, prop, lastOffer)
		if !ok {
			log.WithField("buyer", buyer.Name).Info("seller withdrew")
			return res
		}
		res.Rounds++
		prompt := fmt.Sprintf("%s, %s offers you %s for $%d. Accept?", buyer.Name, seller.Name, prop.Name, offer)
		if g.prompter.Confirm("Private sale", prompt) {
			res.Price = offer
			res.Sold = g.purchase(buyer, prop, offer)
			g.emit(seller, EventPrivateSale, prop.SpaceID(), map[string]interface{}{
				"buyer": buyer.ID,
				"price": offer,
			})
			return res
		}
		lastOffer = offer
	}
}

// askOffer asks the seller for the next price. Each offer must be below the last
// rejected one and affordable by the buyer. Once an offer was rejected the asked
// range runs up to it, and answering the last offer withdraws, as do cancelling
// or running out of attempts.
func (g *Game) askOffer(seller, buyer *Player, prop *board.Property, lastOffer int) (int, bool) {
	upper := maxOffer(buyer, prop)
	if lastOffer > 0 && lastOffer-1 < upper {
		upper = lastOffer - 1
	}
	if upper < 1 {
		return 0, false
	}
	prompt := fmt.Sprintf("%s, what do you ask %s for %s?", seller.Name, buyer.Name, prop.Name)
	// the withdraw answer must sit inside the bounds a dialog enforces
	ceiling := upper
	if lastOffer > 0 {
		prompt += fmt.Sprintf(" Answer %d to withdraw.", lastOffer)
		ceiling = lastOffer
	}
	for attempt := 0; attempt < g.Rules.PromptAttempts; attempt++ {
		v, ok := g.prompter.ChooseInt("Private sale", prompt, 1, ceiling)
		switch {
		case !ok, lastOffer > 0 && v == lastOffer:
			return 0, false
		case v >= 1 && v <= upper:
			return v, true
		}
	}
	return 0, false
}
