// internal/game/landing.go
package game

import (
	"fmt"

	"github.com/jason-s-yu/monopoly/internal/board"
	"github.com/jason-s-yu/monopoly/internal/ledger"
	"github.com/sirupsen/logrus"
)

// resolveLanding applies the space p is standing on. cardRent charges the
// doubled railroad or flat utility rate used by advance-to-nearest cards.
func (g *Game) resolveLanding(p *Player, cardRent bool) {
	space := g.board.Spaces()[p.Position]
	switch space.Kind {
	case board.KindStreet, board.KindRailroad, board.KindUtility:
		g.landOnProperty(p, space.Property, cardRent)
	case board.KindTax:
		g.collectDebt(p, g.bank, space.Tax, space.Name)
	case board.KindCardDraw:
		g.drawCard(p, space)
	case board.KindGoToJail:
		g.sendToJail(p)
	case board.KindGo, board.KindJail, board.KindFreeParking:
	}
}

func (g *Game) landOnProperty(p *Player, prop *board.Property, cardRent bool) {
	owner := prop.Owner()
	switch {
	case owner.IsBank():
		g.offerPurchase(p, prop)
	case owner == p.Actor:
	default:
		rent := prop.Rent(p.LastRoll)
		if cardRent {
			rent = prop.ChanceRent(p.LastRoll)
		}
		if rent == 0 {
			return
		}
		creditor := g.playerFor(owner)
		if !ledger.CanAfford(p.Actor, rent) {
			g.playerLog(p).WithFields(logrus.Fields{"rent": rent, "owner": owner.Name}).Info("cannot pay rent")
			g.bankrupt(p, owner)
			return
		}
		_ = ledger.Transfer(p.Actor, owner, rent)
		g.emit(p, EventRentPaid, prop.SpaceID(), map[string]interface{}{
			"amount": rent,
			"owner":  creditor.ID,
		})
	}
}

// offerPurchase runs the unowned-property flow: buy outright, buy after raising
// funds, or send the property to auction.
func (g *Game) offerPurchase(p *Player, prop *board.Property) {
	price := prop.Price
	switch {
	case ledger.CanAfford(p.Actor, price):
		if g.prompter.Confirm("Purchase", fmt.Sprintf("%s, buy %s for $%d?", p.Name, prop.Name, price)) {
			g.purchase(p, prop, price)
			return
		}
	case p.NetWorth() >= price:
		prompt := fmt.Sprintf("%s, %s costs $%d. Sell or mortgage property to buy it?", p.Name, prop.Name, price)
		if g.prompter.Confirm("Purchase", prompt) && g.liquidate(p, price) {
			g.purchase(p, prop, price)
			return
		}
	}
	g.runAuction(prop)
}

// collectDebt charges p for a tax or card. Shortfalls are covered by forced
// liquidation and, failing that, bankruptcy to the creditor.
func (g *Game) collectDebt(p *Player, creditor *ledger.Actor, amount int, reason string) bool {
	if amount <= 0 || p.Eliminated {
		return !p.Eliminated
	}
	if !ledger.CanAfford(p.Actor, amount) && !g.liquidate(p, amount) {
		g.playerLog(p).WithFields(logrus.Fields{"debt": amount, "reason": reason}).Info("cannot cover debt")
		g.bankrupt(p, creditor)
		return false
	}
	_ = ledger.Transfer(p.Actor, creditor, amount)
	g.emit(p, EventDebtPaid, -1, map[string]interface{}{
		"amount":   amount,
		"reason":   reason,
		"creditor": creditor.Name,
	})
	return true
}
