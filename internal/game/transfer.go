// internal/game/transfer.go
package game

import (
	"fmt"

	"github.com/jason-s-yu/monopoly/internal/board"
	"github.com/jason-s-yu/monopoly/internal/ledger"
	"github.com/sirupsen/logrus"
)

// purchase moves prop to buyer for price, paid to the current owner. A mortgaged
// property is then paid off or charged interest.
func (g *Game) purchase(buyer *Player, prop *board.Property, price int) bool {
	seller := prop.Owner()
	if err := ledger.Transfer(buyer.Actor, seller, price); err != nil {
		g.playerLog(buyer).WithError(err).Warn("purchase failed")
		return false
	}
	prop.SetOwner(buyer.Actor)
	if prop.Mortgaged() {
		g.settleMortgage(buyer, prop)
	}
	g.playerLog(buyer).WithFields(logrus.Fields{"property": prop.Name, "price": price, "seller": seller.Name}).Info("bought property")
	g.emit(buyer, EventPropertyBuy, prop.SpaceID(), map[string]interface{}{
		"price":  price,
		"seller": seller.Name,
	})
	return true
}

// settleMortgage lets the new owner of a mortgaged property pay it off now.
// Otherwise the 10% interest is charged and the mortgage stays. Interest the
// owner cannot cover is deferred and reported, never taken on credit.
func (g *Game) settleMortgage(owner *Player, prop *board.Property) {
	if ledger.CanAfford(owner.Actor, prop.PayoffCost()) {
		prompt := fmt.Sprintf("%s, %s is mortgaged. Pay it off now for $%d? Otherwise you pay $%d interest.",
			owner.Name, prop.Name, prop.PayoffCost(), prop.Interest())
		if g.prompter.Confirm("Mortgaged property", prompt) {
			_ = prop.Unmortgage(g.bank)
			g.emit(owner, EventUnmortgage, prop.SpaceID(), map[string]interface{}{"cost": prop.PayoffCost()})
			return
		}
	}
	interest := prop.Interest()
	if !ledger.CanAfford(owner.Actor, interest) {
		g.playerLog(owner).WithFields(logrus.Fields{"property": prop.Name, "interest": interest}).Warn("mortgage interest deferred")
		g.emit(owner, EventInterest, prop.SpaceID(), map[string]interface{}{
			"interest":          interest,
			"interest_deferred": true,
		})
		return
	}
	_ = ledger.Transfer(owner.Actor, g.bank, interest)
	g.emit(owner, EventInterest, prop.SpaceID(), map[string]interface{}{"interest": interest})
}

// liquidationStep is one way of raising cash.
type liquidationStep struct {
	prop *board.Property
	sell bool // sell a development; otherwise mortgage
}

func (s liquidationStep) String() string {
	if s.sell {
		return fmt.Sprintf("Sell a development on %s (+$%d)", s.prop.Name, s.prop.DevelopmentCost/2)
	}
	return fmt.Sprintf("Mortgage %s (+$%d)", s.prop.Name, s.prop.MortgageValue)
}

func liquidationSteps(p *Player) []liquidationStep {
	var steps []liquidationStep
	for _, prop := range p.Properties() {
		switch {
		case prop.Developed():
			steps = append(steps, liquidationStep{prop: prop, sell: true})
		case !prop.Mortgaged():
			steps = append(steps, liquidationStep{prop: prop})
		}
	}
	return steps
}

// liquidate has p sell developments and mortgage properties until the balance
// covers target. Liquidation is mandatory, so a cancelled prompt takes the
// first option. It reports whether target was reached.
func (g *Game) liquidate(p *Player, target int) bool {
	for !ledger.CanAfford(p.Actor, target) {
		steps := liquidationSteps(p)
		if len(steps) == 0 {
			return false
		}
		labels := make([]string, len(steps))
		for i, s := range steps {
			labels[i] = s.String()
		}
		prompt := fmt.Sprintf("%s, you need $%d but have $%d. Raise funds:", p.Name, target, p.Balance)
		i, _ := g.askOne("Raise funds", prompt, labels, 0)

		step := steps[i]
		var err error
		if step.sell {
			err = step.prop.SellDevelopment(g.bank)
		} else {
			err = step.prop.Mortgage(g.bank)
		}
		if err != nil {
			g.playerLog(p).WithError(err).Warn("liquidation step failed")
			return false
		}
		g.emit(p, EventLiquidation, step.prop.SpaceID(), map[string]interface{}{"sell": step.sell})
	}
	return true
}

// bankrupt removes p from the game for failing to pay creditor.
func (g *Game) bankrupt(p *Player, creditor *ledger.Actor) {
	g.playerLog(p).WithField("creditor", creditor.Name).Info("bankrupt")
	g.emit(p, EventBankrupt, -1, map[string]interface{}{"creditor": creditor.Name})

	switch {
	case len(g.ActivePlayers()) <= 2:
		g.eliminate(p)
	case creditor.IsBank():
		g.bankruptToBank(p)
	default:
		g.bankruptToPlayer(p, g.playerFor(creditor))
	}
}

// sellAllDevelopment sells every house and hotel p owns back to the bank.
func (g *Game) sellAllDevelopment(p *Player) {
	for _, prop := range p.Properties() {
		for prop.Developed() {
			_ = prop.SellDevelopment(g.bank)
		}
	}
}

// bankruptToPlayer hands everything p owns to the creditor.
func (g *Game) bankruptToPlayer(p, creditor *Player) {
	g.sellAllDevelopment(p)
	if p.Balance > 0 {
		_ = ledger.Transfer(p.Actor, creditor.Actor, p.Balance)
	}
	props := p.Properties()
	for _, prop := range props {
		prop.SetOwner(creditor.Actor)
	}
	g.eliminate(p)
	for _, prop := range props {
		if prop.Mortgaged() {
			g.settleMortgage(creditor, prop)
		}
	}
}

// bankruptToBank returns p's cash and holdings to the bank, then auctions each property.
func (g *Game) bankruptToBank(p *Player) {
	g.sellAllDevelopment(p)
	if p.Balance > 0 {
		_ = ledger.Transfer(p.Actor, g.bank, p.Balance)
	}
	props := p.Properties()
	for _, prop := range props {
		prop.Repossess(g.bank)
	}
	g.eliminate(p)
	for _, prop := range props {
		if g.over {
			return
		}
		g.runAuction(prop)
	}
}

// eliminate takes p out of the turn order and ends the game when one player is left.
func (g *Game) eliminate(p *Player) {
	p.Eliminated = true
	p.Jailed = false
	g.board.Remove(p.ID, p.Position)
	if len(g.ActivePlayers()) <= 1 {
		g.endGame()
	}
}
