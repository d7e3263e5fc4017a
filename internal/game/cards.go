// internal/game/cards.go
package game

import (
	"github.com/jason-s-yu/monopoly/internal/board"
	"github.com/jason-s-yu/monopoly/internal/deck"
	"github.com/jason-s-yu/monopoly/internal/ledger"
)

func (g *Game) drawCard(p *Player, space *board.Space) {
	c := g.decks[space.Deck].Draw()
	g.playerLog(p).WithField("card", c.Name).Info("drew card")
	g.emit(p, EventCardDrawn, space.ID, map[string]interface{}{"deck": string(c.Deck), "card": c.Name})
	g.applyCard(p, c)
}

// applyCard runs each effect of c in turn. Movement effects resolve the new
// landing. Resolution stops once the drawer is jailed or eliminated.
func (g *Game) applyCard(p *Player, c deck.Card) {
	if c.GetOutOfJail {
		p.JailCards++
	}
	if c.GoToJail {
		g.sendToJail(p)
		return
	}

	switch {
	case c.Payment > 0:
		_ = ledger.Transfer(g.bank, p.Actor, c.Payment)
	case c.Payment < 0:
		if !g.collectDebt(p, g.bank, -c.Payment, c.Name) {
			return
		}
	}

	if c.PerPlayer != 0 && !g.settlePerPlayer(p, c) {
		return
	}

	if c.PerDevelopment {
		if !g.collectDebt(p, g.bank, repairCost(p, c), c.Name) {
			return
		}
	}

	switch {
	case c.AdvanceTo != nil:
		g.advanceTo(p, *c.AdvanceTo)
		g.resolveLanding(p, false)
	case c.AdvanceBy != 0:
		g.advance(p, c.AdvanceBy)
		g.resolveLanding(p, false)
	case c.AdvancesToNearest():
		dest, ok := g.board.Nearest(p.Position, c.Nearest)
		if !ok {
			return
		}
		g.advanceTo(p, dest)
		g.resolveLanding(p, true)
	}
}

// settlePerPlayer moves money between the drawer and every other active player.
// It reports whether the drawer is still in the game.
func (g *Game) settlePerPlayer(p *Player, c deck.Card) bool {
	for _, other := range g.ActivePlayers() {
		if other == p || other.Eliminated {
			continue
		}
		if c.PerPlayer > 0 {
			if !g.collectDebt(p, other.Actor, c.PerPlayer, c.Name) {
				return false
			}
		} else {
			g.collectDebt(other, p.Actor, -c.PerPlayer, c.Name)
		}
		if g.over {
			return false
		}
	}
	return !p.Eliminated
}

// repairCost sums the per-house and per-hotel charges over p's holdings.
func repairCost(p *Player, c deck.Card) int {
	total := 0
	for _, prop := range p.Properties() {
		if prop.HasHotel() {
			total += c.HotelCost
		} else {
			total += prop.Houses() * c.HouseCost
		}
	}
	return total
}
