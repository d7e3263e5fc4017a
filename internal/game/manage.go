// internal/game/manage.go
package game

import (
	"github.com/jason-s-yu/monopoly/internal/board"
	"github.com/sirupsen/logrus"
)

// Develop buys one house (or the hotel) on a street the current player owns.
func (g *Game) Develop(spaceID int) error {
	return g.manage(spaceID, EventDevelop, func(prop *board.Property) error {
		return prop.Build(g.bank)
	})
}

// SellDevelopment sells one house or the hotel back to the bank at half cost.
func (g *Game) SellDevelopment(spaceID int) error {
	return g.manage(spaceID, EventSellDevelop, func(prop *board.Property) error {
		return prop.SellDevelopment(g.bank)
	})
}

// Mortgage mortgages an undeveloped property of the current player.
func (g *Game) Mortgage(spaceID int) error {
	return g.manage(spaceID, EventMortgage, func(prop *board.Property) error {
		return prop.Mortgage(g.bank)
	})
}

// Unmortgage pays off the mortgage on a property of the current player.
func (g *Game) Unmortgage(spaceID int) error {
	return g.manage(spaceID, EventUnmortgage, func(prop *board.Property) error {
		return prop.Unmortgage(g.bank)
	})
}

// manage runs op on a property owned by the current player. Failed operations
// leave the game untouched.
func (g *Game) manage(spaceID int, typ GameEventType, op func(*board.Property) error) error {
	if !g.mu.TryLock() {
		return ErrTurnInProgress
	}
	defer g.mu.Unlock()

	if err := g.checkPlayable(); err != nil {
		return err
	}
	prop, err := g.property(spaceID)
	if err != nil {
		return err
	}
	p := g.players[g.turn]
	if prop.Owner() != p.Actor {
		return ErrNotOwner
	}
	if err := op(prop); err != nil {
		return err
	}

	g.playerLog(p).WithFields(logrus.Fields{
		"property":  prop.Name,
		"units":     prop.Units(),
		"mortgaged": prop.Mortgaged(),
	}).Info(string(typ))
	g.emit(p, typ, spaceID, map[string]interface{}{"units": prop.Units(), "mortgaged": prop.Mortgaged()})
	return nil
}
