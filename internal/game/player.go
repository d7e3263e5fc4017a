// internal/game/player.go
package game

import (
	"github.com/jason-s-yu/monopoly/internal/board"
	"github.com/jason-s-yu/monopoly/internal/ledger"
)

// Player is a seat at the table: a ledger actor plus its turn-scoped state.
type Player struct {
	*ledger.Actor

	Position   int    `json:"position"`
	Doubles    int    `json:"doubles"` // consecutive doubles this turn
	Jailed     bool   `json:"jailed"`
	JailTurns  int    `json:"jailTurns"` // failed escape rolls so far
	JailCards  int    `json:"jailCards"` // held get-out-of-jail-free cards
	Dice       [2]int `json:"dice"`
	LastRoll   int    `json:"lastRoll"`
	Eliminated bool   `json:"eliminated"`
}

func newPlayer(name string, balance int) *Player {
	return &Player{Actor: ledger.NewPlayer(name, balance)}
}

// Properties lists the player's holdings in board order.
func (p *Player) Properties() []*board.Property {
	return holdings(p.Actor)
}

// NetWorth is the player's balance plus the liquidation value of their holdings.
func (p *Player) NetWorth() int {
	return ledger.NetWorth(p.Actor)
}

func holdings(a *ledger.Actor) []*board.Property {
	assets := ledger.Assets(a)
	out := make([]*board.Property, 0, len(assets))
	for _, asset := range assets {
		if prop, ok := asset.(*board.Property); ok {
			out = append(out, prop)
		}
	}
	return out
}

// nextTurnIndex returns the seat after turn that has not been eliminated, wrapping
// around. It returns turn when no other seat is active.
func nextTurnIndex(turn int, seats []*Player) int {
	n := len(seats)
	for i := 1; i <= n; i++ {
		j := (turn + i) % n
		if !seats[j].Eliminated {
			return j
		}
	}
	return turn
}
