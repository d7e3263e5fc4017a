// internal/game/sync_state.go
package game

import (
	"github.com/google/uuid"
	"github.com/jason-s-yu/monopoly/internal/board"
)

// PropertyState is the public state of an ownable space.
type PropertyState struct {
	OwnerID   uuid.UUID `json:"ownerId,omitempty"` // zero when the bank owns it
	Price     int       `json:"price"`
	Houses    int       `json:"houses"`
	Hotel     bool      `json:"hotel"`
	Mortgaged bool      `json:"mortgaged"`
}

// SpaceState is one board space as seen by the UI.
type SpaceState struct {
	ID        int            `json:"id"`
	Name      string         `json:"name"`
	Kind      board.Kind     `json:"kind"`
	Occupants []uuid.UUID    `json:"occupants,omitempty"`
	Property  *PropertyState `json:"property,omitempty"`
}

// PlayerState is the public state of one seat.
type PlayerState struct {
	PlayerID      uuid.UUID `json:"playerId"`
	Name          string    `json:"name"`
	Balance       int       `json:"balance"`
	NetWorth      int       `json:"netWorth"`
	Position      int       `json:"position"`
	Jailed        bool      `json:"jailed"`
	JailTurns     int       `json:"jailTurns"`
	JailCards     int       `json:"jailCards"`
	LastRoll      int       `json:"lastRoll"`
	Eliminated    bool      `json:"eliminated"`
	IsCurrentTurn bool      `json:"isCurrentTurn"`
	Properties    []int     `json:"properties"`
}

// GameState is returned by Snapshot.
type GameState struct {
	GameID          uuid.UUID     `json:"gameId"`
	Started         bool          `json:"started"`
	GameOver        bool          `json:"gameOver"`
	CurrentPlayerID uuid.UUID     `json:"currentPlayerId"`
	BankBalance     int           `json:"bankBalance"`
	Players         []PlayerState `json:"players"`
	Spaces          []SpaceState  `json:"spaces"`
}

// Snapshot copies the public game state. It takes no lock, so a Prompter may
// call it while a turn is being resolved, from the turn's own goroutine only.
func (g *Game) Snapshot() GameState {
	state := GameState{
		GameID:      g.ID,
		Started:     g.started,
		GameOver:    g.over,
		BankBalance: g.bank.Balance,
	}
	if cur := g.CurrentPlayer(); cur != nil {
		state.CurrentPlayerID = cur.ID
	}

	for i, p := range g.players {
		ps := PlayerState{
			PlayerID:      p.ID,
			Name:          p.Name,
			Balance:       p.Balance,
			NetWorth:      p.NetWorth(),
			Position:      p.Position,
			Jailed:        p.Jailed,
			JailTurns:     p.JailTurns,
			JailCards:     p.JailCards,
			LastRoll:      p.LastRoll,
			Eliminated:    p.Eliminated,
			IsCurrentTurn: i == g.turn && !g.over,
			Properties:    []int{},
		}
		for _, prop := range p.Properties() {
			ps.Properties = append(ps.Properties, prop.SpaceID())
		}
		state.Players = append(state.Players, ps)
	}

	for _, s := range g.board.Spaces() {
		ss := SpaceState{ID: s.ID, Name: s.Name, Kind: s.Kind, Occupants: s.Occupants()}
		if prop := s.Property; prop != nil {
			ps := &PropertyState{
				Price:     prop.Price,
				Houses:    prop.Houses(),
				Hotel:     prop.HasHotel(),
				Mortgaged: prop.Mortgaged(),
			}
			if owner := prop.Owner(); !owner.IsBank() {
				ps.OwnerID = owner.ID
			}
			ss.Property = ps
		}
		state.Spaces = append(state.Spaces, ss)
	}
	return state
}
