// internal/game/turn.go
package game

import (
	"github.com/google/uuid"
	"github.com/jason-s-yu/monopoly/internal/ledger"
	"github.com/sirupsen/logrus"
)

// TurnResult summarises one call to RollAndAdvance or HandleJailChoice.
type TurnResult struct {
	PlayerID   uuid.UUID `json:"playerId"`
	Player     string    `json:"player"`
	Dice       [2]int    `json:"dice"`
	Rolled     bool      `json:"rolled"`
	From       int       `json:"from"`
	To         int       `json:"to"`
	PassedGo   bool      `json:"passedGo"`
	Doubles    bool      `json:"doubles"`
	Jailed     bool      `json:"jailed"`
	Released   bool      `json:"released"`
	ExtraTurn  bool      `json:"extraTurn"`
	Eliminated bool      `json:"eliminated"`
	GameOver   bool      `json:"gameOver"`
	Next       uuid.UUID `json:"next"`
}

// RollAndAdvance plays one roll for the current player. A jailed player is routed
// through the jail choice first. On doubles the turn index stays put and the
// result reports ExtraTurn.
func (g *Game) RollAndAdvance() (*TurnResult, error) {
	if !g.mu.TryLock() {
		return nil, ErrTurnInProgress
	}
	defer g.mu.Unlock()

	if err := g.checkPlayable(); err != nil {
		return nil, err
	}
	g.started = true

	p := g.players[g.turn]
	if p.Jailed {
		return g.jailTurn(p, g.promptJailChoice(p)), nil
	}
	return g.takeTurn(p), nil
}

func (g *Game) takeTurn(p *Player) *TurnResult {
	res := g.newResult(p)
	goBefore := g.goRewards

	d1, d2 := g.roll(p, res)
	doubles := d1 == d2
	res.Doubles = doubles

	if doubles && p.Doubles == 2 {
		// third double in a row
		g.advance(p, d1+d2)
		g.playerLog(p).Info("third consecutive double")
		g.sendToJail(p)
		return g.finishTurn(p, res, goBefore, false)
	}
	if doubles {
		p.Doubles++
	} else {
		p.Doubles = 0
	}

	g.advance(p, d1+d2)
	g.resolveLanding(p, false)

	extra := doubles && !p.Eliminated && !p.Jailed && !g.over
	return g.finishTurn(p, res, goBefore, extra)
}

// roll throws the dice for p and records them as the player's last roll.
func (g *Game) roll(p *Player, res *TurnResult) (int, int) {
	d1, d2 := g.dice.Roll()
	p.Dice = [2]int{d1, d2}
	p.LastRoll = d1 + d2
	res.Dice = p.Dice
	res.Rolled = true
	g.emit(p, EventPlayerRoll, -1, map[string]interface{}{"dice": []int{d1, d2}})
	return d1, d2
}

func (g *Game) newResult(p *Player) *TurnResult {
	return &TurnResult{PlayerID: p.ID, Player: p.Name, From: p.Position}
}

// finishTurn fills in the outcome and hands the turn on unless extra is set.
func (g *Game) finishTurn(p *Player, res *TurnResult, goBefore int, extra bool) *TurnResult {
	res.To = p.Position
	res.PassedGo = g.goRewards > goBefore
	res.Jailed = p.Jailed
	res.Eliminated = p.Eliminated
	res.ExtraTurn = extra

	if !extra {
		if !p.Jailed {
			p.Doubles = 0
		}
		g.advanceTurn()
	}
	res.GameOver = g.over
	if cur := g.CurrentPlayer(); cur != nil && !g.over {
		res.Next = cur.ID
	}
	return res
}

// advanceTurn moves the turn index to the next active seat.
func (g *Game) advanceTurn() {
	if g.over {
		return
	}
	g.turn = nextTurnIndex(g.turn, g.players)
	next := g.players[g.turn]
	g.logger.WithField("player", next.Name).Debug("next turn")
	g.emit(next, EventGamePlayerTurn, -1, map[string]interface{}{"jailed": next.Jailed})
}

// advance moves p by steps, paying the Go reward when the move passes or lands on Go.
func (g *Game) advance(p *Player, steps int) {
	to, passed := g.board.Advance(p.Position, steps)
	if passed {
		g.payGoReward(p)
	}
	g.relocate(p, to)
}

// advanceTo moves p forward to dest, paying the Go reward when the move wraps.
func (g *Game) advanceTo(p *Player, dest int) {
	if dest < p.Position {
		g.payGoReward(p)
	}
	g.relocate(p, dest)
}

func (g *Game) relocate(p *Player, to int) {
	from := p.Position
	g.board.Relocate(p.ID, from, to)
	p.Position = to
	g.emit(p, EventPlayerMove, to, map[string]interface{}{"from": from})
}

func (g *Game) payGoReward(p *Player) {
	ledger.Mint(p.Actor, g.Rules.GoReward)
	g.goRewards++
	g.playerLog(p).WithField("reward", g.Rules.GoReward).Debug("collected Go reward")
	g.emit(p, EventPlayerPassGo, -1, map[string]interface{}{"amount": g.Rules.GoReward})
}

// sendToJail relocates p to the jail without passing Go.
func (g *Game) sendToJail(p *Player) {
	g.relocate(p, g.board.JailIndex())
	p.Jailed = true
	p.JailTurns = 0
	p.Doubles = 0
	g.playerLog(p).Info("sent to jail")
	g.emit(p, EventPlayerJailed, p.Position, nil)
}

// endGame marks the game over once a single player remains.
func (g *Game) endGame() {
	if g.over {
		return
	}
	g.over = true
	fields := logrus.Fields{"players": len(g.players)}
	var winner *Player
	if active := g.ActivePlayers(); len(active) == 1 {
		winner = active[0]
		fields["winner"] = winner.Name
	}
	g.logger.WithFields(fields).Info("game over")
	g.emit(winner, EventGameEnd, -1, nil)
}
