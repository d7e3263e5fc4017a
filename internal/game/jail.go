// internal/game/jail.go
package game

import (
	"github.com/jason-s-yu/monopoly/internal/ledger"
)

// JailChoice is one way of trying to leave jail.
type JailChoice int

const (
	JailRoll JailChoice = iota
	JailPayBail
	JailUseCard
)

func (c JailChoice) String() string {
	switch c {
	case JailPayBail:
		return "Pay bail"
	case JailUseCard:
		return "Use Get Out of Jail Free card"
	default:
		return "Roll for doubles"
	}
}

// JailChoices lists the choices open to the current player. Rolling is always
// legal; bail needs the fee and the card needs a card. Empty when the current
// player is not jailed. Like Snapshot it reads without the lock.
func (g *Game) JailChoices() []JailChoice {
	p := g.CurrentPlayer()
	if p == nil || !p.Jailed || g.over {
		return nil
	}
	return g.jailChoices(p)
}

func (g *Game) jailChoices(p *Player) []JailChoice {
	choices := []JailChoice{JailRoll}
	if ledger.CanAfford(p.Actor, g.Rules.BailFee) {
		choices = append(choices, JailPayBail)
	}
	if p.JailCards > 0 {
		choices = append(choices, JailUseCard)
	}
	return choices
}

// HandleJailChoice plays the current jailed player's turn with the given choice.
func (g *Game) HandleJailChoice(choice JailChoice) (*TurnResult, error) {
	if !g.mu.TryLock() {
		return nil, ErrTurnInProgress
	}
	defer g.mu.Unlock()

	if err := g.checkPlayable(); err != nil {
		return nil, err
	}
	p := g.players[g.turn]
	if !p.Jailed || !containsChoice(g.jailChoices(p), choice) {
		return nil, ErrIllegalMove
	}
	g.started = true
	return g.jailTurn(p, choice), nil
}

func containsChoice(choices []JailChoice, c JailChoice) bool {
	for _, legal := range choices {
		if legal == c {
			return true
		}
	}
	return false
}

// promptJailChoice asks p how to leave jail. Cancelling picks the roll.
func (g *Game) promptJailChoice(p *Player) JailChoice {
	choices := g.jailChoices(p)
	if len(choices) == 1 {
		return JailRoll
	}
	labels := make([]string, len(choices))
	for i, c := range choices {
		labels[i] = c.String()
	}
	i, ok := g.askOne("Jail", p.Name+", you are in jail. What will you do?", labels, 0)
	if !ok {
		return JailRoll
	}
	return choices[i]
}

// jailTurn resolves one jailed turn. Bail and cards release without a roll;
// doubles release and move from the jail; the last failed roll forces release.
func (g *Game) jailTurn(p *Player, choice JailChoice) *TurnResult {
	res := g.newResult(p)
	goBefore := g.goRewards

	switch choice {
	case JailPayBail:
		_ = ledger.Transfer(p.Actor, g.bank, g.Rules.BailFee)
		g.release(p, "bail")
	case JailUseCard:
		p.JailCards--
		g.release(p, "card")
	default:
		d1, d2 := g.roll(p, res)
		res.Doubles = d1 == d2
		if d1 == d2 {
			g.release(p, "doubles")
			g.advance(p, d1+d2)
			g.resolveLanding(p, false)
			break
		}
		p.JailTurns++
		if p.JailTurns >= g.Rules.MaxJailTurns {
			g.forceRelease(p)
		}
	}

	res.Released = !p.Jailed && !p.Eliminated
	return g.finishTurn(p, res, goBefore, false)
}

// forceRelease settles a sentence that has run out: card, then bail, then
// liquidation to raise bail, then bankruptcy to the bank.
func (g *Game) forceRelease(p *Player) {
	switch {
	case p.JailCards > 0:
		p.JailCards--
		g.release(p, "card")
	case ledger.CanAfford(p.Actor, g.Rules.BailFee) || g.liquidate(p, g.Rules.BailFee):
		_ = ledger.Transfer(p.Actor, g.bank, g.Rules.BailFee)
		g.release(p, "bail")
	default:
		g.bankrupt(p, g.bank)
	}
}

func (g *Game) release(p *Player, how string) {
	p.Jailed = false
	p.JailTurns = 0
	p.Doubles = 0
	g.playerLog(p).WithField("via", how).Info("released from jail")
	g.emit(p, EventPlayerReleased, p.Position, map[string]interface{}{"via": how})
}
