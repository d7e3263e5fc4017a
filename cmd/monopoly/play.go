// cmd/monopoly/play.go
package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/jason-s-yu/monopoly/internal/board"
	"github.com/jason-s-yu/monopoly/internal/game"
)

var errQuit = errors.New("quit")

type menuAction int

const (
	actRoll menuAction = iota
	actJail
	actDevelop
	actSellDevelopment
	actMortgage
	actUnmortgage
	actAuction
	actPrivateSale
	actStatus
	actQuit
)

type menuItem struct {
	label  string
	action menuAction
	jail   game.JailChoice
}

// driver runs a hot-seat game on one prompter. In auto mode every player just
// rolls and the prompter answers everything else.
type driver struct {
	g        *game.Game
	prompt   game.Prompter
	out      io.Writer
	auto     bool
	maxTurns int // 0 means no limit
}

func (d *driver) run() error {
	turns := 0
	for !d.g.Over() {
		if d.maxTurns > 0 && turns >= d.maxTurns {
			fmt.Fprintf(d.out, "stopping after %d turns\n", turns)
			d.standings()
			return nil
		}
		if d.auto {
			res, err := d.g.RollAndAdvance()
			if err != nil {
				return err
			}
			d.report(res)
			turns++
			continue
		}

		rolled, err := d.interactiveStep()
		if err != nil {
			return err
		}
		if rolled {
			turns++
		}
	}
	if w := d.g.Winner(); w != nil {
		fmt.Fprintf(d.out, "%s wins with $%d\n", w.Name, w.Balance)
	}
	d.standings()
	return nil
}

// interactiveStep shows the current player's menu and performs one choice.
func (d *driver) interactiveStep() (bool, error) {
	p := d.g.CurrentPlayer()
	items := d.menu(p)
	labels := make([]string, len(items))
	for i, it := range items {
		labels[i] = it.label
	}
	title := fmt.Sprintf("%s ($%d, on %s)", p.Name, p.Balance, d.spaceName(p.Position))
	i, ok := d.prompt.ChooseOne(title, "What next?", labels, 0)
	if !ok {
		return false, errQuit
	}

	item := items[i]
	switch item.action {
	case actRoll:
		res, err := d.g.RollAndAdvance()
		if err != nil {
			return false, err
		}
		d.report(res)
		return true, nil
	case actJail:
		res, err := d.g.HandleJailChoice(item.jail)
		if err != nil {
			return false, err
		}
		d.report(res)
		return true, nil
	case actDevelop:
		d.manage(p, "build on", d.g.Develop)
	case actSellDevelopment:
		d.manage(p, "sell a building on", d.g.SellDevelopment)
	case actMortgage:
		d.manage(p, "mortgage", d.g.Mortgage)
	case actUnmortgage:
		d.manage(p, "lift the mortgage on", d.g.Unmortgage)
	case actAuction:
		d.auction(p)
	case actPrivateSale:
		d.privateSale(p)
	case actStatus:
		d.standings()
	case actQuit:
		return false, errQuit
	}
	return false, nil
}

func (d *driver) menu(p *game.Player) []menuItem {
	var items []menuItem
	if choices := d.g.JailChoices(); len(choices) > 0 {
		for _, c := range choices {
			items = append(items, menuItem{label: c.String(), action: actJail, jail: c})
		}
	} else {
		items = append(items, menuItem{label: "Roll the dice", action: actRoll})
	}
	if len(p.Properties()) > 0 {
		items = append(items,
			menuItem{label: "Build", action: actDevelop},
			menuItem{label: "Sell a building", action: actSellDevelopment},
			menuItem{label: "Mortgage", action: actMortgage},
			menuItem{label: "Lift a mortgage", action: actUnmortgage},
			menuItem{label: "Auction a property", action: actAuction},
			menuItem{label: "Sell to another player", action: actPrivateSale},
		)
	}
	return append(items,
		menuItem{label: "Standings", action: actStatus},
		menuItem{label: "Quit", action: actQuit},
	)
}

// pickProperty asks p which of their properties to act on.
func (d *driver) pickProperty(p *game.Player, verb string) (*board.Property, bool) {
	props := p.Properties()
	if len(props) == 0 {
		return nil, false
	}
	labels := make([]string, len(props))
	for i, prop := range props {
		labels[i] = describe(prop)
	}
	i, ok := d.prompt.ChooseOne(p.Name, "Which property do you want to "+verb+"?", labels, 0)
	if !ok {
		return nil, false
	}
	return props[i], true
}

func (d *driver) manage(p *game.Player, verb string, op func(spaceID int) error) {
	prop, ok := d.pickProperty(p, verb)
	if !ok {
		return
	}
	if err := op(prop.SpaceID()); err != nil {
		fmt.Fprintf(d.out, "cannot %s %s: %v\n", verb, prop.Name, err)
		return
	}
	fmt.Fprintf(d.out, "%s: %s, balance $%d\n", p.Name, describe(prop), p.Balance)
}

func (d *driver) auction(p *game.Player) {
	prop, ok := d.pickProperty(p, "auction")
	if !ok {
		return
	}
	res, err := d.g.HandleAuction(prop.SpaceID())
	switch {
	case err != nil:
		fmt.Fprintf(d.out, "cannot auction %s: %v\n", prop.Name, err)
	case res.Sold:
		fmt.Fprintf(d.out, "%s sold to %s for $%d\n", res.Property, res.Winner, res.Bid)
	case res.Vetoed:
		fmt.Fprintf(d.out, "%s kept %s\n", p.Name, res.Property)
	default:
		fmt.Fprintf(d.out, "no bids for %s\n", res.Property)
	}
}

func (d *driver) privateSale(p *game.Player) {
	prop, ok := d.pickProperty(p, "sell")
	if !ok {
		return
	}
	res, err := d.g.HandlePrivateSale(prop.SpaceID())
	switch {
	case err != nil:
		fmt.Fprintf(d.out, "cannot sell %s: %v\n", prop.Name, err)
	case res.Sold:
		fmt.Fprintf(d.out, "%s sold to %s for $%d\n", res.Property, res.Buyer, res.Price)
	default:
		fmt.Fprintf(d.out, "%s was not sold\n", res.Property)
	}
}

func (d *driver) report(res *game.TurnResult) {
	if res.Rolled {
		fmt.Fprintf(d.out, "%s rolled %d+%d", res.Player, res.Dice[0], res.Dice[1])
	} else {
		fmt.Fprint(d.out, res.Player)
	}
	if res.From != res.To {
		fmt.Fprintf(d.out, " and moved from %s to %s", d.spaceName(res.From), d.spaceName(res.To))
	}
	fmt.Fprintln(d.out)

	switch {
	case res.Eliminated:
		fmt.Fprintf(d.out, "%s is bankrupt\n", res.Player)
	case res.Jailed:
		fmt.Fprintf(d.out, "%s is in jail\n", res.Player)
	case res.Released:
		fmt.Fprintf(d.out, "%s is out of jail\n", res.Player)
	}
	if res.ExtraTurn {
		fmt.Fprintf(d.out, "doubles, %s goes again\n", res.Player)
	}
}

func (d *driver) standings() {
	for _, p := range d.g.Players() {
		state := fmt.Sprintf("$%d, net worth $%d, %d properties", p.Balance, p.NetWorth(), len(p.Properties()))
		if p.Eliminated {
			state = "bankrupt"
		}
		fmt.Fprintf(d.out, "  %-10s %s\n", p.Name, state)
	}
}

func (d *driver) spaceName(id int) string {
	s, err := d.g.Space(id)
	if err != nil {
		return fmt.Sprint(id)
	}
	return s.Name
}

func describe(prop *board.Property) string {
	switch {
	case prop.Mortgaged():
		return prop.Name + " (mortgaged)"
	case prop.HasHotel():
		return prop.Name + " (hotel)"
	case prop.Houses() > 0:
		return fmt.Sprintf("%s (%d houses)", prop.Name, prop.Houses())
	}
	return prop.Name
}
