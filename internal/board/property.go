// internal/board/property.go
package board

import (
	"errors"
	"fmt"

	"github.com/jason-s-yu/monopoly/internal/ledger"
)

// Errors returned for illegal property transitions. None of them change state.
var (
	ErrMortgaged      = errors.New("property is mortgaged")
	ErrNotMortgaged   = errors.New("property is not mortgaged")
	ErrDeveloped      = errors.New("property is developed")
	ErrNotDeveloped   = errors.New("property has no development")
	ErrIncompleteSet  = errors.New("owner does not hold the full set")
	ErrMaxDevelopment = errors.New("property already has a hotel")
	ErrNotDevelopable = errors.New("only streets can be developed")
	ErrBankOwned      = errors.New("property is owned by the bank")
	ErrSetMortgaged   = errors.New("another property in the set is mortgaged")
)

// MaxHouses is the number of houses a street holds before it converts to a hotel.
const MaxHouses = 4

// Property is an ownable space: a Street, Railroad or Utility.
type Property struct {
	spaceID int
	Name    string `json:"name"`
	Kind    Kind   `json:"kind"`
	group   string
	setSize int

	Price           int    `json:"price"`
	BaseRent        int    `json:"baseRent,omitempty"`
	HouseRent       [4]int `json:"houseRent,omitempty"`
	HotelRent       int    `json:"hotelRent,omitempty"`
	MortgageValue   int    `json:"mortgageValue"`
	DevelopmentCost int    `json:"developmentCost,omitempty"`

	houses    int
	hotel     bool
	mortgaged bool
	owner     *ledger.Actor

	// set holds every property of the group, this one included.
	set []*Property
}

func (p *Property) SpaceID() int  { return p.spaceID }
func (p *Property) Group() string { return p.group }
func (p *Property) SetSize() int  { return p.setSize }

// Worth is half the price plus half of the spent development cost, or 0 when mortgaged.
// Development counts at its sale value rather than its full cost so that net worth
// never promises more cash than liquidation can raise.
func (p *Property) Worth() int {
	if p.mortgaged {
		return 0
	}
	return p.Price/2 + p.Units()*p.DevelopmentCost/2
}

func (p *Property) Owner() *ledger.Actor { return p.owner }
func (p *Property) Houses() int          { return p.houses }
func (p *Property) HasHotel() bool       { return p.hotel }
func (p *Property) Mortgaged() bool      { return p.mortgaged }
func (p *Property) Developed() bool      { return p.houses > 0 || p.hotel }

// Units counts development units; a hotel is worth five.
func (p *Property) Units() int {
	if p.hotel {
		return MaxHouses + 1
	}
	return p.houses
}

// SetOwner reassigns ownership, keeping both actors' holdings consistent.
func (p *Property) SetOwner(a *ledger.Actor) {
	if p.owner != nil {
		ledger.RemoveAsset(p.owner, p)
	}
	p.owner = a
	ledger.AddAsset(a, p)
}

// Interest is the 10% charge on the mortgage value.
func (p *Property) Interest() int {
	return p.MortgageValue / 10
}

// PayoffCost is what lifting the mortgage costs: the mortgage value plus interest.
func (p *Property) PayoffCost() int {
	return p.MortgageValue + p.Interest()
}

// Rent is what a visitor owes the owner. roll is the visitor's dice total, used by utilities.
func (p *Property) Rent(roll int) int {
	if p.mortgaged || p.owner == nil || p.owner.IsBank() {
		return 0
	}
	switch p.Kind {
	case KindRailroad:
		return RailroadRent(ledger.CountInGroup(p.owner, p.group))
	case KindUtility:
		if ledger.CountInGroup(p.owner, p.group) >= 2 {
			return roll * 10
		}
		return roll * 4
	default:
		switch {
		case p.hotel:
			return p.HotelRent
		case p.houses > 0:
			return p.HouseRent[p.houses-1]
		case ledger.OwnsSet(p.owner, p):
			return p.BaseRent * 2
		}
		return p.BaseRent
	}
}

// ChanceRent is the rent charged when a card sends a player to the nearest railroad or utility:
// double railroad rent, or ten times the roll for a utility.
func (p *Property) ChanceRent(roll int) int {
	if p.mortgaged || p.owner == nil || p.owner.IsBank() {
		return 0
	}
	switch p.Kind {
	case KindRailroad:
		return p.Rent(roll) * 2
	case KindUtility:
		return roll * 10
	}
	return p.Rent(roll)
}

// RailroadRent is 12.5 doubled per railroad beyond the first, truncated: 12, 25, 50, 100.
func RailroadRent(owned int) int {
	if owned <= 0 {
		return 0
	}
	return (25 << (owned - 1)) / 2
}

// Mortgage pays the owner the mortgage value from the bank.
func (p *Property) Mortgage(bank *ledger.Actor) error {
	if p.owner.IsBank() {
		return ErrBankOwned
	}
	if p.mortgaged {
		return ErrMortgaged
	}
	if p.Developed() {
		return ErrDeveloped
	}
	if err := ledger.Transfer(bank, p.owner, p.MortgageValue); err != nil {
		return err
	}
	p.mortgaged = true
	return nil
}

// Unmortgage charges the owner the payoff cost and lifts the mortgage.
func (p *Property) Unmortgage(bank *ledger.Actor) error {
	if !p.mortgaged {
		return ErrNotMortgaged
	}
	if err := ledger.Transfer(p.owner, bank, p.PayoffCost()); err != nil {
		return err
	}
	p.mortgaged = false
	return nil
}

// CanBuild reports why a development cannot be bought, or nil.
func (p *Property) CanBuild() error {
	if p.Kind != KindStreet {
		return ErrNotDevelopable
	}
	if p.owner.IsBank() {
		return ErrBankOwned
	}
	if p.mortgaged {
		return ErrMortgaged
	}
	if p.hotel {
		return ErrMaxDevelopment
	}
	if !ledger.OwnsSet(p.owner, p) {
		return ErrIncompleteSet
	}
	for _, other := range p.set {
		if other.mortgaged {
			return ErrSetMortgaged
		}
	}
	return nil
}

// Build buys one development: a house, or a hotel in place of four houses.
func (p *Property) Build(bank *ledger.Actor) error {
	if err := p.CanBuild(); err != nil {
		return err
	}
	if err := ledger.Transfer(p.owner, bank, p.DevelopmentCost); err != nil {
		return fmt.Errorf("build on %s: %w", p.Name, err)
	}
	if p.houses == MaxHouses {
		p.houses = 0
		p.hotel = true
	} else {
		p.houses++
	}
	return nil
}

// SellDevelopment sells one unit back to the bank for half its cost. A hotel becomes four houses.
func (p *Property) SellDevelopment(bank *ledger.Actor) error {
	if !p.Developed() {
		return ErrNotDeveloped
	}
	if err := ledger.Transfer(bank, p.owner, p.DevelopmentCost/2); err != nil {
		return err
	}
	if p.hotel {
		p.hotel = false
		p.houses = MaxHouses
	} else {
		p.houses--
	}
	return nil
}

// Repossess returns the property to the bank with no development and no mortgage.
func (p *Property) Repossess(bank *ledger.Actor) {
	p.houses = 0
	p.hotel = false
	p.mortgaged = false
	p.SetOwner(bank)
}
