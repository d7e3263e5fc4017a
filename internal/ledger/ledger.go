// internal/ledger/ledger.go
package ledger

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// ErrInsufficientFunds is returned when an actor's balance cannot cover a debit.
var ErrInsufficientFunds = errors.New("insufficient funds")

// Kind discriminates the two kinds of economic actor.
type Kind int

const (
	KindBank Kind = iota
	KindPlayer
)

func (k Kind) String() string {
	if k == KindBank {
		return "bank"
	}
	return "player"
}

// Asset is the ledger's view of an ownable property.
type Asset interface {
	SpaceID() int
	Group() string
	SetSize() int
	// Worth is the asset's contribution to its owner's net worth.
	Worth() int
}

// Actor is any party that holds money and property: the bank or a player.
type Actor struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Kind    Kind      `json:"kind"`
	Balance int       `json:"balance"`

	assets map[int]Asset
}

// NewBank builds the bank actor with the given reserve.
func NewBank(reserve int) *Actor {
	return newActor("Bank", KindBank, reserve)
}

// NewPlayer builds a player actor with a starting balance.
func NewPlayer(name string, balance int) *Actor {
	return newActor(name, KindPlayer, balance)
}

func newActor(name string, kind Kind, balance int) *Actor {
	id, _ := uuid.NewRandom()
	return &Actor{
		ID:      id,
		Name:    name,
		Kind:    kind,
		Balance: balance,
		assets:  make(map[int]Asset),
	}
}

// IsBank reports whether a is the bank.
func (a *Actor) IsBank() bool { return a.Kind == KindBank }

func (a *Actor) String() string { return a.Name }

// Credit adds amount to the actor's balance.
func Credit(a *Actor, amount int) {
	a.Balance += amount
}

// Debit removes amount from the actor's balance. The balance may go negative;
// callers check CanAfford first when that is not allowed.
func Debit(a *Actor, amount int) {
	a.Balance -= amount
}

// Transfer moves amount from one actor to another.
func Transfer(from, to *Actor, amount int) error {
	if amount < 0 {
		return fmt.Errorf("transfer of negative amount %d", amount)
	}
	if !from.IsBank() && !CanAfford(from, amount) {
		return fmt.Errorf("%s cannot pay %d to %s: %w", from.Name, amount, to.Name, ErrInsufficientFunds)
	}
	Debit(from, amount)
	Credit(to, amount)
	return nil
}

// Mint credits amount to a without a matching debit. Only the Go reward creates money.
func Mint(a *Actor, amount int) {
	Credit(a, amount)
}

// CanAfford reports whether the actor's balance covers amount.
func CanAfford(a *Actor, amount int) bool {
	return a.Balance >= amount
}

// NetWorth is the balance plus the worth of every owned asset.
func NetWorth(a *Actor) int {
	total := a.Balance
	for _, asset := range a.assets {
		total += asset.Worth()
	}
	return total
}

// Assets returns the actor's holdings ordered by board position.
func Assets(a *Actor) []Asset {
	out := make([]Asset, 0, len(a.assets))
	for _, asset := range a.assets {
		out = append(out, asset)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SpaceID() < out[j].SpaceID() })
	return out
}

// Owns reports whether the actor holds the asset on the given space.
func Owns(a *Actor, spaceID int) bool {
	_, ok := a.assets[spaceID]
	return ok
}

// CountInGroup counts the actor's holdings in a group.
func CountInGroup(a *Actor, group string) int {
	n := 0
	for _, asset := range a.assets {
		if asset.Group() == group {
			n++
		}
	}
	return n
}

// OwnsSet reports whether the actor holds every asset of the asset's group.
func OwnsSet(a *Actor, asset Asset) bool {
	return CountInGroup(a, asset.Group()) == asset.SetSize()
}

// AddAsset records the asset as held by a. Ownership changes go through
// board.Property.SetOwner, which keeps both sides consistent.
func AddAsset(a *Actor, asset Asset) {
	a.assets[asset.SpaceID()] = asset
}

// RemoveAsset drops the asset from a's holdings.
func RemoveAsset(a *Actor, asset Asset) {
	delete(a.assets, asset.SpaceID())
}
