// internal/board/board.go
package board

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/google/uuid"
	"github.com/jason-s-yu/monopoly/internal/ledger"
	"github.com/jason-s-yu/monopoly/internal/models"
)

// Size is the number of spaces on every board.
const Size = 40

var (
	ErrInvalidBoard = errors.New("invalid board definition")
	ErrNoSuchSpace  = errors.New("no such space")
)

// Kind is the variant tag of a Space.
type Kind int

const (
	KindGo Kind = iota
	KindStreet
	KindRailroad
	KindUtility
	KindTax
	KindCardDraw
	KindJail
	KindGoToJail
	KindFreeParking
)

var kindNames = map[Kind]string{
	KindGo:          "Go",
	KindStreet:      "Street",
	KindRailroad:    "Railroad",
	KindUtility:     "Utility",
	KindTax:         "Tax",
	KindCardDraw:    "CardDraw",
	KindJail:        "Jail",
	KindGoToJail:    "GoToJail",
	KindFreeParking: "FreeParking",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Unknown"
}

// MarshalText renders the kind by name in snapshots.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Ownable reports whether spaces of this kind carry a Property.
func (k Kind) Ownable() bool {
	return k == KindStreet || k == KindRailroad || k == KindUtility
}

// KindFromRecord maps a definition kind onto a space kind.
func KindFromRecord(k models.SpaceKind) (Kind, bool) {
	switch k {
	case models.SpaceGo:
		return KindGo, true
	case models.SpaceStreet:
		return KindStreet, true
	case models.SpaceRailroad:
		return KindRailroad, true
	case models.SpaceUtility:
		return KindUtility, true
	case models.SpaceTax:
		return KindTax, true
	case models.SpaceCardDraw:
		return KindCardDraw, true
	case models.SpaceJail:
		return KindJail, true
	case models.SpaceGoToJail:
		return KindGoToJail, true
	case models.SpaceFreeParking:
		return KindFreeParking, true
	}
	return 0, false
}

// Space is one of the 40 board positions. Property is set only for ownable kinds,
// Tax only for Tax spaces and Deck only for CardDraw spaces.
type Space struct {
	ID       int
	Name     string
	Kind     Kind
	Property *Property
	Tax      int
	Deck     models.DeckKind

	occupants map[uuid.UUID]struct{}
}

// Occupants lists the players standing on the space.
func (s *Space) Occupants() []uuid.UUID {
	out := make([]uuid.UUID, 0, len(s.occupants))
	for id := range s.occupants {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

// Board is the fixed ring of spaces.
type Board struct {
	spaces     []*Space
	jail       int
	properties []*Property
}

// New builds and validates a board from its definition. Every property starts owned by bank.
func New(defs []models.SpaceRecord, bank *ledger.Actor) (*Board, error) {
	if len(defs) != Size {
		return nil, fmt.Errorf("%w: expected %d spaces, got %d", ErrInvalidBoard, Size, len(defs))
	}

	b := &Board{spaces: make([]*Space, Size), jail: -1}
	goToJail := 0
	groups := make(map[string][]*Property)

	for _, rec := range defs {
		if rec.Index < 0 || rec.Index >= Size {
			return nil, fmt.Errorf("%w: index %d out of range", ErrInvalidBoard, rec.Index)
		}
		if b.spaces[rec.Index] != nil {
			return nil, fmt.Errorf("%w: duplicate index %d", ErrInvalidBoard, rec.Index)
		}
		s, err := newSpace(rec)
		if err != nil {
			return nil, err
		}
		switch s.Kind {
		case KindJail:
			if b.jail >= 0 {
				return nil, fmt.Errorf("%w: more than one jail", ErrInvalidBoard)
			}
			b.jail = s.ID
		case KindGoToJail:
			goToJail++
		}
		if s.Property != nil {
			groups[s.Property.group] = append(groups[s.Property.group], s.Property)
		}
		b.spaces[rec.Index] = s
	}

	if b.spaces[0].Kind != KindGo {
		return nil, fmt.Errorf("%w: space 0 must be Go", ErrInvalidBoard)
	}
	if b.jail < 0 {
		return nil, fmt.Errorf("%w: no jail", ErrInvalidBoard)
	}
	if goToJail == 0 {
		return nil, fmt.Errorf("%w: no go-to-jail space", ErrInvalidBoard)
	}

	for _, set := range groups {
		for _, p := range set {
			p.setSize = len(set)
			p.set = set
		}
	}
	for _, s := range b.spaces {
		if s.Property != nil {
			s.Property.SetOwner(bank)
			b.properties = append(b.properties, s.Property)
		}
	}
	return b, nil
}

func newSpace(rec models.SpaceRecord) (*Space, error) {
	kind, ok := KindFromRecord(rec.Kind)
	if !ok {
		return nil, fmt.Errorf("%w: space %d has unknown kind %q", ErrInvalidBoard, rec.Index, rec.Kind)
	}
	s := &Space{ID: rec.Index, Name: rec.Name, Kind: kind, occupants: make(map[uuid.UUID]struct{})}

	switch kind {
	case KindTax:
		amount, err := strconv.Atoi(rec.Action)
		if err != nil || amount <= 0 {
			return nil, fmt.Errorf("%w: tax space %d has bad amount %q", ErrInvalidBoard, rec.Index, rec.Action)
		}
		s.Tax = amount
	case KindCardDraw:
		deck := models.DeckKind(rec.Action)
		if deck != models.DeckChance && deck != models.DeckCommunityChest {
			return nil, fmt.Errorf("%w: card space %d has unknown deck %q", ErrInvalidBoard, rec.Index, rec.Action)
		}
		s.Deck = deck
	case KindStreet, KindRailroad, KindUtility:
		p, err := newProperty(rec, kind)
		if err != nil {
			return nil, err
		}
		s.Property = p
	}
	return s, nil
}

func newProperty(rec models.SpaceRecord, kind Kind) (*Property, error) {
	if rec.Price <= 0 {
		return nil, fmt.Errorf("%w: property %d has no price", ErrInvalidBoard, rec.Index)
	}
	group := rec.Group
	if group == "" {
		group = kind.String()
	}
	p := &Property{
		spaceID:       rec.Index,
		Name:          rec.Name,
		Kind:          kind,
		group:         group,
		Price:         rec.Price,
		MortgageValue: rec.Price / 2,
	}
	if kind != KindStreet {
		return p, nil
	}

	if len(rec.Rents) != 6 {
		return nil, fmt.Errorf("%w: street %d needs 6 rents, got %d", ErrInvalidBoard, rec.Index, len(rec.Rents))
	}
	p.BaseRent = rec.Rents[0]
	copy(p.HouseRent[:], rec.Rents[1:5])
	p.HotelRent = rec.Rents[5]
	p.DevelopmentCost = rec.HouseCost
	if p.DevelopmentCost <= 0 {
		p.DevelopmentCost = models.DefaultHouseCost
	}
	return p, nil
}

// Space returns the space at id.
func (b *Board) Space(id int) (*Space, error) {
	if id < 0 || id >= len(b.spaces) {
		return nil, fmt.Errorf("%w: %d", ErrNoSuchSpace, id)
	}
	return b.spaces[id], nil
}

func (b *Board) Spaces() []*Space { return b.spaces }

// Properties lists every ownable property in board order.
func (b *Board) Properties() []*Property { return b.properties }

func (b *Board) JailIndex() int { return b.jail }

// Advance computes the position steps away from from, reporting whether the move
// passed or landed on Go. Negative steps move backwards and never pass Go.
func (b *Board) Advance(from, steps int) (int, bool) {
	to := ((from+steps)%Size + Size) % Size
	return to, steps > 0 && from+steps >= Size
}

// Nearest finds the first space of kind strictly ahead of from, wrapping around the board.
func (b *Board) Nearest(from int, kind Kind) (int, bool) {
	for d := 1; d <= Size; d++ {
		id := (from + d) % Size
		if b.spaces[id].Kind == kind {
			return id, true
		}
	}
	return -1, false
}

// Place marks the player as standing on the space.
func (b *Board) Place(player uuid.UUID, at int) {
	b.spaces[at].occupants[player] = struct{}{}
}

// Remove clears the player's marker from the space.
func (b *Board) Remove(player uuid.UUID, at int) {
	delete(b.spaces[at].occupants, player)
}

// Relocate moves the player's marker.
func (b *Board) Relocate(player uuid.UUID, from, to int) {
	b.Remove(player, from)
	b.Place(player, to)
}
