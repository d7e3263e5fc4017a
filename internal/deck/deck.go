// internal/deck/deck.go
package deck

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/jason-s-yu/monopoly/internal/board"
	"github.com/jason-s-yu/monopoly/internal/models"
	"github.com/sirupsen/logrus"
)

var ErrInvalidCard = errors.New("invalid card definition")

// Card is an immutable effect descriptor. Effects are applied in field order by the game.
type Card struct {
	Name string          `json:"name"`
	Deck models.DeckKind `json:"deck"`

	GetOutOfJail bool `json:"getOutOfJail,omitempty"`
	GoToJail     bool `json:"goToJail,omitempty"`

	// AdvanceTo is an absolute destination, nil when the card does not move the drawer there.
	AdvanceTo *int `json:"advanceTo,omitempty"`
	AdvanceBy int  `json:"advanceBy,omitempty"`

	// PerPlayer > 0: drawer pays each other player. < 0: each other player pays the drawer.
	PerPlayer int `json:"perPlayer,omitempty"`
	// Payment > 0: bank pays the drawer. < 0: drawer pays the bank.
	Payment int `json:"payment,omitempty"`

	PerDevelopment bool `json:"perDevelopment,omitempty"`
	HouseCost      int  `json:"houseCost,omitempty"`
	HotelCost      int  `json:"hotelCost,omitempty"`

	// Nearest is KindRailroad or KindUtility for advance-to-nearest cards, KindGo otherwise.
	Nearest board.Kind `json:"nearest,omitempty"`
}

// AdvancesToNearest reports whether the card sends the drawer to the nearest railroad or utility.
func (c Card) AdvancesToNearest() bool {
	return c.Nearest == board.KindRailroad || c.Nearest == board.KindUtility
}

// FromRecord converts and validates one card definition.
func FromRecord(rec models.CardRecord) (Card, error) {
	if rec.Deck != models.DeckChance && rec.Deck != models.DeckCommunityChest {
		return Card{}, fmt.Errorf("%w: %q belongs to unknown deck %q", ErrInvalidCard, rec.Name, rec.Deck)
	}
	c := Card{
		Name:         rec.Name,
		Deck:         rec.Deck,
		GetOutOfJail: rec.GetOutOfJail,
		GoToJail:     rec.GoToJail,
		Payment:      rec.Payment,
	}
	effects := 0
	if c.GetOutOfJail {
		effects++
	}
	if c.GoToJail {
		effects++
	}
	if c.Payment != 0 {
		effects++
	}
	if rec.AdvanceTo {
		if rec.Location < 0 || rec.Location >= board.Size {
			return Card{}, fmt.Errorf("%w: %q advances to %d", ErrInvalidCard, rec.Name, rec.Location)
		}
		loc := rec.Location
		c.AdvanceTo = &loc
		effects++
	}
	if rec.AdvanceBy && rec.Steps != 0 {
		c.AdvanceBy = rec.Steps
		effects++
	}
	if rec.PerPlayer && rec.PlayerAmount != 0 {
		c.PerPlayer = rec.PlayerAmount
		effects++
	}
	if rec.PerDevelopment {
		if rec.HouseCost < 0 || rec.HotelCost < 0 {
			return Card{}, fmt.Errorf("%w: %q has negative repair costs", ErrInvalidCard, rec.Name)
		}
		c.PerDevelopment = true
		c.HouseCost = rec.HouseCost
		c.HotelCost = rec.HotelCost
		effects++
	}
	if rec.Nearest {
		switch rec.NearestType {
		case models.SpaceRailroad:
			c.Nearest = board.KindRailroad
		case models.SpaceUtility:
			c.Nearest = board.KindUtility
		default:
			return Card{}, fmt.Errorf("%w: %q has nearest type %q", ErrInvalidCard, rec.Name, rec.NearestType)
		}
		effects++
	}
	if effects == 0 {
		return Card{}, fmt.Errorf("%w: %q has no effect", ErrInvalidCard, rec.Name)
	}
	return c, nil
}

// Deck draws cards of one kind without replacement and rebuilds itself from the
// full card set once exhausted.
type Deck struct {
	kind      models.DeckKind
	source    []Card
	remaining []Card
	rng       *rand.Rand
	logger    logrus.FieldLogger
}

// New builds the deck of the given kind from every matching record.
func New(kind models.DeckKind, records []models.CardRecord, rng *rand.Rand, logger logrus.FieldLogger) (*Deck, error) {
	d := &Deck{kind: kind, rng: rng, logger: logger}
	for _, rec := range records {
		if rec.Deck != kind {
			continue
		}
		c, err := FromRecord(rec)
		if err != nil {
			return nil, err
		}
		d.source = append(d.source, c)
	}
	if len(d.source) == 0 {
		return nil, fmt.Errorf("%w: deck %q is empty", ErrInvalidCard, kind)
	}
	d.rebuild()
	return d, nil
}

func (d *Deck) Kind() models.DeckKind { return d.kind }

// Remaining is the number of cards left before the next rebuild.
func (d *Deck) Remaining() int { return len(d.remaining) }

// Size is the number of cards in a full deck.
func (d *Deck) Size() int { return len(d.source) }

// Draw removes and returns the top card.
func (d *Deck) Draw() Card {
	if len(d.remaining) == 0 {
		d.logger.WithField("deck", d.kind).Debug("deck exhausted, rebuilding")
		d.rebuild()
	}
	last := len(d.remaining) - 1
	c := d.remaining[last]
	d.remaining = d.remaining[:last]
	return c
}

func (d *Deck) rebuild() {
	d.remaining = make([]Card, len(d.source))
	copy(d.remaining, d.source)
	d.rng.Shuffle(len(d.remaining), func(i, j int) {
		d.remaining[i], d.remaining[j] = d.remaining[j], d.remaining[i]
	})
}
