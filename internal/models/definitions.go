// internal/models/definitions.go
package models

// SpaceKind names a board space variant as it appears in a board definition.
type SpaceKind string

const (
	SpaceGo          SpaceKind = "Go"
	SpaceStreet      SpaceKind = "Property"
	SpaceRailroad    SpaceKind = "Railroad"
	SpaceUtility     SpaceKind = "Utility"
	SpaceTax         SpaceKind = "Tax"
	SpaceCardDraw    SpaceKind = "CardManager"
	SpaceJail        SpaceKind = "Jail"
	SpaceGoToJail    SpaceKind = "GoToJail"
	SpaceFreeParking SpaceKind = "FreeParking"
)

// DeckKind identifies one of the two card decks.
type DeckKind string

const (
	DeckChance         DeckKind = "Chance"
	DeckCommunityChest DeckKind = "Community Chest"
)

// SpaceRecord is one parsed row of a board definition.
type SpaceRecord struct {
	Index int       `json:"index"`
	Kind  SpaceKind `json:"kind"`
	Name  string    `json:"name"`
	Group string    `json:"group,omitempty"`
	Price int       `json:"price,omitempty"`

	// HouseCost is the development cost of a street; zero falls back to DefaultHouseCost.
	HouseCost int `json:"houseCost,omitempty"`

	// Rents is base;h1;h2;h3;h4;hotel for streets. Empty for every other kind.
	Rents []int `json:"rents,omitempty"`

	// Action is the tax amount for Tax spaces and the deck name for CardManager spaces.
	Action string `json:"action,omitempty"`
}

// CardRecord is one parsed row of a card definition.
type CardRecord struct {
	Name string   `json:"name"`
	Deck DeckKind `json:"deck"`

	// Payment is paid by the bank to the drawer when positive, by the drawer to the bank when negative.
	Payment int `json:"payment,omitempty"`

	GetOutOfJail bool `json:"getOutOfJail,omitempty"`
	GoToJail     bool `json:"goToJail,omitempty"`

	PerDevelopment bool `json:"perDevelopment,omitempty"`
	HouseCost      int  `json:"houseCost,omitempty"`
	HotelCost      int  `json:"hotelCost,omitempty"`

	AdvanceTo bool `json:"advanceTo,omitempty"`
	Location  int  `json:"location,omitempty"`

	AdvanceBy bool `json:"advanceBy,omitempty"`
	Steps     int  `json:"steps,omitempty"`

	// PerPlayer: positive means the drawer pays each other player, negative means each pays the drawer.
	PerPlayer    bool `json:"perPlayer,omitempty"`
	PlayerAmount int  `json:"playerAmount,omitempty"`

	Nearest     bool      `json:"nearest,omitempty"`
	NearestType SpaceKind `json:"nearestType,omitempty"` // SpaceRailroad or SpaceUtility
}
