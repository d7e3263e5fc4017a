// internal/models/classic.go
package models

// DefaultHouseCost is used for streets whose definition carries no house cost.
const DefaultHouseCost = 50

// ClassicBoard returns the standard 40-space board, in index order.
func ClassicBoard() []SpaceRecord {
	street := func(i int, name, group string, price int, houseCost int, rents ...int) SpaceRecord {
		return SpaceRecord{Index: i, Kind: SpaceStreet, Name: name, Group: group, Price: price, HouseCost: houseCost, Rents: rents}
	}
	railroad := func(i int, name string) SpaceRecord {
		return SpaceRecord{Index: i, Kind: SpaceRailroad, Name: name, Group: "Railroad", Price: 200}
	}
	utility := func(i int, name string) SpaceRecord {
		return SpaceRecord{Index: i, Kind: SpaceUtility, Name: name, Group: "Utility", Price: 150}
	}
	cards := func(i int, deck DeckKind) SpaceRecord {
		return SpaceRecord{Index: i, Kind: SpaceCardDraw, Name: string(deck), Action: string(deck)}
	}

	return []SpaceRecord{
		{Index: 0, Kind: SpaceGo, Name: "Go"},
		street(1, "Mediterranean Avenue", "Brown", 60, 50, 2, 10, 30, 90, 160, 250),
		cards(2, DeckCommunityChest),
		street(3, "Baltic Avenue", "Brown", 60, 50, 4, 20, 60, 180, 320, 450),
		{Index: 4, Kind: SpaceTax, Name: "Income Tax", Action: "200"},
		railroad(5, "Reading Railroad"),
		street(6, "Oriental Avenue", "Light Blue", 100, 50, 6, 30, 90, 270, 400, 550),
		cards(7, DeckChance),
		street(8, "Vermont Avenue", "Light Blue", 100, 50, 6, 30, 90, 270, 400, 550),
		street(9, "Connecticut Avenue", "Light Blue", 120, 50, 8, 40, 100, 300, 450, 600),
		{Index: 10, Kind: SpaceJail, Name: "Jail"},
		street(11, "St. Charles Place", "Pink", 140, 100, 10, 50, 150, 450, 625, 750),
		utility(12, "Electric Company"),
		street(13, "States Avenue", "Pink", 140, 100, 10, 50, 150, 450, 625, 750),
		street(14, "Virginia Avenue", "Pink", 160, 100, 12, 60, 180, 500, 700, 900),
		railroad(15, "Pennsylvania Railroad"),
		street(16, "St. James Place", "Orange", 180, 100, 14, 70, 200, 550, 750, 950),
		cards(17, DeckCommunityChest),
		street(18, "Tennessee Avenue", "Orange", 180, 100, 14, 70, 200, 550, 750, 950),
		street(19, "New York Avenue", "Orange", 200, 100, 16, 80, 220, 600, 800, 1000),
		{Index: 20, Kind: SpaceFreeParking, Name: "Free Parking"},
		street(21, "Kentucky Avenue", "Red", 220, 150, 18, 90, 250, 700, 875, 1050),
		cards(22, DeckChance),
		street(23, "Indiana Avenue", "Red", 220, 150, 18, 90, 250, 700, 875, 1050),
		street(24, "Illinois Avenue", "Red", 240, 150, 20, 100, 300, 750, 925, 1100),
		railroad(25, "B. & O. Railroad"),
		street(26, "Atlantic Avenue", "Yellow", 260, 150, 22, 110, 330, 800, 975, 1150),
		street(27, "Ventnor Avenue", "Yellow", 260, 150, 22, 110, 330, 800, 975, 1150),
		utility(28, "Water Works"),
		street(29, "Marvin Gardens", "Yellow", 280, 150, 24, 120, 360, 850, 1025, 1200),
		{Index: 30, Kind: SpaceGoToJail, Name: "Go To Jail"},
		street(31, "Pacific Avenue", "Green", 300, 200, 26, 130, 390, 900, 1100, 1275),
		street(32, "North Carolina Avenue", "Green", 300, 200, 26, 130, 390, 900, 1100, 1275),
		cards(33, DeckCommunityChest),
		street(34, "Pennsylvania Avenue", "Green", 320, 200, 28, 150, 450, 1000, 1200, 1400),
		railroad(35, "Short Line"),
		cards(36, DeckChance),
		street(37, "Park Place", "Dark Blue", 350, 200, 35, 175, 500, 1100, 1300, 1500),
		{Index: 38, Kind: SpaceTax, Name: "Luxury Tax", Action: "100"},
		street(39, "Boardwalk", "Dark Blue", 400, 200, 50, 200, 600, 1400, 1700, 2000),
	}
}

// ClassicCards returns the standard Chance and Community Chest cards.
func ClassicCards() []CardRecord {
	chance := func(c CardRecord) CardRecord { c.Deck = DeckChance; return c }
	chest := func(c CardRecord) CardRecord { c.Deck = DeckCommunityChest; return c }

	return []CardRecord{
		chance(CardRecord{Name: "Advance to Boardwalk", AdvanceTo: true, Location: 39}),
		chance(CardRecord{Name: "Advance to Go (Collect $200)", AdvanceTo: true, Location: 0}),
		chance(CardRecord{Name: "Advance to Illinois Avenue", AdvanceTo: true, Location: 24}),
		chance(CardRecord{Name: "Advance to St. Charles Place", AdvanceTo: true, Location: 11}),
		chance(CardRecord{Name: "Advance to the nearest Railroad", Nearest: true, NearestType: SpaceRailroad}),
		chance(CardRecord{Name: "Advance to the nearest Railroad", Nearest: true, NearestType: SpaceRailroad}),
		chance(CardRecord{Name: "Advance token to nearest Utility", Nearest: true, NearestType: SpaceUtility}),
		chance(CardRecord{Name: "Bank pays you dividend of $50", Payment: 50}),
		chance(CardRecord{Name: "Get Out of Jail Free", GetOutOfJail: true}),
		chance(CardRecord{Name: "Go Back 3 Spaces", AdvanceBy: true, Steps: -3}),
		chance(CardRecord{Name: "Go to Jail", GoToJail: true}),
		chance(CardRecord{Name: "Make general repairs on all your property", PerDevelopment: true, HouseCost: 25, HotelCost: 100}),
		chance(CardRecord{Name: "Speeding fine $15", Payment: -15}),
		chance(CardRecord{Name: "Take a trip to Reading Railroad", AdvanceTo: true, Location: 5}),
		chance(CardRecord{Name: "You have been elected Chairman of the Board", PerPlayer: true, PlayerAmount: 50}),
		chance(CardRecord{Name: "Your building loan matures", Payment: 150}),

		chest(CardRecord{Name: "Advance to Go (Collect $200)", AdvanceTo: true, Location: 0}),
		chest(CardRecord{Name: "Bank error in your favor", Payment: 200}),
		chest(CardRecord{Name: "Doctor's fee", Payment: -50}),
		chest(CardRecord{Name: "From sale of stock you get $50", Payment: 50}),
		chest(CardRecord{Name: "Get Out of Jail Free", GetOutOfJail: true}),
		chest(CardRecord{Name: "Go to Jail", GoToJail: true}),
		chest(CardRecord{Name: "Holiday fund matures", Payment: 100}),
		chest(CardRecord{Name: "Income tax refund", Payment: 20}),
		chest(CardRecord{Name: "It is your birthday", PerPlayer: true, PlayerAmount: -10}),
		chest(CardRecord{Name: "Life insurance matures", Payment: 100}),
		chest(CardRecord{Name: "Pay hospital fees of $100", Payment: -100}),
		chest(CardRecord{Name: "Pay school fees of $50", Payment: -50}),
		chest(CardRecord{Name: "Receive $25 consultancy fee", Payment: 25}),
		chest(CardRecord{Name: "You are assessed for street repair", PerDevelopment: true, HouseCost: 40, HotelCost: 115}),
		chest(CardRecord{Name: "You have won second prize in a beauty contest", Payment: 10}),
		chest(CardRecord{Name: "You inherit $100", Payment: 100}),
	}
}
