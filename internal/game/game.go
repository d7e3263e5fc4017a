// internal/game/game.go
package game

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jason-s-yu/monopoly/internal/board"
	"github.com/jason-s-yu/monopoly/internal/cache"
	"github.com/jason-s-yu/monopoly/internal/deck"
	"github.com/jason-s-yu/monopoly/internal/ledger"
	"github.com/jason-s-yu/monopoly/internal/models"
	"github.com/sirupsen/logrus"
)

var (
	ErrGameOver       = errors.New("game is over")
	ErrNotReady       = errors.New("game is waiting for players")
	ErrStarted        = errors.New("game has already started")
	ErrTableFull      = errors.New("no free seats")
	ErrTurnInProgress = errors.New("a turn is already being resolved")
	ErrIllegalMove    = errors.New("move is not legal now")
	ErrNotOwner       = errors.New("player does not own that property")
	ErrNoPrompter     = errors.New("a prompter is required")
)

// Config wires a Game to its definitions and collaborators. Zero values fall
// back to the classic board and cards, DefaultRules, random dice and the
// standard logger.
type Config struct {
	Board    []models.SpaceRecord
	Cards    []models.CardRecord
	Rules    Rules
	Prompter Prompter
	Dice     Roller
	Seed     int64 // seeds deck shuffles; zero picks a time-based seed
	Logger   logrus.FieldLogger
	Recorder Recorder

	// BroadcastFn is used to send events to the UI. If nil, no broadcast is done.
	BroadcastFn func(ev GameEvent)
}

// Game holds the entire state for a single match in memory.
type Game struct {
	ID    uuid.UUID
	Rules Rules

	board   *board.Board
	bank    *ledger.Actor
	decks   map[models.DeckKind]*deck.Deck
	players []*Player
	turn    int
	seats   int // required player count, zero until SetPlayerCount

	started   bool
	over      bool
	goRewards int

	dice        Roller
	prompter    Prompter
	logger      logrus.FieldLogger
	recorder    Recorder
	actionIndex int

	// action records wait here for publishLoop; pubMu guards the close
	pubMu     sync.Mutex
	pubClosed bool
	actions   chan cache.GameActionRecord
	published chan struct{}

	// mu is held for the whole resolution chain of a public operation.
	mu sync.Mutex

	BroadcastFn func(ev GameEvent)
}

// New builds a game from validated definitions. Nothing is returned on error.
func New(cfg Config) (*Game, error) {
	if cfg.Prompter == nil {
		return nil, ErrNoPrompter
	}
	rules := cfg.Rules
	if rules == (Rules{}) {
		rules = DefaultRules()
	}
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rules: %w", err)
	}
	defs := cfg.Board
	if defs == nil {
		defs = models.ClassicBoard()
	}
	cards := cfg.Cards
	if cards == nil {
		cards = models.ClassicCards()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	dice := cfg.Dice
	if dice == nil {
		dice = NewRandomDice(seed)
	}

	id, _ := uuid.NewRandom()
	logger = logger.WithField("game", id)

	bank := ledger.NewBank(rules.BankReserve)
	b, err := board.New(defs, bank)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(seed))
	decks := make(map[models.DeckKind]*deck.Deck, 2)
	for _, kind := range []models.DeckKind{models.DeckChance, models.DeckCommunityChest} {
		d, err := deck.New(kind, cards, rng, logger)
		if err != nil {
			return nil, err
		}
		decks[kind] = d
	}

	g := &Game{
		ID:          id,
		Rules:       rules,
		board:       b,
		bank:        bank,
		decks:       decks,
		dice:        dice,
		prompter:    cfg.Prompter,
		logger:      logger,
		recorder:    cfg.Recorder,
		BroadcastFn: cfg.BroadcastFn,
	}
	if g.recorder != nil {
		g.actions = make(chan cache.GameActionRecord, actionQueueSize)
		g.published = make(chan struct{})
		go g.publishLoop()
	}
	return g, nil
}

// SetPlayerCount fixes how many seats must be filled before the first roll.
func (g *Game) SetPlayerCount(n int) error {
	if !g.mu.TryLock() {
		return ErrTurnInProgress
	}
	defer g.mu.Unlock()

	if g.started {
		return ErrStarted
	}
	if n < g.Rules.MinPlayers || n > g.Rules.MaxPlayers {
		return fmt.Errorf("player count must be between %d and %d", g.Rules.MinPlayers, g.Rules.MaxPlayers)
	}
	if n < len(g.players) {
		return fmt.Errorf("%d players have already joined", len(g.players))
	}
	g.seats = n
	return nil
}

// AddPlayer seats a new player on Go with the starting balance. Seats are taken in turn order.
func (g *Game) AddPlayer(name string) (*Player, error) {
	if !g.mu.TryLock() {
		return nil, ErrTurnInProgress
	}
	defer g.mu.Unlock()

	if g.started {
		return nil, ErrStarted
	}
	limit := g.Rules.MaxPlayers
	if g.seats > 0 {
		limit = g.seats
	}
	if len(g.players) >= limit {
		return nil, ErrTableFull
	}

	p := newPlayer(name, g.Rules.StartingBalance)
	g.players = append(g.players, p)
	g.board.Place(p.ID, 0)

	g.logger.WithFields(logrus.Fields{"player": p.Name, "seat": len(g.players) - 1}).Info("player joined")
	g.emit(p, EventPlayerJoin, -1, map[string]interface{}{"balance": p.Balance})
	return p, nil
}

// Ready reports whether every seat is filled.
func (g *Game) Ready() bool {
	if g.seats > 0 {
		return len(g.players) == g.seats
	}
	return len(g.players) >= g.Rules.MinPlayers
}

// CurrentPlayer is the player whose turn it is, or nil before anyone joins.
func (g *Game) CurrentPlayer() *Player {
	if len(g.players) == 0 {
		return nil
	}
	return g.players[g.turn]
}

// Players returns every seat in turn order, eliminated players included.
func (g *Game) Players() []*Player {
	out := make([]*Player, len(g.players))
	copy(out, g.players)
	return out
}

// ActivePlayers returns the seats still in the game.
func (g *Game) ActivePlayers() []*Player {
	var out []*Player
	for _, p := range g.players {
		if !p.Eliminated {
			out = append(out, p)
		}
	}
	return out
}

// Space returns the board space at id.
func (g *Game) Space(id int) (*board.Space, error) {
	return g.board.Space(id)
}

// Bank is the bank actor.
func (g *Game) Bank() *ledger.Actor { return g.bank }

// Over reports whether the game has ended.
func (g *Game) Over() bool { return g.over }

// Winner is the last player standing, or nil while the game runs.
func (g *Game) Winner() *Player {
	if !g.over {
		return nil
	}
	active := g.ActivePlayers()
	if len(active) != 1 {
		return nil
	}
	return active[0]
}

// TotalMoney sums every balance, the bank's and eliminated players' included.
func (g *Game) TotalMoney() int {
	total := g.bank.Balance
	for _, p := range g.players {
		total += p.Balance
	}
	return total
}

// checkPlayable guards every turn operation.
func (g *Game) checkPlayable() error {
	if g.over {
		return ErrGameOver
	}
	if !g.Ready() {
		return ErrNotReady
	}
	return nil
}

// playerFor maps an actor back to its seat; nil for the bank.
func (g *Game) playerFor(a *ledger.Actor) *Player {
	for _, p := range g.players {
		if p.Actor == a {
			return p
		}
	}
	return nil
}

// property looks up an ownable space.
func (g *Game) property(spaceID int) (*board.Property, error) {
	s, err := g.board.Space(spaceID)
	if err != nil {
		return nil, err
	}
	if s.Property == nil {
		return nil, fmt.Errorf("%w: %s cannot be owned", ErrIllegalMove, s.Name)
	}
	return s.Property, nil
}

func (g *Game) playerLog(p *Player) logrus.FieldLogger {
	return g.logger.WithFields(logrus.Fields{"player": p.Name, "position": p.Position, "balance": p.Balance})
}
