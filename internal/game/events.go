// internal/game/events.go
package game

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jason-s-yu/monopoly/internal/cache"
	"github.com/sirupsen/logrus"
)

// GameEventType is an enum-like type for broadcasting game actions.
type GameEventType string

const (
	EventPlayerJoin     GameEventType = "player_join"
	EventPlayerRoll     GameEventType = "player_roll"
	EventPlayerMove     GameEventType = "player_move"
	EventPlayerPassGo   GameEventType = "player_pass_go"
	EventPropertyBuy    GameEventType = "property_purchase"
	EventRentPaid       GameEventType = "rent_paid"
	EventDebtPaid       GameEventType = "debt_paid"
	EventCardDrawn      GameEventType = "card_drawn"
	EventPlayerJailed   GameEventType = "player_jailed"
	EventPlayerReleased GameEventType = "player_released"
	EventAuctionClosed  GameEventType = "auction_closed"
	EventPrivateSale    GameEventType = "private_sale"
	EventLiquidation    GameEventType = "player_liquidation"
	EventBankrupt       GameEventType = "player_bankrupt"
	EventDevelop        GameEventType = "property_develop"
	EventSellDevelop    GameEventType = "property_sell_development"
	EventMortgage       GameEventType = "property_mortgage"
	EventUnmortgage     GameEventType = "property_unmortgage"
	EventGamePlayerTurn GameEventType = "game_player_turn"
	EventGameEnd        GameEventType = "game_end"
	EventInterest       GameEventType = "mortgage_interest"
)

// EventUser identifies a player in event payloads.
type EventUser struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name,omitempty"`
}

// GameEvent holds data about an event that can be broadcast to the UI in a consistent format.
type GameEvent struct {
	Type    GameEventType          `json:"type"`
	User    *EventUser             `json:"user,omitempty"`
	Space   *int                   `json:"space,omitempty"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

// Recorder receives every action for the audit trail. cache.Publisher satisfies it.
type Recorder interface {
	Publish(ctx context.Context, record cache.GameActionRecord) error
}

const (
	actionQueueSize = 256
	publishTimeout  = 2 * time.Second
)

// emit broadcasts the event and records it as an action.
func (g *Game) emit(p *Player, typ GameEventType, space int, payload map[string]interface{}) {
	ev := GameEvent{Type: typ, Payload: payload}
	actor := uuid.Nil
	if p != nil {
		ev.User = &EventUser{ID: p.ID, Name: p.Name}
		actor = p.ID
	}
	if space >= 0 {
		s := space
		ev.Space = &s
		if payload == nil {
			payload = map[string]interface{}{}
		}
		payload["space"] = space
	}
	g.fireEvent(ev)
	g.logAction(actor, string(typ), payload)
}

func (g *Game) fireEvent(ev GameEvent) {
	if g.BroadcastFn != nil {
		g.BroadcastFn(ev)
	}
}

// logAction queues an action record for the publish worker. Records carry a
// strictly increasing action index so the historian can restore order.
func (g *Game) logAction(actorID uuid.UUID, actionType string, payload map[string]interface{}) {
	g.actionIndex++
	if g.recorder == nil {
		return
	}
	if payload == nil {
		payload = make(map[string]interface{})
	}
	record := cache.GameActionRecord{
		GameID:        g.ID,
		ActionIndex:   g.actionIndex,
		ActorID:       actorID,
		ActionType:    actionType,
		ActionPayload: payload,
		Timestamp:     time.Now().UnixMilli(),
	}

	g.pubMu.Lock()
	defer g.pubMu.Unlock()
	if g.pubClosed {
		g.logger.WithField("action", record.ActionIndex).Warn("game closed, action not published")
		return
	}
	g.actions <- record
}

// publishLoop hands queued records to the recorder one at a time, in order.
func (g *Game) publishLoop() {
	defer close(g.published)
	for rec := range g.actions {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		if err := g.recorder.Publish(ctx, rec); err != nil {
			g.logger.WithFields(logrus.Fields{
				"game":   rec.GameID,
				"action": rec.ActionIndex,
			}).WithError(err).Warn("failed to publish game action")
		}
		cancel()
	}
}

// Close stops accepting action records and waits until every queued record has
// been handed to the recorder, or ctx is done. It is safe to call more than once.
func (g *Game) Close(ctx context.Context) error {
	if g.recorder == nil {
		return nil
	}
	g.pubMu.Lock()
	if !g.pubClosed {
		g.pubClosed = true
		close(g.actions)
	}
	g.pubMu.Unlock()

	select {
	case <-g.published:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
