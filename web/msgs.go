package web

import (
	"encoding/json"

	"github.com/TomBebb/Monopoly/game"
	"github.com/TomBebb/Monopoly/monopoly"
)

const (
	ActionTurnEnd = "TURN_END"
	ActionGameEnd = "GAME_END"
)

// TurnEnd is broadcast to spectators, and returned to the creator, after every
// turn.
type TurnEnd struct {
	GameID monopoly.GameID     `json:"game_id"`
	Turn   int                 `json:"turn"`
	Status monopoly.GameStatus `json:"status"`
	Events []*Event            `json:"events"`
	State  *monopoly.GameState `json:"state"`
}

func (te *TurnEnd) MarshalJSON() ([]byte, error) {
	type alias TurnEnd
	return withAction(ActionTurnEnd, (*alias)(te))
}

// GameEnd is broadcast once a game reaches its turn limit.
type GameEnd struct {
	GameID    monopoly.GameID  `json:"game_id"`
	Standings []*game.Standing `json:"standings"`
}

func (ge *GameEnd) MarshalJSON() ([]byte, error) {
	type alias GameEnd
	return withAction(ActionGameEnd, (*alias)(ge))
}

// withAction adds an "action" field to msg, which must be a pointer to a struct
// with no MarshalJSON method of its own.
func withAction(action string, msg interface{}) ([]byte, error) {
	dat, err := json.Marshal(msg)
	if err != nil {
		return nil, err
	}
	fields := make(map[string]json.RawMessage)
	if err := json.Unmarshal(dat, &fields); err != nil {
		return nil, err
	}
	if fields["action"], err = json.Marshal(action); err != nil {
		return nil, err
	}
	return json.Marshal(fields)
}

type EventType string

const (
	EventTurnStart      = EventType("TURN_START")
	EventLanded         = EventType("LANDED")
	EventPaidRent       = EventType("PAID_RENT")
	EventBought         = EventType("BOUGHT")
	EventTaxed          = EventType("TAXED")
	EventSentToJail     = EventType("SENT_TO_JAIL")
	EventFreedFromJail  = EventType("FREED_FROM_JAIL")
	EventStillInJail    = EventType("STILL_IN_JAIL")
	EventRolled         = EventType("ROLLED")
	EventCapitalChanged = EventType("CAPITAL_CHANGED")
	EventPickedCard     = EventType("PICKED_CARD")
	EventAddedHouse     = EventType("ADDED_HOUSE")
	EventPassedGo       = EventType("PASSED_GO")
)

// Event is one thing that happened during a turn. Only the fields relevant to
// the Type are set.
type Event struct {
	Type   EventType `json:"type"`
	Turn   int       `json:"turn,omitempty"`
	Player string    `json:"player,omitempty"`
	Space  string    `json:"space,omitempty"`
	Owner  string    `json:"owner,omitempty"`
	// Amount is a decimal number of pounds, as a string.
	Amount  string `json:"amount,omitempty"`
	Dice    []int  `json:"dice,omitempty"`
	Doubles bool   `json:"doubles,omitempty"`
	Cause   string `json:"cause,omitempty"`
	Card    string `json:"card,omitempty"`
	Hotel   bool   `json:"hotel,omitempty"`
}
