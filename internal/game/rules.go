// internal/game/rules.go
package game

import (
	"fmt"
	"math"
)

// Rules holds the tunable constants of a match.
type Rules struct {
	StartingBalance int `json:"startingBalance"` // cash each player starts with
	GoReward        int `json:"goReward"`        // paid for passing or landing on Go
	BailFee         int `json:"bailFee"`         // cost of leaving jail early
	MaxJailTurns    int `json:"maxJailTurns"`    // failed rolls before release becomes mandatory
	BankReserve     int `json:"bankReserve"`     // the bank's opening balance
	MinPlayers      int `json:"minPlayers"`
	MaxPlayers      int `json:"maxPlayers"`
	PromptAttempts  int `json:"promptAttempts"` // invalid answers tolerated before a prompt counts as cancelled
}

// DefaultRules returns the standard rules.
func DefaultRules() Rules {
	return Rules{
		StartingBalance: 1500,
		GoReward:        200,
		BailFee:         50,
		MaxJailTurns:    3,
		BankReserve:     math.MaxInt32,
		MinPlayers:      2,
		MaxPlayers:      4,
		PromptAttempts:  5,
	}
}

// Update will update the rules with the new values provided.
// If a rule is not set or defined, it will be ignored, and the old value will persist.
func (rules *Rules) Update(newRules map[string]interface{}) error {
	assignInt := func(field *int, key string, minVal int) error {
		val, exists := newRules[key]
		if !exists || val == nil {
			return nil
		}
		// JSON numbers decode as float64
		switch v := val.(type) {
		case float64:
			*field = int(v)
		case int:
			*field = v
		default:
			return fmt.Errorf("invalid type for %s", key)
		}
		if *field < minVal {
			return fmt.Errorf("%s must be at least %d", key, minVal)
		}
		return nil
	}

	if err := assignInt(&rules.StartingBalance, "startingBalance", 0); err != nil {
		return err
	}
	if err := assignInt(&rules.GoReward, "goReward", 0); err != nil {
		return err
	}
	if err := assignInt(&rules.BailFee, "bailFee", 0); err != nil {
		return err
	}
	if err := assignInt(&rules.MaxJailTurns, "maxJailTurns", 1); err != nil {
		return err
	}
	if err := assignInt(&rules.BankReserve, "bankReserve", 0); err != nil {
		return err
	}
	if err := assignInt(&rules.MinPlayers, "minPlayers", 2); err != nil {
		return err
	}
	if err := assignInt(&rules.MaxPlayers, "maxPlayers", 2); err != nil {
		return err
	}
	if err := assignInt(&rules.PromptAttempts, "promptAttempts", 1); err != nil {
		return err
	}
	return rules.Validate()
}

// Validate checks the cross-field constraints.
func (rules Rules) Validate() error {
	if rules.MinPlayers < 2 {
		return fmt.Errorf("minPlayers must be at least 2")
	}
	if rules.MaxPlayers < rules.MinPlayers || rules.MaxPlayers > 8 {
		return fmt.Errorf("maxPlayers must be between minPlayers and 8")
	}
	if rules.MaxJailTurns < 1 {
		return fmt.Errorf("maxJailTurns must be at least 1")
	}
	if rules.PromptAttempts < 1 {
		return fmt.Errorf("promptAttempts must be at least 1")
	}
	return nil
}

// ParseRules converts a map of rules to a Rules struct. It will ensure the types are valid.
func ParseRules(rules map[string]interface{}, current Rules) (Rules, error) {
	parsed := current
	err := parsed.Update(rules)
	return parsed, err
}
