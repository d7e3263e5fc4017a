// internal/game/prompter.go
package game

// Prompter is the game's only way to ask a human for a decision. Every call blocks
// until answered. A false ok means the dialog was cancelled.
//
// Prompter methods run on the goroutine resolving the turn, while the game lock
// is held. An implementation may call the unlocked readers such as Snapshot and
// JailChoices from inside a method, but must not hand them to another goroutine
// during the call; state is only consistent for the asking goroutine.
type Prompter interface {
	Confirm(title, prompt string) bool
	ChooseInt(title, prompt string, min, max int) (value int, ok bool)
	// ChooseOne returns the index of the chosen option. def is the preselected index.
	ChooseOne(title, prompt string, options []string, def int) (index int, ok bool)
}

// askInt re-prompts until the answer falls in [min, max]. It gives up after
// Rules.PromptAttempts invalid answers and reports a cancellation.
func (g *Game) askInt(title, prompt string, min, max int) (int, bool) {
	if min > max {
		return 0, false
	}
	for attempt := 0; attempt < g.Rules.PromptAttempts; attempt++ {
		v, ok := g.prompter.ChooseInt(title, prompt, min, max)
		if !ok {
			return 0, false
		}
		if v >= min && v <= max {
			return v, true
		}
		g.logger.WithField("answer", v).Debug("answer out of range, asking again")
	}
	return 0, false
}

// askOne re-prompts until a valid option index is returned.
func (g *Game) askOne(title, prompt string, options []string, def int) (int, bool) {
	if len(options) == 0 {
		return 0, false
	}
	for attempt := 0; attempt < g.Rules.PromptAttempts; attempt++ {
		i, ok := g.prompter.ChooseOne(title, prompt, options, def)
		if !ok {
			return 0, false
		}
		if i >= 0 && i < len(options) {
			return i, true
		}
	}
	return 0, false
}
