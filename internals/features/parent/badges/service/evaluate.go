// file: internals/features/parent/badges/service/evaluate.go
package service

// State is a badge's progression state for one user.
type State string

const (
	StateLocked         State = "LOCKED"
	StateReadyToCollect State = "READY_TO_COLLECT"
	StateCollected      State = "COLLECTED"
)

// Evaluate decides a badge's state from the server-confirmed collected
// flag and the completion map. COLLECTED wins regardless of the map;
// otherwise the badge is ready iff every required id reads true.
// Missing map keys read as false. The map is consulted fresh on every
// call; nothing here caches a previous answer.
func Evaluate(requiredGameIDs []string, collected bool, completion map[string]bool) State {
	if collected {
		return StateCollected
	}
	for _, id := range requiredGameIDs {
		if !completion[id] {
			return StateLocked
		}
	}
	return StateReadyToCollect
}

// CollectOutcome is what a collect attempt resolves to.
type CollectOutcome int

const (
	CollectLocked CollectOutcome = iota
	CollectAwarded
	CollectAlreadyOwned
)

// DecideCollect maps one collect attempt onto its outcome. Only
// CollectAwarded hands out the bonus and fires the earned broadcast;
// once the collected flag is set every later attempt resolves to
// CollectAlreadyOwned no matter what the completion map says, so the
// broadcast cannot fire twice.
func DecideCollect(requiredGameIDs []string, alreadyCollected bool, completion map[string]bool) CollectOutcome {
	switch Evaluate(requiredGameIDs, alreadyCollected, completion) {
	case StateCollected:
		return CollectAlreadyOwned
	case StateReadyToCollect:
		return CollectAwarded
	default:
		return CollectLocked
	}
}

// Prereq is one required game with its completion bit, for status
// responses.
type Prereq struct {
	GameID    string `json:"game_id"`
	Completed bool   `json:"completed"`
}

func Prereqs(requiredGameIDs []string, completion map[string]bool) []Prereq {
	out := make([]Prereq, 0, len(requiredGameIDs))
	for _, id := range requiredGameIDs {
		out = append(out, Prereq{GameID: id, Completed: completion[id]})
	}
	return out
}
