package game

// NextActivePlayer walks the fixed turn order starting just after
// currentID, wrapping around, and returns the first player that has not
// been eliminated. When every other player is out it returns currentID
// itself; callers treat that as "the game is already over".
func NextActivePlayer(turnOrder []string, players []Player, currentID string) string {
	if len(turnOrder) == 0 {
		return currentID
	}

	current := 0
	for i, id := range turnOrder {
		if id == currentID {
			current = i
			break
		}
	}

	eliminated := make(map[string]bool, len(players))
	for _, p := range players {
		eliminated[p.ID] = p.IsEliminated
	}

	for i := 1; i <= len(turnOrder); i++ {
		candidate := turnOrder[(current+i)%len(turnOrder)]
		if !eliminated[candidate] {
			return candidate
		}
	}
	return currentID
}
