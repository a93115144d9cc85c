package game

import "fmt"

// Roll represents a single two-die roll. Dice are read as a two-digit
// number with the larger die first, so (3,5) and (5,3) are the same roll
// "53". Rank is the roll's position in the fixed ranking table: rank 1 is
// the unbeatable "21", ranks 2-7 are the doubles from 66 down to 11, and
// ranks 8-21 are the remaining combinations by descending face value.
type Roll struct {
	Die1    int    `json:"die1"`
	Die2    int    `json:"die2"`
	Display string `json:"display"`
	Rank    int    `json:"rank"`
}

// rollRankings is the complete ranking table, best roll first. Exactly 21
// entries, one per distinct unordered pair of dice.
var rollRankings = [21]string{
	"21",
	"66", "55", "44", "33", "22", "11",
	"65", "64", "63", "62", "61",
	"54", "53", "52", "51",
	"43", "42", "41",
	"32", "31",
}

// rankByDisplay is the inverse of rollRankings, built once at init.
var rankByDisplay = func() map[string]int {
	m := make(map[string]int, len(rollRankings))
	for i, d := range rollRankings {
		m[d] = i + 1
	}
	return m
}()

// NewRoll builds a Roll from two die values, normalising the larger die
// first and looking up the rank. The die source never produces values
// outside 1-6, but claims arrive from clients and must be validated here.
func NewRoll(die1, die2 int) (Roll, error) {
	if die1 < 1 || die1 > 6 || die2 < 1 || die2 > 6 {
		return Roll{}, fmt.Errorf("%w: got %d and %d", ErrInvalidDie, die1, die2)
	}

	high, low := die1, die2
	if low > high {
		high, low = low, high
	}

	display := fmt.Sprintf("%d%d", high, low)
	return Roll{
		Die1:    high,
		Die2:    low,
		Display: display,
		Rank:    rankByDisplay[display],
	}, nil
}

// RollForRank returns the roll occupying the given rank (1-21).
func RollForRank(rank int) (Roll, error) {
	if rank < 1 || rank > len(rollRankings) {
		return Roll{}, fmt.Errorf("rank must be between 1 and %d, got %d", len(rollRankings), rank)
	}
	display := rollRankings[rank-1]
	return NewRoll(int(display[0]-'0'), int(display[1]-'0'))
}

// Beats reports whether r meets or beats other. A lower rank is a better
// roll, and an equal rank is good enough to keep a claim chain alive.
func (r Roll) Beats(other Roll) bool {
	return r.Rank <= other.Rank
}

// IsTwentyOne reports whether r is the unbeatable roll.
func (r Roll) IsTwentyOne() bool {
	return r.Display == "21"
}

// IsDouble reports whether both dice show the same face.
func (r Roll) IsDouble() bool {
	return r.Die1 == r.Die2
}

func (r Roll) String() string {
	return r.Display
}

// ValidClaims returns every roll that may legally be claimed against the
// given minimum, best first. A nil minimum allows every roll.
func ValidClaims(minimum *Roll) []Roll {
	limit := len(rollRankings)
	if minimum != nil {
		limit = minimum.Rank
	}

	claims := make([]Roll, 0, limit)
	for rank := 1; rank <= limit; rank++ {
		roll, _ := RollForRank(rank)
		claims = append(claims, roll)
	}
	return claims
}
