// Package pairs implements a memory-matching game: a shuffled deck of
// face-down cards where every face appears twice, a turn limit counted in
// mismatched pairs, and a count-up or count-down clock.
package pairs

import (
	"math/rand"
)

// FaceID identifies the picture on a card. Exactly two cards share each face.
type FaceID string

// CardState is the visibility of a card.
type CardState int

const (
	StateHidden CardState = iota
	StateRevealed
	StateMatched
)

// String returns a human-readable name for the state.
func (s CardState) String() string {
	switch s {
	case StateHidden:
		return "hidden"
	case StateRevealed:
		return "revealed"
	case StateMatched:
		return "matched"
	default:
		return "unknown"
	}
}

// Card is one position on the board.
type Card struct {
	Index int
	Face  FaceID
	State CardState
}

// Shuffle permutes s in place with the Fisher-Yates algorithm.
func Shuffle[T any](s []T, rng *rand.Rand) {
	for i := len(s) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}

// doubled returns every face twice, in order: [A B] -> [A A B B].
func doubled(faces []FaceID) []FaceID {
	out := make([]FaceID, 0, len(faces)*2)
	for _, f := range faces {
		out = append(out, f, f)
	}
	return out
}

// BuildDeck returns a shuffled deck of hidden cards holding each face twice.
func BuildDeck(faces []FaceID, rng *rand.Rand) []Card {
	order := doubled(faces)
	Shuffle(order, rng)

	deck := make([]Card, len(order))
	for i, f := range order {
		deck[i] = Card{Index: i, Face: f, State: StateHidden}
	}
	return deck
}

// Faces converts configured face strings to face identifiers.
func Faces(names []string) []FaceID {
	out := make([]FaceID, len(names))
	for i, n := range names {
		out[i] = FaceID(n)
	}
	return out
}
