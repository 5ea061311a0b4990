package domain

import (
	"strings"
	"unicode"
)

// Game is one entry in a user's game list. Normalized is the dedup/match
// key; Name keeps whatever spelling the user last typed for that key.
type Game struct {
	Name       string `json:"name"`
	Normalized string `json:"normalized"`
}

// NormalizeGameName strips all whitespace and lowercases, producing the key
// used for dedup and cross-user matching. Idempotent and total.
func NormalizeGameName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// NewGame builds a Game entry from a display name.
func NewGame(name string) Game {
	return Game{Name: name, Normalized: NormalizeGameName(name)}
}
