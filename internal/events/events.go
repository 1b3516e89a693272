// Package events defines the topics and payloads exchanged between modules.
// Topics are versioned; a breaking payload change gets a new version.
package events

const (
	// ChampionshipStream carries championship.> subjects.
	ChampionshipStream = "championship"
	// BracketStream carries bracket.> subjects.
	BracketStream = "bracket"
)

// Streams lists every stream the service provisions on startup.
var Streams = []string{ChampionshipStream, BracketStream}
