package parsers

import (
	athletedomain "github.com/Black-And-White-Club/slackline-champs/app/modules/athlete/domain"
)

// Parser reads an athlete roster file.
type Parser interface {
	// Parse returns one entry per non-blank data row. fileName is used for
	// error messages only.
	Parse(fileData []byte, fileName string) ([]RosterEntry, error)
}

// RosterEntry is a roster row before validation.
type RosterEntry struct {
	// Row is the 1-based row number in the source file, header included.
	Row          int
	Registration athletedomain.Registration
}
