package parsers

import (
	"fmt"
	"strings"

	athletedomain "github.com/Black-And-White-Club/slackline-champs/app/modules/athlete/domain"
)

var (
	nameColumns     = []string{"name", "athlete", "athlete_name", "full_name"}
	categoryColumns = []string{"category", "discipline"}
	levelColumns    = []string{"level", "division"}
	bioColumns      = []string{"bio", "biography", "about"}
	avatarColumns   = []string{"avatar_url", "avatar", "photo"}
)

// rosterFromRows maps a header row plus data rows onto roster entries.
// Only the name column is required.
func rosterFromRows(rows [][]string, source string) ([]RosterEntry, error) {
	if len(rows) < 2 {
		return nil, fmt.Errorf("%w: %s must contain a header and at least one row", athletedomain.ErrEmptyRoster, source)
	}

	header := rows[0]
	nameIdx := findColumn(header, nameColumns)
	if nameIdx < 0 {
		return nil, fmt.Errorf("%w: %s is missing a name column", athletedomain.ErrEmptyRoster, source)
	}
	categoryIdx := findColumn(header, categoryColumns)
	levelIdx := findColumn(header, levelColumns)
	bioIdx := findColumn(header, bioColumns)
	avatarIdx := findColumn(header, avatarColumns)

	var entries []RosterEntry
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		name := cell(row, nameIdx)
		if name == "" {
			continue
		}
		entries = append(entries, RosterEntry{
			Row: i + 1,
			Registration: athletedomain.Registration{
				Name:      name,
				Category:  athletedomain.Category(cell(row, categoryIdx)),
				Level:     athletedomain.Level(cell(row, levelIdx)),
				Bio:       cell(row, bioIdx),
				AvatarURL: cell(row, avatarIdx),
			},
		})
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: %s", athletedomain.ErrEmptyRoster, source)
	}
	return entries, nil
}

// findColumn returns the index of the first header matching one of names,
// ignoring case, spaces and underscores.
func findColumn(header []string, names []string) int {
	for i, col := range header {
		normalized := normalizeHeader(col)
		for _, name := range names {
			if normalized == normalizeHeader(name) {
				return i
			}
		}
	}
	return -1
}

func normalizeHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "\ufeff")
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(s)
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
