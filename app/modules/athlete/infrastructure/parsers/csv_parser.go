package parsers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	athletedomain "github.com/Black-And-White-Club/slackline-champs/app/modules/athlete/domain"
)

// CSVParser implements the Parser interface for CSV rosters.
type CSVParser struct{}

// NewCSVParser creates a new CSV parser instance.
func NewCSVParser() *CSVParser {
	return &CSVParser{}
}

// Parse reads CSV data. The first row must be a header.
func (p *CSVParser) Parse(fileData []byte, fileName string) ([]RosterEntry, error) {
	reader := csv.NewReader(bytes.NewReader(fileData))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: failed to parse CSV %s: %v", athletedomain.ErrEmptyRoster, fileName, err)
		}
		rows = append(rows, record)
	}

	return rosterFromRows(rows, fileName)
}
