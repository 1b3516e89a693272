package parsers

import (
	"bytes"
	"fmt"

	athletedomain "github.com/Black-And-White-Club/slackline-champs/app/modules/athlete/domain"
	"github.com/xuri/excelize/v2"
)

// XLSXParser reads the first sheet of an Excel roster.
type XLSXParser struct{}

func NewXLSXParser() *XLSXParser {
	return &XLSXParser{}
}

func (p *XLSXParser) Parse(fileData []byte, fileName string) ([]RosterEntry, error) {
	f, err := excelize.OpenReader(bytes.NewReader(fileData))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse XLSX %s: %v", athletedomain.ErrEmptyRoster, fileName, err)
	}
	defer f.Close()

	sheetList := f.GetSheetList()
	if len(sheetList) == 0 {
		return nil, fmt.Errorf("%w: %s contains no sheets", athletedomain.ErrEmptyRoster, fileName)
	}

	rows, err := f.GetRows(sheetList[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}

	return rosterFromRows(rows, fileName)
}
