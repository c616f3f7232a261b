package loader

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// loadExcel reads question/answer pairs from the first two columns of every
// sheet. Rows with an empty question cell are skipped, as is a header row
// whose first cell is "question" (case-insensitive).
func loadExcel(path string) ([]Pair, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open Excel: %w", err)
	}
	defer f.Close()

	var pairs []Pair
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("get rows for sheet %q: %w", sheet, err)
		}
		for _, row := range rows {
			if len(row) < 2 {
				continue
			}
			q := strings.TrimSpace(row[0])
			a := strings.TrimSpace(row[1])
			if q == "" || strings.EqualFold(q, "question") {
				continue
			}
			pairs = append(pairs, Pair{Question: q, Answer: a})
		}
	}
	return pairs, nil
}
