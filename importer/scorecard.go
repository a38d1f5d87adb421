package importer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"leadboard/models"
)

var (
	// weekColRegexp matches a scorecard week column label: a three-letter
	// month abbreviation, a colon, and a 1–2 digit day (e.g. "JAN: 6").
	weekColRegexp  = regexp.MustCompile(`(?i)^[a-z]{3}:\s*\d{1,2}$`)
	metaRowRegexp  = regexp.MustCompile(`(?i)goal|actual`)
	firstIntRegexp = regexp.MustCompile(`\d+`)
)

var monthNumbers = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

// scorecardSectionCap bounds the channel section when no explicit end row
// exists in the sheet.
const scorecardSectionCap = 7

// TransformScorecard reinterprets a wide-format weekly marketing scorecard
// (channels as rows, week columns as dates) into synthetic per-lead rows.
// It is the fallback for tabular files that produce zero normal lead rows.
// year supplies the calendar year for reconstructed dates. Returns nil when
// the matrix does not look like a scorecard.
func TransformScorecard(matrix [][]string, year int) []models.LeadInput {
	headerIdx, weekCols := findWeekHeader(matrix)
	if headerIdx < 0 {
		return nil
	}

	start := findRowContaining(matrix, 0, "channel performance")
	if start < 0 {
		return nil
	}
	end := findRowContaining(matrix, start+1, "brand & reputation")
	if end < 0 {
		end = start + scorecardSectionCap + 1
	}
	if end > len(matrix) {
		end = len(matrix)
	}

	var leads []models.LeadInput
	for i := start + 1; i < end; i++ {
		row := matrix[i]
		if len(row) == 0 {
			continue
		}
		source := strings.TrimSpace(row[0])
		if source == "" || metaRowRegexp.MatchString(source) {
			continue
		}

		for _, col := range weekCols {
			if col >= len(row) {
				continue
			}
			count := firstInt(row[col])
			if count <= 0 {
				continue
			}
			label := matrix[headerIdx][col]
			date := weekDate(label, year)
			for n := 1; n <= count; n++ {
				leads = append(leads, models.LeadInput{
					Date:              date,
					Customer:          fmt.Sprintf("Imported %s Lead %d", source, n),
					LeadSource:        source,
					JobType:           "Imported",
					LeadCost:          "$0",
					SoldAmount:        "$0",
					Revenue:           "$0",
					JobWon:            "No",
					Booked:            "No",
					Sold:              "No",
					Cancelled:         "No",
					ReplyTimeCategory: models.CategoryDefault,
					Comments:          fmt.Sprintf("Imported from scorecard week %s", label),
				})
			}
		}
	}
	return leads
}

// findWeekHeader returns the index of the first row containing at least one
// week-column label, along with the matching column indices.
func findWeekHeader(matrix [][]string) (int, []int) {
	for i, row := range matrix {
		var cols []int
		for j, cell := range row {
			if weekColRegexp.MatchString(strings.TrimSpace(cell)) {
				cols = append(cols, j)
			}
		}
		if len(cols) > 0 {
			return i, cols
		}
	}
	return -1, nil
}

func findRowContaining(matrix [][]string, from int, phrase string) int {
	for i := from; i < len(matrix); i++ {
		if len(matrix[i]) == 0 {
			continue
		}
		if strings.Contains(strings.ToLower(matrix[i][0]), phrase) {
			return i
		}
	}
	return -1
}

// firstInt extracts the first embedded run of digits as an int, 0 when none.
func firstInt(s string) int {
	m := firstIntRegexp.FindString(s)
	if m == "" {
		return 0
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return n
}

// weekDate rebuilds an ISO date from a week label like "JAN: 6" using the
// given year. An unrecognized month abbreviation falls back to January.
func weekDate(label string, year int) string {
	parts := strings.SplitN(label, ":", 2)
	month := 1
	if m, ok := monthNumbers[strings.ToLower(strings.TrimSpace(parts[0]))]; ok {
		month = m
	}
	day := 1
	if len(parts) == 2 {
		if d := firstInt(parts[1]); d > 0 {
			day = d
		}
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}
