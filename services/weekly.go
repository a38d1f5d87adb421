package services

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"leadboard/models"
)

// MonthWeeks partitions a month into contiguous day-ranges of at most
// 7 days starting at day 1, labeled "1-7", "8-14", … For a 30-day month
// the last range is "29-30".
func MonthWeeks(year int, month time.Month) []string {
	days := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()

	var weeks []string
	for start := 1; start <= days; start += 7 {
		end := start + 6
		if end > days {
			end = days
		}
		weeks = append(weeks, fmt.Sprintf("%d-%d", start, end))
	}
	return weeks
}

// GenerateWeekly computes the windowed source-performance table for one
// day-range of the given month. weekIdx indexes into MonthWeeks and is
// clamped to the valid range. Leads whose date fails to parse are excluded.
func (s *InsightService) GenerateWeekly(leads []*models.Lead, year int, month time.Month, weekIdx int) *models.WeeklyReport {
	weeks := MonthWeeks(year, month)
	if weekIdx < 0 {
		weekIdx = 0
	}
	if weekIdx >= len(weeks) {
		weekIdx = len(weeks) - 1
	}
	startDay, endDay := parseDayRange(weeks[weekIdx])

	report := &models.WeeklyReport{Year: year, Month: month, Week: weeks[weekIdx]}

	groups := make(map[string]*models.SourceWeekly)
	var replySum float64
	replyCount := 0

	for _, l := range leads {
		t, err := time.Parse("2006-01-02", l.Date)
		if err != nil {
			continue
		}
		if t.Year() != year || t.Month() != month || t.Day() < startDay || t.Day() > endDay {
			continue
		}

		source := l.LeadSource
		if source == "" {
			source = "Unknown"
		}
		g, ok := groups[source]
		if !ok {
			g = &models.SourceWeekly{Source: source}
			groups[source] = g
		}

		g.Spend += ParseMoney(l.LeadCost)
		g.Leads++
		if l.Booked == "Yes" {
			g.Booked++
		}
		if l.SoldValue() == "Yes" {
			g.Sold++
		}
		if l.Cancelled == "Yes" {
			g.Cancelled++
		}
		g.SoldAmount += ParseMoney(l.SoldAmount)
		g.Revenue += ParseMoney(l.Revenue)

		if minutes, ok := ReplyMinutes(l); ok {
			replySum += minutes
			replyCount++
		}
	}

	for _, g := range groups {
		g.CPL = ratio(g.Spend, float64(g.Leads))
		g.FiveXReturn = g.Spend * 5
		report.Rows = append(report.Rows, g)

		report.Totals.Spend += g.Spend
		report.Totals.Leads += g.Leads
		report.Totals.Booked += g.Booked
		report.Totals.Sold += g.Sold
		report.Totals.Cancelled += g.Cancelled
		report.Totals.SoldAmount += g.SoldAmount
		report.Totals.Revenue += g.Revenue
	}

	sort.Slice(report.Rows, func(i, j int) bool {
		if report.Rows[i].Spend != report.Rows[j].Spend {
			return report.Rows[i].Spend > report.Rows[j].Spend
		}
		return report.Rows[i].Source < report.Rows[j].Source
	})

	if replyCount > 0 {
		report.Totals.AvgReplyMinutes = replySum / float64(replyCount)
	}

	tot := &report.Totals
	tot.CPL = ratio(tot.Spend, float64(tot.Leads))
	tot.CostPerBooked = ratio(tot.Spend, float64(tot.Booked))
	tot.RoasX = ratio(tot.SoldAmount, tot.Spend)
	tot.BookingRate = ratio(float64(tot.Booked), float64(tot.Leads))
	tot.CloseRate = ratio(float64(tot.Sold), float64(tot.Booked))
	tot.CancellingRate = ratio(float64(tot.Cancelled), float64(tot.Booked))

	return report
}

// ratio divides a by b, returning 0 when the denominator is 0. Rendering a
// "no data" sentinel for the zero-denominator case is up to the caller.
func ratio(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}

func parseDayRange(label string) (int, int) {
	var start, end int
	fmt.Sscanf(label, "%d-%d", &start, &end)
	return start, end
}

// PrintWeekly renders the windowed performance table to the terminal.
func (s *InsightService) PrintWeekly(r *models.WeeklyReport) {
	sep := strings.Repeat("═", 78)
	thin := strings.Repeat("─", 78)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  📅 SOURCE PERFORMANCE — %s %d, days %s\033[0m\n", r.Month, r.Year, r.Week)
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	fmt.Printf("  %-18s %10s %6s %7s %5s %10s %10s\n",
		"Source", "Spend", "Leads", "Booked", "Sold", "CPL", "5x Return")
	fmt.Printf("  %s\n", thin)

	if len(r.Rows) == 0 {
		fmt.Printf("  No leads in this window\n")
	}
	for _, g := range r.Rows {
		fmt.Printf("  %-18s %10.2f %6d %7d %5d %10.2f %10.2f\n",
			truncate(g.Source, 16), g.Spend, g.Leads, g.Booked, g.Sold, g.CPL, g.FiveXReturn)
	}

	t := r.Totals
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  %-18s %10.2f %6d %7d %5d %10.2f\n",
		"TOTAL", t.Spend, t.Leads, t.Booked, t.Sold, t.CPL)

	fmt.Printf("\n\033[1;33m  Derived ratios\033[0m\n")
	fmt.Printf("  Cost/booked : %.2f\n", t.CostPerBooked)
	fmt.Printf("  ROAS        : %.2fx\n", t.RoasX)
	fmt.Printf("  Booking rate: %.1f%%\n", t.BookingRate*100)
	fmt.Printf("  Close rate  : %.1f%%\n", t.CloseRate*100)
	fmt.Printf("  Cancel rate : %.1f%%\n", t.CancellingRate*100)
	fmt.Printf("  Avg reply   : %.1f min\n", t.AvgReplyMinutes)

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}
