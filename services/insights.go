package services

import (
	"fmt"
	"sort"
	"strings"

	"leadboard/models"
	"leadboard/utils"
)

// InsightService computes KPI and windowed-performance aggregates over a
// snapshot of the lead set. Every computation is a pure function of its
// input: it never mutates the leads and is safe to rerun at any time.
type InsightService struct {
	logger *utils.Logger
}

func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

// Generate computes the global KPI report.
func (s *InsightService) Generate(leads []*models.Lead) *models.KPIReport {
	report := &models.KPIReport{
		BySource:           make(map[string]int),
		ByJobType:          make(map[string]int),
		AvgReplyByCategory: make(map[string]*models.CategoryReply),
	}
	// All four buckets are always present, even when empty.
	for _, c := range models.ReplyCategories {
		report.AvgReplyByCategory[c] = &models.CategoryReply{}
	}

	report.TotalLeads = len(leads)

	var replySum float64
	replyCount := 0

	for _, l := range leads {
		if l.Won() {
			report.WonLeads++
		}
		report.TotalCost += ParseMoney(l.LeadCost)
		report.BySource[l.LeadSource]++
		report.ByJobType[l.JobType]++

		if minutes, ok := ReplyMinutes(l); ok {
			replySum += minutes
			replyCount++

			bucket := report.AvgReplyByCategory[models.NormalizeCategory(l.ReplyTimeCategory)]
			bucket.Avg = (bucket.Avg*float64(bucket.Count) + minutes) / float64(bucket.Count+1)
			bucket.Count++
		}
	}

	if report.TotalLeads > 0 {
		report.WinRate = float64(report.WonLeads) / float64(report.TotalLeads) * 100
	}
	if replyCount > 0 {
		report.AvgReplyTime = replySum / float64(replyCount)
	}
	return report
}

// Print renders the KPI report to the terminal.
func (s *InsightService) Print(r *models.KPIReport) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  📊 LEAD DASHBOARD KPIs\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	fmt.Printf("\033[1;33m  Overview\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Total leads    : \033[1m%d\033[0m\n", r.TotalLeads)
	fmt.Printf("  Won leads      : \033[1m%d\033[0m\n", r.WonLeads)
	fmt.Printf("  Win rate       : \033[1;32m%.1f%%\033[0m\n", r.WinRate)
	fmt.Printf("  Total lead cost: \033[1;32m$%.2f\033[0m\n", r.TotalCost)
	fmt.Printf("  Avg reply time : \033[1m%.1f min\033[0m\n", r.AvgReplyTime)
	fmt.Println()

	printCountTable("Leads by Source", r.BySource, thin)
	printCountTable("Leads by Job Type", r.ByJobType, thin)

	fmt.Printf("\033[1;33m  Avg Reply Time by Category\033[0m\n")
	fmt.Printf("  %s\n", thin)
	for _, c := range models.ReplyCategories {
		b := r.AvgReplyByCategory[c]
		fmt.Printf("  %-20s %.1f min (%d leads)\n", c, b.Avg, b.Count)
	}

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

func printCountTable(title string, counts map[string]int, thin string) {
	fmt.Printf("\033[1;33m  %s\033[0m\n", title)
	fmt.Printf("  %s\n", thin)
	if len(counts) == 0 {
		fmt.Printf("  No data\n\n")
		return
	}

	type kv struct {
		key   string
		count int
	}
	var rows []kv
	for k, c := range counts {
		rows = append(rows, kv{k, c})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].count != rows[j].count {
			return rows[i].count > rows[j].count
		}
		return rows[i].key < rows[j].key
	})
	for _, row := range rows {
		name := row.key
		if name == "" {
			name = "(unspecified)"
		}
		bar := strings.Repeat("█", row.count)
		fmt.Printf("  %-24s %s (%d)\n", truncate(name, 22), bar, row.count)
	}
	fmt.Println()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
