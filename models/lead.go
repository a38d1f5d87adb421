package models

import "time"

// Reply-time buckets. Every stored lead carries exactly one of these;
// anything unrecognized on input falls back to CategoryDefault.
const (
	CategoryBusinessHours = "Business Hours"
	CategoryAfterHours    = "After Hours"
	CategoryWeekend       = "Weekend"
	CategoryOvernight     = "Overnight"

	CategoryDefault = CategoryBusinessHours
)

// ReplyCategories lists the buckets in display order.
var ReplyCategories = []string{
	CategoryBusinessHours,
	CategoryAfterHours,
	CategoryWeekend,
	CategoryOvernight,
}

// NormalizeCategory returns v when it is one of the four buckets
// (case-sensitive), otherwise the default bucket. Invalid input is never
// rejected, only substituted.
func NormalizeCategory(v string) string {
	for _, c := range ReplyCategories {
		if v == c {
			return c
		}
	}
	return CategoryDefault
}

// LeadInput is the canonical write shape produced by manual entry and by
// the import pipeline. Money fields keep their original display string
// (e.g. "$15") and are parsed on demand; boolean-like fields hold exactly
// "Yes" or "No".
type LeadInput struct {
	Date       string // ISO YYYY-MM-DD
	Customer   string
	LeadSource string
	JobType    string

	LeadCost   string
	SoldAmount string
	Revenue    string

	JobWon    string // mirror of Sold, written for older readers
	Booked    string
	Sold      string
	Cancelled string

	ReplyTimeCategory string
	ReplyTimeMinutes  string
	ReplyTime         string // legacy free text, mined for the first integer

	Comments string
}

// Lead is a stored LeadInput plus its generated identifier.
type Lead struct {
	ID        string
	CreatedAt time.Time
	LeadInput
}

// Won reports whether the lead counts as won. JobWon is authoritative here:
// it is kept equal to Sold at write time and is the only won flag older
// records carry.
func (l *Lead) Won() bool { return l.JobWon == "Yes" }

// SoldValue resolves the Sold flag, deriving it from JobWon for legacy
// records written before Sold existed. The derivation happens at read time
// only; the stored record is never rewritten.
func (l *Lead) SoldValue() string {
	if l.Sold == "" && l.JobWon == "Yes" {
		return "Yes"
	}
	if l.Sold == "" {
		return "No"
	}
	return l.Sold
}

// CategoryReply is one bucket of the reply-time breakdown.
type CategoryReply struct {
	Avg   float64
	Count int
}

// KPIReport holds the global aggregates over the full lead set.
type KPIReport struct {
	TotalLeads   int
	WonLeads     int
	WinRate      float64 // percentage, 0 when TotalLeads is 0
	TotalCost    float64
	AvgReplyTime float64 // minutes, 0 when no lead resolves a value

	BySource           map[string]int
	ByJobType          map[string]int
	AvgReplyByCategory map[string]*CategoryReply // all four buckets always present
}

// SourceWeekly is one grouped row of the windowed performance table.
type SourceWeekly struct {
	Source      string
	Spend       float64
	Leads       int
	Booked      int
	Sold        int
	Cancelled   int
	SoldAmount  float64
	Revenue     float64
	CPL         float64 // Spend/Leads, 0 when Leads is 0
	FiveXReturn float64 // Spend × 5
}

// WeeklyTotals sums every grouped row and carries the derived ratios.
// Each ratio is 0 when its denominator is 0; rendering a "no data"
// sentinel in that case is the presentation layer's job.
type WeeklyTotals struct {
	Spend      float64
	Leads      int
	Booked     int
	Sold       int
	Cancelled  int
	SoldAmount float64
	Revenue    float64

	AvgReplyMinutes float64

	CPL            float64
	CostPerBooked  float64
	RoasX          float64
	BookingRate    float64
	CloseRate      float64
	CancellingRate float64
}

// WeeklyReport is the windowed source-performance view for one day-range
// of a month.
type WeeklyReport struct {
	Year   int
	Month  time.Month
	Week   string // day-range label, e.g. "8-14"
	Rows   []*SourceWeekly
	Totals WeeklyTotals
}
