package services

import (
	"math"
	"testing"

	"leadboard/models"
)

func TestParseMoney(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{"$15", 15},
		{"$0", 0},
		{"abc", 0},
		{"", 0},
		{"$1,200.50", 1200.50},
		{"-$40", -40},
		{"USD 99", 99},
		{"$1.2.3", 0}, // unparseable after stripping degrades to 0
	}

	for _, tt := range tests {
		got := ParseMoney(tt.raw)
		if got != tt.want {
			t.Errorf("ParseMoney(%q) = %v; want %v", tt.raw, got, tt.want)
		}
		if math.IsNaN(got) || math.IsInf(got, 0) {
			t.Errorf("ParseMoney(%q) = %v; must be finite", tt.raw, got)
		}
	}
}

func TestReplyMinutesPrefersMinutesField(t *testing.T) {
	l := &models.Lead{LeadInput: models.LeadInput{
		ReplyTimeMinutes: "25",
		ReplyTime:        "(Weekend): 214",
	}}
	got, ok := ReplyMinutes(l)
	if !ok || got != 25 {
		t.Errorf("ReplyMinutes = %v,%v; want 25,true", got, ok)
	}
}

func TestReplyMinutesLegacyFallback(t *testing.T) {
	l := &models.Lead{LeadInput: models.LeadInput{
		ReplyTime: "(Weekend): 214",
	}}
	got, ok := ReplyMinutes(l)
	if !ok || got != 214 {
		t.Errorf("ReplyMinutes = %v,%v; want 214,true", got, ok)
	}
}

func TestReplyMinutesExcluded(t *testing.T) {
	l := &models.Lead{}
	if _, ok := ReplyMinutes(l); ok {
		t.Error("lead with neither field should contribute no value")
	}

	// A negative minutes value is not a valid resolution; with no legacy
	// text either, the lead is excluded rather than counted as zero.
	l = &models.Lead{LeadInput: models.LeadInput{ReplyTimeMinutes: "-5"}}
	if _, ok := ReplyMinutes(l); ok {
		t.Error("negative minutes with no legacy text should be excluded")
	}
}

func TestReplyMinutesInvalidMinutesMinesLegacy(t *testing.T) {
	l := &models.Lead{LeadInput: models.LeadInput{
		ReplyTimeMinutes: "soon",
		ReplyTime:        "about 30 minutes",
	}}
	got, ok := ReplyMinutes(l)
	if !ok || got != 30 {
		t.Errorf("ReplyMinutes = %v,%v; want 30,true", got, ok)
	}
}
