package importer

import (
	"reflect"
	"testing"

	"leadboard/models"
)

func TestMapRowAliasFallback(t *testing.T) {
	lead, ok := MapRow(map[string]string{
		"date":   "2024-03-01",
		"name":   "Alice", // customer alias
		"source": "Yelp",  // lead source alias
		"cost":   "$25",   // lead cost alias
	})
	if !ok {
		t.Fatal("row should be accepted")
	}
	if lead.Customer != "Alice" {
		t.Errorf("Customer = %q; want %q", lead.Customer, "Alice")
	}
	if lead.LeadSource != "Yelp" {
		t.Errorf("LeadSource = %q; want %q", lead.LeadSource, "Yelp")
	}
	if lead.LeadCost != "$25" {
		t.Errorf("LeadCost = %q; want %q", lead.LeadCost, "$25")
	}
}

func TestMapRowFirstAliasWins(t *testing.T) {
	lead, ok := MapRow(map[string]string{
		"date":        "2024-03-01",
		"customer":    "Alice",
		"lead source": "Google",
		"source":      "Yelp",
	})
	if !ok {
		t.Fatal("row should be accepted")
	}
	if lead.LeadSource != "Google" {
		t.Errorf("LeadSource = %q; want first alias %q", lead.LeadSource, "Google")
	}
}

func TestMapRowDefaults(t *testing.T) {
	lead, ok := MapRow(map[string]string{
		"date":     "2024-03-01",
		"customer": "Alice",
	})
	if !ok {
		t.Fatal("row should be accepted")
	}
	if lead.LeadCost != "$0" || lead.SoldAmount != "$0" || lead.Revenue != "$0" {
		t.Errorf("currency defaults = %q/%q/%q; want $0 each",
			lead.LeadCost, lead.SoldAmount, lead.Revenue)
	}
	if lead.Booked != "No" || lead.Sold != "No" || lead.Cancelled != "No" || lead.JobWon != "No" {
		t.Errorf("boolean defaults = %q/%q/%q/%q; want No each",
			lead.Booked, lead.Sold, lead.Cancelled, lead.JobWon)
	}
	if lead.ReplyTimeCategory != models.CategoryDefault {
		t.Errorf("ReplyTimeCategory = %q; want default bucket", lead.ReplyTimeCategory)
	}
}

func TestMapRowBooleanCoercion(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"yes", "Yes"},
		{"YES", "Yes"},
		{"Yes", "Yes"},
		{"no", "No"},
		{"true", "No"},
		{"1", "No"},
		{"", "No"},
	}

	for _, tt := range tests {
		lead, _ := MapRow(map[string]string{
			"date": "2024-03-01", "customer": "A", "booked": tt.raw,
		})
		if lead.Booked != tt.want {
			t.Errorf("booked %q coerced to %q; want %q", tt.raw, lead.Booked, tt.want)
		}
	}
}

func TestMapRowCategoryFallback(t *testing.T) {
	lead, _ := MapRow(map[string]string{
		"date": "2024-03-01", "customer": "A",
		"reply time category": models.CategoryWeekend,
	})
	if lead.ReplyTimeCategory != models.CategoryWeekend {
		t.Errorf("exact bucket = %q; want %q", lead.ReplyTimeCategory, models.CategoryWeekend)
	}

	// Case-sensitive match: a lower-cased bucket falls back to the default.
	lead, _ = MapRow(map[string]string{
		"date": "2024-03-01", "customer": "A",
		"reply time category": "weekend",
	})
	if lead.ReplyTimeCategory != models.CategoryDefault {
		t.Errorf("invalid bucket = %q; want default", lead.ReplyTimeCategory)
	}
}

func TestMapRowJobWonMirrorsSold(t *testing.T) {
	lead, _ := MapRow(map[string]string{
		"date": "2024-03-01", "customer": "A", "sold": "yes",
	})
	if lead.Sold != "Yes" || lead.JobWon != "Yes" {
		t.Errorf("Sold/JobWon = %q/%q; want Yes/Yes", lead.Sold, lead.JobWon)
	}

	// "job won" is an alias for sold — the mirror still holds.
	lead, _ = MapRow(map[string]string{
		"date": "2024-03-01", "customer": "A", "job won": "yes",
	})
	if lead.Sold != "Yes" || lead.JobWon != "Yes" {
		t.Errorf("Sold/JobWon via job won = %q/%q; want Yes/Yes", lead.Sold, lead.JobWon)
	}
}

func TestMapRowRejection(t *testing.T) {
	if _, ok := MapRow(map[string]string{"customer": "Alice"}); ok {
		t.Error("row without date should be rejected")
	}
	if _, ok := MapRow(map[string]string{"date": "2024-03-01"}); ok {
		t.Error("row without customer should be rejected")
	}
	if _, ok := MapRow(map[string]string{"date": "  ", "customer": "Alice"}); ok {
		t.Error("whitespace-only date should be rejected")
	}
}

func TestMapRowIdempotent(t *testing.T) {
	record := map[string]string{
		"date": "2024-03-01", "customer": "Alice", "source": "Yelp",
		"booked": "yes", "cost": "$10",
	}
	first, ok1 := MapRow(record)
	second, ok2 := MapRow(record)
	if ok1 != ok2 || !reflect.DeepEqual(first, second) {
		t.Errorf("MapRow is not pure: %v vs %v", first, second)
	}
}
