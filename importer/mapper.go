package importer

import (
	"strings"

	"leadboard/models"
)

// fieldAliases maps each canonical field to its accepted column names, in
// lookup order. Keys here are already in NormalizeHeader form.
var fieldAliases = map[string][]string{
	"date":              {"date"},
	"customer":          {"customer", "name"},
	"leadSource":        {"lead source", "source"},
	"jobType":           {"job type"},
	"leadCost":          {"lead cost", "cost"},
	"comments":          {"comments"},
	"replyTimeCategory": {"reply time category"},
	"replyTimeMinutes":  {"reply time minutes"},
	"booked":            {"booked"},
	"sold":              {"sold", "job won"},
	"cancelled":         {"cancelled", "canceled"},
	"soldAmount":        {"sold amount"},
	"revenue":           {"revenue"},
}

// MapRow maps one header-keyed record (keys already normalized) into a
// canonical LeadInput. The second return is false when the row is
// rejected: a mapped record with an empty date or customer is dropped,
// and the check happens strictly after mapping. Pure function.
func MapRow(record map[string]string) (models.LeadInput, bool) {
	pick := func(field string) string {
		for _, alias := range fieldAliases[field] {
			if v := strings.TrimSpace(record[alias]); v != "" {
				return v
			}
		}
		return ""
	}
	money := func(field string) string {
		if v := pick(field); v != "" {
			return v
		}
		return "$0"
	}

	lead := models.LeadInput{
		Date:       pick("date"),
		Customer:   pick("customer"),
		LeadSource: pick("leadSource"),
		JobType:    pick("jobType"),

		LeadCost:   money("leadCost"),
		SoldAmount: money("soldAmount"),
		Revenue:    money("revenue"),

		Booked:    coerceBool(pick("booked")),
		Sold:      coerceBool(pick("sold")),
		Cancelled: coerceBool(pick("cancelled")),

		ReplyTimeCategory: models.NormalizeCategory(pick("replyTimeCategory")),
		ReplyTimeMinutes:  pick("replyTimeMinutes"),

		Comments: pick("comments"),
	}

	// JobWon mirrors the resolved Sold value at write time, regardless of
	// what the "job won" column itself said.
	lead.JobWon = lead.Sold

	if lead.Date == "" || lead.Customer == "" {
		return models.LeadInput{}, false
	}
	return lead, true
}

// coerceBool resolves a boolean-like cell to exactly "Yes" or "No".
// Only a case-insensitive "yes" counts; everything else, including the
// empty string, is "No".
func coerceBool(v string) string {
	if strings.EqualFold(strings.TrimSpace(v), "yes") {
		return "Yes"
	}
	return "No"
}
