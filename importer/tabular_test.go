package importer

import (
	"reflect"
	"testing"
)

func TestParseTableCommaMode(t *testing.T) {
	matrix := ParseTable("Date,Customer,Lead Cost\n2024-01-05,Alice,$15\n\n2024-01-06,Bob,$20\n")

	want := [][]string{
		{"Date", "Customer", "Lead Cost"},
		{"2024-01-05", "Alice", "$15"},
		{"2024-01-06", "Bob", "$20"},
	}
	if !reflect.DeepEqual(matrix, want) {
		t.Errorf("ParseTable = %v; want %v", matrix, want)
	}
}

func TestParseTableQuotedFields(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{`a,"b,c",d`, []string{"a", "b,c", "d"}},
		{`"say ""hi""",x`, []string{`say "hi"`, "x"}},
		{`"unterminated,still one field`, []string{"unterminated,still one field"}},
		{` spaced , fields `, []string{"spaced", "fields"}},
	}

	for _, tt := range tests {
		matrix := ParseTable(tt.line)
		if len(matrix) != 1 {
			t.Fatalf("ParseTable(%q) rows = %d; want 1", tt.line, len(matrix))
		}
		if !reflect.DeepEqual(matrix[0], tt.want) {
			t.Errorf("ParseTable(%q) = %v; want %v", tt.line, matrix[0], tt.want)
		}
	}
}

func TestParseTableTabMode(t *testing.T) {
	// A tab in the first line makes the whole file tab-delimited, and tab
	// mode does not interpret quotes.
	matrix := ParseTable("Date\tCustomer\n2024-01-05\t\"Ali,ce\"\n")

	if len(matrix) != 2 {
		t.Fatalf("rows = %d; want 2", len(matrix))
	}
	if matrix[1][1] != `"Ali,ce"` {
		t.Errorf("tab mode cell = %q; want quotes kept literally", matrix[1][1])
	}
}

func TestParseTableStripsBOM(t *testing.T) {
	matrix := ParseTable("\ufeffDate,Customer\n2024-01-05,Alice")
	if matrix[0][0] != "Date" {
		t.Errorf("first header = %q; want BOM stripped %q", matrix[0][0], "Date")
	}
}

func TestParseTableEmptyInput(t *testing.T) {
	if m := ParseTable(""); len(m) != 0 {
		t.Errorf("ParseTable(\"\") = %v; want empty matrix", m)
	}
	if m := ParseTable("\n\n  \n"); len(m) != 0 {
		t.Errorf("blank lines only = %v; want empty matrix", m)
	}
}

func TestNormalizeHeader(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Lead Source", "lead source"},
		{"  LEAD__SOURCE  ", "lead source"},
		{"\ufeffDate", "date"},
		{"Reply\tTime   Category", "reply time category"},
		{"customer", "customer"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeHeader(tt.in); got != tt.want {
			t.Errorf("NormalizeHeader(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}
