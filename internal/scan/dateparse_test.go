package scan

import "testing"

func TestParseDate_Formats(t *testing.T) {
	cases := []struct {
		in  string
		day string
	}{
		{"Mon, 5 Jan 2004 10:00:00 +0000", "2004-01-05"},
		{"Mon, 05 Jan 2004 10:00:00 +0000", "2004-01-05"},
		{"Mon, 05 Jan 2004 10:00:00 GMT", "2004-01-05"},
		{"5 Jan 2004 10:00:00 +0000", "2004-01-05"},
		{"05 Jan 2004 10:00:00 +0000", "2004-01-05"},
		{"5 Jan 2004 10:00:00", "2004-01-05"},
		{"5 Jan 2004", "2004-01-05"},
		{"Mon, 05 Jan 2004 10:00:00 +0000 (UTC)", "2004-01-05"},
		{"Mon, 5 Jan 2004 10:00:00 -0500 (EST)", "2004-01-05"},
		{"Monday, 05-Jan-04 10:00:00 GMT", "2004-01-05"},
		{"Mon Jan  5 10:00:00 2004", "2004-01-05"},
		// Whitespace runs collapse before parsing.
		{"Mon,  5   Jan 2004 10:00:00 +0000", "2004-01-05"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := parseDate(tc.in)
			if !ok {
				t.Fatalf("parseDate(%q) failed", tc.in)
			}
			if day := got.Format("2006-01-02"); day != tc.day {
				t.Fatalf("parseDate(%q) day = %s, want %s", tc.in, day, tc.day)
			}
		})
	}
}

func TestParseDate_Rejects(t *testing.T) {
	for _, in := range []string{
		"",
		"   ",
		"yesterday",
		"2004/01/05 oh no",
	} {
		if _, ok := parseDate(in); ok {
			t.Fatalf("parseDate(%q) unexpectedly succeeded", in)
		}
	}
}
