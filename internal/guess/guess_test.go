package guess

import "testing"

func TestYear(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   int
		wantOK bool
	}{
		{"later year wins over citations", "published in 1998 and cited work from 1975", 1998, true},
		{"window lower bound excluded", "as shown in 1990", 0, false},
		{"future years rejected", "to appear in 9999", 0, false},
		{"digits inside words ignored", "sample ab1998cd here", 0, false},
		{"year at end of text", "accepted 2014", 2014, true},
		{"adjacent candidates", "2003 2007", 2007, true},
		{"no digits", "no year here", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Year(tt.text)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Year(%q) = %d, %v; want %d, %v", tt.text, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestDOI(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   string
		wantOK bool
	}{
		{"paren and comma stripped", "Available at (doi:10.1000/xyz123),", "10.1000/xyz123", true},
		{"plain marker", "doi: 10.1093/bioinformatics/bty407 published", "10.1093/bioinformatics/bty407", true},
		{"spelled-out marker", "Digital Object Identifier: 10.1234/a.b-c", "10.1234/a.b-c", true},
		{"first match wins", "doi:10.1000/first see also doi:10.2000/second", "10.1000/first", true},
		{"balanced parens kept", "doi:10.1002/(sici)1097-0258", "10.1002/(sici)1097-0258", true},
		{"bare doi not announced", "see 10.1000/xyz123 in refs", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DOI(tt.text)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("DOI(%q) = %q, %v; want %q, %v", tt.text, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestArXiv(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   string
		wantOK bool
	}{
		{"modern id", "preprint arXiv:2106.15928v2, 2021", "2106.15928v2", true},
		{"old style id", "arXiv:math.GT/0309136.", "math.GT/0309136", true},
		{"absent", "no identifiers at all", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ArXiv(tt.text)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ArXiv(%q) = %q, %v; want %q, %v", tt.text, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
