package format

import "testing"

func TestGuess(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Format
	}{
		{
			name:  "bibtex entry",
			input: "@article{key,\n  title = {T},\n}\n",
			want:  BibTeX,
		},
		{
			name:  "bibtex with leading comment",
			input: "% exported\n@inproceedings {key,\n}",
			want:  BibTeX,
		},
		{
			name:  "ris record",
			input: "TY  - JOUR\nTI  - T\nER  - \n",
			want:  RIS,
		},
		{
			name:  "isi with file header",
			input: "FN Clarivate Analytics Web of Science\nVR 1.0\nPT J\nER\nEF\n",
			want:  ISI,
		},
		{
			name:  "isi without file header",
			input: "PT J\nTI T\nER\n",
			want:  ISI,
		},
		{
			name:  "mods by namespace",
			input: `<?xml version="1.0"?><mods xmlns="http://www.loc.gov/mods/v3"></mods>`,
			want:  MODS,
		},
		{
			name:  "mods collection",
			input: `<modsCollection><mods></mods></modsCollection>`,
			want:  MODS,
		},
		{
			name:  "endnote records",
			input: `<?xml version="1.0"?><xml><records><record></record></records></xml>`,
			want:  EndNote,
		},
		{
			name:  "empty input defaults to bibtex",
			input: "",
			want:  BibTeX,
		},
		{
			name:  "plain text defaults to bibtex",
			input: "nothing to see here",
			want:  BibTeX,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Guess([]byte(tt.input)); got != tt.want {
				t.Errorf("Guess() = %v, want %v", got, tt.want)
			}
		})
	}
}
