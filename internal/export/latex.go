package export

import "strings"

// latexEscapes maps accented codepoints to their LaTeX spellings for
// non-UTF-8 output targets.
var latexEscapes = map[rune]string{
	'à': "\\`{a}", 'á': "\\'{a}", 'â': "\\^{a}", 'ã': "\\~{a}", 'ä': "\\\"{a}", 'å': "\\r{a}",
	'À': "\\`{A}", 'Á': "\\'{A}", 'Â': "\\^{A}", 'Ã': "\\~{A}", 'Ä': "\\\"{A}", 'Å': "\\r{A}",
	'è': "\\`{e}", 'é': "\\'{e}", 'ê': "\\^{e}", 'ë': "\\\"{e}",
	'È': "\\`{E}", 'É': "\\'{E}", 'Ê': "\\^{E}", 'Ë': "\\\"{E}",
	'ì': "\\`{i}", 'í': "\\'{i}", 'î': "\\^{i}", 'ï': "\\\"{i}",
	'Ì': "\\`{I}", 'Í': "\\'{I}", 'Î': "\\^{I}", 'Ï': "\\\"{I}",
	'ò': "\\`{o}", 'ó': "\\'{o}", 'ô': "\\^{o}", 'õ': "\\~{o}", 'ö': "\\\"{o}", 'ø': "{\\o}",
	'Ò': "\\`{O}", 'Ó': "\\'{O}", 'Ô': "\\^{O}", 'Õ': "\\~{O}", 'Ö': "\\\"{O}", 'Ø': "{\\O}",
	'ù': "\\`{u}", 'ú': "\\'{u}", 'û': "\\^{u}", 'ü': "\\\"{u}",
	'Ù': "\\`{U}", 'Ú': "\\'{U}", 'Û': "\\^{U}", 'Ü': "\\\"{U}",
	'ý': "\\'{y}", 'ÿ': "\\\"{y}", 'Ý': "\\'{Y}",
	'ñ': "\\~{n}", 'Ñ': "\\~{N}",
	'ç': "\\c{c}", 'Ç': "\\c{C}",
	'ß': "{\\ss}",
	'æ': "{\\ae}", 'Æ': "{\\AE}",
	'œ': "{\\oe}", 'Œ': "{\\OE}",
	'ą': "\\k{a}", 'Ą': "\\k{A}", 'ę': "\\k{e}", 'Ę': "\\k{E}",
	'ć': "\\'{c}", 'Ć': "\\'{C}",
	'č': "\\v{c}", 'Č': "\\v{C}",
	'š': "\\v{s}", 'Š': "\\v{S}",
	'ž': "\\v{z}", 'Ž': "\\v{Z}",
	'ř': "\\v{r}", 'Ř': "\\v{R}",
	'ď': "\\v{d}", 'Ď': "\\v{D}",
	'ť': "\\v{t}", 'Ť': "\\v{T}",
	'ň': "\\v{n}", 'Ň': "\\v{N}",
	'ě': "\\v{e}", 'Ě': "\\v{E}",
	'ů': "\\r{u}", 'Ů': "\\r{U}",
	'ł': "{\\l}", 'Ł': "{\\L}",
	'ż': "\\.{z}", 'Ż': "\\.{Z}",
	'ś': "\\'{s}", 'Ś': "\\'{S}",
	'ź': "\\'{z}", 'Ź': "\\'{Z}",
	'ő': "\\H{o}", 'Ő': "\\H{O}",
	'ű': "\\H{u}", 'Ű': "\\H{U}",
	'ğ': "\\u{g}", 'Ğ': "\\u{G}",
	'ș': "\\c{s}", 'Ș': "\\c{S}",
	'ț': "\\c{t}", 'Ț': "\\c{T}",
	'ā': "\\={a}", 'ē': "\\={e}", 'ī': "\\={i}", 'ō': "\\={o}", 'ū': "\\={u}",
	'đ': "{\\dj}", 'Đ': "{\\DJ}",
	'–': "--", '—': "---",
	'‘': "`", '’': "'",
	'“': "``", '”': "''",
	'…': "\\ldots{}",
	' ': "~",
}

// EscapeLatex rewrites accented characters through the escape table and
// escapes ampersands. Characters with no table entry pass through
// unchanged; an exhaustive transliteration is not the goal.
func EscapeLatex(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == '&':
			b.WriteString("\\&")
		case r < 128:
			b.WriteRune(r)
		default:
			if esc, ok := latexEscapes[r]; ok {
				b.WriteString(esc)
			} else {
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}
