package bib

// MergeIn folds data from a second source into r. The document type is
// always taken from src; every other scalar is taken only when src knows it
// and never clobbers a value r already has. Extras fill absent or empty
// keys only. src is read, never retained: all values are copied.
//
// The unconditional Type overwrite is a long-standing quirk of the library
// file format; exports depend on it, so it stays.
func (r *Record) MergeIn(src *Record) {
	if src == nil {
		return
	}

	r.Type = src.Type

	fillIfEmpty(&r.DOI, src.DOI)
	fillIfEmpty(&r.Title, src.Title)
	fillIfEmpty(&r.Authors, src.Authors)
	fillIfEmpty(&r.Journal, src.Journal)
	fillIfEmpty(&r.Volume, src.Volume)
	fillIfEmpty(&r.Number, src.Number)
	fillIfEmpty(&r.Pages, src.Pages)
	fillIfEmpty(&r.Year, src.Year)

	for _, x := range src.Extras.All() {
		r.Extras.SetIfEmpty(x.Key, x.Value)
	}
}

func fillIfEmpty(dst *string, src string) {
	if *dst == "" && src != "" {
		*dst = src
	}
}
