package search

import (
	"strings"
	"unicode/utf8"

	"github.com/jhoicas/catalogo-servicios/pkg/textnorm"
)

// Segment es un trozo del texto original, marcado si coincide con el término.
type Segment struct {
	Text    string `json:"text"`
	IsMatch bool   `json:"isMatch"`
}

// foldedText es el texto plegado (minúsculas, sin tildes) junto con, por cada
// byte plegado, el rango de bytes de la runa original que lo produjo.
type foldedText struct {
	s          string
	start, end []int
}

func fold(text string) foldedText {
	var b strings.Builder
	b.Grow(len(text))
	ft := foldedText{
		start: make([]int, 0, len(text)),
		end:   make([]int, 0, len(text)),
	}
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		f := textnorm.Fold(string(r))
		b.WriteString(f)
		for range len(f) {
			ft.start = append(ft.start, i)
			ft.end = append(ft.end, i+size)
		}
		i += size
	}
	ft.s = b.String()
	return ft
}

// foldsToNothing indica que la runa desaparece al plegar (marca combinante suelta).
func foldsToNothing(text string, at int) (int, bool) {
	r, size := utf8.DecodeRuneInString(text[at:])
	return size, textnorm.Fold(string(r)) == ""
}

// HighlightText divide text en segmentos marcando todas las apariciones no solapadas
// de term. La comparación ignora tildes y mayúsculas, pero los segmentos conservan el
// texto original. Si term está vacío o no aparece, devuelve el texto como único segmento.
// Concatenar los segmentos reconstruye text.
func HighlightText(text, term string) []Segment {
	whole := []Segment{{Text: text}}
	needle := textnorm.Normalize(term)
	if text == "" || needle == "" {
		return whole
	}

	ft := fold(text)
	var segs []Segment
	last := 0
	for pos := 0; pos < len(ft.s); {
		idx := strings.Index(ft.s[pos:], needle)
		if idx < 0 {
			break
		}
		mStart := pos + idx
		mEnd := mStart + len(needle)
		pos = mEnd

		oStart, oEnd := ft.start[mStart], ft.end[mEnd-1]
		for oEnd < len(text) {
			size, gone := foldsToNothing(text, oEnd)
			if !gone {
				break
			}
			oEnd += size
		}
		if oStart < last {
			oStart = last
		}
		if oStart >= oEnd {
			continue
		}
		if oStart > last {
			segs = append(segs, Segment{Text: text[last:oStart]})
		}
		segs = append(segs, Segment{Text: text[oStart:oEnd], IsMatch: true})
		last = oEnd
	}
	if len(segs) == 0 {
		return whole
	}
	if last < len(text) {
		segs = append(segs, Segment{Text: text[last:]})
	}
	return segs
}
