// Package textnorm compara texto sin distinguir mayúsculas ni tildes:
// "José" y "jose" normalizan al mismo valor.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks se construye por llamada: los transformers encadenados guardan estado.
func stripMarks() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

// Fold pasa a minúsculas y elimina las marcas diacríticas, sin recortar espacios.
// Conserva la longitud relativa del texto para poder mapear posiciones.
func Fold(s string) string {
	if s == "" {
		return ""
	}
	lower := strings.ToLower(s)
	out, _, err := transform.String(stripMarks(), lower)
	if err != nil {
		return lower
	}
	return out
}

// Normalize descompone, elimina diacríticos, pasa a minúsculas y recorta espacios.
// Normalize(Normalize(x)) == Normalize(x).
func Normalize(s string) string {
	return strings.TrimSpace(Fold(s))
}

// Contains indica si needle aparece en haystack tras normalizar ambos.
// Un needle vacío siempre está contenido.
func Contains(haystack, needle string) bool {
	return strings.Contains(Normalize(haystack), Normalize(needle))
}
