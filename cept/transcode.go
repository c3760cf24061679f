package cept

import (
	"golang.org/x/text/encoding/charmap"

	"github.com/clipperhouse/uax29/v2/graphemes"
)

// diacriticIntroducer introduces a composed diacritic: the sequence is
// ESC 0x28 0x20 <mark> for the dead key, followed by the base letter.
// Marks are arbitrary-but-consistent single bytes, since no CEPT decoder
// is in scope; what matters is that from_str always emits the same
// sequence for the same input.
const diacriticIntroducer = byteESC

var diacriticMark = map[rune]byte{
	'̈': 0xc8, // combining diaeresis -> umlaut dead key
	'ß': 0x00, // ß has no dead key: it is encoded directly below
}

// precomposedLatin1 maps precomposed German letters straight to their
// dead-key+base expansion, short-circuiting grapheme decomposition for
// the common case where the input string already uses NFC form.
var precomposedLatin1 = map[rune][]byte{
	'ä': {diacriticIntroducer, 0x28, 0x20, 0xc8, 'a'},
	'ö': {diacriticIntroducer, 0x28, 0x20, 0xc8, 'o'},
	'ü': {diacriticIntroducer, 0x28, 0x20, 0xc8, 'u'},
	'Ä': {diacriticIntroducer, 0x28, 0x20, 0xc8, 'A'},
	'Ö': {diacriticIntroducer, 0x28, 0x20, 0xc8, 'O'},
	'Ü': {diacriticIntroducer, 0x28, 0x20, 0xc8, 'U'},
	'ß': {0x7b}, // CEPT national character-set slot for ß
}

var latin1Encoder = charmap.ISO8859_1.NewEncoder()

// FromStr transcodes a Unicode string into a CEPT byte stream. Characters
// representable directly in Latin-1 are passed through the charmap
// encoder; German letters with diacritics are expanded to a dead-key
// sequence (or, for ß, a fixed national-set slot) regardless of whether
// the input holds them precomposed or as a base rune plus a combining
// mark — grapheme-cluster iteration (via uax29) makes both forms collapse
// to the same output, which keeps from_str's round-trip property.
func FromStr(s string) []byte {
	out := make([]byte, 0, len(s))
	segs := graphemes.NewSegmenter([]byte(s))
	for segs.Next() {
		out = append(out, encodeCluster(string(segs.Bytes()))...)
	}
	return out
}

func encodeCluster(cluster string) []byte {
	runes := []rune(cluster)
	if len(runes) == 0 {
		return nil
	}

	if b, ok := precomposedLatin1[runes[0]]; ok && len(runes) == 1 {
		return b
	}

	if len(runes) == 2 {
		if mark, ok := diacriticMark[runes[1]]; ok {
			if base, ok2 := precomposedLatin1[composeBaseMark(runes[0], mark)]; ok2 {
				return base
			}
			return []byte{diacriticIntroducer, 0x28, 0x20, mark, byte(runes[0])}
		}
	}

	out := make([]byte, 0, len(runes))
	for _, r := range runes {
		if b, ok := precomposedLatin1[r]; ok {
			out = append(out, b...)
			continue
		}
		enc, err := latin1Encoder.Bytes([]byte(string(r)))
		if err != nil || len(enc) == 0 {
			out = append(out, '?')
			continue
		}
		out = append(out, enc...)
	}
	return out
}

// composeBaseMark looks up the precomposed rune for a base+combining-mark
// pair so a decomposed German letter reuses the same expansion table as
// its precomposed form.
func composeBaseMark(base rune, mark byte) rune {
	switch {
	case mark == 0xc8 && base == 'a':
		return 'ä'
	case mark == 0xc8 && base == 'o':
		return 'ö'
	case mark == 0xc8 && base == 'u':
		return 'ü'
	case mark == 0xc8 && base == 'A':
		return 'Ä'
	case mark == 0xc8 && base == 'O':
		return 'Ö'
	case mark == 0xc8 && base == 'U':
		return 'Ü'
	default:
		return 0
	}
}
