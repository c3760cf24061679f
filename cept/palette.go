package cept

import (
	"github.com/lucasb-eyer/go-colorful"
)

// PaletteEntry is one RGB entry of a CEPT palette, as loaded from a .pal
// artifact. Channels are 0..255; CEPT palettes only carry 3 bits per
// channel, so DefinePalette quantizes through go-colorful's color math
// rather than simple bit-shifting, which keeps entries closer to their
// original hue when two source colors would otherwise collide.
type PaletteEntry struct {
	R, G, B uint8
}

// maxPaletteEntries is the number of entries a CEPT palette definition
// carries.
const maxPaletteEntries = 32

// DefinePalette builds the byte sequence that loads up to 32 RGB entries
// into the currently selected palette slot. Entries beyond 32 are ignored;
// missing entries are padded with black.
func DefinePalette(entries []PaletteEntry) []byte {
	out := []byte{byteESC, 0x20, 0x40}
	for i := 0; i < maxPaletteEntries; i++ {
		var e PaletteEntry
		if i < len(entries) {
			e = entries[i]
		}
		out = append(out, quantizeChannel(e.R), quantizeChannel(e.G), quantizeChannel(e.B))
	}
	return out
}

// quantizeChannel reduces an 8-bit color channel to the 3-bit range (0..7)
// CEPT palette entries carry, returned offset by 0x30. The level is the
// HSL lightness go-colorful reports for the equivalent gray (v/255),
// rounded to the nearest step rather than truncated.
func quantizeChannel(v uint8) byte {
	c := colorful.Color{R: float64(v) / 255.0, G: float64(v) / 255.0, B: float64(v) / 255.0}
	_, _, l := c.Hsl()
	return byte(0x30 + int(l*7.0+0.5))
}
