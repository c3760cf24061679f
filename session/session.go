// Package session holds per-connection state: the logged-in user, the
// navigation history, the preamble cache (which palette/include were last
// sent, so unchanged screen setup is never retransmitted), and the final
// page-assembly step that lays header, payload and footer around a
// resolved page.
package session

import (
	"fmt"
	"os"
	"path/filepath"

	runewidth "github.com/mattn/go-runewidth"

	"github.com/dostermann/bildschirmtext/cept"
	"github.com/dostermann/bildschirmtext/meta"
	"github.com/dostermann/bildschirmtext/resolver"
	"github.com/dostermann/bildschirmtext/sysmsg"
)

// preambleThreshold is the byte count above which the "please wait"
// message is prepended: roughly four seconds at 1200 baud.
const preambleThreshold = 600

// Session is the mutable state threaded through one connection's
// navigation loop, replacing the original script's process-wide globals.
type Session struct {
	UserID string

	lastPaletteFile string
	lastIncludeFile string

	History       []string
	CurrentPageID string
	LastPageData  []byte
}

// New creates an empty Session for an as-yet-unauthenticated connection.
func New() *Session {
	return &Session{}
}

// Login records the authenticated user id. An empty id clears the
// session back to anonymous.
func (s *Session) Login(userID string) {
	s.UserID = userID
}

// RenderPage assembles a resolved page's final wire bytes: hide-cursor,
// optional clear-screen, preamble (with cache checks against this
// session), header, payload, footer, end-of-page.
func (s *Session) RenderPage(id string, page *resolver.RawPage) ([]byte, error) {
	out := make([]byte, 0, len(page.Payload)+256)
	out = append(out, cept.HideCursor()...)

	if page.Meta.ClearScreen {
		out = append(out, cept.SerialLimitedMode()...)
		out = append(out, cept.ClearScreen()...)
	}

	preamble, err := s.buildPreamble(page.Dir, page.Meta)
	if err != nil {
		return nil, err
	}
	out = append(out, preamble...)

	if page.Meta.CLS2 {
		out = append(out, cept.SerialLimitedMode()...)
		out = append(out, cept.ClearScreen()...)
	}

	hf := headerFooter(id, page.Meta.DisplayName(), page.Meta.PublisherColor, page.Meta.IsSystemPage())
	out = append(out, hf...)
	out = append(out, page.Payload...)
	out = append(out, cept.SerialLimitedMode()...)
	out = append(out, hf...)
	out = append(out, cept.SequenceEndOfPage()...)
	return out, nil
}

// buildPreamble emits palette/include bytes only when they differ from
// what this session last sent, updating the cache slots in the process.
// A key absent from meta clears its cache slot, matching the original's
// "else: last_filename_X = ''" branches.
func (s *Session) buildPreamble(dir string, m meta.PageMeta) ([]byte, error) {
	var preamble []byte

	if m.HasPalette() {
		paletteFile := filepath.Join(dir, m.Palette+".pal")
		if paletteFile != s.lastPaletteFile {
			s.lastPaletteFile = paletteFile
			raw, err := os.ReadFile(paletteFile)
			if err != nil {
				return nil, fmt.Errorf("session: reading palette %s: %w", paletteFile, err)
			}
			doc, err := meta.DecodePalette(raw)
			if err != nil {
				return nil, fmt.Errorf("session: decoding palette %s: %w", paletteFile, err)
			}
			entries := make([]cept.PaletteEntry, len(doc.Palette))
			for i, rgb := range doc.Palette {
				entries[i] = cept.PaletteEntry{R: uint8(rgb[0]), G: uint8(rgb[1]), B: uint8(rgb[2])}
			}
			preamble = append(preamble, cept.DefinePalette(entries)...)
		}
	} else {
		s.lastPaletteFile = ""
	}

	if m.HasInclude() {
		includeFile := filepath.Join(dir, m.Include+".inc")
		if includeFile != s.lastIncludeFile {
			s.lastIncludeFile = includeFile
			data, err := os.ReadFile(includeFile)
			if err != nil {
				return nil, fmt.Errorf("session: reading include %s: %w", includeFile, err)
			}
			if len(data) == 0 || data[0] != 0x1f {
				preamble = append(preamble, cept.SetCursor(1, 1)...)
			}
			preamble = append(preamble, data...)
		}
	} else {
		s.lastIncludeFile = ""
	}

	if len(preamble) > preambleThreshold {
		preamble = append(sysmsg.Build(sysmsg.PleaseWait), preamble...)
	}

	return preamble, nil
}

// headerFooter builds the status-line decoration shown at the top and
// bottom of every page: the page id, the publisher name, and the price.
// For a "!BTX" system page the caller passes the substituted display name
// and isSystemPage, which hides the price; the page id is still shown. An
// empty publisher name hides both the page id and the price.
func headerFooter(pageID, publisherName string, publisherColor int, isSystemPage bool) []byte {
	hideHeaderFooter := publisherName == ""
	hidePrice := isSystemPage

	name := publisherName
	if runewidth.StringWidth(name) > 30 {
		name = runewidth.Truncate(name, 30, "")
	}

	hf := make([]byte, 0, 128)
	hf = append(hf, cept.SetRes40x24()...)
	hf = append(hf, cept.SetCursor(23, 1)...)
	hf = append(hf, cept.UnprotectLine()...)
	hf = append(hf, cept.SetLineFgColorSimple(4)...)
	hf = append(hf, cept.ParallelLimitedMode()...)
	hf = append(hf, cept.SetCursor(24, 1)...)
	hf = append(hf, cept.UnprotectLine()...)
	hf = append(hf, ' ', cept.BS)
	hf = append(hf, cept.ClearLine()...)
	hf = append(hf, cept.CursorHome()...)
	hf = append(hf, cept.UnprotectLine()...)
	hf = append(hf, ' ', cept.BS)
	hf = append(hf, cept.ClearLine()...)
	hf = append(hf, cept.SerialLimitedMode()...)
	hf = append(hf, cept.SetCursor(24, 1)...)
	hf = append(hf, cept.SetFgColor(8)...)
	hf = append(hf, cept.BS)
	hf = append(hf, cept.Code9D()...)
	hf = append(hf, cept.BS)

	var colorSeq []byte
	if publisherColor < 8 {
		colorSeq = cept.SetFgColor(publisherColor)
	} else {
		colorSeq = cept.SetFgColorSimple(publisherColor - 8)
	}
	hf = append(hf, colorSeq...)

	hf = append(hf, cept.SetCursor(24, 19)...)
	if !hideHeaderFooter {
		hf = append(hf, cept.FromStr(rightJustify(pageID, 22))...)
	}

	hf = append(hf, cept.CursorHome()...)
	hf = append(hf, cept.SetPalette(1)...)
	hf = append(hf, cept.SetFgColor(8)...)
	hf = append(hf, cept.BS)
	hf = append(hf, cept.Code9D()...)
	hf = append(hf, cept.BS)
	hf = append(hf, colorSeq...)
	hf = append(hf, '\r')
	hf = append(hf, cept.FromStr(name)...)

	if !hideHeaderFooter && !hidePrice {
		hf = append(hf, cept.SetCursor(1, 31)...)
		hf = append(hf, ' ', ' ')
		hf = append(hf, cept.FromStr(formatCurrency(0))...)
	}

	hf = append(hf, cept.CursorHome()...)
	hf = append(hf, cept.SetPalette(0)...)
	hf = append(hf, cept.ProtectLine()...)
	hf = append(hf, '\n')
	return hf
}

func rightJustify(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	pad := width - w
	out := make([]byte, pad)
	for i := range out {
		out[i] = ' '
	}
	return string(out) + s
}

func formatCurrency(cents int) string {
	return fmt.Sprintf("%d,%02d DM", cents/100, cents%100)
}
