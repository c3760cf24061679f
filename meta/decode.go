package meta

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-yaml"
)

// knownMetaKeys is the closed set of top-level keys a .meta or a.glob
// document may carry. Anything else is a configuration error caught at
// load time rather than silently ignored.
var knownMetaKeys = map[string]bool{
	"publisher_name":  true,
	"publisher_color": true,
	"palette":         true,
	"include":         true,
	"clear_screen":    true,
	"cls2":            true,
	"links":           true,
	"inputs":          true,
}

// Decode parses a .meta document's raw bytes into a PageMeta, rejecting
// unknown top-level keys.
func Decode(raw []byte) (PageMeta, error) {
	fields, err := decodeRaw(raw)
	if err != nil {
		return PageMeta{}, err
	}
	return fromRaw(fields)
}

// DecodeAndOverlay decodes a .meta document and overlays a.glob's raw
// key/value pairs on top — global-overrides-win, matching the original
// dict.update(glob) semantics. Either input may be nil/empty.
func DecodeAndOverlay(metaRaw, globRaw []byte) (PageMeta, error) {
	fields, err := decodeRaw(metaRaw)
	if err != nil {
		return PageMeta{}, fmt.Errorf("decoding .meta: %w", err)
	}

	if len(globRaw) > 0 {
		overrides, err := decodeRaw(globRaw)
		if err != nil {
			return PageMeta{}, fmt.Errorf("decoding a.glob: %w", err)
		}
		for k, v := range overrides {
			fields[k] = v
		}
	}

	return fromRaw(fields)
}

func decodeRaw(raw []byte) (map[string]any, error) {
	fields := map[string]any{}
	if len(bytes.TrimSpace(raw)) == 0 {
		return fields, nil
	}
	if err := yaml.UnmarshalWithOptions(raw, &fields, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("malformed document: %w", err)
	}
	for k := range fields {
		if !knownMetaKeys[k] {
			return nil, fmt.Errorf("unknown metadata key %q", k)
		}
	}
	return fields, nil
}

func fromRaw(fields map[string]any) (PageMeta, error) {
	reencoded, err := yaml.Marshal(fields)
	if err != nil {
		return PageMeta{}, fmt.Errorf("re-encoding merged metadata: %w", err)
	}

	var m PageMeta
	if err := yaml.UnmarshalWithOptions(reencoded, &m, yaml.Strict()); err != nil {
		return PageMeta{}, fmt.Errorf("decoding merged metadata: %w", err)
	}

	_, m.hasPalette = fields["palette"]
	_, m.hasInclude = fields["include"]

	if m.Links == nil {
		m.Links = map[string]string{}
	}

	return m, nil
}

// PaletteDocument is the shape of a ".pal" artifact: a named palette of
// up to 32 RGB entries.
type PaletteDocument struct {
	Palette [][3]int `yaml:"palette" json:"palette"`
}

// DecodePalette parses a .pal document's raw bytes.
func DecodePalette(raw []byte) (PaletteDocument, error) {
	var doc PaletteDocument
	if err := yaml.UnmarshalWithOptions(raw, &doc, yaml.Strict()); err != nil {
		return PaletteDocument{}, fmt.Errorf("decoding palette document: %w", err)
	}
	return doc, nil
}
