// Package resolver turns a page id into its metadata and raw payload
// bytes. It walks a filesystem tree of per-directory metadata/payload
// pairs, checking dynamic generators first and falling back to the
// longest directory-prefix match against the data root, mirroring the
// original content layout: a page id's filename is whatever remains
// after stripping the longest directory prefix that exists on disk.
//
// Resolver does not assemble the final transmitted bytes: preamble
// caching and header/footer rendering are per-connection state owned by
// the session package, which calls Resolver and then lays out the wire
// bytes around what it returns.
package resolver

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/btree"

	"github.com/dostermann/bildschirmtext/meta"
	"github.com/dostermann/bildschirmtext/pageid"
)

// RawPage is what a resolved page id yields before preamble/header
// assembly: the merged metadata, the directory it was resolved against
// (for loading palette/include files relative to it), and the page's raw
// CEPT payload bytes.
type RawPage struct {
	Meta    meta.PageMeta
	Dir     string
	Payload []byte
}

// Generator produces a dynamic page (login, user management, messaging)
// for ids it recognizes, returning (nil, nil, nil) when it doesn't own id.
type Generator interface {
	Generate(userID string, id string) (*meta.PageMeta, []byte, error)
}

// dirEntry is a btree item: a known on-disk directory, ordered by path.
// longestDirPrefix probes the index with Has once per candidate prefix.
type dirEntry struct {
	path string
}

func (d dirEntry) Less(than btree.Item) bool {
	return d.path < than.(dirEntry).path
}

// Resolver resolves page ids against a data root, consulting generators
// before the filesystem.
type Resolver struct {
	dataRoot   string
	generators []Generator
	dirs       *btree.BTree
}

// New builds a Resolver rooted at dataRoot, indexing its directory tree up
// front. Generators are tried, in registration order, before the
// filesystem for every lookup; the caller decides precedence by the order
// it passes them in (e.g. login before user-management before messaging,
// per pageid.IsLogin/IsUserManagement/IsMessaging).
func New(dataRoot string, generators ...Generator) (*Resolver, error) {
	r := &Resolver{dataRoot: dataRoot, generators: generators, dirs: btree.New(32)}
	err := filepath.WalkDir(dataRoot, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			rel, err := filepath.Rel(dataRoot, path)
			if err != nil {
				return err
			}
			if rel == "." {
				rel = ""
			}
			r.dirs.ReplaceOrInsert(dirEntry{path: rel})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("resolver: indexing %s: %w", dataRoot, err)
	}
	return r, nil
}

// DataRoot returns the filesystem root the Resolver was built against.
func (r *Resolver) DataRoot() string { return r.dataRoot }

// longestDirPrefix finds the longest known directory path that is a
// prefix of id, returning that directory and the remaining filename stem.
func (r *Resolver) longestDirPrefix(id string) (dir, stem string, ok bool) {
	for i := len(id); i >= 0; i-- {
		candidate := id[:i]
		if r.dirs.Has(dirEntry{path: candidate}) {
			return candidate, id[i:], true
		}
	}
	return "", "", false
}

// Resolve produces the metadata and payload for id, or ok=false if no
// generator and no filesystem entry claims it.
func (r *Resolver) Resolve(userID string, id string) (*RawPage, bool, error) {
	id = pageid.Normalize(id)

	var (
		m    *meta.PageMeta
		data []byte
	)

	for _, gen := range r.generators {
		gm, gdata, err := gen.Generate(userID, id)
		if err != nil {
			return nil, false, err
		}
		if gm != nil {
			m, data = gm, gdata
			break
		}
	}

	dir, stem, found := r.longestDirPrefix(id)
	if m == nil {
		if !found {
			return nil, false, nil
		}
		metaPath := filepath.Join(r.dataRoot, dir, stem+".meta")
		ceptPath := filepath.Join(r.dataRoot, dir, stem+".cept")

		metaRaw, err := os.ReadFile(metaPath)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, false, nil
			}
			return nil, false, err
		}
		ceptData, err := os.ReadFile(ceptPath)
		if err != nil {
			return nil, false, err
		}

		globRaw, err := readGlob(r.dataRoot, dir)
		if err != nil {
			return nil, false, err
		}

		decoded, err := meta.DecodeAndOverlay(metaRaw, globRaw)
		if err != nil {
			return nil, false, fmt.Errorf("resolver: decoding %s: %w", metaPath, err)
		}
		m, data = &decoded, ceptData
	} else if found {
		// Dynamic generators still pick up the directory's a.glob
		// overlay, so e.g. a palette applies uniformly across a
		// subtree that mixes static and generated pages.
		globRaw, err := readGlob(r.dataRoot, dir)
		if err != nil {
			return nil, false, err
		}
		if globRaw != nil {
			merged, err := meta.DecodeAndOverlay(mustMarshal(m), globRaw)
			if err != nil {
				return nil, false, err
			}
			m = &merged
		}
	}

	return &RawPage{Meta: *m, Dir: dir, Payload: data}, true, nil
}

func readGlob(dataRoot, dir string) ([]byte, error) {
	globPath := filepath.Join(dataRoot, dir, "a.glob")
	raw, err := os.ReadFile(globPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return raw, nil
}

func mustMarshal(m *meta.PageMeta) []byte {
	b, err := json.Marshal(m)
	if err != nil {
		return []byte("{}")
	}
	return b
}
