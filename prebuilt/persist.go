package prebuilt

import (
	"encoding/gob"
	"os"

	"github.com/pkg/errors"
)

// gobEntry mirrors entry with exported fields, since gob only encodes
// those and entry itself stays unexported everywhere else in this package.
type gobEntry struct {
	Signature uint64
	Distance  int
}

// gobTable is the on-disk shape Save/Load round-trip through.
type gobTable struct {
	ByRacking map[int][]gobEntry
}

// Save writes t to path as a gob stream, mirroring grailbio-bio's
// bio-fusion io.go encodeGOB/decodeGOB pair at the scope this package
// needs: a single map of small structs, not a multi-section recordio
// file with its own header/trailer format.
func (t *Table) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "prebuilt: creating %s", path)
	}
	defer f.Close()

	out := gobTable{ByRacking: make(map[int][]gobEntry, len(t.byRacking))}
	for racking, entries := range t.byRacking {
		converted := make([]gobEntry, len(entries))
		for i, e := range entries {
			converted[i] = gobEntry{Signature: e.signature, Distance: e.distance}
		}
		out.ByRacking[racking] = converted
	}

	if err := gob.NewEncoder(f).Encode(&out); err != nil {
		return errors.Wrapf(err, "prebuilt: encoding %s", path)
	}
	return nil
}

// Load reads a Table previously written by Save.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "prebuilt: opening %s", path)
	}
	defer f.Close()

	var in gobTable
	if err := gob.NewDecoder(f).Decode(&in); err != nil {
		return nil, errors.Wrapf(err, "prebuilt: decoding %s", path)
	}

	t := New()
	for racking, entries := range in.ByRacking {
		converted := make([]entry, len(entries))
		for i, e := range entries {
			converted[i] = entry{signature: e.Signature, distance: e.Distance}
		}
		t.byRacking[racking] = converted
	}
	return t, nil
}
