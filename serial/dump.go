package serial

import (
	"encoding/gob"
	"io"

	"github.com/hscells/bayespoint/data"
	"github.com/pkg/errors"
)

// MappingEnvelope wraps a mapping so its concrete type travels on a gob
// stream ahead of a classifier snapshot. Concrete mapping types must be
// registered with gob; the built-in mappings already are.
type MappingEnvelope struct {
	Mapping data.Mapping
}

// Dump writes a snapshot as a self-describing gob value with no version tag.
// Dumps are only readable by the exact code version that wrote them.
func Dump(w io.Writer, s *State) error {
	if s == nil {
		return errors.New("serial: nil state")
	}
	return errors.Wrap(gob.NewEncoder(w).Encode(s), "dump state")
}

// Undump reads a snapshot written by Dump.
func Undump(r io.Reader) (*State, error) {
	var s State
	if err := gob.NewDecoder(r).Decode(&s); err != nil {
		return nil, errors.Wrap(err, "undump state")
	}
	return &s, nil
}

// DumpWithMapping writes mapping bytes followed by classifier bytes on one
// gob stream, split again by UndumpWithMapping reading in the same order.
func DumpWithMapping(w io.Writer, m data.Mapping, s *State) error {
	if m == nil {
		return errors.New("serial: nil mapping")
	}
	if s == nil {
		return errors.New("serial: nil state")
	}
	enc := gob.NewEncoder(w)
	if err := enc.Encode(&MappingEnvelope{Mapping: m}); err != nil {
		return errors.Wrap(err, "dump mapping")
	}
	return errors.Wrap(enc.Encode(s), "dump state")
}

// UndumpWithMapping reads a mapping and a snapshot written by
// DumpWithMapping.
func UndumpWithMapping(r io.Reader) (data.Mapping, *State, error) {
	dec := gob.NewDecoder(r)
	var envelope MappingEnvelope
	if err := dec.Decode(&envelope); err != nil {
		return nil, nil, errors.Wrap(err, "undump mapping")
	}
	var s State
	if err := dec.Decode(&s); err != nil {
		return nil, nil, errors.Wrap(err, "undump state")
	}
	return envelope.Mapping, &s, nil
}
