package types

import (
	"fmt"
	"strconv"

	"github.com/colorfulnotion/zkapp/common"
	"github.com/colorfulnotion/zkapp/zkerrors"
)

// MaxStateFields is the number of field elements of on-chain app state.
const MaxStateFields = 8

type (
	AppState           [MaxStateFields]common.Field
	StateUpdates       [MaxStateFields]Update[common.Field]
	StatePreconditions [MaxStateFields]EqualsPrecondition[common.Field]
)

// AllSet reports whether every state slot is written.
func (u StateUpdates) AllSet() bool {
	for _, s := range u {
		if !s.IsSome {
			return false
		}
	}
	return true
}

// AnySet reports whether at least one state slot is written.
func (u StateUpdates) AnySet() bool {
	for _, s := range u {
		if s.IsSome {
			return true
		}
	}
	return false
}

// StateFieldSpec declares one named field of a layout and how many field
// elements it occupies.
type StateFieldSpec struct {
	Name  string
	Width int
}

type StateField struct {
	Name   string
	Offset int
	Width  int
}

// StateSchema maps named, possibly multi-element values onto the generic
// state slots in declaration order.
type StateSchema struct {
	fields []StateField
	byName map[string]int
	width  int
}

func NewStateSchema(specs ...StateFieldSpec) (*StateSchema, error) {
	s := &StateSchema{byName: make(map[string]int, len(specs))}
	for _, spec := range specs {
		if spec.Width <= 0 {
			return nil, fmt.Errorf("%w: field %q has width %d", zkerrors.ErrSStateLayout, spec.Name, spec.Width)
		}
		if _, dup := s.byName[spec.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate field %q", zkerrors.ErrSStateLayout, spec.Name)
		}
		if s.width+spec.Width > MaxStateFields {
			return nil, fmt.Errorf("%w: %d field elements needed, %d available", zkerrors.ErrSStateLayout, s.width+spec.Width, MaxStateFields)
		}
		s.byName[spec.Name] = len(s.fields)
		s.fields = append(s.fields, StateField{Name: spec.Name, Offset: s.width, Width: spec.Width})
		s.width += spec.Width
	}
	return s, nil
}

// GenericStateSchema names each slot by its index.
func GenericStateSchema() *StateSchema {
	specs := make([]StateFieldSpec, MaxStateFields)
	for i := range specs {
		specs[i] = StateFieldSpec{Name: strconv.Itoa(i), Width: 1}
	}
	s, _ := NewStateSchema(specs...)
	return s
}

func (s *StateSchema) Fields() []StateField {
	return s.fields
}

// Width is the number of slots the layout occupies.
func (s *StateSchema) Width() int {
	return s.width
}

func (s *StateSchema) lookup(name string, values int) (StateField, error) {
	i, ok := s.byName[name]
	if !ok {
		return StateField{}, fmt.Errorf("%w: %q", zkerrors.ErrSStateFieldUnknown, name)
	}
	f := s.fields[i]
	if values >= 0 && values != f.Width {
		return StateField{}, fmt.Errorf("%w: %q takes %d, got %d", zkerrors.ErrSStateFieldWidth, name, f.Width, values)
	}
	return f, nil
}

// Read returns the slots of the named field.
func (s *StateSchema) Read(state AppState, name string) ([]common.Field, error) {
	f, err := s.lookup(name, -1)
	if err != nil {
		return nil, err
	}
	out := make([]common.Field, f.Width)
	copy(out, state[f.Offset:f.Offset+f.Width])
	return out, nil
}

// SetUpdate marks the named field for writing.
func (s *StateSchema) SetUpdate(u *StateUpdates, name string, values ...common.Field) error {
	f, err := s.lookup(name, len(values))
	if err != nil {
		return err
	}
	for i, v := range values {
		u[f.Offset+i] = Set(v)
	}
	return nil
}

// RequireEquals adds an equality precondition on the named field.
func (s *StateSchema) RequireEquals(p *StatePreconditions, name string, values ...common.Field) error {
	f, err := s.lookup(name, len(values))
	if err != nil {
		return err
	}
	for i, v := range values {
		p[f.Offset+i] = Equals(v)
	}
	return nil
}

// Mask reports which slots the named fields cover, or the whole layout when
// no names are given.
func (s *StateSchema) Mask(names ...string) ([MaxStateFields]bool, error) {
	var m [MaxStateFields]bool
	if len(names) == 0 {
		for i := 0; i < s.width; i++ {
			m[i] = true
		}
		return m, nil
	}
	for _, n := range names {
		f, err := s.lookup(n, -1)
		if err != nil {
			return m, err
		}
		for i := f.Offset; i < f.Offset+f.Width; i++ {
			m[i] = true
		}
	}
	return m, nil
}

// Decode splits state into named values.
func (s *StateSchema) Decode(state AppState) map[string][]common.Field {
	out := make(map[string][]common.Field, len(s.fields))
	for _, f := range s.fields {
		v := make([]common.Field, f.Width)
		copy(v, state[f.Offset:f.Offset+f.Width])
		out[f.Name] = v
	}
	return out
}

// Encode builds a full state from named values; missing fields stay zero.
func (s *StateSchema) Encode(values map[string][]common.Field) (AppState, error) {
	var st AppState
	for name, v := range values {
		f, err := s.lookup(name, len(v))
		if err != nil {
			return st, err
		}
		copy(st[f.Offset:], v)
	}
	return st, nil
}
