package types

import "errors"

// CrateTable holds the ordered implementor list for a single crate. The order
// is presentation order, preserved from generation through registration to
// rendering. A table is created fully populated by the fragment decoder and
// never mutated afterward; ownership transfers to the registry sink on
// submission.
type CrateTable struct {
	Crate        string        // Crate name, the unique key in the index.
	Implementors []Implementor // Presentation-ordered implementor rows.
}

// Entity validation errors.
var (
	ErrCrateNameEmpty        = errors.New("crate name must not be empty")
	ErrImplementorIncomplete = errors.New("implementor must have trait and type paths")
)

// Validate checks that the table is well-formed: a non-empty crate name and,
// for every row, non-empty trait and type paths. Empty implementor lists are
// valid; a crate may document zero implementations of a trait.
func (t CrateTable) Validate() error {
	if t.Crate == "" {
		return ErrCrateNameEmpty
	}
	for _, im := range t.Implementors {
		if im.TraitPath == "" || im.TypePath == "" {
			return ErrImplementorIncomplete
		}
	}
	return nil
}

// Clone returns a deep copy of the table. The registry clones on submit so
// the producing fragment retains no aliasing into registry or sink state.
func (t CrateTable) Clone() CrateTable {
	cp := CrateTable{Crate: t.Crate}
	if t.Implementors != nil {
		cp.Implementors = make([]Implementor, len(t.Implementors))
		for i, im := range t.Implementors {
			cp.Implementors[i] = im.Clone()
		}
	}
	return cp
}
