// Package entry tracks the lifecycle of WPILOG entry ids.
//
// An entry id is bound to a name, a declared type and optional metadata by a
// Start control record, and released by a Finish control record. Each id keeps
// its full history of bindings, oldest first. At most one binding per id is
// open at any time:
//
//	Unbound --Start--> Open --Finish--> Closed --Start--> Open ...
//
// A Registry belongs to a single decode pass and is NOT thread-safe.
package entry

import (
	"fmt"
	"slices"

	"github.com/valyala/fastjson"

	"github.com/arloliu/wpilog/errs"
	"github.com/arloliu/wpilog/format"
	"github.com/arloliu/wpilog/internal/hash"
)

// State is the lifecycle state of an entry id.
type State uint8

const (
	StateUnbound State = iota // StateUnbound means the id was never started.
	StateOpen                 // StateOpen means the latest binding is not finished.
	StateClosed               // StateClosed means the latest binding is finished.
)

func (s State) String() string {
	switch s {
	case StateUnbound:
		return "Unbound"
	case StateOpen:
		return "Open"
	case StateClosed:
		return "Closed"
	default:
		return "Unknown"
	}
}

// Binding is one lifetime of an entry id.
type Binding struct {
	// StartIndex is the ordinal of the Start record that created the binding.
	StartIndex uint32
	Name       string
	Type       format.TypeTag
	// Metadata is nil when the binding has no metadata.
	Metadata *fastjson.Value
	// FinishIndex is the ordinal of the Finish record, valid when Finished is set.
	FinishIndex uint32
	Finished    bool
}

// IsOpen reports whether the binding has not been finished.
func (b Binding) IsOpen() bool {
	return !b.Finished
}

// Covers reports whether the binding applies to a record at ordinal n.
func (b Binding) Covers(n uint32) bool {
	return b.StartIndex <= n && (!b.Finished || b.FinishIndex >= n)
}

// Reader is the read-only view of a Registry.
type Reader interface {
	State(id uint32) State
	Bindings(id uint32) []Binding
	Latest(id uint32) (Binding, bool)
	BindingAt(id uint32, ordinal uint32) (Binding, bool)
	Lookup(name string) []uint32
	IDs() []uint32
	Len() int
}

// Registry maps entry ids to their binding history.
type Registry struct {
	entries map[uint32][]Binding
	byName  map[uint64][]uint32 // name hash → ids ever bound to a name with that hash
}

var _ Reader = (*Registry)(nil)

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[uint32][]Binding),
		byName:  make(map[uint64][]uint32),
	}
}

// State returns the lifecycle state of id.
func (r *Registry) State(id uint32) State {
	bindings := r.entries[id]
	if len(bindings) == 0 {
		return StateUnbound
	}
	if bindings[len(bindings)-1].Finished {
		return StateClosed
	}

	return StateOpen
}

// Start opens a new binding for id.
//
// A Closed id gets a new binding appended after its finished ones, so the
// full history stays available.
//
// Parameters:
//   - id: Entry id being started
//   - ordinal: Ordinal of the Start record
//   - name: Entry name
//   - typ: Declared type
//   - metadata: Parsed metadata, nil for none
//
// Returns:
//   - error: errs.ErrEntryAlreadyStarted if id is Open; the registry is left unchanged
func (r *Registry) Start(id uint32, ordinal uint32, name string, typ format.TypeTag, metadata *fastjson.Value) error {
	if r.State(id) == StateOpen {
		latest := r.entries[id][len(r.entries[id])-1]
		return fmt.Errorf("%w: entry %d open since record %d", errs.ErrEntryAlreadyStarted, id, latest.StartIndex)
	}

	r.entries[id] = append(r.entries[id], Binding{
		StartIndex: ordinal,
		Name:       name,
		Type:       typ,
		Metadata:   metadata,
	})
	r.indexName(name, id)

	return nil
}

// Finish closes the open binding of id at the given ordinal.
//
// Returns:
//   - error: errs.ErrFinishWithoutStart if id has no bindings,
//     errs.ErrFinishAfterFinish if its latest binding is already closed
func (r *Registry) Finish(id uint32, ordinal uint32) error {
	b, err := r.openBinding(id, errs.ErrFinishWithoutStart, errs.ErrFinishAfterFinish)
	if err != nil {
		return err
	}

	b.FinishIndex = ordinal
	b.Finished = true

	return nil
}

// SetMetadata replaces the metadata of the open binding of id.
//
// Returns:
//   - error: errs.ErrSetMetadataWithoutStart if id has no bindings,
//     errs.ErrSetMetadataAfterFinish if its latest binding is closed
func (r *Registry) SetMetadata(id uint32, metadata *fastjson.Value) error {
	b, err := r.openBinding(id, errs.ErrSetMetadataWithoutStart, errs.ErrSetMetadataAfterFinish)
	if err != nil {
		return err
	}

	b.Metadata = metadata

	return nil
}

// Resolve returns the binding that applies to a value record for id at ordinal.
//
// Returns:
//   - Binding: The newest binding covering ordinal
//   - error: errs.ErrUseOfEntryIDWithoutStart if id has no bindings,
//     errs.ErrUseOfEntryIDAfterFinish if none of its bindings covers ordinal
func (r *Registry) Resolve(id uint32, ordinal uint32) (Binding, error) {
	if len(r.entries[id]) == 0 {
		return Binding{}, fmt.Errorf("%w: entry %d", errs.ErrUseOfEntryIDWithoutStart, id)
	}

	b, ok := r.BindingAt(id, ordinal)
	if !ok {
		return Binding{}, fmt.Errorf("%w: entry %d", errs.ErrUseOfEntryIDAfterFinish, id)
	}

	return b, nil
}

// BindingAt returns the newest binding of id covering ordinal.
func (r *Registry) BindingAt(id uint32, ordinal uint32) (Binding, bool) {
	bindings := r.entries[id]
	for i := len(bindings) - 1; i >= 0; i-- {
		if bindings[i].Covers(ordinal) {
			return bindings[i], true
		}
	}

	return Binding{}, false
}

// Bindings returns a copy of the binding history of id, oldest first.
func (r *Registry) Bindings(id uint32) []Binding {
	return slices.Clone(r.entries[id])
}

// Latest returns the most recent binding of id.
func (r *Registry) Latest(id uint32) (Binding, bool) {
	bindings := r.entries[id]
	if len(bindings) == 0 {
		return Binding{}, false
	}

	return bindings[len(bindings)-1], true
}

// Lookup returns the ids that were ever bound to name, in first-start order.
func (r *Registry) Lookup(name string) []uint32 {
	var ids []uint32
	for _, id := range r.byName[hash.NameID(name)] {
		// hash collisions are resolved against the stored names
		for _, b := range r.entries[id] {
			if b.Name == name {
				ids = append(ids, id)
				break
			}
		}
	}

	return ids
}

// IDs returns every id with at least one binding, in ascending order.
func (r *Registry) IDs() []uint32 {
	ids := make([]uint32, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	return ids
}

// Len returns the number of ids with at least one binding.
func (r *Registry) Len() int {
	return len(r.entries)
}

func (r *Registry) openBinding(id uint32, withoutStart, afterFinish error) (*Binding, error) {
	bindings := r.entries[id]
	if len(bindings) == 0 {
		return nil, fmt.Errorf("%w: entry %d", withoutStart, id)
	}

	b := &bindings[len(bindings)-1]
	if b.Finished {
		return nil, fmt.Errorf("%w: entry %d finished at record %d", afterFinish, id, b.FinishIndex)
	}

	return b, nil
}

func (r *Registry) indexName(name string, id uint32) {
	key := hash.NameID(name)
	if !slices.Contains(r.byName[key], id) {
		r.byName[key] = append(r.byName[key], id)
	}
}
