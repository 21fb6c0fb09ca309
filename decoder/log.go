package decoder

import (
	"slices"

	"github.com/arloliu/wpilog/entry"
	"github.com/arloliu/wpilog/record"
	"github.com/arloliu/wpilog/section"
)

// Log is a fully decoded WPILOG stream.
type Log struct {
	Header  section.Header
	Records []record.Record

	registry *entry.Registry
}

// Registry returns the final state of the entry registry.
func (l *Log) Registry() entry.Reader {
	return l.registry
}

// Len returns the number of decoded records.
func (l *Log) Len() int {
	return len(l.Records)
}

// Binding returns the binding that applied to a value record when it was
// decoded. Control records report false.
func (l *Log) Binding(rec record.Record) (entry.Binding, bool) {
	if rec.IsControl() {
		return entry.Binding{}, false
	}

	return l.registry.BindingAt(rec.EntryID, rec.Ordinal)
}

// RecordsFor returns the value records written under the given entry name,
// across every id and binding that used the name.
func (l *Log) RecordsFor(name string) []record.Record {
	ids := l.registry.Lookup(name)
	if len(ids) == 0 {
		return nil
	}

	var out []record.Record
	for _, rec := range l.Records {
		if rec.IsControl() || !slices.Contains(ids, rec.EntryID) {
			continue
		}
		if b, ok := l.Binding(rec); ok && b.Name == name {
			out = append(out, rec)
		}
	}

	return out
}
