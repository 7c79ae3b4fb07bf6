//go:build schemert_debug

package obj

// Provenance records the last operation that touched an object's header,
// compiled in only under the schemert_debug build tag (spec.md §7: "Debug
// builds include per-object 'last touched by' provenance to aid
// diagnosis; release builds omit it").
type Provenance string

// Touch records where (which runtime operation) last touched the object.
func (p *Provenance) Touch(where string) {
	*p = Provenance(where)
}

func (p Provenance) String() string {
	if p == "" {
		return "<unknown>"
	}
	return string(p)
}
