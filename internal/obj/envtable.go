package obj

// EnvTableEntry lists, for one environment-id, the variable-ids that any
// closure sharing that environment-id may actually reference in its body.
// The compiler emits one entry per environment-id used anywhere in the
// program; the collector consults it to enumerate live slots inside an
// environment without needing per-slot type information.
type EnvTableEntry struct {
	EnvID  EnvID
	VarIDs []VarID
}

// EnvTable is the program-wide, compile-time-constant mapping from
// environment-id to the EnvTableEntry describing it. It is supplied once,
// by emitted code, and is never mutated by the runtime.
type EnvTable map[EnvID]EnvTableEntry

// VarIDs returns the variable-ids registered for envID, or nil if envID is
// unknown to the table (which is itself a compiler bug, not a runtime
// fault — the collector treats it as "no live slots").
func (t EnvTable) VarIDs(envID EnvID) []VarID {
	return t[envID].VarIDs
}
