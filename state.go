package schemert

import "sync/atomic"

// TrampolineState reports what a Runtime is doing right now. It is purely
// observational — grounded on eventloop/state.go's LoopState — and the
// runtime itself never branches on it; tests and diagnostics read it
// through Runtime.State.
type TrampolineState uint32

const (
	StateIdle TrampolineState = iota
	StateRunning
	StateCollecting
	StateHalted
)

func (s TrampolineState) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateRunning:
		return "Running"
	case StateCollecting:
		return "Collecting"
	case StateHalted:
		return "Halted"
	default:
		return "Unknown"
	}
}

func (rt *Runtime) setState(s TrampolineState) {
	atomic.StoreUint32(&rt.state, uint32(s))
}

// State reports what the trampoline is doing right now.
func (rt *Runtime) State() TrampolineState {
	return TrampolineState(atomic.LoadUint32(&rt.state))
}
