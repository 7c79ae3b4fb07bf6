package schemert

import (
	"fmt"
	"io"
	"os"

	"github.com/tailhop/schemert/internal/obj"
)

// haltEnvID is the environment-id reserved for halt_func's (empty) closure
// environment. It deliberately falls outside any range a real compiler
// would assign, so an EnvTable never needs an entry for it.
const haltEnvID obj.EnvID = -1

// NewHalt returns halt_func: the terminal continuation a program's entry
// point wires as the outermost continuation. Invoking it prints "Halt" to
// w and ends the process with status 0 (spec.md's S1 scenario: "prints
// 'Halt' and terminates").
func NewHalt(w io.Writer) *obj.Closure {
	return newHalt(w, os.Exit)
}

// newHalt takes the exit function as a parameter so tests can observe
// halt_func firing without ending the test binary.
func newHalt(w io.Writer, exit func(int)) *obj.Closure {
	code := func(rand obj.Value, env *obj.Environment) {
		fmt.Fprintln(w, "Halt")
		exit(0)
	}
	return obj.NewClosure1(code, haltEnvID, obj.NewEnvironment(0))
}
