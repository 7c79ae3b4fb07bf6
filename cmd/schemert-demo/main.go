// Command schemert-demo hand-assembles the end-to-end scenarios the
// runtime is exercised against and runs one on request. It exists because
// the grammar/macro-expander/code-generator passes that would normally
// produce these closures are out of scope for this module; the scenarios
// here play the role a compiled program would.
package main

import (
	"fmt"
	"os"

	"github.com/tailhop/schemert"
	"github.com/tailhop/schemert/internal/diag"
	"github.com/tailhop/schemert/internal/obj"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "schemert-demo",
		Short: "Runs hand-assembled scenarios against the schemert runtime core",
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log GC-cycle diagnostics to stderr")

	scenarios := []struct {
		use, short string
		run        func(logger *diag.Logger)
	}{
		{"halt", "S1: halt is the initial continuation", runHalt},
		{"factorial", "S2: CPS factorial of 6", runFactorial},
		{"short-lived-envs", "S3: many short-lived environments, bounded heap", runShortLivedEnvs},
		{"deep-recursion", "S4: a million-deep arity-1 tail chain", runDeepRecursion},
		{"shared-env", "S5: mutate through one closure, read through another", runSharedEnv},
		{"bad-operator", "S6: call_one on a non-closure", runBadOperator},
	}

	for _, sc := range scenarios {
		sc := sc
		root.AddCommand(&cobra.Command{
			Use:   sc.use,
			Short: sc.short,
			RunE: func(cmd *cobra.Command, args []string) error {
				logger := diag.Discard
				if verbose {
					logger = diag.NewStderrLogger()
				}
				sc.run(logger)
				return nil
			},
		})
	}

	return root
}

func runHalt(logger *diag.Logger) {
	rt := mustNew(logger, nil)
	halt := schemert.NewHalt(os.Stdout)
	rt.Start(&obj.Thunk{Closure: halt, Rand: obj.TheVoid})
}

func runFactorial(logger *diag.Logger) {
	rt := mustNew(logger, nil)

	halt := schemert.NewHalt(os.Stdout)
	report := obj.NewClosure1(func(rand obj.Value, _ *obj.Environment) {
		fmt.Printf("6! = %d\n", rand.(*obj.Integer).N)
		rt.CallOne(halt, obj.TheVoid)
	}, 0, obj.NewEnvironment(0))

	var fact *obj.Closure
	factCode := func(rand, cont obj.Value, _ *obj.Environment) {
		n := rand.(*obj.Integer).N
		k := cont.(*obj.Closure)
		if n == 0 {
			rt.CallOne(k, obj.NewInteger(1))
			return
		}
		kPrime := obj.NewClosure1(func(r obj.Value, _ *obj.Environment) {
			rt.CallOne(k, obj.NewInteger(n*r.(*obj.Integer).N))
		}, 0, obj.NewEnvironment(0))
		rt.CallTwo(fact, obj.NewInteger(n-1), kPrime)
	}
	fact = obj.NewClosure2(factCode, 0, obj.NewEnvironment(0))

	rt.Start(&obj.Thunk{Closure: fact, Rand: obj.NewInteger(6), Cont: report})
}

func runShortLivedEnvs(logger *diag.Logger) {
	const iterations = 100000
	envTable := obj.EnvTable{1: {EnvID: 1, VarIDs: []obj.VarID{0, 1, 2}}}
	rt := mustNew(logger, envTable)

	halt := schemert.NewHalt(os.Stdout)

	var code obj.Code1
	code = func(rand obj.Value, _ *obj.Environment) {
		n := rand.(*obj.Integer).N
		if n <= 0 {
			rt.CallOne(halt, obj.TheVoid)
			return
		}
		scratch := obj.NewEnvironment(3)
		scratch.Set(0, obj.NewInteger(n))
		scratch.Set(1, obj.NewInteger(n*2))
		scratch.Set(2, obj.NewInteger(n*3))
		next := obj.NewClosure1(code, 1, scratch)
		rt.CallOne(next, obj.NewInteger(n-1))
	}
	loop := obj.NewClosure1(code, 1, obj.NewEnvironment(3))

	rt.Start(&obj.Thunk{Closure: loop, Rand: obj.NewInteger(iterations)})
}

func runDeepRecursion(logger *diag.Logger) {
	const iterations = 1000000
	rt := mustNew(logger, nil)
	halt := schemert.NewHalt(os.Stdout)

	var code obj.Code1
	code = func(rand obj.Value, _ *obj.Environment) {
		n := rand.(*obj.Integer).N
		if n <= 0 {
			rt.CallOne(halt, obj.TheVoid)
			return
		}
		self := obj.NewClosure1(code, 0, obj.NewEnvironment(0))
		rt.CallOne(self, obj.NewInteger(n-1))
	}
	loop := obj.NewClosure1(code, 0, obj.NewEnvironment(0))

	rt.Start(&obj.Thunk{Closure: loop, Rand: obj.NewInteger(iterations)})
}

func runSharedEnv(logger *diag.Logger) {
	envTable := obj.EnvTable{7: {EnvID: 7, VarIDs: []obj.VarID{0}}}
	rt := mustNew(logger, envTable)

	shared := rt.EnvWith(rt.EnvNew(1), 0, rt.MakeInt(1))

	setter := obj.NewClosure1(func(rand obj.Value, env *obj.Environment) {
		rt.EnvSet(env, 0, rand)
	}, 7, shared)
	getter := obj.NewClosure1(func(_ obj.Value, env *obj.Environment) {
		fmt.Printf("observed = %d\n", rt.EnvGet(env, 0).(*obj.Integer).N)
	}, 7, shared)

	rt.CallOne(setter, rt.MakeInt(42))
	rt.CallOne(getter, obj.TheVoid)
}

func runBadOperator(logger *diag.Logger) {
	rt := mustNew(logger, nil)
	rt.CallOne(rt.MakeInt(5), obj.TheVoid)
}

func mustNew(logger *diag.Logger, envTable obj.EnvTable) *schemert.Runtime {
	if envTable == nil {
		envTable = obj.EnvTable{}
	}
	rt, err := schemert.New(schemert.WithEnvTable(envTable), schemert.WithLogger(logger))
	if err != nil {
		panic(err)
	}
	return rt
}
