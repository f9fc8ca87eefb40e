package interpreter

import (
	"fmt"
	"slices"
	"strings"

	"github.com/leonardinius/prattlox/internal/loxerrors"
	"github.com/sanity-io/litter"
	"golang.org/x/exp/maps"
)

type scope map[string]Value

// Environment is a stack of scopes. The bottom one holds the globals and is
// never popped.
type Environment struct {
	scopes []scope
}

func NewEnvironment() *Environment {
	return &Environment{scopes: []scope{{}}}
}

// Define binds name in the innermost scope, shadowing outer bindings.
func (e *Environment) Define(name string, value Value) {
	e.scopes[len(e.scopes)-1][name] = value
}

// Assign rebinds name in the innermost scope that defines it. It never
// creates a binding.
func (e *Environment) Assign(name string, value Value) error {
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if _, ok := e.scopes[i][name]; ok {
			e.scopes[i][name] = value
			return nil
		}
	}

	return loxerrors.ErrRuntimeUndefined(name)
}

func (e *Environment) Get(name string) (Value, bool) {
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if value, ok := e.scopes[i][name]; ok {
			return value, true
		}
	}

	return nil, false
}

func (e *Environment) PushScope() {
	e.scopes = append(e.scopes, scope{})
}

// PopScope drops the innermost scope. Popping the global scope is a bug in
// the caller and panics.
func (e *Environment) PopScope() {
	if len(e.scopes) == 1 {
		panic("interpreter: pop of the global scope")
	}
	e.scopes[len(e.scopes)-1] = nil
	e.scopes = e.scopes[:len(e.scopes)-1]
}

// Depth is the number of scopes, 1 when only the globals are left.
func (e *Environment) Depth() int {
	return len(e.scopes)
}

// String renders scopes innermost first, e.g. {b=2} -> {a=1}.
func (e *Environment) String() string {
	w := new(strings.Builder)

	for i := len(e.scopes) - 1; i >= 0; i-- {
		keys := maps.Keys(e.scopes[i])
		slices.Sort(keys)

		_, _ = w.WriteString("{")
		for j, k := range keys {
			if j > 0 {
				_, _ = w.WriteString(",")
			}
			_, _ = fmt.Fprintf(w, "%s=%s", k, Inspect(e.scopes[i][k]))
		}
		_, _ = w.WriteString("}")
		if i > 0 {
			_, _ = w.WriteString(" -> ")
		}
	}

	return w.String()
}

// GoString implements fmt.GoStringer.
func (e *Environment) GoString() string {
	return litter.Options{Compact: true}.Sdump(e.scopes)
}

var _ fmt.Stringer = (*Environment)(nil)
var _ fmt.GoStringer = (*Environment)(nil)
