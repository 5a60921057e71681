// Package render evaluates a template against a built context under
// strict-undefined semantics, with filters and tests drawn from mutable
// registries. The expression grammar itself comes from gonja.
package render

import (
	"sync"

	"github.com/nikolalohinski/gonja/v2/builtins"
	gonjacfg "github.com/nikolalohinski/gonja/v2/config"
	"github.com/nikolalohinski/gonja/v2/exec"

	"github.com/arthur-debert/j2go/pkg/errors"
	"github.com/arthur-debert/j2go/pkg/logging"
	"github.com/arthur-debert/j2go/pkg/registry"
	"github.com/arthur-debert/j2go/pkg/render/filters"
)

// Engine renders templates with the filters and tests of its registries
// installed. Each Render call re-reads the template file and evaluates it
// independently; nothing is cached across calls.
type Engine struct {
	filters registry.Registry[filters.Filter]
	tests   registry.Registry[filters.Test]

	// gonja reports filter failures as opaque evaluation errors, so the
	// wrappers record the typed error here for classification. Renders
	// are sequential; the mutex only guards against misuse.
	mu        sync.Mutex
	filterErr error
}

// New creates an engine with the given registries. Nil registries fall
// back to the built-in seeds.
func New(filterReg registry.Registry[filters.Filter], testReg registry.Registry[filters.Test]) *Engine {
	if filterReg == nil {
		filterReg = filters.Builtin()
	}
	if testReg == nil {
		testReg = filters.BuiltinTests()
	}
	return &Engine{filters: filterReg, tests: testReg}
}

// Render loads the template at templatePath (resolved against root),
// evaluates it against context under strict-undefined semantics, and
// returns the rendered text as UTF-8 bytes. Rendering either fully
// succeeds or produces no output.
func (e *Engine) Render(root, templatePath string, context map[string]interface{}) ([]byte, error) {
	log := logging.GetLogger("render")

	loader := NewFileLoader(root)

	// Surface unreadable templates before gonja gets involved so the
	// failure is always the typed not-found condition with the resolved
	// path.
	_, resolved, err := loader.Source(templatePath)
	if err != nil {
		return nil, err
	}

	cfg := &gonjacfg.Config{
		BlockStartString:    "{%",
		BlockEndString:      "%}",
		VariableStartString: "{{",
		VariableEndString:   "}}",
		CommentStartString:  "{#",
		CommentEndString:    "#}",
		AutoEscape:          false,
		StrictUndefined:     true,
		TrimBlocks:          false,
		LeftStripBlocks:     false,
	}

	filterSet := builtins.Filters
	if e.filters.Count() > 0 {
		custom := make(map[string]exec.FilterFunction, e.filters.Count())
		for _, name := range e.filters.List() {
			f, _ := e.filters.Lookup(name)
			custom[name] = e.wrapFilter(name, f.Fn)
		}
		filterSet = filterSet.Update(exec.NewFilterSet(custom))
	}

	testSet := builtins.Tests
	if e.tests.Count() > 0 {
		custom := make(map[string]exec.TestFunction, e.tests.Count())
		for _, name := range e.tests.List() {
			tst, _ := e.tests.Lookup(name)
			custom[name] = e.wrapTest(name, tst.Fn)
		}
		testSet = testSet.Update(exec.NewTestSet(custom))
	}

	environment := &exec.Environment{
		Filters:           filterSet,
		Tests:             testSet,
		ControlStructures: builtins.ControlStructures,
		Methods:           builtins.Methods,
		Context:           builtins.GlobalFunctions,
	}

	template, err := exec.NewTemplate(templatePath, cfg, loader, environment)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrRender, "failed to parse template %s", resolved)
	}

	e.mu.Lock()
	e.filterErr = nil
	e.mu.Unlock()

	out, err := template.ExecuteToString(exec.NewContext(context))
	if err != nil {
		if ferr := e.takeFilterErr(); ferr != nil {
			return nil, ferr
		}
		// With strict undefined enabled, the remaining evaluation
		// failures reference names absent from the context; gonja's
		// message carries the offending name and location.
		return nil, errors.Wrapf(err, errors.ErrUndefined, "failed to render template %s", resolved)
	}

	log.Debug().Str("template", resolved).Int("bytes", len(out)).Msg("Template rendered")
	return []byte(out), nil
}

func (e *Engine) setFilterErr(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.filterErr == nil {
		e.filterErr = err
	}
}

func (e *Engine) takeFilterErr() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	err := e.filterErr
	e.filterErr = nil
	return err
}

// wrapFilter adapts a filters.Func to gonja's filter signature, recording
// failures for typed classification.
func (e *Engine) wrapFilter(name string, fn filters.Func) exec.FilterFunction {
	return func(_ *exec.Evaluator, in *exec.Value, params *exec.VarArgs) *exec.Value {
		var args []interface{}
		if params != nil {
			for _, arg := range params.Args {
				args = append(args, arg.Interface())
			}
		}

		result, err := fn(in.Interface(), args...)
		if err != nil {
			e.setFilterErr(errors.Wrapf(err, errors.ErrFilter, "filter %q failed", name))
			return exec.AsValue(err)
		}
		return exec.AsValue(result)
	}
}

// wrapTest adapts a filters.TestFunc to gonja's test signature.
func (e *Engine) wrapTest(name string, fn filters.TestFunc) exec.TestFunction {
	return func(_ *exec.Context, in *exec.Value, params *exec.VarArgs) (bool, error) {
		var args []interface{}
		if params != nil {
			for _, arg := range params.Args {
				args = append(args, arg.Interface())
			}
		}

		result, err := fn(in.Interface(), args...)
		if err != nil {
			wrapped := errors.Wrapf(err, errors.ErrFilter, "test %q failed", name)
			e.setFilterErr(wrapped)
			return false, wrapped
		}
		return result, nil
	}
}
