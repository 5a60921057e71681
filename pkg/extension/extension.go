// Package extension loads an optionally-present plugin module that
// contributes extra template filters and tests. A missing module is not an
// error; a module that exists but fails to load is fatal, so a broken
// extension never degrades silently to the built-ins.
package extension

import (
	"os"
	"path/filepath"
	"plugin"
	"strings"

	"github.com/arthur-debert/j2go/pkg/errors"
	"github.com/arthur-debert/j2go/pkg/logging"
	"github.com/arthur-debert/j2go/pkg/registry"
	"github.com/arthur-debert/j2go/pkg/render/filters"
)

// DefaultModule is the module name looked up when none is configured.
const DefaultModule = "jinja2_custom"

// FilterMap and TestMap are the shapes of the optional FILTERS and TESTS
// symbols an extension module may export. Built from basic types only so
// plugins need no import of this repo.
type (
	FilterMap = map[string]func(interface{}, ...interface{}) (interface{}, error)
	TestMap   = map[string]func(interface{}, ...interface{}) (bool, error)
)

// Module is a loaded extension with its contributed callables.
type Module struct {
	Path    string
	Filters FilterMap
	Tests   TestMap
}

// Load looks for the named module (a shared object built with
// -buildmode=plugin) in dir. It returns (nil, nil) when no such file
// exists, and an EXTENSION_LOAD error when a file is present but cannot be
// loaded or exports malformed symbols.
func Load(dir, name string) (*Module, error) {
	log := logging.GetLogger("extension")

	if name == "" {
		name = DefaultModule
	}
	if !strings.HasSuffix(name, ".so") {
		name += ".so"
	}

	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			log.Debug().Str("path", path).Msg("No extension module present")
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrExtensionLoad, "cannot stat extension module %s", path)
	}

	p, err := plugin.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrExtensionLoad, "failed to load extension module %s", path)
	}

	mod := &Module{Path: path}

	if sym, err := p.Lookup("FILTERS"); err == nil {
		m, ok := sym.(*FilterMap)
		if !ok {
			return nil, errors.Newf(errors.ErrExtensionLoad,
				"extension module %s: FILTERS has unexpected type %T", path, sym)
		}
		mod.Filters = *m
	}

	if sym, err := p.Lookup("TESTS"); err == nil {
		m, ok := sym.(*TestMap)
		if !ok {
			return nil, errors.Newf(errors.ErrExtensionLoad,
				"extension module %s: TESTS has unexpected type %T", path, sym)
		}
		mod.Tests = *m
	}

	log.Info().
		Str("path", path).
		Int("filters", len(mod.Filters)).
		Int("tests", len(mod.Tests)).
		Msg("Extension module loaded")

	return mod, nil
}

// Apply merges the module's callables into the registries, overriding
// same-named existing entries.
func Apply(mod *Module, filterReg registry.Registry[filters.Filter], testReg registry.Registry[filters.Test]) {
	if mod == nil {
		return
	}

	for name, fn := range mod.Filters {
		filterReg.Put(name, filters.Filter{
			Name:    name,
			Summary: "provided by extension module " + filepath.Base(mod.Path),
			Fn:      fn,
		})
	}
	for name, fn := range mod.Tests {
		testReg.Put(name, filters.Test{
			Name:    name,
			Summary: "provided by extension module " + filepath.Base(mod.Path),
			Fn:      fn,
		})
	}
}
