// Package filters holds the built-in template filters and tests, plus the
// callable types extension modules must export.
package filters

import (
	_ "embed"
	"strings"

	"github.com/arthur-debert/j2go/pkg/registry"
)

// Func transforms a value inside a template expression. Extra expression
// arguments arrive positionally.
type Func func(in interface{}, args ...interface{}) (interface{}, error)

// TestFunc evaluates a boolean test inside a template expression.
type TestFunc func(in interface{}, args ...interface{}) (bool, error)

// Filter is a named filter with documentation used by the docs command.
type Filter struct {
	Name    string
	Summary string
	Doc     string // markdown
	Fn      Func
}

// Test is a named test with documentation used by the docs command.
type Test struct {
	Name    string
	Summary string
	Doc     string // markdown
	Fn      TestFunc
}

// Embedded documentation files
var (
	//go:embed docker_link.md
	dockerLinkDocRaw string
	dockerLinkDoc    = strings.TrimSpace(dockerLinkDocRaw)

	//go:embed gpg.md
	gpgDocRaw string
	gpgDoc    = strings.TrimSpace(gpgDocRaw)
)

// Builtin returns a filter registry seeded with the built-in filters.
func Builtin() registry.Registry[Filter] {
	reg := registry.New[Filter]()
	registry.MustRegister(reg, "docker_link", Filter{
		Name:    "docker_link",
		Summary: "Reformat a Docker Link value like tcp://172.17.0.5:5432",
		Doc:     dockerLinkDoc,
		Fn:      DockerLink,
	})
	registry.MustRegister(reg, "gpg", Filter{
		Name:    "gpg",
		Summary: "Decrypt a GPG-encrypted value with the local keyring",
		Doc:     gpgDoc,
		Fn:      GPG,
	})
	return reg
}

// BuiltinTests returns the test registry. No tests ship built in; extension
// modules populate it.
func BuiltinTests() registry.Registry[Test] {
	return registry.New[Test]()
}
