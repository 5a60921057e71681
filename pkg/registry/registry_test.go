package registry

import (
	"testing"

	"github.com/arthur-debert/j2go/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndGet(t *testing.T) {
	reg := New[string]()

	require.NoError(t, reg.Register("upper", "filter-upper"))

	got, err := reg.Get("upper")
	require.NoError(t, err)
	assert.Equal(t, "filter-upper", got)

	_, err = reg.Get("lower")
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	reg := New[int]()

	require.NoError(t, reg.Register("a", 1))
	err := reg.Register("a", 2)
	assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyExists))

	// Original value is untouched
	got, err := reg.Get("a")
	require.NoError(t, err)
	assert.Equal(t, 1, got)
}

func TestRegisterRejectsEmptyName(t *testing.T) {
	reg := New[int]()
	err := reg.Register("", 1)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestPutOverrides(t *testing.T) {
	reg := New[int]()

	require.NoError(t, reg.Register("docker_link", 1))
	reg.Put("docker_link", 2)

	got, err := reg.Get("docker_link")
	require.NoError(t, err)
	assert.Equal(t, 2, got)

	// Put also inserts new entries
	reg.Put("fresh", 3)
	assert.True(t, reg.Has("fresh"))
}

func TestLookup(t *testing.T) {
	reg := New[string]()
	reg.Put("x", "y")

	got, ok := reg.Lookup("x")
	assert.True(t, ok)
	assert.Equal(t, "y", got)

	_, ok = reg.Lookup("absent")
	assert.False(t, ok)
}

func TestListIsSorted(t *testing.T) {
	reg := New[int]()
	reg.Put("c", 1)
	reg.Put("a", 2)
	reg.Put("b", 3)

	assert.Equal(t, []string{"a", "b", "c"}, reg.List())
	assert.Equal(t, 3, reg.Count())
}

func TestMustRegisterPanicsOnDuplicate(t *testing.T) {
	reg := New[int]()
	MustRegister(reg, "once", 1)
	assert.Panics(t, func() {
		MustRegister(reg, "once", 2)
	})
}
