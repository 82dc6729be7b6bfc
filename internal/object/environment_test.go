package object

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupBinding(t *testing.T) {
	env := seededEnv()
	realType := env.Types[REAL_TYPE]

	_, err := env.LookupBinding("q")
	var unbound *UnboundIdentifierError
	require.ErrorAs(t, err, &unbound)
	assert.Equal(t, "q", unbound.Name)

	env.Bind("x", Value{Type: realType, Payload: Number(40)})
	val, err := env.LookupBinding("x")
	require.NoError(t, err)
	assert.Equal(t, Number(40), val.Payload)
}

func TestRebindingOverwrites(t *testing.T) {
	env := seededEnv()
	realType := env.Types[REAL_TYPE]

	env.Bind("x", Value{Type: realType, Payload: Number(1)})
	env.Bind("x", Value{Type: realType, Payload: Number(2)})
	env.Bind("x", Value{Type: env.Types[UNIT_TYPE], Payload: UNIT_PAYLOAD})

	val, err := env.LookupBinding("x")
	require.NoError(t, err)
	assert.Equal(t, UNIT_PAYLOAD, val.Payload)
	assert.Equal(t, []string{"x"}, env.BindingNames())
}

func TestLookupType(t *testing.T) {
	env := seededEnv()

	typ, err := env.LookupType("Any")
	require.NoError(t, err)
	assert.Equal(t, "Any", typ.String())

	_, err = env.LookupType("Text")
	var resErr *TypeResolutionError
	assert.ErrorAs(t, err, &resErr)
}

func TestDefineTypeRejectsDuplicates(t *testing.T) {
	env := seededEnv()
	err := env.DefineType(REAL_TYPE, &PrimitiveType{Name: REAL_TYPE, Predicate: func(Payload) bool { return true }})
	assert.Error(t, err)
}

func TestSnapshotIsIndependent(t *testing.T) {
	env := seededEnv()
	realType := env.Types[REAL_TYPE]
	env.Bind("x", Value{Type: realType, Payload: Number(1)})

	snap := env.Snapshot()
	assert.NotEqual(t, env.ID, snap.ID)

	snap.Bind("y", Value{Type: realType, Payload: Number(2)})
	snap.Bind("x", Value{Type: realType, Payload: Number(3)})
	require.NoError(t, snap.DefineType("Text", &PrimitiveType{Name: "Text"}))

	env.Bind("z", Value{Type: realType, Payload: Number(4)})

	_, err := env.LookupBinding("y")
	assert.Error(t, err, "binding made in the snapshot leaked into the original")
	x, _ := env.LookupBinding("x")
	assert.Equal(t, Number(1), x.Payload)
	_, err = env.LookupType("Text")
	assert.Error(t, err)

	_, err = snap.LookupBinding("z")
	assert.Error(t, err, "binding made in the original leaked into the snapshot")
}
