package entry

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/valyala/fastjson"

	"github.com/arloliu/wpilog/errs"
	"github.com/arloliu/wpilog/format"
)

var boolType = format.TypeTag{Kind: format.KindBoolean}

func TestRegistry_Lifecycle(t *testing.T) {
	r := NewRegistry()
	require.Equal(t, StateUnbound, r.State(5))

	require.NoError(t, r.Start(5, 0, "x", boolType, nil))
	require.Equal(t, StateOpen, r.State(5))

	require.NoError(t, r.Finish(5, 3))
	require.Equal(t, StateClosed, r.State(5))

	require.NoError(t, r.Start(5, 4, "x2", format.TypeTag{Kind: format.KindInteger}, nil))
	require.Equal(t, StateOpen, r.State(5))

	bindings := r.Bindings(5)
	require.Len(t, bindings, 2, "restart appends a binding")
	require.Equal(t, Binding{StartIndex: 0, Name: "x", Type: boolType, FinishIndex: 3, Finished: true}, bindings[0])
	require.Equal(t, "x2", bindings[1].Name)
	require.True(t, bindings[1].IsOpen())
}

func TestRegistry_StartWhileOpen(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Start(5, 0, "x", boolType, nil))

	err := r.Start(5, 1, "y", format.Raw(), nil)
	require.ErrorIs(t, err, errs.ErrEntryAlreadyStarted)

	bindings := r.Bindings(5)
	require.Len(t, bindings, 1, "rejected start must not mutate state")
	require.Equal(t, "x", bindings[0].Name)
}

func TestRegistry_FinishErrors(t *testing.T) {
	r := NewRegistry()
	require.ErrorIs(t, r.Finish(9, 0), errs.ErrFinishWithoutStart)

	require.NoError(t, r.Start(9, 1, "n", boolType, nil))
	require.NoError(t, r.Finish(9, 2))

	err := r.Finish(9, 3)
	require.ErrorIs(t, err, errs.ErrFinishAfterFinish)
	require.NotErrorIs(t, err, errs.ErrFinishWithoutStart)

	latest, ok := r.Latest(9)
	require.True(t, ok)
	require.Equal(t, uint32(2), latest.FinishIndex, "second finish must not move the finish index")
}

func TestRegistry_SetMetadata(t *testing.T) {
	r := NewRegistry()
	require.ErrorIs(t, r.SetMetadata(1, nil), errs.ErrSetMetadataWithoutStart)

	require.NoError(t, r.Start(1, 0, "n", boolType, fastjson.MustParse(`{"a":1}`)))

	meta := fastjson.MustParse(`{"a":2}`)
	require.NoError(t, r.SetMetadata(1, meta))
	latest, _ := r.Latest(1)
	require.Equal(t, 2, latest.Metadata.GetInt("a"))

	require.NoError(t, r.SetMetadata(1, nil))
	latest, _ = r.Latest(1)
	require.Nil(t, latest.Metadata)

	require.NoError(t, r.Finish(1, 2))
	require.ErrorIs(t, r.SetMetadata(1, meta), errs.ErrSetMetadataAfterFinish)
}

func TestRegistry_Resolve(t *testing.T) {
	r := NewRegistry()

	_, err := r.Resolve(5, 0)
	require.ErrorIs(t, err, errs.ErrUseOfEntryIDWithoutStart)

	require.NoError(t, r.Start(5, 0, "first", boolType, nil))
	b, err := r.Resolve(5, 1)
	require.NoError(t, err)
	require.Equal(t, "first", b.Name)

	require.NoError(t, r.Finish(5, 2))
	_, err = r.Resolve(5, 3)
	require.ErrorIs(t, err, errs.ErrUseOfEntryIDAfterFinish)

	require.NoError(t, r.Start(5, 4, "second", format.Raw(), nil))
	b, err = r.Resolve(5, 5)
	require.NoError(t, err)
	require.Equal(t, "second", b.Name)
	require.Equal(t, format.Raw(), b.Type)
}

func TestRegistry_BindingAt(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Start(7, 2, "a", boolType, nil))
	require.NoError(t, r.Finish(7, 5))
	require.NoError(t, r.Start(7, 8, "b", boolType, nil))

	tests := []struct {
		ordinal uint32
		name    string
		found   bool
	}{
		{1, "", false},
		{2, "a", true},
		{4, "a", true},
		{5, "a", true},
		{6, "", false},
		{8, "b", true},
		{100, "b", true},
	}
	for _, tt := range tests {
		b, ok := r.BindingAt(7, tt.ordinal)
		require.Equal(t, tt.found, ok, "ordinal %d", tt.ordinal)
		require.Equal(t, tt.name, b.Name, "ordinal %d", tt.ordinal)
	}
}

func TestRegistry_Lookup(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Start(3, 0, "/drive/speed", boolType, nil))
	require.NoError(t, r.Start(1, 1, "/drive/speed", boolType, nil))
	require.NoError(t, r.Start(2, 2, "/arm/angle", boolType, nil))
	require.NoError(t, r.Finish(3, 3))
	require.NoError(t, r.Start(3, 4, "/drive/speed", boolType, nil))

	require.Equal(t, []uint32{3, 1}, r.Lookup("/drive/speed"))
	require.Equal(t, []uint32{2}, r.Lookup("/arm/angle"))
	require.Empty(t, r.Lookup("/missing"))

	require.Equal(t, []uint32{1, 2, 3}, r.IDs())
	require.Equal(t, 3, r.Len())
}

func TestRegistry_BindingsIsACopy(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Start(1, 0, "n", boolType, nil))

	bindings := r.Bindings(1)
	bindings[0].Name = "mutated"

	latest, _ := r.Latest(1)
	require.Equal(t, "n", latest.Name)

	require.Nil(t, r.Bindings(99))
	_, ok := r.Latest(99)
	require.False(t, ok)
}

func TestState_String(t *testing.T) {
	require.Equal(t, "Unbound", StateUnbound.String())
	require.Equal(t, "Open", StateOpen.String())
	require.Equal(t, "Closed", StateClosed.String())
	require.Equal(t, "Unknown", State(9).String())
}
