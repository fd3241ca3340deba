package descriptor_test

import (
	"io"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"class-inspector/descriptor"
	"class-inspector/village"
)

func names[T interface{ Name() string }](items []T) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Name())
	}

	return out
}

func TestOf_VillagerFields(t *testing.T) {
	td := village.VillagerType

	assert.Equal(t, "class-inspector/village.Villager", td.Name())
	assert.Equal(t, reflect.TypeFor[village.Villager](), td.Type())
	assert.Equal(t, []string{"Contract", "name", "age", "profession"}, names(td.Fields()))

	fields := td.Fields()
	assert.False(t, fields[0].HasMarker(village.Important))
	assert.True(t, fields[1].HasMarker(village.Important))
	assert.False(t, fields[2].HasMarker(village.Important))
}

func TestOf_MarkerWithValue(t *testing.T) {
	fields := village.MerchantType.Fields()
	require.Len(t, fields, 3)

	assert.Equal(t, "Villager", fields[0].Name())
	assert.False(t, fields[0].HasMarker(village.Important))
	assert.True(t, fields[1].HasMarker(village.Important))
	assert.True(t, fields[1].HasMarker("json"))
	assert.True(t, fields[2].HasMarker(village.Important))
	assert.False(t, fields[2].HasMarker("json"))
}

func TestOf_DeclaredMethodsSkipPromoted(t *testing.T) {
	// Cancel and String come from the embedded Contract.
	assert.ElementsMatch(t, []string{"Greet", "Trade"}, names(village.VillagerType.Methods()))

	// Everything but Haggle comes from the embedded *Villager.
	assert.Equal(t, []string{"Haggle"}, names(village.MerchantType.Methods()))

	assert.Empty(t, village.HutType.Methods())
	assert.Empty(t, village.HutType.Fields())
}

func TestOf_Interfaces(t *testing.T) {
	ifaces := village.VillagerType.Interfaces()
	require.Len(t, ifaces, 1)
	assert.Equal(t, "class-inspector/village.Tradeable", ifaces[0].Name())
	assert.ElementsMatch(t, []string{"Trade", "Cancel"}, names(ifaces[0].Methods()))

	ifaces = village.MerchantType.Interfaces()
	require.Len(t, ifaces, 1)
	assert.Equal(t, []string{"Haggle"}, names(ifaces[0].Methods()))
}

func TestImplements_Explicit(t *testing.T) {
	// Without Explicit, reflect flattens embedded interfaces.
	td, err := descriptor.Of[village.Merchant](descriptor.Implements[village.Haggler]())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Trade", "Cancel", "Haggle"}, names(td.Interfaces()[0].Methods()))

	// An interface with only embedded interfaces has no explicit methods.
	td, err = descriptor.Of[village.Merchant](descriptor.Implements[village.Haggler](descriptor.Explicit()))
	require.NoError(t, err)
	assert.Empty(t, td.Interfaces()[0].Methods())

	_, err = descriptor.Of[village.Merchant](descriptor.Implements[village.Haggler](descriptor.Explicit("Barter")))
	require.ErrorIs(t, err, descriptor.ErrInvalidInput)
	assert.Contains(t, err.Error(), "has no method Barter")
}

func TestOf_ImplementsErrors(t *testing.T) {
	_, err := descriptor.Of[village.Hut](descriptor.Implements[village.Tradeable]())
	require.ErrorIs(t, err, descriptor.ErrNotImplemented)

	_, err = descriptor.Of[village.Hut](descriptor.Implements[village.Contract]())
	require.ErrorIs(t, err, descriptor.ErrInvalidInput)

	// A value receiver is enough for the pointer form and vice versa.
	_, err = descriptor.Of[village.Villager](descriptor.Implements[interface{ Greet() string }]())
	require.NoError(t, err)
}

func TestOf_Constructors(t *testing.T) {
	ctors := village.VillagerType.Constructors()
	require.Len(t, ctors, 2)

	assert.Equal(t, "village.newVillager", ctors[0].Name())
	assert.Equal(t, descriptor.AccessRestricted, ctors[0].Access())
	assert.Equal(t, "village.NewVillager", ctors[1].Name())
	assert.Equal(t, descriptor.AccessPublic, ctors[1].Access())

	_, err := descriptor.Of[village.Hut](descriptor.Constructor(village.NewVillager))
	require.ErrorIs(t, err, descriptor.ErrForeignConstructor)

	_, err = descriptor.Of[village.Hut](descriptor.Constructor(io.EOF))
	require.ErrorIs(t, err, descriptor.ErrConstructorIsNotAFunction)
}

func TestFromReflect(t *testing.T) {
	_, err := descriptor.FromReflect(nil)
	require.ErrorIs(t, err, descriptor.ErrInvalidInput)

	td, err := descriptor.FromReflect(reflect.TypeFor[*village.Villager]())
	require.NoError(t, err)
	assert.Equal(t, "class-inspector/village.Villager", td.Name())
	assert.Empty(t, td.Constructors())
	assert.Empty(t, td.Interfaces())

	td, err = descriptor.FromReflect(reflect.TypeFor[int]())
	require.NoError(t, err)
	assert.Empty(t, td.Fields())
	assert.Empty(t, td.Methods())
}

func TestMustOf_Panics(t *testing.T) {
	assert.Panics(t, func() {
		descriptor.MustOf[village.Hut](descriptor.Implements[village.Tradeable]())
	})
}
