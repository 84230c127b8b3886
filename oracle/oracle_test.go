package oracle

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOracleDeterminism(t *testing.T) {
	o := New(42)
	require.Equal(t, byte(42), o.Query(0))
	require.Equal(t, byte(43), o.Query(1))
	require.Equal(t, byte(40), o.Query(2))
	require.Equal(t, 3, o.QueryCount())
}

func TestInitializeResets(t *testing.T) {
	o := New(42)
	o.Query(0)
	o.Query(1)
	o.Initialize(7)
	require.Equal(t, 0, o.QueryCount())
	require.Equal(t, byte(7), o.Query(0))
	require.Equal(t, 1, o.QueryCount())
}

func TestRunRecovery(t *testing.T) {
	o := New(0x5A)
	res := o.RunRecovery()
	require.Equal(t, 3, res.Queries)
	require.Equal(t, []byte{0x5A, 0x5B, 0x58}, res.Outputs)
	require.True(t, res.Found)
	require.Equal(t, byte(0x5A), res.Secret)
	require.Equal(t, 3, o.QueryCount())
}

func TestNuclearSearch(t *testing.T) {
	res, err := NuclearSearch("T")
	require.NoError(t, err)
	require.Equal(t, "T", res.Isotope.Name)
	// Tritium's H7 index seeds the oracle.
	require.Equal(t, byte(2), res.Secret)
	require.True(t, res.Found)
	require.Equal(t, 3, res.Queries)

	_, err = NuclearSearch("U-235")
	require.Error(t, err)
}
