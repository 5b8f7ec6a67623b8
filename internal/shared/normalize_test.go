package shared

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestOptionalRef(t *testing.T) {
	require.Nil(t, OptionalRef(""))
	require.Nil(t, OptionalRef("   "))

	ref := OptionalRef("  abc-123  ")
	require.NotNil(t, ref)
	require.Equal(t, "abc-123", *ref)
}

func TestOptionalDate(t *testing.T) {
	got, err := OptionalDate("")
	require.NoError(t, err)
	require.Nil(t, got)

	got, err = OptionalDate("2025-03-15")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), *got)

	_, err = OptionalDate("15/03/2025")
	require.Error(t, err)
}

func TestPaginationDefaults(t *testing.T) {
	p := NewPagination(0, 0, 45)
	require.Equal(t, 1, p.Page)
	require.Equal(t, 20, p.PerPage)
	require.Equal(t, 3, p.TotalPages)
	require.Zero(t, p.Offset())

	p = NewPagination(3, 10, 45)
	require.Equal(t, 5, p.TotalPages)
	require.Equal(t, 20, p.Offset())
}
