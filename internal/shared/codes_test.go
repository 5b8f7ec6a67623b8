package shared

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNextCodeSequence(t *testing.T) {
	require.Equal(t, "MUAVU01", NextCode("MUAVU", ""))
	require.Equal(t, "MUAVU02", NextCode("MUAVU", "MUAVU01"))
	require.Equal(t, "MUAVU03", NextCode("MUAVU", "MUAVU02"))
	require.Equal(t, "MUAVU10", NextCode("MUAVU", "MUAVU09"))
	require.Equal(t, "MUAVU100", NextCode("MUAVU", "MUAVU99"))
}

func TestNextCodeMalformedSuffixRestarts(t *testing.T) {
	require.Equal(t, "MUAVU01", NextCode("MUAVU", "MUAVUXYZ"))
	require.Equal(t, "MUAVU01", NextCode("MUAVU", "OTHER05"))
}

func TestNextCodePayrollPrefix(t *testing.T) {
	require.Equal(t, "LUONG01", NextCode("LUONG", ""))
	require.Equal(t, "LUONG08", NextCode("LUONG", "LUONG07"))
}
