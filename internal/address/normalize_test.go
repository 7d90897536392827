package address

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeEmpty(t *testing.T) {
	require.Equal(t, "", Normalize(""))
	require.Equal(t, "", Normalize("   "))
	require.Equal(t, "", Normalize(" , Philadelphia, PA"))
}

func TestNormalizeDropsJurisdictionSuffix(t *testing.T) {
	require.Equal(t, "%780 UNION ST%", Normalize("780 Union Street, Philadelphia, PA 19104"))
}

func TestNormalizeStripsLeadingZeros(t *testing.T) {
	pattern := Normalize("0373 Sloan Street")
	require.Equal(t, "%373 SLOAN ST%", pattern)
	require.False(t, strings.Contains(pattern, "0373"))
}

func TestNormalizeNonNumericLeadingToken(t *testing.T) {
	require.Equal(t, "%ONE PENN SQUARE%", Normalize("One Penn Square"))
}

func TestNormalizeSuffixRules(t *testing.T) {
	cases := map[string]string{
		"100 Broad Street":     "%100 BROAD ST%",
		"2301 Girard Avenue":   "%2301 GIRARD AVE%",
		"1 Lincoln Boulevard":  "%1 LINCOLN BLVD%",
		"55 Township Road":     "%55 TOWNSHIP RD%",
		"9 Overlook Drive":     "%9 OVERLOOK DR%",
		"14 Rittenhouse Place": "%14 RITTENHOUSE PL%",
		"3 Eagle Court":        "%3 EAGLE CT%",
		"77 Mulberry Lane":     "%77 MULBERRY LN%",
		"8 Summit Terrace":     "%8 SUMMIT TER%",
	}
	for raw, want := range cases {
		require.Equal(t, want, Normalize(raw), raw)
	}
}

func TestNormalizeSingleSubstitution(t *testing.T) {
	// STREET matches first by rule order even though the name contains
	// another suffix word.
	require.Equal(t, "%12 AVENUE ST%", Normalize("12 Avenue Street"))
}

func TestNormalizeEscapesQuotes(t *testing.T) {
	require.Equal(t, "%5 O''HARA AVE%", Normalize("5 O'Hara Avenue"))
}

func TestNormalizeIdempotent(t *testing.T) {
	first := Normalize("0780 Union Street")
	inner := strings.Trim(first, "%")
	require.Equal(t, first, Normalize(inner))
}
