package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestResolveAddressesPositional(t *testing.T) {
	addresses, err := resolveAddresses([]string{" 780 Union St ", "", "1234 Market St"}, "")
	require.NoError(t, err)
	require.Equal(t, []string{"780 Union St", "1234 Market St"}, addresses)
}

func TestResolveAddressesEmpty(t *testing.T) {
	_, err := resolveAddresses(nil, "")
	require.Error(t, err)
}

func TestResolveAddressesFileAndPositionalConflict(t *testing.T) {
	_, err := resolveAddresses([]string{"780 Union St"}, "addresses.txt")
	require.Error(t, err)
}

func TestReadAddressesFileLines(t *testing.T) {
	path := writeTempFile(t, "addresses.txt", "# batch for review\n780 Union Street\n\n1234 Market Street, Philadelphia\n")

	addresses, err := readAddressesFile(path)
	require.NoError(t, err)
	require.Equal(t, []string{"780 Union Street", "1234 Market Street, Philadelphia"}, addresses)
}

func TestReadAddressesFileCSV(t *testing.T) {
	path := writeTempFile(t, "addresses.csv", "owner,address,notes\nsmith,780 Union St,\njones,\"1234 Market St, Philadelphia\",check\n,,\n")

	addresses, err := readAddressesFile(path)
	require.NoError(t, err)
	require.Equal(t, []string{"780 Union St", "1234 Market St, Philadelphia"}, addresses)
}

func TestReadAddressesFileCSVHeaderCase(t *testing.T) {
	path := writeTempFile(t, "addresses.csv", "Address\n780 Union St\n")

	addresses, err := readAddressesFile(path)
	require.NoError(t, err)
	require.Equal(t, []string{"780 Union St"}, addresses)
}

func TestReadAddressesFileCSVMissingColumn(t *testing.T) {
	path := writeTempFile(t, "addresses.csv", "owner,location\nsmith,780 Union St\n")

	_, err := readAddressesFile(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "address")
}

func TestReadAddressesFileEmpty(t *testing.T) {
	path := writeTempFile(t, "addresses.txt", "# nothing here\n\n")

	_, err := readAddressesFile(path)
	require.Error(t, err)
}

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"780 Union St", "780-union-st"},
		{"  Report #3  ", "report-3"},
		{"///", "output"},
		{"", "output"},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, sanitizeFilename(tc.in), "input %q", tc.in)
	}
}
