package cmd

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// resolveAddresses collects raw addresses from positional args or, when
// --addresses-file is set, from a file. Blank entries are skipped here;
// normalization and deduplication happen in the pipeline.
func resolveAddresses(positional []string, addressesFile string) ([]string, error) {
	trimmed := strings.TrimSpace(addressesFile)
	if trimmed != "" {
		if len(positional) > 0 {
			return nil, fmt.Errorf("cannot combine positional addresses with --addresses-file")
		}
		return readAddressesFile(trimmed)
	}

	addresses := make([]string, 0, len(positional))
	for _, raw := range positional {
		addr := strings.TrimSpace(raw)
		if addr == "" {
			continue
		}
		addresses = append(addresses, addr)
	}
	if len(addresses) == 0 {
		return nil, errors.New("at least one address is required")
	}
	return addresses, nil
}

// readAddressesFile reads addresses from a plain file (one per line, #
// comments allowed) or, for .csv files, from the "address" column. "-"
// reads line-per-address from stdin.
func readAddressesFile(path string) ([]string, error) {
	var reader io.Reader
	if path == "-" {
		reader = os.Stdin
	} else {
		file, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer file.Close() // nolint:errcheck
		reader = file

		if strings.EqualFold(filepath.Ext(path), ".csv") {
			return readAddressesCSV(reader)
		}
	}

	addresses := make([]string, 0)
	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" || strings.HasPrefix(raw, "#") {
			continue
		}
		addresses = append(addresses, raw)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(addresses) == 0 {
		return nil, errors.New("no addresses found")
	}
	return addresses, nil
}

// readAddressesCSV extracts the "address" column from a CSV file with a
// header row. Header matching is case-insensitive.
func readAddressesCSV(reader io.Reader) ([]string, error) {
	cr := csv.NewReader(reader)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, errors.New("no addresses found")
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	column := -1
	for i, name := range header {
		if strings.EqualFold(strings.TrimSpace(name), "address") {
			column = i
			break
		}
	}
	if column < 0 {
		return nil, errors.New(`csv file must have an "address" column`)
	}

	addresses := make([]string, 0)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		if column >= len(record) {
			continue
		}
		addr := strings.TrimSpace(record[column])
		if addr == "" {
			continue
		}
		addresses = append(addresses, addr)
	}

	if len(addresses) == 0 {
		return nil, errors.New("no addresses found")
	}
	return addresses, nil
}
