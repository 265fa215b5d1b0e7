package usagefile

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/de-tools/top-users/pkg/models/domain"
)

// Write writes "identity seconds" lines in canonical order: descending
// seconds, ties broken by identity. One file per month is the layout the
// monthly command produces (YYYY-MM.txt).
func Write(path string, usage domain.UsageMap) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, entry := range usage.Sorted() {
		if _, err := fmt.Fprintf(w, "%s %d\n", entry.Identity, entry.Seconds); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return f.Close()
}

// Read parses a usage file back into entries, preserving file order. Blank
// lines are skipped; anything else malformed is an error, these files are
// produced by this tool rather than by a noisy upstream.
func Read(path string) ([]domain.UsageEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var entries []domain.UsageEntry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("%s: malformed line %q", path, line)
		}
		seconds, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: malformed seconds in %q", path, line)
		}
		entries = append(entries, domain.UsageEntry{Identity: fields[0], Seconds: seconds})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return entries, nil
}

// MergeDir sums every *.txt usage file in dir into one map, reusing the
// same summation primitive as the line aggregator. Files with disjoint
// identities merge to the concatenation of their contents; shared
// identities accumulate.
func MergeDir(dir string) (domain.UsageMap, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.txt"))
	if err != nil {
		return nil, fmt.Errorf("list usage files in %s: %w", dir, err)
	}
	sort.Strings(paths)

	totals := make(domain.UsageMap)
	for _, path := range paths {
		entries, err := Read(path)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			totals.Add(entry.Identity, entry.Seconds)
		}
	}
	return totals, nil
}
