package groups

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ParseProjects splits a comma-separated list of project group names,
// dropping blanks.
func ParseProjects(raw string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			set[item] = struct{}{}
		}
	}
	return set
}

// ReadProjectsFile reads one project group name per line, skipping blanks.
func ReadProjectsFile(path string) (map[string]struct{}, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open projects file %s: %w", path, err)
	}
	defer f.Close()

	set := make(map[string]struct{})
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		name := strings.TrimSpace(scanner.Text())
		if name != "" {
			set[name] = struct{}{}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read projects file %s: %w", path, err)
	}
	return set, nil
}
