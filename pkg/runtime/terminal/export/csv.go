package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/de-tools/top-users/pkg/models/domain"
)

// EnrichedColumns is the fixed header of enriched user CSVs. Readers key on
// these names, so order and spelling are part of the contract.
var EnrichedColumns = []string{
	"user",
	"measure",
	"Email address",
	"Vorname",
	"Nachname",
	"geschlecht",
	"status",
	"projekt",
	"initiative",
}

// WriteEnrichedCSV writes enriched user rows with the fixed column set.
func WriteEnrichedCSV(w io.Writer, users []domain.EnrichedUser) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(EnrichedColumns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, u := range users {
		row := []string{
			u.Identity,
			strconv.FormatInt(u.Measure, 10),
			u.Email,
			u.FirstName,
			u.LastName,
			u.Gender,
			u.Status,
			u.Project,
			u.Initiative,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row for %s: %w", u.Identity, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteProjectTotalsCSV writes per-project measure totals, sorted by
// project name.
func WriteProjectTotalsCSV(w io.Writer, totals domain.UsageMap) error {
	projects := make([]string, 0, len(totals))
	for project := range totals {
		projects = append(projects, project)
	}
	sort.Strings(projects)

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"projekt", "measure"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, project := range projects {
		row := []string{project, strconv.FormatInt(totals[project], 10)}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row for %s: %w", project, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadEnrichedCSV reads rows written by WriteEnrichedCSV. Missing required
// columns are an error; unknown extra columns are ignored.
func ReadEnrichedCSV(r io.Reader) ([]domain.EnrichedUser, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[name] = i
	}
	for _, required := range []string{"user", "measure"} {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("input is missing %q column", required)
		}
	}

	field := func(row []string, name string) string {
		i, ok := idx[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	var users []domain.EnrichedUser
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		measure, _ := strconv.ParseInt(field(row, "measure"), 10, 64)
		users = append(users, domain.EnrichedUser{
			Identity:   field(row, "user"),
			Measure:    measure,
			Email:      field(row, "Email address"),
			FirstName:  field(row, "Vorname"),
			LastName:   field(row, "Nachname"),
			Gender:     field(row, "geschlecht"),
			Status:     field(row, "status"),
			Project:    field(row, "projekt"),
			Initiative: field(row, "initiative"),
		})
	}
	return users, nil
}
