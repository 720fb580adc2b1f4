// Package importer ingests contact CSVs into the friend collection.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lazypower/tend/internal/garden"
	"github.com/lazypower/tend/internal/store"
)

const defaultFrequencyDays = 14

// Result summarizes one import run.
type Result struct {
	Added      int      `json:"added"`
	Duplicates []string `json:"duplicates,omitempty"`
	Skipped    []string `json:"skipped,omitempty"`
}

// ImportFile reads a CSV file and adds its contacts.
func ImportFile(db *store.DB, path string, now time.Time) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Import(db, data, now)
}

// Import parses CSV bytes and creates a friend per row. The first row
// must be a header; recognized columns (case-insensitive) are name,
// category, frequencydays, phone, email, notes, birthday. Rows whose
// name matches an existing friend are reported as duplicates and not
// inserted; merging is a decision for the user, not the importer.
func Import(db *store.DB, data []byte, now time.Time) (*Result, error) {
	decoded, err := decodeToUTF8(data)
	if err != nil {
		return nil, fmt.Errorf("decode csv: %w", err)
	}

	r := csv.NewReader(strings.NewReader(string(decoded)))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := cols["name"]; !ok {
		return nil, fmt.Errorf("csv has no name column")
	}

	existing, err := db.ListFriends()
	if err != nil {
		return nil, fmt.Errorf("list friends: %w", err)
	}

	res := &Result{}
	for line := 2; ; line++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			res.Skipped = append(res.Skipped, fmt.Sprintf("line %d: %v", line, err))
			continue
		}

		field := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		name := field("name")
		if name == "" {
			res.Skipped = append(res.Skipped, fmt.Sprintf("line %d: empty name", line))
			continue
		}

		if dup := findDuplicate(existing, name); dup != "" {
			res.Duplicates = append(res.Duplicates, fmt.Sprintf("%s (matches %s)", name, dup))
			continue
		}

		freq := defaultFrequencyDays
		if v := field("frequencydays"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 {
				res.Skipped = append(res.Skipped, fmt.Sprintf("line %d: bad frequencydays %q", line, v))
				continue
			}
			freq = n
		}

		f := garden.NewFriend(uuid.NewString(), name, freq, now)
		f.Category = field("category")
		f.Phone = field("phone")
		f.Email = field("email")
		f.Notes = field("notes")
		f.Birthday = field("birthday")

		if err := db.CreateFriend(f); err != nil {
			res.Skipped = append(res.Skipped, fmt.Sprintf("line %d: %v", line, err))
			continue
		}
		existing = append(existing, f)
		res.Added++
	}

	return res, nil
}

func findDuplicate(existing []garden.Friend, name string) string {
	for _, f := range existing {
		if namesMatch(f.Name, name) {
			return f.Name
		}
	}
	return ""
}
