package history

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// DefaultShowLines is how many history lines Show prints when the caller
// does not ask for a specific count.
const DefaultShowLines = 10

// ImportFile appends the lines of a flat history file to the store. Any
// text file can be used; each line is one input. Lines already in the
// store are skipped, so re-importing the same file is idempotent. A
// missing file is silently ignored and reports zero lines.
func (m *Manager) ImportFile(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("reading history file: %w", err)
	}
	defer f.Close()

	existing, err := m.RecentEntries(-1)
	if err != nil {
		return 0, err
	}
	seen := make(map[string]struct{}, len(existing))
	for _, entry := range existing {
		seen[entry.Input] = struct{}{}
	}

	count := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if _, ok := seen[line]; ok {
			continue
		}
		if _, err := m.StartInput(line); err != nil {
			return count, err
		}
		seen[line] = struct{}{}
		count++
	}
	if err := scanner.Err(); err != nil {
		return count, fmt.Errorf("reading history file: %w", err)
	}
	return count, nil
}

// LoadFile clears the store, then imports the named file. To append
// without clearing, use ImportFile.
func (m *Manager) LoadFile(path string) (int, error) {
	if err := m.Reset(); err != nil {
		return 0, err
	}
	return m.ImportFile(path)
}

// ExportFile writes the most recent limit inputs to a flat history file,
// oldest first, one per line. A limit <= 0 writes everything.
func (m *Manager) ExportFile(path string, limit int) error {
	if limit <= 0 {
		limit = -1
	}
	entries, err := m.RecentEntries(limit)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("writing history file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, entry := range entries {
		if _, err := fmt.Fprintln(w, entry.Input); err != nil {
			return fmt.Errorf("writing history file: %w", err)
		}
	}
	return w.Flush()
}

// Show prints the latest count history lines to w. History lines are
// numbered from 1, oldest first; a negative count shows everything.
func (m *Manager) Show(w io.Writer, count int, showLineNumbers bool) error {
	entries, err := m.RecentEntries(-1)
	if err != nil {
		return err
	}

	start := 0
	if count >= 0 && len(entries) > count {
		start = len(entries) - count
	}

	for i, entry := range entries[start:] {
		if showLineNumbers {
			fmt.Fprintf(w, "%3d:  %s\n", start+i+1, entry.Input)
		} else {
			fmt.Fprintln(w, entry.Input)
		}
	}
	return nil
}
