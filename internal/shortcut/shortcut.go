// Package shortcut resolves user-defined abbreviations at word boundaries.
package shortcut

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/derekparker/trie"
)

// Entry is one abbreviation record. Trigger is the ASCII text the user
// types; Expansion is arbitrary Unicode. Higher priority wins among
// duplicate triggers; seq breaks remaining ties by insertion order.
type Entry struct {
	Trigger   string
	Expansion string
	Priority  int
	seq       int
}

// Table holds the shortcut set. Triggers are indexed in a trie so boundary
// lookups and prefix queries stay cheap however large the table grows.
type Table struct {
	index   *trie.Trie
	entries map[string][]Entry
	nextSeq int
}

func NewTable() *Table {
	return &Table{
		index:   trie.New(),
		entries: make(map[string][]Entry),
	}
}

// Add registers a shortcut. Re-adding a trigger keeps both records; Match
// resolves the winner by priority, then the earliest insertion.
func (t *Table) Add(trigger, expansion string, priority int) {
	if t == nil || trigger == "" || expansion == "" {
		return
	}
	entry := Entry{Trigger: trigger, Expansion: expansion, Priority: priority, seq: t.nextSeq}
	t.nextSeq++
	if _, ok := t.entries[trigger]; !ok {
		t.index.Add(trigger, trigger)
	}
	t.entries[trigger] = append(t.entries[trigger], entry)
}

// Remove drops every record for a trigger.
func (t *Table) Remove(trigger string) {
	if t == nil {
		return
	}
	if _, ok := t.entries[trigger]; !ok {
		return
	}
	delete(t.entries, trigger)
	t.index.Remove(trigger)
}

// Len counts distinct triggers.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Match looks up a completed word, case-sensitively. Among duplicate
// records for the trigger the highest priority wins, then the earliest
// inserted.
func (t *Table) Match(word string) (Entry, bool) {
	if t == nil || word == "" {
		return Entry{}, false
	}
	node, found := t.index.Find(word)
	if !found || node == nil {
		return Entry{}, false
	}
	key, ok := node.Meta().(string)
	if !ok {
		return Entry{}, false
	}
	candidates := t.entries[key]
	if len(candidates) == 0 {
		return Entry{}, false
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Priority > best.Priority {
			best = c
		}
	}
	return best, true
}

// Triggers returns all distinct triggers currently registered.
func (t *Table) Triggers() []string {
	if t == nil {
		return nil
	}
	return t.index.Keys()
}

// LoadTSV merges shortcuts from a tab-separated file: trigger, expansion
// and an optional numeric priority per line. Blank lines and lines
// starting with # or ; are skipped.
func (t *Table) LoadTSV(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open shortcut file %s: %w", path, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}
		parts := strings.Split(line, "\t")
		if len(parts) < 2 {
			continue
		}
		trigger := strings.TrimSpace(parts[0])
		expansion := strings.TrimSpace(parts[1])
		priority := 0
		if len(parts) > 2 {
			if p, err := strconv.Atoi(strings.TrimSpace(parts[2])); err == nil {
				priority = p
			}
		}
		t.Add(trigger, expansion, priority)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read shortcut file %s: %w", path, err)
	}
	return nil
}
