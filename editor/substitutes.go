package editor

import (
	"fmt"
	"sort"
	"strings"
)

// Substitute lists obey two invariants after every mutation: case-sensitive
// lexicographic order, and no two entries equal under case-insensitive
// comparison. When case variants collide the first-seen casing wins.

// AddSubstitute inserts one substitute, keeping the list sorted. A blank
// name or a case-insensitive duplicate is silently dropped.
func (d *Document) AddSubstitute(mealID, itemID, name string) error {
	it, err := d.findItem(mealID, itemID)
	if err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	it.Substitutes = normalizeSubstitutes(append(it.Substitutes, name))
	return nil
}

// AddSubstitutesBulk parses free text (entries split on newline or
// semicolon), trims each entry, drops empties, de-duplicates
// case-insensitively against the existing list and within the batch, then
// merges and re-sorts. Returns how many entries were actually added.
func (d *Document) AddSubstitutesBulk(mealID, itemID, text string) (int, error) {
	it, err := d.findItem(mealID, itemID)
	if err != nil {
		return 0, err
	}
	parsed := strings.FieldsFunc(text, func(r rune) bool {
		return r == '\n' || r == ';'
	})
	merged := append(append([]string(nil), it.Substitutes...), parsed...)
	before := len(it.Substitutes)
	it.Substitutes = normalizeSubstitutes(merged)
	return len(it.Substitutes) - before, nil
}

// EditSubstitute replaces the entry at index in place and re-sorts. Editing
// an entry into a case variant of another entry collapses the two.
func (d *Document) EditSubstitute(mealID, itemID string, index int, name string) error {
	it, err := d.findItem(mealID, itemID)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(it.Substitutes) {
		return fmt.Errorf("substitute index %d out of range", index)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("substitute name must not be empty")
	}
	it.Substitutes[index] = name
	it.Substitutes = normalizeSubstitutes(it.Substitutes)
	return nil
}

// DeleteSubstitute removes the entry at index.
func (d *Document) DeleteSubstitute(mealID, itemID string, index int) error {
	return d.DeleteSubstitutes(mealID, itemID, []int{index})
}

// DeleteSubstitutes removes the entries at the given indexes (multi-select).
func (d *Document) DeleteSubstitutes(mealID, itemID string, indexes []int) error {
	it, err := d.findItem(mealID, itemID)
	if err != nil {
		return err
	}
	drop := make(map[int]bool, len(indexes))
	for _, i := range indexes {
		if i < 0 || i >= len(it.Substitutes) {
			return fmt.Errorf("substitute index %d out of range", i)
		}
		drop[i] = true
	}
	kept := it.Substitutes[:0]
	for i, s := range it.Substitutes {
		if !drop[i] {
			kept = append(kept, s)
		}
	}
	it.Substitutes = kept
	return nil
}

func normalizeSubstitutes(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		key := strings.ToLower(s)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
