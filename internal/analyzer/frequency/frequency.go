// Package frequency counts token occurrences and ranks the most frequent
// tokens. Ranking is deterministic: equal counts keep the order in which the
// tokens were first seen.
package frequency

import "sort"

// Entry is a ranked (token, count) pair.
type Entry struct {
	Token string `json:"token"`
	Count int    `json:"count"`
}

// Table maps tokens to occurrence counts and remembers first-seen order.
type Table struct {
	counts map[string]int
	order  []string
	total  int
}

func NewTable() *Table {
	return &Table{counts: make(map[string]int)}
}

// Count builds a Table from tokens in a single pass.
func Count(tokens []string) *Table {
	t := NewTable()
	for _, tok := range tokens {
		t.Add(tok)
	}
	return t
}

// Add records one occurrence of token.
func (t *Table) Add(token string) {
	if _, seen := t.counts[token]; !seen {
		t.order = append(t.order, token)
	}
	t.counts[token]++
	t.total++
}

// Get returns the count for token, 0 if it was never added.
func (t *Table) Get(token string) int {
	return t.counts[token]
}

// Len returns the number of distinct tokens.
func (t *Table) Len() int {
	return len(t.order)
}

// Total returns the number of tokens added.
func (t *Table) Total() int {
	return t.total
}

// Counts returns a copy of the token to count mapping.
func (t *Table) Counts() map[string]int {
	out := make(map[string]int, len(t.counts))
	for k, v := range t.counts {
		out[k] = v
	}
	return out
}

// Top returns at most k entries ordered by count descending, ties in
// first-seen order. k <= 0 yields an empty slice.
func (t *Table) Top(k int) []Entry {
	if k <= 0 {
		return []Entry{}
	}
	entries := make([]Entry, len(t.order))
	for i, tok := range t.order {
		entries[i] = Entry{Token: tok, Count: t.counts[tok]}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	if k < len(entries) {
		entries = entries[:k]
	}
	return entries
}
