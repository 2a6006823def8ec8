// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package diff

import (
	"fmt"
	"strings"

	"github.com/jeranaias/textkit/internal/boundary"
)

// =============================================================================
// DIFF TYPES
// =============================================================================

// Op is the kind of an edit.
type Op int

const (
	// Equal marks a sentence present in both texts.
	Equal Op = iota
	// Insert marks a sentence only in the new text.
	Insert
	// Delete marks a sentence only in the old text.
	Delete
)

// String returns the string representation of an op.
func (o Op) String() string {
	switch o {
	case Equal:
		return "equal"
	case Insert:
		return "insert"
	case Delete:
		return "delete"
	default:
		return "unknown"
	}
}

// MarshalText encodes the op by name.
func (o Op) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText decodes an op name.
func (o *Op) UnmarshalText(b []byte) error {
	switch string(b) {
	case "equal":
		*o = Equal
	case "insert":
		*o = Insert
	case "delete":
		*o = Delete
	default:
		return fmt.Errorf("unknown diff op %q", b)
	}
	return nil
}

// Prefix returns the unified-diff prefix character for this op.
func (o Op) Prefix() string {
	switch o {
	case Insert:
		return "+"
	case Delete:
		return "-"
	default:
		return " "
	}
}

// Edit is one sentence of the comparison. Old and New are 1-based
// positions in each text, 0 where the sentence is absent.
type Edit struct {
	Op       Op     `json:"op"`
	Sentence string `json:"sentence"`
	Old      int    `json:"old,omitempty"`
	New      int    `json:"new,omitempty"`
}

// Hunk is a run of changes with surrounding context.
type Hunk struct {
	OldStart int    `json:"old_start"`
	OldCount int    `json:"old_count"`
	NewStart int    `json:"new_start"`
	NewCount int    `json:"new_count"`
	Edits    []Edit `json:"edits"`
}

// Stats counts sentences by op.
type Stats struct {
	Added     int `json:"added"`
	Removed   int `json:"removed"`
	Unchanged int `json:"unchanged"`
}

// Result is a complete comparison.
type Result struct {
	Edits []Edit `json:"edits"`
	Hunks []Hunk `json:"hunks"`
	Stats Stats  `json:"stats"`
}

// ContextSentences is the number of unchanged sentences kept around each
// change in a hunk.
const ContextSentences = 2

// =============================================================================
// DIFF COMPUTATION
// =============================================================================

// Compare diffs two texts sentence by sentence. A nil splitter uses
// boundary.DefaultSplitter. Sentences that trim to nothing are ignored.
func Compare(oldText, newText string, splitter boundary.SentenceSplitter) *Result {
	if splitter == nil {
		splitter = boundary.DefaultSplitter()
	}
	return Units(sentences(oldText, splitter), sentences(newText, splitter))
}

func sentences(text string, splitter boundary.SentenceSplitter) []string {
	var out []string
	for s := range splitter.Sentences(text) {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Units diffs two pre-split sequences with a longest-common-subsequence
// alignment. Deletions are listed before insertions at the same point.
func Units(oldUnits, newUnits []string) *Result {
	r := &Result{Edits: computeEdits(oldUnits, newUnits)}
	for _, e := range r.Edits {
		switch e.Op {
		case Insert:
			r.Stats.Added++
		case Delete:
			r.Stats.Removed++
		default:
			r.Stats.Unchanged++
		}
	}
	r.Hunks = groupIntoHunks(r.Edits, ContextSentences)
	return r
}

// computeEdits aligns a and b. lcs[i][j] is the common subsequence length
// of a[i:] and b[j:].
func computeEdits(a, b []string) []Edit {
	m, n := len(a), len(b)
	lcs := make([][]int, m+1)
	for i := range lcs {
		lcs[i] = make([]int, n+1)
	}
	for i := m - 1; i >= 0; i-- {
		for j := n - 1; j >= 0; j-- {
			if a[i] == b[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else {
				lcs[i][j] = max(lcs[i+1][j], lcs[i][j+1])
			}
		}
	}

	edits := make([]Edit, 0, m+n)
	i, j := 0, 0
	for i < m || j < n {
		switch {
		case i < m && j < n && a[i] == b[j]:
			edits = append(edits, Edit{Op: Equal, Sentence: a[i], Old: i + 1, New: j + 1})
			i++
			j++
		case i < m && (j >= n || lcs[i+1][j] >= lcs[i][j+1]):
			edits = append(edits, Edit{Op: Delete, Sentence: a[i], Old: i + 1})
			i++
		default:
			edits = append(edits, Edit{Op: Insert, Sentence: b[j], New: j + 1})
			j++
		}
	}
	return edits
}

// groupIntoHunks merges changes whose context windows touch.
func groupIntoHunks(edits []Edit, context int) []Hunk {
	// oldSeen[i] and newSeen[i] count units consumed before edits[i].
	oldSeen := make([]int, len(edits)+1)
	newSeen := make([]int, len(edits)+1)
	for i, e := range edits {
		oldSeen[i+1], newSeen[i+1] = oldSeen[i], newSeen[i]
		if e.Old > 0 {
			oldSeen[i+1]++
		}
		if e.New > 0 {
			newSeen[i+1]++
		}
	}

	var hunks []Hunk
	for i := 0; i < len(edits); {
		if edits[i].Op == Equal {
			i++
			continue
		}

		start := max(0, i-context)
		end := i + 1 // exclusive
		for k := i + 1; k < len(edits) && k <= end+2*context; k++ {
			if edits[k].Op != Equal {
				end = k + 1
			}
		}
		end = min(len(edits), end+context)

		h := Hunk{
			OldCount: oldSeen[end] - oldSeen[start],
			NewCount: newSeen[end] - newSeen[start],
			Edits:    append([]Edit(nil), edits[start:end]...),
		}
		// Unified diff convention: an empty side starts at the unit before it.
		h.OldStart = oldSeen[start]
		if h.OldCount > 0 {
			h.OldStart++
		}
		h.NewStart = newSeen[start]
		if h.NewCount > 0 {
			h.NewStart++
		}
		hunks = append(hunks, h)
		i = end
	}
	return hunks
}

// =============================================================================
// OUTPUT
// =============================================================================

// Changed reports whether the texts differ.
func (r *Result) Changed() bool {
	return r.Stats.Added > 0 || r.Stats.Removed > 0
}

// Unified formats the result as a unified diff with one sentence per line.
func (r *Result) Unified(oldName, newName string) string {
	if !r.Changed() {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- %s\n", oldName)
	fmt.Fprintf(&sb, "+++ %s\n", newName)
	for _, h := range r.Hunks {
		fmt.Fprintf(&sb, "@@ -%d,%d +%d,%d @@\n", h.OldStart, h.OldCount, h.NewStart, h.NewCount)
		for _, e := range h.Edits {
			sb.WriteString(e.Op.Prefix())
			sb.WriteString(e.Sentence)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// Summary returns a one-line description such as "+2 -1 sentences".
func (r *Result) Summary() string {
	if !r.Changed() {
		return "no changes"
	}
	var parts []string
	if r.Stats.Added > 0 {
		parts = append(parts, fmt.Sprintf("+%d", r.Stats.Added))
	}
	if r.Stats.Removed > 0 {
		parts = append(parts, fmt.Sprintf("-%d", r.Stats.Removed))
	}
	return strings.Join(parts, " ") + " sentences"
}
