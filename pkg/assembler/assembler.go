// Package assembler builds the single context string handed to the analysis
// prompt from an ordered set of document snapshots. It is a pure function of
// its inputs: no I/O, no side effects, deterministic for the same ordered
// input and budget.
package assembler

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Source is a read-only snapshot of a document. The caller decides the order;
// the assembler never reorders.
type Source struct {
	Id      string
	Name    string
	Kind    string
	Content string
}

const (
	KindCSV = "CSV"

	// Data rows between header re-injections in CSV bodies. Long tables lose
	// column semantics to positional attention decay; restating the header
	// every 50 rows lets the model recover them at any scan depth.
	HeaderRepeatEvery = 50

	// MinContentChars filters out meaningless inputs before they cost budget.
	MinContentChars = 3

	// BudgetReserve is the minimum remaining budget worth opening another
	// document for. Below this, accumulation stops entirely so a later
	// document's sentinels are never left dangling.
	BudgetReserve = 200

	TruncatedMarker      = "\n[TRUNCATED]"
	RepeatedHeaderMarker = "[REPEATED HEADER] "
)

// Assemble accumulates sources into one buffer under a hard character budget.
// Output length is bounded by maxTotalChars plus the sentinel/marker overhead
// of the last included document.
func Assemble(sources []Source, maxTotalChars int) string {
	var b strings.Builder

	for _, src := range sources {
		if utf8.RuneCountInString(strings.TrimSpace(src.Content)) < MinContentChars {
			continue
		}

		remaining := maxTotalChars - b.Len()
		if remaining < BudgetReserve {
			break
		}

		header := fmt.Sprintf("=== FILE_START name=%q id=%s ===\n", src.Name, src.Id)
		footer := fmt.Sprintf("=== FILE_END name=%q id=%s ===\n\n", src.Name, src.Id)

		body := renderBody(src)

		available := remaining - len(header) - len(footer)
		truncated := false
		if len(body) > available {
			if available < 0 {
				available = 0
			}
			body = truncateToBytes(body, available) + TruncatedMarker
			truncated = true
		}

		b.WriteString(header)
		b.WriteString(body)
		if !strings.HasSuffix(body, "\n") {
			b.WriteString("\n")
		}
		b.WriteString(footer)

		if truncated {
			// Budget exhausted; nothing else fits.
			break
		}
	}

	return strings.TrimSuffix(b.String(), "\n")
}

func renderBody(src Source) string {
	if src.Kind != KindCSV {
		return src.Content
	}
	return renderCSV(src.Content)
}

// renderCSV treats the first non-empty line as the header, prefixes every
// data row with a stable 1-based index, and re-injects the header before
// every HeaderRepeatEvery-th data row.
func renderCSV(content string) string {
	normalized := normalizeDelimiters(content)
	lines := strings.Split(normalized, "\n")

	var b strings.Builder
	header := ""
	rowIndex := 0

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if header == "" {
			header = trimmed
			b.WriteString("HEADER: ")
			b.WriteString(header)
			b.WriteString("\n")
			continue
		}
		rowIndex++
		if rowIndex%HeaderRepeatEvery == 0 {
			b.WriteString(RepeatedHeaderMarker)
			b.WriteString(header)
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "ROW %d: %s\n", rowIndex, trimmed)
	}

	return b.String()
}

func normalizeDelimiters(s string) string {
	s = strings.ReplaceAll(s, "\t", ",")
	s = strings.ReplaceAll(s, ";", ",")
	return s
}

// truncateToBytes cuts s to at most n bytes, backing off to a rune boundary
// so the cut never splits a multi-byte character.
func truncateToBytes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
