package payload

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"esports-waitlist/internal/intake/form"
	"esports-waitlist/internal/models"
)

const (
	// NotesBudget is the hard ceiling on the submitted notes field, in characters.
	NotesBudget = 300

	notesJoiner   = "\n\n"
	summaryPrefix = "Typical windows: "
	itemSeparator = ", "
)

// BuildWaitlistNotes combines the free-text note with a summary of the
// selected availability slots without exceeding NotesBudget characters.
func BuildWaitlistNotes(notes string, slots []string) string {
	note := truncate(strings.TrimSpace(notes), NotesBudget)
	if note == "" {
		return SummarizeAvailability(slots, NotesBudget)
	}

	remaining := NotesBudget - runeLen(note) - runeLen(notesJoiner)
	if remaining <= 2 {
		return note
	}

	summary := SummarizeAvailability(slots, remaining)
	if summary == "" {
		return note
	}
	return note + notesJoiner + summary
}

// SummarizeAvailability renders slots as "Typical windows: Mon Evening, ..."
// in canonical day/block order, keeping as many items as fit in budget. When
// items are dropped a ", +N more" suffix is added if it still fits. If not
// even one item fits the result is empty.
func SummarizeAvailability(slots []string, budget int) string {
	items := availabilityLabels(slots)
	if len(items) == 0 || budget <= 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(summaryPrefix)
	length := runeLen(summaryPrefix)
	included := 0

	for _, item := range items {
		add := runeLen(item)
		if included > 0 {
			add += runeLen(itemSeparator)
		}
		if length+add > budget {
			break
		}
		if included > 0 {
			b.WriteString(itemSeparator)
		}
		b.WriteString(item)
		length += add
		included++
	}

	if included == 0 {
		return ""
	}

	if omitted := len(items) - included; omitted > 0 {
		suffix := fmt.Sprintf("%s+%d more", itemSeparator, omitted)
		if length+runeLen(suffix) <= budget {
			b.WriteString(suffix)
		}
	}
	return b.String()
}

type slotPos struct{ day, block int }

// availabilityLabels sorts, dedups and labels slot keys; unknown keys are skipped.
func availabilityLabels(slots []string) []string {
	seen := make(map[slotPos]bool, len(slots))
	positions := make([]slotPos, 0, len(slots))
	for _, key := range slots {
		day, block, ok := form.ParseSlotKey(key)
		if !ok {
			continue
		}
		p := slotPos{day, block}
		if seen[p] {
			continue
		}
		seen[p] = true
		positions = append(positions, p)
	}

	sort.Slice(positions, func(i, j int) bool {
		if positions[i].day != positions[j].day {
			return positions[i].day < positions[j].day
		}
		return positions[i].block < positions[j].block
	})

	labels := make([]string, len(positions))
	for i, p := range positions {
		block := models.TimeBlocks[p.block]
		labels[i] = models.Days[p.day] + " " + models.BlockLabels[block]
	}
	return labels
}

// truncate cuts s to at most n characters and drops whitespace left dangling
// at the cut.
func truncate(s string, n int) string {
	if runeLen(s) <= n {
		return s
	}
	r := []rune(s)[:n]
	return strings.TrimRightFunc(string(r), unicode.IsSpace)
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
