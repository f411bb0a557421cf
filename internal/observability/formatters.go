// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/marcus/persona-map/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintSignal outputs a human-readable summary of the extracted profile signal.
func (p *Printer) PrintSignal(signal *types.ProfileSignal) {
	if signal == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Handle:   @%s\n", signal.Handle))
	if signal.Name != "" {
		sb.WriteString(fmt.Sprintf("Name:     %s\n", signal.Name))
	}
	if signal.Bio != "" {
		sb.WriteString(fmt.Sprintf("Bio:      %s\n", signal.Bio))
	}
	sb.WriteString(fmt.Sprintf("Tweets:   %d collected", len(signal.Tweets)))

	p.printBox("EXTRACTED SIGNAL", sb.String())
}

// PrintPersona outputs a human-readable summary of the generated persona.
func (p *Printer) PrintPersona(persona *types.Persona) {
	if persona == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:     %s\n", persona.Name))
	sb.WriteString(fmt.Sprintf("Handle:   @%s\n", persona.Handle))
	sb.WriteString(fmt.Sprintf("Bio:      %s\n", persona.Bio))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Traits:    %s\n", joinCapped(persona.Traits)))
	sb.WriteString(fmt.Sprintf("Interests: %s", joinCapped(persona.Interests)))

	p.printBox("PERSONA", sb.String())
}

// PrintLocations outputs a human-readable summary of the recommendation set.
func (p *Printer) PrintLocations(locations []types.Location) {
	if len(locations) == 0 {
		return
	}

	var sb strings.Builder
	for i, loc := range locations {
		sb.WriteString(fmt.Sprintf("%d. %s (%s)\n", i+1, loc.Name, loc.Category))
		sb.WriteString(fmt.Sprintf("   %s\n", loc.Address))
		if i < len(locations)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox(fmt.Sprintf("RECOMMENDATIONS (%d)", len(locations)), strings.TrimRight(sb.String(), "\n"))
}

// joinCapped joins up to maxItemsToShow entries, noting how many were omitted.
func joinCapped(items []string) string {
	if len(items) <= maxItemsToShow {
		return strings.Join(items, ", ")
	}
	shown := strings.Join(items[:maxItemsToShow], ", ")
	return fmt.Sprintf("%s (+%d more)", shown, len(items)-maxItemsToShow)
}
