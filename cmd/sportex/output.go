package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ade80")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#e06060")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#d4a844")).Bold(true)
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8890a0"))
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#fb923c")).Bold(true)
)

// printer writes command output. Styled text goes to out, errors to errOut.
type printer struct {
	out    io.Writer
	errOut io.Writer
}

func newPrinter(out, errOut io.Writer) *printer {
	return &printer{out: out, errOut: errOut}
}

func (p *printer) Success(msg string) { fmt.Fprintln(p.out, successStyle.Render("✓ "+msg)) }
func (p *printer) Warning(msg string) { fmt.Fprintln(p.out, warningStyle.Render("! "+msg)) }
func (p *printer) Subtle(msg string)  { fmt.Fprintln(p.out, subtleStyle.Render(msg)) }
func (p *printer) Println(msg string) { fmt.Fprintln(p.out, msg) }
func (p *printer) Header(msg string)  { fmt.Fprintln(p.out, headerStyle.Render(msg)) }
func (p *printer) ListItem(s string)  { fmt.Fprintln(p.out, "  • "+s) }

func (p *printer) KeyValue(key, value string) {
	fmt.Fprintf(p.out, "  %s: %s\n", subtleStyle.Render(key), value)
}

// JSON prints v indented.
func (p *printer) JSON(v any) error {
	enc := json.NewEncoder(p.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type table struct {
	p       *printer
	headers []string
	rows    [][]string
}

func (p *printer) NewTable(headers ...string) *table {
	return &table{p: p, headers: headers}
}

func (t *table) AddRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

// Render prints the table with columns padded to their widest cell.
func (t *table) Render() {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}

	line := func(cells []string) string {
		parts := make([]string, len(widths))
		for i := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			parts[i] = cell + strings.Repeat(" ", widths[i]-lipgloss.Width(cell))
		}
		return strings.TrimRight(strings.Join(parts, "  "), " ")
	}

	fmt.Fprintln(t.p.out, subtleStyle.Render(line(t.headers)))
	for _, row := range t.rows {
		fmt.Fprintln(t.p.out, line(row))
	}
}
