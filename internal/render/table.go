// Package render draws the task list as a fixed-width terminal table.
package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/amirbrooks/tasklist/internal/store"
)

// TextWidth is the number of runes of body text per table row.
const TextWidth = 44

const (
	border = "+----+------------+-------+---+---+--------------------------------------------+"
	header = "| N  |    Date    | Time  | P | D |                   Task                     |"
	// Leading columns of a continuation row.
	blankCells = "|    |            |       |   |   |"
)

// DueStatus classifies a due date against the current date.
type DueStatus int

const (
	DueIncoming DueStatus = iota
	DueToday
	DueOverdue
)

func (s DueStatus) String() string {
	switch s {
	case DueIncoming:
		return "incoming"
	case DueToday:
		return "today"
	case DueOverdue:
		return "overdue"
	default:
		return "unknown"
	}
}

// DueStatusOf compares the due date with today.
func DueStatusOf(today, due store.Date) DueStatus {
	switch n := today.DaysUntil(due); {
	case n > 0:
		return DueIncoming
	case n == 0:
		return DueToday
	default:
		return DueOverdue
	}
}

// Wrap cuts s into chunks of at most width runes. It always returns at least
// one chunk.
func Wrap(s string, width int) []string {
	r := []rune(s)
	if len(r) <= width || width <= 0 {
		return []string{s}
	}
	chunks := make([]string, 0, (len(r)+width-1)/width)
	for len(r) > width {
		chunks = append(chunks, string(r[:width]))
		r = r[width:]
	}
	return append(chunks, string(r))
}

// Table renders tasks. Due status is computed on every Render from Now.
type Table struct {
	Palette Palette
	Now     func() time.Time
}

func NewTable(p Palette) *Table {
	return &Table{Palette: p, Now: time.Now}
}

func (t *Table) Render(w io.Writer, tasks []store.Task) error {
	var b strings.Builder
	b.WriteString(border + "\n" + header + "\n" + border + "\n")
	today := store.DateOf(t.Now())
	for i, task := range tasks {
		t.writeTask(&b, i+1, task, today)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func (t *Table) writeTask(b *strings.Builder, n int, task store.Task, today store.Date) {
	var chunks []string
	for _, line := range task.Lines {
		chunks = append(chunks, Wrap(line, TextWidth)...)
	}
	if len(chunks) == 0 {
		chunks = []string{""}
	}
	fmt.Fprintf(b, "| %-3d| %s | %s | %s | %s |%-*s|\n",
		n, task.Date, task.Time,
		t.Palette.Priority(task.Priority),
		t.Palette.Due(DueStatusOf(today, task.Date)),
		TextWidth, chunks[0])
	for _, c := range chunks[1:] {
		fmt.Fprintf(b, "%s%-*s|\n", blankCells, TextWidth, c)
	}
	b.WriteString(border + "\n")
}
