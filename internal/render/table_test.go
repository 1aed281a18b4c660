package render

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirbrooks/tasklist/internal/store"
)

func fixedNow(y int, m time.Month, d int) func() time.Time {
	return func() time.Time { return time.Date(y, m, d, 15, 4, 5, 0, time.Local) }
}

func task(t *testing.T, p, date, clock string, lines ...string) store.Task {
	t.Helper()
	pr, err := store.ParsePriority(p)
	require.NoError(t, err)
	d, err := store.ParseDate(date)
	require.NoError(t, err)
	c, err := store.ParseClock(clock)
	require.NoError(t, err)
	return store.Task{Priority: pr, Date: d, Time: c, Lines: lines}
}

func TestDueStatusBoundaries(t *testing.T) {
	today := store.Date{Year: 2024, Month: 3, Day: 1}
	assert.Equal(t, DueToday, DueStatusOf(today, today))
	assert.Equal(t, DueIncoming, DueStatusOf(today, store.Date{Year: 2024, Month: 3, Day: 2}))
	assert.Equal(t, DueOverdue, DueStatusOf(today, store.Date{Year: 2024, Month: 2, Day: 29}))
	assert.Equal(t, DueIncoming, DueStatusOf(today, store.Date{Year: 2030, Month: 1, Day: 1}))
	assert.Equal(t, DueOverdue, DueStatusOf(today, store.Date{Year: 1999, Month: 12, Day: 31}))
}

func TestWrapBoundaries(t *testing.T) {
	assert.Len(t, Wrap(strings.Repeat("a", 44), TextWidth), 1)
	assert.Len(t, Wrap(strings.Repeat("a", 45), TextWidth), 2)
	assert.Len(t, Wrap(strings.Repeat("a", 88), TextWidth), 2)
	assert.Len(t, Wrap(strings.Repeat("a", 89), TextWidth), 3)
	assert.Equal(t, []string{""}, Wrap("", TextWidth))

	chunks := Wrap(strings.Repeat("a", 44)+"b", TextWidth)
	assert.Equal(t, "b", chunks[1])
}

func TestWrapCountsRunes(t *testing.T) {
	line := strings.Repeat("é", 45)
	chunks := Wrap(line, TextWidth)
	require.Len(t, chunks, 2)
	assert.Equal(t, "é", chunks[1])
}

func renderPlain(t *testing.T, now func() time.Time, tasks ...store.Task) string {
	t.Helper()
	tbl := NewTable(NewPalette(false))
	tbl.Now = now
	var b strings.Builder
	require.NoError(t, tbl.Render(&b, tasks))
	return b.String()
}

func TestRenderLayout(t *testing.T) {
	out := renderPlain(t, fixedNow(2024, 3, 1),
		task(t, "H", "2024-03-01", "9:5", "Buy milk"),
		task(t, "L", "2024-03-09", "18:00", strings.Repeat("x", 45), "second line"),
	)
	want := strings.Join([]string{
		"+----+------------+-------+---+---+--------------------------------------------+",
		"| N  |    Date    | Time  | P | D |                   Task                     |",
		"+----+------------+-------+---+---+--------------------------------------------+",
		"| 1  | 2024-03-01 | 09:05 |   |   |Buy milk                                    |",
		"+----+------------+-------+---+---+--------------------------------------------+",
		"| 2  | 2024-03-09 | 18:00 |   |   |" + strings.Repeat("x", 44) + "|",
		"|    |            |       |   |   |x                                           |",
		"|    |            |       |   |   |second line                                 |",
		"+----+------------+-------+---+---+--------------------------------------------+",
		"",
	}, "\n")
	assert.Equal(t, want, out)
}

func rowsFor(t *testing.T, line string) int {
	out := renderPlain(t, fixedNow(2024, 1, 1), task(t, "N", "2024-01-01", "1:1", line))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// header block (3) and closing border (1)
	return len(lines) - 4
}

func TestRenderWrapRows(t *testing.T) {
	assert.Equal(t, 1, rowsFor(t, strings.Repeat("a", 44)))
	assert.Equal(t, 2, rowsFor(t, strings.Repeat("a", 45)))
	assert.Equal(t, 2, rowsFor(t, strings.Repeat("a", 88)))
	assert.Equal(t, 3, rowsFor(t, strings.Repeat("a", 89)))
}

func TestRenderColors(t *testing.T) {
	p := NewPalette(true)
	tbl := NewTable(p)
	tbl.Now = fixedNow(2024, 3, 1)

	var b strings.Builder
	require.NoError(t, tbl.Render(&b, []store.Task{task(t, "H", "2024-03-01", "9:5", "Buy milk")}))
	out := b.String()

	assert.Contains(t, out, "\x1b[103m \x1b[0m")
	assert.Contains(t, out, "| "+p.Priority(store.PriorityHigh)+" | "+p.Due(DueToday)+" |")
}

func TestRenderDueStatusFollowsClock(t *testing.T) {
	p := NewPalette(true)
	tk := task(t, "C", "2024-03-01", "12:00", "deadline")
	for _, tt := range []struct {
		now  func() time.Time
		want DueStatus
	}{
		{fixedNow(2024, 2, 29), DueIncoming},
		{fixedNow(2024, 3, 1), DueToday},
		{fixedNow(2024, 3, 2), DueOverdue},
	} {
		tbl := NewTable(p)
		tbl.Now = tt.now
		var b strings.Builder
		require.NoError(t, tbl.Render(&b, []store.Task{tk}))
		assert.Contains(t, b.String(), "| "+p.Priority(store.PriorityCritical)+" | "+p.Due(tt.want)+" |", tt.want.String())
	}
}

func TestPaletteDistinctColors(t *testing.T) {
	p := NewPalette(true)
	seen := map[string]store.Priority{}
	for _, pr := range []store.Priority{store.PriorityCritical, store.PriorityHigh, store.PriorityNormal, store.PriorityLow} {
		s := p.Priority(pr)
		_, dup := seen[s]
		assert.False(t, dup, "priority %s shares a color", pr)
		seen[s] = pr
	}
	assert.Equal(t, p.Priority(store.PriorityCritical), p.Due(DueOverdue))
	assert.Equal(t, p.Priority(store.PriorityNormal), p.Due(DueIncoming))
	assert.Equal(t, p.Priority(store.PriorityHigh), p.Due(DueToday))
}

func TestPaletteWithoutColor(t *testing.T) {
	p := NewPalette(false)
	assert.Equal(t, " ", p.Priority(store.PriorityCritical))
	assert.Equal(t, " ", p.Due(DueOverdue))
}
