package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := RenderTable(
		[]string{"Time", "Title"},
		[][]string{
			{"09:00-10:00", "Deep work"},
			{"10:00-10:30", "Email"},
		},
	)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.Contains(t, lines[2], "Deep work")
	assert.Contains(t, lines[3], "Email")
}

func TestRenderTable_EmptyHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, nil))
}

func TestRenderTable_ShortRows(t *testing.T) {
	out := RenderTable([]string{"A", "B", "C"}, [][]string{{"only"}})
	assert.Contains(t, out, "only")
}

func TestStatusIndicator(t *testing.T) {
	assert.Contains(t, StatusIndicator("ok"), "OK")
	assert.Contains(t, StatusIndicator("error"), "ERROR")
	assert.Contains(t, StatusIndicator("partial"), "PARTIAL")
}

func TestHeader_Underlines(t *testing.T) {
	out := Header("Schedule")
	parts := strings.Split(out, "\n")
	assert.Len(t, parts, 2)
	assert.Contains(t, parts[0], "SCHEDULE")
}
