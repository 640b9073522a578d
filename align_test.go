package statuspaper_test

import (
	"strings"
	"testing"

	"github.com/flavioheleno/statuspaper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlign(t *testing.T) {
	t.Run("singleton group gets one space", func(t *testing.T) {
		got := statuspaper.Align([]statuspaper.Row{{Label: "A", Value: "v1"}})
		assert.Equal(t, []string{"A: v1"}, got)
	})

	t.Run("groups are aligned independently", func(t *testing.T) {
		got := statuspaper.Align([]statuspaper.Row{
			{Label: "Hostname", Value: "h"},
			{Label: "IP", Value: "1.2.3.4"},
			{},
			{Label: "Booted", Value: "t1"},
		})
		require.Len(t, got, 4)
		assert.Equal(t, "Hostname: h", got[0])
		assert.Equal(t, "IP:       1.2.3.4", got[1])
		assert.Equal(t, "", got[2])
		assert.Equal(t, "Booted: t1", got[3])
	})

	t.Run("empty input", func(t *testing.T) {
		got := statuspaper.Align(nil)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("consecutive separators each yield a blank line", func(t *testing.T) {
		got := statuspaper.Align([]statuspaper.Row{
			{Label: "Disk", Value: "3/29GB"},
			{},
			{},
			{Label: "Refreshed", Value: "now"},
		})
		assert.Equal(t, []string{"Disk: 3/29GB", "", "", "Refreshed: now"}, got)
	})

	t.Run("leading separator", func(t *testing.T) {
		got := statuspaper.Align([]statuspaper.Row{{}, {Label: "A", Value: "b"}})
		assert.Equal(t, []string{"", "A: b"}, got)
	})

	t.Run("labels are measured in characters", func(t *testing.T) {
		got := statuspaper.Align([]statuspaper.Row{
			{Label: "Größe", Value: "1"},
			{Label: "Name", Value: "2"},
		})
		assert.Equal(t, []string{"Größe: 1", "Name:  2"}, got)
	})
}

func TestAlignValueColumns(t *testing.T) {
	rows := []statuspaper.Row{
		{Label: "Hostname", Value: "raspberrypi"},
		{Label: "IP Address", Value: "192.168.1.20"},
		{Label: "External IP", Value: "203.0.113.9"},
		{Label: "Disk", Value: "12/29GB"},
		{},
		{Label: "Booted", Value: "08:00:00 01/02/24"},
		{Label: "Refreshed", Value: "09:30:00 01/02/24"},
	}
	groups := [][]int{{0, 1, 2, 3}, {5, 6}}
	maxWidths := []int{len("External IP"), len("Refreshed")}

	got := statuspaper.Align(rows)
	require.Len(t, got, len(rows))

	for g, idx := range groups {
		for _, i := range idx {
			colon := strings.Index(got[i], ":")
			require.Equal(t, len(rows[i].Label), colon, "row %d", i)

			start := len(got[i]) - len(rows[i].Value)
			assert.Equal(t, maxWidths[g]+2, start, "value column of row %d", i)
			assert.Equal(t, rows[i].Value, got[i][start:])
		}
	}
	assert.Equal(t, "", got[4])
}

func TestAlignIsDeterministic(t *testing.T) {
	rows := []statuspaper.Row{
		{Label: "Hostname", Value: "pi"},
		{},
		{Label: "Refreshed", Value: "now"},
	}
	first := statuspaper.Align(rows)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, statuspaper.Align(rows))
	}
}

func TestRowIsSeparator(t *testing.T) {
	assert.True(t, statuspaper.Row{}.IsSeparator())
	assert.False(t, statuspaper.Row{Label: "A"}.IsSeparator())
	assert.False(t, statuspaper.Row{Value: "v"}.IsSeparator())
}
