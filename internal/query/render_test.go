package query

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *Result {
	return &Result{
		Columns: []string{"region", "sales"},
		Rows: [][]any{
			{"East", 100.0},
			{"West", 250.5},
		},
	}
}

func TestRender_Table(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, Render(buf, sampleResult(), "table"))

	out := buf.String()
	assert.Contains(t, out, "REGION")
	assert.Contains(t, out, "East")
	assert.Contains(t, out, "(2 rows)")
}

func TestRender_Table_Empty(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, Render(buf, &Result{Columns: []string{"a"}}, "table"))
	assert.Equal(t, "(0 rows)\n", buf.String())
}

func TestRender_JSON(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, Render(buf, sampleResult(), "json"))

	var records []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &records))
	require.Len(t, records, 2)
	assert.Equal(t, "East", records[0]["region"])
	assert.Equal(t, 250.5, records[1]["sales"])
}

func TestRender_CSV(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, Render(buf, sampleResult(), "csv"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "region,sales", lines[0])
	assert.Equal(t, "East,100", lines[1])
}

func TestRender_CSV_Escaping(t *testing.T) {
	result := &Result{
		Columns: []string{"name"},
		Rows: [][]any{
			{`Acme, "Inc"`},
		},
	}

	buf := &bytes.Buffer{}
	require.NoError(t, Render(buf, result, "csv"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `"Acme, ""Inc"""`, lines[1])
}

func TestRender_Markdown(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, Render(buf, sampleResult(), "md"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "| region | sales |", lines[0])
	assert.Equal(t, "| --- | --- |", lines[1])
	assert.Equal(t, "| East | 100 |", lines[2])
}

func TestRender_DefaultsToTable(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, Render(buf, sampleResult(), ""))
	assert.Contains(t, buf.String(), "(2 rows)")
}
