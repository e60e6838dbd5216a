package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/leadscout/internal/model"
)

func TestWriteCSV(t *testing.T) {
	leads := []model.Lead{
		{
			Name:           "Jane Doe",
			Title:          "VP Engineering",
			Company:        "Acme, Inc.",
			Location:       "Austin, TX",
			Contact:        "jane@acme.com",
			RelevanceScore: 90,
		},
		{
			Name:           `John "JJ" Smith`,
			Company:        "Globex",
			RelevanceScore: 55,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, leads))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3, "header plus one row per lead")

	assert.Equal(t, []string{"name", "title", "company", "location", "contact_url_or_email", "relevance_score"}, records[0])
	assert.Equal(t, []string{"Jane Doe", "VP Engineering", "Acme, Inc.", "Austin, TX", "jane@acme.com", "90"}, records[1])
	assert.Equal(t, `John "JJ" Smith`, records[2][0], "embedded quotes survive the round trip")
	assert.Equal(t, "55", records[2][5])
}

func TestWriteCSVQuoting(t *testing.T) {
	leads := []model.Lead{{Name: "A, B", Company: `say "hi"`, RelevanceScore: 1}}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, leads))

	out := buf.String()
	assert.Contains(t, out, `"A, B"`, "commas force quoting")
	assert.Contains(t, out, `"say ""hi"""`, "internal quotes are doubled")
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Empty(t, strings.TrimSpace(buf.String()), "no leads, no output")
}
