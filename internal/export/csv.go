// Package export renders lead lists for consumers outside the API.
package export

import (
	"encoding/csv"
	"io"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"

	"github.com/sells-group/leadscout/internal/model"
)

// csvLead pins the canonical column order for exports, independent of the
// Lead struct's JSON layout.
type csvLead struct {
	Name           string `csv:"name"`
	Title          string `csv:"title"`
	Company        string `csv:"company"`
	Location       string `csv:"location"`
	Contact        string `csv:"contact_url_or_email"`
	RelevanceScore int    `csv:"relevance_score"`
}

// WriteCSV writes leads as CSV with a header row. Field quoting (including
// doubled internal quotes) follows RFC 4180 via encoding/csv.
func WriteCSV(w io.Writer, leads []model.Lead) error {
	cw := csv.NewWriter(w)
	enc := csvutil.NewEncoder(cw)

	for _, l := range leads {
		row := csvLead{
			Name:           l.Name,
			Title:          l.Title,
			Company:        l.Company,
			Location:       l.Location,
			Contact:        l.Contact,
			RelevanceScore: l.RelevanceScore,
		}
		if err := enc.Encode(row); err != nil {
			return eris.Wrap(err, "export: encode csv row")
		}
	}

	cw.Flush()
	return eris.Wrap(cw.Error(), "export: flush csv")
}
