package checks

import (
	"context"

	"world-manager/core/source"
	"world-manager/feature/world/formats"
)

// Document names one authored world document and the collection aliases
// its records may sit under.
type Document struct {
	Name    string
	Aliases []string
	// Optional documents may be absent without raising an alarm; the
	// standalone exits document is authored by only some worlds.
	Optional bool
}

// DocumentReport is the outcome of checking one authored document.
type DocumentReport struct {
	Name    string `json:"name"`
	Status  string `json:"status"`
	Entries int    `json:"entries"`
	Error   string `json:"error,omitempty"`
}

// Healthy reports whether the document is usable or safely absent.
func (r DocumentReport) Healthy() bool {
	return r.Status == "ok" || r.Status == "skipped"
}

// CheckDocuments verifies that each authored document can be read,
// parses as a world document, and yields at least one record entry.
func CheckDocuments(ctx context.Context, src source.Loader, docs []Document) []DocumentReport {
	reports := make([]DocumentReport, 0, len(docs))
	for _, doc := range docs {
		reports = append(reports, checkDocument(ctx, src, doc))
	}
	return reports
}

func checkDocument(ctx context.Context, src source.Loader, doc Document) DocumentReport {
	report := DocumentReport{Name: doc.Name, Status: "ok"}

	data, err := src.Read(ctx, doc.Name)
	if err != nil {
		if doc.Optional {
			report.Status = "skipped"
			return report
		}
		report.Status = "missing"
		report.Error = err.Error()
		return report
	}

	parsed, err := formats.Decode(data)
	if err != nil {
		report.Status = "invalid"
		report.Error = err.Error()
		return report
	}

	report.Entries = len(formats.Collection(parsed, doc.Aliases...))
	if report.Entries == 0 {
		report.Status = "empty"
	}
	return report
}
