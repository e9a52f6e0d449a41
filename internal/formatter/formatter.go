package formatter

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/mcncl/parson/internal/models"
)

// maxKeys is how many distinct keys a non-verbose report lists.
const maxKeys = 10

// Formatter renders analyzer reports as aligned plain text
type Formatter struct {
	// Verbose lists every distinct key instead of the first maxKeys.
	Verbose bool
}

// NewFormatter creates a new Formatter instance
func NewFormatter() *Formatter {
	return &Formatter{}
}

// Format renders report as text ending in a newline
func (f *Formatter) Format(report models.Report) (string, error) {
	var b strings.Builder
	if err := f.Write(&b, report); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Write renders report to out
func (f *Formatter) Write(out io.Writer, report models.Report) error {
	w := tabwriter.NewWriter(out, 0, 8, 2, ' ', 0)
	fmt.Fprintf(w, "source:\t%s\n", report.Source)
	fmt.Fprintf(w, "format:\t%s\n", report.Format)

	switch {
	case report.JSON != nil:
		f.writeSummary(w, report.JSON)
	case report.Table != nil:
		f.writeTable(w, report.Table)
	case report.Container != nil:
		f.writeContainer(w, report.Container)
	default:
		return fmt.Errorf("report for '%s' has nothing to format", report.Source)
	}

	return w.Flush()
}

func (f *Formatter) writeSummary(w io.Writer, s *models.Summary) {
	fmt.Fprintf(w, "root:\t%s\n", s.RootKind)
	fmt.Fprintf(w, "depth:\t%d\n", s.Depth)
	fmt.Fprintf(w, "objects:\t%d\n", s.Objects)
	fmt.Fprintf(w, "arrays:\t%d\n", s.Arrays)
	fmt.Fprintf(w, "strings:\t%d\n", s.Strings)
	fmt.Fprintf(w, "numbers:\t%d\n", s.Numbers)
	fmt.Fprintf(w, "booleans:\t%d\n", s.Booleans)
	fmt.Fprintf(w, "nulls:\t%d\n", s.Nulls)
	fmt.Fprintf(w, "keys:\t%s\n", f.keyList(s.DistinctKeys))
}

func (f *Formatter) keyList(keys []string) string {
	if len(keys) == 0 {
		return "0"
	}
	shown := keys
	if !f.Verbose && len(keys) > maxKeys {
		shown = keys[:maxKeys]
	}
	list := strings.Join(shown, ", ")
	if rest := len(keys) - len(shown); rest > 0 {
		list += fmt.Sprintf(", ... %d more", rest)
	}
	return fmt.Sprintf("%d (%s)", len(keys), list)
}

func (f *Formatter) writeTable(w io.Writer, t *models.TableProfile) {
	fmt.Fprintf(w, "rows:\t%d\n", t.Rows)
	fmt.Fprintf(w, "columns:\t%d\n", len(t.Columns))
	if len(t.Columns) == 0 {
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "COLUMN\tHINT\tNULLS\tKINDS")
	for _, col := range t.Columns {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", col.Name, col.Hint, col.Nulls, kindList(col.Kinds))
	}
}

func kindList(kinds []models.KindCount) string {
	if len(kinds) == 0 {
		return "-"
	}
	parts := make([]string, len(kinds))
	for i, k := range kinds {
		parts[i] = fmt.Sprintf("%s=%d", k.Kind, k.Count)
	}
	return strings.Join(parts, ", ")
}

func (f *Formatter) writeContainer(w io.Writer, c *models.ContainerSummary) {
	fmt.Fprintf(w, "size:\t%d bytes\n", c.Size)
	fmt.Fprintf(w, "data:\t%d bytes\n", c.DataLength)
	fmt.Fprintf(w, "metadata:\t%d bytes\n", c.MetadataLength)
}
