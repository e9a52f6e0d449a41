package analyzer

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/google/uuid"

	"github.com/mcncl/parson/internal/config"
	"github.com/mcncl/parson/internal/csv"
	"github.com/mcncl/parson/internal/json"
	"github.com/mcncl/parson/internal/models"
)

// Time format patterns (ordered by specificity - most specific first)
var timePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{9}(Z|[+-]\d{2}:\d{2})$`),             // 2006-01-02T15:04:05.999999999Z
	regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?(Z|[+-]\d{2}:\d{2})$`),            // 2006-01-02T15:04:05Z
	regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?([+-]\d{2}:\d{2}|Z|[+-]\d{4})?$`), // ISO8601 variants
	regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`),                                                         // 2006-01-02
	regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}(\.\d+)?$`),                               // 2006-01-02 15:04:05
}

// Cell kinds counted per column. Numbers are split by subtype.
const (
	kindString  = "string"
	kindInteger = "integer"
	kindFloat   = "float"
	kindBoolean = "boolean"
)

// Analyzer builds structural reports of parsed documents
type Analyzer struct {
	// config holds configuration settings for analysis
	config *config.Config
}

// NewAnalyzer creates a new Analyzer instance.
func NewAnalyzer() *Analyzer {
	return &Analyzer{config: config.NewConfig()}
}

// NewAnalyzerWithConfig creates a new Analyzer instance with custom configuration.
func NewAnalyzerWithConfig(cfg *config.Config) *Analyzer {
	return &Analyzer{config: cfg}
}

// Analyze builds the report for doc. source names the input in the report.
func (a *Analyzer) Analyze(doc models.Document, source string) (models.Report, error) {
	report := models.Report{Source: source, Format: doc.Format}

	switch doc.Format {
	case models.FormatJSON:
		summary := a.SummarizeJSON(doc.JSON)
		report.JSON = &summary
	case models.FormatCSV:
		profile := a.ProfileTable(doc.Table)
		report.Table = &profile
	case models.FormatParquet:
		if doc.Footer == nil {
			return models.Report{}, fmt.Errorf("container document has no footer")
		}
		report.Container = &models.ContainerSummary{
			Size:           doc.Footer.Size,
			DataLength:     doc.Footer.DataLength(),
			MetadataLength: doc.Footer.MetadataLength,
		}
	default:
		return models.Report{}, fmt.Errorf("unexpected document format: %q", doc.Format)
	}

	return report, nil
}

// SummarizeJSON counts the values of a tree by kind and measures its depth.
func (a *Analyzer) SummarizeJSON(root json.Value) models.Summary {
	summary := models.Summary{RootKind: root.Kind().String()}
	keys := make(map[string]struct{})
	a.walk(root, 0, &summary, keys)

	summary.DistinctKeys = make([]string, 0, len(keys))
	for k := range keys {
		summary.DistinctKeys = append(summary.DistinctKeys, k)
	}
	sort.Strings(summary.DistinctKeys)

	return summary
}

// walk visits v, which sits inside depth containers.
func (a *Analyzer) walk(v json.Value, depth int, s *models.Summary, keys map[string]struct{}) {
	switch v.Kind() {
	case json.KindNull:
		s.Nulls++
	case json.KindString:
		s.Strings++
	case json.KindNumber:
		s.Numbers++
	case json.KindBoolean:
		s.Booleans++
	case json.KindObject:
		s.Objects++
		s.Depth = max(s.Depth, depth+1)
		obj, _ := v.AsObject()
		for k, child := range obj {
			keys[k] = struct{}{}
			a.walk(child, depth+1, s, keys)
		}
	case json.KindArray:
		s.Arrays++
		s.Depth = max(s.Depth, depth+1)
		arr, _ := v.AsArray()
		for _, child := range arr {
			a.walk(child, depth+1, s, keys)
		}
	}
}

// ProfileTable profiles every column of t in header order. A column name
// that appears twice in the header is profiled once.
func (a *Analyzer) ProfileTable(t csv.Table) models.TableProfile {
	profile := models.TableProfile{Rows: len(t.Rows), Columns: make([]models.ColumnProfile, 0, len(t.Columns))}

	seen := make(map[string]struct{}, len(t.Columns))
	for _, name := range t.Columns {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		profile.Columns = append(profile.Columns, a.profileColumn(name, t.Rows))
	}

	return profile
}

func (a *Analyzer) profileColumn(name string, rows []csv.Row) models.ColumnProfile {
	col := models.ColumnProfile{Name: name}
	counts := make(map[string]int)
	var order, strs []string

	for _, row := range rows {
		v := row[name]
		kind := cellKind(v)
		if kind == "" {
			col.Nulls++
			continue
		}
		if counts[kind] == 0 {
			order = append(order, kind)
		}
		counts[kind]++
		if kind == kindString {
			s, _ := v.AsString()
			strs = append(strs, s)
		}
	}

	col.Kinds = make([]models.KindCount, 0, len(order))
	for _, kind := range order {
		col.Kinds = append(col.Kinds, models.KindCount{Kind: kind, Count: counts[kind]})
	}

	if mapping, ok := a.config.FindHintMapping(name); ok {
		col.Hint = mapping.Hint
	} else {
		col.Hint = a.hint(counts, strs)
	}
	return col
}

// cellKind names the kind of a cell, or "" for null.
func cellKind(v csv.Value) string {
	switch v.Kind() {
	case csv.KindString:
		return kindString
	case csv.KindBoolean:
		return kindBoolean
	case csv.KindNumber:
		n, _ := v.AsNumber()
		if n.Kind == csv.NumberInt {
			return kindInteger
		}
		return kindFloat
	}
	return ""
}

// hint picks the narrowest description that fits every non-null cell.
func (a *Analyzer) hint(counts map[string]int, strs []string) string {
	switch {
	case len(counts) == 0:
		return models.HintEmpty
	case len(counts) == 1 && counts[kindString] > 0:
		return a.analyzeStrings(strs)
	case len(counts) == 1 && counts[kindInteger] > 0:
		return models.HintInteger
	case len(counts) == 1 && counts[kindBoolean] > 0:
		return models.HintBoolean
	case counts[kindFloat] > 0 && counts[kindString] == 0 && counts[kindBoolean] == 0:
		return models.HintFloat
	}
	return models.HintMixed
}

// analyzeStrings narrows a column of strings to uuid or time when every
// value has that form.
func (a *Analyzer) analyzeStrings(strs []string) string {
	if a.config.Analysis.DetectUUIDs && all(strs, isUUID) {
		return models.HintUUID
	}
	if a.config.Analysis.DetectTimes && all(strs, isTime) {
		return models.HintTime
	}
	return models.HintString
}

func all(strs []string, pred func(string) bool) bool {
	for _, s := range strs {
		if !pred(s) {
			return false
		}
	}
	return len(strs) > 0
}

// isUUID accepts the canonical 36 character form only.
func isUUID(s string) bool {
	return len(s) == 36 && uuid.Validate(s) == nil
}

func isTime(s string) bool {
	for _, re := range timePatterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}
