// Package report renders an assessment as a self-contained HTML document.
// The document inlines all styling and carries no scripts or external assets,
// so it can be archived or shared as a single file.
package report

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/geoqa/geoqa/internal/contract"
	"github.com/geoqa/geoqa/schema"
)

// DefaultFileName is where the report lands when no output file is configured.
const DefaultFileName = "geoqa_report.html"

//go:embed report.gohtml
var reportTemplate string

var tmpl = template.Must(template.New("report").Parse(reportTemplate))

// reportData is the fully precomputed template payload. All presentation
// decisions (color classes, number formatting, row ordering) happen in Go so
// the template stays flat.
type reportData struct {
	Dataset      string
	Source       string
	GeneratedAt  string
	Score        string
	ScoreClass   string
	Label        string
	FeatureCount int
	ColumnCount  int
	DominantType string
	CRS          string

	Components []componentRow
	Checks     []checkRow
	Geometry   geometrySection
	TypeRows   []typeRow
	Spatial    spatialSection
	Measures   []measureRow
	Columns    []columnRow
	Worst      []worstRow
}

type componentRow struct {
	Name     string
	Weight   string
	Raw      string
	Weighted string
	BarClass string
	BarWidth int
}

type checkRow struct {
	Name        string
	Severity    string
	Status      string
	StatusClass string
	StatusMark  string
	Issues      int
	Detail      string
}

type geometrySection struct {
	Total       int
	Valid       int
	Invalid     int
	Missing     int
	Empty       int
	Duplicates  int
	MixedTypes  bool
	HasVertices bool
	VertexTotal int
	VertexMean  string
}

type typeRow struct {
	Type  string
	Count int
	Pct   string
}

type spatialSection struct {
	HasBounds  bool
	MinX       string
	MinY       string
	MaxX       string
	MaxY       string
	CenterX    string
	CenterY    string
	HasCRS     bool
	CRSCode    string
	CRSName    string
	CRSUnits   string
	Geographic bool
}

type measureRow struct {
	Type  string
	Kind  string
	Count int
	Min   string
	Max   string
	Mean  string
	Total string
}

type columnRow struct {
	Name         string
	Kind         string
	Completeness string
	BarClass     string
	BarWidth     int
	Nulls        int
	Distinct     int
}

type worstRow struct {
	Rank    int
	Name    string
	NullPct string
	Nulls   int
}

// Write renders the HTML report for one assessment. worstColumns is the
// null-percentage ranking shown in its own section, worst first; entries
// without nulls are dropped from the ranking.
func Write(w io.Writer, result *schema.AssessmentResult, worstColumns []schema.AttributeColumnStats, cfg *contract.Config) error {
	if err := tmpl.Execute(w, buildReportData(result, worstColumns, cfg)); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}

// buildReportData assembles the template payload from an assessment result.
func buildReportData(result *schema.AssessmentResult, worstColumns []schema.AttributeColumnStats, cfg *contract.Config) reportData {
	fmtFloat := func(v float64) string { return fmt.Sprintf("%.*f", cfg.Precision, v) }

	data := reportData{
		Dataset:      result.Dataset,
		Source:       result.Source,
		GeneratedAt:  time.Now().Format("2006-01-02 15:04:05"),
		Score:        fmtFloat(result.Score.Value),
		ScoreClass:   scoreClass(result.Score.Value),
		Label:        contract.GetPlainLabel(result.Score.Value),
		FeatureCount: result.FeatureCount,
		ColumnCount:  result.ColumnCount,
		DominantType: dominantTypeDisplay(result.Spatial.DominantType),
		CRS:          crsDisplay(result.Spatial.CRS),
	}

	for _, key := range schema.AllComponents {
		comp, ok := result.Score.Components[key]
		if !ok {
			continue
		}
		data.Components = append(data.Components, componentRow{
			Name:     string(key),
			Weight:   fmt.Sprintf("%.2f", comp.Weight),
			Raw:      fmtFloat(comp.Raw),
			Weighted: fmtFloat(comp.Weighted),
			BarClass: barClass(comp.Raw),
			BarWidth: barWidth(comp.Raw),
		})
	}

	for _, c := range result.Checks {
		data.Checks = append(data.Checks, checkRow{
			Name:        string(c.Name),
			Severity:    string(c.Severity),
			Status:      strings.ToUpper(string(c.Status)),
			StatusClass: "status-" + string(c.Status),
			StatusMark:  statusMark(c.Status),
			Issues:      c.Issues,
			Detail:      c.Detail,
		})
	}

	g := result.Geometry
	data.Geometry = geometrySection{
		Total:      g.Total,
		Valid:      g.ValidCount,
		Invalid:    g.InvalidCount,
		Missing:    g.MissingCount,
		Empty:      g.EmptyCount,
		Duplicates: g.DuplicateCount,
		MixedTypes: g.MixedTypes,
	}
	if g.Vertices != nil {
		data.Geometry.HasVertices = true
		data.Geometry.VertexTotal = g.Vertices.Total
		data.Geometry.VertexMean = fmtFloat(g.Vertices.Mean)
	}
	data.TypeRows = typeRows(g, cfg.Precision)

	sp := result.Spatial
	if sp.Bounds != nil {
		data.Spatial.HasBounds = true
		data.Spatial.MinX = formatCoord(sp.Bounds.MinX)
		data.Spatial.MinY = formatCoord(sp.Bounds.MinY)
		data.Spatial.MaxX = formatCoord(sp.Bounds.MaxX)
		data.Spatial.MaxY = formatCoord(sp.Bounds.MaxY)
		data.Spatial.CenterX = formatCoord(sp.Bounds.CenterX)
		data.Spatial.CenterY = formatCoord(sp.Bounds.CenterY)
	}
	if sp.CRS != nil {
		data.Spatial.HasCRS = true
		data.Spatial.CRSCode = sp.CRS.Code
		data.Spatial.CRSName = sp.CRS.Name
		data.Spatial.CRSUnits = sp.CRS.Units
		data.Spatial.Geographic = sp.CRS.Geographic
	}
	data.Measures = measureRows(sp)

	for _, col := range result.Columns {
		completeness := 100 - col.NullPct
		data.Columns = append(data.Columns, columnRow{
			Name:         col.Name,
			Kind:         string(col.Kind),
			Completeness: fmtFloat(completeness),
			BarClass:     barClass(completeness),
			BarWidth:     barWidth(completeness),
			Nulls:        col.NullCount,
			Distinct:     col.DistinctCount,
		})
	}

	rank := 0
	for _, col := range worstColumns {
		if col.NullCount == 0 {
			continue
		}
		rank++
		data.Worst = append(data.Worst, worstRow{
			Rank:    rank,
			Name:    col.Name,
			NullPct: fmtFloat(col.NullPct),
			Nulls:   col.NullCount,
		})
	}

	return data
}

// scoreClass picks the badge color class for the overall score.
func scoreClass(score float64) string {
	switch {
	case score >= 80:
		return "score-high"
	case score >= 60:
		return "score-medium"
	default:
		return "score-low"
	}
}

// barClass picks the fill color class for a percentage bar.
func barClass(pct float64) string {
	switch {
	case pct >= 90:
		return "progress-high"
	case pct >= 70:
		return "progress-medium"
	default:
		return "progress-low"
	}
}

// barWidth clamps a percentage into a whole-number CSS width.
func barWidth(pct float64) int {
	return min(max(int(math.Round(pct)), 0), 100)
}

// statusMark returns the symbol shown next to a check status.
func statusMark(status schema.CheckStatus) string {
	switch status {
	case schema.PassStatus:
		return "✅"
	case schema.WarnStatus:
		return "⚠️"
	default:
		return "❌"
	}
}

// dominantTypeDisplay renders the geometry overview cell.
func dominantTypeDisplay(t schema.GeometryType) string {
	if t == "" {
		return "None"
	}
	return string(t)
}

// crsDisplay renders the CRS overview cell.
func crsDisplay(crs *schema.CRSInfo) string {
	if crs == nil {
		return "Not declared"
	}
	return crs.Code
}

// formatCoord renders a native-unit coordinate compactly.
func formatCoord(v float64) string {
	return fmt.Sprintf("%g", v)
}

// typeRows orders the geometry type histogram by descending count with ties
// broken lexicographically.
func typeRows(g schema.GeometrySummary, precision int) []typeRow {
	types := make([]schema.GeometryType, 0, len(g.TypeHistogram))
	for t := range g.TypeHistogram {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool {
		if g.TypeHistogram[types[i]] != g.TypeHistogram[types[j]] {
			return g.TypeHistogram[types[i]] > g.TypeHistogram[types[j]]
		}
		return types[i] < types[j]
	})

	rows := make([]typeRow, 0, len(types))
	for _, t := range types {
		count := g.TypeHistogram[t]
		pct := 0.0
		if g.Total > 0 {
			pct = float64(count) / float64(g.Total) * 100
		}
		rows = append(rows, typeRow{
			Type:  string(t),
			Count: count,
			Pct:   fmt.Sprintf("%.*f", precision, pct),
		})
	}
	return rows
}

// measureRows flattens the per-type measure summaries in stable type order.
func measureRows(sp schema.SpatialSummary) []measureRow {
	types := make([]schema.GeometryType, 0, len(sp.Measures))
	for t := range sp.Measures {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

	var rows []measureRow
	for _, t := range types {
		for _, m := range sp.Measures[t] {
			rows = append(rows, measureRow{
				Type:  string(t),
				Kind:  m.Kind,
				Count: m.Count,
				Min:   formatCoord(m.Min),
				Max:   formatCoord(m.Max),
				Mean:  formatCoord(m.Mean),
				Total: formatCoord(m.Total),
			})
		}
	}
	return rows
}
