package core

import (
	"fmt"

	"github.com/geoqa/geoqa/schema"
)

// checkLowThreshold is the raw fraction below which a check trips for its
// severity level.
const checkLowThreshold = 0.90

// buildChecks evaluates the fixed battery of quality checks in report order.
// A dataset with zero features degrades every check uniformly instead of
// dividing by zero.
func buildChecks(geo schema.GeometrySummary, columns []schema.AttributeColumnStats, crs *schema.CRSInfo) []schema.CheckResult {
	checks := make([]schema.CheckResult, 0, len(schema.AllChecks))

	if geo.Total == 0 {
		for _, name := range schema.AllChecks {
			severity := schema.CheckSeverities[name]
			checks = append(checks, schema.CheckResult{
				Name:     name,
				Severity: severity,
				Status:   statusFor(0, severity, 0),
				Detail:   "no features",
			})
		}
		return checks
	}

	for _, name := range schema.AllChecks {
		var raw float64
		var issues int
		var detail string

		switch name {
		case schema.CheckGeometryValidity:
			raw, issues, detail = validityCheck(geo)
		case schema.CheckEmptyGeometries:
			raw, issues, detail = emptyCheck(geo)
		case schema.CheckDuplicateGeometries:
			raw, issues, detail = duplicateCheck(geo)
		case schema.CheckCRSDefined:
			raw, issues, detail = crsCheck(crs)
		case schema.CheckAttributeCompleteness:
			raw, issues, detail = completenessCheck(columns, geo.Total)
		case schema.CheckGeometryTypes:
			raw, issues, detail = typeCheck(geo)
		}

		severity := schema.CheckSeverities[name]
		checks = append(checks, schema.CheckResult{
			Name:     name,
			Severity: severity,
			Status:   statusFor(raw, severity, issues),
			Issues:   issues,
			Detail:   detail,
		})
	}
	return checks
}

// statusFor maps a check's raw fraction and issue count to a status.
// High-severity checks fail below the threshold while medium and low ones
// warn. A check above the threshold still warns when it found issues.
func statusFor(raw float64, severity schema.Severity, issues int) schema.CheckStatus {
	if raw < checkLowThreshold {
		if severity == schema.HighSeverity {
			return schema.FailStatus
		}
		return schema.WarnStatus
	}
	if issues > 0 {
		return schema.WarnStatus
	}
	return schema.PassStatus
}

func validityCheck(geo schema.GeometrySummary) (float64, int, string) {
	raw := float64(geo.ValidCount) / float64(geo.Total)
	issues := geo.InvalidCount + geo.MissingCount
	detail := fmt.Sprintf("%d of %d geometries valid", geo.ValidCount, geo.Total)
	if issues > 0 {
		detail = fmt.Sprintf("%s (%d invalid, %d missing)", detail, geo.InvalidCount, geo.MissingCount)
	}
	return raw, issues, detail
}

func emptyCheck(geo schema.GeometrySummary) (float64, int, string) {
	raw := float64(geo.Total-geo.EmptyCount) / float64(geo.Total)
	if geo.EmptyCount == 0 {
		return raw, 0, "no empty geometries"
	}
	return raw, geo.EmptyCount, fmt.Sprintf("%d empty geometries", geo.EmptyCount)
}

func duplicateCheck(geo schema.GeometrySummary) (float64, int, string) {
	raw := float64(geo.Total-geo.DuplicateCount) / float64(geo.Total)
	if geo.DuplicateCount == 0 {
		return raw, 0, "no duplicate geometries"
	}
	detail := fmt.Sprintf("%d duplicate features in %d groups", geo.DuplicateCount, len(geo.DuplicateGroups))
	return raw, geo.DuplicateCount, detail
}

func crsCheck(crs *schema.CRSInfo) (float64, int, string) {
	if crs == nil {
		return 0.0, 1, "no CRS declared"
	}
	return 1.0, 0, fmt.Sprintf("CRS: %s", crs.Code)
}

func completenessCheck(columns []schema.AttributeColumnStats, total int) (float64, int, string) {
	if len(columns) == 0 {
		return 1.0, 0, "no attribute columns"
	}

	raw := completenessFraction(columns, total)
	withNulls := 0
	for _, col := range columns {
		if col.NullCount > 0 {
			withNulls++
		}
	}
	if withNulls == 0 {
		return raw, 0, "all attribute values present"
	}
	return raw, withNulls, fmt.Sprintf("%d of %d columns contain nulls", withNulls, len(columns))
}

func typeCheck(geo schema.GeometrySummary) (float64, int, string) {
	parsed := 0
	dominantCount := 0
	for _, count := range geo.TypeHistogram {
		parsed += count
		dominantCount = max(dominantCount, count)
	}
	if parsed == 0 {
		return 0, 0, "no parsed geometries"
	}

	dominant := dominantType(geo.TypeHistogram)
	if !geo.MixedTypes {
		return 1.0, 0, fmt.Sprintf("uniform type %s", dominant)
	}

	issues := parsed - dominantCount
	raw := float64(dominantCount) / float64(parsed)
	return raw, issues, fmt.Sprintf("%d of %d features deviate from dominant type %s", issues, parsed, dominant)
}
