package schema

// ValueCount is one (value, frequency) pair in a column's top values.
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// NumericSummary holds descriptive statistics for a uniformly numeric column.
// Values are rounded to four decimals for stable, comparable output.
type NumericSummary struct {
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	Mean      float64 `json:"mean"`
	Median    float64 `json:"median"`
	Std       float64 `json:"std"`
	Q25       float64 `json:"q25"`
	Q75       float64 `json:"q75"`
	Zeros     int     `json:"zeros"`
	Negatives int     `json:"negatives"`
}

// TextSummary holds string length statistics for a text column.
type TextSummary struct {
	MinLength  int     `json:"min_length"`
	MaxLength  int     `json:"max_length"`
	MeanLength float64 `json:"mean_length"`
}

// AttributeColumnStats is the per-column aggregate produced by the attribute
// profiler. NullCount + NonNullCount always equals the dataset feature count.
type AttributeColumnStats struct {
	Name          string          `json:"name"`
	Kind          ColumnKind      `json:"kind"`
	NullCount     int             `json:"null_count"`
	NonNullCount  int             `json:"non_null_count"`
	NullPct       float64         `json:"null_pct"`
	DistinctCount int             `json:"distinct_count"`
	Numeric       *NumericSummary `json:"numeric,omitempty"`
	Text          *TextSummary    `json:"text,omitempty"`
	TopValues     []ValueCount    `json:"top_values,omitempty"`
}
