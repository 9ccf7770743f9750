// Package changes defines the typed change records produced by the
// comparison engines and the aggregate comparison result.
//
// The JSON field names of Result and Summary are a contract with the
// downstream report layer and must not change.
package changes

// Category classifies a change record by the kind of content it concerns.
type Category string

const (
	CategoryText       Category = "text"
	CategoryFormatting Category = "formatting"
	CategoryTable      Category = "table"
	CategoryImage      Category = "image"
	CategoryStructural Category = "structural"
)

// Type classifies how the content changed.
type Type string

const (
	Added    Type = "added"
	Deleted  Type = "deleted"
	Modified Type = "modified"
)

// FieldDelta records one formatting attribute that differs between versions.
// An empty side means the attribute is unspecified in that version.
type FieldDelta struct {
	Name   string `json:"name"`
	Before string `json:"before"`
	After  string `json:"after"`
}

// Record is one reported difference between two document versions.
type Record struct {
	Category Category `json:"category"`
	Type     Type     `json:"change_type"`

	// Location is a human-addressable position, e.g. "paragraph 3",
	// "table 1, cell B2", "image 0", "sheet count".
	Location string `json:"location"`

	Before *string `json:"before,omitempty"`
	After  *string `json:"after,omitempty"`

	// Detail carries an engine-specific diagnostic, e.g. a dimension
	// delta or the reason a sub-comparison could not be completed.
	Detail string `json:"detail,omitempty"`

	// Similarity is the score that drove a modified/replaced decision,
	// where the producing engine computes one.
	Similarity *float64 `json:"similarity,omitempty"`

	// Fields lists the differing attributes for formatting records.
	Fields []FieldDelta `json:"fields,omitempty"`

	// AddedTerms and DeletedTerms hold word-level segments for modified
	// text records.
	AddedTerms   []string `json:"added_terms,omitempty"`
	DeletedTerms []string `json:"deleted_terms,omitempty"`

	// Err is set when this record stands in for a sub-comparison that
	// could not be completed (e.g. an undecodable image). The rest of
	// the comparison is unaffected.
	Err string `json:"error,omitempty"`
}

// Summary holds per-category change counts.
type Summary struct {
	TotalChanges           int `json:"total_changes"`
	TextChangesCount       int `json:"text_changes_count"`
	FormattingChangesCount int `json:"formatting_changes_count"`
	TableChangesCount      int `json:"table_changes_count"`
	ImageChangesCount      int `json:"image_changes_count"`
	StructuralChangesCount int `json:"structural_changes_count"`
}

// Result is the complete, immutable outcome of one comparison. Each
// category slice preserves document order.
type Result struct {
	TextChanges       []Record `json:"text_changes"`
	FormattingChanges []Record `json:"formatting_changes"`
	TableChanges      []Record `json:"table_changes"`
	ImageChanges      []Record `json:"image_changes"`
	StructuralChanges []Record `json:"structural_changes"`
	Summary           Summary  `json:"summary"`
}

// NewResult creates an empty result with non-nil category slices so the
// serialized form always contains every category.
func NewResult() *Result {
	return &Result{
		TextChanges:       []Record{},
		FormattingChanges: []Record{},
		TableChanges:      []Record{},
		ImageChanges:      []Record{},
		StructuralChanges: []Record{},
	}
}

// Add routes a record into its category slice.
func (r *Result) Add(rec Record) {
	switch rec.Category {
	case CategoryText:
		r.TextChanges = append(r.TextChanges, rec)
	case CategoryFormatting:
		r.FormattingChanges = append(r.FormattingChanges, rec)
	case CategoryTable:
		r.TableChanges = append(r.TableChanges, rec)
	case CategoryImage:
		r.ImageChanges = append(r.ImageChanges, rec)
	case CategoryStructural:
		r.StructuralChanges = append(r.StructuralChanges, rec)
	}
}

// AddAll routes a batch of records.
func (r *Result) AddAll(recs []Record) {
	for _, rec := range recs {
		r.Add(rec)
	}
}

// ComputeSummary recounts all categories. Call once after aggregation.
func (r *Result) ComputeSummary() {
	r.Summary = Summary{
		TextChangesCount:       len(r.TextChanges),
		FormattingChangesCount: len(r.FormattingChanges),
		TableChangesCount:      len(r.TableChanges),
		ImageChangesCount:      len(r.ImageChanges),
		StructuralChangesCount: len(r.StructuralChanges),
	}
	r.Summary.TotalChanges = r.Summary.TextChangesCount +
		r.Summary.FormattingChangesCount +
		r.Summary.TableChangesCount +
		r.Summary.ImageChangesCount +
		r.Summary.StructuralChangesCount
}

// Empty reports whether no changes were recorded.
func (r *Result) Empty() bool {
	return len(r.TextChanges) == 0 && len(r.FormattingChanges) == 0 &&
		len(r.TableChanges) == 0 && len(r.ImageChanges) == 0 &&
		len(r.StructuralChanges) == 0
}

// Ptr returns a pointer to s. Engines use it to populate the optional
// Before and After fields.
func Ptr(s string) *string { return &s }
