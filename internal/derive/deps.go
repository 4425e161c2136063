package derive

// Dependency column sets for each derived field. The lifecycle core consults
// these when edits arrive: a change to any member forces recomputation of
// that derived field only. Column names match the store schema.
var (
	DescriptionDeps = newColumnSet("specification")

	SynonymDeps = newColumnSet(
		"item", "specification", "description", "brand",
		"quantity", "unit", "packaging",
		"commercial_qty", "commercial_packaging",
	)

	KeywordsDeps = newColumnSet(
		"subfamily", "item", "brand", "packaging",
		"quantity", "unit", "family",
	)
)

// ColumnSet is a set of store column names.
type ColumnSet map[string]struct{}

func newColumnSet(cols ...string) ColumnSet {
	s := make(ColumnSet, len(cols))
	for _, c := range cols {
		s[c] = struct{}{}
	}
	return s
}

// Intersects reports whether any of the changed columns belongs to the set.
func (s ColumnSet) Intersects(changed []string) bool {
	for _, c := range changed {
		if _, ok := s[c]; ok {
			return true
		}
	}
	return false
}

// Recompute lists which derived fields the given column changes invalidate.
type Recompute struct {
	Description bool
	Synonym     bool
	Keywords    bool
}

// Needed returns the recomputation plan for a set of changed columns.
func Needed(changed []string) Recompute {
	return Recompute{
		Description: DescriptionDeps.Intersects(changed),
		Synonym:     SynonymDeps.Intersects(changed),
		Keywords:    KeywordsDeps.Intersects(changed),
	}
}

// Any reports whether at least one derived field must be recomputed.
func (r Recompute) Any() bool {
	return r.Description || r.Synonym || r.Keywords
}
