package domain

import "strings"

// DirectiveKind enumerates the reindex modes, ordered by priority.
type DirectiveKind int

// Reindex modes. When several request parameters are set at once the
// highest-priority mode wins: All > Category > Incremental > Delete > None.
const (
	DirectiveNone DirectiveKind = iota
	DirectiveDelete
	DirectiveIncremental
	DirectiveCategory
	DirectiveAll
)

// String returns a short name for logging.
func (k DirectiveKind) String() string {
	switch k {
	case DirectiveAll:
		return "all"
	case DirectiveCategory:
		return "category"
	case DirectiveIncremental:
		return "incremental"
	case DirectiveDelete:
		return "delete"
	default:
		return "none"
	}
}

// ReindexDirective is the reconciliation mode for one indexing run, derived
// once per run from request parameters.
type ReindexDirective struct {
	Kind DirectiveKind

	// Category is the scoped category path, set only when Kind is
	// DirectiveCategory. Leading and trailing separators are trimmed.
	Category string
}

// ParseDirective derives the directive from raw request parameters.
// reindexAll maps to a full reindex, reindexCat (non-empty after trimming)
// to a category-scoped reindex, reindex to an explicit incremental pass and
// delindex to a deletion pass.
func ParseDirective(reindexAll, reindex bool, reindexCat string, delindex bool) ReindexDirective {
	reindexCat = strings.Trim(reindexCat, "/")

	switch {
	case reindexAll:
		return ReindexDirective{Kind: DirectiveAll}
	case reindexCat != "":
		return ReindexDirective{Kind: DirectiveCategory, Category: reindexCat}
	case reindex:
		return ReindexDirective{Kind: DirectiveIncremental}
	case delindex:
		return ReindexDirective{Kind: DirectiveDelete}
	default:
		return ReindexDirective{Kind: DirectiveNone}
	}
}

// CategoryWithin reports whether category cat equals root or is a descendant
// of it. Matching is segment-boundary aware: "stories/short" is within
// "stories" but "storiesX" is not.
func CategoryWithin(cat, root string) bool {
	if root == "" {
		return true
	}
	return cat == root || strings.HasPrefix(cat, root+"/")
}
