package paging

// MergeMode selects how an incoming page combines with accumulated items.
type MergeMode int

const (
	// Replace discards accumulated items. Used for random page access,
	// refresh and filter changes.
	Replace MergeMode = iota
	// Append concatenates the incoming page after accumulated items.
	Append
)

func (m MergeMode) String() string {
	if m == Append {
		return "append"
	}
	return "replace"
}

// Merge combines existing and incoming according to mode and reports whether
// more pages may follow.
//
// A page of exactly pageSize items counts as non-terminal, so the true end of
// a collection whose size is a multiple of pageSize costs one extra empty fetch.
// The returned slice never aliases existing.
func Merge[T any](existing, incoming []T, mode MergeMode, pageSize int) ([]T, bool) {
	hasMore := pageSize > 0 && len(incoming) >= pageSize

	if mode == Replace {
		merged := make([]T, len(incoming))
		copy(merged, incoming)
		return merged, hasMore
	}

	merged := make([]T, 0, len(existing)+len(incoming))
	merged = append(merged, existing...)
	merged = append(merged, incoming...)
	return merged, hasMore
}
