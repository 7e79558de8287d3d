package paging

// Phase is the controller's position in its load cycle.
type Phase int

const (
	// Idle means nothing is loaded and no fetch is running; the list was
	// invalidated or never loaded.
	Idle Phase = iota
	Loading
	Loaded
	Exhausted
)

func (p Phase) String() string {
	switch p {
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Exhausted:
		return "exhausted"
	default:
		return "idle"
	}
}

// NoPage is the current-page value of an invalidated list awaiting reload.
const NoPage = -1

// State is a point-in-time copy of a controller. Items is a copy of the
// controller's list.
type State[T any] struct {
	Items       []T
	CurrentPage int
	PageSize    int
	Loading     bool
	HasMore     bool
	TotalCount  int
	Filter      Filter
	Phase       Phase
}

// TotalPages derives the page count shown next to page controls.
func (s State[T]) TotalPages() int {
	return TotalPages(s.TotalCount, s.PageSize)
}

// TotalPages is the number of pages of size pageSize needed for total
// documents.
func TotalPages(total, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

func phaseOf(loading, hasMore bool, currentPage int) Phase {
	switch {
	case loading:
		return Loading
	case currentPage == NoPage:
		return Idle
	case !hasMore:
		return Exhausted
	default:
		return Loaded
	}
}
