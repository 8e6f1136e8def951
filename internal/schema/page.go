package schema

// Paging defaults for list operations. No upper bound is enforced on Limit.
const (
	DefaultSkip  = 0
	DefaultLimit = 100
)

// Page selects a window of a list ordered by insertion.
type Page struct {
	Skip  int `json:"skip" validate:"gte=0"`
	Limit int `json:"limit" validate:"gte=0"`
}

// DefaultPage returns the window used when a client supplies no paging.
func DefaultPage() Page {
	return Page{Skip: DefaultSkip, Limit: DefaultLimit}
}

// Validate rejects negative offsets and limits.
func (p Page) Validate() error {
	return check(p)
}
