package category

// Category is the stored form of a spending category. List order is
// user-controlled and significant.
type Category struct {
	Name   string  `json:"name"`
	Emoji  string  `json:"emoji,omitempty"`
	Color  string  `json:"color"`
	Budget float64 `json:"budget"`
}
