package schema

// SquaresResult is the outcome of a weighted average of squares.
type SquaresResult struct {
	Count    int     `json:"count"`
	Weighted bool    `json:"weighted"`
	Root     bool    `json:"root"`
	Value    float64 `json:"value"`
}
