package algo

import "github.com/huangsam/spans/schema"

// Overlap returns the pieces of short that intersect any interval of large.
// Each piece is clipped to the intersection. Pieces follow the order of short,
// and a short interval spanning several large intervals yields one piece per
// large interval it meets. Touching edges do not count as an overlap.
func Overlap(large, short schema.TimeRange) schema.TimeRange {
	result := schema.TimeRange{}
	for _, s := range short {
		for _, l := range large {
			if piece, ok := s.Intersect(l); ok {
				result = append(result, piece)
			}
		}
	}
	return result
}
