package engagement

import "math"

// Summary is the denormalized rating pair kept on every rated entity.
type Summary struct {
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"review_count"`
}

// Summarize reduces a set of star ratings to its summary. An empty set yields
// {0, 0}; otherwise the average is the arithmetic mean rounded half-up to one
// decimal.
func Summarize(ratings []int) Summary {
	if len(ratings) == 0 {
		return Summary{}
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	mean := float64(sum) / float64(len(ratings))
	return Summary{
		Rating:      math.Round(mean*10) / 10,
		ReviewCount: len(ratings),
	}
}
