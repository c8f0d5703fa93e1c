package engagement

import "testing"

func TestSummarize(t *testing.T) {
	cases := []struct {
		name    string
		ratings []int
		want    Summary
	}{
		{"empty set", nil, Summary{Rating: 0, ReviewCount: 0}},
		{"single review", []int{4}, Summary{Rating: 4.0, ReviewCount: 1}},
		{"two reviews", []int{4, 5}, Summary{Rating: 4.5, ReviewCount: 2}},
		{"repeating third rounds", []int{4, 5, 5}, Summary{Rating: 4.7, ReviewCount: 3}},
		{"half rounds up", []int{4, 4, 4, 5}, Summary{Rating: 4.3, ReviewCount: 4}},
		{"all minimum", []int{1, 1, 1}, Summary{Rating: 1.0, ReviewCount: 3}},
		{"all maximum", []int{5, 5, 5, 5}, Summary{Rating: 5.0, ReviewCount: 4}},
		{"wide spread", []int{1, 5}, Summary{Rating: 3.0, ReviewCount: 2}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Summarize(tc.ratings)
			if got != tc.want {
				t.Fatalf("Summarize(%v) = %+v, want %+v", tc.ratings, got, tc.want)
			}
		})
	}
}

func TestSummarize_Deterministic(t *testing.T) {
	ratings := []int{3, 4, 4, 5, 2, 5, 1}
	first := Summarize(ratings)
	for i := 0; i < 10; i++ {
		if got := Summarize(ratings); got != first {
			t.Fatalf("non-deterministic summary: %+v vs %+v", got, first)
		}
	}
}

func TestSummarize_BoundedAverage(t *testing.T) {
	s := Summarize([]int{1, 2, 3, 4, 5})
	if s.Rating < 0 || s.Rating > 5 {
		t.Fatalf("average out of range: %v", s.Rating)
	}
}
