package match

import "testing"

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "abc", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"userId", "userID", 1},
		{"user_id", "userId", 2},
		{"count", "total", 4},
		{"café", "cafe", 1},
	}
	for _, tt := range tests {
		if got := LevenshteinDistance(tt.a, tt.b); got != tt.want {
			t.Errorf("LevenshteinDistance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestLevenshteinDistance_symmetric(t *testing.T) {
	pairs := [][2]string{{"alpha", "beta"}, {"retries", "retry"}, {"x", "xyz"}}
	for _, p := range pairs {
		if LevenshteinDistance(p[0], p[1]) != LevenshteinDistance(p[1], p[0]) {
			t.Errorf("distance not symmetric for %q, %q", p[0], p[1])
		}
	}
}

func TestClosestName(t *testing.T) {
	t.Run("finds a near miss", func(t *testing.T) {
		got, ok := ClosestName("userid", []string{"username", "user_id", "count"}, 2)
		if !ok || got != "user_id" {
			t.Errorf("got %q, %v", got, ok)
		}
	})

	t.Run("exact matches are skipped", func(t *testing.T) {
		got, ok := ClosestName("count", []string{"count", "total"}, 2)
		if ok {
			t.Errorf("expected no match, got %q", got)
		}
	})

	t.Run("nothing within max distance", func(t *testing.T) {
		if _, ok := ClosestName("verbose", []string{"timeout", "limit"}, 2); ok {
			t.Error("expected no match")
		}
	})

	t.Run("ties resolve to the earliest candidate", func(t *testing.T) {
		got, ok := ClosestName("ab", []string{"ac", "ad"}, 2)
		if !ok || got != "ac" {
			t.Errorf("got %q, %v", got, ok)
		}
	})

	t.Run("empty candidates", func(t *testing.T) {
		if _, ok := ClosestName("name", nil, 2); ok {
			t.Error("expected no match")
		}
	})
}
