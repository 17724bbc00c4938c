package pairs

import (
	"math/rand"
	"slices"
	"testing"
)

func TestDoubledKeepsOrder(t *testing.T) {
	got := doubled([]FaceID{"A", "B", "C"})
	want := []FaceID{"A", "A", "B", "B", "C", "C"}
	if !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestBuildDeckEachFaceTwice(t *testing.T) {
	tests := []struct {
		name  string
		faces []FaceID
	}{
		{"single", []FaceID{"A"}},
		{"three", []FaceID{"A", "B", "C"}},
		{"ten", Faces([]string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9"})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deck := BuildDeck(tt.faces, rand.New(rand.NewSource(7)))

			if len(deck) != 2*len(tt.faces) {
				t.Fatalf("expected %d cards, got %d", 2*len(tt.faces), len(deck))
			}

			counts := make(map[FaceID]int)
			for i, c := range deck {
				if c.Index != i {
					t.Errorf("card %d has index %d", i, c.Index)
				}
				if c.State != StateHidden {
					t.Errorf("card %d starts %v, expected hidden", i, c.State)
				}
				counts[c.Face]++
			}
			for _, f := range tt.faces {
				if counts[f] != 2 {
					t.Errorf("face %q appears %d times, expected 2", f, counts[f])
				}
			}
		})
	}
}

func TestShuffleIsPermutation(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	orig := []int{1, 1, 2, 3, 5, 8, 13, 21, 34, 55}

	for range 50 {
		s := slices.Clone(orig)
		Shuffle(s, rng)

		got := slices.Clone(s)
		slices.Sort(got)
		if !slices.Equal(got, orig) {
			t.Fatalf("shuffle changed contents: %v", s)
		}
	}
}

func TestShuffleCoversAllPermutations(t *testing.T) {
	// 3 elements have 6 orders; each should show up about 1/6 of the time
	rng := rand.New(rand.NewSource(99))
	const runs = 60000
	counts := make(map[[3]int]int)

	for range runs {
		s := []int{0, 1, 2}
		Shuffle(s, rng)
		counts[[3]int{s[0], s[1], s[2]}]++
	}

	if len(counts) != 6 {
		t.Fatalf("expected 6 distinct orders, got %d", len(counts))
	}
	for perm, n := range counts {
		if n < 9000 || n > 11000 {
			t.Errorf("order %v seen %d times, expected about %d", perm, n, runs/6)
		}
	}
}

func TestShuffleEmptyAndSingle(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	var empty []string
	Shuffle(empty, rng)

	one := []string{"x"}
	Shuffle(one, rng)
	if one[0] != "x" {
		t.Errorf("expected x, got %q", one[0])
	}
}
