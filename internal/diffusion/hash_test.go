package diffusion

import "testing"

func TestMurmur3HashDeterministic(t *testing.T) {
	h1 := murmur3Hash(31101982, 64, 5, 9, 3)
	h2 := murmur3Hash(31101982, 64, 5, 9, 3)
	t.Logf("hash(5,9,3) under seed 31101982, l=64: %d", h1)
	if h1 != h2 {
		t.Fatalf("murmur3Hash is not deterministic: %d != %d", h1, h2)
	}
}

func TestMurmur3HashSensitiveToEveryInput(t *testing.T) {
	base := murmur3Hash(1, 8, 2, 3, 0)
	variants := []uint32{
		murmur3Hash(2, 8, 2, 3, 0),
		murmur3Hash(1, 9, 2, 3, 0),
		murmur3Hash(1, 8, 3, 3, 0),
		murmur3Hash(1, 8, 2, 4, 0),
		murmur3Hash(1, 8, 2, 3, 1),
	}
	for idx, v := range variants {
		if v == base {
			t.Errorf("variant %d collided with base hash %d; expected a change when one input differs", idx, base)
		}
	}
}

func TestContainedBinaryMatchesProbability(t *testing.T) {
	o := &Oracle{seed: 42, l: 16, model: Binary, binProb: Resolution / 2}
	live := 0
	const trials = 4000
	for i := uint16(0); i < trials; i++ {
		if o.Contained(0, 1, i) {
			live++
		}
	}
	frac := float64(live) / float64(trials)
	t.Logf("binary p=0.5 liveness fraction over %d instances: %.4f", trials, frac)
	if frac < 0.35 || frac > 0.65 {
		t.Errorf("liveness fraction %.4f too far from 0.5", frac)
	}
}

func TestContainedWeightedUsesIndegree(t *testing.T) {
	o := &Oracle{seed: 7, l: 8, model: Weighted, indeg: []uint32{0, 1, 10}}
	liveHighDeg, liveLowDeg := 0, 0
	const trials = 4000
	for i := uint16(0); i < trials; i++ {
		if o.Contained(0, 1, i) {
			liveLowDeg++
		}
		if o.Contained(0, 2, i) {
			liveHighDeg++
		}
	}
	t.Logf("weighted: indeg=1 liveCount=%d, indeg=10 liveCount=%d", liveLowDeg, liveHighDeg)
	if liveHighDeg >= liveLowDeg {
		t.Errorf("higher indegree target should be live less often: indeg=10 gave %d, indeg=1 gave %d", liveHighDeg, liveLowDeg)
	}
}

func TestContainedTrivalencyUsesCanonicalBucketIndexing(t *testing.T) {
	o := &Oracle{seed: 99, l: 4, model: Trivalency}
	for u := uint32(0); u < 20; u++ {
		for v := uint32(0); v < 20; v++ {
			h := murmur3Hash(o.seed, o.l, u, v, 0)
			index := h % uint32(len(triProb))
			want := h%Resolution < triProb[index]
			got := o.Contained(u, v, 0)
			if got != want {
				t.Fatalf("Contained(%d,%d,0) = %v, want %v (canonical triProb[index] rule)", u, v, got, want)
			}
		}
	}
}

func TestParseModel(t *testing.T) {
	cases := map[string]Model{"weighted": Weighted, "binary": Binary, "trivalency": Trivalency}
	for s, want := range cases {
		got, err := ParseModel(s)
		if err != nil {
			t.Fatalf("ParseModel(%q) failed: %v", s, err)
		}
		if got != want {
			t.Errorf("ParseModel(%q) = %v, want %v", s, got, want)
		}
	}
	if _, err := ParseModel("bogus"); err == nil {
		t.Errorf("expected error for unknown model name")
	}
}
