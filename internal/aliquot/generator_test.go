package aliquot

import (
	"reflect"
	"testing"

	"github.com/agbru/aliquot/internal/logging"
)

// newTestGenerator builds a generator with a fresh bounded cache.
func newTestGenerator[T Number](t *testing.T, cfg Config) *Generator[T] {
	t.Helper()
	cache, err := NewCache(cfg.CacheCapacity)
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}
	if cl, ok := cache.(interface{ Close() }); ok {
		t.Cleanup(cl.Close)
	}
	return NewGenerator[T](cache, cfg, logging.NewNopLogger())
}

// checkSeq asserts classification and full trace of a generated result.
func checkSeq[T Number](t *testing.T, gen *Generator[T], seed T, class Classification, seq []uint64) {
	t.Helper()
	res := gen.Generate(seed)
	if res.Classification != class {
		t.Errorf("Generate(%d).Classification = %v, want %v", seed, res.Classification, class)
		return
	}
	if got := res.Seq(); !reflect.DeepEqual(got, seq) {
		t.Errorf("Generate(%d).Seq() = %v, want %v", seed, got, seq)
	}
	if res.Seed != uint64(seed) {
		t.Errorf("Generate(%d).Seed = %d", seed, res.Seed)
	}
}

func TestGenerateUint16(t *testing.T) {
	t.Parallel()
	gen := newTestGenerator[uint16](t, NewConfig(Width16, 0, DefaultCacheCapacity))

	for _, p := range []uint16{2, 3, 5, 7, 11, 13, 17, 19, 29, 31, 41, 43} {
		checkSeq(t, gen, p, PrimeNumber, []uint64{uint64(p), 1})
	}

	checkSeq(t, gen, 6, PerfectNumber, []uint64{6})
	checkSeq(t, gen, 28, PerfectNumber, []uint64{28})

	checkSeq(t, gen, 12, Convergent, []uint64{12, 16, 15, 9, 4, 3, 1})
	checkSeq(t, gen, 30, Convergent, []uint64{30, 42, 54, 66, 78, 90, 144, 259, 45, 33, 15, 9, 4, 3, 1})
	checkSeq(t, gen, 42, Convergent, []uint64{42, 54, 66, 78, 90, 144, 259, 45, 33, 15, 9, 4, 3, 1})
	checkSeq(t, gen, 60, Convergent, []uint64{60, 108, 172, 136, 134, 70, 74, 40, 50, 43, 1})
	checkSeq(t, gen, 96, Convergent, []uint64{96, 156, 236, 184, 176, 196, 203, 37, 1})

	checkSeq(t, gen, 95, AspiringNumber, []uint64{95, 25, 6})

	checkSeq(t, gen, 220, AmicableNumber, []uint64{220, 284})
	checkSeq(t, gen, 284, AmicableNumber, []uint64{284, 220})
}

func TestGenerateUint32Sociable(t *testing.T) {
	t.Parallel()
	gen := newTestGenerator[uint32](t, NewConfig(Width32, 0, DefaultCacheCapacity))

	checkSeq(t, gen, 1264460, SociableNumber, []uint64{1264460, 1547860, 1727636, 1305184})

	res := gen.Generate(1264460)
	if !res.Classification.Cycles() {
		t.Error("sociable result should report Cycles() == true")
	}
	if res.CycleStart() != -1 {
		t.Errorf("sociable CycleStart() = %d, want -1 (cycle contains the seed)", res.CycleStart())
	}
}

func TestGenerateUint32OverflowIsUnknown(t *testing.T) {
	t.Parallel()
	gen := newTestGenerator[uint32](t, NewConfig(Width32, 0, DefaultCacheCapacity))

	// The sequence of 276 eventually exceeds 32 bits; the generator must
	// absorb the overflow into the Unknown classification with the trace as
	// computed up to that point.
	checkSeq(t, gen, 276, Unknown, []uint64{
		276, 396, 696, 1104, 1872, 3770, 3790, 3050, 2716, 2772, 5964,
		10164, 19628, 19684, 22876, 26404, 30044, 33796, 38780, 54628,
		54684, 111300, 263676, 465668, 465724, 465780, 1026060, 2325540,
		5335260, 11738916, 23117724, 45956820, 121129260, 266485716,
		558454764, 1092873236, 1470806764, 1471882804, 1642613196,
		2737688884, 2740114636, 2791337780,
	})
}

func TestGenerateUint64(t *testing.T) {
	t.Parallel()
	gen := newTestGenerator[uint64](t, NewConfig(Width64, 0, DefaultCacheCapacity))

	checkSeq(t, gen, 6, PerfectNumber, []uint64{6})
	checkSeq(t, gen, 43, PrimeNumber, []uint64{43, 1})
	checkSeq(t, gen, 95, AspiringNumber, []uint64{95, 25, 6})
	checkSeq(t, gen, 220, AmicableNumber, []uint64{220, 284})
	checkSeq(t, gen, 1264460, SociableNumber, []uint64{1264460, 1547860, 1727636, 1305184})
}

func TestGenerateSeedOne(t *testing.T) {
	t.Parallel()
	gen := newTestGenerator[uint64](t, NewConfig(Width64, 0, 0))
	checkSeq(t, gen, 1, Unknown, []uint64{1})
}

func TestGenerateThreshold(t *testing.T) {
	t.Parallel()

	t.Run("breach yields Unknown with truncated trace", func(t *testing.T) {
		t.Parallel()
		gen := newTestGenerator[uint64](t, NewConfig(Width64, 100, 0))
		// 30 -> 42 -> 54 -> 66 -> 78 -> 90 -> 144; 144 exceeds 100.
		checkSeq(t, gen, 30, Unknown, []uint64{30, 42, 54, 66, 78, 90})
	})

	t.Run("threshold above all values matches the unbounded run", func(t *testing.T) {
		t.Parallel()
		bounded := newTestGenerator[uint64](t, NewConfig(Width64, 1000, 0))
		unbounded := newTestGenerator[uint64](t, NewConfig(Width64, 0, 0))

		a := bounded.Generate(30)
		b := unbounded.Generate(30)
		if a.Classification != b.Classification {
			t.Errorf("classification differs: %v vs %v", a.Classification, b.Classification)
		}
		if !reflect.DeepEqual(a.Seq(), b.Seq()) {
			t.Errorf("trace differs: %v vs %v", a.Seq(), b.Seq())
		}
	})

	t.Run("value equal to the threshold does not abort", func(t *testing.T) {
		t.Parallel()
		// 30's sequence peaks at 259; a threshold of exactly 259 must pass.
		gen := newTestGenerator[uint64](t, NewConfig(Width64, 259, 0))
		checkSeq(t, gen, 30, Convergent, []uint64{30, 42, 54, 66, 78, 90, 144, 259, 45, 33, 15, 9, 4, 3, 1})
	})
}

func TestGenerateSafetyValve(t *testing.T) {
	t.Parallel()
	cfg := NewConfig(Width64, 0, 0)
	cfg.MaxSeqLen = 5
	gen := newTestGenerator[uint64](t, cfg)

	checkSeq(t, gen, 12, Unknown, []uint64{12, 16, 15, 9, 4})
}

// stubCache serves scripted next values so cycle shapes that are hard to
// reach from small seeds can be exercised directly.
type stubCache map[uint64]uint64

func (s stubCache) Lookup(n uint64) (uint64, bool) {
	v, ok := s[n]
	return v, ok
}

func (s stubCache) Record(uint64, uint64) {}

func TestGenerateIntoCycle(t *testing.T) {
	t.Parallel()
	// Force 10 -> 220; the sequence then walks the amicable cycle 220, 284
	// and recurs at 220, which is not the seed.
	cache := stubCache{10: 220}
	gen := NewGenerator[uint64](cache, NewConfig(Width64, 0, 0), logging.NewNopLogger())

	res := gen.Generate(10)
	if res.Classification != IntoCycle {
		t.Fatalf("Classification = %v, want IntoCycle", res.Classification)
	}
	if got, want := res.Seq(), []uint64{10, 220, 284}; !reflect.DeepEqual(got, want) {
		t.Errorf("Seq() = %v, want %v", got, want)
	}
	if res.CycleStart() != 1 {
		t.Errorf("CycleStart() = %d, want 1", res.CycleStart())
	}
	if !res.Classification.Cycles() {
		t.Error("IntoCycle should report Cycles() == true")
	}
}

func TestGenerateCachedStepsMatchComputedSteps(t *testing.T) {
	t.Parallel()
	// A warm cache must never change a classification or a trace, only skip
	// recomputation.
	seeds := []uint64{6, 12, 28, 30, 95, 220, 284, 1264460}

	cold := newTestGenerator[uint64](t, NewConfig(Width64, 0, 0))

	cache, err := NewCache(DefaultCacheCapacity)
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}
	mc := cache.(*memoCache)
	t.Cleanup(mc.Close)
	warm := NewGenerator[uint64](cache, NewConfig(Width64, 0, DefaultCacheCapacity), logging.NewNopLogger())

	// First pass fills the cache, second pass reads from it.
	for _, s := range seeds {
		warm.Generate(s)
	}
	mc.Wait()

	for _, s := range seeds {
		want := cold.Generate(s)
		got := warm.Generate(s)
		if got.Classification != want.Classification {
			t.Errorf("seed %d: classification %v with cache, %v without", s, got.Classification, want.Classification)
		}
		if !reflect.DeepEqual(got.Seq(), want.Seq()) {
			t.Errorf("seed %d: trace %v with cache, %v without", s, got.Seq(), want.Seq())
		}
	}
}
