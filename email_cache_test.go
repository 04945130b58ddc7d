package mailsyntax

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// // // // // // // // // //

func TestCacheSameVerdicts(t *testing.T) {
	withConfig(t, &ConfigObj{NoCache: false})
	if verdicts == nil {
		t.Fatalf("cache is not enabled")
	}

	inputs := []string{"test@example.com", "a@b@c.com", "user@[127.0.0.1]", "user@[127.0.0.256]", "user@münchen.de", ""}
	for round := 0; round < 3; round++ {
		for _, in := range inputs {
			got := CheckString(in)
			want := conf.check([]byte(in)).err
			if got != want {
				t.Errorf("round %d: cached CheckString(%q) = %v, uncached %v", round, in, got, want)
			}
		}
	}

	if n := verdicts.len(); n != len(inputs) {
		t.Errorf("cache holds %d entries, want %d", n, len(inputs))
	}
}

func TestCacheHit(t *testing.T) {
	var calls int32
	withConfig(t, &ConfigObj{NoCache: false, IDN: stubConverter(&calls, "xn--bcher-kva.com", nil)})

	for i := 0; i < 5; i++ {
		if !ValidateString("user@bücher.com") {
			t.Fatalf("rejected a convertible address")
		}
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("want 1 conversion, got %d", got)
	}
}

func TestCacheSingleFlight(t *testing.T) {
	var calls int32
	withConfig(t, &ConfigObj{
		NoCache: false,
		IDN: IdnConverterFunc(func(domain string) (string, error) {
			atomic.AddInt32(&calls, 1)
			time.Sleep(40 * time.Millisecond)
			return "xn--bcher-kva.com", nil
		}),
	})

	const workers = 20
	wg := sync.WaitGroup{}
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			if !ValidateString("parallel@bücher.com") {
				t.Errorf("rejected a convertible address")
			}
		}()
	}
	wg.Wait()

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("want 1 conversion, got %d", got)
	}
}

func TestCachePrune(t *testing.T) {
	withConfig(t, &ConfigObj{
		NoCache: false,
		Cache: ConfigCacheObj{
			ShardAbs:     1,
			ShardMaxSize: 10,
			PruneEveryN:  1,
		},
	})

	for i := 0; i < 500; i++ {
		ValidateString(fmt.Sprintf("user%d@example.com", i))
	}

	if n := verdicts.len(); n > 2*10 {
		t.Errorf("cache holds %d entries, bound is %d", n, 2*10)
	}
}

func TestCacheBoundBetweenPrunes(t *testing.T) {
	const maxSize = 10
	withConfig(t, &ConfigObj{
		NoCache: false,
		Cache: ConfigCacheObj{
			ShardAbs:     1,
			ShardMaxSize: maxSize,
			PruneEveryN:  1_000_000,
		},
	})

	for i := 0; i < 500; i++ {
		ValidateString(fmt.Sprintf("user%d@example.com", i))

		for j := range verdicts.shards {
			sh := &verdicts.shards[j]
			sh.mu.RLock()
			n := len(sh.data)
			sh.mu.RUnlock()
			if n > maxSize {
				t.Fatalf("after %d inserts shard %d holds %d entries, limit is %d", i+1, j, n, maxSize)
			}
		}
	}
}

func TestCacheDefaults(t *testing.T) {
	withConfig(t, &ConfigObj{NoCache: false, Cache: ConfigCacheObj{ShardAbs: 200}})

	if got := len(verdicts.shards); got != 1<<DefaultConfig.Cache.ShardAbs {
		t.Errorf("out of range ShardAbs gave %d shards", got)
	}
	if conf.Cache.ShardMaxSize != DefaultConfig.Cache.ShardMaxSize || conf.Cache.PruneEveryN != DefaultConfig.Cache.PruneEveryN {
		t.Errorf("zero cache limits were not defaulted: %+v", conf.Cache)
	}
}

// //

func BenchmarkValidateCached(b *testing.B) {
	withConfig(b, &ConfigObj{NoCache: false})
	data := []byte("benchmark_user@bigcorp.com")

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Validate(data)
	}
}

func BenchmarkValidateCachedParallel(b *testing.B) {
	withConfig(b, &ConfigObj{NoCache: false})
	data := []byte("benchmark_user@bigcorp.com")

	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			Validate(data)
		}
	})
}
