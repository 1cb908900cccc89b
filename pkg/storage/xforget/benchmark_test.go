package xforget

import (
	"fmt"
	"testing"
)

func BenchmarkCache_Find(b *testing.B) {
	cache, err := New[string, int](Config{Capacity: 1000})
	if err != nil {
		b.Fatal(err)
	}
	cache.Add("benchmark_key", 42)

	b.ReportAllocs()
	b.ResetTimer()
	for b.Loop() {
		_, _ = cache.Find("benchmark_key")
	}
}

func BenchmarkCache_Find_Miss(b *testing.B) {
	cache, err := New[string, int](Config{Capacity: 1000})
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for b.Loop() {
		_, _ = cache.Find("nonexistent")
	}
}

func BenchmarkCache_Add_Evicting(b *testing.B) {
	for _, capacity := range []int{16, 256, 4096} {
		b.Run(fmt.Sprintf("capacity=%d", capacity), func(b *testing.B) {
			cache, err := New[int, int](Config{Capacity: capacity})
			if err != nil {
				b.Fatal(err)
			}

			b.ReportAllocs()
			b.ResetTimer()
			for i := range b.N {
				cache.Add(i, i)
			}
		})
	}
}

func BenchmarkCache_Find_Parallel(b *testing.B) {
	cache, err := New[int, int](Config{Capacity: 1024})
	if err != nil {
		b.Fatal(err)
	}
	for i := range 1024 {
		cache.Add(i, i)
	}

	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			_, _ = cache.Find(i & 1023)
			i++
		}
	})
}

func BenchmarkCache_Mixed_Parallel(b *testing.B) {
	cache, err := New[int, int](Config{Capacity: 256})
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			if i%4 == 0 {
				cache.Add(i&2047, i)
			} else {
				_, _ = cache.Find(i & 2047)
			}
			i++
		}
	})
}
