package results

import (
	"cmp"

	"github.com/bcdxn/f1results/internal/source"
)

// LatestByKey reduces records to one record per key: the one with the latest timestamp. It is a
// single pass over records; when two records of a key share a timestamp the first seen is kept.
func LatestByKey[T any, K comparable](records []T, key func(T) K, timestamp func(T) source.Timestamp) map[K]T {
	latest := make(map[K]T)
	for _, r := range records {
		k := key(r)
		if current, ok := latest[k]; ok && !timestamp(r).After(timestamp(current)) {
			continue
		}
		latest[k] = r
	}
	return latest
}

// GroupCount counts records per key.
func GroupCount[T any, K comparable](records []T, key func(T) K) map[K]int {
	counts := make(map[K]int)
	for _, r := range records {
		counts[key(r)]++
	}
	return counts
}

// GroupMin keeps the minimum value per key. Records for which value reports false are excluded;
// keys whose records are all excluded are absent from the result.
func GroupMin[T any, K comparable, V cmp.Ordered](records []T, key func(T) K, value func(T) (V, bool)) map[K]V {
	mins := make(map[K]V)
	for _, r := range records {
		v, ok := value(r)
		if !ok {
			continue
		}
		k := key(r)
		if current, seen := mins[k]; seen && current <= v {
			continue
		}
		mins[k] = v
	}
	return mins
}
