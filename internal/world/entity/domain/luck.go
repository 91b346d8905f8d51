package domain

import "github.com/cespare/xxhash/v2"

// Luck 把 (seed, key) 映射到 [0,1) 上的确定值。同一个 seed 下世界可以完整重建。
func Luck(seed, key string) float64 {
	h := xxhash.Sum64String(seed + "|" + key)
	// 取高 53 位，刚好填满 float64 尾数
	return float64(h>>11) / float64(uint64(1)<<53)
}
