package services

import "math/rand"

// Sample deterministically draws k items from the ordered identifier list.
// It applies a swap-based Fisher-Yates shuffle seeded solely by seed and
// takes the first k elements, so the same (list, seed, k) triple always
// reproduces the same selection. The input slice is not modified.
func Sample(ids []string, seed int64, k int) []string {
	if k <= 0 {
		return nil
	}
	if k > len(ids) {
		k = len(ids)
	}
	shuffled := append([]string(nil), ids...)
	r := rand.New(rand.NewSource(seed))
	for i := len(shuffled) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled[:k]
}
