package ecs

// IntersectEntities returns entity IDs present in both sets, in the order
// of a.
func IntersectEntities(a, b *SparseSet) []int {
	if a == nil || b == nil {
		return nil
	}
	out := make([]int, 0, min(len(a.denseEntities), len(b.denseEntities)))
	for _, id := range a.denseEntities {
		if b.Has(id) {
			out = append(out, id)
		}
	}
	return out
}
