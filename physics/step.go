package physics

// ForEachPair calls fn for every index pair i<j of n items, once each.
func ForEachPair(n int, fn func(i, j int)) {
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			fn(i, j)
		}
	}
}

// Step applies one tick: all pairwise attractions first, then every
// position. It returns the number of pairs that interacted.
func Step(bodies []*Body, cfg Config) int {
	pairs := 0
	ForEachPair(len(bodies), func(i, j int) {
		bodies[i].ApplyAttraction(bodies[j], cfg)
		pairs++
	})
	for _, b := range bodies {
		b.UpdatePosition()
	}
	return pairs
}

// TotalMomentum sums mass*velocity over bodies.
func TotalMomentum(bodies []*Body) (px, py float64) {
	for _, b := range bodies {
		m := b.Momentum()
		px += m.X
		py += m.Y
	}
	return px, py
}
