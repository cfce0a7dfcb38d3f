package component

import "github.com/milk9111/gravityballs/common"

const DefaultTrailLength = 240

// Trail is a ring of recent positions, oldest first.
type Trail struct {
	Points []common.Vector2
	Max    int
}

func (t *Trail) Push(p common.Vector2) {
	limit := t.Max
	if limit <= 0 {
		limit = DefaultTrailLength
	}
	t.Points = append(t.Points, p)
	if len(t.Points) > limit {
		t.Points = append(t.Points[:0], t.Points[len(t.Points)-limit:]...)
	}
}

func (t *Trail) Reset() {
	t.Points = t.Points[:0]
}

var TrailComponent = NewComponent[Trail]("trail")
