package component

import "github.com/milk9111/gravityballs/physics"

// Body is the simulated point mass of a gravity ball.
type Body = physics.Body

var BodyComponent = NewComponent[Body]("body")
