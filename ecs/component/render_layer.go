package component

// RenderLayer orders painting. Bodies on lower layers are drawn first and
// bodies without one sit on layer 0.
type RenderLayer struct {
	Index int
}

var RenderLayerComponent = NewComponent[RenderLayer]("render_layer")
