// component/render.go
package component

import "image/color"

// Renderable is what the viewer draws for an entity.
type Renderable struct {
	Color     color.RGBA
	Radius    float32
	HasStroke bool
}
