// internal/ui/speed_button.go
package ui

import (
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// SpeedButton cycles the simulation speed multiplier.
type SpeedButton struct {
	X, Y          float32
	Size          float32
	LastClickTime time.Time
	Multipliers   []float64
	StateColors   []color.RGBA
	CurrentState  int
}

func NewSpeedButton(x, y, size float32) *SpeedButton {
	return &SpeedButton{
		X:           x,
		Y:           y,
		Size:        size,
		Multipliers: []float64{1, 2, 4},
		StateColors: []color.RGBA{
			{70, 130, 180, 255},
			{220, 160, 40, 255},
			{220, 60, 60, 255},
		},
	}
}

func (b *SpeedButton) Multiplier() float64 { return b.Multipliers[b.CurrentState] }

func (b *SpeedButton) Draw(screen *ebiten.Image) {
	elapsed := time.Since(b.LastClickTime).Seconds()
	scale := 1.0 + 0.3*math.Exp(-elapsed*8)
	size := b.Size * float32(scale)
	clr := b.StateColors[b.CurrentState]

	height := size * 1.2
	width := size
	offset := width * 0.8
	for _, shift := range []float32{0, offset} {
		var path vector.Path
		path.MoveTo(b.X-width+shift, b.Y-height/2)
		path.LineTo(b.X+shift, b.Y)
		path.LineTo(b.X-width+shift, b.Y+height/2)
		path.Close()
		fillPath(screen, &path, clr)
	}
}

// IsClicked uses a circle for hit testing since the shape is irregular.
func (b *SpeedButton) IsClicked(x, y int) bool {
	dx := float32(x) - b.X
	dy := float32(y) - b.Y
	r := b.Size * 1.5
	return dx*dx+dy*dy <= r*r
}

func (b *SpeedButton) ToggleState() {
	b.CurrentState = (b.CurrentState + 1) % len(b.Multipliers)
	b.LastClickTime = time.Now()
}

var fillImage *ebiten.Image

func fillPath(dst *ebiten.Image, path *vector.Path, clr color.RGBA) {
	if fillImage == nil {
		fillImage = ebiten.NewImage(3, 3)
		fillImage.Fill(color.White)
	}
	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	for i := range vs {
		vs[i].SrcX, vs[i].SrcY = 1, 1
		vs[i].ColorR = float32(clr.R) / 255
		vs[i].ColorG = float32(clr.G) / 255
		vs[i].ColorB = float32(clr.B) / 255
		vs[i].ColorA = float32(clr.A) / 255
	}
	dst.DrawTriangles(vs, is, fillImage, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}
