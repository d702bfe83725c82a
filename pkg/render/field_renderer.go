package render

import (
	"image/color"
	"math"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"ten-second-towers/pkg/tilemap"
)

// costShadeSteps is the extra cost at which a tile is fully tinted.
const costShadeSteps = 8

// Sprite is one round entity drawn over the field.
type Sprite struct {
	X, Y   float64
	Radius float32
	Color  color.RGBA
	Stroke bool
	// Barrel, when positive, draws a line of that length at Angle.
	Barrel float32
	Angle  float64
	// Health in [0,1]; a bar is shown below 1.
	Health float64
}

type FieldRenderer struct {
	geometry  tilemap.Geometry
	width     int
	height    int
	colors    *MapColors
	fontFace  font.Face
	gridImage *ebiten.Image // pre-rendered tile outlines
}

func NewFieldRenderer(field *tilemap.Field, screenWidth, screenHeight int, face font.Face, colors *MapColors) *FieldRenderer {
	r := &FieldRenderer{
		geometry:  field.Geometry(),
		width:     field.Width(),
		height:    field.Height(),
		colors:    colors,
		fontFace:  face,
		gridImage: ebiten.NewImage(screenWidth, screenHeight),
	}
	r.renderGridImage()
	return r
}

// renderGridImage draws the static outlines of every tile once.
func (r *FieldRenderer) renderGridImage() {
	r.gridImage.Clear()
	stroke := LightenColor(r.colors.TileColor, 40)
	for y := range r.height {
		for x := range r.width {
			px, py, size := r.tileRect(tilemap.Location{X: x, Y: y})
			vector.StrokeRect(r.gridImage, px, py, size, size, r.colors.StrokeWidth, stroke, true)
		}
	}
}

func (r *FieldRenderer) tileRect(loc tilemap.Location) (x, y, size float32) {
	cx, cy := r.geometry.Center(loc)
	half := r.geometry.TileSize / 2
	return float32(cx - half), float32(cy - half), float32(r.geometry.TileSize)
}

// TileColor is the fill of a tile: its contents, tinted by extra cost.
func (r *FieldRenderer) TileColor(t tilemap.Tile) color.RGBA {
	switch t.Contents {
	case tilemap.Spawner:
		return r.colors.SpawnerColor
	case tilemap.Goal:
		return r.colors.GoalColor
	case tilemap.Blocked:
		return r.colors.BlockedColor
	}
	extra := t.Cost - tilemap.BaseCost
	return BlendColor(r.colors.TileColor, r.colors.CostColor, float64(extra)/costShadeSteps)
}

// DrawField fills every tile and labels tiles whose cost is above the base.
func (r *FieldRenderer) DrawField(screen *ebiten.Image, field *tilemap.Field) {
	screen.Fill(r.colors.BackgroundColor)
	field.Each(func(loc tilemap.Location, t tilemap.Tile) {
		x, y, size := r.tileRect(loc)
		fill := r.TileColor(t)
		vector.DrawFilledRect(screen, x, y, size, size, fill, false)
		if t.Cost > tilemap.BaseCost && t.Contents == tilemap.Empty {
			r.drawLabel(screen, strconv.Itoa(t.Cost), loc, r.colors.TextColorOn(fill))
		}
	})
	screen.DrawImage(r.gridImage, nil)
}

func (r *FieldRenderer) drawLabel(screen *ebiten.Image, label string, loc tilemap.Location, clr color.Color) {
	if r.fontFace == nil {
		return
	}
	cx, cy := r.geometry.Center(loc)
	bounds := text.BoundString(r.fontFace, label)
	text.Draw(screen, label, r.fontFace, int(cx)-bounds.Dx()/2, int(cy)+bounds.Dy()/2, clr)
}

// DrawPaths draws every path of bag through the tile centers, starting at
// origin.
func (r *FieldRenderer) DrawPaths(screen *ebiten.Image, origin tilemap.Location, bag tilemap.PathBag) {
	for _, path := range bag.Paths {
		px, py := r.geometry.Center(origin)
		for _, loc := range path {
			x, y := r.geometry.Center(loc)
			vector.StrokeLine(screen, float32(px), float32(py), float32(x), float32(y), 2, r.colors.PathColor, true)
			px, py = x, y
		}
	}
}

// DrawHighlight outlines the hovered tile, red when it cannot be built on.
func (r *FieldRenderer) DrawHighlight(screen *ebiten.Image, loc tilemap.Location, ok bool) {
	if loc.X < 0 || loc.Y < 0 || loc.X >= r.width || loc.Y >= r.height {
		return
	}
	clr := color.RGBA{255, 255, 255, 200}
	if !ok {
		clr = color.RGBA{255, 80, 80, 200}
	}
	x, y, size := r.tileRect(loc)
	vector.StrokeRect(screen, x, y, size, size, r.colors.StrokeWidth*1.5, clr, true)
}

func (r *FieldRenderer) DrawSprites(screen *ebiten.Image, sprites []Sprite) {
	for _, s := range sprites {
		x, y := float32(s.X), float32(s.Y)
		if s.Stroke {
			vector.DrawFilledCircle(screen, x, y, s.Radius+2, DarkenColor(s.Color), true)
		}
		vector.DrawFilledCircle(screen, x, y, s.Radius, s.Color, true)
		if s.Barrel > 0 {
			ex := x + s.Barrel*float32(math.Cos(s.Angle))
			ey := y + s.Barrel*float32(math.Sin(s.Angle))
			vector.StrokeLine(screen, x, y, ex, ey, 3, DarkenColor(s.Color), true)
		}
		if s.Health < 1 {
			r.drawHealthBar(screen, x, y+s.Radius+3, s.Radius*2, s.Health)
		}
	}
}

func (r *FieldRenderer) drawHealthBar(screen *ebiten.Image, cx, top, width float32, health float64) {
	left := cx - width/2
	vector.DrawFilledRect(screen, left, top, width, 3, color.RGBA{40, 0, 0, 255}, false)
	vector.DrawFilledRect(screen, left, top, width*float32(max(0, health)), 3, color.RGBA{220, 40, 40, 255}, false)
}
