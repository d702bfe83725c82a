// internal/state/pause_state.go
package state

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"ten-second-towers/internal/config"
)

var _ State = (*PauseState)(nil)

// PauseState freezes the simulation and draws the previous state under a
// dimmed overlay.
type PauseState struct {
	stateMachine  *StateMachine
	previousState State
	font          font.Face
}

func NewPauseState(sm *StateMachine, prevState State, face font.Face) *PauseState {
	return &PauseState{
		stateMachine:  sm,
		previousState: prevState,
		font:          face,
	}
}

func (s *PauseState) Enter() {}

func (s *PauseState) Update(deltaTime float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeyP) ||
		inpututil.IsKeyJustPressed(ebiten.KeyEscape) ||
		inpututil.IsKeyJustPressed(ebiten.KeyF9) {
		s.stateMachine.SetState(s.previousState)
	}
}

func (s *PauseState) Draw(screen *ebiten.Image) {
	if s.previousState != nil {
		s.previousState.Draw(screen)
	}
	vector.DrawFilledRect(screen, 0, 0, config.ScreenWidth, config.ScreenHeight, color.RGBA{0, 0, 0, 128}, false)

	const pauseText = "PAUSED"
	bounds := text.BoundString(s.font, pauseText)
	text.Draw(screen, pauseText, s.font, (config.ScreenWidth-bounds.Dx())/2, config.ScreenHeight/2, color.White)
}

func (s *PauseState) Exit() {}
