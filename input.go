package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/tilepath/common"
)

// Input is the viewer's per-frame input state.
type Input struct {
	// Click is set on the frame the left mouse button was pressed.
	Click bool
	// Cursor is the mouse position in world pixels.
	Cursor common.Vec

	ToggleHunt    bool
	ToggleGraph   bool
	TogglePhysics bool
	TogglePause   bool
	StepOnce      bool
	Reload        bool
	Quit          bool
}

// Update polls keyboard, mouse and the first standard gamepad.
func (i *Input) Update() {
	mx, my := ebiten.CursorPosition()
	i.Cursor = common.Vec{X: float64(mx), Y: float64(my)}
	i.Click = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)

	i.ToggleHunt = inpututil.IsKeyJustPressed(ebiten.KeyEnter)
	i.ToggleGraph = inpututil.IsKeyJustPressed(ebiten.KeyG)
	i.TogglePhysics = inpututil.IsKeyJustPressed(ebiten.KeyF3)
	i.TogglePause = inpututil.IsKeyJustPressed(ebiten.KeyP)
	i.StepOnce = inpututil.IsKeyJustPressed(ebiten.KeyPeriod)
	i.Reload = inpututil.IsKeyJustPressed(ebiten.KeyR)
	i.Quit = inpututil.IsKeyJustPressed(ebiten.KeyEscape)

	ids := ebiten.AppendGamepadIDs(nil)
	if len(ids) == 0 || !ebiten.IsStandardGamepadLayoutAvailable(ids[0]) {
		return
	}
	id := ids[0]
	i.ToggleHunt = i.ToggleHunt || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonCenterRight)
	i.ToggleGraph = i.ToggleGraph || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightTop)
	i.TogglePause = i.TogglePause || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonCenterLeft)
	i.Reload = i.Reload || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightLeft)
}
