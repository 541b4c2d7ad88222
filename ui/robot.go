// Package ui shows the robot's indicator and motor throttles in a window so the bench can be
// watched without the robot attached
package ui

import (
	"context"
	"fmt"
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/calvinmclean/chocorobo/control"
)

var (
	litColor   = color.RGBA{R: 0, G: 0xc0, B: 0, A: 0xff}
	unlitColor = color.RGBA{R: 0x40, G: 0x40, B: 0x40, A: 0xff}
)

const dotSize = 28

// RobotUI implements control.Motors and control.Pixels. Pixels are buffered by SetPixel and
// drawn by Show, the same as the LED strip
type RobotUI struct {
	app fyne.App

	mtx      sync.Mutex
	pixels   [control.NumZones]color.RGBA
	shown    [control.NumZones]color.RGBA
	throttle control.MotorCommand

	dots  [control.NumZones]*canvas.Circle
	left  *widget.ProgressBar
	right *widget.ProgressBar
}

// NewRobotUI creates the widgets. The window is not shown until Run
func NewRobotUI(app fyne.App) *RobotUI {
	ui := &RobotUI{
		app:   app,
		left:  newThrottleBar("L"),
		right: newThrottleBar("R"),
	}
	for i := range ui.dots {
		ui.dots[i] = canvas.NewCircle(unlitColor)
	}
	return ui
}

func newThrottleBar(name string) *widget.ProgressBar {
	bar := widget.NewProgressBar()
	bar.Min = -1
	bar.Max = 1
	bar.TextFormatter = func() string {
		return fmt.Sprintf("%s=%.2f", name, bar.Value)
	}
	return bar
}

// SetThrottle shows the throttles on the bars
func (ui *RobotUI) SetThrottle(left, right float64) error {
	ui.mtx.Lock()
	ui.throttle = control.MotorCommand{Left: left, Right: right}
	ui.mtx.Unlock()

	fyne.Do(ui.refreshThrottle)
	return nil
}

func (ui *RobotUI) refreshThrottle() {
	ui.mtx.Lock()
	cmd := ui.throttle
	ui.mtx.Unlock()

	ui.left.SetValue(cmd.Left)
	ui.right.SetValue(cmd.Right)
}

// SetPixel buffers a color until Show. Indexes past the indicator are ignored
func (ui *RobotUI) SetPixel(i int, c color.RGBA) {
	if i < 0 || i >= len(ui.pixels) {
		return
	}
	ui.mtx.Lock()
	ui.pixels[i] = c
	ui.mtx.Unlock()
}

// Show draws the buffered pixels
func (ui *RobotUI) Show() error {
	ui.mtx.Lock()
	ui.shown = ui.pixels
	ui.mtx.Unlock()

	fyne.Do(ui.refreshDots)
	return nil
}

func (ui *RobotUI) refreshDots() {
	ui.mtx.Lock()
	shown := ui.shown
	ui.mtx.Unlock()

	for i, dot := range ui.dots {
		c := unlitColor
		if shown[i] != (color.RGBA{}) {
			c = litColor
		}
		if dot.FillColor == c {
			continue
		}
		dot.FillColor = c
		dot.Refresh()
	}
}

// Content lays out the indicator above the throttle bars. The leftmost zone has the highest
// index, so dots are placed from the top index down
func (ui *RobotUI) Content() fyne.CanvasObject {
	dots := []fyne.CanvasObject{}
	for i := len(ui.dots) - 1; i >= 0; i-- {
		dots = append(dots, ui.dots[i])
	}

	return container.NewVBox(
		widget.NewCard("Indicator", "", container.NewCenter(
			container.NewGridWrap(fyne.NewSize(dotSize, dotSize), dots...),
		)),
		widget.NewCard("Motors", "", container.NewVBox(
			container.NewGridWithColumns(2, widget.NewLabel("Left"), ui.left),
			container.NewGridWithColumns(2, widget.NewLabel("Right"), ui.right),
		)),
	)
}

// Run shows the window and blocks until it is closed or ctx is done
func (ui *RobotUI) Run(ctx context.Context) {
	window := ui.app.NewWindow("ChocoRobo")

	go func() {
		<-ctx.Done()
		fyne.Do(func() {
			ui.app.Quit()
		})
	}()

	window.SetContent(ui.Content())
	window.Resize(fyne.NewSize(300, 200))
	window.ShowAndRun()
}
