// Package timerwindow is the main countdown window.
package timerwindow

import (
	"image/color"
	"log/slog"

	"timerp/internal/core/model"
	"timerp/internal/core/timekeeper"
	"timerp/internal/logging"
	"timerp/internal/ui/preferences"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// Controller is the phase controller the window drives.
type Controller interface {
	Snapshot() timekeeper.Snapshot
	Settings() model.Settings
	StartWork() error
	StartBreak() error
	PauseOrResume() error
	Reset()
	UpdateSettingsText(workText, breakText string) (model.Settings, bool, error)
}

// Notifier plays the completion sound.
type Notifier interface {
	Notify()
}

// Options configures the window.
type Options struct {
	Notifier Notifier
	// DesktopNotify also sends an OS notification on phase completion.
	DesktopNotify bool
	// OnRender is called after every render, e.g. to mirror state into the tray.
	OnRender func(timekeeper.Snapshot)
	Logger   *slog.Logger
}

var (
	colorBlue      = color.NRGBA{R: 0x15, G: 0x65, B: 0xc0, A: 0xff}
	colorRed       = color.NRGBA{R: 0xd3, G: 0x2f, B: 0x2f, A: 0xff}
	colorGreen     = color.NRGBA{R: 0x2e, G: 0x9d, B: 0x32, A: 0xff}
	colorDarkGreen = color.NRGBA{R: 0x1b, G: 0x5e, B: 0x20, A: 0xff}
)

// Window holds the timer widgets.
type Window struct {
	app        fyne.App
	window     fyne.Window
	controller Controller
	options    Options
	logger     *slog.Logger

	phaseLabel  *canvas.Text
	timerLabel  *canvas.Text
	startWork   *widget.Button
	startBreak  *widget.Button
	pause       *widget.Button
	reset       *widget.Button
	settings    *widget.Button
	preferences *preferences.Dialog

	showInfo func(title, message string, parent fyne.Window)
}

// New builds the window and renders the controller's current state.
func New(app fyne.App, controller Controller, options Options) *Window {
	logger := options.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	window := app.NewWindow("Pomodoro Timer")
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	phaseLabel := canvas.NewText("", colorBlue)
	phaseLabel.Alignment = fyne.TextAlignCenter
	phaseLabel.TextStyle = fyne.TextStyle{Bold: true}
	phaseLabel.TextSize = 22

	timerLabel := canvas.NewText("00:00", colorGreen)
	timerLabel.Alignment = fyne.TextAlignCenter
	timerLabel.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	timerLabel.TextSize = 56

	timer := &Window{
		app:        app,
		window:     window,
		controller: controller,
		options:    options,
		logger:     logger,
		phaseLabel: phaseLabel,
		timerLabel: timerLabel,
		showInfo:   dialog.ShowInformation,
	}

	timer.startWork = widget.NewButton("Start work", timer.command("start work", controller.StartWork))
	timer.startBreak = widget.NewButton("Start break", timer.command("start break", controller.StartBreak))
	timer.pause = widget.NewButton("Pause", timer.command("pause", controller.PauseOrResume))
	timer.reset = widget.NewButton("Reset", timer.command("reset", func() error {
		controller.Reset()
		return nil
	}))
	timer.settings = widget.NewButton("Settings", timer.OpenSettings)
	timer.preferences = preferences.New(window, controller, func(model.Settings) {
		timer.Render(controller.Snapshot())
	})

	buttons := container.NewHBox(timer.startWork, timer.startBreak, timer.pause, timer.reset)
	content := container.NewVBox(
		phaseLabel,
		timerLabel,
		container.NewCenter(buttons),
		container.NewCenter(timer.settings),
	)
	window.SetContent(container.NewPadded(content))
	window.Resize(fyne.NewSize(420, 300))
	window.SetFixedSize(true)

	timer.Render(controller.Snapshot())
	return timer
}

// Window returns the underlying fyne window.
func (timer *Window) Window() fyne.Window {
	return timer.window
}

// Show brings the window to the front.
func (timer *Window) Show() {
	timer.window.Show()
	timer.window.RequestFocus()
}

// StartWork runs the start-work command as if its button were tapped.
func (timer *Window) StartWork() {
	timer.command("start work", timer.controller.StartWork)()
}

// StartBreak runs the start-break command.
func (timer *Window) StartBreak() {
	timer.command("start break", timer.controller.StartBreak)()
}

// PauseOrResume toggles the countdown.
func (timer *Window) PauseOrResume() {
	timer.command("pause", timer.controller.PauseOrResume)()
}

// Reset returns the timer to the ready state.
func (timer *Window) Reset() {
	timer.controller.Reset()
	timer.Render(timer.controller.Snapshot())
}

// OpenSettings shows the settings dialog unless the countdown is running.
func (timer *Window) OpenSettings() {
	if timer.controller.Snapshot().Running {
		return
	}
	timer.Show()
	timer.preferences.Show()
}

// Listen renders every event on the UI goroutine until events is closed.
func (timer *Window) Listen(events <-chan timekeeper.Event) {
	for event := range events {
		fyne.Do(func() {
			timer.HandleEvent(event)
		})
	}
}

// HandleEvent renders the event and announces phase completion. Must run on the
// UI goroutine.
func (timer *Window) HandleEvent(event timekeeper.Event) {
	timer.Render(event.Snapshot)
	if event.Type != timekeeper.EventPhaseComplete {
		return
	}

	if timer.options.Notifier != nil {
		timer.options.Notifier.Notify()
	}
	if timer.options.DesktopNotify {
		timer.app.SendNotification(fyne.NewNotification("Time's up", event.Message))
	}
	timer.showInfo("Time's up", event.Message, timer.window)
}

// Render applies a snapshot to the widgets. Must run on the UI goroutine.
func (timer *Window) Render(snapshot timekeeper.Snapshot) {
	text, fill := phaseAppearance(snapshot.Status())
	timer.phaseLabel.Text = text
	timer.phaseLabel.Color = fill
	timer.phaseLabel.Refresh()

	timer.timerLabel.Text = snapshot.Display()
	timer.timerLabel.Refresh()

	controls := snapshot.Controls()
	setEnabled(timer.startWork, controls.StartWork)
	setEnabled(timer.startBreak, controls.StartBreak)
	setEnabled(timer.pause, controls.PauseResume)
	setEnabled(timer.reset, controls.Reset)
	setEnabled(timer.settings, controls.Settings)
	timer.pause.SetText(controls.PauseLabel)

	if timer.options.OnRender != nil {
		timer.options.OnRender(snapshot)
	}
}

func (timer *Window) command(name string, run func() error) func() {
	return func() {
		if err := run(); err != nil {
			timer.logger.Warn("command rejected", "command", name, "err", err)
		}
		timer.Render(timer.controller.Snapshot())
	}
}

func phaseAppearance(status timekeeper.Status) (string, color.Color) {
	switch status {
	case timekeeper.StatusWorking:
		return "Working", colorRed
	case timekeeper.StatusBreakReady:
		return "Break ready", colorGreen
	case timekeeper.StatusOnBreak:
		return "On break", colorDarkGreen
	case timekeeper.StatusWorkReady:
		return "Work ready", colorBlue
	default:
		return "Ready", colorBlue
	}
}

func setEnabled(button *widget.Button, enabled bool) {
	if enabled {
		button.Enable()
		return
	}
	button.Disable()
}
