package tray

import (
	"fmt"

	"timerp/internal/core/timekeeper"
	"timerp/resources"

	"fyne.io/fyne/v2"
)

// App is the part of desktop.App the tray needs.
type App interface {
	SetSystemTrayMenu(menu *fyne.Menu)
	SetSystemTrayIcon(icon fyne.Resource)
}

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnStartWork   func()
	OnStartBreak  func()
	OnPauseResume func()
	OnReset       func()
	OnQuit        func()
}

// Manager mirrors the timer state into the system tray.
type Manager struct {
	app        App
	callbacks  Callbacks
	statusItem *fyne.MenuItem
	showItem   *fyne.MenuItem
	workItem   *fyne.MenuItem
	breakItem  *fyne.MenuItem
	pauseItem  *fyne.MenuItem
	resetItem  *fyne.MenuItem
	quitItem   *fyne.MenuItem
	icon       string
}

// New creates a tray manager with the provided callbacks.
func New(app App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("Status: ready", nil)
	manager.statusItem.Disabled = true
	manager.showItem = fyne.NewMenuItem("Show timer", invoke(&manager.callbacks.OnShow))
	manager.workItem = fyne.NewMenuItem("Start work", invoke(&manager.callbacks.OnStartWork))
	manager.breakItem = fyne.NewMenuItem("Start break", invoke(&manager.callbacks.OnStartBreak))
	manager.pauseItem = fyne.NewMenuItem("Pause", invoke(&manager.callbacks.OnPauseResume))
	manager.resetItem = fyne.NewMenuItem("Reset", invoke(&manager.callbacks.OnReset))
	manager.quitItem = fyne.NewMenuItem("Quit", invoke(&manager.callbacks.OnQuit))
	manager.quitItem.IsQuit = true

	return manager
}

// Update refreshes labels, enablement and icon from a snapshot.
func (manager *Manager) Update(snapshot timekeeper.Snapshot) {
	controls := snapshot.Controls()
	manager.statusItem.Label = fmt.Sprintf("Status: %s %s", StatusText(snapshot.Status()), snapshot.Display())
	manager.workItem.Disabled = !controls.StartWork
	manager.breakItem.Disabled = !controls.StartBreak
	manager.pauseItem.Disabled = !controls.PauseResume
	manager.pauseItem.Label = controls.PauseLabel
	manager.resetItem.Disabled = !controls.Reset

	icon := iconFor(snapshot)
	if icon != manager.icon && manager.app != nil {
		manager.app.SetSystemTrayIcon(resources.MustIcon(icon))
	}
	manager.icon = icon
	manager.refreshMenu()
}

// Menu returns the current tray menu.
func (manager *Manager) Menu() *fyne.Menu {
	return fyne.NewMenu("timerp",
		manager.statusItem,
		manager.showItem,
		fyne.NewMenuItemSeparator(),
		manager.workItem,
		manager.breakItem,
		manager.pauseItem,
		manager.resetItem,
		fyne.NewMenuItemSeparator(),
		manager.quitItem,
	)
}

func (manager *Manager) refreshMenu() {
	if manager.app != nil {
		manager.app.SetSystemTrayMenu(manager.Menu())
	}
}

// StatusText is the human label for a status.
func StatusText(status timekeeper.Status) string {
	switch status {
	case timekeeper.StatusWorking:
		return "working"
	case timekeeper.StatusBreakReady:
		return "break ready"
	case timekeeper.StatusOnBreak:
		return "on break"
	case timekeeper.StatusWorkReady:
		return "work ready"
	default:
		return "ready"
	}
}

func iconFor(snapshot timekeeper.Snapshot) string {
	switch snapshot.Phase {
	case timekeeper.PhaseWorking:
		return resources.IconWorking
	case timekeeper.PhaseBreak:
		return resources.IconBreak
	default:
		return resources.IconIdle
	}
}

// invoke reads the handler at call time so callbacks may be replaced after New.
func invoke(handler *func()) func() {
	return func() {
		if *handler != nil {
			(*handler)()
		}
	}
}
