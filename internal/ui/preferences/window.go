package preferences

import (
	"errors"
	"strconv"

	"timerp/internal/core/model"
	"timerp/internal/core/settings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// Updater applies raw duration input.
type Updater interface {
	Settings() model.Settings
	UpdateSettingsText(workText, breakText string) (model.Settings, bool, error)
}

// Dialog is the modal settings form shown over the timer window.
type Dialog struct {
	parent     fyne.Window
	updater    Updater
	onApplied  func(model.Settings)
	workEntry  *widget.Entry
	breakEntry *widget.Entry
	dialog     *dialog.CustomDialog

	showError func(error, fyne.Window)
	showInfo  func(title, message string, parent fyne.Window)
}

// New creates the settings dialog. onApplied runs after a save that changed the values.
func New(parent fyne.Window, updater Updater, onApplied func(model.Settings)) *Dialog {
	workEntry := widget.NewEntry()
	breakEntry := widget.NewEntry()

	form := container.NewVBox(
		widget.NewLabel("Work time (minutes):"),
		workEntry,
		widget.NewLabel("Break time (minutes):"),
		breakEntry,
	)

	prefs := &Dialog{
		parent:     parent,
		updater:    updater,
		onApplied:  onApplied,
		workEntry:  workEntry,
		breakEntry: breakEntry,
		showError:  dialog.ShowError,
		showInfo:   dialog.ShowInformation,
	}

	saveButton := widget.NewButton("Save", prefs.handleSave)
	saveButton.Importance = widget.HighImportance
	cancelButton := widget.NewButton("Cancel", func() {
		prefs.dialog.Hide()
	})

	prefs.dialog = dialog.NewCustomWithoutButtons("Settings", form, parent)
	prefs.dialog.SetButtons([]fyne.CanvasObject{cancelButton, saveButton})
	prefs.dialog.Resize(fyne.NewSize(300, 200))
	workEntry.OnSubmitted = func(string) { prefs.handleSave() }
	breakEntry.OnSubmitted = func(string) { prefs.handleSave() }

	return prefs
}

// Show fills the form with the current settings and opens the dialog.
func (prefs *Dialog) Show() {
	current := prefs.updater.Settings()
	prefs.workEntry.SetText(strconv.Itoa(current.WorkMinutes))
	prefs.breakEntry.SetText(strconv.Itoa(current.BreakMinutes))
	prefs.dialog.Show()
}

func (prefs *Dialog) handleSave() {
	updated, changed, err := prefs.updater.UpdateSettingsText(prefs.workEntry.Text, prefs.breakEntry.Text)
	if err != nil {
		var validation *settings.ValidationError
		if errors.As(err, &validation) {
			err = errors.New(validation.Message())
		}
		prefs.showError(err, prefs.parent)
		return
	}

	prefs.dialog.Hide()
	if !changed {
		return
	}
	prefs.showInfo("Settings saved", "New settings applied.", prefs.parent)
	if prefs.onApplied != nil {
		prefs.onApplied(updated)
	}
}
