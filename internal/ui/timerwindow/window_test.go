package timerwindow

import (
	"sync"
	"testing"
	"time"

	"timerp/internal/core/model"
	"timerp/internal/core/settings"
	"timerp/internal/core/timekeeper"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type manualScheduler struct {
	mu      sync.Mutex
	pending []func()
}

func (scheduler *manualScheduler) AfterFunc(_ time.Duration, fn func()) {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	scheduler.pending = append(scheduler.pending, fn)
}

func (scheduler *manualScheduler) Fire() bool {
	scheduler.mu.Lock()
	if len(scheduler.pending) == 0 {
		scheduler.mu.Unlock()
		return false
	}
	fn := scheduler.pending[0]
	scheduler.pending = scheduler.pending[1:]
	scheduler.mu.Unlock()
	fn()
	return true
}

type countingNotifier struct {
	calls int
}

func (notifier *countingNotifier) Notify() {
	notifier.calls++
}

type harness struct {
	timer     *Window
	keeper    *timekeeper.TimeKeeper
	scheduler *manualScheduler
	events    <-chan timekeeper.Event
	notifier  *countingNotifier
	infos     []string
	rendered  int
}

func newHarness(t *testing.T, initial model.Settings) *harness {
	t.Helper()
	app := test.NewTempApp(t)

	store, err := settings.New(initial)
	require.NoError(t, err)
	scheduler := &manualScheduler{}
	keeper := timekeeper.New(store, timekeeper.Config{Scheduler: scheduler})

	h := &harness{
		keeper:    keeper,
		scheduler: scheduler,
		events:    keeper.Subscribe(8192),
		notifier:  &countingNotifier{},
	}
	h.timer = New(app, keeper, Options{
		Notifier: h.notifier,
		OnRender: func(timekeeper.Snapshot) { h.rendered++ },
	})
	h.timer.showInfo = func(_, message string, _ fyne.Window) {
		h.infos = append(h.infos, message)
	}
	return h
}

// pump fires n ticks and delivers the resulting events the way Listen would.
func (h *harness) pump(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.True(t, h.scheduler.Fire())
	}
	for len(h.events) > 0 {
		h.timer.HandleEvent(<-h.events)
	}
}

func TestNew_ReadyDisplay(t *testing.T) {
	h := newHarness(t, model.DefaultSettings())

	assert.Equal(t, "Ready", h.timer.phaseLabel.Text)
	assert.Equal(t, colorBlue, h.timer.phaseLabel.Color)
	assert.Equal(t, "25:00", h.timer.timerLabel.Text)
	assert.False(t, h.timer.startWork.Disabled())
	assert.True(t, h.timer.startBreak.Disabled())
	assert.True(t, h.timer.pause.Disabled())
	assert.True(t, h.timer.reset.Disabled())
	assert.False(t, h.timer.settings.Disabled())
	assert.Equal(t, 1, h.rendered)
}

func TestFullWorkCycle(t *testing.T) {
	h := newHarness(t, model.DefaultSettings())

	test.Tap(h.timer.startWork)
	assert.Equal(t, "Working", h.timer.phaseLabel.Text)
	assert.Equal(t, colorRed, h.timer.phaseLabel.Color)
	assert.Equal(t, "25:00", h.timer.timerLabel.Text)
	assert.True(t, h.timer.settings.Disabled())
	assert.False(t, h.timer.pause.Disabled())

	h.pump(t, 1)
	assert.Equal(t, "24:59", h.timer.timerLabel.Text)

	h.pump(t, 1499)
	assert.Equal(t, "00:00", h.timer.timerLabel.Text)
	assert.Equal(t, "Break ready", h.timer.phaseLabel.Text)
	assert.Equal(t, colorGreen, h.timer.phaseLabel.Color)
	assert.False(t, h.timer.startBreak.Disabled())
	assert.True(t, h.timer.startWork.Disabled())
	assert.True(t, h.timer.pause.Disabled())
	assert.False(t, h.timer.reset.Disabled())
	assert.False(t, h.timer.settings.Disabled())

	assert.Equal(t, 1, h.notifier.calls)
	require.Len(t, h.infos, 1)
	assert.Contains(t, h.infos[0], "25-minute work session")

	test.Tap(h.timer.startBreak)
	assert.Equal(t, "On break", h.timer.phaseLabel.Text)
	assert.Equal(t, colorDarkGreen, h.timer.phaseLabel.Color)
	assert.Equal(t, "05:00", h.timer.timerLabel.Text)

	h.pump(t, 300)
	assert.Equal(t, "Work ready", h.timer.phaseLabel.Text)
	assert.False(t, h.timer.startWork.Disabled())
	assert.Equal(t, 2, h.notifier.calls)
}

func TestPauseResume(t *testing.T) {
	h := newHarness(t, model.DefaultSettings())
	test.Tap(h.timer.startWork)
	h.pump(t, 3)

	test.Tap(h.timer.pause)
	assert.Equal(t, "Resume", h.timer.pause.Text)
	assert.Equal(t, "24:57", h.timer.timerLabel.Text)
	assert.False(t, h.timer.settings.Disabled(), "settings can be edited while paused")
	assert.True(t, h.timer.startWork.Disabled())

	test.Tap(h.timer.pause)
	assert.Equal(t, "Pause", h.timer.pause.Text)
	assert.Equal(t, "24:57", h.timer.timerLabel.Text)
	assert.True(t, h.timer.settings.Disabled())
}

func TestReset(t *testing.T) {
	h := newHarness(t, model.Settings{WorkMinutes: 2, BreakMinutes: 1})
	test.Tap(h.timer.startWork)
	h.pump(t, 10)

	test.Tap(h.timer.reset)
	assert.Equal(t, "Ready", h.timer.phaseLabel.Text)
	assert.Equal(t, "02:00", h.timer.timerLabel.Text)
	assert.True(t, h.timer.reset.Disabled())
	assert.True(t, h.timer.pause.Disabled())
	assert.False(t, h.timer.startWork.Disabled())
}

func TestOpenSettings(t *testing.T) {
	h := newHarness(t, model.DefaultSettings())
	test.Tap(h.timer.startWork)

	h.timer.OpenSettings()
	assert.Nil(t, h.timer.window.Canvas().Overlays().Top(), "settings stay closed while running")

	test.Tap(h.timer.pause)
	h.timer.OpenSettings()
	assert.NotNil(t, h.timer.window.Canvas().Overlays().Top())
}

func TestTrayCommands(t *testing.T) {
	h := newHarness(t, model.DefaultSettings())

	h.timer.StartBreak()
	assert.Equal(t, "On break", h.timer.phaseLabel.Text)

	h.timer.StartWork()
	assert.Equal(t, "On break", h.timer.phaseLabel.Text, "start is ignored while running")

	h.timer.PauseOrResume()
	assert.Equal(t, "Resume", h.timer.pause.Text)

	h.timer.Reset()
	assert.Equal(t, "Ready", h.timer.phaseLabel.Text)
}
