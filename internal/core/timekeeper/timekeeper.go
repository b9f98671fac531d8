package timekeeper

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"timerp/internal/core/model"
	"timerp/internal/logging"
)

var (
	// ErrRunning is returned when a phase is started while the countdown is running.
	ErrRunning = errors.New("timer already running")
	// ErrNotActive is returned by PauseOrResume when no phase is mid-countdown.
	ErrNotActive = errors.New("no active phase")
)

// SettingsStore provides the validated interval lengths.
type SettingsStore interface {
	Get() model.Settings
	Set(workMinutes, breakMinutes int) (model.Settings, bool, error)
	SetText(workText, breakText string) (model.Settings, bool, error)
}

// Scheduler runs fn once after delay. Implementations must not call fn synchronously.
type Scheduler interface {
	AfterFunc(delay time.Duration, fn func())
}

// SchedulerFunc adapts a function to Scheduler.
type SchedulerFunc func(delay time.Duration, fn func())

// AfterFunc calls f(delay, fn).
func (f SchedulerFunc) AfterFunc(delay time.Duration, fn func()) {
	f(delay, fn)
}

// RealScheduler schedules ticks on time.AfterFunc.
var RealScheduler Scheduler = SchedulerFunc(func(delay time.Duration, fn func()) {
	time.AfterFunc(delay, fn)
})

// Config contains runtime options for TimeKeeper.
type Config struct {
	TickInterval time.Duration
	Scheduler    Scheduler
	Logger       *slog.Logger
	Now          func() time.Time
}

// TimeKeeper is the Pomodoro phase state machine.
//
// A tick is only ever scheduled by StartWork, StartBreak, a resume, or the previous
// tick, and carries the generation it was scheduled under. Every transition that
// stops or restarts the countdown bumps the generation, so a tick that fires late
// after a pause or reset finds a mismatch and does nothing.
type TimeKeeper struct {
	mu         sync.Mutex
	store      SettingsStore
	options    Config
	phase      Phase
	remaining  int
	running    bool
	completed  bool
	generation uint64
	events     []chan Event
	closed     bool
}

// New creates a TimeKeeper in the ready state, showing the full work interval.
func New(store SettingsStore, options Config) *TimeKeeper {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if options.Scheduler == nil {
		options.Scheduler = RealScheduler
	}
	if options.Logger == nil {
		options.Logger = logging.NewNop()
	}
	if options.Now == nil {
		options.Now = time.Now
	}

	keeper := &TimeKeeper{
		store:   store,
		options: options,
		phase:   PhaseIdle,
	}
	keeper.remaining = store.Get().WorkSeconds()
	return keeper
}

// Subscribe registers a new observer channel. Slow observers miss events rather
// than block the countdown.
func (keeper *TimeKeeper) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.closed {
		close(ch)
		return ch
	}
	keeper.events = append(keeper.events, ch)
	return ch
}

// Snapshot returns the current state.
func (keeper *TimeKeeper) Snapshot() Snapshot {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.snapshotLocked()
}

// Settings returns the current interval lengths.
func (keeper *TimeKeeper) Settings() model.Settings {
	return keeper.store.Get()
}

// StartWork begins a work interval.
func (keeper *TimeKeeper) StartWork() error {
	return keeper.startPhase(PhaseWorking)
}

// StartBreak begins a break interval.
func (keeper *TimeKeeper) StartBreak() error {
	return keeper.startPhase(PhaseBreak)
}

func (keeper *TimeKeeper) startPhase(phase Phase) error {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.running {
		return fmt.Errorf("start %s: %w", phase, ErrRunning)
	}

	settings := keeper.store.Get()
	keeper.phase = phase
	keeper.completed = false
	keeper.running = true
	if phase == PhaseWorking {
		keeper.remaining = settings.WorkSeconds()
	} else {
		keeper.remaining = settings.BreakSeconds()
	}
	keeper.generation++
	keeper.scheduleLocked()

	keeper.options.Logger.Debug("phase started", "phase", phase, "remaining", keeper.remaining)
	keeper.emitLocked(Event{Type: EventStateChange, Snapshot: keeper.snapshotLocked(), At: keeper.options.Now()})
	return nil
}

// PauseOrResume toggles the countdown of the active phase.
func (keeper *TimeKeeper) PauseOrResume() error {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.phase == PhaseIdle || keeper.completed {
		return fmt.Errorf("pause or resume: %w", ErrNotActive)
	}

	keeper.running = !keeper.running
	keeper.generation++
	if keeper.running {
		keeper.scheduleLocked()
		keeper.options.Logger.Debug("resumed", "phase", keeper.phase, "remaining", keeper.remaining)
	} else {
		keeper.options.Logger.Debug("paused", "phase", keeper.phase, "remaining", keeper.remaining)
	}

	keeper.emitLocked(Event{Type: EventStateChange, Snapshot: keeper.snapshotLocked(), At: keeper.options.Now()})
	return nil
}

// Reset stops the countdown and returns to the ready state.
func (keeper *TimeKeeper) Reset() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.resetLocked()
	keeper.emitLocked(Event{Type: EventStateChange, Snapshot: keeper.snapshotLocked(), At: keeper.options.Now()})
}

// UpdateSettings stores new interval lengths and resets the timer when they changed.
func (keeper *TimeKeeper) UpdateSettings(workMinutes, breakMinutes int) (model.Settings, bool, error) {
	settings, changed, err := keeper.store.Set(workMinutes, breakMinutes)
	return keeper.afterSettingsUpdate(settings, changed, err)
}

// UpdateSettingsText parses raw input and applies it like UpdateSettings.
func (keeper *TimeKeeper) UpdateSettingsText(workText, breakText string) (model.Settings, bool, error) {
	settings, changed, err := keeper.store.SetText(workText, breakText)
	return keeper.afterSettingsUpdate(settings, changed, err)
}

func (keeper *TimeKeeper) afterSettingsUpdate(settings model.Settings, changed bool, err error) (model.Settings, bool, error) {
	if err != nil {
		keeper.options.Logger.Debug("settings rejected", "err", err)
		return settings, false, fmt.Errorf("update settings: %w", err)
	}
	if !changed {
		return settings, false, nil
	}

	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.options.Logger.Info("settings changed", "work_minutes", settings.WorkMinutes, "break_minutes", settings.BreakMinutes)
	keeper.resetLocked()
	keeper.emitLocked(Event{Type: EventSettingsChanged, Snapshot: keeper.snapshotLocked(), At: keeper.options.Now()})
	return settings, true, nil
}

// Close stops any pending tick and closes observer channels.
func (keeper *TimeKeeper) Close() {
	keeper.mu.Lock()
	if keeper.closed {
		keeper.mu.Unlock()
		return
	}
	keeper.closed = true
	keeper.running = false
	keeper.generation++
	events := keeper.events
	keeper.events = nil
	keeper.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

func (keeper *TimeKeeper) tick(generation uint64) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if !keeper.running || generation != keeper.generation {
		return
	}

	keeper.remaining--
	if keeper.remaining > 0 {
		keeper.scheduleLocked()
		keeper.emitLocked(Event{Type: EventTick, Snapshot: keeper.snapshotLocked(), At: keeper.options.Now()})
		return
	}

	keeper.remaining = 0
	keeper.running = false
	keeper.completed = true
	keeper.generation++

	message := completionMessage(keeper.phase, keeper.store.Get())
	keeper.options.Logger.Info("phase complete", "phase", keeper.phase)
	keeper.emitLocked(Event{
		Type:     EventPhaseComplete,
		Snapshot: keeper.snapshotLocked(),
		Message:  message,
		At:       keeper.options.Now(),
	})
}

func (keeper *TimeKeeper) scheduleLocked() {
	generation := keeper.generation
	keeper.options.Scheduler.AfterFunc(keeper.options.TickInterval, func() {
		keeper.tick(generation)
	})
}

func (keeper *TimeKeeper) resetLocked() {
	keeper.running = false
	keeper.completed = false
	keeper.phase = PhaseIdle
	keeper.remaining = keeper.store.Get().WorkSeconds()
	keeper.generation++
	keeper.options.Logger.Debug("reset", "remaining", keeper.remaining)
}

func (keeper *TimeKeeper) snapshotLocked() Snapshot {
	return Snapshot{
		Phase:            keeper.phase,
		RemainingSeconds: keeper.remaining,
		Running:          keeper.running,
		Completed:        keeper.completed,
		Settings:         keeper.store.Get(),
	}
}

func (keeper *TimeKeeper) emitLocked(event Event) {
	for _, ch := range keeper.events {
		select {
		case ch <- event:
		default:
		}
	}
}

func completionMessage(phase Phase, settings model.Settings) string {
	if phase == PhaseWorking {
		return fmt.Sprintf("Your %d-minute work session is over! Time for a break.", settings.WorkMinutes)
	}
	return fmt.Sprintf("Your %d-minute break is over! Back to work.", settings.BreakMinutes)
}
