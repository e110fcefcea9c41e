// Package notify is the centralized store for ephemeral user notifications.
// Producers anywhere in the application push notifications through a Manager
// (or the package-level Default); consumers subscribe once and re-render from
// the list snapshot they receive on every change. Notifications with an
// auto-close duration remove themselves when it elapses.
package notify

import (
	"fmt"
	"sync"
	"time"
)

// Type classifies a notification for presentation.
type Type string

const (
	TypeSuccess Type = "success"
	TypeError   Type = "error"
	TypeWarning Type = "warning"
	TypeInfo    Type = "info"
)

// Default auto-close durations applied by the convenience helpers.
const (
	DefaultSuccessAutoClose = 3 * time.Second
	DefaultInfoAutoClose    = 3 * time.Second
	DefaultWarningAutoClose = 4 * time.Second
	DefaultErrorAutoClose   = 5 * time.Second
)

// Action is an optional button attached to a notification.
type Action struct {
	Label string
	Run   func()
}

// Notification is a single entry in the list. Consumers always receive
// copies; mutating one never affects the manager's state.
type Notification struct {
	ID        string
	Type      Type
	Title     string
	Message   string
	Timestamp string // creation time, RFC 3339
	AutoClose time.Duration
	Actions   []Action
}

// Options carries the optional parts of Add.
type Options struct {
	// AutoClose removes the notification after this duration when > 0.
	AutoClose time.Duration
	Actions   []Action
}

// Listener receives the full current list after every mutation.
type Listener func([]Notification)

// Manager owns an ordered list of notifications, newest first. All methods
// are safe for concurrent use; the auto-close timer funnels through the same
// Remove path as manual dismissal, so a notification removed early makes the
// timer a harmless no-op.
type Manager struct {
	mu        sync.Mutex
	items     []Notification
	listeners map[int]Listener
	nextSub   int
	counter   int
	timers    map[string]*time.Timer
	now       func() time.Time
}

// NewManager returns an empty manager. Most callers use the package-level
// Default; tests construct their own.
func NewManager() *Manager {
	return &Manager{
		listeners: make(map[int]Listener),
		timers:    make(map[string]*time.Timer),
		now:       time.Now,
	}
}

// Add creates a notification at the front of the list and returns its id.
// Subscribers are notified before Add returns; a positive opts.AutoClose
// schedules removal after that duration.
func (m *Manager) Add(typ Type, title, message string, opts *Options) string {
	m.mu.Lock()
	m.counter++
	n := Notification{
		ID:        fmt.Sprintf("notification_%d", m.counter),
		Type:      typ,
		Title:     title,
		Message:   message,
		Timestamp: m.now().Format(time.RFC3339),
	}
	if opts != nil {
		n.AutoClose = opts.AutoClose
		n.Actions = append([]Action(nil), opts.Actions...)
	}
	m.items = append([]Notification{n}, m.items...)
	if n.AutoClose > 0 {
		id := n.ID
		m.timers[id] = time.AfterFunc(n.AutoClose, func() { m.Remove(id) })
	}
	listeners := m.listenersLocked()
	m.mu.Unlock()

	m.dispatch(listeners)
	return n.ID
}

// Remove deletes the notification with the given id. An unknown id is a
// no-op, but subscribers are notified either way. A pending auto-close timer
// for the id is stopped.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	if t, ok := m.timers[id]; ok {
		t.Stop()
		delete(m.timers, id)
	}
	for i, n := range m.items {
		if n.ID == id {
			m.items = append(m.items[:i:i], m.items[i+1:]...)
			break
		}
	}
	listeners := m.listenersLocked()
	m.mu.Unlock()

	m.dispatch(listeners)
}

// ClearAll empties the list and notifies subscribers exactly once.
func (m *Manager) ClearAll() {
	m.mu.Lock()
	for id, t := range m.timers {
		t.Stop()
		delete(m.timers, id)
	}
	m.items = nil
	listeners := m.listenersLocked()
	m.mu.Unlock()

	m.dispatch(listeners)
}

// Notifications returns a copy of the current list, newest first.
func (m *Manager) Notifications() []Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// Subscribe registers a listener and returns the function that deregisters
// it. Each call is an independent registration, even for the same listener;
// calling the returned function more than once is harmless.
func (m *Manager) Subscribe(l Listener) (unsubscribe func()) {
	m.mu.Lock()
	id := m.nextSub
	m.nextSub++
	m.listeners[id] = l
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.listeners, id)
		m.mu.Unlock()
	}
}

// Option adjusts a notification created by the convenience helpers.
type Option func(*Options)

// WithAutoClose overrides the helper's default auto-close duration. A zero
// or negative duration keeps the notification until it is removed.
func WithAutoClose(d time.Duration) Option {
	return func(o *Options) { o.AutoClose = d }
}

// WithActions attaches actions to the notification.
func WithActions(actions ...Action) Option {
	return func(o *Options) { o.Actions = actions }
}

func applyOptions(autoClose time.Duration, opts []Option) *Options {
	o := &Options{AutoClose: autoClose}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Success adds a success notification with the type's default auto-close.
func (m *Manager) Success(title, message string, opts ...Option) string {
	return m.Add(TypeSuccess, title, message, applyOptions(DefaultSuccessAutoClose, opts))
}

// Info adds an info notification with the type's default auto-close.
func (m *Manager) Info(title, message string, opts ...Option) string {
	return m.Add(TypeInfo, title, message, applyOptions(DefaultInfoAutoClose, opts))
}

// Warning adds a warning notification with the type's default auto-close.
func (m *Manager) Warning(title, message string, opts ...Option) string {
	return m.Add(TypeWarning, title, message, applyOptions(DefaultWarningAutoClose, opts))
}

// Error translates an error into an error notification. The message comes
// from UserMessage, so errors carrying a user-facing form show that instead
// of their raw text.
func (m *Manager) Error(err error, opts ...Option) string {
	return m.Add(TypeError, "Error", UserMessage(err), applyOptions(DefaultErrorAutoClose, opts))
}

// snapshotLocked copies the list. Callers must hold m.mu.
func (m *Manager) snapshotLocked() []Notification {
	return append([]Notification(nil), m.items...)
}

// listenersLocked copies the listener set. Callers must hold m.mu.
func (m *Manager) listenersLocked() []Listener {
	out := make([]Listener, 0, len(m.listeners))
	for _, l := range m.listeners {
		out = append(out, l)
	}
	return out
}

// dispatch invokes listeners outside the lock so they may call back into the
// manager. Each listener gets its own copy of the list.
func (m *Manager) dispatch(listeners []Listener) {
	for _, l := range listeners {
		m.mu.Lock()
		snapshot := m.snapshotLocked()
		m.mu.Unlock()
		l(snapshot)
	}
}

// Default is the process-wide manager behind the package-level helpers.
var Default = NewManager()

// Add adds a notification to the Default manager.
func Add(typ Type, title, message string, opts *Options) string {
	return Default.Add(typ, title, message, opts)
}

// Remove removes a notification from the Default manager.
func Remove(id string) { Default.Remove(id) }

// ClearAll empties the Default manager.
func ClearAll() { Default.ClearAll() }

// Notifications returns the Default manager's current list.
func Notifications() []Notification { return Default.Notifications() }

// Subscribe registers a listener on the Default manager.
func Subscribe(l Listener) (unsubscribe func()) { return Default.Subscribe(l) }

// Success adds a success notification to the Default manager.
func Success(title, message string, opts ...Option) string {
	return Default.Success(title, message, opts...)
}

// Info adds an info notification to the Default manager.
func Info(title, message string, opts ...Option) string {
	return Default.Info(title, message, opts...)
}

// Warning adds a warning notification to the Default manager.
func Warning(title, message string, opts ...Option) string {
	return Default.Warning(title, message, opts...)
}

// Error adds an error notification to the Default manager.
func Error(err error, opts ...Option) string { return Default.Error(err, opts...) }
