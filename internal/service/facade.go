package service

import (
	"context"
	"log"
	"sync"
	"time"

	"bytebabies/internal/docstore"
	"bytebabies/internal/models"
	"bytebabies/internal/repository"
	"bytebabies/internal/session"
)

// Result is the two-shape outcome delivered by Go: OK with an empty message, or a
// failure carrying the error text
type Result struct {
	OK      bool
	Message string
}

// ResultOf converts an error into a Result
func ResultOf(err error) Result {
	if err != nil {
		return Result{OK: false, Message: err.Error()}
	}
	return Result{OK: true}
}

// AttendanceHook runs in the background after an attendance record is written.
// Its error is logged and never reaches the caller of MarkAttendance.
type AttendanceHook func(ctx context.Context, rec models.AttendanceRecord) error

// Facade is the single entry point for every domain operation. It is safe for
// concurrent use; the only shared state is the session manager.
type Facade struct {
	auth       Authenticator
	users      *repository.UserRepository
	teachers   *repository.TeacherRepository
	children   *repository.ChildRepository
	attendance *repository.AttendanceRepository
	events     *repository.EventRepository
	messages   *repository.MessageRepository
	sessions   *session.Manager

	mailer      Mailer
	hooks       []AttendanceHook
	hookTimeout time.Duration
	now         func() time.Time

	inflight sync.WaitGroup
}

// Option configures a Facade
type Option func(*Facade)

// WithMailer enables welcome and absence emails
func WithMailer(m Mailer) Option {
	return func(f *Facade) { f.mailer = m }
}

// WithClock replaces time.Now, used for "today" and message timestamps
func WithClock(now func() time.Time) Option {
	return func(f *Facade) { f.now = now }
}

// WithAttendanceHook appends a hook after the built-in absence notifier
func WithAttendanceHook(h AttendanceHook) Option {
	return func(f *Facade) { f.hooks = append(f.hooks, h) }
}

// WithHookTimeout bounds each background hook run
func WithHookTimeout(d time.Duration) Option {
	return func(f *Facade) { f.hookTimeout = d }
}

// NewFacade wires the repositories over store and installs the absence notifier
func NewFacade(store docstore.Store, auth Authenticator, opts ...Option) *Facade {
	f := &Facade{
		auth:        auth,
		users:       repository.NewUserRepository(store),
		teachers:    repository.NewTeacherRepository(store),
		children:    repository.NewChildRepository(store),
		attendance:  repository.NewAttendanceRepository(store),
		events:      repository.NewEventRepository(store),
		messages:    repository.NewMessageRepository(store),
		sessions:    session.NewManager(),
		hookTimeout: 30 * time.Second,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}

	notifier := &AbsenceNotifier{
		children: f.children,
		users:    f.users,
		messages: f.messages,
		mailer:   f.mailer,
		now:      f.now,
	}
	f.hooks = append([]AttendanceHook{notifier.Notify}, f.hooks...)
	return f
}

// Go runs op on its own goroutine and delivers its Result on the returned channel
func (f *Facade) Go(ctx context.Context, op func(ctx context.Context) error) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		ch <- ResultOf(op(ctx))
	}()
	return ch
}

// Wait blocks until every background hook has finished
func (f *Facade) Wait() {
	f.inflight.Wait()
}

// runHooks starts the hook chain detached from the caller's cancellation
func (f *Facade) runHooks(ctx context.Context, rec models.AttendanceRecord) {
	if len(f.hooks) == 0 {
		return
	}
	f.inflight.Add(1)
	go func() {
		defer f.inflight.Done()
		hookCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), f.hookTimeout)
		defer cancel()

		for _, hook := range f.hooks {
			if err := hook(hookCtx, rec); err != nil {
				log.Printf("Warning: attendance hook failed for %s: %v", rec.ID, err)
			}
		}
	}()
}

// Today is the current calendar date on the facade clock
func (f *Facade) Today() string {
	return models.FormatDate(f.now())
}

func (f *Facade) timestamp() string {
	return f.now().UTC().Format(time.RFC3339Nano)
}
