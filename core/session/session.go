// Package session is the per-visitor authentication state: who is signed in, if anyone.
package session

import (
	"context"
	"net/mail"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/eduverse/core"
	"github.com/trezcool/eduverse/core/state"
	"github.com/trezcool/eduverse/core/user"
)

// StorageNamespace prefixes the persisted auth snapshot of every visitor.
const StorageNamespace = "auth-storage"

var (
	// errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSuperseded         = errors.New("superseded by a newer authentication request")
)

type State struct {
	User            *user.User `json:"user"`
	IsAuthenticated bool       `json:"isAuthenticated"`
}

type Manager struct {
	users   *user.Service
	mailSvc core.EmailService
	conf    *core.Config
	logger  core.Logger
}

func NewManager(conf *core.Config, users *user.Service, mailSvc core.EmailService, logger core.Logger) *Manager {
	return &Manager{users: users, mailSvc: mailSvc, conf: conf, logger: logger}
}

// Session is safe for concurrent use. Of several overlapping Login/Signup calls only the
// latest may commit; the others return ErrSuperseded. Logout supersedes every pending call.
type Session struct {
	*Manager
	store *state.Store[State]

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
}

// Open restores the session persisted for visitorID in kv.
func (m *Manager) Open(ctx context.Context, kv core.KeyValueStore, visitorID string) (*Session, error) {
	store, err := state.Open(ctx, kv, core.Namespaced(StorageNamespace, visitorID), State{})
	if err != nil {
		return nil, err
	}
	return &Session{Manager: m, store: store}, nil
}

func (s *Session) State() State { return s.store.Get() }

func (s *Session) IsAuthenticated() bool { return s.store.Get().IsAuthenticated }

// User returns the signed in user, if any.
func (s *Session) User() (user.User, bool) {
	st := s.store.Get()
	if !st.IsAuthenticated || st.User == nil {
		return user.User{}, false
	}
	return *st.User, true
}

// Subscribe is notified after every committed change, including Logout.
// fn runs while the session is locked and must not call Login, Signup or Logout.
func (s *Session) Subscribe(fn func(State)) (unsubscribe func()) {
	return s.store.Subscribe(fn)
}

// Login authenticates against the seeded users: the email must match exactly and the
// password must be user.DemoPassword. A failed attempt leaves the state untouched.
func (s *Session) Login(ctx context.Context, email, password string) error {
	ctx, gen, done := s.begin(ctx)
	defer done()

	if err := s.wait(ctx, gen); err != nil {
		return err
	}

	usr, err := s.users.GetByEmail(email)
	if err == nil {
		err = usr.CheckPassword(password)
	}
	if err != nil {
		if s.superseded(gen) {
			return ErrSuperseded
		}
		return ErrInvalidCredentials
	}

	if err := s.commit(ctx, gen, State{User: &usr, IsAuthenticated: true}); err != nil {
		return err
	}
	s.logger.Info("session.Login: signed in", usr)
	return nil
}

// Signup never fails on its inputs: it fabricates a fresh student and signs it in.
// The password is ignored and the user is not added to the user repository.
func (s *Session) Signup(ctx context.Context, name, email, password string) (user.User, error) {
	ctx, gen, done := s.begin(ctx)
	defer done()

	if err := s.wait(ctx, gen); err != nil {
		return user.User{}, err
	}

	usr := user.User{
		ID:              uuid.NewString(),
		Email:           email,
		Name:            name,
		Role:            user.RoleStudent,
		EnrolledCourses: []string{},
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.commit(ctx, gen, State{User: &usr, IsAuthenticated: true}); err != nil {
		return user.User{}, err
	}

	if s.mailSvc != nil && usr.Email != "" {
		s.mailSvc.SendMessages(core.NewWelcomeMessage(s.conf, mail.Address{Name: usr.Name, Address: usr.Email}))
	}
	s.logger.Info("session.Signup: signed up", usr)
	return usr, nil
}

// Logout clears the state immediately. Calling it while signed out is a no-op apart from persisting the empty state.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.supersede()
	return s.store.Reset(ctx, State{})
}

// begin cancels the pending call, if any, and starts a new generation.
func (s *Session) begin(ctx context.Context) (context.Context, uint64, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.supersede()
	cctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	gen := s.gen

	return cctx, gen, func() {
		cancel()
		s.mu.Lock()
		if s.gen == gen {
			s.cancel = nil
		}
		s.mu.Unlock()
	}
}

// supersede must be called with s.mu held.
func (s *Session) supersede() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.gen++
}

func (s *Session) superseded(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen != gen
}

// wait emulates the network round trip.
func (s *Session) wait(ctx context.Context, gen uint64) error {
	timer := time.NewTimer(s.conf.Auth.Latency)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		if s.superseded(gen) {
			return ErrSuperseded
		}
		return ctx.Err()
	}
}

func (s *Session) commit(ctx context.Context, gen uint64, st State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gen != gen {
		return ErrSuperseded
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.Set(ctx, st)
}
