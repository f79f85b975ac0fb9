package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"bytebabies/internal/docstore"
	"bytebabies/internal/repository"
	"bytebabies/internal/security"
)

var errBackend = errors.New("backend unavailable")

// faultyStore wraps a store and fails any call for which fail returns an error
type faultyStore struct {
	docstore.Store
	mu   sync.Mutex
	fail func(op, collection, id string) error
}

func (s *faultyStore) check(op, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail == nil {
		return nil
	}
	return s.fail(op, collection, id)
}

func (s *faultyStore) setFail(fail func(op, collection, id string) error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail = fail
}

func (s *faultyStore) Get(ctx context.Context, collection, id string) (docstore.Document, error) {
	if err := s.check("get", collection, id); err != nil {
		return docstore.Document{}, err
	}
	return s.Store.Get(ctx, collection, id)
}

func (s *faultyStore) Where(ctx context.Context, collection, field string, value interface{}) ([]docstore.Document, error) {
	if err := s.check("where", collection, ""); err != nil {
		return nil, err
	}
	return s.Store.Where(ctx, collection, field, value)
}

func (s *faultyStore) List(ctx context.Context, collection string) ([]docstore.Document, error) {
	if err := s.check("list", collection, ""); err != nil {
		return nil, err
	}
	return s.Store.List(ctx, collection)
}

func (s *faultyStore) Add(ctx context.Context, collection string, fields docstore.Fields) (string, error) {
	if err := s.check("add", collection, ""); err != nil {
		return "", err
	}
	return s.Store.Add(ctx, collection, fields)
}

func (s *faultyStore) Set(ctx context.Context, collection, id string, fields docstore.Fields) error {
	if err := s.check("set", collection, id); err != nil {
		return err
	}
	return s.Store.Set(ctx, collection, id, fields)
}

func (s *faultyStore) Update(ctx context.Context, collection, id string, fields docstore.Fields) error {
	if err := s.check("update", collection, id); err != nil {
		return err
	}
	return s.Store.Update(ctx, collection, id, fields)
}

func (s *faultyStore) Delete(ctx context.Context, collection, id string) error {
	if err := s.check("delete", collection, id); err != nil {
		return err
	}
	return s.Store.Delete(ctx, collection, id)
}

// failOn returns a fail func matching one operation on one collection
func failOn(op, collection string) func(string, string, string) error {
	return func(gotOp, gotCollection, _ string) error {
		if gotOp == op && gotCollection == collection {
			return errBackend
		}
		return nil
	}
}

type sentMail struct {
	kind, to, name, child, date string
}

type fakeMailer struct {
	mu      sync.Mutex
	enabled bool
	sent    []sentMail
}

func (m *fakeMailer) IsEnabled() bool { return m.enabled }

func (m *fakeMailer) SendWelcomeEmail(ctx context.Context, toEmail, toName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{kind: "welcome", to: toEmail, name: toName})
	return nil
}

func (m *fakeMailer) SendAbsenceEmail(ctx context.Context, toEmail, toName, childName, date string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{kind: "absence", to: toEmail, name: toName, child: childName, date: date})
	return nil
}

func (m *fakeMailer) Sent() []sentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sentMail(nil), m.sent...)
}

// testClock is 2024-05-01 09:00 UTC
var testNow = time.Date(2024, time.May, 1, 9, 0, 0, 0, time.UTC)

type testEnv struct {
	facade *Facade
	store  *faultyStore
	auth   *AuthService
	mailer *fakeMailer
}

func newTestEnv(t *testing.T, opts ...Option) *testEnv {
	t.Helper()
	store := &faultyStore{Store: docstore.NewMemoryStore()}
	auth := NewAuthService(
		repository.NewAccountRepository(store),
		security.NewMemoryTokenStore(),
		AuthConfig{Secret: "test-secret", Issuer: "bytebabies-test", TokenTTL: time.Hour},
	)
	mailer := &fakeMailer{enabled: true}
	opts = append([]Option{WithMailer(mailer), WithClock(func() time.Time { return testNow })}, opts...)
	f := NewFacade(store, auth, opts...)
	t.Cleanup(f.Wait)
	return &testEnv{facade: f, store: store, auth: auth, mailer: mailer}
}
