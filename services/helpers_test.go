package services

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/akinalp/sigma/database"
	"github.com/akinalp/sigma/models"
	"github.com/akinalp/sigma/pkg/password"
	"github.com/akinalp/sigma/repository"
	"github.com/akinalp/sigma/ws"
)

var testHashParams = password.Params{Memory: 1024, Time: 1, Threads: 1, SaltLen: 16, KeyLen: 32}

type fakePublisher struct {
	mu     sync.Mutex
	all    []ws.Event
	byUser map[string][]ws.Event
}

func newFakePublisher() *fakePublisher {
	return &fakePublisher{byUser: make(map[string][]ws.Event)}
}

func (p *fakePublisher) BroadcastToAll(e ws.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.all = append(p.all, e)
}

func (p *fakePublisher) BroadcastToUser(userID string, e ws.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.byUser[userID] = append(p.byUser[userID], e)
}

type sentMail struct {
	to, name, token string
}

type fakeSender struct {
	sent []sentMail
	err  error
}

func (f *fakeSender) SendVerification(_ context.Context, to, name, token string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{to: to, name: name, token: token})
	return nil
}

func newTestDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "svc.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func seedAccount(t *testing.T, repo repository.AccountRepository, email string, role models.Role) *models.Account {
	t.Helper()
	hash, err := password.HashWithParams("password123", testHashParams)
	require.NoError(t, err)
	a := &models.Account{Email: email, Name: "Name " + email, PasswordHash: hash, Role: role}
	require.NoError(t, repo.Create(context.Background(), a))
	return a
}
