package handler

import (
	"context"
	"sync"
	"time"

	"github.com/stemsi/portal-backend/internal/assessment"
	"github.com/stemsi/portal-backend/internal/model"
	"github.com/stemsi/portal-backend/internal/repository"
)

type memUsers struct {
	byID map[int]*model.User
}

func (m *memUsers) GetByID(_ context.Context, id int) (*model.User, error) {
	if u, ok := m.byID[id]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

func (m *memUsers) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.byID {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

type memSessions struct {
	mu  sync.Mutex
	jti map[int]string
}

func (m *memSessions) Save(_ context.Context, userID int, jti string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jti[userID] = jti
	return nil
}

func (m *memSessions) Current(_ context.Context, userID int) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.jti[userID], nil
}

func (m *memSessions) Clear(_ context.Context, userID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.jti, userID)
	return nil
}

// memStore is both the assessment store and the assessment source.
type memStore struct {
	mu     sync.Mutex
	nextID int64
	rows   []*model.Assessment
	err    error
}

func (m *memStore) find(id int64) (int, *model.Assessment) {
	for i, a := range m.rows {
		if a.ID == id {
			return i, a
		}
	}
	return -1, nil
}

func (m *memStore) GetByID(_ context.Context, id int64) (*model.Assessment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, a := m.find(id); a != nil {
		return a, nil
	}
	return nil, repository.ErrNotFound
}

func (m *memStore) ListRowsByStudent(_ context.Context, studentID int) ([]model.Assessment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.Assessment{}
	for _, a := range m.rows {
		if a.StudentID == studentID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (m *memStore) ListByStudent(ctx context.Context, studentID int) ([]assessment.Record, error) {
	if m.err != nil {
		return nil, m.err
	}
	rows, _ := m.ListRowsByStudent(ctx, studentID)
	recs := make([]assessment.Record, 0, len(rows))
	for _, a := range rows {
		recs = append(recs, a.Record())
	}
	return recs, nil
}

func (m *memStore) Create(_ context.Context, a *model.Assessment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	a.ID = m.nextID
	cp := *a
	m.rows = append(m.rows, &cp)
	return nil
}

func (m *memStore) Update(_ context.Context, a *model.Assessment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, cur := m.find(a.ID)
	if cur == nil {
		return repository.ErrNotFound
	}
	a.StudentID, a.CreatedBy = cur.StudentID, cur.CreatedBy
	*cur = *a
	return nil
}

func (m *memStore) Delete(_ context.Context, id int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i, cur := m.find(id)
	if cur == nil {
		return 0, repository.ErrNotFound
	}
	m.rows = append(m.rows[:i], m.rows[i+1:]...)
	return cur.StudentID, nil
}

type memFeed struct {
	ch chan []byte
}

func (f *memFeed) Publish(context.Context, *model.ResultView) error { return nil }

func (f *memFeed) Subscribe(ctx context.Context, _ int) (<-chan []byte, error) {
	out := make(chan []byte)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case b := <-f.ch:
				select {
				case out <- b:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

type memSnapshots struct{}

func (memSnapshots) ListPaginated(context.Context, int, int) ([]model.ResultSnapshot, int, error) {
	return []model.ResultSnapshot{{StudentID: 2, StudentName: "Alice"}}, 1, nil
}

func ptr(v float64) *float64 { return &v }
