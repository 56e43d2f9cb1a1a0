package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/stemsi/portal-backend/internal/assessment"
	"github.com/stemsi/portal-backend/internal/model"
	"github.com/stemsi/portal-backend/internal/repository"
)

type fakeSource struct {
	records map[int][]assessment.Record
	err     error
	calls   int
}

func (f *fakeSource) ListByStudent(_ context.Context, studentID int) ([]assessment.Record, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.records[studentID], nil
}

type fakeCache struct {
	mu      sync.Mutex
	views   map[int]*model.ResultView
	getErr  error
	deleted []int
}

func newFakeCache() *fakeCache {
	return &fakeCache{views: map[int]*model.ResultView{}}
}

func (c *fakeCache) Get(_ context.Context, studentID int) (*model.ResultView, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.views[studentID], nil
}

func (c *fakeCache) Set(_ context.Context, view *model.ResultView) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.views[view.StudentID] = view
	return nil
}

func (c *fakeCache) Delete(_ context.Context, studentID int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.views, studentID)
	c.deleted = append(c.deleted, studentID)
	return nil
}

type fakeUsers struct {
	byID map[int]*model.User
}

func (f *fakeUsers) GetByID(_ context.Context, id int) (*model.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUsers) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range f.byID {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

type fakeSessions struct {
	jti map[int]string
}

func (f *fakeSessions) Save(_ context.Context, userID int, jti string, _ time.Duration) error {
	f.jti[userID] = jti
	return nil
}

func (f *fakeSessions) Current(_ context.Context, userID int) (string, error) {
	return f.jti[userID], nil
}

func (f *fakeSessions) Clear(_ context.Context, userID int) error {
	delete(f.jti, userID)
	return nil
}

type fakeStore struct {
	nextID int64
	rows   map[int64]*model.Assessment
}

func newFakeStore() *fakeStore {
	return &fakeStore{rows: map[int64]*model.Assessment{}}
}

func (f *fakeStore) GetByID(_ context.Context, id int64) (*model.Assessment, error) {
	if a, ok := f.rows[id]; ok {
		return a, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeStore) ListRowsByStudent(_ context.Context, studentID int) ([]model.Assessment, error) {
	out := []model.Assessment{}
	for id := int64(1); id <= f.nextID; id++ {
		if a, ok := f.rows[id]; ok && a.StudentID == studentID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeStore) ListByStudent(ctx context.Context, studentID int) ([]assessment.Record, error) {
	rows, _ := f.ListRowsByStudent(ctx, studentID)
	recs := make([]assessment.Record, 0, len(rows))
	for _, a := range rows {
		recs = append(recs, a.Record())
	}
	return recs, nil
}

func (f *fakeStore) Create(_ context.Context, a *model.Assessment) error {
	f.nextID++
	a.ID = f.nextID
	cp := *a
	f.rows[a.ID] = &cp
	return nil
}

func (f *fakeStore) Update(_ context.Context, a *model.Assessment) error {
	cur, ok := f.rows[a.ID]
	if !ok {
		return repository.ErrNotFound
	}
	a.StudentID = cur.StudentID
	a.CreatedBy = cur.CreatedBy
	cp := *a
	f.rows[a.ID] = &cp
	return nil
}

func (f *fakeStore) Delete(_ context.Context, id int64) (int, error) {
	cur, ok := f.rows[id]
	if !ok {
		return 0, repository.ErrNotFound
	}
	delete(f.rows, id)
	return cur.StudentID, nil
}

type fakeQueue struct {
	ids []int
	err error
}

func (q *fakeQueue) Enqueue(_ context.Context, studentID int) error {
	if q.err != nil {
		return q.err
	}
	q.ids = append(q.ids, studentID)
	return nil
}

var errBoom = errors.New("boom")

func ptr(v float64) *float64 { return &v }
