package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"medipred/internal/cache"
	"medipred/internal/model"
	"medipred/pkg/pagination"
)

// ---------------------------------------------------------------------------
// mock repository
// ---------------------------------------------------------------------------

type mockPredictionRepo struct {
	mu      sync.Mutex
	records map[string]*model.PredictionRecord
	nextID  int
	err     error
	calls   []string

	// beforeRead runs at the start of ListByOwner and SummaryByOwner
	beforeRead func()
}

func newMockPredictionRepo() *mockPredictionRepo {
	return &mockPredictionRepo{records: make(map[string]*model.PredictionRecord)}
}

func (m *mockPredictionRepo) record(call string) error {
	m.calls = append(m.calls, call)
	return m.err
}

func (m *mockPredictionRepo) Create(_ context.Context, record *model.PredictionRecord) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("Create"); err != nil {
		return "", err
	}
	m.nextID++
	record.ID = fmt.Sprintf("p%d", m.nextID)
	cp := *record
	m.records[record.ID] = &cp
	return record.ID, nil
}

func (m *mockPredictionRepo) ListByOwner(_ context.Context, ownerID string, page pagination.Params) ([]*model.PredictionRecord, int64, error) {
	if m.beforeRead != nil {
		m.beforeRead()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("ListByOwner"); err != nil {
		return nil, 0, err
	}
	var out []*model.PredictionRecord
	for _, r := range m.records {
		if r.UserID == ownerID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	total := int64(len(out))
	if page.Offset >= len(out) {
		return []*model.PredictionRecord{}, total, nil
	}
	out = out[page.Offset:]
	if len(out) > page.Limit {
		out = out[:page.Limit]
	}
	return out, total, nil
}

func (m *mockPredictionRepo) GetByID(_ context.Context, id string) (*model.PredictionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("GetByID"); err != nil {
		return nil, err
	}
	return m.records[id], nil
}

func (m *mockPredictionRepo) Delete(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("Delete"); err != nil {
		return false, err
	}
	_, ok := m.records[id]
	delete(m.records, id)
	return ok, nil
}

func (m *mockPredictionRepo) DeleteAllByOwner(_ context.Context, ownerID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("DeleteAllByOwner"); err != nil {
		return 0, err
	}
	var n int64
	for id, r := range m.records {
		if r.UserID == ownerID {
			delete(m.records, id)
			n++
		}
	}
	return n, nil
}

func (m *mockPredictionRepo) SummaryByOwner(_ context.Context, ownerID string) ([]model.ConditionSummary, error) {
	if m.beforeRead != nil {
		m.beforeRead()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("SummaryByOwner"); err != nil {
		return nil, err
	}
	byType := map[model.ConditionType]*model.ConditionSummary{}
	for _, r := range m.records {
		if r.UserID != ownerID {
			continue
		}
		s, ok := byType[r.PredictionType]
		if !ok {
			s = &model.ConditionSummary{PredictionType: r.PredictionType}
			byType[r.PredictionType] = s
		}
		s.Total++
		if r.Result.Prediction {
			s.Elevated++
		}
	}
	out := []model.ConditionSummary{}
	for _, s := range byType {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PredictionType < out[j].PredictionType })
	return out, nil
}

// ---------------------------------------------------------------------------
// mock cache
// ---------------------------------------------------------------------------

type mockHistoryCache struct {
	pages       map[string]*cache.HistoryPage
	summaries   map[string][]model.ConditionSummary
	gens        map[string]int64
	invalidated []string
}

func newMockHistoryCache() *mockHistoryCache {
	return &mockHistoryCache{
		pages:     make(map[string]*cache.HistoryPage),
		summaries: make(map[string][]model.ConditionSummary),
		gens:      make(map[string]int64),
	}
}

func pageKey(ownerID string, page pagination.Params) string {
	return fmt.Sprintf("%s:%d:%d", ownerID, page.Limit, page.Offset)
}

func (c *mockHistoryCache) Generation(_ context.Context, ownerID string) (int64, error) {
	return c.gens[ownerID], nil
}

func (c *mockHistoryCache) GetPage(_ context.Context, ownerID string, page pagination.Params) (*cache.HistoryPage, error) {
	return c.pages[pageKey(ownerID, page)], nil
}

func (c *mockHistoryCache) SetPage(_ context.Context, ownerID string, gen int64, page pagination.Params, data *cache.HistoryPage) error {
	if gen != c.gens[ownerID] {
		return nil
	}
	c.pages[pageKey(ownerID, page)] = data
	return nil
}

func (c *mockHistoryCache) GetSummary(_ context.Context, ownerID string) ([]model.ConditionSummary, error) {
	return c.summaries[ownerID], nil
}

func (c *mockHistoryCache) SetSummary(_ context.Context, ownerID string, gen int64, summary []model.ConditionSummary) error {
	if gen != c.gens[ownerID] {
		return nil
	}
	c.summaries[ownerID] = summary
	return nil
}

func (c *mockHistoryCache) Invalidate(_ context.Context, ownerID string) error {
	c.invalidated = append(c.invalidated, ownerID)
	c.gens[ownerID]++
	for k := range c.pages {
		if len(k) > len(ownerID) && k[:len(ownerID)+1] == ownerID+":" {
			delete(c.pages, k)
		}
	}
	delete(c.summaries, ownerID)
	return nil
}

// ---------------------------------------------------------------------------
// mock broadcaster
// ---------------------------------------------------------------------------

type broadcastCall struct {
	userID  string
	msgType string
	payload interface{}
}

type mockBroadcaster struct {
	calls []broadcastCall
}

func (b *mockBroadcaster) BroadcastToUser(userID string, msgType string, payload interface{}) {
	b.calls = append(b.calls, broadcastCall{userID: userID, msgType: msgType, payload: payload})
}

// ---------------------------------------------------------------------------
// latency that blocks until released or cancelled
// ---------------------------------------------------------------------------

type gateLatency struct {
	entered chan struct{}
	release chan struct{}
}

func newGateLatency() *gateLatency {
	return &gateLatency{entered: make(chan struct{}, 1), release: make(chan struct{})}
}

func (g *gateLatency) Wait(ctx context.Context) error {
	g.entered <- struct{}{}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-g.release:
		return nil
	}
}
