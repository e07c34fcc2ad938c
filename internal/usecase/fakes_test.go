package usecase

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"gift-suggest-core/internal/domain/entity"
)

const (
	ownerID    = "6f1c2a4e-0d7b-4c61-9a8e-2b3c4d5e6f70"
	strangerID = "9a8b7c6d-5e4f-4a3b-8c2d-1e0f9a8b7c6d"
	mamaID     = "3d6f0a52-7c1e-4b8a-9f2d-5e6a7b8c9d01"
)

func strPtr(s string) *string { return &s }

type fakePeople struct {
	people map[string]entity.PersonContext // keyed by userID + "/" + personID
	err    error
	calls  int
}

func newFakePeople() *fakePeople {
	return &fakePeople{people: map[string]entity.PersonContext{
		ownerID + "/" + mamaID: {
			ID:       mamaID,
			Name:     "Mama",
			Birthday: strPtr("1961-04-02"),
			Notes:    strPtr("Gärtnert gern, trinkt Earl Grey"),
		},
	}}
}

func (f *fakePeople) GetPerson(ctx context.Context, userID, personID string) (*entity.PersonContext, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.people[userID+"/"+personID]
	if !ok {
		return nil, entity.ErrNotFound
	}
	return &p, nil
}

type fakeGifts struct {
	items     []entity.GiftHistoryItem
	err       error
	lastLimit int
}

func (f *fakeGifts) RecentGifts(ctx context.Context, userID, personID string, limit int) ([]entity.GiftHistoryItem, error) {
	f.lastLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	return f.items, nil
}

type fakeOccasions map[int]entity.Occasion

func (f fakeOccasions) FindOccasion(id int) (entity.Occasion, bool) {
	o, ok := f[id]
	return o, ok
}

func testOccasions() fakeOccasions {
	return fakeOccasions{
		1: {ID: 1, Name: "Geburtstag"},
		2: {ID: 2, Name: "Weihnachten"},
	}
}

// fakeGenerator answers with reply, or blocks until its context is cancelled
// when block is set.
type fakeGenerator struct {
	reply    *entity.ModelResponse
	err      error
	credErr  error
	block    bool
	calls    atomic.Int32
	lastReq  entity.GenerationRequest
	mu       sync.Mutex
	canceled chan struct{}
}

func newFakeGenerator(text string) *fakeGenerator {
	return &fakeGenerator{
		reply:    &entity.ModelResponse{Text: text, ResponseID: "resp_1", Model: "fake-model", TokenCount: 321},
		canceled: make(chan struct{}),
	}
}

func (f *fakeGenerator) Name() string { return "fake" }

func (f *fakeGenerator) CheckCredentials() error { return f.credErr }

func (f *fakeGenerator) Generate(ctx context.Context, req entity.GenerationRequest) (*entity.ModelResponse, error) {
	f.calls.Add(1)
	f.mu.Lock()
	f.lastReq = req
	f.mu.Unlock()

	if f.block {
		<-ctx.Done()
		close(f.canceled)
		return nil, ctx.Err()
	}
	if f.err != nil {
		return nil, f.err
	}
	resp := *f.reply
	return &resp, nil
}

// fakeClock hands out timers that have either already fired or never fire.
type fakeClock struct {
	fire    bool
	mu      sync.Mutex
	budgets []time.Duration
}

func (c *fakeClock) NewTimer(d time.Duration) Timer {
	c.mu.Lock()
	c.budgets = append(c.budgets, d)
	c.mu.Unlock()

	t := &fakeTimer{ch: make(chan time.Time, 1)}
	if c.fire {
		t.ch <- time.Time{}
	}
	return t
}

type fakeTimer struct {
	ch      chan time.Time
	stopped atomic.Bool
}

func (t *fakeTimer) C() <-chan time.Time { return t.ch }
func (t *fakeTimer) Stop() bool {
	t.stopped.Store(true)
	return true
}

type fakeLimiter struct {
	allowed  bool
	checkErr error
	mu       sync.Mutex
	used     map[string]int
}

func newFakeLimiter(allowed bool) *fakeLimiter {
	return &fakeLimiter{allowed: allowed, used: map[string]int{}}
}

func (f *fakeLimiter) CheckLimit(ctx context.Context, userID string) (bool, error) {
	return f.allowed, f.checkErr
}

func (f *fakeLimiter) Increment(ctx context.Context, userID string, tokens int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.used[userID] += tokens
	return nil
}

func (f *fakeLimiter) usage(userID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.used[userID]
}

const validOutput = `{"suggestions":[
	{"title":"Kräutergarten-Set","reason":"Sie gärtnert gern","category":"Garten","priceHint":"ca. 30 €"},
	{"title":"Teeprobierset","reason":"Passt zu Earl Grey","category":"Genuss","priceHint":"ca. 25 €"},
	{"title":"Gartenworkshop","reason":"Gemeinsame Zeit","category":"Erlebnis","priceHint":"ca. 60 €"}
]}`
