package application

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookhaven/order-service/internal/domains/orders/domain"
	"github.com/bookhaven/order-service/internal/domains/orders/ports"
)

type lookupResult struct {
	book *domain.Book
	err  error
}

// fakeCatalog replays scripted lookup results and records attempt times.
type fakeCatalog struct {
	mu       sync.Mutex
	script   []lookupResult
	attempts []time.Time
}

func (f *fakeCatalog) LookupByISBN(ctx context.Context, _ string) (*domain.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.attempts = append(f.attempts, time.Now())
	idx := len(f.attempts) - 1
	if idx >= len(f.script) {
		idx = len(f.script) - 1
	}
	result := f.script[idx]
	return result.book, result.err
}

func (f *fakeCatalog) attemptCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.attempts)
}

type fakeRepo struct {
	mu      sync.Mutex
	orders  []*domain.Order
	nextID  int64
	saveErr error
	// blockSave makes Save wait for context cancellation before failing,
	// simulating a persistence call that only ends when cancelled.
	blockSave bool
}

func (f *fakeRepo) Save(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if f.blockSave {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	clone := *order
	clone.ID = f.nextID
	f.orders = append(f.orders, &clone)
	return &clone, nil
}

func (f *fakeRepo) List(_ context.Context) ([]*domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	list := make([]*domain.Order, 0, len(f.orders))
	for _, o := range f.orders {
		clone := *o
		list = append(list, &clone)
	}
	return list, nil
}

func (f *fakeRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.orders)
}

type fakePublisher struct {
	mu        sync.Mutex
	published []*domain.Order
	err       error
}

func (f *fakePublisher) OrderAccepted(_ context.Context, order *domain.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published = append(f.published, order)
	return f.err
}

var testBook = domain.Book{ISBN: "1234567891", Title: "The Peripheral", Author: "William Gibson", Price: 24.90}

func TestSubmitOrder_CatalogHitPersistsAcceptedOrder(t *testing.T) {
	catalog := &fakeCatalog{script: []lookupResult{{book: &testBook}}}
	repo := &fakeRepo{}
	events := &fakePublisher{}
	svc := NewService(catalog, repo, WithEventPublisher(events))

	order := svc.SubmitOrder(context.Background(), testBook.ISBN, 3)

	require.NotNil(t, order)
	assert.Equal(t, domain.StatusAccepted, order.Status)
	assert.Equal(t, 3, order.Quantity)
	require.NotNil(t, order.BookName)
	assert.Equal(t, "The Peripheral - William Gibson", *order.BookName)
	require.NotNil(t, order.BookPrice)
	assert.Equal(t, 24.90, *order.BookPrice)
	assert.NotZero(t, order.ID)
	require.Len(t, events.published, 1)
}

func TestSubmitOrder_CleanAbsentPersistsRejectedOrder(t *testing.T) {
	catalog := &fakeCatalog{script: []lookupResult{{}}}
	repo := &fakeRepo{}
	events := &fakePublisher{}
	svc := NewService(catalog, repo, WithEventPublisher(events))

	order := svc.SubmitOrder(context.Background(), "1234567890", 5)

	require.NotNil(t, order)
	assert.Equal(t, domain.StatusRejected, order.Status)
	assert.Equal(t, 0, order.Quantity)
	assert.Nil(t, order.BookName)
	assert.Nil(t, order.BookPrice)
	assert.Empty(t, events.published, "rejected orders are not announced")
}

func TestSubmitOrder_NotFoundTransportFailureSkipsRetries(t *testing.T) {
	catalog := &fakeCatalog{script: []lookupResult{{err: ports.ErrBookNotFound}}}
	repo := &fakeRepo{}
	svc := NewService(catalog, repo)

	order := svc.SubmitOrder(context.Background(), "1234567891", 2)

	assert.Nil(t, order)
	assert.Equal(t, 1, catalog.attemptCount())
	assert.Zero(t, repo.count())
}

func TestSubmitOrder_TransientFailureRetriesWithBackoff(t *testing.T) {
	transient := errors.New("connection reset")
	catalog := &fakeCatalog{script: []lookupResult{{err: transient}}}
	repo := &fakeRepo{}
	svc := NewService(catalog, repo)

	order := svc.SubmitOrder(context.Background(), "1234567891", 2)

	assert.Nil(t, order)
	require.Equal(t, 4, catalog.attemptCount(), "one initial attempt plus three retries")
	var previous time.Duration
	for i := 1; i < len(catalog.attempts); i++ {
		gap := catalog.attempts[i].Sub(catalog.attempts[i-1])
		assert.GreaterOrEqual(t, gap, 100*time.Millisecond)
		assert.GreaterOrEqual(t, gap, previous)
		previous = gap
	}
	assert.Zero(t, repo.count())
}

func TestSubmitOrder_RecoversAfterTransientFailure(t *testing.T) {
	transient := errors.New("temporary outage")
	catalog := &fakeCatalog{script: []lookupResult{{err: transient}, {book: &testBook}}}
	repo := &fakeRepo{}
	svc := NewService(catalog, repo)

	order := svc.SubmitOrder(context.Background(), testBook.ISBN, 1)

	require.NotNil(t, order)
	assert.Equal(t, domain.StatusAccepted, order.Status)
	assert.Equal(t, 2, catalog.attemptCount())
}

func TestSubmitOrder_TimeoutCancelsInFlightPersistence(t *testing.T) {
	catalog := &fakeCatalog{script: []lookupResult{{book: &testBook}}}
	repo := &fakeRepo{blockSave: true}
	svc := NewService(catalog, repo, WithSubmitTimeout(50*time.Millisecond))

	start := time.Now()
	order := svc.SubmitOrder(context.Background(), testBook.ISBN, 1)

	assert.Nil(t, order)
	assert.Less(t, time.Since(start), time.Second, "deadline expiry must not trigger retries")
	assert.Equal(t, 1, catalog.attemptCount())
	assert.Zero(t, repo.count(), "no persistence after timeout")
}

func TestSubmitOrder_CallerCancellationAborts(t *testing.T) {
	catalog := &fakeCatalog{script: []lookupResult{{book: &testBook}}}
	repo := &fakeRepo{blockSave: true}
	svc := NewService(catalog, repo)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	order := svc.SubmitOrder(ctx, testBook.ISBN, 1)

	assert.Nil(t, order)
	assert.Equal(t, 1, catalog.attemptCount())
}

func TestSubmitOrder_PersistenceFailureExhaustsRetries(t *testing.T) {
	catalog := &fakeCatalog{script: []lookupResult{{book: &testBook}}}
	repo := &fakeRepo{saveErr: errors.New("disk full")}
	svc := NewService(catalog, repo, WithRetryPolicy(3, time.Millisecond))

	order := svc.SubmitOrder(context.Background(), testBook.ISBN, 1)

	assert.Nil(t, order)
	assert.Equal(t, 4, catalog.attemptCount(), "each retry restarts the whole pipeline")
}

func TestSubmitOrder_NoDeduplication(t *testing.T) {
	catalog := &fakeCatalog{script: []lookupResult{{book: &testBook}}}
	repo := &fakeRepo{}
	svc := NewService(catalog, repo)

	first := svc.SubmitOrder(context.Background(), testBook.ISBN, 1)
	second := svc.SubmitOrder(context.Background(), testBook.ISBN, 1)

	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, 2, repo.count())
}

func TestSubmitOrder_PublishFailureDoesNotChangeOutcome(t *testing.T) {
	catalog := &fakeCatalog{script: []lookupResult{{book: &testBook}}}
	repo := &fakeRepo{}
	events := &fakePublisher{err: errors.New("broker unreachable")}
	svc := NewService(catalog, repo, WithEventPublisher(events))

	order := svc.SubmitOrder(context.Background(), testBook.ISBN, 1)

	require.NotNil(t, order)
	assert.Equal(t, domain.StatusAccepted, order.Status)
}

func TestGetAllOrders_PassesThroughStoreListing(t *testing.T) {
	catalog := &fakeCatalog{script: []lookupResult{{book: &testBook}, {}}}
	repo := &fakeRepo{}
	svc := NewService(catalog, repo)

	require.NotNil(t, svc.SubmitOrder(context.Background(), testBook.ISBN, 2))
	require.NotNil(t, svc.SubmitOrder(context.Background(), "1234567890", 9))

	orders, err := svc.GetAllOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, domain.StatusAccepted, orders[0].Status)
	assert.Equal(t, domain.StatusRejected, orders[1].Status)
	assert.Equal(t, 0, orders[1].Quantity)
}
