package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/vladpolisuk/sport-shop-client/models"
	"github.com/vladpolisuk/sport-shop-client/services"
	"github.com/vladpolisuk/sport-shop-client/storage"
)

// ---- notifier spy ----

type spyNotifier struct {
	messages []string
}

func (n *spyNotifier) Notify(_, message string) {
	n.messages = append(n.messages, message)
}

func newCartService(store storage.Store) *services.CartService {
	logger, _ := zap.NewDevelopment()
	return services.NewCartService(store, services.NopNotifier{}, logger)
}

func TestCartServiceAddAndTotal(t *testing.T) {
	svc := newCartService(storage.NewMemory())
	ctx := context.Background()

	svc.Add(ctx, "alice", models.Product{ID: 1, Name: "Barbell", Price: 500}, 2)
	cart := svc.Add(ctx, "alice", models.Product{ID: 2, Name: "Rack", Price: 1500}, 1)

	assert.Len(t, cart.Items, 2)
	assert.Equal(t, 2500.0, cart.Total())
}

func TestCartServiceAddDefaultsQuantityToOne(t *testing.T) {
	svc := newCartService(storage.NewMemory())

	cart := svc.Add(context.Background(), "alice", models.Product{ID: 1, Name: "Mat", Price: 100}, 0)

	assert.Equal(t, 1, cart.Items[0].Quantity)
}

func TestCartServicePersistsAcrossInstances(t *testing.T) {
	store := storage.NewMemory()
	ctx := context.Background()

	newCartService(store).Add(ctx, "alice", models.Product{ID: 1, Name: "Mat", Price: 100}, 3)

	cart := newCartService(store).Get(ctx, "alice")
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
}

func TestCartServiceCartsAreIsolatedPerUser(t *testing.T) {
	svc := newCartService(storage.NewMemory())
	ctx := context.Background()

	svc.Add(ctx, "alice", models.Product{ID: 1, Name: "Mat", Price: 100}, 1)

	assert.Empty(t, svc.Get(ctx, "bob").Items)
}

func TestCartServiceSetQuantityZeroRemoves(t *testing.T) {
	svc := newCartService(storage.NewMemory())
	ctx := context.Background()

	svc.Add(ctx, "alice", models.Product{ID: 1, Name: "Mat", Price: 100}, 2)
	cart := svc.SetQuantity(ctx, "alice", 1, 0)

	assert.Empty(t, cart.Items)
	assert.Empty(t, svc.Get(ctx, "alice").Items)
}

func TestCartServiceCorruptSnapshotStartsEmpty(t *testing.T) {
	store := storage.NewMemory()
	ctx := context.Background()
	assert.NoError(t, store.Set(ctx, "cart:alice", []byte("{not json")))

	cart := newCartService(store).Get(ctx, "alice")

	assert.Empty(t, cart.Items)
	assert.Equal(t, "alice", cart.UserID)
}

func TestCartServiceClear(t *testing.T) {
	svc := newCartService(storage.NewMemory())
	ctx := context.Background()

	svc.Add(ctx, "alice", models.Product{ID: 1, Name: "Mat", Price: 100}, 2)
	cart := svc.Clear(ctx, "alice")

	assert.Empty(t, cart.Items)
	assert.Empty(t, svc.Get(ctx, "alice").Items)
}

func TestCartServiceNotifiesOnAdd(t *testing.T) {
	notifier := &spyNotifier{}
	logger, _ := zap.NewDevelopment()
	svc := services.NewCartService(storage.NewMemory(), notifier, logger)

	svc.Add(context.Background(), "alice", models.Product{ID: 1, Name: "Mat", Price: 100}, 1)

	assert.Len(t, notifier.messages, 1)
	assert.Contains(t, notifier.messages[0], "Mat")
}
