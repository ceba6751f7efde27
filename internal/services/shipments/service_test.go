package shipments

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jammyops/parceltrack/internal/models"
)

type fakeRepo struct {
	registerIn  []models.ShipmentCreateInput
	registerErr error

	getIn  []string
	getOut []*models.Shipment
	getErr error
}

func (f *fakeRepo) RegisterShipments(ctx context.Context, items []models.ShipmentCreateInput) error {
	f.registerIn = items
	return f.registerErr
}

func (f *fakeRepo) GetShipmentsByIDs(ctx context.Context, ids []string) ([]*models.Shipment, error) {
	f.getIn = ids
	return f.getOut, f.getErr
}

type fakeCache struct {
	m    map[string][]byte
	dels []string
}

func (c *fakeCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, ok := c.m[key]
	return b, ok, nil
}
func (c *fakeCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.m[key] = value
	return nil
}
func (c *fakeCache) Del(ctx context.Context, key string) error {
	c.dels = append(c.dels, key)
	delete(c.m, key)
	return nil
}

func TestService_Register_validate(t *testing.T) {
	s := New(&fakeRepo{}, nil, 0)
	_, err := s.Register(context.Background(), nil)
	require.Error(t, err)

	_, err = s.Register(context.Background(), []models.ShipmentCreateInput{{ID: "", CarrierHint: "UPS"}})
	require.Error(t, err)

	_, err = s.Register(context.Background(), []models.ShipmentCreateInput{{ID: "DN-1", CarrierHint: ""}})
	require.Error(t, err)
}

func TestService_Register_dedup(t *testing.T) {
	r := &fakeRepo{}
	s := New(r, nil, 0)

	n, err := s.Register(context.Background(), []models.ShipmentCreateInput{
		{ID: "DN-1", CarrierHint: "UPS"},
		{ID: "DN-1", CarrierHint: "UPS"},
		{ID: "DN-2", CarrierHint: "FEDEX"},
	})
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Len(t, r.registerIn, 2)
}

func TestService_GetByIDs_cacheHit(t *testing.T) {
	r := &fakeRepo{}
	c := &fakeCache{m: map[string][]byte{}}
	s := New(r, c, 10*time.Minute)

	status := "In Transit"
	want := &models.Shipment{ID: "DN-7", CarrierHint: "UPS", Status: &status}
	b, _ := json.Marshal(want)
	c.m["shipment:DN-7:current"] = b

	out, err := s.GetByIDs(context.Background(), []string{"DN-7"})
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, "DN-7", out[0].ID)
	require.Nil(t, r.getIn) // БД не трогали
}

func TestService_GetByIDs_missFillsCache(t *testing.T) {
	r := &fakeRepo{getOut: []*models.Shipment{{ID: "DN-8", CarrierHint: "FEDEX"}}}
	c := &fakeCache{m: map[string][]byte{}}
	s := New(r, c, 10*time.Minute)

	out, err := s.GetByIDs(context.Background(), []string{"DN-8"})
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, []string{"DN-8"}, r.getIn)
	require.Contains(t, c.m, "shipment:DN-8:current")
}

func TestService_GetByIDs_preservesOrder(t *testing.T) {
	r := &fakeRepo{getOut: []*models.Shipment{
		{ID: "DN-2"},
		{ID: "DN-1"},
	}}
	s := New(r, nil, 0)

	out, err := s.GetByIDs(context.Background(), []string{"DN-1", "DN-2"})
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.Equal(t, "DN-1", out[0].ID)
	require.Equal(t, "DN-2", out[1].ID)
}

func TestService_InvalidateCurrent(t *testing.T) {
	c := &fakeCache{m: map[string][]byte{"shipment:DN-9:current": []byte(`{}`)}}
	s := New(&fakeRepo{}, c, time.Minute)

	s.InvalidateCurrent(context.Background(), "DN-9")
	require.Equal(t, []string{"shipment:DN-9:current"}, c.dels)
	require.NotContains(t, c.m, "shipment:DN-9:current")
}
