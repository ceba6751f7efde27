package shipments

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"

	"github.com/jammyops/parceltrack/internal/models"
)

type Repository interface {
	RegisterShipments(ctx context.Context, items []models.ShipmentCreateInput) error
	GetShipmentsByIDs(ctx context.Context, ids []string) ([]*models.Shipment, error)
}

type BytesCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// Service is the read/registration side of the shipments table: registration
// of externally-created records and current-status reads with a short Redis
// cache in front of Postgres.
type Service struct {
	repo       Repository
	cache      BytesCache
	currentTTL time.Duration
}

func New(repo Repository, c BytesCache, currentTTL time.Duration) *Service {
	return &Service{repo: repo, cache: c, currentTTL: currentTTL}
}

func (s *Service) Register(ctx context.Context, items []models.ShipmentCreateInput) (int, error) {
	if len(items) == 0 {
		return 0, errors.New("items is empty")
	}
	if len(items) > 10_000 {
		return 0, errors.New("too many items (max 10000)")
	}

	clean := make([]models.ShipmentCreateInput, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		if it.ID == "" {
			return 0, errors.New("id is required")
		}
		if it.CarrierHint == "" {
			return 0, errors.New("carrierHint is required")
		}
		if _, ok := seen[it.ID]; ok {
			continue
		}
		seen[it.ID] = struct{}{}
		clean = append(clean, it)
	}

	if err := s.repo.RegisterShipments(ctx, clean); err != nil {
		return 0, err
	}
	return len(clean), nil
}

func (s *Service) GetByIDs(ctx context.Context, ids []string) ([]*models.Shipment, error) {
	if len(ids) == 0 {
		return []*models.Shipment{}, nil
	}
	// Кэшируем "текущее состояние" целиком как JSON записи. Кэш —
	// лучшее усилие, БД остаётся источником истины.
	miss := make([]string, 0, len(ids))
	got := make(map[string]*models.Shipment, len(ids))

	if s.cache != nil && s.currentTTL > 0 {
		for _, id := range ids {
			b, ok, err := s.cache.Get(ctx, currentKey(id))
			if err != nil || !ok {
				miss = append(miss, id)
				continue
			}
			var sh models.Shipment
			if json.Unmarshal(b, &sh) != nil {
				miss = append(miss, id)
				continue
			}
			got[id] = &sh
		}
	} else {
		miss = ids
	}

	if len(miss) > 0 {
		fromDB, err := s.repo.GetShipmentsByIDs(ctx, miss)
		if err != nil {
			return nil, err
		}
		if s.cache != nil && s.currentTTL > 0 {
			for _, sh := range fromDB {
				b, _ := json.Marshal(sh)
				_ = s.cache.Set(ctx, currentKey(sh.ID), b, s.currentTTL)
			}
		}
		for _, sh := range fromDB {
			got[sh.ID] = sh
		}
	}

	// Ответ в том же порядке, что ids.
	out := make([]*models.Shipment, 0, len(ids))
	for _, id := range ids {
		if sh, ok := got[id]; ok {
			out = append(out, sh)
		}
	}
	return out, nil
}

// InvalidateCurrent drops the cached current state after a status write.
func (s *Service) InvalidateCurrent(ctx context.Context, id string) {
	if s.cache == nil || s.currentTTL <= 0 {
		return
	}
	_ = s.cache.Del(ctx, currentKey(id))
}

func currentKey(id string) string {
	return "shipment:" + id + ":current"
}
