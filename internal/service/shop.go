package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/campusone/campus-hub-api/internal/dto"
	"github.com/campusone/campus-hub-api/internal/model"
	"github.com/campusone/campus-hub-api/internal/store"
)

var (
	ErrShopNotFound    = errors.New("shop not found")
	ErrServiceNotFound = errors.New("service not found")
	ErrItemNotFound    = errors.New("item not found")
	ErrShopOwnership   = errors.New("shop not owned by seller")
)

// ShopService owns the shop collection: catalog reads, seller inventory
// mutations, and the name lookups the assistant tools use.
type ShopService struct {
	store store.Store
	log   *slog.Logger

	mu    sync.Mutex
	shops []model.Shop
}

// NewShopService loads the persisted shops, falling back to the fixed seed
// catalog on first run (which is persisted immediately).
func NewShopService(ctx context.Context, st store.Store, log *slog.Logger) (*ShopService, error) {
	shops, err := st.LoadShops(ctx)
	if err != nil {
		return nil, fmt.Errorf("load shops: %w", err)
	}
	if len(shops) == 0 {
		shops = store.SeedShops()
		if err := st.SaveShops(ctx, shops); err != nil {
			log.Warn("persist seeded shops", "error", err)
		}
		log.Info("seeded shop catalog", "shops", len(shops))
	}
	return &ShopService{store: st, log: log, shops: shops}, nil
}

func (s *ShopService) List() []model.Shop {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *ShopService) Get(id string) (*model.Shop, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.shops {
		if s.shops[i].ID == id {
			shop := cloneShop(s.shops[i])
			return &shop, nil
		}
	}
	return nil, ErrShopNotFound
}

// FindByName resolves a shop by case-insensitive substring match, the way
// spoken shop names arrive from the assistant.
func (s *ShopService) FindByName(name string) (*model.Shop, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	needle := strings.ToLower(name)
	for i := range s.shops {
		if strings.Contains(strings.ToLower(s.shops[i].Name), needle) {
			shop := cloneShop(s.shops[i])
			return &shop, nil
		}
	}
	return nil, ErrShopNotFound
}

// ResolveService returns the named service of a shop, for booking.
func (s *ShopService) ResolveService(shopID, serviceID string) (*model.ServiceItem, error) {
	shop, err := s.Get(shopID)
	if err != nil {
		return nil, err
	}
	offering, ok := shop.Offering.(model.Services)
	if !ok {
		return nil, ErrServiceNotFound
	}
	for _, svc := range offering.Services {
		if svc.ID == serviceID {
			return &svc, nil
		}
	}
	return nil, ErrServiceNotFound
}

// AddItem appends a new resource to the shop, dispatching on the offering
// variant: retail shops gain an inventory item whose availability derives
// from its initial stock, service shops gain a bookable service.
func (s *ShopService) AddItem(ctx context.Context, shopID string, req dto.AddItemRequest) error {
	s.mu.Lock()
	var found bool
	for i := range s.shops {
		if s.shops[i].ID != shopID {
			continue
		}
		found = true
		switch o := s.shops[i].Offering.(type) {
		case model.Retail:
			stock := 0
			if req.Stock != nil {
				stock = *req.Stock
			}
			o.Items = append(o.Items, model.InventoryItem{
				ID:        uuid.NewString(),
				Name:      req.Name,
				Price:     req.Price,
				Available: stock > 0,
				Stock:     stock,
			})
			s.shops[i].Offering = o
		case model.Services:
			duration := req.Duration
			if duration == "" {
				duration = "30 mins"
			}
			o.Services = append(o.Services, model.ServiceItem{
				ID:       uuid.NewString(),
				Name:     req.Name,
				Price:    req.Price,
				Duration: duration,
			})
			s.shops[i].Offering = o
		}
		break
	}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	if !found {
		return ErrShopNotFound
	}
	s.persist(ctx, snapshot)
	return nil
}

// UpdateItem edits price, stock, or the manual availability toggle of an
// existing resource. Toggling availability independent of stock is an
// accepted seller override.
func (s *ShopService) UpdateItem(ctx context.Context, shopID, itemID string, req dto.UpdateItemRequest) error {
	s.mu.Lock()
	err := ErrShopNotFound
	for i := range s.shops {
		if s.shops[i].ID != shopID {
			continue
		}
		err = ErrItemNotFound
		switch o := s.shops[i].Offering.(type) {
		case model.Retail:
			for j := range o.Items {
				if o.Items[j].ID != itemID {
					continue
				}
				if req.Price != nil {
					o.Items[j].Price = *req.Price
				}
				if req.Stock != nil {
					o.Items[j].Stock = *req.Stock
				}
				if req.Available != nil {
					o.Items[j].Available = *req.Available
				}
				err = nil
				break
			}
			s.shops[i].Offering = o
		case model.Services:
			for j := range o.Services {
				if o.Services[j].ID != itemID {
					continue
				}
				if req.Price != nil {
					o.Services[j].Price = *req.Price
				}
				err = nil
				break
			}
			s.shops[i].Offering = o
		}
		break
	}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	if err != nil {
		return err
	}
	s.persist(ctx, snapshot)
	return nil
}

func (s *ShopService) persist(ctx context.Context, shops []model.Shop) {
	if err := s.store.SaveShops(ctx, shops); err != nil {
		s.log.Warn("persist shops", "error", err)
	}
}

// snapshotLocked deep-copies the offering slices as well: returned
// snapshots are JSON-marshalled outside the lock, and UpdateItem edits
// item fields in place, so a shallow header copy would still share the
// backing arrays with the live collection.
func (s *ShopService) snapshotLocked() []model.Shop {
	out := make([]model.Shop, len(s.shops))
	for i := range s.shops {
		out[i] = cloneShop(s.shops[i])
	}
	return out
}

func cloneShop(shop model.Shop) model.Shop {
	switch o := shop.Offering.(type) {
	case model.Retail:
		items := make([]model.InventoryItem, len(o.Items))
		copy(items, o.Items)
		shop.Offering = model.Retail{Items: items}
	case model.Services:
		services := make([]model.ServiceItem, len(o.Services))
		copy(services, o.Services)
		shop.Offering = model.Services{Services: services}
	}
	return shop
}
