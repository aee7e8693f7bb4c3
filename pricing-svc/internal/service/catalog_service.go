package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"overcooked-ordering/pricing-svc/internal/domain"
	"overcooked-ordering/pricing-svc/internal/pricing"
)

var ErrCatalogUnavailable = errors.New("catalog unavailable")

// CatalogService compiles the menu and offers from the repository and keeps
// the compiled snapshot in the cache. The last good snapshot is held in
// memory and served when both the cache and the repository fail.
type CatalogService struct {
	repository CatalogRepository
	cache      CatalogCache
	clock      Clock

	mu       sync.RWMutex
	lastGood *domain.Catalog
}

func NewCatalogService(repository CatalogRepository, cache CatalogCache, clock Clock) *CatalogService {
	return &CatalogService{
		repository: repository,
		cache:      cache,
		clock:      clock,
	}
}

func (s *CatalogService) Snapshot(ctx context.Context) (*domain.Catalog, error) {
	if s.cache != nil {
		catalog, err := s.cache.GetCatalog(ctx)
		if err != nil {
			log.Printf("[pricing-svc] catalog cache read failed: %v", err)
		} else if catalog != nil {
			s.remember(catalog)
			return catalog, nil
		}
	}

	catalog, err := s.compile(ctx)
	if err != nil {
		if errors.Is(err, pricing.ErrConfiguration) {
			return nil, err
		}
		if fallback := s.previous(); fallback != nil {
			log.Printf("[pricing-svc] serving catalog loaded at %s: %v", fallback.LoadedAt.Format("15:04:05"), err)
			return fallback, nil
		}
		return nil, err
	}

	s.store(ctx, catalog)
	return catalog, nil
}

// Reload drops the cached snapshot and recompiles. A configuration error
// rejects the reload and leaves the previous snapshot in place.
func (s *CatalogService) Reload(ctx context.Context) (*domain.Catalog, error) {
	catalog, err := s.compile(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.InvalidateCatalog(ctx); err != nil {
			log.Printf("[pricing-svc] catalog cache invalidate failed: %v", err)
		}
	}
	s.store(ctx, catalog)

	log.Printf("[pricing-svc] catalog reloaded: %d items, %d offers", len(catalog.Items), len(catalog.Offers))
	return catalog, nil
}

func (s *CatalogService) compile(ctx context.Context) (*domain.Catalog, error) {
	items, err := s.repository.LoadMenu(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: load menu: %v", ErrCatalogUnavailable, err)
	}
	specs, err := s.repository.LoadOffers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: load offers: %v", ErrCatalogUnavailable, err)
	}
	return pricing.CompileCatalog(items, specs, s.clock.Now())
}

func (s *CatalogService) store(ctx context.Context, catalog *domain.Catalog) {
	s.remember(catalog)
	if s.cache == nil {
		return
	}
	if err := s.cache.SetCatalog(ctx, catalog); err != nil {
		log.Printf("[pricing-svc] catalog cache write failed: %v", err)
	}
}

func (s *CatalogService) remember(catalog *domain.Catalog) {
	s.mu.Lock()
	s.lastGood = catalog
	s.mu.Unlock()
}

func (s *CatalogService) previous() *domain.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastGood
}
