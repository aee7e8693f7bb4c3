package tests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	httpapi "overcooked-ordering/pricing-svc/internal/api/http"
	"overcooked-ordering/pricing-svc/internal/domain"
	"overcooked-ordering/pricing-svc/internal/mocks"
	"overcooked-ordering/pricing-svc/internal/pricing"
	"overcooked-ordering/pricing-svc/internal/service"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func serve(handler *httpapi.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r := mux.NewRouter()
	handler.RegisterRoutes(r)
	r.ServeHTTP(w, req)
	return w
}

func TestQuoteCartHandler(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		setupMock func(*mocks.CatalogProvider)
		wantCode  int
		wantTotal int64
	}{
		{
			name: "valid cart",
			body: `{"lines":[{"item_id":"katsu","quantity":2}]}`,
			setupMock: func(m *mocks.CatalogProvider) {
				m.On("Snapshot", mock.Anything).Return(catalogFixture(), nil).Once()
			},
			wantCode:  http.StatusOK,
			wantTotal: 1955,
		},
		{
			name: "offer declined",
			body: `{"lines":[{"item_id":"katsu","quantity":2}],"accepted_offer_ids":[]}`,
			setupMock: func(m *mocks.CatalogProvider) {
				m.On("Snapshot", mock.Anything).Return(catalogFixture(), nil).Once()
			},
			wantCode:  http.StatusOK,
			wantTotal: 2300,
		},
		{
			name:      "invalid JSON",
			body:      `{invalid}`,
			setupMock: func(m *mocks.CatalogProvider) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "empty cart",
			body:      `{"lines":[]}`,
			setupMock: func(m *mocks.CatalogProvider) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "negative quantity",
			body: `{"lines":[{"item_id":"katsu","quantity":-1}]}`,
			setupMock: func(m *mocks.CatalogProvider) {
				m.On("Snapshot", mock.Anything).Return(catalogFixture(), nil).Once()
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "catalog unavailable",
			body: `{"lines":[{"item_id":"katsu","quantity":1}]}`,
			setupMock: func(m *mocks.CatalogProvider) {
				m.On("Snapshot", mock.Anything).Return(nil, fmt.Errorf("%w: db down", service.ErrCatalogUnavailable)).Once()
			},
			wantCode: http.StatusServiceUnavailable,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			provider := mocks.NewCatalogProvider(t)
			testCase.setupMock(provider)
			pricingSvc := service.NewPricingService(provider, fixedClock{at: mondayAt(12, 0)}, pricing.StackExclusive)
			handler := httpapi.NewHandler(pricingSvc, nil)

			req := httptest.NewRequest("POST", "/api/cart/quote", bytes.NewBufferString(testCase.body))
			req.Header.Set("Content-Type", "application/json")
			w := serve(handler, req)

			assert.Equal(t, testCase.wantCode, w.Code)
			if testCase.wantCode == http.StatusOK {
				var quote domain.Quote
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &quote))
				assert.Equal(t, testCase.wantTotal, quote.DiscountedTotal)
				assert.Equal(t, int64(2300), quote.OriginalTotal)
			}
		})
	}
}

func TestGetOffersHandler(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		snapshot bool
		wantCode int
	}{
		{name: "now", query: "", snapshot: true, wantCode: http.StatusOK},
		{name: "explicit instant", query: "?at=2025-06-02T20:00:00%2B09:00", snapshot: true, wantCode: http.StatusOK},
		{name: "bad instant", query: "?at=tonight", wantCode: http.StatusBadRequest},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			provider := mocks.NewCatalogProvider(t)
			if testCase.snapshot {
				provider.On("Snapshot", mock.Anything).Return(catalogFixture(), nil).Once()
			}
			pricingSvc := service.NewPricingService(provider, fixedClock{at: mondayAt(12, 0)}, pricing.StackExclusive)

			w := serve(httpapi.NewHandler(pricingSvc, nil), httptest.NewRequest("GET", "/api/offers"+testCase.query, nil))
			assert.Equal(t, testCase.wantCode, w.Code)

			if testCase.wantCode == http.StatusOK {
				var statuses []domain.OfferStatus
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &statuses))
				assert.Len(t, statuses, 3)
			}
		})
	}
}

func TestSplitHandlers(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		body     string
		snapshot bool
		wantCode int
		wantSum  int64
	}{
		{name: "equal split", path: "/api/split/equal", body: `{"total":1000,"participants":3}`, wantCode: http.StatusOK, wantSum: 1002},
		{name: "equal split without participants", path: "/api/split/equal", body: `{"total":1000,"participants":0}`, wantCode: http.StatusBadRequest},
		{
			name:     "by item",
			path:     "/api/split/items",
			body:     `{"lines":[{"item_id":"katsu","quantity":2},{"item_id":"gyoza","quantity":1}],"participants":[{"name":"Alice","item_ids":["katsu"]},{"name":"Bob"}]}`,
			snapshot: true,
			wantCode: http.StatusOK,
			wantSum:  2455,
		},
		{
			name:     "by item with one participant",
			path:     "/api/split/items",
			body:     `{"lines":[{"item_id":"katsu","quantity":1}],"participants":[{"name":"Alice"}]}`,
			snapshot: true,
			wantCode: http.StatusBadRequest,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			provider := mocks.NewCatalogProvider(t)
			if testCase.snapshot {
				provider.On("Snapshot", mock.Anything).Return(catalogFixture(), nil).Once()
			}
			pricingSvc := service.NewPricingService(provider, fixedClock{at: mondayAt(12, 0)}, pricing.StackExclusive)

			req := httptest.NewRequest("POST", testCase.path, bytes.NewBufferString(testCase.body))
			w := serve(httpapi.NewHandler(pricingSvc, nil), req)
			assert.Equal(t, testCase.wantCode, w.Code)

			if testCase.wantCode == http.StatusOK {
				var split domain.BillSplit
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &split))
				var sum int64
				for _, allocation := range split.Allocations {
					sum += allocation.Amount
				}
				assert.Equal(t, testCase.wantSum, sum)
			}
		})
	}
}

func TestReloadCatalogHandler(t *testing.T) {
	tests := []struct {
		name     string
		result   *domain.Catalog
		err      error
		wantCode int
	}{
		{name: "reloaded", result: catalogFixture(), wantCode: http.StatusOK},
		{name: "malformed offer", err: fmt.Errorf("%w: offer lunch-15: window crosses midnight", pricing.ErrConfiguration), wantCode: http.StatusUnprocessableEntity},
		{name: "database down", err: fmt.Errorf("%w: load menu", service.ErrCatalogUnavailable), wantCode: http.StatusServiceUnavailable},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			pricingSvc := mocks.NewPricingServiceInterface(t)
			if testCase.err != nil {
				pricingSvc.On("ReloadCatalog", mock.Anything).Return(nil, testCase.err).Once()
			} else {
				pricingSvc.On("ReloadCatalog", mock.Anything).Return(testCase.result, nil).Once()
			}

			w := serve(httpapi.NewHandler(pricingSvc, nil), httptest.NewRequest("POST", "/api/catalog/reload", nil))
			assert.Equal(t, testCase.wantCode, w.Code)
		})
	}
}

func TestCreateOrderHandler(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		setupMock func(*mocks.PricingServiceInterface, *mocks.OrderRepository)
		wantCode  int
	}{
		{
			name: "created",
			body: `{"lines":[{"item_id":"katsu","quantity":2}],"split":{"mode":"equal","count":2}}`,
			setupMock: func(p *mocks.PricingServiceInterface, repo *mocks.OrderRepository) {
				split := &domain.BillSplit{Mode: domain.SplitEqual, Total: 1955, Allocations: []domain.Allocation{
					{Name: "Guest 1", Amount: 978}, {Name: "Guest 2", Amount: 978},
				}}
				p.On("Checkout", mock.Anything, mock.AnythingOfType("domain.OrderRequest")).Return(checkoutQuote(), split, nil).Once()
				repo.On("CreateOrder", mock.Anything, mock.AnythingOfType("*domain.Order")).Return(nil).Once()
			},
			wantCode: http.StatusCreated,
		},
		{
			name:      "invalid JSON",
			body:      `{"lines":`,
			setupMock: func(p *mocks.PricingServiceInterface, repo *mocks.OrderRepository) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "split rejected",
			body: `{"lines":[{"item_id":"katsu","quantity":2}],"split":{"mode":"by-item","participants":[{"name":"Solo"}]}}`,
			setupMock: func(p *mocks.PricingServiceInterface, repo *mocks.OrderRepository) {
				p.On("Checkout", mock.Anything, mock.Anything).Return(nil, nil, fmt.Errorf("%w: need 2 participants", pricing.ErrValidation)).Once()
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "database error",
			body: `{"lines":[{"item_id":"katsu","quantity":2}]}`,
			setupMock: func(p *mocks.PricingServiceInterface, repo *mocks.OrderRepository) {
				p.On("Checkout", mock.Anything, mock.Anything).Return(checkoutQuote(), nil, nil).Once()
				repo.On("CreateOrder", mock.Anything, mock.Anything).Return(assert.AnError).Once()
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			pricingSvc := mocks.NewPricingServiceInterface(t)
			repo := mocks.NewOrderRepository(t)
			testCase.setupMock(pricingSvc, repo)

			orderSvc := service.NewOrderService(pricingSvc, repo, nil, nil, fixedClock{at: mondayAt(12, 0)})
			req := httptest.NewRequest("POST", "/api/orders", bytes.NewBufferString(testCase.body))
			w := serve(httpapi.NewHandler(pricingSvc, orderSvc), req)

			assert.Equal(t, testCase.wantCode, w.Code)
			if testCase.wantCode == http.StatusCreated {
				var order domain.Order
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))
				assert.Equal(t, int64(1955), order.ComputedTotal)
				require.NotNil(t, order.SplitAllocation)
				assert.Len(t, order.SplitAllocation.Allocations, 2)
			}
		})
	}
}

func TestGetOrderHandlers(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		setupMock func(*mocks.OrderRepository)
		wantCode  int
		wantType  string
	}{
		{
			name: "order found",
			path: "/api/orders/o-1",
			setupMock: func(m *mocks.OrderRepository) {
				m.On("GetOrder", mock.Anything, "o-1").Return(&domain.Order{ID: "o-1", ComputedTotal: 1955}, nil).Once()
			},
			wantCode: http.StatusOK,
			wantType: "application/json",
		},
		{
			name: "order missing",
			path: "/api/orders/nope",
			setupMock: func(m *mocks.OrderRepository) {
				m.On("GetOrder", mock.Anything, "nope").Return(nil, service.ErrOrderNotFound).Once()
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "qr code",
			path: "/api/orders/o-1/qrcode",
			setupMock: func(m *mocks.OrderRepository) {
				m.On("GetQRCode", mock.Anything, "o-1").Return([]byte("png"), nil).Once()
			},
			wantCode: http.StatusOK,
			wantType: "image/png",
		},
		{
			name: "qr code missing",
			path: "/api/orders/o-2/qrcode",
			setupMock: func(m *mocks.OrderRepository) {
				m.On("GetQRCode", mock.Anything, "o-2").Return(nil, nil).Once()
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			repo := mocks.NewOrderRepository(t)
			testCase.setupMock(repo)
			orderSvc := service.NewOrderService(nil, repo, nil, nil, fixedClock{at: mondayAt(12, 0)})

			w := serve(httpapi.NewHandler(nil, orderSvc), httptest.NewRequest("GET", testCase.path, nil))
			assert.Equal(t, testCase.wantCode, w.Code)
			if testCase.wantType != "" {
				assert.Equal(t, testCase.wantType, w.Header().Get("Content-Type"))
			}
		})
	}
}

func TestHealthCheckHandler(t *testing.T) {
	w := serve(httpapi.NewHandler(nil, nil), httptest.NewRequest("GET", "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pricing-svc")
}
