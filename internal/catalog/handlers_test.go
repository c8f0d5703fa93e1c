package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/example/travelon/internal/platform/auth"
)

func setupReq(method, url, body string, params map[string]string, userID string) *http.Request {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, url, bytes.NewBufferString(body))
	} else {
		req = httptest.NewRequest(method, url, nil)
	}
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	if userID != "" {
		ctx = auth.WithUserID(ctx, userID)
	}
	return req.WithContext(ctx)
}

func TestCreateHotelHandler(t *testing.T) {
	store := NewInMemoryStore()
	handler := CreateHotel(store)

	body := `{"name":"Grand Palace","description":"d","city":"Bangalore","price_per_night_min":4000,"price_per_night_max":9000,"amenities":["WiFi","Pool"]}`
	req := setupReq(http.MethodPost, "/v1/hotels", body, nil, "admin-1")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	var resp struct {
		Data Hotel `json:"data"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Data.ID == "" || !resp.Data.IsActive || resp.Data.OwnerID != "admin-1" {
		t.Fatalf("unexpected hotel: %+v", resp.Data)
	}
	if resp.Data.Rating != 0 || resp.Data.ReviewCount != 0 {
		t.Fatalf("new hotel must start unrated: %+v", resp.Data)
	}
}

func TestCreateHotelHandler_UnknownAmenity(t *testing.T) {
	store := NewInMemoryStore()
	handler := CreateHotel(store)

	body := `{"name":"H","city":"Bangalore","amenities":["Helipad"]}`
	req := setupReq(http.MethodPost, "/v1/hotels", body, nil, "admin-1")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestListHotelsHandler_BadPrice(t *testing.T) {
	handler := ListHotels(NewInMemoryStore())
	req := setupReq(http.MethodGet, "/v1/hotels?minPrice=abc", "", nil, "")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestListHotelsHandler_Filter(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()
	_, _ = store.CreateHotel(ctx, Hotel{Name: "A", City: "Bangalore", PricePerNightMin: 1000, PricePerNightMax: 2000, IsActive: true})
	_, _ = store.CreateHotel(ctx, Hotel{Name: "B", City: "Goa", PricePerNightMin: 1000, PricePerNightMax: 2000, IsActive: true})

	handler := ListHotels(store)
	req := setupReq(http.MethodGet, "/v1/hotels?city=Goa", "", nil, "")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	var resp struct {
		Count int     `json:"count"`
		Data  []Hotel `json:"data"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Count != 1 || resp.Data[0].City != "Goa" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestGetHotelHandler_NotFound(t *testing.T) {
	handler := GetHotel(NewInMemoryStore())
	req := setupReq(http.MethodGet, "/v1/hotels/ghost", "", map[string]string{"id": "ghost"}, "")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestMenuHandlers(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()
	r, _ := store.CreateRestaurant(ctx, Restaurant{Name: "Dosa Corner", City: "Bangalore", IsActive: true})

	create := CreateMenuItem(store)
	body := `{"name":"Masala Dosa","price":80,"category":"Breakfast","is_vegetarian":true}`
	req := setupReq(http.MethodPost, "/v1/restaurants/"+r.ID+"/menu", body, map[string]string{"id": r.ID}, "admin-1")
	rr := httptest.NewRecorder()
	create.ServeHTTP(rr, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}

	list := GetMenu(store)
	req = setupReq(http.MethodGet, "/v1/restaurants/"+r.ID+"/menu", "", map[string]string{"id": r.ID}, "")
	rr = httptest.NewRecorder()
	list.ServeHTTP(rr, req)

	var resp struct {
		Count int        `json:"count"`
		Data  []MenuItem `json:"data"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Count != 1 || !resp.Data[0].IsAvailable {
		t.Fatalf("unexpected menu: %+v", resp)
	}
}

func TestCreatePlaceHandler_BadCategory(t *testing.T) {
	handler := CreatePlace(NewInMemoryStore())
	body := `{"name":"Lalbagh","category":"garden","city":"Bangalore"}`
	req := setupReq(http.MethodPost, "/v1/places", body, nil, "admin-1")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}
