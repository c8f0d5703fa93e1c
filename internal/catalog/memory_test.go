package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/example/travelon/internal/engagement"
)

func TestListHotelsFilters(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	seed := []Hotel{
		{Name: "Budget Inn", City: "Bangalore", PricePerNightMin: 1000, PricePerNightMax: 2000, IsActive: true},
		{Name: "Grand Palace", City: "Bangalore", PricePerNightMin: 8000, PricePerNightMax: 12000, IsActive: true},
		{Name: "Seaside", City: "Goa", PricePerNightMin: 3000, PricePerNightMax: 5000, IsActive: true},
		{Name: "Closed Doors", City: "Bangalore", PricePerNightMin: 500, PricePerNightMax: 900, IsActive: false},
	}
	for _, h := range seed {
		if _, err := store.CreateHotel(ctx, h); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name   string
		filter HotelFilter
		want   []string
	}{
		{"all active", HotelFilter{}, []string{"Budget Inn", "Grand Palace", "Seaside"}},
		{"by city", HotelFilter{City: "Bangalore"}, []string{"Budget Inn", "Grand Palace"}},
		{"min price", HotelFilter{MinPrice: 4000}, []string{"Grand Palace", "Seaside"}},
		{"max price", HotelFilter{MaxPrice: 3500}, []string{"Budget Inn", "Seaside"}},
		{"band", HotelFilter{City: "Bangalore", MinPrice: 5000}, []string{"Grand Palace"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := store.ListHotels(ctx, tc.filter)
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("expected %d hotels, got %d", len(tc.want), len(got))
			}
			for i, h := range got {
				if h.Name != tc.want[i] {
					t.Fatalf("position %d: expected %q, got %q", i, tc.want[i], h.Name)
				}
			}
		})
	}
}

func TestListRestaurantsByCuisine(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	_, _ = store.CreateRestaurant(ctx, Restaurant{Name: "Dosa Corner", City: "Bangalore", Cuisines: []string{"South Indian"}, IsActive: true})
	_, _ = store.CreateRestaurant(ctx, Restaurant{Name: "Pasta Bar", City: "Bangalore", Cuisines: []string{"Italian"}, IsActive: true})

	got, err := store.ListRestaurants(ctx, RestaurantFilter{Cuisine: "Italian"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Name != "Pasta Bar" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestMenuRequiresRestaurant(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	if _, err := store.CreateMenuItem(ctx, MenuItem{RestaurantID: "ghost", Name: "Idli", Price: 40}); !errors.Is(err, engagement.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := store.ListMenu(ctx, "ghost"); !errors.Is(err, engagement.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	r, _ := store.CreateRestaurant(ctx, Restaurant{Name: "Dosa Corner", City: "Bangalore", IsActive: true})
	if _, err := store.CreateMenuItem(ctx, MenuItem{RestaurantID: r.ID, Name: "Idli", Price: 40}); err != nil {
		t.Fatal(err)
	}
	items, err := store.ListMenu(ctx, r.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 menu item, got %d", len(items))
	}
}

func TestSetRatingSummaryPerEntityType(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	h, _ := store.CreateHotel(ctx, Hotel{Name: "H", City: "Bangalore", IsActive: true})
	p, _ := store.CreatePlace(ctx, Place{Name: "Lalbagh", Category: "interest", City: "Bangalore"})

	if err := store.SetRatingSummary(ctx, engagement.EntityHotel, h.ID, engagement.Summary{Rating: 4.5, ReviewCount: 2}); err != nil {
		t.Fatal(err)
	}
	if err := store.SetRatingSummary(ctx, engagement.EntityPlace, p.ID, engagement.Summary{Rating: 4.0, ReviewCount: 1}); err != nil {
		t.Fatal(err)
	}

	got, _ := store.GetHotel(ctx, h.ID)
	if got.Rating != 4.5 || got.ReviewCount != 2 {
		t.Fatalf("hotel summary not applied: %+v", got)
	}
	gotPlace, _ := store.GetPlace(ctx, p.ID)
	if gotPlace.Rating != 4.0 || gotPlace.ReviewCount != 1 {
		t.Fatalf("place summary not applied: %+v", gotPlace)
	}

	ok, _ := store.EntityExists(ctx, engagement.EntityRestaurant, h.ID)
	if ok {
		t.Fatal("hotel id must not exist as a restaurant")
	}
}

// End to end through the review service: an approved review lands on the
// hotel's denormalized rating fields.
func TestApprovedReviewUpdatesHotelRating(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	h, err := store.CreateHotel(ctx, Hotel{Name: "Grand Palace", City: "Bangalore", IsActive: true})
	if err != nil {
		t.Fatal(err)
	}

	svc := &engagement.Service{
		Reviews:  engagement.NewInMemoryReviewStore(),
		Entities: store,
	}
	review, err := svc.SubmitReview(ctx, engagement.SubmitReviewInput{
		EntityType: engagement.EntityHotel, EntityID: h.ID, UserID: "u1",
		Rating: 4, Title: "Great stay", Comment: "clean rooms and very helpful staff",
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.ApproveReview(ctx, review.ID, true); err != nil {
		t.Fatal(err)
	}

	got, err := store.GetHotel(ctx, h.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Rating != 4.0 || got.ReviewCount != 1 {
		t.Fatalf("expected rating 4.0 count 1, got %+v", got)
	}
}
