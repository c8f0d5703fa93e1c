package localposts

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/example/travelon/internal/engagement"
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

func TestCreatePostHandler(t *testing.T) {
	svc, _ := newTestService()
	handler := CreatePost(svc)

	body := `{"city":"Bangalore","post_type":"Tip","title":"South gate trick","content":"` + validContent + `"}`
	req := setupReq(http.MethodPost, "/v1/local-posts", body, nil, "local-1")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	var resp struct {
		Data Post `json:"data"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Data.IsApproved {
		t.Fatal("created post must be pending approval")
	}
}

func TestCreatePostHandler_Unauthenticated(t *testing.T) {
	svc, _ := newTestService()
	handler := CreatePost(svc)

	req := setupReq(http.MethodPost, "/v1/local-posts", `{}`, nil, "")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestVotePostHandler(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()
	p, _ := store.Create(ctx, validPost("author"))

	handler := VotePost(svc, engagement.Upvote)
	req := setupReq(http.MethodPost, "/v1/local-posts/"+p.ID+"/upvote", "",
		map[string]string{"id": p.ID}, "user-a")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var resp struct {
		Data engagement.VoteCounts `json:"data"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Data.Upvotes != 1 {
		t.Fatalf("expected 1 upvote, got %+v", resp.Data)
	}
}

func TestGetPostHandler_NotFound(t *testing.T) {
	svc, _ := newTestService()
	handler := GetPost(svc)

	req := setupReq(http.MethodGet, "/v1/local-posts/ghost", "", map[string]string{"id": "ghost"}, "")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestAddCommentHandler(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()
	p, _ := store.Create(ctx, validPost("author"))

	handler := AddComment(svc)
	req := setupReq(http.MethodPost, "/v1/local-posts/"+p.ID+"/comments",
		`{"comment":"try the filter coffee"}`, map[string]string{"id": p.ID}, "user-a")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
}
