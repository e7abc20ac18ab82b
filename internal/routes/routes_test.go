package routes

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/roomsync-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/roomsync-backend/internal/events"
	"github.com/ahmetcoskunkizilkaya/roomsync-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/roomsync-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/roomsync-backend/internal/repository/memrepo"
	"github.com/ahmetcoskunkizilkaya/roomsync-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	app    *fiber.App
	store  *memrepo.Store
	events *events.Recorder
}

func newTestServer(t *testing.T, ping func() error) *testServer {
	t.Helper()
	cfg := &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  time.Hour,
		RateLimitMax:     1000,
		AuthRateLimitMax: 1000,
	}
	store := memrepo.NewStore()
	rec := &events.Recorder{}
	m := metrics.New("test")

	authService := services.NewAuthService(store.Users(), rec, m)
	listingService := services.NewListingService(store.Listings(), store.Users(), rec, m)

	app := fiber.New()
	app.Use(requestid.New())
	Setup(app, cfg, Handlers{
		Auth:    handlers.NewAuthHandler(authService, services.NewTokenService(cfg)),
		Health:  handlers.NewHealthHandler(ping),
		Listing: handlers.NewListingHandler(listingService),
		Message: handlers.NewMessageHandler(services.NewMessageService(store.Messages(), store.Users(), m)),
		Saved:   handlers.NewSavedListingHandler(services.NewSavedListingService(store.Saved(), store.Listings())),
		Review:  handlers.NewReviewHandler(services.NewReviewService(store.Reviews(), store.Listings())),
		Profile: handlers.NewProfileHandler(services.NewProfileService(store.Profiles())),
		Metrics: m,
	})
	return &testServer{app: app, store: store, events: rec}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}, token string) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

// register signs a user up and logs in, returning its id and access token.
func (s *testServer) register(t *testing.T, username string) (string, string) {
	t.Helper()
	email := username + "@example.com"
	status, _ := s.do(t, http.MethodPost, "/api/auth/signup", map[string]string{
		"username": username, "email": email, "password": "password123",
	}, "")
	require.Equal(t, http.StatusCreated, status)

	status, body := s.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email": email, "password": "password123",
	}, "")
	require.Equal(t, http.StatusOK, status)

	var resp struct {
		AccessToken string `json:"access_token"`
		User        struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp.User.ID, resp.AccessToken
}

func decode(t *testing.T, data []byte, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(data, v), string(data))
}

func listingBody(owner string) map[string]interface{} {
	return map[string]interface{}{
		"owner_user_id":  owner,
		"title":          "Room on Main St",
		"description":    "Two blocks from campus",
		"property_type":  "House",
		"location":       "Charlottesville, VA",
		"rent_price":     725.5,
		"lease_duration": 12,
		"avail_start":    "2024-08-15",
		"avail_end":      "2025-05-31",
	}
}

func TestAuthEndpoints(t *testing.T) {
	s := newTestServer(t, func() error { return nil })

	status, body := s.do(t, http.MethodPost, "/api/auth/signup", map[string]string{
		"username": "alice", "email": "Alice@Example.com", "password": "password123",
	}, "")
	require.Equal(t, http.StatusCreated, status)
	var signup map[string]interface{}
	decode(t, body, &signup)
	assert.Equal(t, map[string]interface{}{"email": "alice@example.com"}, signup)

	status, body = s.do(t, http.MethodPost, "/api/auth/signup", map[string]string{
		"username": "alice2", "email": "alice@example.com", "password": "password456",
	}, "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, string(body), "Email already exists")

	status, _ = s.do(t, http.MethodPost, "/api/auth/signup", map[string]string{
		"username": "bob", "email": "bob@example.com", "password": "short",
	}, "")
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = s.do(t, http.MethodPost, "/api/auth/signup", map[string]string{
		"username": "bob", "email": "bob@example.com", "password": strings.Repeat("a", 80),
	}, "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, string(body), "at most 72 bytes")

	status, body = s.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email": "alice@example.com", "password": "password123",
	}, "")
	require.Equal(t, http.StatusOK, status)
	assert.NotContains(t, string(body), "password")
	var login struct {
		AccessToken string                 `json:"access_token"`
		User        map[string]interface{} `json:"user"`
	}
	decode(t, body, &login)
	assert.NotEmpty(t, login.AccessToken)
	assert.Equal(t, "alice", login.User["username"])

	status, body = s.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email": "alice@example.com", "password": "wrong-password",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Contains(t, string(body), "Invalid credentials")

	status, body = s.do(t, http.MethodGet, "/api/auth/me", nil, login.AccessToken)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), `"email":"alice@example.com"`)

	status, _ = s.do(t, http.MethodGet, "/api/auth/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = s.do(t, http.MethodGet, "/api/auth/user/"+login.User["id"].(string), nil, "")
	assert.Equal(t, http.StatusOK, status)
	status, _ = s.do(t, http.MethodGet, "/api/auth/user/not-a-uuid", nil, "")
	assert.Equal(t, http.StatusBadRequest, status)

	assert.Equal(t, []string{events.SubjectUserRegistered}, s.events.Subjects())
}

func TestListingEndpoints(t *testing.T) {
	s := newTestServer(t, func() error { return nil })
	owner, _ := s.register(t, "owner")

	standard := listingBody(owner)
	standard["sublease_reason"] = "should be ignored"
	status, body := s.do(t, http.MethodPost, "/api/listings", standard, "")
	require.Equal(t, http.StatusCreated, status, string(body))
	var created map[string]interface{}
	decode(t, body, &created)
	assert.Equal(t, "standard", created["kind"])
	assert.Equal(t, false, created["is_sublease"])
	assert.NotContains(t, created, "sublease_reason")
	assert.Equal(t, "2024-08-15", created["avail_start"])

	sublease := listingBody(owner)
	sublease["is_sublease"] = true
	sublease["sublease_reason"] = "Internship out of state"
	status, body = s.do(t, http.MethodPost, "/api/listings/create", sublease, "")
	require.Equal(t, http.StatusCreated, status, string(body))
	assert.Contains(t, string(body), "Internship out of state")

	missing := listingBody(owner)
	missing["is_sublease"] = true
	status, _ = s.do(t, http.MethodPost, "/api/listings", missing, "")
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = s.do(t, http.MethodPost, "/api/listings", listingBody("6f1c1a3e-8a5b-4d7e-9c2f-0b1d2e3f4a5b"), "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, 2, s.store.ListingCount())

	status, body = s.do(t, http.MethodGet, "/api/listings", nil, "")
	require.Equal(t, http.StatusOK, status)
	var all []map[string]interface{}
	decode(t, body, &all)
	require.Len(t, all, 2)
	for _, l := range all {
		ownerSummary, ok := l["owner"].(map[string]interface{})
		require.True(t, ok, "listing without owner summary")
		assert.Equal(t, owner, ownerSummary["id"])
		assert.Equal(t, "owner", ownerSummary["username"])
		assert.NotContains(t, ownerSummary, "password_hash")
	}

	status, _ = s.do(t, http.MethodGet, "/api/listings/"+created["id"].(string), nil, "")
	assert.Equal(t, http.StatusOK, status)
	status, _ = s.do(t, http.MethodGet, "/api/listings/6f1c1a3e-8a5b-4d7e-9c2f-0b1d2e3f4a5b", nil, "")
	assert.Equal(t, http.StatusNotFound, status)

	status, body = s.do(t, http.MethodGet, "/api/users/"+owner+"/listings", nil, "")
	require.Equal(t, http.StatusOK, status)
	var mine []map[string]interface{}
	decode(t, body, &mine)
	assert.Len(t, mine, 2)
}

func TestMessageEndpoints(t *testing.T) {
	s := newTestServer(t, func() error { return nil })
	a, tokenA := s.register(t, "a")
	b, tokenB := s.register(t, "b")
	tokens := map[string]string{a: tokenA, b: tokenB}

	for i, pair := range [][2]string{{a, b}, {b, a}, {a, b}} {
		status, body := s.do(t, http.MethodPost, "/api/messages/send", map[string]string{
			"sender_id": pair[0], "receiver_id": pair[1], "content": strings.Repeat("x", i+1),
		}, tokens[pair[0]])
		require.Equal(t, http.StatusCreated, status, string(body))
	}

	_, ab := s.do(t, http.MethodGet, "/api/messages/conversation?user1="+a+"&user2="+b, nil, tokenA)
	_, ba := s.do(t, http.MethodGet, "/api/messages/conversation?user1="+b+"&user2="+a, nil, tokenB)
	var abMsgs, baMsgs []map[string]interface{}
	decode(t, ab, &abMsgs)
	decode(t, ba, &baMsgs)
	require.Len(t, abMsgs, 3)
	assert.Equal(t, abMsgs, baMsgs)
	assert.Equal(t, "x", abMsgs[0]["content"])
	assert.Equal(t, "xxx", abMsgs[2]["content"])

	status, body := s.do(t, http.MethodGet, "/api/messages/conversations?user_id="+a, nil, tokenA)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), `"partner_username":"b"`)

	status, body = s.do(t, http.MethodGet, "/api/messages/conversations", nil, tokenB)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), `"partner_username":"a"`)

	status, _ = s.do(t, http.MethodGet, "/api/messages/conversation?user1="+a, nil, tokenA)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = s.do(t, http.MethodPost, "/api/messages/send", map[string]string{
		"sender_id": a, "receiver_id": "6f1c1a3e-8a5b-4d7e-9c2f-0b1d2e3f4a5b", "content": "hi",
	}, tokenA)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, 3, s.store.MessageCount())
}

func TestMessageEndpointsActOnlyForCaller(t *testing.T) {
	s := newTestServer(t, func() error { return nil })
	a, tokenA := s.register(t, "a")
	b, _ := s.register(t, "b")
	c, tokenC := s.register(t, "c")

	send := map[string]string{"sender_id": a, "receiver_id": b, "content": "hi"}
	status, _ := s.do(t, http.MethodPost, "/api/messages/send", send, "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = s.do(t, http.MethodPost, "/api/messages/send", send, tokenC)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, 0, s.store.MessageCount())

	status, body := s.do(t, http.MethodPost, "/api/messages/send", map[string]string{
		"receiver_id": b, "content": "sender from token",
	}, tokenA)
	require.Equal(t, http.StatusCreated, status, string(body))
	assert.Contains(t, string(body), a)

	status, _ = s.do(t, http.MethodGet, "/api/messages/conversation?user1="+a+"&user2="+b, nil, "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = s.do(t, http.MethodGet, "/api/messages/conversation?user1="+a+"&user2="+b, nil, tokenC)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = s.do(t, http.MethodGet, "/api/messages/conversations?user_id="+a, nil, tokenC)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = s.do(t, http.MethodGet, "/api/messages/conversation?user1="+c+"&user2="+b, nil, tokenC)
	assert.Equal(t, http.StatusOK, status)
}

func TestSavedListingAndReviewEndpoints(t *testing.T) {
	s := newTestServer(t, func() error { return nil })
	owner, _ := s.register(t, "owner")
	_, token := s.register(t, "renter")

	status, body := s.do(t, http.MethodPost, "/api/listings", listingBody(owner), "")
	require.Equal(t, http.StatusCreated, status)
	var listing map[string]interface{}
	decode(t, body, &listing)
	listingID := listing["id"].(string)

	status, _ = s.do(t, http.MethodPost, "/api/saved-listings", map[string]string{"listing_id": listingID}, "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body = s.do(t, http.MethodPost, "/api/saved-listings", map[string]string{"listing_id": listingID}, token)
	require.Equal(t, http.StatusCreated, status, string(body))
	var saved map[string]interface{}
	decode(t, body, &saved)

	status, _ = s.do(t, http.MethodPost, "/api/saved-listings", map[string]string{"listing_id": listingID}, token)
	assert.Equal(t, http.StatusConflict, status)

	status, _ = s.do(t, http.MethodGet, "/api/saved-listings/listing/"+listingID, nil, token)
	assert.Equal(t, http.StatusOK, status)

	status, _ = s.do(t, http.MethodDelete, "/api/saved-listings/"+saved["id"].(string), nil, token)
	assert.Equal(t, http.StatusNoContent, status)

	status, body = s.do(t, http.MethodPost, "/api/reviews", map[string]interface{}{
		"listing_id": listingID, "rating": 5, "comment": "Great landlord",
	}, token)
	require.Equal(t, http.StatusCreated, status, string(body))
	var review map[string]interface{}
	decode(t, body, &review)

	status, _ = s.do(t, http.MethodPost, "/api/reviews", map[string]interface{}{
		"listing_id": listingID, "rating": 7,
	}, token)
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = s.do(t, http.MethodGet, "/api/reviews/listing/"+listingID, nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), `"username":"renter"`)

	status, body = s.do(t, http.MethodPut, "/api/reviews/"+review["id"].(string), map[string]interface{}{"rating": 4}, token)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), `"rating":4`)

	status, _ = s.do(t, http.MethodDelete, "/api/reviews/"+review["id"].(string), nil, token)
	assert.Equal(t, http.StatusNoContent, status)
}

func TestRoommateEndpoints(t *testing.T) {
	s := newTestServer(t, func() error { return nil })
	_, me := s.register(t, "me")
	_, other := s.register(t, "other")

	status, _ := s.do(t, http.MethodGet, "/api/roommates/profile", nil, me)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = s.do(t, http.MethodPost, "/api/roommates/profile", map[string]interface{}{"gender": "female", "pets": true}, me)
	assert.Equal(t, http.StatusCreated, status)
	status, _ = s.do(t, http.MethodPost, "/api/roommates/profile", map[string]interface{}{}, me)
	assert.Equal(t, http.StatusConflict, status)

	status, body := s.do(t, http.MethodPut, "/api/roommates/profile", map[string]interface{}{"bio": "Early riser"}, me)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), `"gender":"female"`)
	assert.Contains(t, string(body), `"bio":"Early riser"`)

	status, _ = s.do(t, http.MethodPost, "/api/roommates/preferences", map[string]interface{}{"age": 22}, other)
	assert.Equal(t, http.StatusOK, status)

	status, body = s.do(t, http.MethodGet, "/api/roommates/matches?limit=5", nil, me)
	require.Equal(t, http.StatusOK, status)
	var matches []map[string]interface{}
	decode(t, body, &matches)
	require.Len(t, matches, 1)
	assert.Equal(t, "other", matches[0]["username"])
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t, func() error { return nil })
	status, body := s.do(t, http.MethodGet, "/api/health", nil, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), `"db":"ok"`)

	status, body = s.do(t, http.MethodGet, "/metrics", nil, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), "test_http_request_duration_seconds")

	down := newTestServer(t, func() error { return errors.New("connection refused") })
	status, body = down.do(t, http.MethodGet, "/api/health", nil, "")
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Contains(t, string(body), "connection refused")
}
