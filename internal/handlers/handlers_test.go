package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imacms/api/internal/config"
	"imacms/api/internal/models"
	"imacms/api/internal/repository"
	"imacms/api/internal/security"
)

type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]models.User)}
}

func (f *fakeUserStore) Create(_ context.Context, user models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, repository.ErrUserNotFound
}

func (f *fakeUserStore) GetByID(_ context.Context, id string) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user, ok := f.users[id]; ok {
		return user, nil
	}
	return models.User{}, repository.ErrUserNotFound
}

const testSecret = "handler-test-secret"

func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.AppConfig{
		Environment: "test",
		Security: config.SecurityConfig{
			JWTSecret: testSecret,
			TokenTTL:  24 * time.Hour,
		},
	}

	h := NewHandlerSetWith(zerolog.Nop(), cfg, newFakeUserStore(), NewMemoryCollections(), nil, nil, nil)

	engine := gin.New()
	h.Register(engine.Group("/api"))
	return engine
}

func doJSON(t *testing.T, engine *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func decodeList(t *testing.T, rec *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var out []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

// registerAdmin creates the admin account and returns its bearer token.
func registerAdmin(t *testing.T, engine *gin.Engine) string {
	t.Helper()
	rec := doJSON(t, engine, http.MethodPost, "/api/auth/register", "", gin.H{
		"email":    "admin@example.com",
		"password": "changeme",
		"name":     "Admin",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode(t, rec)
	token, _ := body["access_token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestRegisterAndMe(t *testing.T) {
	engine := newTestServer(t)

	rec := doJSON(t, engine, http.MethodPost, "/api/auth/register", "", gin.H{
		"email":    "admin@example.com",
		"password": "changeme",
		"name":     "Admin",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, "bearer", body["token_type"])
	token := body["access_token"].(string)

	user := body["user"].(map[string]any)
	assert.Equal(t, "admin@example.com", user["email"])
	assert.Equal(t, "admin", user["role"])
	assert.NotEmpty(t, user["created_at"])

	me := doJSON(t, engine, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, me.Code)
	assert.Equal(t, "admin@example.com", decode(t, me)["email"])
}

func TestRegisterDuplicateEmail(t *testing.T) {
	engine := newTestServer(t)
	registerAdmin(t, engine)

	rec := doJSON(t, engine, http.MethodPost, "/api/auth/register", "", gin.H{
		"email":    "admin@example.com",
		"password": "other",
		"name":     "Other",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Email already registered", decode(t, rec)["error"])
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	engine := newTestServer(t)
	registerAdmin(t, engine)

	wrongPassword := doJSON(t, engine, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "admin@example.com",
		"password": "nope",
	})
	unknownEmail := doJSON(t, engine, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "nobody@example.com",
		"password": "nope",
	})

	require.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	require.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	// Unknown email and wrong password answer identically.
	assert.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
	assert.Equal(t, "Invalid credentials", decode(t, wrongPassword)["error"])
}

func TestAuthMiddlewareFailureModes(t *testing.T) {
	engine := newTestServer(t)

	cases := []struct {
		name    string
		token   string
		message string
	}{
		{"missing token", "", "Not authenticated"},
		{"garbage token", "not-a-jwt", "Invalid token"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, engine, http.MethodGet, "/api/auth/me", tc.token, nil)
			require.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, tc.message, decode(t, rec)["error"])
		})
	}

	t.Run("expired token", func(t *testing.T) {
		expired, err := security.GenerateToken(testSecret, "some-user", "a@example.com", -time.Minute)
		require.NoError(t, err)
		rec := doJSON(t, engine, http.MethodGet, "/api/auth/me", expired, nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Token expired", decode(t, rec)["error"])
	})

	t.Run("deleted user", func(t *testing.T) {
		orphan, err := security.GenerateToken(testSecret, "gone", "gone@example.com", time.Hour)
		require.NoError(t, err)
		rec := doJSON(t, engine, http.MethodGet, "/api/auth/me", orphan, nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "User not found", decode(t, rec)["error"])
	})
}

func TestWriteEndpointsRequireAuth(t *testing.T) {
	engine := newTestServer(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/pages"},
		{http.MethodPut, "/api/pages/x"},
		{http.MethodDelete, "/api/pages/x"},
		{http.MethodPost, "/api/portfolio"},
		{http.MethodGet, "/api/messages"},
		{http.MethodGet, "/api/leads"},
		{http.MethodPut, "/api/settings"},
		{http.MethodGet, "/api/stats"},
		{http.MethodPost, "/api/media/upload"},
	}
	for _, p := range paths {
		rec := doJSON(t, engine, p.method, p.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", p.method, p.path)
	}
}

func TestPageLifecycle(t *testing.T) {
	engine := newTestServer(t)
	token := registerAdmin(t, engine)

	created := doJSON(t, engine, http.MethodPost, "/api/pages", token, gin.H{
		"title": "About Us",
		"slug":  "about",
	})
	require.Equal(t, http.StatusOK, created.Code, created.Body.String())
	page := decode(t, created)
	assert.Equal(t, true, page["is_published"])
	assert.Equal(t, []any{}, page["sections"])
	pageID := page["id"].(string)

	// Slugs are unique.
	dup := doJSON(t, engine, http.MethodPost, "/api/pages", token, gin.H{
		"title": "About Again",
		"slug":  "about",
	})
	require.Equal(t, http.StatusBadRequest, dup.Code)
	assert.Equal(t, "Page with this slug already exists", decode(t, dup)["error"])

	bySlug := doJSON(t, engine, http.MethodGet, "/api/pages/about", "", nil)
	require.Equal(t, http.StatusOK, bySlug.Code)
	assert.Equal(t, "About Us", decode(t, bySlug)["title"])

	// A partial update touches only the fields it carries.
	updated := doJSON(t, engine, http.MethodPut, "/api/pages/"+pageID, token, gin.H{
		"title": "About IMA",
	})
	require.Equal(t, http.StatusOK, updated.Code)
	after := decode(t, updated)
	assert.Equal(t, "About IMA", after["title"])
	assert.Equal(t, "about", after["slug"])
	assert.Equal(t, true, after["is_published"])

	// An explicit null means "no change", same as an absent field.
	nulled := doJSON(t, engine, http.MethodPut, "/api/pages/"+pageID, token,
		json.RawMessage(`{"title":null,"is_published":false}`))
	require.Equal(t, http.StatusOK, nulled.Code)
	afterNull := decode(t, nulled)
	assert.Equal(t, "About IMA", afterNull["title"])
	assert.Equal(t, false, afterNull["is_published"])

	missing := doJSON(t, engine, http.MethodPut, "/api/pages/no-such-id", token, gin.H{"title": "x"})
	require.Equal(t, http.StatusNotFound, missing.Code)
	assert.Equal(t, "Page not found", decode(t, missing)["error"])

	deleted := doJSON(t, engine, http.MethodDelete, "/api/pages/"+pageID, token, nil)
	require.Equal(t, http.StatusOK, deleted.Code)
	assert.Equal(t, "Page deleted", decode(t, deleted)["message"])

	gone := doJSON(t, engine, http.MethodGet, "/api/pages/about", "", nil)
	assert.Equal(t, http.StatusNotFound, gone.Code)

	again := doJSON(t, engine, http.MethodDelete, "/api/pages/"+pageID, token, nil)
	assert.Equal(t, http.StatusNotFound, again.Code)
}

func TestListPagesPublishedOnly(t *testing.T) {
	engine := newTestServer(t)
	token := registerAdmin(t, engine)

	for i, published := range []bool{true, false, true} {
		rec := doJSON(t, engine, http.MethodPost, "/api/pages", token, gin.H{
			"title":        fmt.Sprintf("Page %d", i),
			"slug":         fmt.Sprintf("page-%d", i),
			"is_published": published,
		})
		require.Equal(t, http.StatusOK, rec.Code)
	}

	all := doJSON(t, engine, http.MethodGet, "/api/pages", "", nil)
	require.Equal(t, http.StatusOK, all.Code)
	assert.Len(t, decodeList(t, all), 3)

	published := doJSON(t, engine, http.MethodGet, "/api/pages?published_only=true", "", nil)
	require.Equal(t, http.StatusOK, published.Code)
	assert.Len(t, decodeList(t, published), 2)
}

func TestPortfolioFilters(t *testing.T) {
	engine := newTestServer(t)
	token := registerAdmin(t, engine)

	items := []gin.H{
		{"title": "Spot A", "category": "commercial", "description": "Broadcast spot", "is_featured": true},
		{"title": "Spot B", "category": "commercial", "description": "Unreleased cut", "is_published": false},
		{"title": "Clip C", "category": "music_video", "description": "Performance clip"},
	}
	for _, item := range items {
		rec := doJSON(t, engine, http.MethodPost, "/api/portfolio", token, item)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}

	// published_only defaults to true for the public listing.
	rec := doJSON(t, engine, http.MethodGet, "/api/portfolio", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeList(t, rec), 2)

	rec = doJSON(t, engine, http.MethodGet, "/api/portfolio?published_only=false", "", nil)
	assert.Len(t, decodeList(t, rec), 3)

	rec = doJSON(t, engine, http.MethodGet, "/api/portfolio?category=commercial", "", nil)
	assert.Len(t, decodeList(t, rec), 1)

	rec = doJSON(t, engine, http.MethodGet, "/api/portfolio?featured_only=true", "", nil)
	list := decodeList(t, rec)
	require.Len(t, list, 1)
	assert.Equal(t, "Spot A", list[0]["title"])
}

func TestSocialLinksOrdering(t *testing.T) {
	engine := newTestServer(t)
	token := registerAdmin(t, engine)

	for _, link := range []gin.H{
		{"platform": "vimeo", "url": "https://vimeo.com/ima", "display_order": 3},
		{"platform": "instagram", "url": "https://instagram.com/ima", "display_order": 1},
		{"platform": "youtube", "url": "https://youtube.com/@ima", "display_order": 2, "is_visible": false},
	} {
		rec := doJSON(t, engine, http.MethodPost, "/api/social-links", token, link)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := doJSON(t, engine, http.MethodGet, "/api/social-links", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decodeList(t, rec)
	require.Len(t, list, 3)
	assert.Equal(t, "instagram", list[0]["platform"])
	assert.Equal(t, "youtube", list[1]["platform"])
	assert.Equal(t, "vimeo", list[2]["platform"])

	rec = doJSON(t, engine, http.MethodGet, "/api/social-links?visible_only=true", "", nil)
	assert.Len(t, decodeList(t, rec), 2)
}

func TestContentBlockByKey(t *testing.T) {
	engine := newTestServer(t)
	token := registerAdmin(t, engine)

	rec := doJSON(t, engine, http.MethodPost, "/api/content", token, gin.H{
		"key":   "hero_title",
		"value": "We craft film",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "text", decode(t, rec)["type"])

	dup := doJSON(t, engine, http.MethodPost, "/api/content", token, gin.H{
		"key":   "hero_title",
		"value": "again",
	})
	require.Equal(t, http.StatusBadRequest, dup.Code)
	assert.Equal(t, "Content block with this key already exists", decode(t, dup)["error"])

	updated := doJSON(t, engine, http.MethodPut, "/api/content/hero_title", token, gin.H{
		"value": "We craft stories",
	})
	require.Equal(t, http.StatusOK, updated.Code)

	got := doJSON(t, engine, http.MethodGet, "/api/content/hero_title", "", nil)
	require.Equal(t, http.StatusOK, got.Code)
	assert.Equal(t, "We craft stories", decode(t, got)["value"])
}

func TestContactMessageCreatesLead(t *testing.T) {
	engine := newTestServer(t)
	token := registerAdmin(t, engine)

	// The contact form is public.
	rec := doJSON(t, engine, http.MethodPost, "/api/messages", "", gin.H{
		"name":                 "Jamie",
		"email":                "jamie@example.com",
		"message":              "Let's talk about a shoot.",
		"subscribe_newsletter": true,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	msg := decode(t, rec)
	assert.Equal(t, false, msg["is_read"])
	msgID := msg["id"].(string)

	leads := doJSON(t, engine, http.MethodGet, "/api/leads", token, nil)
	require.Equal(t, http.StatusOK, leads.Code)
	leadList := decodeList(t, leads)
	require.Len(t, leadList, 1)
	assert.Equal(t, "jamie@example.com", leadList[0]["email"])
	assert.Equal(t, "contact_form", leadList[0]["source"])

	read := doJSON(t, engine, http.MethodPut, "/api/messages/"+msgID+"/read", token, nil)
	require.Equal(t, http.StatusOK, read.Code)
	assert.Equal(t, "Message marked as read", decode(t, read)["message"])

	listed := doJSON(t, engine, http.MethodGet, "/api/messages", token, nil)
	require.Equal(t, http.StatusOK, listed.Code)
	msgList := decodeList(t, listed)
	require.Len(t, msgList, 1)
	assert.Equal(t, true, msgList[0]["is_read"])
}

func TestSettingsDefaultsAndPartialUpdate(t *testing.T) {
	engine := newTestServer(t)
	token := registerAdmin(t, engine)

	rec := doJSON(t, engine, http.MethodGet, "/api/settings", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	initial := decode(t, rec)
	assert.Equal(t, "IMA", initial["site_name"])
	assert.Equal(t, "#E10600", initial["primary_color"])

	updated := doJSON(t, engine, http.MethodPut, "/api/settings", token, gin.H{
		"primary_color": "#222222",
	})
	require.Equal(t, http.StatusOK, updated.Code)
	after := decode(t, updated)
	assert.Equal(t, "#222222", after["primary_color"])
	assert.Equal(t, "IMA", after["site_name"])

	rec = doJSON(t, engine, http.MethodGet, "/api/settings", "", nil)
	assert.Equal(t, "#222222", decode(t, rec)["primary_color"])
}

func TestSeedIsIdempotent(t *testing.T) {
	engine := newTestServer(t)

	first := doJSON(t, engine, http.MethodPost, "/api/seed", "", nil)
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "Sample data seeded successfully", decode(t, first)["message"])

	second := doJSON(t, engine, http.MethodPost, "/api/seed", "", nil)
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "Data already seeded", decode(t, second)["message"])

	nav := doJSON(t, engine, http.MethodGet, "/api/navigation", "", nil)
	require.Equal(t, http.StatusOK, nav.Code)
	assert.Len(t, decodeList(t, nav), 5)

	content := doJSON(t, engine, http.MethodGet, "/api/content", "", nil)
	assert.Len(t, decodeList(t, content), 8)
}

func TestStats(t *testing.T) {
	engine := newTestServer(t)
	token := registerAdmin(t, engine)

	rec := doJSON(t, engine, http.MethodPost, "/api/pages", token, gin.H{"title": "Home", "slug": "home"})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, engine, http.MethodPost, "/api/messages", "", gin.H{
		"name": "A", "email": "a@example.com", "message": "hi", "subscribe_newsletter": true,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, engine, http.MethodPost, "/api/messages", "", gin.H{
		"name": "B", "email": "b@example.com", "message": "hello", "subscribe_newsletter": true,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	msgID := decode(t, rec)["id"].(string)
	rec = doJSON(t, engine, http.MethodPut, "/api/messages/"+msgID+"/read", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	stats := doJSON(t, engine, http.MethodGet, "/api/stats", token, nil)
	require.Equal(t, http.StatusOK, stats.Code)
	body := decode(t, stats)
	assert.EqualValues(t, 1, body["pages"])
	assert.EqualValues(t, 2, body["messages"])
	assert.EqualValues(t, 1, body["unread_messages"])
	assert.EqualValues(t, 2, body["leads"])
	assert.EqualValues(t, 0, body["portfolio_items"])
}

func TestMediaUploadUnavailableWithoutStorage(t *testing.T) {
	engine := newTestServer(t)
	token := registerAdmin(t, engine)

	rec := doJSON(t, engine, http.MethodPost, "/api/media/upload", token, nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHealthzReportsDisabledBackends(t *testing.T) {
	engine := newTestServer(t)

	rec := doJSON(t, engine, http.MethodGet, "/api/healthz", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "disabled", body["database"])
	assert.Equal(t, "disabled", body["cache"])
	assert.Equal(t, "test", body["environment"])
}
