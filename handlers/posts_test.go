package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	middlewares "github.com/Romain-GUILLEMOT/PlumyrBack/middleware"
	"github.com/Romain-GUILLEMOT/PlumyrBack/models"
	"github.com/Romain-GUILLEMOT/PlumyrBack/utils"
	"github.com/Romain-GUILLEMOT/PlumyrBack/utils/dbTools"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	utils.InitLogger()
}

type MockPostStore struct {
	mock.Mock
}

func (m *MockPostStore) Create(ctx context.Context, authorID uint, title, content string) (*models.Post, error) {
	args := m.Called(ctx, authorID, title, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostStore) Get(ctx context.Context, id uint) (*models.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostStore) ListPage(ctx context.Context, page int) ([]models.Post, int64, error) {
	args := m.Called(ctx, page)
	return args.Get(0).([]models.Post), args.Get(1).(int64), args.Error(2)
}

func (m *MockPostStore) ListByAuthor(ctx context.Context, authorID uint, page int) ([]models.Post, int64, error) {
	args := m.Called(ctx, authorID, page)
	return args.Get(0).([]models.Post), args.Get(1).(int64), args.Error(2)
}

func (m *MockPostStore) Update(ctx context.Context, post *models.Post, title, content string) error {
	args := m.Called(ctx, post, title, content)
	return args.Error(0)
}

func (m *MockPostStore) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	args := m.Called(ctx, username, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStore) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStore) FindByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStore) UpdateProfile(ctx context.Context, userID uint, username, email, avatar string) (*models.User, error) {
	args := m.Called(ctx, userID, username, email, avatar)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStore) UpdatePassword(ctx context.Context, userID uint, newPassword string) error {
	args := m.Called(ctx, userID, newPassword)
	return args.Error(0)
}

type fakeKV struct {
	data map[string]string
}

func newFakeKV() *fakeKV { return &fakeKV{data: map[string]string{}} }

func (f *fakeKV) Set(key, value string, ttl time.Duration) error {
	f.data[key] = value
	return nil
}

func (f *fakeKV) Get(key string) (string, error) {
	v, ok := f.data[key]
	if !ok {
		return "", errors.New("redis: nil")
	}
	return v, nil
}

func (f *fakeKV) Del(key string) error {
	delete(f.data, key)
	return nil
}

func (f *fakeKV) Exists(key string) (bool, error) {
	_, ok := f.data[key]
	return ok, nil
}

func (f *fakeKV) TTL(key string) (time.Duration, error) {
	if _, ok := f.data[key]; !ok {
		return -2 * time.Second, nil
	}
	return time.Hour, nil
}

type postEnv struct {
	app      *fiber.App
	posts    *MockPostStore
	users    *MockUserStore
	sessions *utils.SessionManager
}

func newPostEnv(t *testing.T) *postEnv {
	t.Helper()
	posts := &MockPostStore{}
	users := &MockUserStore{}
	sessions := utils.NewSessionManager("test-secret", newFakeKV())
	h := NewPostHandler(posts, users)

	app := fiber.New()
	app.Get("/", h.Home)
	app.Get("/post/:id", middlewares.OptionalAuth(sessions), h.GetPost)
	app.Get("/user/:username", h.UserPosts)
	app.Post("/post/new", middlewares.RequireAuth(sessions), h.CreatePost)
	app.Post("/post/:id/update", middlewares.RequireAuth(sessions), h.UpdatePost)
	app.Post("/post/:id/delete", middlewares.RequireAuth(sessions), h.DeletePost)

	return &postEnv{app: app, posts: posts, users: users, sessions: sessions}
}

func (e *postEnv) bearer(t *testing.T, userID uint) string {
	t.Helper()
	token, err := e.sessions.Issue(userID)
	require.NoError(t, err)
	return "Bearer " + token
}

func jsonReq(t *testing.T, method, target, auth string, payload any) *http.Request {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	return req
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, out))
}

func TestHomePaginationMeta(t *testing.T) {
	env := newPostEnv(t)

	newer := models.Post{ID: 7, Title: "dernier", AuthorID: 1, CreatedAt: time.Now()}
	older := models.Post{ID: 6, Title: "avant", AuthorID: 1, CreatedAt: time.Now().Add(-time.Hour)}
	env.posts.On("ListPage", mock.Anything, 1).Return([]models.Post{newer, older}, int64(7), nil).Once()

	resp, err := env.app.Test(jsonReq(t, "GET", "/?page=1", "", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var parsed struct {
		Posts      []postResponse `json:"posts"`
		Page       int            `json:"page"`
		PageSize   int            `json:"page_size"`
		Total      int64          `json:"total"`
		TotalPages int64          `json:"total_pages"`
	}
	decode(t, resp, &parsed)
	assert.Equal(t, 1, parsed.Page)
	assert.Equal(t, 3, parsed.PageSize)
	assert.Equal(t, int64(7), parsed.Total)
	assert.Equal(t, int64(3), parsed.TotalPages)
	require.Len(t, parsed.Posts, 2)
	assert.Equal(t, uint(7), parsed.Posts[0].ID)
}

func TestHomeClampsBadPageParam(t *testing.T) {
	env := newPostEnv(t)
	env.posts.On("ListPage", mock.Anything, 1).Return([]models.Post{}, int64(0), nil).Twice()

	for _, target := range []string{"/?page=0", "/?page=abc"} {
		resp, err := env.app.Test(jsonReq(t, "GET", target, "", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode, target)
	}
	env.posts.AssertExpectations(t)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, int64(3), totalPages(7))
	assert.Equal(t, int64(1), totalPages(3))
	assert.Equal(t, int64(1), totalPages(0))
	assert.Equal(t, int64(2), totalPages(4))
}

func TestGetPostMineFlag(t *testing.T) {
	env := newPostEnv(t)
	postOfA := &models.Post{ID: 5, Title: "de A", Content: "...", AuthorID: 1}
	env.posts.On("Get", mock.Anything, uint(5)).Return(postOfA, nil)

	var parsed struct {
		Mine bool `json:"mine"`
	}

	// Anonyme : lisible, mais pas modifiable.
	resp, err := env.app.Test(jsonReq(t, "GET", "/post/5", "", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	decode(t, resp, &parsed)
	assert.False(t, parsed.Mine)

	// Propriétaire connecté.
	resp, err = env.app.Test(jsonReq(t, "GET", "/post/5", env.bearer(t, 1), nil))
	require.NoError(t, err)
	decode(t, resp, &parsed)
	assert.True(t, parsed.Mine)
}

func TestGetPostNotFound(t *testing.T) {
	env := newPostEnv(t)
	env.posts.On("Get", mock.Anything, uint(99)).Return(nil, dbTools.ErrNotFound).Once()

	resp, err := env.app.Test(jsonReq(t, "GET", "/post/99", "", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestUserPostsUnknownAuthor(t *testing.T) {
	env := newPostEnv(t)
	env.users.On("FindByUsername", mock.Anything, "ghost").Return(nil, dbTools.ErrNotFound).Once()

	resp, err := env.app.Test(jsonReq(t, "GET", "/user/ghost", "", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCreatePostRequiresSession(t *testing.T) {
	env := newPostEnv(t)

	resp, err := env.app.Test(jsonReq(t, "POST", "/post/new", "", fiber.Map{
		"title": "Titre", "content": "Contenu",
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	env.posts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreatePostAssignsActingIdentity(t *testing.T) {
	env := newPostEnv(t)
	created := &models.Post{ID: 5, Title: "Titre", Content: "Contenu", AuthorID: 1}
	env.posts.On("Create", mock.Anything, uint(1), "Titre", "Contenu").Return(created, nil).Once()

	resp, err := env.app.Test(jsonReq(t, "POST", "/post/new", env.bearer(t, 1), fiber.Map{
		"title": "Titre", "content": "Contenu",
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	env.posts.AssertExpectations(t)
}

// La matrice propriétaire/étranger de la porte d'autorisation : B ne peut
// ni modifier ni supprimer le post de A, A peut les deux.
func TestPostOwnershipGate(t *testing.T) {
	env := newPostEnv(t)
	postOfA := &models.Post{ID: 5, Title: "de A", Content: "...", AuthorID: 1}
	env.posts.On("Get", mock.Anything, uint(5)).Return(postOfA, nil)
	env.posts.On("Update", mock.Anything, postOfA, "titre", "contenu").Return(nil).Once()
	env.posts.On("Delete", mock.Anything, uint(5)).Return(nil).Once()

	payload := fiber.Map{"title": "titre", "content": "contenu"}

	// B (id 2) se fait refuser, sans indice sur le vrai propriétaire.
	resp, err := env.app.Test(jsonReq(t, "POST", "/post/5/update", env.bearer(t, 2), payload))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, err = env.app.Test(jsonReq(t, "POST", "/post/5/delete", env.bearer(t, 2), nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// A (id 1) passe.
	resp, err = env.app.Test(jsonReq(t, "POST", "/post/5/update", env.bearer(t, 1), payload))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = env.app.Test(jsonReq(t, "POST", "/post/5/delete", env.bearer(t, 1), nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	env.posts.AssertExpectations(t)
}

func TestUpdatePostInvalidID(t *testing.T) {
	env := newPostEnv(t)

	resp, err := env.app.Test(jsonReq(t, "POST", "/post/abc/update", env.bearer(t, 1), fiber.Map{
		"title": "titre", "content": "contenu",
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
