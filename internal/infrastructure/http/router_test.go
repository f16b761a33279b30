package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/izaman1/zamanix-dec-blog8/internal/application/auth"
	"github.com/izaman1/zamanix-dec-blog8/internal/application/blog"
	"github.com/izaman1/zamanix-dec-blog8/internal/domain"
	domerrors "github.com/izaman1/zamanix-dec-blog8/internal/domain/errors"
	infraauth "github.com/izaman1/zamanix-dec-blog8/internal/infrastructure/auth"
	httprouter "github.com/izaman1/zamanix-dec-blog8/internal/infrastructure/http"
	"github.com/izaman1/zamanix-dec-blog8/internal/infrastructure/http/handlers"
	"github.com/izaman1/zamanix-dec-blog8/internal/infrastructure/http/middleware"
	"github.com/izaman1/zamanix-dec-blog8/internal/infrastructure/security"
)

// --- in-memory stores ---

type memUserRepo struct {
	byEmail map[string]*domain.User
	byID    map[string]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byEmail: map[string]*domain.User{}, byID: map[string]*domain.User{}}
}

func (m *memUserRepo) Create(ctx context.Context, u *domain.User) error {
	if _, ok := m.byEmail[u.Email]; ok {
		return domerrors.ErrEmailTaken
	}
	m.byEmail[u.Email] = u
	m.byID[u.ID.String()] = u
	return nil
}

func (m *memUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.byEmail[email], nil
}

func (m *memUserRepo) GetByID(ctx context.Context, id domain.UserID) (*domain.User, error) {
	return m.byID[id.String()], nil
}

type memPostRepo struct {
	posts map[string]*domain.Post
}

func newMemPostRepo() *memPostRepo { return &memPostRepo{posts: map[string]*domain.Post{}} }

func (m *memPostRepo) Create(ctx context.Context, p *domain.Post) error {
	m.posts[p.ID.String()] = p
	return nil
}

func (m *memPostRepo) GetByID(ctx context.Context, id domain.PostID) (*domain.Post, error) {
	return m.posts[id.String()], nil
}

func (m *memPostRepo) List(ctx context.Context, limit, offset int) ([]*domain.Post, error) {
	all := make([]*domain.Post, 0, len(m.posts))
	for _, p := range m.posts {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (m *memPostRepo) Update(ctx context.Context, p *domain.Post) error {
	m.posts[p.ID.String()] = p
	return nil
}

func (m *memPostRepo) Delete(ctx context.Context, id domain.PostID) error {
	delete(m.posts, id.String())
	return nil
}

// --- server under test ---

type testServer struct {
	handler http.Handler
	users   *memUserRepo
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	users := newMemUserRepo()
	posts := newMemPostRepo()
	hasher := security.NewArgon2Hasher(security.Argon2Params{
		Memory: 8 * 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32,
	})
	gen, err := security.NewWordlistGenerator()
	require.NoError(t, err)
	issuer := infraauth.NewTokenIssuer([]byte("test-secret"), "zamanix", "zamanix")
	log := zerolog.Nop()

	require.NoError(t, auth.NewSeedAdmin(users, hasher).Execute(context.Background(), "zamanix_admin"))

	handler := httprouter.NewRouter(httprouter.RouterConfig{
		AuthHandler: handlers.NewAuthHandler(
			auth.NewRegister(users, hasher, gen, issuer, 3600),
			auth.NewLogin(users, hasher, issuer, nil, 3600),
			nil, log,
		),
		UsersHandler: handlers.NewUsersHandler(auth.NewProfile(users)),
		PostsHandler: handlers.NewPostsHandler(
			blog.NewCreatePost(posts),
			blog.NewListPosts(posts),
			blog.NewGetPost(posts),
			blog.NewUpdatePost(posts),
			blog.NewDeletePost(posts),
			log,
		),
		RequireJWT: middleware.NewAuthValidator(issuer).Handler,
		Log:        log,
	})
	return &testServer{handler: handler, users: users}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	var out map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), "body: %s", rec.Body.String())
	}
	return rec, out
}

func registerBody(email string) map[string]string {
	return map[string]string{
		"name":     "Ada",
		"email":    email,
		"phone":    "+15550001",
		"password": "secret123",
	}
}

// --- tests ---

func TestRegister_ReturnsPassphraseOnce(t *testing.T) {
	s := newTestServer(t)

	rec, out := s.do(t, http.MethodPost, "/api/users/register", "", registerBody("ada@x.com"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "success", out["status"])

	data := out["data"].(map[string]any)
	assert.NotEmpty(t, data["_id"])
	assert.Equal(t, "ada@x.com", data["email"])
	assert.Equal(t, "+15550001", data["phone"])
	assert.NotEmpty(t, data["token"])
	assert.Len(t, strings.Fields(data["passphrase"].(string)), security.WordCount)

	// The plaintext passphrase is never persisted.
	stored := s.users.byEmail["ada@x.com"]
	require.NotNil(t, stored)
	assert.NotEqual(t, data["passphrase"], stored.PassphraseHash)
}

func TestRegister_ReservedAndDuplicateEmails(t *testing.T) {
	s := newTestServer(t)

	rec, out := s.do(t, http.MethodPost, "/api/users/register", "", registerBody("admin@zamanix.com"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "error", out["status"])

	rec, _ = s.do(t, http.MethodPost, "/api/users/register", "", registerBody("dup@x.com"))
	require.Equal(t, http.StatusCreated, rec.Code)
	rec, out = s.do(t, http.MethodPost, "/api/users/register", "", registerBody("dup@x.com"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "error", out["status"])
	assert.Equal(t, "email_taken", out["code"])
}

func TestLogin_FullFactorRoundTrip(t *testing.T) {
	s := newTestServer(t)

	_, reg := s.do(t, http.MethodPost, "/api/users/register", "", registerBody("ada@x.com"))
	passphrase := reg["data"].(map[string]any)["passphrase"].(string)

	// Password + issued passphrase.
	rec, out := s.do(t, http.MethodPost, "/api/users/login", "", map[string]string{
		"email": "ada@x.com", "password": "secret123", "passphrase": passphrase,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotEmpty(t, out["data"].(map[string]any)["token"])

	// Password only: the secondary factor is optional.
	rec, _ = s.do(t, http.MethodPost, "/api/users/login", "", map[string]string{
		"email": "ada@x.com", "password": "secret123",
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	// Correct password, wrong passphrase.
	rec, out = s.do(t, http.MethodPost, "/api/users/login", "", map[string]string{
		"email": "ada@x.com", "password": "secret123", "passphrase": "acorn " + passphrase,
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid_passphrase", out["code"])
}

func TestLogin_RejectionsAreIndistinguishable(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodPost, "/api/users/register", "", registerBody("ada@x.com"))

	rec1, out1 := s.do(t, http.MethodPost, "/api/users/login", "", map[string]string{
		"email": "nobody@x.com", "password": "secret123",
	})
	rec2, out2 := s.do(t, http.MethodPost, "/api/users/login", "", map[string]string{
		"email": "ada@x.com", "password": "wrongpass",
	})
	assert.Equal(t, http.StatusUnauthorized, rec1.Code)
	assert.Equal(t, rec1.Code, rec2.Code)
	assert.Equal(t, out1["message"], out2["message"])
	assert.Equal(t, out1["code"], out2["code"])
}

func TestLogin_SeededAdmin(t *testing.T) {
	s := newTestServer(t)

	// No passphrase needed, and none requested.
	rec, out := s.do(t, http.MethodPost, "/api/users/login", "", map[string]string{
		"email": "admin@zamanix.com", "password": "zamanix_admin",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotEmpty(t, out["data"].(map[string]any)["token"])

	rec, _ = s.do(t, http.MethodPost, "/api/users/login", "", map[string]string{
		"email": "admin@zamanix.com", "password": "not_the_password",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProfile_RequiresValidToken(t *testing.T) {
	s := newTestServer(t)
	_, reg := s.do(t, http.MethodPost, "/api/users/register", "", registerBody("ada@x.com"))
	token := reg["data"].(map[string]any)["token"].(string)

	rec, out := s.do(t, http.MethodGet, "/api/users/profile", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data := out["data"].(map[string]any)
	assert.Equal(t, "ada@x.com", data["email"])
	assert.Equal(t, "Ada", data["name"])

	rec, _ = s.do(t, http.MethodGet, "/api/users/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = s.do(t, http.MethodGet, "/api/users/profile", "garbage.token.here", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBlogLifecycle(t *testing.T) {
	s := newTestServer(t)
	_, reg := s.do(t, http.MethodPost, "/api/users/register", "", registerBody("author@x.com"))
	authorTok := reg["data"].(map[string]any)["token"].(string)
	_, reg2 := s.do(t, http.MethodPost, "/api/users/register", "", registerBody("other@x.com"))
	otherTok := reg2["data"].(map[string]any)["token"].(string)

	// Create requires auth.
	rec, _ := s.do(t, http.MethodPost, "/api/blogs/", "", map[string]string{"title": "t", "body": "b"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, out := s.do(t, http.MethodPost, "/api/blogs/", authorTok, map[string]string{
		"title": "Hello", "body": "first post",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	postID := out["data"].(map[string]any)["_id"].(string)

	// Reads are public.
	rec, out = s.do(t, http.MethodGet, "/api/blogs/"+postID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Hello", out["data"].(map[string]any)["title"])

	rec, out = s.do(t, http.MethodGet, "/api/blogs/", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, out["data"].([]any), 1)

	// Only the author (or an admin) may modify.
	rec, _ = s.do(t, http.MethodPut, "/api/blogs/"+postID, otherTok, map[string]string{
		"title": "Hijacked", "body": "x",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, out = s.do(t, http.MethodPut, "/api/blogs/"+postID, authorTok, map[string]string{
		"title": "Hello v2", "body": "edited",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Hello v2", out["data"].(map[string]any)["title"])

	rec, _ = s.do(t, http.MethodDelete, "/api/blogs/"+postID, otherTok, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec, _ = s.do(t, http.MethodDelete, "/api/blogs/"+postID, authorTok, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = s.do(t, http.MethodGet, "/api/blogs/"+postID, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminCanDeleteAnyPost(t *testing.T) {
	s := newTestServer(t)
	_, reg := s.do(t, http.MethodPost, "/api/users/register", "", registerBody("author@x.com"))
	authorTok := reg["data"].(map[string]any)["token"].(string)
	_, login := s.do(t, http.MethodPost, "/api/users/login", "", map[string]string{
		"email": "admin@zamanix.com", "password": "zamanix_admin",
	})
	adminTok := login["data"].(map[string]any)["token"].(string)

	_, out := s.do(t, http.MethodPost, "/api/blogs/", authorTok, map[string]string{
		"title": "spam", "body": "spam",
	})
	postID := out["data"].(map[string]any)["_id"].(string)

	rec, _ := s.do(t, http.MethodDelete, "/api/blogs/"+postID, adminTok, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
