package router

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/go-storefront/internal/application"
	"github.com/oksasatya/go-storefront/internal/domain/entity"
	"github.com/oksasatya/go-storefront/internal/domain/repository"
	"github.com/oksasatya/go-storefront/internal/testutil"
	"github.com/oksasatya/go-storefront/pkg/helpers"
	"github.com/oksasatya/go-storefront/pkg/validation"
)

func TestMain(m *testing.M) {
	helpers.PasswordCost = bcrypt.MinCost
	os.Exit(m.Run())
}

type testApp struct {
	engine  *gin.Engine
	store   *testutil.Store
	gateway *testutil.Gateway
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	store := testutil.NewStore()
	log := helpers.NewNopLogger()
	jwt := helpers.NewJWTManager("access-secret", "refresh-secret", time.Hour, 2*time.Hour)
	gw := &testutil.Gateway{URL: "https://pay.test/checkout/xyz"}

	svc := Services{
		Identity: application.NewIdentityService(store.Users(), store.Roles(), store.Sessions(), jwt, log),
		Accounts: application.NewAccountService(store.Users(), log),
		Catalog:  application.NewCatalogService(store.Items(), store.Orders(), testutil.NewIndex(), log),
		Checkout: application.NewCheckoutService(store.Items(), store.Orders(), gw, &testutil.Publisher{}, "RUB", log),
	}
	require.NoError(t, svc.Identity.SeedDefaults(context.Background()))

	engine := gin.New()
	reg := NewRegistry(engine)
	Mount(reg, NewDeps(svc, log, "storefront-test", "localhost", false, nil, true))
	reg.RegisterAll()

	return &testApp{engine: engine, store: store, gateway: gw}
}

type session struct {
	app     *testApp
	cookies map[string]*http.Cookie
}

func (a *testApp) anon() *session {
	return &session{app: a, cookies: map[string]*http.Cookie{}}
}

func (a *testApp) login(t *testing.T, email, password string) *session {
	t.Helper()
	s := a.anon()
	w := s.form(http.MethodPost, "/login", url.Values{"email": {email}, "password": {password}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return s
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }

func (s *session) do(req *http.Request) *httptest.ResponseRecorder {
	for _, c := range s.cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	s.app.engine.ServeHTTP(w, req)
	for _, c := range w.Result().Cookies() {
		if c.MaxAge < 0 || c.Value == "" {
			delete(s.cookies, c.Name)
			continue
		}
		s.cookies[c.Name] = c
	}
	return w
}

func (s *session) get(path string) *httptest.ResponseRecorder {
	return s.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (s *session) form(method, path string, v url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(v.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return s.do(req)
}

func TestPublicPages(t *testing.T) {
	app := newTestApp(t)
	s := app.anon()

	for _, path := range []string{"/", "/about", "/terms", "/price", "/price/search?q=x", "/login", "/register", "/healthz"} {
		assert.Equal(t, http.StatusOK, s.get(path).Code, path)
	}
}

func TestRegisterThenProfile(t *testing.T) {
	app := newTestApp(t)
	s := app.anon()

	w := s.form(http.MethodPost, "/register", url.Values{
		"email":        {"new@example.com"},
		"password":     {"hunter22"},
		"first_name":   {"Nina"},
		"phone_number": {"79990001122"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, s.cookies, helpers.AccessCookie)

	w = s.get("/profile")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"roles":["end-user"]`)
	assert.Contains(t, w.Body.String(), `"is_admin":false`)
}

func TestRegister_BindingErrors(t *testing.T) {
	app := newTestApp(t)
	w := app.anon().form(http.MethodPost, "/register", url.Values{
		"email":        {"bad"},
		"password":     {"123"},
		"first_name":   {"Nina"},
		"phone_number": {"1"},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `"email":"must be a valid email"`)
	assert.Contains(t, body, `"password":"must be at least 6 characters long"`)
	assert.Contains(t, body, `"phone_number":"must be 10 to 13 characters long"`)

	_, err := app.store.Users().GetByEmail(context.Background(), "bad")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestLogin_WrongPassword(t *testing.T) {
	app := newTestApp(t)
	w := app.anon().form(http.MethodPost, "/login", url.Values{"email": {"someone@example.com"}, "password": {"nope"}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedRoutesRequireLogin(t *testing.T) {
	app := newTestApp(t)
	s := app.anon()

	for _, path := range []string{"/profile", "/profile/your_info", "/profile/your_history", "/emailModal", "/price/buy/1", "/delete_user/1"} {
		assert.Equal(t, http.StatusUnauthorized, s.get(path).Code, path)
	}
}

var adminRoutes = []struct{ method, path string }{
	{http.MethodGet, "/profile/admin"},
	{http.MethodGet, "/profile/admin/users"},
	{http.MethodGet, "/profile/admin/items"},
	{http.MethodPost, "/profile/admin/items/add"},
	{http.MethodPost, "/profile/admin/items/edit_item/1"},
	{http.MethodGet, "/delete/1"},
	{http.MethodGet, "/delete_user_admin/1"},
}

func TestAdminRoutesDenyEndUser(t *testing.T) {
	app := newTestApp(t)
	user := app.login(t, "someone@example.com", "password")
	anon := app.anon()

	for _, rt := range adminRoutes {
		v := url.Values{"name": {"X"}, "price": {"1"}, "intro": {"x"}}
		assert.Equal(t, http.StatusForbidden, user.form(rt.method, rt.path, v).Code, rt.path)
		assert.Equal(t, http.StatusUnauthorized, anon.form(rt.method, rt.path, v).Code, rt.path)
	}

	users, err := app.store.Users().List(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestAdminCatalogFlow(t *testing.T) {
	app := newTestApp(t)
	admin := app.login(t, "admin@example.com", "passwordAdmin")
	ctx := context.Background()

	w := admin.form(http.MethodPost, "/profile/admin/items/add", url.Values{"name": {"Widget"}, "price": {"10"}, "intro": {"desc"}})
	require.Equal(t, http.StatusFound, w.Code, w.Body.String())
	assert.Equal(t, "/profile/admin/items", w.Header().Get("Location"))

	items, err := app.store.Items().List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	id := items[0].ID

	w = admin.form(http.MethodPost, "/profile/admin/items/edit_item/"+itoa(id), url.Values{"name": {"Widget"}, "price": {"20"}, "intro": {"desc"}})
	require.Equal(t, http.StatusFound, w.Code)
	it, err := app.store.Items().GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, entity.Item{ID: id, Name: "Widget", Price: 20, Intro: "desc"}, *it)

	w = admin.form(http.MethodPost, "/profile/admin/items/edit_item/9999", url.Values{"name": {"Ghost"}, "price": {"1"}, "intro": {"x"}})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = admin.form(http.MethodPost, "/profile/admin/items/add", url.Values{"name": {"Bad"}, "price": {"-5"}, "intro": {"x"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = admin.form(http.MethodPost, "/profile/admin/items/add", url.Values{"name": {"Bad"}, "price": {"184467440737095517"}, "intro": {"x"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = admin.form(http.MethodPost, "/profile/admin/items/edit_item/"+itoa(id), url.Values{"name": {"Widget"}, "price": {"1000000001"}, "intro": {"desc"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.Contains(t, admin.get("/price/search?q=widget").Body.String(), `"name":"Widget"`)
	assert.Contains(t, admin.get("/profile/admin/items").Body.String(), `"price":20`)

	w = admin.get("/delete/" + itoa(id))
	require.Equal(t, http.StatusFound, w.Code)
	items, err = app.store.Items().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	assert.Equal(t, http.StatusNotFound, admin.get("/delete/"+itoa(id)).Code)
	assert.Equal(t, http.StatusNotFound, admin.get("/delete/abc").Code)
}

func TestAdminSections(t *testing.T) {
	app := newTestApp(t)
	admin := app.login(t, "admin@example.com", "passwordAdmin")

	w := admin.get("/profile/admin/users")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "someone@example.com")

	w = admin.get("/profile/admin/whatever")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestAdminDeletesUser(t *testing.T) {
	app := newTestApp(t)
	admin := app.login(t, "admin@example.com", "passwordAdmin")
	ctx := context.Background()
	victim, err := app.store.Users().GetByEmail(ctx, "someone@example.com")
	require.NoError(t, err)

	w := admin.get("/delete_user_admin/" + itoa(victim.ID))
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/profile/admin/users", w.Header().Get("Location"))

	_, err = app.store.Users().GetByEmail(ctx, "someone@example.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Zero(t, app.store.RoleLinks(victim.ID))
}

func TestBuyFlow(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()
	it := &entity.Item{Name: "Widget", Intro: "desc", Price: 150}
	require.NoError(t, app.store.Items().Create(ctx, it))
	user := app.login(t, "someone@example.com", "password")

	w := user.get("/price/buy/" + itoa(it.ID))
	require.Equal(t, http.StatusFound, w.Code, w.Body.String())
	assert.Equal(t, "https://pay.test/checkout/xyz", w.Header().Get("Location"))
	require.Len(t, app.gateway.Requests, 1)
	assert.Equal(t, "15000", app.gateway.Requests[0].Amount)
	assert.Equal(t, "RUB", app.gateway.Requests[0].Currency)

	w = user.get("/profile/your_history")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Widget"`)

	assert.Equal(t, http.StatusNotFound, user.get("/price/buy/9999").Code)

	app.gateway.Err = errors.New("down")
	assert.Equal(t, http.StatusBadGateway, user.get("/price/buy/"+itoa(it.ID)).Code)
	assert.Len(t, app.store.AllOrders(), 1)
}

func TestProfileModals(t *testing.T) {
	app := newTestApp(t)
	user := app.login(t, "someone@example.com", "password")

	w := user.get("/nameModal")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/profile/your_info", w.Header().Get("Location"))

	w = user.form(http.MethodPost, "/nameModal", url.Values{"name": {"Boris"}})
	require.Equal(t, http.StatusFound, w.Code, w.Body.String())
	assert.Equal(t, "/profile/your_info", w.Header().Get("Location"))

	w = user.form(http.MethodPost, "/phone_numberModal", url.Values{"phone_number": {"5550001111"}})
	require.Equal(t, http.StatusFound, w.Code)

	w = user.form(http.MethodPost, "/phone_numberModal", url.Values{"phone_number": {"123"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = user.form(http.MethodPost, "/emailModal", url.Values{"email": {"admin@example.com"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = user.form(http.MethodPost, "/emailModal", url.Values{"email": {"renamed@example.com"}})
	require.Equal(t, http.StatusFound, w.Code)

	body := user.get("/profile/your_info").Body.String()
	assert.Contains(t, body, `"first_name":"Boris"`)
	assert.Contains(t, body, `"phone_number":"5550001111"`)
	assert.Contains(t, body, `"email":"renamed@example.com"`)
}

func TestDeleteSelf(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()
	user := app.login(t, "someone@example.com", "password")
	me, err := app.store.Users().GetByEmail(ctx, "someone@example.com")
	require.NoError(t, err)
	admin, err := app.store.Users().GetByEmail(ctx, "admin@example.com")
	require.NoError(t, err)

	w := user.get("/delete_user/" + itoa(admin.ID))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "You can only delete your own account")
	users, err := app.store.Users().List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	w = user.get("/delete_user/" + itoa(me.ID))
	require.Equal(t, http.StatusFound, w.Code)
	_, err = app.store.Users().GetByID(ctx, me.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Equal(t, http.StatusUnauthorized, user.get("/profile").Code)
}

func TestLogoutAndRefresh(t *testing.T) {
	app := newTestApp(t)
	user := app.login(t, "someone@example.com", "password")

	w := user.form(http.MethodPost, "/refresh", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, http.StatusOK, user.get("/profile").Code)

	w = user.get("/logout")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.NotContains(t, user.cookies, helpers.AccessCookie)
	assert.Equal(t, http.StatusUnauthorized, user.get("/profile").Code)
}

func TestMetricsEndpointPrivateOnly(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	req.RemoteAddr = "127.0.0.1:9000"
	w := httptest.NewRecorder()
	app.engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	req.RemoteAddr = "203.0.113.9:9000"
	w = httptest.NewRecorder()
	app.engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
