package trickhandlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	authdomain "github.com/Black-And-White-Club/slackline-champs/app/modules/auth/domain"
	trickservice "github.com/Black-And-White-Club/slackline-champs/app/modules/trick/application"
	trickdomain "github.com/Black-And-White-Club/slackline-champs/app/modules/trick/domain"
	trickdb "github.com/Black-And-White-Club/slackline-champs/app/modules/trick/infrastructure/repositories"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type FakeService struct {
	trace     []string
	lastQuery string
	lastType  string
}

func (f *FakeService) ListTricks(_ context.Context, query string, trickType string) ([]trickdb.Trick, error) {
	f.trace = append(f.trace, "ListTricks")
	f.lastQuery, f.lastType = query, trickType
	return []trickdb.Trick{{ID: uuid.New(), Name: "Backflip", Type: trickdomain.TypeHeight}}, nil
}

func (f *FakeService) CreateTrick(_ context.Context, caller *authdomain.Claims, def trickdomain.Definition) (*trickdb.Trick, error) {
	f.trace = append(f.trace, "CreateTrick")
	if caller.Role != authdomain.RoleAdmin {
		return nil, trickdomain.ErrForbidden
	}
	return &trickdb.Trick{ID: uuid.New(), Name: def.Name, Type: def.Type}, nil
}

func (f *FakeService) GetTrick(context.Context, uuid.UUID) (*trickdb.Trick, error) {
	f.trace = append(f.trace, "GetTrick")
	return nil, trickdomain.ErrTrickNotFound
}

func (f *FakeService) SeedDefaults(context.Context) (int, error) { return 0, nil }

var _ trickservice.Service = (*FakeService)(nil)

func serve(svc *FakeService, claims *authdomain.Claims, method, path, body string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if claims != nil {
				req = req.WithContext(authdomain.WithClaims(req.Context(), claims))
			}
			next.ServeHTTP(w, req)
		})
	})
	NewHTTPHandlers(svc, slog.New(slog.NewTextHandler(io.Discard, nil))).Routes(r)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(method, path, strings.NewReader(body)))
	return rr
}

func TestHTTPHandlers(t *testing.T) {
	user := &authdomain.Claims{Subject: "u1", Role: authdomain.RoleAuthenticated}
	admin := &authdomain.Claims{Subject: "a1", Role: authdomain.RoleAdmin}

	t.Run("list passes filters", func(t *testing.T) {
		svc := &FakeService{}
		rr := serve(svc, user, http.MethodGet, "/tricks?q=flip&type=height", "")
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "flip", svc.lastQuery)
		assert.Equal(t, "height", svc.lastType)
		assert.Contains(t, rr.Body.String(), "Backflip")
	})

	t.Run("create as admin", func(t *testing.T) {
		rr := serve(&FakeService{}, admin, http.MethodPost, "/tricks", `{"name":"Lemur","type":"spin","base_points":7}`)
		assert.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	})

	t.Run("create as user is forbidden", func(t *testing.T) {
		rr := serve(&FakeService{}, user, http.MethodPost, "/tricks", `{"name":"Lemur","type":"spin"}`)
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("create without claims", func(t *testing.T) {
		svc := &FakeService{}
		rr := serve(svc, nil, http.MethodPost, "/tricks", `{"name":"Lemur","type":"spin"}`)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Empty(t, svc.trace)
	})

	t.Run("get missing", func(t *testing.T) {
		rr := serve(&FakeService{}, user, http.MethodGet, "/tricks/"+uuid.NewString(), "")
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
