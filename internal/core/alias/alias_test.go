// Copyright (c) 2026 Ibis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package alias_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ibis/internal/core/alias"
	"github.com/taibuivan/ibis/internal/core/ownership"
	"github.com/taibuivan/ibis/internal/core/ownership/ownershiptest"
	"github.com/taibuivan/ibis/internal/platform/apperr"
	"github.com/taibuivan/ibis/internal/platform/ctxutil"
	"github.com/taibuivan/ibis/internal/platform/dberr"
	"github.com/taibuivan/ibis/internal/platform/sec"
	"github.com/taibuivan/ibis/pkg/uuid"
)

const (
	alice = "0190f5a2-0000-7000-8000-00000000a11c"
	bob   = "0190f5a2-0000-7000-8000-000000000b0b"
)

type memoryRepository struct {
	mu      sync.Mutex
	aliases map[string]alias.Alias
}

func (repository *memoryRepository) List(_ context.Context, userID string, filter alias.Filter, _, _ int) ([]*alias.Alias, int, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	owned := []*alias.Alias{}
	for _, a := range repository.aliases {
		if a.UserID == userID && (filter.Tag == "" || a.Tag == filter.Tag) {
			copied := a
			owned = append(owned, &copied)
		}
	}
	return owned, len(owned), nil
}

func (repository *memoryRepository) FindByID(_ context.Context, userID, id string) (*alias.Alias, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	a, ok := repository.aliases[id]
	if !ok || a.UserID != userID {
		return nil, dberr.ErrNotFound
	}
	return &a, nil
}

func (repository *memoryRepository) Create(_ context.Context, a *alias.Alias) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	for _, other := range repository.aliases {
		if other.ID != a.ID && other.UserID == a.UserID && other.Name == a.Name {
			return apperr.Conflict("An object with this name already exists")
		}
	}
	repository.aliases[a.ID] = *a
	return nil
}

func (repository *memoryRepository) Update(ctx context.Context, a *alias.Alias) error {
	return repository.Create(ctx, a)
}

func (repository *memoryRepository) Delete(_ context.Context, userID, id string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if a, ok := repository.aliases[id]; !ok || a.UserID != userID {
		return dberr.ErrNotFound
	}
	delete(repository.aliases, id)
	return nil
}

func newService() (*alias.Service, *ownershiptest.Store) {
	owners := ownershiptest.NewStore()
	repo := &memoryRepository{aliases: make(map[string]alias.Alias)}
	return alias.NewService(repo, owners, slog.New(slog.NewTextHandler(io.Discard, nil))), owners
}

func TestAlias_String(t *testing.T) {
	assert.Equal(t, "Octavian", alias.Alias{Name: "Octavian"}.String())
	assert.Equal(t, "Octavian → Augustus", alias.Alias{Name: "Octavian", TagName: "Augustus"}.String())
}

func TestService_Create(t *testing.T) {
	service, owners := newService()
	ownTag, foreignTag := uuid.New(), uuid.New()
	owners.Add(ownership.KindTag, ownTag, alice)
	owners.Add(ownership.KindTag, foreignTag, bob)

	tests := []struct {
		name   string
		input  alias.Alias
		fields []string
	}{
		{"missing_everything", alias.Alias{}, []string{alias.FieldName, alias.FieldTag}},
		{"long_name", alias.Alias{Name: strings.Repeat("n", 65), Tag: ownTag}, []string{alias.FieldName}},
		{"foreign_tag", alias.Alias{Name: "a", Tag: foreignTag}, []string{alias.FieldTag}},
		{"malformed_tag", alias.Alias{Name: "b", Tag: "42"}, []string{alias.FieldTag}},
		{"valid", alias.Alias{Name: "Octavian", Tag: ownTag}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.Create(context.Background(), alice, &tt.input)
			if tt.fields == nil {
				require.NoError(t, err)
				assert.True(t, uuid.Valid(tt.input.ID))
				return
			}
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, tt.fields, ae.Fields())
		})
	}
}

func TestService_ForeignTagMessage(t *testing.T) {
	service, owners := newService()
	foreignTag := uuid.New()
	owners.Add(ownership.KindTag, foreignTag, bob)

	ae := apperr.As(service.Create(context.Background(), alice, &alias.Alias{Name: "x", Tag: foreignTag}))
	require.NotNil(t, ae)
	require.Len(t, ae.Details, 1)
	assert.Contains(t, ae.Details[0].Message, "referencing another user's object is forbidden")
}

func TestService_Update_UnknownAlias(t *testing.T) {
	service, _ := newService()

	err := service.Update(context.Background(), alice, &alias.Alias{ID: uuid.New(), Name: "x"})
	assert.True(t, apperr.IsNotFound(err))
}

func TestHandler_ListByTag(t *testing.T) {
	service, owners := newService()
	rome, gaul := uuid.New(), uuid.New()
	owners.Add(ownership.KindTag, rome, alice)
	owners.Add(ownership.KindTag, gaul, alice)

	ctx := context.Background()
	require.NoError(t, service.Create(ctx, alice, &alias.Alias{Name: "Roma", Tag: rome}))
	require.NoError(t, service.Create(ctx, alice, &alias.Alias{Name: "Gallia", Tag: gaul}))

	routes := alias.NewHandler(service).Routes()
	do := func(target string) *httptest.ResponseRecorder {
		request := httptest.NewRequest(http.MethodGet, target, nil)
		request = request.WithContext(ctxutil.WithAuthUser(request.Context(), &sec.AuthClaims{UserID: alice}))
		recorder := httptest.NewRecorder()
		routes.ServeHTTP(recorder, request)
		return recorder
	}

	recorder := do("/?tag=" + rome)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"Roma"`)
	assert.NotContains(t, recorder.Body.String(), `"Gallia"`)

	assert.Equal(t, http.StatusBadRequest, do("/?tag=rome").Code)
}
