// Copyright (c) 2026 Ibis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ibis/internal/core/ownership"
	"github.com/taibuivan/ibis/internal/core/ownership/ownershiptest"
	"github.com/taibuivan/ibis/internal/core/tag"
	"github.com/taibuivan/ibis/internal/platform/apperr"
	"github.com/taibuivan/ibis/internal/platform/ctxutil"
	"github.com/taibuivan/ibis/internal/platform/sec"
	"github.com/taibuivan/ibis/pkg/pointer"
	"github.com/taibuivan/ibis/pkg/uuid"
)

const (
	alice = "0190f5a2-0000-7000-8000-00000000a11c"
	bob   = "0190f5a2-0000-7000-8000-000000000b0b"
)

func newService() (*tag.Service, *ownershiptest.Store) {
	owners := ownershiptest.NewStore()
	return tag.NewService(newMemoryRepository(), owners, slog.New(slog.NewTextHandler(io.Discard, nil))), owners
}

// create stores a tag and registers it with the ownership store.
func create(t *testing.T, service *tag.Service, owners *ownershiptest.Store, userID string, input *tag.Tag) *tag.Tag {
	t.Helper()
	require.NoError(t, service.Create(context.Background(), userID, input))
	owners.Add(ownership.KindTag, input.ID, userID)
	return input
}

func TestService_Create_DerivesSlug(t *testing.T) {
	service, owners := newService()

	created := create(t, service, owners, alice, &tag.Tag{Name: "Ancient Rome"})
	assert.Equal(t, "ancient-rome", created.Slug)
	assert.Equal(t, []string{}, created.Tags)
	assert.Equal(t, []string{}, created.TaggedBy)
	assert.Equal(t, "Ancient Rome", created.String())

	got, err := service.GetBySlug(context.Background(), alice, "ancient-rome")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestService_Create_DuplicateName(t *testing.T) {
	service, owners := newService()
	create(t, service, owners, alice, &tag.Tag{Name: "Rome"})

	err := service.Create(context.Background(), alice, &tag.Tag{Name: "Rome"})
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, apperr.CodeConflict, ae.Code)

	// Names are unique per user only.
	assert.NoError(t, service.Create(context.Background(), bob, &tag.Tag{Name: "Rome"}))
}

func TestService_Create_Validation(t *testing.T) {
	service, owners := newService()
	ownType, foreignType := uuid.New(), uuid.New()
	owners.Add(ownership.KindTagType, ownType, alice)
	owners.Add(ownership.KindTagType, foreignType, bob)
	foreignTag := create(t, service, owners, bob, &tag.Tag{Name: "Carthage"})

	tests := []struct {
		name   string
		input  tag.Tag
		fields []string
	}{
		{"missing_name", tag.Tag{}, []string{tag.FieldName}},
		{"long_name", tag.Tag{Name: strings.Repeat("x", 65)}, []string{tag.FieldName}},
		{"foreign_type", tag.Tag{Name: "a", Type: &foreignType}, []string{tag.FieldType}},
		{"missing_type", tag.Tag{Name: "b", Type: pointer.To(uuid.New())}, []string{tag.FieldType}},
		{"foreign_related", tag.Tag{Name: "c", Tags: []string{foreignTag.ID}}, []string{tag.FieldTags}},
		{"own_type", tag.Tag{Name: "d", Type: &ownType}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.Create(context.Background(), alice, &tt.input)
			if tt.fields == nil {
				assert.NoError(t, err)
				return
			}
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, apperr.CodeValidation, ae.Code)
			assert.Equal(t, tt.fields, ae.Fields())
		})
	}
}

func TestService_TaggedBy(t *testing.T) {
	service, owners := newService()
	ctx := context.Background()

	rome := create(t, service, owners, alice, &tag.Tag{Name: "Rome"})
	caesar := create(t, service, owners, alice, &tag.Tag{Name: "Caesar", Tags: []string{rome.ID, rome.ID}})
	assert.Equal(t, []string{rome.ID}, caesar.Tags)

	got, err := service.Get(ctx, alice, rome.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{caesar.ID}, got.TaggedBy)

	// Clearing the relation on PUT removes the reverse side too.
	require.NoError(t, service.Update(ctx, alice, &tag.Tag{ID: caesar.ID, Name: "Caesar"}))
	got, err = service.Get(ctx, alice, rome.ID)
	require.NoError(t, err)
	assert.Empty(t, got.TaggedBy)
}

func TestService_Update_SelfReferenceShowsInTaggedBy(t *testing.T) {
	service, owners := newService()
	ctx := context.Background()

	rome := create(t, service, owners, alice, &tag.Tag{Name: "Rome"})
	assert.Empty(t, rome.TaggedBy)

	update := &tag.Tag{ID: rome.ID, Name: "Rome", Tags: []string{rome.ID}}
	require.NoError(t, service.Update(ctx, alice, update))
	assert.Equal(t, []string{rome.ID}, update.Tags)
	assert.Equal(t, []string{rome.ID}, update.TaggedBy)
}

func TestService_List_InvalidTypeFilter(t *testing.T) {
	service, _ := newService()

	_, _, err := service.List(context.Background(), alice, tag.Filter{Type: "history"}, 20, 0)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, []string{tag.FieldType}, ae.Fields())
}

func TestService_OtherUserSeesNothing(t *testing.T) {
	service, owners := newService()
	rome := create(t, service, owners, alice, &tag.Tag{Name: "Rome"})

	_, err := service.Get(context.Background(), bob, rome.ID)
	assert.True(t, apperr.IsNotFound(err))
	assert.True(t, apperr.IsNotFound(service.Delete(context.Background(), bob, rome.ID)))
}

func TestHandler_Routes(t *testing.T) {
	service, _ := newService()
	routes := tag.NewHandler(service).Routes()

	do := func(method, target, body string) *httptest.ResponseRecorder {
		request := httptest.NewRequest(method, target, strings.NewReader(body))
		request = request.WithContext(ctxutil.WithAuthUser(request.Context(), &sec.AuthClaims{UserID: alice}))
		recorder := httptest.NewRecorder()
		routes.ServeHTTP(recorder, request)
		return recorder
	}

	recorder := do(http.MethodPost, "/", `{"name":"Roman Republic","text":"509-27 BC"}`)
	require.Equal(t, http.StatusCreated, recorder.Code)

	var created struct{ Data tag.Tag }
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &created))
	assert.Equal(t, "roman-republic", created.Data.Slug)

	recorder = do(http.MethodGet, "/by-slug/roman-republic", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = do(http.MethodPatch, "/"+created.Data.ID, `{"name":"Republic"}`)
	require.Equal(t, http.StatusOK, recorder.Code)

	var patched struct{ Data tag.Tag }
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &patched))
	assert.Equal(t, "republic", patched.Data.Slug)
	require.NotNil(t, patched.Data.Text)
	assert.Equal(t, "509-27 BC", *patched.Data.Text)

	assert.Equal(t, http.StatusConflict, do(http.MethodPost, "/", `{"name":"Republic"}`).Code)
	assert.Equal(t, http.StatusNoContent, do(http.MethodDelete, "/"+created.Data.ID, "").Code)
	assert.Equal(t, http.StatusNotFound, do(http.MethodGet, "/"+created.Data.ID, "").Code)
}
