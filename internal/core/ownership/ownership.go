// Copyright (c) 2026 Ibis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package ownership rejects writes that reference another user's records.

Every knowledge-base record belongs to exactly one user. Before a Source,
Tag, Alias or Fact is written, each related id it carries (a fact's tags, a
tag's type, an alias's tag ...) is resolved to its owner. References to
objects owned by someone else, or to objects that do not exist, become
field-scoped validation errors on the offending field.

# Usage

	err := ownership.New(service.owners, userID).
		One(FieldContext, ownership.KindTag, fact.Context).
		Many(FieldTags, ownership.KindTag, fact.Tags).
		Check(ctx, validator)
*/
package ownership

import (
	"context"
	"fmt"
	"slices"

	"github.com/taibuivan/ibis/internal/platform/validate"
	"github.com/taibuivan/ibis/pkg/slice"
	"github.com/taibuivan/ibis/pkg/uuid"
)

// Kind identifies the table a reference points into.
type Kind string

const (
	KindSource  Kind = "source"
	KindPeriod  Kind = "period"
	KindTagType Kind = "tagtype"
	KindTag     Kind = "tag"
	KindFact    Kind = "fact"
)

// Store resolves record ids to their owning user.
type Store interface {
	/*
		Owners returns the owner of every id of kind that exists.

		Parameters:
		  - ctx: context.Context
		  - kind: Kind
		  - ids: []string (valid UUIDs)

		Returns:
		  - map[string]string: id -> owning user id; missing ids are absent
		  - error: Database retrieval failures
	*/
	Owners(ctx context.Context, kind Kind, ids []string) (map[string]string, error)
}

type reference struct {
	field string
	kind  Kind
	ids   []string
}

// Guard collects the references of one write and checks them in a batch.
type Guard struct {
	store      Store
	userID     string
	references []reference
}

// New returns a Guard that accepts only objects owned by userID.
func New(store Store, userID string) *Guard {
	return &Guard{store: store, userID: userID}
}

// One registers an optional single-valued reference. A nil or empty id is skipped.
func (guard *Guard) One(field string, kind Kind, id *string) *Guard {
	if id == nil || *id == "" {
		return guard
	}
	return guard.Many(field, kind, []string{*id})
}

// Many registers a list-valued reference. Every element must pass.
// Ids are compared in canonical form, which is how the store reports them.
func (guard *Guard) Many(field string, kind Kind, ids []string) *Guard {
	if len(ids) == 0 {
		return guard
	}
	guard.references = append(guard.references, reference{
		field: field,
		kind:  kind,
		ids:   slice.Map(ids, uuid.Canonical),
	})
	return guard
}

/*
Check resolves all registered references and reports failures into v.

At most one error is added per field; fields that already carry an error are
left alone.

Returns:
  - error: only storage failures; rule violations are recorded in v
*/
func (guard *Guard) Check(ctx context.Context, v *validate.Validator) error {
	owners, err := guard.resolve(ctx)
	if err != nil {
		return err
	}

	for _, ref := range guard.references {
		if v.HasFieldError(ref.field) {
			continue
		}

		for _, id := range ref.ids {
			owner, exists := owners[ref.kind][id]

			if !exists {
				v.Custom(ref.field, true, fmt.Sprintf("Invalid id %q - object does not exist.", id))
				break
			}

			if owner != guard.userID {
				v.Custom(ref.field, true, fmt.Sprintf("Invalid id %q - referencing another user's object is forbidden.", id))
				break
			}
		}
	}

	return nil
}

// resolve runs one lookup per kind. Malformed ids never reach the store and
// therefore resolve as missing.
func (guard *Guard) resolve(ctx context.Context) (map[Kind]map[string]string, error) {
	wanted := make(map[Kind][]string)
	for _, ref := range guard.references {
		for _, id := range ref.ids {
			if uuid.Valid(id) && !slices.Contains(wanted[ref.kind], id) {
				wanted[ref.kind] = append(wanted[ref.kind], id)
			}
		}
	}

	owners := make(map[Kind]map[string]string, len(wanted))
	for kind, ids := range wanted {
		found, err := guard.store.Owners(ctx, kind, ids)
		if err != nil {
			return nil, err
		}
		owners[kind] = found
	}

	return owners, nil
}
