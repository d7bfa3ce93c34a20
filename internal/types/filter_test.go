package types

import (
	"testing"

	ierr "github.com/logiport/portal/internal/errors"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
)

func TestQueryFilterDefaults(t *testing.T) {
	var f *QueryFilter
	assert.True(t, f.IsUnlimited())
	assert.Equal(t, 0, f.GetOffset())
	assert.Equal(t, OrderDesc, f.GetOrder())
	assert.NoError(t, f.Validate())

	f = NewDefaultQueryFilter()
	assert.Equal(t, FILTER_DEFAULT_LIMIT, f.GetLimit())
}

func TestQueryFilterValidate(t *testing.T) {
	testCases := []struct {
		name    string
		filter  *QueryFilter
		wantErr bool
	}{
		{name: "valid", filter: &QueryFilter{Limit: lo.ToPtr(10), Offset: lo.ToPtr(5), Order: lo.ToPtr(OrderAsc)}},
		{name: "zero_limit", filter: &QueryFilter{Limit: lo.ToPtr(0)}, wantErr: true},
		{name: "limit_too_large", filter: &QueryFilter{Limit: lo.ToPtr(FILTER_MAX_LIMIT + 1)}, wantErr: true},
		{name: "negative_offset", filter: &QueryFilter{Offset: lo.ToPtr(-1)}, wantErr: true},
		{name: "bad_order", filter: &QueryFilter{Order: lo.ToPtr("sideways")}, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.filter.Validate()
			if tc.wantErr {
				assert.True(t, ierr.IsValidation(err))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestShipmentFilterValidatesStatus(t *testing.T) {
	f := &ShipmentFilter{Status: lo.ToPtr(ShipmentStatus("lost"))}
	assert.True(t, ierr.IsValidation(f.Validate()))

	f.Status = lo.ToPtr(ShipmentStatusCustoms)
	assert.NoError(t, f.Validate())
}

func TestActorRole(t *testing.T) {
	assert.Equal(t, RoleClient, Actor{ID: "u1"}.Role())
	assert.Equal(t, RoleAdmin, Actor{ID: "u1", IsStaff: true}.Role())
	assert.Equal(t, RoleAdmin, Actor{ID: "u1", IsSuperuser: true}.Role())
	assert.Equal(t, "john.doe", Actor{Email: "john.doe@example.com"}.DisplayName())
	assert.True(t, ierr.IsPermissionDenied(Actor{}.Validate()))
}
