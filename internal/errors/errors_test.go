package errors

import (
	"net/http"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusFromErr(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want int
	}{
		{name: "not_found", err: NewError("missing").Mark(ErrNotFound), want: http.StatusNotFound},
		{name: "validation", err: NewError("bad input").Mark(ErrValidation), want: http.StatusBadRequest},
		{name: "permission", err: NewError("denied").Mark(ErrPermissionDenied), want: http.StatusForbidden},
		{name: "unauthorized", err: NewError("no token").Mark(ErrUnauthorized), want: http.StatusUnauthorized},
		{name: "notification", err: NewError("smtp").Mark(ErrNotification), want: http.StatusBadGateway},
		{name: "plain_error", err: errors.New("boom"), want: http.StatusInternalServerError},
		{
			name: "permission_wins_over_not_found",
			err:  errors.Mark(NewError("hidden").Mark(ErrNotFound), ErrPermissionDenied),
			want: http.StatusForbidden,
		},
		{
			name: "wrapped_keeps_mark",
			err:  errors.Wrap(WithError(errors.New("dup")).Mark(ErrAlreadyExists), "create shipment"),
			want: http.StatusConflict,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, HTTPStatusFromErr(tc.err))
		})
	}
}

func TestBuilderHints(t *testing.T) {
	err := NewErrorf("shipment %s not found", "ship_1").
		WithHintf("Shipment %s was not found", "ship_1").
		WithReportableDetails(map[string]any{"shipment_id": "ship_1"}).
		Mark(ErrNotFound)

	assert.True(t, IsNotFound(err))
	assert.False(t, IsValidation(err))
	assert.Contains(t, errors.GetAllHints(err), "Shipment ship_1 was not found")
	assert.Contains(t, err.Error(), "shipment ship_1 not found")
}

func TestWithMessagef(t *testing.T) {
	err := WithError(errors.New("timeout")).
		WithMessagef("upload %s", "doc_1").
		Mark(ErrHTTPClient)

	assert.True(t, errors.Is(err, ErrHTTPClient))
	assert.Contains(t, err.Error(), "upload doc_1")
}
