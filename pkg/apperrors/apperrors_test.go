package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
)

func TestKindMapping(t *testing.T) {
	cases := []struct {
		err      error
		kind     Kind
		httpCode int
		grpcCode codes.Code
	}{
		{NotFound("order not found"), KindNotFound, http.StatusNotFound, codes.NotFound},
		{Validation("bad status", nil), KindValidation, http.StatusBadRequest, codes.InvalidArgument},
		{PermissionDenied("admins only"), KindPermissionDenied, http.StatusForbidden, codes.PermissionDenied},
		{Conflict("in flight"), KindConflict, http.StatusConflict, codes.AlreadyExists},
		{Internal("boom", errors.New("db down")), KindInternal, http.StatusInternalServerError, codes.Internal},
		{errors.New("plain"), KindInternal, http.StatusInternalServerError, codes.Internal},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.kind, KindOf(tc.err), tc.err.Error())
		assert.Equal(t, tc.httpCode, HTTPStatus(tc.err), tc.err.Error())
		assert.Equal(t, tc.grpcCode, GRPCCode(tc.err), tc.err.Error())
	}
}

func TestWrappedErrorsKeepKindAndCause(t *testing.T) {
	sentinel := errors.New("product not found")
	err := fmt.Errorf("create order: %w", Validation("Product 7 not found", sentinel))

	assert.Equal(t, KindValidation, KindOf(err))
	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, "Product 7 not found", PublicMessage(err))
}

func TestPublicMessageHidesUnclassified(t *testing.T) {
	assert.Equal(t, "internal server error", PublicMessage(errors.New("dial tcp: refused")))
	assert.Equal(t, "failed to render waybill", PublicMessage(Internal("failed to render waybill", errors.New("font"))))
}
