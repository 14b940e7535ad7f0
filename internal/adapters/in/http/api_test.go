package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"freight/internal/core/domain/model/assignment"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/domain/model/proposal"
	"freight/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderToRecorder(t *testing.T, err error) (int, Error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)

	require.NoError(t, renderError(ctx, err))

	var payload Error
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	return rec.Code, payload
}

func TestRenderError_IllegalTransitionUsesLabels(t *testing.T) {
	err := order.AssertTransition(order.StatusOpen, order.StatusCompleted, kernel.RoleRequester)
	require.Error(t, err)

	code, payload := renderToRecorder(t, err)

	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, `the requested change is not available while the order is "Open for offers"`, payload.Message)
	assert.NotContains(t, payload.Message, order.StatusOpen.String())
	assert.NotContains(t, payload.Message, order.StatusCompleted.String())
}

func TestRenderError_ForbiddenTransitionUsesLabels(t *testing.T) {
	err := order.AssertTransition(order.StatusOpen, order.StatusCancelled, kernel.RoleFulfiller)
	require.Error(t, err)

	code, payload := renderToRecorder(t, err)

	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, `cannot cancel the order while the order is "Open for offers"`, payload.Message)
}

func TestRenderError_LegTransitionUsesLabels(t *testing.T) {
	err := assignment.AssertLegTransition(
		assignment.StatusAccepted, assignment.StatusInTransit, kernel.RoleFulfiller)
	require.Error(t, err)

	code, payload := renderToRecorder(t, err)

	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, `cannot move the leg to "In transit" while it is "Awaiting pickup"`, payload.Message)
	assert.NotContains(t, payload.Message, assignment.StatusAccepted.String())
}

func TestRenderError_ProposalRoleRefusalIsForbidden(t *testing.T) {
	price, err := kernel.NewMoney(90000)
	require.NoError(t, err)
	offer, err := proposal.NewProposal(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), price)
	require.NoError(t, err)

	counterErr := offer.Counter(price, kernel.RoleFulfiller)
	require.Error(t, counterErr)

	code, _ := renderToRecorder(t, counterErr)

	assert.Equal(t, http.StatusForbidden, code)
}

func TestRenderError_StatusCodes(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"not found", errs.NewObjectNotFoundError("orderID", kernel.NewUUID().String()), http.StatusNotFound},
		{"slot unavailable", order.ErrSlotUnavailable, http.StatusConflict},
		{"validation failure", errs.NewValueIsRequiredError("offered price"), http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, payload := renderToRecorder(t, tc.err)

			assert.Equal(t, tc.code, code)
			assert.Equal(t, tc.code, payload.Code)
		})
	}
}

func TestRenderError_UnclassifiedErrorHidesItsText(t *testing.T) {
	code, payload := renderToRecorder(t, errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "internal error", payload.Message)
}
