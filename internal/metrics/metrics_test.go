package metrics_test

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/guestdesk/internal/domain"
	"github.com/pkordes/guestdesk/internal/metrics"
)

func TestResult(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "ok"},
		{fmt.Errorf("svc: %w", domain.ErrNotFound), "not_found"},
		{domain.ErrValidation, "invalid"},
		{domain.ErrForbidden, "denied"},
		{domain.ErrUnauthenticated, "denied"},
		{domain.ErrDormFull, "dorm_full"},
		{domain.ErrConflict, "conflict"},
		{errors.New("boom"), "error"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, metrics.Result(tc.err), "%v", tc.err)
	}
}

func TestObserveMutation(t *testing.T) {
	m := metrics.New()
	m.ObserveMutation("guest.update", nil)
	m.ObserveMutation("guest.update", nil)
	m.ObserveMutation("guest.update", domain.ErrDormFull)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.MutationCount("guest.update", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.MutationCount("guest.update", "dorm_full")))
}

func TestObserveRecords(t *testing.T) {
	m := metrics.New()
	m.ObserveRecords([]domain.Update{
		{UpdateType: domain.UpdateGuestStatus},
		{UpdateType: domain.UpdateCheckIn},
		{UpdateType: domain.UpdateGuestStatus},
	})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RecordCount(domain.UpdateGuestStatus)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RecordCount(domain.UpdateCheckIn)))
}

func TestHandler_ServesExposition(t *testing.T) {
	m := metrics.New()
	m.ObserveMutation("dorm.create", nil)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `guestdesk_mutations_total{operation="dorm.create",result="ok"} 1`)
}
