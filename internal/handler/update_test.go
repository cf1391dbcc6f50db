package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/guestdesk/internal/domain"
	"github.com/pkordes/guestdesk/internal/filter"
	"github.com/pkordes/guestdesk/internal/handler"
)

func TestListUpdates_200_BindsFacetsAndPagination(t *testing.T) {
	var (
		gotCriteria filter.UpdateCriteria
		gotParams   domain.PaginationParams
	)
	svc := &mockUpdateServicer{
		listPaged: func(_ context.Context, actor *domain.User, c filter.UpdateCriteria, p domain.PaginationParams) ([]domain.Update, int, error) {
			assert.Equal(t, manager, actor)
			gotCriteria, gotParams = c, p
			return []domain.Update{{ID: "u1"}}, 41, nil
		},
	}

	rec := do(newHTTPHandler(handler.Deps{Updates: svc, Sessions: signedIn(manager)}), http.MethodGet,
		"/updates?search=ravi&type=Check+In&user=usr1&entity=Guest&page=3&limit=10", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, filter.UpdateCriteria{
		Search:   "ravi",
		Types:    []domain.UpdateType{domain.UpdateCheckIn},
		Users:    []string{"usr1"},
		Entities: []domain.EntityType{domain.EntityGuest},
	}, gotCriteria)
	assert.Equal(t, domain.PaginationParams{Page: 3, Limit: 10}, gotParams)

	var resp handler.UpdateListResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Len(t, resp.Data, 1)
	assert.Equal(t, handler.Pagination{Page: 3, Limit: 10, Total: 41}, resp.Pagination)
}

func TestListUpdates_DefaultPagination(t *testing.T) {
	var got domain.PaginationParams
	svc := &mockUpdateServicer{
		listPaged: func(_ context.Context, _ *domain.User, _ filter.UpdateCriteria, p domain.PaginationParams) ([]domain.Update, int, error) {
			got = p
			return []domain.Update{}, 0, nil
		},
	}

	rec := do(newHTTPHandler(handler.Deps{Updates: svc, Sessions: signedIn(manager)}), http.MethodGet, "/updates?limit=500", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.PaginationParams{Page: 1, Limit: 100}, got)
}

func TestListUpdates_400_BadPage(t *testing.T) {
	rec := do(newHTTPHandler(handler.Deps{Updates: &mockUpdateServicer{}}), http.MethodGet, "/updates?page=first", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec).Message, "page")
}

func TestListUpdates_403_Desk(t *testing.T) {
	desk := &domain.User{ID: "usr3", Role: domain.RoleDesk}
	svc := &mockUpdateServicer{
		listPaged: func(context.Context, *domain.User, filter.UpdateCriteria, domain.PaginationParams) ([]domain.Update, int, error) {
			return nil, 0, fmt.Errorf("service.UpdateService.ListPaged: %w: Desk may not view_updates", domain.ErrForbidden)
		},
	}

	rec := do(newHTTPHandler(handler.Deps{Updates: svc, Sessions: signedIn(desk)}), http.MethodGet, "/updates", nil)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "forbidden", decodeError(t, rec).Code)
}

func TestListUpdatesByDay_UsesConfiguredLocation(t *testing.T) {
	kolkata := time.FixedZone("IST", 5*3600+1800)
	var gotLoc *time.Location
	svc := &mockUpdateServicer{
		byDay: func(_ context.Context, _ *domain.User, _ filter.UpdateCriteria, loc *time.Location) ([]filter.DayGroup, error) {
			gotLoc = loc
			return []filter.DayGroup{{Day: "2025-03-14", Updates: []domain.Update{{ID: "u1"}}}}, nil
		},
	}

	h := handler.NewServer(handler.Deps{Updates: svc, Sessions: signedIn(manager), Location: kolkata}).Routes()
	rec := do(h, http.MethodGet, "/updates/by-day", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, kolkata, gotLoc)

	var resp []filter.DayGroup
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "2025-03-14", resp[0].Day)
}

func TestListUpdatesByDay_DefaultsToUTC(t *testing.T) {
	var gotLoc *time.Location
	svc := &mockUpdateServicer{
		byDay: func(_ context.Context, _ *domain.User, _ filter.UpdateCriteria, loc *time.Location) ([]filter.DayGroup, error) {
			gotLoc = loc
			return []filter.DayGroup{}, nil
		},
	}

	rec := do(newHTTPHandler(handler.Deps{Updates: svc, Sessions: signedIn(manager)}), http.MethodGet, "/updates/by-day", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, time.UTC, gotLoc)
}
