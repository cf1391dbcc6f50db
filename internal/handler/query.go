package handler

import (
	"fmt"
	"net/url"

	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/guestdesk/internal/domain"
	"github.com/pkordes/guestdesk/internal/filter"
)

// queryList binds a repeatable query parameter (?type=a&type=b).
// A missing parameter yields nil.
func queryList(q url.Values, name string) ([]string, error) {
	var out *[]string
	if err := runtime.BindQueryParameter("form", true, false, name, q, &out); err != nil {
		return nil, fmt.Errorf("invalid %s parameter: %w", name, err)
	}
	if out == nil {
		return nil, nil
	}
	return *out, nil
}

// queryString binds a single optional string parameter.
func queryString(q url.Values, name string) (string, error) {
	var out *string
	if err := runtime.BindQueryParameter("form", true, false, name, q, &out); err != nil {
		return "", fmt.Errorf("invalid %s parameter: %w", name, err)
	}
	if out == nil {
		return "", nil
	}
	return *out, nil
}

// queryInt binds a single optional integer parameter.
func queryInt(q url.Values, name string) (*int, error) {
	var out *int
	if err := runtime.BindQueryParameter("form", true, false, name, q, &out); err != nil {
		return nil, fmt.Errorf("invalid %s parameter: %w", name, err)
	}
	return out, nil
}

// convert maps raw strings onto a named string type.
func convert[T ~string](in []string) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	for i, v := range in {
		out[i] = T(v)
	}
	return out
}

// guestCriteria reads the guest facets:
// ?search=&type=&status=&dorm=&volunteer=
func guestCriteria(q url.Values) (filter.GuestCriteria, error) {
	var (
		c   filter.GuestCriteria
		err error
	)
	if c.Search, err = queryString(q, "search"); err != nil {
		return c, err
	}
	types, err := queryList(q, "type")
	if err != nil {
		return c, err
	}
	statuses, err := queryList(q, "status")
	if err != nil {
		return c, err
	}
	if c.Dorms, err = queryList(q, "dorm"); err != nil {
		return c, err
	}
	if c.Volunteers, err = queryList(q, "volunteer"); err != nil {
		return c, err
	}
	c.Types = convert[domain.GuestType](types)
	c.Statuses = convert[domain.GuestStatus](statuses)
	return c, nil
}

// dormCriteria reads the dorm facets: ?search=&availability=
func dormCriteria(q url.Values) (filter.DormCriteria, error) {
	var (
		c   filter.DormCriteria
		err error
	)
	if c.Search, err = queryString(q, "search"); err != nil {
		return c, err
	}
	avail, err := queryList(q, "availability")
	if err != nil {
		return c, err
	}
	c.Availability = convert[domain.Availability](avail)
	return c, nil
}

// updateCriteria reads the audit log facets:
// ?search=&type=&user=&entity=
func updateCriteria(q url.Values) (filter.UpdateCriteria, error) {
	var (
		c   filter.UpdateCriteria
		err error
	)
	if c.Search, err = queryString(q, "search"); err != nil {
		return c, err
	}
	types, err := queryList(q, "type")
	if err != nil {
		return c, err
	}
	if c.Users, err = queryList(q, "user"); err != nil {
		return c, err
	}
	entities, err := queryList(q, "entity")
	if err != nil {
		return c, err
	}
	c.Types = convert[domain.UpdateType](types)
	c.Entities = convert[domain.EntityType](entities)
	return c, nil
}

// pagination reads ?page= and ?limit= (defaults: page=1, limit=20, max=100).
func pagination(q url.Values) (domain.PaginationParams, error) {
	page, err := queryInt(q, "page")
	if err != nil {
		return domain.PaginationParams{}, err
	}
	limit, err := queryInt(q, "limit")
	if err != nil {
		return domain.PaginationParams{}, err
	}
	return domain.NewPaginationParams(page, limit), nil
}
