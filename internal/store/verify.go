package store

import (
	"errors"
	"fmt"
	"slices"
)

// verify returns every occupancy or membership violation joined into one
// error, or nil when the state is consistent:
//
//   - 0 <= OccupiedBeds <= Capacity and OccupiedBeds == len(Guests)
//   - each dorm member exists, appears once, and points back at the dorm
//   - each guest with a DormID is a member of that dorm
func (st *state) verify() error {
	var errs []error
	for _, d := range st.dorms {
		if d.Capacity <= 0 {
			errs = append(errs, fmt.Errorf("dorm %q: capacity %d is not positive", d.ID, d.Capacity))
		}
		if d.OccupiedBeds < 0 || d.OccupiedBeds > d.Capacity {
			errs = append(errs, fmt.Errorf("dorm %q: occupied beds %d outside 0..%d", d.ID, d.OccupiedBeds, d.Capacity))
		}
		if d.OccupiedBeds != len(d.Guests) {
			errs = append(errs, fmt.Errorf("dorm %q: occupied beds %d but %d members", d.ID, d.OccupiedBeds, len(d.Guests)))
		}
		seen := make(map[string]bool, len(d.Guests))
		for _, gid := range d.Guests {
			if seen[gid] {
				errs = append(errs, fmt.Errorf("dorm %q: guest %q listed twice", d.ID, gid))
				continue
			}
			seen[gid] = true
			g, ok := st.guest(gid)
			if !ok {
				errs = append(errs, fmt.Errorf("dorm %q: member %q does not exist", d.ID, gid))
				continue
			}
			if g.DormID != d.ID {
				errs = append(errs, fmt.Errorf("dorm %q: member %q is assigned to %q", d.ID, gid, g.DormID))
			}
		}
	}
	for _, g := range st.guests {
		if g.DormID == "" {
			continue
		}
		d, ok := st.dorm(g.DormID)
		if !ok {
			errs = append(errs, fmt.Errorf("guest %q: dorm %q does not exist", g.ID, g.DormID))
			continue
		}
		if !slices.Contains(d.Guests, g.ID) {
			errs = append(errs, fmt.Errorf("guest %q: missing from dorm %q members", g.ID, g.DormID))
		}
	}
	return errors.Join(errs...)
}
