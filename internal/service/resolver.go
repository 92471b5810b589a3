package service

import (
	"context"

	"rentalops-backend/internal/logger"
	"rentalops-backend/internal/store"
)

// Display-field resolution. List paths collect the distinct referenced ids
// and issue one multi-get per collection; a failed lookup degrades to the
// placeholder string instead of failing the whole listing.

func distinct(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	var out []string
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// resolveNames fetches the given records and renders each through display.
// On failure it logs and returns an empty map; callers fall back to
// placeholders.
func resolveNames(ctx context.Context, st store.Store, c store.Collection, ids []string, display func(store.Record) string) map[string]string {
	ids = distinct(ids)
	if len(ids) == 0 {
		return nil
	}

	recs, err := st.ListIn(ctx, c, "id", ids)
	if err != nil {
		logger.Warn("display lookup failed", "collection", c, "error", err)
		return nil
	}

	out := make(map[string]string, len(recs))
	for _, r := range recs {
		out[r.ID()] = display(r)
	}
	return out
}

func customerNames(ctx context.Context, st store.Store, ids []string) map[string]string {
	return resolveNames(ctx, st, store.Customers, ids, func(r store.Record) string {
		c := CustomerFromRecord(r)
		return c.FullName()
	})
}

func vehicleInfos(ctx context.Context, st store.Store, ids []string) map[string]string {
	return resolveNames(ctx, st, store.Vehicles, ids, func(r store.Record) string {
		v := VehicleFromRecord(r)
		return v.Info()
	})
}

func categoryNames(ctx context.Context, st store.Store, ids []string) map[string]string {
	return resolveNames(ctx, st, store.VehicleCategories, ids, func(r store.Record) string {
		return asString(r["name"])
	})
}

func userNames(ctx context.Context, st store.Store, ids []string) map[string]string {
	return resolveNames(ctx, st, store.Users, ids, func(r store.Record) string {
		u := UserFromRecord(r)
		return u.FullName()
	})
}

func pick(m map[string]string, id, placeholder string) string {
	if name, ok := m[id]; ok {
		return name
	}
	return placeholder
}
