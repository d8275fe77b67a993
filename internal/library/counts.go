// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package library

import (
	"context"

	"github.com/go-logr/logr"

	"github.com/EshwaranandB/medkit.ai/pkg/types"
)

// StatsProvider reports library statistics from an external service.
type StatsProvider interface {
	LibraryStats(ctx context.Context) (types.LibraryStats, error)
}

// CategoryCounts returns per-category topic counts plus a CategoryAll
// total. Counts come from p when it answers; otherwise, or when p is nil,
// they are computed from x. The second result reports whether the remote
// counts were used.
func CategoryCounts(ctx context.Context, x *Index, p StatsProvider) (map[types.Category]int, bool) {
	if p != nil {
		stats, err := p.LibraryStats(ctx)
		if err == nil {
			counts := make(map[types.Category]int, len(types.Categories)+1)
			for _, c := range types.Categories {
				counts[c] = stats.ByCategory[c]
			}
			counts[types.CategoryAll] = stats.Total
			return counts, true
		}
		logr.FromContextOrDiscard(ctx).V(1).Info("stats provider unavailable, counting locally", "error", err.Error())
	}
	return x.Counts(), false
}
