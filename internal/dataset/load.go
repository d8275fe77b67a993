// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"context"
	"time"

	"github.com/go-logr/logr"

	"github.com/EshwaranandB/medkit.ai/pkg/types"
)

// Load fetches from src and normalizes the result. A failed fetch is not an
// error: Load returns an empty collection and records the cause in
// Report.Err. The only error returned is the context's, when ctx is done
// before normalization finishes; the caller must then discard the load.
func Load(ctx context.Context, src Source, opts Options) ([]types.Topic, Report, error) {
	log := logr.FromContextOrDiscard(ctx).WithValues("source", src.String())
	start := time.Now()

	raws, err := src.Fetch(ctx)
	if cerr := ctx.Err(); cerr != nil {
		return nil, Report{}, cerr
	}
	if err != nil {
		log.Error(err, "dataset load failed, continuing with an empty library")
		return []types.Topic{}, Report{Err: err}, nil
	}

	topics, report := Normalize(raws, opts)
	if cerr := ctx.Err(); cerr != nil {
		return nil, Report{}, cerr
	}

	log.V(1).Info("dataset loaded",
		"raw", report.Raw, "kept", report.Kept, "excluded", report.Excluded,
		"duplicates", report.Duplicates, "elapsed", time.Since(start))
	return topics, report, nil
}
