package dataset

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/patrikhermansson/vdist/core"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"
)

// MatrixOptions controls how PairwiseMatrix schedules its work.
type MatrixOptions struct {
	// Workers bounds the number of rows computed concurrently.
	// Zero or less means runtime.NumCPU().
	Workers int
	// Progress enables a progress bar written to ProgressOutput.
	Progress bool
	// ProgressOutput defaults to os.Stderr.
	ProgressOutput io.Writer
}

// PairwiseMatrix computes the distance between every ordered pair of vectors.
// Cell [i][j] holds distance(vectors[i], vectors[j]); the matrix is not
// assumed to be symmetric. The first error, including ctx cancellation,
// stops the remaining work.
func PairwiseMatrix(ctx context.Context, vectors [][]float64, distance core.DistanceFunc, opts MatrixOptions) ([][]float64, error) {
	n := len(vectors)
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	matrix := make([][]float64, n)
	for i := range matrix {
		matrix[i] = make([]float64, n)
	}

	var bar *progressbar.ProgressBar
	if opts.Progress {
		out := opts.ProgressOutput
		if out == nil {
			out = os.Stderr
		}
		bar = progressbar.NewOptions(n,
			progressbar.OptionSetWriter(out),
			progressbar.OptionSetDescription("distances"),
			progressbar.OptionOnCompletion(func() { fmt.Fprint(out, "\n") }),
		)
	}

	log.Debug().Msgf("Computing %dx%d distance matrix using %d workers", n, n, workers)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			row := matrix[i]
			for j := 0; j < n; j++ {
				d, err := distance(vectors[i], vectors[j])
				if err != nil {
					return fmt.Errorf("rows %d and %d: %w", i, j, err)
				}
				row[j] = d
			}
			if bar != nil {
				return bar.Add(1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return matrix, nil
}
