package cmd

import (
	"fmt"

	"github.com/patrikhermansson/vdist/core"
	"github.com/patrikhermansson/vdist/internal/dataset"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const checkCommandName = "check"

func addMetricFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("metric", "m", "", "Distance metric [manhattan,euclidean,tchebyshev,minkowski,histogram_intersection,khi2]")
	cmd.Flags().Float64P("order", "p", core.DefaultMinkowskiP, "Order of the Minkowski distance")
}

func parseVectorPair(x, y string) ([]float64, []float64, error) {
	a, err := dataset.ParseVectorString(x)
	if err != nil {
		return nil, nil, fmt.Errorf("first vector: %w", err)
	}
	b, err := dataset.ParseVectorString(y)
	if err != nil {
		return nil, nil, fmt.Errorf("second vector: %w", err)
	}
	return a, b, nil
}

func newDistanceCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "distance <x> <y>",
		Short: "Compute the distance between two comma separated vectors",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fn, name, err := a.distanceFunc(cmd)
			if err != nil {
				return err
			}
			x, y, err := parseVectorPair(args[0], args[1])
			if err != nil {
				return err
			}
			d, err := fn(x, y)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatFloat(d))
			return nil
		},
	}
	addMetricFlags(cmd)
	return cmd
}

func newCompareCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <x> <y>",
		Short: "Compute every metric between two comma separated vectors",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, y, err := parseVectorPair(args[0], args[1])
			if err != nil {
				return err
			}
			p := a.cfg.P
			if cmd.Flags().Changed("order") {
				if p, err = cmd.Flags().GetFloat64("order"); err != nil {
					return err
				}
			}
			for _, name := range core.Names() {
				fn := core.Distances[name]
				if name == "minkowski" {
					if fn, err = core.MinkowskiFunc(p); err != nil {
						return err
					}
				}
				d, err := fn(x, y)
				if err != nil {
					return fmt.Errorf("%s: %w", name, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", name, formatFloat(d))
			}
			return nil
		},
	}
	cmd.Flags().Float64P("order", "p", core.DefaultMinkowskiP, "Order of the Minkowski distance")
	return cmd
}

func newRandomCommand(a *app) *cobra.Command {
	var (
		count  int
		dim    int
		output string
	)
	cmd := &cobra.Command{
		Use:   "random",
		Short: "Generate random vectors as CSV (seeded by VDIST_SEED)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			name := a.cfg.Distribution
			if cmd.Flags().Changed("dist") {
				name, _ = cmd.Flags().GetString("dist")
			}
			dist, err := core.ParseDistribution(name)
			if err != nil {
				return err
			}
			vecs, err := core.RandomVectors(core.NewRand(), count, dim, dist)
			if err != nil {
				return err
			}

			if output != "" {
				err = dataset.WriteVectorsFile(output, vecs)
			} else {
				err = dataset.WriteVectors(cmd.OutOrStdout(), vecs)
			}
			if err != nil {
				return err
			}
			log.Info().Msgf("Generated %d %s vectors of dimension %d", count, dist, dim)
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 1, "Number of vectors to generate")
	cmd.Flags().IntVarP(&dim, "dim", "d", 3, "Dimension of each vector")
	cmd.Flags().String("dist", "uniform", "Random distribution [uniform,normal]")
	cmd.Flags().StringVarP(&output, "out", "o", "", "Output file (default stdout)")
	return cmd
}

func newMatrixCommand(a *app) *cobra.Command {
	var (
		workers    int
		progress   bool
		skipHeader bool
	)
	cmd := &cobra.Command{
		Use:   "matrix <file.csv>",
		Short: "Compute the pairwise distance matrix of the vectors in a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fn, name, err := a.distanceFunc(cmd)
			if err != nil {
				return err
			}
			vectors, err := dataset.ReadVectors(args[0], skipHeader)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("workers") {
				workers = a.cfg.Workers
			}
			matrix, err := dataset.PairwiseMatrix(cmd.Context(), vectors, fn, dataset.MatrixOptions{
				Workers:        workers,
				Progress:       progress,
				ProgressOutput: cmd.ErrOrStderr(),
			})
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			return dataset.WriteVectors(cmd.OutOrStdout(), matrix)
		},
	}
	addMetricFlags(cmd)
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Number of rows computed concurrently [0=auto]")
	cmd.Flags().BoolVar(&progress, "progress", false, "Show a progress bar")
	cmd.Flags().BoolVar(&skipHeader, "header", false, "Skip the first row of the CSV file")
	return cmd
}

func newNearestCommand(a *app) *cobra.Command {
	var (
		k          int
		skipHeader bool
	)
	cmd := &cobra.Command{
		Use:   "nearest <file.csv> <query>",
		Short: "Rank the vectors of a CSV file by distance to a query vector",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fn, name, err := a.distanceFunc(cmd)
			if err != nil {
				return err
			}
			vectors, err := dataset.ReadVectors(args[0], skipHeader)
			if err != nil {
				return err
			}
			query, err := dataset.ParseVectorString(args[1])
			if err != nil {
				return fmt.Errorf("query: %w", err)
			}
			neighbors, err := dataset.Nearest(query, vectors, k, fn)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			log.Debug().Msgf("Ranked %d of %d vectors by %s", len(neighbors), len(vectors), name)
			return dataset.WriteNeighbors(cmd.OutOrStdout(), neighbors)
		},
	}
	addMetricFlags(cmd)
	cmd.Flags().IntVarP(&k, "k", "k", 5, "Number of neighbors to return [0=all]")
	cmd.Flags().BoolVar(&skipHeader, "header", false, "Skip the first row of the CSV file")
	return cmd
}

func newCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   checkCommandName,
		Short: "Validate the runtime environment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := core.ValidateEnvironment()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "go:      %s %s/%s\n", report.GoVersion, report.GOOS, report.GOARCH)
			fmt.Fprintf(out, "cpus:    %d\n", report.NumCPU)
			fmt.Fprintf(out, "avx:     %t\n", report.HasAVX)
			fmt.Fprintf(out, "avx2:    %t\n", report.HasAVX2)
			fmt.Fprintf(out, "%s: %q\n", core.SeedEnv, report.Seed)
			fmt.Fprintf(out, "%s:  %q\n", core.LogEnv, report.LogMode)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, "environment OK")
			return nil
		},
	}
}

func formatFloat(v float64) string {
	return fmt.Sprintf("%.6g", v)
}
