package dataset

import (
	"fmt"
	"io"
	"sort"

	"github.com/patrikhermansson/vdist/core"
)

// Nearest ranks every vector by its distance to query and returns the k
// closest, nearest first. Ties are broken by row id. A k that is not positive
// or exceeds the number of vectors returns every row.
func Nearest(query []float64, vectors [][]float64, k int, distance core.DistanceFunc) ([]core.Neighbor, error) {
	neighbors := make([]core.Neighbor, 0, len(vectors))
	for id, vec := range vectors {
		d, err := distance(query, vec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", id, err)
		}
		neighbors = append(neighbors, core.Neighbor{ID: id, Distance: d})
	}

	sort.SliceStable(neighbors, func(i, j int) bool {
		return neighbors[i].Distance < neighbors[j].Distance
	})
	if k > 0 && k < len(neighbors) {
		neighbors = neighbors[:k]
	}
	return neighbors, nil
}

// WriteNeighbors writes one "<id>\t<distance>" line per neighbor to w.
func WriteNeighbors(w io.Writer, neighbors []core.Neighbor) error {
	for _, n := range neighbors {
		if _, err := fmt.Fprintf(w, "%d\t%.6g\n", n.ID, n.Distance); err != nil {
			return fmt.Errorf("write neighbor %d: %w", n.ID, err)
		}
	}
	return nil
}
