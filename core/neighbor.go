package core

// Neighbor holds a vector's id and its computed distance to a query.
type Neighbor struct {
	ID       int
	Distance float64
}
