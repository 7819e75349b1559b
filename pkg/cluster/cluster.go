// Package cluster groups authors by behavioural similarity using
// standardized features and seeded k-means.
package cluster

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/OFFIS-RIT/chatlens/pkg/features"
)

const (
	MinK = 2
	MaxK = 20

	// Inits is the number of independent k-means runs; the run with the
	// lowest inertia wins.
	Inits   = 10
	MaxIter = 300
	Tol     = 1e-4
)

var (
	ErrInvalidK      = fmt.Errorf("cluster count must be between %d and %d", MinK, MaxK)
	ErrInvalidSeed   = errors.New("seed must not be negative")
	ErrTooFewAuthors = errors.New("cluster count exceeds number of authors")
	ErrNoFeatures    = errors.New("no feature columns to cluster on")
)

// Assignment maps every author to a cluster label in [0, K).
type Assignment struct {
	K          int
	Labels     map[string]int
	Inertia    float64
	Iterations int
	// Centroids are expressed in standardized feature space.
	Centroids [][]float64
	// Scaler maps centroids back to feature units.
	Scaler Scaler
}

// Label returns the cluster label of author.
func (a Assignment) Label(author string) (int, bool) {
	l, ok := a.Labels[author]
	return l, ok
}

// Sizes returns the number of authors per label.
func (a Assignment) Sizes() []int {
	sizes := make([]int, a.K)
	for _, l := range a.Labels {
		sizes[l]++
	}
	return sizes
}

// Center returns the centroid of label in the units of the clustered
// feature columns.
func (a Assignment) Center(label int) []float64 {
	return a.Scaler.Inverse(a.Centroids[label])
}

// Assign clusters the authors of table on features.ClusterColumns.
func Assign(table features.Table, k int, seed int64) (Assignment, error) {
	return AssignColumns(table, features.ClusterColumns, k, seed)
}

// AssignColumns clusters the authors of table on the given columns. The same
// table, k and seed always produce the same labels.
func AssignColumns(table features.Table, columns []features.Column, k int, seed int64) (Assignment, error) {
	if k < MinK || k > MaxK {
		return Assignment{}, fmt.Errorf("%w, got %d", ErrInvalidK, k)
	}
	if seed < 0 {
		return Assignment{}, fmt.Errorf("%w, got %d", ErrInvalidSeed, seed)
	}
	if len(columns) == 0 {
		return Assignment{}, ErrNoFeatures
	}
	if k > len(table) {
		return Assignment{}, fmt.Errorf("%w: k=%d, authors=%d", ErrTooFewAuthors, k, len(table))
	}

	z, scaler := Standardize(table.Matrix(columns))
	rng := rand.New(rand.NewPCG(uint64(seed), 0x9e3779b97f4a7c15))

	var best run
	for i := 0; i < Inits; i++ {
		r := kmeans(z, k, rng)
		if i == 0 || r.inertia < best.inertia {
			best = r
		}
	}

	labels := make(map[string]int, len(table))
	for i, v := range table {
		labels[v.Author] = best.labels[i]
	}
	return Assignment{
		K:          k,
		Labels:     labels,
		Inertia:    best.inertia,
		Iterations: best.iters,
		Centroids:  best.centers,
		Scaler:     scaler,
	}, nil
}
