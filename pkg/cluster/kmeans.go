package cluster

import (
	"math"
	"math/rand/v2"
)

type run struct {
	labels  []int
	centers [][]float64
	inertia float64
	iters   int
}

func sqDist(a, b []float64) float64 {
	var s float64
	for i := range a {
		d := a[i] - b[i]
		s += d * d
	}
	return s
}

func nearest(p []float64, centers [][]float64) (int, float64) {
	best, bestD := 0, math.Inf(1)
	for c, ctr := range centers {
		if d := sqDist(p, ctr); d < bestD {
			best, bestD = c, d
		}
	}
	return best, bestD
}

// seedPlusPlus picks k initial centres with k-means++ sampling.
func seedPlusPlus(x [][]float64, k int, rng *rand.Rand) [][]float64 {
	centers := make([][]float64, 0, k)
	centers = append(centers, clone(x[rng.IntN(len(x))]))

	dist := make([]float64, len(x))
	for len(centers) < k {
		var sum float64
		for i, p := range x {
			_, d := nearest(p, centers)
			dist[i] = d
			sum += d
		}
		if sum == 0 {
			centers = append(centers, clone(x[rng.IntN(len(x))]))
			continue
		}
		target := rng.Float64() * sum
		pick := len(x) - 1
		for i, d := range dist {
			target -= d
			if target < 0 {
				pick = i
				break
			}
		}
		centers = append(centers, clone(x[pick]))
	}
	return centers
}

// tolerance scales Tol by the mean column variance of x.
func tolerance(x [][]float64) float64 {
	cols := len(x[0])
	var total float64
	for j := 0; j < cols; j++ {
		var m, v float64
		for _, row := range x {
			m += row[j]
		}
		m /= float64(len(x))
		for _, row := range x {
			d := row[j] - m
			v += d * d
		}
		total += v / float64(len(x))
	}
	return Tol * total / float64(cols)
}

func kmeans(x [][]float64, k int, rng *rand.Rand) run {
	centers := seedPlusPlus(x, k, rng)
	labels := make([]int, len(x))
	tol := tolerance(x)

	iters := 0
	for iters < MaxIter {
		iters++
		for i, p := range x {
			labels[i], _ = nearest(p, centers)
		}
		fillEmpty(x, centers, labels, k)
		next := means(x, labels, k)

		var shift float64
		for c := range centers {
			shift += sqDist(centers[c], next[c])
		}
		centers = next
		if shift <= tol {
			break
		}
	}

	for i, p := range x {
		labels[i], _ = nearest(p, centers)
	}
	fillEmpty(x, centers, labels, k)
	centers = means(x, labels, k)

	var inertia float64
	for i, p := range x {
		inertia += sqDist(p, centers[labels[i]])
	}
	return run{labels: labels, centers: centers, inertia: inertia, iters: iters}
}

// fillEmpty moves, for every empty cluster, the point farthest from its own
// centre out of a cluster that has more than one member. With at least k
// points every label ends up used.
func fillEmpty(x [][]float64, centers [][]float64, labels []int, k int) {
	counts := make([]int, k)
	for _, l := range labels {
		counts[l]++
	}
	for c := 0; c < k; c++ {
		if counts[c] > 0 {
			continue
		}
		far, farD := -1, -1.0
		for i, p := range x {
			if counts[labels[i]] < 2 {
				continue
			}
			if d := sqDist(p, centers[labels[i]]); d > farD {
				far, farD = i, d
			}
		}
		if far < 0 {
			return
		}
		counts[labels[far]]--
		labels[far] = c
		counts[c]++
		centers[c] = clone(x[far])
	}
}

func means(x [][]float64, labels []int, k int) [][]float64 {
	cols := len(x[0])
	out := make([][]float64, k)
	counts := make([]int, k)
	for c := range out {
		out[c] = make([]float64, cols)
	}
	for i, p := range x {
		l := labels[i]
		counts[l]++
		for j, v := range p {
			out[l][j] += v
		}
	}
	for c := range out {
		if counts[c] == 0 {
			continue
		}
		for j := range out[c] {
			out[c][j] /= float64(counts[c])
		}
	}
	return out
}

func clone(p []float64) []float64 {
	out := make([]float64, len(p))
	copy(out, p)
	return out
}
