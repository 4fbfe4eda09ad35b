package imbens

import (
	"math/rand"
	"testing"
)

// generateImbalancedData builds n rows in dims dimensions with roughly one
// minority row for every four majority rows, in two well-separated blobs.
func generateImbalancedData(n, dims int) ([][]float64, []int) {
	rng := rand.New(rand.NewSource(42))
	features := make([][]float64, n)
	labels := make([]int, n)
	for i := range features {
		center := 0.0
		if i%5 == 0 {
			labels[i] = 1
			center = 50
		}
		row := make([]float64, dims)
		for j := range row {
			row[j] = center + rng.Float64()*10
		}
		features[i] = row
	}
	return features, labels
}

func generateFlatData(n, dims int) []float64 {
	rng := rand.New(rand.NewSource(42))
	data := make([]float64, n*dims)
	for i := range data {
		data[i] = rng.Float64() * 100
	}
	return data
}

// --- Spatial index construction ---

func benchKDTreeBuild(b *testing.B, n int) {
	b.Helper()
	dims := 2
	data := generateFlatData(n, dims)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		newKDTree(data, n, dims, EuclideanMetric{}, 40)
	}
}

func BenchmarkKDTreeBuild_100(b *testing.B)  { benchKDTreeBuild(b, 100) }
func BenchmarkKDTreeBuild_1000(b *testing.B) { benchKDTreeBuild(b, 1000) }

func benchBallTreeBuild(b *testing.B, n int) {
	b.Helper()
	dims := 2
	data := generateFlatData(n, dims)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		newBallTree(data, n, dims, EuclideanMetric{}, 40)
	}
}

func BenchmarkBallTreeBuild_100(b *testing.B)  { benchBallTreeBuild(b, 100) }
func BenchmarkBallTreeBuild_1000(b *testing.B) { benchBallTreeBuild(b, 1000) }

// --- Spatial index search ---

func benchSearcher(b *testing.B, build func(data []float64, n, dims int) neighborSearcher, n int) {
	b.Helper()
	dims := 2
	data := generateFlatData(n, dims)
	index := build(data, n, dims)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for q := 0; q < n; q++ {
			index.search(data[q*dims:(q+1)*dims], 5)
		}
	}
}

func BenchmarkKDTreeSearch_1000(b *testing.B) {
	benchSearcher(b, func(data []float64, n, dims int) neighborSearcher {
		return newKDTree(data, n, dims, EuclideanMetric{}, 40)
	}, 1000)
}

func BenchmarkBallTreeSearch_1000(b *testing.B) {
	benchSearcher(b, func(data []float64, n, dims int) neighborSearcher {
		return newBallTree(data, n, dims, EuclideanMetric{}, 40)
	}, 1000)
}

func BenchmarkBruteSearch_1000(b *testing.B) {
	benchSearcher(b, func(data []float64, n, dims int) neighborSearcher {
		return newBruteIndex(data, n, dims, EuclideanMetric{})
	}, 1000)
}

// --- Classifier ---

func benchKNNFit(b *testing.B, n int) {
	b.Helper()
	features, labels := generateImbalancedData(n, 2)
	clf := NewKNeighborsClassifier(DefaultKNNConfig())
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := clf.Fit(features, labels); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkKNNFit_100(b *testing.B)  { benchKNNFit(b, 100) }
func BenchmarkKNNFit_1000(b *testing.B) { benchKNNFit(b, 1000) }

func benchKNNPredict(b *testing.B, n int) {
	b.Helper()
	features, labels := generateImbalancedData(n, 2)
	cfg := DefaultKNNConfig()
	cfg.NumNeighbors = 5
	clf := NewKNeighborsClassifier(cfg)
	if err := clf.Fit(features, labels); err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := clf.Predict(features); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkKNNPredict_100(b *testing.B)  { benchKNNPredict(b, 100) }
func BenchmarkKNNPredict_500(b *testing.B)  { benchKNNPredict(b, 500) }
func BenchmarkKNNPredict_1000(b *testing.B) { benchKNNPredict(b, 1000) }

// --- Full resampling run ---

func benchResample(b *testing.B, n int) {
	b.Helper()
	features, labels := generateImbalancedData(n, 2)
	cfg := DefaultConfig()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := Resample(features, labels, cfg)
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkResample_100(b *testing.B)  { benchResample(b, 100) }
func BenchmarkResample_500(b *testing.B)  { benchResample(b, 500) }
func BenchmarkResample_1000(b *testing.B) { benchResample(b, 1000) }
