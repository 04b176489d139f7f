// Package rank scores candidate factory anchors within a region against
// each product the available deposits can feed, producing an ordered
// list the connect search tries in order.
package rank

import (
	"math"

	"github.com/dshills/profitsolve/internal/board"
	"github.com/dshills/profitsolve/internal/distmap"
	"github.com/dshills/profitsolve/internal/geom"
	"github.com/dshills/profitsolve/internal/region"
)

// epsilon widens a degenerate (all-equal) score range so normalization
// never divides by zero.
const epsilon = 0.001

// DepositIdx indexes into a ProductStats' DepositStats slice.
type DepositIdx struct {
	Idx int
}

// DepositStats describes one region deposit's contribution to a product.
type DepositStats struct {
	ID           board.ID
	ResourceType uint8
	Resources    uint16
	Weight       float64
}

// Score holds a factory candidate's four normalized component scores.
type Score struct {
	Dist        float64
	Middle      float64
	Weighted    float64
	MaxProducts float64
}

// Sum returns the unweighted total used to rank candidates.
func (s Score) Sum() float64 { return s.Dist + s.Middle + s.Weighted + s.MaxProducts }

// FactoryStats is one candidate anchor position within a region, scored
// against a single product.
type FactoryStats struct {
	Pos             geom.Pos
	Score           Score
	DepositsInReach []DepositIdx
}

// ProductStats ranks every viable factory anchor in a region for one
// product, best first.
type ProductStats struct {
	ProductType  uint8
	MaxPoints    uint32
	DepositStats []DepositStats
	FactoryStats []FactoryStats
}

// RegionStats ranks every product a region's deposits can feed, best
// (highest MaxPoints) first.
type RegionStats struct {
	ProductStats []ProductStats
}

type weightedDist struct {
	dist, weighted float64
}

// Rank scores every product/anchor combination for every region, in the
// order regions appear in regions. A region with no viable product is
// omitted.
func Rank(scene *board.Scene, regions *region.Regions, deposits map[board.ID]*distmap.Map) []RegionStats {
	out := make([]RegionStats, 0, regions.Len())
	for i := 0; i < regions.Len(); i++ {
		rs, ok := rankRegion(scene, regions.Get(i), deposits)
		if ok {
			out = append(out, rs)
		}
	}
	return out
}

func rankRegion(scene *board.Scene, reg region.Region, deposits map[board.ID]*distmap.Map) (RegionStats, bool) {
	var available geom.Resources
	for _, id := range reg.Deposits {
		b := scene.Buildings.Get(id)
		if b == nil || b.Kind != board.KindDeposit {
			continue
		}
		available.Values[b.ResourceType] += b.DepositResources()
	}

	var products []ProductStats
	for i, product := range scene.Products {
		ps, ok := rankProduct(scene, reg, deposits, available, uint8(i), product)
		if ok {
			products = append(products, ps)
		}
	}
	if len(products) == 0 {
		return RegionStats{}, false
	}

	sortProductStatsByMaxPoints(products)
	return RegionStats{ProductStats: products}, true
}

func rankProduct(scene *board.Scene, reg region.Region, deposits map[board.ID]*distmap.Map, available geom.Resources, productType uint8, product geom.Product) (ProductStats, bool) {
	if product.Points == 0 {
		return ProductStats{}, false
	}
	if !available.HasAtLeast(product.Resources) {
		return ProductStats{}, false
	}
	maxPoints := product.Points * uint32(available.Div(product.Resources).Min())

	depositStats := buildDepositStats(scene, reg, product)
	if len(depositStats) == 0 {
		return ProductStats{}, false
	}

	factoryStats := buildFactoryStats(scene, reg, deposits, depositStats, available, product)

	normalizeScores(factoryStats)
	sortFactoryStatsByScore(factoryStats)

	return ProductStats{
		ProductType:  productType,
		MaxPoints:    maxPoints,
		DepositStats: depositStats,
		FactoryStats: factoryStats,
	}, true
}

func buildDepositStats(scene *board.Scene, reg region.Region, product geom.Product) []DepositStats {
	var out []DepositStats
	for _, id := range reg.Deposits {
		b := scene.Buildings.Get(id)
		if b == nil || b.Kind != board.KindDeposit {
			continue
		}
		needed := product.Resources.Values[b.ResourceType]
		if needed == 0 {
			continue
		}
		resources := b.DepositResources()
		weight := float64(needed) * float64(resources)
		out = append(out, DepositStats{ID: id, ResourceType: b.ResourceType, Resources: resources, Weight: weight})
	}
	return out
}

func buildFactoryStats(scene *board.Scene, reg region.Region, deposits map[board.ID]*distmap.Map, depositStats []DepositStats, available geom.Resources, product geom.Product) []FactoryStats {
	var out []FactoryStats

	for _, anchor := range reg.Cells {
		if !factoryFits(scene, anchor) {
			continue
		}

		var max, min, sum weightedDist
		min.dist, min.weighted = math.MaxFloat64, math.MaxFloat64
		resourcesInReach := available
		var depositsInReach []DepositIdx
		blocked := false

		for idx, ds := range depositStats {
			m := deposits[ds.ID]
			dist := perimeterMinDistance(m, anchor)
			fdist := float64(dist)
			weighted := ds.Weight / (fdist + 1.0)

			max.dist = math.Max(max.dist, fdist)
			max.weighted = math.Max(max.dist, weighted) // matches original's max.dist comparison
			min.dist = math.Min(min.dist, fdist)
			min.weighted = math.Min(min.dist, weighted)
			sum.dist += fdist
			sum.weighted += weighted

			switch {
			case dist == 0:
				blocked = true
			case dist/4+2 < scene.Turns:
				depositsInReach = append(depositsInReach, DepositIdx{Idx: idx})
			default:
				resourcesInReach.Values[ds.ResourceType] -= ds.Resources
			}
			if blocked {
				break
			}
		}
		if blocked {
			continue
		}
		if !resourcesInReach.HasAtLeast(product.Resources) {
			continue
		}

		n := float64(len(depositStats))
		avgDist := sum.dist / n
		avgWeighted := sum.weighted / n
		maxProducts := float64(resourcesInReach.Div(product.Resources).Min())

		score := Score{
			Dist:        1.0 / math.Log(avgDist+1.0) * math.Log(max.dist+1.0),
			Middle:      1.0 / math.Log(math.Abs(max.dist-min.dist)+1000.0),
			Weighted:    avgWeighted * math.Log(max.weighted+1.0),
			MaxProducts: 1.0 / math.Log(maxProducts+2.0),
		}

		out = append(out, FactoryStats{Pos: anchor, Score: score, DepositsInReach: depositsInReach})
	}

	return out
}

func factoryFits(scene *board.Scene, anchor geom.Pos) bool {
	for y := uint8(0); y < geom.FactorySize; y++ {
		for x := uint8(0); x < geom.FactorySize; x++ {
			p := anchor.Off(int8(x), int8(y))
			cell, inBounds := scene.Grid.At(p)
			if !inBounds {
				return false
			}
			if cell != nil {
				return false
			}
		}
	}
	return true
}

// perimeterMinDistance returns the smallest mapped distance over the
// factory footprint's perimeter cells, or uint32(MaxUint16) if none were
// reached.
func perimeterMinDistance(m *distmap.Map, anchor geom.Pos) uint32 {
	const unreached = math.MaxUint16
	dist := uint32(unreached)
	const sz = geom.FactorySize

	for i := uint8(0); i < sz; i++ {
		if d, ok := m.At(anchor.Off(int8(i), 0)); ok && uint32(d) < dist {
			dist = uint32(d)
		}
	}
	for i := uint8(1); i < sz-1; i++ {
		if d, ok := m.At(anchor.Off(0, int8(i))); ok && uint32(d) < dist {
			dist = uint32(d)
		}
		if d, ok := m.At(anchor.Off(sz-1, int8(i))); ok && uint32(d) < dist {
			dist = uint32(d)
		}
	}
	for i := uint8(0); i < sz; i++ {
		if d, ok := m.At(anchor.Off(int8(i), sz-1)); ok && uint32(d) < dist {
			dist = uint32(d)
		}
	}
	return dist
}

func normalizeScores(stats []FactoryStats) {
	if len(stats) == 0 {
		return
	}
	minS := Score{Dist: math.MaxFloat64, Middle: math.MaxFloat64, Weighted: math.MaxFloat64, MaxProducts: math.MaxFloat64}
	maxS := Score{}
	for _, s := range stats {
		minS.Dist = math.Min(minS.Dist, s.Score.Dist)
		minS.Middle = math.Min(minS.Middle, s.Score.Middle)
		minS.Weighted = math.Min(minS.Weighted, s.Score.Weighted)
		minS.MaxProducts = math.Min(minS.MaxProducts, s.Score.MaxProducts)
		maxS.Dist = math.Max(maxS.Dist, s.Score.Dist)
		maxS.Middle = math.Max(maxS.Middle, s.Score.Middle)
		maxS.Weighted = math.Max(maxS.Weighted, s.Score.Weighted)
		maxS.MaxProducts = math.Max(maxS.MaxProducts, s.Score.MaxProducts)
	}
	maxS.Dist += epsilon
	maxS.Middle += epsilon
	maxS.Weighted += epsilon
	maxS.MaxProducts += epsilon

	for i := range stats {
		s := &stats[i].Score
		s.Dist = (s.Dist - minS.Dist) / (maxS.Dist - minS.Dist)
		s.Middle = (s.Middle - minS.Middle) / (maxS.Middle - minS.Middle)
		s.Weighted = (s.Weighted - minS.Weighted) / (maxS.Weighted - minS.Weighted)
		s.MaxProducts = (s.MaxProducts - minS.MaxProducts) / (maxS.MaxProducts - minS.MaxProducts)
	}
}

func sortFactoryStatsByScore(stats []FactoryStats) {
	// insertion sort: regions hold at most a few hundred candidates, and
	// a stable, allocation-free sort keeps ties in discovery order.
	for i := 1; i < len(stats); i++ {
		for j := i; j > 0 && stats[j].Score.Sum() > stats[j-1].Score.Sum(); j-- {
			stats[j], stats[j-1] = stats[j-1], stats[j]
		}
	}
}

func sortProductStatsByMaxPoints(stats []ProductStats) {
	for i := 1; i < len(stats); i++ {
		for j := i; j > 0 && stats[j].MaxPoints > stats[j-1].MaxPoints; j-- {
			stats[j], stats[j-1] = stats[j-1], stats[j]
		}
	}
}
