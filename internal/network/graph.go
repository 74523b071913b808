// backend-go/internal/network/graph.go
package network

import (
	"github.com/andresuchdata/liquor-replenish/backend-go/internal/domain"
)

// Graph holds the static distillery→depot and depot→retail relations.
// Adjacency lists are deduplicated at build time, so a shop reachable
// through multiple edges counts once; child order is first-seen edge
// order.
type Graph struct {
	depotsByDistillery map[string][]string
	shopsByDepot       map[string][]string
}

func NewGraph(distilleryEdges, depotEdges []domain.Edge) *Graph {
	return &Graph{
		depotsByDistillery: buildAdjacency(distilleryEdges),
		shopsByDepot:       buildAdjacency(depotEdges),
	}
}

func buildAdjacency(edges []domain.Edge) map[string][]string {
	adjacency := make(map[string][]string)
	seen := make(map[domain.Edge]struct{})
	for _, e := range edges {
		if _, ok := seen[e]; ok {
			continue
		}
		seen[e] = struct{}{}
		adjacency[e.From] = append(adjacency[e.From], e.To)
	}
	return adjacency
}

// Depots resolves the depots one hop below a distillery. A distillery
// with no outgoing edges yields domain.ErrNoDepots.
func (g *Graph) Depots(distilleryID string) ([]string, error) {
	depots := g.depotsByDistillery[distilleryID]
	if len(depots) == 0 {
		return nil, domain.ErrNoDepots
	}
	return append([]string(nil), depots...), nil
}

// RetailShops resolves the union of retail shops one hop below the
// given depots, deduplicated across depots in first-seen order. An
// empty union yields domain.ErrNoRetailShops.
func (g *Graph) RetailShops(depotIDs ...string) ([]string, error) {
	seen := make(map[string]struct{})
	var shops []string
	for _, depot := range depotIDs {
		for _, shop := range g.shopsByDepot[depot] {
			if _, ok := seen[shop]; ok {
				continue
			}
			seen[shop] = struct{}{}
			shops = append(shops, shop)
		}
	}
	if len(shops) == 0 {
		return nil, domain.ErrNoRetailShops
	}
	return shops, nil
}
