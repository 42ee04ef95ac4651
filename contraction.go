package osm2gmns

import (
	"github.com/LdDl/ch"
	"github.com/pkg/errors"
)

// ToContractionGraph builds routing graph with links lengths (meters) as weights.
// Contraction hierarchies are not prepared here: call PrepareContractionHierarchies() on result when needed
func (net *NetworkMacroscopic) ToContractionGraph() (*ch.Graph, error) {
	graph := ch.Graph{}
	for _, nodeID := range net.SortedNodeIDs() {
		err := graph.CreateVertex(int64(nodeID))
		if err != nil {
			return nil, errors.Wrapf(err, "Can not create vertex %d", nodeID)
		}
	}
	for _, linkID := range net.SortedLinkIDs() {
		link := net.links[linkID]
		err := graph.AddEdge(int64(link.sourceNodeID), int64(link.targetNodeID), link.lengthMeters)
		if err != nil {
			return nil, errors.Wrapf(err, "Can not add link %d as edge", linkID)
		}
	}
	return &graph, nil
}
