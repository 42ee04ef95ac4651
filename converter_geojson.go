package osm2gmns

import (
	"os"

	geojson "github.com/paulmach/go.geojson"
	"github.com/pkg/errors"
)

// ToGeoJSON returns network as collection of features: nodes as points and links as linestrings
func (net *NetworkMacroscopic) ToGeoJSON() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, nodeID := range net.SortedNodeIDs() {
		node := net.nodes[nodeID]
		feature := geojson.NewPointFeature([]float64{node.geom.Lon(), node.geom.Lat()})
		feature.ID = int(node.ID)
		feature.SetProperty("node_id", int(node.ID))
		feature.SetProperty("osm_node_id", node.osmNodeID)
		feature.SetProperty("osm_highway", node.osmHighway)
		feature.SetProperty("ctrl_type", node.controlType.String())
		if node.IsGrouped() {
			feature.SetProperty("main_node_id", node.mainNodeID)
		}
		fc.AddFeature(feature)
	}
	for _, linkID := range net.SortedLinkIDs() {
		link := net.links[linkID]
		pts := make([][]float64, len(link.geom))
		for i, pt := range link.geom {
			pts[i] = []float64{pt.Lon(), pt.Lat()}
		}
		feature := geojson.NewLineStringFeature(pts)
		feature.ID = int(link.ID)
		feature.SetProperty("link_id", int(link.ID))
		feature.SetProperty("from_node_id", int(link.sourceNodeID))
		feature.SetProperty("to_node_id", int(link.targetNodeID))
		feature.SetProperty("length", link.lengthMeters)
		fc.AddFeature(feature)
	}
	return fc
}

// ExportToGeoJSON writes network into GeoJSON file
func (net *NetworkMacroscopic) ExportToGeoJSON(fname string) error {
	b, err := net.ToGeoJSON().MarshalJSON()
	if err != nil {
		return errors.Wrap(err, "Can't marshal network to GeoJSON")
	}
	err = os.WriteFile(fname, b, 0644)
	if err != nil {
		return errors.Wrap(err, "Can't write GeoJSON file")
	}
	return nil
}
