package osm2gmns

import (
	"github.com/paulmach/orb"
)

/* Nodes stuff */

type NetworkNodeID int

// MAIN_NODE_NONE marks node which does not belong to any intersection group
const MAIN_NODE_NONE = -1

type NetworkNode struct {
	incomingLinks  []NetworkLinkID
	outcomingLinks []NetworkLinkID
	name           string
	osmHighway     string
	osmNodeID      string
	ID             NetworkNodeID
	mainNodeID     int
	controlType    ControlType
	geom           orb.Point
	geomEuclidean  orb.Point
}

// NewNetworkNode creates ungrouped node. Local (euclidean) coordinates are derived from lon/lat via EPSG:3857
func NewNetworkNode(id NetworkNodeID, osmNodeID string, controlType ControlType, geom orb.Point) *NetworkNode {
	if controlType != IS_SIGNAL {
		controlType = NOT_SIGNAL
	}
	node := NetworkNode{
		incomingLinks:  make([]NetworkLinkID, 0),
		outcomingLinks: make([]NetworkLinkID, 0),
		osmNodeID:      osmNodeID,
		ID:             id,
		mainNodeID:     MAIN_NODE_NONE,
		controlType:    controlType,
		geom:           geom,
		geomEuclidean:  pointToEuclidean(geom),
	}
	return &node
}

func (node *NetworkNode) MainNodeID() int {
	return node.mainNodeID
}

func (node *NetworkNode) IsGrouped() bool {
	return node.mainNodeID != MAIN_NODE_NONE
}

func (node *NetworkNode) ControlType() ControlType {
	return node.controlType
}

func (node *NetworkNode) IsSignal() bool {
	return node.controlType == IS_SIGNAL
}

func (node *NetworkNode) OSMNodeID() string {
	return node.osmNodeID
}

func (node *NetworkNode) OSMHighway() string {
	return node.osmHighway
}

func (node *NetworkNode) SetOSMHighway(highway string) {
	node.osmHighway = highway
}

func (node *NetworkNode) Name() string {
	return node.name
}

func (node *NetworkNode) SetName(name string) {
	node.name = name
}

func (node *NetworkNode) Geom() orb.Point {
	return node.geom
}

func (node *NetworkNode) GeomEuclidean() orb.Point {
	return node.geomEuclidean
}

// SetGeomEuclidean overrides derived local coordinates (e.g. when they are provided by source data)
func (node *NetworkNode) SetGeomEuclidean(pt orb.Point) {
	node.geomEuclidean = pt
}

// IncomingLinks returns copy of incoming links identifiers
func (node *NetworkNode) IncomingLinks() []NetworkLinkID {
	out := make([]NetworkLinkID, len(node.incomingLinks))
	copy(out, node.incomingLinks)
	return out
}

// OutcomingLinks returns copy of outcoming links identifiers
func (node *NetworkNode) OutcomingLinks() []NetworkLinkID {
	out := make([]NetworkLinkID, len(node.outcomingLinks))
	copy(out, node.outcomingLinks)
	return out
}
