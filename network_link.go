package osm2gmns

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

/* Links stuff */
type NetworkLinkID int

type NetworkLink struct {
	name         string
	osmWayID     string
	linkType     string
	geom         orb.LineString
	lengthMeters float64
	freeSpeed    float64
	capacity     int
	lanes        int
	ID           NetworkLinkID
	sourceNodeID NetworkNodeID
	targetNodeID NetworkNodeID
}

// NewNetworkLink creates link between two nodes. Negative length means "evaluate from geometry"
func NewNetworkLink(id NetworkLinkID, sourceNodeID, targetNodeID NetworkNodeID, lengthMeters float64, geom orb.LineString) *NetworkLink {
	link := NetworkLink{
		geom:         geom,
		lengthMeters: lengthMeters,
		freeSpeed:    -1.0,
		capacity:     -1,
		lanes:        -1,
		ID:           id,
		sourceNodeID: sourceNodeID,
		targetNodeID: targetNodeID,
	}
	if link.lengthMeters < 0 && len(geom) >= 2 {
		link.lengthMeters = geo.LengthHaversign(geom)
	}
	return &link
}

func (link *NetworkLink) SourceNodeID() NetworkNodeID {
	return link.sourceNodeID
}

func (link *NetworkLink) TargetNodeID() NetworkNodeID {
	return link.targetNodeID
}

func (link *NetworkLink) LengthMeters() float64 {
	return link.lengthMeters
}

func (link *NetworkLink) Geom() orb.LineString {
	return link.geom
}

func (link *NetworkLink) Name() string {
	return link.name
}

func (link *NetworkLink) OSMWayID() string {
	return link.osmWayID
}

func (link *NetworkLink) LinkType() string {
	return link.linkType
}

func (link *NetworkLink) GetLanes() int {
	return link.lanes
}

func (link *NetworkLink) FreeSpeed() float64 {
	return link.freeSpeed
}

func (link *NetworkLink) Capacity() int {
	return link.capacity
}

// SetAttributes sets descriptive attributes which are not used by topology processing
func (link *NetworkLink) SetAttributes(name, osmWayID, linkType string, lanes int, freeSpeed float64, capacity int) {
	link.name = name
	link.osmWayID = osmWayID
	link.linkType = linkType
	link.lanes = lanes
	link.freeSpeed = freeSpeed
	link.capacity = capacity
}
