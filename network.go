package osm2gmns

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/paulmach/orb/geo"
	"github.com/pkg/errors"
)

// NetworkMacroscopic is a registry of nodes and links. Nodes and links refer to each other by identifiers only
type NetworkMacroscopic struct {
	links         map[NetworkLinkID]*NetworkLink
	nodes         map[NetworkNodeID]*NetworkNode
	maxNodeID     NetworkNodeID
	maxLinkID     NetworkLinkID
	maxMainNodeID int
}

func NewNetworkMacroscopic() *NetworkMacroscopic {
	return &NetworkMacroscopic{
		links: make(map[NetworkLinkID]*NetworkLink),
		nodes: make(map[NetworkNodeID]*NetworkNode),
	}
}

// AddNode registers node. Counters for new identifiers are kept ahead of every registered identifier
func (net *NetworkMacroscopic) AddNode(node *NetworkNode) error {
	if node == nil {
		return errors.New("Can't add nil node")
	}
	if _, ok := net.nodes[node.ID]; ok {
		return errors.Errorf("Node %d already exists", node.ID)
	}
	net.nodes[node.ID] = node
	if node.ID >= net.maxNodeID {
		net.maxNodeID = node.ID + 1
	}
	if node.mainNodeID >= net.maxMainNodeID {
		net.maxMainNodeID = node.mainNodeID + 1
	}
	return nil
}

// AddLink registers link and attaches it to its endpoints. Both endpoints must be registered already
func (net *NetworkMacroscopic) AddLink(link *NetworkLink) error {
	if link == nil {
		return errors.New("Can't add nil link")
	}
	if _, ok := net.links[link.ID]; ok {
		return errors.Errorf("Link %d already exists", link.ID)
	}
	sourceNode, ok := net.nodes[link.sourceNodeID]
	if !ok {
		return errors.Errorf("No source node %d for link %d", link.sourceNodeID, link.ID)
	}
	targetNode, ok := net.nodes[link.targetNodeID]
	if !ok {
		return errors.Errorf("No target node %d for link %d", link.targetNodeID, link.ID)
	}
	if len(link.geom) < 2 {
		link.geom = orb.LineString{sourceNode.geom, targetNode.geom}
	}
	if link.lengthMeters < 0 {
		link.lengthMeters = geo.LengthHaversign(link.geom)
	}
	net.links[link.ID] = link
	sourceNode.outcomingLinks = append(sourceNode.outcomingLinks, link.ID)
	targetNode.incomingLinks = append(targetNode.incomingLinks, link.ID)
	if link.ID >= net.maxLinkID {
		net.maxLinkID = link.ID + 1
	}
	return nil
}

// SetMainNodeID assigns node to intersection group. Group of node can't be changed once assigned
func (net *NetworkMacroscopic) SetMainNodeID(nodeID NetworkNodeID, mainNodeID int) error {
	node, ok := net.nodes[nodeID]
	if !ok {
		return errors.Errorf("No such node %d", nodeID)
	}
	if mainNodeID < 0 {
		return errors.Errorf("Bad main node ID %d for node %d", mainNodeID, nodeID)
	}
	if node.mainNodeID != MAIN_NODE_NONE && node.mainNodeID != mainNodeID {
		return errors.Errorf("Node %d already belongs to group %d", nodeID, node.mainNodeID)
	}
	node.mainNodeID = mainNodeID
	if mainNodeID >= net.maxMainNodeID {
		net.maxMainNodeID = mainNodeID + 1
	}
	return nil
}

func (net *NetworkMacroscopic) Node(id NetworkNodeID) (*NetworkNode, bool) {
	node, ok := net.nodes[id]
	return node, ok
}

func (net *NetworkMacroscopic) Link(id NetworkLinkID) (*NetworkLink, bool) {
	link, ok := net.links[id]
	return link, ok
}

func (net *NetworkMacroscopic) NodesNum() int {
	return len(net.nodes)
}

func (net *NetworkMacroscopic) LinksNum() int {
	return len(net.links)
}

// MaxNodeID returns identifier which will be given to the next created node
func (net *NetworkMacroscopic) MaxNodeID() NetworkNodeID {
	return net.maxNodeID
}

// MaxMainNodeID returns identifier which will be given to the next detected intersection group
func (net *NetworkMacroscopic) MaxMainNodeID() int {
	return net.maxMainNodeID
}

// SortedNodeIDs returns nodes identifiers in ascending order
func (net *NetworkMacroscopic) SortedNodeIDs() []NetworkNodeID {
	ids := make([]NetworkNodeID, 0, len(net.nodes))
	for id := range net.nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i] < ids[j]
	})
	return ids
}

// SortedLinkIDs returns links identifiers in ascending order
func (net *NetworkMacroscopic) SortedLinkIDs() []NetworkLinkID {
	ids := make([]NetworkLinkID, 0, len(net.links))
	for id := range net.links {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i] < ids[j]
	})
	return ids
}

// ExportToCSV writes nodes and links into '<fname>_nodes.csv' and '<fname>_links.csv'
func (net *NetworkMacroscopic) ExportToCSV(fname string, comma rune) error {

	fnameParts := strings.Split(fname, ".csv")
	fnameNodes := fnameParts[0] + "_nodes.csv"
	fnameLinks := fnameParts[0] + "_links.csv"

	err := net.exportNodesToCSV(fnameNodes, comma)
	if err != nil {
		return errors.Wrap(err, "Can't export nodes")
	}

	err = net.exportLinksToCSV(fnameLinks, comma)
	if err != nil {
		return errors.Wrap(err, "Can't export links")
	}

	return nil
}

func (net *NetworkMacroscopic) exportLinksToCSV(fname string, comma rune) error {
	file, err := os.Create(fname)
	if err != nil {
		return errors.Wrap(err, "Can't create file")
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()
	writer.Comma = comma

	err = writer.Write(linkColumns)
	if err != nil {
		return errors.Wrap(err, "Can't write header")
	}

	for _, linkID := range net.SortedLinkIDs() {
		link := net.links[linkID]
		err = writer.Write([]string{
			fmt.Sprintf("%d", link.ID),
			link.name,
			link.osmWayID,
			fmt.Sprintf("%d", link.sourceNodeID),
			fmt.Sprintf("%d", link.targetNodeID),
			fmt.Sprintf("%f", link.lengthMeters),
			fmt.Sprintf("%d", link.lanes),
			fmt.Sprintf("%f", link.freeSpeed),
			fmt.Sprintf("%d", link.capacity),
			link.linkType,
			wkt.MarshalString(link.geom),
		})
		if err != nil {
			return errors.Wrap(err, "Can't write link")
		}
	}
	return writer.Error()
}

func (net *NetworkMacroscopic) exportNodesToCSV(fname string, comma rune) error {
	file, err := os.Create(fname)
	if err != nil {
		return errors.Wrap(err, "Can't create file")
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()
	writer.Comma = comma

	err = writer.Write(nodeColumns)
	if err != nil {
		return errors.Wrap(err, "Can't write header")
	}

	for _, nodeID := range net.SortedNodeIDs() {
		node := net.nodes[nodeID]
		mainNodeID := ""
		if node.IsGrouped() {
			mainNodeID = fmt.Sprintf("%d", node.mainNodeID)
		}
		err = writer.Write([]string{
			fmt.Sprintf("%d", node.ID),
			node.name,
			node.osmNodeID,
			node.osmHighway,
			node.controlType.String(),
			mainNodeID,
			formatFloat(node.geom.Lon()),
			formatFloat(node.geom.Lat()),
			formatFloat(node.geomEuclidean.X()),
			formatFloat(node.geomEuclidean.Y()),
		})
		if err != nil {
			return errors.Wrap(err, "Can't write node")
		}
	}
	return writer.Error()
}
