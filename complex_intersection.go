package osm2gmns

import (
	"strings"
	"time"

	"github.com/paulmach/orb"
)

// nodesSet is a candidate group of nodes belonging to the same intersection
type nodesSet map[NetworkNodeID]struct{}

func (set nodesSet) intersects(other nodesSet) bool {
	small, large := set, other
	if len(small) > len(large) {
		small, large = large, small
	}
	for nodeID := range small {
		if _, ok := large[nodeID]; ok {
			return true
		}
	}
	return false
}

func (set nodesSet) update(other nodesSet) {
	for nodeID := range other {
		set[nodeID] = struct{}{}
	}
}

// identifyComplexIntersections assigns the same main node ID to signalized nodes connected by links not longer than intBuffer.
//
// Only signalized nodes are checked: there are too many short links in OSM data and pure distance rule would produce false intersections.
// Nodes which already have main node ID are ignored.
// Returns number of detected groups
func identifyComplexIntersections(net *NetworkMacroscopic, intBuffer float64) int {
	groups := []nodesSet{}
	groupStatus := []bool{}
	for _, linkID := range net.SortedLinkIDs() {
		link := net.links[linkID]
		if link.lengthMeters > intBuffer {
			continue
		}
		sourceNode, okSource := net.nodes[link.sourceNodeID]
		targetNode, okTarget := net.nodes[link.targetNodeID]
		if !okSource || !okTarget {
			continue
		}
		if sourceNode.IsGrouped() || targetNode.IsGrouped() {
			continue
		}
		if !sourceNode.IsSignal() || !targetNode.IsSignal() {
			continue
		}
		groups = append(groups, nodesSet{sourceNode.ID: {}, targetNode.ID: {}})
		groupStatus = append(groupStatus, true)
	}

	validGroupsNum := len(groups)
	for {
		for i, group := range groups {
			if !groupStatus[i] {
				continue
			}
			for j, other := range groups {
				if i == j || !groupStatus[j] {
					continue
				}
				if group.intersects(other) {
					group.update(other)
					groupStatus[j] = false
				}
			}
		}
		newValidGroupsNum := 0
		for _, valid := range groupStatus {
			if valid {
				newValidGroupsNum++
			}
		}
		if newValidGroupsNum == validGroupsNum {
			break
		}
		validGroupsNum = newValidGroupsNum
	}

	maxMainNodeID := net.maxMainNodeID
	for i, group := range groups {
		if !groupStatus[i] {
			continue
		}
		for nodeID := range group {
			net.nodes[nodeID].mainNodeID = maxMainNodeID
		}
		maxMainNodeID++
	}
	net.maxMainNodeID = maxMainNodeID
	return validGroupsNum
}

// intersectionGroup is a set of nodes sharing the same main node ID (nodes are kept in first-seen order)
type intersectionGroup struct {
	mainNodeID int
	nodes      []NetworkNodeID
	members    map[NetworkNodeID]struct{}
	isSignal   bool
}

func (group *intersectionGroup) contains(nodeID NetworkNodeID) bool {
	_, ok := group.members[nodeID]
	return ok
}

// collectIntersectionGroups partitions grouped nodes by main node ID. Groups are ordered by their first member
func collectIntersectionGroups(net *NetworkMacroscopic) []*intersectionGroup {
	groups := []*intersectionGroup{}
	groupsIndex := make(map[int]*intersectionGroup)
	for _, nodeID := range net.SortedNodeIDs() {
		node := net.nodes[nodeID]
		if !node.IsGrouped() {
			continue
		}
		group, ok := groupsIndex[node.mainNodeID]
		if !ok {
			group = &intersectionGroup{
				mainNodeID: node.mainNodeID,
				nodes:      []NetworkNodeID{},
				members:    make(map[NetworkNodeID]struct{}),
			}
			groupsIndex[node.mainNodeID] = group
			groups = append(groups, group)
		}
		group.nodes = append(group.nodes, nodeID)
		group.members[nodeID] = struct{}{}
		if node.IsSignal() {
			group.isSignal = true
		}
	}
	return groups
}

// ConsolidationStats summarizes single consolidation pass
type ConsolidationStats struct {
	DetectedGroups     int
	ConsolidatedGroups int
	NodesCreated       int
	NodesRemoved       int
	LinksRemoved       int
}

// Consolidate merges every group of nodes which have the same main node ID into a new single node.
// Links between members of the same group are removed, all other links are rewired to the new node.
func (consolidator *IntersectionConsolidator) Consolidate(net *NetworkMacroscopic) ConsolidationStats {
	stats := ConsolidationStats{}
	st := time.Now()
	if consolidator.autoIdentify {
		stats.DetectedGroups = identifyComplexIntersections(net, consolidator.intBuffer)
		consolidator.logger.Debug("Complex intersections identified", "groups", stats.DetectedGroups, "int_buffer", consolidator.intBuffer)
	}

	if consolidator.verbose {
		consolidator.logger.Info("Consolidating complex intersections")
	}

	removalNodes := make(map[NetworkNodeID]struct{})
	removalLinks := make(map[NetworkLinkID]struct{})

	for _, group := range collectIntersectionGroups(net) {
		if len(group.nodes) < 2 {
			continue
		}
		newNode := consolidator.mergeGroup(net, group, removalNodes, removalLinks)
		net.nodes[newNode.ID] = newNode
		net.maxNodeID++
		stats.ConsolidatedGroups++
		stats.NodesCreated++
	}

	for nodeID := range removalNodes {
		delete(net.nodes, nodeID)
	}
	for linkID := range removalLinks {
		delete(net.links, linkID)
	}
	stats.NodesRemoved = len(removalNodes)
	stats.LinksRemoved = len(removalLinks)

	if consolidator.verbose {
		consolidator.logger.Info("Done consolidating complex intersections",
			"groups", stats.ConsolidatedGroups,
			"nodes_removed", stats.NodesRemoved,
			"links_removed", stats.LinksRemoved,
			"elapsed", time.Since(st),
		)
	}
	return stats
}

// mergeGroup builds replacement node for the group and rewires external links to it
func (consolidator *IntersectionConsolidator) mergeGroup(net *NetworkMacroscopic, group *intersectionGroup, removalNodes map[NetworkNodeID]struct{}, removalLinks map[NetworkLinkID]struct{}) *NetworkNode {
	newNode := &NetworkNode{
		incomingLinks:  make([]NetworkLinkID, 0),
		outcomingLinks: make([]NetworkLinkID, 0),
		ID:             net.maxNodeID,
		mainNodeID:     group.mainNodeID,
		controlType:    NOT_SIGNAL,
	}
	if group.isSignal {
		newNode.controlType = IS_SIGNAL
	}

	osmNodeIDs := make([]string, 0, len(group.nodes))
	xSum, ySum := 0.0, 0.0
	xLocalSum, yLocalSum := 0.0, 0.0

	for _, nodeID := range group.nodes {
		node := net.nodes[nodeID]
		removalNodes[nodeID] = struct{}{}
		osmNodeIDs = append(osmNodeIDs, node.osmNodeID)
		xSum += node.geom.X()
		ySum += node.geom.Y()
		xLocalSum += node.geomEuclidean.X()
		yLocalSum += node.geomEuclidean.Y()

		for _, linkID := range node.incomingLinks {
			link, ok := net.links[linkID]
			if !ok {
				continue
			}
			if group.contains(link.sourceNodeID) {
				removalLinks[linkID] = struct{}{}
				continue
			}
			link.targetNodeID = newNode.ID
			newNode.incomingLinks = append(newNode.incomingLinks, linkID)
		}
		for _, linkID := range node.outcomingLinks {
			link, ok := net.links[linkID]
			if !ok {
				continue
			}
			if group.contains(link.targetNodeID) {
				removalLinks[linkID] = struct{}{}
				continue
			}
			link.sourceNodeID = newNode.ID
			newNode.outcomingLinks = append(newNode.outcomingLinks, linkID)
		}

		// Last member wins
		newNode.osmHighway = node.osmHighway
	}

	newNode.osmNodeID = strings.Join(osmNodeIDs, "_")
	n := float64(len(group.nodes))
	newNode.geom = orb.Point{
		roundTo(xSum/n, consolidator.lonlatPrecision),
		roundTo(ySum/n, consolidator.lonlatPrecision),
	}
	newNode.geomEuclidean = orb.Point{
		roundTo(xLocalSum/n, consolidator.localPrecision),
		roundTo(yLocalSum/n, consolidator.localPrecision),
	}
	return newNode
}
