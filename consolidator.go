package osm2gmns

import (
	"fmt"

	"github.com/charmbracelet/log"
)

const (
	DEFAULT_INT_BUFFER       = 20.0
	DEFAULT_LONLAT_PRECISION = 7
	DEFAULT_LOCAL_PRECISION  = 2
)

// IntersectionConsolidator merges groups of nodes (sharing the same main node ID) into single nodes
type IntersectionConsolidator struct {
	logger          *log.Logger
	intBuffer       float64
	lonlatPrecision int
	localPrecision  int
	autoIdentify    bool
	verbose         bool
}

func (consolidator *IntersectionConsolidator) String() string {
	return fmt.Sprintf(`
Complex intersections consolidation parameters:
	auto_identify: %t
	int_buffer: %f
	lonlat_coord_precision: %d
	local_coord_precision: %d
	verbose: %t
	`,
		consolidator.autoIdentify,
		consolidator.intBuffer,
		consolidator.lonlatPrecision,
		consolidator.localPrecision,
		consolidator.verbose,
	)
}

func NewIntersectionConsolidator(options ...func(*IntersectionConsolidator)) *IntersectionConsolidator {
	consolidator := &IntersectionConsolidator{
		logger:          log.Default(),
		intBuffer:       DEFAULT_INT_BUFFER,
		lonlatPrecision: DEFAULT_LONLAT_PRECISION,
		localPrecision:  DEFAULT_LOCAL_PRECISION,
		autoIdentify:    false,
		verbose:         false,
	}
	for _, option := range options {
		option(consolidator)
	}
	return consolidator
}

// WithAutoIdentify enables detection of complex intersections before consolidation.
// Otherwise only main node IDs provided by source data are used
func WithAutoIdentify(autoIdentify bool) func(*IntersectionConsolidator) {
	return func(consolidator *IntersectionConsolidator) {
		consolidator.autoIdentify = autoIdentify
	}
}

// WithIntBuffer sets max length of link (meters) between two signalized nodes of the same intersection
func WithIntBuffer(intBuffer float64) func(*IntersectionConsolidator) {
	return func(consolidator *IntersectionConsolidator) {
		consolidator.intBuffer = intBuffer
	}
}

func WithLonLatPrecision(precision int) func(*IntersectionConsolidator) {
	return func(consolidator *IntersectionConsolidator) {
		consolidator.lonlatPrecision = precision
	}
}

func WithLocalPrecision(precision int) func(*IntersectionConsolidator) {
	return func(consolidator *IntersectionConsolidator) {
		consolidator.localPrecision = precision
	}
}

func WithVerbose(verbose bool) func(*IntersectionConsolidator) {
	return func(consolidator *IntersectionConsolidator) {
		consolidator.verbose = verbose
	}
}

func WithLogger(logger *log.Logger) func(*IntersectionConsolidator) {
	return func(consolidator *IntersectionConsolidator) {
		if logger != nil {
			consolidator.logger = logger
		}
	}
}

// ConsolidateComplexIntersections merges every complex intersection of the network into a single node
func ConsolidateComplexIntersections(net *NetworkMacroscopic, options ...func(*IntersectionConsolidator)) {
	NewIntersectionConsolidator(options...).Consolidate(net)
}
