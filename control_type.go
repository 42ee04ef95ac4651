package osm2gmns

import (
	"strings"
)

type ControlType uint16

const (
	NOT_SIGNAL = ControlType(iota + 1)
	IS_SIGNAL
)

func (iotaIdx ControlType) String() string {
	return [...]string{"common", "signal"}[iotaIdx-1]
}

// parseControlType treats everything except "signal" as common node
func parseControlType(s string) ControlType {
	if strings.ToLower(strings.TrimSpace(s)) == "signal" {
		return IS_SIGNAL
	}
	return NOT_SIGNAL
}
