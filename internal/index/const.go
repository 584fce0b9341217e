package index

import "fmt"

// SpaceType is the distance metric used to rank neighbors.
type SpaceType string

const (
	L2Space  SpaceType = "l2"
	IPSpace  SpaceType = "ip"
	CosSpace SpaceType = "cos"
)

// ParseSpace validates a metric name from configuration.
func ParseSpace(name string) (SpaceType, error) {
	switch s := SpaceType(name); s {
	case L2Space, IPSpace, CosSpace:
		return s, nil
	default:
		return "", fmt.Errorf("unknown space type %q", name)
	}
}
