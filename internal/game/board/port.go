package board

import "github.com/lukev/catan_server/internal/models"

// PortType is either "generic" (3:1 on anything) or a single resource
// (2:1 on that resource).
type PortType string

const PortGeneric PortType = "generic"

// Port is a coastal edge with a fixed position and a seed-randomized type.
type Port struct {
	Edge Edge     `json:"edge"`
	Type PortType `json:"type"`
}

// portTypePool returns the fixed multiset of port types assigned to the 9
// fixed port edges: 4 generic, one each of the 5 resources.
func portTypePool() []PortType {
	pool := make([]PortType, 0, 9)
	for i := 0; i < 4; i++ {
		pool = append(pool, PortGeneric)
	}
	for _, r := range models.ResourceTypes {
		pool = append(pool, PortType(r))
	}
	return pool
}

// OtherHex returns the hex on the far side of an edge from e.Hex.
func (e Edge) OtherHex() Hex {
	switch e.Dir {
	case EdgeNE:
		return e.Hex.Neighbor(DirNE)
	case EdgeE:
		return e.Hex.Neighbor(DirE)
	default: // EdgeSE
		return e.Hex.Neighbor(DirSE)
	}
}

// FixedPortEdges returns the 9 board-shape-fixed coastal edges that carry
// ports, in a stable deterministic order. Positions never depend on seed;
// only the type assigned to each position does.
func FixedPortEdges() []Edge {
	t := GetTables()
	center := Hex{}
	ring := center.Ring(BoardRadius)

	seen := make(map[string]bool)
	var boundary []Edge
	for _, h := range ring {
		for _, e := range HexEdges(h) {
			if seen[e.Key()] {
				continue
			}
			if t.IsOnBoard(e.OtherHex()) {
				continue
			}
			seen[e.Key()] = true
			boundary = append(boundary, e)
		}
	}

	const portCount = 9
	step := float64(len(boundary)) / float64(portCount)
	out := make([]Edge, 0, portCount)
	for i := 0; i < portCount; i++ {
		idx := int(float64(i) * step)
		if idx >= len(boundary) {
			idx = len(boundary) - 1
		}
		out = append(out, boundary[idx])
	}
	return out
}
