package domain

import (
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Trade is a single execution contributing to a position.
type Trade struct {
	UID      UniqueID
	Security ExternalID
	Quantity float64
}

// Position is a holding in a security, aggregated from trades.
type Position struct {
	UID      UniqueID
	Security ExternalID
	Quantity float64
	Trades   []Trade
}

// PortfolioNode is one level of the portfolio aggregation tree.
type PortfolioNode struct {
	UID       UniqueID
	Name      string
	Children  []*PortfolioNode
	Positions []*Position
}

// Portfolio is a versioned aggregation tree of positions.
type Portfolio struct {
	UID  UniqueID
	Name string
	Root *PortfolioNode
}

// NodeEquivalenceMapper maps nodes of a previous portfolio tree onto a newly
// resolved tree by structural signature, so a recompiled tree with unchanged
// shape can reuse dependency nodes targeting the old unique ids. Signatures
// cover the node name, child signatures and position object ids; versions are
// deliberately excluded so a pure version bump still maps.
type NodeEquivalenceMapper struct {
	// bySignature holds the new tree's nodes keyed by structural signature.
	// Each signature maps to a queue: duplicated subtrees map pairwise in
	// pre-order.
	bySignature map[uint64][]*PortfolioNode
	mapped      map[UniqueID]UniqueID
}

// NewNodeEquivalenceMapper indexes the new tree for lookups.
func NewNodeEquivalenceMapper(newRoot *PortfolioNode) *NodeEquivalenceMapper {
	m := &NodeEquivalenceMapper{
		bySignature: make(map[uint64][]*PortfolioNode),
		mapped:      make(map[UniqueID]UniqueID),
	}
	if newRoot != nil {
		m.index(newRoot)
	}
	return m
}

func (m *NodeEquivalenceMapper) index(node *PortfolioNode) {
	for _, child := range node.Children {
		m.index(child)
	}
	sig := signature(node)
	m.bySignature[sig] = append(m.bySignature[sig], node)
}

func putUint64(b []byte, v uint64) {
	for i := range 8 {
		b[i] = byte(v >> (8 * i))
	}
}

func signature(node *PortfolioNode) uint64 {
	h := xxhash.New()
	_, _ = h.WriteString(node.Name)
	_, _ = h.WriteString("\x00")
	for _, child := range node.Children {
		var buf [8]byte
		putUint64(buf[:], signature(child))
		_, _ = h.Write(buf[:])
	}
	ids := make([]string, 0, len(node.Positions))
	for _, p := range node.Positions {
		ids = append(ids, p.UID.ObjectID().String())
	}
	sort.Strings(ids)
	_, _ = h.WriteString(strings.Join(ids, "\x00"))
	return h.Sum64()
}

// Map returns the unique id of the new tree's node structurally equivalent to
// the given previous node, consuming one candidate per call so duplicated
// subtrees map one-to-one. The second return is false when no unconsumed
// equivalent exists.
func (m *NodeEquivalenceMapper) Map(previous *PortfolioNode) (UniqueID, bool) {
	if mapped, ok := m.mapped[previous.UID]; ok {
		return mapped, true
	}
	sig := signature(previous)
	queue := m.bySignature[sig]
	if len(queue) == 0 {
		return UniqueID{}, false
	}
	candidate := queue[0]
	m.bySignature[sig] = queue[1:]
	m.mapped[previous.UID] = candidate.UID
	// Mapping a node maps its whole subtree pairwise.
	m.mapSubtree(previous, candidate)
	return candidate.UID, true
}

func (m *NodeEquivalenceMapper) mapSubtree(prev, next *PortfolioNode) {
	for i, child := range prev.Children {
		if i >= len(next.Children) {
			return
		}
		m.mapped[child.UID] = next.Children[i].UID
		m.consume(next.Children[i])
		m.mapSubtree(child, next.Children[i])
	}
}

func (m *NodeEquivalenceMapper) consume(node *PortfolioNode) {
	sig := signature(node)
	queue := m.bySignature[sig]
	for i, candidate := range queue {
		if candidate == node {
			m.bySignature[sig] = append(queue[:i:i], queue[i+1:]...)
			return
		}
	}
}

// FindUnmapped walks a portfolio tree in pre-order and collects the object ids
// of nodes and positions the mapper never matched. When the same position
// appears under several nodes, the first visit decides: a position is reported
// at most once and only if its first pre-order occurrence was unmapped.
func (m *NodeEquivalenceMapper) FindUnmapped(root *PortfolioNode) map[ObjectID]struct{} {
	unmapped := make(map[ObjectID]struct{})
	seen := make(map[ObjectID]struct{})
	m.findUnmapped(root, unmapped, seen)
	return unmapped
}

func (m *NodeEquivalenceMapper) findUnmapped(node *PortfolioNode, unmapped, seen map[ObjectID]struct{}) {
	nodeMapped := false
	if _, ok := m.mapped[node.UID]; ok {
		nodeMapped = true
	}
	if !nodeMapped {
		unmapped[node.UID.ObjectID()] = struct{}{}
	}
	for _, p := range node.Positions {
		oid := p.UID.ObjectID()
		if _, ok := seen[oid]; ok {
			continue
		}
		seen[oid] = struct{}{}
		if !nodeMapped {
			unmapped[oid] = struct{}{}
		}
	}
	for _, child := range node.Children {
		m.findUnmapped(child, unmapped, seen)
	}
}
