package scene

import (
	"math/rand"
	"sort"

	"github.com/nlatsos/helios/types"
)

// Bvh nodes are stored in a flat arena and comprise two Vec3 bounds plus
// two multipurpose int32 fields whose meaning depends on the node type:
//
//   - interior nodes: LData/RData are both > 0 and index the L/R children
//   - leaf nodes: LData is <= 0 and -LData indexes the partitioned primitive
type BvhNode struct {
	Min   types.Vec3
	LData int32

	Max   types.Vec3
	RData int32
}

// True if the node holds a primitive instead of child indices.
func (n *BvhNode) Leaf() bool {
	return n.LData <= 0
}

// Set bounding box.
func (n *BvhNode) SetBBox(box AABB) {
	n.Min = box.Min
	n.Max = box.Max
}

// Get bounding box.
func (n *BvhNode) BBox() AABB {
	return AABB{Min: n.Min, Max: n.Max}
}

// Set left and right child node indices.
func (n *BvhNode) SetChildNodes(left, right uint32) {
	n.LData = int32(left)
	n.RData = int32(right)
}

// Set partitioned primitive index.
func (n *BvhNode) SetPrimitive(index uint32) {
	n.LData = -int32(index)
}

// Get partitioned primitive index.
func (n *BvhNode) Primitive() uint32 {
	return uint32(-n.LData)
}

// A bounding volume hierarchy over a set of primitives. Nodes live in a
// contiguous arena addressed by index; the tree is immutable once built.
type Bvh struct {
	nodes []BvhNode
	prims []Intersectable
}

// Construct a BVH over the given primitives. Every primitive must be
// bounded; unbounded primitives (e.g. planes) must stay out of the tree.
//
// Partitioning sorts each work range by box minimum along a randomly
// chosen axis and splits at the median index. The rng makes the axis
// choice injectable so builds can be reproduced.
func NewBvh(prims []Intersectable, rng *rand.Rand) *Bvh {
	b := &Bvh{}
	if len(prims) == 0 {
		return b
	}

	// Copy so concurrent builders never reorder a caller-owned slice.
	b.prims = make([]Intersectable, len(prims))
	copy(b.prims, prims)
	b.nodes = make([]BvhNode, 0, 2*len(prims)-1)

	b.partition(0, len(b.prims), rng)
	return b
}

// Partition the [start, end) primitive range and return the arena index of
// the subtree root.
func (b *Bvh) partition(start, end int, rng *rand.Rand) uint32 {
	if end-start == 1 {
		var node BvhNode
		if box, ok := b.prims[start].BBox(); ok {
			node.SetBBox(box)
		}
		node.SetPrimitive(uint32(start))

		nodeIndex := len(b.nodes)
		b.nodes = append(b.nodes, node)
		return uint32(nodeIndex)
	}

	// Sort range by box minimum along a random axis and split at the
	// median index.
	axis := rng.Intn(3)
	work := b.prims[start:end]
	sort.Slice(work, func(i, j int) bool {
		bi, _ := work[i].BBox()
		bj, _ := work[j].BBox()
		return bi.Min[axis] < bj.Min[axis]
	})
	mid := start + (end-start)/2

	// Reserve the node slot before descending so children always land at
	// higher arena indices.
	nodeIndex := len(b.nodes)
	b.nodes = append(b.nodes, BvhNode{})

	left := b.partition(start, mid, rng)
	right := b.partition(mid, end, rng)

	node := &b.nodes[nodeIndex]
	node.SetChildNodes(left, right)
	node.SetBBox(Surrounding(b.nodes[left].BBox(), b.nodes[right].BBox()))

	return uint32(nodeIndex)
}

// Intersect the ray against the tree, returning the closest hit.
func (b *Bvh) Intersect(ray *Ray, tMin, tMax float32) (RayHit, bool) {
	if len(b.nodes) == 0 {
		return RayHit{}, false
	}
	return b.intersectNode(0, ray, tMin, tMax)
}

func (b *Bvh) intersectNode(index uint32, ray *Ray, tMin, tMax float32) (RayHit, bool) {
	node := &b.nodes[index]

	// Leafs delegate straight to their primitive.
	if node.Leaf() {
		return b.prims[node.Primitive()].Intersect(ray, tMin, tMax)
	}

	if !node.BBox().IntersectedBy(ray, tMin, tMax) {
		return RayHit{}, false
	}

	// Descend left first; a left hit tightens the range for the right
	// subtree so farther hits get pruned.
	leftHit, leftOk := b.intersectNode(uint32(node.LData), ray, tMin, tMax)
	if leftOk {
		if rightHit, rightOk := b.intersectNode(uint32(node.RData), ray, tMin, leftHit.Distance); rightOk {
			return rightHit, true
		}
		return leftHit, true
	}

	return b.intersectNode(uint32(node.RData), ray, tMin, tMax)
}

// Get the bounding box for the tree root.
func (b *Bvh) BBox() (AABB, bool) {
	if len(b.nodes) == 0 {
		return AABB{}, false
	}
	return b.nodes[0].BBox(), true
}

// Walk the arena collecting structural counts.
func (b *Bvh) stats() (nodes, leafs, maxDepth int) {
	if len(b.nodes) == 0 {
		return 0, 0, 0
	}
	b.collectStats(0, 0, &nodes, &leafs, &maxDepth)
	return nodes, leafs, maxDepth
}

func (b *Bvh) collectStats(index uint32, depth int, nodes, leafs, maxDepth *int) {
	*nodes++
	if depth > *maxDepth {
		*maxDepth = depth
	}

	node := &b.nodes[index]
	if node.Leaf() {
		*leafs++
		return
	}

	b.collectStats(uint32(node.LData), depth+1, nodes, leafs, maxDepth)
	b.collectStats(uint32(node.RData), depth+1, nodes, leafs, maxDepth)
}
