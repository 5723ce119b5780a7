package scene

import (
	"fmt"
	"math/rand"

	"github.com/nlatsos/helios/types"
)

// MeshData holds the shared, immutable vertex and index buffers backing a
// triangle mesh. Positions are packed as 3 floats per vertex and Indices as
// 3 vertex indices per triangle; the buffers are never mutated once a mesh
// or triangle references them.
type MeshData struct {
	Positions []float32
	Indices   []uint32
}

// Get the number of triangles described by the index buffer.
func (md *MeshData) TriangleCount() int {
	return len(md.Indices) / 3
}

// Resolve the three vertex positions for the triangle at the given index.
func (md *MeshData) Triangle(index int) (a, b, c types.Vec3) {
	i0 := md.Indices[index*3] * 3
	i1 := md.Indices[index*3+1] * 3
	i2 := md.Indices[index*3+2] * 3
	a = types.XYZ(md.Positions[i0], md.Positions[i0+1], md.Positions[i0+2])
	b = types.XYZ(md.Positions[i1], md.Positions[i1+1], md.Positions[i1+2])
	c = types.XYZ(md.Positions[i2], md.Positions[i2+1], md.Positions[i2+2])
	return a, b, c
}

// Calculate the bounding box spanning every vertex referenced by the
// index buffer.
func (md *MeshData) BBox() AABB {
	box, _ := (&IndexedTriangle{Data: md, Index: 0}).BBox()
	for i := 1; i < md.TriangleCount(); i++ {
		triBox, _ := (&IndexedTriangle{Data: md, Index: i}).BBox()
		box = Surrounding(box, triBox)
	}
	return box
}

// A lightweight triangle that resolves its vertices from a shared mesh
// buffer. Many triangle values reference one read-only MeshData.
type IndexedTriangle struct {
	Index int
	Data  *MeshData

	// Material set at the mesh level; individual triangles carry none.
	Material Material
}

func (tr *IndexedTriangle) Intersect(ray *Ray, tMin, tMax float32) (RayHit, bool) {
	a, b, c := tr.Data.Triangle(tr.Index)
	t, u, v, normal, ok := intersectTriangle(a, b, c, ray, tMin, tMax)
	if !ok {
		return RayHit{}, false
	}

	hit := NewRayHit(t, normal, tr.Material, ray)
	hit.UV = types.XY(u, v)
	hit.HasUV = true
	return hit, true
}

func (tr *IndexedTriangle) BBox() (AABB, bool) {
	a, b, c := tr.Data.Triangle(tr.Index)
	return triangleBBox(a, b, c), true
}

// A triangle mesh backed by a BVH over its indexed triangles.
type Mesh struct {
	data     *MeshData
	material Material
	bvh      *Bvh
}

// Build a mesh over the given shared buffers. The rng drives the BVH
// builder's split axis selection.
func NewMesh(data *MeshData, material Material, rng *rand.Rand) (*Mesh, error) {
	if data.TriangleCount() == 0 {
		return nil, fmt.Errorf("mesh: no triangles in index buffer")
	}
	if len(data.Indices)%3 != 0 {
		return nil, fmt.Errorf("mesh: index buffer length %d is not a multiple of 3", len(data.Indices))
	}

	tris := make([]Intersectable, data.TriangleCount())
	for i := range tris {
		tris[i] = &IndexedTriangle{Index: i, Data: data}
	}

	return &Mesh{
		data:     data,
		material: material,
		bvh:      NewBvh(tris, rng),
	}, nil
}

// Get the shared buffers backing this mesh.
func (m *Mesh) Data() *MeshData {
	return m.data
}

// Intersect the mesh BVH; the mesh material overrides whatever the leaf
// triangles report.
func (m *Mesh) Intersect(ray *Ray, tMin, tMax float32) (RayHit, bool) {
	hit, ok := m.bvh.Intersect(ray, tMin, tMax)
	if !ok {
		return RayHit{}, false
	}
	hit.Material = m.material
	return hit, true
}

func (m *Mesh) BBox() (AABB, bool) {
	return m.bvh.BBox()
}
