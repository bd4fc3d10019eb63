package gosieraster

import (
	"fmt"
	"strings"

	"github.com/fogleman/fauxgl"
)

// STL, OBJ and PLY are decoded by fauxgl and copied into a Buffer that goes
// through the same centering, sorting and normal pass as DXF.

type stlImporter struct{}

func (stlImporter) CanLoad(ext string) bool { return strings.EqualFold(ext, ".stl") }

func (stlImporter) Load(fileName string) (*Buffer, error) {
	return loadFauxglMesh(fileName, fauxgl.LoadSTL)
}

type objImporter struct{}

func (objImporter) CanLoad(ext string) bool { return strings.EqualFold(ext, ".obj") }

func (objImporter) Load(fileName string) (*Buffer, error) {
	return loadFauxglMesh(fileName, fauxgl.LoadOBJ)
}

type plyImporter struct{}

func (plyImporter) CanLoad(ext string) bool { return strings.EqualFold(ext, ".ply") }

func (plyImporter) Load(fileName string) (*Buffer, error) {
	return loadFauxglMesh(fileName, fauxgl.LoadPLY)
}

func loadFauxglMesh(fileName string, load func(string) (*fauxgl.Mesh, error)) (*Buffer, error) {
	mesh, err := load(fileName)
	if err != nil {
		return nil, fmt.Errorf("could not load mesh %s: %w", fileName, err)
	}

	buf := BufferFromMesh(mesh)
	buf.CenterToOrigin()
	buf.SortByDepth()
	buf.ComputeTriangleNormals()
	return buf, nil
}

// BufferFromMesh copies the triangle positions of mesh. Normals are left
// zero.
func BufferFromMesh(mesh *fauxgl.Mesh) *Buffer {
	buf := NewBufferWithCapacity(len(mesh.Triangles) * 3)
	for _, t := range mesh.Triangles {
		buf.AddTriangle(fromFauxgl(t.V1.Position), fromFauxgl(t.V2.Position), fromFauxgl(t.V3.Position))
	}
	return buf
}

func fromFauxgl(v fauxgl.Vector) Vector {
	return Vector{X: v.X, Y: v.Y, Z: v.Z}
}
