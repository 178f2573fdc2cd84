package lightlab

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

type AssetId string

// MeshAsset is an indexed triangle list with per-vertex normals.
type MeshAsset struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	Indices   []uint32
}

func (m *MeshAsset) Triangles() int {
	return len(m.Indices) / 3
}

type AssetServer struct {
	meshes map[AssetId]*MeshAsset
}

type AssetServerModule struct{}

func (AssetServerModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(NewAssetServer())
}

func NewAssetServer() *AssetServer {
	return &AssetServer{meshes: make(map[AssetId]*MeshAsset)}
}

func (server *AssetServer) CreateMesh(mesh *MeshAsset) (AssetId, error) {
	if len(mesh.Positions) != len(mesh.Normals) {
		return "", fmt.Errorf("mesh has %d positions but %d normals", len(mesh.Positions), len(mesh.Normals))
	}
	if len(mesh.Indices)%3 != 0 {
		return "", fmt.Errorf("mesh index count %d is not a multiple of 3", len(mesh.Indices))
	}
	for _, idx := range mesh.Indices {
		if int(idx) >= len(mesh.Positions) {
			return "", fmt.Errorf("mesh index %d out of range (%d vertices)", idx, len(mesh.Positions))
		}
	}
	id := makeAssetId()
	server.meshes[id] = mesh
	return id, nil
}

func (server *AssetServer) Mesh(id AssetId) (*MeshAsset, bool) {
	m, ok := server.meshes[id]
	return m, ok
}

func makeAssetId() AssetId {
	return AssetId(uuid.NewString())
}

// NewPlaneGeometry builds a width x height quad in the XY plane facing +Z.
func NewPlaneGeometry(width, height float32) *MeshAsset {
	hw, hh := width/2, height/2
	n := mgl32.Vec3{0, 0, 1}
	return &MeshAsset{
		Positions: []mgl32.Vec3{{-hw, hh, 0}, {hw, hh, 0}, {-hw, -hh, 0}, {hw, -hh, 0}},
		Normals:   []mgl32.Vec3{n, n, n, n},
		Indices:   []uint32{0, 2, 1, 2, 3, 1},
	}
}

// NewSphereGeometry builds a UV sphere centered at the origin.
func NewSphereGeometry(radius float32, widthSegments, heightSegments int) *MeshAsset {
	widthSegments = max(widthSegments, 3)
	heightSegments = max(heightSegments, 2)

	mesh := &MeshAsset{}
	grid := make([][]uint32, heightSegments+1)
	var index uint32
	for iy := 0; iy <= heightSegments; iy++ {
		v := float64(iy) / float64(heightSegments)
		row := make([]uint32, widthSegments+1)
		for ix := 0; ix <= widthSegments; ix++ {
			u := float64(ix) / float64(widthSegments)
			n := mgl32.Vec3{
				float32(-math.Cos(u*2*math.Pi) * math.Sin(v*math.Pi)),
				float32(math.Cos(v * math.Pi)),
				float32(math.Sin(u*2*math.Pi) * math.Sin(v*math.Pi)),
			}
			mesh.Positions = append(mesh.Positions, n.Mul(radius))
			mesh.Normals = append(mesh.Normals, n)
			row[ix] = index
			index++
		}
		grid[iy] = row
	}

	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := grid[iy][ix+1]
			b := grid[iy][ix]
			c := grid[iy+1][ix]
			d := grid[iy+1][ix+1]
			if iy != 0 {
				mesh.Indices = append(mesh.Indices, a, b, d)
			}
			if iy != heightSegments-1 {
				mesh.Indices = append(mesh.Indices, b, c, d)
			}
		}
	}
	return mesh
}
