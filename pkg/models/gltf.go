package models

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"
	"path/filepath"

	"github.com/qmuntal/gltf"

	"github.com/taigrr/softrast/pkg/logging"
	"github.com/taigrr/softrast/pkg/math3d"
)

// LoadGLB loads a binary glTF (.glb) file.
func LoadGLB(path string) (*Mesh, error) {
	return LoadGLTF(path)
}

// LoadGLTF loads a glTF or GLB file. Every triangle primitive of every mesh
// is merged into one Mesh; node transforms are not applied. Faces take the
// base color factor of their material, and the first image in the file
// becomes the mesh texture.
func LoadGLTF(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	mesh := NewMesh(filepath.Base(path))
	for _, m := range doc.Meshes {
		if err := processMesh(doc, m, mesh); err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}
	if err := mesh.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	mesh.Texture = firstImage(doc, filepath.Dir(path))
	mesh.toLeftHanded()
	mesh.CalculateBounds()
	return mesh, nil
}

// processMesh extracts geometry from a glTF mesh.
func processMesh(doc *gltf.Document, m *gltf.Mesh, mesh *Mesh) error {
	for i, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			logging.Logger().Warn("skipping non-triangle primitive", "mesh", m.Name, "primitive", i, "mode", prim.Mode)
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			logging.Logger().Warn("skipping primitive without positions", "mesh", m.Name, "primitive", i)
			continue
		}
		positions, err := readVec3Accessor(doc, posIdx)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		var uvs []math3d.Vec2
		if uvIdx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
			uvs, err = readVec2Accessor(doc, uvIdx)
			if err != nil {
				return fmt.Errorf("read uvs: %w", err)
			}
		}

		// Base vertex index for this primitive
		baseVertex := len(mesh.Vertices)
		for i := range positions {
			v := Vertex{Position: positions[i]}
			if i < len(uvs) {
				// glTF puts UV (0, 0) at the top-left, matching the texture layout.
				v.UV = uvs[i]
			}
			mesh.Vertices = append(mesh.Vertices, v)
		}

		var indices []int
		if prim.Indices != nil {
			indices, err = readIndices(doc, *prim.Indices)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
		} else {
			// No indices, assume sequential triangles
			indices = make([]int, len(positions))
			for i := range indices {
				indices[i] = i
			}
		}

		c := materialColor(doc, prim.Material)
		for i := 0; i+2 < len(indices); i += 3 {
			f := Face{Color: c}
			for j := range 3 {
				f.V[j] = baseVertex + indices[i+j]
				if idx := f.V[j]; idx >= 0 && idx < len(mesh.Vertices) {
					f.UV[j] = mesh.Vertices[idx].UV
				}
			}
			mesh.Faces = append(mesh.Faces, f)
		}
	}

	return nil
}

// materialColor returns the base color factor of material idx as a flat
// face color, or DefaultColor.
func materialColor(doc *gltf.Document, idx *int) color.RGBA {
	if idx == nil || *idx < 0 || *idx >= len(doc.Materials) {
		return DefaultColor
	}
	pbr := doc.Materials[*idx].PBRMetallicRoughness
	if pbr == nil || pbr.BaseColorFactor == nil {
		return DefaultColor
	}
	f := *pbr.BaseColorFactor
	return color.RGBA{
		R: unitToByte(float64(f[0])),
		G: unitToByte(float64(f[1])),
		B: unitToByte(float64(f[2])),
		A: unitToByte(float64(f[3])),
	}
}

func unitToByte(x float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, x)) * 255))
}

// readVec3Accessor reads Vec3 data from a glTF accessor.
func readVec3Accessor(doc *gltf.Document, accessorIdx int) ([]math3d.Vec3, error) {
	floats, err := readFloatAccessor(doc, accessorIdx, gltf.AccessorVec3, 3)
	if err != nil {
		return nil, err
	}
	result := make([]math3d.Vec3, len(floats)/3)
	for i := range result {
		result[i] = math3d.V3(floats[i*3], floats[i*3+1], floats[i*3+2])
	}
	return result, nil
}

// readVec2Accessor reads Vec2 data from a glTF accessor.
func readVec2Accessor(doc *gltf.Document, accessorIdx int) ([]math3d.Vec2, error) {
	floats, err := readFloatAccessor(doc, accessorIdx, gltf.AccessorVec2, 2)
	if err != nil {
		return nil, err
	}
	result := make([]math3d.Vec2, len(floats)/2)
	for i := range result {
		result[i] = math3d.V2(floats[i*2], floats[i*2+1])
	}
	return result, nil
}

// readFloatAccessor reads a float32 accessor of n components per element.
func readFloatAccessor(doc *gltf.Document, accessorIdx int, typ gltf.AccessorType, n int) ([]float64, error) {
	if accessorIdx < 0 || accessorIdx >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d: %w", accessorIdx, ErrIndexOutOfRange)
	}
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != typ {
		return nil, fmt.Errorf("expected %v, got %v: %w", typ, accessor.Type, ErrMalformed)
	}
	if accessor.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("component type %v: %w", accessor.ComponentType, ErrUnsupportedFormat)
	}

	data, stride, err := accessorView(doc, accessor, n*4)
	if err != nil {
		return nil, err
	}
	result := make([]float64, accessor.Count*n)
	for i := range accessor.Count {
		for j := range n {
			bits := binary.LittleEndian.Uint32(data[i*stride+j*4:])
			result[i*n+j] = float64(math.Float32frombits(bits))
		}
	}
	return result, nil
}

// readIndices reads index data from a glTF accessor.
func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	if accessorIdx < 0 || accessorIdx >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d: %w", accessorIdx, ErrIndexOutOfRange)
	}
	accessor := doc.Accessors[accessorIdx]

	var size int
	switch accessor.ComponentType {
	case gltf.ComponentUbyte:
		size = 1
	case gltf.ComponentUshort:
		size = 2
	case gltf.ComponentUint:
		size = 4
	default:
		return nil, fmt.Errorf("index component type %v: %w", accessor.ComponentType, ErrUnsupportedFormat)
	}

	data, stride, err := accessorView(doc, accessor, size)
	if err != nil {
		return nil, err
	}
	result := make([]int, accessor.Count)
	for i := range result {
		b := data[i*stride:]
		switch size {
		case 1:
			result[i] = int(b[0])
		case 2:
			result[i] = int(binary.LittleEndian.Uint16(b))
		case 4:
			result[i] = int(binary.LittleEndian.Uint32(b))
		}
	}
	return result, nil
}

// accessorView returns the bytes backing accessor, starting at its first
// element, and the element stride. elemSize is the packed element size.
func accessorView(doc *gltf.Document, accessor *gltf.Accessor, elemSize int) ([]byte, int, error) {
	if accessor.BufferView == nil {
		return nil, 0, fmt.Errorf("accessor has no buffer view: %w", ErrMalformed)
	}
	bufferView, data, err := bufferViewData(doc, *accessor.BufferView)
	if err != nil {
		return nil, 0, err
	}

	stride := bufferView.ByteStride
	if stride == 0 {
		stride = elemSize
	}
	start := bufferView.ByteOffset + accessor.ByteOffset
	if accessor.Count == 0 {
		return nil, stride, nil
	}
	end := start + (accessor.Count-1)*stride + elemSize
	if start < 0 || end > len(data) {
		return nil, 0, fmt.Errorf("accessor reads bytes [%d, %d) of %d: %w", start, end, len(data), ErrMalformed)
	}
	return data[start:end], stride, nil
}

// bufferViewData resolves a buffer view index to the view and its buffer's bytes.
func bufferViewData(doc *gltf.Document, idx int) (*gltf.BufferView, []byte, error) {
	if idx < 0 || idx >= len(doc.BufferViews) {
		return nil, nil, fmt.Errorf("buffer view %d: %w", idx, ErrMalformed)
	}
	bv := doc.BufferViews[idx]
	if bv.Buffer < 0 || bv.Buffer >= len(doc.Buffers) {
		return nil, nil, fmt.Errorf("buffer %d: %w", bv.Buffer, ErrMalformed)
	}
	data := doc.Buffers[bv.Buffer].Data
	if data == nil {
		return nil, nil, fmt.Errorf("buffer %d has no data: %w", bv.Buffer, ErrMalformed)
	}
	return bv, data, nil
}

// firstImage decodes the first usable image in the document: embedded in a
// buffer view, a data URI, or a file relative to dir.
func firstImage(doc *gltf.Document, dir string) image.Image {
	for i, img := range doc.Images {
		data, err := imageData(doc, img, dir)
		if err != nil || len(data) == 0 {
			logging.Logger().Warn("skipping image", "index", i, "err", err)
			continue
		}
		decoded, format, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			logging.Logger().Warn("skipping image", "index", i, "err", err)
			continue
		}
		logging.Logger().Debug("texture found", "index", i, "format", format)
		return decoded
	}
	return nil
}

func imageData(doc *gltf.Document, img *gltf.Image, dir string) ([]byte, error) {
	switch {
	case img.BufferView != nil:
		bv, data, err := bufferViewData(doc, *img.BufferView)
		if err != nil {
			return nil, err
		}
		end := bv.ByteOffset + bv.ByteLength
		if bv.ByteOffset < 0 || end > len(data) {
			return nil, fmt.Errorf("image buffer view out of range: %w", ErrMalformed)
		}
		return data[bv.ByteOffset:end], nil
	case img.IsEmbeddedResource():
		return img.MarshalData()
	case img.URI != "":
		return os.ReadFile(filepath.Join(dir, img.URI))
	}
	return nil, nil
}
