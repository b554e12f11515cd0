package gpu

import (
	"github.com/go-gl/gl/v4.3-core/gl"

	"github.com/Faultbox/litscene/internal/geometry"
)

// Mesh is the raster VAO used by the Phong pass.
type Mesh struct {
	vao, vboPos, vboNorm, ebo uint32
	Groups                    []geometry.DrawGroup
	IndexCount                int32
}

// NewMesh uploads the raster stream. Attribute 0 is position, 1 is normal.
func NewMesh(r *geometry.Raster) *Mesh {
	m := &Mesh{Groups: r.Groups, IndexCount: int32(len(r.Indices))}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vboPos)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vboPos)
	gl.BufferData(gl.ARRAY_BUFFER, len(r.Positions)*12, dataPtr(r.Positions), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 12, 0)

	gl.GenBuffers(1, &m.vboNorm)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vboNorm)
	gl.BufferData(gl.ARRAY_BUFFER, len(r.Normals)*12, dataPtr(r.Normals), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, 12, 0)

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(r.Indices)*4, dataPtr(r.Indices), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	return m
}

// DrawGroup draws one source mesh. The VAO must be bound.
func (m *Mesh) DrawGroup(g geometry.DrawGroup) {
	if g.IndexCount == 0 {
		return
	}
	gl.DrawElements(gl.TRIANGLES, g.IndexCount, gl.UNSIGNED_INT, gl.PtrOffset(int(g.FirstIndex)*4))
}

// Bind binds the VAO.
func (m *Mesh) Bind() {
	gl.BindVertexArray(m.vao)
}

// Delete releases the VAO and its buffers.
func (m *Mesh) Delete() {
	for _, b := range []*uint32{&m.vboPos, &m.vboNorm, &m.ebo} {
		if *b != 0 {
			gl.DeleteBuffers(1, b)
			*b = 0
		}
	}
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
		m.vao = 0
	}
}

// Procedural is an empty VAO for draws whose vertex shader derives
// positions from gl_VertexID (the full-screen quad and the crosshair).
type Procedural struct {
	vao uint32
}

// NewProcedural creates the empty VAO core profile requires for drawing.
func NewProcedural() *Procedural {
	p := &Procedural{}
	gl.GenVertexArrays(1, &p.vao)
	return p
}

// Draw issues count vertices of the given primitive with the bound program.
func (p *Procedural) Draw(mode uint32, count int32) {
	gl.BindVertexArray(p.vao)
	gl.DrawArrays(mode, 0, count)
	gl.BindVertexArray(0)
}

// Delete releases the VAO.
func (p *Procedural) Delete() {
	if p.vao != 0 {
		gl.DeleteVertexArrays(1, &p.vao)
		p.vao = 0
	}
}
