package gosieraster

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/smasonuk/gosieraster/internal/logger"
	"go.uber.org/zap"
)

var (
	ErrTruncated    = errors.New("dxf: group code without a value line")
	ErrBadGroupCode = errors.New("dxf: group code is not an integer")
	ErrBadValue     = errors.New("dxf: malformed numeric value")
	ErrSectionName  = errors.New("dxf: SECTION is not followed by a (2, name) record")
	ErrFaceIndex    = errors.New("dxf: face references a vertex that does not exist")
	ErrFaceArity    = errors.New("dxf: face arity must be positive")
)

// DXFOptions controls importer compatibility switches.
type DXFOptions struct {
	// Legacy3DFace routes 3DFACE entities through the MESH branch, which
	// ignores their coordinates.
	Legacy3DFace bool
}

type section int

const (
	sectionNone section = iota
	sectionHeader
	sectionTables
	sectionBlocks
	sectionEntities
)

var sectionNames = map[string]section{
	"header":   sectionHeader,
	"tables":   sectionTables,
	"blocks":   sectionBlocks,
	"entities": sectionEntities,
}

func (s section) String() string {
	switch s {
	case sectionHeader:
		return "HEADER"
	case sectionTables:
		return "TABLES"
	case sectionBlocks:
		return "BLOCKS"
	case sectionEntities:
		return "ENTITIES"
	default:
		return "NONE"
	}
}

type entityKind int

const (
	entityNone entityKind = iota
	entityLine
	entityInsert
	entityMesh
	entityFace3D
)

func (e entityKind) String() string {
	switch e {
	case entityLine:
		return "LINE"
	case entityInsert:
		return "INSERT"
	case entityMesh:
		return "MESH"
	case entityFace3D:
		return "3DFACE"
	default:
		return "NONE"
	}
}

// Entity names are matched after lower-casing. Names missing from the table
// select entityNone and their records are skipped.
var (
	dxfEntities = map[string]entityKind{
		"line":   entityLine,
		"insert": entityInsert,
		"mesh":   entityMesh,
		"3dface": entityFace3D,
	}
	legacyDXFEntities = map[string]entityKind{
		"line":   entityLine,
		"insert": entityInsert,
		"mesh":   entityMesh,
		"3dface": entityMesh,
	}
)

func (o DXFOptions) entities() map[string]entityKind {
	if o.Legacy3DFace {
		return legacyDXFEntities
	}
	return dxfEntities
}

type dxfRecord struct {
	code  int
	value string // trimmed and lower-cased
	line  int    // line number of the group code
}

type recordReader struct {
	scanner *bufio.Scanner
	line    int
}

func newRecordReader(r io.Reader) *recordReader {
	return &recordReader{scanner: bufio.NewScanner(r)}
}

func (r *recordReader) scan() (string, bool) {
	if !r.scanner.Scan() {
		return "", false
	}
	r.line++
	return strings.TrimSpace(r.scanner.Text()), true
}

// next returns io.EOF once only blank lines remain.
func (r *recordReader) next() (dxfRecord, error) {
	codeText, ok := r.scan()
	if !ok {
		return dxfRecord{}, r.eof()
	}

	codeLine := r.line
	if codeText == "" {
		for codeText == "" {
			if codeText, ok = r.scan(); !ok {
				return dxfRecord{}, r.eof()
			}
		}
		return dxfRecord{}, fmt.Errorf("line %d: empty group code: %w", codeLine, ErrBadGroupCode)
	}

	code, err := strconv.Atoi(codeText)
	if err != nil {
		return dxfRecord{}, fmt.Errorf("line %d: %q: %w", codeLine, codeText, ErrBadGroupCode)
	}

	value, ok := r.scan()
	if !ok {
		if err := r.scanner.Err(); err != nil {
			return dxfRecord{}, err
		}
		return dxfRecord{}, fmt.Errorf("line %d: code %d: %w", codeLine, code, ErrTruncated)
	}

	return dxfRecord{code: code, value: strings.ToLower(value), line: codeLine}, nil
}

func (r *recordReader) eof() error {
	if err := r.scanner.Err(); err != nil {
		return err
	}
	return io.EOF
}

func (rec dxfRecord) asFloat() (float64, error) {
	v, err := strconv.ParseFloat(rec.value, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("line %d: code %d value %q: %w", rec.line+1, rec.code, rec.value, ErrBadValue)
	}
	return v, nil
}

func (rec dxfRecord) asInt() (int, error) {
	v, err := strconv.Atoi(rec.value)
	if err != nil {
		return 0, fmt.Errorf("line %d: code %d value %q: %w", rec.line+1, rec.code, rec.value, ErrBadValue)
	}
	return v, nil
}

// meshState collects one MESH entity: its vertex list and the face list
// that indexes into it.
type meshState struct {
	vertexCount int // vertices still expected (92)
	indexCount  int // face-list items still expected (93)
	vertices    []Vector
	x, y        float64
	faceLeft    int // indices still expected for the current face
	face        []int
}

// face3DState collects the four corners of one 3DFACE entity.
type face3DState struct {
	points  [4]Vector
	seen    [4]uint8 // bit 0 x, bit 1 y, bit 2 z
	emitted bool
}

const pointComplete = 0b111

type dxfParser struct {
	entityNames map[string]entityKind
	out         *Buffer

	section     section
	entity      entityKind
	afterMarker bool

	mesh   meshState
	face3D face3DState
}

// LoadDXF reads the ENTITIES section of a DXF text stream into a buffer that
// is centered on the origin, depth-sorted and has face normals computed.
func LoadDXF(r io.Reader, opts DXFOptions) (*Buffer, error) {
	p := &dxfParser{
		entityNames: opts.entities(),
		out:         NewBuffer(),
	}
	if err := p.parse(newRecordReader(r)); err != nil {
		return nil, err
	}

	logger.Debug("dxf parsed", zap.Int("triangles", p.out.Triangles()))

	p.out.CenterToOrigin()
	p.out.SortByDepth()
	p.out.ComputeTriangleNormals()
	return p.out, nil
}

// LoadDXFFile opens fileName and passes it to LoadDXF.
func LoadDXFFile(fileName string, opts DXFOptions) (*Buffer, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, fmt.Errorf("could not open DXF file %s: %w", fileName, err)
	}
	defer file.Close()

	buf, err := LoadDXF(file, opts)
	if err != nil {
		return nil, fmt.Errorf("error parsing DXF file %s: %w", fileName, err)
	}
	return buf, nil
}

func (p *dxfParser) parse(rr *recordReader) error {
	for {
		rec, err := rr.next()
		if errors.Is(err, io.EOF) {
			p.endEntity()
			return nil
		}
		if err != nil {
			return err
		}

		if p.section == sectionNone {
			if rec.code == 0 && rec.value == "section" {
				if err := p.beginSection(rr, rec); err != nil {
					return err
				}
			}
			continue
		}

		if rec.code == 0 && rec.value == "endsec" {
			p.endEntity()
			p.section = sectionNone
			continue
		}

		if p.section != sectionEntities {
			continue
		}

		if rec.code == 0 {
			p.beginEntity(rec)
			continue
		}

		if rec.code == 5 && p.afterMarker {
			p.afterMarker = false
			continue
		}
		p.afterMarker = false

		switch p.entity {
		case entityMesh:
			err = p.meshRecord(rec)
		case entityFace3D:
			err = p.face3DRecord(rec)
		}
		if err != nil {
			return err
		}
	}
}

func (p *dxfParser) beginSection(rr *recordReader, rec dxfRecord) error {
	name, err := rr.next()
	if errors.Is(err, io.EOF) || (err == nil && name.code != 2) {
		return fmt.Errorf("line %d: %w", rec.line, ErrSectionName)
	}
	if err != nil {
		return err
	}

	p.section = sectionNames[name.value]
	logger.Debug("dxf section", zap.String("name", name.value), zap.Stringer("state", p.section))
	return nil
}

func (p *dxfParser) beginEntity(rec dxfRecord) {
	p.endEntity()

	p.entity = p.entityNames[rec.value]
	p.afterMarker = true
	p.mesh = meshState{}
	p.face3D = face3DState{}
}

// endEntity flushes a 3DFACE that stopped after its third point.
func (p *dxfParser) endEntity() {
	if p.entity == entityFace3D && !p.face3D.emitted {
		f := &p.face3D
		if f.seen[0] == pointComplete && f.seen[1] == pointComplete && f.seen[2] == pointComplete {
			p.out.AddTriangle(f.points[0], f.points[1], f.points[2])
		}
	}
	p.entity = entityNone
}

func (p *dxfParser) meshRecord(rec dxfRecord) error {
	m := &p.mesh

	switch {
	case rec.code == 10 && m.vertexCount > 0:
		v, err := rec.asFloat()
		if err != nil {
			return err
		}
		m.x = v
	case rec.code == 20 && m.vertexCount > 0:
		v, err := rec.asFloat()
		if err != nil {
			return err
		}
		m.y = v
	case rec.code == 30 && m.vertexCount > 0:
		z, err := rec.asFloat()
		if err != nil {
			return err
		}
		// MESH vertices are stored with Y and Z exchanged.
		m.vertices = append(m.vertices, NewVector(m.x, z, m.y))
		m.vertexCount--
		m.x, m.y = 0, 0
	case rec.code == 92:
		n, err := rec.asInt()
		if err != nil {
			return err
		}
		m.vertexCount = n
	case rec.code == 93:
		n, err := rec.asInt()
		if err != nil {
			return err
		}
		m.indexCount = n
	case rec.code == 90 && m.indexCount > 0:
		n, err := rec.asInt()
		if err != nil {
			return err
		}
		m.indexCount--
		if m.faceLeft == 0 {
			return p.beginFace(rec, n)
		}
		return p.faceIndex(rec, n)
	}
	return nil
}

func (p *dxfParser) beginFace(rec dxfRecord, arity int) error {
	if arity <= 0 {
		return fmt.Errorf("line %d: arity %d: %w", rec.line, arity, ErrFaceArity)
	}
	p.mesh.faceLeft = arity
	p.mesh.face = p.mesh.face[:0]
	return nil
}

func (p *dxfParser) faceIndex(rec dxfRecord, index int) error {
	m := &p.mesh
	if index < 0 || index >= len(m.vertices) {
		return fmt.Errorf("line %d: index %d of %d vertices: %w", rec.line, index, len(m.vertices), ErrFaceIndex)
	}

	m.face = append(m.face, index)
	m.faceLeft--
	if m.faceLeft > 0 {
		return nil
	}

	if len(m.face) < 3 {
		logger.Debug("dxf face dropped", zap.Int("line", rec.line), zap.Int("arity", len(m.face)))
		return nil
	}

	// Fan triangulation; a quad splits into (0,1,2) and (0,2,3).
	for i := 1; i+1 < len(m.face); i++ {
		p.out.AddTriangle(m.vertices[m.face[0]], m.vertices[m.face[i]], m.vertices[m.face[i+1]])
	}
	return nil
}

func (p *dxfParser) face3DRecord(rec dxfRecord) error {
	var axis int
	switch {
	case rec.code >= 10 && rec.code <= 13:
		axis = 0
	case rec.code >= 20 && rec.code <= 23:
		axis = 1
	case rec.code >= 30 && rec.code <= 33:
		axis = 2
	default:
		return nil
	}

	v, err := rec.asFloat()
	if err != nil {
		return err
	}

	f := &p.face3D
	corner := rec.code % 10
	switch axis {
	case 0:
		f.points[corner].X = v
	case 1:
		f.points[corner].Y = v
	case 2:
		f.points[corner].Z = v
	}
	f.seen[corner] |= 1 << axis

	if rec.code == 33 && !f.emitted {
		// Triangular faces repeat the third corner and keep the
		// degenerate second triangle.
		p.out.AddTriangle(f.points[0], f.points[1], f.points[2])
		p.out.AddTriangle(f.points[2], f.points[3], f.points[0])
		f.emitted = true
	}
	return nil
}

type dxfImporter struct {
	opts DXFOptions
}

// NewDXFImporter returns the Importer for .dxf files.
func NewDXFImporter(opts DXFOptions) Importer {
	return dxfImporter{opts: opts}
}

func (d dxfImporter) CanLoad(ext string) bool {
	return strings.EqualFold(ext, ".dxf")
}

func (d dxfImporter) Load(fileName string) (*Buffer, error) {
	return LoadDXFFile(fileName, d.opts)
}
