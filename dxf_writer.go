package gosieraster

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
)

// WriteDXF writes b as a minimal DXF file with one 3DFACE per triangle.
// The fourth corner of each face repeats the third.
func WriteDXF(w io.Writer, b *Buffer) error {
	bw := bufio.NewWriter(w)

	writePair := func(code int, value string) {
		_, _ = fmt.Fprintf(bw, "%d\n%s\n", code, value)
	}
	writePoint := func(corner int, v Vector) {
		writePair(10+corner, formatCoord(v.X))
		writePair(20+corner, formatCoord(v.Y))
		writePair(30+corner, formatCoord(v.Z))
	}

	writePair(0, "SECTION")
	writePair(2, "HEADER")
	writePair(0, "ENDSEC")

	writePair(0, "SECTION")
	writePair(2, "ENTITIES")

	for t := 0; t < b.Triangles(); t++ {
		p0 := b.vertices[t*3].Coords
		p1 := b.vertices[t*3+1].Coords
		p2 := b.vertices[t*3+2].Coords

		writePair(0, "3DFACE")
		writePair(8, "0") // layer
		writePoint(0, p0)
		writePoint(1, p1)
		writePoint(2, p2)
		writePoint(3, p2)
	}

	writePair(0, "ENDSEC")
	writePair(0, "EOF")

	return bw.Flush()
}

// SaveDXF writes b to fileName.
func SaveDXF(fileName string, b *Buffer) error {
	file, err := os.Create(fileName)
	if err != nil {
		return fmt.Errorf("could not create DXF file %s: %w", fileName, err)
	}

	if err := WriteDXF(file, b); err != nil {
		file.Close()
		return fmt.Errorf("could not write DXF file %s: %w", fileName, err)
	}
	return file.Close()
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
