package gosieraster

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/smasonuk/gosieraster/internal/logger"
	"go.uber.org/zap"
)

// ErrNoImporter is returned by Registry.Load when no importer claims the
// file's extension.
var ErrNoImporter = errors.New("no importer for file extension")

// Importer turns a model file into a render-ready Buffer.
type Importer interface {
	// CanLoad reports whether the importer handles ext, which includes
	// the leading dot.
	CanLoad(ext string) bool
	Load(fileName string) (*Buffer, error)
}

// Registry picks an Importer by file extension. Resolved importers are
// cached per lower-cased extension. The zero value is ready to use.
type Registry struct {
	importers []Importer
	cache     map[string]Importer
}

func NewRegistry() *Registry {
	return &Registry{cache: make(map[string]Importer)}
}

// DefaultRegistry knows DXF, STL, OBJ and PLY.
func DefaultRegistry(opts DXFOptions) *Registry {
	r := NewRegistry()
	r.Register(NewDXFImporter(opts))
	r.Register(stlImporter{})
	r.Register(objImporter{})
	r.Register(plyImporter{})
	return r
}

// Register appends imp. Earlier registrations win when two importers claim
// the same extension.
func (r *Registry) Register(imp Importer) {
	r.importers = append(r.importers, imp)
	clear(r.cache)
}

// Resolve returns the importer for fileName, or nil.
func (r *Registry) Resolve(fileName string) Importer {
	ext := strings.ToLower(filepath.Ext(fileName))
	if imp, ok := r.cache[ext]; ok {
		return imp
	}

	for _, imp := range r.importers {
		if imp.CanLoad(ext) {
			if r.cache == nil {
				r.cache = make(map[string]Importer)
			}
			r.cache[ext] = imp
			return imp
		}
	}
	return nil
}

// Load resolves an importer for fileName and runs it.
func (r *Registry) Load(fileName string) (*Buffer, error) {
	imp := r.Resolve(fileName)
	if imp == nil {
		return nil, fmt.Errorf("%s: %w", fileName, ErrNoImporter)
	}

	buf, err := imp.Load(fileName)
	if err != nil {
		return nil, err
	}

	if buf.Triangles() == 0 {
		logger.Warn("model has no triangles", zap.String("file", filepath.Base(fileName)))
		return buf, nil
	}
	logger.Info("model loaded",
		zap.String("file", filepath.Base(fileName)),
		zap.Int("triangles", buf.Triangles()))
	return buf, nil
}
