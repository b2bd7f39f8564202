package pack

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"path"
	"strings"

	"github.com/milk9111/cursorpal/component"
)

// DescriptorPath is where the descriptor for id lives, relative to the asset
// root.
func DescriptorPath(id string) string {
	return path.Join("packs", id+".json")
}

// Loader fetches, validates and normalizes packs from a Source.
type Loader struct {
	src Source
}

func NewLoader(src Source) *Loader {
	return &Loader{src: src}
}

// Load returns a fully normalized pack, or a *LoadError. Sheets that fail to
// decode do not fail the load; see Pack.SheetErrors.
func (l *Loader) Load(ctx context.Context, id string) (*Pack, error) {
	if err := validID(id); err != nil {
		return nil, &LoadError{ID: id, Err: err}
	}

	data, err := l.src.Descriptor(ctx, DescriptorPath(id))
	if err != nil {
		return nil, &LoadError{ID: id, Err: err}
	}

	p, err := Decode(id, data)
	if err != nil {
		return nil, &LoadError{ID: id, Err: err}
	}

	sizes := make(map[component.StateName]image.Point, len(p.States))
	p.SheetErrors = make(map[component.StateName]error)
	for _, name := range p.StateNames() {
		st := p.States[name]
		st.SheetPath = p.SheetPath(st.Sheet)

		size, err := l.src.SheetSize(ctx, st.SheetPath)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, &LoadError{ID: id, Err: ctxErr}
			}
			derr := &DecodeError{Sheet: st.SheetPath, Err: err}
			p.SheetErrors[name] = derr
			log.Printf("%v (state %s of %s)", derr, name, id)
			continue
		}
		sizes[name] = size
	}

	NormalizeGeometry(p, sizes)
	return p, nil
}

func validID(id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.New("empty pack id")
	}
	if strings.HasPrefix(id, "/") || !isClean(id) {
		return fmt.Errorf("invalid pack id %q", id)
	}
	return nil
}

func isClean(id string) bool {
	if path.Clean(id) != id {
		return false
	}
	for _, seg := range strings.Split(id, "/") {
		if seg == ".." || seg == "." {
			return false
		}
	}
	return true
}
