package render

import (
	"math"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"

	"github.com/rook-computer/lifewheel/internal/assets"
)

type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type faceKey struct {
	weight FontWeight
	size   int
}

// Fonts hands out font faces by size. The wheel labels use the truetype
// rasterizer, overlay text the opentype one.
type Fonts struct {
	mu     sync.Mutex
	label  *truetype.Font
	text   map[FontWeight]*opentype.Font
	labels map[int]font.Face
	faces  map[faceKey]font.Face
	logger Logger
}

// LoadFonts parses the embedded fonts. Fonts that fail to parse fall back to
// the built-in bitmap face.
func LoadFonts(logger Logger) *Fonts {
	f := &Fonts{
		text:   make(map[FontWeight]*opentype.Font),
		labels: make(map[int]font.Face),
		faces:  make(map[faceKey]font.Face),
		logger: logger,
	}

	if tt, err := truetype.Parse(assets.FontTTF); err != nil {
		f.errorf("truetype parse failed: %v", err)
	} else {
		f.label = tt
	}

	sources := map[FontWeight][]byte{
		WeightRegular: assets.FontTTF,
		WeightBold:    assets.BoldFontTTF,
		WeightItalic:  assets.ItalicFontTTF,
	}
	for weight, data := range sources {
		fnt, err := opentype.Parse(data)
		if err != nil {
			f.errorf("font parse failed, using basicfont: %v", err)
			continue
		}
		f.text[weight] = fnt
	}
	return f
}

// LabelFace returns the face used for arced wheel labels.
func (f *Fonts) LabelFace(size float64) font.Face {
	px := int(math.Max(1, math.Round(size)))
	f.mu.Lock()
	defer f.mu.Unlock()

	if face, ok := f.labels[px]; ok {
		return face
	}
	var face font.Face = basicfont.Face7x13
	if f.label != nil {
		face = truetype.NewFace(f.label, &truetype.Options{Size: float64(px), DPI: 72, Hinting: font.HintingNone})
	}
	f.labels[px] = face
	return face
}

// TextFace returns an overlay text face of the given pixel size.
func (f *Fonts) TextFace(weight FontWeight, size int) font.Face {
	if size <= 0 {
		size = defaultTextSize
	}
	key := faceKey{weight: weight, size: size}
	f.mu.Lock()
	defer f.mu.Unlock()

	if face, ok := f.faces[key]; ok {
		return face
	}
	var face font.Face = basicfont.Face7x13
	fnt, ok := f.text[weight]
	if !ok {
		fnt, ok = f.text[WeightRegular]
	}
	if ok {
		opened, err := opentype.NewFace(fnt, &opentype.FaceOptions{Size: float64(size), DPI: 72, Hinting: font.HintingFull})
		if err != nil {
			f.errorf("font face create failed, using basicfont: %v", err)
		} else {
			face = opened
		}
	}
	f.faces[key] = face
	return face
}

func (f *Fonts) errorf(format string, args ...interface{}) {
	if f.logger != nil {
		f.logger.Errorf("fb", format, args...)
	}
}
