package main

import (
	"bytes"
	"errors"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rook-computer/lifewheel/internal/render"
	"github.com/rook-computer/lifewheel/internal/wheel"
)

type closeFailure struct {
	bytes.Buffer
}

var errDiskFull = errors.New("disk full")

func (c *closeFailure) Close() error { return errDiskFull }

func TestExportToFile(t *testing.T) {
	opts := render.ExportOptions{Width: 200, Height: 100, Fonts: render.LoadFonts(nil)}
	path := filepath.Join(t.TempDir(), "wheel.png")

	require.NoError(t, exportToFile(createFile, path, wheel.DefaultState(), opts))
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())

	err = exportToFile(createFile, filepath.Join(t.TempDir(), "missing", "wheel.png"), wheel.DefaultState(), opts)
	assert.Error(t, err)
}

func TestExportToFileReportsCloseError(t *testing.T) {
	opts := render.ExportOptions{Width: 200, Height: 100, Fonts: render.LoadFonts(nil)}
	out := &closeFailure{}
	create := func(string) (io.WriteCloser, error) { return out, nil }

	err := exportToFile(create, "wheel.png", wheel.DefaultState(), opts)
	assert.ErrorIs(t, err, errDiskFull)
	assert.NotZero(t, out.Len(), "the image was written before closing")
}
