package main

import (
	"bytes"
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/bodgit/halfsize"
	"github.com/bodgit/halfsize/tga"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v2"
)

func writeTGA(t *testing.T, file string, h tga.Header, pix, trailer []byte) {
	t.Helper()

	b, err := h.MarshalBinary()
	require.NoError(t, err)
	b = append(b, pix...)
	b = append(b, trailer...)

	require.NoError(t, ioutil.WriteFile(file, b, 0644))
}

func TestExitCode(t *testing.T) {
	tables := []struct {
		err  error
		want int
	}{
		{nil, exitOK},
		{fmt.Errorf("%w: no such file", halfsize.ErrOpenInput), exitInputFile},
		{fmt.Errorf("%w: permission denied", halfsize.ErrOpenOutput), exitOutputFile},
		{fmt.Errorf("%w: disk full", halfsize.ErrWrite), exitOutputFile},
		{&tga.FormatError{Field: "width", Msg: "zero"}, exitBadFormat},
		{&tga.UnsupportedError{Field: "color map type", Msg: "1"}, exitUnsupported},
	}

	for _, table := range tables {
		assert.Equal(t, table.want, exitCode(table.err), table.err)
	}
}

func run(t *testing.T, args ...string) (*bytes.Buffer, error) {
	t.Helper()

	out := new(bytes.Buffer)

	app := newApp()
	app.Writer = out
	app.ErrWriter = ioutil.Discard
	app.ExitErrHandler = func(*cli.Context, error) {}

	return out, app.Run(append([]string{"halfsize"}, args...))
}

func code(err error) int {
	var ec cli.ExitCoder
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}
	return exitOK
}

func TestApp(t *testing.T) {
	dir, err := ioutil.TempDir("", "halfsize")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	good := filepath.Join(dir, "good.tga")
	writeTGA(t, good, tga.Header{
		ImageType: tga.ImageGrayscale,
		Image:     tga.ImageSpec{Width: 2, Height: 2, BitsPerPixel: 8},
	}, []byte{10, 20, 30, 40}, nil)

	mapped := filepath.Join(dir, "mapped.tga")
	writeTGA(t, mapped, tga.Header{
		ColorMapType: 1,
		ImageType:    tga.ImageGrayscale,
		Image:        tga.ImageSpec{Width: 2, Height: 2, BitsPerPixel: 8},
	}, []byte{10, 20, 30, 40}, nil)

	empty := filepath.Join(dir, "empty.tga")
	writeTGA(t, empty, tga.Header{
		ImageType: tga.ImageGrayscale,
		Image:     tga.ImageSpec{Width: 0, Height: 2, BitsPerPixel: 8},
	}, nil, nil)

	out := filepath.Join(dir, "out.tga")

	tables := []struct {
		name string
		args []string
		want int
	}{
		{"no arguments", nil, exitUsage},
		{"one argument", []string{good}, exitUsage},
		{"three arguments", []string{good, out, out}, exitUsage},
		{"missing input", []string{filepath.Join(dir, "missing.tga"), out}, exitInputFile},
		{"missing output directory", []string{good, filepath.Join(dir, "missing", "out.tga")}, exitOutputFile},
		{"malformed", []string{empty, out}, exitBadFormat},
		{"unsupported", []string{mapped, out}, exitUnsupported},
		{"ok", []string{good, out}, exitOK},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			_, err := run(t, table.args...)
			assert.Equal(t, table.want, code(err), err)
		})
	}

	b, err := ioutil.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, []byte{25}, b[tga.HeaderSize:])
}

func TestAppInputNamedLikeCommand(t *testing.T) {
	dir, err := ioutil.TempDir("", "halfsize")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(cwd)

	for _, name := range []string{"info", "help", "h"} {
		t.Run(name, func(t *testing.T) {
			writeTGA(t, name, tga.Header{
				ImageType: tga.ImageGrayscale,
				Image:     tga.ImageSpec{Width: 2, Height: 2, BitsPerPixel: 8},
			}, []byte{10, 20, 30, 40}, nil)

			out := "out-" + name + ".tga"
			_, err := run(t, name, out)
			require.Equal(t, exitOK, code(err), err)

			b, err := ioutil.ReadFile(out)
			require.NoError(t, err)
			assert.Equal(t, []byte{25}, b[tga.HeaderSize:])
		})
	}
}

func TestInfo(t *testing.T) {
	dir, err := ioutil.TempDir("", "halfsize")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	file := filepath.Join(dir, "info.tga")
	h := tga.Header{
		ImageType: tga.ImageTrueColor,
		Image: tga.ImageSpec{
			Width:        3,
			Height:       1,
			BitsPerPixel: 24,
			Descriptor:   tga.Descriptor{TopToBottom: true},
		},
	}
	footer := append([]byte{0, 0, 0, 0, 0, 0, 0, 0}, "TRUEVISION-XFILE.\x00"...)
	writeTGA(t, file, h, make([]byte, 9), footer)

	b := new(bytes.Buffer)
	require.NoError(t, info(b, file))

	var r report
	require.NoError(t, yaml.Unmarshal(b.Bytes(), &r))
	assert.Equal(t, file, r.File)
	assert.Equal(t, h, r.Header)
	assert.Equal(t, "uncompressed true-color", r.Type)
	assert.NotNil(t, r.Footer)
	assert.Empty(t, r.Error)

	h.ColorMapType = 1
	writeTGA(t, file, h, make([]byte, 9), nil)

	b.Reset()
	err = info(b, file)
	assert.Equal(t, exitUnsupported, exitCode(err), err)
	r = report{}
	require.NoError(t, yaml.Unmarshal(b.Bytes(), &r))
	assert.Nil(t, r.Footer)
	assert.Contains(t, r.Error, "color map type")

	err = info(b, filepath.Join(dir, "missing.tga"))
	assert.Equal(t, exitInputFile, exitCode(err))
}

func TestInfoFlag(t *testing.T) {
	dir, err := ioutil.TempDir("", "halfsize")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	file := filepath.Join(dir, "info.tga")
	writeTGA(t, file, tga.Header{
		ImageType: tga.ImageGrayscale,
		Image:     tga.ImageSpec{Width: 640, Height: 480, BitsPerPixel: 8},
	}, nil, nil)

	out, err := run(t, "--info", file)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "width: 640")
	assert.Contains(t, out.String(), "height: 480")

	_, err = run(t, "--info", file, "extra")
	assert.Equal(t, exitUsage, code(err), err)

	writeTGA(t, file, tga.Header{
		ImageType: tga.ImageGrayscale,
		Image:     tga.ImageSpec{Width: 0, Height: 480, BitsPerPixel: 8},
	}, nil, nil)

	out, err = run(t, "--info", file)
	assert.Equal(t, exitBadFormat, code(err), err)
	assert.Contains(t, out.String(), "malformed width")
}
