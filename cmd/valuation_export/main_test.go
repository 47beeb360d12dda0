package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appvaluation "github.com/jhoicas/garage-valuation/internal/application/valuation"
)

type fakeFile struct {
	bytes.Buffer
	writeErr error
	closeErr error
	closed   bool
}

func (f *fakeFile) Write(p []byte) (int, error) {
	if f.writeErr != nil {
		return 0, f.writeErr
	}
	return f.Buffer.Write(p)
}

func (f *fakeFile) Close() error {
	f.closed = true
	return f.closeErr
}

func TestWriteOutput_ArchivoEnDisco(t *testing.T) {
	out := filepath.Join(t.TempDir(), "reporte.csv")
	file := &appvaluation.ExportFile{Filename: "inventory-valuation-2026-03-20.csv", Body: []byte("Part,SKU\n")}

	require.NoError(t, writeOutput(out, file))

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "Part,SKU\n", string(got))
}

func TestWriteAndClose_ErrorAlCerrarFalla(t *testing.T) {
	f := &fakeFile{closeErr: errors.New("disco lleno")}

	err := writeAndClose(f, "reporte.csv", []byte("x"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "cerrar reporte.csv")
	assert.Contains(t, err.Error(), "disco lleno")
	assert.Equal(t, "x", f.String())
}

func TestWriteAndClose_ErrorAlEscribirCierraIgual(t *testing.T) {
	f := &fakeFile{writeErr: errors.New("io")}

	err := writeAndClose(f, "reporte.csv", []byte("x"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "escribir reporte.csv")
	assert.True(t, f.closed)
}

func TestWriteAndClose_OK(t *testing.T) {
	f := &fakeFile{}

	require.NoError(t, writeAndClose(f, "reporte.csv", []byte("ok")))
	assert.True(t, f.closed)
	assert.Equal(t, "ok", f.String())
}
