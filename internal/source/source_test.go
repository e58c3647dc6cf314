package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"studyflow/internal/util"

	"github.com/stretchr/testify/require"
)

type fakeConverter struct {
	text  string
	err   error
	calls int
}

func (f *fakeConverter) Convert(ctx context.Context, data []byte) (string, error) {
	f.calls++
	return f.text, f.err
}

func TestResolveInlineText(t *testing.T) {
	conv := &fakeConverter{}
	in, err := NewResolver(conv).Resolve(context.Background(), InlineText("Photosynthesis converts light."))
	require.NoError(t, err)
	require.Equal(t, "Photosynthesis converts light.", in.Text)
	require.Equal(t, "Photosynthesis converts light.", in.Provenance)
	require.Zero(t, conv.calls)
}

func TestResolveDocument(t *testing.T) {
	conv := &fakeConverter{text: "Cell biology\x00 notes"}
	in, err := NewResolver(conv).Resolve(context.Background(), Upload("bio.pdf", []byte("%PDF-1.4")))
	require.NoError(t, err)
	require.Equal(t, "Cell biology notes", in.Text)
	require.Equal(t, "PDF: bio.pdf", in.Provenance)
	require.Equal(t, 1, conv.calls)
}

func TestResolveRejectsBadShapes(t *testing.T) {
	r := NewResolver(&fakeConverter{text: "x"})

	_, err := r.Resolve(context.Background(), Source{})
	require.ErrorIs(t, err, ErrNoSource)

	both := InlineText("hello")
	both.Document = &Document{Filename: "a.pdf", Data: []byte("x")}
	_, err = r.Resolve(context.Background(), both)
	require.ErrorIs(t, err, ErrAmbiguousInput)

	_, err = r.Resolve(context.Background(), InlineText("   \n"))
	require.ErrorIs(t, err, ErrEmptyText)
}

func TestResolveConversionFailure(t *testing.T) {
	cause := errors.New("corrupt xref table")
	_, err := NewResolver(&fakeConverter{err: cause}).Resolve(context.Background(), Upload("bad.pdf", []byte("x")))

	var convErr *ConversionError
	require.ErrorAs(t, err, &convErr)
	require.Equal(t, "bad.pdf", convErr.Filename)
	require.ErrorIs(t, err, cause)
	require.Equal(t, "document conversion failed: corrupt xref table", err.Error())
}

func TestResolveDocumentWithoutText(t *testing.T) {
	_, err := NewResolver(&fakeConverter{text: " \x00 "}).Resolve(context.Background(), Upload("scan.pdf", []byte("x")))
	require.ErrorIs(t, err, util.ErrNoExtractableText)
}

func TestPDFConverterRejectsGarbage(t *testing.T) {
	_, err := NewPDFConverter().Convert(context.Background(), []byte("definitely not a pdf"))
	require.Error(t, err)

	_, err = NewPDFConverter().Convert(context.Background(), nil)
	require.Error(t, err)
}

func TestPDFConverterReadsPagesInOrder(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "notes.pdf"))
	require.NoError(t, err)

	// Page 2 has a broken content stream and page 3 has no contents; both are skipped.
	text, err := NewPDFConverter().Convert(context.Background(), data)
	require.NoError(t, err)
	require.Equal(t, "Cells are the basic unit of life.\nMitosis divides the nucleus.", text)
}

func TestResolveRealPDF(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "notes.pdf"))
	require.NoError(t, err)

	in, err := NewResolver(NewPDFConverter()).Resolve(context.Background(), Upload("notes.pdf", data))
	require.NoError(t, err)
	require.Contains(t, in.Text, "Mitosis divides the nucleus.")
	require.Equal(t, "PDF: notes.pdf", in.Provenance)
}
