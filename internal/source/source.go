package source

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"studyflow/internal/models"
	"studyflow/internal/util"
)

var (
	ErrNoSource       = errors.New("either text or a document is required")
	ErrAmbiguousInput = errors.New("provide text or a document, not both")
	ErrEmptyText      = errors.New("text must not be empty")
)

// ConversionError is returned when an uploaded document cannot be turned into text.
type ConversionError struct {
	Filename string
	Err      error
}

func (e *ConversionError) Error() string {
	return "document conversion failed: " + e.Err.Error()
}

func (e *ConversionError) Unwrap() error { return e.Err }

// DocumentConverter turns uploaded document bytes into plain text.
type DocumentConverter interface {
	Convert(ctx context.Context, data []byte) (string, error)
}

// Document is an uploaded file.
type Document struct {
	Filename string
	Data     []byte
}

// Source is the caller-supplied input. Exactly one of Text and Document must be set;
// HasText distinguishes an explicitly empty text field from an absent one.
type Source struct {
	Text     string
	HasText  bool
	Document *Document
}

func InlineText(text string) Source {
	return Source{Text: text, HasText: true}
}

func Upload(filename string, data []byte) Source {
	return Source{Document: &Document{Filename: filename, Data: data}}
}

// CheckShape reports the caller error for a source with neither or both variants set.
// It does no conversion work.
func (s Source) CheckShape() error {
	switch {
	case s.HasText && s.Document != nil:
		return ErrAmbiguousInput
	case !s.HasText && s.Document == nil:
		return ErrNoSource
	}
	return nil
}

type Resolver struct {
	converter DocumentConverter
}

func NewResolver(converter DocumentConverter) *Resolver {
	return &Resolver{converter: converter}
}

// Resolve normalizes src into text plus a provenance label: the inline text itself, or
// "PDF: <filename>" for uploads.
func (r *Resolver) Resolve(ctx context.Context, src Source) (models.ResolvedInput, error) {
	if err := src.CheckShape(); err != nil {
		return models.ResolvedInput{}, err
	}
	if src.HasText {
		if strings.TrimSpace(src.Text) == "" {
			return models.ResolvedInput{}, ErrEmptyText
		}
		return models.ResolvedInput{Text: src.Text, Provenance: src.Text}, nil
	}

	doc := src.Document
	if r.converter == nil {
		return models.ResolvedInput{}, &ConversionError{Filename: doc.Filename, Err: errors.New("no document converter configured")}
	}
	text, err := r.converter.Convert(ctx, doc.Data)
	if err != nil {
		return models.ResolvedInput{}, &ConversionError{Filename: doc.Filename, Err: err}
	}
	text = util.SanitizeText(text)
	if text == "" {
		return models.ResolvedInput{}, &ConversionError{Filename: doc.Filename, Err: util.ErrNoExtractableText}
	}
	return models.ResolvedInput{Text: text, Provenance: fmt.Sprintf("PDF: %s", doc.Filename)}, nil
}
