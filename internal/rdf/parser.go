// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ontodia Contributors

package rdf

import (
	stderrors "errors"
	"log/slog"
	"path/filepath"
	"strings"

	ontoerr "github.com/asanchez75/ontodia/pkg/errors"
)

const (
	MIMETurtle = "text/turtle"
	MIMERDFXML = "application/rdf+xml"
	MIMEJSONLD = "application/ld+json"
)

// MIMETypes lists the supported serializations in fallback priority order.
var MIMETypes = []string{MIMETurtle, MIMERDFXML, MIMEJSONLD}

// mimeAliases maps related media types onto the decoder that reads them.
var mimeAliases = map[string]string{
	"application/n-triples": MIMETurtle,
	"application/x-turtle":  MIMETurtle,
	"text/n3":               MIMETurtle,
	"text/plain":            MIMETurtle,
	"application/xml":       MIMERDFXML,
	"text/xml":              MIMERDFXML,
	"application/json":      MIMEJSONLD,
}

// NormalizeMIME lowercases a media type, strips parameters and resolves
// aliases. The result may still be unsupported.
func NormalizeMIME(contentType string) string {
	mediaType := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	if canonical, ok := mimeAliases[mediaType]; ok {
		return canonical
	}
	return mediaType
}

// MIMEFromPath guesses a media type from a file extension. It returns "" when
// the extension is unknown so the parser falls back to detection.
func MIMEFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ttl", ".nt", ".n3":
		return MIMETurtle
	case ".rdf", ".owl", ".xml":
		return MIMERDFXML
	case ".jsonld", ".json":
		return MIMEJSONLD
	default:
		return ""
	}
}

// Parser deserializes documents whose serialization is hinted or unknown.
type Parser struct {
	decoders map[string]Decoder
	order    []string
	fallback string
	logger   *slog.Logger
}

// ParserOption configures a Parser.
type ParserOption func(*Parser)

// WithDecoder replaces or adds the decoder for a media type. New media types
// are appended to the detection order.
func WithDecoder(mime string, dec Decoder) ParserOption {
	return func(p *Parser) {
		if _, ok := p.decoders[mime]; !ok {
			p.order = append(p.order, mime)
		}
		p.decoders[mime] = dec
	}
}

func WithParserLogger(logger *slog.Logger) ParserOption {
	return func(p *Parser) {
		p.logger = logger
	}
}

func NewParser(opts ...ParserOption) *Parser {
	p := &Parser{
		decoders: map[string]Decoder{
			MIMETurtle: TurtleDecoder{},
			MIMERDFXML: RDFXMLDecoder{},
			MIMEJSONLD: JSONLDDecoder{},
		},
		order:    append([]string(nil), MIMETypes...),
		fallback: MIMETurtle,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// MIMETypes returns the detection order.
func (p *Parser) MIMETypes() []string {
	return append([]string(nil), p.order...)
}

// Supports reports whether mime resolves to a registered decoder.
func (p *Parser) Supports(mime string) bool {
	_, ok := p.decoders[NormalizeMIME(mime)]
	return ok
}

// Parse deserializes body. A non-empty mime selects the decoder directly,
// with unknown types read as Turtle. An empty mime tries every serialization
// in priority order and fails with rdf.parse.unknown_format when none match.
func (p *Parser) Parse(body, mime string) (*Graph, error) {
	g, _, err := p.ParseDetect(body, mime)
	return g, err
}

// ParseDetect is Parse that also reports the media type that was used.
func (p *Parser) ParseDetect(body, mime string) (*Graph, string, error) {
	if mime != "" {
		resolved := NormalizeMIME(mime)
		if _, ok := p.decoders[resolved]; !ok {
			p.logger.Debug("unsupported media type, using default decoder",
				slog.String("mime", mime),
				slog.String("fallback", p.fallback),
			)
			resolved = p.fallback
		}
		g, err := p.decode(body, resolved)
		if err != nil {
			return nil, "", ontoerr.Wrap(err, ontoerr.CodeRDFParseInvalidFormat, "decoding document",
				ontoerr.FieldMIME(resolved))
		}
		return g, resolved, nil
	}

	var errs []error
	for _, candidate := range p.order {
		g, err := p.decode(body, candidate)
		if err == nil {
			return g, candidate, nil
		}
		p.logger.Debug("serialization did not match",
			slog.String("mime", candidate),
			slog.Any("error", err),
		)
		errs = append(errs, err)
	}
	return nil, "", ontoerr.Wrap(stderrors.Join(errs...), ontoerr.CodeRDFParseUnknownFormat,
		"no supported serialization matched the document")
}

func (p *Parser) decode(body, mime string) (*Graph, error) {
	triples, err := p.decoders[mime].Decode(body)
	if err != nil {
		return nil, err
	}
	return NewGraph(triples...), nil
}
