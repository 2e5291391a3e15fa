// Package docparse turns raw documentation comment text of a known style into
// a normalized ParsedDoc. Parsing is best-effort and never fails: malformed or
// partial blocks degrade to free-text description.
package docparse

import (
	"strings"

	"github.com/driftlens/driftlens/internal/models"
)

// Parse parses raw comment text according to style. Unknown styles are treated
// as plain description text.
func Parse(text string, style models.DocStyle) models.ParsedDoc {
	switch style {
	case models.DocStyleJSDoc:
		return parseJSDoc(text)
	case models.DocStyleDocstring:
		return parseDocstring(text)
	case models.DocStyleGodoc:
		return parseGodoc(text)
	case models.DocStyleJavadoc:
		return parseJavadoc(text)
	default:
		return models.ParsedDoc{Description: strings.TrimSpace(text)}
	}
}

// addParam registers a documented parameter. The first occurrence of a name
// wins; a later occurrence may only refine the type field when the earlier one
// had none and never duplicates the entry.
func addParam(doc *models.ParsedDoc, p models.DocParam) {
	for i := range doc.Params {
		if doc.Params[i].Name == p.Name {
			if doc.Params[i].Type == "" && p.Type != "" {
				doc.Params[i].Type = p.Type
			}
			if doc.Params[i].Description == "" && p.Description != "" {
				doc.Params[i].Description = p.Description
			}
			return
		}
	}
	doc.Params = append(doc.Params, p)
}

// setReturn registers a documented return; first occurrence wins, later type
// refines.
func setReturn(doc *models.ParsedDoc, r models.DocReturn) {
	if doc.Returns == nil {
		doc.Returns = &r
		return
	}
	if doc.Returns.Type == "" && r.Type != "" {
		doc.Returns.Type = r.Type
	}
	if doc.Returns.Description == "" && r.Description != "" {
		doc.Returns.Description = r.Description
	}
}
