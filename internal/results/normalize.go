// Package results reduces race payloads from either upstream source into canonical, ordered
// qualifying and race classifications. Every function here is pure: payloads are only read and
// each call allocates a fresh table, so calls are safe to run concurrently.
package results

import (
	"github.com/bcdxn/f1results/internal/domain"
	"github.com/bcdxn/f1results/internal/source"
)

// Normalize produces the classification of the given session from a parsed payload.
func Normalize(p source.Payload, kind domain.SessionKind) domain.ResultTable {
	t := domain.ResultTable{Session: kind, Rows: []domain.Result{}}

	switch p := p.(type) {
	case *source.Legacy:
		t.Source = p.Tag()
		t.Rows = normalizeLegacy(p, kind)
	case *source.Live:
		t.Source = p.Tag()
		t.Rows = normalizeLive(p, kind)
	}

	return t
}

// NormalizeJSON classifies and parses a raw payload before normalizing it. When the payload
// follows neither known shape an empty table is returned along with an error wrapping
// source.ErrUnrecognizedSource.
func NormalizeJSON(raw []byte, kind domain.SessionKind) (domain.ResultTable, error) {
	p, err := source.Parse(raw)
	if err != nil {
		return domain.ResultTable{Session: kind, Rows: []domain.Result{}}, err
	}
	return Normalize(p, kind), nil
}
