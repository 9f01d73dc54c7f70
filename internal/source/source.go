// Package source recognizes the two upstream race payload shapes and decodes them into strongly
// typed variants. The historical provider pre-joins driver, team and result data into one record
// per entrant; the live provider exposes raw position snapshots, lap records and a driver roster
// that have to be joined by the results package.
package source

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/bcdxn/f1results/internal/domain"
)

// ErrUnrecognizedSource is returned when a payload follows neither known shape. Callers are
// expected to display a "results not available" state rather than fail.
var ErrUnrecognizedSource = errors.New("unrecognized race data source")

// Payload is a race payload parsed into one of its known variants: *Legacy or *Live.
type Payload interface {
	Tag() domain.SourceTag
	isPayload()
}

// Classify determines which source shape the raw payload follows. Only the shape is inspected;
// record values are never validated here.
func Classify(raw []byte) (domain.SourceTag, error) {
	s, err := sniff(raw)
	if err != nil {
		return "", err
	}
	return s.tag, nil
}

// Parse classifies the raw payload and decodes it into the matching variant. Off-type fields are
// decoded as missing and entries that aren't records are skipped, so a partially malformed feed
// still yields a best-effort table.
func Parse(raw []byte) (Payload, error) {
	s, err := sniff(raw)
	if err != nil {
		return nil, err
	}

	switch s.tag {
	case domain.SourceLegacyStructured:
		var races Records[Race]
		// Records never fails to unmarshal; entries that aren't races are dropped
		_ = json.Unmarshal(s.races, &races)
		return &Legacy{Races: races}, nil
	default:
		return decodeLive(s.fields), nil
	}
}

/* Shape Detection
------------------------------------------------------------------------------------------------- */

// shape is the result of inspecting the top level of a payload.
type shape struct {
	tag    domain.SourceTag
	races  json.RawMessage            // the races container (legacy only)
	fields map[string]json.RawMessage // top-level keys (live only)
}

// mrData is the envelope the historical provider wraps every response in.
type mrData struct {
	RaceTable struct {
		Races json.RawMessage `json:"Races"`
	} `json:"RaceTable"`
}

func sniff(raw []byte) (shape, error) {
	var s shape
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return s, fmt.Errorf("%w: empty payload", ErrUnrecognizedSource)
	}

	switch trimmed[0] {
	case '[':
		// the bare races container as forwarded by the original backend
		if nonEmptyList(trimmed) {
			s.tag = domain.SourceLegacyStructured
			s.races = trimmed
			return s, nil
		}
		return s, fmt.Errorf("%w: empty races container", ErrUnrecognizedSource)
	case '{':
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &fields); err != nil {
			return s, fmt.Errorf("%w: %w", ErrUnrecognizedSource, err)
		}
		if env, ok := fields["MRData"]; ok {
			var m mrData
			if err := json.Unmarshal(env, &m); err == nil && nonEmptyList(m.RaceTable.Races) {
				s.tag = domain.SourceLegacyStructured
				s.races = m.RaceTable.Races
				return s, nil
			}
		}
		if positions, ok := fields["positions"]; ok && isList(positions) {
			s.tag = domain.SourceLiveTimeseries
			s.fields = fields
			return s, nil
		}
		return s, fmt.Errorf("%w: no races container or positions list", ErrUnrecognizedSource)
	default:
		return s, fmt.Errorf("%w: payload is not a JSON object or array", ErrUnrecognizedSource)
	}
}

func isList(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}

func nonEmptyList(raw json.RawMessage) bool {
	if !isList(raw) {
		return false
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return false
	}
	return len(items) > 0
}

/* Lenient Decoding
------------------------------------------------------------------------------------------------- */

// Records is a list type allowing for custom unmarshaling of upstream record lists which can
// include entries that don't match the expected structure. Entries that aren't records at all, or
// that lack the key they are joined on, are dropped rather than failing the whole list; anything
// that isn't a list decodes to no records. Field values are decoded leniently by the record types
// themselves so an off-type field never costs the record.
type Records[T any] []T

// keyed is implemented by records that are only usable with a valid join key.
type keyed interface {
	hasKey() bool
}

func (r *Records[T]) UnmarshalJSON(data []byte) error {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		*r = nil
		return nil
	}

	filtered := make(Records[T], 0, len(items))
	for _, item := range items {
		if !isObject(item) {
			continue
		}
		var v T
		if err := json.Unmarshal(item, &v); err != nil {
			continue
		}
		if k, ok := any(v).(keyed); ok && !k.hasKey() {
			continue
		}
		filtered = append(filtered, v)
	}

	*r = filtered
	return nil
}

func isObject(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

// decodeObject decodes data into v when it is a JSON object and leaves v untouched otherwise.
func decodeObject(data []byte, v any) error {
	if !isObject(data) {
		return nil
	}
	return json.Unmarshal(data, v)
}

// Text is a string field that the upstream APIs are inconsistent about quoting; numbers are
// accepted and kept in their JSON form. Any other value (objects, lists, booleans) leaves the
// field empty.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			*t = Text(s)
		}
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err == nil {
		*t = Text(n.String())
	}
	return nil
}

func (t Text) String() string {
	return string(t)
}

// Int is a whole number field that may arrive as a JSON number (2 or 2.0) or as a numeric
// string. Anything else decodes to an invalid Int instead of failing the record.
type Int struct {
	n     int
	valid bool
}

// IntOf returns a valid Int holding n.
func IntOf(n int) Int {
	return Int{n: n, valid: true}
}

// Get returns the number and whether the field held one.
func (i Int) Get() (int, bool) {
	return i.n, i.valid
}

// Value returns the number, zero when the field was invalid or absent.
func (i Int) Value() int {
	return i.n
}

func (i *Int) UnmarshalJSON(data []byte) error {
	*i = Int{}
	f, ok := parseNumber(data)
	if ok && f == math.Trunc(f) && math.Abs(f) <= maxExactInt {
		*i = IntOf(int(f))
	}
	return nil
}

// Float is a decimal number field that may arrive as a JSON number or a numeric string. Anything
// else decodes to an invalid Float instead of failing the record.
type Float struct {
	f     float64
	valid bool
}

// FloatOf returns a valid Float holding f.
func FloatOf(f float64) Float {
	return Float{f: f, valid: true}
}

// Get returns the number and whether the field held one.
func (f Float) Get() (float64, bool) {
	return f.f, f.valid
}

func (f *Float) UnmarshalJSON(data []byte) error {
	*f = Float{}
	if v, ok := parseNumber(data); ok {
		*f = FloatOf(v)
	}
	return nil
}

// maxExactInt is the largest magnitude a float64 holds without losing whole-number precision.
const maxExactInt = 1 << 53

func parseNumber(data []byte) (float64, bool) {
	var t Text
	_ = t.UnmarshalJSON(data)
	f, err := strconv.ParseFloat(strings.TrimSpace(t.String()), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
