package domain

import (
	"fmt"
	"time"

	"github.com/go-faster/jx"
	"github.com/google/uuid"
)

// Encode writes v as a JSON object.
func (v *Verdict) Encode(e *jx.Encoder) {
	e.ObjStart()
	e.FieldStart("url")
	e.Str(v.URL)
	e.FieldStart("is_phishing")
	e.Bool(v.IsPhishing)
	e.FieldStart("confidence_score")
	e.Float64(v.ConfidenceScore)
	e.FieldStart("display_confidence")
	e.Str(v.DisplayConfidence)
	e.FieldStart("risk_level")
	e.Str(string(v.RiskLevel))
	e.FieldStart("details")
	e.ArrStart()
	for _, d := range v.Details {
		e.Str(d)
	}
	e.ArrEnd()
	e.ObjEnd()
}

// Decode reads v from a JSON object. Unknown fields are skipped.
func (v *Verdict) Decode(d *jx.Decoder) error {
	if err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		var err error
		switch string(key) {
		case "url":
			v.URL, err = d.Str()
		case "is_phishing":
			v.IsPhishing, err = d.Bool()
		case "confidence_score":
			v.ConfidenceScore, err = d.Float64()
		case "display_confidence":
			v.DisplayConfidence, err = d.Str()
		case "risk_level":
			var s string
			s, err = d.Str()
			v.RiskLevel = RiskLevel(s)
		case "details":
			v.Details = []string{}
			err = d.Arr(func(d *jx.Decoder) error {
				s, err := d.Str()
				if err != nil {
					return err
				}
				v.Details = append(v.Details, s)

				return nil
			})
		default:
			err = d.Skip()
		}
		if err != nil {
			return fmt.Errorf("decode field %q: %w", key, err)
		}

		return nil
	}); err != nil {
		return fmt.Errorf("decode verdict: %w", err)
	}

	return nil
}

// MarshalJSON implements json.Marshaler.
func (v *Verdict) MarshalJSON() ([]byte, error) {
	e := jx.Encoder{}
	v.Encode(&e)

	return e.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Verdict) UnmarshalJSON(b []byte) error {
	return v.Decode(jx.DecodeBytes(b))
}

// Encode writes r as a JSON object.
func (r *ScanRecord) Encode(e *jx.Encoder) {
	e.ObjStart()
	e.FieldStart("id")
	e.Str(uuid.UUID(r.ID).String())
	e.FieldStart("verdict")
	r.Verdict.Encode(e)
	e.FieldStart("source")
	e.Str(string(r.Source))
	e.FieldStart("created_at")
	e.Str(r.CreatedAt.UTC().Format(time.RFC3339Nano))
	e.ObjEnd()
}

// Decode reads r from a JSON object. Unknown fields are skipped.
func (r *ScanRecord) Decode(d *jx.Decoder) error {
	if err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		switch string(key) {
		case "id":
			s, err := d.Str()
			if err != nil {
				return err
			}
			id, err := uuid.Parse(s)
			if err != nil {
				return fmt.Errorf("parse id: %w", err)
			}
			r.ID = RecordID(id)
		case "verdict":
			return r.Verdict.Decode(d)
		case "source":
			s, err := d.Str()
			if err != nil {
				return err
			}
			r.Source = VerdictSource(s)
		case "created_at":
			s, err := d.Str()
			if err != nil {
				return err
			}
			t, err := time.Parse(time.RFC3339Nano, s)
			if err != nil {
				return fmt.Errorf("parse created_at: %w", err)
			}
			r.CreatedAt = t
		default:
			return d.Skip()
		}

		return nil
	}); err != nil {
		return fmt.Errorf("decode scan record: %w", err)
	}

	return nil
}
