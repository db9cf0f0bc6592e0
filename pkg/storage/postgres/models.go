package postgres

import (
	"fmt"
	"phishnet/pkg/domain"
	"time"

	"github.com/go-faster/jx"
	"github.com/google/uuid"
)

// PgRecord is the scan_records row. The verdict is kept as JSONB next to the
// columns used for filtering.
type PgRecord struct {
	ID uuid.UUID `db:"id" goqu:"skipinsert"`

	URL        string `db:"url"`
	Source     string `db:"source"`
	IsPhishing bool   `db:"is_phishing"`
	RiskLevel  string `db:"risk_level"`
	Verdict    []byte `db:"verdict"`

	CreatedAt time.Time `db:"created_at" goqu:"skipinsert"`
}

func (p *PgRecord) ToDomain() (*domain.ScanRecord, error) {
	var verdict domain.Verdict
	if err := verdict.Decode(jx.DecodeBytes(p.Verdict)); err != nil {
		return nil, fmt.Errorf("could not decode verdict of record %s: %w", p.ID, err)
	}

	return &domain.ScanRecord{
		ID:        domain.RecordID(p.ID),
		Verdict:   verdict,
		Source:    domain.VerdictSource(p.Source),
		CreatedAt: p.CreatedAt,
	}, nil
}

func (p *PgRecord) FromDomain(record domain.ScanRecord) {
	e := jx.Encoder{}
	record.Verdict.Encode(&e)

	*p = PgRecord{
		ID:         uuid.UUID(record.ID),
		URL:        record.Verdict.URL,
		Source:     string(record.Source),
		IsPhishing: record.Verdict.IsPhishing,
		RiskLevel:  string(record.Verdict.RiskLevel),
		Verdict:    e.Bytes(),
		CreatedAt:  record.CreatedAt,
	}
}

func domainRecordsToPg(records []domain.ScanRecord) []PgRecord {
	out := make([]PgRecord, len(records))
	for i := range out {
		out[i].FromDomain(records[i])
	}

	return out
}

func pgRecordsToDomain(records []PgRecord) ([]domain.ScanRecord, error) {
	out := make([]domain.ScanRecord, 0, len(records))
	for _, r := range records {
		d, err := r.ToDomain()
		if err != nil {
			return nil, err
		}

		out = append(out, *d)
	}

	return out, nil
}
