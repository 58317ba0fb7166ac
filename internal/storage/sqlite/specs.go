package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sandevgo/gadgetbot/internal/core"
)

const specColumns = `sku, model, brand, processor, ram_gb, storage_gb, battery_mah,
		screen_size, screen_type, nfc_support, network_type`

type Specs struct {
	db *sql.DB
}

func NewSpecs(db *sql.DB) *Specs {
	return &Specs{db: db}
}

func (s *Specs) List(ctx context.Context) ([]core.Spec, error) {
	return s.query(ctx, `SELECT `+specColumns+` FROM tb_specs ORDER BY brand, model`)
}

// Candidates returns the models of a brand with at least minRAM gigabytes of
// RAM. The brand matches the brand column or any part of the model name,
// ignoring case; an empty brand matches every model.
func (s *Specs) Candidates(ctx context.Context, brand string, minRAM int) ([]core.Spec, error) {
	query := `SELECT ` + specColumns + ` FROM tb_specs
		WHERE (? = '' OR LOWER(brand) = LOWER(?) OR INSTR(LOWER(model), LOWER(?)) > 0)
		AND ram_gb >= ?
		ORDER BY ram_gb DESC, brand, model`
	return s.query(ctx, query, brand, brand, brand, minRAM)
}

func (s *Specs) query(ctx context.Context, query string, args ...any) ([]core.Spec, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: query specs: %v", core.ErrPersistence, err)
	}
	defer rows.Close()

	specs := []core.Spec{}
	for rows.Next() {
		var spec core.Spec
		if err := rows.Scan(&spec.SKU, &spec.Model, &spec.Brand, &spec.Processor,
			&spec.RAMGB, &spec.StorageGB, &spec.BatteryMAh, &spec.ScreenSize,
			&spec.ScreenType, &spec.NFCSupport, &spec.NetworkType); err != nil {
			return nil, fmt.Errorf("%w: scan spec: %v", core.ErrPersistence, err)
		}
		specs = append(specs, spec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate specs: %v", core.ErrPersistence, err)
	}
	return specs, nil
}
