package pdftable

import "github.com/SUGAM-ARORA/pdftable/tables"

// Options configures Extract's behavior (spec §6). The zero value is
// not meaningful on its own — use DefaultOptions or a ProcessingMode
// preset as a starting point.
type Options struct {
	ConfidenceThreshold float64
	MinRows             int
	MinCols             int
	CellMerging         bool
	RowTolerance        float64
	ColTolerance        float64
	Mode                tables.ProcessingMode
}

// DefaultOptions returns balanced-mode defaults: confidence_threshold
// 0.7, min_rows 3, min_cols 2, cell_merging true, row_tolerance 2.0,
// col_tolerance 3.0.
func DefaultOptions() Options {
	cfg := tables.DefaultConfig()
	return fromConfig(cfg)
}

// WithMode returns a copy of opts with the given processing mode's
// tolerance/threshold preset applied.
func (o Options) WithMode(mode tables.ProcessingMode) Options {
	return fromConfig(o.toConfig().WithMode(mode))
}

func (o Options) toConfig() tables.Config {
	return tables.Config{
		ConfidenceThreshold: o.ConfidenceThreshold,
		MinRows:             o.MinRows,
		MinCols:             o.MinCols,
		CellMerging:         o.CellMerging,
		RowTolerance:        o.RowTolerance,
		ColTolerance:        o.ColTolerance,
		Mode:                o.Mode,
	}
}

func fromConfig(cfg tables.Config) Options {
	return Options{
		ConfidenceThreshold: cfg.ConfidenceThreshold,
		MinRows:             cfg.MinRows,
		MinCols:             cfg.MinCols,
		CellMerging:         cfg.CellMerging,
		RowTolerance:        cfg.RowTolerance,
		ColTolerance:        cfg.ColTolerance,
		Mode:                cfg.Mode,
	}
}
