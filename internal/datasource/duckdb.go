package datasource

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-trend/internal/logger"
	"github.com/rxtech-lab/argo-trend/internal/types"
	"github.com/rxtech-lab/argo-trend/pkg/errors"
	"go.uber.org/zap"
)

var barColumns = []string{"time", "symbol", "open", "high", "low", "close", "volume"}

// DuckDBOptions narrows what a DuckDB data source serves.
type DuckDBOptions struct {
	// Symbol keeps only rows of this symbol when set
	Symbol string
	// Interval aggregates the stored rows into bars of this length when positive
	Interval time.Duration
}

// DuckDBDataSource reads bars from a parquet or csv file through an in-memory DuckDB.
type DuckDBDataSource struct {
	db      *sql.DB
	logger  *logger.Logger
	sq      squirrel.StatementBuilderType
	options DuckDBOptions
}

// NewDuckDBDataSource opens an in-memory DuckDB and exposes the file at path as the bars view.
// The file format is picked from the extension: .parquet or .csv.
func NewDuckDBDataSource(path string, options DuckDBOptions, log *logger.Logger) (*DuckDBDataSource, error) {
	if log == nil {
		log = logger.NewNopLogger()
	}

	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataSourceUnavailable, "failed to open duckdb", err)
	}

	d := &DuckDBDataSource{
		db:      db,
		logger:  log,
		sq:      squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		options: options,
	}

	if err := d.initialize(path); err != nil {
		_ = db.Close()

		return nil, err
	}

	return d, nil
}

func (d *DuckDBDataSource) initialize(path string) error {
	d.logger.Debug("Initializing DuckDB data source", zap.String("path", path), zap.Duration("interval", d.options.Interval))

	reader, err := fileReader(path)
	if err != nil {
		return err
	}

	// views are created with raw SQL as squirrel has no CREATE VIEW
	_, err = d.db.Exec(fmt.Sprintf(`CREATE VIEW market_data AS SELECT * FROM %s;`, reader))
	if err != nil {
		return errors.Wrapf(errors.ErrCodeDataSourceUnavailable, err, "failed to read %s", path)
	}

	_, err = d.db.Exec(barsView(d.options.Interval))
	if err != nil {
		return errors.Wrap(errors.ErrCodeQueryFailed, "failed to create bars view", err)
	}

	return nil
}

func fileReader(path string) (string, error) {
	quoted := strings.ReplaceAll(path, "'", "''")

	switch strings.ToLower(filepath.Ext(path)) {
	case ".parquet":
		return fmt.Sprintf("read_parquet('%s')", quoted), nil
	case ".csv":
		return fmt.Sprintf("read_csv_auto('%s')", quoted), nil
	default:
		return "", errors.Newf(errors.ErrCodeUnsupportedDataFormat, "unsupported data file %s, expected .parquet or .csv", path)
	}
}

// barsView aggregates market_data into buckets of interval, first open and last close per bucket.
func barsView(interval time.Duration) string {
	if interval <= 0 {
		return `CREATE VIEW bars AS SELECT time, symbol, open, high, low, close, volume FROM market_data;`
	}

	return fmt.Sprintf(`
		CREATE VIEW bars AS
		SELECT bucket_time AS time, symbol, open, high, low, close, volume
		FROM (
			SELECT
				time_bucket(INTERVAL '%d seconds', time) AS bucket_time,
				symbol,
				arg_min(open, time) AS open,
				MAX(high) AS high,
				MIN(low) AS low,
				arg_max(close, time) AS close,
				SUM(volume) AS volume
			FROM market_data
			GROUP BY bucket_time, symbol
		);
	`, int64(interval/time.Second))
}

func (d *DuckDBDataSource) filter(builder squirrel.SelectBuilder, start optional.Option[time.Time], end optional.Option[time.Time]) squirrel.SelectBuilder {
	if d.options.Symbol != "" {
		builder = builder.Where(squirrel.Eq{"symbol": d.options.Symbol})
	}

	if start.IsSome() {
		builder = builder.Where(squirrel.GtOrEq{"time": start.Unwrap()})
	}

	if end.IsSome() {
		builder = builder.Where(squirrel.LtOrEq{"time": end.Unwrap()})
	}

	return builder
}

// Count implements DataSource.
func (d *DuckDBDataSource) Count(start optional.Option[time.Time], end optional.Option[time.Time]) (int, error) {
	query, args, err := d.filter(d.sq.Select("COUNT(*)").From("bars"), start, end).ToSql()
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build count query", err)
	}

	var count int

	err = d.db.QueryRow(query, args...).Scan(&count)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeQueryFailed, "failed to count bars", err)
	}

	return count, nil
}

// ReadAll implements DataSource with batch processing.
func (d *DuckDBDataSource) ReadAll(ctx context.Context, start optional.Option[time.Time], end optional.Option[time.Time]) func(yield func(types.MarketData, error) bool) {
	const batchSize = 1000

	return func(yield func(types.MarketData, error) bool) {
		query, args, err := d.filter(d.sq.Select(barColumns...).From("bars"), start, end).OrderBy("time ASC").ToSql()
		if err != nil {
			yield(types.MarketData{}, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build read query", err))

			return
		}

		rows, err := d.db.QueryContext(ctx, query, args...)
		if err != nil {
			yield(types.MarketData{}, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query bars", err))

			return
		}
		defer rows.Close()

		batch := make([]types.MarketData, 0, batchSize)

		for rows.Next() {
			var bar types.MarketData

			err := rows.Scan(&bar.Time, &bar.Symbol, &bar.Open, &bar.High, &bar.Low, &bar.Close, &bar.Volume)
			if err != nil {
				yield(types.MarketData{}, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan bar", err))

				return
			}

			batch = append(batch, bar)

			if len(batch) >= batchSize {
				for _, data := range batch {
					if !yield(data, nil) {
						return
					}
				}

				batch = batch[:0]
			}
		}

		if err := rows.Err(); err != nil {
			yield(types.MarketData{}, errors.Wrap(errors.ErrCodeQueryFailed, "error iterating bars", err))

			return
		}

		for _, data := range batch {
			if !yield(data, nil) {
				return
			}
		}
	}
}

// Close implements DataSource.
func (d *DuckDBDataSource) Close() error {
	return d.db.Close()
}
