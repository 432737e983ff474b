package marker

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-trend/internal/logger"
	"github.com/rxtech-lab/argo-trend/internal/types"
	"github.com/rxtech-lab/argo-trend/pkg/errors"
	"go.uber.org/zap"
)

var markColumns = []string{
	"id", "symbol", "time", "price", "color", "shape", "title", "message", "category",
	"signal_type", "signal_name", "signal_reason", "trend",
}

// DuckDBMarker records marks in an in-memory DuckDB table and exports them as parquet.
type DuckDBMarker struct {
	db     *sql.DB
	logger *logger.Logger
	sq     squirrel.StatementBuilderType
}

// NewDuckDBMarker creates the marks table in a fresh in-memory database.
func NewDuckDBMarker(log *logger.Logger) (*DuckDBMarker, error) {
	if log == nil {
		log = logger.NewNopLogger()
	}

	db, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		log.Error("Failed to open database", zap.Error(err))

		return nil, errors.Wrap(errors.ErrCodeMarkerNotAvailable, "failed to open database", err)
	}

	if err := db.Ping(); err != nil {
		log.Error("Failed to connect to database", zap.Error(err))
		db.Close()

		return nil, errors.Wrap(errors.ErrCodeMarkerNotAvailable, "failed to connect to database", err)
	}

	m := &DuckDBMarker{
		db:     db,
		logger: log,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}

	if err := m.initialize(); err != nil {
		db.Close()

		return nil, err
	}

	return m, nil
}

func (m *DuckDBMarker) initialize() error {
	_, err := m.db.Exec(`
		CREATE TABLE IF NOT EXISTS marks (
			id TEXT PRIMARY KEY,
			symbol TEXT,
			time TIMESTAMP,
			price DOUBLE,
			color TEXT,
			shape TEXT,
			title TEXT,
			message TEXT,
			category TEXT,
			signal_type TEXT,
			signal_name TEXT,
			signal_reason TEXT,
			trend TEXT
		)
	`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeMarkerNotAvailable, "failed to create marks table", err)
	}

	return nil
}

// Mark implements Marker.
func (m *DuckDBMarker) Mark(mark types.Mark) error {
	var signalType, signalName, signalReason, trend string

	if mark.Signal.IsSome() {
		signal := mark.Signal.Unwrap()
		signalType = signal.Type.String()
		signalName = signal.Name
		signalReason = signal.Reason
		trend = signal.Trend.String()
	}

	_, err := m.sq.
		Insert("marks").
		Columns(markColumns...).
		Values(
			mark.Id, mark.Symbol, mark.Time, mark.Price, string(mark.Color), string(mark.Shape),
			mark.Title, mark.Message, mark.Category, signalType, signalName, signalReason, trend,
		).
		RunWith(m.db).
		Exec()
	if err != nil {
		return errors.Wrap(errors.ErrCodeMarkerNotAvailable, "failed to insert mark", err)
	}

	return nil
}

// Marks implements Marker.
func (m *DuckDBMarker) Marks() ([]types.Mark, error) {
	rows, err := m.sq.
		Select(markColumns...).
		From("marks").
		OrderBy("time ASC").
		RunWith(m.db).
		Query()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query marks", err)
	}
	defer rows.Close()

	var marks []types.Mark

	for rows.Next() {
		var mark types.Mark

		var color, shape string

		var signalType, signalName, signalReason, trend string

		err := rows.Scan(
			&mark.Id, &mark.Symbol, &mark.Time, &mark.Price, &color, &shape,
			&mark.Title, &mark.Message, &mark.Category,
			&signalType, &signalName, &signalReason, &trend,
		)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan mark", err)
		}

		mark.Color = types.MarkColor(color)
		mark.Shape = types.MarkShape(shape)
		mark.Signal = optional.None[types.Signal]()

		if signalType != "" {
			mark.Signal = optional.Some(types.Signal{
				Time:   mark.Time,
				Type:   types.SignalType(signalType),
				Name:   signalName,
				Reason: signalReason,
				Symbol: mark.Symbol,
				Price:  mark.Price,
				Trend:  types.Trend(trend),
			})
		}

		marks = append(marks, mark)
	}

	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "error iterating marks", err)
	}

	return marks, nil
}

// Write implements Marker. Marks are exported to dir/marks.parquet.
func (m *DuckDBMarker) Write(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeMarkerNotAvailable, "failed to create directory", err)
	}

	marksPath := filepath.Join(dir, "marks.parquet")

	_, err := m.db.Exec(fmt.Sprintf(`COPY (SELECT * FROM marks ORDER BY time) TO '%s' (FORMAT PARQUET)`, strings.ReplaceAll(marksPath, "'", "''")))
	if err != nil {
		return errors.Wrap(errors.ErrCodeMarkerNotAvailable, "failed to export marks to parquet", err)
	}

	m.logger.Info("Exported marks", zap.String("marks", marksPath))

	return nil
}

// Close implements Marker.
func (m *DuckDBMarker) Close() error {
	if m == nil || m.db == nil {
		return nil
	}

	return m.db.Close()
}
