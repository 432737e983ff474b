package marker

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/rxtech-lab/argo-trend/internal/types"
	"github.com/rxtech-lab/argo-trend/pkg/errors"
)

// MemoryMarker keeps marks in memory and writes them as JSON.
type MemoryMarker struct {
	mu    sync.Mutex
	marks []types.Mark
}

func NewMemoryMarker() *MemoryMarker {
	return &MemoryMarker{}
}

// Mark implements Marker.
func (m *MemoryMarker) Mark(mark types.Mark) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.marks = append(m.marks, mark)

	return nil
}

// Marks implements Marker.
func (m *MemoryMarker) Marks() ([]types.Mark, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	marks := make([]types.Mark, len(m.marks))
	copy(marks, m.marks)

	sort.SliceStable(marks, func(i, j int) bool {
		return marks[i].Time.Before(marks[j].Time)
	})

	return marks, nil
}

type jsonMark struct {
	Id       string  `json:"id"`
	Symbol   string  `json:"symbol"`
	Time     string  `json:"time"`
	Price    float64 `json:"price"`
	Color    string  `json:"color"`
	Shape    string  `json:"shape"`
	Title    string  `json:"title"`
	Message  string  `json:"message"`
	Category string  `json:"category"`
	Signal   string  `json:"signal,omitempty"`
	Reason   string  `json:"reason,omitempty"`
}

// Write implements Marker. Marks are written to dir/marks.json.
func (m *MemoryMarker) Write(dir string) error {
	marks, err := m.Marks()
	if err != nil {
		return err
	}

	rows := make([]jsonMark, 0, len(marks))

	for _, mark := range marks {
		row := jsonMark{
			Id:       mark.Id,
			Symbol:   mark.Symbol,
			Time:     mark.Time.UTC().Format("2006-01-02T15:04:05Z07:00"),
			Price:    mark.Price,
			Color:    string(mark.Color),
			Shape:    string(mark.Shape),
			Title:    mark.Title,
			Message:  mark.Message,
			Category: mark.Category,
		}

		if mark.Signal.IsSome() {
			row.Signal = mark.Signal.Unwrap().Type.String()
			row.Reason = mark.Signal.Unwrap().Reason
		}

		rows = append(rows, row)
	}

	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeMarkerNotAvailable, "failed to encode marks", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeMarkerNotAvailable, "failed to create directory", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "marks.json"), data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeMarkerNotAvailable, "failed to write marks", err)
	}

	return nil
}

// Close implements Marker.
func (m *MemoryMarker) Close() error {
	return nil
}
