package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"institute-events/internal/export"
	"institute-events/internal/status"
	"institute-events/models"
	"institute-events/monitoring"
)

// ExportDialog holds what the export dialog offers for selection.
type ExportDialog struct {
	Events     []models.Event `json:"events"`
	Months     []string       `json:"months"`
	Categories []string       `json:"categories"`
	Options    export.Options `json:"options"`
	Legend     []string       `json:"legend"`
}

// DocumentRequest is a document export submission. Settings override the
// user's saved preferences for this export only unless Remember is set.
type DocumentRequest struct {
	Settings  export.Settings  `json:"settings"`
	Selection export.Selection `json:"selection"`
	Remember  bool             `json:"remember"`
}

type ExportService struct {
	events   EventRepository
	settings *export.SettingsStore
	now      func() time.Time
}

func NewExportService(events EventRepository, settings *export.SettingsStore) *ExportService {
	return &ExportService{events: events, settings: settings, now: time.Now}
}

func (s *ExportService) Dialog(ctx context.Context, userID string) (ExportDialog, error) {
	events, err := s.events.List(ctx)
	if err != nil {
		return ExportDialog{}, err
	}
	opts, err := s.settings.Options(ctx, userID)
	if err != nil {
		return ExportDialog{}, err
	}
	return ExportDialog{
		Events:     events,
		Months:     export.Months(events),
		Categories: export.Categories(events),
		Options:    opts,
		Legend:     opts.Colors.Legend(),
	}, nil
}

// Spreadsheet renders the selected events as an XLSX workbook.
func (s *ExportService) Spreadsheet(ctx context.Context, sel export.Selection) (*bytes.Buffer, error) {
	events, err := s.events.List(ctx)
	if err != nil {
		return nil, err
	}
	start := s.now()
	buf, err := export.Spreadsheet(export.Select(events, sel))
	if err != nil {
		slog.Error("spreadsheet export failed", "error", err)
		return nil, err
	}
	monitoring.TrackExport("xlsx", time.Since(start))
	return buf, nil
}

// Document renders the selected events as the PDF calendar.
func (s *ExportService) Document(ctx context.Context, userID string, req DocumentRequest) (*bytes.Buffer, error) {
	events, err := s.events.List(ctx)
	if err != nil {
		return nil, err
	}
	opts, err := s.settings.Options(ctx, userID)
	if err != nil {
		return nil, err
	}
	opts = req.Settings.Apply(opts)
	opts.Selection = req.Selection

	if req.Remember {
		if err := s.SaveSettings(ctx, userID, req.Settings); err != nil {
			return nil, err
		}
	}

	start := s.now()
	buf, err := export.Document(events, opts, start)
	if err != nil {
		slog.Error("document export failed", "error", err)
		return nil, err
	}
	monitoring.TrackExport("pdf", time.Since(start))
	return buf, nil
}

func (s *ExportService) Settings(ctx context.Context, userID string) (export.Settings, error) {
	settings, _, err := s.settings.Get(ctx, userID)
	return settings, err
}

func (s *ExportService) SaveSettings(ctx context.Context, userID string, settings export.Settings) error {
	if settings.SubTitleColor != "" {
		if _, err := export.ParseHex(settings.SubTitleColor); err != nil {
			return fmt.Errorf("%w: %v", status.ErrValidation, err)
		}
	}
	return s.settings.Save(ctx, userID, settings)
}

func (s *ExportService) ClearSettings(ctx context.Context, userID string) error {
	return s.settings.Clear(ctx, userID)
}
