package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/enervue/enervue/internal/config"
	"github.com/enervue/enervue/internal/observability/metrics"
	propertydomain "github.com/enervue/enervue/internal/property/domain"
	readingdomain "github.com/enervue/enervue/internal/reading/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB           *gorm.DB
	Log          *zap.Logger
	GenID        *snowflake.Node
	Cfg          config.Config
	Repo         readingdomain.Repository
	PropertyRepo propertydomain.Repository
	Metrics      *metrics.Metrics
}

type Service struct {
	db           *gorm.DB
	log          *zap.Logger
	repo         readingdomain.Repository
	propertyRepo propertydomain.Repository
	genID        *snowflake.Node
	cfg          config.Config
	metrics      *metrics.Metrics
}

func New(p Params) readingdomain.Service {
	return &Service{
		db:           p.DB,
		log:          p.Log.Named("reading.service"),
		repo:         p.Repo,
		propertyRepo: p.PropertyRepo,
		genID:        p.GenID,
		cfg:          p.Cfg,
		metrics:      p.Metrics,
	}
}

// ImportCSV parses uploaded content with partial-failure semantics: malformed
// rows are skipped and reported, and the import fails outright only when no
// row parses at all. Accepted rows are appended without deduplication against
// existing readings.
func (s *Service) ImportCSV(ctx context.Context, req readingdomain.ImportCSVRequest) (*readingdomain.ImportResult, error) {
	start := time.Now()

	ownerID, err := s.parseOwnerID(req.OwnerUserID)
	if err != nil {
		return nil, err
	}

	propertyID, err := s.resolveActiveProperty(ctx, ownerID, req.PropertyID)
	if err != nil {
		return nil, err
	}

	granularity := strings.TrimSpace(req.Granularity)
	if granularity == "" {
		granularity = readingdomain.GranularityHourly
	}
	if _, ok := readingdomain.Granularities[granularity]; !ok {
		return nil, readingdomain.ErrInvalidGranularity
	}

	if len(strings.TrimSpace(string(req.Content))) == 0 {
		return nil, readingdomain.ErrEmptyContent
	}

	importID := s.genID.Generate()
	now := time.Now().UTC()

	parsed := parseCSV(string(req.Content), s.cfg.Import.MaxRows)
	if parsed.tooManyRows {
		return nil, readingdomain.ErrTooManyRows
	}

	readings := make([]*readingdomain.MeterReading, 0, len(parsed.rows))
	for _, row := range parsed.rows {
		readings = append(readings, &readingdomain.MeterReading{
			ID:             s.genID.Generate(),
			PropertyID:     propertyID,
			Timestamp:      row.timestamp,
			ConsumptionKwh: row.consumptionKwh,
			ProductionKwh:  row.productionKwh,
			Granularity:    granularity,
			Source:         readingdomain.SourceCSVImport,
			ImportID:       importID,
			CreatedAt:      now,
		})
	}

	job := &readingdomain.ImportJob{
		ID:          importID,
		PropertyID:  propertyID,
		Filename:    strings.TrimSpace(req.Filename),
		Granularity: granularity,
		RowsTotal:   len(parsed.rows) + len(parsed.errors),
		CreatedAt:   now,
	}
	job.RowErrors = marshalRowErrors(parsed.errors)

	if len(readings) == 0 {
		job.Status = readingdomain.ImportStatusFailed
		job.RowsFailed = len(parsed.errors)
		if err := s.repo.InsertImportJob(ctx, s.db, job); err != nil {
			s.log.Warn("failed to record import job", zap.Error(err))
		}
		metrics.Import().IncJobRun(readingdomain.ImportStatusFailed)
		metrics.Import().ObserveJobDuration(readingdomain.ImportStatusFailed, time.Since(start))
		return nil, readingdomain.ErrNoValidRows
	}

	job.Status = readingdomain.ImportStatusCompleted
	job.RowsImported = len(readings)
	job.RowsFailed = len(parsed.errors)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.InsertBatch(ctx, tx, readings); err != nil {
			return err
		}
		return s.repo.InsertImportJob(ctx, tx, job)
	})
	if err != nil {
		metrics.Import().IncJobError(err)
		metrics.Import().IncJobRun(readingdomain.ImportStatusFailed)
		return nil, err
	}

	s.metrics.RecordReadingsIngested(ctx, readingdomain.SourceCSVImport, len(readings))
	s.metrics.RecordReadingsRejected(ctx, metrics.ImportRowReasonParseError, len(parsed.errors))
	metrics.Import().IncJobRun(readingdomain.ImportStatusCompleted)
	metrics.Import().ObserveJobDuration(readingdomain.ImportStatusCompleted, time.Since(start))
	metrics.Import().AddRowsAccepted(len(readings))
	metrics.Import().AddRowsRejected(metrics.ImportRowReasonParseError, len(parsed.errors))

	s.log.Info("csv import completed",
		zap.String("import_id", importID.String()),
		zap.String("property_id", propertyID.String()),
		zap.Int("rows_imported", len(readings)),
		zap.Int("rows_failed", len(parsed.errors)),
	)

	return &readingdomain.ImportResult{
		ImportID:         importID.String(),
		ReadingsImported: len(readings),
		Errors:           parsed.errors,
	}, nil
}

func (s *Service) List(ctx context.Context, req readingdomain.ListRequest) ([]readingdomain.Response, error) {
	ownerID, err := s.parseOwnerID(req.OwnerUserID)
	if err != nil {
		return nil, err
	}

	propertyID, err := s.resolveProperty(ctx, ownerID, req.PropertyID)
	if err != nil {
		return nil, err
	}

	granularity := strings.TrimSpace(req.Granularity)
	if granularity != "" {
		if _, ok := readingdomain.Granularities[granularity]; !ok {
			return nil, readingdomain.ErrInvalidGranularity
		}
	}

	items, err := s.repo.ListByProperty(ctx, s.db, propertyID, readingdomain.ListReadingFilter{
		From:        req.From,
		To:          req.To,
		Granularity: granularity,
		Limit:       req.Limit,
	})
	if err != nil {
		return nil, err
	}

	resp := make([]readingdomain.Response, 0, len(items))
	for _, item := range items {
		resp = append(resp, readingdomain.Response{
			ID:             item.ID.String(),
			PropertyID:     item.PropertyID.String(),
			Timestamp:      item.Timestamp,
			ConsumptionKwh: item.ConsumptionKwh,
			ProductionKwh:  item.ProductionKwh,
			Granularity:    item.Granularity,
			Source:         item.Source,
			CreatedAt:      item.CreatedAt,
		})
	}
	return resp, nil
}

func (s *Service) ListImports(ctx context.Context, ownerID, propertyID string) ([]readingdomain.ImportJobResponse, error) {
	owner, err := s.parseOwnerID(ownerID)
	if err != nil {
		return nil, err
	}

	propID, err := s.resolveProperty(ctx, owner, propertyID)
	if err != nil {
		return nil, err
	}

	jobs, err := s.repo.ListImportJobsByProperty(ctx, s.db, propID)
	if err != nil {
		return nil, err
	}

	resp := make([]readingdomain.ImportJobResponse, 0, len(jobs))
	for _, job := range jobs {
		resp = append(resp, readingdomain.ImportJobResponse{
			ID:           job.ID.String(),
			PropertyID:   job.PropertyID.String(),
			Filename:     job.Filename,
			Granularity:  job.Granularity,
			Status:       job.Status,
			RowsTotal:    job.RowsTotal,
			RowsImported: job.RowsImported,
			RowsFailed:   job.RowsFailed,
			RowErrors:    unmarshalRowErrors(job.RowErrors),
			CreatedAt:    job.CreatedAt,
		})
	}
	return resp, nil
}

func (s *Service) parseOwnerID(value string) (snowflake.ID, error) {
	ownerID, err := readingdomain.ParseID(strings.TrimSpace(value))
	if err != nil || ownerID == 0 {
		return 0, readingdomain.ErrInvalidOwner
	}
	return ownerID, nil
}

func (s *Service) resolveProperty(ctx context.Context, ownerID snowflake.ID, propertyID string) (snowflake.ID, error) {
	propID, err := readingdomain.ParseID(strings.TrimSpace(propertyID))
	if err != nil {
		return 0, readingdomain.ErrInvalidID
	}

	property, err := s.propertyRepo.FindByID(ctx, s.db, ownerID, propID)
	if err != nil {
		return 0, err
	}
	if property == nil {
		return 0, readingdomain.ErrPropertyNotFound
	}
	return propID, nil
}

func (s *Service) resolveActiveProperty(ctx context.Context, ownerID snowflake.ID, propertyID string) (snowflake.ID, error) {
	propID, err := readingdomain.ParseID(strings.TrimSpace(propertyID))
	if err != nil {
		return 0, readingdomain.ErrInvalidID
	}

	property, err := s.propertyRepo.FindByID(ctx, s.db, ownerID, propID)
	if err != nil {
		return 0, err
	}
	if property == nil || !property.Active {
		return 0, readingdomain.ErrPropertyNotFound
	}
	return propID, nil
}

func marshalRowErrors(rowErrors []readingdomain.RowError) datatypes.JSON {
	if len(rowErrors) == 0 {
		return datatypes.JSON("[]")
	}
	encoded, err := json.Marshal(rowErrors)
	if err != nil {
		return datatypes.JSON("[]")
	}
	return datatypes.JSON(encoded)
}

func unmarshalRowErrors(raw datatypes.JSON) []readingdomain.RowError {
	if len(raw) == 0 {
		return nil
	}
	var rowErrors []readingdomain.RowError
	if err := json.Unmarshal(raw, &rowErrors); err != nil {
		return nil
	}
	return rowErrors
}
