package service

import (
	"context"
	"path"
	"strings"
	"time"

	"github.com/fiberafrica/missioncontrol/internal/clock"
	"github.com/fiberafrica/missioncontrol/internal/document/domain"
	"github.com/fiberafrica/missioncontrol/internal/observability/logger"
	"github.com/fiberafrica/missioncontrol/internal/observability/metrics"
	"github.com/fiberafrica/missioncontrol/internal/providers/storage"
	"github.com/fiberafrica/missioncontrol/pkg/nullable"
	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	Clock   clock.Clock
	Repo    domain.Repository
	Storage storage.Provider
	Metrics *metrics.Metrics `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	clock   clock.Clock
	repo    domain.Repository
	storage storage.Provider
	metrics *metrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("document.service"),
		clock:   p.Clock,
		repo:    p.Repo,
		storage: p.Storage,
		metrics: p.Metrics,
	}
}

func (s *Service) Upload(ctx context.Context, req domain.UploadRequest) (domain.Document, error) {
	doc, err := s.prepare(req)
	if err != nil {
		return domain.Document{}, err
	}
	if req.Body == nil {
		return domain.Document{}, domain.ErrMissingFile
	}

	if err := s.storage.Upload(ctx, doc.FilePath, req.Body, req.Size, req.ContentType); err != nil {
		return domain.Document{}, err
	}
	if err := s.repo.Insert(ctx, s.db, &doc); err != nil {
		return domain.Document{}, err
	}

	s.metrics.RecordDocumentUpload(ctx, doc.JobType)
	logger.WithContext(ctx, s.log).Info("document uploaded",
		zap.String("document_id", doc.ID),
		zap.String("job_type", doc.JobType),
		zap.String("path", doc.FilePath),
		zap.Int64("size", req.Size),
	)
	return doc, nil
}

// prepare validates the upload and builds the metadata row.
func (s *Service) prepare(req domain.UploadRequest) (domain.Document, error) {
	jobType := strings.TrimSpace(req.JobType)
	if !domain.ValidJobType(jobType) {
		return domain.Document{}, domain.ErrInvalidJobType
	}
	clientName := strings.TrimSpace(req.ClientName)
	if clientName == "" {
		return domain.Document{}, domain.ErrInvalidClientName
	}
	clientID, err := parseUUID(req.ClientID, domain.ErrInvalidClientID)
	if err != nil {
		return domain.Document{}, err
	}

	rawJobID := firstNonEmpty(req.DropCableJobID, req.LinkBuildJobID, req.JobID)
	jobID, err := parseUUID(rawJobID, domain.ErrInvalidJobID)
	if err != nil {
		return domain.Document{}, err
	}

	category := strings.TrimSpace(req.Category)
	if category != "" && !domain.ValidCategory(category) {
		return domain.Document{}, domain.ErrInvalidCategory
	}
	if category == "" && strings.TrimSpace(req.FileName) == "" {
		return domain.Document{}, domain.ErrMissingFileName
	}

	circuit := strings.TrimSpace(req.CircuitNumber)
	if jobType == "drop_cable" && circuit == "" {
		return domain.Document{}, domain.ErrMissingCircuitNumber
	}

	filePath := domain.BuildPath(domain.PathInput{
		ClientName:       clientName,
		ClientIdentifier: req.ClientIdentifier,
		JobType:          jobType,
		CircuitNumber:    circuit,
		Category:         category,
		FileName:         req.FileName,
	})

	doc := domain.Document{
		ID:            uuid.NewString(),
		JobType:       jobType,
		ClientID:      clientID,
		Category:      nullable.String(&category),
		FilePath:      filePath,
		FileName:      path.Base(filePath),
		CircuitNumber: nullable.String(&circuit),
		UploadedBy:    nullable.String(&req.UploadedBy),
		CreatedAt:     s.clock.Now(),
	}
	if jobType == "link_build" {
		doc.LinkBuildJobID = &jobID
	} else {
		doc.DropCableJobID = &jobID
	}
	return doc, nil
}

func (s *Service) ListByJob(ctx context.Context, jobType, jobID string) ([]domain.Document, error) {
	jobType = strings.TrimSpace(jobType)
	if !domain.ValidJobType(jobType) {
		return nil, domain.ErrInvalidJobType
	}
	id, err := parseUUID(jobID, domain.ErrInvalidJobID)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.ListByJob(ctx, s.db, jobType, id)
	if err != nil {
		return nil, err
	}
	docs := make([]domain.Document, 0, len(rows))
	for _, row := range rows {
		if row != nil {
			docs = append(docs, *row)
		}
	}
	return docs, nil
}

func (s *Service) SignedURL(ctx context.Context, id string, expiry time.Duration) (domain.SignedURL, error) {
	doc, err := s.get(ctx, id)
	if err != nil {
		return domain.SignedURL{}, err
	}
	return s.presign(ctx, doc.FilePath, expiry)
}

func (s *Service) SignedURLForPath(ctx context.Context, key string, expiry time.Duration) (domain.SignedURL, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return domain.SignedURL{}, domain.ErrInvalidPath
	}
	if key != domain.HappyLetterTemplate {
		doc, err := s.repo.FindByPath(ctx, s.db, key)
		if err != nil {
			return domain.SignedURL{}, err
		}
		if doc == nil {
			return domain.SignedURL{}, domain.ErrNotFound
		}
	}
	return s.presign(ctx, key, expiry)
}

func (s *Service) Delete(ctx context.Context, id string) (domain.Document, error) {
	doc, err := s.get(ctx, id)
	if err != nil {
		return domain.Document{}, err
	}
	if err := s.storage.Remove(ctx, doc.FilePath); err != nil {
		return domain.Document{}, err
	}
	if err := s.repo.Delete(ctx, s.db, doc.ID); err != nil {
		return domain.Document{}, err
	}
	logger.WithContext(ctx, s.log).Info("document deleted", zap.String("document_id", doc.ID), zap.String("path", doc.FilePath))
	return *doc, nil
}

func (s *Service) get(ctx context.Context, id string) (*domain.Document, error) {
	id, err := parseUUID(id, domain.ErrInvalidID)
	if err != nil {
		return nil, err
	}
	doc, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	return doc, nil
}

func (s *Service) presign(ctx context.Context, key string, expiry time.Duration) (domain.SignedURL, error) {
	if expiry <= 0 {
		expiry = domain.DefaultURLExpiry
	}
	if expiry > domain.MaxURLExpiry {
		expiry = domain.MaxURLExpiry
	}
	url, err := s.storage.PresignedURL(ctx, key, expiry)
	if err != nil {
		return domain.SignedURL{}, err
	}
	return domain.SignedURL{
		URL:       url,
		Path:      key,
		ExpiresAt: s.clock.Now().Add(expiry),
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func parseUUID(value string, invalid error) (string, error) {
	id, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil {
		return "", invalid
	}
	return id.String(), nil
}
