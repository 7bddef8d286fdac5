package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/fiberafrica/missioncontrol/internal/clock"
	"github.com/fiberafrica/missioncontrol/internal/document/domain"
	"github.com/fiberafrica/missioncontrol/internal/document/repository"
	"github.com/fiberafrica/missioncontrol/internal/providers/storage"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeStorage struct {
	objects map[string][]byte
	types   map[string]string
	expiry  time.Duration
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeStorage) Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	f.objects[key] = data
	f.types[key] = contentType
	return nil
}

func (f *fakeStorage) PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	f.expiry = expiry
	return "https://storage.local/documents/" + key + "?sig=test", nil
}

func (f *fakeStorage) Remove(ctx context.Context, key string) error {
	delete(f.objects, key)
	return nil
}

type fixture struct {
	svc     domain.Service
	storage *fakeStorage
	clock   *clock.FakeClock
}

func setup(t *testing.T, store storage.Provider) fixture {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Document{}))

	clk := clock.NewFakeClock(time.Date(2025, 5, 12, 10, 0, 0, 0, time.UTC))
	svc := New(Params{
		DB:      db,
		Log:     zap.NewNop(),
		Clock:   clk,
		Repo:    repository.Provide(),
		Storage: store,
	})
	fake, _ := store.(*fakeStorage)
	return fixture{svc: svc, storage: fake, clock: clk}
}

func upload(jobID, clientID string) domain.UploadRequest {
	body := "%PDF-1.4 as built"
	return domain.UploadRequest{
		ClientName:       "Maziv Fibre",
		ClientIdentifier: "MZV",
		ClientID:         clientID,
		JobType:          "drop_cable",
		Category:         domain.CategoryAsBuilt,
		CircuitNumber:    "FA-300",
		DropCableJobID:   jobID,
		UploadedBy:       "auth-user-1",
		Body:             strings.NewReader(body),
		Size:             int64(len(body)),
		ContentType:      "application/pdf",
	}
}

func TestUploadListAndDelete(t *testing.T) {
	f := setup(t, newFakeStorage())
	ctx := context.Background()
	jobID := uuid.NewString()

	doc, err := f.svc.Upload(ctx, upload(jobID, uuid.NewString()))
	require.NoError(t, err)
	assert.Equal(t, "Maziv Fibre/MZV/drop_cable/FA-300/asbuilt.pdf", doc.FilePath)
	assert.Equal(t, "asbuilt.pdf", doc.FileName)
	require.NotNil(t, doc.DropCableJobID)
	assert.Equal(t, jobID, *doc.DropCableJobID)
	assert.Nil(t, doc.LinkBuildJobID)
	assert.True(t, bytes.HasPrefix(f.storage.objects[doc.FilePath], []byte("%PDF")))
	assert.Equal(t, "application/pdf", f.storage.types[doc.FilePath])

	docs, err := f.svc.ListByJob(ctx, "drop_cable", jobID)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, doc.ID, docs[0].ID)

	other, err := f.svc.ListByJob(ctx, "drop_cable", uuid.NewString())
	require.NoError(t, err)
	assert.Empty(t, other)

	deleted, err := f.svc.Delete(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, doc.ID, deleted.ID)
	assert.Equal(t, doc.FilePath, deleted.FilePath)
	assert.Equal(t, "asbuilt.pdf", deleted.FileName)
	assert.NotContains(t, f.storage.objects, doc.FilePath)

	_, err = f.svc.Delete(ctx, doc.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUploadLinkBuild(t *testing.T) {
	f := setup(t, newFakeStorage())
	ctx := context.Background()
	jobID := uuid.NewString()

	req := upload("", uuid.NewString())
	req.JobType = "link_build"
	req.Category = ""
	req.CircuitNumber = ""
	req.LinkBuildJobID = jobID
	req.FileName = "splice report.pdf"

	doc, err := f.svc.Upload(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "Maziv Fibre/MZV/link_build/splice report.pdf", doc.FilePath)
	require.NotNil(t, doc.LinkBuildJobID)
	assert.Nil(t, doc.Category)

	docs, err := f.svc.ListByJob(ctx, "link_build", jobID)
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestUploadValidation(t *testing.T) {
	f := setup(t, newFakeStorage())
	ctx := context.Background()
	clientID := uuid.NewString()
	jobID := uuid.NewString()

	cases := []struct {
		name   string
		mutate func(*domain.UploadRequest)
		want   error
	}{
		{name: "job type", mutate: func(r *domain.UploadRequest) { r.JobType = "drop-cable" }, want: domain.ErrInvalidJobType},
		{name: "client name", mutate: func(r *domain.UploadRequest) { r.ClientName = " " }, want: domain.ErrInvalidClientName},
		{name: "client id", mutate: func(r *domain.UploadRequest) { r.ClientID = "x" }, want: domain.ErrInvalidClientID},
		{name: "job id", mutate: func(r *domain.UploadRequest) { r.DropCableJobID = "" }, want: domain.ErrInvalidJobID},
		{name: "category", mutate: func(r *domain.UploadRequest) { r.Category = "invoice" }, want: domain.ErrInvalidCategory},
		{name: "no name", mutate: func(r *domain.UploadRequest) { r.Category = "" }, want: domain.ErrMissingFileName},
		{name: "circuit", mutate: func(r *domain.UploadRequest) { r.CircuitNumber = "" }, want: domain.ErrMissingCircuitNumber},
		{name: "file", mutate: func(r *domain.UploadRequest) { r.Body = nil }, want: domain.ErrMissingFile},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := upload(jobID, clientID)
			tc.mutate(&req)
			_, err := f.svc.Upload(ctx, req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
	assert.Empty(t, f.storage.objects)
}

func TestSignedURL(t *testing.T) {
	f := setup(t, newFakeStorage())
	ctx := context.Background()

	doc, err := f.svc.Upload(ctx, upload(uuid.NewString(), uuid.NewString()))
	require.NoError(t, err)

	signed, err := f.svc.SignedURL(ctx, doc.ID, 0)
	require.NoError(t, err)
	assert.Contains(t, signed.URL, "asbuilt.pdf")
	assert.Equal(t, time.Hour, f.storage.expiry)
	assert.Equal(t, f.clock.Now().Add(time.Hour), signed.ExpiresAt)

	_, err = f.svc.SignedURL(ctx, doc.ID, 30*24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, domain.MaxURLExpiry, f.storage.expiry)

	byPath, err := f.svc.SignedURLForPath(ctx, doc.FilePath, 10*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, doc.FilePath, byPath.Path)
	assert.Equal(t, 10*time.Minute, f.storage.expiry)

	template, err := f.svc.SignedURLForPath(ctx, domain.HappyLetterTemplate, 0)
	require.NoError(t, err)
	assert.Equal(t, domain.HappyLetterTemplate, template.Path)

	_, err = f.svc.SignedURLForPath(ctx, "Other/secret.pdf", 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.svc.SignedURLForPath(ctx, " ", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidPath)
}

func TestUploadWithoutStorage(t *testing.T) {
	f := setup(t, &storage.NoOpProvider{})
	_, err := f.svc.Upload(context.Background(), upload(uuid.NewString(), uuid.NewString()))
	assert.ErrorIs(t, err, storage.ErrUnavailable)
}
