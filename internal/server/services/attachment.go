package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sc "github.com/dkrasnovs/notekeeper/internal/server/config"
	"github.com/dkrasnovs/notekeeper/internal/server/models"
	"github.com/dkrasnovs/notekeeper/internal/server/repositories/repomanager"
	"github.com/google/uuid"

	"github.com/dkrasnovs/notekeeper/internal/common"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// presignURLValidity bounds how long a client can use an upload or download
// link.
const presignURLValidity = 15 * time.Minute

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// AttachmentService manages note attachments. Blobs go to S3-compatible
// object storage via presigned URLs; this server only stores metadata and
// enforces that every attachment operation passes the owning note's guard.
type AttachmentService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *sc.Config
}

// NewAttachmentService constructs an AttachmentService.
func NewAttachmentService(db *sql.DB, m repomanager.RepositoryManager, cfg *sc.Config) *AttachmentService {
	return &AttachmentService{db: db, repomanager: m, config: cfg}
}

// GetRandomStorageKey produces a collision-free object key, sharded by date.
func GetRandomStorageKey() string {
	d := time.Now()
	return fmt.Sprintf("notes/%d/%d/%d/%v", d.Year(), d.Month(), d.Day(), uuid.New())
}

func (s *AttachmentService) getPresignClient() (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
	})

	return newS3PresignClient(client), nil
}

func (s *AttachmentService) presignedPutURL(ctx context.Context, key string) (string, error) {
	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", err
	}

	bucket := s.config.S3Bucket

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignURLValidity))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}

func (s *AttachmentService) presignedGetURL(ctx context.Context, key string) (string, error) {
	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", err
	}

	bucket := s.config.S3Bucket

	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignURLValidity))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}

// ownedNote fetches noteID and runs the ownership guard, so that every
// attachment operation is gated exactly like the note itself.
func (s *AttachmentService) ownedNote(ctx context.Context, principal *models.User, noteID string) (*models.Note, error) {
	note, err := s.repomanager.Notes(s.db).GetByID(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(principal, note.UserID); err != nil {
		return nil, err
	}
	return note, nil
}

// Attach registers a pending attachment on an owned note and returns the
// metadata together with a presigned PUT URL the client uploads to.
func (s *AttachmentService) Attach(ctx context.Context, principal *models.User, noteID, fileName string) (*models.Attachment, string, error) {
	if fileName == "" {
		return nil, "", fmt.Errorf("%w: file_name is required", common.ErrorValidation)
	}

	if _, err := s.ownedNote(ctx, principal, noteID); err != nil {
		return nil, "", err
	}

	key := GetRandomStorageKey()
	url, err := s.presignedPutURL(ctx, key)
	if err != nil {
		return nil, "", fmt.Errorf("error presigning upload: %w", err)
	}

	att := &models.Attachment{
		NoteID:       noteID,
		FileName:     fileName,
		StorageKey:   key,
		UploadStatus: models.UploadStatusPending,
	}

	att, err = s.repomanager.Attachments(s.db).Create(ctx, att)
	if err != nil {
		return nil, "", fmt.Errorf("error creating attachment: %w", err)
	}

	return att, url, nil
}

// Complete marks an attachment as uploaded after the client finished its
// presigned PUT.
func (s *AttachmentService) Complete(ctx context.Context, principal *models.User, noteID, attachmentID string) error {
	if _, err := s.ownedNote(ctx, principal, noteID); err != nil {
		return err
	}

	att, err := s.repomanager.Attachments(s.db).GetByID(ctx, attachmentID)
	if err != nil {
		return err
	}
	if att.NoteID != noteID {
		return common.ErrorNotFound
	}

	if err := s.repomanager.Attachments(s.db).MarkUploaded(ctx, attachmentID); err != nil {
		return fmt.Errorf("error updating attachment: %w", err)
	}
	return nil
}

// List returns the attachment metadata of an owned note.
func (s *AttachmentService) List(ctx context.Context, principal *models.User, noteID string) ([]*models.Attachment, error) {
	if _, err := s.ownedNote(ctx, principal, noteID); err != nil {
		return nil, err
	}

	result, err := s.repomanager.Attachments(s.db).SelectByNote(ctx, noteID)
	if err != nil {
		return nil, fmt.Errorf("error listing attachments: %w", err)
	}
	return result, nil
}

// DownloadURL returns a presigned GET URL for an uploaded attachment of an
// owned note.
func (s *AttachmentService) DownloadURL(ctx context.Context, principal *models.User, noteID, attachmentID string) (string, error) {
	if _, err := s.ownedNote(ctx, principal, noteID); err != nil {
		return "", err
	}

	att, err := s.repomanager.Attachments(s.db).GetByID(ctx, attachmentID)
	if err != nil {
		return "", err
	}
	if att.NoteID != noteID {
		return "", common.ErrorNotFound
	}
	if att.UploadStatus != models.UploadStatusUploaded {
		return "", fmt.Errorf("%w: attachment upload is not complete", common.ErrorValidation)
	}

	url, err := s.presignedGetURL(ctx, att.StorageKey)
	if err != nil {
		return "", fmt.Errorf("error presigning download: %w", err)
	}
	return url, nil
}
