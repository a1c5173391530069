package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	sc "github.com/avelichko/skillswap/internal/server/config"
	"github.com/avelichko/skillswap/internal/server/repositories/repomanager"
)

type PhotoService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *sc.Config
}

func NewPhotoService(db *sql.DB, m repomanager.RepositoryManager, config *sc.Config) *PhotoService {
	return &PhotoService{
		db:          db,
		repomanager: m,
		config:      config,
	}
}

func photoStorageKey(userID string) string {
	return fmt.Sprintf("photos/%s/%v", userID, uuid.New())
}

func (s *PhotoService) getPresignClient() (*s3.PresignClient, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(s.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
	})

	return s3.NewPresignClient(client), nil
}

// PresignUpload issues a presigned PUT URL for the user's new profile photo
// and records the object key on the profile. The client performs the PUT
// directly against the storage backend.
func (s *PhotoService) PresignUpload(ctx context.Context, userID string) (string, string, error) {

	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", "", err
	}

	bucket := s.config.S3Bucket
	key := photoStorageKey(userID)

	req, err := presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", "", err
	}

	if err := s.repomanager.Users(s.db).SetPhotoKey(ctx, userID, key); err != nil {
		return "", "", err
	}

	return key, req.URL, nil
}

// PhotoURL renders the public object URL for a stored photo key, or "" when
// the user has no photo.
func (s *PhotoService) PhotoURL(key string) string {
	if key == "" {
		return ""
	}
	base := s.config.S3BaseEndpoint
	if base == "" {
		return key
	}
	if base[len(base)-1] != '/' {
		base += "/"
	}
	return base + s.config.S3Bucket + "/" + key
}
