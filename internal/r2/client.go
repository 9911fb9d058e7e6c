package r2

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/url"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"

	"learnhub/internal/config"
)

// Client mirrors uploaded course PDFs to a Cloudflare R2 bucket so they can
// be served to students without going through the database.
type Client struct {
	s3Client   *s3.Client
	bucketName string
	publicURL  string
}

// NewClient creates an R2 client from configuration. It returns (nil, nil)
// when R2 is not configured; callers must treat a nil client as "uploads
// disabled" rather than an error.
func NewClient(cfg *config.Config) (*Client, error) {
	if !cfg.R2Enabled() {
		log.Println("WARN: Cloudflare R2 not fully configured. PDF uploads will be kept in the database only.")
		return nil, nil
	}

	r2Resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL: fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.R2AccountID),
		}, nil
	})

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithEndpointResolverWithOptions(r2Resolver),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.R2AccessKeyID, cfg.R2SecretAccessKey, "")),
		awsconfig.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS SDK config for R2: %w", err)
	}

	log.Printf("INFO: R2 client initialized for bucket '%s'", cfg.R2BucketName)
	return &Client{
		s3Client:   s3.NewFromConfig(awsCfg),
		bucketName: cfg.R2BucketName,
		publicURL:  cfg.R2PublicURL,
	}, nil
}

// UploadPDF stores a course PDF under "course_pdfs/<courseID>/<materialID>/<filename>"
// and returns its public URL.
func (c *Client) UploadPDF(ctx context.Context, courseID, materialID uuid.UUID, filename string, content []byte) (string, error) {
	if c == nil || c.s3Client == nil {
		return "", fmt.Errorf("R2 client not initialized")
	}

	objectKey := fmt.Sprintf("course_pdfs/%s/%s/%s", courseID.String(), materialID.String(), filename)

	_, err := c.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucketName),
		Key:         aws.String(objectKey),
		Body:        bytes.NewReader(content),
		ACL:         types.ObjectCannedACLPublicRead,
		ContentType: aws.String("application/pdf"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload PDF to R2 (key: %s): %w", objectKey, err)
	}

	baseURL, err := url.Parse(c.publicURL)
	if err != nil {
		return "", fmt.Errorf("invalid R2 public base URL configured: %w", err)
	}
	baseURL.Path = path.Join(baseURL.Path, objectKey)

	publicFileURL := baseURL.String()
	log.Printf("INFO: Uploaded course PDF to R2: %s", publicFileURL)
	return publicFileURL, nil
}
