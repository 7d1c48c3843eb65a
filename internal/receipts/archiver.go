package receipts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ArchiveClient stores receipt documents for finalized orders in an
// S3-compatible bucket. Archival is best effort: the caller logs
// failures and moves on.
type ArchiveClient struct {
	client *s3.Client
	bucket string
}

func NewArchiveClient(ctx context.Context) (*ArchiveClient, error) {
	endpoint := os.Getenv("ARCHIVE_ENDPOINT")
	accessKey := os.Getenv("ARCHIVE_ACCESS_KEY")
	secretKey := os.Getenv("ARCHIVE_SECRET_KEY")
	bucket := os.Getenv("ARCHIVE_BUCKET_NAME")

	cfg, err := config.LoadDefaultConfig(
		ctx,
		config.WithRegion("auto"),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				accessKey,
				secretKey,
				"",
			),
		),
		config.WithEndpointResolverWithOptions(
			aws.EndpointResolverWithOptionsFunc(
				func(service, region string, options ...interface{}) (aws.Endpoint, error) {
					if service == s3.ServiceID {
						return aws.Endpoint{
							URL:           endpoint,
							SigningRegion: "auto",
						}, nil
					}
					return aws.Endpoint{}, &aws.EndpointNotFoundError{}
				},
			),
		),
	)
	if err != nil {
		return nil, err
	}

	return &ArchiveClient{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
	}, nil
}

// ArchiveReceipt marshals the receipt document and puts it under
// receipts/<order-id>.json.
func (a *ArchiveClient) ArchiveReceipt(ctx context.Context, orderID string, doc any) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	key := fmt.Sprintf("receipts/%s.json", orderID)
	contentType := "application/json"

	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &a.bucket,
		Key:         &key,
		Body:        bytes.NewReader(body),
		ContentType: &contentType,
	})
	return err
}
