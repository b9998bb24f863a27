package uploader

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/ansh808s/cause-drop/internal/config"
)

// extension by accepted content type; campaign images only
var contentTypeExt = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
}

type SignedUpload struct {
	UploadURL string `json:"upload_url"`
	PublicURL string `json:"public_url"`
	Key       string `json:"key"`
}

// Presigner hands out short-lived S3 PUT URLs so image bytes never pass
// through this server.
type Presigner struct {
	presign   *s3.PresignClient
	bucket    string
	region    string
	prefix    string
	publicURL string
	endpoint  string
	expiry    time.Duration
}

func NewPresigner(ctx context.Context, cfg config.UploadConfig) (*Presigner, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.SecretID, cfg.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(normalizeEndpoint(cfg.Endpoint))
			o.UsePathStyle = true
		}
	})
	return &Presigner{
		presign:   s3.NewPresignClient(client),
		bucket:    cfg.Bucket,
		region:    cfg.Region,
		prefix:    strings.Trim(cfg.Prefix, "/"),
		publicURL: cfg.PublicURL,
		endpoint:  cfg.Endpoint,
		expiry:    time.Duration(cfg.PresignExpiryMin) * time.Minute,
	}, nil
}

// SignedPutURL builds an object key under the caller's namespace and
// returns a presigned PUT URL for it plus the public URL the stored
// object will be reachable at.
func (p *Presigner) SignedPutURL(ctx context.Context, userID, contentType string) (*SignedUpload, error) {
	ext, ok := contentTypeExt[strings.ToLower(strings.TrimSpace(contentType))]
	if !ok {
		return nil, fmt.Errorf("unsupported content type: %s", contentType)
	}
	key := buildObjectKey(p.prefix, userID, ext)

	out, err := p.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(p.expiry))
	if err != nil {
		return nil, fmt.Errorf("presign put: %w", err)
	}
	return &SignedUpload{
		UploadURL: out.URL,
		PublicURL: p.objectURL(key),
		Key:       key,
	}, nil
}

func (p *Presigner) objectURL(key string) string {
	base := strings.TrimSuffix(p.publicURL, "/")
	if base == "" && p.endpoint != "" {
		base = strings.TrimSuffix(normalizeEndpoint(p.endpoint), "/") + "/" + p.bucket
	}
	if base == "" {
		base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", p.bucket, p.region)
	}
	return base + "/" + strings.TrimPrefix(key, "/")
}

func buildObjectKey(prefix, userID, ext string) string {
	buf := make([]byte, 16)
	_, _ = rand.Read(buf)
	name := hex.EncodeToString(buf) + "." + ext
	if prefix != "" {
		return path.Join(prefix, userID, name)
	}
	return path.Join(userID, name)
}

func normalizeEndpoint(endpoint string) string {
	if endpoint == "" {
		return ""
	}
	if strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://") {
		return endpoint
	}
	u := url.URL{Scheme: "https", Host: endpoint}
	return u.String()
}
