package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/gorm"
)

// QuestionStore returns the raw question list of one topic. It is the only
// I/O boundary of a quiz load.
type QuestionStore interface {
	Fetch(ctx context.Context, slug string) ([]Question, error)
}

func NewQuestionStore(cfg StoreConfig, db *gorm.DB) (QuestionStore, error) {
	switch cfg.Type {
	case "db":
		return NewDBStore(db), nil
	case "http":
		return NewHTTPStore(cfg.BaseURL, &http.Client{Timeout: cfg.FetchTimeout}, cfg.MaxBytes), nil
	case "minio":
		return NewMinioStore(cfg)
	}
	return nil, fmt.Errorf("unknown store type %q", cfg.Type)
}

// parseQuestions accepts either [ ... ] or { "questions": [ ... ] }.
func parseQuestions(raw []byte) ([]Question, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '[' {
		var arr []Question
		if err := json.Unmarshal(raw, &arr); err != nil {
			return nil, fmt.Errorf("json parse: %w", err)
		}
		return arr, nil
	}
	var wrapper struct {
		Questions []Question `json:"questions"`
	}
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return nil, fmt.Errorf("json parse: %w", err)
	}
	return wrapper.Questions, nil
}

// readCapped reads r fully, failing with ErrSetTooLarge past limit bytes.
func readCapped(r io.Reader, limit int64) ([]byte, error) {
	raw, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(raw)) > limit {
		return nil, fmt.Errorf("%w (%d bytes)", ErrSetTooLarge, limit)
	}
	return raw, nil
}

// --- http ---

// HTTPStore reads {baseURL}/{slug}.json. No retries.
type HTTPStore struct {
	baseURL  string
	client   *http.Client
	maxBytes int64
}

func NewHTTPStore(baseURL string, client *http.Client, maxBytes int64) *HTTPStore {
	return &HTTPStore{baseURL: strings.TrimRight(baseURL, "/"), client: client, maxBytes: maxBytes}
}

func (s *HTTPStore) Fetch(ctx context.Context, slug string) ([]Question, error) {
	u := s.baseURL + "/" + url.PathEscape(slug) + ".json"
	ctx, span := tracer.Start(ctx, "HTTPStore.Fetch")
	defer span.End()
	span.SetAttributes(attribute.String("quiz.topic", slug), attribute.String("http.url", u))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := s.client.Do(req)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("fetch %s: %w", u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("fetch %s: %w", u, ErrTopicNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		span.SetStatus(codes.Error, resp.Status)
		return nil, fmt.Errorf("fetch %s: unexpected status %d", u, resp.StatusCode)
	}
	raw, err := readCapped(resp.Body, s.maxBytes)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("fetch %s: %w", u, err)
	}
	return parseQuestions(raw)
}

// --- minio ---

// MinioStore reads {prefix}{slug}.json from one bucket.
type MinioStore struct {
	client   *minio.Client
	bucket   string
	prefix   string
	maxBytes int64
}

func NewMinioStore(cfg StoreConfig) (*MinioStore, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, err
	}
	return &MinioStore{client: client, bucket: cfg.MinioBucket, prefix: cfg.MinioPrefix, maxBytes: cfg.MaxBytes}, nil
}

func (s *MinioStore) objectKey(slug string) string {
	return s.prefix + slug + ".json"
}

func (s *MinioStore) Fetch(ctx context.Context, slug string) ([]Question, error) {
	key := s.objectKey(slug)
	ctx, span := tracer.Start(ctx, "MinioStore.Fetch")
	defer span.End()
	span.SetAttributes(attribute.String("quiz.topic", slug), attribute.String("minio.key", key))

	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("get %s/%s: %w", s.bucket, key, err)
	}
	defer obj.Close()

	raw, err := readCapped(obj, s.maxBytes)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, fmt.Errorf("get %s/%s: %w", s.bucket, key, ErrTopicNotFound)
		}
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("get %s/%s: %w", s.bucket, key, err)
	}
	return parseQuestions(raw)
}
