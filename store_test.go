package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"gorm.io/gorm"
)

const gdprJSON = `[
  {"id": "g1", "question": "Who decides the purposes of processing?", "options": ["Controller", "Processor"], "answer": "Controller", "explanation": "Art. 4(7)"},
  {"question": "Maximum fine tier?", "options": ["2%", "4%"], "answer": "4%"}
]`

func TestParseQuestions(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    int
		wantErr bool
	}{
		{name: "array", raw: gdprJSON, want: 2},
		{name: "wrapper", raw: `{"questions": ` + gdprJSON + `}`, want: 2},
		{name: "leading whitespace", raw: "\n  " + gdprJSON, want: 2},
		{name: "empty array", raw: `[]`, want: 0},
		{name: "wrapper without questions", raw: `{}`, want: 0},
		{name: "malformed", raw: `[{"question": }]`, wantErr: true},
		{name: "not json", raw: `<html>`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseQuestions([]byte(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseQuestions() error = %v, wantErr %v", err, tt.wantErr)
			}
			if errors.Is(err, ErrSetTooLarge) != tt.tooLarge {
				t.Errorf("errors.Is(ErrSetTooLarge) = %v, want %v", !tt.tooLarge, tt.tooLarge)
			}
			if len(got) != tt.want {
				t.Errorf("len = %d, want %d", len(got), tt.want)
			}
		})
	}
}

func TestParseQuestionsFields(t *testing.T) {
	qs, err := parseQuestions([]byte(gdprJSON))
	if err != nil {
		t.Fatal(err)
	}
	got := qs[0]
	if got.ID != "g1" || got.Answer != "Controller" || got.Explanation != "Art. 4(7)" || !slices.Equal(got.Options, []string{"Controller", "Processor"}) {
		t.Errorf("question = %+v", got)
	}
	if qs[1].ID != "" {
		t.Errorf("second id = %q, want empty", qs[1].ID)
	}
}

func TestHTTPStoreFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/gdpr.json":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(gdprJSON))
		case "/broken.json":
			w.WriteHeader(http.StatusInternalServerError)
		case "/garbage.json":
			w.Write([]byte("not json"))
		case "/huge.json":
			w.Write([]byte("[" + strings.Repeat(" ", 2<<20) + "]"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	store := NewHTTPStore(srv.URL+"/", srv.Client(), 1<<20)

	tests := []struct {
		slug     string
		want     int
		wantErr  bool
		notFound bool
		tooLarge bool
	}{
		{slug: "gdpr", want: 2},
		{slug: "nis2", wantErr: true, notFound: true},
		{slug: "broken", wantErr: true},
		{slug: "garbage", wantErr: true},
		{slug: "huge", wantErr: true, tooLarge: true},
	}
	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			got, err := store.Fetch(context.Background(), tt.slug)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Fetch() error = %v, wantErr %v", err, tt.wantErr)
			}
			if errors.Is(err, ErrTopicNotFound) != tt.notFound {
				t.Errorf("errors.Is(ErrTopicNotFound) = %v, want %v", !tt.notFound, tt.notFound)
			}
			if len(got) != tt.want {
				t.Errorf("len = %d, want %d", len(got), tt.want)
			}
		})
	}
}

func TestReadCapped(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		limit   int64
		wantErr bool
	}{
		{name: "under", body: "abc", limit: 4},
		{name: "exact", body: "abcd", limit: 4},
		{name: "over", body: "abcde", limit: 4, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readCapped(strings.NewReader(tt.body), tt.limit)
			if tt.wantErr {
				if !errors.Is(err, ErrSetTooLarge) {
					t.Errorf("readCapped() error = %v, want ErrSetTooLarge", err)
				}
				return
			}
			if err != nil || string(got) != tt.body {
				t.Errorf("readCapped() = %q, %v, want %q", got, err, tt.body)
			}
		})
	}
}

func TestHTTPStoreHonorsContext(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := NewHTTPStore(srv.URL, srv.Client(), 1<<20).Fetch(ctx, "gdpr")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Fetch() error = %v, want deadline exceeded", err)
	}
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := OpenDB(filepath.Join(t.TempDir(), "quiz.db"))
	if err != nil {
		t.Fatalf("OpenDB: %v", err)
	}
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}
	return db
}

func writeSeed(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestSeedAndDBStore(t *testing.T) {
	db := openTestDB(t)
	dir := t.TempDir()
	writeSeed(t, dir, "gdpr.json", gdprJSON)
	writeSeed(t, dir, "nis2.json", `{"questions": [{"id": "n1", "question": "Essential entities?", "options": ["Yes", "No"], "answer": "Yes"}]}`)
	writeSeed(t, dir, "README.md", "ignored")

	empty, err := IsQuestionTableEmpty(db)
	if err != nil || !empty {
		t.Fatalf("IsQuestionTableEmpty() = %v, %v, want true", empty, err)
	}
	n, err := SeedFromDir(db, dir)
	if err != nil {
		t.Fatalf("SeedFromDir: %v", err)
	}
	if n != 3 {
		t.Errorf("seeded %d questions, want 3", n)
	}
	if empty, _ := IsQuestionTableEmpty(db); empty {
		t.Errorf("table still empty after seed")
	}

	store := NewDBStore(db)
	qs, err := store.Fetch(context.Background(), "gdpr")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(qs) != 2 {
		t.Fatalf("len = %d, want 2", len(qs))
	}
	if qs[0].ID != "g1" || qs[0].Explanation != "Art. 4(7)" || !slices.Equal(qs[0].Options, []string{"Controller", "Processor"}) {
		t.Errorf("first question = %+v", qs[0])
	}
	if qs[1].ID != "" || !slices.Equal(qs[1].Options, []string{"2%", "4%"}) {
		t.Errorf("second question = %+v", qs[1])
	}

	if _, err := store.Fetch(context.Background(), "dora"); !errors.Is(err, ErrTopicNotFound) {
		t.Errorf("Fetch unknown error = %v, want ErrTopicNotFound", err)
	}

	topics, err := store.Topics(context.Background())
	if err != nil {
		t.Fatalf("Topics: %v", err)
	}
	if !slices.Equal(topics, []string{"gdpr", "nis2"}) {
		t.Errorf("Topics() = %v, want [gdpr nis2]", topics)
	}
}

func TestSeedRejectsBadFiles(t *testing.T) {
	tests := []struct {
		name, file, content string
	}{
		{name: "invalid slug", file: "Bad Name.json", content: `[]`},
		{name: "malformed json", file: "gdpr.json", content: `[{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := openTestDB(t)
			dir := t.TempDir()
			writeSeed(t, dir, "ai-act.json", gdprJSON)
			writeSeed(t, dir, tt.file, tt.content)

			if _, err := SeedFromDir(db, dir); err == nil {
				t.Fatalf("SeedFromDir() succeeded, want error")
			}
			if empty, _ := IsQuestionTableEmpty(db); !empty {
				t.Errorf("partial seed was committed")
			}
		})
	}
}

func TestNewQuestionStore(t *testing.T) {
	db := openTestDB(t)
	tests := []struct {
		name    string
		cfg     StoreConfig
		check   func(QuestionStore) bool
		wantErr bool
	}{
		{
			name:  "db",
			cfg:   StoreConfig{Type: "db"},
			check: func(s QuestionStore) bool { _, ok := s.(*DBStore); return ok },
		},
		{
			name:  "http",
			cfg:   StoreConfig{Type: "http", BaseURL: "http://example.test/q", FetchTimeout: time.Second},
			check: func(s QuestionStore) bool { _, ok := s.(*HTTPStore); return ok },
		},
		{
			name: "minio",
			cfg:  StoreConfig{Type: "minio", MinioEndpoint: "localhost:9000", MinioBucket: "quiz", MinioPrefix: "questions/"},
			check: func(s QuestionStore) bool {
				m, ok := s.(*MinioStore)
				return ok && m.objectKey("gdpr") == "questions/gdpr.json"
			},
		},
		{
			name:    "unknown",
			cfg:     StoreConfig{Type: "ftp"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewQuestionStore(tt.cfg, db)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewQuestionStore() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil && !tt.check(s) {
				t.Errorf("NewQuestionStore() = %T", s)
			}
		})
	}
}
