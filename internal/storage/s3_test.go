package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/OFFIS-RIT/chatlens/internal/storage/storagetest"
)

func TestPutGetExists(t *testing.T) {
	t.Setenv("AWS_BUCKET", "chatlens-test")
	ctx := context.Background()
	mem := storagetest.New()

	ok, err := Exists(ctx, mem, "reports/a/result.json")
	if err != nil || ok {
		t.Fatalf("expected missing object, got %v, %v", ok, err)
	}

	if err := PutFile(ctx, mem, "reports/a/result.json", "application/json", []byte(`{}`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ok, err = Exists(ctx, mem, "reports/a/result.json")
	if err != nil || !ok {
		t.Fatalf("expected object to exist, got %v, %v", ok, err)
	}
	if ct := mem.ContentType("reports/a/result.json"); ct != "application/json" {
		t.Fatalf("unexpected content type %q", ct)
	}

	b, err := GetFile(ctx, mem, "reports/a/result.json")
	if err != nil || string(b) != "{}" {
		t.Fatalf("unexpected content %q, %v", b, err)
	}
	if _, err := GetFile(ctx, mem, "missing"); err == nil {
		t.Fatal("expected error for missing object")
	}
}

func TestDeleteFolder(t *testing.T) {
	ctx := context.Background()
	mem := storagetest.New()
	mem.Set(ReportKey("a", CSVFile), []byte("x"))
	mem.Set(ReportKey("a", PDFFile), []byte("x"))
	mem.Set(ReportKey("b", CSVFile), []byte("x"))

	keys, err := ListFilesWithPrefix(ctx, mem, ReportPrefix("a"))
	if err != nil || len(keys) != 2 {
		t.Fatalf("expected 2 keys, got %v, %v", keys, err)
	}

	if err := DeleteFolder(ctx, mem, ReportPrefix("a")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := mem.Keys(); len(got) != 1 || got[0] != "reports/b/report.csv" {
		t.Fatalf("unexpected remaining keys %v", got)
	}
}

func TestGenerateDownloadLink(t *testing.T) {
	t.Setenv("AWS_BUCKET", "chatlens")
	t.Setenv("AWS_PUBLIC_ENDPOINT", "https://files.example.com/s3")

	link, err := GenerateDownloadLink(context.Background(), storagetest.New(), ReportKey("job1", PDFFile))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(link, "https://files.example.com/s3/chatlens/reports/job1/report.pdf?") {
		t.Fatalf("unexpected link %s", link)
	}
	if !strings.Contains(link, "X-Amz-Signature=") {
		t.Fatalf("link is not signed: %s", link)
	}
}

func TestGenerateDownloadLinkInvalidEndpoint(t *testing.T) {
	t.Setenv("AWS_PUBLIC_ENDPOINT", "not a url")
	if _, err := GenerateDownloadLink(context.Background(), storagetest.New(), "k"); err == nil {
		t.Fatal("expected error for invalid public endpoint")
	}
}

func TestKeys(t *testing.T) {
	if got := TranscriptKey("abc"); got != "transcripts/abc.txt" {
		t.Fatalf("unexpected transcript key %q", got)
	}
	if got := ReportKey("abc", ErrorFile); got != "reports/abc/error.json" {
		t.Fatalf("unexpected report key %q", got)
	}
}
