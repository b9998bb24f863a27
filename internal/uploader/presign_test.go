package uploader

import (
	"strings"
	"testing"
)

func TestBuildObjectKey(t *testing.T) {
	key := buildObjectKey("uploads", "user-1", "png")
	if !strings.HasPrefix(key, "uploads/user-1/") {
		t.Fatalf("unexpected key prefix: %s", key)
	}
	if !strings.HasSuffix(key, ".png") {
		t.Fatalf("unexpected key suffix: %s", key)
	}
	other := buildObjectKey("uploads", "user-1", "png")
	if key == other {
		t.Fatal("object keys must not collide across calls")
	}
}

func TestBuildObjectKeyNoPrefix(t *testing.T) {
	key := buildObjectKey("", "user-1", "jpg")
	if !strings.HasPrefix(key, "user-1/") {
		t.Fatalf("unexpected key: %s", key)
	}
}

func TestNormalizeEndpoint(t *testing.T) {
	if got := normalizeEndpoint("s3.example.com"); got != "https://s3.example.com" {
		t.Fatalf("unexpected endpoint: %s", got)
	}
	if got := normalizeEndpoint("http://minio:9000"); got != "http://minio:9000" {
		t.Fatalf("scheme should be preserved: %s", got)
	}
	if got := normalizeEndpoint(""); got != "" {
		t.Fatalf("empty endpoint should stay empty: %s", got)
	}
}

func TestContentTypeAllowlist(t *testing.T) {
	for _, ct := range []string{"image/jpeg", "image/png", "image/gif", "image/webp"} {
		if _, ok := contentTypeExt[ct]; !ok {
			t.Fatalf("expected %s to be accepted", ct)
		}
	}
	if _, ok := contentTypeExt["application/pdf"]; ok {
		t.Fatal("unexpected content type accepted")
	}
}
