package httpclient

import (
	"context"
	"net/url"
	"testing"

	"github.com/aalvaropc/rashi/internal/domain"
)

func TestBuildGetMergesQuery(t *testing.T) {
	params := url.Values{}
	params.Set("COMMAND", "'499'")
	params.Set("format", "json")

	req, err := BuildGet(context.Background(), "https://example.test/api?x=1", params)
	if err != nil {
		t.Fatalf("BuildGet error: %v", err)
	}

	q := req.URL.Query()
	if q.Get("x") != "1" || q.Get("COMMAND") != "'499'" || q.Get("format") != "json" {
		t.Fatalf("unexpected query %q", req.URL.RawQuery)
	}
	if req.Method != "GET" {
		t.Fatalf("expected GET, got %s", req.Method)
	}
}

func TestBuildGetEmptyURL(t *testing.T) {
	_, err := BuildGet(context.Background(), "  ", nil)
	if !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected KindInvalidConfig, got %v", err)
	}
}
