package reputation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetReputation_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/score/0xabc":
			w.Write([]byte(`{"score": 1450}`))
		case "/api/v1/vouches/0xabc":
			w.Write([]byte(`{"vouches": [
				{"voucherAddress": "0x1111111111111111111111111111111111111111", "voucherName": "alice"},
				{"voucherAddress": "0x2222222222222222222222222222222222222222", "voucherName": ""},
				{"voucherAddress": "0x3333333333333333333333333333333333333333", "voucherName": "carol"},
				{"voucherAddress": "0x4444444444444444444444444444444444444444", "voucherName": "dora"}
			]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0, nil)
	rep := c.GetReputation(context.Background(), "0xABC")

	if rep.Score == nil || *rep.Score != 1450 {
		t.Fatalf("unexpected score: %v", rep.Score)
	}
	if len(rep.Vouchers) != 3 {
		t.Fatalf("expected top 3 vouchers, got %d", len(rep.Vouchers))
	}
	if rep.Vouchers[0].Name != "alice" {
		t.Fatalf("unexpected voucher name: %s", rep.Vouchers[0].Name)
	}
	// Missing names fall back to the shortened address.
	if rep.Vouchers[1].Name != "0x2222...2222" {
		t.Fatalf("unexpected fallback name: %s", rep.Vouchers[1].Name)
	}
}

func TestGetReputation_UpstreamFailureDegrades(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0, nil)
	rep := c.GetReputation(context.Background(), "0xabc")

	if rep.Score != nil {
		t.Fatalf("expected nil score, got %v", *rep.Score)
	}
	if len(rep.Vouchers) != 0 {
		t.Fatalf("expected no vouchers, got %d", len(rep.Vouchers))
	}
}

func TestGetReputation_NoBaseURL(t *testing.T) {
	c := NewClient("", 0, nil)
	rep := c.GetReputation(context.Background(), "0xabc")
	if rep.Score != nil || len(rep.Vouchers) != 0 {
		t.Fatalf("expected empty reputation from noop client")
	}
}
