package reputation

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Reputation is third-party trust data for a wallet address. It is
// fetched at display time and never persisted.
type Reputation struct {
	Score    *float64  `json:"score"`
	Vouchers []Voucher `json:"vouchers"`
}

type Voucher struct {
	Address string `json:"address"`
	Name    string `json:"name"`
}

const maxVouchers = 3

type Client interface {
	// GetReputation never returns an error to the caller; any upstream
	// failure degrades to an empty Reputation.
	GetReputation(ctx context.Context, address string) Reputation
}

type httpClient struct {
	baseURL string
	client  *http.Client
	logger  *log.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *log.Logger) Client {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return noopClient{}
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &httpClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

type scoreResponse struct {
	Score *float64 `json:"score"`
}

type vouchesResponse struct {
	Vouches []struct {
		VoucherAddress string `json:"voucherAddress"`
		VoucherName    string `json:"voucherName"`
	} `json:"vouches"`
}

func (c *httpClient) GetReputation(ctx context.Context, address string) Reputation {
	out := Reputation{Vouchers: []Voucher{}}
	address = strings.ToLower(strings.TrimSpace(address))
	if address == "" {
		return out
	}

	var wg sync.WaitGroup
	var score scoreResponse
	var vouches vouchesResponse
	var scoreErr, vouchErr error

	wg.Add(2)
	go func() {
		defer wg.Done()
		scoreErr = c.getJSON(ctx, "/api/v1/score/"+address, &score)
	}()
	go func() {
		defer wg.Done()
		vouchErr = c.getJSON(ctx, "/api/v1/vouches/"+address, &vouches)
	}()
	wg.Wait()

	if scoreErr == nil {
		out.Score = score.Score
	}
	if vouchErr == nil {
		for i, v := range vouches.Vouches {
			if i >= maxVouchers {
				break
			}
			name := strings.TrimSpace(v.VoucherName)
			if name == "" {
				name = shortAddress(v.VoucherAddress)
			}
			out.Vouchers = append(out.Vouchers, Voucher{Address: v.VoucherAddress, Name: name})
		}
	}
	return out
}

func (c *httpClient) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if c.logger != nil {
			c.logger.Printf("[Reputation] fetch error path=%s err=%v", path, err)
		}
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if c.logger != nil {
			c.logger.Printf("[Reputation] fetch failed path=%s status=%d", path, resp.StatusCode)
		}
		return fmt.Errorf("reputation fetch failed: status=%d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func shortAddress(addr string) string {
	if len(addr) < 10 {
		return addr
	}
	return addr[:6] + "..." + addr[len(addr)-4:]
}

type noopClient struct{}

func (noopClient) GetReputation(context.Context, string) Reputation {
	return Reputation{Vouchers: []Voucher{}}
}
