//go:build integration
// +build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"
)

var baseURL = getenv("E2E_BASE_URL", "http://localhost:8080")

func TestShop_E2E(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	waitReady(t, ctx, baseURL+"/readyz")

	// Start from a known-empty cart.
	doJSON(t, http.MethodDelete, baseURL+"/cart", nil, nil, 204)

	var products []struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}
	doJSON(t, http.MethodGet, baseURL+"/products", nil, &products, 200)
	if len(products) == 0 {
		t.Fatalf("expected non-empty products")
	}

	pid := products[0].ID

	var added struct {
		Action          string `json:"action"`
		CurrentQuantity int    `json:"current_quantity"`
	}
	addURL := fmt.Sprintf("%s/cart/add?product_id=%d&quantity=2", baseURL, pid)
	doJSON(t, http.MethodPost, addURL, nil, &added, 200)
	if added.Action != "added" || added.CurrentQuantity != 2 {
		t.Fatalf("add: %+v", added)
	}

	doJSON(t, http.MethodPost, addURL, nil, &added, 200)
	if added.Action != "updated" || added.CurrentQuantity != 4 {
		t.Fatalf("merge: %+v", added)
	}

	if os.Getenv("E2E_RESTART_SHOP") == "1" {
		restartShopContainer(t, ctx)
		waitReady(t, ctx, baseURL+"/readyz")
	}

	var items []struct {
		ProductID int64 `json:"product_id"`
		Quantity  int   `json:"quantity"`
	}
	doJSON(t, http.MethodGet, baseURL+"/cart/items", nil, &items, 200)
	if len(items) != 1 || items[0].ProductID != pid || items[0].Quantity != 4 {
		t.Fatalf("cart items: %+v", items)
	}

	var checkout struct {
		TotalCost string `json:"total_cost"`
	}
	doJSON(t, http.MethodGet, baseURL+"/cart/checkout", nil, &checkout, 200)
	if checkout.TotalCost == "" || checkout.TotalCost == "0" {
		t.Fatalf("total_cost: %q", checkout.TotalCost)
	}

	// Checkout clears the cart, so a second attempt is rejected.
	doJSON(t, http.MethodGet, baseURL+"/cart/checkout", nil, nil, 400)
}

func waitReady(t *testing.T, ctx context.Context, url string) {
	t.Helper()
	client := &http.Client{Timeout: 2 * time.Second}

	deadline := time.Now().Add(60 * time.Second)
	for time.Now().Before(deadline) {
		req, _ := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		resp, err := client.Do(req)
		if err == nil && resp != nil && resp.StatusCode == 200 {
			_ = resp.Body.Close()
			return
		}
		if resp != nil {
			_ = resp.Body.Close()
		}
		time.Sleep(500 * time.Millisecond)
	}
	t.Fatalf("service not ready: %s", url)
}

func doJSON(t *testing.T, method, url string, body any, out any, want int) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		t.Fatalf("%s %s: status=%d want=%d", method, url, resp.StatusCode, want)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
