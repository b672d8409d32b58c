package integration

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// postOperation fires one operation request without test assertions, so it is
// safe to call from worker goroutines. It returns 0 on transport errors.
func postOperation(serverURL, walletID, kind, amount string) int {
	body := fmt.Sprintf(`{"operation_type":%q,"amount":%q}`, kind, amount)
	resp, err := http.Post(serverURL+"/api/v1/wallets/"+walletID+"/operation",
		"application/json", bytes.NewBufferString(body))
	if err != nil {
		return 0
	}
	defer resp.Body.Close()
	_, _ = io.ReadAll(resp.Body)
	return resp.StatusCode
}

// TestConcurrentWithdrawals fires N identical withdrawals at one wallet and
// checks the ledger property: exactly k of them succeed where k*amount is the
// largest multiple of the amount not exceeding the starting balance, and the
// final balance equals start - k*amount. The transactor serializes the
// mutations, so no interleaving can overdraw the wallet.
func TestConcurrentWithdrawals(t *testing.T) {
	app := newTestApp(t)
	w := app.createWallet(t, "racer@example.com")

	resp, _ := app.applyOperation(t, w.ID, "DEPOSIT", "45.00")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	const n = 20
	var wg sync.WaitGroup
	results := make(chan int, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- postOperation(app.server.URL, w.ID, "WITHDRAW", "10.00")
		}()
	}
	wg.Wait()
	close(results)

	succeeded, rejected := 0, 0
	for code := range results {
		switch code {
		case http.StatusCreated:
			succeeded++
		case http.StatusUnprocessableEntity:
			rejected++
		default:
			t.Errorf("unexpected status code %d", code)
		}
	}

	// 45.00 / 10.00 => exactly 4 withdrawals fit.
	assert.Equal(t, 4, succeeded)
	assert.Equal(t, n-4, rejected)
	assert.Equal(t, "5.0000", app.balance(t, w.ID))

	// Ledger agrees with the stored balance.
	_, raw := app.get(t, "/api/v1/wallets/"+w.ID+"/audit")
	assert.Contains(t, string(raw), `"consistent":true`)
}

// TestConcurrentDeposits checks that no deposit is lost under contention.
func TestConcurrentDeposits(t *testing.T) {
	app := newTestApp(t)
	w := app.createWallet(t, "stacker@example.com")

	const n = 25
	var wg sync.WaitGroup
	results := make(chan int, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- postOperation(app.server.URL, w.ID, "DEPOSIT", "0.01")
		}()
	}
	wg.Wait()
	close(results)

	for code := range results {
		assert.Equal(t, http.StatusCreated, code)
	}
	assert.Equal(t, "0.2500", app.balance(t, w.ID))
}

// TestConcurrentCreate_SameEmail checks that only one of several racing
// creations with the same email wins.
func TestConcurrentCreate_SameEmail(t *testing.T) {
	app := newTestApp(t)

	const n = 10
	var wg sync.WaitGroup
	results := make(chan int, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			body := `{"email":"contested@example.com"}`
			resp, err := http.Post(app.server.URL+"/api/v1/wallets",
				"application/json", bytes.NewBufferString(body))
			if err != nil {
				results <- 0
				return
			}
			defer resp.Body.Close()
			_, _ = io.ReadAll(resp.Body)
			results <- resp.StatusCode
		}()
	}
	wg.Wait()
	close(results)

	created, conflicted := 0, 0
	for code := range results {
		switch code {
		case http.StatusCreated:
			created++
		case http.StatusConflict:
			conflicted++
		default:
			t.Errorf("unexpected status code %d", code)
		}
	}

	assert.Equal(t, 1, created)
	assert.Equal(t, n-1, conflicted)
}
