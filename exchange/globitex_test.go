package exchange

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
)

const (
	testAPIKey    = "test-key"
	testAPISecret = "test-secret"
)

// newTestGlobitex builds a client pointed at a local test server.
func newTestGlobitex(t *testing.T, handler http.Handler) (*GlobitexClient, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := NewGlobitexClient(testAPIKey, testAPISecret, nil)
	client.baseURL = server.URL
	return client, server
}

func globitexSymbolsHandler(w http.ResponseWriter) {
	io.WriteString(w, `{"symbols":[
		{"symbol":"BTCEUR","priceIncrement":"0.01","sizeIncrement":"0.00001","sizeMin":"0.00001","currency":"EUR","commodity":"BTC"},
		{"symbol":"ETHEUR","priceIncrement":"0.01","sizeIncrement":"0.0001","sizeMin":"0.001","currency":"EUR","commodity":"ETH"}
	]}`)
}

func TestGlobitexLoadMarkets(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/1/public/symbols", func(w http.ResponseWriter, r *http.Request) {
		globitexSymbolsHandler(w)
	})
	client, _ := newTestGlobitex(t, mux)

	markets, err := client.LoadMarkets()
	if err != nil {
		t.Fatalf("load markets: %v", err)
	}
	market, ok := markets["BTC/EUR"]
	if !ok {
		t.Fatalf("BTC/EUR missing from %v", markets)
	}
	if market.ID != "BTCEUR" || market.Base != "BTC" || market.Quote != "EUR" {
		t.Fatalf("wrong market mapping: %+v", market)
	}
	if market.PriceIncrement == nil || *market.PriceIncrement != 0.01 {
		t.Fatalf("price increment not parsed: %+v", market.PriceIncrement)
	}

	// raw venue id resolves too
	byID, err := client.Market("ETHEUR")
	if err != nil {
		t.Fatalf("market by raw id: %v", err)
	}
	if byID.Symbol != "ETH/EUR" {
		t.Fatalf("wrong symbol for raw id: %q", byID.Symbol)
	}

	if _, err := client.Market("XRP/EUR"); !IsBadSymbol(err) {
		t.Fatalf("expected bad-symbol for unknown market, got %v", err)
	}
}

func TestGlobitexPrivateRequestSigning(t *testing.T) {
	var gotNonces []string
	mux := http.NewServeMux()
	mux.HandleFunc("/api/1/public/symbols", func(w http.ResponseWriter, r *http.Request) {
		globitexSymbolsHandler(w)
	})
	mux.HandleFunc("/api/1/trading/new_order", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
			t.Errorf("wrong content type %q", ct)
		}
		if key := r.Header.Get("X-API-Key"); key != testAPIKey {
			t.Errorf("wrong api key header %q", key)
		}
		body, _ := io.ReadAll(r.Body)
		nonce := r.Header.Get("X-Nonce")
		gotNonces = append(gotNonces, nonce)

		// recompute the signature over key, nonce, path and encoded params
		message := testAPIKey + "&" + nonce + "/api/1/trading/new_order" + "?" + string(body)
		want := hmacSHA512Hex(testAPISecret, message)
		if got := r.Header.Get("X-Signature"); got != want {
			t.Errorf("signature mismatch:\n got %s\nwant %s", got, want)
		}

		form, err := url.ParseQuery(string(body))
		if err != nil {
			t.Errorf("unparsable body: %v", err)
		}
		if form.Get("symbol") != "BTCEUR" || form.Get("side") != "buy" {
			t.Errorf("wrong wire fields: %v", form)
		}
		if form.Get("quantity") != "0.50000" {
			t.Errorf("quantity not formatted to size increment: %q", form.Get("quantity"))
		}
		if form.Get("price") != "20000.00" {
			t.Errorf("price not formatted to price increment: %q", form.Get("price"))
		}

		io.WriteString(w, `{"ExecutionReport":{"orderId":"58521038","clientOrderId":"cli-1","orderStatus":"new","symbol":"BTCEUR","side":"buy","type":"limit","timeInForce":"GTC","price":"20000.00","quantity":"0.50000","leavesQuantity":"0.50000","cumQuantity":"0","timestamp":1612325106789,"account":"ACC1"}}`)
	})
	client, _ := newTestGlobitex(t, mux)

	for i := 0; i < 3; i++ {
		order, err := client.CreateOrder("BTC/EUR", OrderTypeLimit, OrderSideBuy, 0.5, Float(20000), CreateOrderOptions{
			ClientOrderID: "cli-1",
			Extra:         Params{"account": "ACC1"},
		})
		if err != nil {
			t.Fatalf("create order %d: %v", i, err)
		}
		if order.ID != "58521038" || order.Status != OrderStatusOpen {
			t.Fatalf("wrong acknowledgement: %+v", order)
		}
		if order.Datetime != "2021-02-03T04:05:06.789Z" {
			t.Fatalf("wrong datetime: %q", order.Datetime)
		}
	}

	if len(gotNonces) != 3 {
		t.Fatalf("expected 3 signed requests, got %d", len(gotNonces))
	}
	prev, _ := strconv.ParseInt(gotNonces[0], 10, 64)
	for _, raw := range gotNonces[1:] {
		next, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			t.Fatalf("non-numeric nonce %q", raw)
		}
		if next <= prev {
			t.Fatalf("nonce not strictly increasing: %d after %d", next, prev)
		}
		prev = next
	}
}

func TestGlobitexCreateOrderValidatesBeforeTransmission(t *testing.T) {
	requests := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/api/1/public/symbols", func(w http.ResponseWriter, r *http.Request) {
		globitexSymbolsHandler(w)
	})
	mux.HandleFunc("/api/1/trading/new_order", func(w http.ResponseWriter, r *http.Request) {
		requests++
		io.WriteString(w, `{}`)
	})
	client, _ := newTestGlobitex(t, mux)
	account := Params{"account": "ACC1"}

	if _, err := client.CreateOrder("BTC/EUR", OrderTypeLimit, OrderSideBuy, 0, Float(100), CreateOrderOptions{Extra: account.Clone()}); !IsArgumentsRequired(err) {
		t.Fatalf("zero amount: expected arguments-required, got %v", err)
	}
	if _, err := client.CreateOrder("BTC/EUR", OrderTypeLimit, OrderSideBuy, 1, nil, CreateOrderOptions{Extra: account.Clone()}); !IsArgumentsRequired(err) {
		t.Fatalf("limit without price: expected arguments-required, got %v", err)
	}
	if _, err := client.CreateOrder("BTC/EUR", OrderTypeLimit, OrderSideBuy, 1, Float(100), CreateOrderOptions{TimeInForce: TimeInForceGTD, Extra: account.Clone()}); !IsInvalidOrder(err) {
		t.Fatalf("GTD without expireTime: expected invalid-order, got %v", err)
	}
	if _, err := client.CreateOrder("BTC/EUR", OrderTypeStopLimit, OrderSideSell, 1, Float(100), CreateOrderOptions{Extra: account.Clone()}); !IsArgumentsRequired(err) {
		t.Fatalf("stop without stopPrice: expected arguments-required, got %v", err)
	}
	if _, err := client.CreateOrder("BTC/EUR", OrderTypeLimit, OrderSideBuy, 1, Float(100), CreateOrderOptions{PostOnly: true, Extra: account.Clone()}); !IsNotSupported(err) {
		t.Fatalf("post-only: expected not-supported, got %v", err)
	}
	if _, err := client.CreateOrder("BTC/EUR", OrderTypeMarket, OrderSideBuy, 1, nil, CreateOrderOptions{PostOnly: true, Extra: account.Clone()}); !IsInvalidOrder(err) {
		t.Fatalf("post-only market: expected invalid-order, got %v", err)
	}

	if requests != 0 {
		t.Fatalf("%d requests reached the order endpoint, validation must happen first", requests)
	}
}

func TestGlobitexGetTradesDerivesCost(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/1/public/symbols", func(w http.ResponseWriter, r *http.Request) {
		globitexSymbolsHandler(w)
	})
	mux.HandleFunc("/api/1/public/trades/BTCEUR", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("formatItem") != "object" {
			t.Errorf("expected object format, got %q", r.URL.Query().Get("formatItem"))
		}
		io.WriteString(w, `{"trades":[
			{"tid":3,"date":300,"price":"150.0","amount":"10","side":"buy"},
			{"tid":1,"date":100,"price":"149.0","amount":"5","side":"sell"},
			{"tid":2,"date":200,"price":"","amount":"7","side":"buy"}
		]}`)
	})
	client, _ := newTestGlobitex(t, mux)

	trades, err := client.GetTrades("BTC/EUR", 0, 0)
	if err != nil {
		t.Fatalf("get trades: %v", err)
	}
	if len(trades) != 3 {
		t.Fatalf("expected 3 trades, got %d", len(trades))
	}
	// ascending by timestamp regardless of venue order
	if trades[0].ID != "1" || trades[1].ID != "2" || trades[2].ID != "3" {
		t.Fatalf("trades not sorted ascending: %+v", trades)
	}
	if trades[2].Cost == nil || *trades[2].Cost != 1500 {
		t.Fatalf("cost not derived: %+v", trades[2].Cost)
	}
	if trades[1].Cost != nil {
		t.Fatalf("missing price must leave cost nil, got %v", *trades[1].Cost)
	}

	// since and limit narrow to the earliest entries at or after the cut
	narrowed, err := client.GetTrades("BTC/EUR", 150, 1)
	if err != nil {
		t.Fatalf("narrowed trades: %v", err)
	}
	if len(narrowed) != 1 || narrowed[0].ID != "2" {
		t.Fatalf("expected the earliest trade at/after 150, got %+v", narrowed)
	}
}

func TestGlobitexCancelReject(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/1/public/symbols", func(w http.ResponseWriter, r *http.Request) {
		globitexSymbolsHandler(w)
	})
	mux.HandleFunc("/api/2/trading/cancel_order", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"CancelReject":{"clientOrderId":"cli-9","rejectReasonCode":"orderNotFound"}}`)
	})
	client, _ := newTestGlobitex(t, mux)

	_, err := client.CancelOrder("cli-9", "", Params{"account": "ACC1"})
	if !IsExchangeError(err) {
		t.Fatalf("expected a venue error, got %v", err)
	}
	var exchangeErr *ExchangeError
	if !errors.As(err, &exchangeErr) {
		t.Fatalf("not an ExchangeError: %v", err)
	}
	if exchangeErr.Code != "orderNotFound" || exchangeErr.Op != "cancelOrder" {
		t.Fatalf("reject reason not carried: %+v", exchangeErr)
	}
}

func TestGlobitexCancelOrderRequiresID(t *testing.T) {
	client := NewGlobitexClient(testAPIKey, testAPISecret, nil)
	if _, err := client.CancelOrder("", "", nil); !IsArgumentsRequired(err) {
		t.Fatalf("expected arguments-required, got %v", err)
	}
}

func TestGlobitexEmbeddedErrorEnvelope(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/1/payment/accounts", func(w http.ResponseWriter, r *http.Request) {
		// venue rejection delivered with a 200 status
		io.WriteString(w, `{"errors":[{"code":50,"message":""}]}`)
	})
	client, _ := newTestGlobitex(t, mux)

	_, err := client.LoadAccounts()
	if !IsExchangeError(err) {
		t.Fatalf("expected a venue error, got %v", err)
	}
	var exchangeErr *ExchangeError
	if !errors.As(err, &exchangeErr) {
		t.Fatalf("not an ExchangeError: %v", err)
	}
	if exchangeErr.Code != "50" || exchangeErr.Message != "Nonce is not monotonous" {
		t.Fatalf("error code not mapped: %+v", exchangeErr)
	}
}

func TestGlobitexGetBalances(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/1/payment/accounts", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"accounts":[
			{"account":"ACC1","main":true,"balance":[
				{"currency":"EUR","available":"100.5","reserved":"20.25"},
				{"currency":"BTC","available":"1.5","reserved":"0"}
			]}
		]}`)
	})
	client, _ := newTestGlobitex(t, mux)

	balances, err := client.GetBalances(nil)
	if err != nil {
		t.Fatalf("get balances: %v", err)
	}
	eur, ok := balances["EUR"]
	if !ok {
		t.Fatalf("EUR missing: %v", balances)
	}
	if eur.Free == nil || *eur.Free != 100.5 {
		t.Fatalf("wrong free balance: %+v", eur.Free)
	}
	if eur.Total == nil || *eur.Total != 120.75 {
		t.Fatalf("total must be available plus reserved: %+v", eur.Total)
	}
}

func TestGlobitexWithdrawValidation(t *testing.T) {
	requests := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		requests++
		io.WriteString(w, `{}`)
	})
	client, _ := newTestGlobitex(t, mux)

	// requestTime is mandatory for every payout
	_, err := client.Withdraw("BTC", 0.5, WithdrawOptions{Account: "ACC1", Address: "addr"})
	if !IsArgumentsRequired(err) {
		t.Fatalf("missing requestTime: expected arguments-required, got %v", err)
	}

	// crypto payouts need an address
	_, err = client.Withdraw("BTC", 0.5, WithdrawOptions{Account: "ACC1", Commission: Float(0.0005), Extra: Params{"requestTime": "1"}})
	if !IsArgumentsRequired(err) {
		t.Fatalf("missing address: expected arguments-required, got %v", err)
	}

	// and a commission
	_, err = client.Withdraw("BTC", 0.5, WithdrawOptions{Account: "ACC1", Address: "addr", Extra: Params{"requestTime": "1"}})
	if !IsArgumentsRequired(err) {
		t.Fatalf("missing commission: expected arguments-required, got %v", err)
	}

	// fiat payouts need a payment type and beneficiary account
	_, err = client.Withdraw("EUR", 100, WithdrawOptions{Account: "ACC1", Extra: Params{"requestTime": "1"}})
	if !IsArgumentsRequired(err) {
		t.Fatalf("missing paymentType: expected arguments-required, got %v", err)
	}
	_, err = client.Withdraw("EUR", 100, WithdrawOptions{Account: "ACC1", Extra: Params{"requestTime": "1", "paymentType": "internal"}})
	if !IsArgumentsRequired(err) {
		t.Fatalf("missing beneficiaryAccount: expected arguments-required, got %v", err)
	}

	// international transfers need a SWIFT code
	_, err = client.Withdraw("EUR", 100, WithdrawOptions{Account: "ACC1", Extra: Params{
		"requestTime": "1", "paymentType": "international", "beneficiaryAccount": "LT000000",
	}})
	if !IsArgumentsRequired(err) {
		t.Fatalf("missing beneficiarySwiftCode: expected arguments-required, got %v", err)
	}

	// intermediary details travel together or not at all
	_, err = client.Withdraw("EUR", 100, WithdrawOptions{Account: "ACC1", Extra: Params{
		"requestTime": "1", "paymentType": "internal", "beneficiaryAccount": "LT000000",
		"intermediaryAccount": "LT111111",
	}})
	if !IsArgumentsRequired(err) {
		t.Fatalf("lone intermediaryAccount: expected arguments-required, got %v", err)
	}

	if requests != 0 {
		t.Fatalf("%d requests reached the server, validation must happen first", requests)
	}
}

func TestGlobitexWithdrawCrypto(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/1/payment/payout/crypto", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		form, err := url.ParseQuery(string(body))
		if err != nil {
			t.Errorf("unparsable body: %v", err)
		}
		// the transaction signature covers the documented field order
		message := "requestTime=1612325106&amount=0.5&currency=BTC&account=ACC1&address=bc1qaddr&commission=0.0005"
		if got := form.Get("transactionSignature"); got != hmacSHA512Hex(testAPISecret, message) {
			t.Errorf("wrong transaction signature %q", got)
		}
		io.WriteString(w, `{"transactionCode":"tx-123"}`)
	})
	client, _ := newTestGlobitex(t, mux)

	tx, err := client.Withdraw("BTC", 0.5, WithdrawOptions{
		Account:    "ACC1",
		Address:    "bc1qaddr",
		Commission: Float(0.0005),
		Extra:      Params{"requestTime": "1612325106"},
	})
	if err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if tx.ID != "tx-123" {
		t.Fatalf("wrong transaction id %q", tx.ID)
	}
}

func TestGlobitexParseOrderStatus(t *testing.T) {
	cases := map[string]OrderStatus{
		"new":             OrderStatusOpen,
		"partiallyFilled": OrderStatusOpen,
		"suspended":       OrderStatusOpen,
		"filled":          OrderStatusClosed,
		"canceled":        OrderStatusCanceled,
		"expired":         OrderStatusExpired,
		"rejected":        OrderStatusRejected,
	}
	for raw, want := range cases {
		if got := parseOrderStatus(raw); got != want {
			t.Errorf("parseOrderStatus(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestGlobitexGetOrderBookDepth(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/1/public/symbols", func(w http.ResponseWriter, r *http.Request) {
		globitexSymbolsHandler(w)
	})
	mux.HandleFunc("/api/1/public/orderbook/BTCEUR", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"bids":[["100.0","1"],["99.5","2"],["99.0","3"]],"asks":[["100.5","1"],["101.0","2"]]}`)
	})
	client, _ := newTestGlobitex(t, mux)

	book, err := client.GetOrderBook("BTC/EUR", 2)
	if err != nil {
		t.Fatalf("get order book: %v", err)
	}
	if len(book.Bids) != 2 || len(book.Asks) != 2 {
		t.Fatalf("depth not applied: %d bids, %d asks", len(book.Bids), len(book.Asks))
	}
	if book.Bids[0].Price != 100.0 || book.Bids[0].Amount != 1 {
		t.Fatalf("wrong top of book: %+v", book.Bids[0])
	}
	if book.Symbol != "BTC/EUR" {
		t.Fatalf("wrong symbol %q", book.Symbol)
	}
}

func TestGlobitexPrivateRequiresCredentials(t *testing.T) {
	client := NewGlobitexClient("", "", nil)
	_, err := client.GetBalances(Params{"account": "ACC1"})
	if !IsAuthenticationError(err) {
		t.Fatalf("expected authentication error, got %v", err)
	}
}
