package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/evdnx/gohttpcl"
	"github.com/evdnx/golog"
	metrics "github.com/evdnx/gotrademetrics"
	"github.com/evdnx/gounify/models"
)

const (
	globitexHTTPTimeout    = 12 * time.Second
	globitexMarketCacheTTL = 30 * time.Minute
	globitexUserAgent      = "GoUnifyClient/1.0"
	globitexBaseURL        = "https://api.globitex.com"
	globitexPublicPrefix   = "/api/1/public/"

	globitexMaxResults = 1000
)

// globitexErrorMessages maps the venue's numeric error codes to readable
// descriptions, used when surfacing rejected requests.
var globitexErrorMessages = map[string]string{
	"20":  "Missing nonce",
	"30":  "Missing signature",
	"40":  "Invalid API key",
	"50":  "Nonce is not monotonous",
	"60":  "Nonce is not valid",
	"70":  "Wrong signature",
	"80":  "No permissions",
	"90":  "API key is not enabled",
	"100": "API key locked",
	"110": "Invalid client state",
	"120": "Invalid API key state",
	"130": "Trading suspended",
	"140": "REST API suspended",
	"200": "Mandatory parameter missing",
}

// GlobitexClient implements the unified Client interface for the Globitex
// exchange. Globitex is a spot venue: order, trade, ticker, order book,
// balance and payout operations are supported; candle and funding-rate
// series are not offered by its REST API.
type GlobitexClient struct {
	*BaseClient
	baseURL     string
	httpClient  *gohttpcl.Client
	metrics     *metrics.Metrics
	logger      *golog.Logger
	userAgent   string
	httpTimeout time.Duration
	nonce       *NonceSource

	marketMu       sync.RWMutex
	markets        map[string]*Market
	marketsByID    map[string]*Market
	marketsFetched time.Time

	accountMu      sync.RWMutex
	accounts       []Account
	accountsLoaded bool
}

// NewGlobitexClient creates a new Globitex API client.
func NewGlobitexClient(apiKey, apiSecret string, metricsClient *metrics.Metrics) *GlobitexClient {
	client := &GlobitexClient{
		BaseClient:  NewBaseClient("Globitex", apiKey, apiSecret, false),
		baseURL:     globitexBaseURL,
		metrics:     metricsClient,
		logger:      defaultLogger(),
		userAgent:   globitexUserAgent,
		httpTimeout: globitexHTTPTimeout,
		nonce:       NewNonceSource(),
	}
	client.httpClient = createGlobitexHTTPClient(metricsClient)
	return client
}

func createGlobitexHTTPClient(metricsClient *metrics.Metrics) *gohttpcl.Client {
	opts := []gohttpcl.Option{
		gohttpcl.WithTimeout(globitexHTTPTimeout),
		gohttpcl.WithMaxRetries(4),
		gohttpcl.WithMinBackoff(200 * time.Millisecond),
		gohttpcl.WithMaxBackoff(10 * time.Second),
		gohttpcl.WithBackoffFactor(2.0),
		gohttpcl.WithBackoffStrategy(gohttpcl.BackoffExponential),
		gohttpcl.WithRetryBudget(0.2, time.Minute),
	}
	if collector := newHTTPMetricsCollector(metricsClient, "Globitex"); collector != nil {
		opts = append(opts, gohttpcl.WithMetrics(collector))
	}
	return gohttpcl.New(opts...)
}

// Capabilities reports what the Globitex REST API offers.
func (c *GlobitexClient) Capabilities() Capabilities {
	return Capabilities{
		ServerTime:   true,
		Markets:      true,
		Ticker:       true,
		Tickers:      true,
		OrderBook:    true,
		Trades:       true,
		Balances:     true,
		Accounts:     true,
		CreateOrder:  true,
		CancelOrder:  true,
		CancelAll:    true,
		Order:        true,
		Orders:       true,
		OpenOrders:   true,
		ClosedOrders: true,
		MyTrades:     true,
		Withdraw:     true,
	}
}

// TypeOptions reports spot-only routing; Globitex lists no derivatives.
func (c *GlobitexClient) TypeOptions() TypeOptions {
	return TypeOptions{DefaultType: "spot"}
}

func (c *GlobitexClient) doPublic(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	fullURL := c.baseURL + globitexPublicPrefix + path
	if encoded := query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}
	opts := headerOptions(map[string]string{"User-Agent": c.userAgent})
	resp, err := c.httpClient.Get(ctx, fullURL, c.httpTimeout, nil, opts...)
	if err != nil {
		return nil, err
	}
	return c.readResponse(resp)
}

// doPrivate signs and sends an authenticated request. The signature covers
// apiKey + "&" + nonce + path + "?"-prefixed encoded parameters, HMAC-SHA512
// over the account secret. GET parameters travel in the query string, POST
// parameters form-urlencoded in the body.
func (c *GlobitexClient) doPrivate(ctx context.Context, method, path string, params url.Values) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if c.APIKey() == "" || c.APISecret() == "" {
		return nil, NewAuthenticationError(c.GetName(), "api key and secret are required for private endpoints")
	}
	encoded := params.Encode()
	request := ""
	if encoded != "" {
		request = "?" + encoded
	}
	nonce := c.nonce.NextString()
	message := c.APIKey() + "&" + nonce + path + request
	headers := map[string]string{
		"Content-Type": "application/x-www-form-urlencoded",
		"User-Agent":   c.userAgent,
		"X-API-Key":    c.APIKey(),
		"X-Nonce":      nonce,
		"X-Signature":  hmacSHA512Hex(c.APISecret(), message),
	}
	opts := headerOptions(headers)
	var resp *http.Response
	var err error
	switch method {
	case http.MethodGet:
		resp, err = c.httpClient.Get(ctx, c.baseURL+path+request, c.httpTimeout, nil, opts...)
	case http.MethodPost:
		resp, err = c.httpClient.Post(ctx, c.baseURL+path, strings.NewReader(encoded), c.httpTimeout, nil, opts...)
	default:
		return nil, fmt.Errorf("unsupported method %s", method)
	}
	if err != nil {
		return nil, err
	}
	return c.readResponse(resp)
}

func (c *GlobitexClient) readResponse(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, NewExchangeHTTPError(c.GetName(), resp.StatusCode, data, globitexErrorText(data))
	}
	// The venue can reject a request inside a 2xx body.
	var envelope struct {
		ErrorMessage string `json:"error_message"`
		Errors       []struct {
			Code    json.Number `json:"code"`
			Message string      `json:"message"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil {
		if len(envelope.Errors) > 0 {
			first := envelope.Errors[0]
			code := first.Code.String()
			msg := first.Message
			if known, ok := globitexErrorMessages[code]; ok {
				msg = known
			}
			return nil, NewExchangeError(ErrorTypeExchange, c.GetName(), code, msg, nil)
		}
		if envelope.ErrorMessage != "" {
			return nil, NewExchangeError(ErrorTypeExchange, c.GetName(), "error_message", envelope.ErrorMessage, nil)
		}
	}
	return data, nil
}

func globitexErrorText(body []byte) string {
	var envelope struct {
		Errors []struct {
			Code    json.Number `json:"code"`
			Message string      `json:"message"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Errors) > 0 {
		first := envelope.Errors[0]
		if known, ok := globitexErrorMessages[first.Code.String()]; ok {
			return known
		}
		if first.Message != "" {
			return first.Message
		}
	}
	return string(body)
}

// globitexSymbol describes an instrument from the public symbols endpoint.
type globitexSymbol struct {
	Symbol         string `json:"symbol"`
	PriceIncrement string `json:"priceIncrement"`
	SizeIncrement  string `json:"sizeIncrement"`
	SizeMin        string `json:"sizeMin"`
	Currency       string `json:"currency"`
	Commodity      string `json:"commodity"`
}

func (c *GlobitexClient) ensureMarkets(ctx context.Context) error {
	c.marketMu.RLock()
	valid := time.Since(c.marketsFetched) < globitexMarketCacheTTL && len(c.markets) > 0
	c.marketMu.RUnlock()
	if valid {
		return nil
	}
	c.marketMu.Lock()
	defer c.marketMu.Unlock()
	if time.Since(c.marketsFetched) < globitexMarketCacheTTL && len(c.markets) > 0 {
		return nil
	}
	data, err := c.doPublic(ctx, "symbols", nil)
	if err != nil {
		return err
	}
	var resp struct {
		Symbols []globitexSymbol `json:"symbols"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return NewParsingError(c.GetName(), "failed to decode symbols", err, data)
	}
	markets := make(map[string]*Market, len(resp.Symbols))
	byID := make(map[string]*Market, len(resp.Symbols))
	for _, raw := range resp.Symbols {
		base := strings.ToUpper(raw.Commodity)
		quote := strings.ToUpper(raw.Currency)
		market := &Market{
			ID:             raw.Symbol,
			Symbol:         base + "/" + quote,
			Base:           base,
			Quote:          quote,
			Type:           "spot",
			Active:         true,
			PriceIncrement: optFloat(raw.PriceIncrement),
			SizeIncrement:  optFloat(raw.SizeIncrement),
			SizeMin:        optFloat(raw.SizeMin),
			Info:           raw,
		}
		markets[market.Symbol] = market
		byID[market.ID] = market
	}
	c.markets = markets
	c.marketsByID = byID
	c.marketsFetched = time.Now()
	return nil
}

// LoadMarkets returns the market table keyed by unified symbol, fetching it
// on first use and refreshing after the cache TTL.
func (c *GlobitexClient) LoadMarkets() (map[string]*Market, error) {
	if err := c.ensureMarkets(context.Background()); err != nil {
		return nil, err
	}
	c.marketMu.RLock()
	defer c.marketMu.RUnlock()
	out := make(map[string]*Market, len(c.markets))
	for symbol, market := range c.markets {
		out[symbol] = market
	}
	return out, nil
}

// Market resolves a unified symbol ("GBX/ETH") or a raw venue id ("GBXETH").
func (c *GlobitexClient) Market(symbol string) (*Market, error) {
	if err := c.ensureMarkets(context.Background()); err != nil {
		return nil, err
	}
	c.marketMu.RLock()
	defer c.marketMu.RUnlock()
	if market, ok := c.markets[symbol]; ok {
		return market, nil
	}
	if market, ok := c.marketsByID[symbol]; ok {
		return market, nil
	}
	return nil, NewBadSymbol(c.GetName(), "market", "unknown symbol "+symbol)
}

// resolveMarket maps a raw venue id to a loaded market, falling back to the
// caller-supplied market when the id is unknown.
func (c *GlobitexClient) resolveMarket(marketID string, fallback *Market) *Market {
	c.marketMu.RLock()
	market := c.marketsByID[marketID]
	c.marketMu.RUnlock()
	if market != nil {
		return market
	}
	return fallback
}

func (c *GlobitexClient) ensureAccounts(ctx context.Context) error {
	c.accountMu.RLock()
	loaded := c.accountsLoaded
	c.accountMu.RUnlock()
	if loaded {
		return nil
	}
	data, err := c.doPrivate(ctx, http.MethodGet, "/api/1/payment/accounts", nil)
	if err != nil {
		return err
	}
	var resp struct {
		Accounts []globitexAccount `json:"accounts"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return NewParsingError(c.GetName(), "failed to decode accounts", err, data)
	}
	accounts := make([]Account, 0, len(resp.Accounts))
	for _, raw := range resp.Accounts {
		accounts = append(accounts, Account{ID: raw.Account, Main: raw.Main, Info: raw})
	}
	c.accountMu.Lock()
	if !c.accountsLoaded {
		c.accounts = accounts
		c.accountsLoaded = true
	}
	c.accountMu.Unlock()
	return nil
}

// globitexAccount is one entry of the payment accounts response.
type globitexAccount struct {
	Account string            `json:"account"`
	Main    bool              `json:"main"`
	Balance []globitexBalance `json:"balance"`
}

type globitexBalance struct {
	Currency  string `json:"currency"`
	Available string `json:"available"`
	Reserved  string `json:"reserved"`
}

// LoadAccounts returns the venue accounts, fetched once per client lifetime.
func (c *GlobitexClient) LoadAccounts() ([]Account, error) {
	if err := c.ensureAccounts(context.Background()); err != nil {
		return nil, err
	}
	c.accountMu.RLock()
	defer c.accountMu.RUnlock()
	out := make([]Account, len(c.accounts))
	copy(out, c.accounts)
	return out, nil
}

// resolveAccount picks the account for a private call: an explicit
// params["account"] wins, otherwise the first cached account is used.
func (c *GlobitexClient) resolveAccount(ctx context.Context, op string, params Params) (string, Params, error) {
	if account, ok := params.String("account"); ok && account != "" {
		return account, params.Omit("account"), nil
	}
	if err := c.ensureAccounts(ctx); err != nil {
		return "", params, err
	}
	c.accountMu.RLock()
	defer c.accountMu.RUnlock()
	if len(c.accounts) == 0 {
		return "", params, NewArgumentsRequired(c.GetName(), op, "an account parameter is required and no default account is available")
	}
	return c.accounts[0].ID, params.Omit("account"), nil
}

// GetServerTime returns the venue clock in milliseconds since epoch.
func (c *GlobitexClient) GetServerTime() (int64, error) {
	data, err := c.doPublic(context.Background(), "time", nil)
	if err != nil {
		return 0, err
	}
	var resp struct {
		Timestamp int64 `json:"timestamp"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return 0, NewParsingError(c.GetName(), "failed to decode server time", err, data)
	}
	return resp.Timestamp, nil
}

// globitexTicker is the raw ticker payload.
type globitexTicker struct {
	Symbol    string `json:"symbol"`
	Timestamp int64  `json:"timestamp"`
	High      string `json:"high"`
	Low       string `json:"low"`
	Bid       string `json:"bid"`
	Ask       string `json:"ask"`
	Open      string `json:"open"`
	Last      string `json:"last"`
	Volume    string `json:"volume"`
}

func (c *GlobitexClient) parseTicker(raw globitexTicker, market *Market) *Ticker {
	symbol := ""
	if market != nil {
		symbol = market.Symbol
	}
	last := optFloat(raw.Last)
	return &Ticker{
		Symbol:     symbol,
		Timestamp:  raw.Timestamp,
		Datetime:   iso8601(raw.Timestamp),
		High:       optFloat(raw.High),
		Low:        optFloat(raw.Low),
		Bid:        optFloat(raw.Bid),
		Ask:        optFloat(raw.Ask),
		Open:       optFloat(raw.Open),
		Last:       last,
		Close:      last,
		BaseVolume: optFloat(raw.Volume),
		Info:       raw,
	}
}

// GetTicker returns the ticker for one symbol.
func (c *GlobitexClient) GetTicker(symbol string) (*Ticker, error) {
	market, err := c.Market(symbol)
	if err != nil {
		return nil, err
	}
	data, err := c.doPublic(context.Background(), "ticker/"+market.ID, nil)
	if err != nil {
		return nil, err
	}
	var raw globitexTicker
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, NewParsingError(c.GetName(), "failed to decode ticker", err, data)
	}
	return c.parseTicker(raw, market), nil
}

// GetTickers returns tickers for all instruments, keyed by unified symbol.
func (c *GlobitexClient) GetTickers() (map[string]*Ticker, error) {
	if err := c.ensureMarkets(context.Background()); err != nil {
		return nil, err
	}
	data, err := c.doPublic(context.Background(), "ticker", nil)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Instruments []globitexTicker `json:"instruments"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, NewParsingError(c.GetName(), "failed to decode tickers", err, data)
	}
	out := make(map[string]*Ticker, len(resp.Instruments))
	for _, raw := range resp.Instruments {
		market := c.resolveMarket(raw.Symbol, nil)
		ticker := c.parseTicker(raw, market)
		if ticker.Symbol == "" {
			ticker.Symbol = raw.Symbol
		}
		out[ticker.Symbol] = ticker
	}
	return out, nil
}

// GetOrderBook returns the aggregated book for a symbol. A positive depth
// truncates both sides.
func (c *GlobitexClient) GetOrderBook(symbol string, depth int) (*models.OrderBook, error) {
	market, err := c.Market(symbol)
	if err != nil {
		return nil, err
	}
	data, err := c.doPublic(context.Background(), "orderbook/"+market.ID, nil)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Bids [][2]string `json:"bids"`
		Asks [][2]string `json:"asks"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, NewParsingError(c.GetName(), "failed to decode order book", err, data)
	}
	book := &models.OrderBook{
		Symbol:    market.Symbol,
		Bids:      parseBookSide(resp.Bids, depth),
		Asks:      parseBookSide(resp.Asks, depth),
		Timestamp: nowMillis(),
	}
	book.Datetime = iso8601(book.Timestamp)
	return book, nil
}

func parseBookSide(levels [][2]string, depth int) []models.OrderBookEntry {
	out := make([]models.OrderBookEntry, 0, len(levels))
	for _, level := range levels {
		price, err := strconv.ParseFloat(level[0], 64)
		if err != nil {
			continue
		}
		amount, err := strconv.ParseFloat(level[1], 64)
		if err != nil {
			continue
		}
		out = append(out, models.OrderBookEntry{Price: price, Amount: amount})
		if depth > 0 && len(out) == depth {
			break
		}
	}
	return out
}

// globitexPublicTrade is one public trade in object format.
type globitexPublicTrade struct {
	TID    json.Number `json:"tid"`
	Date   int64       `json:"date"`
	Price  string      `json:"price"`
	Amount string      `json:"amount"`
	Side   string      `json:"side"`
}

// GetTrades returns recent public trades for a symbol.
func (c *GlobitexClient) GetTrades(symbol string, since int64, limit int) ([]Trade, error) {
	if symbol == "" {
		return nil, NewArgumentsRequired(c.GetName(), "fetchTrades", "a symbol argument is required")
	}
	market, err := c.Market(symbol)
	if err != nil {
		return nil, err
	}
	query := url.Values{}
	query.Set("formatItem", "object")
	data, err := c.doPublic(context.Background(), "trades/"+market.ID, query)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Trades []globitexPublicTrade `json:"trades"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, NewParsingError(c.GetName(), "failed to decode trades", err, data)
	}
	trades := make([]Trade, 0, len(resp.Trades))
	for _, raw := range resp.Trades {
		trade := Trade{
			ID:        raw.TID.String(),
			Timestamp: raw.Date,
			Datetime:  iso8601(raw.Date),
			Symbol:    market.Symbol,
			Side:      OrderSideFromString(raw.Side),
			Price:     optFloat(raw.Price),
			Amount:    optFloat(raw.Amount),
			Info:      raw,
		}
		trade.DeriveCost()
		trades = append(trades, trade)
	}
	return sortAndFilter(trades,
		func(t Trade) int64 { return t.Timestamp },
		func(t Trade) string { return t.Symbol },
		"", since, limit), nil
}

// GetBalances returns the balances of the resolved account. Total is the sum
// of the available and reserved amounts.
func (c *GlobitexClient) GetBalances(params Params) (Balances, error) {
	ctx := context.Background()
	account, _, err := c.resolveAccount(ctx, "fetchBalance", params)
	if err != nil {
		return nil, err
	}
	data, err := c.doPrivate(ctx, http.MethodGet, "/api/1/payment/accounts", nil)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Accounts []globitexAccount `json:"accounts"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, NewParsingError(c.GetName(), "failed to decode balances", err, data)
	}
	var selected *globitexAccount
	for i := range resp.Accounts {
		if resp.Accounts[i].Account == account {
			selected = &resp.Accounts[i]
			break
		}
	}
	if selected == nil {
		return nil, NewNullResponse(c.GetName(), "fetchBalance", "account "+account+" not present in response")
	}
	balances := make(Balances, len(selected.Balance))
	for _, raw := range selected.Balance {
		free := optFloat(raw.Available)
		used := optFloat(raw.Reserved)
		balance := Balance{Free: free, Used: used}
		if free != nil && used != nil {
			total := *free + *used
			balance.Total = &total
		}
		balances[strings.ToUpper(raw.Currency)] = balance
	}
	return balances, nil
}

// globitexOrder is an order row from the recent/active order endpoints.
type globitexOrder struct {
	OrderID        string `json:"orderId"`
	ClientOrderID  string `json:"clientOrderId"`
	OrderStatus    string `json:"orderStatus"`
	Symbol         string `json:"symbol"`
	Side           string `json:"side"`
	Type           string `json:"type"`
	TimeInForce    string `json:"timeInForce"`
	LastTimestamp  int64  `json:"lastTimestamp"`
	OrderPrice     string `json:"orderPrice"`
	AvgPrice       string `json:"avgPrice"`
	OrderQuantity  string `json:"orderQuantity"`
	ExecQuantity   string `json:"execQuantity"`
	QuantityLeaves string `json:"quantityLeaves"`
	CumQuantity    string `json:"cumQuantity"`
	Account        string `json:"account"`
}

// globitexExecutionReport is the order acknowledgement envelope returned by
// the new_order and cancel_order endpoints.
type globitexExecutionReport struct {
	OrderID        string `json:"orderId"`
	ClientOrderID  string `json:"clientOrderId"`
	OrderStatus    string `json:"orderStatus"`
	Symbol         string `json:"symbol"`
	Side           string `json:"side"`
	Type           string `json:"type"`
	TimeInForce    string `json:"timeInForce"`
	Price          string `json:"price"`
	Quantity       string `json:"quantity"`
	AveragePrice   string `json:"averagePrice"`
	CumQuantity    string `json:"cumQuantity"`
	LeavesQuantity string `json:"leavesQuantity"`
	Timestamp      int64  `json:"timestamp"`
	Account        string `json:"account"`
}

// parseOrderStatus maps venue order states onto the unified set. Resting,
// partially filled and suspended orders are all open; only fully filled
// orders are closed.
func parseOrderStatus(status string) OrderStatus {
	switch status {
	case "new", "partiallyFilled", "suspended":
		return OrderStatusOpen
	case "filled":
		return OrderStatusClosed
	case "canceled", "cancelled":
		return OrderStatusCanceled
	case "expired":
		return OrderStatusExpired
	case "rejected":
		return OrderStatusRejected
	default:
		return OrderStatus(status)
	}
}

func parseOrderType(raw string) OrderType {
	if raw == "" {
		return OrderTypeLimit
	}
	return OrderTypeFromString(raw)
}

func (c *GlobitexClient) parseOrder(raw globitexOrder, fallback *Market) Order {
	market := c.resolveMarket(raw.Symbol, fallback)
	symbol := raw.Symbol
	if market != nil {
		symbol = market.Symbol
	}
	order := Order{
		ID:            raw.OrderID,
		ClientOrderID: raw.ClientOrderID,
		Timestamp:     raw.LastTimestamp,
		Datetime:      iso8601(raw.LastTimestamp),
		Symbol:        symbol,
		Type:          parseOrderType(raw.Type),
		Side:          OrderSideFromString(raw.Side),
		Status:        parseOrderStatus(raw.OrderStatus),
		TimeInForce:   TimeInForceFromString(raw.TimeInForce),
		Price:         optFloat(raw.OrderPrice),
		Amount:        optFloat(raw.OrderQuantity),
		Filled:        optFloat(raw.ExecQuantity),
		Remaining:     optFloat(raw.QuantityLeaves),
		Average:       optFloat(raw.AvgPrice),
		Info:          raw,
	}
	order.DeriveCost()
	return order
}

func (c *GlobitexClient) parseExecutedOrder(raw globitexExecutionReport, fallback *Market) Order {
	market := c.resolveMarket(raw.Symbol, fallback)
	symbol := raw.Symbol
	if market != nil {
		symbol = market.Symbol
	}
	order := Order{
		ID:            raw.OrderID,
		ClientOrderID: raw.ClientOrderID,
		Timestamp:     raw.Timestamp,
		Datetime:      iso8601(raw.Timestamp),
		Symbol:        symbol,
		Type:          parseOrderType(raw.Type),
		Side:          OrderSideFromString(raw.Side),
		Status:        parseOrderStatus(raw.OrderStatus),
		TimeInForce:   TimeInForceFromString(raw.TimeInForce),
		Price:         optFloat(raw.Price),
		Amount:        optFloat(raw.Quantity),
		Filled:        optFloat(raw.CumQuantity),
		Remaining:     optFloat(raw.LeavesQuantity),
		Average:       optFloat(raw.AveragePrice),
		Info:          raw,
	}
	order.DeriveCost()
	return order
}

// CreateOrder places an order. All argument validation happens before the
// request is signed or transmitted.
func (c *GlobitexClient) CreateOrder(symbol string, typ OrderType, side OrderSide, amount float64, price *float64, opts CreateOrderOptions) (*Order, error) {
	const op = "createOrder"
	ctx := context.Background()
	market, err := c.Market(symbol)
	if err != nil {
		return nil, err
	}
	extra := opts.Extra.Clone()

	resolvedType, postOnly, tif, extra, err := ResolvePostOnly(c.GetName(), typ, opts.TimeInForce, opts.PostOnly, extra)
	if err != nil {
		return nil, err
	}
	if postOnly {
		return nil, NewNotSupported(c.GetName(), op, "post-only orders are not supported by this venue")
	}
	typ = resolvedType

	if amount <= 0 {
		return nil, NewArgumentsRequired(c.GetName(), op, "amount must be greater than zero")
	}
	if typ == OrderTypeLimit && price == nil {
		return nil, NewArgumentsRequired(c.GetName(), op, "a price is required for limit orders")
	}

	expireTime := opts.ExpireTime
	if expireTime == "" {
		if v, ok := extra.String("expireTime"); ok {
			expireTime = v
			extra = extra.Omit("expireTime")
		}
	}
	if tif == TimeInForceGTD && expireTime == "" {
		return nil, NewInvalidOrder(c.GetName(), op, "an expireTime is required for GTD orders")
	}

	stopPrice := opts.StopPrice
	if stopPrice == nil {
		if v, ok := extra.Float("stopPrice"); ok {
			stopPrice = &v
		} else if v, ok := extra.Float("stop_price"); ok {
			stopPrice = &v
		}
	}
	extra = extra.Omit("stopPrice", "stop_price")
	isStop := typ == OrderTypeStopLimit || typ == OrderTypeStopMarket
	if isStop && stopPrice == nil {
		return nil, NewArgumentsRequired(c.GetName(), op, "a stopPrice is required for stop orders")
	}

	account, extra, err := c.resolveAccount(ctx, op, extra)
	if err != nil {
		return nil, err
	}

	request := url.Values{}
	request.Set("account", account)
	request.Set("type", typ.String())
	request.Set("side", side.String())
	request.Set("symbol", market.ID)
	request.Set("quantity", c.amountToPrecision(market, amount))
	if price != nil {
		request.Set("price", c.priceToPrecision(market, *price))
	}
	if tif != "" {
		request.Set("timeInForce", tif.String())
	}
	if expireTime != "" {
		request.Set("expireTime", expireTime)
	}
	if opts.ClientOrderID != "" {
		request.Set("clientOrderId", opts.ClientOrderID)
	}
	if isStop && stopPrice != nil {
		request.Set("stopPrice", c.priceToPrecision(market, *stopPrice))
	}
	applyParams(request, extra)

	data, err := c.doPrivate(ctx, http.MethodPost, "/api/1/trading/new_order", request)
	if err != nil {
		return nil, err
	}
	var resp struct {
		ExecutionReport *globitexExecutionReport `json:"ExecutionReport"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, NewParsingError(c.GetName(), "failed to decode order acknowledgement", err, data)
	}
	if resp.ExecutionReport == nil {
		return nil, NewNullResponse(c.GetName(), op, "no execution report in response")
	}
	order := c.parseExecutedOrder(*resp.ExecutionReport, market)
	c.logger.Info("order placed",
		golog.String("exchange", c.GetName()),
		golog.String("symbol", order.Symbol),
		golog.String("orderId", order.ID),
		golog.String("status", order.Status.String()),
	)
	return &order, nil
}

// CancelOrder cancels an order by client order id. A CancelReject response is
// surfaced as a descriptive error carrying the venue's reject reason.
func (c *GlobitexClient) CancelOrder(id, symbol string, params Params) (*Order, error) {
	const op = "cancelOrder"
	if id == "" {
		return nil, NewArgumentsRequired(c.GetName(), op, "a clientOrderId argument is required")
	}
	ctx := context.Background()
	var market *Market
	if symbol != "" {
		var err error
		market, err = c.Market(symbol)
		if err != nil {
			return nil, err
		}
	}
	account, params, err := c.resolveAccount(ctx, op, params)
	if err != nil {
		return nil, err
	}
	request := url.Values{}
	request.Set("clientOrderId", id)
	request.Set("account", account)
	applyParams(request, params)

	data, err := c.doPrivate(ctx, http.MethodPost, "/api/2/trading/cancel_order", request)
	if err != nil {
		return nil, err
	}
	var resp struct {
		ExecutionReport *globitexExecutionReport `json:"ExecutionReport"`
		CancelReject    *struct {
			ClientOrderID    string `json:"clientOrderId"`
			RejectReasonCode string `json:"rejectReasonCode"`
		} `json:"CancelReject"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, NewParsingError(c.GetName(), "failed to decode cancel acknowledgement", err, data)
	}
	if resp.ExecutionReport != nil {
		order := c.parseExecutedOrder(*resp.ExecutionReport, market)
		return &order, nil
	}
	if resp.CancelReject != nil {
		reason := resp.CancelReject.RejectReasonCode
		return nil, NewExchangeError(ErrorTypeExchange, c.GetName(), reason,
			"cancel of order "+id+" rejected: "+reason, nil).WithOp(op)
	}
	return nil, NewNullResponse(c.GetName(), op, "no acknowledgement in cancel response")
}

// CancelAllOrders cancels every open order on the account, narrowed to one
// symbol when given.
func (c *GlobitexClient) CancelAllOrders(symbol string, params Params) error {
	const op = "cancelAllOrders"
	ctx := context.Background()
	account, params, err := c.resolveAccount(ctx, op, params)
	if err != nil {
		return err
	}
	request := url.Values{}
	request.Set("account", account)
	if symbol != "" {
		market, err := c.Market(symbol)
		if err != nil {
			return err
		}
		request.Set("symbols", market.ID)
	}
	applyParams(request, params)
	_, err = c.doPrivate(ctx, http.MethodPost, "/api/1/trading/cancel_orders", request)
	return err
}

// GetOrder fetches one order by client order id. The venue keys this
// endpoint on the client-generated id, not the exchange id.
func (c *GlobitexClient) GetOrder(id, symbol string, params Params) (*Order, error) {
	const op = "fetchOrder"
	if id == "" {
		if v, ok := params.String("clientOrderId"); ok {
			id = v
		}
	}
	params = params.Omit("clientOrderId", "client_oid")
	if id == "" {
		return nil, NewArgumentsRequired(c.GetName(), op, "a clientOrderId argument is required")
	}
	ctx := context.Background()
	var market *Market
	if symbol != "" {
		var err error
		market, err = c.Market(symbol)
		if err != nil {
			return nil, err
		}
	}
	account, params, err := c.resolveAccount(ctx, op, params)
	if err != nil {
		return nil, err
	}
	request := url.Values{}
	request.Set("clientOrderId", id)
	request.Set("account", account)
	applyParams(request, params)
	data, err := c.doPrivate(ctx, http.MethodGet, "/api/1/trading/order", request)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Orders []globitexOrder `json:"orders"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, NewParsingError(c.GetName(), "failed to decode order", err, data)
	}
	if len(resp.Orders) == 0 {
		return nil, NewNullResponse(c.GetName(), op, "no order returned for clientOrderId "+id)
	}
	order := c.parseOrder(resp.Orders[0], market)
	return &order, nil
}

func (c *GlobitexClient) fetchOrders(ctx context.Context, op, path, symbol string, params Params) ([]Order, *Market, error) {
	account, params, err := c.resolveAccount(ctx, op, params)
	if err != nil {
		return nil, nil, err
	}
	request := url.Values{}
	request.Set("account", account)
	var market *Market
	if symbol != "" {
		market, err = c.Market(symbol)
		if err != nil {
			return nil, nil, err
		}
		request.Set("symbols", market.ID)
	}
	if _, ok := params.Int64("maxResults"); !ok {
		request.Set("maxResults", strconv.Itoa(globitexMaxResults))
	}
	applyParams(request, params)
	data, err := c.doPrivate(ctx, http.MethodGet, path, request)
	if err != nil {
		return nil, nil, err
	}
	var resp struct {
		Orders []globitexOrder `json:"orders"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, nil, NewParsingError(c.GetName(), "failed to decode orders", err, data)
	}
	orders := make([]Order, 0, len(resp.Orders))
	for _, raw := range resp.Orders {
		orders = append(orders, c.parseOrder(raw, market))
	}
	return orders, market, nil
}

// GetOrders returns recent orders on the account.
func (c *GlobitexClient) GetOrders(symbol string, since int64, limit int, params Params) ([]Order, error) {
	orders, _, err := c.fetchOrders(context.Background(), "fetchOrders", "/api/1/trading/orders/recent", symbol, params)
	if err != nil {
		return nil, err
	}
	return sortAndFilter(orders,
		func(o Order) int64 { return o.Timestamp },
		func(o Order) string { return o.Symbol },
		"", since, limit), nil
}

// GetOpenOrders returns the active orders on the account.
func (c *GlobitexClient) GetOpenOrders(symbol string, params Params) ([]Order, error) {
	orders, _, err := c.fetchOrders(context.Background(), "fetchOpenOrders", "/api/2/trading/orders/active", symbol, params)
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// GetClosedOrders returns fully filled orders. The venue is asked for every
// terminal state and the result is narrowed to closed, so partially executed
// leftovers never masquerade as completed fills.
func (c *GlobitexClient) GetClosedOrders(symbol string, since int64, limit int, params Params) ([]Order, error) {
	params = params.Clone()
	if _, ok := params.String("statuses"); !ok {
		params["statuses"] = "filled,canceled,expired,suspended"
	}
	orders, err := c.GetOrders(symbol, since, 0, params)
	if err != nil {
		return nil, err
	}
	closed := make([]Order, 0, len(orders))
	for _, order := range orders {
		if order.Status == OrderStatusClosed {
			closed = append(closed, order)
			if limit > 0 && len(closed) == limit {
				break
			}
		}
	}
	return closed, nil
}

// globitexTrade is one private execution row.
type globitexTrade struct {
	TradeID         json.Number `json:"tradeId"`
	Symbol          string      `json:"symbol"`
	Side            string      `json:"side"`
	OriginalOrderID string      `json:"originalOrderId"`
	ClientOrderID   string      `json:"clientOrderId"`
	ExecQuantity    string      `json:"execQuantity"`
	ExecPrice       string      `json:"execPrice"`
	Timestamp       int64       `json:"timestamp"`
	Fee             string      `json:"fee"`
	FeeCurrency     string      `json:"feeCurrency"`
	Account         string      `json:"account"`
}

func (c *GlobitexClient) parseTrade(raw globitexTrade, fallback *Market) Trade {
	market := c.resolveMarket(raw.Symbol, fallback)
	symbol := raw.Symbol
	if market != nil {
		symbol = market.Symbol
	}
	trade := Trade{
		ID:        raw.TradeID.String(),
		OrderID:   raw.OriginalOrderID,
		Timestamp: raw.Timestamp,
		Datetime:  iso8601(raw.Timestamp),
		Symbol:    symbol,
		Side:      OrderSideFromString(raw.Side),
		Price:     optFloat(raw.ExecPrice),
		Amount:    optFloat(raw.ExecQuantity),
		Info:      raw,
	}
	trade.DeriveCost()
	if feeCost := optFloat(raw.Fee); feeCost != nil {
		trade.Fee = &Fee{Cost: feeCost, Currency: raw.FeeCurrency}
	}
	return trade
}

// GetMyTrades returns the account's executions.
func (c *GlobitexClient) GetMyTrades(symbol string, since int64, limit int, params Params) ([]Trade, error) {
	const op = "fetchMyTrades"
	ctx := context.Background()
	account, params, err := c.resolveAccount(ctx, op, params)
	if err != nil {
		return nil, err
	}
	request := url.Values{}
	request.Set("account", account)
	var market *Market
	if symbol != "" {
		market, err = c.Market(symbol)
		if err != nil {
			return nil, err
		}
		request.Set("symbols", market.ID)
	}
	if _, ok := params.String("by"); !ok {
		request.Set("by", "ts")
	}
	if _, ok := params.Int64("startIndex"); !ok {
		request.Set("startIndex", "0")
	}
	if _, ok := params.Int64("maxResults"); !ok {
		request.Set("maxResults", strconv.Itoa(globitexMaxResults))
	}
	applyParams(request, params)
	data, err := c.doPrivate(ctx, http.MethodGet, "/api/1/trading/trades", request)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Trades []globitexTrade `json:"trades"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, NewParsingError(c.GetName(), "failed to decode trades", err, data)
	}
	trades := make([]Trade, 0, len(resp.Trades))
	for _, raw := range resp.Trades {
		trades = append(trades, c.parseTrade(raw, market))
	}
	return sortAndFilter(trades,
		func(t Trade) int64 { return t.Timestamp },
		func(t Trade) string { return t.Symbol },
		"", since, limit), nil
}

func isFiatCode(code string) bool {
	return code == "EUR" || code == "USD"
}

// Withdraw requests a payout. Fiat currencies route to the bank transfer
// endpoint and crypto currencies to the blockchain payout endpoint; each
// branch validates its mandatory fields and signs its own transaction
// message before anything touches the network.
func (c *GlobitexClient) Withdraw(code string, amount float64, opts WithdrawOptions) (*Transaction, error) {
	const op = "withdraw"
	ctx := context.Background()
	code = strings.ToUpper(code)
	params := opts.Extra.Clone()
	if opts.Account != "" {
		params["account"] = opts.Account
	}

	requestTime, ok := params.String("requestTime")
	if !ok || requestTime == "" {
		return nil, NewArgumentsRequired(c.GetName(), op, "a requestTime parameter is required")
	}
	params = params.Omit("requestTime")

	account, params, err := c.resolveAccount(ctx, op, params)
	if err != nil {
		return nil, err
	}

	amountStr := strconv.FormatFloat(amount, 'f', -1, 64)
	request := url.Values{}
	request.Set("currency", code)
	request.Set("amount", amountStr)
	request.Set("account", account)
	request.Set("requestTime", requestTime)

	var path string
	if isFiatCode(code) {
		path = "/api/1/payment/payout/bank"
		if err := c.buildBankPayout(request, params, op, requestTime, account, amountStr, code); err != nil {
			return nil, err
		}
	} else {
		path = "/api/1/payment/payout/crypto"
		if err := c.buildCryptoPayout(request, params, op, opts, requestTime, account, amountStr, code); err != nil {
			return nil, err
		}
	}

	data, err := c.doPrivate(ctx, http.MethodPost, path, request)
	if err != nil {
		return nil, err
	}
	var resp struct {
		TransactionCode string `json:"transactionCode"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, NewParsingError(c.GetName(), "failed to decode payout response", err, data)
	}
	var raw any
	_ = json.Unmarshal(data, &raw)
	return &Transaction{ID: resp.TransactionCode, Info: raw}, nil
}

// buildCryptoPayout validates and signs a blockchain payout. The transaction
// signature covers requestTime, amount, currency, account, address and
// commission in that order.
func (c *GlobitexClient) buildCryptoPayout(request url.Values, params Params, op string, opts WithdrawOptions, requestTime, account, amount, currency string) error {
	address := opts.Address
	if address == "" {
		if v, ok := params.String("address"); ok {
			address = v
		}
	}
	if address == "" {
		return NewArgumentsRequired(c.GetName(), op, "an address is required for crypto withdrawals")
	}
	commission := opts.Commission
	if commission == nil {
		if v, ok := params.Float("commission"); ok {
			commission = &v
		}
	}
	params = params.Omit("address", "commission")
	if commission == nil {
		return NewArgumentsRequired(c.GetName(), op, "a commission parameter is required for crypto withdrawals")
	}
	commissionStr := strconv.FormatFloat(*commission, 'f', -1, 64)
	request.Set("address", address)
	request.Set("commission", commissionStr)
	applyParams(request, params)

	message := "requestTime=" + requestTime +
		"&amount=" + amount +
		"&currency=" + currency +
		"&account=" + account +
		"&address=" + address +
		"&commission=" + commissionStr
	request.Set("transactionSignature", hmacSHA512Hex(c.APISecret(), message))
	return nil
}

// buildBankPayout validates and signs a fiat bank transfer. International
// transfers additionally require a beneficiary SWIFT code, and intermediary
// account details must be given both or not at all.
func (c *GlobitexClient) buildBankPayout(request url.Values, params Params, op, requestTime, account, amount, currency string) error {
	paymentType, _ := params.String("paymentType")
	if paymentType == "" {
		return NewArgumentsRequired(c.GetName(), op, "a paymentType parameter is required for fiat withdrawals")
	}
	beneficiaryAccount, _ := params.String("beneficiaryAccount")
	if beneficiaryAccount == "" {
		return NewArgumentsRequired(c.GetName(), op, "a beneficiaryAccount parameter is required for fiat withdrawals")
	}
	beneficiaryAccountType, _ := params.String("beneficiaryAccountType")
	beneficiaryName, _ := params.String("beneficiaryName")
	if beneficiaryName == "" && beneficiaryAccountType == "other" {
		return NewArgumentsRequired(c.GetName(), op, "a beneficiaryName parameter is required when beneficiaryAccountType is other")
	}
	if paymentType == "international" {
		if swift, _ := params.String("beneficiarySwiftCode"); swift == "" {
			return NewArgumentsRequired(c.GetName(), op, "a beneficiarySwiftCode parameter is required for international transfers")
		}
	}
	intermediaryAccount, _ := params.String("intermediaryAccount")
	intermediarySwiftCode, _ := params.String("intermediarySwiftCode")
	if intermediaryAccount != "" || intermediarySwiftCode != "" {
		if intermediaryAccount == "" {
			return NewArgumentsRequired(c.GetName(), op, "an intermediaryAccount parameter is required when intermediarySwiftCode is given")
		}
		if intermediarySwiftCode == "" {
			return NewArgumentsRequired(c.GetName(), op, "an intermediarySwiftCode parameter is required when intermediaryAccount is given")
		}
	}
	applyParams(request, params)

	message := "requestTime=" + requestTime +
		"&account=" + account +
		"&amount=" + amount +
		"&currency=" + currency +
		"&beneficiaryName=" + beneficiaryName +
		"&beneficiaryAccount=" + beneficiaryAccount
	request.Set("transactionSignature", hmacSHA512Hex(c.APISecret(), message))
	return nil
}

// amountToPrecision formats an amount using the market's size increment.
func (c *GlobitexClient) amountToPrecision(market *Market, amount float64) string {
	return formatToIncrement(amount, market.SizeIncrement)
}

// priceToPrecision formats a price using the market's price increment.
func (c *GlobitexClient) priceToPrecision(market *Market, price float64) string {
	return formatToIncrement(price, market.PriceIncrement)
}

// formatToIncrement renders value with exactly as many fraction digits as
// the increment carries.
func formatToIncrement(value float64, increment *float64) string {
	if increment == nil || *increment <= 0 {
		return strconv.FormatFloat(value, 'f', -1, 64)
	}
	return strconv.FormatFloat(value, 'f', decimalsOf(*increment), 64)
}

func decimalsOf(increment float64) int {
	text := strconv.FormatFloat(increment, 'f', -1, 64)
	if dot := strings.IndexByte(text, '.'); dot >= 0 {
		return len(text) - dot - 1
	}
	return 0
}

// applyParams copies passthrough parameters onto the wire request.
func applyParams(request url.Values, params Params) {
	for key := range params {
		if value, ok := params.String(key); ok {
			request.Set(key, value)
		}
	}
}

// optFloat parses a numeric string, returning nil for absent or unparsable
// values so a missing field never degrades to zero.
func optFloat(value string) *float64 {
	if value == "" {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}
	return &f
}

func nowMillis() int64 {
	return time.Now().UnixMilli()
}

func iso8601(ms int64) string {
	if ms <= 0 {
		return ""
	}
	return time.UnixMilli(ms).UTC().Format("2006-01-02T15:04:05.000Z")
}
