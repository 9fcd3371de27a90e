package stokerapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	models "stokercloud_gateway"
)

// Vendor endpoint paths under the API base.
const (
	loginPath          = "login.php"
	controllerDataPath = "controllerdata2.php"
	eventDataPath      = "geteventdata.php"
)

// Doer executes a single HTTP request. Satisfied by *http.Client; the client
// does not own the transport and never configures it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is a stateless StokerCloud API client. It maps requests to typed
// results and classifies every response; it holds no session state.
type Client struct {
	apiBase         string
	translationBase string
	screen          string
	doer            Doer
}

// NewClient constructs a client over the given transport. screen is the
// capability string the vendor web UI sends with controller-data requests.
func NewClient(apiBase, translationBase, screen string, doer Doer) *Client {
	return &Client{
		apiBase:         strings.TrimRight(apiBase, "/"),
		translationBase: strings.TrimRight(translationBase, "/"),
		screen:          screen,
		doer:            doer,
	}
}

// Login authenticates by account name alone and returns the session token.
func (c *Client) Login(ctx context.Context, username string) (models.LoginResult, error) {
	q := url.Values{}
	q.Set("user", username)

	payload, err := c.requestJSON(ctx, http.MethodPost, c.apiBase+"/"+loginPath, q)
	if err != nil {
		return models.LoginResult{}, err
	}

	obj, ok := payload.(map[string]any)
	if !ok {
		return models.LoginResult{}, &ProtocolError{Message: "unexpected login payload"}
	}
	// The vendor signals a usable session with the literal number 0; a string
	// "0" passes classification but is still not a successful login.
	if n, isNum := obj["status"].(json.Number); !isNum || !isZeroNumber(n) {
		return models.LoginResult{}, &AuthError{Message: messageText(obj, "Login failed")}
	}
	token, ok := obj["token"]
	if !ok {
		return models.LoginResult{}, &AuthError{Message: messageText(obj, "Login failed")}
	}

	result := models.LoginResult{Token: scalarString(token)}
	if creds, ok := obj["credentials"].(string); ok {
		result.Credentials = creds
	}
	if master, ok := obj["master"].(json.Number); ok {
		if v, err := master.Int64(); err == nil {
			result.Master = int(v)
		}
	}
	return result, nil
}

// ControllerData fetches one complete controller snapshot.
func (c *Client) ControllerData(ctx context.Context, token string) (models.ControllerSnapshot, error) {
	q := url.Values{}
	q.Set("screen", c.screen)
	q.Set("token", token)

	payload, err := c.requestJSON(ctx, http.MethodGet, c.apiBase+"/"+controllerDataPath, q)
	if err != nil {
		return nil, err
	}

	obj, ok := payload.(map[string]any)
	if !ok {
		return nil, &ProtocolError{Message: "unexpected controller data payload"}
	}
	if _, ok := obj["miscdata"]; !ok {
		return nil, &ProtocolError{Message: "unexpected controller data payload"}
	}
	return models.ControllerSnapshot(obj), nil
}

// EventData fetches one page of the furnace event log. Only raw extraction
// happens here; translation annotation and request-echo stamps are applied by
// the event coordinator.
func (c *Client) EventData(ctx context.Context, token string, count, offset int) (models.EventBatch, error) {
	q := url.Values{}
	q.Set("count", strconv.Itoa(count))
	q.Set("offset", strconv.Itoa(offset))
	q.Set("token", token)

	payload, err := c.requestJSON(ctx, http.MethodGet, c.apiBase+"/"+eventDataPath, q)
	if err != nil {
		return models.EventBatch{}, err
	}
	return models.EventBatch{Raw: payload, Events: ExtractEvents(payload)}, nil
}

// Translations fetches the code→text lookup table for the given language
// from the static-asset host. Non-string pairs are dropped silently.
func (c *Client) Translations(ctx context.Context, language string) (map[string]string, error) {
	payload, err := c.requestJSON(ctx, http.MethodGet, c.translationBase+"/"+language+".json", nil)
	if err != nil {
		return nil, err
	}

	obj, ok := payload.(map[string]any)
	if !ok {
		return nil, &ProtocolError{Message: "unexpected translation payload"}
	}
	table := make(map[string]string, len(obj))
	for key, value := range obj {
		if s, ok := value.(string); ok {
			table[key] = s
		}
	}
	return table, nil
}

// requestJSON executes one request and applies the shared response
// classification before any operation-specific checks. The vendor does not
// use HTTP status codes or content-type headers consistently, so errors are
// read from the decoded body alone.
func (c *Client) requestJSON(ctx context.Context, method, rawURL string, query url.Values) (any, error) {
	u := rawURL
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, nil)
	if err != nil {
		return nil, &ProtocolError{Message: "build request", Err: err}
	}

	resp, err := c.doer.Do(req)
	if err != nil {
		return nil, &ProtocolError{Message: "request failed", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ProtocolError{Message: "read response", Err: err}
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var payload any
	if err := dec.Decode(&payload); err != nil {
		return nil, &ProtocolError{Message: "invalid JSON response", Err: err}
	}

	switch payload.(type) {
	case map[string]any, []any:
	default:
		return nil, &ProtocolError{Message: "unexpected response type"}
	}

	if obj, ok := payload.(map[string]any); ok {
		if err := classify(obj); err != nil {
			return nil, err
		}
	}
	return payload, nil
}

// classify rejects object payloads whose status field signals an error.
// Absent, 0 and "0" statuses pass; 401/403 (number or string) and messages
// that look like token rejections become AuthError, everything else
// ProtocolError.
func classify(obj map[string]any) error {
	status, present := obj["status"]
	if !present || status == nil {
		return nil
	}
	s := scalarString(status)
	if s == "0" {
		return nil
	}
	if n, ok := status.(json.Number); ok && isZeroNumber(n) {
		return nil
	}

	message := messageText(obj, "Request failed")
	if s == "401" || s == "403" {
		return &AuthError{Message: message}
	}

	lowered := strings.ToLower(message)
	if strings.Contains(lowered, "token") {
		for _, hint := range []string{"expired", "invalid", "reject"} {
			if strings.Contains(lowered, hint) {
				return &AuthError{Message: message}
			}
		}
	}
	return &ProtocolError{Message: message}
}

// isZeroNumber reports whether n is numerically zero ("0", "0.0", ...).
func isZeroNumber(n json.Number) bool {
	f, err := n.Float64()
	return err == nil && f == 0
}

// messageText returns the payload's message field as text, or fallback.
func messageText(obj map[string]any, fallback string) string {
	if msg, ok := obj["message"]; ok {
		if s := scalarString(msg); s != "" {
			return s
		}
	}
	return fallback
}

// scalarString renders a decoded JSON scalar as text.
func scalarString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		if t {
			return "true"
		}
		return "false"
	case nil:
		return ""
	default:
		return ""
	}
}
