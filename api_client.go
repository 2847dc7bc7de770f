package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-print"
)

// RegisterInput is the payload sent to the register endpoint.
type RegisterInput struct {
	FirstName    string   `json:"firstName"`
	LastName     string   `json:"lastName"`
	EmailAddress string   `json:"emailAddress"`
	Password     string   `json:"password"`
	Gender       string   `json:"gender"`
	Role         UserRole `json:"role"`
}

// RegisterResult is the server acknowledgment of a registration.
type RegisterResult struct {
	EmailAddress string `json:"emailAddress"`
	Message      string `json:"message"`
}

// LoginInput is the payload sent to the login endpoint.
type LoginInput struct {
	EmailAddress string `json:"emailAddress"`
	Password     string `json:"password"`
}

// LoginResult carries the credential set issued on a successful login.
type LoginResult struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// SendCodeInput requests a one-time code for the given account.
type SendCodeInput struct {
	EmailAddress string `json:"emailAddress"`
	UserID       string `json:"userId"`
}

// SendCodeResult acknowledges code delivery.
type SendCodeResult struct {
	Message string `json:"message"`
}

// VerifyCodeInput submits a one-time code for verification.
type VerifyCodeInput struct {
	EmailAddress string `json:"emailAddress"`
	OTPCode      string `json:"otpCode"`
}

// VerifyCodeResult acknowledges a verified account.
type VerifyCodeResult struct {
	EmailAddress string `json:"emailAddress"`
	Message      string `json:"message"`
}

// APIError is the structured rejection body the auth API returns on non-2xx
// responses. A 403 login rejection must carry Data with the account's
// emailAddress and userId.
type APIError struct {
	StatusCode int           `json:"statusCode"`
	Message    string        `json:"message"`
	Data       *APIErrorData `json:"data,omitempty"`
}

// APIErrorData identifies the account a rejection refers to.
type APIErrorData struct {
	EmailAddress string `json:"emailAddress"`
	UserID       string `json:"userId"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("auth api error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("auth api error: %s (status %d)", e.Message, e.StatusCode)
}

// envelope is the generic {success, data, message} wrapper every endpoint
// responds with.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// HTTPAPIClient implements APIClient over the JSON/HTTP contract of the auth
// backend. It never retries and honors context cancellation; retry policy
// belongs to callers, and the controller deliberately has none.
type HTTPAPIClient struct {
	baseURL string
	client  *http.Client
	logger  Logger
	debug   bool
}

// NewHTTPAPIClient returns a client rooted at baseURL.
func NewHTTPAPIClient(baseURL string) *HTTPAPIClient {
	return &HTTPAPIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
		logger:  defLogger{},
	}
}

func (c *HTTPAPIClient) WithLogger(logger Logger) *HTTPAPIClient {
	if logger != nil {
		c.logger = logger
	}
	return c
}

func (c *HTTPAPIClient) WithHTTPClient(client *http.Client) *HTTPAPIClient {
	if client != nil {
		c.client = client
	}
	return c
}

func (c *HTTPAPIClient) WithDebug(debug bool) *HTTPAPIClient {
	c.debug = debug
	return c
}

func (c *HTTPAPIClient) Register(ctx context.Context, input RegisterInput) (*RegisterResult, error) {
	env, err := c.post(ctx, "/register", input)
	if err != nil {
		return nil, err
	}

	result := &RegisterResult{Message: env.Message}
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, result); err != nil {
			return nil, fmt.Errorf("decode register response: %w", err)
		}
	}
	if result.Message == "" {
		result.Message = env.Message
	}
	return result, nil
}

func (c *HTTPAPIClient) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	env, err := c.post(ctx, "/login", input)
	if err != nil {
		return nil, err
	}

	result := &LoginResult{}
	if err := json.Unmarshal(env.Data, result); err != nil {
		return nil, fmt.Errorf("decode login response: %w", err)
	}
	return result, nil
}

func (c *HTTPAPIClient) SendVerificationCode(ctx context.Context, input SendCodeInput) (*SendCodeResult, error) {
	env, err := c.post(ctx, "/send-otp", input)
	if err != nil {
		return nil, err
	}
	return &SendCodeResult{Message: env.Message}, nil
}

func (c *HTTPAPIClient) VerifyCode(ctx context.Context, input VerifyCodeInput) (*VerifyCodeResult, error) {
	env, err := c.post(ctx, "/verify-otp", input)
	if err != nil {
		return nil, err
	}

	result := &VerifyCodeResult{Message: env.Message}
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, result); err != nil {
			return nil, fmt.Errorf("decode verify response: %w", err)
		}
	}
	if result.Message == "" {
		result.Message = env.Message
	}
	return result, nil
}

func (c *HTTPAPIClient) post(ctx context.Context, path string, body any) (*envelope, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	if c.debug {
		c.logger.Debug("POST %s %s", path, print.MaybePrettyJSON(body))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, decodeAPIError(res.StatusCode, raw)
	}

	env := &envelope{}
	if err := json.Unmarshal(raw, env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return env, nil
}

// decodeAPIError always yields an *APIError; bodies that do not parse still
// produce one carrying the HTTP status so classification stays uniform.
func decodeAPIError(status int, raw []byte) error {
	apiErr := &APIError{}
	if err := json.Unmarshal(raw, apiErr); err != nil || apiErr.StatusCode == 0 {
		apiErr.StatusCode = status
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}
	return apiErr
}
