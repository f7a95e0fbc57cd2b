package client

import (
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"

	"vigi-cli/internal/auth"
)

// errCodeSessionExpired is the camera's error_code for a rejected or expired
// stok, the same code a failed login returns.
const errCodeSessionExpired = -40401

// Config carries everything needed to reach one camera. Credentials are
// caller-supplied; there is no process-wide state.
type Config struct {
	Host     string // camera IP or hostname, no scheme
	Username string
	Password string
}

// VigiClient owns one authenticated session against a VIGI camera's HTTPS
// control endpoint. It is not safe to interleave Logout-style invalidation
// with in-flight requests; callers wanting that need their own
// synchronization.
type VigiClient struct {
	HTTP   *resty.Client
	Config Config

	stok       string
	alarmReady bool
}

// loginResponse captures the session token returned by the login call.
type loginResponse struct {
	ErrorCode int    `json:"error_code"`
	Stok      string `json:"stok"`
}

// encryptInfoResponse is the first phase of the login handshake.
type encryptInfoResponse struct {
	ErrorCode int `json:"error_code"`
	Data      struct {
		Nonce string `json:"nonce"`
		Key   string `json:"key"`
	} `json:"data"`
}

// envelope is the minimal shape every /ds response shares.
type envelope struct {
	ErrorCode int `json:"error_code"`
}

func New(cfg Config) *VigiClient {
	r := resty.New()
	// The camera always serves the control API on 443 with a self-signed
	// certificate and negotiates only AES256-GCM-SHA384.
	r.SetBaseURL(fmt.Sprintf("https://%s:443", cfg.Host))
	r.SetHeader("Accept", "application/json")
	r.SetHeader("Content-Type", "application/json; charset=UTF-8")
	r.SetTLSClientConfig(&tls.Config{
		InsecureSkipVerify: true,
		CipherSuites: []uint16{
			tls.TLS_RSA_WITH_AES_256_GCM_SHA384,
			tls.TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384,
		},
	})

	return &VigiClient{
		HTTP:   r,
		Config: cfg,
	}
}

// Authenticate performs the camera's two-phase login: fetch nonce and RSA key,
// then send the RSA-encrypted MD5 password hash. On success the session token
// is kept for subsequent calls. There is no retry and no automatic refresh.
func (c *VigiClient) Authenticate() error {
	c.stok = ""

	var info encryptInfoResponse
	resp, err := c.HTTP.R().
		SetBody(map[string]interface{}{
			"user_management": map[string]interface{}{"get_encrypt_info": nil},
			"method":          "do",
		}).
		SetResult(&info).
		Post("/")
	if err != nil {
		return &AuthError{Reason: "camera unreachable", Err: err}
	}
	if resp.IsError() || info.ErrorCode != 0 {
		return &AuthError{Reason: fmt.Sprintf("get_encrypt_info failed (error_code %d)", info.ErrorCode)}
	}

	pub, err := auth.ParsePublicKey(info.Data.Key)
	if err != nil {
		return &AuthError{Reason: "bad encryption key from camera", Err: err}
	}
	encrypted, err := auth.EncryptCredentials(pub, auth.HashPassword(c.Config.Password), info.Data.Nonce)
	if err != nil {
		return &AuthError{Reason: "encrypt credentials", Err: err}
	}

	var login loginResponse
	resp, err = c.HTTP.R().
		SetBody(map[string]interface{}{
			"method": "do",
			"login": map[string]string{
				"username":     c.Config.Username,
				"password":     encrypted,
				"passwdType":   "md5",
				"encrypt_type": "2",
			},
		}).
		SetResult(&login).
		Post("/")
	if err != nil {
		return &AuthError{Reason: "camera unreachable", Err: err}
	}
	if resp.IsError() || login.ErrorCode != 0 || login.Stok == "" {
		return &AuthError{Reason: fmt.Sprintf("login rejected (error_code %d)", login.ErrorCode)}
	}

	c.stok = login.Stok
	return nil
}

// RestoreSession injects a previously saved session token, for commands that
// rebuild a client from the config file.
func (c *VigiClient) RestoreSession(stok string) {
	c.stok = stok
}

// SessionToken returns the current session token, empty when not logged in.
func (c *VigiClient) SessionToken() string {
	return c.stok
}

// rejectionError classifies a failed camera response. A session-level
// rejection (HTTP 401/403 or the auth error_code) becomes an AuthError and
// also drops the cached token, so later calls fail fast instead of replaying
// a dead stok; everything else is a DeviceError.
func (c *VigiClient) rejectionError(status, code int) error {
	if status == http.StatusUnauthorized || status == http.StatusForbidden || code == errCodeSessionExpired {
		c.stok = ""
		return &AuthError{Reason: "session expired or rejected, run Authenticate again"}
	}
	if status != 0 {
		return &DeviceError{Status: status}
	}
	return &DeviceError{Code: code}
}

// do posts a JSON envelope to the authenticated /ds endpoint and returns the
// raw body after checking error_code. All control operations go through here.
func (c *VigiClient) do(payload interface{}) ([]byte, error) {
	if c.stok == "" {
		return nil, &AuthError{Reason: "not logged in, run Authenticate first"}
	}

	resp, err := c.HTTP.R().
		SetBody(payload).
		Post(fmt.Sprintf("/stok=%s/ds", c.stok))
	if err != nil {
		return nil, fmt.Errorf("camera request failed: %w", err)
	}
	if resp.IsError() {
		return nil, c.rejectionError(resp.StatusCode(), 0)
	}

	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return nil, fmt.Errorf("parse camera response: %w", err)
	}
	if env.ErrorCode != 0 {
		return nil, c.rejectionError(0, env.ErrorCode)
	}
	return resp.Body(), nil
}
