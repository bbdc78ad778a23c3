package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-diary-keeper/internal/config"
	"github.com/MKhiriev/go-diary-keeper/internal/crypto"
	"github.com/MKhiriev/go-diary-keeper/internal/logger"
	"github.com/MKhiriev/go-diary-keeper/internal/utils"
	"github.com/MKhiriev/go-diary-keeper/models"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	hashKey string

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of [ServerAdapter].
// It normalises and validates the base URL from adapterCfg.HTTPAddress and
// configures the underlying HTTP client with it and the request timeout.
// When appCfg.HashKey is set every request body is signed with it.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, appCfg config.ClientApp, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	return &httpServerAdapter{
		client:  utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		hashKey: appCfg.HashKey,
		logger:  logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ServerAdapter].
func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter].
func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Register implements [ServerAdapter] with POST /api/user/register.
func (h *httpServerAdapter) Register(ctx context.Context, req models.RegisterRequest) (models.UserResponse, error) {
	return h.authenticate(ctx, "/api/user/register", req)
}

// Login implements [ServerAdapter] with POST /api/user/login.
func (h *httpServerAdapter) Login(ctx context.Context, req models.LoginRequest) (models.UserResponse, error) {
	return h.authenticate(ctx, "/api/user/login", req)
}

// authenticate posts body to path and keeps the bearer token from the
// Authorization response header.
func (h *httpServerAdapter) authenticate(ctx context.Context, path string, body any) (models.UserResponse, error) {
	var user models.UserResponse

	req, err := h.jsonRequest(h.client.R().SetContext(ctx), body)
	if err != nil {
		return models.UserResponse{}, err
	}
	resp, err := req.SetResult(&user).Post(path)
	if err != nil {
		return models.UserResponse{}, fmt.Errorf("%s request: %w", path, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.UserResponse{}, err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.UserResponse{}, fmt.Errorf("%s parse bearer token: %w", path, err)
	}

	h.SetToken(token)
	return user, nil
}

// Me implements [ServerAdapter] with GET /api/user/me.
func (h *httpServerAdapter) Me(ctx context.Context) (models.UserResponse, error) {
	var user models.UserResponse

	resp, err := h.authedRequest(ctx).SetResult(&user).Get("/api/user/me")
	if err != nil {
		return models.UserResponse{}, fmt.Errorf("me request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.UserResponse{}, err
	}

	return user, nil
}

// EnrollDiaryToken implements [ServerAdapter] with POST /api/user/diary-token.
func (h *httpServerAdapter) EnrollDiaryToken(ctx context.Context, token crypto.PossessionToken) error {
	req, err := h.jsonRequest(h.authedRequest(ctx), models.DiaryTokenRequest{DiaryToken: token.Reveal()})
	if err != nil {
		return err
	}
	resp, err := req.Post("/api/user/diary-token")
	if err != nil {
		return fmt.Errorf("enroll diary token request: %w", err)
	}

	return mapHTTPError(resp)
}

// ListEntries implements [ServerAdapter] with GET /api/diary.
func (h *httpServerAdapter) ListEntries(ctx context.Context, token crypto.PossessionToken) ([]models.DiaryEntry, error) {
	var list models.DiaryEntryList

	resp, err := h.diaryRequest(ctx, token).SetResult(&list).Get("/api/diary")
	if err != nil {
		return nil, fmt.Errorf("list entries request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return list.Entries, nil
}

// GetEntry implements [ServerAdapter] with GET /api/diary/{id}.
func (h *httpServerAdapter) GetEntry(ctx context.Context, token crypto.PossessionToken, entryID int64) (models.DiaryEntry, error) {
	var entry models.DiaryEntry

	resp, err := h.diaryRequest(ctx, token).SetResult(&entry).Get(entryPath(entryID))
	if err != nil {
		return models.DiaryEntry{}, fmt.Errorf("get entry request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.DiaryEntry{}, err
	}

	return entry, nil
}

// CreateEntry implements [ServerAdapter] with POST /api/diary.
func (h *httpServerAdapter) CreateEntry(ctx context.Context, token crypto.PossessionToken, fields models.EnvelopeFields) (models.DiaryEntry, error) {
	var entry models.DiaryEntry

	req, err := h.jsonRequest(h.diaryRequest(ctx, token), fields)
	if err != nil {
		return models.DiaryEntry{}, err
	}
	resp, err := req.SetResult(&entry).Post("/api/diary")
	if err != nil {
		return models.DiaryEntry{}, fmt.Errorf("create entry request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.DiaryEntry{}, err
	}

	return entry, nil
}

// UpdateEntry implements [ServerAdapter] with PUT /api/diary/{id}.
func (h *httpServerAdapter) UpdateEntry(ctx context.Context, token crypto.PossessionToken, entryID int64, fields models.EnvelopeFields) (models.DiaryEntry, error) {
	var entry models.DiaryEntry

	req, err := h.jsonRequest(h.diaryRequest(ctx, token), fields)
	if err != nil {
		return models.DiaryEntry{}, err
	}
	resp, err := req.SetResult(&entry).Put(entryPath(entryID))
	if err != nil {
		return models.DiaryEntry{}, fmt.Errorf("update entry request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.DiaryEntry{}, err
	}

	return entry, nil
}

// DeleteEntry implements [ServerAdapter] with DELETE /api/diary/{id}.
func (h *httpServerAdapter) DeleteEntry(ctx context.Context, token crypto.PossessionToken, entryID int64) error {
	resp, err := h.diaryRequest(ctx, token).Delete(entryPath(entryID))
	if err != nil {
		return fmt.Errorf("delete entry request: %w", err)
	}

	return mapHTTPError(resp)
}

// UpdateUsername implements [ServerAdapter] with POST /api/settings/username.
func (h *httpServerAdapter) UpdateUsername(ctx context.Context, username string) error {
	req, err := h.jsonRequest(h.authedRequest(ctx), models.UsernameRequest{Username: username})
	if err != nil {
		return err
	}
	resp, err := req.Post("/api/settings/username")
	if err != nil {
		return fmt.Errorf("update username request: %w", err)
	}

	return mapHTTPError(resp)
}

// PublicProfile implements [ServerAdapter] with GET /@{username}?page=N.
func (h *httpServerAdapter) PublicProfile(ctx context.Context, username string, page int) (models.PublicProfile, error) {
	var profile models.PublicProfile

	resp, err := h.client.R().
		SetContext(ctx).
		SetQueryParam("page", strconv.Itoa(page)).
		SetResult(&profile).
		Get("/@" + url.PathEscape(username))
	if err != nil {
		return models.PublicProfile{}, fmt.Errorf("public profile request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.PublicProfile{}, err
	}

	return profile, nil
}

// PublicEntry implements [ServerAdapter] with GET /@{username}/{id}.
func (h *httpServerAdapter) PublicEntry(ctx context.Context, username string, entryID int64) (models.PublicEntry, error) {
	var entry models.PublicEntry

	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&entry).
		Get("/@" + url.PathEscape(username) + "/" + strconv.FormatInt(entryID, 10))
	if err != nil {
		return models.PublicEntry{}, fmt.Errorf("public entry request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.PublicEntry{}, err
	}

	return entry, nil
}

// Info implements [ServerAdapter] with GET /api/info.
func (h *httpServerAdapter) Info(ctx context.Context) (models.AppInfo, error) {
	var info models.AppInfo

	resp, err := h.client.R().SetContext(ctx).SetResult(&info).Get("/api/info")
	if err != nil {
		return models.AppInfo{}, fmt.Errorf("info request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AppInfo{}, err
	}

	return info, nil
}

// Version implements [ServerAdapter] with GET /api/version.
func (h *httpServerAdapter) Version(ctx context.Context) (string, error) {
	resp, err := h.client.R().SetContext(ctx).Get("/api/version")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return strings.TrimSpace(resp.String()), nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

func (h *httpServerAdapter) diaryRequest(ctx context.Context, token crypto.PossessionToken) *resty.Request {
	return h.authedRequest(ctx).SetHeader(crypto.DiaryTokenHeader, token.Reveal())
}

// jsonRequest marshals body onto req and signs it with the body hash key.
func (h *httpServerAdapter) jsonRequest(req *resty.Request, body any) (*resty.Request, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request body: %w", err)
	}

	req.SetHeader("Content-Type", "application/json").SetBody(payload)
	if h.hashKey != "" {
		req.SetHeader(utils.HashHeader, utils.HashString(payload, h.hashKey))
	}
	return req, nil
}

func entryPath(entryID int64) string {
	return "/api/diary/" + strconv.FormatInt(entryID, 10)
}
