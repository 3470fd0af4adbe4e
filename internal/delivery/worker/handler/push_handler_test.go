package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"morgenstar/config"
	deliverycontext "morgenstar/internal/delivery/context"
	"morgenstar/internal/domain/constants"
	"morgenstar/internal/domain/service"
	"morgenstar/internal/errors"
	mockusecase "morgenstar/internal/mocks/usecase"
	"morgenstar/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/idtoken"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func newPushHandler(t *testing.T, env, provider string) (*PushHandler, *mockusecase.MockNotificationUsecase) {
	t.Helper()

	cfg := &config.Config{PubSub: &config.PubSubConfig{Provider: provider}}
	cfg.Env.Env = env
	uc := mockusecase.NewMockNotificationUsecase(t)

	return NewPushHandler(PushHandlerParams{
		Config:         cfg,
		Logger:         testLogger,
		NotificationUC: uc,
	}), uc
}

func pushBody(t *testing.T, event service.ShopEvent, attributes map[string]string) string {
	t.Helper()

	data, err := json.Marshal(event)
	require.NoError(t, err)

	var msg PubSubMessage
	msg.Message.Data = base64.StdEncoding.EncodeToString(data)
	msg.Message.Attributes = attributes
	msg.Message.MessageID = "msg-1"
	msg.Subscription = "projects/demo/subscriptions/shop-events"

	body, err := json.Marshal(msg)
	require.NoError(t, err)

	return string(body)
}

func newPushContext(body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/push", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestNewPushHandler_VerifiesOnlyGoogleOutsideDevelop(t *testing.T) {
	tests := []struct {
		name     string
		env      string
		provider string
		want     bool
	}{
		{name: "google in production", env: constants.EnvProduction, provider: constants.PubSubProviderGoogle, want: true},
		{name: "google in develop", env: constants.EnvDevelop, provider: constants.PubSubProviderGoogle, want: false},
		{name: "local provider", env: constants.EnvProduction, provider: constants.PubSubProviderLocal, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newPushHandler(t, tt.env, tt.provider)
			assert.Equal(t, tt.want, h.verifyPushAuth)
		})
	}
}

func TestPushHandler_HandlePush_Success(t *testing.T) {
	h, uc := newPushHandler(t, constants.EnvDevelop, constants.PubSubProviderLocal)

	event := service.ShopEvent{
		EventID: "evt-1",
		Type:    service.ShopEventOrderCreated,
		OrderID: "b7c1f0de-1111-4a2b-9c3d-000000000001",
		Email:   "kunde@example.de",
	}

	uc.EXPECT().
		HandleShopEvent(mock.Anything, mock.MatchedBy(func(e *service.ShopEvent) bool {
			return e.EventID == "evt-1" && e.Type == service.ShopEventOrderCreated && e.Email == "kunde@example.de"
		})).
		Run(func(ctx context.Context, _ *service.ShopEvent) {
			assert.Equal(t, "req-from-attributes", deliverycontext.GetRequestIDFromContext(ctx))
		}).
		Return(nil).
		Once()

	c, rec := newPushContext(pushBody(t, event, map[string]string{"request_id": "req-from-attributes"}))

	require.NoError(t, h.HandlePush(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPushHandler_HandlePush_HandlerErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{
			name:       "retryable failure asks for redelivery",
			err:        usecase.NewRetryableError(errors.New("smtp timeout")),
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name:       "permanent failure is acknowledged",
			err:        errors.New("order not found"),
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, uc := newPushHandler(t, constants.EnvDevelop, constants.PubSubProviderLocal)
			uc.EXPECT().HandleShopEvent(mock.Anything, mock.Anything).Return(tt.err).Once()

			c, rec := newPushContext(pushBody(t, service.ShopEvent{EventID: "evt-2", Type: service.ShopEventUserRegistered}, nil))

			require.NoError(t, h.HandlePush(c))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestPushHandler_HandlePush_MalformedMessages(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: "{"},
		{name: "data not base64", body: `{"message":{"data":"***"}}`},
		{
			name: "event not json",
			body: `{"message":{"data":"` + base64.StdEncoding.EncodeToString([]byte("kein json")) + `"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newPushHandler(t, constants.EnvDevelop, constants.PubSubProviderLocal)
			c, rec := newPushContext(tt.body)

			require.NoError(t, h.HandlePush(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestPushHandler_ExtractRequestID(t *testing.T) {
	h, _ := newPushHandler(t, constants.EnvDevelop, constants.PubSubProviderLocal)

	var withAttr PubSubMessage
	withAttr.Message.Attributes = map[string]string{"request_id": "attr"}
	assert.Equal(t, "attr", h.extractRequestID(context.Background(), &withAttr, &service.ShopEvent{RequestID: "event"}))

	var plain PubSubMessage
	assert.Equal(t, "event", h.extractRequestID(context.Background(), &plain, &service.ShopEvent{RequestID: "event"}))

	ctx := deliverycontext.WithRequestID(context.Background(), "incoming")
	assert.Equal(t, "incoming", h.extractRequestID(ctx, &plain, &service.ShopEvent{}))

	assert.NotEmpty(t, h.extractRequestID(context.Background(), &plain, &service.ShopEvent{}))
}

func TestPushHandler_VerifyPubSubToken(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		payload   *idtoken.Payload
		validErr  error
		wantError bool
	}{
		{
			name:    "valid google token",
			header:  "Bearer good",
			payload: &idtoken.Payload{Issuer: "https://accounts.google.com", Claims: map[string]any{"email_verified": true}},
		},
		{name: "missing header", header: "", wantError: true},
		{name: "wrong scheme", header: "Basic abc", wantError: true},
		{name: "validation fails", header: "Bearer bad", validErr: errors.New("expired"), wantError: true},
		{
			name:      "foreign issuer",
			header:    "Bearer good",
			payload:   &idtoken.Payload{Issuer: "https://evil.example"},
			wantError: true,
		},
		{
			name:      "unverified email",
			header:    "Bearer good",
			payload:   &idtoken.Payload{Issuer: "accounts.google.com", Claims: map[string]any{"email_verified": false}},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newPushHandler(t, constants.EnvProduction, constants.PubSubProviderGoogle)

			var gotAudience string
			h.validateToken = func(_ context.Context, _, audience string) (*idtoken.Payload, error) {
				gotAudience = audience
				if tt.validErr != nil {
					return nil, tt.validErr
				}

				return tt.payload, nil
			}

			req := httptest.NewRequest(http.MethodPost, "http://worker.example/push", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			req.Header.Set("X-Forwarded-Proto", "https")

			err := h.verifyPubSubToken(req)
			if tt.wantError {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "https://worker.example/push", gotAudience)
		})
	}
}

func TestPushHandler_HandlePush_RejectsUnauthenticated(t *testing.T) {
	h, _ := newPushHandler(t, constants.EnvProduction, constants.PubSubProviderGoogle)

	c, rec := newPushContext(pushBody(t, service.ShopEvent{EventID: "evt-3"}, nil))

	require.NoError(t, h.HandlePush(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
