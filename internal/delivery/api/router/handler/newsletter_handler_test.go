package handler

import (
	"net/http"
	"testing"

	"morgenstar/internal/delivery/api/response"
	domainerrors "morgenstar/internal/domain/errors"
	mockUsecase "morgenstar/internal/mocks/usecase"
	"morgenstar/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewsletterHandler_Subscribe(t *testing.T) {
	tests := []struct {
		name        string
		result      usecase.SubscribeResult
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "new address",
			result:      usecase.SubscribeResultCreated,
			wantStatus:  http.StatusCreated,
			wantMessage: "Erfolgreich für den Newsletter angemeldet!",
		},
		{
			name:        "reactivated address",
			result:      usecase.SubscribeResultReactivated,
			wantStatus:  http.StatusOK,
			wantMessage: "Newsletter-Anmeldung wurde reaktiviert",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			newsletterUC := mockUsecase.NewMockNewsletterUsecase(t)
			h := NewNewsletterHandler(NewsletterHandlerParams{NewsletterUC: newsletterUC, Logger: testLogger})

			newsletterUC.EXPECT().Subscribe(mock.Anything, "leser@example.de", "Leser").Return(tt.result, nil)

			c, rec := newJSONContext(newTestEcho(), http.MethodPost, "/api/newsletter",
				`{"email":"leser@example.de","name":"Leser"}`)

			require.NoError(t, h.Subscribe(c))
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantMessage, decodeData[response.MessageData](t, rec).Message)
		})
	}
}

func TestNewsletterHandler_Unsubscribe_FromQuery(t *testing.T) {
	newsletterUC := mockUsecase.NewMockNewsletterUsecase(t)
	h := NewNewsletterHandler(NewsletterHandlerParams{NewsletterUC: newsletterUC, Logger: testLogger})

	newsletterUC.EXPECT().Unsubscribe(mock.Anything, "leser@example.de").Return(nil)

	c, rec := newJSONContext(newTestEcho(), http.MethodDelete, "/api/newsletter?email=leser@example.de", "")

	require.NoError(t, h.Unsubscribe(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Erfolgreich vom Newsletter abgemeldet", decodeData[response.MessageData](t, rec).Message)
}

func TestNewsletterHandler_Unsubscribe_UnknownAddress(t *testing.T) {
	newsletterUC := mockUsecase.NewMockNewsletterUsecase(t)
	h := NewNewsletterHandler(NewsletterHandlerParams{NewsletterUC: newsletterUC, Logger: testLogger})

	newsletterUC.EXPECT().Unsubscribe(mock.Anything, "fremd@example.de").Return(domainerrors.ErrSubscriberNotFound)

	c, rec := newJSONContext(newTestEcho(), http.MethodDelete, "/api/newsletter", `{"email":"fremd@example.de"}`)

	require.NoError(t, h.Unsubscribe(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
