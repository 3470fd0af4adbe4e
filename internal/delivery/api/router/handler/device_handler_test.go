package handler

import (
	"net/http"
	"testing"

	"morgenstar/internal/delivery/api/response"
	"morgenstar/internal/domain/entity"
	domainerrors "morgenstar/internal/domain/errors"
	mockUsecase "morgenstar/internal/mocks/usecase"
	"morgenstar/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func createTestDeviceHandler(t *testing.T) (*DeviceHandler, *mockUsecase.MockDeviceUsecase) {
	deviceUC := mockUsecase.NewMockDeviceUsecase(t)

	return NewDeviceHandler(DeviceHandlerParams{DeviceUC: deviceUC, Logger: testLogger}), deviceUC
}

func TestDeviceHandler_RegisterDevice(t *testing.T) {
	h, deviceUC := createTestDeviceHandler(t)

	userID := uuid.New()
	deviceUC.EXPECT().
		RegisterDevice(mock.Anything, userID, &usecase.DeviceInfo{FCMToken: "fcm-token", DeviceID: "pixel-8", Platform: "android"}).
		Return(&entity.UserDevice{ID: uuid.New(), UserID: userID, DeviceID: "pixel-8", Platform: "android", IsActive: true}, nil)

	c, rec := newJSONContext(newTestEcho(), http.MethodPost, "/api/devices",
		`{"fcmToken":"fcm-token","deviceId":"pixel-8","platform":"android"}`)
	signIn(c, userID)

	require.NoError(t, h.RegisterDevice(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, decodeData[entity.UserDevice](t, rec).IsActive)
}

func TestDeviceHandler_RegisterDevice_UnknownPlatform(t *testing.T) {
	h, _ := createTestDeviceHandler(t)

	c, rec := newJSONContext(newTestEcho(), http.MethodPost, "/api/devices",
		`{"fcmToken":"fcm-token","deviceId":"pager","platform":"symbian"}`)
	signIn(c, uuid.New())

	require.NoError(t, h.RegisterDevice(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeEnvelope(t, rec).Details, "platform")
}

func TestDeviceHandler_UpdateFCMToken(t *testing.T) {
	h, deviceUC := createTestDeviceHandler(t)

	userID := uuid.New()
	deviceID := uuid.New()
	deviceUC.EXPECT().UpdateFCMToken(mock.Anything, userID, deviceID, "new-token").Return(nil)

	c, rec := newJSONContext(newTestEcho(), http.MethodPut, "/api/devices/"+deviceID.String()+"/token", `{"fcmToken":"new-token"}`)
	c.SetParamNames("id")
	c.SetParamValues(deviceID.String())
	signIn(c, userID)

	require.NoError(t, h.UpdateFCMToken(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Token aktualisiert", decodeData[response.MessageData](t, rec).Message)
}

func TestDeviceHandler_DeactivateDevice_ForeignDevice(t *testing.T) {
	h, deviceUC := createTestDeviceHandler(t)

	userID := uuid.New()
	deviceID := uuid.New()
	deviceUC.EXPECT().DeactivateDevice(mock.Anything, userID, deviceID).Return(domainerrors.ErrDeviceNotFound)

	c, rec := newJSONContext(newTestEcho(), http.MethodDelete, "/api/devices/"+deviceID.String(), "")
	c.SetParamNames("id")
	c.SetParamValues(deviceID.String())
	signIn(c, userID)

	require.NoError(t, h.DeactivateDevice(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeviceHandler_DeactivateDevice_MalformedID(t *testing.T) {
	h, _ := createTestDeviceHandler(t)

	c, rec := newJSONContext(newTestEcho(), http.MethodDelete, "/api/devices/abc", "")
	c.SetParamNames("id")
	c.SetParamValues("abc")
	signIn(c, uuid.New())

	require.NoError(t, h.DeactivateDevice(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, domainerrors.ErrDeviceNotFound.ErrorCode(), decodeEnvelope(t, rec).Code)
}
