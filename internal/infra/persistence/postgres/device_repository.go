package postgres

import (
	"context"

	"morgenstar/internal/domain/entity"
	domainerrors "morgenstar/internal/domain/errors"
	"morgenstar/internal/domain/repository"
	"morgenstar/internal/errors"
	"morgenstar/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// deviceRepository stores the push devices of shop customers.
type deviceRepository struct {
	db *gorm.DB
}

// NewDeviceRepository creates a device repository
func NewDeviceRepository(db *gorm.DB) repository.DeviceRepository {
	return &deviceRepository{db: db}
}

// CreateDevice registers a customer device. One row per customer and device id.
func (repo *deviceRepository) CreateDevice(ctx context.Context, device *entity.UserDevice) error {
	row := fromPushDevice(device)

	if err := repo.db.WithContext(ctx).Create(row).Error; err != nil {
		switch {
		case isUniqueConstraintViolation(err):
			return repository.ErrDuplicateDevice
		case isForeignKeyConstraintViolation(err):
			return domainerrors.ErrUserNotFound.WrapMessage("device owner does not exist")
		case isCheckConstraintViolation(err):
			return errors.WithStack(domainerrors.ErrUnsupportedPlatform)
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create push device")
	}

	device.ID = row.ID
	device.CreatedAt = row.CreatedAt
	device.UpdatedAt = row.UpdatedAt

	return nil
}

func (repo *deviceRepository) FindDeviceByID(ctx context.Context, id uuid.UUID) (*entity.UserDevice, error) {
	var row model.PushDeviceModel

	err := repo.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrDeviceNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find push device")
	}

	return toPushDevice(&row), nil
}

// FindDevicesByUser lists every registered device of a customer, newest first.
func (repo *deviceRepository) FindDevicesByUser(ctx context.Context, userID uuid.UUID) ([]*entity.UserDevice, error) {
	return repo.listByUser(ctx, userID, false)
}

// FindActiveDevicesByUser lists the devices an order push can be sent to.
func (repo *deviceRepository) FindActiveDevicesByUser(ctx context.Context, userID uuid.UUID) ([]*entity.UserDevice, error) {
	return repo.listByUser(ctx, userID, true)
}

func (repo *deviceRepository) listByUser(ctx context.Context, userID uuid.UUID, activeOnly bool) ([]*entity.UserDevice, error) {
	query := repo.db.WithContext(ctx).Where("user_id = ?", userID)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var rows []*model.PushDeviceModel
	if err := query.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list push devices")
	}

	devices := make([]*entity.UserDevice, 0, len(rows))
	for _, row := range rows {
		devices = append(devices, toPushDevice(row))
	}

	return devices, nil
}

// UpdateFCMToken stores a refreshed token and reactivates the device.
func (repo *deviceRepository) UpdateFCMToken(ctx context.Context, deviceID uuid.UUID, fcmToken string) error {
	result := repo.db.WithContext(ctx).
		Model(&model.PushDeviceModel{}).
		Where("id = ?", deviceID).
		Updates(map[string]any{"fcm_token": fcmToken, "is_active": true})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update FCM token")
	}
	if result.RowsAffected == 0 {
		return repository.ErrDeviceNotFound
	}

	return nil
}

// DeactivateByTokens switches off devices whose tokens FCM rejected.
func (repo *deviceRepository) DeactivateByTokens(ctx context.Context, fcmTokens []string) error {
	if len(fcmTokens) == 0 {
		return nil
	}

	err := repo.db.WithContext(ctx).
		Model(&model.PushDeviceModel{}).
		Where("fcm_token IN ? AND is_active = ?", fcmTokens, true).
		Update("is_active", false).Error

	return errors.Wrap(err, "failed to deactivate push devices")
}

// DeleteDevice soft-deletes a device.
func (repo *deviceRepository) DeleteDevice(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.PushDeviceModel{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete push device")
	}
	if result.RowsAffected == 0 {
		return repository.ErrDeviceNotFound
	}

	return nil
}

func toPushDevice(row *model.PushDeviceModel) *entity.UserDevice {
	return &entity.UserDevice{
		ID:        row.ID,
		UserID:    row.UserID,
		FCMToken:  row.FCMToken,
		DeviceID:  row.DeviceID,
		Platform:  row.Platform,
		IsActive:  row.IsActive,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func fromPushDevice(device *entity.UserDevice) *model.PushDeviceModel {
	return &model.PushDeviceModel{
		ID:        device.ID,
		UserID:    device.UserID,
		FCMToken:  device.FCMToken,
		DeviceID:  device.DeviceID,
		Platform:  device.Platform,
		IsActive:  device.IsActive,
		CreatedAt: device.CreatedAt,
		UpdatedAt: device.UpdatedAt,
	}
}
