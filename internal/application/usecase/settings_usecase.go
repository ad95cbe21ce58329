package usecase

import (
	"context"
	"encoding/json"

	"github.com/jmorales/ventaspro-api/internal/application/access"
	"github.com/jmorales/ventaspro-api/internal/application/session"
	"github.com/jmorales/ventaspro-api/internal/domain/entity"
	"github.com/jmorales/ventaspro-api/internal/domain/store"
)

// SettingsUseCase lee y guarda la configuración del negocio. El perfil es un
// documento único: cada guardado lo pisa completo, sin historial.
type SettingsUseCase struct{}

// NewSettingsUseCase construye el caso de uso.
func NewSettingsUseCase() *SettingsUseCase {
	return &SettingsUseCase{}
}

// Profile devuelve el perfil actual.
func (uc *SettingsUseCase) Profile(s *session.Session) entity.StoreProfile {
	return s.State().Profile()
}

// SaveProfile guarda el perfil completo. Rol sin permiso: sin efecto.
func (uc *SettingsUseCase) SaveProfile(ctx context.Context, s *session.Session, profile entity.StoreProfile) error {
	if !access.Allowed(s.Role(), access.PermManageSettings) {
		return nil
	}
	raw, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	if err := s.Store().PutSetting(ctx, store.KeyStoreProfile, raw, false); err != nil {
		return err
	}
	s.State().SetProfile(profile)
	return nil
}

// LowStockThreshold devuelve el umbral de stock bajo.
func (uc *SettingsUseCase) LowStockThreshold(s *session.Session) int64 {
	return s.State().LowStockThreshold()
}

// SaveLowStockThreshold guarda el umbral. Rol sin permiso: sin efecto.
func (uc *SettingsUseCase) SaveLowStockThreshold(ctx context.Context, s *session.Session, threshold int64) error {
	if !access.Allowed(s.Role(), access.PermManageSettings) {
		return nil
	}
	raw, err := json.Marshal(threshold)
	if err != nil {
		return err
	}
	if err := s.Store().PutSetting(ctx, store.KeyLowStockThreshold, raw, false); err != nil {
		return err
	}
	s.State().SetLowStockThreshold(threshold)
	return nil
}
