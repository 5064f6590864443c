package repository

import (
	"github.com/tu-usuario/materials-api/internal/domain/entity"
)

// LedgerRepository puerto de persistencia de los historiales append-only.
// No existe Update ni Delete de entradas: una corrección es una entrada nueva.
type LedgerRepository interface {
	AppendUsage(entry *entity.UsageEntry) error
	AppendRestock(entry *entity.RestockEntry) error
	ListUsage(materialID string, limit, offset int) ([]*entity.UsageEntry, error)
	ListRestocks(materialID string, limit, offset int) ([]*entity.RestockEntry, error)
}
