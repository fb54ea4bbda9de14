package repository

import "github.com/petverde/green-pos/internal/domain/entity"

// SettingRepository puerto de la fila única de configuración. GetForUpdate
// bloquea la fila para asignar el consecutivo de documentos atómicamente.
type SettingRepository interface {
	Get() (*entity.Setting, error)
	GetForUpdate() (*entity.Setting, error)
	Update(s *entity.Setting) error
}
