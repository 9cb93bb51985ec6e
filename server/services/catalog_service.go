package services

import (
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"dicingserver/catalog"
	"dicingserver/database"
	"dicingserver/importer"
	apperrors "dicingserver/server/errors"
)

// CatalogService управляет сохраненными каталогами и активным представлением.
// Активный каталог подменяется атомарно: запросы, начавшиеся до подмены,
// дорабатывают со старым представлением, общее изменяемое состояние
// ограничено одной ссылкой под мьютексом.
type CatalogService struct {
	db *database.DB

	mu         sync.RWMutex
	activeView *catalog.View
	activeMeta *database.CatalogMeta
}

// NewCatalogService создает сервис и восстанавливает активный каталог из базы
func NewCatalogService(db *database.DB) (*CatalogService, error) {
	s := &CatalogService{db: db}

	meta, records, err := db.GetActive()
	if err == nil {
		s.activeMeta = meta
		s.activeView = catalog.NewView(records)
		slog.Info("активный каталог восстановлен",
			"uuid", meta.UUID, "name", meta.Name, "rows", meta.RowCount)
	} else if err != database.ErrCatalogNotFound {
		return nil, err
	}
	return s, nil
}

// Upload разбирает книгу Excel, сохраняет каталог и делает его активным.
// Предупреждения разбора возвращаются вместе с результатом.
func (s *CatalogService) Upload(name string, r io.Reader) (*database.CatalogMeta, []string, error) {
	records, warnings, err := importer.ParseWorkbook(r)
	if err != nil {
		// SchemaMismatchError и прочие ошибки разбора — проблема входных
		// данных, преобразование в HTTP статус выполняет middleware
		return nil, warnings, err
	}

	view := catalog.NewView(records)
	catalogUUID := uuid.New().String()

	meta, err := s.db.SaveCatalog(catalogUUID, name, view.Fingerprint(), records)
	if err != nil {
		return nil, warnings, apperrors.NewInternalError("не удалось сохранить каталог", err)
	}
	if err := s.db.SetActive(catalogUUID); err != nil {
		return nil, warnings, apperrors.NewInternalError("не удалось активировать каталог", err)
	}
	meta.Active = true

	s.mu.Lock()
	s.activeView = view
	s.activeMeta = meta
	s.mu.Unlock()

	slog.Info("каталог загружен и активирован",
		"uuid", catalogUUID, "name", name, "rows", len(records), "warnings", len(warnings))
	return meta, warnings, nil
}

// List возвращает метаданные всех сохраненных каталогов
func (s *CatalogService) List() ([]database.CatalogMeta, error) {
	catalogs, err := s.db.GetCatalogs()
	if err != nil {
		return nil, apperrors.NewInternalError("не удалось получить список каталогов", err)
	}
	return catalogs, nil
}

// Get возвращает метаданные каталога по UUID
func (s *CatalogService) Get(catalogUUID string) (*database.CatalogMeta, error) {
	return s.db.GetCatalogByUUID(catalogUUID)
}

// Activate делает сохраненный каталог активным
func (s *CatalogService) Activate(catalogUUID string) error {
	meta, err := s.db.GetCatalogByUUID(catalogUUID)
	if err != nil {
		return err
	}
	records, err := s.db.GetRecords(meta.ID)
	if err != nil {
		return apperrors.NewInternalError("не удалось прочитать записи каталога", err)
	}
	if err := s.db.SetActive(catalogUUID); err != nil {
		return apperrors.NewInternalError("не удалось активировать каталог", err)
	}
	meta.Active = true

	view := catalog.NewView(records)
	s.mu.Lock()
	s.activeView = view
	s.activeMeta = meta
	s.mu.Unlock()

	slog.Info("каталог активирован", "uuid", catalogUUID, "rows", meta.RowCount)
	return nil
}

// ActiveView возвращает активное представление и его метаданные.
// Ошибка 404, если ни один каталог еще не загружен.
func (s *CatalogService) ActiveView() (*catalog.View, *database.CatalogMeta, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.activeView == nil {
		return nil, nil, apperrors.NewNotFoundError("каталог не загружен", nil)
	}
	return s.activeView, s.activeMeta, nil
}
