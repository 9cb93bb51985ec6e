// Package database хранит загруженные каталоги дисков в sqlite.
// Аналитическое ядро остается чистым и ничего не знает о хранилище:
// база нужна серверной оболочке, чтобы переживать перезапуски.
package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"dicingserver/catalog"
)

// ErrCatalogNotFound каталог с заданным UUID не найден
var ErrCatalogNotFound = errors.New("каталог не найден")

// CatalogMeta метаданные сохраненного каталога
type CatalogMeta struct {
	ID          int       `json:"id"`
	UUID        string    `json:"uuid"`
	Name        string    `json:"name"`
	Fingerprint string    `json:"fingerprint"`
	RowCount    int       `json:"row_count"`
	Active      bool      `json:"active"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// DB обертка над подключением к базе каталогов
type DB struct {
	conn *sql.DB
}

// NewDB открывает базу каталогов и применяет схему
func NewDB(path string) (*DB, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть базу данных: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("база данных недоступна: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, err
	}
	return db, nil
}

// Close закрывает подключение
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate создает таблицы схемы, если их еще нет
func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS catalogs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		uuid TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		fingerprint TEXT NOT NULL,
		row_count INTEGER NOT NULL,
		active INTEGER NOT NULL DEFAULT 0,
		uploaded_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	CREATE TABLE IF NOT EXISTS disc_records (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		catalog_id INTEGER NOT NULL REFERENCES catalogs(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		article_code TEXT NOT NULL,
		material TEXT NOT NULL,
		cut_type TEXT NOT NULL,
		thickness_microns REAL NOT NULL,
		kerf_width_microns REAL NOT NULL,
		hub_diameter_mm REAL NOT NULL,
		outer_diameter_mm REAL NOT NULL,
		grain_size INTEGER NOT NULL,
		chipping_microns REAL NOT NULL,
		cut_rate_mm_per_min REAL NOT NULL,
		lifespan_cuts INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_disc_records_catalog ON disc_records(catalog_id, position);
	`
	if _, err := db.conn.Exec(schema); err != nil {
		return fmt.Errorf("не удалось применить схему: %w", err)
	}
	return nil
}

// SaveCatalog сохраняет каталог и его записи одной транзакцией
func (db *DB) SaveCatalog(uuid, name, fingerprint string, records []catalog.DiscRecord) (*CatalogMeta, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return nil, fmt.Errorf("не удалось начать транзакцию: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO catalogs (uuid, name, fingerprint, row_count) VALUES (?, ?, ?, ?)`,
		uuid, name, fingerprint, len(records),
	)
	if err != nil {
		return nil, fmt.Errorf("не удалось сохранить каталог: %w", err)
	}
	catalogID, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("не удалось получить id каталога: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO disc_records (
			catalog_id, position, article_code, material, cut_type,
			thickness_microns, kerf_width_microns, hub_diameter_mm,
			outer_diameter_mm, grain_size, chipping_microns,
			cut_rate_mm_per_min, lifespan_cuts
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return nil, fmt.Errorf("не удалось подготовить вставку записей: %w", err)
	}
	defer stmt.Close()

	for i, r := range records {
		if _, err := stmt.Exec(
			catalogID, i, r.ArticleCode, string(r.Material), string(r.CutType),
			r.ThicknessMicrons, r.KerfWidthMicrons, r.HubDiameterMm,
			r.OuterDiameterMm, r.GrainSize, r.ChippingMicrons,
			r.CutRateMmPerMin, r.LifespanCuts,
		); err != nil {
			return nil, fmt.Errorf("не удалось сохранить запись %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("не удалось зафиксировать транзакцию: %w", err)
	}
	return db.GetCatalogByUUID(uuid)
}

// GetCatalogs возвращает метаданные всех каталогов, новые первыми
func (db *DB) GetCatalogs() ([]CatalogMeta, error) {
	rows, err := db.conn.Query(`
		SELECT id, uuid, name, fingerprint, row_count, active, uploaded_at
		FROM catalogs ORDER BY uploaded_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("не удалось получить список каталогов: %w", err)
	}
	defer rows.Close()

	var out []CatalogMeta
	for rows.Next() {
		var m CatalogMeta
		var active int
		if err := rows.Scan(&m.ID, &m.UUID, &m.Name, &m.Fingerprint, &m.RowCount, &active, &m.UploadedAt); err != nil {
			return nil, fmt.Errorf("не удалось прочитать каталог: %w", err)
		}
		m.Active = active != 0
		out = append(out, m)
	}
	return out, rows.Err()
}

// GetCatalogByUUID возвращает метаданные каталога по UUID
func (db *DB) GetCatalogByUUID(uuid string) (*CatalogMeta, error) {
	var m CatalogMeta
	var active int
	err := db.conn.QueryRow(`
		SELECT id, uuid, name, fingerprint, row_count, active, uploaded_at
		FROM catalogs WHERE uuid = ?`, uuid).
		Scan(&m.ID, &m.UUID, &m.Name, &m.Fingerprint, &m.RowCount, &active, &m.UploadedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCatalogNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("не удалось получить каталог: %w", err)
	}
	m.Active = active != 0
	return &m, nil
}

// GetRecords возвращает записи каталога в порядке загрузки
func (db *DB) GetRecords(catalogID int) ([]catalog.DiscRecord, error) {
	rows, err := db.conn.Query(`
		SELECT article_code, material, cut_type, thickness_microns,
		       kerf_width_microns, hub_diameter_mm, outer_diameter_mm,
		       grain_size, chipping_microns, cut_rate_mm_per_min, lifespan_cuts
		FROM disc_records WHERE catalog_id = ? ORDER BY position`, catalogID)
	if err != nil {
		return nil, fmt.Errorf("не удалось получить записи каталога: %w", err)
	}
	defer rows.Close()

	var out []catalog.DiscRecord
	for rows.Next() {
		var r catalog.DiscRecord
		var material, cutType string
		if err := rows.Scan(
			&r.ArticleCode, &material, &cutType, &r.ThicknessMicrons,
			&r.KerfWidthMicrons, &r.HubDiameterMm, &r.OuterDiameterMm,
			&r.GrainSize, &r.ChippingMicrons, &r.CutRateMmPerMin, &r.LifespanCuts,
		); err != nil {
			return nil, fmt.Errorf("не удалось прочитать запись: %w", err)
		}
		r.Material = catalog.Material(material)
		r.CutType = catalog.CutType(cutType)
		out = append(out, r)
	}
	return out, rows.Err()
}

// SetActive помечает каталог активным, снимая флаг с остальных.
// Операция атомарна в рамках транзакции.
func (db *DB) SetActive(uuid string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("не удалось начать транзакцию: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`UPDATE catalogs SET active = 1 WHERE uuid = ?`, uuid)
	if err != nil {
		return fmt.Errorf("не удалось активировать каталог: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("не удалось проверить активацию: %w", err)
	}
	if affected == 0 {
		return ErrCatalogNotFound
	}

	if _, err := tx.Exec(`UPDATE catalogs SET active = 0 WHERE uuid != ?`, uuid); err != nil {
		return fmt.Errorf("не удалось снять активность с прочих каталогов: %w", err)
	}
	return tx.Commit()
}

// GetActive возвращает активный каталог и его записи.
// ErrCatalogNotFound, если активного каталога нет.
func (db *DB) GetActive() (*CatalogMeta, []catalog.DiscRecord, error) {
	var m CatalogMeta
	var active int
	err := db.conn.QueryRow(`
		SELECT id, uuid, name, fingerprint, row_count, active, uploaded_at
		FROM catalogs WHERE active = 1 LIMIT 1`).
		Scan(&m.ID, &m.UUID, &m.Name, &m.Fingerprint, &m.RowCount, &active, &m.UploadedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, ErrCatalogNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("не удалось получить активный каталог: %w", err)
	}
	m.Active = true

	records, err := db.GetRecords(m.ID)
	if err != nil {
		return nil, nil, err
	}
	return &m, records, nil
}
