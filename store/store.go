package store

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gorustyt/gonavgraph/common/logger"
	"github.com/gorustyt/gonavgraph/navmesh"
	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

var ErrNotFound = errors.New("store: record not found")

type MeshGorm struct {
	Name      string    `gorm:"column:name;primaryKey"`
	Version   uint32    `gorm:"column:version"`
	Regions   int       `gorm:"column:regions"`
	Data      []byte    `gorm:"column:data;type:blob"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (MeshGorm) TableName() string {
	return "navmesh"
}

type CostTableGorm struct {
	Name      string    `gorm:"column:name;primaryKey"`
	Data      []byte    `gorm:"column:data;type:blob"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (CostTableGorm) TableName() string {
	return "cost_table"
}

// MeshInfo describes a stored mesh without decoding it.
type MeshInfo struct {
	Name      string
	Version   uint32
	Regions   int
	UpdatedAt time.Time
}

// Store keeps baked meshes and cost tables in a sqlite database. Blobs are
// msgpack encoded snapshots.
type Store struct {
	db *gorm.DB
}

// Open connects to the sqlite database at dsn (a file path or ":memory:")
// and creates the tables.
func Open(dsn string, debug bool) (*Store, error) {
	dsn = strings.TrimPrefix(dsn, "sqlite://")
	logMode := gormlogger.Silent
	if debug {
		logMode = gormlogger.Info
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logMode),
	})
	if err != nil {
		logger.Error("gorm open error", zap.String("dsn", dsn), zap.Error(err))
		return nil, err
	}
	sqlDb, err := db.DB()
	if err != nil {
		return nil, err
	}
	// sqlite allows one writer, and every :memory: connection is its own database
	sqlDb.SetMaxOpenConns(1)
	sqlDb.SetConnMaxLifetime(time.Hour)

	tableList := []any{new(MeshGorm), new(CostTableGorm)}
	for _, table := range tableList {
		if err = db.AutoMigrate(table); err != nil {
			logger.Error("auto migrate error", zap.Error(err))
			return nil, err
		}
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	sqlDb, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDb.Close()
}

// upsert inserts row or replaces every column of the existing row.
func (s *Store) upsert(row any) error {
	return s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(row).Error
}

func (s *Store) SaveMesh(name string, m *navmesh.NavMesh) error {
	snapshot := m.ToSnapshot()
	data, err := msgpack.Marshal(snapshot)
	if err != nil {
		return err
	}
	err = s.upsert(&MeshGorm{
		Name:      name,
		Version:   snapshot.Version,
		Regions:   len(snapshot.Regions),
		Data:      data,
		UpdatedAt: time.Now(),
	})
	if err != nil {
		return fmt.Errorf("save mesh %q: %w", name, err)
	}
	logger.Debug("mesh saved", zap.String("name", name), zap.Int("bytes", len(data)))
	return nil
}

func (s *Store) LoadMesh(name string) (*navmesh.NavMesh, error) {
	row := new(MeshGorm)
	err := s.db.Where("name = ?", name).First(row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("mesh %q: %w", name, ErrNotFound)
		}
		return nil, err
	}
	snapshot := new(navmesh.Snapshot)
	if err = msgpack.Unmarshal(row.Data, snapshot); err != nil {
		return nil, fmt.Errorf("decode mesh %q: %w", name, err)
	}
	return navmesh.NewNavMeshFromSnapshot(snapshot)
}

func (s *Store) DeleteMesh(name string) error {
	res := s.db.Where("name = ?", name).Delete(&MeshGorm{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("mesh %q: %w", name, ErrNotFound)
	}
	// the cost table is derived from the mesh and goes with it
	return s.db.Where("name = ?", name).Delete(&CostTableGorm{}).Error
}

// ListMeshes returns the stored meshes ordered by name.
func (s *Store) ListMeshes() ([]MeshInfo, error) {
	var rows []MeshGorm
	err := s.db.Select("name", "version", "regions", "updated_at").Order("name").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	res := make([]MeshInfo, 0, len(rows))
	for _, row := range rows {
		res = append(res, MeshInfo{Name: row.Name, Version: row.Version, Regions: row.Regions, UpdatedAt: row.UpdatedAt})
	}
	return res, nil
}

type costTableBlob struct {
	Size    int
	Entries []navmesh.CostEntry
}

func (s *Store) SaveCostTable(name string, table *navmesh.CostTable) error {
	data, err := msgpack.Marshal(&costTableBlob{Size: table.Size(), Entries: table.Entries()})
	if err != nil {
		return err
	}
	err = s.upsert(&CostTableGorm{Name: name, Data: data, UpdatedAt: time.Now()})
	if err != nil {
		return fmt.Errorf("save cost table %q: %w", name, err)
	}
	return nil
}

func (s *Store) LoadCostTable(name string) (*navmesh.CostTable, error) {
	row := new(CostTableGorm)
	err := s.db.Where("name = ?", name).First(row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("cost table %q: %w", name, ErrNotFound)
		}
		return nil, err
	}
	blob := new(costTableBlob)
	if err = msgpack.Unmarshal(row.Data, blob); err != nil {
		return nil, fmt.Errorf("decode cost table %q: %w", name, err)
	}
	table := navmesh.NewCostTable()
	for _, e := range blob.Entries {
		table.Set(e.From, e.To, e.Cost)
	}
	table.Resize(blob.Size)
	return table, nil
}
