package mock

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/finance-tracker/client/internal/integration/persistence/model"
)

var once sync.Once
var db *Db

// Db is the shared in-memory sync history database used by the scenarios.
type Db struct {
	DbConn *gorm.DB
	models map[string]any
}

// NewDb opens the shared database once and migrates the sync history tables.
func NewDb() *Db {
	once.Do(func() {
		db = open(map[string]any{
			model.SyncRunModel{}.TableName(): &model.SyncRunModel{},
		})
	})
	return db
}

func open(models map[string]any) *Db {
	dbSQL, err := sql.Open("sqlite", "file::memory:?cache=shared")
	if err != nil {
		panic(err)
	}

	dbSQL.SetMaxOpenConns(1)

	dbConn, err := gorm.Open(sqlite.Dialector{Conn: dbSQL}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to connect to database. err: " + err.Error())
	}

	newDbMock := &Db{DbConn: dbConn, models: models}
	if err := newDbMock.migrate(); err != nil {
		panic(fmt.Sprintf("failed to migrate database. err: %s", err.Error()))
	}

	return newDbMock
}

func (d *Db) migrate() error {
	modelList := make([]any, 0, len(d.models))
	for _, m := range d.models {
		modelList = append(modelList, m)
	}
	if err := d.DbConn.AutoMigrate(modelList...); err != nil {
		return err
	}
	for _, m := range modelList {
		if !d.DbConn.Migrator().HasTable(m) {
			return fmt.Errorf("table for model %T was not created", m)
		}
	}
	return nil
}

// ClearDB deletes every row written by the previous scenario.
func (d *Db) ClearDB() error {
	for _, m := range d.models {
		err := d.DbConn.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(m).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// Count returns the number of rows in table matching the optional condition.
func (d *Db) Count(table string, query string, args ...any) (int64, error) {
	m, ok := d.GetModel(table)
	if !ok {
		return 0, fmt.Errorf("unknown table %q", table)
	}
	var count int64
	tx := d.DbConn.Model(m)
	if query != "" {
		tx = tx.Where(query, args...)
	}
	err := tx.Count(&count).Error
	return count, err
}

func (d *Db) GetModel(table string) (any, bool) {
	m, ok := d.models[table]
	return m, ok
}
