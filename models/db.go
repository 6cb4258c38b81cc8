package models

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "github.com/marcboeker/go-duckdb"
	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
)

var (
	memDB    *sql.DB      // In-memory cache for fast reads
	diskDB   *sql.DB      // Persistent storage
	diskPath string       // Path of the disk database, needed for ATTACH
	dbMu     sync.RWMutex // Protect concurrent access during writes

	stopWorker chan struct{}
)

// tables lists every table mirrored between disk and memory, in load order
var tables = []string{"recipes", "box_items"}

// InitDB initializes both in-memory and disk-based databases
func InitDB(path string) error {
	if err := openDBs(path); err != nil {
		return err
	}

	// Start background sync worker for periodic consistency checks
	stopWorker = make(chan struct{})
	go startSyncWorker(stopWorker)

	return nil
}

// InitTestDB initializes the databases without the background worker
func InitTestDB(path string) error {
	return openDBs(path)
}

func openDBs(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return serr.Wrap(err, "failed to create database directory")
		}
	}

	var err error
	diskPath = path

	// Initialize disk-based database for persistence
	diskDB, err = sql.Open("duckdb", path)
	if err != nil {
		return serr.Wrap(err, "failed to open disk database")
	}

	// DuckDB's go driver uses an empty string for in-memory databases
	memDB, err = sql.Open("duckdb", "")
	if err != nil {
		return serr.Wrap(err, "failed to open memory database")
	}

	if err := migrateBoth(); err != nil {
		return serr.Wrap(err, "failed to migrate databases")
	}

	// Load existing data from disk to memory
	if err := syncDiskToMemory(); err != nil {
		return serr.Wrap(err, "failed to sync data to memory")
	}

	return nil
}

// CloseDB closes both database connections
func CloseDB() {
	if stopWorker != nil {
		close(stopWorker)
		stopWorker = nil
	}
	if memDB != nil {
		memDB.Close()
		memDB = nil
	}
	if diskDB != nil {
		diskDB.Close()
		diskDB = nil
	}
}

func migrateBoth() error {
	if err := migrateDB(diskDB); err != nil {
		return serr.Wrap(err, "disk migration failed")
	}
	if err := migrateDB(memDB); err != nil {
		return serr.Wrap(err, "memory migration failed")
	}
	return nil
}

// syncDiskToMemory loads all data from disk into memory cache
func syncDiskToMemory() error {
	var sb strings.Builder
	sb.WriteString("ATTACH '" + strings.ReplaceAll(diskPath, "'", "''") + "' AS disk_db (READ_ONLY);\n")
	for _, table := range tables {
		sb.WriteString("INSERT OR IGNORE INTO " + table + " SELECT * FROM disk_db." + table + ";\n")
	}
	sb.WriteString("DETACH disk_db;")

	if _, err := memDB.Exec(sb.String()); err != nil {
		// The disk file is already open in this process, so ATTACH may be refused
		logger.Debug("ATTACH failed, falling back to manual sync", "error", err.Error())
		return manualSync()
	}

	logger.Info("Synced disk data to memory cache")
	return nil
}

// manualSync performs a table-by-table copy from disk into memory
func manualSync() error {
	for _, table := range tables {
		if err := copyTable(table); err != nil {
			return err
		}
	}
	return nil
}

func copyTable(table string) error {
	rows, err := diskDB.Query("SELECT * FROM " + table)
	if err != nil {
		return serr.Wrap(err, "failed to read from disk "+table)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return serr.Wrap(err, "failed to read columns "+table)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(cols)), ",")
	stmt, err := memDB.Prepare("INSERT OR IGNORE INTO " + table + " VALUES (" + placeholders + ")")
	if err != nil {
		return serr.Wrap(err, "failed to prepare insert "+table)
	}
	defer stmt.Close()

	values := make([]interface{}, len(cols))
	valuePtrs := make([]interface{}, len(cols))
	for i := range values {
		valuePtrs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(valuePtrs...); err != nil {
			logger.LogErr(err, "failed to scan disk row", "table", table)
			continue
		}
		if _, err := stmt.Exec(values...); err != nil {
			logger.LogErr(err, "failed to insert into memory", "table", table)
		}
	}
	return rows.Err()
}

// WriteThrough writes to both databases, disk first for durability
func WriteThrough(query string, args ...interface{}) error {
	dbMu.Lock()
	defer dbMu.Unlock()

	if _, err := diskDB.Exec(query, args...); err != nil {
		return serr.Wrap(err, "failed to write to disk")
	}

	if _, err := memDB.Exec(query, args...); err != nil {
		// Disk write succeeded; resync the cache later
		logger.LogErr(err, "failed to update memory cache")
		markCacheDirty()
	}

	return nil
}

// ReadFromCache performs fast reads from memory, falling back to disk
func ReadFromCache(query string, args ...interface{}) (*sql.Rows, error) {
	dbMu.RLock()
	defer dbMu.RUnlock()

	rows, err := memDB.Query(query, args...)
	if err != nil {
		logger.LogErr(err, "cache read failed, falling back to disk")
		return diskDB.Query(query, args...)
	}

	return rows, nil
}

// QueryRowFromCache performs single row query from cache
func QueryRowFromCache(query string, args ...interface{}) *sql.Row {
	dbMu.RLock()
	defer dbMu.RUnlock()

	return memDB.QueryRow(query, args...)
}

// DualTx wraps a transaction on each database. It holds the write lock
// from Begin until Commit or Rollback, so reads inside it are consistent.
type DualTx struct {
	diskTx *sql.Tx
	memTx  *sql.Tx
	done   bool
}

// BeginDualTx starts a transaction on both databases
func BeginDualTx() (*DualTx, error) {
	dbMu.Lock()

	diskTx, err := diskDB.Begin()
	if err != nil {
		dbMu.Unlock()
		return nil, serr.Wrap(err, "failed to begin disk transaction")
	}

	memTx, err := memDB.Begin()
	if err != nil {
		_ = diskTx.Rollback()
		dbMu.Unlock()
		return nil, serr.Wrap(err, "failed to begin memory transaction")
	}

	return &DualTx{diskTx: diskTx, memTx: memTx}, nil
}

// QueryRow reads through the disk transaction, the source of truth
func (dt *DualTx) QueryRow(query string, args ...interface{}) *sql.Row {
	return dt.diskTx.QueryRow(query, args...)
}

// Exec executes query on both transactions
func (dt *DualTx) Exec(query string, args ...interface{}) error {
	if _, err := dt.diskTx.Exec(query, args...); err != nil {
		return err
	}

	if _, err := dt.memTx.Exec(query, args...); err != nil {
		logger.LogErr(err, "memory tx exec failed")
		markCacheDirty()
	}

	return nil
}

// Commit commits both transactions
func (dt *DualTx) Commit() error {
	if dt.done {
		return nil
	}
	defer func() {
		dt.done = true
		dbMu.Unlock()
	}()

	if err := dt.diskTx.Commit(); err != nil {
		_ = dt.memTx.Rollback()
		return serr.Wrap(err, "failed to commit disk transaction")
	}

	if err := dt.memTx.Commit(); err != nil {
		logger.LogErr(err, "failed to commit memory transaction")
		markCacheDirty()
	}

	return nil
}

// Rollback rolls back both transactions. Safe to defer after Commit.
func (dt *DualTx) Rollback() {
	if dt.done {
		return
	}
	dt.done = true
	defer dbMu.Unlock()

	_ = dt.diskTx.Rollback()
	_ = dt.memTx.Rollback()
}

// Cache management
var (
	cacheDirty bool
	cacheMu    sync.Mutex
)

func markCacheDirty() {
	cacheMu.Lock()
	cacheDirty = true
	cacheMu.Unlock()
}

func isCacheDirty() bool {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	return cacheDirty
}

// startSyncWorker periodically rebuilds the cache once it is marked dirty
func startSyncWorker(stop <-chan struct{}) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if !isCacheDirty() {
				continue
			}
			logger.Info("Cache marked dirty, resyncing...")
			if err := resyncCache(); err != nil {
				logger.LogErr(err, "failed to resync cache")
				continue
			}
			cacheMu.Lock()
			cacheDirty = false
			cacheMu.Unlock()
		}
	}
}

// resyncCache rebuilds the memory cache from disk
func resyncCache() error {
	dbMu.Lock()
	defer dbMu.Unlock()

	for _, table := range tables {
		if _, err := memDB.Exec("DELETE FROM " + table); err != nil {
			return serr.Wrap(err, "failed to clear cache table "+table)
		}
	}

	return manualSync()
}
