package database

import (
	"database/sql"
	"errors"
	"fmt"
	"os"

	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate"
	"github.com/golang-migrate/migrate/database"
	"github.com/golang-migrate/migrate/database/mysql"
	"github.com/golang-migrate/migrate/database/postgres"
	"github.com/golang-migrate/migrate/database/sqlite3"
	_ "github.com/golang-migrate/migrate/source/file"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sisu-network/lib/log"
	"github.com/sisu-network/thortx/config"
	"github.com/sisu-network/thortx/types"
)

var (
	ErrTxNotFound = errors.New("tx not found")
)

//go:generate mockgen -source database/db.go -destination=tests/mock/database/db.go -package=mock
type Database interface {
	Init() error
	Close() error

	SaveTx(tx *types.Tx) error
	UpdateTxStatus(hash string, status types.TxStatus, blockHeight int64) error
	GetTx(hash string) (*types.Tx, error)
	LoadPendingTxs(chain string) ([]*types.Tx, error)
}

type DefaultDatabase struct {
	cfg config.Db
	db  *sql.DB
}

type dbLogger struct {
}

func (loggger *dbLogger) Printf(format string, v ...interface{}) {
	log.Verbosef(format, v...)
}

func (loggger *dbLogger) Verbose() bool {
	return true
}

func NewDb(cfg config.Db) Database {
	return &DefaultDatabase{
		cfg: cfg,
	}
}

func (d *DefaultDatabase) Connect() error {
	var err error
	switch d.cfg.Driver {
	case config.DbDriverMysql:
		err = d.connectMysql()
	case config.DbDriverPostgres:
		err = d.connectPostgres()
	case config.DbDriverSqlite:
		err = d.connectSqlite()
	default:
		err = fmt.Errorf("unknown db driver %q", d.cfg.Driver)
	}
	if err != nil {
		return err
	}

	log.Info("Db is connected successfully, driver = ", d.cfg.Driver)
	return nil
}

func (d *DefaultDatabase) connectMysql() error {
	if d.cfg.Host == "" {
		return fmt.Errorf("DB host cannot be empty")
	}

	// Connect to the server first to create the schema.
	url := fmt.Sprintf("%s:%s@tcp(%s:%d)/", d.cfg.Username, d.cfg.Password, d.cfg.Host, d.cfg.Port)
	database, err := sql.Open("mysql", url)
	if err != nil {
		return err
	}
	_, err = database.Exec("CREATE DATABASE IF NOT EXISTS " + d.cfg.Schema)
	database.Close()
	if err != nil {
		return err
	}

	d.db, err = sql.Open("mysql", url+d.cfg.Schema+"?multiStatements=true")
	return err
}

func (d *DefaultDatabase) connectPostgres() error {
	if d.cfg.Host == "" {
		return fmt.Errorf("DB host cannot be empty")
	}

	url := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		d.cfg.Username, d.cfg.Password, d.cfg.Host, d.cfg.Port, d.cfg.Schema)

	var err error
	d.db, err = sql.Open("postgres", url)
	return err
}

func (d *DefaultDatabase) connectSqlite() error {
	dsn := d.cfg.Schema + ".db"
	if d.cfg.InMemory {
		dsn = ":memory:"
	}

	var err error
	d.db, err = sql.Open("sqlite3", dsn)
	if err != nil {
		return err
	}

	// Every sqlite connection to :memory: is a different database.
	d.db.SetMaxOpenConns(1)
	return nil
}

func (d *DefaultDatabase) DoMigration() error {
	var (
		driver database.Driver
		err    error
	)
	switch d.cfg.Driver {
	case config.DbDriverMysql:
		driver, err = mysql.WithInstance(d.db, &mysql.Config{})
	case config.DbDriverPostgres:
		driver, err = postgres.WithInstance(d.db, &postgres.Config{})
	case config.DbDriverSqlite:
		driver, err = sqlite3.WithInstance(d.db, &sqlite3.Config{})
	default:
		err = fmt.Errorf("unknown db driver %q", d.cfg.Driver)
	}
	if err != nil {
		return err
	}

	dir, err := MigrationsTempDir(d.cfg.Driver)
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	m, err := migrate.NewWithDatabaseInstance("file://"+dir, d.cfg.Driver, driver)
	if err != nil {
		return err
	}

	m.Log = &dbLogger{}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}

	return nil
}

func (d *DefaultDatabase) Init() error {
	err := d.Connect()
	if err != nil {
		log.Error("Failed to connect to DB. Err =", err)
		return err
	}

	return d.DoMigration()
}

func (d *DefaultDatabase) Close() error {
	if d.db == nil {
		return nil
	}

	return d.db.Close()
}

// rebind turns ? placeholders into the bind vars of the driver.
func (d *DefaultDatabase) rebind(query string) string {
	return sqlx.Rebind(sqlx.BindType(d.cfg.Driver), query)
}

func (d *DefaultDatabase) insertIgnore() string {
	const columns = "transactions (chain, tx_hash, tx_bytes, origin, gas_payer, status, block_height) VALUES (?, ?, ?, ?, ?, ?, ?)"

	switch d.cfg.Driver {
	case config.DbDriverMysql:
		return "INSERT IGNORE INTO " + columns
	case config.DbDriverPostgres:
		return d.rebind("INSERT INTO " + columns + " ON CONFLICT (tx_hash) DO NOTHING")
	default:
		return "INSERT OR IGNORE INTO " + columns
	}
}

// SaveTx stores a dispatched tx. Saving the same hash twice keeps the first record.
func (d *DefaultDatabase) SaveTx(tx *types.Tx) error {
	_, err := d.db.Exec(d.insertIgnore(),
		tx.Chain, tx.Hash, tx.Serialized, tx.Origin, tx.GasPayer, string(tx.Status), tx.BlockHeight)
	if err != nil {
		log.Error("Cannot save tx ", tx.Hash, " into db, err = ", err)
	}

	return err
}

func (d *DefaultDatabase) UpdateTxStatus(hash string, status types.TxStatus, blockHeight int64) error {
	res, err := d.db.Exec(d.rebind("UPDATE transactions SET status = ?, block_height = ? WHERE tx_hash = ?"),
		string(status), blockHeight, hash)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrTxNotFound
	}

	return nil
}

func (d *DefaultDatabase) GetTx(hash string) (*types.Tx, error) {
	rows, err := d.db.Query(d.rebind("SELECT chain, tx_hash, tx_bytes, origin, gas_payer, status, block_height FROM transactions WHERE tx_hash = ?"), hash)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	txs, err := scanTxs(rows)
	if err != nil {
		return nil, err
	}

	if len(txs) == 0 {
		return nil, ErrTxNotFound
	}

	return txs[0], nil
}

func (d *DefaultDatabase) LoadPendingTxs(chain string) ([]*types.Tx, error) {
	rows, err := d.db.Query(d.rebind("SELECT chain, tx_hash, tx_bytes, origin, gas_payer, status, block_height FROM transactions WHERE chain = ? AND status = ?"),
		chain, string(types.TxStatusPending))
	if err != nil {
		log.Error("Failed to load pending txs for chain ", chain, ". Error = ", err)
		return nil, err
	}
	defer rows.Close()

	return scanTxs(rows)
}

func scanTxs(rows *sql.Rows) ([]*types.Tx, error) {
	txs := make([]*types.Tx, 0)
	for rows.Next() {
		var (
			tx               types.Tx
			status           string
			origin, gasPayer sql.NullString
		)
		if err := rows.Scan(&tx.Chain, &tx.Hash, &tx.Serialized, &origin, &gasPayer, &status, &tx.BlockHeight); err != nil {
			return nil, err
		}

		tx.Origin = origin.String
		tx.GasPayer = gasPayer.String
		tx.Status = types.TxStatus(status)
		txs = append(txs, &tx)
	}

	return txs, rows.Err()
}
