package database

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate"
	"github.com/golang-migrate/migrate/database/mysql"
	"github.com/golang-migrate/migrate/database/sqlite3"
	_ "github.com/golang-migrate/migrate/source/file"
	_ "github.com/mattn/go-sqlite3"

	"github.com/hinkal-protocol/batch-node/config"
	"github.com/hinkal-protocol/batch-node/logger"
	"github.com/hinkal-protocol/batch-node/types"
)

type DefaultDatabase struct {
	cfg *config.Config
	db  *sql.DB
}

type dbLogger struct {
}

func (l *dbLogger) Printf(format string, v ...interface{}) {
	logger.Infof(format, v...)
}

func (l *dbLogger) Verbose() bool {
	return false
}

func NewDb(cfg *config.Config) Database {
	return &DefaultDatabase{
		cfg: cfg,
	}
}

func (d *DefaultDatabase) Connect() error {
	if d.cfg.InMemory {
		database, err := sql.Open("sqlite3", "file::memory:?cache=shared")
		if err != nil {
			return err
		}

		d.db = database
		return nil
	}

	host := d.cfg.DbHost
	if host == "" {
		return fmt.Errorf("DB host cannot be empty")
	}

	port := d.cfg.DbPort
	username := d.cfg.DbUsername
	password := d.cfg.DbPassword
	schema := d.cfg.DbSchema

	// Connect to the db
	url := fmt.Sprintf("%s:%s@tcp(%s:%d)/", username, password, host, port)
	database, err := sql.Open("mysql", url)
	if err != nil {
		return err
	}
	_, err = database.Exec("CREATE DATABASE IF NOT EXISTS " + schema)
	if err != nil {
		return err
	}
	database.Close()

	database, err = sql.Open("mysql", fmt.Sprintf("%s:%s@tcp(%s:%d)/%s", username, password, host, port, schema))
	if err != nil {
		return err
	}

	d.db = database
	logger.Info("Db is connected successfully")
	return nil
}

func (d *DefaultDatabase) DoMigration() error {
	migrationDir, err := MigrationsTempDir()
	if err != nil {
		return err
	}
	defer os.RemoveAll(migrationDir)

	var m *migrate.Migrate
	if d.cfg.InMemory {
		driver, err := sqlite3.WithInstance(d.db, &sqlite3.Config{})
		if err != nil {
			return err
		}

		m, err = migrate.NewWithDatabaseInstance("file://"+migrationDir, "sqlite3", driver)
		if err != nil {
			return err
		}
	} else {
		driver, err := mysql.WithInstance(d.db, &mysql.Config{})
		if err != nil {
			return err
		}

		m, err = migrate.NewWithDatabaseInstance("file://"+migrationDir, "mysql", driver)
		if err != nil {
			return err
		}
	}

	m.Log = &dbLogger{}
	m.Up()

	return nil
}

func (d *DefaultDatabase) Init() error {
	err := d.Connect()
	if err != nil {
		logger.Errorf("Failed to connect to DB. Err = %v", err)
		return err
	}

	err = d.DoMigration()
	if err != nil {
		return err
	}

	return nil
}

func (d *DefaultDatabase) SaveBatchResult(result *types.BatchResult) error {
	_, err := d.db.Exec(
		`REPLACE INTO batch_jobs (job_id, success, total_transactions, completed_transactions, failed_transaction_id, error)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		result.JobId, result.Success, result.TotalTransactions, result.CompletedTransactions,
		result.FailedTransactionId, result.Error,
	)

	return err
}

func (d *DefaultDatabase) SaveExecutionResult(jobId, txId, txType string, chainId int64,
	result *types.ExecutionResult) error {

	_, err := d.db.Exec(
		`REPLACE INTO transaction_results (job_id, tx_id, tx_type, chain_id, success, tx_hash, block_number, gas_used, gas_estimate, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		jobId, txId, txType, chainId, result.Success, result.TxHash, result.BlockNumber,
		result.GasUsed, result.GasEstimate, result.Error,
	)

	return err
}

func (d *DefaultDatabase) LoadBatchResult(jobId string) (*types.BatchResult, error) {
	rows, err := d.db.Query(
		`SELECT job_id, success, total_transactions, completed_transactions, failed_transaction_id, error
		 FROM batch_jobs WHERE job_id=?`, jobId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, fmt.Errorf("no batch job found with id %s", jobId)
	}

	result := &types.BatchResult{}
	err = rows.Scan(&result.JobId, &result.Success, &result.TotalTransactions,
		&result.CompletedTransactions, &result.FailedTransactionId, &result.Error)
	if err != nil {
		return nil, err
	}

	return result, nil
}
