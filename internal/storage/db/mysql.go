package db

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/tuanvumaihuynh/product-catalog/internal/config"
)

var _ HealthChecker = (*MySQLClient)(nil)

// MySQLClient wraps a sqlx handle opened with the mysql driver.
type MySQLClient struct {
	*sqlx.DB
}

// NewMySQLClient opens and pings a MySQL connection pool.
func NewMySQLClient(ctx context.Context, cfg config.MySQL) (*MySQLClient, error) {
	sqlxDB, err := sqlx.Open("mysql", mysqlDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}

	sqlxDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlxDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlxDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	pingCtx, pingCancel := context.WithTimeout(ctx, pingTimeout)
	defer pingCancel()

	if err := sqlxDB.PingContext(pingCtx); err != nil {
		sqlxDB.Close()
		return nil, fmt.Errorf("ping mysql: %w", err)
	}

	return &MySQLClient{sqlxDB}, nil
}

func (c *MySQLClient) IsHealthy(ctx context.Context) (bool, error) {
	if err := c.PingContext(ctx); err != nil {
		return false, fmt.Errorf("ping mysql: %w", err)
	}
	return true, nil
}

// mysqlDSN reports matched rather than changed rows for UPDATE, so renaming
// a product to its current name still counts as one affected row.
func mysqlDSN(cfg config.MySQL) string {
	mc := mysql.NewConfig()
	mc.User = cfg.User
	mc.Passwd = cfg.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	mc.DBName = cfg.DB
	mc.ClientFoundRows = true
	mc.ParseTime = true

	return mc.FormatDSN()
}
