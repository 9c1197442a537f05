package config

import (
	"fmt"
	"strings"
)

type Store struct {
	Driver   StoreDriver `env:"STORE_DRIVER" envDefault:"postgres"`
	Postgres Postgres
	MySQL    MySQL
}

// StoreDriver selects the relational backend holding the product table.
type StoreDriver uint8

const (
	StoreDriverPostgres StoreDriver = iota
	StoreDriverMySQL
)

// String returns the string representation of the store driver.
func (d StoreDriver) String() string {
	switch d {
	case StoreDriverPostgres:
		return "postgres"
	case StoreDriverMySQL:
		return "mysql"
	default:
		return "unknown"
	}
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (d *StoreDriver) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "postgres", "postgresql", "pgx":
		*d = StoreDriverPostgres
	case "mysql":
		*d = StoreDriverMySQL
	default:
		return fmt.Errorf("unknown store driver: %s", text)
	}
	return nil
}

func (d StoreDriver) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}
