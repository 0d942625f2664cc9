package store

import (
	"fmt"
	"os"
	"strings"
)

const (
	StoreModeMemory   = "memory"
	StoreModeSQLite   = "sqlite"
	StoreModePostgres = "postgres"
)

func storeModeFromEnv() string {
	raw := strings.ToLower(strings.TrimSpace(os.Getenv("STORE_MODE")))
	switch raw {
	case "", StoreModeSQLite:
		return StoreModeSQLite
	case StoreModePostgres, "postgresql", "pg":
		return StoreModePostgres
	case StoreModeMemory, "mem":
		return StoreModeMemory
	default:
		return raw
	}
}

// NewServiceFromEnv selects the store backend from STORE_MODE
// (sqlite by default).
func NewServiceFromEnv() (Service, string, error) {
	mode := storeModeFromEnv()

	switch mode {
	case StoreModeSQLite:
		svc, err := NewSQLiteServiceFromEnv()
		if err != nil {
			return nil, mode, err
		}
		return svc, mode, nil
	case StoreModePostgres:
		svc, err := NewPostgresServiceFromEnv()
		if err != nil {
			return nil, mode, err
		}
		return svc, mode, nil
	case StoreModeMemory:
		return NewMemoryService(), mode, nil
	default:
		return nil, mode, fmt.Errorf("invalid STORE_MODE %q (supported: %s, %s, %s)",
			mode, StoreModeSQLite, StoreModePostgres, StoreModeMemory)
	}
}
