package services

import (
	"comandas_server/repository"
	"comandas_server/structs"
	"time"

	"github.com/MonkyMars/gecho"
)

func quietLogger() *gecho.Logger {
	return gecho.NewLogger(gecho.NewConfig(gecho.WithLogLevel(gecho.ParseLogLevel("error"))))
}

func testConfig() *structs.Config {
	return &structs.Config{
		Server:  &structs.ServerConfig{Environment: "test"},
		Cache:   &structs.CacheConfig{Enabled: false, CatalogTTL: time.Minute},
		Auth:    &structs.AuthConfig{AccessTokenSecret: "test-secret", AccessTokenExpiry: time.Hour},
		Tickets: &structs.TicketsConfig{MaxNumber: 10},
		Storage: &structs.StorageConfig{Backend: "memory"},
	}
}

func newTestManager() (*ServiceManager, *repository.MemoryStore) {
	store := repository.NewMemoryStore()
	return NewServiceManager(quietLogger(), testConfig(), nil, store), store
}
