package config_test

import (
	"testing"

	"stocktrack/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg := config.Load()

	if cfg.AppName != config.AppName {
		t.Errorf("appName got=%s want=%s", cfg.AppName, config.AppName)
	}
	if cfg.Port != "8080" {
		t.Errorf("port got=%s want=%s", cfg.Port, "8080")
	}
	if cfg.RabbitMQ.Stock.Exchange != "article.stock.exchange" {
		t.Errorf("stock exchange got=%s want=%s", cfg.RabbitMQ.Stock.Exchange, "article.stock.exchange")
	}
	if cfg.Db.Name != "stocktrack-db" {
		t.Errorf("db name got=%s want=%s", cfg.Db.Name, "stocktrack-db")
	}
}
