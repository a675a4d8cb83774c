package app

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("неожиданный HTTPAddr: %s", cfg.HTTPAddr)
	}
	if cfg.MetricsAddr != ":9090" {
		t.Fatalf("неожиданный MetricsAddr: %s", cfg.MetricsAddr)
	}
	if cfg.StorageDriver != StorageDriverMemory {
		t.Fatalf("по умолчанию ожидается memory, получено %s", cfg.StorageDriver)
	}
	if !cfg.PostgresAutoMigrate {
		t.Fatal("автомиграции должны быть включены по умолчанию")
	}
	if cfg.OutboxPollInterval != 2*time.Second {
		t.Fatalf("неожиданный интервал опроса outbox: %s", cfg.OutboxPollInterval)
	}
	if cfg.OutboxBatchSize != 50 || cfg.OutboxMaxAttempts != 5 {
		t.Fatalf("неожиданные настройки outbox: batch=%d attempts=%d", cfg.OutboxBatchSize, cfg.OutboxMaxAttempts)
	}
	if len(cfg.KafkaBrokers) != 0 {
		t.Fatal("Kafka должен быть отключён по умолчанию")
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("ORDERHUB_HTTP_ADDR", ":18080")
	t.Setenv("ORDERHUB_STORAGE_DRIVER", StorageDriverPostgres)
	t.Setenv("ORDERHUB_POSTGRES_DSN", "postgres://localhost/orderhub")
	t.Setenv("ORDERHUB_POSTGRES_AUTO_MIGRATE", "false")
	t.Setenv("ORDERHUB_KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092")
	t.Setenv("ORDERHUB_OUTBOX_POLL_INTERVAL", "500ms")
	t.Setenv("ORDERHUB_OUTBOX_BATCH_SIZE", "10")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.HTTPAddr != ":18080" {
		t.Fatalf("HTTPAddr не перекрыт из окружения: %s", cfg.HTTPAddr)
	}
	if cfg.StorageDriver != StorageDriverPostgres {
		t.Fatalf("StorageDriver не перекрыт: %s", cfg.StorageDriver)
	}
	if cfg.PostgresDSN != "postgres://localhost/orderhub" {
		t.Fatalf("PostgresDSN не перекрыт: %s", cfg.PostgresDSN)
	}
	if cfg.PostgresAutoMigrate {
		t.Fatal("PostgresAutoMigrate должен быть выключен")
	}
	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[0] != "kafka-1:9092" || cfg.KafkaBrokers[1] != "kafka-2:9092" {
		t.Fatalf("список брокеров разобран неверно: %v", cfg.KafkaBrokers)
	}
	if cfg.OutboxPollInterval != 500*time.Millisecond {
		t.Fatalf("OutboxPollInterval не перекрыт: %s", cfg.OutboxPollInterval)
	}
	if cfg.OutboxBatchSize != 10 {
		t.Fatalf("OutboxBatchSize не перекрыт: %d", cfg.OutboxBatchSize)
	}
}

func TestLoadConfig_DSNImpliesPostgres(t *testing.T) {
	t.Setenv("ORDERHUB_POSTGRES_DSN", "postgres://localhost/orderhub")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.StorageDriver != StorageDriverPostgres {
		t.Fatalf("заданный DSN должен включать postgres, получено %s", cfg.StorageDriver)
	}
}

func TestLoadConfig_ExplicitDriverWins(t *testing.T) {
	t.Setenv("ORDERHUB_POSTGRES_DSN", "postgres://localhost/orderhub")
	t.Setenv("ORDERHUB_STORAGE_DRIVER", StorageDriverMemory)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.StorageDriver != StorageDriverMemory {
		t.Fatalf("явный драйвер должен иметь приоритет, получено %s", cfg.StorageDriver)
	}
}

func TestLoadConfig_InvalidInt(t *testing.T) {
	t.Setenv("ORDERHUB_OUTBOX_BATCH_SIZE", "not-a-number")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("ожидалась ошибка разбора числа")
	}
}

func TestLoadConfig_InvalidDuration(t *testing.T) {
	t.Setenv("ORDERHUB_OUTBOX_RETRY_DELAY", "soon")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("ожидалась ошибка разбора длительности")
	}
}
