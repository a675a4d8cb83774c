package app

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orderhub/internal/messaging/kafka"
)

// initKafkaProducer поднимает producer, если брокеры заданы.
// Без брокеров приложение работает, но исходящие события копятся в outbox.
func initKafkaProducer(brokers []string, logger *log.Entry) (*kafka.Producer, error) {
	if len(brokers) == 0 {
		logger.Warn("брокеры Kafka не заданы, публикация событий отключена")
		return nil, nil
	}
	producer, err := kafka.NewProducer(brokers)
	if err != nil {
		return nil, fmt.Errorf("инициализация kafka producer: %w", err)
	}
	logger.WithField("brokers", brokers).Info("kafka producer готов")
	return producer, nil
}

func closeKafka(producer *kafka.Producer, logger *log.Entry) {
	if producer == nil {
		return
	}
	if err := producer.Close(); err != nil {
		logger.WithError(err).Error("ошибка при закрытии kafka producer")
	}
}
