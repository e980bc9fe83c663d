package mq

import (
	"log/slog"
	"os"

	"github.com/IBM/sarama"

	"orderledger/internal/config"
)

var kafkaProducer sarama.SyncProducer

// InitKafka creates the shared sync producer used by the outbox sender.
func InitKafka(cfg *config.KafkaConfig) sarama.SyncProducer {
	kafkaConfig := sarama.NewConfig()
	kafkaConfig.Producer.RequiredAcks = sarama.WaitForAll
	kafkaConfig.Producer.Retry.Max = 3
	kafkaConfig.Producer.Return.Successes = true

	producer, err := sarama.NewSyncProducer(cfg.Brokers, kafkaConfig)
	if err != nil {
		slog.Error("create kafka producer failed", "error", err)
		os.Exit(1)
	}

	UseProducer(producer)
	slog.Info("kafka producer created", "brokers", cfg.Brokers)
	return producer
}

// UseProducer installs the shared producer SendMessage publishes through.
// InitKafka calls this with a real producer; tests install a mock.
func UseProducer(p sarama.SyncProducer) {
	kafkaProducer = p
}

func SendMessage(topic, key, value string) error {
	msg := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.StringEncoder(value),
	}

	_, _, err := kafkaProducer.SendMessage(msg)
	return err
}

func CloseKafka() {
	if kafkaProducer != nil {
		kafkaProducer.Close()
	}
}
