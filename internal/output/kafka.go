package output

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/IBM/sarama"
	"github.com/chrisdamba/foodinsights/internal/models"
)

// KafkaOutput publishes each message to <prefix>.<topic> through a sarama
// SyncProducer.
type KafkaOutput struct {
	producer    sarama.SyncProducer
	topicPrefix string
}

func newSaramaConfig(cfg models.OutputConfig) *sarama.Config {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Retry.Max = 5
	saramaConfig.Producer.Retry.Backoff = 100 * time.Millisecond
	saramaConfig.Producer.Return.Successes = true // required by SyncProducer
	saramaConfig.Net.DialTimeout = 30 * time.Second
	saramaConfig.Net.ReadTimeout = 30 * time.Second
	saramaConfig.Net.WriteTimeout = 30 * time.Second

	if cfg.SessionTimeoutMs > 0 {
		saramaConfig.Consumer.Group.Session.Timeout = time.Duration(cfg.SessionTimeoutMs) * time.Millisecond
	} else {
		saramaConfig.Consumer.Group.Session.Timeout = 45 * time.Second
	}
	return saramaConfig
}

func NewKafkaOutput(cfg models.OutputConfig) (*KafkaOutput, error) {
	brokerList := strings.Split(cfg.KafkaBrokerList, ",")

	producer, err := sarama.NewSyncProducer(brokerList, newSaramaConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to create Sarama producer: %w", err)
	}

	log.Printf("Sarama producer created successfully with brokers %v", brokerList)
	return NewKafkaOutputWithProducer(producer, cfg.KafkaTopicPrefix), nil
}

func NewKafkaOutputWithProducer(producer sarama.SyncProducer, topicPrefix string) *KafkaOutput {
	return &KafkaOutput{producer: producer, topicPrefix: topicPrefix}
}

func (k *KafkaOutput) topic(name string) string {
	if k.topicPrefix == "" {
		return name
	}
	return k.topicPrefix + "." + name
}

func (k *KafkaOutput) WriteMessage(topic string, msg []byte) error {
	if k.producer == nil {
		return fmt.Errorf("kafka producer is closed")
	}

	_, _, err := k.producer.SendMessage(&sarama.ProducerMessage{
		Topic: k.topic(topic),
		Value: sarama.ByteEncoder(msg),
	})
	if err != nil {
		log.Printf("Failed to send message to topic %s: %v", k.topic(topic), err)
		return err
	}
	return nil
}

func (k *KafkaOutput) Close() error {
	if k.producer == nil {
		return nil
	}
	err := k.producer.Close()
	k.producer = nil
	return err
}
