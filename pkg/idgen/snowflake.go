// Package idgen generates the human-facing reference numbers stamped on
// transactions and payment records. IDs come from a snowflake generator:
// 41 bits of millisecond timestamp, 10 bits of worker id, 12 bits of
// per-millisecond sequence, so they are unique and trend upward.
package idgen

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"
)

const (
	epoch          = int64(1704067200000) // 2024-01-01 00:00:00 UTC
	workerIDBits   = 10
	sequenceBits   = 12
	maxWorkerID    = -1 ^ (-1 << workerIDBits)
	maxSequence    = -1 ^ (-1 << sequenceBits)
	workerIDShift  = sequenceBits
	timestampShift = sequenceBits + workerIDBits
)

type Snowflake struct {
	mu        sync.Mutex
	timestamp int64
	workerID  int64
	sequence  int64
}

var (
	defaultGenerator *Snowflake
	once             sync.Once
)

// Init sets up the default generator. Each running instance needs a
// distinct worker id for cross-instance uniqueness.
func Init(workerID int64) {
	once.Do(func() {
		if workerID < 0 || workerID > maxWorkerID {
			slog.Error("idgen worker id out of range", "worker_id", workerID, "max", maxWorkerID)
			os.Exit(1)
		}
		defaultGenerator = &Snowflake{workerID: workerID}
	})
}

func NextID() int64 {
	if defaultGenerator == nil {
		Init(1)
	}
	return defaultGenerator.Generate()
}

func (s *Snowflake) Generate() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UnixMilli()

	if now == s.timestamp {
		s.sequence = (s.sequence + 1) & maxSequence
		if s.sequence == 0 {
			// sequence exhausted for this millisecond, wait out the clock
			for now <= s.timestamp {
				now = time.Now().UnixMilli()
			}
		}
	} else {
		s.sequence = 0
	}

	s.timestamp = now

	return ((now - epoch) << timestampShift) |
		(s.workerID << workerIDShift) |
		s.sequence
}

// GenerateTransactionNo returns a transaction reference number, e.g.
// TXN20240115143052_12345678.
func GenerateTransactionNo() string {
	return referenceNo("TXN")
}

// GeneratePaymentNo returns a payment record reference number.
func GeneratePaymentNo() string {
	return referenceNo("PAY")
}

func referenceNo(prefix string) string {
	id := NextID()
	timestamp := time.Now().Format("20060102150405")
	return fmt.Sprintf("%s%s%08d", prefix, timestamp, id%100000000)
}
