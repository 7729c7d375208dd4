package services

import (
	"fmt"
	"sync/atomic"
	"time"
)

var orderSeq atomic.Uint64

// nextOrderNumber combines wall-clock nanoseconds with a process-wide counter
// so two orders created in the same instant still get distinct numbers.
func nextOrderNumber() string {
	return fmt.Sprintf("SOKO-%d-%d", time.Now().UnixNano(), orderSeq.Add(1))
}
