package redisqueue

import (
	"fmt"
	"os"
)

// defaultConsumerName identifies this process within the consumer group.
func defaultConsumerName() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "worker"
	}
	return fmt.Sprintf("%s-%d", host, os.Getpid())
}
