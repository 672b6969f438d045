package main

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"sync/atomic"
	"time"
)

func TestRemove(c Config) {

	stop := StartServer(&c)
	defer stop()

	client := NewClient()
	table := NewTableName()

	fmt.Println("Preload documents...")
	Preload(client, c.Base, table, c.N, c.Workers)

	removeURL := fmt.Sprintf("%s/v1/tables/%s:remove", c.Base, table)

	removed := int64(0)
	t0 := time.Now()
	Parallel(c.Workers, func(worker int) {
		// Remove all documents belonging to this worker
		body := fmt.Sprintf(`{"filter":{"worker":%d},"limit":%d}`, worker, c.N)
		b := Do(client, http.MethodPost, removeURL, strings.NewReader(body))
		atomic.AddInt64(&removed, int64(bytes.Count(b, []byte("\n"))))
	})

	took := time.Since(t0)
	fmt.Println("removed:", removed)
	fmt.Println("took:", took)
	fmt.Printf("Throughput: %.2f rows/sec\n", float64(removed)/took.Seconds())

	size := Do(client, http.MethodPost, fmt.Sprintf("%s/v1/tables/%s:size", c.Base, table), nil)
	fmt.Println("size:", string(size))
}
