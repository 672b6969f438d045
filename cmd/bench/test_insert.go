package main

import (
	"bufio"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"
)

func TestInsert(c Config) {

	stop := StartServer(&c)
	defer stop()

	client := NewClient()
	table := NewTableName()

	items := c.N

	t0 := time.Now()
	Parallel(c.Workers, func(worker int) {

		r, w := io.Pipe()

		wb := bufio.NewWriterSize(w, 1*1024*1024)

		go func() {
			for {
				n := atomic.AddInt64(&items, -1)
				if n < 0 {
					break
				}
				fmt.Fprintf(wb, "{\"id\":%d,\"n\":%d}\n", n, n)
			}
			wb.Flush()
			w.Close()
		}()

		Do(client, http.MethodPost, c.Base+"/v1/tables/"+table+":insert", r)
	})

	took := time.Since(t0)
	fmt.Println("sent:", c.N)
	fmt.Println("took:", took)
	fmt.Printf("Throughput: %.2f rows/sec\n", float64(c.N)/took.Seconds())
}
