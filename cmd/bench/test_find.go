package main

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// TestFind walks the whole table sorted backwards from every worker at once.
func TestFind(c Config) {

	stop := StartServer(&c)
	defer stop()

	client := NewClient()
	table := NewTableName()

	fmt.Println("Preload documents...")
	Preload(client, c.Base, table, c.N, c.Workers)

	findURL := fmt.Sprintf("%s/v1/tables/%s:find", c.Base, table)
	body := fmt.Sprintf(`{"sort":["-n"],"reverse":true,"limit":%d}`, c.N)

	t0 := time.Now()
	Parallel(c.Workers, func(worker int) {
		b := Do(client, http.MethodPost, findURL, strings.NewReader(body))
		n := bytes.Count(b, []byte("\n"))
		if int64(n) != c.N {
			fmt.Println("ERROR: worker", worker, "read", n, "rows")
		}
	})
	rows := c.N * int64(c.Workers)

	took := time.Since(t0)
	fmt.Println("read:", rows)
	fmt.Println("took:", took)
	fmt.Printf("Throughput: %.2f rows/sec\n", float64(rows)/took.Seconds())
}
