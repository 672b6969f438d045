package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	json "github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"

	"github.com/fulldump/versiondb/bootstrap"
	"github.com/fulldump/versiondb/configuration"
)

type JSON = map[string]any

func Parallel(workers int, f func(worker int)) {
	wg := &sync.WaitGroup{}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f(i)
		}()
	}
	wg.Wait()
}

func NewTableName() string {
	return "bench-" + strconv.FormatInt(time.Now().UnixNano(), 10)
}

func NewClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			MaxConnsPerHost:     1024,
			MaxIdleConnsPerHost: 1024,
			MaxIdleConns:        1024,
		},
	}
}

// StartServer starts an embedded server when no base URL is configured.
func StartServer(c *Config) (stop func()) {
	if c.Base != "" {
		return func() {}
	}

	conf := configuration.Default()
	conf.ShowBanner = false
	c.Base = "http://" + conf.HttpAddr

	start, stop := bootstrap.Bootstrap(&conf)
	go start()

	// wait until the database is operating
	for i := 0; i < 100; i++ {
		resp, err := http.Get(c.Base + "/v1/status")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
	}

	return stop
}

// Preload inserts n documents in one request, each one tagged with a worker.
func Preload(client *http.Client, base, table string, n int64, workers int) {
	r, w := io.Pipe()

	go func() {
		enc := jsontext.NewEncoder(w)
		for i := int64(0); i < n; i++ {
			json.MarshalEncode(enc, JSON{
				"id":     strconv.FormatInt(i, 10),
				"n":      i,
				"worker": i % int64(workers),
			})
		}
		w.Close()
	}()

	Do(client, http.MethodPost, base+"/v1/tables/"+table+":insert", r)
}

func Do(client *http.Client, method, url string, body io.Reader) []byte {
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		fmt.Println("ERROR: new request:", err.Error())
		os.Exit(3)
	}

	resp, err := client.Do(req)
	if err != nil {
		fmt.Println("ERROR: do request:", err.Error())
		os.Exit(4)
	}
	defer resp.Body.Close()

	b, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		fmt.Println("ERROR: unexpected status:", resp.StatusCode, string(b))
	}

	return b
}
