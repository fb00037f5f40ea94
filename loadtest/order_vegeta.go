package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/RuchiraRanasinghe/order-manement-System-backend/pkg/logger"

	vegeta "github.com/tsenart/vegeta/v12/lib"
)

// orderResp captures success flag for post-run analysis
type orderResp struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

func main() {
	var (
		server      = flag.String("server", "http://localhost:3030", "Order server base URL")
		product     = flag.String("product", "", "Product ID for orders (empty = server default)")
		rate        = flag.Int("rate", 50, "Requests per second")
		duration    = flag.String("duration", "30s", "Attack duration (e.g. 10s, 1m)")
		maxQuantity = flag.Int("maxQuantity", 5, "Max random quantity per order")
		productList = flag.String("productList", "", "Comma separated product IDs (optional: random pick per request)")
		outJSON     = flag.String("out", "vegeta_results.json", "Summary JSON output file")
	)
	flag.Parse()

	attackDuration, err := time.ParseDuration(*duration)
	if err != nil {
		logger.Fatal("invalid duration", "err", err)
	}

	// Parse optional product list
	var productIDs []string
	if *productList != "" {
		for _, part := range strings.Split(*productList, ",") {
			if p := strings.TrimSpace(part); p != "" {
				productIDs = append(productIDs, p)
			}
		}
	}

	// Custom targeter producing randomized public order submissions
	var counter uint64
	targeter := func(t *vegeta.Target) error {
		idx := atomic.AddUint64(&counter, 1)
		pid := *product
		if len(productIDs) > 0 { // random product id if list provided
			pid = productIDs[rand.Intn(len(productIDs))]
		}
		bodyMap := map[string]any{
			"fullName": fmt.Sprintf("Load Tester %d", idx),
			"address":  fmt.Sprintf("%d Galle Road, Colombo", idx%200+1),
			"mobile":   fmt.Sprintf("07%08d", idx%100000000),
			"quantity": rand.Intn(*maxQuantity) + 1,
			"notes":    "load test order",
		}
		if pid != "" {
			bodyMap["product"] = pid
		}
		b, _ := json.Marshal(bodyMap)
		t.Method = http.MethodPost
		t.URL = fmt.Sprintf("%s/api/orders", *server)
		t.Body = b
		t.Header = http.Header{}
		t.Header.Set("Content-Type", "application/json")
		return nil
	}

	attacker := vegeta.NewAttacker()
	var metrics vegeta.Metrics
	successLogical := uint64(0)
	totalLogical := uint64(0)

	for res := range attacker.Attack(targeter, vegeta.Rate{Freq: *rate, Per: time.Second}, attackDuration, "order_test") {
		metrics.Add(res)
		atomic.AddUint64(&totalLogical, 1)
		// Check JSON success field
		var or orderResp
		if err := json.Unmarshal(res.Body, &or); err == nil {
			if or.Success {
				atomic.AddUint64(&successLogical, 1)
			}
		}
	}
	metrics.Close()

	logicalSuccessRatio := float64(successLogical) / float64(maxU64(1, totalLogical))

	summary := map[string]any{
		"attack": map[string]any{
			"rate_rps": *rate,
			"duration": attackDuration.String(),
		},
		"vegeta_metrics": map[string]any{
			"requests":           metrics.Requests,
			"rate":               metrics.Rate,
			"throughput":         metrics.Throughput,
			"success_ratio_http": metrics.Success,
			"latency_mean_ms":    metrics.Latencies.Mean.Seconds() * 1000,
			"latency_p95_ms":     metrics.Latencies.P95.Seconds() * 1000,
			"latency_p99_ms":     metrics.Latencies.P99.Seconds() * 1000,
			"errors":             metrics.Errors,
		},
		"logical_success_ratio": logicalSuccessRatio,
		"logical_success":       successLogical,
		"logical_total":         totalLogical,
		"timestamp":             time.Now().Format(time.RFC3339),
	}

	data, _ := json.MarshalIndent(summary, "", "  ")
	if err := os.WriteFile(*outJSON, data, 0644); err != nil {
		logger.Warn("write summary failed", "err", err)
	}
	fmt.Println(string(data))
}

func maxU64(a, b uint64) uint64 {
	if a > b {
		return a
	}
	return b
}
