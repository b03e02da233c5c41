package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"sort"
	"sync"
	"time"
)

// Message is the inbox message payload
type Message struct {
	Sender     string `json:"sender"`
	Body       string `json:"body"`
	OccurredAt int64  `json:"occurredAt"`
}

// ParseResponse is the dry-run parse response
type ParseResponse struct {
	Accepted    bool `json:"accepted"`
	Transaction *struct {
		Amount    string `json:"amount"`
		Direction string `json:"direction"`
		Merchant  string `json:"merchant"`
		Category  string `json:"category"`
		Account   string `json:"account"`
	} `json:"transaction"`
	Reason string `json:"reason"`
}

// Scenario is one sample message and whether it should become a transaction
type Scenario struct {
	Name       string
	Sender     string
	Body       string
	WantAccept bool
}

// ReplayResult contains metrics for a single request
type ReplayResult struct {
	Scenario     string
	Success      bool
	Accepted     bool
	Mismatch     bool
	ResponseTime time.Duration
	StatusCode   int
	Error        error
}

// ReplayStats contains aggregated statistics
type ReplayStats struct {
	TotalRequests      int
	SuccessfulRequests int
	FailedRequests     int
	Mismatches         int
	TotalTime          time.Duration
	ResponseTimes      []time.Duration
	ErrorCounts        map[string]int
	ScenarioStats      map[string]int
	AcceptedStats      map[string]int
	Lock               sync.Mutex
}

var scenarios = []Scenario{
	{"UPI debit", "VM-KOTAKB", "Sent Rs.40.00 from Kotak Bank AC X1234 to sainathcanteen@ybl on 05-03-25.UPI Ref 506412345678. Not you, https://kotak.com/fraud", true},
	{"Card spend", "AD-HDFCBK", "Spent Rs.1,249.00 On HDFC Bank Card 5678 At AMAZON PAY INDIA On 2025-03-05:14:02:11", true},
	{"Salary credit", "JD-SBIINB", "Dear Customer, your A/c XX9012 has been credited by Rs.45,000.00 on 01Mar25 by NEFT transfer from ACME CORP. Ref no 512345678901", true},
	{"Wallet credit", "BP-PAYTMB", "Received Rs.66.00 from RAHUL SHARMA in your Paytm Wallet. Txn ID 24890123456", true},
	{"OTP", "AD-HDFCBK", "123456 is your OTP for txn of Rs.500.00 at FLIPKART. Do not share it with anyone.", false},
	{"Mandate", "VM-ICICIB", "Your AutoPay mandate of Rs.199.00 for NETFLIX will be debited on 10-03-2025.", false},
	{"Promo", "VK-MYNTRA", "Flat 50% off! Shop now and save up to Rs.2000 on your favourite brands.", false},
	{"Too short", "VM-KOTAKB", "Rs.5", false},
}

func main() {
	concurrency := flag.Int("c", 4, "Number of concurrent goroutines")
	totalRequests := flag.Int("n", 100, "Total number of messages to send")
	baseURL := flag.String("url", "http://localhost:8080", "Base URL for the API")
	mode := flag.String("mode", "parse", "parse (dry run, checks acceptance) or submit (enqueue for ingestion)")
	delayMs := flag.Int("delay", 50, "Delay between requests in milliseconds")
	flag.Parse()

	endpoint := "/api/v1/messages/parse"
	if *mode == "submit" {
		endpoint = "/api/v1/messages"
	} else if *mode != "parse" {
		fmt.Printf("unknown mode %q\n", *mode)
		return
	}

	fmt.Printf("Replaying %d messages from %d scenarios against %s%s\n", *totalRequests, len(scenarios), *baseURL, endpoint)
	fmt.Printf("Concurrency: %d goroutines, delay %d ms\n", *concurrency, *delayMs)

	stats := &ReplayStats{
		TotalRequests: *totalRequests,
		ErrorCounts:   make(map[string]int),
		ResponseTimes: make([]time.Duration, 0, *totalRequests),
		ScenarioStats: make(map[string]int),
		AcceptedStats: make(map[string]int),
	}

	results := make(chan ReplayResult, *totalRequests)
	jobs := make(chan int, *totalRequests)

	var wg sync.WaitGroup
	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker(*baseURL+endpoint, *mode == "parse", *delayMs, jobs, results)
		}()
	}

	for i := 0; i < *totalRequests; i++ {
		jobs <- i
	}
	close(jobs)

	collected := make(chan struct{})
	go func() {
		defer close(collected)
		for result := range results {
			stats.Lock.Lock()
			stats.ScenarioStats[result.Scenario]++
			if result.Success {
				stats.SuccessfulRequests++
				if result.Accepted {
					stats.AcceptedStats[result.Scenario]++
				}
				if result.Mismatch {
					stats.Mismatches++
				}
			} else {
				stats.FailedRequests++
				errMsg := "unknown"
				if result.Error != nil {
					errMsg = result.Error.Error()
				}
				stats.ErrorCounts[errMsg]++
			}
			stats.ResponseTimes = append(stats.ResponseTimes, result.ResponseTime)
			stats.Lock.Unlock()
		}
	}()

	startTime := time.Now()
	wg.Wait()
	close(results)
	<-collected
	stats.TotalTime = time.Since(startTime)

	printResults(stats, *mode == "parse")
}

func worker(url string, checkAcceptance bool, delayMs int, jobs <-chan int, results chan<- ReplayResult) {
	client := &http.Client{
		Timeout: 10 * time.Second,
	}

	for range jobs {
		if delayMs > 0 {
			time.Sleep(time.Duration(delayMs) * time.Millisecond)
		}

		scenario := scenarios[rand.Intn(len(scenarios))]
		// Spread messages over the last 90 days so scans and series have data
		occurredAt := time.Now().Add(-time.Duration(rand.Intn(90*24)) * time.Hour).UnixMilli()

		payload, err := json.Marshal(Message{Sender: scenario.Sender, Body: scenario.Body, OccurredAt: occurredAt})
		if err != nil {
			results <- ReplayResult{Scenario: scenario.Name, Error: err}
			continue
		}

		start := time.Now()
		resp, err := client.Post(url, "application/json", bytes.NewReader(payload))
		result := ReplayResult{Scenario: scenario.Name, ResponseTime: time.Since(start)}

		if err != nil {
			result.Error = err
			results <- result
			continue
		}

		result.StatusCode = resp.StatusCode
		result.Success = resp.StatusCode >= 200 && resp.StatusCode < 300
		if !result.Success {
			result.Error = fmt.Errorf("HTTP status code %d", resp.StatusCode)
		} else if checkAcceptance {
			var parsed ParseResponse
			if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
				result.Success = false
				result.Error = fmt.Errorf("decode response: %w", err)
			} else {
				result.Accepted = parsed.Accepted
				result.Mismatch = parsed.Accepted != scenario.WantAccept
			}
		}
		resp.Body.Close()

		results <- result
	}
}

func percentile(sorted []time.Duration, p int) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	return sorted[len(sorted)*p/100]
}

func printResults(stats *ReplayStats, checkAcceptance bool) {
	sorted := make([]time.Duration, len(stats.ResponseTimes))
	copy(sorted, stats.ResponseTimes)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	fmt.Println("\n================= REPLAY RESULTS =================")
	fmt.Printf("Total Requests:      %d\n", stats.TotalRequests)
	fmt.Printf("Successful Requests: %d\n", stats.SuccessfulRequests)
	fmt.Printf("Failed Requests:     %d\n", stats.FailedRequests)
	fmt.Printf("Total Time:          %.2f seconds\n", stats.TotalTime.Seconds())
	fmt.Printf("Throughput:          %.2f req/s\n", float64(stats.SuccessfulRequests)/stats.TotalTime.Seconds())

	fmt.Println("\n----------------- RESPONSE TIMES -----------------")
	fmt.Printf("P50 Response:        %v\n", percentile(sorted, 50))
	fmt.Printf("P90 Response:        %v\n", percentile(sorted, 90))
	fmt.Printf("P99 Response:        %v\n", percentile(sorted, 99))

	fmt.Println("\n----------------- SCENARIOS -----------------")
	for _, s := range scenarios {
		count := stats.ScenarioStats[s.Name]
		if count == 0 {
			continue
		}
		if checkAcceptance {
			fmt.Printf("%-15s: %d sent, %d accepted (expected accept: %v)\n", s.Name, count, stats.AcceptedStats[s.Name], s.WantAccept)
		} else {
			fmt.Printf("%-15s: %d sent\n", s.Name, count)
		}
	}

	if stats.FailedRequests > 0 {
		fmt.Println("\n----------------- ERRORS -----------------")
		for errMsg, count := range stats.ErrorCounts {
			fmt.Printf("%-40s: %d\n", errMsg, count)
		}
	}

	if checkAcceptance {
		fmt.Println("\n================= CONCLUSION =================")
		if stats.Mismatches == 0 {
			fmt.Println("✅ Every scenario was classified as expected")
		} else {
			fmt.Printf("❌ %d messages were classified differently than expected\n", stats.Mismatches)
		}
	}
}
