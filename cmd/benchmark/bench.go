package main

import (
	"flag"
	"fmt"
	"net/http"
	"time"

	vegeta "github.com/tsenart/vegeta/v12/lib"
)

// Load harness for a running relay. Point it at a redirect route; proxy
// routes work too but measure the upstream as much as the relay.
func main() {
	target := flag.String("url", "http://localhost:8080/flux?tags=benchmark", "route URL to attack")
	rate := flag.Int("rate", 50, "requests per second")
	duration := flag.Duration("duration", 10*time.Second, "duration of the test")
	flag.Parse()

	fmt.Printf("Running benchmark against %s: %s duration, %d req/s\n", *target, *duration, *rate)

	targeter := func(t *vegeta.Target) error {
		t.Method = http.MethodGet
		t.URL = *target
		t.Header = http.Header{
			"X-Benchmark": []string{"1"},
		}
		return nil
	}

	// redirects are the measured response, not something to follow
	attacker := vegeta.NewAttacker(vegeta.KeepAlive(true), vegeta.Redirects(vegeta.NoFollow))
	var metrics vegeta.Metrics

	for res := range attacker.Attack(targeter, vegeta.Rate{Freq: *rate, Per: time.Second}, *duration, "relay") {
		metrics.Add(res)
	}
	metrics.Close()

	fmt.Println("--------------------------------------------------")
	fmt.Println("99th percentile: ", metrics.Latencies.P99)
	fmt.Println("Mean:            ", metrics.Latencies.Mean)
	fmt.Println("Max:             ", metrics.Latencies.Max)
	fmt.Printf("Success:         %.2f%%\n", metrics.Success*100)
	fmt.Printf("Throughput:      %.2f req/s\n", metrics.Throughput)
	fmt.Println("--------------------------------------------------")

	if len(metrics.Errors) > 0 {
		fmt.Println("Errors (first 5 unique):")

		uniqueErrors := make(map[string]bool)
		count := 0
		for _, msg := range metrics.Errors {
			if !uniqueErrors[msg] && count < 5 {
				fmt.Println(msg)

				uniqueErrors[msg] = true
				count++
			}
		}
	}
}
