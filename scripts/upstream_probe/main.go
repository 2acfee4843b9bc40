// Command upstream_probe checks the gateway's exam proxy against the
// upstream exam API. For each target course or exam it fetches both the
// gateway response and the upstream response and reports payload drift.
// The gateway envelope is unwrapped and its computed pass_rate backfill
// is ignored so only genuine proxy drift is flagged.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"reflect"
	"strings"
	"time"
)

type target struct {
	// Kind is "course" or "exam".
	Kind string `json:"kind"`
	// Value is a course code or an exam id.
	Value string `json:"value"`
}

type probe struct {
	Target          target
	GatewayStatus   int
	UpstreamStatus  int
	StatusMatch     bool
	BodyMatch       bool
	Error           error
	DurationGateway time.Duration
	DurationUpstrm  time.Duration
}

func main() {
	var (
		gatewayBase  string
		upstreamBase string
		apiPrefix    string
		courses      string
		exams        string
		timeout      time.Duration
	)

	flag.StringVar(&gatewayBase, "gateway", "http://localhost:8080", "gateway base URL")
	flag.StringVar(&upstreamBase, "upstream", "https://api.liutentor.se/api", "upstream exam API base URL")
	flag.StringVar(&apiPrefix, "prefix", "/api/v1", "gateway API prefix")
	flag.StringVar(&courses, "courses", "TDDD97,TATA24", "comma-separated course codes to probe")
	flag.StringVar(&exams, "exams", "", "comma-separated exam ids to probe")
	flag.DurationVar(&timeout, "timeout", 10*time.Second, "HTTP client timeout")
	flag.Parse()

	var targets []target
	for _, code := range splitList(courses) {
		targets = append(targets, target{Kind: "course", Value: strings.ToUpper(code)})
	}
	for _, id := range splitList(exams) {
		targets = append(targets, target{Kind: "exam", Value: id})
	}
	if len(targets) == 0 {
		log.Fatal("no targets: pass -courses and/or -exams")
	}

	client := &http.Client{Timeout: timeout}
	var drift int
	var probes []probe
	for _, t := range targets {
		p := probeTarget(client, gatewayBase+apiPrefix, upstreamBase, t)
		if p.Error != nil || !p.StatusMatch || !p.BodyMatch {
			drift++
		}
		probes = append(probes, p)
	}

	printReport(probes)
	fmt.Printf("Targets with drift: %d of %d\n", drift, len(targets))
	if drift > 0 {
		os.Exit(1)
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func pathFor(t target) string {
	if t.Kind == "exam" {
		return "/exams/" + t.Value
	}
	return "/courses/" + t.Value + "/exams"
}

func probeTarget(client *http.Client, gatewayBase, upstreamBase string, t target) probe {
	p := probe{Target: t}
	path := pathFor(t)

	gwBody, gwStatus, gwDur, err := fetch(client, gatewayBase+path)
	if err != nil {
		p.Error = fmt.Errorf("gateway request failed: %w", err)
		return p
	}
	upBody, upStatus, upDur, err := fetch(client, upstreamBase+path)
	if err != nil {
		p.Error = fmt.Errorf("upstream request failed: %w", err)
		return p
	}

	p.GatewayStatus = gwStatus
	p.UpstreamStatus = upStatus
	p.DurationGateway = gwDur
	p.DurationUpstrm = upDur
	p.StatusMatch = gwStatus == upStatus
	p.BodyMatch = payloadsEqual(gwBody, upBody)
	return p
}

func fetch(client *http.Client, url string) ([]byte, int, time.Duration, error) {
	start := time.Now()
	resp, err := client.Get(url)
	if err != nil {
		return nil, 0, 0, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, 0, err
	}
	return body, resp.StatusCode, time.Since(start), nil
}

// payloadsEqual unwraps the gateway envelope and compares the proxied
// payload against the raw upstream body.
func payloadsEqual(gateway, upstream []byte) bool {
	var envelope struct {
		Data interface{} `json:"data"`
	}
	if err := json.Unmarshal(gateway, &envelope); err != nil {
		return false
	}
	var up interface{}
	if err := json.Unmarshal(upstream, &up); err != nil {
		return false
	}
	normalize(&envelope.Data)
	normalize(&up)
	return reflect.DeepEqual(envelope.Data, up)
}

// normalize collapses integral floats and drops the gateway's pass_rate
// backfill, which the upstream legitimately omits.
func normalize(v *interface{}) {
	switch val := (*v).(type) {
	case map[string]interface{}:
		delete(val, "pass_rate")
		for k, v2 := range val {
			normalize(&v2)
			val[k] = v2
		}
	case []interface{}:
		for i, v2 := range val {
			normalize(&v2)
			val[i] = v2
		}
	case float64:
		if val == float64(int64(val)) {
			*v = int64(val)
		}
	}
}

func printReport(results []probe) {
	fmt.Println("Upstream Probe Report")
	fmt.Println("=====================")
	for _, res := range results {
		status := "OK"
		if res.Error != nil {
			status = "ERROR"
		} else if !res.StatusMatch || !res.BodyMatch {
			status = "DRIFT"
		}
		fmt.Printf("[%s] %s %s\n", status, res.Target.Kind, res.Target.Value)
		if res.Error != nil {
			fmt.Printf("  Error: %v\n", res.Error)
			continue
		}
		fmt.Printf("  Gateway: %d (%s) | Upstream: %d (%s)\n",
			res.GatewayStatus, res.DurationGateway, res.UpstreamStatus, res.DurationUpstrm)
		fmt.Printf("  Status match: %t | Body match: %t\n", res.StatusMatch, res.BodyMatch)
	}
}
