package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"os"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// BrokerDiagnostic represents the diagnostic result for a single broker endpoint
type BrokerDiagnostic struct {
	Addr           string   `json:"addr"`
	Status         string   `json:"status"` // "OK", "DIAL_ERROR", "METADATA_ERROR", "TIMEOUT"
	TCPReachable   bool     `json:"tcp_reachable"`
	ClusterID      string   `json:"cluster_id,omitempty"`
	BrokerCount    int      `json:"broker_count"`
	ControllerHost string   `json:"controller_host,omitempty"`
	Topics         []string `json:"topics,omitempty"`
	ErrorMessage   string   `json:"error_message,omitempty"`
	ResponseTime   int64    `json:"response_time_ms"`
}

func main() {
	raw := os.Getenv("BROKER_ADDRS")
	if raw == "" {
		raw = "localhost:9092"
		log.Println("BROKER_ADDRS not set, using default localhost:9092")
	}

	addrs := splitAddrs(raw)
	log.Printf("Diagnosing %d broker endpoints...\n", len(addrs))

	diagnostics := make([]BrokerDiagnostic, 0, len(addrs))
	for i, addr := range addrs {
		log.Printf("[%d/%d] Diagnosing: %s", i+1, len(addrs), addr)
		diag := diagnoseBroker(addr, 10*time.Second)
		diagnostics = append(diagnostics, diag)
	}

	generateReport(diagnostics)
	generateJSONReport(diagnostics)
}

func splitAddrs(raw string) []string {
	var addrs []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			addrs = append(addrs, trimmed)
		}
	}
	return addrs
}

func diagnoseBroker(addr string, timeout time.Duration) BrokerDiagnostic {
	diag := BrokerDiagnostic{
		Addr: addr,
	}

	startTime := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stage 1: raw TCP dial to separate network problems from Kafka problems
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		diag.ResponseTime = time.Since(startTime).Milliseconds()
		if ctx.Err() == context.DeadlineExceeded {
			diag.Status = "TIMEOUT"
			diag.ErrorMessage = fmt.Sprintf("TCP dial timeout after %v", timeout)
		} else {
			diag.Status = "DIAL_ERROR"
			diag.ErrorMessage = err.Error()
		}
		return diag
	}
	diag.TCPReachable = true
	if err := conn.Close(); err != nil {
		log.Printf("Failed to close TCP probe connection: %v", err)
	}

	// Stage 2: Kafka metadata request against the same endpoint
	client := &kafka.Client{
		Addr:    kafka.TCP(addr),
		Timeout: timeout,
		Transport: &kafka.Transport{
			ClientID:    "bookshelf-diagnose",
			DialTimeout: timeout,
		},
	}

	resp, err := client.Metadata(ctx, &kafka.MetadataRequest{})
	diag.ResponseTime = time.Since(startTime).Milliseconds()

	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			diag.Status = "TIMEOUT"
			diag.ErrorMessage = fmt.Sprintf("Metadata request timeout after %v", timeout)
		} else {
			diag.Status = "METADATA_ERROR"
			diag.ErrorMessage = err.Error()
		}
		return diag
	}

	diag.Status = "OK"
	diag.ClusterID = resp.ClusterID
	diag.BrokerCount = len(resp.Brokers)
	if resp.Controller.Host != "" {
		diag.ControllerHost = fmt.Sprintf("%s:%d", resp.Controller.Host, resp.Controller.Port)
	}
	for _, t := range resp.Topics {
		if t.Internal {
			continue
		}
		diag.Topics = append(diag.Topics, t.Name)
	}

	return diag
}

func writef(f *os.File, format string, args ...interface{}) error {
	_, err := fmt.Fprintf(f, format, args...)
	return err
}

func generateReport(diagnostics []BrokerDiagnostic) {
	f, err := os.Create("broker_diagnostic_report.txt")
	if err != nil {
		log.Printf("Failed to create report file: %v", err)
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("Failed to close report file: %v", err)
		}
	}()

	writeErr := func(err error) bool {
		if err != nil {
			log.Printf("Failed to write to report: %v", err)
			return true
		}
		return false
	}

	if writeErr(writef(f, "===============================================\n")) {
		return
	}
	if writeErr(writef(f, "Kafka Broker Diagnostic Report\n")) {
		return
	}
	if writeErr(writef(f, "Generated: %s\n", time.Now().Format(time.RFC3339))) {
		return
	}
	if writeErr(writef(f, "Total Endpoints: %d\n", len(diagnostics))) {
		return
	}
	if writeErr(writef(f, "===============================================\n\n")) {
		return
	}

	statusCount := make(map[string]int)
	var okCount, errorCount int
	for _, d := range diagnostics {
		statusCount[d.Status]++
		if d.Status == "OK" {
			okCount++
		} else {
			errorCount++
		}
	}

	_ = writef(f, "SUMMARY:\n")
	_ = writef(f, "  Reachable: %d\n", okCount)
	_ = writef(f, "  Failing:   %d\n\n", errorCount)
	for status, count := range statusCount {
		_ = writef(f, "  %-15s %d\n", status+":", count)
	}
	_ = writef(f, "\nDETAILS:\n")

	for _, d := range diagnostics {
		_ = writef(f, "\n[%s] %s (%dms)\n", d.Status, d.Addr, d.ResponseTime)
		_ = writef(f, "  TCP reachable: %v\n", d.TCPReachable)
		if d.ClusterID != "" {
			_ = writef(f, "  Cluster ID:    %s\n", d.ClusterID)
		}
		if d.BrokerCount > 0 {
			_ = writef(f, "  Brokers:       %d\n", d.BrokerCount)
		}
		if d.ControllerHost != "" {
			_ = writef(f, "  Controller:    %s\n", d.ControllerHost)
		}
		if len(d.Topics) > 0 {
			_ = writef(f, "  Topics:        %s\n", strings.Join(d.Topics, ", "))
		}
		if d.ErrorMessage != "" {
			_ = writef(f, "  Error:         %s\n", d.ErrorMessage)
		}
	}

	log.Println("✅ Report generated: broker_diagnostic_report.txt")
}

func generateJSONReport(diagnostics []BrokerDiagnostic) {
	f, err := os.Create("broker_diagnostic_report.json")
	if err != nil {
		log.Printf("Failed to create JSON report: %v", err)
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("Failed to close JSON report file: %v", err)
		}
	}()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(diagnostics); err != nil {
		log.Printf("Failed to write JSON report: %v", err)
		return
	}

	log.Println("✅ JSON report generated: broker_diagnostic_report.json")
}
