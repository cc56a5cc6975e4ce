package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"testing"
)

func TestJSONLogOutput(t *testing.T) {
	var buf bytes.Buffer

	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))

	slog.Info("asset uploaded", slog.String("key", "Wolf-of-Wilderness"), slog.Int64("product_id", 42))

	var logEntry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("Failed to parse log output as JSON: %v\nOutput: %s", err, buf.String())
	}

	if logEntry["msg"] != "asset uploaded" {
		t.Errorf("Expected msg to be 'asset uploaded', got '%v'", logEntry["msg"])
	}
	if logEntry["key"] != "Wolf-of-Wilderness" {
		t.Errorf("Expected key to be 'Wolf-of-Wilderness', got '%v'", logEntry["key"])
	}
	if logEntry["product_id"] != float64(42) {
		t.Errorf("Expected product_id to be 42, got '%v'", logEntry["product_id"])
	}
	if logEntry["level"] != "INFO" {
		t.Errorf("Expected level to be 'INFO', got '%v'", logEntry["level"])
	}
	if _, ok := logEntry["time"]; !ok {
		t.Error("Expected 'time' field in JSON log output")
	}
}

func TestInitJSONLogger_OutputFormat(t *testing.T) {
	oldStdout := os.Stdout

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create pipe: %v", err)
	}
	os.Stdout = w

	InitJSONLogger()
	slog.Info("catalog service starting", slog.String("port", "8080"))

	w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		t.Fatalf("Failed to read from pipe: %v", err)
	}

	var logEntry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("Failed to parse log output as JSON: %v\nOutput: %s", err, buf.String())
	}

	if logEntry["msg"] != "catalog service starting" {
		t.Errorf("Expected msg to be 'catalog service starting', got '%v'", logEntry["msg"])
	}
	if logEntry["port"] != "8080" {
		t.Errorf("Expected port to be '8080', got '%v'", logEntry["port"])
	}
}
