package main

import (
	"bytes"
	"flag"
	"os"
	"testing"
)

// resetFlags resets the global flag.CommandLine to avoid "flag redefined" panic
func resetFlags() {
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)
}

// resetEnv clears env vars used by parseConfig
func resetEnv() {
	os.Clearenv()
}

func TestParseFlags_Default(t *testing.T) {
	resetFlags()
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"cmd"}
	configPath := parseFlags()
	expected := "config.env"

	if configPath != expected {
		t.Errorf("expected %s, got %s", expected, configPath)
	}
}

func TestParseFlags_Custom(t *testing.T) {
	resetFlags()
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"cmd", "-c", "myconfig.env"}
	configPath := parseFlags()
	expected := "myconfig.env"

	if configPath != expected {
		t.Errorf("expected %s, got %s", expected, configPath)
	}
}

func TestPrintBuildInfo_Output(t *testing.T) {
	// Capture stdout
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	buildVersion = "v1.0.0"
	buildCommit = "abcd1234"
	buildDate = "2026-08-31"

	printBuildInfo()

	w.Close()
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	output := buf.String()
	os.Stdout = oldStdout

	if !contains(output, "v1.0.0") ||
		!contains(output, "abcd1234") ||
		!contains(output, "2026-08-31") {
		t.Errorf("printBuildInfo output unexpected:\n%s", output)
	}
}

// Helper function to check substring
func contains(s, substr string) bool {
	return bytes.Contains([]byte(s), []byte(substr))
}

func TestParseConfig_Defaults(t *testing.T) {
	resetEnv()

	appHost, appPort, logLevel,
		pgHost, pgPort, pgUser, pgPassword, pgDB,
		pgMaxOpenConns, pgMaxIdleConns,
		redisHost, redisPort, redisDB, redisPassword,
		redisPoolSize, redisMinIdleConns,
		kafkaAddr, kafkaTopic,
		predictorAddress, predictorTimeoutSecond, predictionMultiplier,
		jwtSecretKey, jwtExpSecond,
		err := parseConfig("nonexistent.env")

	if err != nil {
		t.Fatalf("parseConfig returned error: %v", err)
	}

	// Application
	if appHost != "localhost" || appPort != "8080" || logLevel != "info" {
		t.Errorf("unexpected app config: %v/%v/%v", appHost, appPort, logLevel)
	}

	// PostgreSQL
	if pgHost != "localhost" || pgPort != 5432 || pgUser != "user" || pgPassword != "password" || pgDB != "database" ||
		pgMaxOpenConns != 16 || pgMaxIdleConns != 8 {
		t.Errorf("unexpected postgres config")
	}

	// Redis
	if redisHost != "localhost" || redisPort != 6379 || redisDB != 0 || redisPassword != "" ||
		redisPoolSize != 10 || redisMinIdleConns != 2 {
		t.Errorf("unexpected redis config")
	}

	// Kafka
	if kafkaAddr != "localhost:9092" || kafkaTopic != "prediction-events" {
		t.Errorf("unexpected kafka config: %v/%v", kafkaAddr, kafkaTopic)
	}

	// Predictor
	if predictorAddress != "http://localhost:8000" || predictorTimeoutSecond != 10 || predictionMultiplier != 10 {
		t.Errorf("unexpected predictor config: %v/%v/%v", predictorAddress, predictorTimeoutSecond, predictionMultiplier)
	}

	// JWT
	if jwtSecretKey != "my_super_secret_key" || jwtExpSecond != 3600 {
		t.Errorf("unexpected jwt config")
	}
}

func TestParseConfig_Overrides(t *testing.T) {
	resetEnv()

	os.Setenv("APP_HOST", "0.0.0.0")
	os.Setenv("APP_PORT", "9090")
	os.Setenv("APP_LOG_LEVEL", "debug")
	os.Setenv("POSTGRES_HOST", "db.internal")
	os.Setenv("POSTGRES_PORT", "5433")
	os.Setenv("KAFKA_ADDR", "kafka.internal:9092")
	os.Setenv("KAFKA_TOPIC", "saved-predictions")
	os.Setenv("PREDICTOR_ADDRESS", "http://model.internal:8000")
	os.Setenv("PREDICTOR_TIMEOUT_SECOND", "5")
	os.Setenv("PREDICTION_MULTIPLIER", "2.5")
	os.Setenv("JWT_EXP_SECOND", "120")
	defer resetEnv()

	appHost, appPort, logLevel,
		pgHost, pgPort, _, _, _,
		_, _,
		_, _, _, _,
		_, _,
		kafkaAddr, kafkaTopic,
		predictorAddress, predictorTimeoutSecond, predictionMultiplier,
		_, jwtExpSecond,
		err := parseConfig("nonexistent.env")

	if err != nil {
		t.Fatalf("parseConfig returned error: %v", err)
	}

	if appHost != "0.0.0.0" || appPort != "9090" || logLevel != "debug" {
		t.Errorf("unexpected app config: %v/%v/%v", appHost, appPort, logLevel)
	}
	if pgHost != "db.internal" || pgPort != 5433 {
		t.Errorf("unexpected postgres config: %v/%v", pgHost, pgPort)
	}
	if kafkaAddr != "kafka.internal:9092" || kafkaTopic != "saved-predictions" {
		t.Errorf("unexpected kafka config: %v/%v", kafkaAddr, kafkaTopic)
	}
	if predictorAddress != "http://model.internal:8000" || predictorTimeoutSecond != 5 || predictionMultiplier != 2.5 {
		t.Errorf("unexpected predictor config: %v/%v/%v", predictorAddress, predictorTimeoutSecond, predictionMultiplier)
	}
	if jwtExpSecond != 120 {
		t.Errorf("unexpected jwt expiry: %v", jwtExpSecond)
	}
}

func TestParseConfig_BadNumeric(t *testing.T) {
	resetEnv()
	os.Setenv("POSTGRES_PORT", "not-a-number")
	defer resetEnv()

	_, _, _,
		_, _, _, _, _,
		_, _,
		_, _, _, _,
		_, _,
		_, _,
		_, _, _,
		_, _,
		err := parseConfig("nonexistent.env")

	if err == nil {
		t.Fatal("expected error for non-numeric POSTGRES_PORT")
	}
}
