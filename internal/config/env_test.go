package config

import "testing"

func TestLoadConfig(t *testing.T) {
	t.Setenv("MAX_TOKENS", "1024")
	t.Setenv("OVERLAP_TOKENS", "not-a-number")
	t.Setenv("ANALYZE_CONTENT", "false")
	t.Setenv("CHUNK_MODEL", "gpt-4")

	cfg := LoadConfig()

	if cfg.MaxTokens != 1024 {
		t.Errorf("MaxTokens = %d, want 1024", cfg.MaxTokens)
	}
	if cfg.OverlapTokens != 100 {
		t.Errorf("OverlapTokens = %d, want default 100 on parse failure", cfg.OverlapTokens)
	}
	if cfg.AnalyzeContent {
		t.Error("AnalyzeContent = true, want false")
	}
	if cfg.ChunkModel != "gpt-4" {
		t.Errorf("ChunkModel = %q, want gpt-4", cfg.ChunkModel)
	}
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("PAPERVEC_TEST_INT", "17")
	if got := getEnvInt("PAPERVEC_TEST_INT", 5); got != 17 {
		t.Errorf("getEnvInt = %d, want 17", got)
	}
	if got := getEnvInt("PAPERVEC_TEST_MISSING", 5); got != 5 {
		t.Errorf("getEnvInt missing = %d, want default 5", got)
	}

	t.Setenv("PAPERVEC_TEST_BOOL", "true")
	if !getEnvBool("PAPERVEC_TEST_BOOL", false) {
		t.Error("getEnvBool = false, want true")
	}
	if getEnvBool("PAPERVEC_TEST_MISSING", false) {
		t.Error("getEnvBool missing = true, want default false")
	}
}
