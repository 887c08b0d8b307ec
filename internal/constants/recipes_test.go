package constants

import "testing"

func TestIsTransientCategory(t *testing.T) {
	tests := []struct {
		category ErrorCategory
		want     bool
	}{
		{ErrorCategoryRateLimit, true},
		{ErrorCategoryProviderError, true},
		{ErrorCategoryTimeout, true},
		{ErrorCategoryInvalidResponse, true},
		{ErrorCategoryNotRunning, false},
		{ErrorCategoryConfig, false},
		{ErrorCategoryInvalidKey, false},
		{ErrorCategoryTransport, false},
		{ErrorCategoryBadRequest, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			got := IsTransientCategory(tt.category)
			if got != tt.want {
				t.Errorf("IsTransientCategory(%q) = %v, want %v", tt.category, got, tt.want)
			}
		})
	}
}

func TestConstantValues(t *testing.T) {
	if MaxStepLength <= 0 {
		t.Errorf("MaxStepLength should be positive, got %d", MaxStepLength)
	}
	if MaxSectionHeaderLength >= MaxStepLength {
		t.Errorf("MaxSectionHeaderLength (%d) should be shorter than MaxStepLength (%d)", MaxSectionHeaderLength, MaxStepLength)
	}
	if PatchSampling.Temperature >= ReviewSampling.Temperature {
		t.Errorf("PatchSampling.Temperature (%v) should be lower than ReviewSampling.Temperature (%v)",
			PatchSampling.Temperature, ReviewSampling.Temperature)
	}
	if PatchSampling.MaxTokens <= ReviewSampling.MaxTokens {
		t.Errorf("PatchSampling.MaxTokens (%d) should exceed ReviewSampling.MaxTokens (%d)",
			PatchSampling.MaxTokens, ReviewSampling.MaxTokens)
	}
	if DefaultLLMTimeout <= DefaultFetchTimeout {
		t.Errorf("DefaultLLMTimeout (%v) should exceed DefaultFetchTimeout (%v)", DefaultLLMTimeout, DefaultFetchTimeout)
	}
}
