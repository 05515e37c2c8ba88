package testutil

import "testing"

func TestPeakBin(t *testing.T) {
	// 8 cycles in 1024 samples.
	x := DeterministicSine(8*48000.0/1024, 48000, 1, 1024)

	bin, err := PeakBin(x)
	if err != nil {
		t.Fatalf("PeakBin error: %v", err)
	}
	if bin != 8 {
		t.Fatalf("PeakBin = %d, want 8", bin)
	}
}

func TestPeakBinDC(t *testing.T) {
	bin, err := PeakBin(DC(0.25, 64))
	if err != nil {
		t.Fatalf("PeakBin error: %v", err)
	}
	if bin != 0 {
		t.Fatalf("PeakBin = %d, want 0", bin)
	}
}

func TestPeakBinTooShort(t *testing.T) {
	if _, err := PeakBin([]float64{1}); err == nil {
		t.Fatal("expected error for single sample")
	}
}
