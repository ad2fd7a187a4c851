//go:build headless

package main

func init() {
	compiledFeatures = append(compiledFeatures, "audio:clocked")
}

// OtoPlayer keeps tones running on the sample clock in headless builds so
// channels still complete.
type OtoPlayer struct {
	*ClockedPlayer
}

func NewOtoPlayer(sampleRate int) (*OtoPlayer, error) {
	return &OtoPlayer{ClockedPlayer: NewClockedPlayer(sampleRate, nil)}, nil
}
