package training

import "fmt"

const (
	DefaultMinSimilarityThreshold = 60
	DefaultAutoMatchThreshold     = 90
)

type Settings struct {
	MinSimilarityThreshold int `json:"min_similarity_threshold"`
	AutoMatchThreshold     int `json:"auto_match_threshold"`
}

func DefaultSettings() Settings {
	return Settings{
		MinSimilarityThreshold: DefaultMinSimilarityThreshold,
		AutoMatchThreshold:     DefaultAutoMatchThreshold,
	}
}

func NewSettings(minSimilarity, autoMatch int) (Settings, error) {
	s := Settings{MinSimilarityThreshold: minSimilarity, AutoMatchThreshold: autoMatch}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate enforces 0 <= min <= auto <= 100.
func (s Settings) Validate() error {
	if s.MinSimilarityThreshold < 0 || s.AutoMatchThreshold > 100 || s.MinSimilarityThreshold > s.AutoMatchThreshold {
		return fmt.Errorf("%w: min=%d auto=%d", ErrInvalidSettings, s.MinSimilarityThreshold, s.AutoMatchThreshold)
	}
	return nil
}
