package repository

import (
	"encoding/json"
	"fmt"

	"darts-tournament/internal/domain"
)

// Darts are stored as a JSON array in a TEXT column.
func encodeDarts(darts []domain.Dart) (string, error) {
	if darts == nil {
		darts = []domain.Dart{}
	}
	b, err := json.Marshal(darts)
	if err != nil {
		return "", fmt.Errorf("failed to encode darts: %w", err)
	}
	return string(b), nil
}

func decodeDarts(s string) ([]domain.Dart, error) {
	var darts []domain.Dart
	if err := json.Unmarshal([]byte(s), &darts); err != nil {
		return nil, fmt.Errorf("failed to decode darts: %w", err)
	}
	return darts, nil
}
