package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeuristicRiskScore(t *testing.T) {
	t.Run("benign answers score zero", func(t *testing.T) {
		answers := []string{"feeling fine", "no issues", "all good lately", "sleeping well", "nothing to report"}
		assert.Equal(t, 0.0, HeuristicRiskScore(answers))
	})

	t.Run("deterministic for identical input", func(t *testing.T) {
		answers := []string{"I often have pain in my back", "stress at work", "feeling fine"}
		first := HeuristicRiskScore(answers)
		second := HeuristicRiskScore(answers)
		assert.Equal(t, first, second)
	})

	t.Run("severe chest pain crosses the single-keyword floor", func(t *testing.T) {
		// "severe" and "chest pain" both match, and "pain" matches as a
		// substring of "chest pain": (15+15+8) * (1 + 3*0.1) = 49.4
		score := HeuristicRiskScore([]string{"I have severe chest pain"})
		assert.InDelta(t, 49.4, score, 0.001)
		assert.GreaterOrEqual(t, score, 16.5)
	})

	t.Run("matching is case-insensitive", func(t *testing.T) {
		upper := HeuristicRiskScore([]string{"SEVERE Chest Pain"})
		lower := HeuristicRiskScore([]string{"severe chest pain"})
		assert.Equal(t, lower, upper)
	})

	t.Run("adding a risky answer never decreases the score", func(t *testing.T) {
		base := []string{"I often feel stress", "some pain when walking"}
		extended := append(append([]string{}, base...), "difficulty breathing during exercise")
		assert.GreaterOrEqual(t, HeuristicRiskScore(extended), HeuristicRiskScore(base))
	})

	t.Run("adding a benign answer never changes the score", func(t *testing.T) {
		base := []string{"constant anxiety", "frequent headaches"}
		extended := append(append([]string{}, base...), "my diet is balanced")
		assert.Equal(t, HeuristicRiskScore(base), HeuristicRiskScore(extended))
	})

	t.Run("score clamps at 100", func(t *testing.T) {
		answers := []string{
			"severe extreme constant unbearable chest pain difficulty breathing",
			"emergency critical heart unconscious",
			"always severe pain stress anxiety",
		}
		assert.Equal(t, 100.0, HeuristicRiskScore(answers))
	})

	t.Run("empty transcript scores zero", func(t *testing.T) {
		assert.Equal(t, 0.0, HeuristicRiskScore(nil))
	})
}
