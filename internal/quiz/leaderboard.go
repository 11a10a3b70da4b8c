package quiz

import (
	"sort"

	"livequiz-backend/api"
)

// buildLeaderboard projects participants into a ranked leaderboard.
//
// Ordering: score descending, then correct answers descending, then
// total response time ascending (faster wins), then display name as a
// final determinism key. Ranks are 1-based and always distinct, even
// on full ties.
func buildLeaderboard(participants map[string]*Participant, totalQuestions int) []api.LeaderboardEntry {
	entries := make([]api.LeaderboardEntry, 0, len(participants))
	times := make(map[string]int64, len(participants))

	for _, p := range participants {
		entries = append(entries, api.LeaderboardEntry{
			DisplayName:    p.displayName,
			Score:          p.score,
			CorrectCount:   p.correctCount,
			TotalQuestions: totalQuestions,
		})
		times[p.displayName] = int64(p.totalResponseTime)
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.CorrectCount != b.CorrectCount {
			return a.CorrectCount > b.CorrectCount
		}
		if times[a.DisplayName] != times[b.DisplayName] {
			return times[a.DisplayName] < times[b.DisplayName]
		}
		return a.DisplayName < b.DisplayName
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}

	return entries
}
