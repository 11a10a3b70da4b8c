package quiz

import (
	"testing"
	"time"

	"livequiz-backend/api"

	"github.com/google/go-cmp/cmp"
)

func testParticipant(name string, score, correctCount int, totalResponseTime time.Duration) *Participant {
	return &Participant{
		connID:            name,
		displayName:       name,
		score:             score,
		correctCount:      correctCount,
		totalResponseTime: totalResponseTime,
	}
}

func TestBuildLeaderboardOrdering(t *testing.T) {
	participants := map[string]*Participant{
		"a": testParticipant("slow", 30, 2, time.Second),
		"b": testParticipant("sharp", 30, 3, time.Second),
		"c": testParticipant("leader", 50, 1, time.Second),
	}

	got := buildLeaderboard(participants, 5)

	want := []api.LeaderboardEntry{
		{Rank: 1, DisplayName: "leader", Score: 50, CorrectCount: 1, TotalQuestions: 5},
		{Rank: 2, DisplayName: "sharp", Score: 30, CorrectCount: 3, TotalQuestions: 5},
		{Rank: 3, DisplayName: "slow", Score: 30, CorrectCount: 2, TotalQuestions: 5},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("leaderboard mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildLeaderboardResponseTimeTieBreak(t *testing.T) {
	participants := map[string]*Participant{
		"a": testParticipant("tortoise", 80, 2, 3*time.Second),
		"b": testParticipant("hare", 80, 2, time.Second),
	}

	got := buildLeaderboard(participants, 3)

	if got[0].DisplayName != "hare" || got[1].DisplayName != "tortoise" {
		t.Errorf("faster participant should rank first, got %v", got)
	}
}

func TestBuildLeaderboardDistinctRanksOnFullTie(t *testing.T) {
	participants := map[string]*Participant{
		"a": testParticipant("bob", 50, 1, time.Second),
		"b": testParticipant("alice", 50, 1, time.Second),
	}

	got := buildLeaderboard(participants, 3)

	if got[0].Rank != 1 || got[1].Rank != 2 {
		t.Errorf("full ties must still get consecutive distinct ranks, got %v", got)
	}
	// Deterministic order on full ties.
	if got[0].DisplayName != "alice" {
		t.Errorf("expected name order on full tie, got %v", got)
	}
}

func TestBuildLeaderboardEmpty(t *testing.T) {
	got := buildLeaderboard(map[string]*Participant{}, 3)
	if len(got) != 0 {
		t.Errorf("expected empty leaderboard, got %v", got)
	}
}
