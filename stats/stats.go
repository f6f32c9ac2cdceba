package stats

import (
	"sort"
	"sync"
)

// GroupSize is the number of records folded into one when the history is
// compressed.
const GroupSize = 100

// GameRecord holds the result of one game, or of a group of games once
// compressed.
type GameRecord struct {
	Score            int     `json:"score"`            // Single games only
	Ticks            int     `json:"ticks"`            // Single games only
	Cause            string  `json:"cause,omitempty"`  // Single games only
	CompressionIndex int     `json:"compressionIndex"` // 0 for single games, >0 for groups
	GamesCount       int     `json:"gamesCount"`
	AverageScore     float64 `json:"averageScore"`
	MedianScore      float64 `json:"medianScore"`
	MaxScore         int     `json:"maxScore"`
	MinScore         int     `json:"minScore"`
	AverageTicks     float64 `json:"averageTicks"`
	MaxTicks         int     `json:"maxTicks"`
	MinTicks         int     `json:"minTicks"`
}

// NewRecord builds the record of a single finished game.
func NewRecord(score, ticks int, cause string) GameRecord {
	return GameRecord{
		Score:        score,
		Ticks:        ticks,
		Cause:        cause,
		GamesCount:   1,
		AverageScore: float64(score),
		MedianScore:  float64(score),
		MaxScore:     score,
		MinScore:     score,
		AverageTicks: float64(ticks),
		MaxTicks:     ticks,
		MinTicks:     ticks,
	}
}

// GameStats accumulates game records. It is safe for concurrent use.
type GameStats struct {
	games     []GameRecord
	groupSize int
	mutex     sync.RWMutex
}

// Summary is a point-in-time digest of a GameStats.
type Summary struct {
	GamesPlayed  int     `json:"gamesPlayed"`
	AverageScore float64 `json:"averageScore"`
	MedianScore  float64 `json:"medianScore"`
	MaxScore     int     `json:"maxScore"`
	AverageTicks float64 `json:"averageTicks"`
	MaxTicks     int     `json:"maxTicks"`
}

// NewGameStats creates an empty GameStats that compresses every GroupSize
// records.
func NewGameStats() *GameStats {
	return NewGameStatsWithGroup(GroupSize)
}

// NewGameStatsWithGroup is NewGameStats with a custom group size. Sizes
// below 2 disable compression.
func NewGameStatsWithGroup(groupSize int) *GameStats {
	return &GameStats{
		games:     make([]GameRecord, 0),
		groupSize: groupSize,
	}
}

// AddGame records a finished game.
func (s *GameStats) AddGame(record GameRecord) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.games = append(s.games, record)
	s.groupGames()
}

// Merge appends every record of other.
func (s *GameStats) Merge(other *GameStats) {
	records := other.Records()

	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.games = append(s.games, records...)
	s.groupGames()
}

// groupGames folds runs of groupSize records sharing a compression index
// into a single record of the next index.
func (s *GameStats) groupGames() {
	if s.groupSize < 2 {
		return
	}

	sort.SliceStable(s.games, func(i, j int) bool {
		return s.games[i].CompressionIndex < s.games[j].CompressionIndex
	})

	for level := 0; ; level++ {
		records := make([]GameRecord, 0)
		for _, g := range s.games {
			if g.CompressionIndex == level {
				records = append(records, g)
			}
		}
		if len(records) < s.groupSize {
			break
		}

		var newRecords []GameRecord
		for i := 0; i < len(records); i += s.groupSize {
			end := i + s.groupSize
			if end > len(records) {
				newRecords = append(newRecords, records[i:]...)
				break
			}
			group := combine(records[i:end])
			group.CompressionIndex = level + 1
			newRecords = append(newRecords, group)
		}

		remaining := make([]GameRecord, 0, len(s.games))
		for _, g := range s.games {
			if g.CompressionIndex != level {
				remaining = append(remaining, g)
			}
		}
		s.games = append(remaining, newRecords...)
		sort.SliceStable(s.games, func(i, j int) bool {
			return s.games[i].CompressionIndex < s.games[j].CompressionIndex
		})
	}
}

// combine merges records into one weighted by their game counts.
func combine(group []GameRecord) GameRecord {
	out := GameRecord{
		MaxScore: group[0].MaxScore,
		MinScore: group[0].MinScore,
		MaxTicks: group[0].MaxTicks,
		MinTicks: group[0].MinTicks,
	}
	var totalScore, totalTicks float64
	medians := make([]float64, 0, len(group))

	for _, g := range group {
		out.MaxScore = max(out.MaxScore, g.MaxScore)
		out.MinScore = min(out.MinScore, g.MinScore)
		out.MaxTicks = max(out.MaxTicks, g.MaxTicks)
		out.MinTicks = min(out.MinTicks, g.MinTicks)
		totalScore += g.AverageScore * float64(g.GamesCount)
		totalTicks += g.AverageTicks * float64(g.GamesCount)
		out.GamesCount += g.GamesCount
		for range g.GamesCount {
			medians = append(medians, g.MedianScore)
		}
	}

	out.AverageScore = totalScore / float64(out.GamesCount)
	out.AverageTicks = totalTicks / float64(out.GamesCount)
	out.MedianScore = median(medians)
	return out
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sort.Float64s(values)
	mid := len(values) / 2
	if len(values)%2 == 0 {
		return (values[mid-1] + values[mid]) / 2
	}
	return values[mid]
}

// Records returns a copy of the stored records.
func (s *GameStats) Records() []GameRecord {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	out := make([]GameRecord, len(s.games))
	copy(out, s.games)
	return out
}

// GamesPlayed returns the total number of games recorded.
func (s *GameStats) GamesPlayed() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	total := 0
	for _, g := range s.games {
		total += g.GamesCount
	}
	return total
}

// MaxScore returns the best score recorded, or 0.
func (s *GameStats) MaxScore() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	best := 0
	for _, g := range s.games {
		best = max(best, g.MaxScore)
	}
	return best
}

// Summary computes the aggregate figures over every record.
func (s *GameStats) Summary() Summary {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if len(s.games) == 0 {
		return Summary{}
	}

	sum := Summary{}
	var totalScore, totalTicks float64
	medians := make([]float64, 0)
	for _, g := range s.games {
		sum.GamesPlayed += g.GamesCount
		sum.MaxScore = max(sum.MaxScore, g.MaxScore)
		sum.MaxTicks = max(sum.MaxTicks, g.MaxTicks)
		totalScore += g.AverageScore * float64(g.GamesCount)
		totalTicks += g.AverageTicks * float64(g.GamesCount)
		for range g.GamesCount {
			medians = append(medians, g.MedianScore)
		}
	}
	sum.AverageScore = totalScore / float64(sum.GamesPlayed)
	sum.AverageTicks = totalTicks / float64(sum.GamesPlayed)
	sum.MedianScore = median(medians)
	return sum
}
