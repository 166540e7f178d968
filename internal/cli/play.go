package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ppiankov/chronomap/internal/game"
	"github.com/ppiankov/chronomap/internal/model"
	"github.com/ppiankov/chronomap/internal/pipeline"
	"github.com/ppiankov/chronomap/internal/source"
)

var (
	playerID  string
	startTier string
	maxRounds int
	fixedTier bool
	hintCount int
	roundSeed int64
)

// playCmd represents the play command
var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the map dating game",
	Long: `Play picks maps from the local catalog and challenges you to date
them. Guess a single year ("1957") or a range ("1950-1970"). Your guess
is graded against the engine's estimate with a transparent score
breakdown, and the difficulty rises as your stats improve.

Example:
  chronomap play
  chronomap play --player ada --rounds 5
  chronomap play --difficulty expert --fixed-difficulty`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().StringVar(&playerID, "player", "player", "player name for stats tracking")
	playCmd.Flags().StringVar(&startTier, "difficulty", string(model.DifficultyBeginner), "starting difficulty (beginner, intermediate, expert)")
	playCmd.Flags().IntVar(&maxRounds, "rounds", 0, "stop after this many rounds (0 = play until quit)")
	playCmd.Flags().BoolVar(&fixedTier, "fixed-difficulty", false, "disable automatic difficulty progression")
	playCmd.Flags().IntVar(&hintCount, "hints", 1, "number of hints revealed before each guess")
	playCmd.Flags().Int64Var(&roundSeed, "seed", 0, "map selection seed (0 = random)")
}

func runPlay(cmd *cobra.Command, args []string) error {
	difficulty, err := model.ParseDifficulty(startTier)
	if err != nil {
		return err
	}

	cfg := loadConfig()

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return fmt.Errorf("initialize pipeline: %w", err)
	}
	catalog, err := source.LoadCatalog(cfg.Game.MapsDir)
	if err != nil {
		return fmt.Errorf("load map catalog: %w", err)
	}

	engine := game.NewEngine(cfg, game.NewStatsStore(cfg.Game.StatsDir))
	rounds := game.NewRoundGenerator(catalog, p, roundSeed)

	stats, err := game.NewStatsStore(cfg.Game.StatsDir).Load(playerID)
	if err != nil {
		return fmt.Errorf("load player stats: %w", err)
	}

	fmt.Printf("Welcome, %s. Horizon: %s. Difficulty: %s.\n", playerID, engine.Horizon(), difficulty)
	if stats.RoundsPlayed > 0 {
		fmt.Printf("Your record: %d rounds, average score %.1f, accuracy %.0f%%.\n",
			stats.RoundsPlayed, stats.AverageScore(), stats.AccuracyRate())
	}
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)
	ctx := context.Background()

	for played := 0; maxRounds == 0 || played < maxRounds; played++ {
		round, err := rounds.NextRound(ctx, difficulty)
		if err != nil {
			return fmt.Errorf("generate round: %w", err)
		}

		fmt.Printf("ROUND %d [%s]\n", played+1, round.Difficulty)
		fmt.Printf("Map: %s (%s)\n", round.Map.Description, round.Map.Region)
		for _, hint := range engine.Hints(round, hintCount) {
			fmt.Printf("Hint: %s\n", hint)
		}

		guess, quit, err := promptGuess(reader, engine.Horizon())
		if err != nil {
			return err
		}
		if quit {
			break
		}

		result := engine.SubmitGuess(round, guess)
		fmt.Println()
		fmt.Println(result.Feedback)

		for _, point := range engine.LearningPoints(round, result) {
			fmt.Printf("NOTE: %s\n", point)
		}

		stats, err = engine.RecordResult(playerID, result)
		if err != nil {
			return fmt.Errorf("record result: %w", err)
		}

		if !fixedTier {
			next := game.NextDifficulty(difficulty, stats)
			if next != difficulty {
				fmt.Printf("\nPromoted to %s difficulty!\n", next)
				difficulty = next
			}
		}
		fmt.Println()
	}

	fmt.Printf("Thanks for playing, %s. %d rounds, average score %.1f, accuracy %.0f%%.\n",
		playerID, stats.RoundsPlayed, stats.AverageScore(), stats.AccuracyRate())
	return nil
}

// promptGuess reads a year or range guess from the terminal, re-asking
// on malformed input. "q" quits.
func promptGuess(reader *bufio.Reader, horizon model.YearRange) (model.UserGuess, bool, error) {
	for {
		fmt.Printf("Your guess (year or start-end, q to quit): ")

		line, err := reader.ReadString('\n')
		if err != nil {
			// EOF ends the session cleanly, like quitting.
			return model.UserGuess{}, true, nil
		}
		line = strings.TrimSpace(line)

		if line == "q" || line == "quit" {
			return model.UserGuess{}, true, nil
		}

		guess, err := parseGuess(line, horizon)
		if err != nil {
			fmt.Printf("Invalid guess: %v\n", err)
			continue
		}
		return guess, false, nil
	}
}

// parseGuess turns "1957" or "1950-1970" into a validated guess.
func parseGuess(input string, horizon model.YearRange) (model.UserGuess, error) {
	input = strings.TrimSpace(input)

	if start, end, ok := strings.Cut(input, "-"); ok {
		s, err1 := strconv.Atoi(strings.TrimSpace(start))
		e, err2 := strconv.Atoi(strings.TrimSpace(end))
		if err1 != nil || err2 != nil {
			return model.UserGuess{}, fmt.Errorf("%w: expected two years like 1950-1970", model.ErrInvalidGuess)
		}
		return model.NewRangeGuess(s, e, horizon)
	}

	year, err := strconv.Atoi(input)
	if err != nil {
		return model.UserGuess{}, fmt.Errorf("%w: expected a year like 1957", model.ErrInvalidGuess)
	}
	return model.NewPointGuess(year, horizon)
}
