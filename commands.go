// commands.go
//
// CLI wiring for the solver binary.
// Commands:
//   - solve:   play one game against a Wordle API server.
//   - serve:   run the local practice server (same wire contract).
//   - bench:   offline self-play across the dictionary.
//   - history: show recorded runs and aggregate stats.
//
// Configuration comes from flags with env-var defaults (loaded from .env in
// development via godotenv in main).

package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle-solver/internal/client"
	"github.com/robalobadob/wordle-solver/internal/feedback"
	"github.com/robalobadob/wordle-solver/internal/game"
	"github.com/robalobadob/wordle-solver/internal/history"
	"github.com/robalobadob/wordle-solver/internal/httpserver"
	"github.com/robalobadob/wordle-solver/internal/solver"
	"github.com/robalobadob/wordle-solver/internal/store"
	"github.com/robalobadob/wordle-solver/internal/words"
)

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "wordle-solver",
		Short:         "Plays Wordle against a game server by candidate filtering",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(solveCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(benchCmd())
	root.AddCommand(historyCmd())
	return root
}

// getEnvInt parses an integer env var, falling back to def.
func getEnvInt(k string, def int) int {
	if v := getEnv(k, ""); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// ------------------------------- solve -------------------------------------

func solveCmd() *cobra.Command {
	var (
		apiURL      string
		wordsFile   string
		wordLen     int
		maxAttempts int
		playerName  string
		opener      string
		dbPath      string
	)
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve one game against the configured API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			dict, err := words.Load(wordsFile, wordLen)
			if err != nil {
				return fmt.Errorf("dictionary: %w", err)
			}
			log.Info().Int("words", len(dict)).Msg("dictionary loaded")

			cl := client.New(apiURL, playerName, wordLen, log.Logger)
			s := solver.New(dict, maxAttempts,
				solver.WithOpener(opener),
				solver.WithLogger(log.Logger),
			)

			started := time.Now()
			out := s.Solve(cmd.Context(), cl)
			recordRun(cmd.Context(), dbPath, out, len(dict), started)

			switch out.State {
			case solver.StateSolved:
				log.Info().Str("word", out.Word).Int("attempts", out.Attempts).Msg("solved")
				return nil
			case solver.StateExhausted:
				log.Warn().Int("attempts", maxAttempts).Msg("out of attempts without solving")
				return nil
			default:
				if errors.Is(out.Err, solver.ErrNoCandidates) {
					return fmt.Errorf("every candidate was ruled out; the server's feedback "+
						"disagrees with the simulator or the dictionary is incomplete: %w", out.Err)
				}
				return fmt.Errorf("game session: %w", out.Err)
			}
		},
	}
	cmd.Flags().StringVar(&apiURL, "api", getEnv("WORDLE_API_URL", "https://wordle.we4shakthi.in/game"), "game API base URL")
	cmd.Flags().StringVar(&wordsFile, "words", getEnv("WORDS_FILE", ""), "word list file (empty: embedded default)")
	cmd.Flags().IntVar(&wordLen, "length", getEnvInt("WORD_LENGTH", 5), "word length")
	cmd.Flags().IntVar(&maxAttempts, "attempts", getEnvInt("MAX_ATTEMPTS", 6), "maximum attempts")
	cmd.Flags().StringVar(&playerName, "name", getEnv("PLAYER_NAME", "solver"), "player name to register")
	cmd.Flags().StringVar(&opener, "opener", getEnv("OPENER", solver.DefaultOpener), "opening-guess fallback word")
	cmd.Flags().StringVar(&dbPath, "db", getEnv("DB_PATH", "./data/solver.db"), "history database path (empty disables)")
	return cmd
}

// recordRun persists the outcome of a run. History is best effort: a broken
// database must not turn a solved game into a failure.
func recordRun(ctx context.Context, dbPath string, out solver.Outcome, dictSize int, started time.Time) {
	if dbPath == "" {
		return
	}
	st, err := history.Open(dbPath)
	if err != nil {
		log.Warn().Err(err).Msg("open history db")
		return
	}
	defer st.Close()

	run := history.Run{
		Word:      out.Word,
		State:     string(out.State),
		Attempts:  out.Attempts,
		DictSize:  dictSize,
		ElapsedMs: int(time.Since(started).Milliseconds()),
		StartedAt: started,
	}
	if err := st.Record(ctx, run); err != nil {
		log.Warn().Err(err).Msg("record run")
	}
}

// ------------------------------- serve -------------------------------------

func serveCmd() *cobra.Command {
	var (
		port        string
		wordsFile   string
		allowedFile string
		wordLen     int
		maxAttempts int
		dailySalt   string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a local practice server speaking the same wire contract",
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := words.Load(wordsFile, wordLen)
			if err != nil {
				return fmt.Errorf("dictionary: %w", err)
			}
			var allowed []string
			if allowedFile != "" {
				if allowed, err = words.Load(allowedFile, wordLen); err != nil {
					return fmt.Errorf("allowed list: %w", err)
				}
			}
			srv := httpserver.New(store.NewMemoryStore(), httpserver.Config{
				Words:       list,
				Allowed:     allowed,
				WordLen:     wordLen,
				MaxAttempts: maxAttempts,
				DailySalt:   dailySalt,
			})
			log.Info().Str("port", port).Int("words", len(list)).Msg("starting practice server")
			return srv.Start(":" + port)
		},
	}
	cmd.Flags().StringVar(&port, "port", getEnv("PORT", "5175"), "listen port")
	cmd.Flags().StringVar(&wordsFile, "words", getEnv("WORDS_FILE", ""), "word list file (empty: embedded default)")
	cmd.Flags().StringVar(&allowedFile, "allowed", getEnv("WORDS_ALLOWED_FILE", ""), "extra allowed-guess list file")
	cmd.Flags().IntVar(&wordLen, "length", getEnvInt("WORD_LENGTH", 5), "word length")
	cmd.Flags().IntVar(&maxAttempts, "attempts", getEnvInt("MAX_ATTEMPTS", 6), "maximum attempts per game")
	cmd.Flags().StringVar(&dailySalt, "daily-salt", getEnv("DAILY_SALT", "local_dev_salt"), "salt for daily-mode answers")
	return cmd
}

// ------------------------------- bench -------------------------------------

// selfPlaySession scores guesses against a fixed answer in process, letting
// the solver run offline at full speed.
type selfPlaySession struct {
	g *game.Game
}

func (s *selfPlaySession) Start(ctx context.Context) error { return nil }

func (s *selfPlaySession) Guess(ctx context.Context, word string) ([]feedback.Mark, error) {
	return s.g.ApplyGuess(word)
}

func benchCmd() *cobra.Command {
	var (
		wordsFile   string
		wordLen     int
		maxAttempts int
		opener      string
		games       int
	)
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Self-play every dictionary word and report the attempt distribution",
		RunE: func(cmd *cobra.Command, args []string) error {
			dict, err := words.Load(wordsFile, wordLen)
			if err != nil {
				return fmt.Errorf("dictionary: %w", err)
			}
			answers := dict
			if games > 0 && games < len(answers) {
				answers = answers[:games]
			}

			dist := make([]int, maxAttempts+1) // dist[k] = games solved in k attempts
			failures := 0
			bar := progressbar.Default(int64(len(answers)), "self-play")
			for _, answer := range answers {
				s := solver.New(dict, maxAttempts, solver.WithOpener(opener))
				sess := &selfPlaySession{g: game.New("bench", answer, maxAttempts, wordLen)}
				out := s.Solve(cmd.Context(), sess)
				if out.State == solver.StateSolved {
					dist[out.Attempts]++
				} else {
					failures++
				}
				_ = bar.Add(1)
			}

			solved := 0
			weighted := 0
			for k := 1; k <= maxAttempts; k++ {
				solved += dist[k]
				weighted += k * dist[k]
			}
			fmt.Printf("\ngames: %d  solved: %d  failed: %d\n", len(answers), solved, failures)
			for k := 1; k <= maxAttempts; k++ {
				fmt.Printf("  %d attempts: %d\n", k, dist[k])
			}
			if solved > 0 {
				fmt.Printf("average attempts (solved): %.2f\n", float64(weighted)/float64(solved))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&wordsFile, "words", getEnv("WORDS_FILE", ""), "word list file (empty: embedded default)")
	cmd.Flags().IntVar(&wordLen, "length", getEnvInt("WORD_LENGTH", 5), "word length")
	cmd.Flags().IntVar(&maxAttempts, "attempts", getEnvInt("MAX_ATTEMPTS", 6), "maximum attempts per game")
	cmd.Flags().StringVar(&opener, "opener", getEnv("OPENER", solver.DefaultOpener), "opening-guess fallback word")
	cmd.Flags().IntVar(&games, "games", 0, "limit the number of games (0: all words)")
	return cmd
}

// ------------------------------ history ------------------------------------

func historyCmd() *cobra.Command {
	var (
		dbPath string
		limit  int
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded runs and aggregate stats",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := history.Open(dbPath)
			if err != nil {
				return fmt.Errorf("open history db: %w", err)
			}
			defer st.Close()

			stats, err := st.Stats(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("played: %d  solved: %d  streak: %d", stats.Played, stats.Solved, stats.Streak)
			if stats.Solved > 0 {
				fmt.Printf("  avg attempts: %.2f", stats.AvgAttempts)
			}
			fmt.Println()

			runs, err := st.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			for _, r := range runs {
				word := r.Word
				if word == "" {
					word = "-"
				}
				fmt.Printf("%s  %-9s %-5s attempts=%d dict=%d %dms\n",
					r.StartedAt.Format("2006-01-02 15:04"), r.State, word, r.Attempts, r.DictSize, r.ElapsedMs)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", getEnv("DB_PATH", "./data/solver.db"), "history database path")
	cmd.Flags().IntVar(&limit, "limit", 20, "number of runs to show")
	return cmd
}
