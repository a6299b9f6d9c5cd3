package cmd

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/wandermatch/matchengine/internal/cache"
	"github.com/wandermatch/matchengine/internal/embedder"
	"github.com/wandermatch/matchengine/internal/logger"
	"github.com/wandermatch/matchengine/internal/matcher"
	"github.com/wandermatch/matchengine/internal/pool"
	"github.com/wandermatch/matchengine/internal/results"
	"github.com/wandermatch/matchengine/internal/scorer"
	"github.com/wandermatch/matchengine/pkg/types"
)

const promptSolo = "Travel solo"

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Rank travel partners for the latest survey answer",
	Run: func(cmd *cobra.Command, _ []string) {
		runMatch(cmd)
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().IntP("top-k", "k", 0, "number of matches to return (default from config, 3)")
	matchCmd.Flags().Bool("solo", false, "skip the interactive partner selection")

	viper.BindPFlag("matching.top-k", matchCmd.Flags().Lookup("top-k"))
}

// runMatch is the main matching command.
func runMatch(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer func() { _ = logger.Sync() }()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the matchengine", zap.String("version", version))

	emb := buildEmbedder(ctx, config, logger)
	defer func() { _ = emb.Close() }()

	store := buildCacheStore(config, logger)
	defer func() { _ = store.Close() }()

	user := loadUser(config, logger)

	candidates, warning, err := matcher.LoadPool(config.PoolFile, logger)
	if err != nil {
		logger.Fatal("loading candidate pool", zap.Error(err))
	}

	scoring := scorer.DefaultConfig()
	if config.Scoring != nil {
		scoring = *config.Scoring
	}

	matching := matcher.Config{}
	if config.Matching != nil {
		matching = *config.Matching
	}

	writer := results.New(config.ResultsDir, logger)
	m := matcher.New(emb, store, scorer.New(scoring), writer, logger, matching)

	result, err := m.FindMatches(ctx, user, candidates, matching.TopK)
	if err != nil {
		logger.Fatal("matching failed", zap.Error(err))
	}
	if warning != "" {
		result.Warnings = append(result.Warnings, warning)
	}

	printMatches(result, candidates)

	if solo, _ := cmd.Flags().GetBool("solo"); !solo {
		selectPartner(result, candidates, logger)
	}
}

// buildEmbedder wires the configured provider, falling back to environment
// detection when no embedding section is configured.
func buildEmbedder(ctx context.Context, config *Config, logger *zap.Logger) embedder.Embedder {
	if config == nil || config.Embedding == nil {
		emb, err := embedder.NewFromEnv(ctx)
		if err != nil {
			logger.Fatal("creating an embedder", zap.Error(err))
		}
		logger.Info("embedding provider detected", zap.String("provider", emb.Provider()))
		return emb
	}

	emb, err := embedder.New(ctx, *config.Embedding)
	if err != nil {
		logger.Fatal("creating an embedder", zap.Error(err))
	}
	logger.Info("embedding provider configured",
		zap.String("provider", emb.Provider()),
		zap.String("model", emb.Model()))
	return emb
}

// buildCacheStore wires the configured cache backend. The default is a
// file store next to the pool file, matching where pool exports live.
func buildCacheStore(config *Config, logger *zap.Logger) cache.Store {
	backend, path := "file", ""
	if config.Cache != nil {
		if config.Cache.Backend != "" {
			backend = config.Cache.Backend
		}
		path = config.Cache.Path
	}

	var inner cache.Store
	var err error
	switch backend {
	case "sqlite":
		if path == "" {
			path = filepath.Join(filepath.Dir(config.PoolFile), "pool_embeddings.db")
		}
		inner, err = cache.NewSQLiteStore(path)
	default:
		if path == "" {
			path = filepath.Dir(config.PoolFile)
		}
		inner, err = cache.NewFileStore(path)
	}
	if err != nil {
		logger.Fatal("creating the embedding cache", zap.String("backend", backend), zap.Error(err))
	}

	store, err := cache.NewMemoryStore(inner, 4)
	if err != nil {
		logger.Fatal("creating the embedding cache", zap.Error(err))
	}
	logger.Info("embedding cache ready", zap.String("backend", backend), zap.String("path", path))
	return store
}

// loadUser reads the newest survey answer from the survey directory.
func loadUser(config *Config, logger *zap.Logger) *types.SurveyResponse {
	path, ts, err := pool.LatestSurveyFile(config.SurveyDir)
	if err != nil {
		logger.Fatal("finding the latest survey answer",
			zap.Error(err),
			zap.String("hint", "run the survey first or point survey-dir at the answers directory"),
		)
	}

	user, err := pool.LoadSurveyResponse(path, ts)
	if err != nil {
		logger.Fatal("loading the survey answer", zap.String("path", path), zap.Error(err))
	}

	logger.Info("survey answer loaded", zap.String("path", path), zap.String("user", user.ID))
	return user
}

func printMatches(result *types.MatchResult, candidates *pool.Pool) {
	fmt.Printf("\nTop travel partner matches for %s\n", result.UserID)
	if !result.SemanticUsed {
		fmt.Println("(semantic scoring unavailable; ranked by attribute overlap)")
	}
	for _, m := range result.Matches {
		idx := candidates.IndexOf(m.CandidateID)
		if idx < 0 {
			continue
		}
		c := &candidates.Candidates[idx]
		fmt.Printf("\nMatch #%d:\n", m.Rank)
		fmt.Printf("- Name: %s\n", c.Name)
		fmt.Printf("- Nationality: %s\n", c.Nationality)
		fmt.Printf("- Age Group: %s\n", c.Age)
		fmt.Printf("- Match Score: %.4f\n", m.Score)
		fmt.Printf("- Interests: %s\n", c.Interests)
	}
	for _, w := range result.Warnings {
		fmt.Printf("\nnote: %s\n", w)
	}
}

// selectPartner offers the ranked matches for interactive selection.
func selectPartner(result *types.MatchResult, candidates *pool.Pool, logger *zap.Logger) {
	items := []string{promptSolo}
	for _, m := range result.Matches {
		idx := candidates.IndexOf(m.CandidateID)
		if idx < 0 {
			continue
		}
		c := &candidates.Candidates[idx]
		items = append(items, fmt.Sprintf("%s (%s, %s) with score %.2f", c.Name, c.Nationality, c.Age, m.Score))
	}

	prompt := promptui.Select{
		Label: "Choose a travel partner",
		Items: items,
	}

	i, _, err := prompt.Run()
	if err != nil {
		logger.Warn("partner selection aborted", zap.Error(err))
		return
	}
	if i == 0 {
		fmt.Println("You've chosen to travel solo. Adventure awaits!")
		return
	}
	fmt.Printf("You've selected %s as your travel companion!\n", items[i])
}
