package main

import (
	"context"
	"flag"

	"go.uber.org/zap"

	"bankpulse"
	"bankpulse/internal/config"
	"bankpulse/internal/loader"
	"bankpulse/internal/storage"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the configuration file")
	csvPath := flag.String("reviews", "", "reviews CSV path (overrides the config)")
	flag.Parse()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err), zap.String("path", *configPath))
	}
	if *csvPath != "" {
		cfg.Input.CSVPath = *csvPath
	}

	reviews, err := loader.FromCSV(cfg.Input.CSVPath)
	if err != nil {
		logger.Fatal("Failed to load reviews", zap.Error(err), zap.String("path", cfg.Input.CSVPath))
	}
	logger.Info("Loaded reviews", zap.Int("count", len(reviews)))

	analyzerCfg := bankpulse.DefaultAnalyzerConfig()
	analyzerCfg.Workers = cfg.Analysis.Workers
	analyzerCfg.ReviewKeywords = cfg.Analysis.ReviewKeywords
	analyzerCfg.Classifier.RemoteAPIKey = cfg.OpenAI.APIKey
	analyzerCfg.Classifier.RemoteModelName = cfg.OpenAI.Model

	analyzer := bankpulse.NewAnalyzer(analyzerCfg, bankpulse.WithLogger(logger))

	result, err := analyzer.Analyze(context.Background(), reviews)
	if err != nil {
		logger.Fatal("Analysis failed", zap.Error(err))
	}

	logSummary(logger, result)
	logGroupKeywords(logger, analyzer, reviews, cfg.Analysis.GroupKeywords)

	if !cfg.Database.Enabled {
		logger.Info("Database disabled; results not persisted")
		return
	}

	store, err := storage.NewPostgresStorage(storage.DatabaseConfig{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", zap.Error(err))
	}
	defer store.Close()

	if err := store.SaveAnalyses(result.Reviews); err != nil {
		logger.Fatal("Failed to save review results", zap.Error(err))
	}
	if err := store.SaveGroupSummaries(result.Groups); err != nil {
		logger.Fatal("Failed to save group summaries", zap.Error(err))
	}
	logger.Info("Results persisted",
		zap.Int("reviews", len(result.Reviews)),
		zap.Int("groups", len(result.Groups)))
}

func logSummary(logger *zap.Logger, result *bankpulse.AnalysisResult) {
	distribution := make(map[bankpulse.SentimentLabel]int)
	agreement := make(map[bankpulse.AgreementLabel]int)
	for _, a := range result.Reviews {
		distribution[a.Sentiment.Label]++
		agreement[a.Agreement]++
	}
	logger.Info("Sentiment distribution",
		zap.Int("positive", distribution[bankpulse.Positive]),
		zap.Int("negative", distribution[bankpulse.Negative]),
		zap.Int("neutral", distribution[bankpulse.Neutral]))
	logger.Info("Rating agreement",
		zap.Int("match", agreement[bankpulse.AgreementMatch]),
		zap.Int("mismatch", agreement[bankpulse.AgreementMismatch]),
		zap.Int("neutral", agreement[bankpulse.AgreementNeutral]))

	for group, analysis := range result.Groups {
		for theme, summary := range analysis.Themes {
			logger.Info("Theme",
				zap.String("group", group),
				zap.String("theme", theme),
				zap.Int("frequency", summary.Frequency),
				zap.Float64("percentage", summary.Percentage),
				zap.String("severity", string(summary.Severity)))
		}
	}
}

func logGroupKeywords(logger *zap.Logger, analyzer *bankpulse.Analyzer, reviews []bankpulse.Review, topN int) {
	for group, terms := range analyzer.Extractor().ExtractPerGroup(reviews, topN) {
		top := terms
		if len(top) > 10 {
			top = top[:10]
		}
		names := make([]string, 0, len(top))
		for _, t := range top {
			names = append(names, t.Term)
		}
		logger.Info("Top keywords", zap.String("group", group), zap.Strings("terms", names))
	}
}
