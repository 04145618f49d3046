// pgdocs-qa 是 PostgreSQL 文档问答服务的命令行入口。
//
// 加载配置与提示词模板，组装回答管道，
// 然后在标准输入上进入问答循环。
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/easyops/pgdocs-qa/pkg/core/config"
	"github.com/easyops/pgdocs-qa/pkg/core/llm"
	"github.com/easyops/pgdocs-qa/pkg/otel"
	"github.com/easyops/pgdocs-qa/pkg/prompts"
	"github.com/easyops/pgdocs-qa/pkg/rag"
)

func main() {
	// 加载 .env（如果存在）
	_ = godotenv.Load()

	configPath := flag.String("config", "config/config.yaml", "path to config file")
	checkRelevance := flag.Bool("check-relevance", true, "reject questions unrelated to PostgreSQL")
	flag.Parse()

	if err := run(*configPath, *checkRelevance); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, checkRelevance bool) error {
	ctx := context.Background()

	// 配置错误是致命的启动错误：不允许带着残缺配置继续运行
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := otel.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	tracer := otel.NoopTracer()
	if cfg.Observability.Enabled {
		t, shutdown, err := otel.InitTracer(cfg.Observability.ServiceName)
		if err != nil {
			return err
		}
		tracer = t
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdown(shutdownCtx)
		}()
	}

	templates, err := prompts.Load(cfg.Pipeline.PromptsPath)
	if err != nil {
		return err
	}

	provider, err := llm.NewOpenAI(
		llm.WithAPIKey(cfg.LLM.APIKey),
		llm.WithBaseURL(cfg.LLM.BaseURL),
		llm.WithModel(cfg.LLM.Model),
		llm.WithEmbeddingModel(cfg.LLM.EmbeddingModel),
		llm.WithTimeout(cfg.LLM.Timeout),
		llm.WithMaxRetries(cfg.LLM.MaxRetries),
		llm.WithRetryDelay(cfg.LLM.RetryDelay),
		llm.WithTemperature(cfg.LLM.Temperature),
	)
	if err != nil {
		return err
	}
	defer provider.Close()

	store := rag.NewInMemoryVectorStore()
	if cfg.Pipeline.SnapshotPath != "" {
		n, err := store.LoadSnapshot(cfg.Pipeline.SnapshotPath)
		if err != nil {
			return err
		}
		logger.Info("vector snapshot loaded", "chunks", n, "path", cfg.Pipeline.SnapshotPath)
	} else {
		logger.Warn("no vector snapshot configured, retrieval will return empty results")
	}

	pipeline := rag.NewPipeline(provider, rag.NewVectorRetriever(store, provider), templates,
		rag.WithTopK(cfg.Pipeline.TopK),
		rag.WithMaxHistoryTurns(cfg.Pipeline.MaxHistoryTurns),
		rag.WithLogger(logger),
		rag.WithTracer(tracer),
	)

	logger.Info("pipeline ready", "model", provider.Model(), "top_k", cfg.Pipeline.TopK)

	return repl(ctx, pipeline, checkRelevance)
}

// repl 在标准输入上运行问答循环
func repl(ctx context.Context, pipeline *rag.Pipeline, checkRelevance bool) error {
	fmt.Println("PostgreSQL Documentation Q&A")
	fmt.Println("Type a question, \":clear\" to reset history, \":history\" to show it, \":quit\" to exit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\n> ")
		if !scanner.Scan() {
			break
		}

		question := strings.TrimSpace(scanner.Text())
		switch question {
		case "":
			continue
		case ":quit", ":q":
			return nil
		case ":clear":
			pipeline.ClearHistory()
			fmt.Println("History cleared.")
			continue
		case ":history":
			for _, turn := range pipeline.GetHistory() {
				fmt.Printf("%s: %s\n", turn.Role.Capitalize(), turn.Content)
			}
			continue
		}

		resp := pipeline.AnswerQuestion(ctx, question, checkRelevance)
		printResponse(resp)
	}

	return scanner.Err()
}

// printResponse 打印回答与来源
func printResponse(resp rag.Response) {
	fmt.Printf("\n%s\n", resp.Answer)

	if len(resp.Sources) == 0 {
		return
	}

	fmt.Printf("\nSources (%d):\n", len(resp.Sources))
	for i, source := range resp.Sources {
		fmt.Printf("  %d. %s (relevance: %.4f)\n", i+1, source.Title, 1-source.Score)
		fmt.Printf("     %s\n", source.URL)
	}
}
