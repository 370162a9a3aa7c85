package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/smartcv/jobfinder/internal/extract"
	"github.com/smartcv/jobfinder/internal/logger"
	"github.com/smartcv/jobfinder/internal/server"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the smartcv HTTP API",
	Run: func(_ *cobra.Command, _ []string) {
		serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("listen", "l", "", "listen address for the HTTP API (default :8000)")

	viper.BindPFlag("listen", serveCmd.Flags().Lookup("listen"))
}

func serve() {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the smartcv api", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	extractor, err := extract.NewService(ctx, logger)
	if err != nil {
		logger.Fatal("creating the text extractor", zap.Error(err))
	}

	analyzer := newAnalyzer(ctx, config, logger)
	finder := newFinder(config, logger)

	srv := server.New(
		server.Config{CORSOrigins: corsOrigins(config)},
		extractor,
		analyzer,
		finder,
		logger,
	)

	logger.Info("listening", zap.String("address", config.Listen))

	if err := srv.Run(config.Listen); err != nil {
		logger.Fatal("serving the api", zap.Error(err))
	}
}
