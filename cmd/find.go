package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/smartcv/jobfinder/internal/extract"
	"github.com/smartcv/jobfinder/internal/jobsearch"
	"github.com/smartcv/jobfinder/internal/logger"
	"github.com/smartcv/jobfinder/internal/profile"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptShowLinks      = "Print apply links"
	PromptPostingsToFile = "Dump postings to file"
	PromptExit           = "Exit"
)

var errExit = errors.New("exit requested")

var findPrompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptShowLinks, PromptPostingsToFile, PromptExit},
}

var findCmd = &cobra.Command{
	Use:   "find",
	Short: "Analyze a CV file and search for matching job postings",
	Run: func(cmd *cobra.Command, _ []string) {
		find(cmd)
	},
}

func init() {
	rootCmd.AddCommand(findCmd)

	findCmd.Flags().StringP("cv", "c", "", "path to the CV file (pdf, docx or plain text)")
	findCmd.Flags().StringP("location", "L", "", "preferred job location (default from config)")
	findCmd.Flags().IntP("limit", "n", 20, "maximum number of postings to return")

	findCmd.MarkFlagRequired("cv")
}

// find is the CLI rendition of the full pipeline: extract, analyze, search.
func find(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	cvPath := cmd.Flag("cv").Value.String()
	location := cmd.Flag("location").Value.String()
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		logger.Fatal("reading the limit flag", zap.Error(err))
	}

	extractor, err := extract.NewService(ctx, logger)
	if err != nil {
		logger.Fatal("creating the text extractor", zap.Error(err))
	}

	file, err := os.Open(cvPath)
	if err != nil {
		logger.Fatal("opening the cv file", zap.Error(err))
	}
	defer file.Close()

	text, err := extractor.ExtractText(ctx, file, cvPath)
	if err != nil {
		logger.Fatal("extracting text from the cv", zap.Error(err))
	}

	if err := profile.ValidateText(text); err != nil {
		logger.Fatal("validating the cv text",
			zap.Error(err),
			zap.String("hint", "upload a more detailed CV"),
		)
	}

	analyzer := newAnalyzer(ctx, config, logger)
	result := analyzer.Analyze(ctx, text)

	logger.Info("analyzed the cv",
		zap.Strings("job_titles", result.JobTitles),
		zap.Strings("skills", result.Skills),
		zap.String("experience_level", result.ExperienceLevel),
	)

	finder := newFinder(config, logger)
	postings := finder.FindJobs(ctx, result, location, limit)

	if len(postings) == 0 {
		logger.Info("exiting", zap.String("reason", "no postings found"))
		return
	}

	for _, posting := range postings {
		fmt.Printf("%-45s %-25s %-20s %s\n", posting.Title, posting.Company, posting.Location, posting.Source)
	}

	for {
		_, action, err := findPrompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleFindAction(action, postings, logger); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleFindAction(action string, postings []jobsearch.Posting, logger *zap.Logger) error {
	switch action {
	case PromptShowLinks:
		for _, posting := range postings {
			fmt.Printf("%s: %s\n", posting.Title, posting.ApplyLink)
		}
		return nil
	case PromptPostingsToFile:
		filename, err := dumpPostingsToTmpFile(postings)
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		logger.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func dumpPostingsToTmpFile(postings []jobsearch.Posting) (string, error) {
	file, err := os.CreateTemp("", "postings_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(postings); err != nil {
		return "", err
	}

	return file.Name(), nil
}
