package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"storybot/pkg/config"
	"storybot/pkg/notify"
	"storybot/pkg/tracker"

	"github.com/spf13/cobra"
)

// storyCmd fetches one story and prints the summary the relay would post,
// which makes token and formatting problems visible without a chat
// workspace.
var storyCmd = &cobra.Command{
	Use:   "story <id>",
	Short: "Fetch one story and print its summary",
	Long:  "Loads storybot configuration, fetches the given Pivotal Tracker story, and prints the notification the relay would post for it.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := strings.TrimSpace(args[0])
		if id == "" {
			return fmt.Errorf("story id is required")
		}

		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		client, err := tracker.New(cfg.Tracker)
		if err != nil {
			return fmt.Errorf("initialize tracker client: %w", err)
		}

		ctx := context.Background()
		story, err := client.FetchStory(ctx, id)
		if err != nil {
			return fmt.Errorf("fetch story %s: %w", id, err)
		}

		if story.Kind != "story" {
			fmt.Printf("item %s has kind %q; the relay would skip it\n", id, story.Kind)
			return nil
		}

		projectName, err := client.FetchProjectName(ctx, strconv.FormatInt(story.ProjectID, 10))
		if err != nil {
			return fmt.Errorf("fetch project %d: %w", story.ProjectID, err)
		}

		formatter := notify.NewFormatter(cfg.Tracker.MaxSummaryChars, cfg.Tracker.MaxSummaryLines)
		notification := formatter.Story(story, projectName)

		fmt.Println(notification.Pretext)
		fmt.Println(notification.Title)
		fmt.Println(notification.TitleLink)
		if body := strings.TrimSpace(notification.Body); body != "" {
			fmt.Println(body)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(storyCmd)
}
