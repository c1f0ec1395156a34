package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/quarry-labs/quarry/internal/logger"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rebuild the index when the corpus changes",
	Long: `Watches the corpus directory and rebuilds the index after files are
added, changed or removed. Bursts of events are coalesced into a single
rebuild.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 500*time.Millisecond, "delay before rebuilding after a change")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if indexService == nil {
		return errors.New("index service not configured")
	}
	if corpusDir == "" {
		return errors.New("corpus directory not configured")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(corpusDir); err != nil {
		return fmt.Errorf("watch %s: %w", corpusDir, err)
	}

	cmd.Printf("Watching %s for changes...\n", corpusDir)

	timer := time.NewTimer(0)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false

	for {
		select {
		case <-cmd.Context().Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug("corpus change: %s %s", event.Op, event.Name)
			if !pending {
				timer.Reset(watchDebounce)
				pending = true
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "watch error: %v\n", err)
		case <-timer.C:
			pending = false
			stats, buildErr := indexService.Build(cmd.Context())
			if buildErr != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "rebuild failed: %v\n", buildErr)
				continue
			}
			cmd.Printf("Rebuilt: %d documents, %d chunks\n", stats.Documents, stats.Chunks)
		}
	}
}
