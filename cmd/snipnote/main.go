// Command snipnote is a thin terminal consumer of the note store: it fetches
// the collection, applies search and sort locally, and prints or copies
// notes. It stands in for the dashboard UI.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/snipnote/snipnote/internal/clipboard"
	"github.com/snipnote/snipnote/internal/client"
	"github.com/snipnote/snipnote/internal/models"
	"github.com/snipnote/snipnote/internal/notify"
	"github.com/snipnote/snipnote/internal/policy"
	"github.com/snipnote/snipnote/internal/store"
	"github.com/snipnote/snipnote/pkg/config"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	search := flag.String("search", "", "filter notes by title/content substring")
	sortKey := flag.String("sort", string(policy.DefaultSortKey), "sort key")
	open := flag.String("open", "", "open a note by id (copies it when one-click copy is on)")
	flag.Parse()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err), zap.String("path", *configPath))
	}

	svc := client.New(cfg.Client.BaseURL, logger, client.WithToken(cfg.Client.Token))
	s := store.New(svc,
		store.WithLogger(logger),
		store.WithNotifier(notify.NewLogNotifier(logger)),
		store.WithCopier(clipboard.SystemCopier{}),
	)
	defer s.Close()

	s.SetUser(&models.User{ID: cfg.Client.UserID})

	ctx := context.Background()
	if err := s.FetchNotes(ctx); err != nil {
		logger.Fatal("Failed to fetch notes", zap.Error(err))
	}

	if err := s.SortBy(policy.SortKey(*sortKey)); err != nil {
		logger.Fatal("Invalid sort key", zap.Error(err), zap.String("sort", *sortKey))
	}
	s.SetSearchQuery(*search)

	if *open != "" {
		if err := s.OpenNote(*open); err != nil {
			logger.Fatal("Failed to open note", zap.Error(err), zap.String("note_id", *open))
		}
		if current := s.CurrentNote(); current != nil && current.ID == *open {
			fmt.Println(clipboard.PlainText(current.Content))
		}
		return
	}

	notes := s.FilteredNotes()
	if len(notes) == 0 {
		fmt.Fprintln(os.Stderr, "no notes")
		return
	}
	for _, n := range notes {
		marker := " "
		if n.OneClickCopy {
			marker = "*"
		}
		fmt.Printf("%s %s  %s  (updated %s)\n", marker, n.ID, n.Title, n.UpdatedAt.Format("2006-01-02 15:04"))
	}
}
