package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase/core"
	"github.com/spf13/cobra"

	"institute-events/config"
	"institute-events/internal/export"
	"institute-events/internal/messaging"
	"institute-events/internal/store"
	"institute-events/models"
)

// newBulkLinksCommand prints one personalized chat link per contact in a
// contacts file ("number[,name]" per line).
func newBulkLinksCommand(cfg *config.Config) *cobra.Command {
	var message, messageFile string

	command := &cobra.Command{
		Use:   "bulk-links <contacts-file>",
		Short: "Print personalized chat links for a contacts file",
		Args:  cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			contacts, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read contacts: %w", err)
			}
			if messageFile != "" {
				raw, err := os.ReadFile(messageFile)
				if err != nil {
					return fmt.Errorf("read message: %w", err)
				}
				message = string(raw)
			}
			return printLinks(command.Context(), command.OutOrStdout(), string(contacts), message, cfg)
		},
	}
	command.Flags().StringVarP(&message, "message", "m", "", "message text; {name} is replaced per contact")
	command.Flags().StringVar(&messageFile, "message-file", "", "read the message text from a file")
	return command
}

func printLinks(ctx context.Context, out io.Writer, contacts, message string, cfg *config.Config) error {
	if strings.TrimSpace(message) == "" {
		return messaging.ErrEmptyMessage
	}
	items, err := messaging.Parse(contacts, cfg.DefaultCountryCode)
	if err != nil {
		return err
	}

	queue := messaging.NewQueue(items, cfg.MessageFallbackName)
	opener := messaging.OpenerFunc(func(_ context.Context, link string) error {
		_, err := fmt.Fprintln(out, link)
		return err
	})
	for _, item := range items {
		if _, err := queue.Send(ctx, item.ID, message, opener); err != nil {
			return err
		}
	}
	return nil
}

// newExportCommand writes the spreadsheet or calendar document of all events
// to disk.
func newExportCommand(app core.App) *cobra.Command {
	var format, out, month, category string

	command := &cobra.Command{
		Use:   "export",
		Short: "Export events as xlsx or pdf",
		RunE: func(command *cobra.Command, args []string) error {
			if !app.IsBootstrapped() {
				if err := app.Bootstrap(); err != nil {
					return err
				}
			}
			events, err := store.NewEventStore(app).List(command.Context())
			if err != nil {
				return err
			}

			sel := export.Selection{Month: month, Category: category}
			path, err := writeExport(events, format, out, sel, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintf(command.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	command.Flags().StringVarP(&format, "format", "f", "xlsx", "xlsx or pdf")
	command.Flags().StringVarP(&out, "out", "o", ".", "output directory")
	command.Flags().StringVar(&month, "month", export.AllValues, "yyyy-MM or all")
	command.Flags().StringVar(&category, "category", export.AllValues, "category or all")
	return command
}

func writeExport(events []models.Event, format, dir string, sel export.Selection, now time.Time) (string, error) {
	var (
		name string
		data []byte
	)
	switch strings.ToLower(format) {
	case "xlsx":
		buf, err := export.Spreadsheet(export.Select(events, sel))
		if err != nil {
			return "", err
		}
		name, data = export.SpreadsheetFile, buf.Bytes()
	case "pdf":
		opts := export.DefaultOptions()
		opts.Selection = sel
		buf, err := export.Document(events, opts, now)
		if err != nil {
			return "", err
		}
		name, data = export.DocumentFile, buf.Bytes()
	default:
		return "", fmt.Errorf("unknown format %q (want xlsx or pdf)", format)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
