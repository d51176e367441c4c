package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/citeguard/citeguard/internal/library"
	"github.com/citeguard/citeguard/internal/model"
)

var (
	libDBPath  string
	addTitle   string
	addAuthors []string
	addYear    int
	addJournal string
	addFile    string
)

// libraryCmd represents the library command
var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Manage the local source library",
	Long: `Manage the local library of reference sources that citations are
verified against. Each source carries bibliographic metadata and,
optionally, its extracted full text.`,
}

var libraryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored sources",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openLibrary()
		if err != nil {
			return err
		}
		defer store.Close()

		sources, err := store.ListSources(cmd.Context())
		if err != nil {
			return fmt.Errorf("list sources: %w", err)
		}

		if len(sources) == 0 {
			fmt.Println("Library is empty.")
			return nil
		}

		fmt.Printf("Library sources: %d\n\n", len(sources))
		for _, src := range sources {
			text := "no full text"
			if src.HasFile {
				text = "full text available"
			}
			fmt.Printf("  %s\n", src.Title)
			fmt.Printf("    id: %s", src.ID)
			if src.Year > 0 {
				fmt.Printf(", year: %d", src.Year)
			}
			if len(src.Authors) > 0 {
				fmt.Printf(", authors: %s", strings.Join(src.Authors, ", "))
			}
			fmt.Printf(" (%s)\n", text)
		}
		return nil
	},
}

var libraryAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a source to the library",
	Long: `Add a source with its bibliographic metadata. Pass --file to attach the
source's extracted full text so citations can be verified against it.

Example:
  citeguard library add --title "Экономическая теория" --author "Иванов И.И." --year 2020 --file source.txt`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if addTitle == "" {
			return fmt.Errorf("--title is required")
		}

		fullText := ""
		if addFile != "" {
			data, err := os.ReadFile(addFile)
			if err != nil {
				return fmt.Errorf("read source file: %w", err)
			}
			fullText = string(data)
		}

		store, err := openLibrary()
		if err != nil {
			return err
		}
		defer store.Close()

		summary := model.SourceSummary{
			ID:      uuid.NewString(),
			Title:   addTitle,
			Authors: addAuthors,
			Year:    addYear,
			Journal: addJournal,
			HasFile: fullText != "",
		}
		if err := store.AddSource(cmd.Context(), summary, fullText); err != nil {
			return fmt.Errorf("add source: %w", err)
		}

		fmt.Printf("✓ Added source %s (%s)\n", summary.ID, summary.Title)
		return nil
	},
}

var libraryDeleteCmd = &cobra.Command{
	Use:   "delete <source-id>",
	Short: "Delete a source from the library",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openLibrary()
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.DeleteSource(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("delete source: %w", err)
		}
		fmt.Printf("✓ Deleted source %s\n", args[0])
		return nil
	},
}

func openLibrary() (*library.SQLiteStore, error) {
	path := libDBPath
	if path == "" {
		path = defaultLibraryPath()
	}
	return library.OpenSQLite(path)
}

func init() {
	rootCmd.AddCommand(libraryCmd)
	libraryCmd.AddCommand(libraryListCmd)
	libraryCmd.AddCommand(libraryAddCmd)
	libraryCmd.AddCommand(libraryDeleteCmd)

	libraryCmd.PersistentFlags().StringVar(&libDBPath, "db", "", "library database path (default: $HOME/.citeguard/library.db)")

	libraryAddCmd.Flags().StringVar(&addTitle, "title", "", "source title")
	libraryAddCmd.Flags().StringArrayVar(&addAuthors, "author", nil, "source author (repeatable)")
	libraryAddCmd.Flags().IntVar(&addYear, "year", 0, "publication year")
	libraryAddCmd.Flags().StringVar(&addJournal, "journal", "", "journal name")
	libraryAddCmd.Flags().StringVar(&addFile, "file", "", "path to the source's extracted full text")
}
