package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/mizuki-e/tempo/internal/config"
	"github.com/mizuki-e/tempo/internal/output"
	"github.com/mizuki-e/tempo/internal/stats"
	"github.com/mizuki-e/tempo/internal/store"
	"github.com/mizuki-e/tempo/internal/tui"
)

var rootCmd = &cobra.Command{
	Use:   "tempo",
	Short: "Commit statistics for one or more git repositories",
	Long: `Tempo collects commit statistics from local git repositories and
shows them as an interactive terminal dashboard or as a static report.

Examples:
  tempo                          # Last 7 days of the current repository
  tempo -d 30 -p weekly          # Last 30 days, bucketed by ISO week
  tempo -r ~/src/api -r ~/src/web # Aggregate two repositories
  tempo -e go -e md -o table     # Only .go and .md changes, as a table`,
	RunE: runAnalyze,
}

var (
	flagRepos         []string
	flagNames         []string
	flagDays          int
	flagPeriod        string
	flagBranch        string
	flagExtensions    []string
	flagIncludeMerges bool
	flagTimezone      string
	flagOutput        string
	flagSingle        bool
	flagConfig        string
)

func runAnalyze(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	p, err := stats.ParsePeriod(pickString(cmd, "period", flagPeriod, cfg.Defaults.Period))
	if err != nil {
		return err
	}

	zone, err := stats.ParseZone(pickString(cmd, "timezone", flagTimezone, cfg.Defaults.Timezone))
	if err != nil {
		return err
	}

	days := flagDays
	if !cmd.Flags().Changed("days") && cfg.Defaults.Days > 0 {
		days = cfg.Defaults.Days
	}
	if days < 1 {
		return fmt.Errorf("invalid days: %d (must be at least 1)", days)
	}

	specs, err := resolveRepos(cfg)
	if err != nil {
		return err
	}

	opts := stats.Options{
		Range:          stats.LastNDays(days-1, zone),
		Period:         p,
		Zone:           zone,
		Extensions:     flagExtensions,
		IncludeMerges:  flagIncludeMerges,
		BranchOverride: flagBranch,
	}

	if flagOutput == "tui" {
		var recorded *stats.Snapshot
		load := func() (*stats.Snapshot, []stats.RepoError, error) {
			snapshot, repoErrs, err := stats.Aggregate(specs, opts)
			recorded = snapshot
			return snapshot, repoErrs, err
		}
		if err := tui.Run(load, flagSingle); err != nil {
			return err
		}
		if recorded != nil {
			recordRun(recorded, zone)
		}
		return nil
	}

	snapshot, repoErrs, err := stats.Aggregate(specs, opts)
	for _, repoErr := range repoErrs {
		color.New(color.FgRed).Fprintf(os.Stderr, "warning: %v\n", repoErr)
	}
	if err != nil {
		return err
	}

	if err := renderStatic(snapshot); err != nil {
		return err
	}

	recordRun(snapshot, zone)
	return nil
}

// resolveRepos picks analysis targets: explicit --repo paths win, then the
// configured repositories (optionally narrowed by --name), then the working
// directory as a last resort.
func resolveRepos(cfg *config.Config) ([]stats.RepoSpec, error) {
	if len(flagRepos) > 0 {
		specs := make([]stats.RepoSpec, 0, len(flagRepos))
		for _, raw := range flagRepos {
			path := config.ExpandPath(raw)
			abs, err := filepath.Abs(path)
			if err != nil {
				return nil, err
			}
			specs = append(specs, stats.RepoSpec{Name: filepath.Base(abs), Path: abs})
		}
		return specs, nil
	}

	if repos := cfg.FilterByName(flagNames); len(repos) > 0 {
		specs := make([]stats.RepoSpec, 0, len(repos))
		for _, repo := range repos {
			specs = append(specs, stats.RepoSpec{Name: repo.Name, Path: repo.Path, Branch: repo.Branch})
		}
		return specs, nil
	}
	if len(flagNames) > 0 {
		return nil, fmt.Errorf("%w: no configured repository matches %v", config.ErrNoRepositories, flagNames)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return []stats.RepoSpec{{Name: filepath.Base(cwd), Path: cwd}}, nil
}

func renderStatic(snapshot *stats.Snapshot) error {
	switch flagOutput {
	case "table":
		fmt.Println(output.Table(snapshot.Result))
	case "json":
		s, err := output.JSON(snapshot.Result)
		if err != nil {
			return err
		}
		fmt.Println(s)
	case "csv":
		s, err := output.CSV(snapshot.Result)
		if err != nil {
			return err
		}
		fmt.Print(s)
	case "html":
		return output.HTML(snapshot, os.Stdout)
	default:
		return fmt.Errorf("invalid output: %q (use tui, table, json, csv or html)", flagOutput)
	}
	return nil
}

// recordRun appends the run to the local history database. History is a
// convenience, so failures only warn.
func recordRun(snapshot *stats.Snapshot, zone stats.Zone) {
	db, err := store.OpenAndMigrate()
	if err != nil {
		color.New(color.FgYellow).Fprintf(os.Stderr, "warning: run history unavailable: %v\n", err)
		return
	}
	defer store.Close()

	if err := store.NewRunRepo(db).Record(snapshot, zone); err != nil {
		color.New(color.FgYellow).Fprintf(os.Stderr, "warning: could not record run: %v\n", err)
	}
}

var addCmd = &cobra.Command{
	Use:   "add [path]",
	Short: "Add a repository to the config",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		cfg, err := config.Load(flagConfig)
		if err != nil {
			return err
		}

		path := config.ExpandPath(args[0])
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}

		name, _ := cmd.Flags().GetString("name")
		if name == "" {
			name = filepath.Base(abs)
		}
		branch, _ := cmd.Flags().GetString("branch")

		if err := cfg.AddRepository(config.Repository{Name: name, Path: abs, Branch: branch}); err != nil {
			return err
		}
		if err := saveConfig(cfg); err != nil {
			return err
		}

		fmt.Printf("Added %s (%s)\n", name, abs)
		return nil
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove [name|path]",
	Short: "Remove a repository from the config",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		cfg, err := config.Load(flagConfig)
		if err != nil {
			return err
		}
		if err := cfg.RemoveRepository(args[0]); err != nil {
			return err
		}
		if err := saveConfig(cfg); err != nil {
			return err
		}

		fmt.Printf("Removed %s\n", args[0])
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured repositories",
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		cfg, err := config.Load(flagConfig)
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			data, err := json.MarshalIndent(cfg.Repositories, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		}

		if len(cfg.Repositories) == 0 {
			fmt.Println("No repositories configured. Use 'tempo add <path>' to add one.")
			return nil
		}

		tbl := table.NewWriter()
		tbl.SetStyle(table.StyleLight)
		tbl.AppendHeader(table.Row{"Name", "Path", "Branch"})
		for _, repo := range cfg.Repositories {
			branch := repo.Branch
			if branch == "" {
				branch = "(default)"
			}
			tbl.AppendRow(table.Row{repo.Name, repo.Path, branch})
		}
		fmt.Println(tbl.Render())
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent analysis runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		db, err := store.OpenAndMigrate()
		if err != nil {
			return err
		}
		defer store.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		runs, err := store.NewRunRepo(db).Recent(limit)
		if err != nil {
			return err
		}

		if len(runs) == 0 {
			fmt.Println("No runs recorded yet.")
			return nil
		}

		tbl := table.NewWriter()
		tbl.SetStyle(table.StyleLight)
		tbl.AppendHeader(table.Row{"When", "Repositories", "Period", "Range", "Commits", "Net"})
		for _, run := range runs {
			tbl.AppendRow(table.Row{
				run.CreatedAt.Format("2006-01-02 15:04"),
				run.Repositories,
				run.Period,
				run.From + " → " + run.To,
				humanize.Comma(int64(run.Commits)),
				humanize.Comma(int64(run.NetLines)),
			})
		}
		fmt.Println(tbl.Render())
		return nil
	},
}

// pickString prefers the flag value once the flag was set, otherwise the
// configured default when one exists.
func pickString(cmd *cobra.Command, flag, value, fallback string) string {
	if cmd.Flags().Changed(flag) || fallback == "" {
		return value
	}
	return fallback
}

func saveConfig(cfg *config.Config) error {
	path := flagConfig
	if path == "" {
		var err error
		path, err = config.ConfigPath()
		if err != nil {
			return err
		}
	}
	return config.Save(cfg, path)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default ~/.tempo/config.toml)")

	rootCmd.Flags().StringArrayVarP(&flagRepos, "repo", "r", nil, "Repository path (repeatable, overrides config)")
	rootCmd.Flags().StringArrayVar(&flagNames, "name", nil, "Configured repository to include (repeatable)")
	rootCmd.Flags().IntVarP(&flagDays, "days", "d", 7, "Days to analyze, counting back from today")
	rootCmd.Flags().StringVarP(&flagPeriod, "period", "p", "daily", "Aggregation period: daily, weekly, monthly or yearly")
	rootCmd.Flags().StringVarP(&flagBranch, "branch", "b", "", "Branch to analyze (default: HEAD)")
	rootCmd.Flags().StringSliceVarP(&flagExtensions, "ext", "e", nil, "File extension filter (e.g. -e go,md)")
	rootCmd.Flags().BoolVar(&flagIncludeMerges, "include-merges", false, "Count merge commits")
	rootCmd.Flags().StringVarP(&flagTimezone, "timezone", "z", "local", "Timezone: local, utc, or an IANA name")
	rootCmd.Flags().StringVarP(&flagOutput, "output", "o", "tui", "Output: tui, table, json, csv or html")
	rootCmd.Flags().BoolVar(&flagSingle, "single", false, "Start the dashboard in single-metric view")

	addCmd.Flags().String("name", "", "Display name (default: directory name)")
	addCmd.Flags().StringP("branch", "b", "", "Branch to analyze for this repository")

	listCmd.Flags().Bool("json", false, "Print as JSON")

	historyCmd.Flags().IntP("limit", "n", 10, "Number of runs to show")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(historyCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
