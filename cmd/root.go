package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"sourcepack/pkg/gitinfo"
	"sourcepack/pkg/logging"
	"sourcepack/pkg/snapshot"
	"sourcepack/pkg/version"
)

var (
	flagOutput           string
	flagProjectRoot      string
	flagMaxSize          int64
	flagExclude          string
	flagExcludeDir       string
	flagSensitive        string
	flagVerbose          bool
	flagNoUpdateIgnore   bool
	flagNoListEnvKeys    bool
	flagRespectGitignore bool
	flagClipboard        bool

	logger *zap.Logger
)

// RootCmd is the base command: running sourcepack without a subcommand
// produces a snapshot of the project.
var RootCmd = &cobra.Command{
	Use:   "sourcepack [PROJECT_ROOT]",
	Short: "Sourcepack consolidates a project tree into a single text snapshot",
	Long: `Sourcepack walks a project directory and writes one text artifact holding
the concatenated source files, a directory tree, git metadata, and summary
statistics. Binaries, dependency directories, and oversized files are
excluded; sensitive files such as .env are listed but never embedded.`,
	Version: version.Get().Version,
	Args:    cobra.MaximumNArgs(1),
	RunE:    runSnapshot,
}

// Execute runs the root command with the application logger.
func Execute(l *zap.Logger) error {
	logger = l
	return RootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	RootCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Artifact path (default: <root>_<timestamp>_merged_sources.txt)")
	viper.BindPFlag("output", RootCmd.Flags().Lookup("output"))
	RootCmd.Flags().StringVar(&flagProjectRoot, "project-root", "", "Project root directory (default: detected from cwd)")
	viper.BindPFlag("project_root", RootCmd.Flags().Lookup("project-root"))
	RootCmd.Flags().Int64VarP(&flagMaxSize, "max-size", "s", snapshot.DefaultMaxFileSize, "Maximum file size in bytes to embed")
	viper.BindPFlag("max_size", RootCmd.Flags().Lookup("max-size"))
	RootCmd.Flags().StringVarP(&flagExclude, "exclude", "e", "", "Additional exclude patterns (comma-separated)")
	viper.BindPFlag("exclude", RootCmd.Flags().Lookup("exclude"))
	RootCmd.Flags().StringVar(&flagExcludeDir, "exclude-dir", "", "Additional excluded directory names (comma-separated)")
	viper.BindPFlag("exclude_dir", RootCmd.Flags().Lookup("exclude-dir"))
	RootCmd.Flags().StringVar(&flagSensitive, "sensitive", "", "Additional sensitive file patterns (comma-separated)")
	viper.BindPFlag("sensitive", RootCmd.Flags().Lookup("sensitive"))
	RootCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable verbose logging")
	viper.BindPFlag("verbose", RootCmd.Flags().Lookup("verbose"))
	RootCmd.Flags().BoolVar(&flagNoUpdateIgnore, "no-update-gitignore", false, "Don't add the artifact pattern to .gitignore")
	viper.BindPFlag("no_update_gitignore", RootCmd.Flags().Lookup("no-update-gitignore"))
	RootCmd.Flags().BoolVar(&flagNoListEnvKeys, "no-list-env-keys", false, "Don't list redacted key names of env files")
	viper.BindPFlag("no_list_env_keys", RootCmd.Flags().Lookup("no-list-env-keys"))
	RootCmd.Flags().BoolVar(&flagRespectGitignore, "respect-gitignore", false, "Also exclude files matched by the project .gitignore")
	viper.BindPFlag("respect_gitignore", RootCmd.Flags().Lookup("respect-gitignore"))
	RootCmd.Flags().BoolVarP(&flagClipboard, "clipboard", "c", false, "Copy the artifact to the clipboard after writing")
	viper.BindPFlag("clipboard", RootCmd.Flags().Lookup("clipboard"))

	viper.SetDefault("max_size", snapshot.DefaultMaxFileSize)
	viper.SetDefault("no_update_gitignore", false)
	viper.SetDefault("no_list_env_keys", false)
	viper.SetDefault("respect_gitignore", false)
	viper.SetDefault("clipboard", false)
}

// initConfig layers defaults, config file, SOURCEPACK_* environment
// variables, and flags, lowest to highest precedence.
func initConfig() {
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "sourcepack"))
	}
	viper.AddConfigPath(".")
	viper.SetConfigName("config")
	viper.SetConfigType("toml")

	viper.SetEnvPrefix("SOURCEPACK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
		}
	}
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	if flagVerbose || viper.GetBool("verbose") {
		if err := logging.Setup(true, "sourcepack", version.Get().Version); err == nil {
			logger = logging.Logger
		}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	rules := snapshot.DefaultRuleset()
	rules.MaxFileSize = viper.GetInt64("max_size")
	rules.ExcludeFiles = append(rules.ExcludeFiles, splitPatterns(viper.GetString("exclude"))...)
	rules.ExcludeDirs = append(rules.ExcludeDirs, splitPatterns(viper.GetString("exclude_dir"))...)
	rules.Sensitive = append(rules.Sensitive, splitPatterns(viper.GetString("sensitive"))...)

	root := viper.GetString("project_root")
	if len(args) > 0 {
		root = args[0]
	}
	if root == "" {
		root = snapshot.DetectProjectRoot(logger)
	}

	if !viper.GetBool("no_update_gitignore") {
		if err := snapshot.EnsureGitignoreEntry(root, logger); err != nil {
			logger.Warn("Could not update .gitignore", zap.Error(err))
		}
	}

	snapArgs := snapshot.Arguments{
		ProjectRoot:      root,
		Output:           viper.GetString("output"),
		ListEnvKeys:      !viper.GetBool("no_list_env_keys"),
		RespectGitignore: viper.GetBool("respect_gitignore"),
		Verbose:          flagVerbose || viper.GetBool("verbose"),
	}

	artifact, err := snapshot.Run(snapArgs, rules, gitinfo.NewProvider(root, logger), logger)
	if err != nil {
		return err
	}
	fmt.Printf("Snapshot written to %s\n", artifact)

	if viper.GetBool("clipboard") {
		if err := copyArtifact(artifact); err != nil {
			logger.Warn("Could not copy artifact to clipboard", zap.Error(err))
		} else {
			fmt.Println("Artifact copied to clipboard.")
		}
	}
	return nil
}

func copyArtifact(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return clipboard.WriteAll(string(data))
}

// splitPatterns splits a comma-separated pattern list, dropping empties.
func splitPatterns(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
