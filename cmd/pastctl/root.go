package main

import (
	"bufio"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/vytor/pastorprompt/internal/access"
	"github.com/vytor/pastorprompt/internal/logger"
	"github.com/vytor/pastorprompt/internal/quizclient"
)

const defaultAPIURL = "http://localhost:8080"

// appEnv carries what every command needs. Tests fill it directly.
type appEnv struct {
	in  *bufio.Reader
	out io.Writer

	client quizclient.ClientInterface
	store  access.Store
	gate   *access.Gate

	// swap decides whether the fake version is shown first.
	swap func() bool

	apiURL    string
	stateFile string
	jsonOut   bool
	verbose   bool
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func defaultStateFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".pastctl-state.json"
	}
	return filepath.Join(home, ".pastctl", "state.json")
}

func newRootCmd(env *appEnv) *cobra.Command {
	root := &cobra.Command{
		Use:   "pastctl",
		Short: "Play and manage the Past or Prompt history quiz",
		Long: `pastctl talks to a Past or Prompt server. Pick which of two versions of a
historical event is true, manage folders and stories, and review statistics.

Folder passwords are kept in the local state file only. The server does not
check them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return env.setup()
		},
	}

	root.PersistentFlags().StringVar(&env.apiURL, "api", envOr("PASTCTL_API_URL", defaultAPIURL), "server base URL")
	root.PersistentFlags().StringVar(&env.stateFile, "state", envOr("PASTCTL_STATE_FILE", defaultStateFile()), "local state file (session id, folder passwords)")
	root.PersistentFlags().BoolVar(&env.jsonOut, "json", false, "output as JSON")
	root.PersistentFlags().BoolVarP(&env.verbose, "verbose", "v", false, "log requests")

	root.AddCommand(newFoldersCmd(env))
	root.AddCommand(newStoriesCmd(env))
	root.AddCommand(newPlayCmd(env))
	root.AddCommand(newStatsCmd(env))
	return root
}

// setup fills in whatever tests have not injected.
func (e *appEnv) setup() error {
	level := logger.WARN
	if e.verbose {
		level = logger.DEBUG
	}
	logger.SetDefault(logger.New(logger.WithLevel(level), logger.WithOutput(os.Stderr)))

	if e.client == nil {
		e.client = quizclient.New(e.apiURL)
	}
	if e.store == nil {
		e.store = access.NewFileStore(e.stateFile)
	}
	if e.gate == nil {
		e.gate = access.NewGate(e.store)
	}
	if e.swap == nil {
		e.swap = func() bool { return rand.IntN(2) == 1 }
	}
	return nil
}
