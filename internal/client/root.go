package client

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/thereidfleish/myace-sub000/internal/api"
	"github.com/thereidfleish/myace-sub000/internal/session"
)

var (
	cfgFile    string
	serverFlag string

	cfg     *Config
	gateway *api.Client
	sess    *session.Manager
)

var rootCmd = &cobra.Command{
	Use:   "ace",
	Short: "MyAce tennis coaching CLI",
	Long:  "Command-line client for the MyAce social tennis-coaching platform.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/ace/config.json)")
	rootCmd.PersistentFlags().StringVar(&serverFlag, "server", "", "API base URL (overrides config and ACE_API_URL)")
}

func initConfig() {
	// A .env next to the working directory may carry ACE_API_URL, the same
	// way the web app reads its endpoint from the build environment.
	_ = godotenv.Load()

	path := cfgFile
	if path == "" {
		var err error
		path, err = GetConfigPath()
		if err != nil {
			fmt.Println("Error getting config path:", err)
			os.Exit(1)
		}
	}

	var err error
	cfg, err = LoadConfig(path)
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	baseURL := cfg.ServerURL
	if env := os.Getenv("ACE_API_URL"); env != "" {
		baseURL = env
	}
	if serverFlag != "" {
		baseURL = serverFlag
	}

	gateway = api.New(baseURL, nil)
	sess = session.NewManager(gateway, &session.FileTokenStore{
		Path: filepath.Join(filepath.Dir(path), "session_token"),
	})
}

func GetRootCmd() *cobra.Command {
	return rootCmd
}

func SaveConfigGlobal() error {
	path := cfgFile
	if path == "" {
		var err error
		path, err = GetConfigPath()
		if err != nil {
			return err
		}
	}
	return SaveConfig(path, cfg)
}

// requireSession restores the persisted session and reports whether the
// command may proceed. Every mutating call needs a live session; the server
// stays the sole authority on permissions.
func requireSession(cmd *cobra.Command) bool {
	if sess.State() == session.StateLoggedIn {
		return true
	}
	if err := sess.Restore(cmd.Context()); err != nil {
		fmt.Println("Session invalid:", api.UserMessage(err))
		fmt.Println("Run 'ace login' to sign in again.")
		return false
	}
	if sess.State() != session.StateLoggedIn {
		fmt.Println("Not logged in. Run 'ace login' first.")
		return false
	}
	return true
}
