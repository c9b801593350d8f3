package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	client "github.com/revesshop/revesshop-client"
	"github.com/revesshop/revesshop-client/internal/config"
	"github.com/revesshop/revesshop-client/internal/session"
)

const defaultCallTimeout = 15 * time.Second

// app holds what every sub-command needs once flags are parsed.
type app struct {
	apiURL      string
	sessionFile string
	debug       bool
	output      string
	query       string

	cfg     *config.Config
	client  *client.Client
	store   *session.FileStore
	session *session.Provider
}

func main() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "revesshop",
		Short:         "Command line client for the Revesshop storefront API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
			log.Logger = log.Output(zerolog.ConsoleWriter{
				Out:        cmd.ErrOrStderr(),
				TimeFormat: "2006-01-02 15:04:05",
				NoColor:    true,
			})
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.client != nil {
				_ = a.client.Close()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.apiURL, "api-url", "", "Storefront API base URL (default $REVESSHOP_API_URL)")
	rootCmd.PersistentFlags().StringVar(&a.sessionFile, "session-file", "", "Where the session token is kept (default $REVESSHOP_SESSION_FILE or the user config dir)")
	rootCmd.PersistentFlags().BoolVarP(&a.debug, "debug", "d", false, "Enable verbose debug output")
	rootCmd.PersistentFlags().StringVarP(&a.output, "output", "o", "json", "Output format: json or yaml")
	rootCmd.PersistentFlags().StringVarP(&a.query, "query", "q", "", "JMESPath expression applied to the response")

	rootCmd.AddCommand(newRegisterCmd(a))
	rootCmd.AddCommand(newLoginCmd(a))
	rootCmd.AddCommand(newLogoutCmd(a))
	rootCmd.AddCommand(newProfileCmd(a))
	rootCmd.AddCommand(newProductsCmd(a))
	rootCmd.AddCommand(newRatesCmd(a))
	rootCmd.AddCommand(newConvertCmd(a))
	rootCmd.AddCommand(newWaitCmd(a))

	return rootCmd
}

// init loads configuration and wires the client to the session store.
func (a *app) init() error {
	if a.output != "json" && a.output != "yaml" {
		return fmt.Errorf("--output must be json or yaml, got %q", a.output)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if a.apiURL != "" {
		cfg.APIURL = a.apiURL
	}
	if a.sessionFile != "" {
		cfg.SessionFile = a.sessionFile
	}
	if a.debug {
		cfg.Debug = true
	}
	zerolog.SetGlobalLevel(cfg.Level())
	a.cfg = cfg

	path := cfg.SessionFile
	if path == "" {
		if path, err = session.DefaultPath(); err != nil {
			return err
		}
	}
	a.store = session.NewFileStore(path)

	opts := []client.Option{
		client.WithHTTPTimeout(cfg.HTTPTimeout),
		client.WithCredentials(client.CredentialFunc(a.store.Token)),
		client.WithDebugLogging(cfg.Debug),
	}
	if cfg.RateLimit > 0 {
		opts = append(opts, client.WithRateLimit(cfg.RateLimit, 1))
	}
	c, err := client.New(cfg.APIURL, opts...)
	if err != nil {
		return err
	}
	a.client = c
	a.session = session.NewProvider(c, a.store)

	log.Debug().
		Str("api_url", cfg.APIURL).
		Str("session_file", path).
		Msg("client ready")
	return nil
}

func (a *app) callContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), defaultCallTimeout)
}
