package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/mzahur/vidgrab/internal/config"
	"github.com/mzahur/vidgrab/internal/history"
	"github.com/mzahur/vidgrab/internal/utils"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	workers       int
	timeout       time.Duration
	kaTimeout     time.Duration
	userAgent     string
	proxyURL      string
	proxyUsername string
	proxyPassword string
	headers       []string
	debug         bool

	globalConfig     config.Config
	globalHTTPConfig utils.HTTPClientConfig
	historyStore     *history.Store
)

var VidgrabVersion = "dev"

var rootCmd = &cobra.Command{
	Use:     "vidgrab",
	Short:   "Vidgrab is a yt-dlp based video and audio download manager",
	Version: VidgrabVersion,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		utils.InitLogger(debug)

		configPath, err := config.DefaultPath()
		if err == nil {
			globalConfig, err = config.Load(configPath)
		}
		if err != nil {
			log.Warn().Str("op", "cmd/root").Err(err).Msg("Falling back to default config")
			globalConfig = config.Default()
		}
		if !cmd.Flags().Changed("workers") {
			workers = globalConfig.Workers
		}
		if proxyURL == "" {
			proxyURL = globalConfig.ProxyURL
		}
		if userAgent == "" {
			userAgent = globalConfig.UserAgent
		}
		if userAgent == "randomize" {
			userAgent = utils.GetRandomUserAgent()
		}
		globalHTTPConfig = utils.HTTPClientConfig{
			Timeout:       timeout,
			KATimeout:     kaTimeout,
			ProxyURL:      proxyURL,
			ProxyUsername: proxyUsername,
			ProxyPassword: proxyPassword,
			UserAgent:     userAgent,
			Headers:       utils.ParseHeaderArgs(headers),
		}

		historyPath, err := history.DefaultPath()
		if err != nil {
			log.Warn().Str("op", "cmd/root").Err(err).Msg("History disabled")
			return
		}
		historyStore = history.NewStore(historyPath)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().IntVarP(&workers, "workers", "w", 1, "Number of jobs to download in parallel")
	rootCmd.PersistentFlags().DurationVarP(&timeout, "timeout", "t", 3*time.Minute, "Connection timeout (eg. 5s, 10m)")
	rootCmd.PersistentFlags().DurationVarP(&kaTimeout, "keep-alive-timeout", "k", 90*time.Second, "Keep-alive timeout for client (eg. 10s, 1m, 80s)")
	rootCmd.PersistentFlags().StringVarP(&userAgent, "user-agent", "a", "", "User agent ('randomize' picks one)")
	rootCmd.PersistentFlags().StringVarP(&proxyURL, "proxy", "p", "", "HTTP/HTTPS proxy URL (e.g., proxy.example.com:8080)")
	rootCmd.PersistentFlags().StringVar(&proxyUsername, "proxy-username", "", "Proxy username (if not provided in proxy URL)")
	rootCmd.PersistentFlags().StringVar(&proxyPassword, "proxy-password", "", "Proxy password (if not provided in proxy URL)")
	rootCmd.PersistentFlags().StringArrayVarP(&headers, "header", "H", []string{}, "Custom headers; can be specified multiple times")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(newVideoCmd())
	rootCmd.AddCommand(newAudioCmd())
	rootCmd.AddCommand(newMergeCmd())
	rootCmd.AddCommand(newBatchCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newCleanCmd())
}
