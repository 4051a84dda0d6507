// Command chatline-server runs the chat server's core session layer: the
// connection acceptor, the operator console, and the tag-dispatched
// client command handlers.
package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/chatline/internal/config"
	"github.com/vovakirdan/chatline/internal/log"
	"github.com/vovakirdan/chatline/internal/server"
)

func main() {
	var configPath string

	root := &cobra.Command{
		Use:   "chatline-server <port>",
		Short: "Run the chatline server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(args[0], configPath)
		},
		SilenceUsage: true,
	}
	root.Flags().StringVar(&configPath, "config", "", "path to config.yaml")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runServer(portArg, configPath string) error {
	if !isAllDigits(portArg) {
		return fmt.Errorf("Usage: chatline-server portNum")
	}

	bootLogger := log.New("info")
	cfg, path, err := config.Load(bootLogger, configPath)
	if err != nil {
		return err
	}
	logger := log.New(cfg.LogLevel)
	logger.Info().Str("config_path", path).Msg("configuration loaded")

	cfg.Addr = addrWithPort(cfg.Addr, portArg)
	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		logger.Error().Err(err).Msg("ERROR: listen")
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, logger)
	logger.Info().Str("addr", ln.Addr().String()).Msg("chatline server listening")

	if err := srv.Serve(ctx, ln); err != nil {
		if err == context.Canceled {
			return nil
		}
		return err
	}
	return nil
}

// addrWithPort overrides the port component of a configured listen
// address with the port given positionally on the command line (§6: the
// port is always supplied as an argument, never read from config).
func addrWithPort(configuredAddr, portArg string) string {
	host, _, err := net.SplitHostPort(configuredAddr)
	if err != nil {
		host = ""
	}
	return net.JoinHostPort(host, portArg)
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
